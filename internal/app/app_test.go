package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillboost/skillboost/internal/config"
	"github.com/skillboost/skillboost/internal/llm"
)

func testConfig(t *testing.T) config.Config {
	dir := t.TempDir()
	return config.Config{
		Backend:      config.BackendLocal,
		DBPath:       filepath.Join(dir, "nested", "skillboost.db"),
		HistoryCache: filepath.Join(dir, "history.json"),
		UserMajor:    "Computer Science",
	}
}

func TestNew_SeedsLocalCatalog(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, Options{Config: testConfig(t), Provider: llm.NewMockProvider()})
	require.NoError(t, err)
	defer a.Close()

	stored, err := a.Store.ListCourses(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, len(a.Catalog.Courses()))
	assert.NotEmpty(t, stored)
	assert.Same(t, a.Store, a.Backend)
}

func TestNew_SeedsOnlyOnce(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	a, err := New(ctx, Options{Config: cfg, Provider: llm.NewMockProvider()})
	require.NoError(t, err)
	first, err := a.Store.ListCourses(ctx)
	require.NoError(t, err)
	require.NoError(t, a.Close())

	b, err := New(ctx, Options{Config: cfg, Provider: llm.NewMockProvider()})
	require.NoError(t, err)
	defer b.Close()
	second, err := b.Store.ListCourses(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNew_RejectsUnknownBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.Backend = "firebase"
	_, err := New(context.Background(), Options{Config: cfg, Provider: llm.NewMockProvider()})
	assert.Error(t, err)
}

func TestNew_MockFacadeFromConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.LLM = llm.DefaultConfig()
	cfg.LLM.Provider = "mock"

	a, err := New(context.Background(), Options{Config: cfg})
	require.NoError(t, err)
	defer a.Close()
	assert.NotNil(t, a.Facade)
	assert.NotNil(t, a.Server().Handler())
}

func TestNew_MissingKeyKeepsCatalog(t *testing.T) {
	cfg := testConfig(t)
	cfg.LLM = llm.DefaultConfig()

	a, err := New(context.Background(), Options{Config: cfg})
	require.NoError(t, err)
	defer a.Close()

	require.Error(t, a.LLMErr)
	assert.NotEmpty(t, a.Catalog.Courses())
	_, _, err = a.Quizzes.Generate(context.Background(), "Go")
	assert.ErrorIs(t, err, a.LLMErr)
}
