package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillboost/skillboost/internal/backend"
	"github.com/skillboost/skillboost/internal/prompt"
)

type fakeBackend struct {
	backend.Backend
	records []backend.SearchRecord
	err     error
	deleted []string
}

func (f *fakeBackend) InsertSearch(_ context.Context, r backend.SearchRecord) (backend.SearchRecord, error) {
	if f.err != nil {
		return backend.SearchRecord{}, f.err
	}
	r.ID = "id-" + r.Query
	r.CreatedAt = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	f.records = append([]backend.SearchRecord{r}, f.records...)
	return r, nil
}

func (f *fakeBackend) RecentSearches(_ context.Context, email string, limit int) ([]backend.SearchRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []backend.SearchRecord
	for _, r := range f.records {
		if r.UserEmail == email && len(out) < limit {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeBackend) DeleteSearch(_ context.Context, email, id string) error {
	for _, r := range f.records {
		if r.ID == id && r.UserEmail == email {
			f.deleted = append(f.deleted, id)
			return nil
		}
	}
	return backend.ErrNotFound
}

var ada = &backend.User{ID: "1", Email: "ada@example.edu"}

func TestRecord_SignedIn(t *testing.T) {
	fb := &fakeBackend{}
	s := NewService(fb, newTestCache(t), nil)

	e, err := s.Record(context.Background(), ada, " system design ")
	require.NoError(t, err)
	assert.Equal(t, "id-system design", e.ID)
	require.Len(t, fb.records, 1)
	assert.Equal(t, "ada", fb.records[0].UserName)
	assert.Equal(t, []string{"system design"}, queries(s.cache.Entries()))

	recent := s.Recent(context.Background(), ada, 0)
	require.Len(t, recent, 1)
	assert.Equal(t, "system design", recent[0].Query)
}

func TestRecord_AnonymousUsesCacheOnly(t *testing.T) {
	fb := &fakeBackend{}
	s := NewService(fb, newTestCache(t), nil)

	_, err := s.Record(context.Background(), nil, "rust")
	require.NoError(t, err)
	assert.Empty(t, fb.records)
	assert.Equal(t, []string{"rust"}, queries(s.Recent(context.Background(), nil, 5)))
}

func TestRecord_BlankQuery(t *testing.T) {
	s := NewService(&fakeBackend{}, newTestCache(t), nil)
	_, err := s.Record(context.Background(), ada, "   ")
	assert.ErrorIs(t, err, prompt.ErrInvalidInput)
	assert.Empty(t, s.cache.Entries())
}

func TestRecent_BackendFailureFallsBackToCache(t *testing.T) {
	fb := &fakeBackend{}
	s := NewService(fb, newTestCache(t), nil)
	for _, q := range []string{"a", "b", "c"} {
		_, err := s.Record(context.Background(), ada, q)
		require.NoError(t, err)
	}

	fb.err = errors.New("offline")
	got := s.Recent(context.Background(), ada, 2)
	assert.Equal(t, []string{"c", "b"}, queries(got))

	e, err := s.Record(context.Background(), ada, "d")
	require.NoError(t, err, "backend insert failures degrade to the cache")
	assert.Empty(t, e.ID)
}

func TestDelete(t *testing.T) {
	fb := &fakeBackend{}
	s := NewService(fb, newTestCache(t), nil)
	e, err := s.Record(context.Background(), ada, "graphs")
	require.NoError(t, err)

	other := &backend.User{ID: "2", Email: "grace@example.edu"}
	assert.ErrorIs(t, s.Delete(context.Background(), other, e.ID), backend.ErrNotFound)
	assert.ErrorIs(t, s.Delete(context.Background(), nil, e.ID), backend.ErrUnauthorized)
	assert.Empty(t, fb.deleted)

	require.NoError(t, s.Delete(context.Background(), ada, e.ID))
	assert.Equal(t, []string{e.ID}, fb.deleted)

	assert.ErrorIs(t, s.Delete(context.Background(), ada, "missing"), backend.ErrNotFound)
	assert.ErrorIs(t, s.Delete(context.Background(), ada, " "), prompt.ErrInvalidInput)

	require.NoError(t, s.Forget("graphs"))
	assert.Empty(t, s.cache.Entries())
}
