package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillboost/skillboost/internal/llm"
	"github.com/skillboost/skillboost/internal/normalize"
	"github.com/skillboost/skillboost/internal/prompt"
)

func TestRecommend_FiltersDedupesAndCaps(t *testing.T) {
	reply := "```json\n" + `{"recommendations":[
		{"id":"3","reason":"Behavioral rounds"},
		{"id":"99","reason":"Not in the catalog"},
		{"id":"3","reason":"Duplicate"},
		{"id":"1","reason":""},
		{"id":"2","reason":"Graphs"}
	]}` + "\n```"
	mock := llm.NewMockProvider(llm.MockText(reply))
	r := NewRecommender(mock, mustSeed(t), nil)

	recs, err := r.Recommend(context.Background(), "land a backend internship")
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "3", recs[0].CourseID)
	assert.Equal(t, "Behavioral rounds", recs[0].Reason)
	assert.Equal(t, "1", recs[1].CourseID)
	assert.Equal(t, defaultReason, recs[1].Reason)
	assert.Equal(t, "2", recs[2].CourseID)

	content := mock.LastRequest().Messages[0].Content
	assert.Contains(t, content, "land a backend internship")
	assert.Contains(t, content, `"2"`)
}

func TestRecommend_CapsAtThree(t *testing.T) {
	c, err := New([]Course{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}, nil, nil)
	require.NoError(t, err)
	reply := `[{"id":"a"},{"id":"b"},{"id":"c"},{"id":"d"}]`
	recs, err := NewRecommender(llm.NewMockProvider(llm.MockText(reply)), c, nil).Recommend(context.Background(), "x")
	require.NoError(t, err)
	assert.Len(t, recs, MaxRecommendations)
}

func TestRecommend_NothingInCatalogIsMalformed(t *testing.T) {
	reply := `{"recommendations":[{"id":"42","reason":"?"}]}`
	_, err := NewRecommender(llm.NewMockProvider(llm.MockText(reply)), mustSeed(t), nil).
		Recommend(context.Background(), "quantum")
	assert.ErrorIs(t, err, normalize.ErrMalformedResponse)
}

func TestRecommend_EmptyCatalogIsInvalidInput(t *testing.T) {
	c, err := New(nil, nil, nil)
	require.NoError(t, err)
	mock := llm.NewMockProvider()
	_, err = NewRecommender(mock, c, nil).Recommend(context.Background(), "goal")
	assert.ErrorIs(t, err, prompt.ErrInvalidInput)
	assert.Zero(t, mock.CallCount())
}
