package quiz

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillboost/skillboost/internal/llm"
	"github.com/skillboost/skillboost/internal/normalize"
	"github.com/skillboost/skillboost/internal/prompt"
)

const mixedQuiz = "```json\n[" +
	`{"question":"What does a load balancer do?","options":["a","b","c","d"],"correctAnswer":1},` +
	`{"question":"Only three","options":["a","b","c"],"correctAnswer":0},` +
	`{"question":"Index too big","options":["a","b","c","d"],"correctAnswer":7},` +
	`{"question":"Blank option","options":["a"," ","c","d"],"correctAnswer":0},` +
	`{"question":"What is CAP?","options":["a","b","c","d"],"correctAnswer":3}` +
	"]\n```"

func TestGenerate_KeepsOnlyValidQuestions(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText(mixedQuiz))
	g := NewGenerator(mock, nil)

	questions, outcome, err := g.Generate(context.Background(), "  system design ")
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, 3, outcome.Dropped)

	ids := map[string]bool{}
	for _, q := range questions {
		assert.Len(t, q.Choices, ChoiceCount)
		assert.GreaterOrEqual(t, q.CorrectIndex, 0)
		assert.Less(t, q.CorrectIndex, ChoiceCount)
		assert.NotEmpty(t, q.ID)
		ids[q.ID] = true
	}
	assert.Len(t, ids, 2)

	req := mock.LastRequest()
	assert.Contains(t, req.Messages[0].Content, `"system design"`)
	assert.Equal(t, prompt.QuizSchema, req.Schema)
}

func TestGenerate_AllInvalidIsMalformed(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText(`[{"question":"x","options":["a"],"correctAnswer":0}]`))
	_, outcome, err := NewGenerator(mock, nil).Generate(context.Background(), "graphs")
	assert.ErrorIs(t, err, normalize.ErrMalformedResponse)
	assert.Equal(t, 1, outcome.Dropped)
}

func TestGenerate_BlankTopicMakesNoCall(t *testing.T) {
	mock := llm.NewMockProvider()
	_, _, err := NewGenerator(mock, nil).Generate(context.Background(), "   ")
	assert.ErrorIs(t, err, prompt.ErrInvalidInput)
	assert.Equal(t, 0, mock.CallCount())
}

func TestGenerate_ServiceUnavailable(t *testing.T) {
	primary := llm.NewMockProviderFor("primary", llm.MockResponse{Err: errors.New("503")})
	fallback := llm.NewMockProviderFor("fallback", llm.MockResponse{Err: errors.New("503")})
	g := NewGenerator(llm.WithFallback(primary, fallback, nil), nil)

	_, _, err := g.Generate(context.Background(), "rust")
	assert.ErrorIs(t, err, llm.ErrAllModelsFailed)
	assert.Equal(t, 1, primary.CallCount())
	assert.Equal(t, 1, fallback.CallCount())
}

func TestValidate(t *testing.T) {
	good := Question{Prompt: "q", Choices: []string{"a", "b", "c", "d"}, CorrectIndex: 3}
	assert.NoError(t, Validate(good))

	tests := []struct {
		name  string
		mod   func(q *Question)
		field string
	}{
		{"blank prompt", func(q *Question) { q.Prompt = " " }, "question"},
		{"five choices", func(q *Question) { q.Choices = append(q.Choices, "e") }, "options"},
		{"empty choice", func(q *Question) { q.Choices = []string{"a", "", "c", "d"} }, "options"},
		{"negative index", func(q *Question) { q.CorrectIndex = -1 }, "correctAnswer"},
		{"index four", func(q *Question) { q.CorrectIndex = 4 }, "correctAnswer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := good
			q.Choices = append([]string(nil), good.Choices...)
			tt.mod(&q)
			var verr *ValidationError
			require.True(t, errors.As(Validate(q), &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestScore(t *testing.T) {
	qs := []Question{{CorrectIndex: 0}, {CorrectIndex: 1}, {CorrectIndex: 2}}
	assert.Equal(t, 3, Score(qs, []int{0, 1, 2}))
	assert.Equal(t, 1, Score(qs, []int{0, 0, 0}))
	assert.Equal(t, 2, Score(qs, []int{0, 1}))
	assert.Equal(t, 2, Score(qs, []int{0, 1, 3, 2}))
	assert.Equal(t, 0, Score(nil, []int{1}))
	assert.True(t, strings.Contains((&ValidationError{Field: "f", Message: "m"}).Error(), "f"))
}
