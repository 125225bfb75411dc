package normalize

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillboost/skillboost/internal/llm"
)

type question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

var questionSchema = &llm.Schema{
	Name: "normalize-test-question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{"type": "string", "minLength": 1},
			"options": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 4,
				"maxItems": 4,
			},
			"correctAnswer": map[string]any{"type": "integer", "minimum": 0, "maximum": 3},
		},
		"required": []any{"question", "options", "correctAnswer"},
	},
}

func TestParseArray_DropsInvalidElements(t *testing.T) {
	text := "```json\n[" +
		`{"question":"ok","options":["a","b","c","d"],"correctAnswer":2},` +
		`{"question":"three options","options":["a","b","c"],"correctAnswer":0},` +
		`{"question":"bad index","options":["a","b","c","d"],"correctAnswer":4},` +
		`{"question":"negative","options":["a","b","c","d"],"correctAnswer":-1},` +
		`{"question":"string index","options":["a","b","c","d"],"correctAnswer":"1"},` +
		`{"question":"also ok","options":["w","x","y","z"],"correctAnswer":0}` +
		"]\n```"

	res := ParseArray[question](text, questionSchema, nil)
	require.True(t, res.Succeeded(), res.Reason)
	assert.True(t, res.Partial())
	assert.Equal(t, 4, res.Dropped)

	got, ok := res.Get()
	require.True(t, ok)
	require.Len(t, got, 2)
	for _, q := range got {
		assert.Len(t, q.Options, 4)
		assert.GreaterOrEqual(t, q.CorrectAnswer, 0)
		assert.LessOrEqual(t, q.CorrectAnswer, 3)
	}
}

func TestParseArray_AllDroppedIsInvalid(t *testing.T) {
	res := ParseArray[question](`[{"question":"x","options":[],"correctAnswer":0}]`, questionSchema, nil)
	assert.False(t, res.Succeeded())
	assert.Equal(t, 1, res.Dropped)
	assert.True(t, errors.Is(res.Err(), ErrMalformedResponse))
}

func TestParseArray_WrappedArray(t *testing.T) {
	res := ParseArray[question](`{"questions":[{"question":"q","options":["a","b","c","d"],"correctAnswer":1}]}`, questionSchema, nil)
	require.True(t, res.Succeeded(), res.Reason)
	assert.False(t, res.Partial())
	assert.Len(t, res.Value, 1)
}

func TestParseArray_CheckRejects(t *testing.T) {
	text := `[{"question":"keep","options":["a","b","c","d"],"correctAnswer":0},` +
		`{"question":"","options":["a","b","c","d"],"correctAnswer":0}]`
	check := func(q question) error {
		if q.Question == "" {
			return fmt.Errorf("empty question")
		}
		return nil
	}
	res := ParseArray[question](text, nil, check)
	require.True(t, res.Succeeded())
	assert.Equal(t, 1, res.Dropped)
	assert.Equal(t, "keep", res.Value[0].Question)
}

func TestParseArray_NotAnArray(t *testing.T) {
	for _, text := range []string{"", "Sorry, I cannot help.", `{"a":1}`, `{"a":[1],"b":[2]}`} {
		res := ParseArray[question](text, questionSchema, nil)
		assert.False(t, res.Succeeded(), "text %q", text)
		var malformed *MalformedError
		assert.True(t, errors.As(res.Err(), &malformed))
	}
}

func TestParseObject(t *testing.T) {
	type path struct {
		Concept string `json:"concept"`
		Steps   []struct {
			Title string `json:"title"`
		} `json:"steps"`
	}
	schema := &llm.Schema{
		Name: "normalize-test-path",
		Definition: map[string]any{
			"type":     "object",
			"required": []any{"steps"},
		},
	}

	res := ParseObject[path]("```json\n{\"concept\":\"HPA\",\"steps\":[{\"title\":\"a\"}]}\n```", schema)
	require.True(t, res.Succeeded(), res.Reason)
	assert.Equal(t, "HPA", res.Value.Concept)
	assert.NoError(t, res.Err())

	res = ParseObject[path](`{"concept":"x"}`, schema)
	assert.False(t, res.Succeeded())
	assert.ErrorIs(t, res.Err(), ErrMalformedResponse)

	res = ParseObject[path]("not json", nil)
	assert.False(t, res.Succeeded())
	assert.Equal(t, "not json", res.Raw)
}
