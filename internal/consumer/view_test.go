package consumer

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillboost/skillboost/internal/llm"
	"github.com/skillboost/skillboost/internal/normalize"
	"github.com/skillboost/skillboost/internal/prompt"
)

func TestClassify(t *testing.T) {
	_, invalidErr := prompt.QuizForTopic("  ")
	tests := []struct {
		name string
		err  error
		want Failure
	}{
		{"nil", nil, FailureNone},
		{"invalid input", invalidErr, FailureInvalidInput},
		{"unavailable", fmt.Errorf("quiz: %w", &llm.ErrServiceUnavailable{Primary: "a", Fallback: "b"}), FailureUnavailable},
		{"malformed", &normalize.MalformedError{Raw: "x", Reason: "not json"}, FailureMalformed},
		{"other", errors.New("disk full"), FailureInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestFailureView_HidesRawError(t *testing.T) {
	err := &normalize.MalformedError{Raw: "<html>secret stack</html>", Reason: "unexpected token <"}
	v := FailureView(err, []string{})

	b, mErr := json.Marshal(v)
	require.NoError(t, mErr)
	assert.NotContains(t, string(b), "secret stack")
	assert.NotContains(t, string(b), "unexpected token")
	assert.Equal(t, "failed", v.State)
	assert.True(t, v.Retry)
	assert.NotEmpty(t, v.Message)
}

func TestViewOf(t *testing.T) {
	var s Slot[string]
	assert.Equal(t, "idle", ViewOf(s.Snapshot()).State)

	tk := s.Begin("k")
	assert.Equal(t, "requesting", ViewOf(s.Snapshot()).State)

	s.Succeed(tk, "done")
	v := ViewOf(s.Snapshot())
	assert.Equal(t, "succeeded", v.State)
	assert.Equal(t, "done", v.Data)
	assert.False(t, v.Retry)
}
