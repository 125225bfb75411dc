package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/skillboost/skillboost/internal/consumer"
	"github.com/skillboost/skillboost/internal/llm"
	"github.com/skillboost/skillboost/internal/logger"
	"github.com/skillboost/skillboost/internal/normalize"
	"github.com/skillboost/skillboost/internal/store"
)

func TestParseAnswers(t *testing.T) {
	got, err := parseAnswers("a, C,b,d")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 1, 3}, got)

	_, err = parseAnswers("a,x")
	assert.ErrorContains(t, err, `"x"`)
}

func TestFailure_ShowsFriendlyMessageOnly(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := &logger.Logger{SugaredLogger: zap.New(core).Sugar()}

	cause := &normalize.MalformedError{Reason: "invalid character 'x' looking for beginning of value"}
	err := failure(log, cause)
	assert.ErrorIs(t, err, normalize.ErrMalformedResponse)
	assert.Equal(t, consumer.FailureMalformed.Message()+" (run the command again to retry)", err.Error())
	assert.NotContains(t, err.Error(), "invalid character")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "malformed", fields["failure"])
	assert.Contains(t, fields["error"], "invalid character")

	unavailable := failure(log, &llm.ErrServiceUnavailable{Primary: "gemini-3-flash-preview", Fallback: "gemini-2.5-flash"})
	assert.Contains(t, unavailable.Error(), "busy")
	assert.NotContains(t, unavailable.Error(), "gemini")

	plain := failure(logger.Nop(), errors.New("dial tcp 10.0.0.1:443: connection refused"))
	assert.Equal(t, consumer.FailureInternal.Message(), plain.Error())
}

func TestJoinArgs(t *testing.T) {
	assert.Equal(t, "system design", joinArgs([]string{" system", "design "}))
}

func TestServingTable_ShowsPairOutcomesPerPurpose(t *testing.T) {
	serving := []store.ServingUsage{
		{Purpose: "quiz", Primary: 3, Fallback: 1, PrimaryFailed: 2, Unavailable: 1},
		{Purpose: "video", Primary: 2},
	}
	usage := []store.PurposeUsage{
		{Purpose: "quiz", Calls: 7, InputTokens: 400, OutputTokens: 100, AvgLatencyMs: 850},
	}

	out := servingTable(serving, usage)
	assert.Contains(t, out, "Fallback %")
	assert.Contains(t, out, "quiz")
	assert.Contains(t, out, "25%")
	assert.Contains(t, out, "500")
	assert.Contains(t, out, "850")
	assert.Contains(t, out, "video")

	assert.Equal(t, "7 requests: 17% answered by the fallback, 1 unavailable", servingSummary(serving))
}

func TestSummarizeCosts_ReportsUnpricedModels(t *testing.T) {
	costs := summarizeCosts([]store.ModelUsage{
		{Model: "gemini-2.5-pro", Calls: 2, InputTokens: 1_000_000, OutputTokens: 100_000},
		{Model: "local-llama", Calls: 1, InputTokens: 10, OutputTokens: 10},
	})

	assert.InDelta(t, 2.25, costs.total, 1e-9)
	assert.Equal(t, []string{"local-llama"}, costs.unpriced)
	require.Len(t, costs.rows, 2)
	assert.Equal(t, "$2.25", costs.rows[0][4])
	assert.Equal(t, "?", costs.rows[1][4])
}

func TestEventsTable_LabelsAttempts(t *testing.T) {
	out := eventsTable([]store.LLMEventRecord{
		{ID: 1, LLMRequestEventData: store.LLMRequestEventData{Purpose: "quiz", Model: "gemini-2.5-flash", Attempt: store.AttemptFallback, Success: true}},
		{ID: 2, LLMRequestEventData: store.LLMRequestEventData{Purpose: "proxy", Model: "gpt-4.1"}},
	})
	assert.Contains(t, out, "Served as")
	assert.Contains(t, out, "fallback")
	assert.Contains(t, out, "single")
}
