package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSanitizeKVs(t *testing.T) {
	got := sanitizeKVs([]interface{}{"model", "gemini", "api_key", "abc", "AccessToken", "xyz", "input_tokens", 12, "dangling"})
	assert.Equal(t, []interface{}{"model", "gemini", "api_key", "[REDACTED]", "AccessToken", "[REDACTED]", "input_tokens", 12, "dangling"}, got)
}

func TestLoggerRedactsFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.With("request_id", "r1").Info("calling backend", "authorization", "Bearer abc", "path", "/rest/v1/quizzes")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	assert.Equal(t, "[REDACTED]", fields["authorization"])
	assert.Equal(t, "/rest/v1/quizzes", fields["path"])
	assert.Equal(t, "r1", fields["request_id"])
}

func TestNew(t *testing.T) {
	for _, mode := range []string{"dev", "prod"} {
		l, err := New(mode)
		if err != nil {
			t.Fatalf("New(%q): %v", mode, err)
		}
		l.Debug("hello")
	}
	Nop().Warn("discarded")
}
