package llm

import "context"

type contextKey string

const (
	purposeKey contextKey = "llm_purpose"
	attemptKey contextKey = "llm_attempt"
)

// Purpose labels recorded with each LLM request event.
const (
	PurposeQuiz           = "quiz"
	PurposeRecoveryPath   = "recovery-path"
	PurposeRecommendation = "recommendation"
	PurposeVideo          = "video"
	PurposeLecture        = "lecture"
	PurposeProxy          = "proxy"
)

// WithPurpose attaches a purpose label to the context for event logging.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}

func withAttempt(ctx context.Context, attempt string) context.Context {
	return context.WithValue(ctx, attemptKey, attempt)
}

// AttemptFrom returns store.AttemptPrimary or store.AttemptFallback inside
// a fallback pair, and "" otherwise.
func AttemptFrom(ctx context.Context) string {
	v, _ := ctx.Value(attemptKey).(string)
	return v
}
