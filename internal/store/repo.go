package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int       // id > After
	Before  int       // id < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact purpose label, empty for all
	Failed  bool      // only unsuccessful attempts
}

// Attempt labels which model of a fallback pair made a request. Requests
// sent to a lone model carry no label.
const (
	AttemptPrimary  = "primary"
	AttemptFallback = "fallback"
)

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
	Attempt      string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM calls per purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int
}

// ServingUsage counts, for one purpose, which model answered each request.
type ServingUsage struct {
	Purpose       string
	Primary       int // answered by the primary model or a lone model
	Fallback      int // answered by the fallback after the primary failed
	PrimaryFailed int // failed primary attempts
	Unavailable   int // requests no model answered
}

// Requests is the number of requests that reached an outcome.
func (u ServingUsage) Requests() int {
	return u.Primary + u.Fallback + u.Unavailable
}

// FallbackRate is the share of answered requests the fallback served.
func (u ServingUsage) FallbackRate() float64 {
	answered := u.Primary + u.Fallback
	if answered == 0 {
		return 0
	}
	return float64(u.Fallback) / float64(answered)
}

// ModelUsage aggregates LLM token consumption per model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}
