// Package prompt turns a caller intent and its parameters into a generation
// request. Everything here is pure: no I/O and no model calls.
package prompt

import "github.com/skillboost/skillboost/internal/llm"

// Intent names what the caller wants generated.
type Intent string

const (
	IntentQuiz           Intent = "quiz"
	IntentRecoveryPath   Intent = "recovery-path"
	IntentRecommendation Intent = "recommendation"
	IntentVideo          Intent = "video"
	IntentLecture        Intent = "lecture"
	IntentRaw            Intent = "raw"
)

// Mode tells the normalizer how to read the model's reply.
type Mode int

const (
	// Structured replies are JSON, possibly wrapped in code fences.
	Structured Mode = iota
	// Pattern replies are prose with labelled lines such as "Title: ...".
	Pattern
)

func (m Mode) String() string {
	if m == Pattern {
		return "pattern"
	}
	return "structured"
}

// Request is a built generation request. It is immutable: the fields are
// unexported and slices are copied on the way out.
type Request struct {
	intent  Intent
	subject string
	system  string
	text    string
	shape   *llm.Schema
	tools   []llm.Tool
	mode    Mode
}

// Subject returns the trimmed primary parameter (topic, goal, skill or URL).
func (r Request) Subject() string { return r.subject }

// Prompt returns the user prompt text.
func (r Request) Prompt() string { return r.text }

// Tools returns a copy of the tool hints.
func (r Request) Tools() []llm.Tool {
	if len(r.tools) == 0 {
		return nil
	}
	out := make([]llm.Tool, len(r.tools))
	copy(out, r.tools)
	return out
}

// LLM converts the request into a provider request.
func (r Request) LLM() llm.Request {
	return llm.Request{
		System:      r.system,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: r.text}},
		Schema:      r.shape,
		Tools:       r.Tools(),
		Temperature: temperature(r.intent),
	}
}

// Purpose returns the event-log label for the request.
func (r Request) Purpose() string {
	switch r.intent {
	case IntentQuiz:
		return llm.PurposeQuiz
	case IntentRecoveryPath:
		return llm.PurposeRecoveryPath
	case IntentRecommendation:
		return llm.PurposeRecommendation
	case IntentVideo:
		return llm.PurposeVideo
	case IntentLecture:
		return llm.PurposeLecture
	default:
		return llm.PurposeProxy
	}
}

func temperature(i Intent) float64 {
	switch i {
	case IntentQuiz, IntentRecoveryPath:
		return 0.7
	default:
		return 0
	}
}
