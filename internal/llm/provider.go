package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// Provider is the core abstraction for LLM interaction.
// Consumers call Generate with a Request and receive the model's text.
type Provider interface {
	// Generate sends a prompt to the LLM and returns its raw response.
	// The request's Schema field, when set, asks the provider to use its
	// native structured output mechanism. Providers do not validate the
	// reply; callers run it through the normalizer.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Sets the LLM's role and constraints.
	System string

	// Messages is the conversation history. For single-turn generation
	// (every SkillBoost flow), this contains one user message.
	Messages []Message

	// Schema is the JSON Schema the response should conform to.
	// When nil, the response Content is the raw text.
	Schema *Schema

	// Tools lists hosted tools the model may call while answering,
	// e.g. web search for the deep-dive and lecture flows.
	Tools []Tool

	// MaxTokens is the maximum number of tokens in the response.
	// Zero leaves the provider default in place.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Default: 0.0 (deterministic) when not set.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Tool is a hosted capability the model may use during generation.
type Tool string

const (
	// ToolWebSearch grounds the answer in live search results.
	ToolWebSearch Tool = "web_search"
)

// HasTool reports whether the request enables the given tool.
func (r Request) HasTool(t Tool) bool {
	for _, have := range r.Tools {
		if have == t {
			return true
		}
	}
	return false
}

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema (used as schema name for OpenAI and as the
	// cache key for compiled validators). Kebab-case, e.g. "topic-quiz".
	Name string

	// Description is a human-readable description of what this schema
	// represents. Sent to the LLM to guide generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Content is the generated output exactly as the model returned it.
	// It may still carry markdown fences around JSON.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Text returns the response content as a trimmed string.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(string(r.Content))
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
