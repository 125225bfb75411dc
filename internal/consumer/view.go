package consumer

import (
	"errors"

	"github.com/skillboost/skillboost/internal/llm"
	"github.com/skillboost/skillboost/internal/normalize"
	"github.com/skillboost/skillboost/internal/prompt"
)

// Failure classifies an error for presentation.
type Failure int

const (
	FailureNone Failure = iota
	FailureInvalidInput
	FailureUnavailable
	FailureMalformed
	FailureInternal
)

// Classify maps a pipeline error onto a Failure.
func Classify(err error) Failure {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, prompt.ErrInvalidInput):
		return FailureInvalidInput
	case errors.Is(err, llm.ErrAllModelsFailed):
		return FailureUnavailable
	case errors.Is(err, normalize.ErrMalformedResponse):
		return FailureMalformed
	default:
		return FailureInternal
	}
}

func (f Failure) String() string {
	switch f {
	case FailureNone:
		return "none"
	case FailureInvalidInput:
		return "invalid_input"
	case FailureUnavailable:
		return "unavailable"
	case FailureMalformed:
		return "malformed"
	default:
		return "internal"
	}
}

// Message is the user-facing text for f. Raw error strings never reach it.
func (f Failure) Message() string {
	switch f {
	case FailureNone:
		return ""
	case FailureInvalidInput:
		return "Please fill in the required field and try again."
	case FailureUnavailable:
		return "The AI service is busy right now. Please try again in a moment."
	case FailureMalformed:
		return "We could not read the AI response. Try again for a fresh answer."
	default:
		return "Something went wrong. Please try again."
	}
}

// View is the JSON payload a client renders for one request.
type View[T any] struct {
	State   string `json:"state"`
	Data    T      `json:"data"`
	Retry   bool   `json:"retry"`
	Message string `json:"message,omitempty"`
}

// Success renders a succeeded request.
func Success[T any](data T) View[T] {
	return View[T]{State: Succeeded.String(), Data: data}
}

// FailureView renders a failed request with placeholder data and a retry
// affordance.
func FailureView[T any](err error, placeholder T) View[T] {
	return View[T]{
		State:   Failed.String(),
		Data:    placeholder,
		Retry:   true,
		Message: Classify(err).Message(),
	}
}

// ViewOf renders a snapshot.
func ViewOf[T any](s Snapshot[T]) View[T] {
	switch s.State {
	case Succeeded:
		return Success(s.Value)
	case Failed:
		return FailureView(s.Err, s.Value)
	default:
		return View[T]{State: s.State.String(), Data: s.Value}
	}
}
