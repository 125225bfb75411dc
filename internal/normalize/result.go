package normalize

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse matches every MalformedError.
var ErrMalformedResponse = errors.New("malformed model response")

// MalformedError reports text that could not be read into the expected shape.
type MalformedError struct {
	Raw    string
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed model response: %s", e.Reason)
}

func (e *MalformedError) Is(target error) bool {
	return target == ErrMalformedResponse
}

// Result is the outcome of normalizing one model reply.
type Result[T any] struct {
	Raw    string
	Value  T
	ok     bool
	Reason string
}

// Valid wraps a successfully normalized value.
func Valid[T any](raw string, value T) Result[T] {
	return Result[T]{Raw: raw, Value: value, ok: true}
}

// Invalid records a reply that could not be normalized.
func Invalid[T any](raw, reason string) Result[T] {
	return Result[T]{Raw: raw, Reason: reason}
}

func (r Result[T]) Succeeded() bool { return r.ok }

// Get returns the value and whether it is usable.
func (r Result[T]) Get() (T, bool) {
	return r.Value, r.ok
}

// Err returns a *MalformedError for invalid results and nil otherwise.
func (r Result[T]) Err() error {
	if r.ok {
		return nil
	}
	return &MalformedError{Raw: r.Raw, Reason: r.Reason}
}

// ArrayResult is a Result over a list whose invalid elements were dropped.
type ArrayResult[T any] struct {
	Result[[]T]
	Dropped int
}

// Partial reports whether some, but not all, elements were dropped.
func (r ArrayResult[T]) Partial() bool {
	return r.Succeeded() && r.Dropped > 0
}
