// Package consumer holds the request lifecycle shared by every surface that
// shows a generated result: Idle, then Requesting, then Succeeded or Failed.
// A failure is terminal until the user starts a fresh request.
package consumer

import (
	"sync"
	"sync/atomic"
)

// State is the lifecycle phase of one request instance.
type State int

const (
	Idle State = iota
	Requesting
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Requesting:
		return "requesting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// generations are unique across all slots so a ticket can never match a
// slot it was not issued by.
var generations atomic.Uint64

// Ticket identifies one Begin call. Results delivered with a stale ticket
// are ignored.
type Ticket struct {
	key string
	gen uint64
}

// Key returns the key the ticket was issued for.
func (t Ticket) Key() string { return t.key }

// Snapshot is a consistent copy of a slot.
type Snapshot[T any] struct {
	State State
	Key   string
	Value T
	Err   error
}

// Retry reports whether the consumer should offer to run the request again.
func (s Snapshot[T]) Retry() bool {
	return s.State == Failed
}

// Slot tracks a single request instance. The zero value is Idle and ready
// to use.
type Slot[T any] struct {
	mu    sync.Mutex
	state State
	key   string
	gen   uint64
	value T
	err   error
}

// Begin moves the slot to Requesting for key and invalidates every ticket
// issued before it.
func (s *Slot[T]) Begin(key string) Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	s.gen = generations.Add(1)
	s.key = key
	s.state = Requesting
	s.value = zero
	s.err = nil
	return Ticket{key: key, gen: s.gen}
}

// Succeed stores value if t is still current. It reports whether the value
// was accepted.
func (s *Slot[T]) Succeed(t Ticket, value T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.current(t) {
		return false
	}
	s.state = Succeeded
	s.value = value
	return true
}

// Fail records err if t is still current.
func (s *Slot[T]) Fail(t Ticket, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.current(t) {
		return false
	}
	s.state = Failed
	s.err = err
	return true
}

// Abandon returns the slot to Idle. Outstanding tickets become stale.
func (s *Slot[T]) Abandon() {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	s.gen = generations.Add(1)
	s.state = Idle
	s.key = ""
	s.value = zero
	s.err = nil
}

func (s *Slot[T]) Snapshot() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot[T]{State: s.state, Key: s.key, Value: s.value, Err: s.err}
}

func (s *Slot[T]) current(t Ticket) bool {
	return s.state == Requesting && t.gen == s.gen && t.key == s.key
}
