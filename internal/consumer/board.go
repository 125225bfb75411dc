package consumer

import "sync"

// Board is a set of independent slots keyed by identity, such as one deep
// dive per recommended course. The mutex guards the map only; each slot
// has its own lock.
type Board[T any] struct {
	mu    sync.Mutex
	slots map[string]*Slot[T]
}

func NewBoard[T any]() *Board[T] {
	return &Board[T]{slots: make(map[string]*Slot[T])}
}

// Begin starts a request in the slot for id, creating it if needed.
func (b *Board[T]) Begin(id string) Ticket {
	return b.slot(id).Begin(id)
}

// Succeed delivers value to the slot the ticket belongs to.
func (b *Board[T]) Succeed(t Ticket, value T) bool {
	s, ok := b.lookup(t.key)
	if !ok {
		return false
	}
	return s.Succeed(t, value)
}

// Fail delivers err to the slot the ticket belongs to.
func (b *Board[T]) Fail(t Ticket, err error) bool {
	s, ok := b.lookup(t.key)
	if !ok {
		return false
	}
	return s.Fail(t, err)
}

// Reset drops every slot. Results still in flight are ignored when they
// arrive.
func (b *Board[T]) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.slots = make(map[string]*Slot[T])
}

// Get returns the snapshot for id.
func (b *Board[T]) Get(id string) (Snapshot[T], bool) {
	s, ok := b.lookup(id)
	if !ok {
		return Snapshot[T]{}, false
	}
	return s.Snapshot(), true
}

func (b *Board[T]) slot(id string) *Slot[T] {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.slots[id]
	if !ok {
		s = &Slot[T]{}
		b.slots[id] = s
	}
	return s
}

func (b *Board[T]) lookup(id string) (*Slot[T], bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.slots[id]
	return s, ok
}
