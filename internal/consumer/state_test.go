package consumer

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlot_Lifecycle(t *testing.T) {
	var s Slot[[]string]
	assert.Equal(t, Idle, s.Snapshot().State)

	tk := s.Begin("kubernetes")
	assert.Equal(t, Requesting, s.Snapshot().State)
	assert.Equal(t, "kubernetes", tk.Key())

	require.True(t, s.Succeed(tk, []string{"a", "b"}))
	snap := s.Snapshot()
	assert.Equal(t, Succeeded, snap.State)
	assert.Equal(t, []string{"a", "b"}, snap.Value)
	assert.False(t, snap.Retry())

	// A delivered ticket cannot be reused.
	assert.False(t, s.Fail(tk, errors.New("late")))
	assert.Equal(t, Succeeded, s.Snapshot().State)
}

func TestSlot_FailedIsTerminalUntilBegin(t *testing.T) {
	var s Slot[int]
	tk := s.Begin("q")
	require.True(t, s.Fail(tk, errors.New("boom")))
	assert.True(t, s.Snapshot().Retry())

	assert.False(t, s.Succeed(tk, 1))
	assert.Equal(t, Failed, s.Snapshot().State)

	tk2 := s.Begin("q")
	assert.Equal(t, Requesting, s.Snapshot().State)
	assert.Nil(t, s.Snapshot().Err)
	assert.True(t, s.Succeed(tk2, 7))
}

func TestSlot_StaleTicketIgnored(t *testing.T) {
	var s Slot[string]
	first := s.Begin("rust")
	second := s.Begin("go")

	assert.False(t, s.Succeed(first, "rust result"))
	assert.True(t, s.Succeed(second, "go result"))
	assert.Equal(t, "go result", s.Snapshot().Value)
}

func TestSlot_AbandonDropsInflight(t *testing.T) {
	var s Slot[string]
	tk := s.Begin("x")
	s.Abandon()
	assert.False(t, s.Succeed(tk, "v"))
	assert.Equal(t, Idle, s.Snapshot().State)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "requesting", Requesting.String())
	assert.Equal(t, "succeeded", Succeeded.String())
	assert.Equal(t, "failed", Failed.String())
}

func TestBoard_IndependentSlots(t *testing.T) {
	b := NewBoard[string]()
	ids := []string{"1", "2", "3"}
	tickets := make(map[string]Ticket)
	for _, id := range ids {
		tickets[id] = b.Begin(id)
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if id == "2" {
				b.Fail(tickets[id], errors.New("unavailable"))
				return
			}
			b.Succeed(tickets[id], "video for "+id)
		}(id)
	}
	wg.Wait()

	one, ok := b.Get("1")
	require.True(t, ok)
	assert.Equal(t, Succeeded, one.State)
	assert.Equal(t, "video for 1", one.Value)
	two, _ := b.Get("2")
	assert.Equal(t, Failed, two.State)
	three, _ := b.Get("3")
	assert.Equal(t, Succeeded, three.State)
}

func TestBoard_ResetIgnoresLateResults(t *testing.T) {
	b := NewBoard[string]()
	old := b.Begin("1")
	b.Reset()

	assert.False(t, b.Succeed(old, "late"))
	_, ok := b.Get("1")
	assert.False(t, ok)

	fresh := b.Begin("1")
	assert.False(t, b.Succeed(old, "late"), "old ticket must not match a recreated slot")
	assert.True(t, b.Succeed(fresh, "new"))
	snap, ok := b.Get("1")
	require.True(t, ok)
	assert.Equal(t, "new", snap.Value)
}
