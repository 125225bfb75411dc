package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/skillboost/skillboost/internal/store"
)

// modelStub fails or succeeds depending on which model identifier it serves.
type modelStub struct {
	model string
	fail  map[string]bool
	calls map[string]int
}

func (s *modelStub) Generate(_ context.Context, _ Request) (*Response, error) {
	s.calls[s.model]++
	if s.fail[s.model] {
		return nil, &ErrProviderUnavailable{Err: errors.New("invalid model " + s.model)}
	}
	return &Response{Content: json.RawMessage(`{"ok":true}`), Model: s.model}, nil
}

func (s *modelStub) ModelID() string { return s.model }

func stubPair(fail map[string]bool) (Provider, map[string]int) {
	calls := map[string]int{}
	primary := &modelStub{model: "gemini-3-flash-preview", fail: fail, calls: calls}
	fallback := &modelStub{model: "gemini-2.5-flash", fail: fail, calls: calls}
	return WithFallback(primary, fallback, nil), calls
}

func TestFallback_PrimarySucceeds(t *testing.T) {
	p, calls := stubPair(nil)

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Model != "gemini-3-flash-preview" {
		t.Fatalf("expected primary model, got %q", resp.Model)
	}
	if calls["gemini-2.5-flash"] != 0 {
		t.Fatalf("fallback should not be called, got %d calls", calls["gemini-2.5-flash"])
	}
}

func TestFallback_PrimaryFailsFallbackSucceeds(t *testing.T) {
	p, calls := stubPair(map[string]bool{"gemini-3-flash-preview": true})

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Model != "gemini-2.5-flash" {
		t.Fatalf("expected fallback model, got %q", resp.Model)
	}
	if calls["gemini-3-flash-preview"] != 1 || calls["gemini-2.5-flash"] != 1 {
		t.Fatalf("expected exactly one call each, got %v", calls)
	}
}

func TestFallback_BothFail(t *testing.T) {
	p, calls := stubPair(map[string]bool{"gemini-3-flash-preview": true, "gemini-2.5-flash": true})

	_, err := p.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	var unavailable *ErrServiceUnavailable
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected ErrServiceUnavailable, got %T", err)
	}
	if !errors.Is(err, ErrAllModelsFailed) {
		t.Fatal("expected errors.Is(err, ErrAllModelsFailed)")
	}
	if unavailable.Primary != "gemini-3-flash-preview" || unavailable.Fallback != "gemini-2.5-flash" {
		t.Fatalf("unexpected model ids: %+v", unavailable)
	}
	var provErr *ErrProviderUnavailable
	if !errors.As(err, &provErr) {
		t.Fatal("expected the underlying provider errors to be reachable")
	}
	if calls["gemini-3-flash-preview"] != 1 || calls["gemini-2.5-flash"] != 1 {
		t.Fatalf("expected exactly one attempt per model, got %v", calls)
	}
}

func TestFallback_ContextCancelledSkipsFallback(t *testing.T) {
	primary := NewMockProviderFor("primary", MockResponse{Err: context.Canceled})
	fallback := NewMockProviderFor("fallback", MockText(`{"ok":true}`))
	p := WithFallback(primary, fallback, nil)

	_, err := p.Generate(context.Background(), Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if fallback.CallCount() != 0 {
		t.Fatalf("expected no fallback call, got %d", fallback.CallCount())
	}
}

func TestFallback_InvalidResponseFallsBack(t *testing.T) {
	primary := NewMockProviderFor("primary", MockResponse{Err: &ErrInvalidResponse{Err: errors.New("bad")}})
	fallback := NewMockProviderFor("fallback", MockText(`[]`))
	p := WithFallback(primary, fallback, nil)

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != "[]" {
		t.Fatalf("unexpected content %q", resp.Text())
	}
}

func TestFallback_ModelIDIsPrimary(t *testing.T) {
	p := WithFallback(NewMockProviderFor("a"), NewMockProviderFor("b"), nil)
	if p.ModelID() != "a" {
		t.Fatalf("expected 'a', got %q", p.ModelID())
	}
}

func TestFallback_RecordsAttemptRoles(t *testing.T) {
	repo := &recordingRepo{}
	primary := WithLogging(NewMockProviderFor("gemini-3-flash-preview",
		MockResponse{Err: &ErrProviderUnavailable{}}), "gemini", repo, nil)
	fallback := WithLogging(NewMockProviderFor("gemini-2.5-flash", MockText(`[]`)), "gemini", repo, nil)
	p := WithFallback(primary, fallback, nil)

	if _, err := p.Generate(WithPurpose(context.Background(), PurposeQuiz), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(repo.events))
	}
	if repo.events[0].Attempt != store.AttemptPrimary || repo.events[0].Success {
		t.Fatalf("unexpected primary event: %+v", repo.events[0])
	}
	if repo.events[1].Attempt != store.AttemptFallback || !repo.events[1].Success {
		t.Fatalf("unexpected fallback event: %+v", repo.events[1])
	}

	lone := WithLogging(NewMockProviderFor("mock", MockText(`{}`)), "mock", repo, nil)
	if _, err := lone.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.events[2].Attempt != "" {
		t.Fatalf("a lone model carries no attempt label, got %q", repo.events[2].Attempt)
	}
}
