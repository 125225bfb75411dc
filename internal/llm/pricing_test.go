package llm

import (
	"math"
	"testing"
)

func TestLookupCost(t *testing.T) {
	c := LookupCost("gemini-2.5-flash")
	if c == nil {
		t.Fatal("expected pricing for gemini-2.5-flash")
	}
	got := c.Cost(1_000_000, 2_000_000)
	if math.Abs(got-5.3) > 1e-9 {
		t.Fatalf("expected $5.30, got %v", got)
	}
	if LookupCost("no-such-model") != nil {
		t.Fatal("unknown models have no pricing")
	}
}

func TestDefaultModelsArePriced(t *testing.T) {
	cfg := DefaultConfig()
	for _, provider := range []string{"gemini", "openrouter"} {
		cfg.Provider = provider
		primary, fallback := cfg.Models()
		for _, m := range []string{primary, fallback} {
			if LookupCost(m) == nil {
				t.Errorf("%s default model %q has no pricing", provider, m)
			}
		}
	}
}
