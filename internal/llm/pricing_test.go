package llm

import (
	"math"
	"testing"
)

func TestCostForLongestPrefixWins(t *testing.T) {
	// gpt-4o-mini must match its own rate, not the shorter gpt-4o prefix.
	mini := CostFor("gpt-4o-mini-2024-07-18", 1_000_000, 0)
	if math.Abs(mini.Dollars-0.15) > 1e-9 {
		t.Errorf("gpt-4o-mini dollars = %f, want 0.15", mini.Dollars)
	}

	full := CostFor("gpt-4o-2024-08-06", 1_000_000, 0)
	if math.Abs(full.Dollars-2.50) > 1e-9 {
		t.Errorf("gpt-4o dollars = %f, want 2.50", full.Dollars)
	}
}

func TestCostForUnknownModel(t *testing.T) {
	c := CostFor("some-local-model", 5000, 2000)
	if c.Dollars != 0 {
		t.Errorf("unknown model dollars = %f, want 0", c.Dollars)
	}
	// Token counts still flow through for the ledger.
	if c.InputTokens != 5000 || c.OutputTokens != 2000 {
		t.Errorf("tokens = %d/%d, want 5000/2000", c.InputTokens, c.OutputTokens)
	}
}

func TestCostForMixedUsage(t *testing.T) {
	c := CostFor("claude-sonnet-4-20250514", 200_000, 50_000)
	want := 0.2*3.00 + 0.05*15.00
	if math.Abs(c.Dollars-want) > 1e-9 {
		t.Errorf("dollars = %f, want %f", c.Dollars, want)
	}
}
