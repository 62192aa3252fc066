package llm

import (
	"strings"

	"draftforge/internal/types"
)

// Pricing holds per-million-token dollar rates for a model.
type Pricing struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// modelPricing maps model name prefixes to rates. Longest prefix wins.
// Unknown models report token counts with zero dollars rather than guessing.
var modelPricing = map[string]Pricing{
	"gpt-4o-mini":       {InputPerMTok: 0.15, OutputPerMTok: 0.60},
	"gpt-4o":            {InputPerMTok: 2.50, OutputPerMTok: 10.00},
	"claude-sonnet-4":   {InputPerMTok: 3.00, OutputPerMTok: 15.00},
	"claude-haiku":      {InputPerMTok: 0.80, OutputPerMTok: 4.00},
	"gemini-2.5-flash":  {InputPerMTok: 0.30, OutputPerMTok: 2.50},
	"gemini-2.5-pro":    {InputPerMTok: 1.25, OutputPerMTok: 10.00},
	"gemini-3-flash":    {InputPerMTok: 0.30, OutputPerMTok: 2.50},
}

// CostFor converts token usage into a Cost for the given model.
func CostFor(model string, inputTokens, outputTokens int) types.Cost {
	cost := types.Cost{
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
	}

	var best string
	for prefix := range modelPricing {
		if strings.HasPrefix(model, prefix) && len(prefix) > len(best) {
			best = prefix
		}
	}
	if best != "" {
		p := modelPricing[best]
		cost.Dollars = float64(inputTokens)/1e6*p.InputPerMTok +
			float64(outputTokens)/1e6*p.OutputPerMTok
	}
	return cost
}
