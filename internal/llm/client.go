// Package llm provides the injected model-call capability: free-text and
// structured completions, each returning the produced value plus the cost
// the call incurred. Callers own retry policy; clients here never retry
// beyond provider-level rate-limit backoff.
package llm

import (
	"context"

	"draftforge/internal/types"
)

// Client is the model-call capability consumed by the generator, the review
// agents, and the pattern discovery step.
type Client interface {
	// Complete sends a prompt and returns the completion text and its cost.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, types.Cost, error)

	// CompleteJSON sends a prompt expecting a JSON object, unmarshals it
	// into out, and returns the cost. The cost is returned even when
	// parsing fails, since the call was already paid for.
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string, out any) (types.Cost, error)
}

// completeJSON implements CompleteJSON on top of a provider's Complete.
// Providers with a native JSON mode override this path.
func completeJSON(ctx context.Context, c Client, systemPrompt, userPrompt string, out any) (types.Cost, error) {
	text, cost, err := c.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		return cost, err
	}
	return cost, unmarshalResponse(text, out)
}
