package patterns

import (
	"context"
	"fmt"

	"draftforge/internal/llm"
	"draftforge/internal/types"
)

const discoverSystemPrompt = `You are an editor auditing generated content for verbal habits.
Identify phrases and constructions the writer over-relies on: stock
transitions, filler phrases, repeated sentence scaffolding, cliches.
Only report habits you are confident are genuinely overused, not
ordinary language. Confidence is your certainty the habit will recur
in future drafts.`

// discoveredSet is the model's response shape.
type discoveredSet struct {
	Patterns []struct {
		Phrase     string  `json:"phrase"`
		Category   string  `json:"category"`
		Confidence float64 `json:"confidence"`
	} `json:"patterns"`
}

// Discover runs one structured model call over a finished draft and proposes
// patterns for merging. It is the post-run analysis step; a failed call
// returns the incurred cost and the error for the caller to handle, since
// pattern learning is a side effect a run can survive without.
func Discover(ctx context.Context, client llm.Client, draft types.ContentDraft) ([]Pattern, types.Cost, error) {
	user := fmt.Sprintf(`Analyze this draft for overused phrases and constructions.

HEADLINE: %s

BODY:
%s

Return JSON:
{"patterns": [{"phrase": "...", "category": "phrase|structural|stylistic", "confidence": 0.0-1.0}]}`,
		draft.Headline, draft.Body)

	var set discoveredSet
	cost, err := client.CompleteJSON(ctx, discoverSystemPrompt, user, &set)
	if err != nil {
		return nil, cost, fmt.Errorf("pattern discovery failed: %w", err)
	}

	out := make([]Pattern, 0, len(set.Patterns))
	for _, p := range set.Patterns {
		out = append(out, Pattern{
			Phrase:     p.Phrase,
			Category:   Category(p.Category),
			Confidence: p.Confidence,
		})
	}
	return out, cost, nil
}
