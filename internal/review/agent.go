// Package review runs a registry of independent review agents over a draft.
// Each agent scores its own quality dimensions with one model call and
// derives its own pass/fail from the channel's configured minimums; the
// panel fans agents out concurrently and waits for every one to settle.
package review

import (
	"context"
	"fmt"
	"strings"

	"draftforge/internal/config"
	"draftforge/internal/llm"
	"draftforge/internal/types"
)

// Agent is one member of the review panel. Implementations must be safe for
// concurrent use and must not share mutable state with other agents.
type Agent interface {
	// Name identifies the agent in gate decisions and config.
	Name() string

	// Dimensions lists the quality dimensions this agent scores.
	Dimensions() []string

	// Evaluate scores the draft. The returned cost is meaningful even on
	// error so the caller can account for failed calls.
	Evaluate(ctx context.Context, draft types.ContentDraft, cfg config.ChannelConfig, sources []types.SourceMaterial) (types.ReviewAgentResult, types.Cost, error)
}

// scoringAgent is the shared implementation behind the built-in agents: a
// named rubric rendered into one structured model call.
type scoringAgent struct {
	name          string
	dimensions    []string
	rubric        string
	includeSource bool
	client        llm.Client
}

func (a *scoringAgent) Name() string { return a.name }

func (a *scoringAgent) Dimensions() []string {
	out := make([]string, len(a.dimensions))
	copy(out, a.dimensions)
	return out
}

// reviewResponse is the model's response shape for a scoring agent.
type reviewResponse struct {
	Scores      map[string]int `json:"scores"`
	Feedback    []string       `json:"feedback"`
	Suggestions []string       `json:"suggestions"`
}

func (a *scoringAgent) Evaluate(ctx context.Context, draft types.ContentDraft, cfg config.ChannelConfig, sources []types.SourceMaterial) (types.ReviewAgentResult, types.Cost, error) {
	system := a.systemPrompt()
	user := a.userPrompt(draft, cfg, sources)

	var resp reviewResponse
	cost, err := a.client.CompleteJSON(ctx, system, user, &resp)
	if err != nil {
		return types.ReviewAgentResult{}, cost, fmt.Errorf("%s review failed: %w", a.name, err)
	}

	result := types.ReviewAgentResult{
		Agent:       a.name,
		Scores:      make(map[string]int, len(a.dimensions)),
		Feedback:    resp.Feedback,
		Suggestions: resp.Suggestions,
	}

	// Only the agent's declared dimensions count; anything else the model
	// volunteered is dropped. Scores clamp into 1..10.
	for _, dim := range a.dimensions {
		score, ok := resp.Scores[dim]
		if !ok {
			return types.ReviewAgentResult{}, cost, fmt.Errorf("%s review missing score for %s", a.name, dim)
		}
		result.Scores[dim] = clampScore(score)
	}

	result.Passed = derivePassed(result.Scores, cfg.QualityGate.MinScores)
	return result, cost, nil
}

// derivePassed compares an agent's own scored dimensions against the
// configured minimums for those same dimension names. Dimensions with no
// configured minimum do not block.
func derivePassed(scores map[string]int, minScores map[string]int) bool {
	for dim, score := range scores {
		if min, ok := minScores[dim]; ok && score < min {
			return false
		}
	}
	return true
}

func clampScore(s int) int {
	if s < 1 {
		return 1
	}
	if s > 10 {
		return 10
	}
	return s
}

func (a *scoringAgent) systemPrompt() string {
	var sb strings.Builder
	sb.WriteString("You are a strict content reviewer. ")
	sb.WriteString(a.rubric)
	sb.WriteString("\n\nScore each dimension as an integer from 1 (unacceptable) to 10 (excellent).\n")
	fmt.Fprintf(&sb, "Dimensions to score: %s\n", strings.Join(a.dimensions, ", "))
	sb.WriteString(`Respond with JSON only:
{"scores": {"<dimension>": 1-10, ...}, "feedback": ["specific problems found"], "suggestions": ["concrete improvements"]}`)
	return sb.String()
}

func (a *scoringAgent) userPrompt(draft types.ContentDraft, cfg config.ChannelConfig, sources []types.SourceMaterial) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Channel: %s (%s, focus: %s)\n", cfg.ID, cfg.Topic.Domain, cfg.Topic.Focus)
	fmt.Fprintf(&sb, "Voice: %s (%s)\n", cfg.Voice.Name, cfg.Voice.Tone)
	if cfg.TargetWordCount > 0 {
		fmt.Fprintf(&sb, "Target length: %d words\n", cfg.TargetWordCount)
	}

	fmt.Fprintf(&sb, "\nHEADLINE: %s\n\nBODY:\n%s\n", draft.Headline, draft.Body)

	if a.includeSource && len(sources) > 0 {
		sb.WriteString("\nSOURCE MATERIAL THE DRAFT WAS WRITTEN FROM:\n")
		for i, src := range sources {
			fmt.Fprintf(&sb, "--- Source %d: %s ---\n%s\n", i+1, src.Title, src.Body)
		}
	}

	return sb.String()
}
