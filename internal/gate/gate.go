// Package gate aggregates review-panel outcomes into a single pass/fail
// decision. Decide is a pure function of its inputs: no randomness, no
// hidden state, so the same outcomes and config always produce the same
// decision.
package gate

import (
	"draftforge/internal/config"
	"draftforge/internal/review"
	"draftforge/internal/types"
)

// Decide aggregates agent outcomes against the channel's quality gate.
//
// The decision passes iff every agent produced a result and every result
// individually passed. An absent result fails closed unless the config marks
// that agent optional. Merged feedback and suggestions preserve agent
// registration order, then each agent's own ordering, with exact-string
// duplicates removed.
func Decide(outcomes []review.Outcome, cfg config.QualityGateConfig) types.QualityGateDecision {
	decision := types.QualityGateDecision{Passed: true}

	seenFeedback := make(map[string]bool)
	seenSuggestion := make(map[string]bool)

	for _, o := range outcomes {
		if o.Result == nil {
			decision.Missing = append(decision.Missing, o.Agent)
			if !cfg.IsOptionalAgent(o.Agent) {
				decision.Passed = false
			}
			continue
		}

		decision.Results = append(decision.Results, *o.Result)
		if !o.Result.Passed {
			decision.Passed = false
		}

		for _, f := range o.Result.Feedback {
			if f == "" || seenFeedback[f] {
				continue
			}
			seenFeedback[f] = true
			decision.Feedback = append(decision.Feedback, f)
		}
		for _, s := range o.Result.Suggestions {
			if s == "" || seenSuggestion[s] {
				continue
			}
			seenSuggestion[s] = true
			decision.Suggestions = append(decision.Suggestions, s)
		}
	}

	return decision
}

// BelowThreshold names the configured dimensions the decision's scores leave
// under their minimums, in the order minScores iteration is normalized by
// the caller. Inert dimensions and dimensions with no present score from any
// agent are reported only when the gate failed for that reason elsewhere;
// here a missing score simply does not appear.
func BelowThreshold(decision types.QualityGateDecision, cfg config.QualityGateConfig) []string {
	scores := decision.Scores()

	var below []string
	for _, dim := range sortedKeys(cfg.MinScores) {
		if cfg.IsInertDimension(dim) {
			continue
		}
		if score, ok := scores[dim]; ok && score < cfg.MinScores[dim] {
			below = append(below, dim)
		}
	}
	return below
}
