// Package types holds the shared data model for the draftforge pipeline:
// source material, drafts, review results, gate decisions, and cost accounting.
package types

import "time"

// SourceMaterial is one ingested item, produced by an ingestion collaborator
// and consumed read-only by the pipeline.
type SourceMaterial struct {
	Title       string    `json:"title" yaml:"title"`
	Body        string    `json:"body" yaml:"body"`
	URL         string    `json:"url" yaml:"url"`
	PublishedAt time.Time `json:"published_at" yaml:"published_at"`
}

// ContentDraft is one generated draft. Revisions are new values, never
// in-place mutations; Revision starts at 0 and increases by 1 per regeneration.
type ContentDraft struct {
	Headline string `json:"headline"`
	Body     string `json:"body"`
	Revision int    `json:"revision"`
}

// ReviewAgentResult is one agent's verdict over a draft.
type ReviewAgentResult struct {
	Agent       string         `json:"agent"`
	Scores      map[string]int `json:"scores"` // dimension -> 1..10
	Passed      bool           `json:"passed"`
	Feedback    []string       `json:"feedback"`
	Suggestions []string       `json:"suggestions"`
}

// ScoreSum returns the sum of all scored dimensions.
func (r ReviewAgentResult) ScoreSum() int {
	sum := 0
	for _, s := range r.Scores {
		sum += s
	}
	return sum
}

// QualityGateDecision aggregates per-agent results into one pass/fail verdict.
type QualityGateDecision struct {
	Passed bool `json:"passed"`

	// Results in agent registration order. An agent whose call failed has
	// no entry here; its name appears in Missing instead.
	Results []ReviewAgentResult `json:"results"`
	Missing []string            `json:"missing,omitempty"`

	// Merged feedback and suggestions, registration order then array order,
	// exact-string deduplicated.
	Feedback    []string `json:"feedback"`
	Suggestions []string `json:"suggestions"`
}

// Scores flattens every agent's scored dimensions into one map.
// Dimensions are disjoint across the built-in agents; on a collision the
// later agent wins.
func (d QualityGateDecision) Scores() map[string]int {
	merged := make(map[string]int)
	for _, r := range d.Results {
		for dim, s := range r.Scores {
			merged[dim] = s
		}
	}
	return merged
}

// ScoreSum sums every agent's scored dimensions.
func (d QualityGateDecision) ScoreSum() int {
	sum := 0
	for _, r := range d.Results {
		sum += r.ScoreSum()
	}
	return sum
}

// PipelineResult is the terminal outcome of one pipeline run.
type PipelineResult struct {
	// FinalDraft is the accepted draft, or the best-effort draft on
	// exhaustion. Nil only when the run aborted before any generation.
	FinalDraft *ContentDraft `json:"final_draft,omitempty"`

	Passed        bool           `json:"passed"`
	RevisionCount int            `json:"revision_count"`
	TotalCost     Cost           `json:"total_cost"`
	QualityScores map[string]int `json:"quality_scores,omitempty"`

	// BelowThreshold names the dimensions still under their configured
	// minimum when the revision budget ran out. Empty on a passing run.
	BelowThreshold []string `json:"below_threshold,omitempty"`
}
