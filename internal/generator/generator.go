// Package generator produces content drafts from source material, the
// channel's voice, and review feedback. It is pure delegation to the
// model-call capability: one structured call per draft, no internal retry;
// call failures propagate unmodified so the invoking infrastructure can
// retry the single call without replaying the whole loop.
package generator

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"draftforge/internal/config"
	"draftforge/internal/llm"
	"draftforge/internal/types"
)

// Request carries everything one generation attempt needs.
type Request struct {
	Config  config.ChannelConfig
	Sources []types.SourceMaterial

	// StyleProfile is the rendered style fingerprint block, verbose mode.
	StyleProfile string

	// HistoryAvoidance lists recently covered ground to steer away from.
	HistoryAvoidance string

	// Revision is the index of the draft to produce; 0 for the first
	// attempt. On revisions the fields below carry the gate's merged
	// output and the expanded forbidden vocabulary.
	Revision       int
	Feedback       []string
	Suggestions    []string
	ExtraForbidden []string

	// PreviousDraft is the draft being revised; nil on the first attempt.
	PreviousDraft *types.ContentDraft
}

// Generator produces drafts through the injected model client.
type Generator struct {
	client llm.Client
	log    *zap.Logger
}

// New creates a Generator. A nil logger is replaced with a nop logger.
func New(client llm.Client, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{client: client, log: log.Named("generator")}
}

// draftResponse is the model's structured output shape.
type draftResponse struct {
	Headline string `json:"headline"`
	Body     string `json:"body"`
}

// Generate produces one draft and its incurred cost. The returned cost is
// meaningful even on error, so callers can account for failed calls.
func (g *Generator) Generate(ctx context.Context, req Request) (types.ContentDraft, types.Cost, error) {
	system := buildSystemPrompt(req)
	user := buildUserPrompt(req)

	g.log.Debug("generating draft",
		zap.String("channel", req.Config.ID),
		zap.Int("revision", req.Revision),
		zap.Int("sources", len(req.Sources)))

	var resp draftResponse
	cost, err := g.client.CompleteJSON(ctx, system, user, &resp)
	if err != nil {
		return types.ContentDraft{}, cost, fmt.Errorf("draft generation failed: %w", err)
	}
	if resp.Headline == "" || resp.Body == "" {
		return types.ContentDraft{}, cost, fmt.Errorf("model returned incomplete draft (headline=%d chars, body=%d chars)",
			len(resp.Headline), len(resp.Body))
	}

	draft := types.ContentDraft{
		Headline: resp.Headline,
		Body:     resp.Body,
		Revision: req.Revision,
	}

	g.log.Info("draft generated",
		zap.String("channel", req.Config.ID),
		zap.Int("revision", draft.Revision),
		zap.String("headline", draft.Headline),
		zap.Float64("dollars", cost.Dollars))

	return draft, cost, nil
}
