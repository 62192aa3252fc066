// Package pipeline drives the generate → review → revise loop for one
// channel run. The Controller is an explicit state machine with the attempt
// index as its loop variable, so the termination bound and the best-effort
// tie-break are unit-testable without mocking a long call sequence. The
// outer loop is strictly sequential: one generation and one panel invocation
// per attempt, never overlapping.
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"draftforge/internal/config"
	"draftforge/internal/gate"
	"draftforge/internal/generator"
	"draftforge/internal/llm"
	"draftforge/internal/patterns"
	"draftforge/internal/review"
	"draftforge/internal/store"
	"draftforge/internal/types"
)

// State is a revision-controller state.
type State string

const (
	StateGenerating State = "generating"
	StateReviewing  State = "reviewing"
	StatePassed     State = "passed"
	StateRevising   State = "revising"
	StateExhausted  State = "exhausted"
)

// Terminal reports whether the state ends the run.
func (s State) Terminal() bool {
	return s == StatePassed || s == StateExhausted
}

// Transition records one state change for diagnostics.
type Transition struct {
	From      State
	To        State
	Attempt   int
	Timestamp time.Time
}

// RunInput carries the per-run inputs produced by collaborators: ingested
// source material and the rendered style fingerprint.
type RunInput struct {
	Sources      []types.SourceMaterial
	StyleProfile string
}

// Controller owns one channel's revision loop, its cost ledger, and the
// post-run side effects (history, learned patterns).
type Controller struct {
	mu sync.RWMutex

	cfg    config.ChannelConfig
	gen    *generator.Generator
	panel  *review.Panel
	client llm.Client

	patternRepo  *patterns.Repository
	historyStore *store.HistoryStore

	log *zap.Logger
	now func() time.Time

	// Run state. Reset at the start of every Run.
	state       State
	attempt     int
	totalCost   types.Cost
	attempts    []attemptRecord
	transitions []Transition
}

// attemptRecord pairs one draft with its gate decision, so exhaustion can
// pick the best-scoring attempt rather than the most recent.
type attemptRecord struct {
	draft    types.ContentDraft
	decision types.QualityGateDecision
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the controller's time source. Tests use this to pin
// the pattern activity window.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// New creates a Controller for one channel.
func New(cfg config.ChannelConfig, gen *generator.Generator, panel *review.Panel, client llm.Client, patternRepo *patterns.Repository, historyStore *store.HistoryStore, log *zap.Logger, opts ...Option) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Controller{
		cfg:          cfg,
		gen:          gen,
		panel:        panel,
		client:       client,
		patternRepo:  patternRepo,
		historyStore: historyStore,
		log:          log.Named("pipeline"),
		now:          time.Now,
		state:        StateGenerating,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Attempt returns the current attempt index.
func (c *Controller) Attempt() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.attempt
}

// Transitions returns the recorded state history.
func (c *Controller) Transitions() []Transition {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Transition{}, c.transitions...)
}

// TotalCost returns the cost accumulated so far. Costs are recorded as each
// call returns, so a cancelled run still reports an accurate partial total.
func (c *Controller) TotalCost() types.Cost {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.totalCost
}

func (c *Controller) transition(to State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transitions = append(c.transitions, Transition{
		From:      c.state,
		To:        to,
		Attempt:   c.attempt,
		Timestamp: c.now(),
	})
	c.state = to
}

func (c *Controller) addCost(cost types.Cost) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.totalCost = c.totalCost.Add(cost)
}

// Run executes the full loop for one batch of source material and returns
// the pipeline result. Configuration problems abort before any paid call;
// every later abort path still returns the cost already incurred.
func (c *Controller) Run(ctx context.Context, in RunInput) (types.PipelineResult, error) {
	// Fail fast, fail free: validation happens before the first model call.
	if err := c.cfg.Validate(review.ScoredDimensions(c.panel.Agents())); err != nil {
		return types.PipelineResult{}, err
	}

	c.mu.Lock()
	c.state = StateGenerating
	c.attempt = 0
	c.totalCost = types.Cost{}
	c.attempts = nil
	c.transitions = nil
	c.mu.Unlock()

	activePhrases, avoidance, err := c.loadChannelState(ctx)
	if err != nil {
		// Store reads precede any model call; no cost incurred yet.
		return types.PipelineResult{}, err
	}

	maxRevisions := c.cfg.QualityGate.MaxRevisions
	var feedback, suggestions []string
	var prev *types.ContentDraft

	for {
		if err := ctx.Err(); err != nil {
			return c.partialResult(), err
		}

		switch c.State() {
		case StateGenerating:
			req := generator.Request{
				Config:           c.cfg,
				Sources:          in.Sources,
				StyleProfile:     in.StyleProfile,
				HistoryAvoidance: avoidance,
				Revision:         c.attempt,
				Feedback:         feedback,
				Suggestions:      suggestions,
				ExtraForbidden:   activePhrases,
				PreviousDraft:    prev,
			}

			draft, cost, err := c.gen.Generate(ctx, req)
			c.addCost(cost)
			if err != nil {
				// Transient: the invoking infrastructure may retry the
				// call; the cost so far is already on the ledger.
				return c.partialResult(), fmt.Errorf("attempt %d: %w", c.attempt, err)
			}

			prev = &draft
			c.transition(StateReviewing)

		case StateReviewing:
			outcomes := c.panel.Review(ctx, *prev, c.cfg, in.Sources, c.addCost)
			decision := gate.Decide(outcomes, c.cfg.QualityGate)

			c.mu.Lock()
			c.attempts = append(c.attempts, attemptRecord{draft: *prev, decision: decision})
			c.mu.Unlock()

			c.log.Info("quality gate decided",
				zap.String("channel", c.cfg.ID),
				zap.Int("attempt", c.attempt),
				zap.Bool("passed", decision.Passed),
				zap.Strings("missing", decision.Missing),
				zap.Int("score_sum", decision.ScoreSum()))

			switch {
			case decision.Passed:
				c.transition(StatePassed)
			case c.attempt < maxRevisions:
				c.transition(StateRevising)
			default:
				c.transition(StateExhausted)
			}

		case StateRevising:
			last := c.lastDecision()
			feedback = last.Feedback
			suggestions = last.Suggestions

			c.mu.Lock()
			c.attempt++
			c.mu.Unlock()
			c.transition(StateGenerating)

		case StatePassed:
			return c.finalize(ctx, true)

		case StateExhausted:
			return c.finalize(ctx, false)
		}
	}
}

// loadChannelState reads the learned-pattern set and publication history.
func (c *Controller) loadChannelState(ctx context.Context) (activePhrases []string, avoidance string, err error) {
	if c.patternRepo != nil {
		all, err := c.patternRepo.Load(ctx, c.cfg.ID)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load learned patterns: %w", err)
		}
		activePhrases = patterns.ActivePhrases(all, c.now())
	}

	if c.historyStore != nil {
		entries, err := c.historyStore.Load(ctx, c.cfg.ID)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load history: %w", err)
		}
		avoidance = store.AvoidanceText(entries, 10)
	}

	return activePhrases, avoidance, nil
}

func (c *Controller) lastDecision() types.QualityGateDecision {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.attempts[len(c.attempts)-1].decision
}

// partialResult reports whatever cost was incurred before an abort.
func (c *Controller) partialResult() types.PipelineResult {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return types.PipelineResult{
		RevisionCount: c.attempt,
		TotalCost:     c.totalCost,
	}
}

// finalize assembles the terminal result and applies post-run side effects.
func (c *Controller) finalize(ctx context.Context, passed bool) (types.PipelineResult, error) {
	record := c.bestAttempt(passed)

	result := types.PipelineResult{
		FinalDraft:    &record.draft,
		Passed:        passed,
		RevisionCount: record.draft.Revision,
		QualityScores: record.decision.Scores(),
	}
	if !passed {
		result.BelowThreshold = gate.BelowThreshold(record.decision, c.cfg.QualityGate)
		// Dimensions whose agent never settled are also still unproven.
		for _, agentName := range record.decision.Missing {
			result.BelowThreshold = append(result.BelowThreshold, c.missingDimensions(agentName)...)
		}
	}

	if passed && c.historyStore != nil {
		entry := store.HistoryEntry{
			Headline:  record.draft.Headline,
			Focus:     c.cfg.Topic.Focus,
			CreatedAt: c.now(),
		}
		if err := c.historyStore.Append(ctx, c.cfg.ID, entry); err != nil {
			c.log.Warn("failed to record history", zap.String("channel", c.cfg.ID), zap.Error(err))
		}
	}

	c.learnPatterns(ctx, record.draft)

	c.mu.RLock()
	result.TotalCost = c.totalCost
	c.mu.RUnlock()

	c.log.Info("run finished",
		zap.String("channel", c.cfg.ID),
		zap.Bool("passed", passed),
		zap.Int("revisions", result.RevisionCount),
		zap.Float64("dollars", result.TotalCost.Dollars))

	return result, nil
}

// bestAttempt returns the attempt to hand back: on a pass, the last attempt
// (the one that passed); on exhaustion, the attempt whose review scores sum
// highest across all dimensions, earliest attempt winning ties.
func (c *Controller) bestAttempt(passed bool) attemptRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if passed {
		return c.attempts[len(c.attempts)-1]
	}

	best := c.attempts[0]
	bestSum := best.decision.ScoreSum()
	for _, rec := range c.attempts[1:] {
		if sum := rec.decision.ScoreSum(); sum > bestSum {
			best = rec
			bestSum = sum
		}
	}
	return best
}

// missingDimensions lists the configured dimensions scored only by the named
// agent, which an absent result leaves unproven.
func (c *Controller) missingDimensions(agentName string) []string {
	var dims []string
	for _, a := range c.panel.Agents() {
		if a.Name() != agentName {
			continue
		}
		for _, d := range a.Dimensions() {
			if _, configured := c.cfg.QualityGate.MinScores[d]; configured && !c.cfg.QualityGate.IsInertDimension(d) {
				dims = append(dims, d)
			}
		}
	}
	return dims
}

// learnPatterns runs the post-run analysis step and merges what it finds.
// Pattern learning is a side effect a run survives without; failures are
// logged, but their cost still lands on the ledger.
func (c *Controller) learnPatterns(ctx context.Context, draft types.ContentDraft) {
	if c.patternRepo == nil || c.client == nil {
		return
	}

	discovered, cost, err := patterns.Discover(ctx, c.client, draft)
	c.addCost(cost)
	if err != nil {
		c.log.Warn("pattern discovery failed", zap.String("channel", c.cfg.ID), zap.Error(err))
		return
	}

	existing, err := c.patternRepo.Load(ctx, c.cfg.ID)
	if err != nil {
		c.log.Warn("failed to reload patterns", zap.String("channel", c.cfg.ID), zap.Error(err))
		return
	}

	merged := patterns.MergeDiscovered(existing, discovered, c.now())
	if err := c.patternRepo.Save(ctx, c.cfg.ID, merged); err != nil {
		c.log.Warn("failed to save patterns", zap.String("channel", c.cfg.ID), zap.Error(err))
		return
	}

	c.log.Debug("patterns merged",
		zap.String("channel", c.cfg.ID),
		zap.Int("discovered", len(discovered)),
		zap.Int("total", len(merged)))
}
