package review

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"draftforge/internal/config"
	"draftforge/internal/types"
)

// Outcome is one agent's settled result: either a result or an error, never
// both. A failed agent blocks nothing here; the gate decides what an absent
// result means.
type Outcome struct {
	Agent  string
	Result *types.ReviewAgentResult
	Err    error
}

// Panel fans review agents out concurrently over one draft and waits for
// every agent to settle before returning. No agent observes another's
// output.
type Panel struct {
	agents []Agent
	log    *zap.Logger
}

// NewPanel creates a panel over the given registry. A nil logger is replaced
// with a nop logger.
func NewPanel(agents []Agent, log *zap.Logger) *Panel {
	if log == nil {
		log = zap.NewNop()
	}
	return &Panel{agents: agents, log: log.Named("panel")}
}

// Agents returns the registry in registration order.
func (p *Panel) Agents() []Agent {
	out := make([]Agent, len(p.agents))
	copy(out, p.agents)
	return out
}

// Review runs every agent concurrently and returns outcomes in registration
// order. onCost, if non-nil, is invoked synchronously as each agent call
// returns — success or failure — so a cancelled run still accounts for every
// call already made; invocations are serialized.
func (p *Panel) Review(ctx context.Context, draft types.ContentDraft, cfg config.ChannelConfig, sources []types.SourceMaterial, onCost func(types.Cost)) []Outcome {
	outcomes := make([]Outcome, len(p.agents))

	var costMu sync.Mutex
	recordCost := func(c types.Cost) {
		if onCost == nil {
			return
		}
		costMu.Lock()
		defer costMu.Unlock()
		onCost(c)
	}

	// Settle-all join: agents never return an error to the group, so one
	// failure cannot cancel its siblings.
	g := new(errgroup.Group)
	for i, agent := range p.agents {
		i, agent := i, agent
		g.Go(func() error {
			result, cost, err := agent.Evaluate(ctx, draft, cfg, sources)
			recordCost(cost)

			if err != nil {
				p.log.Warn("review agent failed",
					zap.String("agent", agent.Name()),
					zap.Int("revision", draft.Revision),
					zap.Error(err))
				outcomes[i] = Outcome{Agent: agent.Name(), Err: err}
				return nil
			}

			p.log.Debug("review agent settled",
				zap.String("agent", agent.Name()),
				zap.Int("revision", draft.Revision),
				zap.Bool("passed", result.Passed))
			outcomes[i] = Outcome{Agent: agent.Name(), Result: &result}
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}
