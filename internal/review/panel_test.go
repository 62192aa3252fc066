package review

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"draftforge/internal/config"
	"draftforge/internal/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// stubAgent is a scripted panel member.
type stubAgent struct {
	name  string
	dims  []string
	score int
	cost  types.Cost
	err   error
	delay time.Duration

	mu    sync.Mutex
	calls int
}

func (s *stubAgent) Name() string         { return s.name }
func (s *stubAgent) Dimensions() []string { return s.dims }

func (s *stubAgent) Evaluate(ctx context.Context, draft types.ContentDraft, cfg config.ChannelConfig, sources []types.SourceMaterial) (types.ReviewAgentResult, types.Cost, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return types.ReviewAgentResult{}, s.cost, ctx.Err()
		}
	}
	if s.err != nil {
		return types.ReviewAgentResult{}, s.cost, s.err
	}

	scores := make(map[string]int, len(s.dims))
	for _, d := range s.dims {
		scores[d] = s.score
	}
	result := types.ReviewAgentResult{Agent: s.name, Scores: scores, Passed: true}
	return result, s.cost, nil
}

func TestPanelSettlesAllAgents(t *testing.T) {
	broken := &stubAgent{name: "factual", dims: []string{DimFactualAccuracy},
		cost: types.Cost{InputTokens: 50}, err: errors.New("timeout")}
	slow := &stubAgent{name: "structure", dims: []string{DimStructure}, score: 8,
		delay: 20 * time.Millisecond, cost: types.Cost{InputTokens: 100}}
	fast := &stubAgent{name: "hook", dims: []string{DimHookStrength}, score: 7,
		cost: types.Cost{InputTokens: 80}}

	var total types.Cost
	p := NewPanel([]Agent{broken, slow, fast}, nil)
	outcomes := p.Review(context.Background(), types.ContentDraft{}, config.ChannelConfig{}, nil,
		func(c types.Cost) { total = total.Add(c) })

	if len(outcomes) != 3 {
		t.Fatalf("got %d outcomes, want 3", len(outcomes))
	}

	// Registration order, regardless of completion order.
	if outcomes[0].Agent != "factual" || outcomes[1].Agent != "structure" || outcomes[2].Agent != "hook" {
		t.Errorf("outcome order = %s,%s,%s", outcomes[0].Agent, outcomes[1].Agent, outcomes[2].Agent)
	}

	// One failure never cancels its siblings.
	if outcomes[0].Err == nil || outcomes[0].Result != nil {
		t.Error("failed agent must settle with an error and no result")
	}
	if outcomes[1].Result == nil || outcomes[2].Result == nil {
		t.Error("healthy agents must settle with results despite a sibling failure")
	}
	if slow.calls != 1 || fast.calls != 1 {
		t.Errorf("calls = %d/%d, want 1/1", slow.calls, fast.calls)
	}

	// Cost is accounted for every call, failed ones included.
	if total.InputTokens != 230 {
		t.Errorf("total input tokens = %d, want 230", total.InputTokens)
	}
}

func TestPanelNilCostCallback(t *testing.T) {
	agent := &stubAgent{name: "structure", dims: []string{DimStructure}, score: 7}
	p := NewPanel([]Agent{agent}, nil)
	outcomes := p.Review(context.Background(), types.ContentDraft{}, config.ChannelConfig{}, nil, nil)
	if outcomes[0].Result == nil {
		t.Fatal("expected a result")
	}
}

func TestPanelContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	hanging := &stubAgent{name: "structure", dims: []string{DimStructure}, score: 8,
		delay: time.Minute, cost: types.Cost{InputTokens: 10}}
	p := NewPanel([]Agent{hanging}, nil)

	var total types.Cost
	done := make(chan []Outcome, 1)
	go func() {
		done <- p.Review(ctx, types.ContentDraft{}, config.ChannelConfig{}, nil,
			func(c types.Cost) { total = total.Add(c) })
	}()

	cancel()
	select {
	case outcomes := <-done:
		if outcomes[0].Err == nil {
			t.Error("cancelled agent must settle with an error")
		}
		// Partial cost still recorded.
		if total.InputTokens != 10 {
			t.Errorf("cancelled call cost = %d, want 10", total.InputTokens)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("panel did not settle after cancellation")
	}
}
