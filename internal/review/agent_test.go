package review

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"draftforge/internal/config"
	"draftforge/internal/types"
)

type fakeClient struct {
	payload string
	cost    types.Cost
	err     error

	lastUser string
}

func (f *fakeClient) Complete(ctx context.Context, system, user string) (string, types.Cost, error) {
	f.lastUser = user
	return f.payload, f.cost, f.err
}

func (f *fakeClient) CompleteJSON(ctx context.Context, system, user string, out any) (types.Cost, error) {
	f.lastUser = user
	if f.err != nil {
		return f.cost, f.err
	}
	if err := json.Unmarshal([]byte(f.payload), out); err != nil {
		return f.cost, err
	}
	return f.cost, nil
}

func gateConfig() config.ChannelConfig {
	return config.ChannelConfig{
		ID:    "ch1",
		Topic: config.TopicConfig{Domain: "tech", Focus: "infra"},
		Voice: config.VoiceConfig{Name: "V", Persona: "P"},
		QualityGate: config.QualityGateConfig{
			MinScores: map[string]int{DimHookStrength: 7, DimEngagement: 6},
		},
	}
}

func TestScoringAgentEvaluate(t *testing.T) {
	client := &fakeClient{
		payload: `{"scores":{"hook_strength":8,"engagement":7,"volunteered_extra":2},
			"feedback":["solid opening"],"suggestions":["tighten the close"]}`,
		cost: types.Cost{InputTokens: 700, OutputTokens: 120},
	}
	agent := &scoringAgent{
		name:       AgentHook,
		dimensions: []string{DimHookStrength, DimEngagement},
		rubric:     "Assess the hook.",
		client:     client,
	}

	result, cost, err := agent.Evaluate(context.Background(), types.ContentDraft{Headline: "H", Body: "B"}, gateConfig(), nil)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if !result.Passed {
		t.Error("scores above minimums must pass")
	}
	if len(result.Scores) != 2 {
		t.Errorf("Scores = %v; only declared dimensions count", result.Scores)
	}
	if cost.InputTokens != 700 {
		t.Errorf("cost = %+v", cost)
	}
}

func TestScoringAgentFailsOwnThreshold(t *testing.T) {
	client := &fakeClient{payload: `{"scores":{"hook_strength":6,"engagement":9}}`}
	agent := &scoringAgent{name: AgentHook, dimensions: []string{DimHookStrength, DimEngagement}, client: client}

	result, _, err := agent.Evaluate(context.Background(), types.ContentDraft{}, gateConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.Passed {
		t.Error("hook_strength 6 < minimum 7 must fail the agent")
	}
}

func TestScoringAgentUnconfiguredDimensionDoesNotBlock(t *testing.T) {
	client := &fakeClient{payload: `{"scores":{"naturalness":2}}`}
	agent := &scoringAgent{name: AgentNaturalness, dimensions: []string{DimNaturalness}, client: client}

	// The gate config sets no minimum for naturalness.
	result, _, err := agent.Evaluate(context.Background(), types.ContentDraft{}, gateConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Passed {
		t.Error("dimension without a configured minimum must not block")
	}
}

func TestScoringAgentMissingDimensionIsError(t *testing.T) {
	client := &fakeClient{payload: `{"scores":{"hook_strength":8}}`}
	agent := &scoringAgent{name: AgentHook, dimensions: []string{DimHookStrength, DimEngagement}, client: client}

	_, _, err := agent.Evaluate(context.Background(), types.ContentDraft{}, gateConfig(), nil)
	if err == nil || !strings.Contains(err.Error(), DimEngagement) {
		t.Errorf("error = %v, want missing-dimension error naming %s", err, DimEngagement)
	}
}

func TestClampScore(t *testing.T) {
	for in, want := range map[int]int{-5: 1, 0: 1, 1: 1, 7: 7, 10: 10, 42: 10} {
		if got := clampScore(in); got != want {
			t.Errorf("clampScore(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestSourceMaterialOnlyForSourceAgents(t *testing.T) {
	sources := []types.SourceMaterial{{Title: "Paper", Body: "the raw facts"}}
	draft := types.ContentDraft{Headline: "H", Body: "B"}

	without := &fakeClient{payload: `{"scores":{"structure":7}}`}
	agent := &scoringAgent{name: AgentStructure, dimensions: []string{DimStructure}, client: without}
	if _, _, err := agent.Evaluate(context.Background(), draft, gateConfig(), sources); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(without.lastUser, "the raw facts") {
		t.Error("non-source agent prompt includes source material")
	}

	with := &fakeClient{payload: `{"scores":{"factual_accuracy":7}}`}
	factual := &scoringAgent{name: AgentFactual, dimensions: []string{DimFactualAccuracy}, includeSource: true, client: with}
	if _, _, err := factual.Evaluate(context.Background(), draft, gateConfig(), sources); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(with.lastUser, "the raw facts") {
		t.Error("source agent prompt missing source material")
	}
}

func TestScoredDimensions(t *testing.T) {
	dims := ScoredDimensions(DefaultAgents(&fakeClient{}))
	want := []string{
		DimStructure, DimReadability, DimVoiceMatch, DimFactualAccuracy,
		DimSourceCoverage, DimHookStrength, DimEngagement, DimNaturalness,
	}
	if len(dims) != len(want) {
		t.Fatalf("ScoredDimensions = %v, want %v", dims, want)
	}
	for i := range want {
		if dims[i] != want[i] {
			t.Errorf("dims[%d] = %s, want %s", i, dims[i], want[i])
		}
	}
}
