package review

import "draftforge/internal/llm"

// Built-in agent names. Channel configs reference these in optional_agents.
const (
	AgentStructure   = "structure"
	AgentReadability = "readability"
	AgentVoice       = "voice"
	AgentFactual     = "factual"
	AgentCoverage    = "coverage"
	AgentHook        = "hook"
	AgentNaturalness = "naturalness"
)

// Built-in dimension names. Channel quality gates key thresholds on these.
const (
	DimStructure       = "structure"
	DimReadability     = "readability"
	DimVoiceMatch      = "voice_match"
	DimFactualAccuracy = "factual_accuracy"
	DimSourceCoverage  = "source_coverage"
	DimHookStrength    = "hook_strength"
	DimEngagement      = "engagement"
	DimNaturalness     = "naturalness"
)

// DefaultAgents returns the standard review panel registry. Agents are
// independent; order here is the registration order the gate preserves when
// merging feedback.
func DefaultAgents(client llm.Client) []Agent {
	return []Agent{
		&scoringAgent{
			name:       AgentStructure,
			dimensions: []string{DimStructure},
			rubric: "Assess the draft's structure: a clear arc from opening to close, " +
				"logical section ordering, paragraphs that each carry one idea, and " +
				"transitions that earn their place.",
			client: client,
		},
		&scoringAgent{
			name:       AgentReadability,
			dimensions: []string{DimReadability},
			rubric: "Assess readability: sentence length variety, plain wording over " +
				"jargon, scannability, and whether a distracted reader could follow it.",
			client: client,
		},
		&scoringAgent{
			name:       AgentVoice,
			dimensions: []string{DimVoiceMatch},
			rubric: "Assess how faithfully the draft matches the channel voice described " +
				"below: persona, tone, characteristic expressions, and vocabulary. " +
				"Penalize generic interchangeable prose.",
			client: client,
		},
		&scoringAgent{
			name:          AgentFactual,
			dimensions:    []string{DimFactualAccuracy},
			rubric:        "Check every factual claim in the draft against the provided source material. Penalize claims the sources do not support and any invented specifics.",
			includeSource: true,
			client:        client,
		},
		&scoringAgent{
			name:          AgentCoverage,
			dimensions:    []string{DimSourceCoverage},
			rubric:        "Assess how completely the draft covers the important points in the source material. Penalize cherry-picking one source while ignoring the rest.",
			includeSource: true,
			client:        client,
		},
		&scoringAgent{
			name:       AgentHook,
			dimensions: []string{DimHookStrength, DimEngagement},
			rubric: "Assess the opening hook and overall engagement: does the first " +
				"paragraph give a reason to keep reading, and does the piece sustain it?",
			client: client,
		},
		&scoringAgent{
			name:       AgentNaturalness,
			dimensions: []string{DimNaturalness},
			rubric: "Assess whether the prose reads as naturally written: varied sentence " +
				"openings, no stock AI phrasing, no uniform paragraph shapes, no " +
				"suspiciously even rhythm.",
			client: client,
		},
	}
}

// ScoredDimensions returns every dimension the given registry scores, in
// registration order. Config validation checks thresholds against this.
func ScoredDimensions(agents []Agent) []string {
	var dims []string
	seen := make(map[string]bool)
	for _, a := range agents {
		for _, d := range a.Dimensions() {
			if !seen[d] {
				seen[d] = true
				dims = append(dims, d)
			}
		}
	}
	return dims
}
