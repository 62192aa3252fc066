// Package config defines channel and pipeline configuration for draftforge.
// Configuration is loaded from YAML files and validated before any paid
// model call is made.
package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ChannelConfig describes one configured content stream: its topic, voice,
// quality thresholds, and target length. Immutable for the duration of a run.
type ChannelConfig struct {
	ID              string            `yaml:"id" json:"id"`
	ContentType     string            `yaml:"content_type" json:"contentType"`
	Topic           TopicConfig       `yaml:"topic" json:"topic"`
	Voice           VoiceConfig       `yaml:"voice" json:"voice"`
	QualityGate     QualityGateConfig `yaml:"quality_gate" json:"qualityGate"`
	TargetWordCount int               `yaml:"target_word_count" json:"targetWordCount"`
}

// TopicConfig scopes what the channel writes about.
type TopicConfig struct {
	Domain      string   `yaml:"domain" json:"domain"`
	Focus       string   `yaml:"focus" json:"focus"`
	Keywords    []string `yaml:"keywords" json:"keywords"`
	Constraints []string `yaml:"constraints" json:"constraints"`
}

// VoiceConfig defines the writing persona drafts are generated in.
type VoiceConfig struct {
	Name           string           `yaml:"name" json:"name"`
	Persona        string           `yaml:"persona" json:"persona"`
	VerbalTics     []string         `yaml:"verbal_tics" json:"verbalTics"`
	Vocabulary     VocabularyConfig `yaml:"vocabulary" json:"vocabulary"`
	Tone           string           `yaml:"tone" json:"tone"`
	ExampleContent []string         `yaml:"example_content" json:"exampleContent"`
}

// VocabularyConfig lists preferred and forbidden vocabulary for the voice.
type VocabularyConfig struct {
	Preferred []string `yaml:"preferred" json:"preferred"`
	Forbidden []string `yaml:"forbidden" json:"forbidden"`
}

// QualityGateConfig holds the per-dimension minimum scores and the revision
// budget. MinScores keys must map to a dimension some registered review agent
// scores, unless listed in InertDimensions.
type QualityGateConfig struct {
	MinScores      map[string]int `yaml:"min_scores" json:"minScores"`
	MaxRevisions   int            `yaml:"max_revisions" json:"maxRevisions"`
	OptionalAgents []string       `yaml:"optional_agents" json:"optionalAgents"`

	// InertDimensions names threshold keys intentionally not wired to any
	// agent. They are ignored by the gate rather than rejected at load time.
	InertDimensions []string `yaml:"inert_dimensions" json:"inertDimensions"`
}

// IsOptionalAgent reports whether an absent result from the named agent
// should not block the gate.
func (q QualityGateConfig) IsOptionalAgent(name string) bool {
	for _, a := range q.OptionalAgents {
		if a == name {
			return true
		}
	}
	return false
}

// IsInertDimension reports whether the named threshold key is declared inert.
func (q QualityGateConfig) IsInertDimension(dim string) bool {
	for _, d := range q.InertDimensions {
		if d == dim {
			return true
		}
	}
	return false
}

// LoadChannel reads and parses a channel config from a YAML file.
// The result is not validated; call Validate before running a pipeline.
func LoadChannel(path string) (*ChannelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read channel config: %w", err)
	}

	var cfg ChannelConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse channel config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the channel config against the dimensions the registered
// review agents actually score. It returns a *ValidationError naming every
// problem found, so a bad config aborts before any cost is incurred.
func (c *ChannelConfig) Validate(scoredDimensions []string) error {
	verr := &ValidationError{}

	if c.ID == "" {
		verr.add("channel id is required")
	}
	if c.Voice.Name == "" {
		verr.add("voice.name is required")
	}
	if c.Voice.Persona == "" {
		verr.add("voice.persona is required")
	}
	if len(c.QualityGate.MinScores) == 0 {
		verr.add("quality_gate.min_scores must not be empty")
	}
	if c.QualityGate.MaxRevisions < 0 {
		verr.add("quality_gate.max_revisions must be >= 0")
	}

	scored := make(map[string]bool, len(scoredDimensions))
	for _, d := range scoredDimensions {
		scored[d] = true
	}

	// Deterministic error order regardless of map iteration.
	dims := make([]string, 0, len(c.QualityGate.MinScores))
	for dim := range c.QualityGate.MinScores {
		dims = append(dims, dim)
	}
	sort.Strings(dims)

	for _, dim := range dims {
		min := c.QualityGate.MinScores[dim]
		if min < 1 || min > 10 {
			verr.add(fmt.Sprintf("quality_gate.min_scores[%s] must be in 1..10, got %d", dim, min))
		}
		if !scored[dim] && !c.QualityGate.IsInertDimension(dim) {
			verr.add(fmt.Sprintf("quality_gate.min_scores[%s] is not scored by any registered agent; list it under inert_dimensions if intentional", dim))
		}
	}

	if verr.Empty() {
		return nil
	}
	return verr
}
