package style

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestAnalyzeSingleSample(t *testing.T) {
	p := Analyze([]string{"We ship code. Do you test it? I don't know."})

	if p.SampleCount != 1 {
		t.Fatalf("SampleCount = %d, want 1", p.SampleCount)
	}

	// Three sentences of 3, 4, 3 words.
	if got, want := p.SentenceLengthMean, 10.0/3.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("SentenceLengthMean = %f, want %f", got, want)
	}
	if got, want := p.QuestionRate, 1.0/3.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("QuestionRate = %f, want %f", got, want)
	}

	// 10 words total: "don't" is one contraction, "we"/"i" are first person,
	// "you" is second person.
	if got := p.ContractionRate; math.Abs(got-0.1) > 1e-9 {
		t.Errorf("ContractionRate = %f, want 0.1", got)
	}
	if got := p.FirstPersonRate; math.Abs(got-0.2) > 1e-9 {
		t.Errorf("FirstPersonRate = %f, want 0.2", got)
	}
	if got := p.SecondPersonRate; math.Abs(got-0.1) > 1e-9 {
		t.Errorf("SecondPersonRate = %f, want 0.1", got)
	}
	if got := p.VocabularyRichness; math.Abs(got-1.0) > 1e-9 {
		t.Errorf("VocabularyRichness = %f, want 1.0 (all words unique)", got)
	}

	if p.OpeningPatterns["we ship code"] != 1 {
		t.Errorf("opening shape missing: %v", p.OpeningPatterns)
	}
	if p.ClosingPatterns["i don't know"] != 1 {
		t.Errorf("closing shape missing: %v", p.ClosingPatterns)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	samples := []string{
		"Kubernetes isn't magic. It's a scheduler with opinions.\n\nYou feed it declarative state. It reconciles reality toward it.",
		"Have you ever watched a rollout fail at 2am? We have. Here's what we learned.",
	}

	a := Analyze(samples)
	b := Analyze(samples)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("Analyze not deterministic (-first +second):\n%s", diff)
	}
}

func TestAnalyzeSkipsEmptySamples(t *testing.T) {
	p := Analyze([]string{"", "   \n  ", "One real sample here."})
	if p.SampleCount != 1 {
		t.Errorf("SampleCount = %d, want 1", p.SampleCount)
	}
}

func TestMergeWeightedBySampleCount(t *testing.T) {
	small := Profile{SentenceLengthMean: 10, VocabularyRichness: 0.2, SampleCount: 1,
		OpeningPatterns: map[string]int{"a b c": 1}, ClosingPatterns: map[string]int{}}
	large := Profile{SentenceLengthMean: 20, VocabularyRichness: 0.6, SampleCount: 9,
		OpeningPatterns: map[string]int{"a b c": 4}, ClosingPatterns: map[string]int{}}

	merged := Merge([]Profile{small, large})

	// (10*1 + 20*9) / 10 — the 9-sample profile dominates.
	if got := merged.SentenceLengthMean; math.Abs(got-19.0) > 1e-9 {
		t.Errorf("merged mean = %f, want 19.0", got)
	}
	if got, want := merged.VocabularyRichness, (0.2*1+0.6*9)/10; math.Abs(got-want) > 1e-9 {
		t.Errorf("merged richness = %f, want %f", got, want)
	}
	if merged.SampleCount != 10 {
		t.Errorf("merged SampleCount = %d, want 10", merged.SampleCount)
	}
	if merged.OpeningPatterns["a b c"] != 5 {
		t.Errorf("pattern counts not accumulated: %v", merged.OpeningPatterns)
	}
}

func TestMergePullsTowardLargerCorpus(t *testing.T) {
	ten := Profile{SentenceLengthMean: 10, SampleCount: 10,
		OpeningPatterns: map[string]int{}, ClosingPatterns: map[string]int{}}
	ninety := Profile{SentenceLengthMean: 20, SampleCount: 90,
		OpeningPatterns: map[string]int{}, ClosingPatterns: map[string]int{}}

	merged := Merge([]Profile{ten, ninety})

	unweighted := (ten.SentenceLengthMean + ninety.SentenceLengthMean) / 2
	distMerged := math.Abs(merged.SentenceLengthMean - ninety.SentenceLengthMean)
	distUnweighted := math.Abs(unweighted - ninety.SentenceLengthMean)
	if distMerged >= distUnweighted {
		t.Errorf("merged mean %f not pulled toward the 90-sample profile (unweighted %f)",
			merged.SentenceLengthMean, unweighted)
	}
}

func TestMergeSingleProfileIsIdentity(t *testing.T) {
	p := Analyze([]string{"Do you see it? We certainly don't. Not yet, anyway."})

	merged := Merge([]Profile{p})
	if diff := cmp.Diff(p, merged); diff != "" {
		t.Errorf("Merge of one profile changed it (-orig +merged):\n%s", diff)
	}
	// And the rendered forms are byte-identical in both modes.
	for _, mode := range []Mode{ModeCompact, ModeVerbose} {
		if Format(p, mode) != Format(merged, mode) {
			t.Errorf("Format(%s) differs after single-profile merge", mode)
		}
	}

	// The returned profile shares no map state with the input.
	merged.OpeningPatterns["mutated shape"] = 99
	if _, leaked := p.OpeningPatterns["mutated shape"]; leaked {
		t.Error("Merge returned a profile sharing maps with its input")
	}
}

func TestMergeEmpty(t *testing.T) {
	merged := Merge(nil)
	if merged.SampleCount != 0 {
		t.Errorf("SampleCount = %d, want 0", merged.SampleCount)
	}
	if merged.OpeningPatterns == nil || merged.ClosingPatterns == nil {
		t.Error("empty merge must still return usable maps")
	}
}

func TestMergeOrderIndependentForContinuousFeatures(t *testing.T) {
	a := Profile{SentenceLengthMean: 12, QuestionRate: 0.1, SampleCount: 3,
		OpeningPatterns: map[string]int{}, ClosingPatterns: map[string]int{}}
	b := Profile{SentenceLengthMean: 18, QuestionRate: 0.3, SampleCount: 7,
		OpeningPatterns: map[string]int{}, ClosingPatterns: map[string]int{}}

	ab := Merge([]Profile{a, b})
	ba := Merge([]Profile{b, a})
	if diff := cmp.Diff(ab, ba, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("merge order changed result (-ab +ba):\n%s", diff)
	}
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"One. Two! Three?", []string{"One.", "Two!", "Three?"}},
		{"Trailing clause without period", []string{"Trailing clause without period"}},
		{"Ends mid. And then some", []string{"Ends mid.", "And then some"}},
	}
	for _, tt := range tests {
		got := splitSentences(tt.in)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("splitSentences(%q) (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestSentenceShape(t *testing.T) {
	if got := sentenceShape("Here's the thing about queues."); got != "here's the thing" {
		t.Errorf("sentenceShape = %q", got)
	}
	if got := sentenceShape("Short one."); got != "short one" {
		t.Errorf("short sentenceShape = %q", got)
	}
}
