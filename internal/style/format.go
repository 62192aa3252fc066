package style

import (
	"fmt"
	"sort"
	"strings"
)

// Mode selects the rendering of a profile.
type Mode string

const (
	// ModeCompact is a short human-readable summary.
	ModeCompact Mode = "compact"
	// ModeVerbose is a block meant for injection into a generation prompt.
	ModeVerbose Mode = "verbose"
)

// Format renders a profile. It is a pure projection: idempotent, no new
// computation, no side effects.
func Format(p Profile, mode Mode) string {
	switch mode {
	case ModeVerbose:
		return formatVerbose(p)
	default:
		return formatCompact(p)
	}
}

func formatCompact(p Profile) string {
	return fmt.Sprintf(
		"samples=%d sentences(mean=%.1f var=%.1f) para_variation=%.2f richness=%.3f questions=%.2f contractions=%.3f first_person=%.3f second_person=%.3f",
		p.SampleCount,
		p.SentenceLengthMean,
		p.SentenceLengthVariance,
		p.ParagraphLengthVariation,
		p.VocabularyRichness,
		p.QuestionRate,
		p.ContractionRate,
		p.FirstPersonRate,
		p.SecondPersonRate,
	)
}

func formatVerbose(p Profile) string {
	var sb strings.Builder

	sb.WriteString("WRITING STYLE PROFILE\n")
	fmt.Fprintf(&sb, "- Average sentence length: %.1f words (variance %.1f), so vary rhythm accordingly\n",
		p.SentenceLengthMean, p.SentenceLengthVariance)
	fmt.Fprintf(&sb, "- Paragraph length variation: %.2f (0 = uniform, higher = uneven pacing)\n",
		p.ParagraphLengthVariation)
	fmt.Fprintf(&sb, "- Vocabulary richness (type-token ratio): %.3f\n", p.VocabularyRichness)
	fmt.Fprintf(&sb, "- Interrogative sentences: %.0f%% of sentences\n", p.QuestionRate*100)
	fmt.Fprintf(&sb, "- Contractions: %.1f per 100 words\n", p.ContractionRate*100)
	fmt.Fprintf(&sb, "- First-person pronouns: %.1f per 100 words\n", p.FirstPersonRate*100)
	fmt.Fprintf(&sb, "- Second-person pronouns: %.1f per 100 words\n", p.SecondPersonRate*100)

	if tops := topPatterns(p.OpeningPatterns, 3); len(tops) > 0 {
		fmt.Fprintf(&sb, "- Common opening shapes: %s\n", strings.Join(tops, "; "))
	}
	if tops := topPatterns(p.ClosingPatterns, 3); len(tops) > 0 {
		fmt.Fprintf(&sb, "- Common closing shapes: %s\n", strings.Join(tops, "; "))
	}
	fmt.Fprintf(&sb, "(profile built from %d samples)", p.SampleCount)

	return sb.String()
}

// topPatterns returns up to n pattern shapes ordered by frequency then
// alphabetically, so output is stable across runs.
func topPatterns(patterns map[string]int, n int) []string {
	type entry struct {
		shape string
		count int
	}
	entries := make([]entry, 0, len(patterns))
	for shape, count := range patterns {
		if shape == "" {
			continue
		}
		entries = append(entries, entry{shape, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].shape < entries[j].shape
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = fmt.Sprintf("%q (x%d)", e.shape, e.count)
	}
	return out
}
