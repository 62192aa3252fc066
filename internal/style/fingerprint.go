// Package style extracts quantitative writing-style fingerprints from sample
// text. A Profile captures sentence rhythm, vocabulary richness, and
// recurring structural habits; it feeds the generator so drafts land in the
// channel's voice. Fetching and plain-text extraction of remote samples is a
// collaborator concern; only text enters this package.
package style

import (
	"math"
	"regexp"
	"strings"
)

// Profile is a quantitative fingerprint of a writing corpus.
type Profile struct {
	SentenceLengthMean     float64 `json:"sentence_length_mean"`
	SentenceLengthVariance float64 `json:"sentence_length_variance"`

	// ParagraphLengthVariation is the coefficient of variation of paragraph
	// word counts. Higher means more uneven pacing.
	ParagraphLengthVariation float64 `json:"paragraph_length_variation"`

	// VocabularyRichness is the type-token ratio over the corpus.
	VocabularyRichness float64 `json:"vocabulary_richness"`

	QuestionRate     float64 `json:"question_rate"`      // interrogative sentences / sentences
	ContractionRate  float64 `json:"contraction_rate"`   // contractions / words
	FirstPersonRate  float64 `json:"first_person_rate"`  // first-person pronouns / words
	SecondPersonRate float64 `json:"second_person_rate"` // second-person pronouns / words

	// OpeningPatterns and ClosingPatterns count recurring sentence shapes:
	// the first three words of each sample's opening and closing sentence.
	OpeningPatterns map[string]int `json:"opening_patterns"`
	ClosingPatterns map[string]int `json:"closing_patterns"`

	// SampleCount is the number of sample texts this profile was built from.
	// Merge weighting depends on it.
	SampleCount int `json:"sample_count"`
}

var (
	sentenceSplitRe = regexp.MustCompile(`[.!?]+(?:\s+|$)`)
	contractionRe   = regexp.MustCompile(`(?i)\b\w+'(?:t|s|re|ve|ll|d|m)\b`)
	wordCleanRe     = regexp.MustCompile(`^[^\w']+|[^\w']+$`)
)

var firstPersonWords = map[string]bool{
	"i": true, "me": true, "my": true, "mine": true,
	"we": true, "us": true, "our": true, "ours": true,
}

var secondPersonWords = map[string]bool{
	"you": true, "your": true, "yours": true, "yourself": true,
}

// Analyze computes a Profile from an ordered list of sample texts.
// Deterministic: the same samples always produce the same profile.
func Analyze(samples []string) Profile {
	p := Profile{
		OpeningPatterns: make(map[string]int),
		ClosingPatterns: make(map[string]int),
	}

	var (
		sentenceLengths []int
		paragraphLens   []int
		totalWords      int
		uniqueWords     = make(map[string]bool)
		questions       int
		contractions    int
		firstPerson     int
		secondPerson    int
		totalSentences  int
	)

	for _, sample := range samples {
		text := strings.TrimSpace(sample)
		if text == "" {
			continue
		}
		p.SampleCount++

		sentences := splitSentences(text)
		totalSentences += len(sentences)

		for _, s := range sentences {
			n := len(strings.Fields(s))
			if n > 0 {
				sentenceLengths = append(sentenceLengths, n)
			}
			if strings.HasSuffix(strings.TrimSpace(s), "?") {
				questions++
			}
		}

		if len(sentences) > 0 {
			p.OpeningPatterns[sentenceShape(sentences[0])]++
			p.ClosingPatterns[sentenceShape(sentences[len(sentences)-1])]++
		}

		for _, para := range splitParagraphs(text) {
			paragraphLens = append(paragraphLens, len(strings.Fields(para)))
		}

		contractions += len(contractionRe.FindAllString(text, -1))

		for _, w := range strings.Fields(text) {
			word := strings.ToLower(wordCleanRe.ReplaceAllString(w, ""))
			if word == "" {
				continue
			}
			totalWords++
			uniqueWords[word] = true
			if firstPersonWords[word] {
				firstPerson++
			}
			if secondPersonWords[word] {
				secondPerson++
			}
		}
	}

	p.SentenceLengthMean, p.SentenceLengthVariance = meanVariance(sentenceLengths)
	p.ParagraphLengthVariation = coefficientOfVariation(paragraphLens)

	if totalWords > 0 {
		p.VocabularyRichness = float64(len(uniqueWords)) / float64(totalWords)
		p.ContractionRate = float64(contractions) / float64(totalWords)
		p.FirstPersonRate = float64(firstPerson) / float64(totalWords)
		p.SecondPersonRate = float64(secondPerson) / float64(totalWords)
	}
	if totalSentences > 0 {
		p.QuestionRate = float64(questions) / float64(totalSentences)
	}

	return p
}

// Merge combines profiles into one. Continuous features are averaged weighted
// by sample count, so a profile built from more samples dominates one built
// from fewer. Pattern maps are unioned with frequency accumulation.
// Merging a single profile returns it unchanged.
func Merge(profiles []Profile) Profile {
	if len(profiles) == 0 {
		return Profile{
			OpeningPatterns: make(map[string]int),
			ClosingPatterns: make(map[string]int),
		}
	}
	if len(profiles) == 1 {
		return profiles[0].clone()
	}

	merged := Profile{
		OpeningPatterns: make(map[string]int),
		ClosingPatterns: make(map[string]int),
	}

	totalWeight := 0.0
	for _, p := range profiles {
		w := float64(p.SampleCount)
		totalWeight += w

		merged.SentenceLengthMean += p.SentenceLengthMean * w
		merged.SentenceLengthVariance += p.SentenceLengthVariance * w
		merged.ParagraphLengthVariation += p.ParagraphLengthVariation * w
		merged.VocabularyRichness += p.VocabularyRichness * w
		merged.QuestionRate += p.QuestionRate * w
		merged.ContractionRate += p.ContractionRate * w
		merged.FirstPersonRate += p.FirstPersonRate * w
		merged.SecondPersonRate += p.SecondPersonRate * w

		for shape, n := range p.OpeningPatterns {
			merged.OpeningPatterns[shape] += n
		}
		for shape, n := range p.ClosingPatterns {
			merged.ClosingPatterns[shape] += n
		}
		merged.SampleCount += p.SampleCount
	}

	if totalWeight > 0 {
		merged.SentenceLengthMean /= totalWeight
		merged.SentenceLengthVariance /= totalWeight
		merged.ParagraphLengthVariation /= totalWeight
		merged.VocabularyRichness /= totalWeight
		merged.QuestionRate /= totalWeight
		merged.ContractionRate /= totalWeight
		merged.FirstPersonRate /= totalWeight
		merged.SecondPersonRate /= totalWeight
	}

	return merged
}

func (p Profile) clone() Profile {
	out := p
	out.OpeningPatterns = make(map[string]int, len(p.OpeningPatterns))
	for k, v := range p.OpeningPatterns {
		out.OpeningPatterns[k] = v
	}
	out.ClosingPatterns = make(map[string]int, len(p.ClosingPatterns))
	for k, v := range p.ClosingPatterns {
		out.ClosingPatterns[k] = v
	}
	return out
}

// splitSentences splits text into sentences, preserving the terminating
// punctuation on each sentence.
func splitSentences(text string) []string {
	var sentences []string
	last := 0
	for _, loc := range sentenceSplitRe.FindAllStringIndex(text, -1) {
		s := strings.TrimSpace(text[last:loc[1]])
		if s != "" {
			sentences = append(sentences, s)
		}
		last = loc[1]
	}
	if rest := strings.TrimSpace(text[last:]); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}

func splitParagraphs(text string) []string {
	var paras []string
	for _, p := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(p) != "" {
			paras = append(paras, strings.TrimSpace(p))
		}
	}
	return paras
}

// sentenceShape reduces a sentence to its first three lowercased words.
func sentenceShape(sentence string) string {
	words := strings.Fields(strings.ToLower(sentence))
	if len(words) > 3 {
		words = words[:3]
	}
	for i, w := range words {
		words[i] = wordCleanRe.ReplaceAllString(w, "")
	}
	return strings.Join(words, " ")
}

func meanVariance(values []int) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	mean := float64(sum) / float64(len(values))

	variance := 0.0
	for _, v := range values {
		d := float64(v) - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return mean, variance
}

func coefficientOfVariation(values []int) float64 {
	mean, variance := meanVariance(values)
	if mean == 0 {
		return 0
	}
	return math.Sqrt(variance) / mean
}
