// Package patterns is the cross-run memory of recurring undesirable phrases.
// Patterns carry a confidence that only ever rises on merge and an activity
// window based on last sighting; active phrases expand the forbidden
// vocabulary handed to the generator, both within a run's revision loop and
// across runs for the same channel.
package patterns

import (
	"sort"
	"strings"
	"time"
)

// Category classifies what kind of habit a pattern captures.
type Category string

const (
	CategoryPhrase     Category = "phrase"
	CategoryStructural Category = "structural"
	CategoryStylistic  Category = "stylistic"
)

// ConfidenceFloor is the minimum confidence for a discovered pattern to be
// kept and for a stored pattern to be active.
const ConfidenceFloor = 0.6

// ActiveWindow is how recently a pattern must have been seen to be active.
// Stale patterns are retained, not deleted, so they reactivate if the
// behavior recurs.
const ActiveWindow = 30 * 24 * time.Hour

// Pattern is one learned undesirable phrase. Phrases match
// case-insensitively; Phrase retains the casing of first discovery.
type Pattern struct {
	Phrase      string    `json:"phrase"`
	Category    Category  `json:"category"`
	Confidence  float64   `json:"confidence"`
	Occurrences int       `json:"occurrences"`
	FirstSeenAt time.Time `json:"first_seen_at"`
	LastSeenAt  time.Time `json:"last_seen_at"`
}

// Key returns the case-insensitive identity of the pattern.
func (p Pattern) Key() string {
	return strings.ToLower(strings.TrimSpace(p.Phrase))
}

// MergeDiscovered folds freshly discovered patterns into the existing set.
//
// Rules:
//   - discovered entries below ConfidenceFloor are ignored;
//   - a match on an existing phrase raises confidence to max(old, new),
//     increments the occurrence count, and refreshes LastSeenAt to now;
//   - a new phrase at or above the floor is inserted with occurrences = 1
//     and both timestamps set to now.
//
// Confidence never decreases. Re-merging the same discovered set at the same
// instant is a no-op beyond the first merge, so a retried persistence step
// cannot inflate counts.
func MergeDiscovered(existing, discovered []Pattern, now time.Time) []Pattern {
	byKey := make(map[string]int, len(existing))
	merged := make([]Pattern, len(existing))
	copy(merged, existing)
	for i, p := range merged {
		byKey[p.Key()] = i
	}

	for _, d := range discovered {
		if d.Confidence < ConfidenceFloor || d.Key() == "" {
			continue
		}

		if i, ok := byKey[d.Key()]; ok {
			p := merged[i]
			if d.Confidence > p.Confidence {
				p.Confidence = d.Confidence
			}
			// Same-instant re-merge does not double count.
			if !p.LastSeenAt.Equal(now) {
				p.Occurrences++
				p.LastSeenAt = now
			}
			merged[i] = p
			continue
		}

		category := d.Category
		if category == "" {
			category = CategoryPhrase
		}
		merged = append(merged, Pattern{
			Phrase:      strings.TrimSpace(d.Phrase),
			Category:    category,
			Confidence:  d.Confidence,
			Occurrences: 1,
			FirstSeenAt: now,
			LastSeenAt:  now,
		})
		byKey[d.Key()] = len(merged) - 1
	}

	return merged
}

// ActivePhrases returns the phrases that should expand the forbidden
// vocabulary right now: confidence at or above the floor and last seen
// within the activity window. Sorted for deterministic prompt assembly.
func ActivePhrases(all []Pattern, now time.Time) []string {
	cutoff := now.Add(-ActiveWindow)

	var phrases []string
	for _, p := range all {
		if p.Confidence >= ConfidenceFloor && !p.LastSeenAt.Before(cutoff) {
			phrases = append(phrases, p.Phrase)
		}
	}
	sort.Strings(phrases)
	return phrases
}
