package patterns

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var now = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func TestMergeDiscoveredInsertsNewPattern(t *testing.T) {
	merged := MergeDiscovered(nil, []Pattern{
		{Phrase: "at the end of the day", Category: CategoryPhrase, Confidence: 0.8},
	}, now)

	if len(merged) != 1 {
		t.Fatalf("got %d patterns, want 1", len(merged))
	}
	p := merged[0]
	if p.Occurrences != 1 {
		t.Errorf("Occurrences = %d, want 1", p.Occurrences)
	}
	if !p.FirstSeenAt.Equal(now) || !p.LastSeenAt.Equal(now) {
		t.Errorf("timestamps = %v/%v, want both %v", p.FirstSeenAt, p.LastSeenAt, now)
	}
}

func TestMergeDiscoveredIgnoresBelowFloor(t *testing.T) {
	merged := MergeDiscovered(nil, []Pattern{
		{Phrase: "maybe a habit", Confidence: 0.59},
		{Phrase: "   ", Confidence: 0.9},
	}, now)
	if len(merged) != 0 {
		t.Errorf("got %d patterns, want 0", len(merged))
	}
}

func TestMergeDiscoveredMatchIsCaseInsensitive(t *testing.T) {
	existing := []Pattern{{
		Phrase: "Game-Changer", Category: CategoryPhrase, Confidence: 0.7,
		Occurrences: 2, FirstSeenAt: now.Add(-48 * time.Hour), LastSeenAt: now.Add(-24 * time.Hour),
	}}

	merged := MergeDiscovered(existing, []Pattern{
		{Phrase: "game-changer", Confidence: 0.9},
	}, now)

	if len(merged) != 1 {
		t.Fatalf("got %d patterns, want 1 (case-insensitive match)", len(merged))
	}
	p := merged[0]
	if p.Phrase != "Game-Changer" {
		t.Errorf("Phrase = %q, original casing must be retained", p.Phrase)
	}
	if p.Confidence != 0.9 {
		t.Errorf("Confidence = %f, want raised to 0.9", p.Confidence)
	}
	if p.Occurrences != 3 {
		t.Errorf("Occurrences = %d, want 3", p.Occurrences)
	}
	if !p.LastSeenAt.Equal(now) {
		t.Errorf("LastSeenAt = %v, want refreshed to %v", p.LastSeenAt, now)
	}
	if !p.FirstSeenAt.Equal(existing[0].FirstSeenAt) {
		t.Errorf("FirstSeenAt changed: %v", p.FirstSeenAt)
	}
}

func TestMergeDiscoveredConfidenceNeverDecreases(t *testing.T) {
	existing := []Pattern{{Phrase: "in this article", Confidence: 0.95, Occurrences: 5,
		FirstSeenAt: now.Add(-time.Hour), LastSeenAt: now.Add(-time.Hour)}}

	merged := MergeDiscovered(existing, []Pattern{
		{Phrase: "in this article", Confidence: 0.7},
	}, now)

	if merged[0].Confidence != 0.95 {
		t.Errorf("Confidence = %f, want kept at 0.95", merged[0].Confidence)
	}
}

// A retried persistence step re-merges the same discovered set at the same
// instant; counts must not inflate.
func TestMergeDiscoveredSameInstantIdempotent(t *testing.T) {
	discovered := []Pattern{{Phrase: "let's dive in", Confidence: 0.8}}

	once := MergeDiscovered(nil, discovered, now)
	twice := MergeDiscovered(once, discovered, now)

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("re-merge at same instant changed state (-once +twice):\n%s", diff)
	}
}

func TestActivePhrasesWindow(t *testing.T) {
	all := []Pattern{
		{Phrase: "zeta recent", Confidence: 0.8, LastSeenAt: now.Add(-29 * 24 * time.Hour)},
		{Phrase: "alpha stale", Confidence: 0.8, LastSeenAt: now.Add(-31 * 24 * time.Hour)},
		{Phrase: "edge exact", Confidence: 0.8, LastSeenAt: now.Add(-ActiveWindow)},
		{Phrase: "weak recent", Confidence: 0.5, LastSeenAt: now},
	}

	got := ActivePhrases(all, now)
	want := []string{"edge exact", "zeta recent"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ActivePhrases (-want +got):\n%s", diff)
	}
}

// Stale patterns stay in the stored set; a fresh sighting reactivates them.
func TestDormantPatternReactivates(t *testing.T) {
	stale := MergeDiscovered(nil, []Pattern{{Phrase: "circle back", Confidence: 0.7}},
		now.Add(-60*24*time.Hour))

	if got := ActivePhrases(stale, now); len(got) != 0 {
		t.Fatalf("stale pattern active: %v", got)
	}

	refreshed := MergeDiscovered(stale, []Pattern{{Phrase: "circle back", Confidence: 0.7}}, now)
	if got := ActivePhrases(refreshed, now); len(got) != 1 {
		t.Fatalf("refreshed pattern not active: %v", got)
	}
	if refreshed[0].Occurrences != 2 {
		t.Errorf("Occurrences = %d, want 2", refreshed[0].Occurrences)
	}
}

func TestMergeDiscoveredDefaultsCategory(t *testing.T) {
	merged := MergeDiscovered(nil, []Pattern{{Phrase: "some habit", Confidence: 0.7}}, now)
	if merged[0].Category != CategoryPhrase {
		t.Errorf("Category = %q, want %q", merged[0].Category, CategoryPhrase)
	}
}
