package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const historyKey = "history"

// maxHistoryEntries bounds the per-channel history record; older entries
// roll off so the avoidance prompt stays small.
const maxHistoryEntries = 50

// HistoryEntry records one published draft for a channel.
type HistoryEntry struct {
	Headline  string    `json:"headline"`
	Focus     string    `json:"focus,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryStore reads and appends the per-channel publication history used to
// steer the generator away from recently covered ground.
type HistoryStore struct {
	cs ChannelStore
}

// NewHistoryStore wraps a ChannelStore.
func NewHistoryStore(cs ChannelStore) *HistoryStore {
	return &HistoryStore{cs: cs}
}

// Load returns the channel's history, oldest first. A missing record is an
// empty history, not an error.
func (h *HistoryStore) Load(ctx context.Context, channelID string) ([]HistoryEntry, error) {
	data, ok, err := h.cs.Get(ctx, channelID, historyKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var entries []HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse history for %s: %w", channelID, err)
	}
	return entries, nil
}

// Append records a new entry, trimming the record to the retention bound.
func (h *HistoryStore) Append(ctx context.Context, channelID string, entry HistoryEntry) error {
	entries, err := h.Load(ctx, channelID)
	if err != nil {
		return err
	}

	entries = append(entries, entry)
	if len(entries) > maxHistoryEntries {
		entries = entries[len(entries)-maxHistoryEntries:]
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	return h.cs.Put(ctx, channelID, historyKey, data)
}

// AvoidanceText renders recent history as a prompt block telling the
// generator what ground was already covered. Empty string for no history.
func AvoidanceText(entries []HistoryEntry, limit int) string {
	if len(entries) == 0 {
		return ""
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}

	var sb strings.Builder
	sb.WriteString("Recently covered (do not repeat these angles):\n")
	for _, e := range entries {
		sb.WriteString("- ")
		sb.WriteString(e.Headline)
		if e.Focus != "" {
			sb.WriteString(" (")
			sb.WriteString(e.Focus)
			sb.WriteString(")")
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
