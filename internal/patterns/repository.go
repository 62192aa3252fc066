package patterns

import (
	"context"
	"encoding/json"
	"fmt"

	"draftforge/internal/store"
)

const storeKey = "learned_patterns"

// FileVersion is the persisted shape version. Bump only with a migration.
const FileVersion = 1

// File is the versioned persistence shape for a channel's pattern set.
type File struct {
	Version  int       `json:"version"`
	Patterns []Pattern `json:"patterns"`
}

// Repository persists per-channel pattern sets in a ChannelStore.
type Repository struct {
	cs store.ChannelStore
}

// NewRepository wraps a ChannelStore.
func NewRepository(cs store.ChannelStore) *Repository {
	return &Repository{cs: cs}
}

// Load returns the channel's patterns. A missing record is an empty set.
func (r *Repository) Load(ctx context.Context, channelID string) ([]Pattern, error) {
	data, ok, err := r.cs.Get(ctx, channelID, storeKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse pattern file for %s: %w", channelID, err)
	}
	if f.Version != FileVersion {
		return nil, fmt.Errorf("unsupported pattern file version %d for %s", f.Version, channelID)
	}
	return f.Patterns, nil
}

// Save writes the channel's full pattern set. Last write wins: the merge
// rules only ever raise confidence, counts, and timestamps, so no
// transactional lock is needed beyond the store's per-channel serialization.
func (r *Repository) Save(ctx context.Context, channelID string, all []Pattern) error {
	data, err := json.Marshal(File{Version: FileVersion, Patterns: all})
	if err != nil {
		return fmt.Errorf("failed to encode pattern file: %w", err)
	}
	return r.cs.Put(ctx, channelID, storeKey, data)
}
