package style

import (
	"context"
	"encoding/json"
	"fmt"

	"draftforge/internal/store"
)

const storeKey = "style_profile"

// Repository persists one merged style profile per channel.
type Repository struct {
	store store.ChannelStore
}

// NewRepository wraps a channel store.
func NewRepository(cs store.ChannelStore) *Repository {
	return &Repository{store: cs}
}

// Load returns the channel's stored profile. A channel with no profile yet
// returns a zero Profile and found=false.
func (r *Repository) Load(ctx context.Context, channelID string) (Profile, bool, error) {
	raw, found, err := r.store.Get(ctx, channelID, storeKey)
	if err != nil {
		return Profile{}, false, fmt.Errorf("failed to read style profile: %w", err)
	}
	if !found {
		return Profile{}, false, nil
	}

	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return Profile{}, false, fmt.Errorf("failed to decode style profile: %w", err)
	}
	return p, true, nil
}

// Save stores the channel's profile, replacing any previous one.
func (r *Repository) Save(ctx context.Context, channelID string, p Profile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode style profile: %w", err)
	}
	if err := r.store.Put(ctx, channelID, storeKey, raw); err != nil {
		return fmt.Errorf("failed to write style profile: %w", err)
	}
	return nil
}
