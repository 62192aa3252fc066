// Package store provides the per-channel keyed repository backing cross-run
// state: learned patterns and publication history. The interface is small on
// purpose so tests can substitute an in-memory implementation and the
// pipeline never touches SQL directly.
package store

import (
	"context"
	"errors"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store is closed")

// ChannelStore is a keyed blob store scoped by channel. Different channels
// never contend; a single channel's record is read-modify-written by at most
// one run at a time, which the implementations serialize with a mutex.
type ChannelStore interface {
	// Get returns the value for channel+key, and whether it exists.
	Get(ctx context.Context, channelID, key string) ([]byte, bool, error)

	// Put stores the value for channel+key, replacing any previous value.
	Put(ctx context.Context, channelID, key string, value []byte) error

	// Close releases underlying resources.
	Close() error
}
