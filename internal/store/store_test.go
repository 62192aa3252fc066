package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// suite exercises the ChannelStore contract against both implementations.
func runStoreSuite(t *testing.T, cs ChannelStore) {
	ctx := context.Background()

	_, found, err := cs.Get(ctx, "ch1", "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, cs.Put(ctx, "ch1", "k", []byte("v1")))

	got, found, err := cs.Get(ctx, "ch1", "k")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte("v1"), got)

	// Overwrite replaces.
	require.NoError(t, cs.Put(ctx, "ch1", "k", []byte("v2")))
	got, _, err = cs.Get(ctx, "ch1", "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)

	// Keys are scoped per channel.
	_, found, err = cs.Get(ctx, "ch2", "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStore(t *testing.T) {
	runStoreSuite(t, NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	cs, err := NewSQLiteStore(filepath.Join(t.TempDir(), "channels.db"), nil)
	require.NoError(t, err)
	defer cs.Close()

	runStoreSuite(t, cs)
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "channels.db")

	first, err := NewSQLiteStore(path, nil)
	require.NoError(t, err)
	require.NoError(t, first.Put(ctx, "ch1", "k", []byte("durable")))
	require.NoError(t, first.Close())

	second, err := NewSQLiteStore(path, nil)
	require.NoError(t, err)
	defer second.Close()

	got, found, err := second.Get(ctx, "ch1", "k")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte("durable"), got)
}

func TestMemoryStoreClosed(t *testing.T) {
	ctx := context.Background()
	cs := NewMemoryStore()
	require.NoError(t, cs.Close())

	_, _, err := cs.Get(ctx, "ch1", "k")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, cs.Put(ctx, "ch1", "k", nil), ErrClosed)
}

func TestMemoryStoreDefensiveCopies(t *testing.T) {
	ctx := context.Background()
	cs := NewMemoryStore()

	in := []byte("original")
	require.NoError(t, cs.Put(ctx, "ch1", "k", in))
	in[0] = 'X'

	got, _, err := cs.Get(ctx, "ch1", "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), got)

	got[0] = 'Y'
	again, _, err := cs.Get(ctx, "ch1", "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), again)
}
