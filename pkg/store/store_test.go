package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "k", []byte(`{"a":1}`)))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), got)

	// Mutating the returned slice must not affect the stored snapshot.
	got[0] = 'x'
	again, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), again)

	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEncryptedStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	key := []byte("0123456789abcdef0123456789abcdef") // 32 bytes

	s, err := NewEncryptedStore(NewMemoryStore(), key)
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, "state", []byte("secret snapshot")))
	got, err := s.Get(ctx, "state")
	require.NoError(t, err)
	assert.Equal(t, []byte("secret snapshot"), got)
}

func TestEncryptedStoreTamperedSnapshot(t *testing.T) {
	ctx := context.Background()
	key := []byte("0123456789abcdef")
	inner := NewMemoryStore()

	s, err := NewEncryptedStore(inner, key)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "state", []byte("snapshot")))

	sealed, err := inner.Get(ctx, "state")
	require.NoError(t, err)
	sealed[len(sealed)-1] ^= 0xff
	require.NoError(t, inner.Set(ctx, "state", sealed))

	// Tampered data is absence, not a hard failure.
	_, err = s.Get(ctx, "state")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEncryptedStoreRejectsBadKey(t *testing.T) {
	_, err := NewEncryptedStore(NewMemoryStore(), []byte("short"))
	assert.Error(t, err)
}
