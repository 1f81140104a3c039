package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"vault-core/pkg/crypto_util"
	"vault-core/pkg/logger"
)

// EncryptedStore wraps another Store and seals every snapshot with AES-GCM.
// A snapshot that fails authentication (tampered data or a rotated key) is
// reported as absent so the caller falls back to a fresh default state
// instead of trusting unverifiable limits.
type EncryptedStore struct {
	inner Store
	key   []byte
}

func NewEncryptedStore(inner Store, key []byte) (*EncryptedStore, error) {
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("encrypted store: key must be 16, 24 or 32 bytes, got %d", len(key))
	}
	return &EncryptedStore{inner: inner, key: key}, nil
}

func (e *EncryptedStore) Get(ctx context.Context, key string) ([]byte, error) {
	sealed, err := e.inner.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	plain, err := crypto_util.DecryptAESGCM(e.key, sealed)
	if err != nil {
		logger.Warn("discarding undecryptable state snapshot",
			zap.String("key", key), zap.Error(err))
		return nil, ErrNotFound
	}
	return plain, nil
}

func (e *EncryptedStore) Set(ctx context.Context, key string, value []byte) error {
	sealed, err := crypto_util.EncryptAESGCM(e.key, value)
	if err != nil {
		return fmt.Errorf("encrypted store: seal %s: %w", key, err)
	}
	return e.inner.Set(ctx, key, sealed)
}

func (e *EncryptedStore) Delete(ctx context.Context, key string) error {
	return e.inner.Delete(ctx, key)
}
