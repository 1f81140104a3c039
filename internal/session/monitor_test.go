package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vault-core/internal/security"
	"vault-core/pkg/store"
)

func TestSweepFreezesIdleSession(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.Local)
	ctx := context.Background()

	engine, err := security.NewEngine(ctx, store.NewMemoryStore(), security.DefaultLimits(), "",
		func() time.Time { return now })
	require.NoError(t, err)

	m := NewMonitor(engine, nil)

	// Fresh session: nothing to do.
	m.Sweep(ctx)
	assert.False(t, engine.IsFrozen())

	// Past the timeout the sweep freezes, and keeps the wallet frozen.
	now = now.Add(16 * time.Minute)
	m.Sweep(ctx)
	assert.True(t, engine.IsFrozen())

	m.Sweep(ctx)
	assert.True(t, engine.IsFrozen())

	// Only an explicit unfreeze lifts it.
	require.NoError(t, engine.Unfreeze(ctx))
	assert.False(t, engine.IsFrozen())
}
