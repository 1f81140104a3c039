package session

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"vault-core/internal/security"
	"vault-core/pkg/logger"
	"vault-core/pkg/monitor"
	"vault-core/pkg/utils/lock"
)

const sweepLockKey = "session:sweep"

// Monitor watches for session inactivity and freezes the wallet once the
// timeout elapses. It only ever freezes; unfreezing is an explicit user
// action. All state access goes through the engine's own serialization, so
// a sweep and a user action in the same tick cannot lose updates.
type Monitor struct {
	cron   *cron.Cron
	engine *security.Engine
	locker lock.DistributedLock // nil when single-instance
}

func NewMonitor(engine *security.Engine, locker lock.DistributedLock) *Monitor {
	return &Monitor{
		cron:   cron.New(),
		engine: engine,
		locker: locker,
	}
}

func (m *Monitor) Start() {
	_, _ = m.cron.AddFunc("@every 1m", func() {
		m.Sweep(context.Background())
	})
	m.cron.Start()
	logger.Info("session monitor started")
}

func (m *Monitor) Stop() {
	m.cron.Stop()
	logger.Info("session monitor stopped")
}

// Sweep runs one inactivity check. With multiple replicas the distributed
// lock keeps it to one sweeper per tick.
func (m *Monitor) Sweep(ctx context.Context) {
	if m.locker != nil {
		locked, err := m.locker.Acquire(ctx, sweepLockKey, 30*time.Second)
		if err != nil || !locked {
			return
		}
		defer func() { _ = m.locker.Release(ctx, sweepLockKey) }()
	}

	froze, err := m.engine.FreezeIfInactive(ctx)
	if err != nil {
		logger.Error("session sweep failed", zap.Error(err))
		return
	}
	if froze {
		logger.Warn("wallet frozen after session timeout")
		if monitor.Vault != nil {
			monitor.Vault.FreezeEventsTotal.WithLabelValues("monitor").Inc()
		}
	}
}
