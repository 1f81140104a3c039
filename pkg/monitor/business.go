package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// VaultMetrics tracks the guard service's business events.
type VaultMetrics struct {
	TransfersTotal      *prometheus.CounterVec
	PolicyDenialsTotal  *prometheus.CounterVec
	FreezeEventsTotal   *prometheus.CounterVec
	BalanceQueriesTotal *prometheus.CounterVec
	DailySpent          prometheus.Gauge
}

// Vault is the global metrics instance, populated by Init.
var Vault *VaultMetrics

func initVaultMetrics() {
	Vault = &VaultMetrics{
		TransfersTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vault_transfers_total",
			Help: "Transfers by terminal status",
		}, []string{"status"}),
		PolicyDenialsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vault_policy_denials_total",
			Help: "Transactions denied by the security policy, by reason",
		}, []string{"reason"}),
		FreezeEventsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vault_freeze_events_total",
			Help: "Freeze and unfreeze events, by source (user or monitor)",
		}, []string{"source"}),
		BalanceQueriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vault_balance_queries_total",
			Help: "Balance queries, by outcome",
		}, []string{"outcome"}),
		DailySpent: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "vault_daily_spent_tokens",
			Help: "Tokens charged against the daily limit today",
		}),
	}
}
