package security

import (
	"time"

	"github.com/shopspring/decimal"
)

// maxHistory bounds the retained transaction history.
const maxHistory = 50

type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Record is one audited transaction intent. Created as pending when the
// transfer is about to be submitted, flipped exactly once to success or
// failed when the submission resolves.
type Record struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Amount    decimal.Decimal `json:"amount"`
	Recipient string          `json:"recipient"`
	Status    Status          `json:"status"`
	TxHash    string          `json:"tx_hash,omitempty"`
}

// State is the persisted security snapshot for one wallet session.
// History is ordered most-recent-first; records are only ever prepended.
type State struct {
	IsFrozen       bool            `json:"is_frozen"`
	LastActivity   time.Time       `json:"last_activity"`
	DailySpent     decimal.Decimal `json:"daily_spent"`
	DailyResetTime time.Time       `json:"daily_reset_time"`
	History        []Record        `json:"transaction_history"`
}

func newState(now time.Time) State {
	return State{
		LastActivity:   now,
		DailySpent:     decimal.Zero,
		DailyResetTime: now,
	}
}

// sameCalendarDay reports whether both instants fall on the same local
// calendar date. The daily accumulator resets on date change, not on a
// rolling 24 hour window.
func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
