package security

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Limits is the spending-limit policy for one wallet session. Amounts are
// whole tokens. The struct is treated as immutable once handed to an Engine.
type Limits struct {
	// MaxWalletBalance is advisory only: surfaced in status responses as a
	// recommended ceiling, never enforced by Evaluate.
	MaxWalletBalance decimal.Decimal `json:"max_wallet_balance"`

	MaxTransactionAmount   decimal.Decimal `json:"max_transaction_amount"`
	DailySpendingLimit     decimal.Decimal `json:"daily_spending_limit"`
	MaxTransactionsPerHour int             `json:"max_transactions_per_hour"`
	ConfirmationThreshold  decimal.Decimal `json:"confirmation_threshold"`
	SessionTimeout         time.Duration   `json:"-"`
}

// MarshalJSON exports the session timeout in whole minutes; raw
// nanoseconds mean nothing to a UI.
func (l Limits) MarshalJSON() ([]byte, error) {
	type alias Limits
	return json.Marshal(struct {
		alias
		SessionTimeoutMinutes int64 `json:"session_timeout_minutes"`
	}{
		alias:                 alias(l),
		SessionTimeoutMinutes: int64(l.SessionTimeout / time.Minute),
	})
}

// DefaultLimits returns the stock policy: 10 token wallet ceiling, 2 per
// transaction, 5 per day, 3 transactions per hour, confirmation from 1
// token, 15 minute session timeout.
func DefaultLimits() Limits {
	return Limits{
		MaxWalletBalance:       decimal.NewFromInt(10),
		MaxTransactionAmount:   decimal.NewFromInt(2),
		DailySpendingLimit:     decimal.NewFromInt(5),
		MaxTransactionsPerHour: 3,
		ConfirmationThreshold:  decimal.NewFromInt(1),
		SessionTimeout:         15 * time.Minute,
	}
}
