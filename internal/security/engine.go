package security

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"vault-core/pkg/logger"
	"vault-core/pkg/store"
)

// DefaultStateKey is the storage key for the security snapshot.
const DefaultStateKey = "vault:security:state"

// Clock supplies wall-clock time. Injected so tests can pin it.
type Clock func() time.Time

// Engine gates every proposed outgoing transaction through the spending
// policy and maintains the persisted state the policy depends on.
//
// All operations serialize through one mutex and re-persist the full
// snapshot after each mutation, so a user action and the inactivity
// monitor can never interleave partial writes.
type Engine struct {
	mu     sync.Mutex
	limits Limits
	store  store.Store
	key    string
	clock  Clock
	state  State
}

// NewEngine loads the persisted snapshot (or initializes defaults when the
// key is absent or the snapshot is unreadable). A nil clock means time.Now.
func NewEngine(ctx context.Context, st store.Store, limits Limits, key string, clock Clock) (*Engine, error) {
	if clock == nil {
		clock = time.Now
	}
	if key == "" {
		key = DefaultStateKey
	}
	e := &Engine{
		limits: limits,
		store:  st,
		key:    key,
		clock:  clock,
	}

	raw, err := st.Get(ctx, key)
	switch {
	case errors.Is(err, store.ErrNotFound):
		e.state = newState(clock())
	case err != nil:
		return nil, fmt.Errorf("load security state: %w", err)
	default:
		if uerr := json.Unmarshal(raw, &e.state); uerr != nil {
			logger.Warn("security state snapshot unreadable, starting fresh", zap.Error(uerr))
			e.state = newState(clock())
		}
	}
	return e, nil
}

// Limits returns the immutable policy this engine enforces.
func (e *Engine) Limits() Limits {
	return e.limits
}

// Evaluate decides whether a transaction of the given amount may proceed
// right now. Checks run in a fixed order so the first failing rule always
// determines the reason. Denials are verdict values, never errors.
//
// Callers about to submit must use EvaluateAndRecord instead: a verdict
// from Evaluate is stale the moment the mutex is released.
func (e *Engine) Evaluate(ctx context.Context, amount decimal.Decimal) Verdict {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.evaluateLocked(ctx, e.clock(), amount)
}

// EvaluateAndRecord runs the policy checks and, when the transfer may
// proceed, charges it in the same critical section, so two concurrent
// submissions can never both read the accumulator before either charges
// it. confirmed acknowledges the confirmation threshold; without it an
// at-threshold transfer comes back unrecorded (empty id) so the caller can
// prompt.
func (e *Engine) EvaluateAndRecord(ctx context.Context, amount decimal.Decimal, recipient string, confirmed bool) (Verdict, string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock()
	verdict := e.evaluateLocked(ctx, now, amount)
	if !verdict.Allowed() {
		return verdict, "", nil
	}
	if verdict.NeedsConfirmation() && !confirmed {
		return verdict, "", nil
	}

	id, err := e.recordLocked(ctx, now, amount, recipient)
	return verdict, id, err
}

// evaluateLocked runs the ordered checks. Callers hold e.mu.
func (e *Engine) evaluateLocked(ctx context.Context, now time.Time, amount decimal.Decimal) Verdict {
	if amount.Sign() < 0 {
		return deny(ReasonInvalidAmount, "Transaction amount must not be negative.")
	}

	if e.state.IsFrozen {
		return deny(ReasonWalletFrozen,
			"Wallet is frozen for security reasons. Please unfreeze to continue.")
	}

	if now.Sub(e.state.LastActivity) > e.limits.SessionTimeout {
		return deny(ReasonSessionExpired, "Session expired. Please re-authenticate.")
	}

	if amount.GreaterThan(e.limits.MaxTransactionAmount) {
		return deny(ReasonExceedsPerTransactionLimit,
			fmt.Sprintf("Transaction amount (%s STRK) exceeds maximum limit of %s STRK per transaction.",
				amount, e.limits.MaxTransactionAmount))
	}

	spent := e.dailySpentLocked(ctx, now)
	if spent.Add(amount).GreaterThan(e.limits.DailySpendingLimit) {
		return deny(ReasonExceedsDailyLimit,
			fmt.Sprintf("This transaction would exceed your daily spending limit. Spent today: %s STRK, Limit: %s STRK",
				spent.StringFixed(2), e.limits.DailySpendingLimit))
	}

	if e.countRecentLocked(now) >= e.limits.MaxTransactionsPerHour {
		return deny(ReasonExceedsRateLimit,
			fmt.Sprintf("Too many transactions. Maximum %d transactions per hour allowed.",
				e.limits.MaxTransactionsPerHour))
	}

	if amount.GreaterThanOrEqual(e.limits.ConfirmationThreshold) {
		return Verdict{Decision: AllowWithConfirmation}
	}
	return Verdict{Decision: Allow}
}

// RecordTransaction creates a pending record for a transfer that is about
// to be submitted. The amount is charged against the daily limit
// immediately, before the outcome is known: pending exposure counts.
func (e *Engine) RecordTransaction(ctx context.Context, amount decimal.Decimal, recipient string) (string, error) {
	if amount.Sign() < 0 {
		return "", fmt.Errorf("record transaction: negative amount %s", amount)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return e.recordLocked(ctx, e.clock(), amount, recipient)
}

// recordLocked prepends the pending record and charges the daily
// accumulator. Callers hold e.mu.
func (e *Engine) recordLocked(ctx context.Context, now time.Time, amount decimal.Decimal, recipient string) (string, error) {
	e.dailySpentLocked(ctx, now)

	rec := Record{
		ID:        uuid.NewString(),
		Timestamp: now,
		Amount:    amount,
		Recipient: recipient,
		Status:    StatusPending,
	}

	e.state.History = append([]Record{rec}, e.state.History...)
	if len(e.state.History) > maxHistory {
		e.state.History = e.state.History[:maxHistory]
	}
	e.state.DailySpent = e.state.DailySpent.Add(amount)
	e.state.LastActivity = now

	if err := e.persistLocked(ctx); err != nil {
		return "", err
	}
	return rec.ID, nil
}

// UpdateTransactionStatus flips a record from pending to its terminal
// status. The daily accumulator is untouched: it was charged at record
// time.
func (e *Engine) UpdateTransactionStatus(ctx context.Context, id string, status Status, txHash string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.state.History {
		if e.state.History[i].ID == id {
			e.state.History[i].Status = status
			if txHash != "" {
				e.state.History[i].TxHash = txHash
			}
			return e.persistLocked(ctx)
		}
	}
	return fmt.Errorf("transaction %s not found", id)
}

// Freeze denies all subsequent evaluations until Unfreeze.
func (e *Engine) Freeze(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.IsFrozen = true
	return e.persistLocked(ctx)
}

// Unfreeze lifts the freeze. Nothing else unfreezes a wallet.
func (e *Engine) Unfreeze(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.IsFrozen = false
	return e.persistLocked(ctx)
}

// FreezeIfInactive freezes the wallet when the session has been idle past
// the timeout. Used by the inactivity monitor; reports whether it acted.
func (e *Engine) FreezeIfInactive(ctx context.Context) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.IsFrozen {
		return false, nil
	}
	if e.clock().Sub(e.state.LastActivity) <= e.limits.SessionTimeout {
		return false, nil
	}
	e.state.IsFrozen = true
	return true, e.persistLocked(ctx)
}

// UpdateActivity marks the session as active now.
func (e *Engine) UpdateActivity(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.LastActivity = e.clock()
	return e.persistLocked(ctx)
}

// ClearHistory empties the transaction history. The daily accumulator and
// the freeze flag are untouched.
func (e *Engine) ClearHistory(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.History = nil
	return e.persistLocked(ctx)
}

// IsFrozen reports the freeze flag.
func (e *Engine) IsFrozen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.IsFrozen
}

// DailySpent returns today's spend, applying the lazy calendar-date reset
// first.
func (e *Engine) DailySpent(ctx context.Context) decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dailySpentLocked(ctx, e.clock())
}

// RemainingDailyAllowance returns how much more may be spent today, never
// negative.
func (e *Engine) RemainingDailyAllowance(ctx context.Context) decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()

	rem := e.limits.DailySpendingLimit.Sub(e.dailySpentLocked(ctx, e.clock()))
	if rem.Sign() < 0 {
		return decimal.Zero
	}
	return rem
}

// RecentTransactions returns the records from the trailing hour, newest
// first.
func (e *Engine) RecentTransactions() []Record {
	e.mu.Lock()
	defer e.mu.Unlock()

	cutoff := e.clock().Add(-time.Hour)
	var out []Record
	for _, rec := range e.state.History {
		if rec.Timestamp.After(cutoff) {
			out = append(out, rec)
		}
	}
	return out
}

// RemainingHourlyTxs returns how many more transactions fit under the rate
// limit this hour, never negative.
func (e *Engine) RemainingHourlyTxs() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	rem := e.limits.MaxTransactionsPerHour - e.countRecentLocked(e.clock())
	if rem < 0 {
		return 0
	}
	return rem
}

// Snapshot returns a deep copy of the current state for status reporting.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := e.state
	snap.History = append([]Record(nil), e.state.History...)
	return snap
}

// dailySpentLocked applies the lazy daily reset before returning the
// accumulator. Callers hold e.mu.
func (e *Engine) dailySpentLocked(ctx context.Context, now time.Time) decimal.Decimal {
	if !sameCalendarDay(e.state.DailyResetTime, now) {
		e.state.DailySpent = decimal.Zero
		e.state.DailyResetTime = now
		if err := e.persistLocked(ctx); err != nil {
			logger.Error("persist daily reset", zap.Error(err))
		}
	}
	return e.state.DailySpent
}

// countRecentLocked counts non-failed transactions in the trailing hour.
// Failed submissions never happened on chain, so they do not consume rate
// budget. Callers hold e.mu.
func (e *Engine) countRecentLocked(now time.Time) int {
	cutoff := now.Add(-time.Hour)
	n := 0
	for _, rec := range e.state.History {
		if rec.Timestamp.After(cutoff) && rec.Status != StatusFailed {
			n++
		}
	}
	return n
}

func (e *Engine) persistLocked(ctx context.Context) error {
	raw, err := json.Marshal(e.state)
	if err != nil {
		return fmt.Errorf("marshal security state: %w", err)
	}
	if err := e.store.Set(ctx, e.key, raw); err != nil {
		return fmt.Errorf("persist security state: %w", err)
	}
	return nil
}
