package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"vault-core/internal/security"
	"vault-core/internal/service/mq"
	"vault-core/internal/starknet"
	"vault-core/pkg/errno"
	"vault-core/pkg/logger"
	"vault-core/pkg/monitor"
	"vault-core/pkg/u256"
)

// withdrawEntrypoint is the vault contract function moving funds out via
// the hot wallet. Calldata: (to, amount_low, amount_high).
const withdrawEntrypoint = "withdraw_by_hot"

// TransferService runs the full outgoing-transfer flow: policy evaluation,
// limb encoding, submission through the contract caller, and the record /
// outcome bookkeeping around it.
type TransferService struct {
	engine   *security.Engine
	caller   starknet.Caller
	producer mq.Producer
	audit    *AuditService // nil disables auditing

	vaultContract string
	decimals      int
	topic         string
}

func NewTransferService(engine *security.Engine, caller starknet.Caller, producer mq.Producer,
	audit *AuditService, vaultContract string, decimals int, topic string) *TransferService {
	if producer == nil {
		producer = mq.NopProducer{}
	}
	return &TransferService{
		engine:        engine,
		caller:        caller,
		producer:      producer,
		audit:         audit,
		vaultContract: vaultContract,
		decimals:      decimals,
		topic:         topic,
	}
}

// TransferResult reports a completed (or denied) transfer attempt.
type TransferResult struct {
	TransactionID string           `json:"transaction_id,omitempty"`
	TxHash        string           `json:"tx_hash,omitempty"`
	Amount        u256.Uint256     `json:"amount,omitempty"`
	Verdict       security.Verdict `json:"verdict"`
}

// Evaluate is the dry-run entry: the verdict for an amount without
// touching any state beyond the lazy daily reset. Malformed text maps to
// an InvalidAmount denial, mirroring how the engine treats negatives.
func (s *TransferService) Evaluate(ctx context.Context, amountStr string) security.Verdict {
	amount, err := s.parseAmount(amountStr)
	if err != nil {
		return security.Verdict{
			Decision: security.Deny,
			Reason:   security.ReasonInvalidAmount,
			Message:  "Amount is not a valid decimal number.",
		}
	}
	return s.engine.Evaluate(ctx, amount)
}

// parseAmount accepts exactly what the limb codec accepts, so an amount
// that evaluates as allowed can never fail to encode later. Plain decimal
// digits only; no exponents.
func (s *TransferService) parseAmount(amountStr string) (decimal.Decimal, error) {
	if _, err := u256.Encode(amountStr, s.decimals); err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.NewFromString(amountStr)
}

// Transfer evaluates, records and submits one outgoing transfer.
// confirmed acknowledges the confirmation-threshold prompt; without it a
// transfer at or above the threshold is refused before any state changes.
func (s *TransferService) Transfer(ctx context.Context, amountStr, recipient string, confirmed bool) (*TransferResult, error) {
	if recipient == "" {
		return nil, errno.ErrInvalidAmount.WithMessage("Recipient address is required.")
	}
	amount, err := s.parseAmount(amountStr)
	if err != nil {
		return nil, errno.ErrInvalidAmount.WithMessage("Amount is not a valid decimal number.")
	}
	enc, err := u256.Encode(amountStr, s.decimals)
	if err != nil {
		return nil, errno.ErrInvalidAmount.WithMessage(err.Error())
	}

	// Verdict and pending charge happen in one engine critical section so
	// two in-flight transfers cannot both pass the daily or hourly checks
	// against the same uncharged accumulator.
	verdict, txID, err := s.engine.EvaluateAndRecord(ctx, amount, recipient, confirmed)
	if err != nil {
		logger.Error("record transaction", zap.Error(err))
		return nil, errno.ErrStorage
	}
	if !verdict.Allowed() {
		countDenial(verdict.Reason)
		return &TransferResult{Verdict: verdict}, VerdictError(verdict)
	}
	if verdict.NeedsConfirmation() && txID == "" {
		return &TransferResult{Verdict: verdict}, errno.ErrConfirmationRequired.WithMessage(
			"This transfer meets the confirmation threshold. Re-submit with confirm set to proceed.")
	}
	publishEvent(ctx, s.producer, s.topic, TransactionEvent{
		Type: EventTransferRecorded, TransactionID: txID,
		Recipient: recipient, Amount: amountStr, Timestamp: time.Now(),
	})

	hash, err := s.caller.Invoke(ctx, starknet.Call{
		ContractAddress: s.vaultContract,
		EntryPoint:      withdrawEntrypoint,
		Calldata:        []string{recipient, enc.Low, enc.High},
	})
	if err != nil {
		// The daily charge stands: a failed submission still counted as
		// exposure while it was in flight.
		s.settle(ctx, txID, security.StatusFailed, "", recipient, amountStr, enc, err)
		return &TransferResult{TransactionID: txID, Amount: enc, Verdict: verdict},
			errno.ErrSubmissionFailed.WithMessage(err.Error())
	}

	s.settle(ctx, txID, security.StatusSuccess, hash, recipient, amountStr, enc, nil)
	logger.Info("transfer submitted",
		zap.String("tx_id", txID), zap.String("tx_hash", hash),
		zap.String("recipient", recipient), zap.String("amount", amountStr))

	return &TransferResult{
		TransactionID: txID,
		TxHash:        hash,
		Amount:        enc,
		Verdict:       verdict,
	}, nil
}

// settle flips the record to its terminal status and fans out the
// side-channel bookkeeping (event stream, audit row, metrics).
func (s *TransferService) settle(ctx context.Context, txID string, status security.Status,
	hash, recipient, amountStr string, enc u256.Uint256, cause error) {

	if err := s.engine.UpdateTransactionStatus(ctx, txID, status, hash); err != nil {
		logger.Error("update transaction status", zap.String("tx_id", txID), zap.Error(err))
	}

	ev := TransactionEvent{
		TransactionID: txID, Recipient: recipient, Amount: amountStr,
		TxHash: hash, Timestamp: time.Now(),
	}
	if status == security.StatusSuccess {
		ev.Type = EventTransferSuccess
	} else {
		ev.Type = EventTransferFailed
		if cause != nil {
			ev.Error = cause.Error()
		}
	}
	publishEvent(ctx, s.producer, s.topic, ev)

	if s.audit != nil {
		s.audit.RecordOutcome(ctx, txID, recipient, amountStr, enc, string(status), hash)
	}
	if monitor.Vault != nil {
		monitor.Vault.TransfersTotal.WithLabelValues(string(status)).Inc()
		spent, _ := s.engine.DailySpent(ctx).Float64()
		monitor.Vault.DailySpent.Set(spent)
	}
}

// VerdictError maps a denial verdict to its stable errno, carrying the
// verdict's display message.
func VerdictError(v security.Verdict) error {
	var e errno.Errno
	switch v.Reason {
	case security.ReasonWalletFrozen:
		e = errno.ErrWalletFrozen
	case security.ReasonSessionExpired:
		e = errno.ErrSessionExpired
	case security.ReasonExceedsPerTransactionLimit:
		e = errno.ErrPerTransactionLimit
	case security.ReasonExceedsDailyLimit:
		e = errno.ErrDailyLimit
	case security.ReasonExceedsRateLimit:
		e = errno.ErrRateLimit
	case security.ReasonInvalidAmount:
		e = errno.ErrInvalidAmount
	default:
		e = errno.InternalServerError
	}
	if v.Message != "" {
		e = e.WithMessage(v.Message)
	}
	return e
}

func countDenial(reason security.Reason) {
	if monitor.Vault != nil {
		monitor.Vault.PolicyDenialsTotal.WithLabelValues(string(reason)).Inc()
	}
}
