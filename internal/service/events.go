package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"vault-core/internal/service/mq"
	"vault-core/pkg/logger"
)

// Event types published to the transaction stream.
const (
	EventTransferRecorded = "transfer.recorded"
	EventTransferSuccess  = "transfer.success"
	EventTransferFailed   = "transfer.failed"
)

// TransactionEvent is the JSON payload for downstream consumers
// (reconciliation, alerting). Amount is the human decimal string.
type TransactionEvent struct {
	Type          string    `json:"type"`
	TransactionID string    `json:"transaction_id"`
	Recipient     string    `json:"recipient"`
	Amount        string    `json:"amount"`
	TxHash        string    `json:"tx_hash,omitempty"`
	Error         string    `json:"error,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// publishEvent emits best-effort: a broker outage must never fail a
// transfer that already settled on chain.
func publishEvent(ctx context.Context, producer mq.Producer, topic string, ev TransactionEvent) {
	if producer == nil {
		return
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		logger.Error("marshal transaction event", zap.Error(err))
		return
	}
	if err := producer.Publish(ctx, topic, ev.Recipient, payload); err != nil {
		logger.Error("publish transaction event",
			zap.String("type", ev.Type), zap.String("tx_id", ev.TransactionID), zap.Error(err))
	}
}
