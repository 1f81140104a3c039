package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionAudit is the server-side audit row written when a transfer
// reaches a terminal status. The client-side security snapshot stays the
// source of truth for policy decisions; this table exists for offline
// review.
type TransactionAudit struct {
	ID         uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	TxID       string          `gorm:"type:varchar(64);not null;uniqueIndex" json:"tx_id"`
	Recipient  string          `gorm:"type:varchar(128);not null" json:"recipient"`
	Amount     decimal.Decimal `gorm:"type:decimal(32,18);not null" json:"amount"`
	AmountLow  string          `gorm:"type:varchar(66)" json:"amount_low"`
	AmountHigh string          `gorm:"type:varchar(66)" json:"amount_high"`
	Status     string          `gorm:"type:varchar(16);not null;index" json:"status"`
	TxHash     string          `gorm:"type:varchar(128)" json:"tx_hash,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (TransactionAudit) TableName() string {
	return "transaction_audits"
}
