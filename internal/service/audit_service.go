package service

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vault-core/internal/model"
	"vault-core/pkg/logger"
	"vault-core/pkg/u256"
)

// AuditService writes terminal transfer outcomes to Postgres for offline
// review. Writes are best-effort: the security snapshot, not this table,
// is what the policy engine trusts.
type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// AutoMigrate creates or updates the audit schema.
func (a *AuditService) AutoMigrate() error {
	return a.db.AutoMigrate(&model.TransactionAudit{})
}

// RecordOutcome upserts the audit row for one transaction.
func (a *AuditService) RecordOutcome(ctx context.Context, txID, recipient, amountStr string,
	enc u256.Uint256, status, txHash string) {

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		logger.Error("audit: unparseable amount", zap.String("amount", amountStr), zap.Error(err))
		return
	}

	row := model.TransactionAudit{
		TxID:       txID,
		Recipient:  recipient,
		Amount:     amount,
		AmountLow:  enc.Low,
		AmountHigh: enc.High,
		Status:     status,
		TxHash:     txHash,
	}

	err = a.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tx_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "tx_hash", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		logger.Error("audit: write failed", zap.String("tx_id", txID), zap.Error(err))
	}
}

// Recent returns the newest audit rows, newest first.
func (a *AuditService) Recent(ctx context.Context, limit int) ([]model.TransactionAudit, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var rows []model.TransactionAudit
	err := a.db.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&rows).Error
	return rows, err
}
