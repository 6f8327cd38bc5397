package repository

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	"github.com/introlaser/shop-bot/internal/common"
	"github.com/introlaser/shop-bot/internal/entity"
)

type ReceiptRepository interface {
	Create(ctx context.Context, rec *entity.ReceiptRecord) error
	ListByUser(ctx context.Context, userID string) ([]*entity.ReceiptRecord, error)
}

type receiptRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewReceiptRepository(db *gorm.DB, logger *slog.Logger) ReceiptRepository {
	return &receiptRepository{db: db, logger: logger}
}

func (r *receiptRepository) Create(ctx context.Context, rec *entity.ReceiptRecord) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		r.logger.Error("failed to insert receipt record", "user_id", rec.UserID, "error", err)
		return common.WrapError(err, "insert receipt record")
	}
	return nil
}

func (r *receiptRepository) ListByUser(ctx context.Context, userID string) ([]*entity.ReceiptRecord, error) {
	var recs []*entity.ReceiptRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&recs).Error
	if err != nil {
		r.logger.Error("failed to list receipt records", "user_id", userID, "error", err)
		return nil, common.WrapError(err, "list receipt records")
	}
	return recs, nil
}
