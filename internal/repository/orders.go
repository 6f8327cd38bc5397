package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/introlaser/shop-bot/constants"
	"github.com/introlaser/shop-bot/internal/common"
	"github.com/introlaser/shop-bot/internal/entity"
)

type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	GetByID(ctx context.Context, id uint) (*entity.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Order, error)
	ListAll(ctx context.Context, from, to *time.Time) ([]*entity.Order, error)
	// MarkPaid transitions payment_status pending -> paid. Any other
	// starting state is rejected so acceptance happens exactly once.
	MarkPaid(ctx context.Context, id uint) error
	Cancel(ctx context.Context, id uint) error
}

type orderRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewOrderRepository(db *gorm.DB, logger *slog.Logger) OrderRepository {
	return &orderRepository{db: db, logger: logger}
}

func (r *orderRepository) Create(ctx context.Context, o *entity.Order) error {
	if err := r.db.WithContext(ctx).Create(o).Error; err != nil {
		r.logger.Error("failed to create order", "user_id", o.UserID, "error", err)
		return common.WrapError(err, "create order")
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uint) (*entity.Order, error) {
	var o entity.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&o, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to load order", "order_id", id, "error", err)
		return nil, common.WrapError(err, "get order")
	}
	return &o, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Order, error) {
	var orders []*entity.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		r.logger.Error("failed to list orders", "user_id", userID, "error", err)
		return nil, common.WrapError(err, "list orders")
	}
	return orders, nil
}

func (r *orderRepository) ListAll(ctx context.Context, from, to *time.Time) ([]*entity.Order, error) {
	q := r.db.WithContext(ctx).Preload("Items")
	if from != nil {
		q = q.Where("created_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("created_at < ?", to.AddDate(0, 0, 1))
	}
	var orders []*entity.Order
	if err := q.Order("created_at ASC").Find(&orders).Error; err != nil {
		r.logger.Error("failed to list all orders", "error", err)
		return nil, common.WrapError(err, "list all orders")
	}
	return orders, nil
}

func (r *orderRepository) MarkPaid(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ? AND payment_status = ?", id, constants.PaymentPending).
		Update("payment_status", constants.PaymentPaid)
	if res.Error != nil {
		r.logger.Error("failed to mark order paid", "order_id", id, "error", res.Error)
		return common.WrapError(res.Error, "mark order paid")
	}
	if res.RowsAffected == 0 {
		return common.NewAppError("ORDER_NOT_PENDING", "order is not awaiting payment", common.ErrInvalidInput)
	}
	return nil
}

func (r *orderRepository) Cancel(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ? AND payment_status = ?", id, constants.PaymentPending).
		Update("payment_status", constants.PaymentCancelled)
	if res.Error != nil {
		r.logger.Error("failed to cancel order", "order_id", id, "error", res.Error)
		return common.WrapError(res.Error, "cancel order")
	}
	if res.RowsAffected == 0 {
		return common.NewAppError("ORDER_NOT_PENDING", "order is not awaiting payment", common.ErrInvalidInput)
	}
	return nil
}
