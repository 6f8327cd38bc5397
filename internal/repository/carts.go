package repository

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	"github.com/introlaser/shop-bot/internal/common"
	"github.com/introlaser/shop-bot/internal/entity"
)

type CartRepository interface {
	AddItem(ctx context.Context, userID string, productID uint, quantity int) error
	RemoveItem(ctx context.Context, userID string, productID uint) error
	List(ctx context.Context, userID string) ([]*entity.CartItem, error)
	Clear(ctx context.Context, userID string) error
}

type cartRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewCartRepository(db *gorm.DB, logger *slog.Logger) CartRepository {
	return &cartRepository{db: db, logger: logger}
}

func (r *cartRepository) AddItem(ctx context.Context, userID string, productID uint, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	var existing entity.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&existing).Error
	switch {
	case err == nil:
		return r.db.WithContext(ctx).Model(&existing).
			Update("quantity", existing.Quantity+quantity).Error
	case err == gorm.ErrRecordNotFound:
		item := &entity.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
		if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
			r.logger.Error("failed to add cart item", "user_id", userID, "product_id", productID, "error", err)
			return common.WrapError(err, "add cart item")
		}
		return nil
	default:
		return common.WrapError(err, "add cart item")
	}
}

func (r *cartRepository) RemoveItem(ctx context.Context, userID string, productID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&entity.CartItem{})
	if res.Error != nil {
		r.logger.Error("failed to remove cart item", "user_id", userID, "product_id", productID, "error", res.Error)
		return common.WrapError(res.Error, "remove cart item")
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *cartRepository) List(ctx context.Context, userID string) ([]*entity.CartItem, error) {
	var items []*entity.CartItem
	err := r.db.WithContext(ctx).Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		r.logger.Error("failed to list cart", "user_id", userID, "error", err)
		return nil, common.WrapError(err, "list cart")
	}
	return items, nil
}

func (r *cartRepository) Clear(ctx context.Context, userID string) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&entity.CartItem{}).Error
	if err != nil {
		r.logger.Error("failed to clear cart", "user_id", userID, "error", err)
		return common.WrapError(err, "clear cart")
	}
	return nil
}
