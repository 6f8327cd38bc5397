package repository

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/introlaser/shop-bot/internal/common"
	"github.com/introlaser/shop-bot/internal/entity"
)

type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id uint) (*entity.Product, error)
	List(ctx context.Context, category string, availableOnly bool) ([]*entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id uint) error
	AddPhoto(ctx context.Context, photo *entity.ProductPhoto) error
}

type productRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewProductRepository(db *gorm.DB, logger *slog.Logger) ProductRepository {
	return &productRepository{db: db, logger: logger}
}

func (r *productRepository) Create(ctx context.Context, p *entity.Product) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		r.logger.Error("failed to create product", "name", p.Name, "error", err)
		return common.WrapError(err, "create product")
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id uint) (*entity.Product, error) {
	var p entity.Product
	err := r.db.WithContext(ctx).Preload("Photos", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to load product", "product_id", id, "error", err)
		return nil, common.WrapError(err, "get product")
	}
	return &p, nil
}

func (r *productRepository) List(ctx context.Context, category string, availableOnly bool) ([]*entity.Product, error) {
	q := r.db.WithContext(ctx).Model(&entity.Product{}).Preload("Photos")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if availableOnly {
		q = q.Where("available = ?", true)
	}
	var products []*entity.Product
	if err := q.Order("id ASC").Find(&products).Error; err != nil {
		r.logger.Error("failed to list products", "category", category, "error", err)
		return nil, common.WrapError(err, "list products")
	}
	return products, nil
}

func (r *productRepository) Update(ctx context.Context, p *entity.Product) error {
	res := r.db.WithContext(ctx).Model(&entity.Product{ID: p.ID}).
		Select("Name", "Description", "Specifications", "Price", "Category", "Available", "PaymentLink", "PaymentQR").
		Updates(p)
	if res.Error != nil {
		r.logger.Error("failed to update product", "product_id", p.ID, "error", res.Error)
		return common.WrapError(res.Error, "update product")
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.Product{}, id)
	if res.Error != nil {
		r.logger.Error("failed to delete product", "product_id", id, "error", res.Error)
		return common.WrapError(res.Error, "delete product")
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *productRepository) AddPhoto(ctx context.Context, photo *entity.ProductPhoto) error {
	if err := r.db.WithContext(ctx).Create(photo).Error; err != nil {
		r.logger.Error("failed to attach product photo", "product_id", photo.ProductID, "error", err)
		return common.WrapError(err, "add product photo")
	}
	return nil
}
