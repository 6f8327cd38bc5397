package repository

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	"github.com/introlaser/shop-bot/internal/common"
	"github.com/introlaser/shop-bot/internal/entity"
)

type FeedbackRepository interface {
	AddSuggestion(ctx context.Context, s *entity.Suggestion) error
	AddQuestion(ctx context.Context, q *entity.Question) error
}

type feedbackRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewFeedbackRepository(db *gorm.DB, logger *slog.Logger) FeedbackRepository {
	return &feedbackRepository{db: db, logger: logger}
}

func (r *feedbackRepository) AddSuggestion(ctx context.Context, s *entity.Suggestion) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		r.logger.Error("failed to save suggestion", "user_id", s.UserID, "error", err)
		return common.WrapError(err, "save suggestion")
	}
	return nil
}

func (r *feedbackRepository) AddQuestion(ctx context.Context, q *entity.Question) error {
	if err := r.db.WithContext(ctx).Create(q).Error; err != nil {
		r.logger.Error("failed to save question", "user_id", q.UserID, "error", err)
		return common.WrapError(err, "save question")
	}
	return nil
}
