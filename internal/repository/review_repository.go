//go:generate mockery --name ReviewRepository --output ./mocks --outpkg mocks --case=underscore
// internal/repository/review_repository.go
package repository

import (
	"context"
	"fmt"
	"time"

	"go_srs_tracker/internal/middleware"
	"go_srs_tracker/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewRepository はレビュー履歴へのアクセスを提供します。
// Review は追記専用で、Update/Delete は定義しない。
type ReviewRepository interface {
	Create(ctx context.Context, tx *gorm.DB, review *model.Review) error
	// FindByUserSince は since 以降のレビュー履歴を古い順に返す (日次集計用)。
	FindByUserSince(ctx context.Context, db *gorm.DB, userID uuid.UUID, since time.Time) ([]*model.Review, error)
	// FindHardestCards は全期間の履歴から、minReviews 回以上レビューされたカードを
	// 平均quality昇順 (同率はレビュー回数降順) で最大 limit 件返す。
	FindHardestCards(ctx context.Context, db *gorm.DB, userID uuid.UUID, minReviews, limit int) ([]model.HardCardStat, error)
}

type gormReviewRepository struct{}

func NewGormReviewRepository() ReviewRepository {
	return &gormReviewRepository{}
}

func (r *gormReviewRepository) Create(ctx context.Context, tx *gorm.DB, review *model.Review) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(review)
	if result.Error != nil {
		logger.Error("Error creating review in DB", "error", result.Error, "card_id", review.CardID.String())
		return fmt.Errorf("gormReviewRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormReviewRepository) FindByUserSince(ctx context.Context, db *gorm.DB, userID uuid.UUID, since time.Time) ([]*model.Review, error) {
	logger := middleware.GetLogger(ctx)
	var reviews []*model.Review
	result := db.WithContext(ctx).
		Where("user_id = ? AND reviewed_at >= ?", userID, since).
		Order("reviewed_at ASC").
		Find(&reviews)
	if result.Error != nil {
		logger.Error("Error finding reviews in DB", "error", result.Error, "user_id", userID.String())
		return nil, fmt.Errorf("gormReviewRepository.FindByUserSince: %w", result.Error)
	}
	return reviews, nil
}

func (r *gormReviewRepository) FindHardestCards(ctx context.Context, db *gorm.DB, userID uuid.UUID, minReviews, limit int) ([]model.HardCardStat, error) {
	logger := middleware.GetLogger(ctx)
	var stats []model.HardCardStat
	result := db.WithContext(ctx).Model(&model.Review{}).
		Select("reviews.card_id AS card_id, cards.front_text AS front_text, decks.title AS deck_title, AVG(reviews.quality) AS average_quality, COUNT(*) AS review_count").
		Joins("JOIN cards ON cards.card_id = reviews.card_id AND cards.deleted_at IS NULL").
		Joins("JOIN decks ON decks.deck_id = cards.deck_id AND decks.deleted_at IS NULL").
		Where("reviews.user_id = ?", userID).
		Group("reviews.card_id, cards.front_text, decks.title").
		Having("COUNT(*) >= ?", minReviews).
		Order("average_quality ASC, review_count DESC").
		Limit(limit).
		Scan(&stats)
	if result.Error != nil {
		logger.Error("Error aggregating hardest cards in DB", "error", result.Error, "user_id", userID.String())
		return nil, fmt.Errorf("gormReviewRepository.FindHardestCards: %w", result.Error)
	}
	return stats, nil
}
