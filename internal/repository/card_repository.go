//go:generate mockery --name CardRepository --output ./mocks --outpkg mocks --case=underscore
// internal/repository/card_repository.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go_srs_tracker/internal/middleware"
	"go_srs_tracker/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CardRepository interface {
	Create(ctx context.Context, tx *gorm.DB, card *model.Card) error
	FindByID(ctx context.Context, db *gorm.DB, userID, cardID uuid.UUID) (*model.Card, error)
	// FindByIDForUpdate は対象行をロックして取得する (SELECT ... FOR UPDATE)。
	// 同一カードへの並行レビューを直列化するため、レビュー記録のトランザクション内で使う。
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, userID, cardID uuid.UUID) (*model.Card, error)
	FindByDeck(ctx context.Context, db *gorm.DB, userID, deckID uuid.UUID) ([]*model.Card, error)
	Update(ctx context.Context, tx *gorm.DB, cardID uuid.UUID, updates map[string]interface{}) error
	// UpdateSchedule はスケジューリング4項目だけを部分更新する。他のカラムには触れない。
	UpdateSchedule(ctx context.Context, tx *gorm.DB, cardID uuid.UUID, repetitions, intervalDays int, easeFactor float64, nextReviewAt time.Time) error
	Delete(ctx context.Context, tx *gorm.DB, cardID uuid.UUID) error
	// FindDueByUser はレビュー期日が来ている有効なカードを返す。
	// next_review_at ASC, created_at ASC, card_id ASC の順で、同じデータに対して常に同じ並びになる。
	FindDueByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, today time.Time, limit int) ([]*model.Card, error)
	CountDueByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, today time.Time) (int64, error)
}

type gormCardRepository struct{}

func NewGormCardRepository() CardRepository {
	return &gormCardRepository{}
}

func (r *gormCardRepository) Create(ctx context.Context, tx *gorm.DB, card *model.Card) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(card)
	if result.Error != nil {
		logger.Error("Error creating card in DB", "error", result.Error, "deck_id", card.DeckID.String())
		return fmt.Errorf("gormCardRepository.Create: %w", result.Error)
	}
	return nil
}

// ownedCardQuery はデッキ経由で所有者を絞り込んだカードのクエリを組み立てる
func ownedCardQuery(db *gorm.DB, userID uuid.UUID) *gorm.DB {
	return db.Model(&model.Card{}).
		Joins("JOIN decks ON decks.deck_id = cards.deck_id AND decks.deleted_at IS NULL").
		Where("decks.user_id = ?", userID)
}

func (r *gormCardRepository) FindByID(ctx context.Context, db *gorm.DB, userID, cardID uuid.UUID) (*model.Card, error) {
	logger := middleware.GetLogger(ctx)
	var card model.Card
	result := ownedCardQuery(db.WithContext(ctx), userID).
		Where("cards.card_id = ?", cardID).
		First(&card)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding card by ID in DB", "error", result.Error, "card_id", cardID.String())
		return nil, fmt.Errorf("gormCardRepository.FindByID: %w", result.Error)
	}
	return &card, nil
}

func (r *gormCardRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, userID, cardID uuid.UUID) (*model.Card, error) {
	logger := middleware.GetLogger(ctx)
	var card model.Card
	// JOINを含むクエリに行ロックを掛けられないDBがあるため、
	// 所有チェックとロック取得を分ける。
	deckIDs := tx.WithContext(ctx).Model(&model.Deck{}).Select("deck_id").Where("user_id = ?", userID)
	result := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("card_id = ? AND deck_id IN (?)", cardID, deckIDs).
		First(&card)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error locking card row in DB", "error", result.Error, "card_id", cardID.String())
		return nil, fmt.Errorf("gormCardRepository.FindByIDForUpdate: %w", result.Error)
	}
	return &card, nil
}

func (r *gormCardRepository) FindByDeck(ctx context.Context, db *gorm.DB, userID, deckID uuid.UUID) ([]*model.Card, error) {
	logger := middleware.GetLogger(ctx)
	var cards []*model.Card
	result := ownedCardQuery(db.WithContext(ctx), userID).
		Where("cards.deck_id = ?", deckID).
		Order("cards.created_at DESC").
		Find(&cards)
	if result.Error != nil {
		logger.Error("Error finding cards by deck in DB", "error", result.Error, "deck_id", deckID.String())
		return nil, fmt.Errorf("gormCardRepository.FindByDeck: %w", result.Error)
	}
	return cards, nil
}

func (r *gormCardRepository) Update(ctx context.Context, tx *gorm.DB, cardID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Model(&model.Card{}).Where("card_id = ?", cardID).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating card in DB", "error", result.Error, "card_id", cardID.String())
		return fmt.Errorf("gormCardRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormCardRepository) UpdateSchedule(ctx context.Context, tx *gorm.DB, cardID uuid.UUID, repetitions, intervalDays int, easeFactor float64, nextReviewAt time.Time) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Model(&model.Card{}).
		Where("card_id = ?", cardID).
		Updates(map[string]interface{}{
			"repetitions":    repetitions,
			"interval_days":  intervalDays,
			"ease_factor":    easeFactor,
			"next_review_at": nextReviewAt,
		})
	if result.Error != nil {
		logger.Error("Error updating card schedule in DB", "error", result.Error, "card_id", cardID.String())
		return fmt.Errorf("gormCardRepository.UpdateSchedule: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormCardRepository) Delete(ctx context.Context, tx *gorm.DB, cardID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("card_id = ?", cardID).Delete(&model.Card{})
	if result.Error != nil {
		logger.Error("Error deleting card in DB", "error", result.Error, "card_id", cardID.String())
		return fmt.Errorf("gormCardRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormCardRepository) FindDueByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, today time.Time, limit int) ([]*model.Card, error) {
	logger := middleware.GetLogger(ctx)
	var cards []*model.Card
	result := ownedCardQuery(db.WithContext(ctx), userID).
		Preload("Deck").
		Where("cards.is_active = ? AND cards.next_review_at <= ?", true, model.DateOnly(today)).
		Order("cards.next_review_at ASC, cards.created_at ASC, cards.card_id ASC").
		Limit(limit).
		Find(&cards)
	if result.Error != nil {
		logger.Error("Error finding due cards in DB", "error", result.Error, "user_id", userID.String())
		return nil, fmt.Errorf("gormCardRepository.FindDueByUser: %w", result.Error)
	}
	return cards, nil
}

func (r *gormCardRepository) CountDueByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, today time.Time) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	result := ownedCardQuery(db.WithContext(ctx), userID).
		Where("cards.is_active = ? AND cards.next_review_at <= ?", true, model.DateOnly(today)).
		Count(&count)
	if result.Error != nil {
		logger.Error("Error counting due cards in DB", "error", result.Error, "user_id", userID.String())
		return 0, fmt.Errorf("gormCardRepository.CountDueByUser: %w", result.Error)
	}
	return count, nil
}
