//go:generate mockery --name CardService --output ./mocks --outpkg mocks --case=underscore
// internal/service/card_service.go
package service

import (
	"context"
	"errors"
	"time"

	"go_srs_tracker/internal/middleware"
	"go_srs_tracker/internal/model"
	"go_srs_tracker/internal/repository"
	"go_srs_tracker/internal/srs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CardService interface {
	CreateCard(ctx context.Context, userID, deckID uuid.UUID, req *model.PostCardRequest) (*model.Card, error)
	GetCard(ctx context.Context, userID, cardID uuid.UUID) (*model.Card, error)
	ListCards(ctx context.Context, userID, deckID uuid.UUID) ([]*model.Card, error)
	UpdateCard(ctx context.Context, userID, cardID uuid.UUID, req *model.PutCardRequest) (*model.Card, error)
	DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error
}

type cardService struct {
	db       *gorm.DB
	cardRepo repository.CardRepository
	deckRepo repository.DeckRepository
	nowFn    func() time.Time // テストで差し替えるための時計
}

func NewCardService(db *gorm.DB, cardRepo repository.CardRepository, deckRepo repository.DeckRepository) CardService {
	return &cardService{
		db:       db,
		cardRepo: cardRepo,
		deckRepo: deckRepo,
		nowFn:    time.Now,
	}
}

// CreateCard は指定デッキに新しいカードを作成します。
// 新規カードは当日から出題対象になるよう、スケジューリング項目を初期値で埋めます。
func (s *cardService) CreateCard(ctx context.Context, userID, deckID uuid.UUID, req *model.PostCardRequest) (*model.Card, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "deck_id", deckID)

	// デッキの所有チェック (他人のデッキと存在しないデッキは区別しない)
	if _, err := s.deckRepo.FindByID(ctx, s.db, userID, deckID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "デッキが見つかりません。", "", model.ErrNotFound)
		}
		logger.Error("Error finding deck for card creation", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "デッキの取得に失敗しました。", "", err)
	}

	card := &model.Card{
		CardID:       uuid.New(),
		DeckID:       deckID,
		FrontText:    req.FrontText,
		BackText:     req.BackText,
		IsActive:     true,
		Repetitions:  0,
		IntervalDays: 0,
		EaseFactor:   srs.InitialEaseFactor,
		NextReviewAt: model.DateOnly(s.nowFn()),
	}
	if err := s.cardRepo.Create(ctx, s.db, card); err != nil {
		logger.Error("Error creating card", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カードの作成に失敗しました。", "", err)
	}

	logger.Info("Card created", "card_id", card.CardID)
	return card, nil
}

func (s *cardService) GetCard(ctx context.Context, userID, cardID uuid.UUID) (*model.Card, error) {
	card, err := s.cardRepo.FindByID(ctx, s.db, userID, cardID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "カードが見つかりません。", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カードの取得に失敗しました。", "", err)
	}
	return card, nil
}

func (s *cardService) ListCards(ctx context.Context, userID, deckID uuid.UUID) ([]*model.Card, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "deck_id", deckID)

	if _, err := s.deckRepo.FindByID(ctx, s.db, userID, deckID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "デッキが見つかりません。", "", model.ErrNotFound)
		}
		logger.Error("Error finding deck for card listing", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "デッキの取得に失敗しました。", "", err)
	}

	cards, err := s.cardRepo.FindByDeck(ctx, s.db, userID, deckID)
	if err != nil {
		logger.Error("Error listing cards", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カード一覧の取得に失敗しました。", "", err)
	}
	return cards, nil
}

// UpdateCard はカードの表示内容と有効フラグを更新します。
// スケジューリング項目はレビュー記録の経路でのみ変わるため、ここでは触りません。
func (s *cardService) UpdateCard(ctx context.Context, userID, cardID uuid.UUID, req *model.PutCardRequest) (*model.Card, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "card_id", cardID)

	var updated *model.Card
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.cardRepo.FindByID(ctx, tx, userID, cardID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "カードが見つかりません。", "", model.ErrNotFound)
			}
			logger.Error("Error finding card for update", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの取得に失敗しました。", "", err)
		}

		updates := map[string]interface{}{
			"front_text": req.FrontText,
			"back_text":  req.BackText,
			"is_active":  *req.IsActive,
		}
		if err := s.cardRepo.Update(ctx, tx, cardID, updates); err != nil {
			logger.Error("Error updating card", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの更新に失敗しました。", "", err)
		}

		card, err := s.cardRepo.FindByID(ctx, tx, userID, cardID)
		if err != nil {
			logger.Error("Error reloading card after update", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの取得に失敗しました。", "", err)
		}
		updated = card
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Card updated", "is_active", updated.IsActive)
	return updated, nil
}

func (s *cardService) DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "card_id", cardID)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.cardRepo.FindByID(ctx, tx, userID, cardID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "カードが見つかりません。", "", model.ErrNotFound)
			}
			logger.Error("Error finding card for delete", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの取得に失敗しました。", "", err)
		}
		if err := s.cardRepo.Delete(ctx, tx, cardID); err != nil {
			logger.Error("Error deleting card", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの削除に失敗しました。", "", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("Card deleted")
	return nil
}
