//go:generate mockery --name DeckService --output ./mocks --outpkg mocks --case=underscore
// internal/service/deck_service.go
package service

import (
	"context"
	"errors"

	"go_srs_tracker/internal/middleware"
	"go_srs_tracker/internal/model"
	"go_srs_tracker/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeckService interface {
	CreateDeck(ctx context.Context, userID uuid.UUID, req *model.PostDeckRequest) (*model.Deck, error)
	GetDeck(ctx context.Context, userID, deckID uuid.UUID) (*model.Deck, error)
	ListDecks(ctx context.Context, userID uuid.UUID) ([]*model.Deck, error)
	UpdateDeck(ctx context.Context, userID, deckID uuid.UUID, req *model.PutDeckRequest) (*model.Deck, error)
	DeleteDeck(ctx context.Context, userID, deckID uuid.UUID) error
}

type deckService struct {
	db       *gorm.DB
	deckRepo repository.DeckRepository
}

func NewDeckService(db *gorm.DB, deckRepo repository.DeckRepository) DeckService {
	return &deckService{
		db:       db,
		deckRepo: deckRepo,
	}
}

func (s *deckService) CreateDeck(ctx context.Context, userID uuid.UUID, req *model.PostDeckRequest) (*model.Deck, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	deck := &model.Deck{
		DeckID:      uuid.New(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.deckRepo.Create(ctx, s.db, deck); err != nil {
		logger.Error("Error creating deck", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "デッキの作成に失敗しました。", "", err)
	}

	logger.Info("Deck created", "deck_id", deck.DeckID)
	return deck, nil
}

func (s *deckService) GetDeck(ctx context.Context, userID, deckID uuid.UUID) (*model.Deck, error) {
	deck, err := s.deckRepo.FindByID(ctx, s.db, userID, deckID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "デッキが見つかりません。", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "デッキの取得に失敗しました。", "", err)
	}
	return deck, nil
}

func (s *deckService) ListDecks(ctx context.Context, userID uuid.UUID) ([]*model.Deck, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	decks, err := s.deckRepo.FindByUser(ctx, s.db, userID)
	if err != nil {
		logger.Error("Error listing decks", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "デッキ一覧の取得に失敗しました。", "", err)
	}
	return decks, nil
}

func (s *deckService) UpdateDeck(ctx context.Context, userID, deckID uuid.UUID, req *model.PutDeckRequest) (*model.Deck, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "deck_id", deckID)

	var updated *model.Deck
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"title":       req.Title,
			"description": req.Description,
		}
		if err := s.deckRepo.Update(ctx, tx, userID, deckID, updates); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "デッキが見つかりません。", "", model.ErrNotFound)
			}
			logger.Error("Error updating deck", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "デッキの更新に失敗しました。", "", err)
		}

		deck, err := s.deckRepo.FindByID(ctx, tx, userID, deckID)
		if err != nil {
			logger.Error("Error reloading deck after update", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "デッキの取得に失敗しました。", "", err)
		}
		updated = deck
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Deck updated")
	return updated, nil
}

func (s *deckService) DeleteDeck(ctx context.Context, userID, deckID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "deck_id", deckID)

	if err := s.deckRepo.Delete(ctx, s.db, userID, deckID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("NOT_FOUND", "デッキが見つかりません。", "", model.ErrNotFound)
		}
		logger.Error("Error deleting deck", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "デッキの削除に失敗しました。", "", err)
	}

	logger.Info("Deck deleted")
	return nil
}
