//go:generate mockery --name StudyService --output ./mocks --outpkg mocks --case=underscore
// internal/service/study_service.go
package service

import (
	"context"
	"errors"
	"time"

	"go_srs_tracker/internal/config"
	"go_srs_tracker/internal/middleware"
	"go_srs_tracker/internal/model"
	"go_srs_tracker/internal/repository"
	"go_srs_tracker/internal/srs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StudyService は「今日の出題」の取得とレビュー結果の記録を担当します。
type StudyService interface {
	GetStudyQueue(ctx context.Context, userID uuid.UUID) (*model.StudyQueueResponse, error)
	ListDueCards(ctx context.Context, userID uuid.UUID) ([]*model.StudyCardResponse, error)
	SubmitReview(ctx context.Context, userID, cardID uuid.UUID, req *model.SubmitReviewRequest) (*model.ReviewResponse, error)
}

type studyService struct {
	db         *gorm.DB
	cardRepo   repository.CardRepository
	reviewRepo repository.ReviewRepository
	cfg        *config.Config
	nowFn      func() time.Time // テストで差し替えるための時計
}

func NewStudyService(db *gorm.DB, cardRepo repository.CardRepository, reviewRepo repository.ReviewRepository, cfg *config.Config) StudyService {
	return &studyService{
		db:         db,
		cardRepo:   cardRepo,
		reviewRepo: reviewRepo,
		cfg:        cfg,
		nowFn:      time.Now,
	}
}

func toStudyCardResponse(card *model.Card) *model.StudyCardResponse {
	resp := &model.StudyCardResponse{
		CardID:    card.CardID,
		DeckID:    card.DeckID,
		FrontText: card.FrontText,
		BackText:  card.BackText,
	}
	if card.Deck != nil {
		resp.DeckTitle = card.Deck.Title
	}
	return resp
}

// GetStudyQueue は出題キューの先頭1枚と、期日が来ているカードの総数を返します。
// 同じデータに対しては常に同じカードが先頭になる (並び順はリポジトリが保証)。
func (s *studyService) GetStudyQueue(ctx context.Context, userID uuid.UUID) (*model.StudyQueueResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)
	today := model.DateOnly(s.nowFn())

	cards, err := s.cardRepo.FindDueByUser(ctx, s.db, userID, today, 1)
	if err != nil {
		logger.Error("Failed to find due cards from repository", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "出題カードの取得に失敗しました。", "", err)
	}

	count, err := s.cardRepo.CountDueByUser(ctx, s.db, userID, today)
	if err != nil {
		logger.Error("Failed to count due cards from repository", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "出題カード数の取得に失敗しました。", "", err)
	}

	resp := &model.StudyQueueResponse{DueCount: count}
	if len(cards) > 0 {
		resp.Card = toStudyCardResponse(cards[0])
	}

	logger.Info("Study queue retrieved", "due_count", count, "has_card", resp.Card != nil)
	return resp, nil
}

// ListDueCards は期日が来ているカードの一覧を期日の古い順に返します (上限あり)。
func (s *studyService) ListDueCards(ctx context.Context, userID uuid.UUID) ([]*model.StudyCardResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)
	today := model.DateOnly(s.nowFn())

	cards, err := s.cardRepo.FindDueByUser(ctx, s.db, userID, today, s.cfg.App.StudyQueueLimit)
	if err != nil {
		logger.Error("Failed to find due cards from repository", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "出題カードの取得に失敗しました。", "", err)
	}

	responses := make([]*model.StudyCardResponse, 0, len(cards))
	for _, card := range cards {
		responses = append(responses, toStudyCardResponse(card))
	}

	logger.Info("Due cards retrieved", "count", len(responses))
	return responses, nil
}

// SubmitReview はレビュー結果を記録します。
// カードの行ロック取得 → SM-2計算 → スケジューリング4項目の部分更新 →
// 履歴レコードの追記、を1トランザクションで行います。
// 計算が失敗した場合は何も書き込まれません。
func (s *studyService) SubmitReview(ctx context.Context, userID, cardID uuid.UUID, req *model.SubmitReviewRequest) (*model.ReviewResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "card_id", cardID)

	if req.Quality == nil {
		return nil, model.NewAppError("VALIDATION_ERROR", "評価は必須項目です。", "quality", model.ErrInvalidInput)
	}
	quality := *req.Quality

	// レビュー日: 指定があればそれを、なければサーバーの「今日」を使う
	reviewDate := model.DateOnly(s.nowFn())
	if req.ReviewDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", req.ReviewDate, time.UTC)
		if err != nil {
			return nil, model.NewAppError("VALIDATION_ERROR", "レビュー日はYYYY-MM-DD形式で入力してください。", "review_date", model.ErrInvalidInput)
		}
		reviewDate = parsed
	}

	var resp *model.ReviewResponse

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 行ロック付きで取得し、同一カードへの並行レビューを直列化する
		card, err := s.cardRepo.FindByIDForUpdate(ctx, tx, userID, cardID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "カードが見つかりません。", "", model.ErrNotFound)
			}
			logger.Error("Error locking card in transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの取得に失敗しました。", "", err)
		}

		if !card.IsActive {
			return model.NewAppError("CARD_INACTIVE", "無効化されたカードはレビューできません。", "", model.ErrInvalidInput)
		}

		// SM-2で次の状態を計算する。失敗したらここで打ち切り (書き込みは一切発生しない)
		result, err := srs.Calculate(quality, card.Repetitions, card.IntervalDays, card.EaseFactor, reviewDate)
		if err != nil {
			if errors.Is(err, srs.ErrQualityOutOfRange) {
				return model.NewAppError("INVALID_QUALITY", "評価は0から5の整数で入力してください。", "quality", model.ErrInvalidInput)
			}
			logger.Error("Error calculating next schedule", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "スケジュール計算に失敗しました。", "", err)
		}

		nextReviewAt := model.DateOnly(result.NextReviewAt)

		// スケジューリング4項目だけを部分更新する
		if err := s.cardRepo.UpdateSchedule(ctx, tx, card.CardID, result.Repetitions, result.IntervalDays, result.EaseFactor, nextReviewAt); err != nil {
			logger.Error("Error updating card schedule in transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "スケジュールの更新に失敗しました。", "", err)
		}

		// レビュー「後」の状態スナップショットを履歴に追記する
		review := &model.Review{
			ReviewID:     uuid.New(),
			UserID:       userID,
			CardID:       card.CardID,
			Quality:      quality,
			Repetitions:  result.Repetitions,
			IntervalDays: result.IntervalDays,
			EaseFactor:   result.EaseFactor,
			NextReviewAt: nextReviewAt,
			ReviewedAt:   s.nowFn(),
		}
		if err := s.reviewRepo.Create(ctx, tx, review); err != nil {
			logger.Error("Error creating review record in transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "レビュー履歴の記録に失敗しました。", "", err)
		}

		resp = &model.ReviewResponse{
			ReviewID:     review.ReviewID,
			CardID:       review.CardID,
			Quality:      review.Quality,
			Repetitions:  review.Repetitions,
			IntervalDays: review.IntervalDays,
			EaseFactor:   review.EaseFactor,
			NextReviewAt: nextReviewAt.Format("2006-01-02"),
			ReviewedAt:   review.ReviewedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Review recorded",
		"quality", quality,
		"repetitions", resp.Repetitions,
		"interval_days", resp.IntervalDays,
		"next_review_at", resp.NextReviewAt,
	)
	return resp, nil
}
