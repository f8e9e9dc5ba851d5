// internal/service/study_service_test.go
package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go_srs_tracker/internal/config"
	"go_srs_tracker/internal/model"
	"go_srs_tracker/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- テストヘルパー関数 (インメモリDBセットアップ) ---
// リポジトリはモックするため、DBはトランザクションの土台としてのみ使う。
func setupTestDBStudy() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // テスト中はログを抑制
	})
	if err != nil {
		panic("failed to connect database for study service testing: " + err.Error())
	}
	return db
}

func intPtr(i int) *int { return &i }

// --- Test GetStudyQueue ---
func Test_studyService_GetStudyQueue(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBStudy()
	testConfig := &config.Config{
		App: config.AppConfig{StudyQueueLimit: 10},
	}

	userID := uuid.New()
	deckID := uuid.New()
	cardID1 := uuid.New()
	cardID2 := uuid.New()

	fixedNow := time.Date(2024, 3, 10, 15, 4, 5, 0, time.UTC)
	today := model.DateOnly(fixedNow)

	dueCards := []*model.Card{
		{
			CardID: cardID1, DeckID: deckID, FrontText: "front1", BackText: "back1",
			Deck: &model.Deck{DeckID: deckID, UserID: userID, Title: "英単語"},
		},
		{
			CardID: cardID2, DeckID: deckID, FrontText: "front2", BackText: "back2",
			Deck: &model.Deck{DeckID: deckID, UserID: userID, Title: "英単語"},
		},
	}

	tests := []struct {
		name        string
		setupMocks  func(cm *mocks.CardRepository)
		wantErr     error
		wantErrCode string
		wantCardID  *uuid.UUID
		wantCount   int64
	}{
		{
			name: "正常系: 先頭カードと総数を返す",
			setupMocks: func(cm *mocks.CardRepository) {
				cm.On("FindDueByUser", ctx, db, userID, today, 1).Return(dueCards[:1], nil).Once()
				cm.On("CountDueByUser", ctx, db, userID, today).Return(int64(2), nil).Once()
			},
			wantErr:    nil,
			wantCardID: &cardID1,
			wantCount:  2,
		},
		{
			name: "正常系: 出題対象が0件ならカードはnil",
			setupMocks: func(cm *mocks.CardRepository) {
				cm.On("FindDueByUser", ctx, db, userID, today, 1).Return([]*model.Card{}, nil).Once()
				cm.On("CountDueByUser", ctx, db, userID, today).Return(int64(0), nil).Once()
			},
			wantErr:    nil,
			wantCardID: nil,
			wantCount:  0,
		},
		{
			name: "異常系: リポジトリでDBエラー",
			setupMocks: func(cm *mocks.CardRepository) {
				cm.On("FindDueByUser", ctx, db, userID, today, 1).Return(nil, errors.New("db error")).Once()
			},
			wantErrCode: "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCardRepo := new(mocks.CardRepository)
			mockReviewRepo := new(mocks.ReviewRepository)
			tt.setupMocks(mockCardRepo)

			svc := NewStudyService(db, mockCardRepo, mockReviewRepo, testConfig).(*studyService)
			svc.nowFn = func() time.Time { return fixedNow }

			resp, err := svc.GetStudyQueue(ctx, userID)

			if tt.wantErr != nil || tt.wantErrCode != "" {
				require.Error(t, err)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				if tt.wantErrCode != "" {
					var appErr *model.AppError
					require.ErrorAs(t, err, &appErr)
					assert.Equal(t, tt.wantErrCode, appErr.Detail.Code)
				}
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				require.NotNil(t, resp)
				assert.Equal(t, tt.wantCount, resp.DueCount)
				if tt.wantCardID == nil {
					assert.Nil(t, resp.Card)
				} else {
					require.NotNil(t, resp.Card)
					assert.Equal(t, *tt.wantCardID, resp.Card.CardID)
					assert.Equal(t, "英単語", resp.Card.DeckTitle)
				}
			}
			mockCardRepo.AssertExpectations(t)
		})
	}
}

// --- Test ListDueCards ---
func Test_studyService_ListDueCards(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBStudy()
	testConfig := &config.Config{
		App: config.AppConfig{StudyQueueLimit: 20},
	}

	userID := uuid.New()
	deckID := uuid.New()
	fixedNow := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	today := model.DateOnly(fixedNow)

	dueCards := []*model.Card{
		{CardID: uuid.New(), DeckID: deckID, FrontText: "a", BackText: "1", Deck: &model.Deck{DeckID: deckID, Title: "数学"}},
		{CardID: uuid.New(), DeckID: deckID, FrontText: "b", BackText: "2", Deck: &model.Deck{DeckID: deckID, Title: "数学"}},
	}

	t.Run("正常系: 設定の上限件数で問い合わせる", func(t *testing.T) {
		mockCardRepo := new(mocks.CardRepository)
		mockReviewRepo := new(mocks.ReviewRepository)
		mockCardRepo.On("FindDueByUser", ctx, db, userID, today, 20).Return(dueCards, nil).Once()

		svc := NewStudyService(db, mockCardRepo, mockReviewRepo, testConfig).(*studyService)
		svc.nowFn = func() time.Time { return fixedNow }

		resp, err := svc.ListDueCards(ctx, userID)
		require.NoError(t, err)
		require.Len(t, resp, 2)
		assert.Equal(t, "a", resp[0].FrontText)
		assert.Equal(t, "数学", resp[0].DeckTitle)
		mockCardRepo.AssertExpectations(t)
	})

	t.Run("正常系: 0件なら空スライスを返す", func(t *testing.T) {
		mockCardRepo := new(mocks.CardRepository)
		mockReviewRepo := new(mocks.ReviewRepository)
		mockCardRepo.On("FindDueByUser", ctx, db, userID, today, 20).Return([]*model.Card{}, nil).Once()

		svc := NewStudyService(db, mockCardRepo, mockReviewRepo, testConfig).(*studyService)
		svc.nowFn = func() time.Time { return fixedNow }

		resp, err := svc.ListDueCards(ctx, userID)
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Len(t, resp, 0)
		mockCardRepo.AssertExpectations(t)
	})
}

// --- Test SubmitReview ---
func Test_studyService_SubmitReview(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBStudy()
	testConfig := &config.Config{}

	userID := uuid.New()
	deckID := uuid.New()
	cardID := uuid.New()

	fixedNow := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	newCard := func() *model.Card {
		return &model.Card{
			CardID: cardID, DeckID: deckID, FrontText: "front", BackText: "back",
			IsActive: true, Repetitions: 0, IntervalDays: 0, EaseFactor: 2.5,
		}
	}

	tests := []struct {
		name        string
		req         *model.SubmitReviewRequest
		setupMocks  func(cm *mocks.CardRepository, rm *mocks.ReviewRepository)
		wantErr     error
		wantErrCode string
		check       func(t *testing.T, resp *model.ReviewResponse)
	}{
		{
			name: "正常系: 初回レビュー(q=5)で翌日に再出題",
			req:  &model.SubmitReviewRequest{Quality: intPtr(5), ReviewDate: "2024-03-10"},
			setupMocks: func(cm *mocks.CardRepository, rm *mocks.ReviewRepository) {
				cm.On("FindByIDForUpdate", ctx, mock.AnythingOfType("*gorm.DB"), userID, cardID).
					Return(newCard(), nil).Once()
				cm.On("UpdateSchedule", ctx, mock.AnythingOfType("*gorm.DB"), cardID, 1, 1, mock.AnythingOfType("float64"), time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)).
					Run(func(args mock.Arguments) {
						assert.InDelta(t, 2.6, args.Get(5).(float64), 1e-9)
					}).
					Return(nil).Once()
				rm.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.MatchedBy(func(r *model.Review) bool {
					assert.Equal(t, userID, r.UserID)
					assert.Equal(t, cardID, r.CardID)
					assert.Equal(t, 5, r.Quality)
					assert.Equal(t, 1, r.Repetitions)
					assert.Equal(t, 1, r.IntervalDays)
					assert.InDelta(t, 2.6, r.EaseFactor, 1e-9)
					assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), r.NextReviewAt)
					return true
				})).Return(nil).Once()
			},
			wantErr: nil,
			check: func(t *testing.T, resp *model.ReviewResponse) {
				assert.Equal(t, 1, resp.Repetitions)
				assert.Equal(t, 1, resp.IntervalDays)
				assert.Equal(t, "2024-03-11", resp.NextReviewAt)
			},
		},
		{
			name: "正常系: review_date省略時はサーバーの今日を使う",
			req:  &model.SubmitReviewRequest{Quality: intPtr(2)},
			setupMocks: func(cm *mocks.CardRepository, rm *mocks.ReviewRepository) {
				card := newCard()
				card.Repetitions = 3
				card.IntervalDays = 15
				card.EaseFactor = 2.6
				cm.On("FindByIDForUpdate", ctx, mock.AnythingOfType("*gorm.DB"), userID, cardID).
					Return(card, nil).Once()
				// 失敗レビューは反復回数をリセットし、翌日に再出題する
				cm.On("UpdateSchedule", ctx, mock.AnythingOfType("*gorm.DB"), cardID, 0, 1, mock.AnythingOfType("float64"), time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)).
					Run(func(args mock.Arguments) {
						assert.InDelta(t, 2.28, args.Get(5).(float64), 1e-9)
					}).
					Return(nil).Once()
				rm.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Review")).
					Return(nil).Once()
			},
			wantErr: nil,
			check: func(t *testing.T, resp *model.ReviewResponse) {
				assert.Equal(t, 0, resp.Repetitions)
				assert.Equal(t, 1, resp.IntervalDays)
				assert.Equal(t, "2024-03-11", resp.NextReviewAt)
			},
		},
		{
			name: "異常系: カードが見つからない",
			req:  &model.SubmitReviewRequest{Quality: intPtr(4)},
			setupMocks: func(cm *mocks.CardRepository, rm *mocks.ReviewRepository) {
				cm.On("FindByIDForUpdate", ctx, mock.AnythingOfType("*gorm.DB"), userID, cardID).
					Return(nil, model.ErrNotFound).Once()
			},
			wantErr: model.ErrNotFound,
		},
		{
			name: "異常系: 無効化されたカードはレビューできない",
			req:  &model.SubmitReviewRequest{Quality: intPtr(4)},
			setupMocks: func(cm *mocks.CardRepository, rm *mocks.ReviewRepository) {
				card := newCard()
				card.IsActive = false
				cm.On("FindByIDForUpdate", ctx, mock.AnythingOfType("*gorm.DB"), userID, cardID).
					Return(card, nil).Once()
			},
			wantErr: model.ErrInvalidInput,
		},
		{
			name: "異常系: 評価が範囲外なら何も書き込まれない",
			req:  &model.SubmitReviewRequest{Quality: intPtr(6)},
			setupMocks: func(cm *mocks.CardRepository, rm *mocks.ReviewRepository) {
				cm.On("FindByIDForUpdate", ctx, mock.AnythingOfType("*gorm.DB"), userID, cardID).
					Return(newCard(), nil).Once()
			},
			wantErr: model.ErrInvalidInput,
		},
		{
			name: "異常系: review_dateの形式が不正",
			req:  &model.SubmitReviewRequest{Quality: intPtr(4), ReviewDate: "10-03-2024"},
			setupMocks: func(cm *mocks.CardRepository, rm *mocks.ReviewRepository) {
				// リポジトリは一切呼ばれない
			},
			wantErr: model.ErrInvalidInput,
		},
		{
			name: "異常系: スケジュール更新でDBエラー",
			req:  &model.SubmitReviewRequest{Quality: intPtr(5), ReviewDate: "2024-03-10"},
			setupMocks: func(cm *mocks.CardRepository, rm *mocks.ReviewRepository) {
				cm.On("FindByIDForUpdate", ctx, mock.AnythingOfType("*gorm.DB"), userID, cardID).
					Return(newCard(), nil).Once()
				cm.On("UpdateSchedule", ctx, mock.AnythingOfType("*gorm.DB"), cardID, 1, 1, mock.AnythingOfType("float64"), time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)).
					Return(errors.New("db error on update")).Once()
			},
			wantErrCode: "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCardRepo := new(mocks.CardRepository)
			mockReviewRepo := new(mocks.ReviewRepository)
			tt.setupMocks(mockCardRepo, mockReviewRepo)

			svc := NewStudyService(db, mockCardRepo, mockReviewRepo, testConfig).(*studyService)
			svc.nowFn = func() time.Time { return fixedNow }

			resp, err := svc.SubmitReview(ctx, userID, cardID, tt.req)

			if tt.wantErr != nil || tt.wantErrCode != "" {
				require.Error(t, err)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				if tt.wantErrCode != "" {
					var appErr *model.AppError
					require.ErrorAs(t, err, &appErr)
					assert.Equal(t, tt.wantErrCode, appErr.Detail.Code)
				}
				assert.Nil(t, resp)
				// 失敗時はスケジュール変更も履歴追記も起きないこと
				mockReviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				require.NotNil(t, resp)
				if tt.check != nil {
					tt.check(t, resp)
				}
			}
			mockCardRepo.AssertExpectations(t)
			mockReviewRepo.AssertExpectations(t)
		})
	}
}
