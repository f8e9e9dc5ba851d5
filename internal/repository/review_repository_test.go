// internal/repository/review_repository_test.go
package repository

import (
	"context"
	"testing"
	"time"

	"go_srs_tracker/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReview(userID, cardID uuid.UUID, quality int, reviewedAt time.Time) *model.Review {
	return &model.Review{
		ReviewID:     uuid.New(),
		UserID:       userID,
		CardID:       cardID,
		Quality:      quality,
		Repetitions:  1,
		IntervalDays: 1,
		EaseFactor:   2.5,
		NextReviewAt: model.DateOnly(reviewedAt).AddDate(0, 0, 1),
		ReviewedAt:   reviewedAt,
	}
}

func Test_gormReviewRepository_FindByUserSince(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBCard(t)
	repo := NewGormReviewRepository()

	userID, deckID := createTestUserAndDeck(t, db)
	otherUserID, _ := createTestUserAndDeck(t, db)

	base := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	cardID := createTestCard(t, db, deckID, "front", base, true, base)

	since := base.AddDate(0, 0, -30)

	// 期間内2件 (順序確認のため逆順で作成)、期間外1件、他ユーザー1件
	inWindowNew := newReview(userID, cardID, 5, base.Add(-1*time.Hour))
	inWindowOld := newReview(userID, cardID, 3, base.AddDate(0, 0, -10))
	outOfWindow := newReview(userID, cardID, 1, base.AddDate(0, 0, -40))
	otherUsers := newReview(otherUserID, cardID, 2, base.Add(-2*time.Hour))
	for _, rv := range []*model.Review{inWindowNew, inWindowOld, outOfWindow, otherUsers} {
		require.NoError(t, repo.Create(ctx, db, rv))
	}

	reviews, err := repo.FindByUserSince(ctx, db, userID, since)
	require.NoError(t, err)
	require.Len(t, reviews, 2)

	// 古い順で返る
	assert.Equal(t, inWindowOld.ReviewID, reviews[0].ReviewID)
	assert.Equal(t, inWindowNew.ReviewID, reviews[1].ReviewID)
}

func Test_gormReviewRepository_FindHardestCards(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBCard(t)
	repo := NewGormReviewRepository()

	userID, deckID := createTestUserAndDeck(t, db)

	base := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	hardID := createTestCard(t, db, deckID, "hard", base, true, base)
	easyID := createTestCard(t, db, deckID, "easy", base, true, base)
	rareID := createTestCard(t, db, deckID, "rare", base, true, base)

	// hard: 3回 平均1.0 / easy: 3回 平均4.0 / rare: 2回 (回数不足で除外)
	seed := []*model.Review{
		newReview(userID, hardID, 0, base.Add(1*time.Minute)),
		newReview(userID, hardID, 1, base.Add(2*time.Minute)),
		newReview(userID, hardID, 2, base.Add(3*time.Minute)),
		newReview(userID, easyID, 4, base.Add(4*time.Minute)),
		newReview(userID, easyID, 4, base.Add(5*time.Minute)),
		newReview(userID, easyID, 4, base.Add(6*time.Minute)),
		newReview(userID, rareID, 0, base.Add(7*time.Minute)),
		newReview(userID, rareID, 0, base.Add(8*time.Minute)),
	}
	for _, rv := range seed {
		require.NoError(t, repo.Create(ctx, db, rv))
	}

	t.Run("平均評価の低い順に返し、回数不足のカードは含めない", func(t *testing.T) {
		stats, err := repo.FindHardestCards(ctx, db, userID, 3, 10)
		require.NoError(t, err)
		require.Len(t, stats, 2)

		assert.Equal(t, hardID, stats[0].CardID)
		assert.Equal(t, "hard", stats[0].FrontText)
		assert.Equal(t, "deck", stats[0].DeckTitle)
		assert.InDelta(t, 1.0, stats[0].AverageQuality, 1e-9)
		assert.Equal(t, int64(3), stats[0].ReviewCount)

		assert.Equal(t, easyID, stats[1].CardID)
		assert.InDelta(t, 4.0, stats[1].AverageQuality, 1e-9)
	})

	t.Run("limitで件数を制限できる", func(t *testing.T) {
		stats, err := repo.FindHardestCards(ctx, db, userID, 3, 1)
		require.NoError(t, err)
		require.Len(t, stats, 1)
		assert.Equal(t, hardID, stats[0].CardID)
	})

	t.Run("履歴のないユーザーは空", func(t *testing.T) {
		stats, err := repo.FindHardestCards(ctx, db, uuid.New(), 3, 10)
		require.NoError(t, err)
		assert.Len(t, stats, 0)
	})
}

// 平均評価が同じカード同士は、レビュー回数の多い方を先に返す。
func Test_gormReviewRepository_FindHardestCards_TieBreak(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBCard(t)
	repo := NewGormReviewRepository()

	userID, deckID := createTestUserAndDeck(t, db)

	base := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	fewerID := createTestCard(t, db, deckID, "fewer", base, true, base)
	moreID := createTestCard(t, db, deckID, "more", base, true, base)

	// 両方とも平均2.0。more は4回、fewer は3回レビュー済み
	seed := []*model.Review{
		newReview(userID, fewerID, 2, base.Add(1*time.Minute)),
		newReview(userID, fewerID, 2, base.Add(2*time.Minute)),
		newReview(userID, fewerID, 2, base.Add(3*time.Minute)),
		newReview(userID, moreID, 1, base.Add(4*time.Minute)),
		newReview(userID, moreID, 3, base.Add(5*time.Minute)),
		newReview(userID, moreID, 2, base.Add(6*time.Minute)),
		newReview(userID, moreID, 2, base.Add(7*time.Minute)),
	}
	for _, rv := range seed {
		require.NoError(t, repo.Create(ctx, db, rv))
	}

	stats, err := repo.FindHardestCards(ctx, db, userID, 3, 10)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, moreID, stats[0].CardID)
	assert.Equal(t, int64(4), stats[0].ReviewCount)
	assert.InDelta(t, 2.0, stats[0].AverageQuality, 1e-9)

	assert.Equal(t, fewerID, stats[1].CardID)
	assert.Equal(t, int64(3), stats[1].ReviewCount)
	assert.InDelta(t, 2.0, stats[1].AverageQuality, 1e-9)
}
