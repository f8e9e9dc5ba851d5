//go:generate mockery --name AnalyticsService --output ./mocks --outpkg mocks --case=underscore
// internal/service/analytics_service.go
package service

import (
	"context"
	"sort"
	"time"

	"go_srs_tracker/internal/config"
	"go_srs_tracker/internal/middleware"
	"go_srs_tracker/internal/model"
	"go_srs_tracker/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnalyticsService はレビュー履歴の集計を担当します。
type AnalyticsService interface {
	GetReviewStats(ctx context.Context, userID uuid.UUID) (*model.ReviewStatsResponse, error)
}

type analyticsService struct {
	db         *gorm.DB
	reviewRepo repository.ReviewRepository
	cfg        *config.Config
	nowFn      func() time.Time // テストで差し替えるための時計
}

func NewAnalyticsService(db *gorm.DB, reviewRepo repository.ReviewRepository, cfg *config.Config) AnalyticsService {
	return &analyticsService{
		db:         db,
		reviewRepo: reviewRepo,
		cfg:        cfg,
		nowFn:      time.Now,
	}
}

// GetReviewStats は直近の集計期間の日次実績と、全期間の苦手カード一覧を返します。
//   - 日次実績はレビューが1件以上あった日だけを含む (ゼロ埋めしない)。
//   - no_data は「期間内のレビューが0件」を意味する。苦手カードは全期間の
//     履歴から作るため、no_data=true でも空とは限らない。
func (s *analyticsService) GetReviewStats(ctx context.Context, userID uuid.UUID) (*model.ReviewStatsResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	today := model.DateOnly(s.nowFn())
	since := today.AddDate(0, 0, -s.cfg.App.AnalyticsWindowDays)

	reviews, err := s.reviewRepo.FindByUserSince(ctx, s.db, userID, since)
	if err != nil {
		logger.Error("Failed to find reviews for stats", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "レビュー履歴の取得に失敗しました。", "", err)
	}

	daily := aggregateDaily(reviews)

	hardest, err := s.reviewRepo.FindHardestCards(ctx, s.db, userID, s.cfg.App.HardCardMinReviews, s.cfg.App.HardCardLimit)
	if err != nil {
		logger.Error("Failed to aggregate hardest cards", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "苦手カードの集計に失敗しました。", "", err)
	}
	if hardest == nil {
		hardest = []model.HardCardStat{}
	}

	resp := &model.ReviewStatsResponse{
		Since:        since.Format("2006-01-02"),
		Until:        today.Format("2006-01-02"),
		NoData:       len(reviews) == 0,
		Daily:        daily,
		HardestCards: hardest,
	}

	logger.Info("Review stats aggregated",
		"window_days", s.cfg.App.AnalyticsWindowDays,
		"daily_rows", len(daily),
		"hardest_rows", len(hardest),
		"no_data", resp.NoData,
	)
	return resp, nil
}

// aggregateDaily はレビュー履歴を日付ごとの件数・平均評価にまとめる。
// 結果は日付の昇順で、レビューのない日は含まれない。
func aggregateDaily(reviews []*model.Review) []model.DailyReviewStat {
	type acc struct {
		count int64
		sum   int64
	}
	byDay := make(map[string]*acc)
	for _, r := range reviews {
		day := model.DateOnly(r.ReviewedAt).Format("2006-01-02")
		a, ok := byDay[day]
		if !ok {
			a = &acc{}
			byDay[day] = a
		}
		a.count++
		a.sum += int64(r.Quality)
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	stats := make([]model.DailyReviewStat, 0, len(days))
	for _, day := range days {
		a := byDay[day]
		stats = append(stats, model.DailyReviewStat{
			Day:            day,
			ReviewCount:    a.count,
			AverageQuality: float64(a.sum) / float64(a.count),
		})
	}
	return stats
}
