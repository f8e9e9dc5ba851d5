// internal/model/analytics.go
package model

import "github.com/google/uuid"

// DailyReviewStat はレビュー実績の日次集計1行分。
// レビューが1件もない日はゼロ埋めせず、行自体を含めない。
type DailyReviewStat struct {
	Day            string  `json:"day"` // YYYY-MM-DD
	ReviewCount    int64   `json:"review_count"`
	AverageQuality float64 `json:"average_quality"`
}

// HardCardStat は「苦手カード」ランキングの1行分。
// 全期間の履歴を対象に、平均qualityの低い順に並ぶ。
type HardCardStat struct {
	CardID         uuid.UUID `json:"card_id"`
	FrontText      string    `json:"front_text"`
	DeckTitle      string    `json:"deck_title"`
	AverageQuality float64   `json:"average_quality"`
	ReviewCount    int64     `json:"review_count"`
}

// ReviewStatsResponse は分析APIのレスポンスDTO。
// NoData は「集計期間内にレビューが0件」を示すフラグで、
// 苦手カード一覧 (全期間) が空かどうかとは独立している。
type ReviewStatsResponse struct {
	Since        string            `json:"since"` // YYYY-MM-DD (期間の始点)
	Until        string            `json:"until"` // YYYY-MM-DD (今日)
	NoData       bool              `json:"no_data"`
	Daily        []DailyReviewStat `json:"daily"`
	HardestCards []HardCardStat    `json:"hardest_cards"`
}
