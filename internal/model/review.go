// internal/model/review.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Review は1回のレビュー結果の履歴レコードです。
// 作成後は更新・削除されない追記専用のデータで、quality と
// レビュー「後」のスケジューリング状態のスナップショットを保持します。
type Review struct {
	ReviewID uuid.UUID `gorm:"type:uuid;primaryKey" json:"review_id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	CardID   uuid.UUID `gorm:"type:uuid;not null;index" json:"card_id"`

	Quality int `gorm:"not null" json:"quality"` // 0..5 の想起評価

	// レビュー適用後の状態スナップショット
	Repetitions  int       `gorm:"not null" json:"repetitions"`
	IntervalDays int       `gorm:"not null" json:"interval_days"`
	EaseFactor   float64   `gorm:"not null" json:"ease_factor"`
	NextReviewAt time.Time `gorm:"type:date;not null" json:"next_review_at"`

	ReviewedAt time.Time `gorm:"not null;index" json:"reviewed_at"`
}

func (Review) TableName() string {
	return "reviews"
}

// レビュー結果送信リクエストのDTO。
// quality は 0..5 の整数のみ受け付ける (範囲外は 400)。
// review_date を省略した場合はサーバーの「今日」を使う。
type SubmitReviewRequest struct {
	Quality    *int   `json:"quality" validate:"required,min=0,max=5"`
	ReviewDate string `json:"review_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// ReviewResponse はレビュー確定後の新しい状態を返すレスポンスDTO
type ReviewResponse struct {
	ReviewID     uuid.UUID `json:"review_id"`
	CardID       uuid.UUID `json:"card_id"`
	Quality      int       `json:"quality"`
	Repetitions  int       `json:"repetitions"`
	IntervalDays int       `json:"interval_days"`
	EaseFactor   float64   `json:"ease_factor"`
	NextReviewAt string    `json:"next_review_at"` // YYYY-MM-DD
	ReviewedAt   time.Time `json:"reviewed_at"`
}

// StudyCardResponse は出題1枚分のレスポンスDTO
type StudyCardResponse struct {
	CardID    uuid.UUID `json:"card_id"`
	DeckID    uuid.UUID `json:"deck_id"`
	DeckTitle string    `json:"deck_title"`
	FrontText string    `json:"front_text"`
	BackText  string    `json:"back_text"` // 正解表示用に含める
}

// StudyQueueResponse は「今日の出題」レスポンスDTO。
// 先頭の1枚と残りの枚数だけを返す (UIは1枚ずつ出題する)。
type StudyQueueResponse struct {
	Card     *StudyCardResponse `json:"card"` // 出題対象がない場合は null
	DueCount int64              `json:"due_count"`
}
