// internal/model/card.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Card は1枚のフラッシュカードと、そのスケジューリング状態を表します。
// スケジューリング4項目 (repetitions / interval_days / ease_factor /
// next_review_at) はレビュー記録の処理でのみ更新されます。
type Card struct {
	CardID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"card_id"`
	DeckID    uuid.UUID `gorm:"type:uuid;not null;index" json:"deck_id"`
	FrontText string    `gorm:"not null" json:"front_text"` // 問題面
	BackText  string    `gorm:"not null" json:"back_text"`  // 解答面
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`

	Repetitions  int       `gorm:"not null;default:0" json:"repetitions"`
	IntervalDays int       `gorm:"not null;default:0" json:"interval_days"`
	EaseFactor   float64   `gorm:"not null;default:2.5" json:"ease_factor"`
	NextReviewAt time.Time `gorm:"type:date;not null;index" json:"next_review_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"` // 論理削除用

	// 関連 (Preload用)
	Deck *Deck `gorm:"foreignKey:DeckID;references:DeckID" json:"-"`
}

func (Card) TableName() string {
	return "cards"
}

// カード作成リクエストDTO
type PostCardRequest struct {
	FrontText string `json:"front_text" validate:"required"`
	BackText  string `json:"back_text" validate:"required"`
}

// カード更新（全体）リクエストDTO
type PutCardRequest struct {
	FrontText string `json:"front_text" validate:"required"`
	BackText  string `json:"back_text" validate:"required"`
	IsActive  *bool  `json:"is_active" validate:"required"`
}

// DateOnly は時刻成分を落とし、日付 (UTC 00:00) に正規化します。
// next_review_at は日付単位で比較するため、書き込み前に必ず通します。
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
