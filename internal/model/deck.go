// internal/model/deck.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Deck はカードをまとめる単位（1ユーザーが複数持つ）
type Deck struct {
	DeckID      uuid.UUID      `gorm:"type:uuid;primaryKey" json:"deck_id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"-"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// 関連 (Preload用)
	Cards []Card `gorm:"foreignKey:DeckID" json:"-"`
}

func (Deck) TableName() string {
	return "decks"
}

// デッキ作成・更新リクエストDTO
type PostDeckRequest struct {
	Title       string `json:"title" validate:"required,max=120"`
	Description string `json:"description" validate:"max=1000"`
}

type PutDeckRequest struct {
	Title       string `json:"title" validate:"required,max=120"`
	Description string `json:"description" validate:"max=1000"`
}
