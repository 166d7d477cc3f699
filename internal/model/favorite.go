// internal/model/favorite.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// FavoriteWord はユーザーと単語の多対多のお気に入り関係を表します。
// 行が存在すること自体がお気に入りを意味する (トグルで作成・削除)。
type FavoriteWord struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	WordID    uint      `gorm:"primaryKey" json:"word_id"`
	CreatedAt time.Time `json:"created_at"`

	// 関連 (Preload用)
	Word *Word `gorm:"foreignKey:WordID;references:ID" json:"-"`
}

func (FavoriteWord) TableName() string {
	return "favorite_words"
}

// お気に入りトグルリクエストDTO
type ToggleFavoriteRequest struct {
	WordID uint `json:"word_id" validate:"required"`
}

// お気に入りトグルレスポンスDTO
type ToggleFavoriteResponse struct {
	Favorited bool `json:"favorited"`
}
