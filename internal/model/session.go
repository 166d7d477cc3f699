// internal/model/session.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// BaseSessionSuffix はベースデッキ順序を保存するセッションの type 接尾辞。
// 例: "flashcards-base"。リロードしても1周目のシャッフル順が変わらないように
// するための永続化で、カーソルではなく順序だけが意味を持つ。
const BaseSessionSuffix = "-base"

// BaseSessionType は出題形式に対応するベースデッキセッションの type を返します
func BaseSessionType(exerciseType string) string {
	return exerciseType + BaseSessionSuffix
}

// TrimBaseSuffix はセッションの type から "-base" 接尾辞を外し、素の出題形式を返します
func TrimBaseSuffix(sessionType string) string {
	return strings.TrimSuffix(sessionType, BaseSessionSuffix)
}

// ReviewSession は (ユーザー, 出題形式, レベル) ごとの保存済みデッキを表します。
// type がそのままの場合は復習モードのアクティブなデッキ、"-base" 付きの場合は
// 1周目のシャッフル順の控えとして使われる。
type ReviewSession struct {
	ID           uint       `gorm:"primaryKey" json:"-"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index:idx_session_key,unique" json:"-"`
	Type         string     `gorm:"type:varchar(50);not null;index:idx_session_key,unique" json:"type"`
	Level        string     `gorm:"type:varchar(20);not null;index:idx_session_key,unique" json:"level"`
	WordIDs      WordIDList `gorm:"serializer:json;not null" json:"word_ids"` // デッキの順序そのもの
	CurrentIndex int        `gorm:"not null;default:0" json:"current_index"`
	CreatedAt    time.Time  `json:"-"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (ReviewSession) TableName() string {
	return "review_sessions"
}

// WordIDList はJSONカラムとして保存される単語IDの順序付きリスト
type WordIDList []uint

// Contains は id がリストに含まれるかどうかを返します
func (l WordIDList) Contains(id uint) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// セッションupsertリクエストDTO
type PostSessionRequest struct {
	Type         string  `json:"type" validate:"required"`
	Level        string  `json:"level" validate:"required"`
	WordIDs      *[]uint `json:"word_ids" validate:"required"` // 配列であることを必須にする (nil拒否)
	CurrentIndex int     `json:"current_index" validate:"gte=0"`
}

// セッション取得レスポンスDTO (存在しない場合はボディが null になる)
type SessionResponse struct {
	Type         string `json:"type"`
	Level        string `json:"level"`
	WordIDs      []uint `json:"word_ids"`
	CurrentIndex int    `json:"current_index"`
}
