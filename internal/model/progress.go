// internal/model/progress.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// StudyProgress は (ユーザー, 出題形式, レベル, 単語) ごとの学習進捗を表します。
// 複合ユニークキーに対する upsert が唯一の書き込み経路で、同一キーへの
// 並行書き込みは last-write-wins になる (タブ二重起動時の既知のハザード)。
type StudyProgress struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index:idx_progress_key,unique" json:"-"`
	Type         string    `gorm:"type:varchar(50);not null;index:idx_progress_key,unique" json:"type"`
	Level        string    `gorm:"type:varchar(20);not null;index:idx_progress_key,unique" json:"level"`
	WordID       uint      `gorm:"not null;index:idx_progress_key,unique" json:"word_id"`
	Completed    bool      `gorm:"not null;default:false" json:"completed"` // この文脈での直近の解答結果
	CurrentIndex int       `gorm:"not null;default:0" json:"current_index"` // 解答後のカーソル位置のヒント
	LastSeen     time.Time `gorm:"not null" json:"last_seen"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

func (StudyProgress) TableName() string {
	return "study_progress"
}

// 進捗upsertリクエストDTO
type PostProgressRequest struct {
	Type         string `json:"type" validate:"required"`
	Level        string `json:"level" validate:"required"`
	WordID       uint   `json:"word_id" validate:"required"`
	Completed    *bool  `json:"completed" validate:"required"`
	CurrentIndex int    `json:"current_index" validate:"gte=0"`
}

// 進捗一括リセットリクエストDTO
type ResetProgressRequest struct {
	Type  string `json:"type" validate:"required"`
	Level string `json:"level" validate:"required"`
}
