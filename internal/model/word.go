// internal/model/word.go
package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// JLPTレベル (大文字で保存・比較する)
const (
	LevelN1 = "N1"
	LevelN2 = "N2"
	LevelN3 = "N3"
	LevelN4 = "N4"
	LevelN5 = "N5"

	// PseudoLevelFavorites はお気に入り単語だけを対象とする擬似レベル。
	// カタログではなく favorite_words の結合で解決され、進捗・セッションの
	// 書き込み対象にはならない。
	PseudoLevelFavorites = "favorites"
)

// NormalizeLevel はレベル文字列を保存形式に正規化します (n3 -> N3, FAVORITES -> favorites)
func NormalizeLevel(level string) string {
	l := strings.TrimSpace(level)
	if strings.EqualFold(l, PseudoLevelFavorites) {
		return PseudoLevelFavorites
	}
	return strings.ToUpper(l)
}

// IsValidLevel はカタログレベルまたは擬似レベルかどうかを判定します
func IsValidLevel(level string) bool {
	switch NormalizeLevel(level) {
	case LevelN1, LevelN2, LevelN3, LevelN4, LevelN5, PseudoLevelFavorites:
		return true
	}
	return false
}

// Word はJLPT単語とその例文を表します
type Word struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Level           string         `gorm:"type:varchar(10);not null;index" json:"level"`
	Kanji           string         `gorm:"not null" json:"kanji"`
	Furigana        string         `gorm:"not null" json:"furigana"`
	ExampleSentence string         `gorm:"not null" json:"example_sentence"`
	AnswerInExample string         `gorm:"not null" json:"answer_in_example"` // 例文中に一度だけ現れる規約
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"` // 論理削除用

	// 関連 (Preload用)
	Meanings []WordMeaning `gorm:"foreignKey:WordID;references:ID" json:"meanings"`
}

func (Word) TableName() string {
	return "words"
}

// WordMeaning は単語の言語別の意味を表します。同一言語コードが複数ある場合は
// 主キー順の先頭を採用する ("first match for code X")。
type WordMeaning struct {
	ID                     uint   `gorm:"primaryKey" json:"-"`
	WordID                 uint   `gorm:"not null;index" json:"-"`
	LanguageCode           string `gorm:"type:varchar(10);not null" json:"language_code"`
	WordMeaning            string `gorm:"not null" json:"word_meaning"`
	ExampleSentenceMeaning string `gorm:"not null" json:"example_sentence_meaning"`
}

func (WordMeaning) TableName() string {
	return "word_meanings"
}

// MeaningFor は指定した言語コードの意味を返します (最初に一致したもの)
func (w *Word) MeaningFor(languageCode string) *WordMeaning {
	for i := range w.Meanings {
		if w.Meanings[i].LanguageCode == languageCode {
			return &w.Meanings[i]
		}
	}
	return nil
}

// 単語の意味リクエストDTO
type WordMeaningRequest struct {
	LanguageCode           string `json:"language_code" validate:"required,min=2,max=10"`
	WordMeaning            string `json:"word_meaning" validate:"required"`
	ExampleSentenceMeaning string `json:"example_sentence_meaning" validate:"required"`
}

// 単語作成リクエストDTO
type PostWordRequest struct {
	Level           string               `json:"level" validate:"required"`
	Kanji           string               `json:"kanji" validate:"required"`
	Furigana        string               `json:"furigana" validate:"required"`
	ExampleSentence string               `json:"example_sentence" validate:"required"`
	AnswerInExample string               `json:"answer_in_example" validate:"required"`
	Meanings        []WordMeaningRequest `json:"meanings" validate:"required,min=1,dive"`
}

// 単語更新リクエストDTO。nil のフィールドは変更しない (部分更新)
type PutWordRequest struct {
	Level           *string              `json:"level,omitempty"`
	Kanji           *string              `json:"kanji,omitempty" validate:"omitempty,min=1"`
	Furigana        *string              `json:"furigana,omitempty"`
	ExampleSentence *string              `json:"example_sentence,omitempty"`
	AnswerInExample *string              `json:"answer_in_example,omitempty"`
	Meanings        []WordMeaningRequest `json:"meanings,omitempty" validate:"omitempty,min=1,dive"`
}
