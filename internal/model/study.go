// internal/model/study.go
package model

// 出題形式。クイズは出題方向ごとに別の形式として扱い、進捗・セッションの
// キーも分離する。
const (
	ExerciseFlashcards      = "flashcards"
	ExerciseQuizKanjiToKana = "quiz-kanji-to-furigana"
	ExerciseQuizKanaToKanji = "quiz-furigana-to-kanji"
	ExerciseFillInTheBlank  = "fill"
)

// IsValidExerciseType は既知の出題形式かどうかを判定します
func IsValidExerciseType(exerciseType string) bool {
	switch exerciseType {
	case ExerciseFlashcards, ExerciseQuizKanjiToKana, ExerciseQuizKanaToKanji, ExerciseFillInTheBlank:
		return true
	}
	return false
}

// DeckResponse はデッキ構築APIのレスポンスDTO
type DeckResponse struct {
	Words        []*Word `json:"words"`
	CurrentIndex int     `json:"current_index"`
	ReviewMode   bool    `json:"review_mode"`
	TotalCount   int     `json:"total_count"` // ベースデッキ全体の単語数 (進捗バー用)
}

// SubmitAnswerRequest は解答送信APIのリクエストDTO。
// クライアントが保持するデッキとカーソルを毎回フルで送る (差分ではなく全量)。
// fill の場合は input を送りサーバー側で判定、それ以外は result で自己申告する。
type SubmitAnswerRequest struct {
	Type         string  `json:"type" validate:"required"`
	Level        string  `json:"level" validate:"required"`
	WordID       uint    `json:"word_id" validate:"required"`
	DeckWordIDs  []uint  `json:"deck_word_ids" validate:"required,min=1"`
	CurrentIndex int     `json:"current_index" validate:"gte=0"`
	ReviewMode   bool    `json:"review_mode"`
	Result       *bool   `json:"result,omitempty"`
	Input        *string `json:"input,omitempty"`
}

// 解答送信後のエンジン状態
const (
	StudyStateActive        = "active"
	StudyStateCycleComplete = "cycle_complete"
)

// SubmitAnswerResponse は解答送信APIのレスポンスDTO。
// state が cycle_complete のときは unlearned_word_ids が決定ポイントの材料になる
// (unlearned が空の場合はサーバー側で既にリセット済みのため new_deck が入る)。
type SubmitAnswerResponse struct {
	State            string `json:"state"`
	Correct          bool   `json:"correct"`
	NextIndex        int    `json:"next_index"`
	ReviewMode       bool   `json:"review_mode"`
	UnlearnedWordIDs []uint `json:"unlearned_word_ids,omitempty"`
	// 全問学習済みでサイクルが自動リセットされた場合の新しいベースデッキ
	NewDeck *DeckResponse `json:"new_deck,omitempty"`
}

// ResolveCycleRequest はサイクル完了時の決定 (復習モードに入る/入らない) のDTO
type ResolveCycleRequest struct {
	Type        string `json:"type" validate:"required"`
	Level       string `json:"level" validate:"required"`
	Accept      *bool  `json:"accept" validate:"required"`
	DeckWordIDs []uint `json:"deck_word_ids" validate:"required,min=1"`
}
