package service

import (
	"context"
	"errors"

	"nori/internal/middleware"
	"nori/internal/model"
	"nori/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WordService は単語カタログの参照と管理用CRUDを提供します
type WordService interface {
	ListWords(ctx context.Context, userID uuid.UUID, level string) ([]*model.Word, error)
	GetWord(ctx context.Context, wordID uint) (*model.Word, error)
	CreateWord(ctx context.Context, req *model.PostWordRequest) (*model.Word, error)
	UpdateWord(ctx context.Context, wordID uint, req *model.PutWordRequest) (*model.Word, error)
	DeleteWord(ctx context.Context, wordID uint) error
}

type wordService struct {
	db       *gorm.DB
	wordRepo repository.WordRepository
	favRepo  repository.FavoriteRepository
}

func NewWordService(db *gorm.DB, wordRepo repository.WordRepository, favRepo repository.FavoriteRepository) WordService {
	return &wordService{
		db:       db,
		wordRepo: wordRepo,
		favRepo:  favRepo,
	}
}

// ListWords はレベル指定でカタログを返します。
// 擬似レベル favorites の場合はユーザーのお気に入りを返します。
func (s *wordService) ListWords(ctx context.Context, userID uuid.UUID, level string) ([]*model.Word, error) {
	logger := middleware.GetLogger(ctx)

	normalized := model.NormalizeLevel(level)
	if !model.IsValidLevel(normalized) {
		return nil, model.NewAppError("INVALID_LEVEL", "レベルの指定が正しくありません。", "level", model.ErrInvalidInput)
	}

	if normalized == model.PseudoLevelFavorites {
		words, err := s.favRepo.FindWordsByUser(ctx, s.db, userID)
		if err != nil {
			logger.Error("Failed to list favorite words", "error", err)
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "単語の取得に失敗しました。", "", err)
		}
		return words, nil
	}

	words, err := s.wordRepo.FindByLevel(ctx, s.db, normalized)
	if err != nil {
		logger.Error("Failed to list words", "error", err, "level", normalized)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "単語の取得に失敗しました。", "", err)
	}
	return words, nil
}

func (s *wordService) GetWord(ctx context.Context, wordID uint) (*model.Word, error) {
	word, err := s.wordRepo.FindByID(ctx, s.db, wordID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("WORD_NOT_FOUND", "単語が見つかりません。", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "単語の取得に失敗しました。", "", err)
	}
	return word, nil
}

func (s *wordService) CreateWord(ctx context.Context, req *model.PostWordRequest) (*model.Word, error) {
	logger := middleware.GetLogger(ctx)

	level := model.NormalizeLevel(req.Level)
	if !model.IsValidLevel(level) || level == model.PseudoLevelFavorites {
		return nil, model.NewAppError("INVALID_LEVEL", "レベルの指定が正しくありません。", "level", model.ErrInvalidInput)
	}

	var createdWord *model.Word

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := s.wordRepo.CheckKanjiExists(ctx, tx, level, req.Kanji, nil)
		if err != nil {
			logger.Error("Error checking kanji existence", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。", "", err)
		}
		if exists {
			return model.NewAppError("DUPLICATE_WORD", "同じレベルに同じ単語が既に登録されています。", "kanji", model.ErrConflict)
		}

		word := &model.Word{
			Level:           level,
			Kanji:           req.Kanji,
			Furigana:        req.Furigana,
			ExampleSentence: req.ExampleSentence,
			AnswerInExample: req.AnswerInExample,
		}
		for _, m := range req.Meanings {
			word.Meanings = append(word.Meanings, model.WordMeaning{
				LanguageCode:           m.LanguageCode,
				WordMeaning:            m.WordMeaning,
				ExampleSentenceMeaning: m.ExampleSentenceMeaning,
			})
		}

		if err := s.wordRepo.Create(ctx, tx, word); err != nil {
			logger.Error("Error creating word", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "単語の作成に失敗しました。", "", err)
		}

		createdWord = word
		return nil
	})

	if err != nil {
		return nil, err
	}

	logger.Info("Word created", "word_id", createdWord.ID, "level", createdWord.Level, "kanji", createdWord.Kanji)
	return createdWord, nil
}

func (s *wordService) UpdateWord(ctx context.Context, wordID uint, req *model.PutWordRequest) (*model.Word, error) {
	logger := middleware.GetLogger(ctx)

	var updatedWord *model.Word

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.wordRepo.FindByID(ctx, tx, wordID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("WORD_NOT_FOUND", "単語が見つかりません。", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "単語の取得に失敗しました。", "", err)
		}

		updates := make(map[string]interface{})
		if req.Level != nil {
			level := model.NormalizeLevel(*req.Level)
			if !model.IsValidLevel(level) || level == model.PseudoLevelFavorites {
				return model.NewAppError("INVALID_LEVEL", "レベルの指定が正しくありません。", "level", model.ErrInvalidInput)
			}
			updates["level"] = level
		}
		if req.Kanji != nil {
			level := current.Level
			if l, ok := updates["level"].(string); ok {
				level = l
			}
			exists, err := s.wordRepo.CheckKanjiExists(ctx, tx, level, *req.Kanji, &wordID)
			if err != nil {
				return model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。", "", err)
			}
			if exists {
				return model.NewAppError("DUPLICATE_WORD", "同じレベルに同じ単語が既に登録されています。", "kanji", model.ErrConflict)
			}
			updates["kanji"] = *req.Kanji
		}
		if req.Furigana != nil {
			updates["furigana"] = *req.Furigana
		}
		if req.ExampleSentence != nil {
			updates["example_sentence"] = *req.ExampleSentence
		}
		if req.AnswerInExample != nil {
			updates["answer_in_example"] = *req.AnswerInExample
		}

		if len(updates) > 0 {
			if err := s.wordRepo.Update(ctx, tx, wordID, updates); err != nil {
				return model.NewAppError("INTERNAL_SERVER_ERROR", "単語の更新に失敗しました。", "", err)
			}
		}

		if req.Meanings != nil {
			meanings := make([]model.WordMeaning, 0, len(req.Meanings))
			for _, m := range req.Meanings {
				meanings = append(meanings, model.WordMeaning{
					LanguageCode:           m.LanguageCode,
					WordMeaning:            m.WordMeaning,
					ExampleSentenceMeaning: m.ExampleSentenceMeaning,
				})
			}
			if err := s.wordRepo.ReplaceMeanings(ctx, tx, wordID, meanings); err != nil {
				return model.NewAppError("INTERNAL_SERVER_ERROR", "単語の意味の更新に失敗しました。", "", err)
			}
		}

		updatedWord, err = s.wordRepo.FindByID(ctx, tx, wordID)
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "単語の取得に失敗しました。", "", err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	logger.Info("Word updated", "word_id", wordID)
	return updatedWord, nil
}

func (s *wordService) DeleteWord(ctx context.Context, wordID uint) error {
	logger := middleware.GetLogger(ctx)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.wordRepo.Delete(ctx, tx, wordID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("WORD_NOT_FOUND", "単語が見つかりません。", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "単語の削除に失敗しました。", "", err)
		}
		return nil
	})

	if err != nil {
		return err
	}

	logger.Info("Word deleted", "word_id", wordID)
	return nil
}
