//go:generate mockery --name WordRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"nori/internal/middleware"
	"nori/internal/model"

	"gorm.io/gorm"
)

// WordRepository は単語カタログへのアクセスを提供します
type WordRepository interface {
	Create(ctx context.Context, tx *gorm.DB, word *model.Word) error
	FindByID(ctx context.Context, db *gorm.DB, wordID uint) (*model.Word, error)
	FindByLevel(ctx context.Context, db *gorm.DB, level string) ([]*model.Word, error)
	Update(ctx context.Context, tx *gorm.DB, wordID uint, updates map[string]interface{}) error
	ReplaceMeanings(ctx context.Context, tx *gorm.DB, wordID uint, meanings []model.WordMeaning) error
	Delete(ctx context.Context, tx *gorm.DB, wordID uint) error
	CheckKanjiExists(ctx context.Context, db *gorm.DB, level, kanji string, excludeWordID *uint) (bool, error)
}

type gormWordRepository struct{}

func NewGormWordRepository() WordRepository {
	return &gormWordRepository{}
}

func (r *gormWordRepository) Create(ctx context.Context, tx *gorm.DB, word *model.Word) error {
	logger := middleware.GetLogger(ctx)
	// Meaningsも関連としてまとめてINSERTされる
	result := tx.WithContext(ctx).Create(word)
	if result.Error != nil {
		logger.Error("Error creating word in DB",
			"error", result.Error,
			"level", word.Level,
			"kanji", word.Kanji,
		)
		return fmt.Errorf("gormWordRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormWordRepository) FindByID(ctx context.Context, db *gorm.DB, wordID uint) (*model.Word, error) {
	logger := middleware.GetLogger(ctx)
	var word model.Word
	result := db.WithContext(ctx).Preload("Meanings").First(&word, wordID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding word by ID in DB",
			"error", result.Error,
			"word_id", wordID,
		)
		return nil, fmt.Errorf("gormWordRepository.FindByID: %w", result.Error)
	}
	return &word, nil
}

func (r *gormWordRepository) FindByLevel(ctx context.Context, db *gorm.DB, level string) ([]*model.Word, error) {
	logger := middleware.GetLogger(ctx)
	var words []*model.Word
	result := db.WithContext(ctx).Preload("Meanings").Where("level = ?", level).Order("id ASC").Find(&words)
	if result.Error != nil {
		logger.Error("Error finding words by level in DB",
			"error", result.Error,
			"level", level,
		)
		return nil, fmt.Errorf("gormWordRepository.FindByLevel: %w", result.Error)
	}
	return words, nil
}

func (r *gormWordRepository) Update(ctx context.Context, tx *gorm.DB, wordID uint, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Word{}).Where("id = ?", wordID).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating word in DB",
			"error", result.Error,
			"word_id", wordID,
		)
		return fmt.Errorf("gormWordRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// ReplaceMeanings は単語の意味を丸ごと入れ替えます (PUT更新用)
func (r *gormWordRepository) ReplaceMeanings(ctx context.Context, tx *gorm.DB, wordID uint, meanings []model.WordMeaning) error {
	logger := middleware.GetLogger(ctx)
	if err := tx.WithContext(ctx).Where("word_id = ?", wordID).Delete(&model.WordMeaning{}).Error; err != nil {
		logger.Error("Error deleting meanings in DB", "error", err, "word_id", wordID)
		return fmt.Errorf("gormWordRepository.ReplaceMeanings: %w", err)
	}
	if len(meanings) == 0 {
		return nil
	}
	for i := range meanings {
		meanings[i].ID = 0
		meanings[i].WordID = wordID
	}
	if err := tx.WithContext(ctx).Create(&meanings).Error; err != nil {
		logger.Error("Error creating meanings in DB", "error", err, "word_id", wordID)
		return fmt.Errorf("gormWordRepository.ReplaceMeanings: %w", err)
	}
	return nil
}

func (r *gormWordRepository) Delete(ctx context.Context, tx *gorm.DB, wordID uint) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Delete(&model.Word{}, wordID)
	if result.Error != nil {
		logger.Error("Error deleting word in DB",
			"error", result.Error,
			"word_id", wordID,
		)
		return fmt.Errorf("gormWordRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormWordRepository) CheckKanjiExists(ctx context.Context, db *gorm.DB, level, kanji string, excludeWordID *uint) (bool, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	query := db.WithContext(ctx).Model(&model.Word{}).Where("level = ? AND kanji = ?", level, kanji)
	if excludeWordID != nil {
		query = query.Where("id != ?", *excludeWordID)
	}
	result := query.Count(&count)
	if result.Error != nil {
		logger.Error("Error checking kanji existence in DB",
			"error", result.Error,
			"level", level,
			"kanji", kanji,
		)
		return false, fmt.Errorf("gormWordRepository.CheckKanjiExists: %w", result.Error)
	}
	return count > 0, nil
}
