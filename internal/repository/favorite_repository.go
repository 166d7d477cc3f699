//go:generate mockery --name FavoriteRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"nori/internal/middleware"
	"nori/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FavoriteRepository はお気に入り単語へのアクセスを提供します
type FavoriteRepository interface {
	Find(ctx context.Context, db *gorm.DB, userID uuid.UUID, wordID uint) (*model.FavoriteWord, error)
	Create(ctx context.Context, tx *gorm.DB, favorite *model.FavoriteWord) error
	Delete(ctx context.Context, tx *gorm.DB, userID uuid.UUID, wordID uint) error
	FindWordsByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Word, error)
}

type gormFavoriteRepository struct{}

func NewGormFavoriteRepository() FavoriteRepository {
	return &gormFavoriteRepository{}
}

func (r *gormFavoriteRepository) Find(ctx context.Context, db *gorm.DB, userID uuid.UUID, wordID uint) (*model.FavoriteWord, error) {
	logger := middleware.GetLogger(ctx)
	var favorite model.FavoriteWord
	result := db.WithContext(ctx).
		Where("user_id = ? AND word_id = ?", userID, wordID).
		First(&favorite)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding favorite in DB",
			"error", result.Error,
			"user_id", userID,
			"word_id", wordID,
		)
		return nil, fmt.Errorf("gormFavoriteRepository.Find: %w", result.Error)
	}
	return &favorite, nil
}

func (r *gormFavoriteRepository) Create(ctx context.Context, tx *gorm.DB, favorite *model.FavoriteWord) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(favorite)
	if result.Error != nil {
		logger.Error("Error creating favorite in DB",
			"error", result.Error,
			"user_id", favorite.UserID,
			"word_id", favorite.WordID,
		)
		return fmt.Errorf("gormFavoriteRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormFavoriteRepository) Delete(ctx context.Context, tx *gorm.DB, userID uuid.UUID, wordID uint) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).
		Where("user_id = ? AND word_id = ?", userID, wordID).
		Delete(&model.FavoriteWord{})
	if result.Error != nil {
		logger.Error("Error deleting favorite in DB",
			"error", result.Error,
			"user_id", userID,
			"word_id", wordID,
		)
		return fmt.Errorf("gormFavoriteRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// FindWordsByUser はお気に入り登録順に単語本体を返します
func (r *gormFavoriteRepository) FindWordsByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Word, error) {
	logger := middleware.GetLogger(ctx)
	var words []*model.Word
	result := db.WithContext(ctx).
		Joins("JOIN favorite_words ON favorite_words.word_id = words.id").
		Where("favorite_words.user_id = ?", userID).
		Order("favorite_words.created_at ASC").
		Preload("Meanings").
		Find(&words)
	if result.Error != nil {
		logger.Error("Error finding favorite words in DB",
			"error", result.Error,
			"user_id", userID,
		)
		return nil, fmt.Errorf("gormFavoriteRepository.FindWordsByUser: %w", result.Error)
	}
	return words, nil
}
