//go:generate mockery --name ProgressRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"
	"time"

	"nori/internal/middleware"
	"nori/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressRepository は学習進捗レコードへのアクセスを提供します
type ProgressRepository interface {
	Upsert(ctx context.Context, tx *gorm.DB, progress *model.StudyProgress) error
	FindByContext(ctx context.Context, db *gorm.DB, userID uuid.UUID, exerciseType, level string) ([]*model.StudyProgress, error)
	DeleteByContext(ctx context.Context, tx *gorm.DB, userID uuid.UUID, exerciseType, level string) error
}

type gormProgressRepository struct{}

func NewGormProgressRepository() ProgressRepository {
	return &gormProgressRepository{}
}

// Upsert は (user_id, type, level, word_id) の複合キーで進捗を作成または上書きします
func (r *gormProgressRepository) Upsert(ctx context.Context, tx *gorm.DB, progress *model.StudyProgress) error {
	logger := middleware.GetLogger(ctx)
	progress.LastSeen = time.Now()
	result := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"}, {Name: "type"}, {Name: "level"}, {Name: "word_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"completed", "current_index", "last_seen", "updated_at"}),
	}).Create(progress)
	if result.Error != nil {
		logger.Error("Error upserting study progress in DB",
			"error", result.Error,
			"user_id", progress.UserID,
			"type", progress.Type,
			"level", progress.Level,
			"word_id", progress.WordID,
		)
		return fmt.Errorf("gormProgressRepository.Upsert: %w", result.Error)
	}
	return nil
}

func (r *gormProgressRepository) FindByContext(ctx context.Context, db *gorm.DB, userID uuid.UUID, exerciseType, level string) ([]*model.StudyProgress, error) {
	logger := middleware.GetLogger(ctx)
	var records []*model.StudyProgress
	result := db.WithContext(ctx).
		Where("user_id = ? AND type = ? AND level = ?", userID, exerciseType, level).
		Find(&records)
	if result.Error != nil {
		logger.Error("Error finding study progress in DB",
			"error", result.Error,
			"user_id", userID,
			"type", exerciseType,
			"level", level,
		)
		return nil, fmt.Errorf("gormProgressRepository.FindByContext: %w", result.Error)
	}
	return records, nil
}

// DeleteByContext はコンテキスト配下の進捗を一括削除します (リセット用)
func (r *gormProgressRepository) DeleteByContext(ctx context.Context, tx *gorm.DB, userID uuid.UUID, exerciseType, level string) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).
		Where("user_id = ? AND type = ? AND level = ?", userID, exerciseType, level).
		Delete(&model.StudyProgress{})
	if result.Error != nil {
		logger.Error("Error deleting study progress in DB",
			"error", result.Error,
			"user_id", userID,
			"type", exerciseType,
			"level", level,
		)
		return fmt.Errorf("gormProgressRepository.DeleteByContext: %w", result.Error)
	}
	return nil
}
