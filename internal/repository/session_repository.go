//go:generate mockery --name SessionRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"nori/internal/middleware"
	"nori/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SessionRepository はレビューセッション(デッキ順序と再開位置)へのアクセスを提供します
type SessionRepository interface {
	Find(ctx context.Context, db *gorm.DB, userID uuid.UUID, exerciseType, level string) (*model.ReviewSession, error)
	Upsert(ctx context.Context, tx *gorm.DB, session *model.ReviewSession) error
	Delete(ctx context.Context, tx *gorm.DB, userID uuid.UUID, exerciseType, level string) error
}

type gormSessionRepository struct{}

func NewGormSessionRepository() SessionRepository {
	return &gormSessionRepository{}
}

func (r *gormSessionRepository) Find(ctx context.Context, db *gorm.DB, userID uuid.UUID, exerciseType, level string) (*model.ReviewSession, error) {
	logger := middleware.GetLogger(ctx)
	var session model.ReviewSession
	result := db.WithContext(ctx).
		Where("user_id = ? AND type = ? AND level = ?", userID, exerciseType, level).
		First(&session)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding review session in DB",
			"error", result.Error,
			"user_id", userID,
			"type", exerciseType,
			"level", level,
		)
		return nil, fmt.Errorf("gormSessionRepository.Find: %w", result.Error)
	}
	return &session, nil
}

// Upsert は (user_id, type, level) の複合キーでセッションを作成または上書きします
func (r *gormSessionRepository) Upsert(ctx context.Context, tx *gorm.DB, session *model.ReviewSession) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"}, {Name: "type"}, {Name: "level"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"word_ids", "current_index", "updated_at"}),
	}).Create(session)
	if result.Error != nil {
		logger.Error("Error upserting review session in DB",
			"error", result.Error,
			"user_id", session.UserID,
			"type", session.Type,
			"level", session.Level,
		)
		return fmt.Errorf("gormSessionRepository.Upsert: %w", result.Error)
	}
	return nil
}

func (r *gormSessionRepository) Delete(ctx context.Context, tx *gorm.DB, userID uuid.UUID, exerciseType, level string) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).
		Where("user_id = ? AND type = ? AND level = ?", userID, exerciseType, level).
		Delete(&model.ReviewSession{})
	if result.Error != nil {
		logger.Error("Error deleting review session in DB",
			"error", result.Error,
			"user_id", userID,
			"type", exerciseType,
			"level", level,
		)
		return fmt.Errorf("gormSessionRepository.Delete: %w", result.Error)
	}
	return nil
}
