//go:generate mockery --name TokenRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nori/internal/middleware"
	"nori/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TokenRepository はメール認証・パスワードリセット用トークンへのアクセスを提供します
type TokenRepository interface {
	CreateVerificationToken(ctx context.Context, tx *gorm.DB, token *model.UserVerificationToken) error
	FindVerificationToken(ctx context.Context, db *gorm.DB, token string) (*model.UserVerificationToken, error)
	DeleteVerificationToken(ctx context.Context, tx *gorm.DB, token string) error
	DeleteVerificationTokensByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
	CreatePasswordResetToken(ctx context.Context, tx *gorm.DB, token *model.PasswordResetToken) error
	FindPasswordResetToken(ctx context.Context, db *gorm.DB, token string) (*model.PasswordResetToken, error)
	DeletePasswordResetToken(ctx context.Context, tx *gorm.DB, token string) error
	DeleteExpired(ctx context.Context, db *gorm.DB, now time.Time) (int64, error)
}

type gormTokenRepository struct{}

func NewGormTokenRepository() TokenRepository {
	return &gormTokenRepository{}
}

func (r *gormTokenRepository) CreateVerificationToken(ctx context.Context, tx *gorm.DB, token *model.UserVerificationToken) error {
	logger := middleware.GetLogger(ctx)
	if err := tx.WithContext(ctx).Create(token).Error; err != nil {
		logger.Error("Error creating verification token in DB", "error", err, "user_id", token.UserID)
		return fmt.Errorf("gormTokenRepository.CreateVerificationToken: %w", err)
	}
	return nil
}

func (r *gormTokenRepository) FindVerificationToken(ctx context.Context, db *gorm.DB, token string) (*model.UserVerificationToken, error) {
	logger := middleware.GetLogger(ctx)
	var record model.UserVerificationToken
	result := db.WithContext(ctx).Where("token = ?", token).First(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding verification token in DB", "error", result.Error)
		return nil, fmt.Errorf("gormTokenRepository.FindVerificationToken: %w", result.Error)
	}
	return &record, nil
}

func (r *gormTokenRepository) DeleteVerificationToken(ctx context.Context, tx *gorm.DB, token string) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("token = ?", token).Delete(&model.UserVerificationToken{})
	if result.Error != nil {
		logger.Error("Error deleting verification token in DB", "error", result.Error)
		return fmt.Errorf("gormTokenRepository.DeleteVerificationToken: %w", result.Error)
	}
	return nil
}

func (r *gormTokenRepository) DeleteVerificationTokensByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.UserVerificationToken{})
	if result.Error != nil {
		logger.Error("Error deleting verification tokens in DB", "error", result.Error, "user_id", userID)
		return fmt.Errorf("gormTokenRepository.DeleteVerificationTokensByUser: %w", result.Error)
	}
	return nil
}

func (r *gormTokenRepository) CreatePasswordResetToken(ctx context.Context, tx *gorm.DB, token *model.PasswordResetToken) error {
	logger := middleware.GetLogger(ctx)
	if err := tx.WithContext(ctx).Create(token).Error; err != nil {
		logger.Error("Error creating password reset token in DB", "error", err, "user_id", token.UserID)
		return fmt.Errorf("gormTokenRepository.CreatePasswordResetToken: %w", err)
	}
	return nil
}

func (r *gormTokenRepository) FindPasswordResetToken(ctx context.Context, db *gorm.DB, token string) (*model.PasswordResetToken, error) {
	logger := middleware.GetLogger(ctx)
	var record model.PasswordResetToken
	result := db.WithContext(ctx).Where("token = ?", token).First(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding password reset token in DB", "error", result.Error)
		return nil, fmt.Errorf("gormTokenRepository.FindPasswordResetToken: %w", result.Error)
	}
	return &record, nil
}

func (r *gormTokenRepository) DeletePasswordResetToken(ctx context.Context, tx *gorm.DB, token string) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("token = ?", token).Delete(&model.PasswordResetToken{})
	if result.Error != nil {
		logger.Error("Error deleting password reset token in DB", "error", result.Error)
		return fmt.Errorf("gormTokenRepository.DeletePasswordResetToken: %w", result.Error)
	}
	return nil
}

// DeleteExpired は期限切れトークンを一括削除します (定期ジョブから呼ばれる)
func (r *gormTokenRepository) DeleteExpired(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var total int64
	result := db.WithContext(ctx).Where("expires_at < ?", now).Delete(&model.UserVerificationToken{})
	if result.Error != nil {
		logger.Error("Error deleting expired verification tokens in DB", "error", result.Error)
		return 0, fmt.Errorf("gormTokenRepository.DeleteExpired: %w", result.Error)
	}
	total += result.RowsAffected
	result = db.WithContext(ctx).Where("expires_at < ?", now).Delete(&model.PasswordResetToken{})
	if result.Error != nil {
		logger.Error("Error deleting expired password reset tokens in DB", "error", result.Error)
		return 0, fmt.Errorf("gormTokenRepository.DeleteExpired: %w", result.Error)
	}
	total += result.RowsAffected
	return total, nil
}
