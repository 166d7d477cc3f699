package service

import (
	"context"
	"errors"

	"nori/internal/model"
	"nori/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionService はレビューセッション行の参照・保存・削除を提供します。
// ベースセッション (type-base) もこのサービスを通して読み書きされます。
type SessionService interface {
	GetSession(ctx context.Context, userID uuid.UUID, sessionType, level string) (*model.ReviewSession, error)
	SaveSession(ctx context.Context, userID uuid.UUID, sessionType, level string, req *model.PostSessionRequest) error
	DeleteSession(ctx context.Context, userID uuid.UUID, sessionType, level string) error
}

type sessionService struct {
	db          *gorm.DB
	sessionRepo repository.SessionRepository
}

func NewSessionService(db *gorm.DB, sessionRepo repository.SessionRepository) SessionService {
	return &sessionService{
		db:          db,
		sessionRepo: sessionRepo,
	}
}

func (s *sessionService) GetSession(ctx context.Context, userID uuid.UUID, sessionType, level string) (*model.ReviewSession, error) {
	normalized, err := validateSessionContext(sessionType, level)
	if err != nil {
		return nil, err
	}
	session, err := s.sessionRepo.Find(ctx, s.db, userID, sessionType, normalized)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("SESSION_NOT_FOUND", "セッションが見つかりません。", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "セッションの取得に失敗しました。", "", err)
	}
	return session, nil
}

func (s *sessionService) SaveSession(ctx context.Context, userID uuid.UUID, sessionType, level string, req *model.PostSessionRequest) error {
	normalized, err := validateSessionContext(sessionType, level)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		session := &model.ReviewSession{
			UserID:       userID,
			Type:         sessionType,
			Level:        normalized,
			WordIDs:      *req.WordIDs,
			CurrentIndex: req.CurrentIndex,
		}
		if err := s.sessionRepo.Upsert(ctx, tx, session); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "セッションの保存に失敗しました。", "", err)
		}
		return nil
	})
}

func (s *sessionService) DeleteSession(ctx context.Context, userID uuid.UUID, sessionType, level string) error {
	normalized, err := validateSessionContext(sessionType, level)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.sessionRepo.Delete(ctx, tx, userID, sessionType, normalized); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "セッションの削除に失敗しました。", "", err)
		}
		return nil
	})
}

// validateSessionContext はセッションの type を検証します。
// 素の出題形式に加えて "-base" サフィックス付きも許可します。
func validateSessionContext(sessionType, level string) (string, error) {
	exerciseType := model.TrimBaseSuffix(sessionType)
	if !model.IsValidExerciseType(exerciseType) {
		return "", model.NewAppError("INVALID_TYPE", "出題形式の指定が正しくありません。", "type", model.ErrInvalidInput)
	}
	normalized := model.NormalizeLevel(level)
	if !model.IsValidLevel(normalized) || normalized == model.PseudoLevelFavorites {
		return "", model.NewAppError("INVALID_LEVEL", "レベルの指定が正しくありません。", "level", model.ErrInvalidInput)
	}
	return normalized, nil
}
