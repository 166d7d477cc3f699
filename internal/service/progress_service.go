package service

import (
	"context"

	"nori/internal/middleware"
	"nori/internal/model"
	"nori/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressService は進捗レコードの参照・upsert・一括リセットを提供します
type ProgressService interface {
	GetProgress(ctx context.Context, userID uuid.UUID, exerciseType, level string) ([]*model.StudyProgress, error)
	UpsertProgress(ctx context.Context, userID uuid.UUID, exerciseType, level string, req *model.PostProgressRequest) error
	ResetProgress(ctx context.Context, userID uuid.UUID, exerciseType, level string) error
}

type progressService struct {
	db          *gorm.DB
	progRepo    repository.ProgressRepository
	sessionRepo repository.SessionRepository
}

func NewProgressService(db *gorm.DB, progRepo repository.ProgressRepository, sessionRepo repository.SessionRepository) ProgressService {
	return &progressService{
		db:          db,
		progRepo:    progRepo,
		sessionRepo: sessionRepo,
	}
}

func (s *progressService) GetProgress(ctx context.Context, userID uuid.UUID, exerciseType, level string) ([]*model.StudyProgress, error) {
	normalized, err := validateContext(exerciseType, level)
	if err != nil {
		return nil, err
	}
	records, err := s.progRepo.FindByContext(ctx, s.db, userID, exerciseType, normalized)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "進捗の取得に失敗しました。", "", err)
	}
	return records, nil
}

func (s *progressService) UpsertProgress(ctx context.Context, userID uuid.UUID, exerciseType, level string, req *model.PostProgressRequest) error {
	normalized, err := validateContext(exerciseType, level)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		progress := &model.StudyProgress{
			UserID:       userID,
			Type:         exerciseType,
			Level:        normalized,
			WordID:       req.WordID,
			Completed:    *req.Completed,
			CurrentIndex: req.CurrentIndex,
		}
		if err := s.progRepo.Upsert(ctx, tx, progress); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "進捗の保存に失敗しました。", "", err)
		}
		return nil
	})
}

// ResetProgress は進捗と、そのコンテキストの両セッション (アクティブとベース) を削除します
func (s *progressService) ResetProgress(ctx context.Context, userID uuid.UUID, exerciseType, level string) error {
	logger := middleware.GetLogger(ctx)
	normalized, err := validateContext(exerciseType, level)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.progRepo.DeleteByContext(ctx, tx, userID, exerciseType, normalized); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "進捗のリセットに失敗しました。", "", err)
		}
		if err := s.sessionRepo.Delete(ctx, tx, userID, exerciseType, normalized); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "セッションの削除に失敗しました。", "", err)
		}
		if err := s.sessionRepo.Delete(ctx, tx, userID, model.BaseSessionType(exerciseType), normalized); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "セッションの削除に失敗しました。", "", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	logger.Info("Progress reset", "type", exerciseType, "level", normalized)
	return nil
}

func validateContext(exerciseType, level string) (string, error) {
	if !model.IsValidExerciseType(exerciseType) {
		return "", model.NewAppError("INVALID_TYPE", "出題形式の指定が正しくありません。", "type", model.ErrInvalidInput)
	}
	normalized := model.NormalizeLevel(level)
	if !model.IsValidLevel(normalized) || normalized == model.PseudoLevelFavorites {
		return "", model.NewAppError("INVALID_LEVEL", "レベルの指定が正しくありません。", "level", model.ErrInvalidInput)
	}
	return normalized, nil
}
