package service

import (
	"context"
	"testing"

	"nori/internal/model"
	"nori/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSessionService(db *gorm.DB) SessionService {
	return NewSessionService(db, repository.NewGormSessionRepository())
}

func TestSessionService_SaveSession(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 保存して取得できる", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newSessionService(db)
		userID := uuid.New()
		wordIDs := []uint{3, 1, 2}

		err := svc.SaveSession(ctx, userID, model.ExerciseFlashcards, "n3", &model.PostSessionRequest{
			WordIDs:      &wordIDs,
			CurrentIndex: 1,
		})
		require.NoError(t, err)

		session, err := svc.GetSession(ctx, userID, model.ExerciseFlashcards, model.LevelN3)
		require.NoError(t, err)
		assert.Equal(t, wordIDs, []uint(session.WordIDs))
		assert.Equal(t, 1, session.CurrentIndex)
	})

	t.Run("正常系: -base付きの出題形式も保存できる", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newSessionService(db)
		userID := uuid.New()
		wordIDs := []uint{2, 1}

		err := svc.SaveSession(ctx, userID, "flashcards-base", model.LevelN3, &model.PostSessionRequest{
			WordIDs: &wordIDs,
		})
		require.NoError(t, err)

		session, err := svc.GetSession(ctx, userID, "flashcards-base", model.LevelN3)
		require.NoError(t, err)
		assert.Equal(t, wordIDs, []uint(session.WordIDs))
	})

	t.Run("正常系: 同じキーへの保存は上書きになる", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newSessionService(db)
		userID := uuid.New()

		first := []uint{1, 2, 3}
		err := svc.SaveSession(ctx, userID, model.ExerciseFlashcards, model.LevelN3, &model.PostSessionRequest{WordIDs: &first})
		require.NoError(t, err)

		second := []uint{3, 2}
		err = svc.SaveSession(ctx, userID, model.ExerciseFlashcards, model.LevelN3, &model.PostSessionRequest{WordIDs: &second, CurrentIndex: 1})
		require.NoError(t, err)

		session, err := svc.GetSession(ctx, userID, model.ExerciseFlashcards, model.LevelN3)
		require.NoError(t, err)
		assert.Equal(t, second, []uint(session.WordIDs))
		assert.Equal(t, 1, session.CurrentIndex)

		var count int64
		require.NoError(t, db.Model(&model.ReviewSession{}).Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("異常系: 未知の出題形式", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newSessionService(db)
		wordIDs := []uint{1}

		err := svc.SaveSession(ctx, uuid.New(), "listening", model.LevelN3, &model.PostSessionRequest{WordIDs: &wordIDs})
		assertAppErrorCode(t, err, "INVALID_TYPE")
	})
}

func TestSessionService_GetSession(t *testing.T) {
	ctx := context.Background()

	t.Run("異常系: セッションが存在しない", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newSessionService(db)

		_, err := svc.GetSession(ctx, uuid.New(), model.ExerciseFlashcards, model.LevelN3)
		assertAppErrorCode(t, err, "SESSION_NOT_FOUND")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestSessionService_DeleteSession(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 削除後は取得できない", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newSessionService(db)
		userID := uuid.New()
		wordIDs := []uint{1, 2}

		err := svc.SaveSession(ctx, userID, model.ExerciseFlashcards, model.LevelN3, &model.PostSessionRequest{WordIDs: &wordIDs})
		require.NoError(t, err)

		require.NoError(t, svc.DeleteSession(ctx, userID, model.ExerciseFlashcards, model.LevelN3))

		_, err = svc.GetSession(ctx, userID, model.ExerciseFlashcards, model.LevelN3)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("正常系: 存在しないセッションの削除もエラーにしない", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newSessionService(db)

		assert.NoError(t, svc.DeleteSession(ctx, uuid.New(), model.ExerciseFlashcards, model.LevelN3))
	})
}
