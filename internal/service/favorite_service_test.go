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

func newFavoriteService(db *gorm.DB) FavoriteService {
	return NewFavoriteService(db, repository.NewGormFavoriteRepository(), repository.NewGormWordRepository())
}

func TestFavoriteService_ToggleFavorite(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 未登録ならお気に入りに追加される", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newFavoriteService(db)
		userID := uuid.New()
		words := seedWords(t, db, model.LevelN3, 1)

		resp, err := svc.ToggleFavorite(ctx, userID, words[0])
		require.NoError(t, err)
		assert.True(t, resp.Favorited)

		var count int64
		require.NoError(t, db.Model(&model.FavoriteWord{}).Where("user_id = ?", userID).Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("正常系: 登録済みならお気に入りが解除される", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newFavoriteService(db)
		userID := uuid.New()
		words := seedWords(t, db, model.LevelN3, 1)

		_, err := svc.ToggleFavorite(ctx, userID, words[0])
		require.NoError(t, err)

		resp, err := svc.ToggleFavorite(ctx, userID, words[0])
		require.NoError(t, err)
		assert.False(t, resp.Favorited)

		var count int64
		require.NoError(t, db.Model(&model.FavoriteWord{}).Where("user_id = ?", userID).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("正常系: 他ユーザーのお気に入りには影響しない", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newFavoriteService(db)
		alice := uuid.New()
		bob := uuid.New()
		words := seedWords(t, db, model.LevelN3, 1)

		_, err := svc.ToggleFavorite(ctx, alice, words[0])
		require.NoError(t, err)
		_, err = svc.ToggleFavorite(ctx, bob, words[0])
		require.NoError(t, err)

		// aliceの解除はbobの登録を消さない
		resp, err := svc.ToggleFavorite(ctx, alice, words[0])
		require.NoError(t, err)
		assert.False(t, resp.Favorited)

		var count int64
		require.NoError(t, db.Model(&model.FavoriteWord{}).Where("user_id = ?", bob).Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("異常系: 存在しない単語へのトグルは404", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newFavoriteService(db)

		_, err := svc.ToggleFavorite(ctx, uuid.New(), 9999)
		assertAppErrorCode(t, err, "WORD_NOT_FOUND")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestFavoriteService_ListFavorites(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 登録順に意味付きで返す", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newFavoriteService(db)
		userID := uuid.New()
		words := seedWords(t, db, model.LevelN3, 3)

		_, err := svc.ToggleFavorite(ctx, userID, words[2])
		require.NoError(t, err)
		_, err = svc.ToggleFavorite(ctx, userID, words[0])
		require.NoError(t, err)

		favorites, err := svc.ListFavorites(ctx, userID)
		require.NoError(t, err)

		require.Len(t, favorites, 2)
		assert.Equal(t, words[2], favorites[0].ID)
		assert.Equal(t, words[0], favorites[1].ID)
		assert.NotEmpty(t, favorites[0].Meanings)
	})

	t.Run("正常系: お気に入りが無ければ空スライス", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newFavoriteService(db)

		favorites, err := svc.ListFavorites(ctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, favorites)
	})
}
