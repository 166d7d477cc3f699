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

func newDeckService(db *gorm.DB) DeckService {
	return NewDeckService(
		db,
		repository.NewGormWordRepository(),
		repository.NewGormFavoriteRepository(),
		repository.NewGormProgressRepository(),
		repository.NewGormSessionRepository(),
	)
}

func deckWordIDs(deck *model.DeckResponse) []uint {
	ids := make([]uint, 0, len(deck.Words))
	for _, w := range deck.Words {
		ids = append(ids, w.ID)
	}
	return ids
}

func TestDeckService_BuildDeck(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 初回構築でシャッフル順がベースセッションとして永続化される", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newDeckService(db)
		userID := uuid.New()
		catalog := seedWords(t, db, model.LevelN3, 5)

		deck, err := svc.BuildDeck(ctx, userID, model.ExerciseFlashcards, "n3")
		require.NoError(t, err)

		assert.Len(t, deck.Words, 5)
		assert.Equal(t, 0, deck.CurrentIndex)
		assert.False(t, deck.ReviewMode)
		assert.Equal(t, 5, deck.TotalCount)
		assert.ElementsMatch(t, catalog, deckWordIDs(deck))

		base := findSession(t, db, userID, "flashcards-base", model.LevelN3)
		require.NotNil(t, base)
		assert.Equal(t, deckWordIDs(deck), []uint(base.WordIDs))
	})

	t.Run("正常系: 再構築しても順序が変わらない", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newDeckService(db)
		userID := uuid.New()
		seedWords(t, db, model.LevelN3, 8)

		first, err := svc.BuildDeck(ctx, userID, model.ExerciseFlashcards, model.LevelN3)
		require.NoError(t, err)
		second, err := svc.BuildDeck(ctx, userID, model.ExerciseFlashcards, model.LevelN3)
		require.NoError(t, err)

		assert.Equal(t, deckWordIDs(first), deckWordIDs(second))
	})

	t.Run("正常系: カタログ追加後も既存の順序を保ち新語は末尾に付く", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newDeckService(db)
		userID := uuid.New()
		seedWords(t, db, model.LevelN3, 4)

		first, err := svc.BuildDeck(ctx, userID, model.ExerciseFlashcards, model.LevelN3)
		require.NoError(t, err)

		added := seedWords(t, db, model.LevelN3, 1)

		second, err := svc.BuildDeck(ctx, userID, model.ExerciseFlashcards, model.LevelN3)
		require.NoError(t, err)

		require.Len(t, second.Words, 5)
		assert.Equal(t, deckWordIDs(first), deckWordIDs(second)[:4])
		assert.Equal(t, added[0], deckWordIDs(second)[4])

		// 補正後の順序は保存し直される
		base := findSession(t, db, userID, "flashcards-base", model.LevelN3)
		require.NotNil(t, base)
		assert.Equal(t, deckWordIDs(second), []uint(base.WordIDs))
	})

	t.Run("正常系: 削除済み単語のIDは保存順から黙って落ちる", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newDeckService(db)
		userID := uuid.New()
		catalog := seedWords(t, db, model.LevelN3, 3)

		// ベース順に存在しないIDを混ぜて保存しておく
		require.NoError(t, db.Create(&model.ReviewSession{
			UserID:  userID,
			Type:    "flashcards-base",
			Level:   model.LevelN3,
			WordIDs: model.WordIDList{catalog[2], 9999, catalog[0], catalog[1]},
		}).Error)

		deck, err := svc.BuildDeck(ctx, userID, model.ExerciseFlashcards, model.LevelN3)
		require.NoError(t, err)

		assert.Equal(t, []uint{catalog[2], catalog[0], catalog[1]}, deckWordIDs(deck))
	})

	t.Run("正常系: 再開位置は進捗から最初の未完了単語を指す", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newDeckService(db)
		userID := uuid.New()
		seedWords(t, db, model.LevelN3, 4)

		first, err := svc.BuildDeck(ctx, userID, model.ExerciseFlashcards, model.LevelN3)
		require.NoError(t, err)
		order := deckWordIDs(first)

		// デッキ順の先頭2語を完了済みにする
		seedProgress(t, db, userID, model.ExerciseFlashcards, model.LevelN3, order[0], true)
		seedProgress(t, db, userID, model.ExerciseFlashcards, model.LevelN3, order[1], true)

		resumed, err := svc.BuildDeck(ctx, userID, model.ExerciseFlashcards, model.LevelN3)
		require.NoError(t, err)

		assert.Equal(t, 2, resumed.CurrentIndex)
		assert.Equal(t, order, deckWordIDs(resumed))
	})

	t.Run("正常系: アクティブセッションがあれば復習モードで復元される", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newDeckService(db)
		userID := uuid.New()
		catalog := seedWords(t, db, model.LevelN3, 5)

		require.NoError(t, db.Create(&model.ReviewSession{
			UserID:       userID,
			Type:         model.ExerciseFlashcards,
			Level:        model.LevelN3,
			WordIDs:      model.WordIDList{catalog[3], catalog[1]},
			CurrentIndex: 1,
		}).Error)

		deck, err := svc.BuildDeck(ctx, userID, model.ExerciseFlashcards, model.LevelN3)
		require.NoError(t, err)

		assert.True(t, deck.ReviewMode)
		assert.Equal(t, []uint{catalog[3], catalog[1]}, deckWordIDs(deck))
		assert.Equal(t, 1, deck.CurrentIndex)
		// 進捗バーの分母はベースデッキ全体
		assert.Equal(t, 5, deck.TotalCount)
	})

	t.Run("正常系: 復習デッキのカーソルは範囲内に丸められる", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newDeckService(db)
		userID := uuid.New()
		catalog := seedWords(t, db, model.LevelN3, 3)

		require.NoError(t, db.Create(&model.ReviewSession{
			UserID:       userID,
			Type:         model.ExerciseFlashcards,
			Level:        model.LevelN3,
			WordIDs:      model.WordIDList{catalog[0], catalog[1]},
			CurrentIndex: 10,
		}).Error)

		deck, err := svc.BuildDeck(ctx, userID, model.ExerciseFlashcards, model.LevelN3)
		require.NoError(t, err)

		assert.True(t, deck.ReviewMode)
		assert.Equal(t, 1, deck.CurrentIndex)
	})

	t.Run("正常系: favoritesは毎回シャッフルで何も永続化しない", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newDeckService(db)
		userID := uuid.New()
		catalog := seedWords(t, db, model.LevelN3, 3)

		for _, id := range catalog {
			require.NoError(t, db.Create(&model.FavoriteWord{UserID: userID, WordID: id}).Error)
		}

		deck, err := svc.BuildDeck(ctx, userID, model.ExerciseFlashcards, model.PseudoLevelFavorites)
		require.NoError(t, err)

		assert.Len(t, deck.Words, 3)
		assert.False(t, deck.ReviewMode)
		assert.ElementsMatch(t, catalog, deckWordIDs(deck))

		var sessionCount int64
		require.NoError(t, db.Model(&model.ReviewSession{}).Count(&sessionCount).Error)
		assert.Zero(t, sessionCount)
	})

	t.Run("境界値: 空カタログはエラーではなく空デッキ", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newDeckService(db)

		deck, err := svc.BuildDeck(ctx, uuid.New(), model.ExerciseFlashcards, model.LevelN1)
		require.NoError(t, err)

		assert.Empty(t, deck.Words)
		assert.Equal(t, 0, deck.CurrentIndex)
		assert.Equal(t, 0, deck.TotalCount)
	})

	t.Run("異常系: 不正な出題形式", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newDeckService(db)

		_, err := svc.BuildDeck(ctx, uuid.New(), "listening", model.LevelN3)
		assertAppErrorCode(t, err, "INVALID_TYPE")
	})

	t.Run("異常系: 不正なレベル", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newDeckService(db)

		_, err := svc.BuildDeck(ctx, uuid.New(), model.ExerciseFlashcards, "N6")
		assertAppErrorCode(t, err, "INVALID_LEVEL")
	})
}
