package service

import (
	"errors"
	"fmt"
	"testing"

	"nori/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB はテストごとに独立したインメモリSQLiteを用意します。
// cache=shared + MaxOpenConns(1) でコネクションプールによるDB消失を防ぐ。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open in-memory sqlite")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	err = db.AutoMigrate(
		&model.User{},
		&model.Word{},
		&model.WordMeaning{},
		&model.StudyProgress{},
		&model.ReviewSession{},
		&model.FavoriteWord{},
		&model.UserVerificationToken{},
		&model.PasswordResetToken{},
	)
	require.NoError(t, err, "failed to migrate schema")

	return db
}

// seedWords は指定レベルの単語をn件作成し、IDをカタログ順 (ID昇順) で返します
func seedWords(t *testing.T, db *gorm.DB, level string, n int) []uint {
	t.Helper()

	ids := make([]uint, 0, n)
	for i := 0; i < n; i++ {
		word := &model.Word{
			Level:           level,
			Kanji:           fmt.Sprintf("単語%d", i+1),
			Furigana:        fmt.Sprintf("たんご%d", i+1),
			ExampleSentence: fmt.Sprintf("これは単語%dの例文です。", i+1),
			AnswerInExample: fmt.Sprintf("単語%d", i+1),
			Meanings: []model.WordMeaning{
				{LanguageCode: "en", WordMeaning: fmt.Sprintf("word %d", i+1), ExampleSentenceMeaning: fmt.Sprintf("This is an example for word %d.", i+1)},
			},
		}
		require.NoError(t, db.Create(word).Error)
		ids = append(ids, word.ID)
	}
	return ids
}

// seedProgress は進捗レコードを直接仕込みます
func seedProgress(t *testing.T, db *gorm.DB, userID uuid.UUID, exerciseType, level string, wordID uint, completed bool) {
	t.Helper()

	require.NoError(t, db.Create(&model.StudyProgress{
		UserID:    userID,
		Type:      exerciseType,
		Level:     level,
		WordID:    wordID,
		Completed: completed,
	}).Error)
}

func findSession(t *testing.T, db *gorm.DB, userID uuid.UUID, exerciseType, level string) *model.ReviewSession {
	t.Helper()

	var session model.ReviewSession
	err := db.Where("user_id = ? AND type = ? AND level = ?", userID, exerciseType, level).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	require.NoError(t, err)
	return &session
}

func countProgress(t *testing.T, db *gorm.DB, userID uuid.UUID, exerciseType, level string) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&model.StudyProgress{}).
		Where("user_id = ? AND type = ? AND level = ?", userID, exerciseType, level).
		Count(&count).Error)
	return count
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

// assertAppErrorCode はエラーが指定コードの AppError であることを検証します
func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()

	var appErr *model.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, code, appErr.Detail.Code)
}
