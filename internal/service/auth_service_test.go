package service

import (
	"context"
	"testing"
	"time"

	"nori/internal/config"
	"nori/internal/model"
	"nori/internal/repository"
	"nori/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "nori-test",
			FrontendURL: "http://localhost:5173",
		},
		JWT: config.JWTConfig{
			SecretKey:      "test-secret-key",
			AccessTokenTTL: time.Hour,
		},
	}
}

func newAuthService(db *gorm.DB, mailer Mailer) AuthService {
	return NewAuthService(db, repository.NewGormUserRepository(), repository.NewGormTokenRepository(), mailer, testConfig())
}

// createVerifiedUser はbcryptハッシュ済みパスワードで有効化済みユーザーを直接作成します
func createVerifiedUser(t *testing.T, db *gorm.DB, email, password string) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &model.User{
		UserID:       uuid.New(),
		Username:     email,
		Email:        email,
		PasswordHash: string(hash),
		IsVerified:   true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: ユーザーが作成され有効化メールが送信される", func(t *testing.T) {
		db := setupTestDB(t)
		mailer := mocks.NewMailer(t)
		mailer.On("Send", mock.Anything, "taro@example.com", mock.Anything, mock.Anything).Return(nil).Once()
		svc := newAuthService(db, mailer)

		user, err := svc.Register(ctx, &model.RegisterRequest{
			Username: "taro",
			Email:    "taro@example.com",
			Password: "password123",
		})
		require.NoError(t, err)

		assert.Equal(t, "taro", user.Username)
		assert.False(t, user.IsVerified)
		// 平文パスワードはそのまま保存されない
		assert.NotEqual(t, "password123", user.PasswordHash)

		var tokenCount int64
		require.NoError(t, db.Model(&model.UserVerificationToken{}).Where("user_id = ?", user.UserID).Count(&tokenCount).Error)
		assert.EqualValues(t, 1, tokenCount)
	})

	t.Run("異常系: メールアドレスの重複", func(t *testing.T) {
		db := setupTestDB(t)
		mailer := mocks.NewMailer(t)
		mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		svc := newAuthService(db, mailer)

		_, err := svc.Register(ctx, &model.RegisterRequest{Username: "taro", Email: "taro@example.com", Password: "password123"})
		require.NoError(t, err)

		_, err = svc.Register(ctx, &model.RegisterRequest{Username: "jiro", Email: "taro@example.com", Password: "password123"})
		assertAppErrorCode(t, err, "DUPLICATE_EMAIL")
		assert.ErrorIs(t, err, model.ErrConflict)
	})

	t.Run("異常系: ユーザー名の重複", func(t *testing.T) {
		db := setupTestDB(t)
		mailer := mocks.NewMailer(t)
		mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		svc := newAuthService(db, mailer)

		_, err := svc.Register(ctx, &model.RegisterRequest{Username: "taro", Email: "taro@example.com", Password: "password123"})
		require.NoError(t, err)

		_, err = svc.Register(ctx, &model.RegisterRequest{Username: "taro", Email: "taro2@example.com", Password: "password123"})
		assertAppErrorCode(t, err, "DUPLICATE_USERNAME")
	})

	t.Run("異常系: メール送信失敗で登録全体がロールバックされる", func(t *testing.T) {
		db := setupTestDB(t)
		mailer := mocks.NewMailer(t)
		mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError).Once()
		svc := newAuthService(db, mailer)

		_, err := svc.Register(ctx, &model.RegisterRequest{Username: "taro", Email: "taro@example.com", Password: "password123"})
		assertAppErrorCode(t, err, "EMAIL_SEND_FAILED")

		var userCount int64
		require.NoError(t, db.Model(&model.User{}).Count(&userCount).Error)
		assert.Zero(t, userCount)
	})
}

func TestAuthService_CheckUsernameAvailable(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 未使用のユーザー名は利用可能", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newAuthService(db, mocks.NewMailer(t))

		available, err := svc.CheckUsernameAvailable(ctx, "taro")
		require.NoError(t, err)
		assert.True(t, available)
	})

	t.Run("正常系: 使用済みのユーザー名は利用不可", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newAuthService(db, mocks.NewMailer(t))
		user := createVerifiedUser(t, db, "taro@example.com", "password123")

		available, err := svc.CheckUsernameAvailable(ctx, user.Username)
		require.NoError(t, err)
		assert.False(t, available)
	})
}

func TestAuthService_VerifyAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: トークンでアカウントが有効化されトークンは破棄される", func(t *testing.T) {
		db := setupTestDB(t)
		mailer := mocks.NewMailer(t)
		mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		svc := newAuthService(db, mailer)

		user, err := svc.Register(ctx, &model.RegisterRequest{Username: "taro", Email: "taro@example.com", Password: "password123"})
		require.NoError(t, err)

		var token model.UserVerificationToken
		require.NoError(t, db.Where("user_id = ?", user.UserID).First(&token).Error)

		require.NoError(t, svc.VerifyAccount(ctx, token.Token))

		var verified model.User
		require.NoError(t, db.First(&verified, "user_id = ?", user.UserID).Error)
		assert.True(t, verified.IsVerified)

		var tokenCount int64
		require.NoError(t, db.Model(&model.UserVerificationToken{}).Count(&tokenCount).Error)
		assert.Zero(t, tokenCount)
	})

	t.Run("異常系: 存在しないトークン", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newAuthService(db, mocks.NewMailer(t))

		err := svc.VerifyAccount(ctx, "no-such-token")
		assertAppErrorCode(t, err, "INVALID_TOKEN")
	})

	t.Run("異常系: 期限切れトークンは拒否され削除される", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newAuthService(db, mocks.NewMailer(t))
		user := createVerifiedUser(t, db, "taro@example.com", "password123")

		require.NoError(t, db.Create(&model.UserVerificationToken{
			Token:     "expired-token",
			UserID:    user.UserID,
			ExpiresAt: time.Now().Add(-time.Minute),
		}).Error)

		err := svc.VerifyAccount(ctx, "expired-token")
		assertAppErrorCode(t, err, "INVALID_TOKEN")

		var tokenCount int64
		require.NoError(t, db.Model(&model.UserVerificationToken{}).Count(&tokenCount).Error)
		assert.Zero(t, tokenCount)
	})
}

func TestAuthService_ResendVerification(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 古いトークンを破棄して再送する", func(t *testing.T) {
		db := setupTestDB(t)
		mailer := mocks.NewMailer(t)
		mailer.On("Send", mock.Anything, "taro@example.com", mock.Anything, mock.Anything).Return(nil).Twice()
		svc := newAuthService(db, mailer)

		user, err := svc.Register(ctx, &model.RegisterRequest{Username: "taro", Email: "taro@example.com", Password: "password123"})
		require.NoError(t, err)

		var oldToken model.UserVerificationToken
		require.NoError(t, db.Where("user_id = ?", user.UserID).First(&oldToken).Error)

		require.NoError(t, svc.ResendVerification(ctx, "taro@example.com"))

		var tokens []model.UserVerificationToken
		require.NoError(t, db.Where("user_id = ?", user.UserID).Find(&tokens).Error)
		require.Len(t, tokens, 1)
		assert.NotEqual(t, oldToken.Token, tokens[0].Token)
	})

	t.Run("正常系: 存在しないメールでも成功として扱う (列挙防止)", func(t *testing.T) {
		db := setupTestDB(t)
		// Sendは一度も呼ばれない
		svc := newAuthService(db, mocks.NewMailer(t))

		require.NoError(t, svc.ResendVerification(ctx, "nobody@example.com"))
	})

	t.Run("異常系: 有効化済みアカウントへの再送", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newAuthService(db, mocks.NewMailer(t))
		createVerifiedUser(t, db, "taro@example.com", "password123")

		err := svc.ResendVerification(ctx, "taro@example.com")
		assertAppErrorCode(t, err, "ALREADY_VERIFIED")
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 正しい資格情報でトークンとユーザー情報が返る", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newAuthService(db, mocks.NewMailer(t))
		user := createVerifiedUser(t, db, "taro@example.com", "password123")

		resp, err := svc.Login(ctx, &model.LoginRequest{Email: "taro@example.com", Password: "password123"})
		require.NoError(t, err)

		assert.NotEmpty(t, resp.AccessToken)
		require.NotNil(t, resp.User)
		assert.Equal(t, user.UserID, resp.User.UserID)
	})

	t.Run("異常系: パスワード不一致", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newAuthService(db, mocks.NewMailer(t))
		createVerifiedUser(t, db, "taro@example.com", "password123")

		_, err := svc.Login(ctx, &model.LoginRequest{Email: "taro@example.com", Password: "wrong-password"})
		assertAppErrorCode(t, err, "AUTHENTICATION_FAILED")
	})

	t.Run("異常系: 存在しないユーザーも同じエラーにする", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newAuthService(db, mocks.NewMailer(t))

		_, err := svc.Login(ctx, &model.LoginRequest{Email: "nobody@example.com", Password: "password123"})
		assertAppErrorCode(t, err, "AUTHENTICATION_FAILED")
	})

	t.Run("異常系: 未有効化アカウント", func(t *testing.T) {
		db := setupTestDB(t)
		mailer := mocks.NewMailer(t)
		mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		svc := newAuthService(db, mailer)

		_, err := svc.Register(ctx, &model.RegisterRequest{Username: "taro", Email: "taro@example.com", Password: "password123"})
		require.NoError(t, err)

		_, err = svc.Login(ctx, &model.LoginRequest{Email: "taro@example.com", Password: "password123"})
		assertAppErrorCode(t, err, "ACCOUNT_NOT_VERIFIED")
		assert.ErrorIs(t, err, model.ErrForbidden)
	})
}

func TestAuthService_PasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: リセットトークンで新しいパスワードに更新できる", func(t *testing.T) {
		db := setupTestDB(t)
		mailer := mocks.NewMailer(t)
		mailer.On("Send", mock.Anything, "taro@example.com", mock.Anything, mock.Anything).Return(nil).Once()
		svc := newAuthService(db, mailer)
		createVerifiedUser(t, db, "taro@example.com", "old-password")

		require.NoError(t, svc.RequestPasswordReset(ctx, "taro@example.com"))

		var token model.PasswordResetToken
		require.NoError(t, db.First(&token).Error)

		require.NoError(t, svc.ResetPassword(ctx, token.Token, "new-password-456"))

		// 新しいパスワードでログインできる
		_, err := svc.Login(ctx, &model.LoginRequest{Email: "taro@example.com", Password: "new-password-456"})
		require.NoError(t, err)

		// 古いパスワードは使えない
		_, err = svc.Login(ctx, &model.LoginRequest{Email: "taro@example.com", Password: "old-password"})
		assertAppErrorCode(t, err, "AUTHENTICATION_FAILED")

		// 使用済みトークンは破棄される
		var tokenCount int64
		require.NoError(t, db.Model(&model.PasswordResetToken{}).Count(&tokenCount).Error)
		assert.Zero(t, tokenCount)
	})

	t.Run("正常系: 存在しないメールでも成功として扱う (列挙防止)", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newAuthService(db, mocks.NewMailer(t))

		require.NoError(t, svc.RequestPasswordReset(ctx, "nobody@example.com"))
	})

	t.Run("異常系: 期限切れのリセットトークン", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newAuthService(db, mocks.NewMailer(t))
		user := createVerifiedUser(t, db, "taro@example.com", "password123")

		require.NoError(t, db.Create(&model.PasswordResetToken{
			Token:     "expired-token",
			UserID:    user.UserID,
			ExpiresAt: time.Now().Add(-time.Minute),
		}).Error)

		err := svc.ResetPassword(ctx, "expired-token", "new-password-456")
		assertAppErrorCode(t, err, "INVALID_TOKEN")

		// 期限切れトークンはエラー応答後も残らない
		var tokenCount int64
		require.NoError(t, db.Model(&model.PasswordResetToken{}).Count(&tokenCount).Error)
		assert.Zero(t, tokenCount)
	})
}
