package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nori/internal/config"
	"nori/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authTestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			SecretKey:  "test-secret-key",
			CookieName: "token",
		},
	}
}

func signToken(t *testing.T, secret string, subject string, ttl time.Duration) string {
	t.Helper()

	claims := &jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestJWTAuthMiddleware(t *testing.T) {
	cfg := authTestConfig()
	userID := uuid.New()

	// 認証が通った場合にコンテキストのユーザーIDを書き出すダミーハンドラ
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := GetUserIDFromContext(r.Context())
		require.NoError(t, err)
		w.Write([]byte(id.String()))
	})
	handler := JWTAuthMiddleware(cfg)(next)

	verifyAuthError := func(t *testing.T, rec *httptest.ResponseRecorder, wantCode string) {
		t.Helper()
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		var errResp model.APIErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
		assert.Equal(t, wantCode, errResp.Error.Code)
	}

	t.Run("正常系: クッキーのトークンで認証される", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/user", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: signToken(t, cfg.JWT.SecretKey, userID.String(), time.Hour)})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID.String(), rec.Body.String())
	})

	t.Run("正常系: クッキーが無ければBearerヘッダーを使う", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/user", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, cfg.JWT.SecretKey, userID.String(), time.Hour))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID.String(), rec.Body.String())
	})

	t.Run("異常系: トークンが無い", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/user", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		verifyAuthError(t, rec, "UNAUTHORIZED")
	})

	t.Run("異常系: 署名が一致しない", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/user", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "another-secret", userID.String(), time.Hour))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		verifyAuthError(t, rec, "INVALID_TOKEN")
	})

	t.Run("異常系: 有効期限切れ", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/user", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, cfg.JWT.SecretKey, userID.String(), -time.Hour))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		verifyAuthError(t, rec, "INVALID_TOKEN")
	})

	t.Run("異常系: subjectがUUIDでない", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/user", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, cfg.JWT.SecretKey, "not-a-uuid", time.Hour))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		verifyAuthError(t, rec, "INVALID_TOKEN")
	})
}
