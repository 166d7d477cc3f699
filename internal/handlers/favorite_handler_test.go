package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"nori/internal/middleware"
	"nori/internal/model"
	"nori/internal/service/mocks"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// sendToggleRequest はchiのURLパラメータ付きでToggleFavoriteを呼び出します
func sendToggleRequest(t *testing.T, h *FavoriteHandler, userID uuid.UUID, wordIDParam string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/favorites/"+wordIDParam, nil)
	if userID != uuid.Nil {
		req = req.WithContext(middleware.SetUserIDContext(req.Context(), userID))
	}
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("word_id", wordIDParam)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rec := httptest.NewRecorder()
	h.ToggleFavorite(rec, req)
	return rec
}

func TestFavoriteHandler_ToggleFavorite(t *testing.T) {
	t.Run("正常系: トグル結果を返す", func(t *testing.T) {
		userID := uuid.New()
		svc := mocks.NewFavoriteService(t)
		svc.On("ToggleFavorite", mock.Anything, userID, uint(42)).
			Return(&model.ToggleFavoriteResponse{Favorited: true}, nil).Once()
		h := NewFavoriteHandler(svc, nil)

		rec := sendToggleRequest(t, h, userID, "42")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"favorited":true}`, rec.Body.String())
	})

	t.Run("異常系: word_idが数値でない", func(t *testing.T) {
		h := NewFavoriteHandler(mocks.NewFavoriteService(t), nil)

		rec := sendToggleRequest(t, h, uuid.New(), "abc")

		verifyErrorResponse(t, rec, http.StatusBadRequest, "INVALID_URL_PARAM")
	})

	t.Run("異常系: word_idが0", func(t *testing.T) {
		h := NewFavoriteHandler(mocks.NewFavoriteService(t), nil)

		rec := sendToggleRequest(t, h, uuid.New(), "0")

		verifyErrorResponse(t, rec, http.StatusBadRequest, "INVALID_URL_PARAM")
	})

	t.Run("異常系: 存在しない単語は404", func(t *testing.T) {
		userID := uuid.New()
		svc := mocks.NewFavoriteService(t)
		svc.On("ToggleFavorite", mock.Anything, userID, uint(9999)).
			Return(nil, model.NewAppError("WORD_NOT_FOUND", "単語が見つかりません。", "word_id", model.ErrNotFound)).Once()
		h := NewFavoriteHandler(svc, nil)

		rec := sendToggleRequest(t, h, userID, "9999")

		verifyErrorResponse(t, rec, http.StatusNotFound, "WORD_NOT_FOUND")
	})
}

func TestFavoriteHandler_GetFavorites(t *testing.T) {
	t.Run("正常系: お気に入り一覧を返す", func(t *testing.T) {
		userID := uuid.New()
		svc := mocks.NewFavoriteService(t)
		svc.On("ListFavorites", mock.Anything, userID).
			Return([]*model.Word{{ID: 1, Level: "N3", Kanji: "勉強"}}, nil).Once()
		h := NewFavoriteHandler(svc, nil)

		rec := sendRequest(t, h.GetFavorites, http.MethodGet, "/api/v1/favorites", userID, nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"勉強"`)
	})

	t.Run("正常系: お気に入りが無ければ空配列 (nullではない)", func(t *testing.T) {
		userID := uuid.New()
		svc := mocks.NewFavoriteService(t)
		svc.On("ListFavorites", mock.Anything, userID).Return(nil, nil).Once()
		h := NewFavoriteHandler(svc, nil)

		rec := sendRequest(t, h.GetFavorites, http.MethodGet, "/api/v1/favorites", userID, nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]", rec.Body.String())
	})
}
