package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"nori/internal/middleware"
	"nori/internal/model"
	"nori/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// sendRequest は認証済みユーザーとしてハンドラを呼び出すヘルパーです
func sendRequest(t *testing.T, handler http.HandlerFunc, method, target string, userID uuid.UUID, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != uuid.Nil {
		req = req.WithContext(middleware.SetUserIDContext(req.Context(), userID))
	}

	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

// verifyErrorResponse はエラーレスポンスのステータスとコードを検証します
func verifyErrorResponse(t *testing.T, rec *httptest.ResponseRecorder, wantStatus int, wantCode string) {
	t.Helper()

	assert.Equal(t, wantStatus, rec.Code)
	var errResp model.APIErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, wantCode, errResp.Error.Code)
}

func TestStudyHandler_GetDeck(t *testing.T) {
	t.Run("正常系: デッキを返す", func(t *testing.T) {
		userID := uuid.New()
		deckSvc := mocks.NewDeckService(t)
		deckSvc.On("BuildDeck", mock.Anything, userID, "flashcards", "N3").
			Return(&model.DeckResponse{
				Words:        []*model.Word{{ID: 1}, {ID: 2}},
				CurrentIndex: 0,
				ReviewMode:   false,
				TotalCount:   2,
			}, nil).Once()
		h := NewStudyHandler(deckSvc, mocks.NewStudyService(t), nil)

		rec := sendRequest(t, h.GetDeck, http.MethodGet, "/api/v1/study/deck?type=flashcards&level=N3", userID, nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		var deck model.DeckResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &deck))
		assert.Len(t, deck.Words, 2)
		assert.False(t, deck.ReviewMode)
	})

	t.Run("異常系: 未認証", func(t *testing.T) {
		h := NewStudyHandler(mocks.NewDeckService(t), mocks.NewStudyService(t), nil)

		rec := sendRequest(t, h.GetDeck, http.MethodGet, "/api/v1/study/deck?type=flashcards&level=N3", uuid.Nil, nil)

		verifyErrorResponse(t, rec, http.StatusUnauthorized, "UNAUTHORIZED")
	})

	t.Run("異常系: クエリパラメータ不足", func(t *testing.T) {
		h := NewStudyHandler(mocks.NewDeckService(t), mocks.NewStudyService(t), nil)

		rec := sendRequest(t, h.GetDeck, http.MethodGet, "/api/v1/study/deck?type=flashcards", uuid.New(), nil)

		verifyErrorResponse(t, rec, http.StatusBadRequest, "VALIDATION_ERROR")
	})

	t.Run("異常系: サービスのエラーがステータスに変換される", func(t *testing.T) {
		userID := uuid.New()
		deckSvc := mocks.NewDeckService(t)
		deckSvc.On("BuildDeck", mock.Anything, userID, "listening", "N3").
			Return(nil, model.NewAppError("INVALID_TYPE", "出題形式の指定が正しくありません。", "type", model.ErrInvalidInput)).Once()
		h := NewStudyHandler(deckSvc, mocks.NewStudyService(t), nil)

		rec := sendRequest(t, h.GetDeck, http.MethodGet, "/api/v1/study/deck?type=listening&level=N3", userID, nil)

		verifyErrorResponse(t, rec, http.StatusBadRequest, "INVALID_TYPE")
	})
}

func TestStudyHandler_PostAnswer(t *testing.T) {
	result := true
	validBody := map[string]interface{}{
		"type":          "flashcards",
		"level":         "N3",
		"word_id":       1,
		"deck_word_ids": []uint{1, 2},
		"current_index": 0,
		"result":        result,
	}

	t.Run("正常系: 解答結果を返す", func(t *testing.T) {
		userID := uuid.New()
		studySvc := mocks.NewStudyService(t)
		studySvc.On("SubmitAnswer", mock.Anything, userID, mock.AnythingOfType("*model.SubmitAnswerRequest")).
			Return(&model.SubmitAnswerResponse{
				State:     model.StudyStateActive,
				Correct:   true,
				NextIndex: 1,
			}, nil).Once()
		h := NewStudyHandler(mocks.NewDeckService(t), studySvc, nil)

		rec := sendRequest(t, h.PostAnswer, http.MethodPost, "/api/v1/study/answers", userID, validBody)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp model.SubmitAnswerResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, model.StudyStateActive, resp.State)
		assert.Equal(t, 1, resp.NextIndex)
	})

	t.Run("異常系: 必須フィールド欠落はバリデーションエラー", func(t *testing.T) {
		h := NewStudyHandler(mocks.NewDeckService(t), mocks.NewStudyService(t), nil)

		rec := sendRequest(t, h.PostAnswer, http.MethodPost, "/api/v1/study/answers", uuid.New(), map[string]interface{}{
			"type": "flashcards",
		})

		verifyErrorResponse(t, rec, http.StatusBadRequest, "VALIDATION_ERROR")
	})

	t.Run("異常系: 壊れたJSONボディ", func(t *testing.T) {
		h := NewStudyHandler(mocks.NewDeckService(t), mocks.NewStudyService(t), nil)
		userID := uuid.New()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/study/answers", bytes.NewBufferString("{broken"))
		req = req.WithContext(middleware.SetUserIDContext(req.Context(), userID))
		rec := httptest.NewRecorder()
		h.PostAnswer(rec, req)

		verifyErrorResponse(t, rec, http.StatusBadRequest, "INVALID_REQUEST_BODY")
	})

	t.Run("異常系: 未認証", func(t *testing.T) {
		h := NewStudyHandler(mocks.NewDeckService(t), mocks.NewStudyService(t), nil)

		rec := sendRequest(t, h.PostAnswer, http.MethodPost, "/api/v1/study/answers", uuid.Nil, validBody)

		verifyErrorResponse(t, rec, http.StatusUnauthorized, "UNAUTHORIZED")
	})
}

func TestStudyHandler_PostCycle(t *testing.T) {
	t.Run("正常系: 受諾で復習デッキが返る", func(t *testing.T) {
		userID := uuid.New()
		studySvc := mocks.NewStudyService(t)
		studySvc.On("ResolveCycle", mock.Anything, userID, mock.AnythingOfType("*model.ResolveCycleRequest")).
			Return(&model.DeckResponse{
				Words:        []*model.Word{{ID: 2}},
				CurrentIndex: 0,
				ReviewMode:   true,
				TotalCount:   2,
			}, nil).Once()
		h := NewStudyHandler(mocks.NewDeckService(t), studySvc, nil)

		rec := sendRequest(t, h.PostCycle, http.MethodPost, "/api/v1/study/cycle", userID, map[string]interface{}{
			"type":          "flashcards",
			"level":         "N3",
			"accept":        true,
			"deck_word_ids": []uint{1, 2},
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		var deck model.DeckResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &deck))
		assert.True(t, deck.ReviewMode)
		require.Len(t, deck.Words, 1)
	})

	t.Run("異常系: accept が無い", func(t *testing.T) {
		h := NewStudyHandler(mocks.NewDeckService(t), mocks.NewStudyService(t), nil)

		rec := sendRequest(t, h.PostCycle, http.MethodPost, "/api/v1/study/cycle", uuid.New(), map[string]interface{}{
			"type":          "flashcards",
			"level":         "N3",
			"deck_word_ids": []uint{1, 2},
		})

		verifyErrorResponse(t, rec, http.StatusBadRequest, "VALIDATION_ERROR")
	})
}
