package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"nori/internal/model"
	"nori/internal/service"
	"nori/internal/webutil"

	"github.com/go-chi/chi/v5"
)

// WordHandler は単語カタログのエンドポイントを提供します
type WordHandler struct {
	service service.WordService
	logger  *slog.Logger
}

func NewWordHandler(s service.WordService, logger *slog.Logger) *WordHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WordHandler{
		service: s,
		logger:  logger,
	}
}

// GetWords はレベル指定で単語一覧を返します。GET /words?level=...
func (h *WordHandler) GetWords(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetWords"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	level := r.URL.Query().Get("level")
	if level == "" {
		logger.Warn("Missing level query parameter")
		appErr := model.NewAppError("VALIDATION_ERROR", "levelの指定が必要です。", "level", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	words, err := h.service.ListWords(r.Context(), userID, level)
	if err != nil {
		logger.Error("Error listing words in service", slog.Any("error", err), slog.String("level", level))
		webutil.HandleError(w, logger, err)
		return
	}

	if words == nil {
		words = []*model.Word{}
	}
	logger.Info("Words listed successfully", slog.String("level", level), slog.Int("count", len(words)))
	webutil.RespondWithJSON(w, http.StatusOK, words, logger)
}

// GetWord は単語を1件返します。GET /words/{word_id}
func (h *WordHandler) GetWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetWord"))

	if _, ok := requireUserID(w, r, logger); !ok {
		return
	}

	wordID, ok := parseWordID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.Uint64("word_id", uint64(wordID)))

	word, err := h.service.GetWord(r.Context(), wordID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Word not found in service")
		} else {
			logger.Error("Error getting word from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, word, logger)
}

// PostWord は単語を新規登録します。POST /words
func (h *WordHandler) PostWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostWord"))

	if _, ok := requireUserID(w, r, logger); !ok {
		return
	}

	var req model.PostWordRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	word, err := h.service.CreateWord(r.Context(), &req)
	if err != nil {
		logger.Error("Error creating word in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Word created successfully", slog.Uint64("word_id", uint64(word.ID)))
	webutil.RespondWithJSON(w, http.StatusCreated, word, logger)
}

// PutWord は単語を更新します。PUT /words/{word_id}
func (h *WordHandler) PutWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PutWord"))

	if _, ok := requireUserID(w, r, logger); !ok {
		return
	}

	wordID, ok := parseWordID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.Uint64("word_id", uint64(wordID)))

	var req model.PutWordRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	word, err := h.service.UpdateWord(r.Context(), wordID, &req)
	if err != nil {
		logger.Error("Error updating word in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Word updated successfully")
	webutil.RespondWithJSON(w, http.StatusOK, word, logger)
}

// DeleteWord は単語を削除します。DELETE /words/{word_id}
func (h *WordHandler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteWord"))

	if _, ok := requireUserID(w, r, logger); !ok {
		return
	}

	wordID, ok := parseWordID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.Uint64("word_id", uint64(wordID)))

	if err := h.service.DeleteWord(r.Context(), wordID); err != nil {
		logger.Error("Error deleting word in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Word deleted successfully")
	w.WriteHeader(http.StatusNoContent)
}

func parseWordID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uint, bool) {
	wordIDStr := chi.URLParam(r, "word_id")
	wordID, err := strconv.ParseUint(wordIDStr, 10, 64)
	if err != nil || wordID == 0 {
		logger.Warn("Invalid word ID format in URL", slog.String("word_id_str", wordIDStr))
		appErr := model.NewAppError("INVALID_URL_PARAM", "word_idの形式が正しくありません。", "word_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return 0, false
	}
	return uint(wordID), true
}
