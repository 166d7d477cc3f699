package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"nori/internal/model"
	"nori/internal/service"
	"nori/internal/webutil"

	"github.com/go-chi/chi/v5"
)

// FavoriteHandler はお気に入り単語のエンドポイントを提供します
type FavoriteHandler struct {
	service service.FavoriteService
	logger  *slog.Logger
}

func NewFavoriteHandler(s service.FavoriteService, logger *slog.Logger) *FavoriteHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &FavoriteHandler{
		service: s,
		logger:  logger,
	}
}

// GetFavorites はお気に入り単語の一覧を返します。GET /favorites
func (h *FavoriteHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetFavorites"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	words, err := h.service.ListFavorites(r.Context(), userID)
	if err != nil {
		logger.Error("Error listing favorites in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if words == nil {
		words = []*model.Word{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, words, logger)
}

// ToggleFavorite はお気に入りの有無を反転します。POST /favorites/{word_id}
func (h *FavoriteHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ToggleFavorite"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	wordIDStr := chi.URLParam(r, "word_id")
	wordID, err := strconv.ParseUint(wordIDStr, 10, 64)
	if err != nil || wordID == 0 {
		logger.Warn("Invalid word ID format in URL", slog.String("word_id_str", wordIDStr))
		appErr := model.NewAppError("INVALID_URL_PARAM", "word_idの形式が正しくありません。", "word_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	resp, err := h.service.ToggleFavorite(r.Context(), userID, uint(wordID))
	if err != nil {
		logger.Error("Error toggling favorite in service", slog.Any("error", err), slog.Uint64("word_id", wordID))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}
