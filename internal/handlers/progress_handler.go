package handlers

import (
	"log/slog"
	"net/http"

	"nori/internal/model"
	"nori/internal/service"
	"nori/internal/webutil"
)

// ProgressHandler は進捗レコードのCRUDエンドポイントを提供します
type ProgressHandler struct {
	service service.ProgressService
	logger  *slog.Logger
}

func NewProgressHandler(s service.ProgressService, logger *slog.Logger) *ProgressHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgressHandler{
		service: s,
		logger:  logger,
	}
}

// GetProgress は進捗一覧を返します。GET /progress?type=...&level=...
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetProgress"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	exerciseType := r.URL.Query().Get("type")
	level := r.URL.Query().Get("level")
	if exerciseType == "" || level == "" {
		logger.Warn("Missing type or level query parameter")
		appErr := model.NewAppError("VALIDATION_ERROR", "typeとlevelの指定が必要です。", "type,level", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	records, err := h.service.GetProgress(r.Context(), userID, exerciseType, level)
	if err != nil {
		logger.Error("Error getting progress in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if records == nil {
		records = []*model.StudyProgress{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, records, logger)
}

// PostProgress は進捗をupsertします。POST /progress
func (h *ProgressHandler) PostProgress(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostProgress"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	var req model.PostProgressRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	if err := h.service.UpsertProgress(r.Context(), userID, req.Type, req.Level, &req); err != nil {
		logger.Error("Error upserting progress in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true}, logger)
}

// PostReset は進捗と両セッションを一括削除します。POST /progress/reset
func (h *ProgressHandler) PostReset(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostReset"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	var req model.ResetProgressRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	if err := h.service.ResetProgress(r.Context(), userID, req.Type, req.Level); err != nil {
		logger.Error("Error resetting progress in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Progress reset successfully", slog.String("type", req.Type), slog.String("level", req.Level))
	webutil.RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true}, logger)
}
