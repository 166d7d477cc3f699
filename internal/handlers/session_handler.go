package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"nori/internal/model"
	"nori/internal/service"
	"nori/internal/webutil"
)

// SessionHandler はレビューセッション行のエンドポイントを提供します
type SessionHandler struct {
	service service.SessionService
	logger  *slog.Logger
}

func NewSessionHandler(s service.SessionService, logger *slog.Logger) *SessionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionHandler{
		service: s,
		logger:  logger,
	}
}

// GetSession はセッションを返します。存在しない場合は null を返します (404ではない)。
// GET /review-session?type=...&level=...
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetSession"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	sessionType := r.URL.Query().Get("type")
	level := r.URL.Query().Get("level")
	if sessionType == "" || level == "" {
		logger.Warn("Missing type or level query parameter")
		appErr := model.NewAppError("VALIDATION_ERROR", "typeとlevelの指定が必要です。", "type,level", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	session, err := h.service.GetSession(r.Context(), userID, sessionType, level)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			// 「保存済みセッション無し」は正常系
			webutil.RespondWithJSON(w, http.StatusOK, nil, logger)
			return
		}
		logger.Error("Error getting session in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	resp := &model.SessionResponse{
		Type:         session.Type,
		Level:        session.Level,
		WordIDs:      session.WordIDs,
		CurrentIndex: session.CurrentIndex,
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// PostSession はセッションをupsertします。POST /review-session
func (h *SessionHandler) PostSession(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostSession"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	var req model.PostSessionRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	if err := h.service.SaveSession(r.Context(), userID, req.Type, req.Level, &req); err != nil {
		logger.Error("Error saving session in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true}, logger)
}

// DeleteSession はアクティブとベースの両セッションを削除します。
// DELETE /review-session?type=...&level=...
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteSession"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	sessionType := r.URL.Query().Get("type")
	level := r.URL.Query().Get("level")
	if sessionType == "" || level == "" {
		logger.Warn("Missing type or level query parameter")
		appErr := model.NewAppError("VALIDATION_ERROR", "typeとlevelの指定が必要です。", "type,level", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	// どちらの表記で指定されてもアクティブとベースのペアを一度ずつ消す。
	// リロード時に古い順序が復活しないようにするため
	activeType := model.TrimBaseSuffix(sessionType)
	if err := h.service.DeleteSession(r.Context(), userID, activeType, level); err != nil {
		logger.Error("Error deleting session in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	if err := h.service.DeleteSession(r.Context(), userID, model.BaseSessionType(activeType), level); err != nil {
		logger.Error("Error deleting base session in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Session deleted", slog.String("type", sessionType), slog.String("level", level))
	w.WriteHeader(http.StatusNoContent)
}
