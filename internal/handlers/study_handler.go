package handlers

import (
	"log/slog"
	"net/http"

	"nori/internal/model"
	"nori/internal/service"
	"nori/internal/webutil"
)

// StudyHandler はデッキ構築と解答処理のエンドポイントを提供します
type StudyHandler struct {
	deckService  service.DeckService
	studyService service.StudyService
	logger       *slog.Logger
}

func NewStudyHandler(deckService service.DeckService, studyService service.StudyService, logger *slog.Logger) *StudyHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StudyHandler{
		deckService:  deckService,
		studyService: studyService,
		logger:       logger,
	}
}

// GetDeck は学習デッキを返します。GET /study/deck?type=...&level=...
func (h *StudyHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetDeck"))

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

	deck, err := h.deckService.BuildDeck(r.Context(), userID, exerciseType, level)
	if err != nil {
		logger.Error("Error building deck in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Deck built successfully",
		slog.String("type", exerciseType),
		slog.String("level", level),
		slog.Int("deck_size", len(deck.Words)),
		slog.Bool("review_mode", deck.ReviewMode),
	)
	webutil.RespondWithJSON(w, http.StatusOK, deck, logger)
}

// PostAnswer は1問分の解答を処理します。POST /study/answers
func (h *StudyHandler) PostAnswer(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostAnswer"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	var req model.SubmitAnswerRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	resp, err := h.studyService.SubmitAnswer(r.Context(), userID, &req)
	if err != nil {
		logger.Error("Error submitting answer in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// PostCycle はサイクル完了時の決定 (復習モード入り/リセット) を処理します。POST /study/cycle
func (h *StudyHandler) PostCycle(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostCycle"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	var req model.ResolveCycleRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	deck, err := h.studyService.ResolveCycle(r.Context(), userID, &req)
	if err != nil {
		logger.Error("Error resolving cycle in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Cycle resolved",
		slog.String("type", req.Type),
		slog.String("level", req.Level),
		slog.Bool("review_mode", deck.ReviewMode),
	)
	webutil.RespondWithJSON(w, http.StatusOK, deck, logger)
}
