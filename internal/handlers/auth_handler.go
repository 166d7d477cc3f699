package handlers

import (
	"net/http"
	"time"

	"nori/internal/config"
	"nori/internal/middleware"
	"nori/internal/model"
	"nori/internal/service"
	"nori/internal/webutil"
)

// AuthHandler はアカウント登録・認証・セッションクッキーのエンドポイントを提供します
type AuthHandler struct {
	service service.AuthService
	cfg     *config.Config
}

func NewAuthHandler(s service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{service: s, cfg: cfg}
}

// Register は新規ユーザーを登録し、有効化メールの送信をトリガーします
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.RegisterRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	_, err := h.service.Register(r.Context(), &req)
	if err != nil {
		logger.Error("Registration process failed in service", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Registration request successful. Verification email sent.")
	webutil.RespondWithJSON(w, http.StatusCreated, map[string]string{
		"message": "確認メールを送信しました。メールボックスをご確認の上、アカウントを有効化してください。",
	}, logger)
}

// CheckUsername はユーザー名が登録可能かどうかを返します (サインアップフォームの逐次チェック用)
func (h *AuthHandler) CheckUsername(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	username := r.URL.Query().Get("username")
	if username == "" {
		appErr := model.NewAppError("INVALID_REQUEST", "ユーザー名が必要です。", "username", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	available, err := h.service.CheckUsernameAvailable(r.Context(), username)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]bool{"available": available}, logger)
}

// VerifyAccount は提供されたトークンでアカウントを有効化します
func (h *AuthHandler) VerifyAccount(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	token := r.URL.Query().Get("token")
	if token == "" {
		logger.Warn("Verification attempt with no token")
		appErr := model.NewAppError("INVALID_REQUEST", "有効化トークンが必要です。", "token", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	// トークンの先頭だけログに残す
	logger = logger.With("token_prefix", token[:min(8, len(token))])

	if err := h.service.VerifyAccount(r.Context(), token); err != nil {
		logger.Error("Account verification failed in service", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Account successfully verified")
	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "アカウントが正常に有効化されました。ログインしてください。",
	}, logger)
}

// ResendVerification は有効化メールを再送します
func (h *AuthHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.ResendVerificationRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	if err := h.service.ResendVerification(r.Context(), req.Email); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "確認メールを再送しました。メールボックスをご確認ください。",
	}, logger)
}

// Login はユーザーを認証し、JWTをhttpOnlyクッキーとレスポンスの両方で返します
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.LoginRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	loginResponse, err := h.service.Login(r.Context(), &req)
	if err != nil {
		// サービス層でログは出力済みなので、ここではエラー処理に専念
		webutil.HandleError(w, logger, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.JWT.CookieName,
		Value:    loginResponse.AccessToken,
		Path:     "/",
		Expires:  time.Now().Add(h.cfg.JWT.AccessTokenTTL),
		HttpOnly: true,
		Secure:   h.cfg.JWT.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	webutil.RespondWithJSON(w, http.StatusOK, loginResponse, logger)
}

// Logout はセッションクッキーを破棄します
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.JWT.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.JWT.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "ログアウトしました。",
	}, logger)
}

// GetMe は認証済みユーザー自身の情報を返します
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}

	user, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, model.NewUserResponse(user), logger)
}

// RequestPasswordReset はパスワード再設定メールの送信を受け付けます
func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.ForgotPasswordRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	if err := h.service.RequestPasswordReset(r.Context(), req.Email); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	// ユーザーが存在しない場合でも、セキュリティのために同じ成功メッセージを返す
	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "ご入力のメールアドレスにパスワード再設定用のリンクを送信しました。メールが届かない場合は、迷惑メールフォルダもご確認ください。",
	}, logger)
}

// ResetPassword は新しいパスワードへのリセットを実行します
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.ResetPasswordRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	if err := h.service.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "パスワードが正常に更新されました。",
	}, logger)
}
