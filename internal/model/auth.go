// internal/model/auth.go
package model

// LoginRequest はログインAPIのリクエストボディ
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse はログイン成功時のレスポンス。
// トークンはhttpOnlyクッキーにも載せるが、Bearerヘッダー利用のクライアント用に
// ボディでも返す。
type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	User        *UserResponse `json:"user"`
}

// VerifyRequest はメール認証APIのリクエストボディ
type VerifyRequest struct {
	Token string `json:"token" validate:"required"`
}

// ResendVerificationRequest は認証メール再送APIのリクエストボディ
type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}
