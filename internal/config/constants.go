// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "NORI"
	AppVersion = "1.0.0"
)

// デフォルト設定値
const (
	DefaultServerPort     = ":8080"
	DefaultLogLevel       = "info"
	DefaultFrontendURL    = "http://localhost:3000"
	DefaultAuthCookieName = "token"
	DefaultAccessTokenTTL = 7 * 24 * time.Hour // ログインクッキーと同じ7日
)

// メール認証トークンの有効期限
const (
	VerificationTokenTTL  = 24 * time.Hour
	PasswordResetTokenTTL = 1 * time.Hour
)
