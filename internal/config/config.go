package config

import (
	"fmt"
	"os"
	"strings"
)

// Configはアプリ全体の設定。
// 起動時に一度だけ読み込んで、以後は不変のまま各サービスへ渡す。
type Config struct {
	Port string // サーバーポート（8000）

	DatabaseURL string // postgres接続文字列

	JWTSecret string // JWT署名シークレット

	PayPalClientID string // PayPalクライアントID（空ならmock決済のみ）
	PayPalSecret   string // PayPalシークレット
	PayPalMode     string // sandbox / live

	FrontendURL    string   // 決済リダイレクトのデフォルト先
	AllowedOrigins []string // CORS許可オリジン
}

// PayPalが設定済みかどうか
func (c Config) PayPalEnabled() bool {
	return c.PayPalClientID != "" && c.PayPalSecret != ""
}

// Loadは環境変数から設定を読み込む
func Load() (Config, error) {
	cfg := Config{
		Port: getenv("PORT", "8000"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret: os.Getenv("SECRET_KEY"),

		PayPalClientID: os.Getenv("PAYPAL_CLIENT_ID"),
		PayPalSecret:   os.Getenv("PAYPAL_CLIENT_SECRET"),
		PayPalMode:     getenv("PAYPAL_MODE", "sandbox"),

		FrontendURL:    getenv("FRONTEND_URL", "http://localhost:3000"),
		AllowedOrigins: splitOrigins(getenv("ALLOWED_ORIGINS", "http://localhost:3000")),
	}

	//必須チェック
	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("SECRET_KEY is required")
	}
	if cfg.PayPalMode != "sandbox" && cfg.PayPalMode != "live" {
		return Config{}, fmt.Errorf("PAYPAL_MODE must be sandbox or live")
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
