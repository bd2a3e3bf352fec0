package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string
	Env        string

	DBPath string

	CORSOrigin string

	// Secret for verifying identity-provider session tokens. Empty means
	// the auth middleware is a permanent no-op (local development).
	AuthSecret string

	AnthropicAPIKey string

	ResendAPIKey string
	ContactEmail string

	RedisURL string

	// DISABLE_CSRF=true is honored outside production only.
	DisableCSRF bool
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:      getEnv("PORT", DefaultPort),
		Env:             getEnv("APP_ENV", "development"),
		DBPath:          getEnv("DB_PATH", "data/practice.db"),
		CORSOrigin:      getEnv("CORS_ORIGIN", "*"),
		AuthSecret:      os.Getenv("AUTH_SECRET"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		ResendAPIKey:    os.Getenv("RESEND_API_KEY"),
		ContactEmail:    getEnv("CONTACT_EMAIL", "hello@cedarpath.example"),
		RedisURL:        os.Getenv("REDIS_URL"),
		DisableCSRF:     strings.EqualFold(os.Getenv("DISABLE_CSRF"), "true"),
	}
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// CSRFEnforced reports whether the CSRF check runs. Fails closed: the
// bypass flag only works outside production.
func (c *Config) CSRFEnforced() bool {
	if c.IsProduction() {
		return true
	}
	return !c.DisableCSRF
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
