package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every runtime option. Loaded once at startup; handlers read
// from this struct, never from the environment.
type Config struct {
	Environment string
	Port        string
	DatabaseDSN string

	SigningKey      string
	TokenExpiration int
	Issuer          string
	ServiceKey      string
	CookieName      string
}

// Load reads configuration from the environment, consulting .env when
// present. Missing optional values fall back to development defaults.
func Load() *Config {
	godotenv.Load()

	return &Config{
		Environment:     getEnv("APP_ENV", "development"),
		Port:            getEnv("PORT", "3001"),
		DatabaseDSN:     getEnv("DATABASE_DSN", "file::memory:?cache=shared"),
		SigningKey:      getEnv("JWT_SECRET", "dev-secret-change-me"),
		TokenExpiration: getEnvInt("JWT_EXPIRATION_HOURS", 24),
		Issuer:          getEnv("JWT_ISSUER", "exploree-auth"),
		ServiceKey:      getEnv("SERVICE_API_KEY", ""),
		CookieName:      getEnv("AUTH_COOKIE_NAME", "token"),
	}
}

func (c *Config) GetSigningKey() string   { return c.SigningKey }
func (c *Config) GetTokenExpiration() int { return c.TokenExpiration }
func (c *Config) GetIssuer() string       { return c.Issuer }
func (c *Config) GetServiceKey() string   { return c.ServiceKey }
func (c *Config) GetCookieName() string   { return c.CookieName }

// GetCookieSecure marks the session cookie Secure outside development.
func (c *Config) GetCookieSecure() bool {
	return c.Environment == "production"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
