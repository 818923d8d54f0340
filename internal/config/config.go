// Copyright (c) 2025-2026 iVision Agency
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"SHOWCASE_DB_PATH" envDefault:"./data/showcase.db"`
	SessionSecret string `env:"SHOWCASE_SESSION_SECRET,required"`
	ServerHost    string `env:"SHOWCASE_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"SHOWCASE_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"SHOWCASE_ENV" envDefault:"development"`
	LogLevel      string `env:"SHOWCASE_LOG_LEVEL" envDefault:"info"`

	// Catalog backend configuration. When DatabaseURL is empty the
	// catalog runs on the built-in demo set without persistence.
	DatabaseURL string `env:"SHOWCASE_DATABASE_URL"`

	// Cache configuration
	RedisURL     string `env:"SHOWCASE_REDIS_URL"`                         // Optional Redis URL for distributed caching
	CachePrefix  string `env:"SHOWCASE_CACHE_PREFIX" envDefault:"showcase:"`
	CacheTTL     int    `env:"SHOWCASE_CACHE_TTL" envDefault:"3600"`       // Default cache TTL in seconds
	CacheMaxSize int    `env:"SHOWCASE_CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries

	// Chat assistant configuration
	GeminiAPIKey  string `env:"SHOWCASE_GEMINI_API_KEY"`
	GeminiModel   string `env:"SHOWCASE_GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	GeminiBaseURL string `env:"SHOWCASE_GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta/openai/"`

	// Seeding configuration
	DoSeed        bool   `env:"SHOWCASE_DO_SEED" envDefault:"false"`
	AdminEmail    string `env:"SHOWCASE_ADMIN_EMAIL" envDefault:"admin@ivision.fr"`
	AdminPassword string `env:"SHOWCASE_ADMIN_PASSWORD"`
	AdminName     string `env:"SHOWCASE_ADMIN_NAME" envDefault:"Administrateur"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// UseRemoteCatalog returns true if a hosted Postgres backend is configured.
func (c Config) UseRemoteCatalog() bool {
	return c.DatabaseURL != ""
}

// ChatEnabled returns true if the chat assistant is configured.
func (c Config) ChatEnabled() bool {
	return c.GeminiAPIKey != ""
}

// MinSessionSecretLength is the minimum required length for the session secret.
// AES-256 requires 32 bytes minimum for secure encryption.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("SHOWCASE_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("SHOWCASE_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("SHOWCASE_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	if cfg.DoSeed && cfg.AdminPassword == "" {
		return nil, fmt.Errorf("SHOWCASE_ADMIN_PASSWORD is required when SHOWCASE_DO_SEED is enabled")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
