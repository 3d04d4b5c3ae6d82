package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Discord
	DiscordToken string `validate:"required"`
	DiscordAppID string `validate:"required"`
	// Optional: when set, commands are copied to this guild for instant
	// availability instead of waiting for global propagation.
	DiscordGuildID string

	// Upstream marketplace API
	APIBaseURL  string `validate:"required,url"`
	APIUsername string `validate:"required"`
	APIPassword string `validate:"required"`

	// Translation table for item display names
	TranslationsPath string `validate:"required"`

	// Ops HTTP server (healthz + metrics)
	OpsPort string `validate:"required"`

	// Logging
	LogLevel    string
	LogFormat   string
	Environment string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		DiscordToken:     os.Getenv("DISCORD_BOT_TOKEN"),
		DiscordAppID:     os.Getenv("CLIENT_ID"),
		DiscordGuildID:   os.Getenv("GUILD_ID"),
		APIBaseURL:       getEnv("API_URL", "https://api.opsucht.net"),
		APIUsername:      os.Getenv("API_USERNAME"),
		APIPassword:      os.Getenv("API_PASSWORD"),
		TranslationsPath: getEnv("TRANSLATIONS_PATH", "item-translations.json"),
		OpsPort:          getEnv("OPS_PORT", "8082"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
		Environment:      getEnv("ENVIRONMENT", "dev"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
