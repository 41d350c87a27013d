package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	BotToken string
	OpenAI   OpenAIConfig
	RedisURL string // empty: in-memory translation cache
	Database DatabaseConfig
	RetryTTL time.Duration // how long a correction thread stays answerable
	CacheTTL time.Duration
}

// OpenAIConfig holds translation model settings
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// DatabaseConfig holds database connection settings. An empty Host means
// preferences live in memory only.
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken: os.Getenv("BOT_TOKEN"),
		OpenAI: OpenAIConfig{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			Model:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			BaseURL: os.Getenv("OPENAI_BASE_URL"),
		},
		RedisURL: os.Getenv("REDIS_URL"),
		Database: DatabaseConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "viola"),
			User:     getEnv("DB_USER", "viola"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		RetryTTL: getEnvDuration("RETRY_TTL_MINUTES", 30),
		CacheTTL: getEnvDuration("CACHE_TTL_MINUTES", 24*60),
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if cfg.Database.Host != "" && cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required when DB_HOST is set")
	}

	return cfg, nil
}

// HasDatabase reports whether a postgres preference store is configured.
func (c *Config) HasDatabase() bool {
	return c.Database.Host != ""
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultMinutes int) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return time.Duration(defaultMinutes) * time.Minute
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes <= 0 {
		return time.Duration(defaultMinutes) * time.Minute
	}
	return time.Duration(minutes) * time.Minute
}
