package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Save    SaveConfig
	Redis   RedisConfig
	Log     LogConfig
	Seed    *int64 // Optional: fixed dice seed
	Metrics MetricsConfig
}

// SaveConfig holds save location configuration
type SaveConfig struct {
	Path string `validate:"required"`
	Slot string `validate:"required,max=64"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	URL string `validate:"omitempty,url"` // Optional: file saves are used when empty
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `validate:"oneof=debug info warn warning error"`
	Format string `validate:"oneof=text json"`
	File   string `validate:"required"`
}

// MetricsConfig holds metrics export configuration
type MetricsConfig struct {
	File string // Optional: prometheus textfile written on exit
}

// Load reads a .env file when one exists, then the environment
func Load() (*Config, error) {
	// A missing .env file is normal
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds the configuration from environment variables alone
func FromEnv() (*Config, error) {
	cfg := &Config{
		Save: SaveConfig{
			Path: getEnvOrDefault("TXTRPG_SAVE_PATH", "game_save.json"),
			Slot: getEnvOrDefault("TXTRPG_SAVE_SLOT", "default"),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		Log: LogConfig{
			Level:  getEnvOrDefault("TXTRPG_LOG_LEVEL", "info"),
			Format: getEnvOrDefault("TXTRPG_LOG_FORMAT", "text"),
			File:   getEnvOrDefault("TXTRPG_LOG_FILE", "txtrpg.log"),
		},
		Metrics: MetricsConfig{
			File: os.Getenv("TXTRPG_METRICS_FILE"),
		},
	}

	if value := os.Getenv("TXTRPG_SEED"); value != "" {
		seed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("TXTRPG_SEED must be an integer: %w", err)
		}
		cfg.Seed = &seed
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
