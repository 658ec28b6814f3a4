package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config application settings
type Config struct {
	TelegramToken string
	GeminiAPIKey  string
	MaxHistory    int
	CalcDBPath    string
	AppEnv        string
	LogLevel      string
	LogFile       string
}

// Load reads .env (if present) and the environment
func Load() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		MaxHistory:    50, // Default
		CalcDBPath:    os.Getenv("CALC_DB_PATH"),
		AppEnv:        os.Getenv("APP_ENV"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		LogFile:       os.Getenv("LOG_FILE"),
	}

	if raw := os.Getenv("MAX_HISTORY"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("MAX_HISTORY has invalid format: %v", err)
		}
		if parsed < 0 {
			return nil, fmt.Errorf("MAX_HISTORY must not be negative")
		}
		config.MaxHistory = parsed
	}

	if config.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is empty")
	}

	return config, nil
}

// AdvisorEnabled true when a Gemini key is configured
func (c *Config) AdvisorEnabled() bool {
	return c.GeminiAPIKey != ""
}
