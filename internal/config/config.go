package config

import (
	"os"

	"go.uber.org/zap"
)

// Config is the process configuration, read from the environment after the
// optional .env load in cmd/api.
type Config struct {
	Addr          string
	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string
	HistoryFile   string
}

// Load reads the configuration. A missing OPENAI_API_KEY is not fatal: the
// chat relay reports a configuration error per call instead.
func Load(logger *zap.Logger) Config {
	cfg := Config{
		Addr:          ":" + getEnv("PORT", "7778"),
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
		HistoryFile:   getEnv("HISTORY_FILE", "calculation_history.json"),
	}

	if cfg.OpenAIKey == "" {
		logger.Warn("OPENAI_API_KEY not set, chat endpoint will report configuration errors")
	} else {
		logger.Info("completion credential loaded", zap.String("key", Mask(cfg.OpenAIKey)))
	}

	logger.Info("configuration loaded",
		zap.String("addr", cfg.Addr),
		zap.String("model", cfg.OpenAIModel),
		zap.String("history_file", cfg.HistoryFile),
	)

	return cfg
}

// Mask hides a secret value, keeping only the last four characters.
func Mask(secret string) string {
	if len(secret) <= 4 {
		return "***"
	}
	return "***" + secret[len(secret)-4:]
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
