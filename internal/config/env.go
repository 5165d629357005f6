package config

import (
	"os"

	"github.com/nibzard/momo-go/internal/utils"
)

// loadFromEnv overrides config from MOMO_* environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("MOMO_TASK_FILE"); v != "" {
		cfg.TaskFile = v
	}
	if v := os.Getenv("MOMO_LOCK"); v != "" {
		cfg.Lock = utils.ParseBool(v)
	}
	if v := os.Getenv("MOMO_PROMPT"); v != "" {
		cfg.Prompt = v
	}

	// Logging
	if v := os.Getenv("MOMO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("MOMO_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("MOMO_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = utils.ParseBool(v)
	}
	if v := os.Getenv("MOMO_LOG_CALLER"); v != "" {
		cfg.LogCaller = utils.ParseBool(v)
	}
}
