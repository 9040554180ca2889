package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Directories
	InputDir  string
	OutputDir string
	UploadDir string

	// Auth. Empty disables bearer auth.
	APIKey string

	// Worker pool
	MaxConcurrentExtract int

	// Upload limits
	MaxUploadBytes int64

	// Per-request processing deadline
	ProcessingTimeout time.Duration

	// Task state
	TaskTTL time.Duration

	// Latency stats window
	StatsWindow time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8080"),

		InputDir:  envOr("INPUT_DIR", "input"),
		OutputDir: envOr("OUTPUT_DIR", "output"),
		UploadDir: envOr("UPLOAD_DIR", "uploads"),

		APIKey: os.Getenv("DOCINSIGHT_API_KEY"),

		MaxConcurrentExtract: envInt("MAX_CONCURRENT_EXTRACT", 5),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		ProcessingTimeout: envDuration("PROCESSING_TIMEOUT", 60*time.Second),

		TaskTTL: envDuration("TASK_TTL", 1*time.Hour),

		StatsWindow: envDuration("STATS_WINDOW", 1*time.Hour),
	}

	if cfg.MaxConcurrentExtract <= 0 {
		cfg.MaxConcurrentExtract = 5
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.ProcessingTimeout <= 0 {
		cfg.ProcessingTimeout = 60 * time.Second
	}
	if cfg.TaskTTL <= 0 {
		cfg.TaskTTL = 1 * time.Hour
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}

	return cfg
}

// EnsureDirs creates the working directories if they do not exist.
func (c Config) EnsureDirs() error {
	for _, dir := range []string{c.InputDir, c.OutputDir, c.UploadDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir %s: %w", dir, err)
		}
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
