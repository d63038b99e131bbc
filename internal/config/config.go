package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth
	RedlineAPIKey string

	// Worker pool
	WorkerCount       int
	MaxQueueSize      int
	MaxConcurrentDiff int

	// Upload limits
	MaxUploadBytes int64

	// Comparison defaults (overridable per request)
	DefaultProfile             string
	DefaultStrategy            string
	DefaultSimilarityThreshold float64
	DefaultDiffTimeout         time.Duration

	// Job state
	JobTTL time.Duration

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		RedlineAPIKey: os.Getenv("REDLINE_API_KEY"),

		WorkerCount:       envInt("WORKER_COUNT", 4),
		MaxQueueSize:      envInt("MAX_QUEUE_SIZE", 100),
		MaxConcurrentDiff: envInt("MAX_CONCURRENT_DIFF", 4),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		DefaultProfile:             envOr("DEFAULT_PROFILE", "legal"),
		DefaultStrategy:            envOr("DEFAULT_STRATEGY", "semantic"),
		DefaultSimilarityThreshold: envFloat("DEFAULT_SIMILARITY_THRESHOLD", 0.35),
		DefaultDiffTimeout:         envDuration("DEFAULT_DIFF_TIMEOUT", 2*time.Second),

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxConcurrentDiff <= 0 {
		cfg.MaxConcurrentDiff = 4
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.DefaultSimilarityThreshold < 0 || cfg.DefaultSimilarityThreshold > 1 {
		cfg.DefaultSimilarityThreshold = 0.35
	}
	if cfg.DefaultDiffTimeout <= 0 {
		cfg.DefaultDiffTimeout = 2 * time.Second
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.RedlineAPIKey == "" {
		return fmt.Errorf("REDLINE_API_KEY is required")
	}
	switch c.DefaultProfile {
	case "legal", "generic":
	default:
		return fmt.Errorf("DEFAULT_PROFILE must be legal or generic, got %q", c.DefaultProfile)
	}
	switch c.DefaultStrategy {
	case "token", "semantic":
	default:
		return fmt.Errorf("DEFAULT_STRATEGY must be token or semantic, got %q", c.DefaultStrategy)
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

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
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
