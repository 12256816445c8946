package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variables that override file values.
const (
	EnvDatabaseURL      = "CV_RANKER_DATABASE_URL"
	EnvWorkers          = "CV_RANKER_WORKERS"
	EnvHistogramBuckets = "CV_RANKER_HISTOGRAM_BUCKETS"
	EnvLogLevel         = "CV_RANKER_LOG_LEVEL"
	EnvPort             = "CV_RANKER_PORT"
	EnvSkills           = "CV_RANKER_SKILLS" // comma-separated
)

// ApplyEnv overrides cfg with any CV_RANKER_* variables that are set.
// DATABASE_URL is honored as a fallback for the database URL.
func ApplyEnv(cfg *Config) {
	if url := getEnvString(EnvDatabaseURL, os.Getenv("DATABASE_URL")); url != "" {
		cfg.DatabaseURL = url
	}
	cfg.Workers = getEnvInt(EnvWorkers, cfg.Workers)
	cfg.HistogramBuckets = getEnvInt(EnvHistogramBuckets, cfg.HistogramBuckets)
	cfg.LogLevel = getEnvString(EnvLogLevel, cfg.LogLevel)
	cfg.Port = getEnvInt(EnvPort, cfg.Port)

	if skills := os.Getenv(EnvSkills); skills != "" {
		cfg.Skills = splitList(skills)
	}
}

// getEnvString gets an environment variable as a string with a default value.
func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// splitList parses a comma-separated list, dropping blank entries.
func splitList(list string) []string {
	parts := strings.Split(list, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}
