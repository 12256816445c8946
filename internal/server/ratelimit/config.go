package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variables read by LoadConfig
const (
	EnvEnabled         = "CV_RANKER_RATE_LIMIT_ENABLED"
	EnvDefaultLimit    = "CV_RANKER_RATE_LIMIT_DEFAULT_LIMIT"
	EnvDefaultWindow   = "CV_RANKER_RATE_LIMIT_DEFAULT_WINDOW"
	EnvRankLimit       = "CV_RANKER_RATE_LIMIT_RANK_LIMIT"
	EnvCleanupInterval = "CV_RANKER_RATE_LIMIT_CLEANUP_INTERVAL"
	EnvWhitelist       = "CV_RANKER_RATE_LIMIT_WHITELIST"
	EnvBlacklist       = "CV_RANKER_RATE_LIMIT_BLACKLIST"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Exact path, or a prefix when it ends with "/"
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window; 0 means unlimited
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	if !getEnvBool(EnvEnabled, true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt(EnvDefaultLimit, 600),
		DefaultWindow:   getEnvDuration(EnvDefaultWindow, time.Minute),
		CleanupInterval: getEnvDuration(EnvCleanupInterval, 5*time.Minute),
		Whitelist:       parseIPList(os.Getenv(EnvWhitelist)),
		Blacklist:       parseIPList(os.Getenv(EnvBlacklist)),
		EndpointConfigs: DefaultEndpointConfigs(getEnvInt(EnvRankLimit, 60)),
	}
}

// DefaultEndpointConfigs returns the endpoint rules. rankLimit is the number of
// ranking requests a client may make per minute.
func DefaultEndpointConfigs(rankLimit int) []EndpointConfig {
	return []EndpointConfig{
		// Ranking does the extraction work, so it gets the strictest limit
		{Path: "/rank", Method: "POST", Limit: rankLimit, Window: time.Minute, Burst: max(rankLimit/6, 1)},

		// Deleting stored runs
		{Path: "/runs/", Method: "DELETE", Limit: 30, Window: time.Minute, Burst: 5},

		// Reads use the default limit; GET /health is unlimited
	}
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
