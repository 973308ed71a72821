package tripapi

import (
	"os"
	"strconv"
)

// Config holds connection settings for the Trip Service.
type Config struct {
	BaseURL   string
	Token     string // bearer token; empty means unauthenticated requests
	TimeoutMs int
	LogCalls  bool
}

// DefaultConfig returns a Config pointing at a local development server.
func DefaultConfig() Config {
	return Config{
		BaseURL:   "http://localhost:8000",
		TimeoutMs: 10000,
	}
}

// LoadConfig reads connection settings from environment variables, falling
// back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("TRIPNOTE_API_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("TRIPNOTE_API_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv("TRIPNOTE_API_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("TRIPNOTE_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}

	return cfg
}
