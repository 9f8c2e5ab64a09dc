package config

import (
	"os"
	"time"
)

// parseEnv overlays Config with values from the environment. Unset or empty
// variables leave the current value untouched.
//
// Recognized variables:
//
//	FINSYNC_SERVER_URL    base URL of the finance API
//	FINSYNC_TOKEN         bearer token for the API
//	FINSYNC_DB            path to the local SQLite database file
//	FINSYNC_HTTP_TIMEOUT  request timeout, e.g. "10s"
func parseEnv(cfg *Config) {
	if v := os.Getenv("FINSYNC_SERVER_URL"); v != "" {
		cfg.ServerBaseURL = v
	}
	if v := os.Getenv("FINSYNC_TOKEN"); v != "" {
		cfg.AuthToken = v
	}
	if v := os.Getenv("FINSYNC_DB"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("FINSYNC_HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.HTTPTimeout = d
		}
	}
}
