package config

import "time"

// Config holds runtime settings for the finsync CLI.
type Config struct {
	ServerBaseURL string
	AuthToken     string
	DatabasePath  string
	HTTPTimeout   time.Duration
}

// LoadDefaults populates c with sensible defaults. The token has no default
// and must come from the environment, JSON or flags.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "https://shmr-finance.ru/api/v1"
	c.DatabasePath = "finsync.db"
	c.HTTPTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, a JSON file (if given) and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
