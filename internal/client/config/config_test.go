package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "https://shmr-finance.ru/api/v1", c.ServerBaseURL)
	assert.Equal(t, "finsync.db", c.DatabasePath)
	assert.Equal(t, 10*time.Second, c.HTTPTimeout)
	assert.Empty(t, c.AuthToken)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "https://shmr-finance.ru/api/v1", cfg.ServerBaseURL)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
}

func TestParseEnv_OverlaysSetVariables(t *testing.T) {
	t.Setenv("FINSYNC_SERVER_URL", "https://staging.example/api")
	t.Setenv("FINSYNC_TOKEN", "secret")
	t.Setenv("FINSYNC_HTTP_TIMEOUT", "30s")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "https://staging.example/api", cfg.ServerBaseURL)
	assert.Equal(t, "secret", cfg.AuthToken)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "finsync.db", cfg.DatabasePath, "unset variable leaves default")
}

func TestParseEnv_InvalidTimeoutIgnored(t *testing.T) {
	t.Setenv("FINSYNC_HTTP_TIMEOUT", "soon")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
}
