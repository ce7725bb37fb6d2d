package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "workplanner.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.False(t, cfg.LogUseCases)
	assert.Equal(t, 2*time.Second, cfg.RuleTimeout())
	assert.Equal(t, 100000, cfg.RuleFactLimit)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv(EnvConfigFile, "")
	t.Setenv("WORKPLANNER_DB", "/tmp/wp.db")
	t.Setenv("WORKPLANNER_LOG_LEVEL", "DEBUG")
	t.Setenv("WORKPLANNER_LOG_FORMAT", "json")
	t.Setenv("WORKPLANNER_LOG_USE_CASES", "true")
	t.Setenv("WORKPLANNER_RULE_TIMEOUT_MS", "500")
	t.Setenv("WORKPLANNER_RULE_FACT_LIMIT", "42")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/wp.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.LogUseCases)
	assert.Equal(t, 500*time.Millisecond, cfg.RuleTimeout())
	assert.Equal(t, 42, cfg.RuleFactLimit)
}

func TestLoadConfig_InvalidEnvIgnored(t *testing.T) {
	t.Setenv(EnvConfigFile, "")
	t.Setenv("WORKPLANNER_DB", "/tmp/wp.db")
	t.Setenv("WORKPLANNER_LOG_USE_CASES", "maybe")
	t.Setenv("WORKPLANNER_RULE_TIMEOUT_MS", "-3")
	t.Setenv("WORKPLANNER_RULE_FACT_LIMIT", "lots")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.LogUseCases)
	assert.Equal(t, 2000, cfg.RuleTimeoutMs)
	assert.Equal(t, 100000, cfg.RuleFactLimit)
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	path := writeConfig(t, `
db_path: /srv/plans.db
log_format: json
rule_timeout_ms: 750
`)
	t.Setenv(EnvConfigFile, path)
	t.Setenv("WORKPLANNER_DB", "")
	t.Setenv("WORKPLANNER_LOG_FORMAT", "text")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/srv/plans.db", cfg.DBPath)
	assert.Equal(t, "text", cfg.LogFormat, "environment wins over the file")
	assert.Equal(t, 750, cfg.RuleTimeoutMs)
	assert.Equal(t, 100000, cfg.RuleFactLimit, "unset keys keep defaults")
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfig_FileErrors(t *testing.T) {
	t.Setenv(EnvConfigFile, filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")

	t.Setenv(EnvConfigFile, writeConfig(t, "db_path: [unterminated"))
	_, err = LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}
