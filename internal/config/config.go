// Package config resolves workplanner settings from defaults, an optional
// YAML file and environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvConfigFile = "WORKPLANNER_CONFIG"

	defaultRuleTimeoutMs = 2000
	defaultRuleFactLimit = 100000
)

type Config struct {
	DBPath      string `yaml:"db_path"`
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	LogUseCases bool   `yaml:"log_use_cases"`

	RuleTimeoutMs int `yaml:"rule_timeout_ms"`
	RuleFactLimit int `yaml:"rule_fact_limit"`
}

// DefaultConfig returns the built-in settings. DBPath is left empty when
// the home directory cannot be determined.
func DefaultConfig() Config {
	cfg := Config{
		LogLevel:      "info",
		LogFormat:     "text",
		RuleTimeoutMs: defaultRuleTimeoutMs,
		RuleFactLimit: defaultRuleFactLimit,
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.DBPath = filepath.Join(home, ".workplanner", "workplanner.db")
	}
	return cfg
}

// LoadConfig applies the file named by WORKPLANNER_CONFIG, if any, and then
// the environment. Invalid environment values are ignored.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	if v := os.Getenv("WORKPLANNER_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("WORKPLANNER_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("WORKPLANNER_LOG_FORMAT"); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}
	if v := os.Getenv("WORKPLANNER_LOG_USE_CASES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogUseCases = b
		}
	}
	if v := os.Getenv("WORKPLANNER_RULE_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RuleTimeoutMs = n
		}
	}
	if v := os.Getenv("WORKPLANNER_RULE_FACT_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RuleFactLimit = n
		}
	}

	if cfg.DBPath == "" {
		return Config{}, fmt.Errorf("no database path: set WORKPLANNER_DB or db_path")
	}
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	fileCfg := *cfg
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if fileCfg.RuleTimeoutMs <= 0 {
		fileCfg.RuleTimeoutMs = cfg.RuleTimeoutMs
	}
	if fileCfg.RuleFactLimit <= 0 {
		fileCfg.RuleFactLimit = cfg.RuleFactLimit
	}
	*cfg = fileCfg
	return nil
}

func (c Config) RuleTimeout() time.Duration {
	return time.Duration(c.RuleTimeoutMs) * time.Millisecond
}
