package config

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{LogLevel: "warn", LogFormat: "json"}
	logger := cfg.NewLogger(&buf)

	logger.Info("hidden")
	logger.Warn("excluding rule", "template_id", "t1")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "excluding rule", line["msg"])
	assert.Equal(t, "t1", line["template_id"])
}

func TestNewLogger_Fallbacks(t *testing.T) {
	var buf bytes.Buffer
	logger := Config{LogLevel: "chatty", LogFormat: "xml"}.NewLogger(&buf)

	logger.Debug("hidden")
	logger.Info("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "level=INFO msg=shown")
}
