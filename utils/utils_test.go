package utils

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite())
	assert.True(t, IsFinite(0, -1, 1e300))
	assert.False(t, IsFinite(1, math.NaN()))
	assert.False(t, IsFinite(math.Inf(-1)))
}

func TestLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	ConfigureLogger(LogConfig{Level: "debug", Format: "json", Output: &buf})
	defer ConfigureLogger(LogConfig{})

	l := Logger("check")
	l.Info().Int("errors", 2).Msg("checked")
	LogMemUsage(l, "memory")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	var event map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &event))
	assert.Equal(t, "check", event["component"])
	assert.Equal(t, "info", event["level"])
	assert.Equal(t, float64(2), event["errors"])

	require.NoError(t, json.Unmarshal(lines[1], &event))
	assert.Equal(t, "debug", event["level"])
	assert.Contains(t, event, "alloc_mib")
}

func TestLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	t.Setenv("GOGEO_LOG_LEVEL", "warn")
	ConfigureLogger(LogConfig{Output: &buf})
	defer ConfigureLogger(LogConfig{})

	l := Logger("fmt")
	l.Info().Msg("hidden")
	l.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "component=fmt")
}
