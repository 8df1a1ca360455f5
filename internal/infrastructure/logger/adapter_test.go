package logger

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Go to https://www.npr.org", "Go_to_https___www_npr_org"},
		{"", "task"},
		{"!!!", "task"},
		{strings.Repeat("a", 80), strings.Repeat("a", 60)},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitize(tt.in))
	}
}

func TestLoggerAdapter_WritesJSONFile(t *testing.T) {
	dir := t.TempDir()

	log, err := NewLoggerAdapter(Config{Dir: dir, TaskName: "quotes", Level: "debug"})
	require.NoError(t, err)

	log.WithField("run_id", "r1").Info("Task started", "task", "visit quotes")
	path := log.Path()
	require.NoError(t, log.Close())

	assert.Contains(t, path, "_quotes.log")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry))
	assert.Equal(t, "Task started", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "visit quotes", entry["task"])
	assert.Equal(t, "r1", entry["run_id"])
}

func TestLoggerAdapter_LevelFilter(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := NewFromZap(zap.New(core))

	log.Debug("hidden")
	log.WithFields(map[string]any{"tool": "navigate"}).Warn("Unknown tool called")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Unknown tool called", entry.Message)
	assert.Equal(t, "navigate", entry.ContextMap()["tool"])
}

func TestLoggerAdapter_CloseWithoutFile(t *testing.T) {
	log := NewNop()
	assert.NoError(t, log.Close())
	assert.Empty(t, log.Path())
}
