package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warning", LevelWarn},
		{"WARN", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "ParseLevel(%q)", tt.in)
	}
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithFormat(LevelWarn, FormatText, &buf)

	l.Info("hidden %d", 1)
	l.Warn("shown %d", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden", "info message leaked at warn level")
	assert.Contains(t, out, "shown 2")

	l.SetLevel(LevelDebug)
	l.Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")
}

func TestLoggerJSONWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithFormat(LevelInfo, FormatJSON, &buf).With("ui")

	l.Info("frame %d", 7)

	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec), "output %q", buf.String())
	assert.Equal(t, "frame 7", rec["msg"])
	assert.Equal(t, "ui", rec["component"])
}

func TestLoggerSetOutputKeepsComponent(t *testing.T) {
	l := NewWithFormat(LevelInfo, FormatText, &bytes.Buffer{}).With("state")

	var buf bytes.Buffer
	l.SetOutput(&buf)
	l.Error("boom")

	assert.Contains(t, buf.String(), "component=state")
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() {
		Discard().Error("nothing should happen")
	})
}
