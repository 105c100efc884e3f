package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kundenstopper/internal/config"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestLogger_WritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, time.UTC, "info")

	l.Info("sweep_finished", Fields{"removed": 2})
	l.Error("file_remove_failed", errors.New("permission denied"), Fields{"stored_name": "a.pdf"})

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)

	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "sweep_finished", lines[0]["msg"])
	assert.Equal(t, float64(2), lines[0]["removed"])
	assert.NotEmpty(t, lines[0]["ts"])

	assert.Equal(t, "error", lines[1]["level"])
	assert.Equal(t, "permission denied", lines[1]["error"])
	assert.Equal(t, "a.pdf", lines[1]["stored_name"])
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, time.UTC, "warn")

	l.Debug("hidden", nil)
	l.Info("hidden", nil)
	l.Warn("shown", nil)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "shown", lines[0]["msg"])
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	base := New(&buf, time.UTC, "debug")
	child := base.With(Fields{"component": "retention"})

	child.Debug("tick", Fields{"n": 1})
	base.Info("plain", nil)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "retention", lines[0]["component"])
	assert.NotContains(t, lines[1], "component")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("bogus"))
}

func TestLogger_TimestampZone(t *testing.T) {
	var buf bytes.Buffer
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	New(&buf, berlin, "info").Info("zoned", nil)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	ts, err := time.Parse(time.RFC3339Nano, lines[0]["ts"].(string))
	require.NoError(t, err)
	_, offset := ts.Zone()
	_, want := time.Now().In(berlin).Zone()
	assert.Equal(t, want, offset)
	assert.NotContains(t, lines[0], "message")
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Error("ignored", errors.New("boom"), Fields{"a": 1})
	l.With(Fields{"b": 2}).Info("ignored", nil)
}

func TestNewWriter(t *testing.T) {
	assert.NotNil(t, NewWriter(config.LogConfig{}))

	path := t.TempDir() + "/app.log"
	l := New(NewWriter(config.LogConfig{File: path, MaxSizeMB: 1}), time.UTC, "info")
	l.Info("rotated", nil)
	assert.FileExists(t, path)
}
