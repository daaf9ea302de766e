package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmgilman/devaccess/config"
	perrors "github.com/jmgilman/devaccess/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestNewWriterFormats(t *testing.T) {
	var buf bytes.Buffer
	NewWriter(&buf, "json", slog.LevelInfo).Info("shell round trip", "exit_code", 0)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shell round trip", entry["msg"])

	buf.Reset()
	logger := NewWriter(&buf, "text", slog.LevelWarn)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestNewToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devfs.log")
	logger, closeFn, err := New(config.LogConfig{Level: "debug", Format: "text", Output: path})
	require.NoError(t, err)
	logger.Debug("written")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written")
}

func TestNewErrors(t *testing.T) {
	_, _, err := New(config.LogConfig{Level: "loud"})
	assert.Equal(t, perrors.CodeInvalidConfig, perrors.GetCode(err))

	_, _, err = New(config.LogConfig{Output: filepath.Join(t.TempDir(), "missing", "x.log")})
	assert.Equal(t, perrors.CodeInvalidConfig, perrors.GetCode(err))
}
