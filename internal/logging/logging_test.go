package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"Warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.WarnLevel,
		"verbose": zapcore.WarnLevel,
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, ParseLevel(in))
		})
	}
}

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.log")
	logger, closer, err := New(Options{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("address book persisted", zap.Int("records", 3))
	require.NoError(t, logger.Sync())
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"address book persisted"`)
	assert.Contains(t, string(data), `"records":3`)
	assert.NotContains(t, string(data), "hidden")
}

func TestNewRejectsUnwritablePath(t *testing.T) {
	_, _, err := New(Options{Output: filepath.Join(t.TempDir(), "missing", "x.log")})
	assert.Error(t, err)
}
