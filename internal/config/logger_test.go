package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		name     string
		cfg      LoggingConfig
		override string
		want     zapcore.Level
	}{
		{"default", LoggingConfig{}, "", zapcore.InfoLevel},
		{"config level", LoggingConfig{Level: "warn"}, "", zapcore.WarnLevel},
		{"warning alias", LoggingConfig{Level: "warning"}, "", zapcore.WarnLevel},
		{"override wins", LoggingConfig{Level: "error"}, "debug", zapcore.DebugLevel},
		{"console format", LoggingConfig{Level: "info", Format: "console"}, "", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.cfg, tt.override)
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.want))
			if tt.want > zapcore.DebugLevel {
				assert.False(t, logger.Core().Enabled(tt.want-1))
			}
		})
	}
}

func TestNewLogger_Invalid(t *testing.T) {
	_, err := NewLogger(LoggingConfig{Level: "loud"}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")

	_, err = NewLogger(LoggingConfig{Format: "xml"}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log format")
}

func TestNewLogger_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "maplemetrics.log")
	logger, err := NewLogger(LoggingConfig{OutputFile: path}, "")
	require.NoError(t, err)

	logger.Info("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}
