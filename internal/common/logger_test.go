package common

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"", slog.LevelInfo, false},
		{"INFO", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"trace", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger("info", LogFormatJSON, &buf)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("swap invoked", "protocol", "raydium_cpmm")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "swap invoked", entry["msg"])
	assert.Equal(t, "raydium_cpmm", entry["protocol"])
}

func TestNewLoggerRejectsUnknownFormat(t *testing.T) {
	_, err := NewLogger("info", "xml", nil)
	assert.Error(t, err)
}

func TestLoggerMixin(t *testing.T) {
	var m LoggerMixin
	assert.NotNil(t, m.GetLogger())

	custom := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	m.SetLogger(custom)
	m.SetLogger(nil)
	assert.Same(t, custom, m.GetLogger())
}
