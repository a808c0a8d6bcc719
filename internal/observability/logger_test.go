package observability

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.Disabled},
		{"disabled", zerolog.Disabled},
		{"verbose", zerolog.Disabled},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.level))
		})
	}
}

func TestLogger_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{Level: "debug", Format: "json", Output: &buf, ServiceName: "pdf-parser"})

	logger.WithOperation("extract").WithEngine("fitz").Info().Int("pages", 3).Msg("done")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "pdf-parser", entry["service"])
	assert.Equal(t, "extract", entry["operation"])
	assert.Equal(t, "fitz", entry["engine"])
	assert.Equal(t, float64(3), entry["pages"])
	assert.Equal(t, "done", entry["message"])
}

func TestLogger_DisabledByDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{Output: &buf})

	logger.Error().Msg("should not appear")

	assert.Zero(t, buf.Len())
}
