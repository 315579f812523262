package pipeline

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	ctx := context.Background()
	for _, format := range []string{"text", "json"} {
		log := NewLogger(Config{LogLevel: "info", LogFormat: format})
		require.NotNil(t, log)
		assert.True(t, log.Enabled(ctx, slog.LevelInfo))
		assert.False(t, log.Enabled(ctx, slog.LevelDebug))
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.in), "parseLevel(%q)", tt.in)
	}
}
