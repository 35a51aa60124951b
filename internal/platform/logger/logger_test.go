package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/phrazzld/jsonapi-utils/internal/config"
	"github.com/phrazzld/jsonapi-utils/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreDefault(t *testing.T) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func entries(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		out = append(out, entry)
	}
	return out
}

func TestSetupLevels(t *testing.T) {
	tests := []struct {
		level     string
		wantDebug bool
		wantInfo  bool
		wantWarn  bool
	}{
		{"debug", true, true, true},
		{"INFO", false, true, true},
		{"warn", false, false, true},
		{"error", false, false, false},
		{"verbose", false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			restoreDefault(t)
			var buf bytes.Buffer

			l, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: tt.level}, &buf)
			require.NoError(t, err)
			require.NotNil(t, l)
			assert.Same(t, l, slog.Default())

			ctx := context.Background()
			assert.Equal(t, tt.wantDebug, l.Enabled(ctx, slog.LevelDebug))
			assert.Equal(t, tt.wantInfo, l.Enabled(ctx, slog.LevelInfo))
			assert.Equal(t, tt.wantWarn, l.Enabled(ctx, slog.LevelWarn))
		})
	}
}

func TestSetupWritesJSON(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer

	l, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: "info"}, &buf)
	require.NoError(t, err)
	l.Info("pagination configured", slog.String("paginator", "paged"))

	got := entries(t, &buf)
	require.Len(t, got, 1)
	assert.Equal(t, "INFO", got[0]["level"])
	assert.Equal(t, "pagination configured", got[0]["msg"])
	assert.Equal(t, "paged", got[0]["paginator"])
}

func TestFromContextOrDefault(t *testing.T) {
	defaultLogger := slog.Default()
	customLogger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	tests := []struct {
		name     string
		ctx      context.Context
		expected *slog.Logger
	}{
		{"nil_context_returns_default", nil, defaultLogger},
		{"context_without_logger_returns_default", context.Background(), defaultLogger},
		{"context_with_logger_returns_context_logger", logger.WithLogger(context.Background(), customLogger), customLogger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			//nolint:staticcheck // a nil context is part of the contract
			assert.Same(t, tt.expected, logger.FromContextOrDefault(tt.ctx, defaultLogger))
		})
	}
}

func TestWithLogger(t *testing.T) {
	t.Run("valid_logger", func(t *testing.T) {
		customLogger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
		ctx := logger.WithLogger(context.Background(), customLogger)
		assert.Same(t, customLogger, logger.FromContext(ctx))
	})

	t.Run("nil_logger_panics", func(t *testing.T) {
		assert.Panics(t, func() {
			logger.WithLogger(context.Background(), nil)
		})
	})
}
