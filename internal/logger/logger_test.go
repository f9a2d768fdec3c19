package logger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/teia-community/teia-analytics/internal/logger"
)

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)
	restore := logger.Replace(zap.New(core))
	t.Cleanup(restore)
	return logs
}

func TestWithFields(t *testing.T) {
	logs := observe(t)

	ctx := logger.WithFields(context.Background(), zap.String("program", "teia-users"))
	ctx = logger.WithFields(ctx, zap.String("runID", "run-1"))
	logger.InfoCtx(ctx, "Persisted run", zap.Int("users", 3))

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "teia-users", fields["program"])
	assert.Equal(t, "run-1", fields["runID"])
	assert.Equal(t, int64(3), fields["users"])
}

func TestWithFields_DoesNotLeakToParent(t *testing.T) {
	logs := observe(t)

	parent := logger.WithFields(context.Background(), zap.String("program", "api"))
	_ = logger.WithFields(parent, zap.String("runID", "run-1"))
	logger.WarnCtx(parent, "No run")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0].ContextMap(), "runID")
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
}

func TestTimed(t *testing.T) {
	logs := observe(t)

	done := logger.Timed("Applied pass", zap.String("pass", "mints"))
	assert.Zero(t, logs.Len())

	done(zap.Int("profiles", 2))
	entries := logs.FilterMessage("Applied pass").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "mints", fields["pass"])
	assert.Equal(t, int64(2), fields["profiles"])
	assert.Contains(t, fields, "elapsed")
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "error message",
			err:      errors.New("swap not found"),
			expected: "swap not found",
		},
		{
			name:     "nil error",
			err:      nil,
			expected: "error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := observe(t)

			logger.ErrorCtx(context.Background(), tt.err, zap.String("component", "server"))

			entries := logs.All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.expected, entries[0].Message)
			assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
		})
	}
}

func TestInitialize(t *testing.T) {
	restore := logger.Replace(logger.Default())
	t.Cleanup(restore)

	require.NoError(t, logger.Initialize(logger.Config{Service: "teia-users"}))
	assert.NotNil(t, logger.Default())
}
