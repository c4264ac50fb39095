package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T, level string) *bytes.Buffer {
	t.Helper()
	previous := Default()
	t.Cleanup(func() { SetDefault(previous) })

	var buf bytes.Buffer
	SetDefault(New(&buf, level))
	return &buf
}

func TestWithContextAddsRequestFields(t *testing.T) {
	buf := captureLogs(t, "info")

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	ctx = context.WithValue(ctx, UserIDKey, "user-1")
	ctx = context.WithValue(ctx, ServiceKey, "api")
	InfoContext(ctx, "Check-in created", "gym_id", "gym-1")

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "Check-in created", record["msg"])
	assert.Equal(t, "req-1", record["request_id"])
	assert.Equal(t, "user-1", record["user_id"])
	assert.Equal(t, "api", record["service"])
	assert.Equal(t, "gym-1", record["gym_id"])
}

func TestLevelFiltering(t *testing.T) {
	buf := captureLogs(t, "warn")

	Info("dropped")
	Debug("dropped")
	Warn("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}
