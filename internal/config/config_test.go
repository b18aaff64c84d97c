package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loginattendance/internal/config"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "HTTP_PORT", "QUEUE_BACKEND", "STATUS_CLEAR_AFTER", "TIMESTAMP_LAYOUT", "TIMEZONE", "RATE_LIMIT_PER_MIN"} {
		t.Setenv(key, "")
	}

	cfg := config.FromEnv()

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "8081", cfg.HTTPPort)
	assert.Equal(t, "memory", cfg.QueueBackend)
	assert.Equal(t, 3*time.Second, cfg.StatusClearAfter)
	assert.Equal(t, "1/2/2006, 3:04:05 PM", cfg.TimestampLayout)
	assert.Equal(t, time.Local, cfg.Location)
	assert.Equal(t, 30, cfg.RateLimitPerMin)
	assert.False(t, cfg.Production())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("QUEUE_BACKEND", "redis")
	t.Setenv("STATUS_CLEAR_AFTER", "500ms")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("RATE_LIMIT_PER_MIN", "5")

	cfg := config.FromEnv()

	assert.True(t, cfg.Production())
	assert.Equal(t, "9000", cfg.HTTPPort)
	assert.Equal(t, "redis", cfg.QueueBackend)
	assert.Equal(t, 500*time.Millisecond, cfg.StatusClearAfter)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, 5, cfg.RateLimitPerMin)
}

func TestFromEnv_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("STATUS_CLEAR_AFTER", "soon")
	t.Setenv("TIMEZONE", "Nowhere/Land")
	t.Setenv("RATE_LIMIT_PER_MIN", "many")

	cfg := config.FromEnv()

	assert.Equal(t, 3*time.Second, cfg.StatusClearAfter)
	assert.Equal(t, time.Local, cfg.Location)
	assert.Equal(t, 30, cfg.RateLimitPerMin)
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("HTTP_PORT=7070\n"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("HTTP_PORT", "")
	os.Unsetenv("HTTP_PORT")

	cfg := config.Load()
	assert.Equal(t, "7070", cfg.HTTPPort)
}
