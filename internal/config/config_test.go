package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	formskema "github.com/reoring/formskema"
	"github.com/reoring/formskema/internal/config"
)

func missing(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"FORMSKEMA_LOG_LEVEL", "FORMSKEMA_LOG_FILE", "FORMSKEMA_MAX_BYTES", "FORMSKEMA_MAX_DEPTH", "FORMSKEMA_FAIL_FAST", "FORMSKEMA_DUPLICATE_KEYS"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := config.Load(missing(t))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, int64(1<<20), cfg.MaxBytes)
	assert.Equal(t, 32, cfg.MaxDepth)
	assert.False(t, cfg.FailFast)

	opt := cfg.ParseOpt()
	assert.Equal(t, formskema.Error, opt.OnDuplicateKey)
	assert.Equal(t, 32, opt.MaxDepth)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("FORMSKEMA_LOG_LEVEL", "debug")
	t.Setenv("FORMSKEMA_MAX_DEPTH", "4")
	t.Setenv("FORMSKEMA_FAIL_FAST", "true")
	t.Setenv("FORMSKEMA_DUPLICATE_KEYS", "warn")

	cfg, err := config.Load(missing(t))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging().Level)

	opt := cfg.ParseOpt()
	assert.Equal(t, 4, opt.MaxDepth)
	assert.True(t, opt.FailFast)
	assert.Equal(t, formskema.Warn, opt.OnDuplicateKey)
}

func TestLoad_DotenvAndPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("FORMSKEMA_MAX_BYTES=2048\nFORMSKEMA_LOG_FILE=/tmp/fs.log\nFORMSKEMA_MAX_DEPTH=7\n"), 0o600))
	t.Setenv("FORMSKEMA_MAX_DEPTH", "9")
	t.Setenv("FORMSKEMA_MAX_BYTES", "")
	os.Unsetenv("FORMSKEMA_MAX_BYTES")
	t.Setenv("FORMSKEMA_LOG_FILE", "")
	os.Unsetenv("FORMSKEMA_LOG_FILE")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(2048), cfg.MaxBytes)
	assert.Equal(t, "/tmp/fs.log", cfg.Logging().FilePath)
	assert.Equal(t, 9, cfg.MaxDepth, "process environment wins over the dotenv file")

	_, set := os.LookupEnv("FORMSKEMA_MAX_BYTES")
	assert.False(t, set, "Load must not export dotenv values")
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("number", func(t *testing.T) {
		t.Setenv("FORMSKEMA_MAX_DEPTH", "deep")
		_, err := config.Load(missing(t))
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})
	t.Run("duplicate policy", func(t *testing.T) {
		t.Setenv("FORMSKEMA_DUPLICATE_KEYS", "sometimes")
		_, err := config.Load(missing(t))
		assert.ErrorIs(t, err, config.ErrInvalidDuplicatePolicy)
	})
}
