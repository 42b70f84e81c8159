package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_MODEL", "gemini-1.5-pro")
	t.Setenv("GOOGLE_APPS_SCRIPT_URL", "https://script.example/exec")
	t.Setenv("SHEETS_TIMEOUT_SEC", "15")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg := Load()

	assert.Equal(t, "test-key", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-1.5-pro", cfg.Gemini.Model)
	assert.Equal(t, "https://script.example/exec", cfg.Sheets.ScriptURL)
	assert.Equal(t, 15, cfg.Sheets.TimeoutSec)
	assert.True(t, cfg.MinIO.UseSSL)

	// defaults
	assert.Equal(t, "abc123", cfg.Sheets.SecretKey)
	assert.Equal(t, 10, cfg.MaxUploadMB)
	assert.Equal(t, 60, cfg.Gemini.TimeoutSec)
}

func TestArchiveEnabled(t *testing.T) {
	cfg := &AppConfig{}
	assert.False(t, cfg.ArchiveEnabled())

	cfg.MinIO.Endpoint = "localhost:9000"
	assert.True(t, cfg.ArchiveEnabled())
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
