package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("MINIO_PRESIGN_EXPIRY_SEC", "60")
	t.Setenv("RENDER_DENSITY", "96")
	t.Setenv("RENDER_FONT_REGULAR", "/a.ttf, /b.ttf")
	t.Setenv("AI_SERVICE_URL", "http://localhost:9000")
	t.Setenv("AI_RETRY_ATTEMPTS", "5")

	cfg := Load()

	assert.Equal(t, "db", cfg.TemplateSource)
	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, "cvdoc", cfg.Database.ApplicationName)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, time.Minute, cfg.MinIO.PresignExpiry)
	assert.Equal(t, 96.0, cfg.Render.Density)
	assert.Equal(t, 300.0, cfg.Render.BitmapDPI)
	assert.Equal(t, []string{"/a.ttf", "/b.ttf"}, cfg.Render.FontRegular)
	assert.NotEmpty(t, cfg.Render.FontBold)
	assert.Equal(t, "http://localhost:9000", cfg.AI.ServiceURL)
	assert.Equal(t, 5, cfg.AI.RetryAttempts)
	assert.Equal(t, 60*time.Second, cfg.AI.Timeout)
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

func TestGetEnvFloat(t *testing.T) {
	key := "TEST_FLOAT_VAR"

	t.Setenv(key, "1.5")
	assert.Equal(t, 1.5, getEnvFloat(key, 2))

	t.Setenv(key, "-3")
	assert.Equal(t, 2.0, getEnvFloat(key, 2))

	t.Setenv(key, "x")
	assert.Equal(t, 2.0, getEnvFloat(key, 2))
}

func TestGetEnvList(t *testing.T) {
	key := "TEST_LIST_VAR"
	def := []string{"d"}

	t.Setenv(key, "a,,b , c")
	assert.Equal(t, []string{"a", "b", "c"}, getEnvList(key, def))

	t.Setenv(key, " , ")
	assert.Equal(t, def, getEnvList(key, def))

	t.Setenv(key, "")
	assert.Equal(t, def, getEnvList(key, def))
}
