package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "HTTP_ADDR", "SENTIMENT_BACKEND", "HISTORY_LIMIT", "KAFKA_BROKER"} {
		t.Setenv(key, "")
	}

	s := Load()
	assert.Equal(t, "dev", s.Env)
	assert.Equal(t, ":8501", s.HTTPAddr)
	assert.Equal(t, BACKEND_HUGGINGFACE, s.Backend)
	assert.Equal(t, DEFAULT_MODEL_NAME, s.ModelName)
	assert.Equal(t, 100, s.HistoryLimit)
	assert.Empty(t, s.KafkaBroker)
	assert.False(t, s.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SENTIMENT_BACKEND", "VADER")
	t.Setenv("HISTORY_LIMIT", "7")
	t.Setenv("HEALTHCHECK_INTERVAL", "45")
	t.Setenv("BATCH_MAX_LINES", "not-a-number")
	t.Setenv("VALKEY_TLS", "true")

	s := Load()
	assert.True(t, s.IsProduction())
	assert.Equal(t, BACKEND_VADER, s.Backend)
	assert.Equal(t, 7, s.HistoryLimit)
	assert.Equal(t, 45*time.Second, s.HealthcheckTick)
	assert.Equal(t, 50, s.BatchMaxLines)
	assert.True(t, s.ValkeyTLS)

	t.Setenv("HEALTHCHECK_INTERVAL", "2m")
	assert.Equal(t, 2*time.Minute, Load().HealthcheckTick)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.test"), []byte("THAISENTI_PROBE=loaded\n"), 0o644))

	prev := EnvDir
	EnvDir = dir
	t.Cleanup(func() {
		EnvDir = prev
		os.Unsetenv("THAISENTI_PROBE")
	})

	LoadEnv("test")
	assert.Equal(t, "loaded", os.Getenv("THAISENTI_PROBE"))

	// a missing file only logs
	LoadEnv("missing")
}
