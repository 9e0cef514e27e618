package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"cafenine/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8081", cfg.HTTPAddr)
	assert.Equal(t, ":8083", cfg.InsightsHTTPAddr)
	assert.Equal(t, ":8080", cfg.GatewayHTTPAddr)
	assert.Equal(t, config.BackendMemory, cfg.StorageBackend)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, "cafenine.orders", cfg.KafkaOrdersTopic)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr())
	assert.Equal(t, "host=localhost port=5432 user=postgres password=postgres dbname=cafenine sslmode=disable", cfg.PostgresDSN())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "Redis")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("PUBLIC_BASE_URL", "https://cafenine.example/")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, config.BackendRedis, cfg.StorageBackend)
	assert.Equal(t, "cache:6379", cfg.RedisAddr())
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, "https://cafenine.example", cfg.PublicBaseURL)
}

func TestLoad_UnknownBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "cassandra")

	_, err := config.Load("")
	assert.ErrorContains(t, err, "cassandra")
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cafenine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http_addr: \":9001\"\nstorage_backend: postgres\ndb_name: cafenine_test\n"), 0o600))
	t.Setenv("DB_NAME", "from_env")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9001", cfg.HTTPAddr)
	assert.Equal(t, config.BackendPostgres, cfg.StorageBackend)
	assert.Equal(t, "from_env", cfg.DBName)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
