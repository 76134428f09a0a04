package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("discovery-service")
	require.NoError(t, err)

	assert.Equal(t, "discovery-service", cfg.ServiceName)
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, "discovery-service", cfg.DB.DBName)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, "discovery", cfg.Metrics.Prefix)
	assert.Equal(t, 20, cfg.Discovery.DefaultPageSize)
	assert.Equal(t, 100, cfg.Discovery.MaxPageSize)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "discovery_prod")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_CACHE_TTL", "90s")
	t.Setenv("DISCOVERY_MAX_PAGE_SIZE", "250")

	cfg, err := Load("discovery-service")
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "discovery_prod", cfg.DB.DBName)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 90*time.Second, cfg.Redis.TTL)
	assert.Equal(t, 250, cfg.Discovery.MaxPageSize)
}

func TestLoadIgnoresUnparseableValues(t *testing.T) {
	t.Setenv("DISCOVERY_DEFAULT_PAGE_SIZE", "twenty")
	t.Setenv("REDIS_ENABLED", "yep")
	t.Setenv("DB_CONN_MAX_LIFETIME", "soon")

	cfg, err := Load("discovery-service")
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Discovery.DefaultPageSize)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, time.Hour, cfg.DB.ConnMaxLifetime)
}

func TestGetDSN(t *testing.T) {
	db := DBConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "postgres",
		Password: "secret",
		DBName:   "discovery",
		SSLMode:  "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=secret dbname=discovery sslmode=disable",
		db.GetDSN())
}
