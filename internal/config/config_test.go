package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("POSTGRES_URL", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/aflstats")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.APIPort)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.True(t, cfg.CacheEnabled)
	assert.True(t, cfg.RateLimitEnabled)
	assert.Equal(t, "https://api.squiggle.com.au", cfg.LiveFeedURL)
	assert.NotEmpty(t, cfg.LiveClientSignature)
	assert.Equal(t, 15*time.Second, cfg.LiveFeedTimeout)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("POSTGRES_URL", "postgres://localhost:5432/aflstats")
	t.Setenv("PORT", "9090")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://aflstats.example.com, https://www.aflstats.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.APIPort)
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.CacheEnabled)
	assert.Equal(t, []string{
		"https://aflstats.example.com",
		"https://www.aflstats.example.com",
	}, cfg.CORSAllowOrigins)
}

func TestEnvHelpersFallBackOnGarbage(t *testing.T) {
	t.Setenv("DB_POOL_MAX_CONNS", "lots")
	t.Setenv("DEBUG", "yes please")

	assert.Equal(t, 10, envInt("DB_POOL_MAX_CONNS", 10))
	assert.False(t, envBool("DEBUG", false))
}
