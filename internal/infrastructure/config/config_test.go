package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "MONGODB_DB_NAME", "ACCESS_TOKEN_EXPIRY_MINUTES", "NEARBY_CACHE_TTL_SECONDS", "RATE_LIMIT_PER_SECOND", "CORS_ALLOWED_ORIGINS", "MAX_PAGE_SIZE", "APP_ENV"} {
		t.Setenv(key, "")
	}

	cfg := NewConfig()

	assert.Equal(t, "8080", cfg.GetPort())
	assert.Empty(t, cfg.GetMongoDBName())
	assert.Equal(t, 24*time.Hour, cfg.GetAccessTokenExpiry())
	assert.Equal(t, time.Minute, cfg.GetNearbyCacheTTL())
	assert.Equal(t, float64(10), cfg.GetRateLimitPerSecond())
	assert.Equal(t, []string{"*"}, cfg.GetAllowedOrigins())
	assert.Equal(t, 100, cfg.GetMaxPageSize())
	assert.False(t, cfg.IsProduction())
}

func TestNewConfig_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ACCESS_TOKEN_EXPIRY_MINUTES", "15")
	t.Setenv("RATE_LIMIT_PER_SECOND", "2.5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("MAX_PAGE_SIZE", "not-a-number")
	t.Setenv("APP_ENV", "Production")

	cfg := NewConfig()

	assert.Equal(t, "9090", cfg.GetPort())
	assert.Equal(t, 15*time.Minute, cfg.GetAccessTokenExpiry())
	assert.Equal(t, 2.5, cfg.GetRateLimitPerSecond())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.GetAllowedOrigins())
	assert.Equal(t, 100, cfg.GetMaxPageSize())
	assert.True(t, cfg.IsProduction())
}

func TestConfigValidate(t *testing.T) {
	for _, key := range []string{"MONGODB_URI", "MONGODB_DB_NAME", "JWT_SECRET"} {
		t.Setenv(key, "")
	}

	err := NewConfig().Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGODB_URI, MONGODB_DB_NAME, JWT_SECRET")

	t.Setenv("MONGODB_URI", "mongodb://db:27017")
	t.Setenv("MONGODB_DB_NAME", "pinpoint")
	t.Setenv("JWT_SECRET", "s3cret")
	assert.NoError(t, NewConfig().Validate())
}
