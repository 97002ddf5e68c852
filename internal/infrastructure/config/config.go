package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	usecasecontract "github.com/mapmark/pinpoint/internal/usecase/contract"
)

// Config holds application configuration values.
type Config struct {
	Port               string
	AppEnv             string
	LogLevel           string
	InstanceID         string
	MongoURI           string
	MongoDBName        string
	JWTSecret          string
	RedisURL           string
	AccessTokenExpiry  time.Duration
	NearbyCacheTTL     time.Duration
	RateLimitPerSecond float64
	AllowedOrigins     []string
	MaxPageSize        int
}

var _ usecasecontract.IConfigProvider = (*Config)(nil)

// NewConfig creates a new Config instance, loading values from environment variables.
func NewConfig() *Config {
	hostname, _ := os.Hostname()
	return &Config{
		Port:               getEnv("PORT", "8080"),
		AppEnv:             getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		InstanceID:         getEnv("INSTANCE_ID", hostname),
		MongoURI:           getEnv("MONGODB_URI", ""),
		MongoDBName:        getEnv("MONGODB_DB_NAME", ""),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		RedisURL:           getEnv("REDIS_URL", ""),
		AccessTokenExpiry:  time.Minute * time.Duration(getEnvAsInt("ACCESS_TOKEN_EXPIRY_MINUTES", 60*24)),
		NearbyCacheTTL:     time.Second * time.Duration(getEnvAsInt("NEARBY_CACHE_TTL_SECONDS", 60)),
		RateLimitPerSecond: getEnvAsFloat("RATE_LIMIT_PER_SECOND", 10),
		AllowedOrigins:     getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		MaxPageSize:        getEnvAsInt("MAX_PAGE_SIZE", 100),
	}
}

func (c *Config) GetPort() string                     { return c.Port }
func (c *Config) GetAppEnv() string                   { return c.AppEnv }
func (c *Config) GetLogLevel() string                 { return c.LogLevel }
func (c *Config) GetInstanceID() string               { return c.InstanceID }
func (c *Config) GetMongoURI() string                 { return c.MongoURI }
func (c *Config) GetMongoDBName() string              { return c.MongoDBName }
func (c *Config) GetJWTSecret() string                { return c.JWTSecret }
func (c *Config) GetRedisURL() string                 { return c.RedisURL }
func (c *Config) GetAccessTokenExpiry() time.Duration { return c.AccessTokenExpiry }
func (c *Config) GetNearbyCacheTTL() time.Duration    { return c.NearbyCacheTTL }
func (c *Config) GetRateLimitPerSecond() float64      { return c.RateLimitPerSecond }
func (c *Config) GetAllowedOrigins() []string         { return c.AllowedOrigins }
func (c *Config) GetMaxPageSize() int                 { return c.MaxPageSize }

// Validate reports every required variable that is missing.
func (c *Config) Validate() error {
	var missing []string
	if c.MongoURI == "" {
		missing = append(missing, "MONGODB_URI")
	}
	if c.MongoDBName == "" {
		missing = append(missing, "MONGODB_DB_NAME")
	}
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// IsProduction reports whether gin should run in release mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// Helper function to get an environment variable or return a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(name string, fallback int) int {
	if value, err := strconv.Atoi(getEnv(name, "")); err == nil && value > 0 {
		return value
	}
	return fallback
}

func getEnvAsFloat(name string, fallback float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(name, ""), 64); err == nil && value > 0 {
		return value
	}
	return fallback
}

// getEnvAsList splits a comma separated variable, dropping blank entries.
func getEnvAsList(name string, fallback []string) []string {
	raw := getEnv(name, "")
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
