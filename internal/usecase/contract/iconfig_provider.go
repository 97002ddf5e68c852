package usecasecontract

import "time"

type IConfigProvider interface {
	GetPort() string
	GetAppEnv() string
	GetLogLevel() string
	GetInstanceID() string
	GetMongoURI() string
	GetMongoDBName() string
	GetJWTSecret() string
	GetRedisURL() string
	GetAccessTokenExpiry() time.Duration
	GetNearbyCacheTTL() time.Duration
	GetRateLimitPerSecond() float64
	GetAllowedOrigins() []string
	GetMaxPageSize() int
}
