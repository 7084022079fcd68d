package constants

import "time"

// Server Timeouts
const (
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 5 * time.Minute
	DefaultShutdownTimeout = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultStartupTimeout  = 30 * time.Second
)

// Database Timeouts
const (
	DBConnectionTimeout  = 10 * time.Second
	DBHealthCheckTimeout = 5 * time.Second
	DBConnMaxLifetime    = 1 * time.Hour
	DBConnMaxIdleTime    = 30 * time.Minute
)

// Remote Call Timeouts
const (
	DefaultAnalysisTimeout     = 30 * time.Second
	AnalysisInitialBackoff     = 500 * time.Millisecond
	DefaultNavigationTimeout   = 30 * time.Second
	DefaultImageFetchTimeout   = 30 * time.Second
	DefaultScheduledRunTimeout = 5 * time.Minute
	DefaultCacheTTL            = 24 * time.Hour
	CacheDialTimeout           = 3 * time.Second
)

// Maintenance
const (
	RateLimitCleanupInterval = 10 * time.Minute
	RateLimiterIdleExpiry    = 30 * time.Minute
)
