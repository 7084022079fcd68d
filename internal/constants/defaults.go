// Package constants provides shared constant values used throughout the application.
//
// The defaults.go file defines default values and limits used throughout the application.
// These constants provide fallbacks for configuration settings and establish
// boundaries for resource usage.
package constants

// Default Configuration Values define fallback settings when not specified in configuration.
const (
	// DefaultAppName names the service in log lines.
	DefaultAppName = "sentify"

	// DefaultAppVersion is reported by /version when none is configured.
	DefaultAppVersion = "1.0.0"

	// DefaultServerPort is the HTTP port the service listens on.
	DefaultServerPort = 3000

	// DefaultDBDriver selects the PostgreSQL driver.
	DefaultDBDriver = "postgres"

	// DefaultDBHost is the database host used when none is configured.
	DefaultDBHost = "localhost"

	// DefaultDBPort is the default PostgreSQL port.
	DefaultDBPort = 5432

	// DefaultMySQLPort is the default MySQL/MariaDB port.
	DefaultMySQLPort = 3306

	// DefaultDBSSLMode is the PostgreSQL sslmode used when none is configured.
	DefaultDBSSLMode = "disable"

	// DefaultDBMaxConnections is the default maximum number of database connections.
	DefaultDBMaxConnections = 20

	// DefaultDBMinConnections is the default number of idle database connections.
	DefaultDBMinConnections = 5

	// DefaultLogLevel is the default logging verbosity level.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the default logging output format.
	DefaultLogFormat = "json"

	// DefaultCORSOrigin is the single front-end origin allowed by default.
	DefaultCORSOrigin = "http://localhost:3000"
)

// Database Drivers recognized by database.Connect.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Environment Types define the recognized application running environments.
const (
	// EnvDevelopment identifies a development environment with debugging features enabled.
	EnvDevelopment = "development"

	// EnvTesting identifies a testing environment for automated tests.
	EnvTesting = "testing"

	// EnvProduction identifies a production environment with optimized settings.
	EnvProduction = "production"
)

// Analysis Provider Defaults describe the remote NLU and speech endpoints.
const (
	// AnalysisProviderWatson selects the IBM Watson client.
	AnalysisProviderWatson = "watson"

	// AnalysisProviderVader selects the local VADER analyzer (development only).
	AnalysisProviderVader = "vader"

	// DefaultWatsonVersion is the NLU API version date sent on every analyze call.
	DefaultWatsonVersion = "2019-07-12"

	// WatsonAPIKeyUser is the basic-auth username IBM Cloud expects with an API key.
	WatsonAPIKeyUser = "apikey"

	// DefaultAnalysisMaxRetries bounds retries of 5xx and transport failures.
	DefaultAnalysisMaxRetries = 2

	// DefaultCacheKeyPrefix namespaces cached analysis answers in Valkey.
	DefaultCacheKeyPrefix = "sentify:analysis:"
)

// Batch Processing defaults.
const (
	// DefaultBatchConcurrency of 1 keeps the sequential row processor.
	DefaultBatchConcurrency = 1

	// MaxBatchConcurrency caps the concurrent row processor fan-out.
	MaxBatchConcurrency = 16

	// SentimentErrorPlaceholder marks a row whose analysis or persistence failed.
	SentimentErrorPlaceholder = "Error processing sentiment"
)

// Scheduler defaults for the daily Instagram post.
const (
	// DefaultPostSchedule fires once a day at 00:00.
	DefaultPostSchedule = "0 0 * * *"

	// DefaultScheduleTimezone is used when no timezone is configured.
	DefaultScheduleTimezone = "Local"
)

// Instagram automation defaults.
const (
	DefaultInstagramBaseURL = "https://www.instagram.com"
)

// Upload defaults.
const (
	// DefaultUploadDir holds temporary upload files.
	DefaultUploadDir = "uploads"

	// DefaultArchiveBucket receives archived uploads when archiving is enabled.
	DefaultArchiveBucket = "sentify-uploads"
)

// Rate limiting defaults for the analysis endpoints.
const (
	DefaultRateLimitRPS   = 5.0
	DefaultRateLimitBurst = 10
)

// File Size Limits define the maximum allowed sizes for various uploads.
const (
	// MaxRequestBodySize is the maximum size in bytes for JSON request bodies.
	// Patient batches arrive as JSON arrays, so this is larger than a typical API.
	MaxRequestBodySize = 10 << 20

	// MaxUploadSize is the maximum size in bytes for multipart uploads.
	MaxUploadSize = 50 << 20

	// MaxMultipartMemory is the in-memory threshold before multipart parts spill to disk.
	MaxMultipartMemory = 8 << 20
)
