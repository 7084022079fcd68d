package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/iamyashsharma43/SENTIFY/internal/constants"
)

// AppConfig represents the entire application configuration.
// It is built once at startup and passed to the components that need it.
type AppConfig struct {
	App        AppSettings        `yaml:"app"`
	Database   DatabaseSettings   `yaml:"database"`
	Server     ServerSettings     `yaml:"server"`
	Logging    LoggingSettings    `yaml:"logging"`
	CORS       CORSSettings       `yaml:"cors"`
	Analysis   AnalysisSettings   `yaml:"analysis"`
	Automation AutomationSettings `yaml:"automation"`
	Scheduler  SchedulerSettings  `yaml:"scheduler"`
	Uploads    UploadSettings     `yaml:"uploads"`
	Archive    ArchiveSettings    `yaml:"archive"`
	Cache      CacheSettings      `yaml:"cache"`
	Batch      BatchSettings      `yaml:"batch"`
	RateLimit  RateLimitSettings  `yaml:"rate_limit"`
}

// AppSettings contains general application settings
type AppSettings struct {
	Environment string `yaml:"environment" env:"APP_ENV"`
	Name        string `yaml:"name" env:"APP_NAME"`
	Version     string `yaml:"version" env:"APP_VERSION"`
}

// DatabaseSettings contains database connection settings
type DatabaseSettings struct {
	Driver      string `yaml:"driver" env:"DB_DRIVER"`
	Host        string `yaml:"host" env:"DB_HOST"`
	Port        int    `yaml:"port" env:"DB_PORT"`
	Name        string `yaml:"name" env:"DB_NAME"`
	User        string `yaml:"user" env:"DB_USER"`
	Password    string `yaml:"password" env:"DB_PASSWORD"`
	SSLMode     string `yaml:"ssl_mode" env:"DB_SSL_MODE"`
	MaxConns    int    `yaml:"max_conns" env:"DB_MAX_CONNS"`
	MinConns    int    `yaml:"min_conns" env:"DB_MIN_CONNS"`
	SkipMigrate bool   `yaml:"skip_migrate" env:"DB_SKIP_MIGRATE"`
}

// ServerSettings contains HTTP server settings
type ServerSettings struct {
	Host            string        `yaml:"host" env:"SERVER_HOST"`
	Port            int           `yaml:"port" env:"SERVER_PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`

	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Only set it when a reverse proxy in front of the server sets them.
	TrustProxy bool `yaml:"trust_proxy" env:"SERVER_TRUST_PROXY"`
}

// LoggingSettings contains logging configuration
type LoggingSettings struct {
	Level        string `yaml:"level" env:"LOG_LEVEL"`
	Format       string `yaml:"format" env:"LOG_FORMAT"`
	NoRequestLog bool   `yaml:"no_request_log" env:"LOG_NO_REQUESTS"`
}

// CORSSettings contains CORS configuration. A single origin is allowed.
type CORSSettings struct {
	AllowedOrigin    string   `yaml:"allowed_origin" env:"CORS_ORIGIN"`
	AllowedMethods   []string `yaml:"allowed_methods" env:"CORS_METHODS"`
	DisallowCredents bool     `yaml:"disallow_credentials" env:"CORS_DISALLOW_CREDENTIALS"`
}

// AnalysisSettings configures the remote sentiment, emotion and speech provider.
type AnalysisSettings struct {
	Provider     string        `yaml:"provider" env:"ANALYSIS_PROVIDER"`
	APIKey       string        `yaml:"api_key" env:"IBM_WATSON_API_KEY"`
	URL          string        `yaml:"url" env:"IBM_WATSON_URL"`
	SpeechAPIKey string        `yaml:"speech_api_key" env:"IBM_WATSON_STT_API_KEY"`
	SpeechURL    string        `yaml:"speech_url" env:"IBM_WATSON_STT_URL"`
	Version      string        `yaml:"version" env:"IBM_WATSON_VERSION"`
	Timeout      time.Duration `yaml:"timeout" env:"ANALYSIS_TIMEOUT"`
	MaxRetries   int           `yaml:"max_retries" env:"ANALYSIS_MAX_RETRIES"`
	NoRetry      bool          `yaml:"no_retry" env:"ANALYSIS_NO_RETRY"` // overrides MaxRetries
}

// AutomationSettings configures the browser used to drive Instagram.
type AutomationSettings struct {
	BaseURL           string        `yaml:"base_url" env:"INSTAGRAM_BASE_URL"`
	ShowBrowser       bool          `yaml:"show_browser" env:"AUTOMATION_SHOW_BROWSER"`
	BrowserBin        string        `yaml:"browser_bin" env:"AUTOMATION_BROWSER_BIN"`
	NavigationTimeout time.Duration `yaml:"navigation_timeout" env:"AUTOMATION_NAVIGATION_TIMEOUT"`
	ImageFetchTimeout time.Duration `yaml:"image_fetch_timeout" env:"AUTOMATION_IMAGE_FETCH_TIMEOUT"`
}

// SchedulerSettings configures the daily automated post.
type SchedulerSettings struct {
	Disabled   bool          `yaml:"disabled" env:"SCHEDULER_DISABLED"`
	Schedule   string        `yaml:"schedule" env:"SCHEDULER_CRON"`
	Timezone   string        `yaml:"timezone" env:"SCHEDULER_TIMEZONE"`
	Username   string        `yaml:"username" env:"INSTAGRAM_USERNAME"`
	Password   string        `yaml:"password" env:"INSTAGRAM_PASSWORD"`
	ImageURL   string        `yaml:"image_url" env:"SCHEDULER_IMAGE_URL"`
	Caption    string        `yaml:"caption" env:"SCHEDULER_CAPTION"`
	RunTimeout time.Duration `yaml:"run_timeout" env:"SCHEDULER_RUN_TIMEOUT"`
}

// UploadSettings configures multipart upload handling.
type UploadSettings struct {
	Dir        string `yaml:"dir" env:"UPLOAD_DIR"`
	MaxSize    int64  `yaml:"max_size" env:"UPLOAD_MAX_SIZE"`
	LenientCSV bool   `yaml:"lenient_csv" env:"UPLOAD_LENIENT_CSV"`
}

// ArchiveSettings configures the optional object-storage copy of uploads.
// Archiving is enabled when Endpoint is set.
type ArchiveSettings struct {
	Endpoint  string `yaml:"endpoint" env:"ARCHIVE_ENDPOINT"`
	AccessKey string `yaml:"access_key" env:"ARCHIVE_ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"ARCHIVE_SECRET_KEY"`
	Bucket    string `yaml:"bucket" env:"ARCHIVE_BUCKET"`
	UseSSL    bool   `yaml:"use_ssl" env:"ARCHIVE_USE_SSL"`
}

// CacheSettings configures the optional Valkey cache of provider answers.
// Caching is enabled when Address is set.
type CacheSettings struct {
	Address   string        `yaml:"address" env:"VALKEY_ADDR"`
	Password  string        `yaml:"password" env:"VALKEY_PASSWORD"`
	TTL       time.Duration `yaml:"ttl" env:"CACHE_TTL"`
	KeyPrefix string        `yaml:"key_prefix" env:"CACHE_KEY_PREFIX"`
}

// BatchSettings configures patient row processing.
type BatchSettings struct {
	Concurrency int `yaml:"concurrency" env:"BATCH_CONCURRENCY"`
}

// RateLimitSettings configures the per-IP limiter on analysis endpoints.
type RateLimitSettings struct {
	Disabled          bool    `yaml:"disabled" env:"RATE_LIMIT_DISABLED"`
	RequestsPerSecond float64 `yaml:"requests_per_second" env:"RATE_LIMIT_RPS"`
	Burst             int     `yaml:"burst" env:"RATE_LIMIT_BURST"`
}

// ConnectionString returns the driver-specific database connection string
func (dbs *DatabaseSettings) ConnectionString() string {
	if dbs.Driver == constants.DriverMySQL {
		// MariaDB/MySQL connection string format: username:password@tcp(host:port)/dbname
		password := dbs.Password
		if password != "" {
			password = ":" + password
		}
		return fmt.Sprintf(
			"%s%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&collation=utf8mb4_unicode_ci",
			dbs.User, password, dbs.Host, dbs.Port, dbs.Name,
		)
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbs.Host, dbs.Port, dbs.User, dbs.Password, dbs.Name, dbs.SSLMode,
	)
}

// ServerAddress returns the complete server address
func (ss *ServerSettings) ServerAddress() string {
	return fmt.Sprintf("%s:%d", ss.Host, ss.Port)
}

// AllowCredentials reports whether CORS responses allow credentials.
func (cs *CORSSettings) AllowCredentials() bool {
	return !cs.DisallowCredents
}

// Enabled reports whether uploads are archived to object storage.
func (as *ArchiveSettings) Enabled() bool {
	return as.Endpoint != ""
}

// Enabled reports whether provider answers are cached.
func (cs *CacheSettings) Enabled() bool {
	return cs.Address != ""
}

// Complete reports whether the scheduled post has everything it needs to run.
func (ss *SchedulerSettings) Complete() bool {
	return ss.Username != "" && ss.Password != "" && ss.ImageURL != "" && ss.Caption != ""
}

// IsDevelopment checks if the application is running in development mode
func (as *AppSettings) IsDevelopment() bool {
	return strings.ToLower(as.Environment) == constants.EnvDevelopment
}

// IsProduction checks if the application is running in production mode
func (as *AppSettings) IsProduction() bool {
	return strings.ToLower(as.Environment) == constants.EnvProduction
}

// IsTesting checks if the application is running in testing mode
func (as *AppSettings) IsTesting() bool {
	return strings.ToLower(as.Environment) == constants.EnvTesting
}

// Load loads the configuration from a config file and environment variables
func Load(configPath string) (*AppConfig, error) {
	config := &AppConfig{}

	// Load configuration from file if it exists
	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}

		err = yaml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	// Override with environment variables
	if err := LoadEnv(config); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	setDefaults(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logConfig(config)

	return config, nil
}

// setDefaults sets default values for any missing configuration
func setDefaults(config *AppConfig) {
	// App defaults
	if config.App.Environment == "" {
		config.App.Environment = constants.EnvDevelopment
	}
	if config.App.Name == "" {
		config.App.Name = constants.DefaultAppName
	}
	if config.App.Version == "" {
		config.App.Version = constants.DefaultAppVersion
	}

	// Server defaults
	if config.Server.Port == 0 {
		config.Server.Port = constants.DefaultServerPort
	}
	if config.Server.ReadTimeout == 0 {
		config.Server.ReadTimeout = constants.DefaultReadTimeout
	}
	if config.Server.WriteTimeout == 0 {
		config.Server.WriteTimeout = constants.DefaultWriteTimeout
	}
	if config.Server.IdleTimeout == 0 {
		config.Server.IdleTimeout = constants.DefaultIdleTimeout
	}
	if config.Server.ShutdownTimeout == 0 {
		config.Server.ShutdownTimeout = constants.DefaultShutdownTimeout
	}

	// Database defaults
	if config.Database.Driver == "" {
		config.Database.Driver = constants.DefaultDBDriver
	}
	if config.Database.Host == "" {
		config.Database.Host = constants.DefaultDBHost
	}
	if config.Database.Port == 0 {
		if config.Database.Driver == constants.DriverMySQL {
			config.Database.Port = constants.DefaultMySQLPort
		} else {
			config.Database.Port = constants.DefaultDBPort
		}
	}
	if config.Database.SSLMode == "" {
		config.Database.SSLMode = constants.DefaultDBSSLMode
	}
	if config.Database.MaxConns == 0 {
		config.Database.MaxConns = constants.DefaultDBMaxConnections
	}
	if config.Database.MinConns == 0 {
		config.Database.MinConns = constants.DefaultDBMinConnections
	}

	// Logging defaults
	if config.Logging.Level == "" {
		config.Logging.Level = constants.DefaultLogLevel
	}
	if config.Logging.Format == "" {
		config.Logging.Format = constants.DefaultLogFormat
	}

	// CORS defaults
	if config.CORS.AllowedOrigin == "" {
		config.CORS.AllowedOrigin = constants.DefaultCORSOrigin
	}
	if len(config.CORS.AllowedMethods) == 0 {
		config.CORS.AllowedMethods = []string{"GET", "POST", "PUT", "DELETE"}
	}

	// Analysis defaults
	if config.Analysis.Provider == "" {
		config.Analysis.Provider = constants.AnalysisProviderWatson
	}
	if config.Analysis.Version == "" {
		config.Analysis.Version = constants.DefaultWatsonVersion
	}
	if config.Analysis.SpeechURL == "" {
		config.Analysis.SpeechURL = config.Analysis.URL
	}
	if config.Analysis.SpeechAPIKey == "" {
		config.Analysis.SpeechAPIKey = config.Analysis.APIKey
	}
	if config.Analysis.Timeout == 0 {
		config.Analysis.Timeout = constants.DefaultAnalysisTimeout
	}
	// A zero max_retries reads as unset; no_retry is the way to turn retries off.
	switch {
	case config.Analysis.NoRetry:
		config.Analysis.MaxRetries = 0
	case config.Analysis.MaxRetries == 0:
		config.Analysis.MaxRetries = constants.DefaultAnalysisMaxRetries
	}

	// Automation defaults
	if config.Automation.BaseURL == "" {
		config.Automation.BaseURL = constants.DefaultInstagramBaseURL
	}
	if config.Automation.NavigationTimeout == 0 {
		config.Automation.NavigationTimeout = constants.DefaultNavigationTimeout
	}
	if config.Automation.ImageFetchTimeout == 0 {
		config.Automation.ImageFetchTimeout = constants.DefaultImageFetchTimeout
	}

	// Scheduler defaults
	if config.Scheduler.Schedule == "" {
		config.Scheduler.Schedule = constants.DefaultPostSchedule
	}
	if config.Scheduler.Timezone == "" {
		config.Scheduler.Timezone = constants.DefaultScheduleTimezone
	}
	if config.Scheduler.RunTimeout == 0 {
		config.Scheduler.RunTimeout = constants.DefaultScheduledRunTimeout
	}

	// Upload defaults
	if config.Uploads.Dir == "" {
		config.Uploads.Dir = constants.DefaultUploadDir
	}
	if config.Uploads.MaxSize == 0 {
		config.Uploads.MaxSize = constants.MaxUploadSize
	}
	if config.Archive.Bucket == "" {
		config.Archive.Bucket = constants.DefaultArchiveBucket
	}

	// Cache defaults
	if config.Cache.TTL == 0 {
		config.Cache.TTL = constants.DefaultCacheTTL
	}
	if config.Cache.KeyPrefix == "" {
		config.Cache.KeyPrefix = constants.DefaultCacheKeyPrefix
	}

	// Batch defaults
	if config.Batch.Concurrency <= 0 {
		config.Batch.Concurrency = constants.DefaultBatchConcurrency
	}
	if config.Batch.Concurrency > constants.MaxBatchConcurrency {
		config.Batch.Concurrency = constants.MaxBatchConcurrency
	}

	// Rate limit defaults
	if config.RateLimit.RequestsPerSecond == 0 {
		config.RateLimit.RequestsPerSecond = constants.DefaultRateLimitRPS
	}
	if config.RateLimit.Burst == 0 {
		config.RateLimit.Burst = constants.DefaultRateLimitBurst
	}
}

// validateConfig validates that the configuration has all required values
func validateConfig(config *AppConfig) error {
	env := strings.ToLower(config.App.Environment)
	if env != constants.EnvDevelopment && env != constants.EnvTesting && env != constants.EnvProduction {
		log.Warn().
			Str("environment", config.App.Environment).
			Msg("Invalid environment, defaulting to development")
		config.App.Environment = constants.EnvDevelopment
	}

	switch config.Analysis.Provider {
	case constants.AnalysisProviderWatson:
		if config.Analysis.APIKey == "" || config.Analysis.URL == "" {
			return fmt.Errorf("IBM_WATSON_API_KEY and IBM_WATSON_URL must be set")
		}
	case constants.AnalysisProviderVader:
		if config.App.IsProduction() {
			return fmt.Errorf("analysis provider %q is not allowed in production", config.Analysis.Provider)
		}
	default:
		return fmt.Errorf("unknown analysis provider: %s", config.Analysis.Provider)
	}

	if config.Database.Driver != constants.DriverPostgres && config.Database.Driver != constants.DriverMySQL {
		return fmt.Errorf("unsupported database driver: %s", config.Database.Driver)
	}
	if config.Database.User == "" {
		return fmt.Errorf("database user must be set")
	}

	if config.Archive.Enabled() && (config.Archive.AccessKey == "" || config.Archive.SecretKey == "") {
		return fmt.Errorf("archive credentials must be set when ARCHIVE_ENDPOINT is configured")
	}

	if config.RateLimit.RequestsPerSecond < 0 || config.RateLimit.Burst < 0 {
		return fmt.Errorf("rate limit values must not be negative")
	}

	validLevels := []string{"debug", "info", "warn", "error", "fatal", "panic"}
	logLevel := strings.ToLower(config.Logging.Level)
	validLevel := false
	for _, level := range validLevels {
		if logLevel == level {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}

	return nil
}

// logConfig logs the current configuration. Secrets are never included.
func logConfig(config *AppConfig) {
	log.Info().
		Str("environment", config.App.Environment).
		Str("version", config.App.Version).
		Str("server", config.Server.ServerAddress()).
		Str("db_driver", config.Database.Driver).
		Str("db_host", config.Database.Host).
		Int("db_port", config.Database.Port).
		Str("db_name", config.Database.Name).
		Str("analysis_provider", config.Analysis.Provider).
		Str("analysis_url", config.Analysis.URL).
		Str("schedule", config.Scheduler.Schedule).
		Bool("scheduler_disabled", config.Scheduler.Disabled).
		Bool("cache_enabled", config.Cache.Enabled()).
		Bool("archive_enabled", config.Archive.Enabled()).
		Int("batch_concurrency", config.Batch.Concurrency).
		Str("log_level", config.Logging.Level).
		Msg("Configuration loaded")
}
