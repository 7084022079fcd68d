package utils

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/iamyashsharma43/SENTIFY/internal/config"
	"github.com/iamyashsharma43/SENTIFY/internal/constants"
)

// maxLoggedArgLength bounds string query arguments written to the debug log.
const maxLoggedArgLength = 64

// InitLogger points the global logger at stdout using cfg.Logging.
func InitLogger(cfg *config.AppConfig) {
	InitLoggerWithWriter(cfg, os.Stdout)
	log.Info().
		Str("level", zerolog.GlobalLevel().String()).
		Msg("Logger initialized")
}

// InitLoggerWithWriter configures the global zerolog logger to write to out.
// An unknown or empty level falls back to info. The console format is
// ignored in production so log shippers always receive JSON.
func InitLoggerWithWriter(cfg *config.AppConfig, out io.Writer) {
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(cfg.Logging.Level)); err == nil && cfg.Logging.Level != "" {
		level = parsed
	}
	zerolog.SetGlobalLevel(level)

	if strings.EqualFold(cfg.Logging.Format, "console") && !cfg.App.IsProduction() {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	log.Logger = zerolog.New(out).
		With().
		Timestamp().
		Str("app", cfg.App.Name).
		Str("version", cfg.App.Version).
		Str("env", cfg.App.Environment).
		Logger()
}

// LogHTTPRequest writes one line per completed request. The level follows the
// status: 5xx error, 4xx warn, API traffic info, everything else debug.
func LogHTTPRequest(requestID, method, path, remoteAddr, userAgent string, statusCode int, latency time.Duration) {
	if path == constants.HealthPath && zerolog.GlobalLevel() > zerolog.DebugLevel {
		return
	}

	var event *zerolog.Event
	switch {
	case statusCode >= 500:
		event = log.Error()
	case statusCode >= 400:
		event = log.Warn()
	case strings.HasPrefix(path, constants.APIBasePath), path == constants.TranscribePath:
		event = log.Info()
	default:
		event = log.Debug()
	}

	event.
		Str(constants.RequestIDContextKey, requestID).
		Str("method", method).
		Str("path", path).
		Str("remote_addr", remoteAddr).
		Str("user_agent", userAgent).
		Int("status", statusCode).
		Dur("latency", latency).
		Msg("HTTP Request")
}

// LogAppError records a server-side failure before it is returned to the
// client. Credential-like keys in the details are masked.
func LogAppError(err *AppError) {
	event := log.Error().
		Err(err.Err).
		Int("status", err.StatusCode)

	if err.DevInfo != "" {
		event = event.Str("dev_info", err.DevInfo)
	}
	if details := loggableDetails(err.Details); details != nil {
		event = event.Interface("details", details)
	}

	event.Msg(err.Message)
}

// loggableDetails returns details with sensitive keys redacted. Provider
// payloads arrive as raw JSON and are decoded so their keys can be checked.
func loggableDetails(details any) any {
	switch d := details.(type) {
	case nil:
		return nil
	case map[string]interface{}:
		return SanitizeKeys(d)
	case json.RawMessage:
		var fields map[string]interface{}
		if err := json.Unmarshal(d, &fields); err != nil {
			return TruncateString(string(d), maxLoggedArgLength*4)
		}
		return SanitizeKeys(fields)
	default:
		return d
	}
}

// LogDBQuery logs a database query at debug level, or at error level when
// err is set. String arguments are truncated.
func LogDBQuery(query string, args []interface{}, duration time.Duration, err error) {
	safeArgs := make([]interface{}, len(args))
	for i, arg := range args {
		if s, ok := arg.(string); ok {
			arg = TruncateString(s, maxLoggedArgLength)
		}
		safeArgs[i] = arg
	}

	event := log.Debug()
	if err != nil {
		event = log.Error().Err(err)
	}

	event.
		Str("query", query).
		Interface("args", safeArgs).
		Dur("duration", duration).
		Msg("Database query executed")
}

// LogAutomation logs Instagram login and post attempts. Passwords never reach this function.
func LogAutomation(event, username string, success bool, reason string) {
	logEvent := log.Info()
	if !success {
		logEvent = log.Warn()
	}

	logEvent = logEvent.
		Str("category", constants.LogCategoryAutomation).
		Str("event", event).
		Str(constants.UsernameContextKey, username).
		Bool("success", success)

	if reason != "" {
		logEvent = logEvent.Str("reason", reason)
	}

	logEvent.Msg("Automation attempt")
}
