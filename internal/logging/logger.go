package logging

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "FOXSMS_LOG_LEVEL"

// secretKeys are query parameters whose values never reach the log.
var secretKeys = map[string]bool{
	"PassWord": true,
	"token":    true,
}

// Initialize creates a new logger with the specified level.
// If level is empty, it checks FOXSMS_LOG_LEVEL.
// If neither is set, logging is disabled (silent mode).
func Initialize(level string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	zapLevel, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		// Unknown level - use info when explicitly set to something
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	built, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = built

	return nil
}

// InitializeFromEnv initializes the logger from FOXSMS_LOG_LEVEL.
func InitializeFromEnv() error {
	return Initialize("")
}

// SetLogger replaces the global logger (tests use zaptest/observer cores).
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// Redact masks a secret, keeping only enough of it to tell values apart.
func Redact(secret string) string {
	switch n := len(secret); {
	case n == 0:
		return ""
	case n <= 6:
		return strings.Repeat("*", n)
	default:
		return secret[:2] + strings.Repeat("*", n-4) + secret[n-2:]
	}
}

// RedactParam returns value masked when key names a secret parameter.
func RedactParam(key, value string) string {
	if secretKeys[key] {
		return Redact(value)
	}
	return value
}

// LogAPIRequest logs an outgoing API call
func LogAPIRequest(requestID, action string, attempt int, params map[string]string) {
	Debug("API request",
		zap.String("request_id", requestID),
		zap.String("action", action),
		zap.Int("attempt", attempt),
		zap.Any("params", params),
	)
}

// LogAPIResponse logs the raw envelope of an API call
func LogAPIResponse(requestID, action string, statusCode int, body string, elapsed time.Duration) {
	if action == "login" {
		body = redactLoginBody(body)
	}
	Debug("API response",
		zap.String("request_id", requestID),
		zap.String("action", action),
		zap.Int("status_code", statusCode),
		zap.Int("length", len(body)),
		zap.String("body", truncate(body, 512)),
		zap.Duration("elapsed", elapsed),
	)
}

// LogRetry logs a transport failure that will be retried
func LogRetry(requestID, action string, attempt int, delay time.Duration, err error) {
	Warn("API request failed, retrying",
		zap.String("request_id", requestID),
		zap.String("action", action),
		zap.Int("attempt", attempt),
		zap.Duration("backoff", delay),
		zap.Error(err),
	)
}

// Helper functions

func redactLoginBody(body string) string {
	flag, token, ok := strings.Cut(body, "|")
	if !ok || flag != "1" {
		return body
	}
	return flag + "|" + Redact(token)
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
