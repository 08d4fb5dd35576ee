package logging

import (
	"fmt"
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	globalLogger atomic.Pointer[zap.SugaredLogger]
	currentEnv   atomic.Value
)

func init() {
	globalLogger.Store(zap.NewNop().Sugar())
	currentEnv.Store("")
}

// Init initializes the global logger with JSON output
func Init(appEnv string) error {
	var config zap.Config

	if appEnv == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Encoding = "json"

	logger, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	globalLogger.Store(logger.Sugar())
	currentEnv.Store(appEnv)
	return nil
}

// GetLogger returns the global SugaredLogger. Before Init it hands out a
// no-op logger so packages can log from tests without setup.
func GetLogger() *zap.SugaredLogger {
	return globalLogger.Load()
}

// IsProduction reports whether Init was called with the production environment.
func IsProduction() bool {
	return currentEnv.Load() == "production"
}

// Close flushes any buffered logs
func Close() error {
	return GetLogger().Sync()
}

func Info(message string, fields ...interface{}) {
	GetLogger().Infow(message, fields...)
}

func Debug(message string, fields ...interface{}) {
	GetLogger().Debugw(message, fields...)
}

func Warn(message string, fields ...interface{}) {
	GetLogger().Warnw(message, fields...)
}

func Error(message string, fields ...interface{}) {
	GetLogger().Errorw(message, fields...)
}

// Fatal logs a fatal message and exits
func Fatal(message string, fields ...interface{}) {
	GetLogger().Fatalw(message, fields...)
	os.Exit(1)
}

// WithRequest creates a logger with request context fields
func WithRequest(requestID string, userID string, endpoint string) *zap.SugaredLogger {
	return GetLogger().With(
		"request_id", requestID,
		"user_id", userID,
		"endpoint", endpoint,
	)
}
