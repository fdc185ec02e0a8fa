// Package log wraps a shared zap logger so call sites stay terse.
package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logger is the shared logger instance. It defaults to a no-op logger
// until SetLogger or Initializes replaces it.
var logger = zap.NewNop()

// Initializes sets up the global console logger for the given mode.
func Initializes(mode string) error {
	cfg := zap.NewProductionConfig()
	if mode != "prod" {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}
	logger = l
	return nil
}

// SetLogger replaces the shared logger, mainly for tests.
func SetLogger(l *zap.Logger) {
	logger = l
}

func Debug(msg string, fields ...zap.Field) {
	logger.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	logger.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	logger.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	logger.Error(msg, fields...)
}

// Sync flushes any buffered log entries.
func Sync() {
	_ = logger.Sync()
}
