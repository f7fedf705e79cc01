package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/leandrodaf/macropad/sdk/contracts"
)

// ZapLogger is an implementation of the Logger contract backed by Uber's zap.
type ZapLogger struct {
	sugar *zap.SugaredLogger
	level zap.AtomicLevel
}

// NewZapLogger creates a logger writing human-readable lines to stderr at
// InfoLevel. The level can be changed at runtime with SetLevel.
func NewZapLogger() contracts.Logger {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = level
	cfg.DisableStacktrace = true

	z, err := cfg.Build()
	if err != nil {
		z = zap.NewNop()
	}

	return &ZapLogger{sugar: z.Sugar(), level: level}
}

// Debug logs a message at the DEBUG level.
func (z *ZapLogger) Debug(msg string, keysAndValues ...any) {
	z.sugar.Debugw(msg, keysAndValues...)
}

// Info logs a message at the INFO level.
func (z *ZapLogger) Info(msg string, keysAndValues ...any) {
	z.sugar.Infow(msg, keysAndValues...)
}

// Warn logs a message at the WARN level.
func (z *ZapLogger) Warn(msg string, keysAndValues ...any) {
	z.sugar.Warnw(msg, keysAndValues...)
}

// Error logs a message at the ERROR level.
func (z *ZapLogger) Error(msg string, keysAndValues ...any) {
	z.sugar.Errorw(msg, keysAndValues...)
}

// SetLevel sets the logging level.
func (z *ZapLogger) SetLevel(level contracts.LogLevel) {
	switch level {
	case contracts.DebugLevel:
		z.level.SetLevel(zapcore.DebugLevel)
	case contracts.WarnLevel:
		z.level.SetLevel(zapcore.WarnLevel)
	case contracts.ErrorLevel:
		z.level.SetLevel(zapcore.ErrorLevel)
	default:
		z.level.SetLevel(zapcore.InfoLevel)
	}
}
