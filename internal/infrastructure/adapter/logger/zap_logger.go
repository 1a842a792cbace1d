package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rafaelmeira/boatvest/internal/domain/port/core"
)

// ZapLogger adapts zap to the core Logger port
type ZapLogger struct {
	zl *zap.Logger
}

// NewZapLogger builds the process logger. Production gets JSON with ISO
// timestamps for log shipping; development gets a colored console encoder.
func NewZapLogger(isProduction bool, level string) core.Logger {
	var cfg zap.Config
	if isProduction {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.MessageKey = "message"
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))

	zl, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic("logger setup: " + err.Error())
	}
	return &ZapLogger{zl: zl}
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zap.DebugLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

func toZapFields(fields map[string]any) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for key, value := range fields {
		out = append(out, zap.Any(key, value))
	}
	return out
}

func (l *ZapLogger) Debug(message string, fields map[string]any) {
	l.zl.Debug(message, toZapFields(fields)...)
}

func (l *ZapLogger) Info(message string, fields map[string]any) {
	l.zl.Info(message, toZapFields(fields)...)
}

func (l *ZapLogger) Warn(message string, fields map[string]any) {
	l.zl.Warn(message, toZapFields(fields)...)
}

func (l *ZapLogger) Error(message string, fields map[string]any) {
	l.zl.Error(message, toZapFields(fields)...)
}

// Flush drains buffered entries, called on shutdown
func (l *ZapLogger) Flush() error {
	return l.zl.Sync()
}
