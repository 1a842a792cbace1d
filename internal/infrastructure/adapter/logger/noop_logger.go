package logger

import (
	"github.com/rafaelmeira/boatvest/internal/domain/port/core"
)

// NoopLogger discards every entry. Tests use it to keep use case
// construction quiet without wiring a real logger.
type NoopLogger struct{}

func NewNoopLogger() core.Logger {
	return &NoopLogger{}
}

func (l *NoopLogger) Debug(message string, fields map[string]any) {}
func (l *NoopLogger) Info(message string, fields map[string]any)  {}
func (l *NoopLogger) Warn(message string, fields map[string]any)  {}
func (l *NoopLogger) Error(message string, fields map[string]any) {}

func (l *NoopLogger) Flush() error { return nil }
