package database

import (
	"context"
	"strings"
	"time"

	gormlogger "gorm.io/gorm/logger"

	coreport "github.com/rafaelmeira/boatvest/internal/domain/port/core"
)

// slowQueryThreshold marks queries worth a warning
const slowQueryThreshold = time.Second

// gormLogAdapter forwards gorm's logging into the structured core logger
type gormLogAdapter struct {
	core  coreport.Logger
	level gormlogger.LogLevel
}

// NewDatabaseLogger builds a gorm logger at the configured level
func NewDatabaseLogger(core coreport.Logger, level string) gormlogger.Interface {
	return &gormLogAdapter{core: core, level: parseGormLevel(level)}
}

func parseGormLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "warn":
		return gormlogger.Warn
	default:
		return gormlogger.Info
	}
}

func (l *gormLogAdapter) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *gormLogAdapter) Info(_ context.Context, msg string, _ ...interface{}) {
	if l.level >= gormlogger.Info {
		l.core.Info(msg, map[string]any{"source": "gorm"})
	}
}

func (l *gormLogAdapter) Warn(_ context.Context, msg string, _ ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.core.Warn(msg, map[string]any{"source": "gorm"})
	}
}

func (l *gormLogAdapter) Error(_ context.Context, msg string, _ ...interface{}) {
	if l.level >= gormlogger.Error {
		l.core.Error(msg, map[string]any{"source": "gorm"})
	}
}

// Trace reports each statement, promoting failures and slow queries
func (l *gormLogAdapter) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := map[string]any{
		"source":  "gorm",
		"sql":     sql,
		"rows":    rows,
		"elapsed": elapsed.String(),
	}

	switch {
	case err != nil && l.level >= gormlogger.Error:
		fields["error"] = err.Error()
		l.core.Error("Query failed", fields)
	case elapsed >= slowQueryThreshold:
		l.core.Warn("Slow query", fields)
	case l.level >= gormlogger.Info:
		l.core.Debug("Query", fields)
	}
}
