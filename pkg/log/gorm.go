package log

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormLogger forwards GORM's query and driver logging into a LoggerService
type GormLogger struct {
	log           LoggerService
	level         logger.LogLevel
	slowThreshold time.Duration
}

func NewGormLogger(log LoggerService, level logger.LogLevel) *GormLogger {
	return &GormLogger{
		log:           log,
		level:         level,
		slowThreshold: 200 * time.Millisecond,
	}
}

func (gl *GormLogger) LogMode(level logger.LogLevel) logger.Interface {
	clone := *gl
	clone.level = level
	return &clone
}

func (gl *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	if gl.level >= logger.Info {
		gl.log.Debug(msg, data...)
	}
}

func (gl *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if gl.level >= logger.Warn {
		gl.log.Warn(msg, data...)
	}
}

func (gl *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	if gl.level >= logger.Error {
		gl.log.Error(msg, data...)
	}
}

func (gl *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if gl.level <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && gl.level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		gl.log.Error("%s [%s, rows=%d]: %v", sql, elapsed, rows, err)
	case elapsed > gl.slowThreshold && gl.level >= logger.Warn:
		sql, rows := fc()
		gl.log.Warn("slow query %s [%s, rows=%d]", sql, elapsed, rows)
	case gl.level >= logger.Info:
		sql, rows := fc()
		gl.log.Debug("%s [%s, rows=%d]", sql, elapsed, rows)
	}
}
