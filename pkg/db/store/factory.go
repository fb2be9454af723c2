package store

import (
	"fmt"
	"strings"

	config "github.com/mwantia/lentil/internal/config/server"
	"gorm.io/gorm/logger"
)

// New creates the metadata store selected by the configuration.
// A nil logger falls back to GORM's default logger.
func New(cfg config.MetadataServerConfig, l logger.Interface) (*GormStore, error) {
	level := ParseLogLevel(cfg.LogLevel)

	switch strings.ToLower(cfg.Type) {
	case "", "sqlite":
		return NewSQLiteStore(SQLiteConfig{
			Path:     cfg.SQLite.Path,
			LogLevel: level,
			Logger:   l,
		})
	case "mysql":
		return NewMySQLStore(SQLConfig{
			DSN:          cfg.MySQL.DSN,
			MaxOpenConns: cfg.MaxOpenConns,
			LogLevel:     level,
			Logger:       l,
		})
	case "postgres", "postgresql":
		return NewPostgresStore(SQLConfig{
			DSN:          cfg.Postgres.DSN,
			MaxOpenConns: cfg.MaxOpenConns,
			LogLevel:     level,
			Logger:       l,
		})
	default:
		return nil, fmt.Errorf("unsupported metadata store type '%s'", cfg.Type)
	}
}

// ParseLogLevel maps a textual level onto GORM's logger levels
func ParseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "error":
		return logger.Error
	case "warn", "warning":
		return logger.Warn
	case "info", "debug":
		return logger.Info
	default:
		return logger.Silent
	}
}
