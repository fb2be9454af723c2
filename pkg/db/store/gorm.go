package store

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/mwantia/lentil/pkg/db/migrations"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormStore implements MetadataStore on top of any GORM dialector
type GormStore struct {
	db      *gorm.DB
	dialect string
	maxOpen int
}

var _ MetadataStore = (*GormStore)(nil)

// DB returns the underlying GORM database instance
func (s *GormStore) DB() *gorm.DB {
	return s.db
}

// Dialect returns the name of the underlying database dialect
func (s *GormStore) Dialect() string {
	return s.dialect
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	Path     string
	LogLevel logger.LogLevel
	Logger   logger.Interface
}

// SQLConfig holds configuration for network databases (MySQL, PostgreSQL)
type SQLConfig struct {
	DSN          string
	MaxOpenConns int
	LogLevel     logger.LogLevel
	Logger       logger.Interface
}

// NewSQLiteStore creates a new SQLite-backed metadata store
func NewSQLiteStore(cfg SQLiteConfig) (*GormStore, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	// SQLite only supports 1 writer
	return open("sqlite", sqlite.Open(cfg.Path), 1, cfg.Logger, cfg.LogLevel)
}

// NewMySQLStore creates a new MySQL-backed metadata store
func NewMySQLStore(cfg SQLConfig) (*GormStore, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("mysql dsn is required")
	}

	return open("mysql", mysql.Open(cfg.DSN), cfg.MaxOpenConns, cfg.Logger, cfg.LogLevel)
}

// NewPostgresStore creates a new PostgreSQL-backed metadata store
func NewPostgresStore(cfg SQLConfig) (*GormStore, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}

	return open("postgres", postgres.Open(cfg.DSN), cfg.MaxOpenConns, cfg.Logger, cfg.LogLevel)
}

func open(dialect string, dialector gorm.Dialector, maxOpen int, l logger.Interface, level logger.LogLevel) (*GormStore, error) {
	// Default to silent logging
	if level == 0 {
		level = logger.Silent
	}
	if l == nil {
		l = logger.Default
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: l.LogMode(level),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialect, err)
	}

	return &GormStore{
		db:      db,
		dialect: dialect,
		maxOpen: maxOpen,
	}, nil
}

// Connect initializes the database connection
func (s *GormStore) Connect(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	// Configure connection pool
	if s.maxOpen > 0 {
		sqlDB.SetMaxOpenConns(s.maxOpen)
		sqlDB.SetMaxIdleConns(s.maxOpen)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}

// Migrate runs all pending schema migrations
func (s *GormStore) Migrate(ctx context.Context) error {
	return migrations.NewMigrator(s.db).Migrate(ctx)
}

// Health checks database connectivity
func (s *GormStore) Health(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// paginate applies optional pagination to a query
func paginate(query *gorm.DB, limit, offset int) *gorm.DB {
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	return query
}
