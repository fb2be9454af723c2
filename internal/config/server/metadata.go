package server

// MetadataServerConfig holds metadata store configuration
type MetadataServerConfig struct {
	Type         string                 `mapstructure:"type"           yaml:"type"`
	LogLevel     string                 `mapstructure:"log_level"      yaml:"log_level"`
	MaxOpenConns int                    `mapstructure:"max_open_conns" yaml:"max_open_conns"`
	SQLite       MetadataSQLiteConfig   `mapstructure:"sqlite"         yaml:"sqlite"`
	MySQL        MetadataMySQLConfig    `mapstructure:"mysql"          yaml:"mysql"`
	Postgres     MetadataPostgresConfig `mapstructure:"postgres"       yaml:"postgres"`
}

// MetadataSQLiteConfig holds SQLite-specific configuration
type MetadataSQLiteConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

type MetadataMySQLConfig struct {
	DSN string `mapstructure:"dsn" yaml:"dsn"`
}

type MetadataPostgresConfig struct {
	DSN string `mapstructure:"dsn" yaml:"dsn"`
}
