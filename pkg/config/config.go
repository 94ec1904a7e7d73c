// Package config provides configuration management for gutendb.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Ingest: corpus_dir, cache_dir, store_path
//   - Database: host, port, user, password, database, ssl_mode, batch_size
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Ingest.Clear, Ingest.ClearCache, Ingest.NoCache, Ingest.ReportPath
//   - Database.Clear
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GUTENDB_ prefix with underscores for nesting:
//
//	GUTENDB_INGEST_CORPUS_DIR=/data/gutenberg/epub
//	GUTENDB_INGEST_STORE_PATH=books.sqlite3
//	GUTENDB_DATABASE_HOST=localhost
//	GUTENDB_LOG_LEVEL=info
//	GUTENDB_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete gutendb configuration.
type Config struct {
	// Ingest contains settings of the RDF to relational pipeline.
	Ingest IngestConfig `mapstructure:"ingest" yaml:"ingest"`

	// Database contains PostgreSQL connection settings used by the
	// snapshot loader.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers that parse RDF files.
	// Writes to the store are always done by a single writer.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// IngestConfig contains settings for the ingest command.
type IngestConfig struct {
	// CorpusDir is the root of the RDF corpus. It contains one
	// sub-directory per book, named by the book's integer identifier.
	CorpusDir string `mapstructure:"corpus_dir" yaml:"corpus_dir"`

	// CacheDir keeps intermediate records, one JSON file per book.
	// Cached records are never invalidated.
	CacheDir string `mapstructure:"cache_dir" yaml:"cache_dir"`

	// StorePath is the location of the SQLite store that receives
	// normalized data.
	StorePath string `mapstructure:"store_path" yaml:"store_path"`

	// Clear wipes all rows from the store before ingestion.
	Clear bool `mapstructure:"-" yaml:"-"`

	// ClearCache removes all cached intermediate records before ingestion.
	ClearCache bool `mapstructure:"-" yaml:"-"`

	// NoCache disables the intermediate record cache.
	NoCache bool `mapstructure:"-" yaml:"-"`

	// ReportPath, if set, receives the batch report in YAML format.
	ReportPath string `mapstructure:"-" yaml:"-"`
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize defines the number of rows copied per CopyFrom call
	// when a snapshot is loaded into PostgreSQL.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`

	// Clear deletes catalogue rows from PostgreSQL before a snapshot
	// is loaded.
	Clear bool `mapstructure:"-" yaml:"-"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Ingest: IngestConfig{
			CorpusDir: "res/rdf",
			CacheDir:  "res/json",
			StorePath: "books.sqlite3",
		},
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "gutenberg",
			SSLMode:   "disable",
			BatchSize: 50_000,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
