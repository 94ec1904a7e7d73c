// Package lifecycle declares the stages of building a catalogue
// database. Implementations live in internal/ packages.
package lifecycle

import (
	"context"

	"github.com/gnames/gutendb/pkg/catalog"
	"github.com/gnames/gutendb/pkg/config"
)

// Cache provides intermediate records of books. A record is parsed
// from its metadata file once and reused afterwards.
type Cache interface {
	// GetOrParse returns a record for the book identifier, parsing the
	// source file only when the record is not cached yet.
	GetOrParse(id int, source string) (catalog.Record, error)

	// Hits returns how many records were served from the cache.
	Hits() int

	// Clear removes all cached records.
	Clear() error
}

// Store is the relational catalogue that receives records.
// Applying the same record twice leaves the store unchanged.
type Store interface {
	// Apply normalizes the record and upserts it in one transaction.
	Apply(ctx context.Context, rec catalog.Record) error

	// Clear deletes every row of the catalogue.
	Clear(ctx context.Context) error

	// Close releases the database.
	Close() error
}

// Ingester runs the whole corpus through the cache into the store.
type Ingester interface {
	// Ingest processes every item of the corpus. Per-item failures go to
	// the report, an error is returned only when the run cannot proceed.
	Ingest(ctx context.Context) (*catalog.Report, error)
}

// SchemaManager creates the catalogue schema in PostgreSQL.
// It is idempotent and safe to run multiple times.
type SchemaManager interface {
	// Create runs GORM AutoMigrate and seeds contributor roles.
	Create(ctx context.Context, cfg *config.Config) error
}

// Loader copies a finished SQLite store into PostgreSQL.
type Loader interface {
	// Load copies every table of the snapshot file.
	Load(ctx context.Context, snapshot string) error
}
