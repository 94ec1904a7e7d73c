package ioload

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gutendb/pkg/errcode"
)

// NotConnectedError is returned when Load runs without a
// database connection.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Database is not connected",
		Err:  fmt.Errorf("loader has no connection pool"),
	}
}

// SnapshotNotFoundError is returned when the SQLite snapshot
// does not exist.
func SnapshotNotFoundError(path string, err error) error {
	msg := `Cannot find snapshot <em>%s</em>

<em>How to fix:</em>
  1. Run <em>gutendb ingest</em> to create the store
  2. Give the path of the store as an argument`
	vars := []any{path}

	return &gn.Error{
		Code: errcode.LoadSnapshotNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("snapshot %s: %w", path, err),
	}
}

// SchemaMissingError is returned when the catalogue tables were not
// created in the target database.
func SchemaMissingError(database string) error {
	msg := `Database <em>%s</em> has no catalogue tables

<em>How to fix:</em>
  Run <em>gutendb create</em> first`
	vars := []any{database}

	return &gn.Error{
		Code: errcode.LoadSchemaMissingError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("no catalogue tables in %s", database),
	}
}

// SnapshotReadError is returned when rows of a snapshot table
// cannot be read.
func SnapshotReadError(table string, err error) error {
	msg := "Cannot read table <em>%s</em> from snapshot"
	vars := []any{table}

	return &gn.Error{
		Code: errcode.LoadSnapshotReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read %s: %w", table, err),
	}
}

// ClearError is returned when existing catalogue rows cannot
// be removed.
func ClearError(err error) error {
	msg := "Cannot remove existing catalogue data"

	return &gn.Error{
		Code: errcode.LoadClearError,
		Msg:  msg,
		Err:  fmt.Errorf("cannot truncate catalogue: %w", err),
	}
}

// CopyError is returned when rows cannot be written to
// PostgreSQL.
func CopyError(table string, err error) error {
	msg := `Cannot copy data into <em>%s</em>

<em>Possible causes:</em>
  - The catalogue already has data, use <em>--clear</em>
  - The schema was created by an incompatible version`
	vars := []any{table}

	return &gn.Error{
		Code: errcode.LoadCopyError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot copy %s: %w", table, err),
	}
}
