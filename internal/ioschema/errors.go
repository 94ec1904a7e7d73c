package ioschema

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gutendb/pkg/errcode"
)

// NotConnectedError creates an error for when schema
// operation is attempted without database connection.
func NotConnectedError() error {
	msg := "Catalogue schema needs a database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// GORMConnectionError creates an error for GORM
// connection failures.
func GORMConnectionError(err error) error {
	msg := `Cannot open catalogue database with GORM

<em>How to fix:</em>
  Check database settings in config.yaml or GUTENDB_DATABASE_*
  environment variables`

	return &gn.Error{
		Code: errcode.SchemaGORMConnectionError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to connect with GORM: %w", err),
	}
}

// CreateSchemaError creates an error for schema
// creation failures.
func CreateSchemaError(err error) error {
	msg := `Cannot create catalogue schema

<em>Possible causes:</em>
  - Insufficient database permissions
  - Tables were created by an incompatible version

<em>How to fix:</em>
  1. Check database user has CREATE permissions
  2. Run <em>gutendb create --force</em> to start from scratch`

	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to create schema: %w", err),
	}
}

// SeedError creates an error for failures to insert
// contributor roles.
func SeedError(err error) error {
	msg := "Cannot seed contributor roles"

	return &gn.Error{
		Code: errcode.SchemaSeedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to seed roles: %w", err),
	}
}

// CollationError creates an error for collation
// setting failures.
func CollationError(table, column string, err error) error {
	msg := `Cannot set "C" collation on <em>%s.%s</em>

<em>How to fix:</em>
  Check that the database user has ALTER permissions`

	vars := []any{table, column}

	return &gn.Error{
		Code: errcode.SchemaCollationError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"failed to set collation on %s.%s: %w",
			table, column, err),
	}
}
