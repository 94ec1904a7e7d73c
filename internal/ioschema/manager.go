// Package ioschema implements SchemaManager interface for
// the PostgreSQL catalogue. This is an impure I/O package
// that wraps GORM AutoMigrate functionality.
package ioschema

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gnames/gutendb/pkg/config"
	"github.com/gnames/gutendb/pkg/db"
	"github.com/gnames/gutendb/pkg/lifecycle"
	"github.com/gnames/gutendb/pkg/schema"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// manager implements the lifecycle.SchemaManager interface
// using GORM AutoMigrate.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op}
}

// Create creates or updates the catalogue schema using
// GORM AutoMigrate, seeds contributor roles and applies
// collation settings for byte-order sorting of names.
func (m *manager) Create(
	ctx context.Context,
	cfg *config.Config,
) error {
	pool := m.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return GORMConnectionError(err)
	}
	gormDB = gormDB.WithContext(ctx)

	if err = schema.Migrate(gormDB); err != nil {
		return CreateSchemaError(err)
	}

	if err = schema.SeedRoles(gormDB); err != nil {
		return SeedError(err)
	}

	if err = m.setCollation(ctx); err != nil {
		return err
	}

	slog.Info("Catalogue schema is ready",
		"database", cfg.Database.Database)
	return nil
}

// setCollation sets "C" collation on name columns, so
// sorting does not depend on the server locale.
func (m *manager) setCollation(ctx context.Context) error {
	pool := m.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	for _, col := range sortedColumns {
		if _, err := pool.Exec(ctx, collationSQL(col[0], col[1])); err != nil {
			return CollationError(col[0], col[1], err)
		}
	}

	return nil
}

// sortedColumns are table/column pairs users sort by.
var sortedColumns = [][2]string{
	{"books", "title"},
	{"people", "name"},
	{"subjects", "name"},
	{"bookshelves", "name"},
}

func collationSQL(table, column string) string {
	return fmt.Sprintf(
		`ALTER TABLE %s ALTER COLUMN %s TYPE TEXT COLLATE "C"`,
		pgx.Identifier{table}.Sanitize(),
		pgx.Identifier{column}.Sanitize(),
	)
}
