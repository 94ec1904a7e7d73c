// Package ioload implements lifecycle.Loader. It copies a finished
// SQLite store into the PostgreSQL catalogue with pgx CopyFrom.
// Identifiers are copied verbatim, so references between tables stay
// intact.
package ioload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gutendb/internal/iostore"
	"github.com/gnames/gutendb/pkg/config"
	"github.com/gnames/gutendb/pkg/db"
	"github.com/gnames/gutendb/pkg/lifecycle"
	"github.com/gnames/gutendb/pkg/schema"
	"github.com/jackc/pgx/v5"
	"gorm.io/gorm"
)

// seeded tables are filled by the schema manager.
var seeded = map[string]bool{
	(schema.ContributorRole{}).TableName(): true,
}

// serial tables get their id sequences moved past copied rows.
var serial = []string{
	(schema.Person{}).TableName(),
	(schema.Contribution{}).TableName(),
	(schema.Bookshelf{}).TableName(),
	(schema.Subject{}).TableName(),
	(schema.Resource{}).TableName(),
}

type loader struct {
	cfg      *config.Config
	operator db.Operator
}

// New creates a Loader that writes into the database of the operator.
func New(cfg *config.Config, op db.Operator) lifecycle.Loader {
	return &loader{cfg: cfg, operator: op}
}

// Load copies all catalogue tables from the snapshot. The schema must
// exist already. With Database.Clear the catalogue is emptied first,
// otherwise rows already present make the copy fail. Everything is
// copied in one transaction.
func (l *loader) Load(ctx context.Context, snapshot string) error {
	pool := l.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	if _, err := os.Stat(snapshot); err != nil {
		return SnapshotNotFoundError(snapshot, err)
	}

	books := (schema.Book{}).TableName()
	exists, err := l.operator.TableExists(ctx, books)
	if err != nil {
		return err
	}
	if !exists {
		return SchemaMissingError(l.cfg.Database.Database)
	}

	src, err := iostore.OpenDB(snapshot)
	if err != nil {
		return err
	}
	if sqlDB, dbErr := src.DB(); dbErr == nil {
		defer sqlDB.Close()
	}
	src = src.WithContext(ctx)

	start := time.Now()
	tx, err := pool.Begin(ctx)
	if err != nil {
		return CopyError("catalogue", err)
	}
	defer tx.Rollback(ctx)

	if l.cfg.Database.Clear {
		if err = clearTables(ctx, tx); err != nil {
			return err
		}
		gn.Info("Removed existing catalogue data")
	}

	var total int64
	for _, model := range schema.AllModels() {
		if seeded[model.TableName()] {
			continue
		}
		n, err := l.copyTable(ctx, tx, src, model)
		if err != nil {
			return err
		}
		total += n
		slog.Info("Copied table",
			"table", model.TableName(), "rows", n)
	}

	if err = resetSequences(ctx, tx); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return CopyError("catalogue", err)
	}

	gn.Info(
		"Loaded <em>%s</em> rows from %s in %s",
		humanize.Comma(total), snapshot,
		gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return nil
}

// copyTable streams rows of one table from SQLite into PostgreSQL,
// BatchSize rows per CopyFrom call.
func (l *loader) copyTable(
	ctx context.Context,
	tx pgx.Tx,
	src *gorm.DB,
	model schema.Table,
) (int64, error) {
	table := model.TableName()

	var count int64
	if err := src.Model(model).Count(&count).Error; err != nil {
		return 0, SnapshotReadError(table, err)
	}
	if count == 0 {
		return 0, nil
	}

	rows, err := src.Model(model).Order(orderColumn(model)).Rows()
	if err != nil {
		return 0, SnapshotReadError(table, err)
	}
	defer rows.Close()

	bar := pb.Full.Start64(count)
	bar.Set("prefix", fmt.Sprintf("Copying %s: ", table))
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	columns := schema.Columns(model)
	batchSize := l.cfg.Database.BatchSize
	batch := make([][]any, 0, min(int64(batchSize), count))
	elem := reflect.TypeOf(model).Elem()

	var res int64
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := tx.CopyFrom(
			ctx,
			pgx.Identifier{table},
			columns,
			pgx.CopyFromRows(batch),
		)
		if err != nil {
			return CopyError(table, err)
		}
		res += n
		bar.Add(len(batch))
		batch = batch[:0]
		return nil
	}

	for rows.Next() {
		row := reflect.New(elem).Interface()
		if err = src.ScanRows(rows, row); err != nil {
			return res, SnapshotReadError(table, err)
		}
		batch = append(batch, schema.Values(row))
		if len(batch) == batchSize {
			if err = flush(); err != nil {
				return res, err
			}
		}
	}
	if err = rows.Err(); err != nil {
		return res, SnapshotReadError(table, err)
	}

	if err = flush(); err != nil {
		return res, err
	}
	return res, nil
}

// orderColumn keeps copies deterministic: rows go in primary key order.
func orderColumn(model schema.Table) string {
	return strings.Join(primaryColumns(model), ", ")
}

func primaryColumns(model schema.Table) []string {
	t := reflect.TypeOf(model).Elem()
	var res []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if strings.Contains(f.Tag.Get("gorm"), "primaryKey") {
			res = append(res, f.Tag.Get("db"))
		}
	}
	return res
}

func clearTables(ctx context.Context, tx pgx.Tx) error {
	var tables []string
	for _, model := range schema.AllModels() {
		if seeded[model.TableName()] {
			continue
		}
		tables = append(tables, pgx.Identifier{model.TableName()}.Sanitize())
	}

	q := fmt.Sprintf(
		"TRUNCATE TABLE %s RESTART IDENTITY", strings.Join(tables, ", "),
	)
	if _, err := tx.Exec(ctx, q); err != nil {
		return ClearError(err)
	}
	return nil
}

func resetSequences(ctx context.Context, tx pgx.Tx) error {
	q := `SELECT setval(
  pg_get_serial_sequence('%[1]s', 'id'),
  COALESCE(MAX(id), 1),
  MAX(id) IS NOT NULL)
FROM %[1]s`

	for _, table := range serial {
		_, err := tx.Exec(ctx, fmt.Sprintf(q, table))
		if err != nil {
			return CopyError(table, errors.Join(
				errors.New("cannot reset id sequence"), err,
			))
		}
	}
	return nil
}
