// Package iostore implements lifecycle.Store on top of a SQLite file.
// Records are normalized into the tables of pkg/schema, every record in
// its own transaction. Natural-key rows are inserted when absent and
// then selected back, join rows are inserted when absent, so applying
// a record again changes nothing.
package iostore

import (
	"context"
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gutendb/pkg/catalog"
	"github.com/gnames/gutendb/pkg/lifecycle"
	"github.com/gnames/gutendb/pkg/schema"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

type store struct {
	path string
	db   *gorm.DB
}

// OpenDB opens a SQLite file with GORM using the pure Go driver.
// The database has a single connection, so there is only one writer.
func OpenDB(path string) (*gorm.DB, error) {
	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=synchronous(NORMAL)"

	db, err := gorm.Open(
		sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return nil, OpenError(path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, OpenError(path, err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// Open opens or creates the store at path. The schema is migrated and
// contributor roles are seeded.
func Open(path string) (lifecycle.Store, error) {
	db, err := OpenDB(path)
	if err != nil {
		return nil, err
	}

	res := &store{path: path, db: db}
	if err = schema.Migrate(db); err != nil {
		res.Close()
		return nil, MigrateError(path, err)
	}
	if err = schema.SeedRoles(db); err != nil {
		res.Close()
		return nil, SeedError(err)
	}
	return res, nil
}

// Apply upserts the record. Book fields are replaced, every other
// entity keeps the data it was first created with.
func (s *store) Apply(ctx context.Context, rec catalog.Record) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		steps := []func(*gorm.DB, catalog.Record) error{
			upsertBook,
			applyResources,
			applyContributions,
			applyBookshelves,
			applySubjects,
			applyLanguages,
		}
		for _, step := range steps {
			if err := step(tx, rec); err != nil {
				return err
			}
		}
		return nil
	})

	if err == nil {
		return nil
	}
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		return err
	}
	return ApplyError(rec.ID, err)
}

// Clear deletes all rows and seeds the role vocabulary again.
func (s *store) Clear(ctx context.Context) error {
	models := schema.AllModels()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := len(models) - 1; i >= 0; i-- {
			q := fmt.Sprintf("DELETE FROM %s", models[i].TableName())
			if err := tx.Exec(q).Error; err != nil {
				return err
			}
		}
		return schema.SeedRoles(tx)
	})
	if err != nil {
		return ClearError(s.path, err)
	}
	return nil
}

// Close releases the database file.
func (s *store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
