// Package iotesting provides shared test utilities: configuration for
// PostgreSQL integration tests and RDF corpus fixtures.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/gnames/gutendb/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/viper"
)

const (
	// TestDatabaseName is the database name used for all integration tests.
	// This ensures tests never accidentally run against production databases.
	TestDatabaseName = "gutendb_test"
)

// GetTestConfig returns a configuration suitable for integration tests.
// Database settings come from GUTENDB_DATABASE_* environment variables
// or defaults, the database name is always TestDatabaseName.
func GetTestConfig() *config.Config {
	cfg := config.New()

	v := viper.New()
	v.SetEnvPrefix("GUTENDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	db := cfg.Database
	v.SetDefault("database.host", db.Host)
	v.SetDefault("database.port", db.Port)
	v.SetDefault("database.user", db.User)
	v.SetDefault("database.password", db.Password)
	v.SetDefault("database.ssl_mode", db.SSLMode)

	cfg.Update([]config.Option{
		config.OptDatabaseHost(v.GetString("database.host")),
		config.OptDatabasePort(v.GetInt("database.port")),
		config.OptDatabaseUser(v.GetString("database.user")),
		config.OptDatabasePassword(v.GetString("database.password")),
		config.OptDatabaseSSLMode(v.GetString("database.ssl_mode")),
		config.OptDatabaseDatabase(TestDatabaseName),
		config.OptDatabaseBatchSize(3),
	})

	return cfg
}

// GetTestDatabaseConfig returns only the database configuration for tests.
func GetTestDatabaseConfig() *config.DatabaseConfig {
	cfg := GetTestConfig()
	return &cfg.Database
}

// SkipWithoutPostgres skips integration tests in short mode or when
// the test database is not reachable. Packages with integration tests
// share the database, run them with 'go test -p 1 ./...'.
func SkipWithoutPostgres(t *testing.T) *config.Config {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	cfg := GetTestConfig()
	db := cfg.Database
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		db.User, db.Password, db.Host, db.Port, db.Database, db.SSLMode,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	pool, err := pgxpool.New(ctx, dsn)
	if err == nil {
		err = pool.Ping(ctx)
		pool.Close()
	}
	if err != nil {
		t.Skipf("PostgreSQL database %s is not available: %v",
			db.Database, err)
	}
	return cfg
}
