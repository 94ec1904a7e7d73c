package cmd

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gutendb/internal/iostore"
	"github.com/gnames/gutendb/internal/iotesting"
	"github.com/gnames/gutendb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunClear(t *testing.T) {
	corpus := t.TempDir()
	iotesting.WriteCorpus(t, corpus, 1, 2)
	work := t.TempDir()
	store := filepath.Join(work, "books.sqlite3")
	cacheDir := filepath.Join(work, "json")

	cfg = config.New()
	cfg.Update([]config.Option{
		config.OptIngestCorpusDir(corpus),
		config.OptIngestCacheDir(cacheDir),
		config.OptIngestStorePath(store),
	})

	ingest := getIngestCmd()
	require.NoError(t, ingest.ParseFlags(nil))
	require.NoError(t, runIngest(ingest))

	clearCmd := getClearCmd()
	require.NoError(t, clearCmd.ParseFlags([]string{"--cache"}))
	require.NoError(t, runClear(clearCmd))

	gdb, err := iostore.OpenDB(store)
	require.NoError(t, err)
	var books int64
	require.NoError(t, gdb.WithContext(context.Background()).
		Table("books").Count(&books).Error)
	assert.Zero(t, books)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.Close()

	entries, err := os.ReadDir(cacheDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestClearThroughRoot(t *testing.T) {
	old := slog.Default()
	defer slog.SetDefault(old)

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("GUTENDB_LOG_DESTINATION", "stderr")
	store := filepath.Join(t.TempDir(), "books.sqlite3")

	root := getRootCmd()
	root.SetArgs([]string{"clear", "-o", store})
	require.NoError(t, root.Execute())

	assert.FileExists(t, config.ConfigFilePath(home))
	assert.FileExists(t, store)
	assert.Equal(t, store, cfg.Ingest.StorePath)
}
