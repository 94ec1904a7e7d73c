package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gutendb/internal/iotesting"
	"github.com/gnames/gutendb/pkg/catalog"
	"github.com/gnames/gutendb/pkg/config"
	"github.com/gnames/gutendb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestIngestFlags(t *testing.T) {
	cmd := getIngestCmd()
	for _, name := range []string{
		"corpus-dir", "cache-dir", "store", "jobs", "report",
		"clear", "clear-cache", "no-cache",
	} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "i", cmd.Flags().Lookup("corpus-dir").Shorthand)
	assert.Equal(t, "o", cmd.Flags().Lookup("store").Shorthand)
}

func TestIngestOpts(t *testing.T) {
	cmd := getIngestCmd()
	require.NoError(t, cmd.ParseFlags([]string{
		"-i", "/data/rdf", "-o", "/data/books.sqlite3",
		"-n", "3", "--clear", "--no-cache",
	}))

	c := config.New()
	c.Update(ingestOpts(cmd))

	assert.Equal(t, "/data/rdf", c.Ingest.CorpusDir)
	assert.Equal(t, "/data/books.sqlite3", c.Ingest.StorePath)
	assert.Equal(t, 3, c.JobsNumber)
	assert.True(t, c.Ingest.Clear)
	assert.True(t, c.Ingest.NoCache)
	assert.False(t, c.Ingest.ClearCache)

	// flags that were not given keep configured values
	assert.Equal(t, config.New().Ingest.CacheDir, c.Ingest.CacheDir)
	assert.Empty(t, c.Ingest.ReportPath)
}

func TestRunIngest(t *testing.T) {
	corpus := t.TempDir()
	iotesting.WriteCorpus(t, corpus, 1, 2, 3)
	work := t.TempDir()

	cfg = config.New()
	cfg.Update([]config.Option{config.OptJobsNumber(2)})

	t.Run("clean corpus", func(t *testing.T) {
		cmd := getIngestCmd()
		require.NoError(t, cmd.ParseFlags([]string{
			"-i", corpus,
			"-j", filepath.Join(work, "json"),
			"-o", filepath.Join(work, "books.sqlite3"),
		}))
		require.NoError(t, runIngest(cmd))

		entries, err := os.ReadDir(filepath.Join(work, "json"))
		require.NoError(t, err)
		assert.Len(t, entries, 3)
	})

	t.Run("failed items", func(t *testing.T) {
		iotesting.WriteItem(t, corpus, "notanumber", "", "")
		reportPath := filepath.Join(work, "report.yaml")

		cmd := getIngestCmd()
		require.NoError(t, cmd.ParseFlags([]string{
			"-i", corpus,
			"-o", filepath.Join(work, "books.sqlite3"),
			"--report", reportPath,
		}))

		err := runIngest(cmd)
		require.Error(t, err)
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok)
		assert.Equal(t, errcode.IngestItemsFailedError, gnErr.Code)

		data, err := os.ReadFile(reportPath)
		require.NoError(t, err)
		var report catalog.Report
		require.NoError(t, yaml.Unmarshal(data, &report))
		assert.Equal(t, 4, report.Processed)
		assert.Equal(t, 3, report.Succeeded)
		assert.Equal(t, 3, report.CacheHits)
		require.Len(t, report.Failures, 1)
		assert.Equal(t, "notanumber", report.Failures[0].Item)
		assert.Equal(t, catalog.IdentifierFailure, report.Failures[0].Kind)
	})
}
