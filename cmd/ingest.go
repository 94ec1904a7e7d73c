/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gnames/gn"
	"github.com/gnames/gutendb/internal/iocache"
	"github.com/gnames/gutendb/internal/ioingest"
	"github.com/gnames/gutendb/internal/iordf"
	"github.com/gnames/gutendb/internal/iostore"
	"github.com/gnames/gutendb/pkg/catalog"
	"github.com/gnames/gutendb/pkg/config"
	"github.com/spf13/cobra"
)

// getIngestCmd returns the ingest command.
func getIngestCmd() *cobra.Command {
	ingestCmd := &cobra.Command{
		Use:   "ingest",
		Short: "Ingest RDF metadata of books into the SQLite store",
		Long: `Read the RDF/XML corpus and normalize every book into the store.

This command:
  1. Lists sub-directories of the corpus, one per book identifier
  2. Parses {id}/pg{id}.rdf files concurrently, or takes records
     from the cache of intermediate records
  3. Applies records to the store one transaction per book
  4. Reports books that could not be ingested

The run is idempotent: ingesting the same corpus again changes
nothing. An interrupted run resumes quickly from the cache.
The exit status is not zero when some books failed.

Examples:
  gutendb ingest -i ~/gutenberg/epub
  gutendb ingest -i ~/gutenberg/epub -o books.sqlite3 --clear
  gutendb ingest --no-cache --report failures.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runIngest(cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	f := ingestCmd.Flags()
	f.StringP("corpus-dir", "i", "", "root directory of the RDF corpus")
	f.StringP("cache-dir", "j", "", "directory of cached records")
	f.StringP("store", "o", "", "path to the SQLite store")
	f.IntP("jobs", "n", 0, "number of parsing workers")
	f.StringP("report", "r", "", "save the report to a YAML file")
	f.Bool("clear", false, "delete all data from the store first")
	f.Bool("clear-cache", false, "delete cached records first")
	f.Bool("no-cache", false, "parse every file, do not use the cache")

	return ingestCmd
}

func ingestOpts(cmd *cobra.Command) []config.Option {
	var res []config.Option
	res = stringOpt(cmd, "corpus-dir", config.OptIngestCorpusDir, res)
	res = stringOpt(cmd, "cache-dir", config.OptIngestCacheDir, res)
	res = stringOpt(cmd, "store", config.OptIngestStorePath, res)
	res = intOpt(cmd, "jobs", config.OptJobsNumber, res)
	res = stringOpt(cmd, "report", config.OptIngestReportPath, res)
	res = boolOpt(cmd, "clear", config.OptIngestClear, res)
	res = boolOpt(cmd, "clear-cache", config.OptIngestClearCache, res)
	res = boolOpt(cmd, "no-cache", config.OptIngestNoCache, res)
	return res
}

func runIngest(cmd *cobra.Command) error {
	cfg.Update(ingestOpts(cmd))

	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	st, err := iostore.Open(cfg.Ingest.StorePath)
	if err != nil {
		return err
	}
	defer st.Close()

	cacheDir := cfg.Ingest.CacheDir
	if cfg.Ingest.NoCache {
		cacheDir = ""
	}
	cache := iocache.New(cacheDir, iordf.Record)

	report, err := ioingest.New(cfg, cache, st).Ingest(ctx)
	if report != nil && cfg.Ingest.ReportPath != "" {
		if rErr := ioingest.WriteReport(cfg.Ingest.ReportPath, report); rErr != nil {
			return rErr
		}
		gn.Info("Report saved to <em>%s</em>", cfg.Ingest.ReportPath)
	}
	if err != nil {
		return err
	}

	if report.HasFailures() {
		printFailures(report)
		return ioingest.ItemsFailedError(len(report.Failures), report.Processed)
	}
	return nil
}

// printFailures shows the first few failed items, the full list goes
// to the report file.
func printFailures(r *catalog.Report) {
	const limit = 10
	for i, f := range r.Failures {
		if i == limit {
			gn.Warn("... and %d more", len(r.Failures)-limit)
			break
		}
		gn.Warn("<warn>%s</warn> (%s): %s", f.Item, f.Kind, f.Reason)
	}
}
