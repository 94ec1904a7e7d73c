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

	"github.com/gnames/gn"
	"github.com/gnames/gutendb/internal/iocache"
	"github.com/gnames/gutendb/internal/iordf"
	"github.com/gnames/gutendb/internal/iostore"
	"github.com/gnames/gutendb/pkg/config"
	"github.com/spf13/cobra"
)

// getClearCmd returns the clear command.
func getClearCmd() *cobra.Command {
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all data from the SQLite store",
		Long: `Delete all rows from the SQLite store, keeping its tables and
contributor roles. Use it before ingesting a corpus from scratch.

With --cache the cached intermediate records are removed as well.

Examples:
  gutendb clear
  gutendb clear -o books.sqlite3 --cache`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runClear(cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	clearCmd.Flags().StringP("store", "o", "", "path to the SQLite store")
	clearCmd.Flags().Bool("cache", false, "remove cached records too")

	return clearCmd
}

func runClear(cmd *cobra.Command) error {
	var clearOpts []config.Option
	clearOpts = stringOpt(cmd, "store", config.OptIngestStorePath, clearOpts)
	cfg.Update(clearOpts)

	st, err := iostore.Open(cfg.Ingest.StorePath)
	if err != nil {
		return err
	}
	defer st.Close()

	if err = st.Clear(context.Background()); err != nil {
		return err
	}
	gn.Info("Removed all data from <em>%s</em>", cfg.Ingest.StorePath)

	if withCache, _ := cmd.Flags().GetBool("cache"); withCache {
		cache := iocache.New(cfg.Ingest.CacheDir, iordf.Record)
		if err = cache.Clear(); err != nil {
			return err
		}
		gn.Info("Removed cached records from <em>%s</em>",
			cfg.Ingest.CacheDir)
	}
	return nil
}
