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
	"github.com/gnames/gutendb/internal/ioload"
	"github.com/gnames/gutendb/internal/ioschema"
	"github.com/gnames/gutendb/pkg/config"
	"github.com/spf13/cobra"
)

// getLoadCmd returns the load command.
func getLoadCmd() *cobra.Command {
	loadCmd := &cobra.Command{
		Use:   "load [SNAPSHOT]",
		Short: "Load a SQLite store into PostgreSQL",
		Long: `Copy a SQLite store made by 'gutendb ingest' into PostgreSQL.

This command:
  1. Connects to PostgreSQL using configuration settings
  2. Creates or updates the catalogue schema
  3. Removes existing catalogue data if --clear is given
  4. Copies every table in bulk, keeping identifiers

Without SNAPSHOT the store from the configuration is loaded.
Loading runs in one transaction, a failed load changes nothing.

Examples:
  gutendb load
  gutendb load books.sqlite3 --clear`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runLoad(cmd, args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	loadCmd.Flags().Bool("clear", false,
		"delete existing catalogue data before loading")

	return loadCmd
}

func runLoad(cmd *cobra.Command, args []string) error {
	var loadOpts []config.Option
	loadOpts = boolOpt(cmd, "clear", config.OptDatabaseClear, loadOpts)
	cfg.Update(loadOpts)

	snapshot := cfg.Ingest.StorePath
	if len(args) > 0 {
		snapshot = args[0]
	}

	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	op, err := connect(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	if err = ioschema.NewManager(op).Create(ctx, cfg); err != nil {
		return err
	}

	return ioload.New(cfg, op).Load(ctx, snapshot)
}
