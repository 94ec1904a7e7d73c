package cmd

import (
	"fmt"
	"os"

	app "github.com/gnames/gutendb/pkg"
	"github.com/gnames/gutendb/pkg/config"
	"github.com/spf13/cobra"
)

func versionFlag(cmd *cobra.Command) {
	hasVersionFlag, _ := cmd.Flags().GetBool("version")
	if hasVersionFlag {
		fmt.Printf("\nversion: %s\nbuild: %s\n\n", app.Version, app.Build)
		os.Exit(0)
	}
}

// stringOpt adds an option when a string flag was given explicitly.
func stringOpt(
	cmd *cobra.Command,
	flag string,
	opt func(string) config.Option,
	res []config.Option,
) []config.Option {
	if !cmd.Flags().Changed(flag) {
		return res
	}
	s, _ := cmd.Flags().GetString(flag)
	return append(res, opt(s))
}

// boolOpt adds an option when a boolean flag was given explicitly.
func boolOpt(
	cmd *cobra.Command,
	flag string,
	opt func(bool) config.Option,
	res []config.Option,
) []config.Option {
	if !cmd.Flags().Changed(flag) {
		return res
	}
	b, _ := cmd.Flags().GetBool(flag)
	return append(res, opt(b))
}

// intOpt adds an option when an integer flag was given explicitly.
func intOpt(
	cmd *cobra.Command,
	flag string,
	opt func(int) config.Option,
	res []config.Option,
) []config.Option {
	if !cmd.Flags().Changed(flag) {
		return res
	}
	i, _ := cmd.Flags().GetInt(flag)
	return append(res, opt(i))
}
