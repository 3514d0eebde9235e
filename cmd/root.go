package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vaultsync/quarkdrive/cmd/flags"
)

var RootCmd = &cobra.Command{
	Use:   "quarkdrive",
	Short: "A command line client for the quark cloud drive.",
	Long: `A command line client for the quark cloud drive:
list and manage folders, upload with content-addressed deduplication,
download through service-signed links.`,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&flags.DataDir, "data", "data", "data directory (relative paths are resolved against the current working directory)")
	RootCmd.PersistentFlags().BoolVar(&flags.Debug, "debug", false, "start with debug mode")
	RootCmd.PersistentFlags().BoolVar(&flags.NoPrefix, "no-prefix", false, "disable env prefix")
}
