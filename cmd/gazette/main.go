// gazette serves the municipal legal document listing
// Fetches the collection per page load and renders search, tabs and pages
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gazette",
		Short: "Municipal legal document listing",
		Long: `gazette lists ordinances, laws and decrees published by the municipality.

Documents are fetched from the upstream API on every page load; when the API
is unreachable or answers with something unusable, a built-in dataset is
shown instead.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("endpoint", "", "Upstream document API URL")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("pretty", false, "Human-readable console logs")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(listCmd())

	return rootCmd
}
