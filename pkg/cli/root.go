// Package cli implements the heliocat command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	version = "dev"
	commit  = "none"
)

// Execute runs the CLI.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "heliocat",
		Short:         "Heliophysics event catalog client",
		Long:          "Query the Heliophysics Event Knowledgebase and print typed, unit-annotated results.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	bindOutputFlag(rootCmd.PersistentFlags())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func bindOutputFlag(fs *pflag.FlagSet) {
	fs.String("output", "table", "output format: table, json or yaml")
}
