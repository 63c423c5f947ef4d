// Package service implements the bloglist command line: the API server and
// the maintenance commands that operate on its store.
package service

import (
	"fmt"

	"github.com/spf13/cobra"
)

const cliVersion = "1.0.0"

// NewRootCommand builds the bloglist command tree
func NewRootCommand() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:               "bloglist",
		Short:             "Blog list service",
		Long:              "bloglist serves the blog list API and maintains its badger store.",
		SilenceUsage:      true,
		PersistentPreRunE: c.load,
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&c.dbPath, "db", "", "database directory (overrides config and DB_PATH)")

	root.AddCommand(
		newVersionCommand(),
		newServeCommand(c),
		newInitCommand(c),
		newCleanCommand(c),
		newBackupCommand(c),
		newRestoreCommand(c),
		newCheckCommand(c),
		newStatsCommand(c),
	)
	return root
}

// Execute runs the command line and returns the process exit code
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		return 1
	}
	return 0
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		// Needs no configuration
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bloglist version %s\n", cliVersion)
		},
	}
}
