// Package main provides the entry point for the contribplot CLI tool.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/contribplot/cmd/contribplot/commands"
	"github.com/Sumatoshi-tech/contribplot/pkg/version"
)

func main() {
	version.InitBinaryVersion()

	rootCmd := &cobra.Command{
		Use:   "contribplot",
		Short: "Per-author contribution charts for a git repository",
		Long: `contribplot renders one SVG chart per author and time window from a
repository's history and assembles them into a static HTML report.

Commands:
  run        Render charts and the report
  templates  Write the default report templates`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewRunCommand())
	rootCmd.AddCommand(commands.NewTemplatesCommand())
	rootCmd.AddCommand(versionCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "contribplot %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
