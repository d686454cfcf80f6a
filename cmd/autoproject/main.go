package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/allinfinite/Autonomous-project/internal/cli"
	"github.com/allinfinite/Autonomous-project/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "autoproject",
		Short:   "Autonomous Project - multi-agent project coordination",
		Version: version.String(),
		Long: `Autonomous Project coordinates worker agents building a project: it keeps
sessions, tasks, and agent rosters in a per-directory SQLite store, merges
externally produced task lists, and serves a live browser dashboard.`,
	}

	rootCmd.AddCommand(cli.RunCmd())
	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.SyncTasksCmd())
	rootCmd.AddCommand(cli.SyncAgentCmd())
	rootCmd.AddCommand(cli.SessionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
