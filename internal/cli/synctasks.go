package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/allinfinite/Autonomous-project/internal/ports/primary"
	"github.com/allinfinite/Autonomous-project/internal/wire"
)

// SyncTasksCmd returns the sync-tasks command: reconcile an external task
// list into the store. Safe to run repeatedly with the same input.
func SyncTasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync-tasks [json]",
		Short: "Merge a JSON task list into the store",
		Long: `Merge a JSON array of task records into the store. Unknown identifiers
become pending tasks; known ones get their status updated. Pass the
array as an argument, or "-" to read it from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			sessionID, _ := cmd.Flags().GetString("session")

			payload := []byte(args[0])
			if args[0] == "-" {
				var err error
				payload, err = io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
			}

			projectDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("failed to resolve project directory: %w", err)
			}

			application, err := wire.New(projectDir)
			if err != nil {
				return fmt.Errorf("failed to open project store: %w", err)
			}
			defer application.Close()

			result, err := application.Sync.SyncTasks(cmd.Context(), primary.SyncTasksRequest{
				SessionID: sessionID,
				Payload:   payload,
			})
			if err != nil {
				// Bad input is reported, not fatal: the store is untouched
				// and callers in shell pipelines keep going.
				fmt.Fprintf(os.Stderr, "warning: %v\n", err)
				return nil
			}

			fmt.Printf("Synced %d new tasks", result.Created)
			if result.Skipped > 0 {
				fmt.Printf(" (%d records skipped)", result.Skipped)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().String("dir", ".", "Project directory")
	cmd.Flags().String("session", "", "Target session (defaults to the most recent)")
	return cmd
}
