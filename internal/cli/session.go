package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/allinfinite/Autonomous-project/internal/wire"
)

// SessionCmd returns the session command group.
func SessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect coordination sessions",
	}
	cmd.AddCommand(sessionListCmd())
	return cmd
}

func sessionListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			projectDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("failed to resolve project directory: %w", err)
			}

			application, err := wire.New(projectDir)
			if err != nil {
				return fmt.Errorf("failed to open project store: %w", err)
			}
			defer application.Close()

			sessions, err := application.Sessions.ListSessions(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list sessions: %w", err)
			}
			if len(sessions) == 0 {
				fmt.Println("No sessions yet.")
				return nil
			}

			for _, s := range sessions {
				fmt.Printf("%s  [%s]  %s\n", s.ID, s.Phase, s.Goal)
			}
			return nil
		},
	}

	cmd.Flags().String("dir", ".", "Project directory")
	return cmd
}
