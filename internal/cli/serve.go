package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/allinfinite/Autonomous-project/internal/db"
	"github.com/allinfinite/Autonomous-project/internal/web"
	"github.com/allinfinite/Autonomous-project/internal/wire"
)

// ServeCmd returns the serve command, running the dashboard in the foreground.
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the browser dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			port, _ := cmd.Flags().GetInt("port")

			projectDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("failed to resolve project directory: %w", err)
			}

			application, err := wire.New(projectDir)
			if err != nil {
				return fmt.Errorf("failed to open project store: %w", err)
			}
			defer application.Close()

			if port == 0 {
				port, err = web.FindAvailablePort(5000, 100)
				if err != nil {
					return err
				}
			}

			fmt.Printf("Project directory: %s\n", projectDir)
			fmt.Printf("Database:          %s\n", db.Path(projectDir))
			fmt.Printf("Dashboard:         http://localhost:%d\n", port)

			server := web.NewServer(application.Sessions, application.Tasks, application.Agents, application.Logger)
			return server.Run(port)
		},
	}

	cmd.Flags().String("dir", ".", "Project directory")
	cmd.Flags().Int("port", 0, "Dashboard port (0 picks the next free port from 5000)")
	return cmd
}
