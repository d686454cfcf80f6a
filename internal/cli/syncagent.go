package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/allinfinite/Autonomous-project/internal/db"
	"github.com/allinfinite/Autonomous-project/internal/ports/primary"
	"github.com/allinfinite/Autonomous-project/internal/wire"
)

// SyncAgentCmd returns the sync-agent command: register an external worker in
// the store so it shows up on the dashboard roster.
func SyncAgentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync-agent [role] [agent-id]",
		Short: "Register an external agent, update its status, or list the roster",
		Long: `Register an external agent in the store:

  autoproject sync-agent builder builder_001
  autoproject sync-agent builder builder_001 20260115_093000
  autoproject sync-agent --update builder_001 --status retired
  autoproject sync-agent --list`,
		Args: cobra.MaximumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			sessionID, _ := cmd.Flags().GetString("session")
			updateID, _ := cmd.Flags().GetString("update")
			status, _ := cmd.Flags().GetString("status")
			list, _ := cmd.Flags().GetBool("list")

			projectDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("failed to resolve project directory: %w", err)
			}

			// Unlike run, this utility never creates the store: an absent
			// database means the harness has not run here yet.
			if !db.Exists(projectDir) {
				return fmt.Errorf("database not found at %s\nRun the harness first to initialize it: autoproject run \"<goal>\"", db.Path(projectDir))
			}

			application, err := wire.New(projectDir)
			if err != nil {
				return fmt.Errorf("failed to open project store: %w", err)
			}
			defer application.Close()

			ctx := cmd.Context()

			if list {
				agents, err := application.Agents.ListAgents(ctx, "")
				if err != nil {
					return fmt.Errorf("failed to list agents: %w", err)
				}
				if len(agents) == 0 {
					fmt.Println("No agents found in database.")
					return nil
				}
				fmt.Printf("Agents in %s:\n", projectDir)
				for _, a := range agents {
					fmt.Printf("  %-15s %-20s [%-7s] %s\n", a.Role, a.AgentID, a.Status, a.StartedAt)
				}
				return nil
			}

			if updateID != "" {
				if status == "" {
					return fmt.Errorf("--update requires --status")
				}
				outcome, err := application.Agents.UpdateAgentStatus(ctx, updateID, status)
				if err != nil {
					return fmt.Errorf("failed to update agent: %w", err)
				}
				if outcome == primary.NotFound {
					fmt.Printf("Agent not found: %s\n", updateID)
					return nil
				}
				fmt.Printf("Updated agent status: %s -> %s\n", updateID, status)
				return nil
			}

			if len(args) < 2 {
				return fmt.Errorf("missing role and agent-id\nUsage: autoproject sync-agent <role> <agent-id> [session-id]")
			}
			if len(args) == 3 && sessionID == "" {
				sessionID = args[2]
			}

			agent, err := application.Agents.RegisterAgent(ctx, primary.RegisterAgentRequest{
				SessionID: sessionID,
				Role:      args[0],
				AgentID:   args[1],
			})
			if err != nil {
				return fmt.Errorf("failed to register agent: %w", err)
			}
			fmt.Printf("Synced agent: %s (%s) [%s]\n", agent.Role, agent.AgentID, agent.Status)
			return nil
		},
	}

	cmd.Flags().String("dir", ".", "Project directory")
	cmd.Flags().String("session", "", "Target session (defaults to the most recent)")
	cmd.Flags().String("update", "", "Update the status of the agent with this agent-id")
	cmd.Flags().String("status", "", "New status for --update (active, retired)")
	cmd.Flags().Bool("list", false, "List all agents")
	return cmd
}
