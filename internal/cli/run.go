// Package cli contains the console harness commands.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/allinfinite/Autonomous-project/internal/db"
	"github.com/allinfinite/Autonomous-project/internal/ports/primary"
	"github.com/allinfinite/Autonomous-project/internal/roles"
	"github.com/allinfinite/Autonomous-project/internal/wire"
)

// phases walks the session through its lifecycle. Each phase narrates, stamps
// the store, and registers the worker role that owns it.
var phases = []struct {
	name  string
	title string
	role  string
}{
	{"planning", "PLANNING & ARCHITECTURE", "planner"},
	{"implementation", "IMPLEMENTATION", "builder"},
	{"quality_check", "QUALITY ASSURANCE", "quality_checker"},
	{"testing", "TESTING & VALIDATION", "tester"},
	{"documentation", "DOCUMENTATION", "documenter"},
}

// RunCmd returns the run command, the main entry of the harness.
func RunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [goal]",
		Short: "Start a coordination session for a project goal",
		Long: `Start a coordination session: create the session, walk it through its
phases, and leave a progress report. Launches the browser dashboard
unless --no-gui is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			resume, _ := cmd.Flags().GetString("resume")
			noGUI, _ := cmd.Flags().GetBool("no-gui")
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

			if resume != "" {
				return resumeSession(cmd.Context(), application, resume)
			}

			if len(args) == 0 {
				return fmt.Errorf("please provide a project goal\n\nUsage:\n  autoproject run \"Build a todo app with React\"\n  autoproject run --resume SESSION_ID")
			}

			return runSession(cmd.Context(), application, runOptions{
				goal:       args[0],
				projectDir: projectDir,
				noGUI:      noGUI,
				port:       port,
			})
		},
	}

	cmd.Flags().String("resume", "", "Resume a previous session by session ID")
	cmd.Flags().String("dir", ".", "Project directory")
	cmd.Flags().Bool("no-gui", false, "Disable the browser dashboard")
	cmd.Flags().Int("port", 5000, "Dashboard port")
	return cmd
}

type runOptions struct {
	goal       string
	projectDir string
	noGUI      bool
	port       int
}

func runSession(parent context.Context, application *wire.App, opts runOptions) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()

	session, err := application.Sessions.CreateSession(ctx, primary.CreateSessionRequest{Goal: opts.goal})
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	bold := color.New(color.Bold)
	bold.Println("Autonomous Project harness starting")
	fmt.Printf("Goal:      %s\n", opts.goal)
	fmt.Printf("Directory: %s\n", opts.projectDir)
	fmt.Printf("Session:   %s\n", session.ID)
	fmt.Println()

	if !opts.noGUI {
		dashboard := launchDashboard(opts.projectDir, opts.port)
		if dashboard != nil {
			defer stopDashboard(dashboard)
		}
	}

	runErr := walkPhases(ctx, application, session.ID)

	// The report is the session's receipt: attempt it even after an
	// interrupt or phase failure.
	if report, reportErr := application.Reports.GenerateReport(context.WithoutCancel(ctx), session.ID); reportErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to generate report: %v\n", reportErr)
	} else {
		printReport(session.ID, report)
	}

	if ctx.Err() != nil {
		fmt.Println("\nSession paused")
		fmt.Printf("Resume with: autoproject run --resume %s\n", session.ID)
		return nil
	}
	if runErr != nil {
		return runErr
	}

	fmt.Println("\nSession complete")
	fmt.Printf("State saved to: %s\n", db.Path(opts.projectDir))
	if !opts.noGUI {
		fmt.Printf("Dashboard: http://localhost:%d\n", opts.port)
	}
	fmt.Printf("Resume with: autoproject run --resume %s\n", session.ID)
	return nil
}

func walkPhases(ctx context.Context, application *wire.App, sessionID string) error {
	heading := color.New(color.FgHiCyan, color.Bold)

	for i, phase := range phases {
		if ctx.Err() != nil {
			return nil
		}

		heading.Printf("PHASE %d: %s\n", i+1, phase.title)
		if err := application.Sessions.SetPhase(ctx, sessionID, phase.name); err != nil {
			return fmt.Errorf("failed to set phase %s: %w", phase.name, err)
		}

		role, ok := roles.Lookup(phase.role)
		if !ok {
			return fmt.Errorf("unknown role %s in phase %s", phase.role, phase.name)
		}
		agentID := fmt.Sprintf("%s_%s", role.Name, time.Now().Format("150405"))
		if _, err := application.Agents.RegisterAgent(ctx, primary.RegisterAgentRequest{
			SessionID: sessionID,
			Role:      role.Name,
			AgentID:   agentID,
		}); err != nil {
			return fmt.Errorf("failed to register %s: %w", role.Name, err)
		}

		fmt.Printf("  %s: %s\n", role.Title, role.Description)
		fmt.Println()
	}
	return nil
}

func resumeSession(ctx context.Context, application *wire.App, sessionID string) error {
	fmt.Printf("Resuming session: %s\n", sessionID)

	session, err := application.Sessions.GetSession(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to look up session: %w", err)
	}
	if session == nil {
		return fmt.Errorf("session %s not found", sessionID)
	}

	report, err := application.Reports.GenerateReport(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}
	printReport(sessionID, report)
	return nil
}

func printReport(sessionID string, report *primary.Report) {
	heading := color.New(color.FgHiGreen, color.Bold)

	fmt.Println()
	heading.Println("PROJECT PROGRESS REPORT")
	fmt.Printf("Session ID:      %s\n", sessionID)
	fmt.Printf("Current Phase:   %s\n", report.Phase)
	fmt.Printf("Completed Tasks: %d\n", report.CompletedTasks)
	agents := strings.Join(report.ActiveAgents, ", ")
	if agents == "" {
		agents = "None"
	}
	fmt.Printf("Active Agents:   %s\n", agents)
}

// launchDashboard starts `autoproject serve` as a child process. The child
// belongs to this run: it is stopped when the session ends, never leaked.
func launchDashboard(projectDir string, port int) *exec.Cmd {
	self, err := os.Executable()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: cannot locate own binary, continuing without dashboard: %v\n", err)
		return nil
	}

	child := exec.Command(self, "serve", "--dir", projectDir, "--port", strconv.Itoa(port))
	child.Stdout = nil
	child.Stderr = nil
	if err := child.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not launch dashboard, continuing without it: %v\n", err)
		return nil
	}

	fmt.Printf("Dashboard running at http://localhost:%d\n\n", port)
	return child
}

func stopDashboard(child *exec.Cmd) {
	if child.Process == nil {
		return
	}
	_ = child.Process.Kill()
	_, _ = child.Process.Wait()
}
