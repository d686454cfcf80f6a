// Package wire assembles the application. Construction is explicit: every
// process builds its own App from a project directory, so two binaries never
// share hidden state beyond the database file itself.
package wire

import (
	"database/sql"
	"log/slog"
	"os"

	"github.com/allinfinite/Autonomous-project/internal/adapters/sqlite"
	"github.com/allinfinite/Autonomous-project/internal/app"
	"github.com/allinfinite/Autonomous-project/internal/db"
	"github.com/allinfinite/Autonomous-project/internal/ports/primary"
)

// App holds the wired services for one process.
type App struct {
	DB       *sql.DB
	Logger   *slog.Logger
	Sessions primary.SessionService
	Tasks    primary.TaskService
	Agents   primary.AgentService
	Reports  primary.ReportService
	Sync     primary.SyncService
}

// New opens (creating if needed) the project database and wires the services.
func New(projectDir string) (*App, error) {
	conn, err := db.Open(projectDir)
	if err != nil {
		return nil, err
	}
	return NewWithDB(conn), nil
}

// NewWithDB wires services over an existing connection. Tests use this with
// an in-memory database.
func NewWithDB(conn *sql.DB) *App {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	sessionRepo := sqlite.NewSessionRepository(conn)
	taskRepo := sqlite.NewTaskRepository(conn)
	agentRepo := sqlite.NewAgentRepository(conn)
	reportRepo := sqlite.NewReportRepository(conn)

	return &App{
		DB:       conn,
		Logger:   logger,
		Sessions: app.NewSessionService(sessionRepo),
		Tasks:    app.NewTaskService(taskRepo, sessionRepo),
		Agents:   app.NewAgentService(agentRepo, sessionRepo),
		Reports:  app.NewReportService(sessionRepo, taskRepo, agentRepo, reportRepo),
		Sync:     app.NewSyncService(taskRepo, sessionRepo, logger),
	}
}

// Close releases the database connection.
func (a *App) Close() error {
	return a.DB.Close()
}
