// Package web serves the browser dashboard: a single embedded page plus a
// small JSON API over the store. The dashboard is an observer with edit
// capability, not the source of truth; every write goes through the same
// services the console harness uses.
package web

import (
	_ "embed"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allinfinite/Autonomous-project/internal/ports/primary"
)

//go:embed dashboard.html
var dashboardHTML []byte

// Server is the dashboard web server.
type Server struct {
	sessions primary.SessionService
	tasks    primary.TaskService
	agents   primary.AgentService
	logger   *slog.Logger
	router   *gin.Engine
}

// NewServer creates a dashboard server over the given services.
func NewServer(
	sessions primary.SessionService,
	tasks primary.TaskService,
	agents primary.AgentService,
	logger *slog.Logger,
) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		sessions: sessions,
		tasks:    tasks,
		agents:   agents,
		logger:   logger,
		router:   router,
	}

	router.GET("/", s.handleIndex)

	api := router.Group("/api")
	{
		api.GET("/sessions", s.handleListSessions)
		api.GET("/tasks", s.handleListTasks)
		api.POST("/tasks", s.handleAddTask)
		api.PUT("/tasks/:task_id", s.handleUpdateTask)
		api.DELETE("/tasks/:task_id", s.handleDeleteTask)
		api.GET("/agents", s.handleListAgents)
	}

	return s
}

// Handler exposes the router for tests and custom listeners.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on the given port until the listener fails.
func (s *Server) Run(port int) error {
	addr := fmt.Sprintf(":%d", port)
	s.logger.Info("dashboard listening", "addr", addr)
	return s.router.Run(addr)
}

// FindAvailablePort probes ports starting at start and returns the first one
// the OS lets us bind. The dashboard is a convenience surface, so grabbing
// the next free port beats failing on a busy default.
func FindAvailablePort(start, maxAttempts int) (int, error) {
	for port := start; port < start+maxAttempts; port++ {
		l, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err != nil {
			continue
		}
		l.Close()
		return port, nil
	}
	return 0, fmt.Errorf("no available port in range %d-%d", start, start+maxAttempts-1)
}
