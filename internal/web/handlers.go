package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allinfinite/Autonomous-project/internal/ports/primary"
)

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", dashboardHTML)
}

func (s *Server) handleListSessions(c *gin.Context) {
	sessions, err := s.sessions.ListSessions(c.Request.Context())
	if err != nil {
		s.logger.Error("failed to list sessions", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if sessions == nil {
		sessions = []*primary.Session{}
	}
	c.JSON(http.StatusOK, sessions)
}

func (s *Server) handleListTasks(c *gin.Context) {
	tasks, err := s.tasks.ListTasks(c.Request.Context(), c.Query("session_id"))
	if err != nil {
		s.logger.Error("failed to list tasks", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if tasks == nil {
		tasks = []*primary.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

type addTaskPayload struct {
	SessionID   string `json:"session_id"`
	TaskID      string `json:"task_id"`
	AgentRole   string `json:"agent_role"`
	Description string `json:"description"`
}

func (s *Server) handleAddTask(c *gin.Context) {
	var payload addTaskPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	// Tasks added in the browser get a generated identifier so two clicks
	// never collide on task_id.
	if payload.TaskID == "" {
		payload.TaskID = uuid.NewString()
	}

	task, err := s.tasks.AddTask(c.Request.Context(), primary.AddTaskRequest{
		SessionID:   payload.SessionID,
		TaskID:      payload.TaskID,
		AgentRole:   payload.AgentRole,
		Description: payload.Description,
	})
	if err != nil {
		s.logger.Error("failed to add task", "task_id", payload.TaskID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "task": task})
}

type updateTaskPayload struct {
	Status      string `json:"status"`
	AgentRole   string `json:"agent_role"`
	Description string `json:"description"`
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	taskID := c.Param("task_id")

	var payload updateTaskPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	outcome, err := s.tasks.UpdateTask(c.Request.Context(), primary.UpdateTaskRequest{
		TaskID:      taskID,
		Status:      payload.Status,
		AgentRole:   payload.AgentRole,
		Description: payload.Description,
	})
	if err != nil {
		s.logger.Error("failed to update task", "task_id", taskID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if outcome == primary.NotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	taskID := c.Param("task_id")

	removed, err := s.tasks.DeleteTask(c.Request.Context(), taskID)
	if err != nil {
		s.logger.Error("failed to delete task", "task_id", taskID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if removed == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "removed": removed})
}

func (s *Server) handleListAgents(c *gin.Context) {
	agents, err := s.agents.ListAgents(c.Request.Context(), c.Query("session_id"))
	if err != nil {
		s.logger.Error("failed to list agents", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if agents == nil {
		agents = []*primary.Agent{}
	}
	c.JSON(http.StatusOK, agents)
}
