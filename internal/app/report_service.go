package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/allinfinite/Autonomous-project/internal/ports/primary"
	"github.com/allinfinite/Autonomous-project/internal/ports/secondary"
)

// ReportServiceImpl implements the ReportService interface.
type ReportServiceImpl struct {
	sessions secondary.SessionRepository
	tasks    secondary.TaskRepository
	agents   secondary.AgentRepository
	reports  secondary.ReportRepository
}

// NewReportService creates a new ReportService with injected dependencies.
func NewReportService(
	sessions secondary.SessionRepository,
	tasks secondary.TaskRepository,
	agents secondary.AgentRepository,
	reports secondary.ReportRepository,
) *ReportServiceImpl {
	return &ReportServiceImpl{
		sessions: sessions,
		tasks:    tasks,
		agents:   agents,
		reports:  reports,
	}
}

// GenerateReport snapshots a session's progress and appends it to the store.
func (s *ReportServiceImpl) GenerateReport(ctx context.Context, sessionID string) (*primary.Report, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("session %s not found", sessionID)
	}

	completed, err := s.tasks.CountCompleted(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	roles, err := s.agents.ActiveRoles(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if roles == nil {
		roles = []string{}
	}

	report := &primary.Report{
		SessionID:      sessionID,
		Phase:          session.Phase,
		CompletedTasks: completed,
		ActiveAgents:   roles,
		Blockers:       []string{},
		NextPriorities: []string{},
	}

	// The whole snapshot is serialized verbatim into the data column so
	// later readers see exactly what this run saw.
	data, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize report: %w", err)
	}

	_, err = s.reports.Create(ctx, &secondary.ReportRecord{
		SessionID:      sessionID,
		Timestamp:      time.Now().Format(time.RFC3339),
		Phase:          session.Phase,
		CompletedTasks: completed,
		Data:           string(data),
	})
	if err != nil {
		return nil, err
	}

	return report, nil
}
