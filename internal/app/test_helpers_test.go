package app

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/allinfinite/Autonomous-project/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockSessionRepository implements secondary.SessionRepository for testing.
type mockSessionRepository struct {
	sessions  []*secondary.SessionRecord
	createErr error
	getErr    error
	listErr   error
}

func newMockSessionRepository() *mockSessionRepository {
	return &mockSessionRepository{}
}

func (m *mockSessionRepository) Create(ctx context.Context, session *secondary.SessionRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, s := range m.sessions {
		if s.ID == session.ID {
			return secondary.ErrDuplicateSession
		}
	}
	m.sessions = append(m.sessions, session)
	return nil
}

func (m *mockSessionRepository) GetByID(ctx context.Context, sessionID string) (*secondary.SessionRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, s := range m.sessions {
		if s.ID == sessionID {
			return s, nil
		}
	}
	return nil, nil
}

func (m *mockSessionRepository) Latest(ctx context.Context) (*secondary.SessionRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if len(m.sessions) == 0 {
		return nil, nil
	}
	return m.sessions[len(m.sessions)-1], nil
}

func (m *mockSessionRepository) SetPhase(ctx context.Context, sessionID, phase string) (secondary.UpdateOutcome, error) {
	for _, s := range m.sessions {
		if s.ID == sessionID {
			s.Phase = phase
			return secondary.UpdateApplied, nil
		}
	}
	return secondary.UpdateNotFound, nil
}

func (m *mockSessionRepository) List(ctx context.Context) ([]*secondary.SessionRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	result := make([]*secondary.SessionRecord, len(m.sessions))
	for i, s := range m.sessions {
		result[len(m.sessions)-1-i] = s
	}
	return result, nil
}

// mockTaskRepository implements secondary.TaskRepository for testing. Tasks
// live in a slice because duplicate task_id values are legal.
type mockTaskRepository struct {
	tasks     []*secondary.TaskRecord
	nextID    int64
	createErr error
	existsErr error
	updateErr error
	listErr   error
}

func newMockTaskRepository() *mockTaskRepository {
	return &mockTaskRepository{}
}

func (m *mockTaskRepository) Create(ctx context.Context, task *secondary.TaskRecord) (int64, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	m.nextID++
	task.ID = m.nextID
	m.tasks = append(m.tasks, task)
	return task.ID, nil
}

func (m *mockTaskRepository) ExistsByTaskID(ctx context.Context, taskID string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	for _, t := range m.tasks {
		if t.TaskID == taskID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockTaskRepository) List(ctx context.Context, filters secondary.TaskFilters) ([]*secondary.TaskRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.TaskRecord
	for i := len(m.tasks) - 1; i >= 0; i-- {
		t := m.tasks[i]
		if filters.SessionID != "" && t.SessionID != filters.SessionID {
			continue
		}
		if filters.Status != "" && t.Status != filters.Status {
			continue
		}
		result = append(result, t)
	}
	return result, nil
}

func (m *mockTaskRepository) UpdateByTaskID(ctx context.Context, taskID string, update secondary.TaskUpdate) (secondary.UpdateOutcome, error) {
	if m.updateErr != nil {
		return secondary.UpdateNotFound, m.updateErr
	}
	matched := false
	for _, t := range m.tasks {
		if t.TaskID != taskID {
			continue
		}
		matched = true
		if update.Status != "" {
			t.Status = update.Status
			if update.Status == "completed" {
				t.CompletedAt = time.Now().Format(time.RFC3339)
			}
		}
		if update.AgentRole != "" {
			t.AgentRole = update.AgentRole
		}
		if update.Description != "" {
			t.Description = update.Description
		}
	}
	if !matched {
		return secondary.UpdateNotFound, nil
	}
	return secondary.UpdateApplied, nil
}

func (m *mockTaskRepository) DeleteByTaskID(ctx context.Context, taskID string) (int64, error) {
	var kept []*secondary.TaskRecord
	var removed int64
	for _, t := range m.tasks {
		if t.TaskID == taskID {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	m.tasks = kept
	return removed, nil
}

func (m *mockTaskRepository) CountCompleted(ctx context.Context, sessionID string) (int, error) {
	count := 0
	for _, t := range m.tasks {
		if t.SessionID == sessionID && t.Status == "completed" {
			count++
		}
	}
	return count, nil
}

func (m *mockTaskRepository) byTaskID(taskID string) []*secondary.TaskRecord {
	var result []*secondary.TaskRecord
	for _, t := range m.tasks {
		if t.TaskID == taskID {
			result = append(result, t)
		}
	}
	return result
}

// mockAgentRepository implements secondary.AgentRepository for testing.
type mockAgentRepository struct {
	agents    []*secondary.AgentRecord
	nextID    int64
	createErr error
	listErr   error
}

func newMockAgentRepository() *mockAgentRepository {
	return &mockAgentRepository{}
}

func (m *mockAgentRepository) Create(ctx context.Context, agent *secondary.AgentRecord) (int64, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	m.nextID++
	agent.ID = m.nextID
	m.agents = append(m.agents, agent)
	return agent.ID, nil
}

func (m *mockAgentRepository) List(ctx context.Context, filters secondary.AgentFilters) ([]*secondary.AgentRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.AgentRecord
	for i := len(m.agents) - 1; i >= 0; i-- {
		a := m.agents[i]
		if filters.SessionID != "" && a.SessionID != filters.SessionID {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

func (m *mockAgentRepository) UpdateStatusByAgentID(ctx context.Context, agentID, status string) (secondary.UpdateOutcome, error) {
	matched := false
	for _, a := range m.agents {
		if a.AgentID == agentID {
			a.Status = status
			matched = true
		}
	}
	if !matched {
		return secondary.UpdateNotFound, nil
	}
	return secondary.UpdateApplied, nil
}

func (m *mockAgentRepository) ActiveRoles(ctx context.Context, sessionID string) ([]string, error) {
	seen := make(map[string]bool)
	var roles []string
	for _, a := range m.agents {
		if a.SessionID != sessionID || a.Status != "active" {
			continue
		}
		if seen[a.Role] {
			continue
		}
		seen[a.Role] = true
		roles = append(roles, a.Role)
	}
	return roles, nil
}

// mockReportRepository implements secondary.ReportRepository for testing.
type mockReportRepository struct {
	reports   []*secondary.ReportRecord
	createErr error
}

func newMockReportRepository() *mockReportRepository {
	return &mockReportRepository{}
}

func (m *mockReportRepository) Create(ctx context.Context, report *secondary.ReportRecord) (int64, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	report.ID = int64(len(m.reports) + 1)
	m.reports = append(m.reports, report)
	return report.ID, nil
}

// ============================================================================
// Helpers
// ============================================================================

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func seedMockSession(repo *mockSessionRepository, id string) *secondary.SessionRecord {
	record := &secondary.SessionRecord{
		ID:        id,
		CreatedAt: time.Now().Format(time.RFC3339),
		Goal:      "test goal",
		Phase:     "implementation",
	}
	repo.sessions = append(repo.sessions, record)
	return record
}
