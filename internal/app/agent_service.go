package app

import (
	"context"
	"time"

	"github.com/allinfinite/Autonomous-project/internal/ports/primary"
	"github.com/allinfinite/Autonomous-project/internal/ports/secondary"
)

// AgentServiceImpl implements the AgentService interface.
type AgentServiceImpl struct {
	agents   secondary.AgentRepository
	sessions secondary.SessionRepository
}

// NewAgentService creates a new AgentService with injected dependencies.
func NewAgentService(agents secondary.AgentRepository, sessions secondary.SessionRepository) *AgentServiceImpl {
	return &AgentServiceImpl{agents: agents, sessions: sessions}
}

// RegisterAgent appends an agent row with status active.
func (s *AgentServiceImpl) RegisterAgent(ctx context.Context, req primary.RegisterAgentRequest) (*primary.Agent, error) {
	sessionID, err := defaultSessionID(ctx, s.sessions, req.SessionID)
	if err != nil {
		return nil, err
	}

	record := &secondary.AgentRecord{
		SessionID: sessionID,
		Role:      req.Role,
		AgentID:   req.AgentID,
		StartedAt: time.Now().Format(time.RFC3339),
		Status:    "active",
	}

	id, err := s.agents.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	record.ID = id
	return recordToAgent(record), nil
}

// UpdateAgentStatus updates status matching on the external agent
// identifier. A miss is an outcome, not an error.
func (s *AgentServiceImpl) UpdateAgentStatus(ctx context.Context, agentID, status string) (primary.UpdateOutcome, error) {
	outcome, err := s.agents.UpdateStatusByAgentID(ctx, agentID, status)
	return toPrimaryOutcome(outcome), err
}

// ListAgents lists agents, newest first, optionally scoped to a session.
func (s *AgentServiceImpl) ListAgents(ctx context.Context, sessionID string) ([]*primary.Agent, error) {
	records, err := s.agents.List(ctx, secondary.AgentFilters{SessionID: sessionID})
	if err != nil {
		return nil, err
	}

	agents := make([]*primary.Agent, 0, len(records))
	for _, record := range records {
		agents = append(agents, recordToAgent(record))
	}
	return agents, nil
}

// ActiveRoles returns the distinct roles of active agents in a session.
func (s *AgentServiceImpl) ActiveRoles(ctx context.Context, sessionID string) ([]string, error) {
	return s.agents.ActiveRoles(ctx, sessionID)
}

func recordToAgent(record *secondary.AgentRecord) *primary.Agent {
	return &primary.Agent{
		ID:        record.ID,
		SessionID: record.SessionID,
		Role:      record.Role,
		AgentID:   record.AgentID,
		StartedAt: record.StartedAt,
		Status:    record.Status,
	}
}
