package primary

import "context"

// AgentService defines the primary port for agent roster operations.
type AgentService interface {
	// RegisterAgent appends an agent row with status active. When
	// SessionID is empty the most recent session is used; when the store
	// holds no session at all, a fallback session is created first so the
	// row is never orphaned.
	RegisterAgent(ctx context.Context, req RegisterAgentRequest) (*Agent, error)

	// UpdateAgentStatus updates status matching on the external agent
	// identifier. A miss is an outcome, not an error: the standalone sync
	// utility treats it as best-effort.
	UpdateAgentStatus(ctx context.Context, agentID, status string) (UpdateOutcome, error)

	// ListAgents lists agents, newest first, optionally scoped to a session.
	ListAgents(ctx context.Context, sessionID string) ([]*Agent, error)

	// ActiveRoles returns the distinct roles of active agents in a session.
	ActiveRoles(ctx context.Context, sessionID string) ([]string, error)
}

// RegisterAgentRequest contains parameters for registering an agent.
type RegisterAgentRequest struct {
	SessionID string // Optional; defaults to the most recent session
	Role      string
	AgentID   string // Optional external identifier
}

// Agent is a worker role active within a session.
type Agent struct {
	ID        int64  `json:"id"`
	SessionID string `json:"session_id"`
	Role      string `json:"role"`
	AgentID   string `json:"agent_id,omitempty"`
	StartedAt string `json:"started_at"`
	Status    string `json:"status"`
}
