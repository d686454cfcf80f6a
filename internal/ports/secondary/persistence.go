// Package secondary defines the secondary ports (driven adapters) for the
// coordinator. These are the interfaces through which the application drives
// the backing store.
package secondary

import (
	"context"
	"errors"
)

// ErrDuplicateSession is returned when a session identifier already exists.
// Identifiers are timestamp-derived by convention, so collisions are possible
// at sub-second invocation rates; callers needing strict uniqueness supply
// their own identifier.
var ErrDuplicateSession = errors.New("session already exists")

// UpdateOutcome reports how a best-effort update resolved. A miss is not an
// error; callers decide whether it should escalate.
type UpdateOutcome int

const (
	// UpdateApplied means at least one row changed.
	UpdateApplied UpdateOutcome = iota
	// UpdateNotFound means no row matched the identifier.
	UpdateNotFound
)

// SessionRepository defines the secondary port for session persistence.
type SessionRepository interface {
	// Create persists a new session. Returns ErrDuplicateSession when the
	// identifier is already taken.
	Create(ctx context.Context, session *SessionRecord) error

	// GetByID retrieves a session, or nil when the identifier is unknown.
	GetByID(ctx context.Context, sessionID string) (*SessionRecord, error)

	// Latest returns the most recently created session, or nil when the
	// store holds none.
	Latest(ctx context.Context) (*SessionRecord, error)

	// SetPhase overwrites current_phase. Any string is accepted; the store
	// enforces no transition order.
	SetPhase(ctx context.Context, sessionID, phase string) (UpdateOutcome, error)

	// List retrieves all sessions ordered by created_at descending.
	List(ctx context.Context) ([]*SessionRecord, error)
}

// SessionRecord represents a session as stored in persistence.
type SessionRecord struct {
	ID        string
	CreatedAt string
	Goal      string
	Phase     string
}

// AgentRepository defines the secondary port for agent persistence.
type AgentRepository interface {
	// Create appends an agent row and returns its record id.
	Create(ctx context.Context, agent *AgentRecord) (int64, error)

	// List retrieves agents ordered by started_at descending.
	List(ctx context.Context, filters AgentFilters) ([]*AgentRecord, error)

	// UpdateStatusByAgentID updates status matching on the external
	// agent_id, not the record id. Zero rows matched is UpdateNotFound.
	UpdateStatusByAgentID(ctx context.Context, agentID, status string) (UpdateOutcome, error)

	// ActiveRoles returns the distinct roles of active agents in a session.
	ActiveRoles(ctx context.Context, sessionID string) ([]string, error)
}

// AgentRecord represents an agent as stored in persistence.
type AgentRecord struct {
	ID        int64
	SessionID string
	Role      string
	AgentID   string // Empty string means null (no external identifier)
	StartedAt string
	Status    string
}

// AgentFilters contains filter options for querying agents.
type AgentFilters struct {
	SessionID string
}

// TaskRepository defines the secondary port for task persistence.
type TaskRepository interface {
	// Create appends a task row and returns its record id. Deliberately no
	// duplicate check on task_id: two creates make two rows.
	Create(ctx context.Context, task *TaskRecord) (int64, error)

	// ExistsByTaskID reports whether any row carries the task_id value.
	ExistsByTaskID(ctx context.Context, taskID string) (bool, error)

	// List retrieves tasks ordered by created_at descending.
	List(ctx context.Context, filters TaskFilters) ([]*TaskRecord, error)

	// UpdateByTaskID applies a partial update to every row matching the
	// task_id value. Empty fields are left untouched. When Status becomes
	// "completed", completed_at is stamped in the same statement.
	UpdateByTaskID(ctx context.Context, taskID string, update TaskUpdate) (UpdateOutcome, error)

	// DeleteByTaskID removes every row matching the task_id value and
	// returns how many went.
	DeleteByTaskID(ctx context.Context, taskID string) (int64, error)

	// CountCompleted returns the number of completed tasks in a session.
	CountCompleted(ctx context.Context, sessionID string) (int, error)
}

// TaskRecord represents a task as stored in persistence.
type TaskRecord struct {
	ID          int64
	SessionID   string
	TaskID      string
	AgentRole   string // Empty string means null
	Description string // Empty string means null
	Status      string
	CreatedAt   string
	CompletedAt string // Empty string means null
}

// TaskFilters contains filter options for querying tasks.
type TaskFilters struct {
	SessionID string
	Status    string
}

// TaskUpdate describes a partial task update. Empty string means "leave the
// column alone", matching the wire contract of the dashboard's PUT.
type TaskUpdate struct {
	Status      string
	AgentRole   string
	Description string
}

// ReportRepository defines the secondary port for report persistence.
// Reports are append-only; there is no update or delete.
type ReportRepository interface {
	// Create appends a report row and returns its record id.
	Create(ctx context.Context, report *ReportRecord) (int64, error)
}

// ReportRecord represents a progress snapshot as stored in persistence.
type ReportRecord struct {
	ID             int64
	SessionID      string
	Timestamp      string
	Phase          string
	CompletedTasks int
	Data           string // Full snapshot JSON, stored verbatim
}
