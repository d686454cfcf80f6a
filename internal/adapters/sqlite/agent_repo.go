package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/allinfinite/Autonomous-project/internal/ports/secondary"
)

// AgentRepository implements secondary.AgentRepository with SQLite.
type AgentRepository struct {
	db *sql.DB
}

// NewAgentRepository creates a new SQLite agent repository.
func NewAgentRepository(db *sql.DB) *AgentRepository {
	return &AgentRepository{db: db}
}

const agentSelectCols = "id, session_id, role, agent_id, started_at, status"

func scanAgent(scanner interface {
	Scan(dest ...any) error
}) (*secondary.AgentRecord, error) {
	var agentID sql.NullString

	record := &secondary.AgentRecord{}
	err := scanner.Scan(&record.ID, &record.SessionID, &record.Role, &agentID, &record.StartedAt, &record.Status)
	if err != nil {
		return nil, err
	}

	record.AgentID = agentID.String
	return record, nil
}

// Create appends an agent row and returns its record id.
func (r *AgentRepository) Create(ctx context.Context, agent *secondary.AgentRecord) (int64, error) {
	var agentID sql.NullString
	if agent.AgentID != "" {
		agentID = sql.NullString{String: agent.AgentID, Valid: true}
	}

	res, err := r.db.ExecContext(ctx,
		"INSERT INTO agents (session_id, role, agent_id, started_at, status) VALUES (?, ?, ?, ?, ?)",
		agent.SessionID, agent.Role, agentID, agent.StartedAt, agent.Status,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create agent: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read agent record id: %w", err)
	}
	return id, nil
}

// List retrieves agents, newest first.
func (r *AgentRepository) List(ctx context.Context, filters secondary.AgentFilters) ([]*secondary.AgentRecord, error) {
	query := "SELECT " + agentSelectCols + " FROM agents WHERE 1=1"
	args := []any{}

	if filters.SessionID != "" {
		query += " AND session_id = ?"
		args = append(args, filters.SessionID)
	}

	query += " ORDER BY started_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}
	defer rows.Close()

	var agents []*secondary.AgentRecord
	for rows.Next() {
		record, err := scanAgent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan agent: %w", err)
		}
		agents = append(agents, record)
	}

	return agents, rows.Err()
}

// UpdateStatusByAgentID updates status for every row matching the external
// agent_id. A miss is reported as UpdateNotFound, never as an error; the
// standalone sync utility treats it as best-effort.
func (r *AgentRepository) UpdateStatusByAgentID(ctx context.Context, agentID, status string) (secondary.UpdateOutcome, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE agents SET status = ? WHERE agent_id = ?",
		status, agentID,
	)
	if err != nil {
		return secondary.UpdateNotFound, fmt.Errorf("failed to update agent status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return secondary.UpdateNotFound, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return secondary.UpdateNotFound, nil
	}
	return secondary.UpdateApplied, nil
}

// ActiveRoles returns the distinct roles of active agents in a session.
func (r *AgentRepository) ActiveRoles(ctx context.Context, sessionID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT DISTINCT role FROM agents WHERE session_id = ? AND status = 'active'",
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list active roles: %w", err)
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, role)
	}

	return roles, rows.Err()
}
