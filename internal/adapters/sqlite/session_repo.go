// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/allinfinite/Autonomous-project/internal/ports/secondary"
)

// SessionRepository implements secondary.SessionRepository with SQLite.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SQLite session repository.
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionSelectCols = "session_id, created_at, project_goal, current_phase"

func scanSession(scanner interface {
	Scan(dest ...any) error
}) (*secondary.SessionRecord, error) {
	var phase sql.NullString

	record := &secondary.SessionRecord{}
	err := scanner.Scan(&record.ID, &record.CreatedAt, &record.Goal, &phase)
	if err != nil {
		return nil, err
	}

	record.Phase = phase.String
	return record, nil
}

// Create persists a new session.
func (r *SessionRepository) Create(ctx context.Context, session *secondary.SessionRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO sessions (session_id, created_at, project_goal, current_phase) VALUES (?, ?, ?, ?)",
		session.ID, session.CreatedAt, session.Goal, session.Phase,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return fmt.Errorf("session %s: %w", session.ID, secondary.ErrDuplicateSession)
		}
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// GetByID retrieves a session by its identifier, or nil when unknown.
func (r *SessionRepository) GetByID(ctx context.Context, sessionID string) (*secondary.SessionRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+sessionSelectCols+" FROM sessions WHERE session_id = ?",
		sessionID,
	)

	record, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return record, nil
}

// Latest returns the most recently created session, or nil on an empty store.
func (r *SessionRepository) Latest(ctx context.Context) (*secondary.SessionRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+sessionSelectCols+" FROM sessions ORDER BY created_at DESC LIMIT 1",
	)

	record, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest session: %w", err)
	}

	return record, nil
}

// SetPhase overwrites current_phase for a session. Any string is accepted.
func (r *SessionRepository) SetPhase(ctx context.Context, sessionID, phase string) (secondary.UpdateOutcome, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE sessions SET current_phase = ? WHERE session_id = ?",
		phase, sessionID,
	)
	if err != nil {
		return secondary.UpdateNotFound, fmt.Errorf("failed to set phase: %w", err)
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

// List retrieves all sessions, newest first.
func (r *SessionRepository) List(ctx context.Context) ([]*secondary.SessionRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+sessionSelectCols+" FROM sessions ORDER BY created_at DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*secondary.SessionRecord
	for rows.Next() {
		record, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, record)
	}

	return sessions, rows.Err()
}
