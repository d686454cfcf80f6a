// Package primary defines the primary ports (driving interfaces) for the
// coordinator application.
package primary

import "context"

// SessionService defines the primary port for session operations.
type SessionService interface {
	// CreateSession records a new session for a project goal. When
	// SessionID is empty a timestamp-derived identifier is generated.
	CreateSession(ctx context.Context, req CreateSessionRequest) (*Session, error)

	// GetSession retrieves a session, or nil when the identifier is
	// unknown (a miss is a caller decision, not an error).
	GetSession(ctx context.Context, sessionID string) (*Session, error)

	// SetPhase overwrites the session's current phase. Any string is
	// accepted; the store enforces no phase order.
	SetPhase(ctx context.Context, sessionID, phase string) error

	// ListSessions lists all sessions, newest first.
	ListSessions(ctx context.Context) ([]*Session, error)
}

// CreateSessionRequest contains parameters for creating a session.
type CreateSessionRequest struct {
	Goal      string
	SessionID string // Optional; generated when empty
	Phase     string // Optional; defaults to "initialization"
}

// Session is a coordinator run tied to one project goal.
type Session struct {
	ID        string `json:"session_id"`
	CreatedAt string `json:"created_at"`
	Goal      string `json:"project_goal"`
	Phase     string `json:"current_phase"`
}
