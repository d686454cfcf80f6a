// Package app contains the application services implementing the primary
// ports. Services are thin: one logical operation maps to one committed
// statement on the store, so independent processes can interleave freely.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/allinfinite/Autonomous-project/internal/ports/primary"
	"github.com/allinfinite/Autonomous-project/internal/ports/secondary"
)

// sessionIDLayout derives session identifiers from the wall clock. The store
// treats them as opaque keys; callers needing collision-proof identifiers
// supply their own.
const sessionIDLayout = "20060102_150405"

// fallbackGoal names sessions auto-created by sync utilities running against
// a store that holds no session yet.
const fallbackGoal = "Autonomous Project"

// SessionServiceImpl implements the SessionService interface.
type SessionServiceImpl struct {
	sessions secondary.SessionRepository
}

// NewSessionService creates a new SessionService with injected dependencies.
func NewSessionService(sessions secondary.SessionRepository) *SessionServiceImpl {
	return &SessionServiceImpl{sessions: sessions}
}

// CreateSession records a new session for a project goal.
func (s *SessionServiceImpl) CreateSession(ctx context.Context, req primary.CreateSessionRequest) (*primary.Session, error) {
	id := req.SessionID
	if id == "" {
		id = time.Now().Format(sessionIDLayout)
	}
	phase := req.Phase
	if phase == "" {
		phase = "initialization"
	}

	record := &secondary.SessionRecord{
		ID:        id,
		CreatedAt: time.Now().Format(time.RFC3339),
		Goal:      req.Goal,
		Phase:     phase,
	}

	if err := s.sessions.Create(ctx, record); err != nil {
		return nil, err
	}

	return recordToSession(record), nil
}

// GetSession retrieves a session, or nil when the identifier is unknown.
func (s *SessionServiceImpl) GetSession(ctx context.Context, sessionID string) (*primary.Session, error) {
	record, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}
	return recordToSession(record), nil
}

// SetPhase overwrites the session's current phase. A miss is silently
// ignored, matching the store's best-effort update contract.
func (s *SessionServiceImpl) SetPhase(ctx context.Context, sessionID, phase string) error {
	_, err := s.sessions.SetPhase(ctx, sessionID, phase)
	return err
}

// ListSessions lists all sessions, newest first.
func (s *SessionServiceImpl) ListSessions(ctx context.Context) ([]*primary.Session, error) {
	records, err := s.sessions.List(ctx)
	if err != nil {
		return nil, err
	}

	sessions := make([]*primary.Session, 0, len(records))
	for _, record := range records {
		sessions = append(sessions, recordToSession(record))
	}
	return sessions, nil
}

func recordToSession(record *secondary.SessionRecord) *primary.Session {
	return &primary.Session{
		ID:        record.ID,
		CreatedAt: record.CreatedAt,
		Goal:      record.Goal,
		Phase:     record.Phase,
	}
}

// defaultSessionID resolves the session an operation should target: the
// explicit one when given, otherwise the most recently created. When the
// store holds no session at all a fallback session is created first, so no
// row written by this process is ever orphaned.
func defaultSessionID(ctx context.Context, sessions secondary.SessionRepository, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	latest, err := sessions.Latest(ctx)
	if err != nil {
		return "", err
	}
	if latest != nil {
		return latest.ID, nil
	}

	id := time.Now().Format(sessionIDLayout)
	err = sessions.Create(ctx, &secondary.SessionRecord{
		ID:        id,
		CreatedAt: time.Now().Format(time.RFC3339),
		Goal:      fallbackGoal,
		Phase:     "implementation",
	})
	if err != nil {
		return "", fmt.Errorf("failed to create fallback session: %w", err)
	}
	return id, nil
}
