package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/allinfinite/Autonomous-project/internal/ports/primary"
	"github.com/allinfinite/Autonomous-project/internal/ports/secondary"
)

// SyncServiceImpl implements the SyncService interface.
type SyncServiceImpl struct {
	tasks    secondary.TaskRepository
	sessions secondary.SessionRepository
	logger   *slog.Logger
}

// NewSyncService creates a new SyncService with injected dependencies.
func NewSyncService(tasks secondary.TaskRepository, sessions secondary.SessionRepository, logger *slog.Logger) *SyncServiceImpl {
	return &SyncServiceImpl{tasks: tasks, sessions: sessions, logger: logger}
}

// flexString decodes a JSON string or number into a string. Task lists
// produced by other tools often carry numeric identifiers.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexString(n.String())
		return nil
	}
	return fmt.Errorf("value %s is neither string nor number", strconv.Quote(string(data)))
}

// taskInput is the loose shape a reconciliation record may take. Alternate
// key names seen in the wild map onto the same fields.
type taskInput struct {
	ID          flexString `json:"id"`
	TaskID      flexString `json:"task_id"`
	Subject     string     `json:"subject"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Owner       string     `json:"owner"`
	AgentRole   string     `json:"agent_role"`
}

func (t *taskInput) resolveIdentifier() string {
	if t.ID != "" {
		return string(t.ID)
	}
	return string(t.TaskID)
}

func (t *taskInput) resolveDescription() string {
	if t.Description != "" {
		return t.Description
	}
	return t.Subject
}

func (t *taskInput) resolveOwner() string {
	if t.AgentRole != "" {
		return t.AgentRole
	}
	return t.Owner
}

// SyncTasks merges a task list into the store. Unknown identifiers become
// pending rows; known ones get their status overwritten when the incoming
// status says anything beyond pending. The operation is idempotent: a second
// run with the same payload creates nothing.
func (s *SyncServiceImpl) SyncTasks(ctx context.Context, req primary.SyncTasksRequest) (*primary.SyncResult, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(req.Payload, &raw); err != nil {
		s.logger.Warn("rejecting task payload", "error", err)
		return nil, fmt.Errorf("payload is not a JSON array: %w", err)
	}

	sessionID, err := defaultSessionID(ctx, s.sessions, req.SessionID)
	if err != nil {
		return nil, err
	}

	result := &primary.SyncResult{}
	for i, msg := range raw {
		var input taskInput
		if err := json.Unmarshal(msg, &input); err != nil {
			s.logger.Warn("skipping unparseable task record", "index", i, "error", err)
			result.Skipped++
			continue
		}

		taskID := input.resolveIdentifier()
		if taskID == "" {
			s.logger.Warn("skipping task record without identifier", "index", i)
			result.Skipped++
			continue
		}

		exists, err := s.tasks.ExistsByTaskID(ctx, taskID)
		if err != nil {
			return nil, err
		}
		if !exists {
			_, err := s.tasks.Create(ctx, &secondary.TaskRecord{
				SessionID:   sessionID,
				TaskID:      taskID,
				AgentRole:   input.resolveOwner(),
				Description: input.resolveDescription(),
				Status:      "pending",
				CreatedAt:   time.Now().Format(time.RFC3339),
			})
			if err != nil {
				return nil, err
			}
			result.Created++
		}

		// The incoming list is the authority on status. Pending carries no
		// information beyond the creation default, so it never overwrites.
		if input.Status != "" && input.Status != "pending" {
			_, err := s.tasks.UpdateByTaskID(ctx, taskID, secondary.TaskUpdate{Status: input.Status})
			if err != nil {
				return nil, err
			}
		}
	}

	s.logger.Info("task sync finished",
		"session_id", sessionID,
		"created", result.Created,
		"skipped", result.Skipped,
	)
	return result, nil
}
