package app

import (
	"context"
	"time"

	"github.com/allinfinite/Autonomous-project/internal/ports/primary"
	"github.com/allinfinite/Autonomous-project/internal/ports/secondary"
)

// TaskServiceImpl implements the TaskService interface.
type TaskServiceImpl struct {
	tasks    secondary.TaskRepository
	sessions secondary.SessionRepository
}

// NewTaskService creates a new TaskService with injected dependencies.
func NewTaskService(tasks secondary.TaskRepository, sessions secondary.SessionRepository) *TaskServiceImpl {
	return &TaskServiceImpl{tasks: tasks, sessions: sessions}
}

// AddTask appends a task row with status pending. Duplicate task_id values
// are accepted; deduplication is the reconciler's job.
func (s *TaskServiceImpl) AddTask(ctx context.Context, req primary.AddTaskRequest) (*primary.Task, error) {
	sessionID, err := defaultSessionID(ctx, s.sessions, req.SessionID)
	if err != nil {
		return nil, err
	}

	record := &secondary.TaskRecord{
		SessionID:   sessionID,
		TaskID:      req.TaskID,
		AgentRole:   req.AgentRole,
		Description: req.Description,
		Status:      "pending",
		CreatedAt:   time.Now().Format(time.RFC3339),
	}

	id, err := s.tasks.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	record.ID = id
	return recordToTask(record), nil
}

// UpdateTask applies a partial update matching by task_id value.
func (s *TaskServiceImpl) UpdateTask(ctx context.Context, req primary.UpdateTaskRequest) (primary.UpdateOutcome, error) {
	outcome, err := s.tasks.UpdateByTaskID(ctx, req.TaskID, secondary.TaskUpdate{
		Status:      req.Status,
		AgentRole:   req.AgentRole,
		Description: req.Description,
	})
	return toPrimaryOutcome(outcome), err
}

// CompleteTask marks a task completed; the store stamps completed_at in the
// same statement.
func (s *TaskServiceImpl) CompleteTask(ctx context.Context, taskID string) (primary.UpdateOutcome, error) {
	return s.UpdateTask(ctx, primary.UpdateTaskRequest{TaskID: taskID, Status: "completed"})
}

// DeleteTask removes every row matching the task_id value.
func (s *TaskServiceImpl) DeleteTask(ctx context.Context, taskID string) (int64, error) {
	return s.tasks.DeleteByTaskID(ctx, taskID)
}

// ListTasks lists tasks, newest first, optionally scoped to a session.
func (s *TaskServiceImpl) ListTasks(ctx context.Context, sessionID string) ([]*primary.Task, error) {
	records, err := s.tasks.List(ctx, secondary.TaskFilters{SessionID: sessionID})
	if err != nil {
		return nil, err
	}

	tasks := make([]*primary.Task, 0, len(records))
	for _, record := range records {
		tasks = append(tasks, recordToTask(record))
	}
	return tasks, nil
}

// CompletedCount returns the number of completed tasks in a session.
func (s *TaskServiceImpl) CompletedCount(ctx context.Context, sessionID string) (int, error) {
	return s.tasks.CountCompleted(ctx, sessionID)
}

func recordToTask(record *secondary.TaskRecord) *primary.Task {
	return &primary.Task{
		ID:          record.ID,
		SessionID:   record.SessionID,
		TaskID:      record.TaskID,
		AgentRole:   record.AgentRole,
		Description: record.Description,
		Status:      record.Status,
		CreatedAt:   record.CreatedAt,
		CompletedAt: record.CompletedAt,
	}
}

func toPrimaryOutcome(outcome secondary.UpdateOutcome) primary.UpdateOutcome {
	if outcome == secondary.UpdateApplied {
		return primary.Updated
	}
	return primary.NotFound
}
