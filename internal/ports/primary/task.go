package primary

import "context"

// TaskService defines the primary port for task operations.
type TaskService interface {
	// AddTask appends a task row. No duplicate check on TaskID: calling
	// twice with the same value legitimately creates two rows.
	AddTask(ctx context.Context, req AddTaskRequest) (*Task, error)

	// UpdateTask applies a partial update to every row matching the
	// task_id value. A miss is reported in the outcome, not as an error.
	UpdateTask(ctx context.Context, req UpdateTaskRequest) (UpdateOutcome, error)

	// CompleteTask marks a task completed, stamping completed_at.
	CompleteTask(ctx context.Context, taskID string) (UpdateOutcome, error)

	// DeleteTask removes every row matching the task_id value and returns
	// how many went.
	DeleteTask(ctx context.Context, taskID string) (int64, error)

	// ListTasks lists tasks, newest first, optionally scoped to a session.
	ListTasks(ctx context.Context, sessionID string) ([]*Task, error)

	// CompletedCount returns the number of completed tasks in a session.
	CompletedCount(ctx context.Context, sessionID string) (int, error)
}

// UpdateOutcome mirrors the store's best-effort update result so callers can
// decide whether a miss escalates.
type UpdateOutcome int

const (
	// Updated means at least one row changed.
	Updated UpdateOutcome = iota
	// NotFound means no row matched.
	NotFound
)

// AddTaskRequest contains parameters for creating a task.
type AddTaskRequest struct {
	SessionID   string // Optional; defaults to the most recent session
	TaskID      string
	AgentRole   string // Optional
	Description string // Optional
}

// UpdateTaskRequest contains a partial task update; empty fields are left
// untouched.
type UpdateTaskRequest struct {
	TaskID      string
	Status      string
	AgentRole   string
	Description string
}

// Task is a unit of work reported by an external agent.
type Task struct {
	ID          int64  `json:"id"`
	SessionID   string `json:"session_id"`
	TaskID      string `json:"task_id"`
	AgentRole   string `json:"agent_role,omitempty"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	CompletedAt string `json:"completed_at,omitempty"`
}
