package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/allinfinite/Autonomous-project/internal/ports/secondary"
)

// TaskRepository implements secondary.TaskRepository with SQLite.
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new SQLite task repository.
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskSelectCols = "id, session_id, task_id, agent_role, description, status, created_at, completed_at"

func scanTask(scanner interface {
	Scan(dest ...any) error
}) (*secondary.TaskRecord, error) {
	var (
		agentRole   sql.NullString
		desc        sql.NullString
		completedAt sql.NullString
	)

	record := &secondary.TaskRecord{}
	err := scanner.Scan(
		&record.ID, &record.SessionID, &record.TaskID, &agentRole,
		&desc, &record.Status, &record.CreatedAt, &completedAt,
	)
	if err != nil {
		return nil, err
	}

	record.AgentRole = agentRole.String
	record.Description = desc.String
	record.CompletedAt = completedAt.String
	return record, nil
}

// Create appends a task row. There is deliberately no duplicate check on
// task_id: calling Create twice with the same value makes two rows, and
// DeleteByTaskID later removes both. Deduplication belongs to the reconciler.
func (r *TaskRepository) Create(ctx context.Context, task *secondary.TaskRecord) (int64, error) {
	var agentRole, desc sql.NullString
	if task.AgentRole != "" {
		agentRole = sql.NullString{String: task.AgentRole, Valid: true}
	}
	if task.Description != "" {
		desc = sql.NullString{String: task.Description, Valid: true}
	}

	res, err := r.db.ExecContext(ctx,
		"INSERT INTO tasks (session_id, task_id, agent_role, description, status, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		task.SessionID, task.TaskID, agentRole, desc, task.Status, task.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create task: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read task record id: %w", err)
	}
	return id, nil
}

// ExistsByTaskID reports whether any row carries the task_id value.
func (r *TaskRepository) ExistsByTaskID(ctx context.Context, taskID string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM tasks WHERE task_id = ? LIMIT 1",
		taskID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check task existence: %w", err)
	}
	return true, nil
}

// List retrieves tasks, newest first.
func (r *TaskRepository) List(ctx context.Context, filters secondary.TaskFilters) ([]*secondary.TaskRecord, error) {
	query := "SELECT " + taskSelectCols + " FROM tasks WHERE 1=1"
	args := []any{}

	if filters.SessionID != "" {
		query += " AND session_id = ?"
		args = append(args, filters.SessionID)
	}

	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}

	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*secondary.TaskRecord
	for rows.Next() {
		record, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, record)
	}

	return tasks, rows.Err()
}

// UpdateByTaskID applies a partial update to every row matching the task_id
// value. Only supplied fields change. Entering "completed" stamps
// completed_at with the current time as part of the same statement, on every
// transition in, so re-completing re-stamps.
func (r *TaskRepository) UpdateByTaskID(ctx context.Context, taskID string, update secondary.TaskUpdate) (secondary.UpdateOutcome, error) {
	sets := ""
	args := []any{}

	if update.Status != "" {
		sets += ", status = ?"
		args = append(args, update.Status)
		if update.Status == "completed" {
			sets += ", completed_at = ?"
			args = append(args, time.Now().Format(time.RFC3339))
		}
	}

	if update.AgentRole != "" {
		sets += ", agent_role = ?"
		args = append(args, update.AgentRole)
	}

	if update.Description != "" {
		sets += ", description = ?"
		args = append(args, update.Description)
	}

	if sets == "" {
		return secondary.UpdateNotFound, nil
	}

	args = append(args, taskID)
	res, err := r.db.ExecContext(ctx,
		"UPDATE tasks SET "+sets[2:]+" WHERE task_id = ?",
		args...,
	)
	if err != nil {
		return secondary.UpdateNotFound, fmt.Errorf("failed to update task: %w", err)
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

// DeleteByTaskID removes every row matching the task_id value.
func (r *TaskRepository) DeleteByTaskID(ctx context.Context, taskID string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM tasks WHERE task_id = ?",
		taskID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete task: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}

// CountCompleted returns the number of completed tasks in a session.
func (r *TaskRepository) CountCompleted(ctx context.Context, sessionID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM tasks WHERE session_id = ? AND status = 'completed'",
		sessionID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed tasks: %w", err)
	}
	return count, nil
}
