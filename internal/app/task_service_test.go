package app

import (
	"context"
	"testing"

	"github.com/allinfinite/Autonomous-project/internal/ports/primary"
)

func TestAddTaskDefaultsToPending(t *testing.T) {
	tasks := newMockTaskRepository()
	sessions := newMockSessionRepository()
	seedMockSession(sessions, "20260115_093000")
	svc := NewTaskService(tasks, sessions)

	task, err := svc.AddTask(context.Background(), primary.AddTaskRequest{
		TaskID:      "t1",
		AgentRole:   "builder",
		Description: "Wire the store",
	})
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if task.Status != "pending" {
		t.Errorf("expected pending, got %s", task.Status)
	}
	if task.SessionID != "20260115_093000" {
		t.Errorf("expected latest session, got %s", task.SessionID)
	}
	if task.CreatedAt == "" {
		t.Error("expected created_at to be set")
	}
}

func TestAddTaskAllowsDuplicateTaskID(t *testing.T) {
	tasks := newMockTaskRepository()
	sessions := newMockSessionRepository()
	seedMockSession(sessions, "20260115_093000")
	svc := NewTaskService(tasks, sessions)

	for i := 0; i < 2; i++ {
		if _, err := svc.AddTask(context.Background(), primary.AddTaskRequest{TaskID: "t1"}); err != nil {
			t.Fatalf("AddTask %d failed: %v", i, err)
		}
	}
	if got := len(tasks.byTaskID("t1")); got != 2 {
		t.Errorf("expected 2 rows for t1, got %d", got)
	}
}

func TestCompleteTaskReportsOutcome(t *testing.T) {
	tasks := newMockTaskRepository()
	sessions := newMockSessionRepository()
	seedMockSession(sessions, "20260115_093000")
	svc := NewTaskService(tasks, sessions)

	if _, err := svc.AddTask(context.Background(), primary.AddTaskRequest{TaskID: "t1"}); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	outcome, err := svc.CompleteTask(context.Background(), "t1")
	if err != nil {
		t.Fatalf("CompleteTask failed: %v", err)
	}
	if outcome != primary.Updated {
		t.Errorf("expected Updated, got %v", outcome)
	}

	outcome, err = svc.CompleteTask(context.Background(), "no-such-task")
	if err != nil {
		t.Fatalf("CompleteTask on miss failed: %v", err)
	}
	if outcome != primary.NotFound {
		t.Errorf("expected NotFound, got %v", outcome)
	}
}

func TestDeleteTaskRemovesAllMatches(t *testing.T) {
	tasks := newMockTaskRepository()
	sessions := newMockSessionRepository()
	seedMockSession(sessions, "20260115_093000")
	svc := NewTaskService(tasks, sessions)

	for i := 0; i < 2; i++ {
		if _, err := svc.AddTask(context.Background(), primary.AddTaskRequest{TaskID: "dup"}); err != nil {
			t.Fatalf("AddTask failed: %v", err)
		}
	}

	removed, err := svc.DeleteTask(context.Background(), "dup")
	if err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("expected 2 removed, got %d", removed)
	}
	if len(tasks.tasks) != 0 {
		t.Errorf("expected empty store, got %d rows", len(tasks.tasks))
	}
}

func TestCompletedCount(t *testing.T) {
	tasks := newMockTaskRepository()
	sessions := newMockSessionRepository()
	seedMockSession(sessions, "20260115_093000")
	svc := NewTaskService(tasks, sessions)

	for _, id := range []string{"t1", "t2", "t3"} {
		if _, err := svc.AddTask(context.Background(), primary.AddTaskRequest{TaskID: id}); err != nil {
			t.Fatalf("AddTask failed: %v", err)
		}
	}
	if _, err := svc.CompleteTask(context.Background(), "t1"); err != nil {
		t.Fatalf("CompleteTask failed: %v", err)
	}
	if _, err := svc.CompleteTask(context.Background(), "t3"); err != nil {
		t.Fatalf("CompleteTask failed: %v", err)
	}

	count, err := svc.CompletedCount(context.Background(), "20260115_093000")
	if err != nil {
		t.Fatalf("CompletedCount failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 completed, got %d", count)
	}
}
