// Package sqlite_test contains integration tests for SQLite repositories.
//
// Test databases are created from db.GetSchemaSQL(), the single authoritative
// schema, so repository code and tests cannot drift apart. Do not hardcode
// CREATE TABLE statements in test files.
package sqlite_test

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/allinfinite/Autonomous-project/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedSession inserts a test session and returns its identifier.
func seedSession(t *testing.T, testDB *sql.DB, id, goal string) string {
	t.Helper()
	if id == "" {
		id = "20260101_120000"
	}
	if goal == "" {
		goal = "Test goal"
	}
	_, err := testDB.Exec(
		"INSERT INTO sessions (session_id, created_at, project_goal, current_phase) VALUES (?, ?, ?, 'initialization')",
		id, time.Now().Format(time.RFC3339), goal,
	)
	if err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
	return id
}

// seedTask inserts a test task row and returns its record id.
func seedTask(t *testing.T, testDB *sql.DB, sessionID, taskID, status string) int64 {
	t.Helper()
	if status == "" {
		status = "pending"
	}
	res, err := testDB.Exec(
		"INSERT INTO tasks (session_id, task_id, status, created_at) VALUES (?, ?, ?, ?)",
		sessionID, taskID, status, time.Now().Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("failed to seed task: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

// seedAgent inserts a test agent row.
func seedAgent(t *testing.T, testDB *sql.DB, sessionID, role, agentID, status string) {
	t.Helper()
	if status == "" {
		status = "active"
	}
	_, err := testDB.Exec(
		"INSERT INTO agents (session_id, role, agent_id, started_at, status) VALUES (?, ?, ?, ?, ?)",
		sessionID, role, agentID, time.Now().Format(time.RFC3339), status,
	)
	if err != nil {
		t.Fatalf("failed to seed agent: %v", err)
	}
}
