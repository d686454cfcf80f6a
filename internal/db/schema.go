package db

import (
	"database/sql"
	"fmt"
)

// SchemaSQL is the complete schema for the coordinator store.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All tests load
// it via GetSchemaSQL() so repository code and tests can never drift apart:
// if a repository references a column that does not exist here, its tests
// fail immediately with "no such column".
//
// Every statement is create-if-absent. Re-running the schema against a
// populated store is a no-op; concurrent initialization from independent
// processes is safe.
const SchemaSQL = `
-- Sessions (one per coordinator run, keyed by caller-supplied identifier)
CREATE TABLE IF NOT EXISTS sessions (
	session_id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	project_goal TEXT NOT NULL,
	current_phase TEXT DEFAULT 'initialization'
);

-- Agents (worker roles spawned within a session)
CREATE TABLE IF NOT EXISTS agents (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	role TEXT NOT NULL,
	agent_id TEXT,
	started_at TEXT NOT NULL,
	status TEXT DEFAULT 'active',
	FOREIGN KEY (session_id) REFERENCES sessions(session_id)
);

-- Tasks (externally-assigned task_id; duplicates within a session are legal,
-- deduplication is the reconciler's job, not the store's)
CREATE TABLE IF NOT EXISTS tasks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	task_id TEXT NOT NULL,
	agent_role TEXT,
	description TEXT,
	status TEXT DEFAULT 'pending',
	created_at TEXT NOT NULL,
	completed_at TEXT,
	FOREIGN KEY (session_id) REFERENCES sessions(session_id)
);

-- Reports (append-only progress snapshots)
CREATE TABLE IF NOT EXISTS reports (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	timestamp TEXT NOT NULL,
	phase TEXT,
	completed_tasks INTEGER,
	data TEXT,
	FOREIGN KEY (session_id) REFERENCES sessions(session_id)
);

CREATE INDEX IF NOT EXISTS idx_tasks_session_task ON tasks(session_id, task_id);
CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
CREATE INDEX IF NOT EXISTS idx_agents_agent_id ON agents(agent_id);
CREATE INDEX IF NOT EXISTS idx_agents_session ON agents(session_id);
CREATE INDEX IF NOT EXISTS idx_reports_session ON reports(session_id);
`

// GetSchemaSQL returns the authoritative schema for test setup.
func GetSchemaSQL() string {
	return SchemaSQL
}

// InitSchema ensures all tables and indexes exist.
func InitSchema(conn *sql.DB) error {
	if _, err := conn.Exec(SchemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
