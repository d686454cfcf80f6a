// Package db opens the project-scoped SQLite store and owns its schema.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// FileName is the fixed name of the backing store inside a project directory.
const FileName = ".autonomous_project.db"

// Path returns the backing store path for a project directory.
func Path(projectDir string) string {
	return filepath.Join(projectDir, FileName)
}

// Exists reports whether a backing store has been created for the directory.
func Exists(projectDir string) bool {
	_, err := os.Stat(Path(projectDir))
	return err == nil
}

// Open opens the backing store for a project directory, creating the file and
// schema when absent. Any number of processes may hold their own handle
// against the same file; schema initialization is create-if-absent and never
// touches existing rows.
func Open(projectDir string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite3", Path(projectDir))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Writers from other processes hold their locks for single statements
	// only; a short busy wait rides out those windows.
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if err := InitSchema(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return conn, nil
}
