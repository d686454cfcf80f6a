//go:build ignore

package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// One-off maintenance script: tasks completed by older tooling may carry
// status "completed" without a completed_at stamp. Backfill them with the
// row's created_at so reports stop undercounting.
//
// Usage: go run scripts/backfill_completed_at.go [-dir <project>] [-dry-run]

func main() {
	dir := flag.String("dir", ".", "Project directory")
	dryRun := flag.Bool("dry-run", false, "Preview without executing")
	flag.Parse()

	projectDir, err := filepath.Abs(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving directory: %v\n", err)
		os.Exit(1)
	}
	dbPath := filepath.Join(projectDir, ".autonomous_project.db")

	if _, err := os.Stat(dbPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: database not found at %s\n", dbPath)
		os.Exit(1)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	rows, err := db.Query(`
		SELECT id, task_id, created_at
		FROM tasks
		WHERE status = 'completed' AND (completed_at IS NULL OR completed_at = '')
	`)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error querying tasks: %v\n", err)
		os.Exit(1)
	}
	defer rows.Close()

	type candidate struct {
		id        int64
		taskID    string
		createdAt sql.NullString
	}
	var candidates []candidate
	for rows.Next() {
		var c candidate
		if err := rows.Scan(&c.id, &c.taskID, &c.createdAt); err != nil {
			fmt.Fprintf(os.Stderr, "Error scanning row: %v\n", err)
			os.Exit(1)
		}
		candidates = append(candidates, c)
	}

	if len(candidates) == 0 {
		fmt.Println("No completed tasks missing completed_at")
		return
	}

	fmt.Printf("Found %d task(s) to backfill:\n\n", len(candidates))
	for _, c := range candidates {
		fmt.Printf("  #%d %s (created %s)\n", c.id, c.taskID, c.createdAt.String)
	}

	if *dryRun {
		fmt.Println("\n=== DRY RUN - No changes made ===")
		return
	}

	backfilled := 0
	for _, c := range candidates {
		stamp := c.createdAt.String
		if stamp == "" {
			stamp = time.Now().Format(time.RFC3339)
		}
		if _, err := db.Exec(`UPDATE tasks SET completed_at = ? WHERE id = ?`, stamp, c.id); err != nil {
			fmt.Fprintf(os.Stderr, "Error backfilling #%d: %v\n", c.id, err)
			continue
		}
		backfilled++
	}

	fmt.Printf("\n=== Backfill complete: %d/%d tasks updated ===\n", backfilled, len(candidates))
}
