package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/allinfinite/Autonomous-project/internal/ports/secondary"
)

// ReportRepository implements secondary.ReportRepository with SQLite.
// Reports are append-only snapshots; there is no update or delete path.
type ReportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new SQLite report repository.
func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create appends a report row and returns its record id.
func (r *ReportRepository) Create(ctx context.Context, report *secondary.ReportRecord) (int64, error) {
	var phase sql.NullString
	if report.Phase != "" {
		phase = sql.NullString{String: report.Phase, Valid: true}
	}

	res, err := r.db.ExecContext(ctx,
		"INSERT INTO reports (session_id, timestamp, phase, completed_tasks, data) VALUES (?, ?, ?, ?, ?)",
		report.SessionID, report.Timestamp, phase, report.CompletedTasks, report.Data,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create report: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read report record id: %w", err)
	}
	return id, nil
}
