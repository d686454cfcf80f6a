package primary

import "context"

// ReportService defines the primary port for progress reports.
type ReportService interface {
	// GenerateReport snapshots a session's progress, appends it to the
	// store, and returns it for display. One report row per invocation.
	GenerateReport(ctx context.Context, sessionID string) (*Report, error)
}

// Report is a progress snapshot at a point in time.
type Report struct {
	SessionID      string   `json:"session_id"`
	Phase          string   `json:"phase"`
	CompletedTasks int      `json:"completed_tasks"`
	ActiveAgents   []string `json:"active_agents"`
	Blockers       []string `json:"blockers"`
	NextPriorities []string `json:"next_priorities"`
}
