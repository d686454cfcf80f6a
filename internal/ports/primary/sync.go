package primary

import "context"

// SyncService defines the primary port for task reconciliation: merging an
// externally supplied task list into the store without duplicating or losing
// already-tracked tasks.
type SyncService interface {
	// SyncTasks reconciles a JSON array of loosely-shaped task records.
	// Creates are counted; status-only updates are not. A malformed
	// top-level payload yields an error with zero effects; malformed
	// individual records are skipped with a warning.
	SyncTasks(ctx context.Context, req SyncTasksRequest) (*SyncResult, error)
}

// SyncTasksRequest contains the reconciliation input.
type SyncTasksRequest struct {
	SessionID string // Optional; defaults to the most recent session
	Payload   []byte // JSON array of task records
}

// SyncResult reports what a reconciliation run did.
type SyncResult struct {
	// Created is the number of newly created tasks. Re-running with the
	// same input yields zero here while statuses still converge.
	Created int
	// Skipped is the number of records dropped for carrying no identifier
	// or failing to parse.
	Skipped int
}
