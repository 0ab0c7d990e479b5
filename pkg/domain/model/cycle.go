package model

import "time"

// CycleResult summarizes one completed fetch-process-upload cycle
type CycleResult struct {
	ID           string        `json:"id"`            // Per-cycle UUID, also present in logs
	StartedAt    time.Time     `json:"started_at"`    // Time the cycle began
	Duration     time.Duration `json:"duration"`      // Wall time of the full cycle
	RecordCount  int           `json:"record_count"`  // Records written to the output file
	OutputPath   string        `json:"output_path"`   // Local path of the output CSV
	CommitURL    string        `json:"commit_url"`    // HTML URL of the uploaded file
	SnapshotPath string        `json:"snapshot_path"` // Archive location, empty when archiving is off
}

// CycleStatus is what the status endpoint reports about the loop
type CycleStatus struct {
	Running    bool         `json:"running"`
	LastResult *CycleResult `json:"last_result,omitempty"`
	LastError  string       `json:"last_error,omitempty"`
	CycleCount int          `json:"cycle_count"`
	ErrorCount int          `json:"error_count"`
}
