package model

import "time"

// Workflow run statuses.
const (
	RunRunning = "running"
	RunSuccess = "success"
	RunFailed  = "failed"
)

// Workflow is a user-owned automation definition. Config holds the raw
// JSON configuration as stored; the server does not interpret it.
type Workflow struct {
	ID          uint64     `json:"id"`
	UserID      uint64     `json:"-"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Type        string     `json:"type"`
	Config      string     `json:"-"`
	Status      string     `json:"status"`
	RunsCount   uint64     `json:"runs_count"`
	LastRunAt   *time.Time `json:"last_run_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// WorkflowRun records one execution of a workflow. Input and Output are
// raw JSON blobs; DurationMS is filled when the run completes.
type WorkflowRun struct {
	ID           uint64     `json:"id"`
	WorkflowID   uint64     `json:"workflow_id"`
	WorkflowName string     `json:"workflow_name,omitempty"`
	UserID       uint64     `json:"user_id"`
	Status       string     `json:"status"`
	Input        string     `json:"input,omitempty"`
	Output       string     `json:"output,omitempty"`
	StartedAt    *time.Time `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at"`
	DurationMS   *int64     `json:"duration_ms"`
	CreatedAt    time.Time  `json:"created_at"`
}
