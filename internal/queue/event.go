// Package queue defines the workflow-run message payload and the
// background consumer that completes runs.
package queue

// RunQueueName is the durable queue workflow-run requests flow through.
const RunQueueName = "workflow.run"

// WorkflowRunEvent is published when a client triggers a workflow. It
// carries everything the consumer needs to complete the run without
// querying back into the request path.
type WorkflowRunEvent struct {
	RunID      uint64 `json:"run_id"`
	WorkflowID uint64 `json:"workflow_id"`
	UserID     uint64 `json:"user_id"`
	Input      string `json:"input"`
	StartedAt  string `json:"started_at"` // RFC 3339, UTC
}
