package repository

import (
	"context"
	"database/sql"

	"github.com/dashon1/creatorflow-studio/internal/model"
)

// RunRepo persists the 'workflow_runs' table. Rows are created in the
// request path with status "running" and completed later by the queue
// consumer.
type RunRepo struct{ DB *sql.DB }

func NewRunRepo(db *sql.DB) *RunRepo { return &RunRepo{DB: db} }

// Create inserts a run in the running state and returns its ID. Input is
// the raw JSON body the client posted.
func (r *RunRepo) Create(ctx context.Context, workflowID, userID uint64, input string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO workflow_runs (workflow_id, user_id, status, input, started_at) VALUES (?,?,?,?,NOW())",
		workflowID, userID, model.RunRunning, input)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Complete finalizes a run with its status, output and measured duration.
// Completing an already-completed or unknown run returns ErrNotFound so
// redelivered queue messages surface instead of silently overwriting.
func (r *RunRepo) Complete(ctx context.Context, id uint64, status, output string, durationMS int64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE workflow_runs SET status=?, output=?, completed_at=NOW(), duration_ms=? WHERE id=? AND status=?",
		status, output, durationMS, id, model.RunRunning)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Recent returns the latest runs joined with their workflow name. When
// userID is zero the query is global (admin dashboard); otherwise it is
// scoped to the requester.
func (r *RunRepo) Recent(ctx context.Context, userID uint64, limit int) ([]model.WorkflowRun, error) {
	q := `SELECT wr.id, wr.workflow_id, w.name, wr.user_id, wr.status,
		wr.input, wr.output, wr.started_at, wr.completed_at, wr.duration_ms, wr.created_at
		FROM workflow_runs wr
		JOIN workflows w ON wr.workflow_id = w.id`
	args := []interface{}{}
	if userID != 0 {
		q += " WHERE wr.user_id=?"
		args = append(args, userID)
	}
	q += " ORDER BY wr.created_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []model.WorkflowRun{}
	for rows.Next() {
		var run model.WorkflowRun
		var input, output sql.NullString
		var started, completed sql.NullTime
		var duration sql.NullInt64
		if err := rows.Scan(&run.ID, &run.WorkflowID, &run.WorkflowName, &run.UserID, &run.Status,
			&input, &output, &started, &completed, &duration, &run.CreatedAt); err != nil {
			return nil, err
		}
		run.Input = input.String
		run.Output = output.String
		if started.Valid {
			t := started.Time
			run.StartedAt = &t
		}
		if completed.Valid {
			t := completed.Time
			run.CompletedAt = &t
		}
		if duration.Valid {
			d := duration.Int64
			run.DurationMS = &d
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
