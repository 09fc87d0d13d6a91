package repository

import (
	"context"
	"database/sql"

	"github.com/dashon1/creatorflow-studio/internal/model"
)

// WorkflowRepo persists the 'workflows' table.
type WorkflowRepo struct{ DB *sql.DB }

func NewWorkflowRepo(db *sql.DB) *WorkflowRepo { return &WorkflowRepo{DB: db} }

// Create inserts a workflow for the given owner and returns its ID.
func (r *WorkflowRepo) Create(ctx context.Context, userID uint64, name, description, wfType, config string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO workflows (user_id, name, description, type, config) VALUES (?,?,?,?,?)",
		userID, name, nullable(description), wfType, config)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListByUser returns the caller's workflows, newest first.
func (r *WorkflowRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Workflow, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,description,type,status,runs_count,last_run_at,created_at FROM workflows WHERE user_id=? ORDER BY created_at DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.Workflow{}
	for rows.Next() {
		var w model.Workflow
		var desc sql.NullString
		var lastRun sql.NullTime
		if err := rows.Scan(&w.ID, &w.Name, &desc, &w.Type, &w.Status, &w.RunsCount, &lastRun, &w.CreatedAt); err != nil {
			return nil, err
		}
		w.Description = desc.String
		if lastRun.Valid {
			t := lastRun.Time
			w.LastRunAt = &t
		}
		items = append(items, w)
	}
	return items, rows.Err()
}

// Owned reports whether the workflow exists and belongs to userID.
func (r *WorkflowRepo) Owned(ctx context.Context, id, userID uint64) (bool, error) {
	var found uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM workflows WHERE id=? AND user_id=? LIMIT 1", id, userID).Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// MarkRun bumps the run counter and last-run timestamp after a run has
// been recorded.
func (r *WorkflowRepo) MarkRun(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE workflows SET runs_count = runs_count + 1, last_run_at = NOW() WHERE id=?", id)
	return err
}
