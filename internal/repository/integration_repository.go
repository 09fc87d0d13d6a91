package repository

import (
	"context"
	"database/sql"

	"github.com/dashon1/creatorflow-studio/internal/model"
)

// IntegrationRepo persists the 'integrations' table. Every query is scoped
// by owner: a user can only ever see or delete their own integrations.
type IntegrationRepo struct{ DB *sql.DB }

func NewIntegrationRepo(db *sql.DB) *IntegrationRepo { return &IntegrationRepo{DB: db} }

// Create inserts a new integration and returns its ID. Credentials and
// config arrive already serialized; empty strings store as NULL.
func (r *IntegrationRepo) Create(ctx context.Context, userID uint64, provider, name, apiKey, apiSecret, config string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO integrations (user_id, provider, name, api_key, api_secret, config) VALUES (?,?,?,?,?,?)",
		userID, provider, name, nullable(apiKey), nullable(apiSecret), config)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListByUser returns the caller's integrations, newest first. Credential
// columns are deliberately not selected.
func (r *IntegrationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Integration, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,provider,name,status,last_sync_at,created_at FROM integrations WHERE user_id=? ORDER BY created_at DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.Integration{}
	for rows.Next() {
		var it model.Integration
		var lastSync sql.NullTime
		if err := rows.Scan(&it.ID, &it.Provider, &it.Name, &it.Status, &lastSync, &it.CreatedAt); err != nil {
			return nil, err
		}
		if lastSync.Valid {
			t := lastSync.Time
			it.LastSyncAt = &t
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Delete removes an integration owned by userID. Deleting someone else's
// integration (or a missing one) is a no-op, as in the original service.
func (r *IntegrationRepo) Delete(ctx context.Context, id, userID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM integrations WHERE id=? AND user_id=?", id, userID)
	return err
}

// nullable maps an empty string to NULL for optional text columns.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
