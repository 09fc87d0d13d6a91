package repository

import (
	"context"
	"database/sql"

	"github.com/dashon1/creatorflow-studio/internal/model"
)

// AnalyticsRepo persists tracked events and answers the dashboard
// counting queries.
type AnalyticsRepo struct{ DB *sql.DB }

func NewAnalyticsRepo(db *sql.DB) *AnalyticsRepo { return &AnalyticsRepo{DB: db} }

// InsertEvent records a single analytics event. IP and user agent may be
// empty when the client or proxy does not supply them.
func (r *AnalyticsRepo) InsertEvent(ctx context.Context, userID uint64, eventType, eventData, ip, userAgent string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO analytics (user_id, event_type, event_data, ip_address, user_agent) VALUES (?,?,?,?,?)",
		userID, eventType, eventData, nullable(ip), nullable(userAgent))
	return err
}

// GlobalStats counts workflows, runs, integrations and plain users across
// all tenants. Admin dashboards only.
func (r *AnalyticsRepo) GlobalStats(ctx context.Context) (model.DashboardStats, error) {
	var s model.DashboardStats
	err := r.DB.QueryRowContext(ctx, `SELECT
		(SELECT COUNT(*) FROM workflows),
		(SELECT COUNT(*) FROM workflow_runs),
		(SELECT COUNT(*) FROM integrations),
		(SELECT COUNT(*) FROM users WHERE role=?)`,
		model.RoleUser).Scan(&s.TotalWorkflows, &s.TotalRuns, &s.TotalIntegrations, &s.TotalUsers)
	return s, err
}

// UserStats counts the requester's own workflows, runs and integrations.
// TotalUsers is always zero for non-admins.
func (r *AnalyticsRepo) UserStats(ctx context.Context, userID uint64) (model.DashboardStats, error) {
	var s model.DashboardStats
	err := r.DB.QueryRowContext(ctx, `SELECT
		(SELECT COUNT(*) FROM workflows WHERE user_id=?),
		(SELECT COUNT(*) FROM workflow_runs WHERE user_id=?),
		(SELECT COUNT(*) FROM integrations WHERE user_id=?)`,
		userID, userID, userID).Scan(&s.TotalWorkflows, &s.TotalRuns, &s.TotalIntegrations)
	return s, err
}
