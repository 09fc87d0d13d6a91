package model

// DashboardStats aggregates usage counters for the dashboard endpoint.
// For non-admin users the counts are scoped to the requester and
// TotalUsers is always zero.
type DashboardStats struct {
	TotalWorkflows    uint64 `json:"total_workflows"`
	TotalRuns         uint64 `json:"total_runs"`
	TotalIntegrations uint64 `json:"total_integrations"`
	TotalUsers        uint64 `json:"total_users"`
}
