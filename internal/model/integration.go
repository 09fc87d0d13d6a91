package model

import "time"

// Integration is a per-user connection to an external provider. API
// credentials are write-only: list responses never include them.
type Integration struct {
	ID         uint64     `json:"id"`
	UserID     uint64     `json:"-"`
	Provider   string     `json:"provider"`
	Name       string     `json:"name"`
	APIKey     string     `json:"-"`
	APISecret  string     `json:"-"`
	Config     string     `json:"-"` // JSON blob as stored
	Status     string     `json:"status"`
	LastSyncAt *time.Time `json:"last_sync_at"`
	CreatedAt  time.Time  `json:"created_at"`
}
