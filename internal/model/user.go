package model

import "time"

// Roles a user can hold. Registration always assigns RoleUser; promotion
// happens only through the admin endpoints.
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// Account statuses.
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

// ValidRole reports whether s is one of the known role values.
func ValidRole(s string) bool {
	return s == RoleUser || s == RoleAdmin || s == RoleSuperAdmin
}

// ValidStatus reports whether s is one of the known status values.
func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusInactive || s == StatusSuspended
}

// User mirrors a row of the `users` table. The password hash stays inside
// the repository/handler layers and is never serialized; response payloads
// use AuthUser or handler-local DTOs instead.
type User struct {
	ID           uint64
	Email        string
	Name         string
	PasswordHash string
	Role         string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AuthUser is the closed per-request identity bound into the request
// context by the authentication middleware. It carries exactly the columns
// the resolver loads for authorization and display.
type AuthUser struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// IsAdmin reports whether the identity may pass the admin gate.
func (u AuthUser) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}
