// Package repository implements the storage layer on top of database/sql.
// Sentinel errors let handlers map failures to specific HTTP responses
// without inspecting driver error strings themselves.
package repository

import "errors"

// ErrEmailExists is returned when registering an email that is already
// taken. Handlers translate this into a 400 response.
var ErrEmailExists = errors.New("email already exists")

// ErrNotFound is returned when a lookup matches no row, or an update
// touches a row the caller does not own.
var ErrNotFound = errors.New("not found")
