package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/dashon1/creatorflow-studio/internal/model"
)

// UserRepo persists the 'users' table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a new user with role "user" and status "active" and
// returns its ID. The password must already be hashed by the caller.
func (r *UserRepo) Create(ctx context.Context, email, name, passwordHash string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, name, password_hash, role, status) VALUES (?,?,?,?,?)",
		email, name, passwordHash, model.RoleUser, model.StatusActive)
	if err != nil {
		// MySQL duplicate-key error on the unique email index
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// EmailTaken reports whether a user with the given email already exists.
func (r *UserRepo) EmailTaken(ctx context.Context, email string) (bool, error) {
	var id uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM users WHERE email=? LIMIT 1", email).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetByEmail fetches a full user row, including the password hash, for
// credential verification at login.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,name,password_hash,role,status,created_at,updated_at FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetAuthUser loads the identity columns for an authenticated request:
// exactly id, email, name and role. The password hash is never re-fetched
// here. sql.ErrNoRows means the token's subject no longer exists.
func (r *UserRepo) GetAuthUser(ctx context.Context, id uint64) (model.AuthUser, error) {
	var u model.AuthUser
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,name,role FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Email, &u.Name, &u.Role)
	return u, err
}

// AdminUser is the row shape returned to the admin user list.
type AdminUser struct {
	ID        uint64    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ListAll returns every user, newest first. No pagination: the admin
// surface is small and matches the original dashboard.
func (r *UserRepo) ListAll(ctx context.Context) ([]AdminUser, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,email,name,role,status,created_at FROM users ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []AdminUser{}
	for rows.Next() {
		var u AdminUser
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.Status, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateRoleStatus updates the role and/or status of a user. Nil fields
// are left untouched; the caller guarantees at least one is set and that
// the values are valid enum members.
func (r *UserRepo) UpdateRoleStatus(ctx context.Context, id uint64, role, status *string) error {
	sets := []string{}
	args := []interface{}{}
	if role != nil {
		sets = append(sets, "role=?")
		args = append(args, *role)
	}
	if status != nil {
		sets = append(sets, "status=?")
		args = append(args, *status)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET "+strings.Join(sets, ", ")+", updated_at=NOW() WHERE id=?",
		args...)
	return err
}
