package hospitaldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ErrUserNotFound is returned when no account matches the given email
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateEmail is returned when an insert hits the unique email
// constraint.
var ErrDuplicateEmail = errors.New("email already registered")

// UserExists reports whether an account with the given email is registered
func (c *Client) UserExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := c.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return exists, nil
}

// InsertUser stores a new account with an already-hashed password.
// Returns ErrDuplicateEmail when the email is already registered, so
// concurrent signups racing past the existence check still get the
// duplicate answer rather than a bare constraint violation.
func (c *Client) InsertUser(ctx context.Context, id, email, passwordHash string) error {
	_, err := c.DB.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash) VALUES (?, ?, ?)`,
		id, email, passwordHash)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetUserByEmail fetches an account by email. Returns ErrUserNotFound when
// no account matches.
func (c *Client) GetUserByEmail(ctx context.Context, email string) (UserRow, error) {
	var u UserRow
	err := c.DB.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at FROM users WHERE email = ?`, email).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return UserRow{}, ErrUserNotFound
	}
	if err != nil {
		return UserRow{}, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}
