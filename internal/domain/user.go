package domain

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// User represents a registered account. Email is the login identity and
// is stored lowercase. An empty PasswordHash means the account has no
// usable password (e.g. created without one by an administrator).
type User struct {
	ID           int64
	Email        string
	FirstName    string
	LastName     string
	IsActive     bool
	IsAdmin      bool
	IsSuperuser  bool
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasUsablePassword reports whether the user can authenticate with a password.
func (u *User) HasUsablePassword() bool {
	return u.PasswordHash != ""
}

// Validate checks model-level invariants. It runs before any write,
// including partial updates.
func (u *User) Validate() error {
	if u.Email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if len(u.Email) > 255 {
		return fmt.Errorf("%w: email must be at most 255 characters", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	}
	if u.Email != strings.ToLower(u.Email) {
		return fmt.Errorf("%w: email must be lowercase", ErrInvalidInput)
	}
	if len(u.FirstName) > 255 {
		return fmt.Errorf("%w: first name must be at most 255 characters", ErrInvalidInput)
	}
	if len(u.LastName) > 255 {
		return fmt.Errorf("%w: last name must be at most 255 characters", ErrInvalidInput)
	}
	return nil
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// UpdateFields writes only the named fields of the user row.
	// Field names are column names (e.g. "first_name").
	UpdateFields(ctx context.Context, user *User, fields []string) error
}
