package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MehdiShad/CardexPro/internal/domain"
)

// UserRepository implements domain.UserRepository using SQLite.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new SQLite-backed UserRepository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db.SqlDB}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO users (email, first_name, last_name, is_active, is_admin, is_superuser, password_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.Email, user.FirstName, user.LastName, user.IsActive, user.IsAdmin, user.IsSuperuser, user.PasswordHash, now, now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

const userColumns = `id, email, first_name, last_name, is_active, is_admin, is_superuser, password_hash, created_at, updated_at`

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	user := &domain.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.FirstName, &user.LastName,
		&user.IsActive, &user.IsAdmin, &user.IsSuperuser,
		&user.PasswordHash, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return user, nil
}

// UpdateFields writes only the named columns of the user row, plus
// updated_at. Unknown field names are rejected before touching the
// database so a partial write can never clobber unrelated columns.
func (r *UserRepository) UpdateFields(ctx context.Context, user *domain.User, fields []string) error {
	if len(fields) == 0 {
		return nil
	}

	now := time.Now().UTC()
	assignments := make([]string, 0, len(fields)+1)
	args := make([]any, 0, len(fields)+2)

	for _, field := range fields {
		value, err := userColumnValue(user, field)
		if err != nil {
			return err
		}
		assignments = append(assignments, field+" = ?")
		args = append(args, value)
	}
	assignments = append(assignments, "updated_at = ?")
	args = append(args, now, user.ID)

	result, err := r.db.ExecContext(ctx,
		"UPDATE users SET "+strings.Join(assignments, ", ")+" WHERE id = ?", args...)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("update user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	user.UpdatedAt = now
	return nil
}

// userColumnValue maps a column name to the corresponding struct field.
// The column set is fixed; there is no reflection.
func userColumnValue(user *domain.User, field string) (any, error) {
	switch field {
	case "email":
		return user.Email, nil
	case "first_name":
		return user.FirstName, nil
	case "last_name":
		return user.LastName, nil
	case "is_active":
		return user.IsActive, nil
	case "is_admin":
		return user.IsAdmin, nil
	case "is_superuser":
		return user.IsSuperuser, nil
	case "password_hash":
		return user.PasswordHash, nil
	default:
		return nil, fmt.Errorf("%w: unknown user field %q", domain.ErrInvalidInput, field)
	}
}

// isUniqueConstraintError checks if the error is a SQLite unique
// constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "unique constraint")
}
