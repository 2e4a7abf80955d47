package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MehdiShad/CardexPro/internal/domain"
)

// ActivityRepository implements domain.ActivityRepository using SQLite.
type ActivityRepository struct {
	db *sql.DB
}

// NewActivityRepository creates a new SQLite-backed ActivityRepository.
func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db.SqlDB}
}

func (r *ActivityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	now := time.Now().UTC()

	var body any
	if activity.Body != nil {
		body = string(activity.Body)
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO activities (user_id, body, created_at, updated_at)
		 VALUES (?, ?, ?, ?)`,
		activity.UserID, body, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	activity.ID = id
	activity.CreatedAt = now
	activity.UpdatedAt = now
	return nil
}

// ListByUser returns the user's activities in insertion order.
func (r *ActivityRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Activity, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, body, created_at, updated_at
		 FROM activities WHERE user_id = ?
		 ORDER BY id LIMIT ? OFFSET ?`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("query activities: %w", err)
	}
	defer rows.Close()

	var activities []domain.Activity
	for rows.Next() {
		var a domain.Activity
		var body sql.NullString
		if err := rows.Scan(&a.ID, &a.UserID, &body, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		if body.Valid {
			a.Body = json.RawMessage(body.String)
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

func (r *ActivityRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM activities WHERE user_id = ?`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count activities: %w", err)
	}
	return count, nil
}
