package domain

import (
	"context"
	"encoding/json"
	"time"
)

// Activity is a single entry in a user's activity log. Body is an
// arbitrary JSON document supplied by the client; it is stored as-is
// and never interpreted by the server.
type Activity struct {
	ID        int64
	UserID    int64
	Body      json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ActivityRepository defines persistence operations for activities.
// Listing is always scoped to a single owner.
type ActivityRepository interface {
	Create(ctx context.Context, activity *Activity) error
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]Activity, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
}
