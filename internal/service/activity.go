package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MehdiShad/CardexPro/internal/domain"
)

// ActivityService handles creation and listing of per-user activity
// log entries.
type ActivityService struct {
	activities domain.ActivityRepository
}

// NewActivityService creates a new ActivityService.
func NewActivityService(activities domain.ActivityRepository) *ActivityService {
	return &ActivityService{activities: activities}
}

// Create stores a new activity owned by the given user. The body is an
// arbitrary JSON document and is persisted verbatim.
func (s *ActivityService) Create(ctx context.Context, user *domain.User, body json.RawMessage) (*domain.Activity, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: body is required", domain.ErrInvalidInput)
	}

	activity := &domain.Activity{
		UserID: user.ID,
		Body:   body,
	}
	if err := s.activities.Create(ctx, activity); err != nil {
		return nil, fmt.Errorf("create activity: %w", err)
	}
	return activity, nil
}

// ListByUser returns one page of the user's activities in insertion
// order, plus the total count for pagination.
func (s *ActivityService) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Activity, int, error) {
	count, err := s.activities.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("count activities: %w", err)
	}

	activities, err := s.activities.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list activities: %w", err)
	}
	return activities, count, nil
}
