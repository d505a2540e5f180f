package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/example/synapz/pkg/models"
)

// ActivityRepository handles the append-only user activity log
type ActivityRepository struct {
	db sqlx.ExtContext
}

// NewActivityRepository creates a new repository instance
func NewActivityRepository(db sqlx.ExtContext) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Create appends an activity
func (r *ActivityRepository) Create(ctx context.Context, a *models.Activity) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	a.CreatedAt = utc(a.CreatedAt)
	if a.Metadata == nil {
		a.Metadata = models.Metadata{}
	}

	query := `
		INSERT INTO user_activities (
			id, user_id, activity_type, points, xp, reference_id, metadata, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		a.ID, a.UserID, a.ActivityType, a.Points, a.XP, a.ReferenceID, a.Metadata, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

// ExistsSince reports whether the user has an activity of the given type
// referencing referenceID created at or after since.
func (r *ActivityRepository) ExistsSince(ctx context.Context, userID string, activityType models.ActivityType, referenceID string, since time.Time) (bool, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM user_activities
		WHERE user_id = ? AND activity_type = ? AND reference_id = ? AND created_at >= ?
	`
	err := sqlx.GetContext(ctx, r.db, &count, r.db.Rebind(query), userID, activityType, referenceID, utc(since))
	if err != nil {
		return false, fmt.Errorf("failed to check activity: %w", err)
	}
	return count > 0, nil
}

// ListRecent returns the latest activities of a user, newest first
func (r *ActivityRepository) ListRecent(ctx context.Context, userID string, limit int) ([]models.Activity, error) {
	activities := []models.Activity{}
	query := `
		SELECT id, user_id, activity_type, points, xp, reference_id, metadata, created_at
		FROM user_activities
		WHERE user_id = ?
		ORDER BY created_at DESC, id
		LIMIT ?
	`
	if err := sqlx.SelectContext(ctx, r.db, &activities, r.db.Rebind(query), userID, limit); err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}
