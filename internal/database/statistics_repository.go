package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/synapz/pkg/models"
)

// StatisticsRepository aggregates review counters
type StatisticsRepository struct {
	db sqlx.ExtContext
}

// NewStatisticsRepository creates a new repository instance
func NewStatisticsRepository(db sqlx.ExtContext) *StatisticsRepository {
	return &StatisticsRepository{db: db}
}

// ReviewStats sums the review counters of a user's saved facts. DueToday counts
// facts scheduled at or before dueBefore.
func (r *StatisticsRepository) ReviewStats(ctx context.Context, userID string, dueBefore time.Time) (models.ReviewStats, error) {
	var stats models.ReviewStats
	query := `
		SELECT
			COUNT(*) AS total_saved,
			COALESCE(SUM(CASE WHEN next_review_date <= ? THEN 1 ELSE 0 END), 0) AS due_today,
			COALESCE(SUM(times_reviewed), 0) AS total_reviews,
			COALESCE(SUM(times_remembered), 0) AS total_remembered,
			COALESCE(SUM(times_forgot), 0) AS total_forgot
		FROM saved_facts
		WHERE user_id = ?
	`
	if err := sqlx.GetContext(ctx, r.db, &stats, r.db.Rebind(query), utc(dueBefore), userID); err != nil {
		return models.ReviewStats{}, fmt.Errorf("failed to get review statistics: %w", err)
	}
	return stats, nil
}
