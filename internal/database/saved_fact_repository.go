package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/example/synapz/pkg/models"
)

const savedFactColumns = `sf.id, sf.user_id, sf.fact_id, sf.interval_days, sf.ease_factor,
	sf.next_review_date, sf.times_reviewed, sf.times_remembered, sf.times_forgot,
	sf.last_reviewed_at, sf.created_at`

// Joined fact columns are aliased into the nested "fact" struct
const joinedFactColumns = `f.id AS "fact.id", f.title AS "fact.title", f.text AS "fact.text",
	f.text_hash AS "fact.text_hash", f.category AS "fact.category", f.source AS "fact.source",
	f.image_url AS "fact.image_url", f.keywords AS "fact.keywords", f.author_id AS "fact.author_id",
	f.is_published AS "fact.is_published", f.created_at AS "fact.created_at"`

// SavedFactRepository handles database operations for saved facts and their review schedule
type SavedFactRepository struct {
	db sqlx.ExtContext
}

// NewSavedFactRepository creates a new repository instance
func NewSavedFactRepository(db sqlx.ExtContext) *SavedFactRepository {
	return &SavedFactRepository{db: db}
}

// Create inserts a saved fact. ErrDuplicate is returned if the user already saved the fact.
func (r *SavedFactRepository) Create(ctx context.Context, sf *models.SavedFact) error {
	if sf.ID == "" {
		sf.ID = uuid.NewString()
	}
	if sf.CreatedAt.IsZero() {
		sf.CreatedAt = time.Now()
	}
	sf.CreatedAt = utc(sf.CreatedAt)
	sf.NextReviewDate = utc(sf.NextReviewDate)

	query := `
		INSERT INTO saved_facts (
			id, user_id, fact_id, interval_days, ease_factor, next_review_date,
			times_reviewed, times_remembered, times_forgot, last_reviewed_at, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		sf.ID, sf.UserID, sf.FactID, sf.Interval, sf.EaseFactor, sf.NextReviewDate,
		sf.TimesReviewed, sf.TimesRemembered, sf.TimesForgot, utcPtr(sf.LastReviewedAt), sf.CreatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to save fact: %w", err)
	}
	return nil
}

// GetByUserAndFact returns the saved fact of a user for a fact
func (r *SavedFactRepository) GetByUserAndFact(ctx context.Context, userID, factID string) (*models.SavedFact, error) {
	return r.getOne(ctx, "sf.user_id = ? AND sf.fact_id = ?", userID, factID)
}

// GetForUser returns a saved fact by ID if it belongs to the user
func (r *SavedFactRepository) GetForUser(ctx context.Context, id, userID string) (*models.SavedFact, error) {
	return r.getOne(ctx, "sf.id = ? AND sf.user_id = ?", id, userID)
}

func (r *SavedFactRepository) getOne(ctx context.Context, where string, args ...interface{}) (*models.SavedFact, error) {
	var sf models.SavedFact
	query := "SELECT " + savedFactColumns + " FROM saved_facts sf WHERE " + where
	if err := sqlx.GetContext(ctx, r.db, &sf, r.db.Rebind(query), args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get saved fact: %w", err)
	}
	return &sf, nil
}

// Delete removes a saved fact
func (r *SavedFactRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM saved_facts WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete saved fact: %w", err)
	}
	return expectRow(result)
}

// UpdateSchedule stores the result of a review
func (r *SavedFactRepository) UpdateSchedule(ctx context.Context, sf *models.SavedFact) error {
	query := `
		UPDATE saved_facts SET
			interval_days = ?,
			ease_factor = ?,
			next_review_date = ?,
			times_reviewed = ?,
			times_remembered = ?,
			times_forgot = ?,
			last_reviewed_at = ?
		WHERE id = ? AND user_id = ?
	`
	result, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		sf.Interval, sf.EaseFactor, utc(sf.NextReviewDate),
		sf.TimesReviewed, sf.TimesRemembered, sf.TimesForgot, utcPtr(sf.LastReviewedAt),
		sf.ID, sf.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update saved fact: %w", err)
	}
	return expectRow(result)
}

// CountByUser returns how many facts the user has saved
func (r *SavedFactRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM saved_facts WHERE user_id = ?"
	if err := sqlx.GetContext(ctx, r.db, &count, r.db.Rebind(query), userID); err != nil {
		return 0, fmt.Errorf("failed to count saved facts: %w", err)
	}
	return count, nil
}

// ListByUser returns the user's saved facts newest first. A non-empty search
// matches title, text or category case-insensitively.
func (r *SavedFactRepository) ListByUser(ctx context.Context, userID, search string) ([]models.SavedFactWithFact, error) {
	where := "sf.user_id = ?"
	args := []interface{}{userID}
	if search = strings.TrimSpace(search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		where += " AND (LOWER(f.title) LIKE ? OR LOWER(f.text) LIKE ? OR LOWER(f.category) LIKE ?)"
		args = append(args, pattern, pattern, pattern)
	}
	return r.listJoined(ctx, where, "sf.created_at DESC, sf.id", args...)
}

// ListDue returns the user's saved facts scheduled at or before the given time, oldest first
func (r *SavedFactRepository) ListDue(ctx context.Context, userID string, before time.Time) ([]models.SavedFactWithFact, error) {
	return r.listJoined(ctx, "sf.user_id = ? AND sf.next_review_date <= ?", "sf.next_review_date ASC, sf.id", userID, utc(before))
}

func (r *SavedFactRepository) listJoined(ctx context.Context, where, order string, args ...interface{}) ([]models.SavedFactWithFact, error) {
	query := "SELECT " + savedFactColumns + ", " + joinedFactColumns + `
		FROM saved_facts sf
		JOIN facts f ON f.id = sf.fact_id
		WHERE ` + where + `
		ORDER BY ` + order
	saved := []models.SavedFactWithFact{}
	if err := sqlx.SelectContext(ctx, r.db, &saved, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list saved facts: %w", err)
	}
	return saved, nil
}

// CountDue returns how many saved facts of the user are scheduled at or before the given time
func (r *SavedFactRepository) CountDue(ctx context.Context, userID string, before time.Time) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM saved_facts WHERE user_id = ? AND next_review_date <= ?"
	if err := sqlx.GetContext(ctx, r.db, &count, r.db.Rebind(query), userID, utc(before)); err != nil {
		return 0, fmt.Errorf("failed to count due facts: %w", err)
	}
	return count, nil
}

// SavedFactIDs returns which of the given fact IDs the user has saved
func (r *SavedFactRepository) SavedFactIDs(ctx context.Context, userID string, factIDs []string) (map[string]bool, error) {
	saved := make(map[string]bool)
	if len(factIDs) == 0 {
		return saved, nil
	}

	query, args, err := sqlx.In("SELECT fact_id FROM saved_facts WHERE user_id = ? AND fact_id IN (?)", userID, factIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build saved facts query: %w", err)
	}
	var ids []string
	if err := sqlx.SelectContext(ctx, r.db, &ids, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get saved fact ids: %w", err)
	}
	for _, id := range ids {
		saved[id] = true
	}
	return saved, nil
}
