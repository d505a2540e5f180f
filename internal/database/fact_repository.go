package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/example/synapz/pkg/models"
)

const factColumns = `f.id, f.title, f.text, f.text_hash, f.category, f.source, f.image_url,
	f.keywords, f.author_id, f.is_published, f.created_at`

// FactFilter narrows a fact listing
type FactFilter struct {
	Category string
	Limit    int
	Offset   int
}

// FactRepository handles database operations for facts
type FactRepository struct {
	db sqlx.ExtContext
}

// NewFactRepository creates a new repository instance
func NewFactRepository(db sqlx.ExtContext) *FactRepository {
	return &FactRepository{db: db}
}

// Create inserts a new fact. ErrDuplicate is returned when the title is taken.
func (r *FactRepository) Create(ctx context.Context, fact *models.Fact) error {
	if fact.ID == "" {
		fact.ID = uuid.NewString()
	}
	if fact.CreatedAt.IsZero() {
		fact.CreatedAt = time.Now()
	}
	fact.CreatedAt = utc(fact.CreatedAt)
	if fact.Keywords == nil {
		fact.Keywords = models.StringList{}
	}

	query := `
		INSERT INTO facts (
			id, title, text, text_hash, category, source, image_url,
			keywords, author_id, is_published, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		fact.ID, fact.Title, fact.Text, fact.TextHash, fact.Category, fact.Source, fact.ImageURL,
		fact.Keywords, fact.AuthorID, fact.IsPublished, fact.CreatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create fact: %w", err)
	}
	return nil
}

// GetByID returns a fact by ID
func (r *FactRepository) GetByID(ctx context.Context, id string) (*models.Fact, error) {
	var fact models.Fact
	query := "SELECT " + factColumns + " FROM facts f WHERE f.id = ?"
	if err := sqlx.GetContext(ctx, r.db, &fact, r.db.Rebind(query), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get fact: %w", err)
	}
	return &fact, nil
}

// ExistsByTitle reports whether a fact with exactly this title exists
func (r *FactRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM facts WHERE title = ?"
	if err := sqlx.GetContext(ctx, r.db, &count, r.db.Rebind(query), title); err != nil {
		return false, fmt.Errorf("failed to check fact title: %w", err)
	}
	return count > 0, nil
}

// ExistingTitles returns the subset of titles that already exist
func (r *FactRepository) ExistingTitles(ctx context.Context, titles []string) (map[string]bool, error) {
	found := make(map[string]bool)
	if len(titles) == 0 {
		return found, nil
	}

	query, args, err := sqlx.In("SELECT title FROM facts WHERE title IN (?)", titles)
	if err != nil {
		return nil, fmt.Errorf("failed to build title query: %w", err)
	}
	var existing []string
	if err := sqlx.SelectContext(ctx, r.db, &existing, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to check fact titles: %w", err)
	}
	for _, t := range existing {
		found[t] = true
	}
	return found, nil
}

// List returns published facts newest first together with the total matching count
func (r *FactRepository) List(ctx context.Context, filter FactFilter) ([]models.FactWithAuthor, int, error) {
	where := "WHERE f.is_published = ?"
	args := []interface{}{true}
	if filter.Category != "" {
		where += " AND f.category = ?"
		args = append(args, filter.Category)
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM facts f " + where
	if err := sqlx.GetContext(ctx, r.db, &total, r.db.Rebind(countQuery), args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count facts: %w", err)
	}

	query := "SELECT " + factColumns + `, u.username AS author_username
		FROM facts f
		LEFT JOIN users u ON u.id = f.author_id
		` + where + `
		ORDER BY f.created_at DESC, f.id
		LIMIT ? OFFSET ?`
	args = append(args, filter.Limit, filter.Offset)

	facts := []models.FactWithAuthor{}
	if err := sqlx.SelectContext(ctx, r.db, &facts, r.db.Rebind(query), args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list facts: %w", err)
	}
	return facts, total, nil
}

// Recent returns the most recently created facts
func (r *FactRepository) Recent(ctx context.Context, limit int) ([]models.Fact, error) {
	facts := []models.Fact{}
	query := "SELECT " + factColumns + " FROM facts f ORDER BY f.created_at DESC, f.id LIMIT ?"
	if err := sqlx.SelectContext(ctx, r.db, &facts, r.db.Rebind(query), limit); err != nil {
		return nil, fmt.Errorf("failed to get recent facts: %w", err)
	}
	return facts, nil
}

// Count returns the total number of facts
func (r *FactRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := sqlx.GetContext(ctx, r.db, &count, "SELECT COUNT(*) FROM facts"); err != nil {
		return 0, fmt.Errorf("failed to count facts: %w", err)
	}
	return count, nil
}

// CountByCategory returns the number of facts per category, largest first
func (r *FactRepository) CountByCategory(ctx context.Context) ([]models.CategoryCount, error) {
	counts := []models.CategoryCount{}
	query := `
		SELECT category, COUNT(*) AS count
		FROM facts
		GROUP BY category
		ORDER BY count DESC, category
	`
	if err := sqlx.SelectContext(ctx, r.db, &counts, query); err != nil {
		return nil, fmt.Errorf("failed to count facts by category: %w", err)
	}
	return counts, nil
}

// CountByAuthor returns how many facts a user has written
func (r *FactRepository) CountByAuthor(ctx context.Context, authorID string) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM facts WHERE author_id = ?"
	if err := sqlx.GetContext(ctx, r.db, &count, r.db.Rebind(query), authorID); err != nil {
		return 0, fmt.Errorf("failed to count facts by author: %w", err)
	}
	return count, nil
}
