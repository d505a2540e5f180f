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

const userColumns = `id, username, email, password_hash, is_admin, telegram_chat_id, reminder_hour,
	total_xp, level, total_points, streak_count, longest_streak, facts_read, facts_saved,
	wiki_clicks, badges, last_active, last_login, created_at`

// UserRepository handles database operations for users
type UserRepository struct {
	db sqlx.ExtContext
}

// NewUserRepository creates a new repository instance
func NewUserRepository(db sqlx.ExtContext) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. A missing ID or creation time is filled in.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	user.CreatedAt = utc(user.CreatedAt)
	if user.Level < 1 {
		user.Level = 1
	}
	if user.Badges == nil {
		user.Badges = models.StringList{}
	}

	query := `INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		user.ID, user.Username, user.Email, user.PasswordHash, user.IsAdmin,
		user.TelegramChatID, user.ReminderHour,
		user.TotalXP, user.Level, user.TotalPoints, user.StreakCount, user.LongestStreak,
		user.FactsRead, user.FactsSaved, user.WikiClicks, user.Badges,
		utcPtr(user.LastActive), utcPtr(user.LastLogin), user.CreatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID returns a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, "id = ?", "", id)
}

// GetByIDForUpdate returns a user by ID and locks the row until the end of the
// transaction where the database supports it.
func (r *UserRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.User, error) {
	suffix := ""
	if isPostgres(r.db) {
		suffix = " FOR UPDATE"
	}
	return r.getOne(ctx, "id = ?", suffix, id)
}

// GetByEmail returns a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, "email = ?", "", email)
}

// GetByTelegramChatID returns the user linked to a Telegram chat
func (r *UserRepository) GetByTelegramChatID(ctx context.Context, chatID int64) (*models.User, error) {
	return r.getOne(ctx, "telegram_chat_id = ?", "", chatID)
}

func (r *UserRepository) getOne(ctx context.Context, where, suffix string, arg interface{}) (*models.User, error) {
	var user models.User
	query := "SELECT " + userColumns + " FROM users WHERE " + where + suffix
	if err := sqlx.GetContext(ctx, r.db, &user, r.db.Rebind(query), arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// ExistsByEmailOrUsername reports whether the email or the username is taken
func (r *UserRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM users WHERE email = ? OR username = ?"
	if err := sqlx.GetContext(ctx, r.db, &count, r.db.Rebind(query), email, username); err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return count > 0, nil
}

// UpdateProgress overwrites the gamification counters of a user
func (r *UserRepository) UpdateProgress(ctx context.Context, id string, p models.UserProgress) error {
	if p.Badges == nil {
		p.Badges = models.StringList{}
	}
	query := `
		UPDATE users SET
			total_xp = ?, level = ?, total_points = ?,
			streak_count = ?, longest_streak = ?,
			facts_read = ?, facts_saved = ?, wiki_clicks = ?,
			badges = ?, last_active = ?, last_login = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		p.TotalXP, p.Level, p.TotalPoints,
		p.StreakCount, p.LongestStreak,
		p.FactsRead, p.FactsSaved, p.WikiClicks,
		p.Badges, utcPtr(p.LastActive), utcPtr(p.LastLogin),
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to update user progress: %w", err)
	}
	return expectRow(result)
}

// UpdateNotifications sets the Telegram chat and reminder hour of a user
func (r *UserRepository) UpdateNotifications(ctx context.Context, id string, chatID *int64, hour int) error {
	query := "UPDATE users SET telegram_chat_id = ?, reminder_hour = ? WHERE id = ?"
	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), chatID, hour, id)
	if err != nil {
		if IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to update notifications: %w", err)
	}
	return expectRow(result)
}

// ListForReminder returns users with a linked Telegram chat whose reminder hour matches
func (r *UserRepository) ListForReminder(ctx context.Context, hour int) ([]models.User, error) {
	var users []models.User
	query := "SELECT " + userColumns + " FROM users WHERE telegram_chat_id IS NOT NULL AND reminder_hour = ? ORDER BY created_at"
	if err := sqlx.SelectContext(ctx, r.db, &users, r.db.Rebind(query), hour); err != nil {
		return nil, fmt.Errorf("failed to list users for reminder: %w", err)
	}
	return users, nil
}
