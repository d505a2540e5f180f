package models

import "time"

// User represents a registered account together with its gamification progress
type User struct {
	ID             string    `json:"id" db:"id"`
	Username       string    `json:"username" db:"username"`
	Email          string    `json:"email" db:"email"`
	PasswordHash   string    `json:"-" db:"password_hash"`
	IsAdmin        bool      `json:"is_admin" db:"is_admin"`
	TelegramChatID *int64    `json:"telegram_chat_id,omitempty" db:"telegram_chat_id"` // Linked Telegram chat for reminders
	ReminderHour   int       `json:"reminder_hour" db:"reminder_hour"`                 // Hour of day for reminders (0-23)
	CreatedAt      time.Time `json:"created_at" db:"created_at"`

	UserProgress
}
