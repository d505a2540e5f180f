package models

import "time"

// ActivityType identifies a gamified user action
type ActivityType string

const (
	ActivityRegister     ActivityType = "register"
	ActivityLogin        ActivityType = "login"
	ActivityFactRead     ActivityType = "fact_read"
	ActivityFactSaved    ActivityType = "fact_saved"
	ActivityFactCreated  ActivityType = "fact_created"
	ActivityFactReviewed ActivityType = "fact_reviewed"
	ActivityWikiClick    ActivityType = "wiki_click"
)

// Activity is an append-only audit record of one user action
type Activity struct {
	ID           string       `json:"id" db:"id"`
	UserID       string       `json:"user_id" db:"user_id"`
	ActivityType ActivityType `json:"activity_type" db:"activity_type"`
	Points       int          `json:"points" db:"points"`
	XP           int          `json:"xp" db:"xp"`
	ReferenceID  *string      `json:"reference_id,omitempty" db:"reference_id"` // Fact ID for fact activities
	Metadata     Metadata     `json:"metadata" db:"metadata"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
}
