package models

import "time"

// SavedFact links a user to a fact and carries its Leitner scheduling state
type SavedFact struct {
	ID              string     `json:"id" db:"id"`
	UserID          string     `json:"user_id" db:"user_id"`
	FactID          string     `json:"fact_id" db:"fact_id"`
	Interval        int        `json:"interval" db:"interval_days"`   // Current interval in days
	EaseFactor      float64    `json:"ease_factor" db:"ease_factor"` // Bounded to [1.3, 3.0]
	NextReviewDate  time.Time  `json:"next_review_date" db:"next_review_date"`
	TimesReviewed   int        `json:"times_reviewed" db:"times_reviewed"`
	TimesRemembered int        `json:"times_remembered" db:"times_remembered"`
	TimesForgot     int        `json:"times_forgot" db:"times_forgot"`
	LastReviewedAt  *time.Time `json:"last_reviewed_at" db:"last_reviewed_at"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
}

// SavedFactWithFact is a saved fact joined with the fact it points to
type SavedFactWithFact struct {
	SavedFact
	Fact Fact `json:"fact" db:"fact"`
}
