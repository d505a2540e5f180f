package models

import "time"

// UserProgress holds the gamified counters of a user. Every counter only grows,
// except StreakCount which resets when a login streak is broken.
type UserProgress struct {
	TotalXP       int        `json:"total_xp" db:"total_xp"`
	Level         int        `json:"level" db:"level"`
	TotalPoints   int        `json:"total_points" db:"total_points"`
	StreakCount   int        `json:"streak_count" db:"streak_count"`
	LongestStreak int        `json:"longest_streak" db:"longest_streak"`
	FactsRead     int        `json:"facts_read" db:"facts_read"`
	FactsSaved    int        `json:"facts_saved" db:"facts_saved"`
	WikiClicks    int        `json:"wiki_clicks" db:"wiki_clicks"`
	Badges        StringList `json:"badges" db:"badges"` // Unlocked badge IDs in unlock order
	LastActive    *time.Time `json:"last_active" db:"last_active"`
	LastLogin     *time.Time `json:"last_login" db:"last_login"`
}
