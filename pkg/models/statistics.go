package models

// ReviewStats aggregates the spaced repetition counters of a user's saved facts
type ReviewStats struct {
	TotalSaved      int `json:"total_saved" db:"total_saved"`
	DueToday        int `json:"due_today" db:"due_today"`
	TotalReviews    int `json:"total_reviews" db:"total_reviews"`
	TotalRemembered int `json:"total_remembered" db:"total_remembered"`
	TotalForgot     int `json:"total_forgot" db:"total_forgot"`
}

// SuccessRate returns the share of reviews that were remembered, 0 when nothing was reviewed
func (s ReviewStats) SuccessRate() float64 {
	if s.TotalReviews == 0 {
		return 0
	}
	return float64(s.TotalRemembered) / float64(s.TotalReviews)
}

// CategoryCount is the number of facts in a single category
type CategoryCount struct {
	Category string `json:"category" db:"category"`
	Count    int    `json:"count" db:"count"`
}
