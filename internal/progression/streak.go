package progression

import "time"

const (
	streakWindowStart = 24 * time.Hour
	streakWindowEnd   = 48 * time.Hour
	streakBasePoints  = 5
)

// StreakUpdate is the result of a login against the previous activity time
type StreakUpdate struct {
	StreakCount   int
	LongestStreak int
	PointsAwarded int
}

// ComputeLoginStreak applies the daily login rule:
// a login 24 to 48 hours after lastActive extends the streak, 48 hours or more
// resets it, and anything sooner leaves it untouched.
func ComputeLoginStreak(lastActive *time.Time, streakCount, longestStreak int, now time.Time) StreakUpdate {
	u := StreakUpdate{StreakCount: streakCount}

	if lastActive == nil {
		u.StreakCount = 1
		u.PointsAwarded = streakBasePoints
	} else {
		since := now.Sub(*lastActive)
		switch {
		case since >= streakWindowEnd:
			u.StreakCount = 1
			u.PointsAwarded = streakBasePoints
		case since >= streakWindowStart:
			u.StreakCount = streakCount + 1
			u.PointsAwarded = u.StreakCount * streakBasePoints
		}
	}

	u.LongestStreak = longestStreak
	if u.StreakCount > u.LongestStreak {
		u.LongestStreak = u.StreakCount
	}
	return u
}
