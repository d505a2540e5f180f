package spaced_repetition

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// LeitnerIntervals is the ladder of review intervals in days
var LeitnerIntervals = []int{1, 3, 7, 14, 30, 60, 120}

const (
	// DefaultEaseFactor is used for items whose ease factor is unknown
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3
	MaxEaseFactor     = 3.0

	easeStepRemembered = 0.1
	easeStepForgot     = 0.2
)

// ErrInvalidInput is returned for intervals below one day or a non-finite ease factor
var ErrInvalidInput = errors.New("invalid review input")

// ReviewUpdate is the delta produced by one review. The Times* fields are
// increments to add to the stored counters, not absolute values.
type ReviewUpdate struct {
	NextReviewDate  time.Time
	Interval        int
	EaseFactor      float64
	TimesReviewed   int
	TimesRemembered int
	TimesForgot     int
	LastReviewedAt  time.Time
}

// ScheduleReview computes the next scheduling state of a saved item.
// The ease factor is tracked but does not influence the interval ladder.
// An ease factor of 0 means unknown and is replaced by DefaultEaseFactor.
func ScheduleReview(currentInterval int, remembered bool, easeFactor float64, now time.Time) (ReviewUpdate, error) {
	if currentInterval < 1 {
		return ReviewUpdate{}, fmt.Errorf("%w: interval %d", ErrInvalidInput, currentInterval)
	}
	if math.IsNaN(easeFactor) || math.IsInf(easeFactor, 0) {
		return ReviewUpdate{}, fmt.Errorf("%w: ease factor %v", ErrInvalidInput, easeFactor)
	}
	if easeFactor == 0 {
		easeFactor = DefaultEaseFactor
	}

	update := ReviewUpdate{
		TimesReviewed:  1,
		LastReviewedAt: now,
	}

	if remembered {
		update.Interval = nextRung(currentInterval)
		update.EaseFactor = clampEase(easeFactor + easeStepRemembered)
		update.TimesRemembered = 1
	} else {
		update.Interval = LeitnerIntervals[0]
		update.EaseFactor = clampEase(easeFactor - easeStepForgot)
		update.TimesForgot = 1
	}

	update.NextReviewDate = StartOfDay(now.AddDate(0, 0, update.Interval))
	return update, nil
}

// nextRung returns the rung after the smallest rung >= current.
// Intervals at or beyond the top rung stay where they are.
func nextRung(current int) int {
	for i, rung := range LeitnerIntervals {
		if rung >= current {
			if i == len(LeitnerIntervals)-1 {
				return current
			}
			return LeitnerIntervals[i+1]
		}
	}
	return current
}

// clampEase bounds the ease factor and rounds it to two decimals so repeated
// steps do not accumulate floating point noise.
func clampEase(ef float64) float64 {
	ef = math.Max(MinEaseFactor, math.Min(MaxEaseFactor, ef))
	return math.Round(ef*100) / 100
}

// IsDue reports whether an item scheduled for nextReviewDate should be reviewed
// on the calendar day of now. Items due any time today are included.
func IsDue(nextReviewDate, now time.Time) bool {
	return !nextReviewDate.After(EndOfDay(now))
}

// StartOfDay returns midnight of t's calendar day in t's location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of t's calendar day
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// NextIntervalLabel describes the interval a review outcome would lead to
func NextIntervalLabel(currentInterval int, remembered bool) string {
	if !remembered {
		return "1 day"
	}
	next := nextRung(currentInterval)
	if next == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", next)
}

// ReviewMessage returns an encouraging message for a review success rate in [0, 1]
func ReviewMessage(successRate float64) string {
	switch {
	case successRate >= 0.9:
		return "🌟 Outstanding memory!"
	case successRate >= 0.7:
		return "💪 Great recall!"
	case successRate >= 0.5:
		return "📚 Keep practicing!"
	default:
		return "🧠 Building those connections!"
	}
}
