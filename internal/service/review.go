package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/example/synapz/internal/database"
	"github.com/example/synapz/internal/progression"
	"github.com/example/synapz/internal/spaced_repetition"
	"github.com/example/synapz/pkg/models"
)

// DueFact is a saved fact waiting for review
type DueFact struct {
	SavedFactID    string      `json:"saved_fact_id"`
	FactID         string      `json:"fact_id"`
	Fact           models.Fact `json:"fact"`
	Interval       int         `json:"interval"`
	TimesReviewed  int         `json:"times_reviewed"`
	NextReviewDate time.Time   `json:"next_review_date"`
	// Interval labels for each answer, shown on the answer buttons
	RememberedLabel string `json:"remembered_label"`
	ForgotLabel     string `json:"forgot_label"`
}

// ReviewSummary aggregates the user's review history
type ReviewSummary struct {
	models.ReviewStats
	SuccessRate float64 `json:"success_rate"` // 0-100
	Message     string  `json:"message"`
}

// ReviewQueue is what the user should review today
type ReviewQueue struct {
	DueFacts []DueFact     `json:"due_facts"`
	Stats    ReviewSummary `json:"stats"`
}

// ReviewInput is the answer to one flashcard
type ReviewInput struct {
	SavedFactID string `json:"saved_fact_id" validate:"required"`
	Remembered  *bool  `json:"remembered" validate:"required"`
}

// ReviewResult is the new schedule of a reviewed fact plus the reward
type ReviewResult struct {
	ActivityResult
	Remembered        bool      `json:"remembered"`
	NewInterval       int       `json:"new_interval"`
	NextReviewDate    time.Time `json:"next_review_date"`
	NextIntervalLabel string    `json:"next_interval_label"`
}

// ReviewService runs the spaced repetition flow
type ReviewService struct {
	Deps
}

// NewReviewService creates a review service
func NewReviewService(deps Deps) *ReviewService {
	deps = deps.withDefaults()
	deps.Log = deps.Log.With("service", "review")
	return &ReviewService{Deps: deps}
}

// Queue returns saved facts due by the end of today, oldest schedule first
func (s *ReviewService) Queue(ctx context.Context, userID string) (*ReviewQueue, error) {
	end := spaced_repetition.EndOfDay(s.today())

	saved, err := s.Store.SavedFacts.ListDue(ctx, userID, end)
	if err != nil {
		return nil, err
	}
	stats, err := s.Store.Statistics.ReviewStats(ctx, userID, end)
	if err != nil {
		return nil, err
	}

	due := make([]DueFact, len(saved))
	for i, sf := range saved {
		due[i] = DueFact{
			SavedFactID:     sf.ID,
			FactID:          sf.FactID,
			Fact:            sf.Fact,
			Interval:        sf.Interval,
			TimesReviewed:   sf.TimesReviewed,
			NextReviewDate:  sf.NextReviewDate,
			RememberedLabel: spaced_repetition.NextIntervalLabel(sf.Interval, true),
			ForgotLabel:     spaced_repetition.NextIntervalLabel(sf.Interval, false),
		}
	}

	rate := stats.SuccessRate()
	return &ReviewQueue{
		DueFacts: due,
		Stats: ReviewSummary{
			ReviewStats: stats,
			SuccessRate: math.Round(rate * 100),
			Message:     spaced_repetition.ReviewMessage(rate),
		},
	}, nil
}

// DueCount returns how many saved facts are due by the end of today
func (s *ReviewService) DueCount(ctx context.Context, userID string) (int, error) {
	return s.Store.SavedFacts.CountDue(ctx, userID, spaced_repetition.EndOfDay(s.today()))
}

// Submit records a review answer, reschedules the fact and credits the user
func (s *ReviewService) Submit(ctx context.Context, userID string, in ReviewInput) (*ReviewResult, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	remembered := *in.Remembered
	now := s.today()

	var res *ReviewResult
	err := s.Store.WithTx(ctx, func(tx *database.Store) error {
		// user row first, same order as ToggleSave
		user, err := lockUser(ctx, tx, userID)
		if err != nil {
			return err
		}
		sf, err := tx.SavedFacts.GetForUser(ctx, in.SavedFactID, userID)
		if err != nil {
			return storeErr(err, "saved fact")
		}

		update, err := spaced_repetition.ScheduleReview(sf.Interval, remembered, sf.EaseFactor, now)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		label := spaced_repetition.NextIntervalLabel(sf.Interval, remembered)

		sf.Interval = update.Interval
		sf.EaseFactor = update.EaseFactor
		sf.NextReviewDate = update.NextReviewDate
		sf.TimesReviewed += update.TimesReviewed
		sf.TimesRemembered += update.TimesRemembered
		sf.TimesForgot += update.TimesForgot
		sf.LastReviewedAt = &update.LastReviewedAt
		if err := tx.SavedFacts.UpdateSchedule(ctx, sf); err != nil {
			return storeErr(err, "saved fact")
		}

		reward, err := applyCredit(ctx, tx, user, credit{
			activity:    models.ActivityFactReviewed,
			reward:      progression.ReviewReward(remembered),
			referenceID: &sf.FactID,
			metadata: models.Metadata{
				"fact_id":      sf.FactID,
				"remembered":   remembered,
				"new_interval": update.Interval,
			},
		}, now)
		if err != nil {
			return err
		}
		reward.Message = "Review recorded"

		res = &ReviewResult{
			ActivityResult:    reward,
			Remembered:        remembered,
			NewInterval:       update.Interval,
			NextReviewDate:    update.NextReviewDate,
			NextIntervalLabel: label,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
