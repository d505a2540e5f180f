package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/synapz/internal/database"
	"github.com/example/synapz/internal/progression"
	"github.com/example/synapz/internal/spaced_repetition"
	"github.com/example/synapz/pkg/models"
)

const activityListLimit = 50

// RecordActivityInput is a client-reported activity
type RecordActivityInput struct {
	ActivityType string `json:"activity_type" validate:"required,oneof=fact_read wiki_click"`
	FactID       string `json:"fact_id"`
}

// ActivityService credits reading and reference clicks
type ActivityService struct {
	Deps
}

// NewActivityService creates an activity service
func NewActivityService(deps Deps) *ActivityService {
	deps = deps.withDefaults()
	deps.Log = deps.Log.With("service", "activity")
	return &ActivityService{Deps: deps}
}

// Record dispatches a client-reported activity
func (s *ActivityService) Record(ctx context.Context, userID string, in RecordActivityInput) (ActivityResult, error) {
	in.ActivityType = strings.TrimSpace(in.ActivityType)
	if err := validateStruct(in); err != nil {
		return ActivityResult{}, err
	}
	switch models.ActivityType(in.ActivityType) {
	case models.ActivityFactRead:
		return s.RecordFactRead(ctx, userID, in.FactID)
	default:
		return s.RecordWikiClick(ctx, userID, in.FactID)
	}
}

// RecordFactRead credits reading a fact at most once per fact per calendar day.
// A repeat on the same day returns a zero result with AlreadyRecorded set.
func (s *ActivityService) RecordFactRead(ctx context.Context, userID, factID string) (ActivityResult, error) {
	factID = strings.TrimSpace(factID)
	if factID == "" {
		return ActivityResult{}, fmt.Errorf("%w: fact_id is required", ErrInvalidInput)
	}

	now := s.today()
	var res ActivityResult
	err := s.Store.WithTx(ctx, func(tx *database.Store) error {
		user, err := lockUser(ctx, tx, userID)
		if err != nil {
			return err
		}
		fact, err := tx.Facts.GetByID(ctx, factID)
		if err != nil {
			return storeErr(err, "fact")
		}

		seen, err := tx.Activities.ExistsSince(ctx, userID, models.ActivityFactRead, factID, spaced_repetition.StartOfDay(now))
		if err != nil {
			return err
		}
		if seen {
			res = ActivityResult{Message: "Fact already read today", AlreadyRecorded: true}
			return nil
		}

		r, _ := progression.RewardFor(models.ActivityFactRead)
		res, err = applyCredit(ctx, tx, user, credit{
			activity:    models.ActivityFactRead,
			reward:      r,
			referenceID: &factID,
			metadata:    models.Metadata{"fact_id": factID, "category": fact.Category},
			bump:        func(p *models.UserProgress) { p.FactsRead++ },
			touch:       true,
		}, now)
		if err != nil {
			return err
		}
		res.Message = "Activity recorded"
		return nil
	})
	if err != nil {
		return ActivityResult{}, err
	}

	if res.LevelUp {
		s.Log.Info("level up", "user_id", userID, "level", res.NewLevel)
	}
	return res, nil
}

// RecordWikiClick credits following an external reference link
func (s *ActivityService) RecordWikiClick(ctx context.Context, userID, factID string) (ActivityResult, error) {
	var ref *string
	if factID = strings.TrimSpace(factID); factID != "" {
		ref = &factID
	}

	var res ActivityResult
	err := s.Store.WithTx(ctx, func(tx *database.Store) error {
		user, err := lockUser(ctx, tx, userID)
		if err != nil {
			return err
		}
		r, _ := progression.RewardFor(models.ActivityWikiClick)
		res, err = applyCredit(ctx, tx, user, credit{
			activity:    models.ActivityWikiClick,
			reward:      r,
			referenceID: ref,
			bump:        func(p *models.UserProgress) { p.WikiClicks++ },
		}, s.Now())
		return err
	})
	if err != nil {
		return ActivityResult{}, err
	}
	res.Message = "Wiki click recorded"
	return res, nil
}

// List returns the latest activities of the user
func (s *ActivityService) List(ctx context.Context, userID string) ([]models.Activity, error) {
	return s.Store.Activities.ListRecent(ctx, userID, activityListLimit)
}
