package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/example/synapz/internal/database"
	"github.com/example/synapz/internal/progression"
	"github.com/example/synapz/internal/spaced_repetition"
	"github.com/example/synapz/pkg/models"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListFactsInput selects a page of the feed
type ListFactsInput struct {
	Page     int
	Limit    int
	Category string
}

// Pagination describes a page within a listing
type Pagination struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	Total       int  `json:"total"`
	TotalPages  int  `json:"total_pages"`
	HasNextPage bool `json:"has_next_page"`
	HasPrevPage bool `json:"has_prev_page"`
}

// FactView is a feed entry
type FactView struct {
	models.FactWithAuthor
	IsSaved bool `json:"is_saved"`
}

// FactPage is one page of the feed
type FactPage struct {
	Facts      []FactView `json:"facts"`
	Pagination Pagination `json:"pagination"`
}

// CreatedFact is the result of a user submitting a fact
type CreatedFact struct {
	Fact   *models.Fact   `json:"fact"`
	Reward ActivityResult `json:"reward"`
}

// SaveToggle is the result of saving or unsaving a fact
type SaveToggle struct {
	Action     string          `json:"action"`
	IsSaved    bool            `json:"is_saved"`
	SavedCount int             `json:"saved_count"`
	Reward     *ActivityResult `json:"reward,omitempty"`
}

// SavedFactView is a fact in the user's collection with its review schedule
type SavedFactView struct {
	models.Fact
	SavedFactID    string    `json:"saved_fact_id"`
	NextReviewDate time.Time `json:"next_review_date"`
	Interval       int       `json:"interval"`
	TimesReviewed  int       `json:"times_reviewed"`
}

// FactService serves the feed, user submissions and the saved collection
type FactService struct {
	Deps
}

// NewFactService creates a fact service
func NewFactService(deps Deps) *FactService {
	deps = deps.withDefaults()
	deps.Log = deps.Log.With("service", "facts")
	return &FactService{Deps: deps}
}

// List returns a page of published facts, newest first. When viewerID is set
// each fact reports whether the viewer saved it.
func (s *FactService) List(ctx context.Context, in ListFactsInput, viewerID string) (*FactPage, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit < 1 {
		in.Limit = defaultPageSize
	}
	if in.Limit > maxPageSize {
		in.Limit = maxPageSize
	}

	facts, total, err := s.Store.Facts.List(ctx, database.FactFilter{
		Category: strings.TrimSpace(in.Category),
		Limit:    in.Limit,
		Offset:   (in.Page - 1) * in.Limit,
	})
	if err != nil {
		return nil, err
	}

	saved := map[string]bool{}
	if viewerID != "" && len(facts) > 0 {
		ids := make([]string, len(facts))
		for i, f := range facts {
			ids[i] = f.ID
		}
		if saved, err = s.Store.SavedFacts.SavedFactIDs(ctx, viewerID, ids); err != nil {
			return nil, err
		}
	}

	views := make([]FactView, len(facts))
	for i, f := range facts {
		views[i] = FactView{FactWithAuthor: f, IsSaved: saved[f.ID]}
	}

	totalPages := int(math.Ceil(float64(total) / float64(in.Limit)))
	return &FactPage{
		Facts: views,
		Pagination: Pagination{
			Page:        in.Page,
			Limit:       in.Limit,
			Total:       total,
			TotalPages:  totalPages,
			HasNextPage: in.Page < totalPages,
			HasPrevPage: in.Page > 1,
		},
	}, nil
}

// Create publishes a user-written fact and credits the author
func (s *FactService) Create(ctx context.Context, userID string, in models.FactInput) (*CreatedFact, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Text = strings.TrimSpace(in.Text)
	in.Category = strings.TrimSpace(in.Category)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if in.Category == "" {
		return nil, fmt.Errorf("%w: category is required", ErrInvalidInput)
	}

	now := s.Now()
	fact := &models.Fact{
		Title:       in.Title,
		Text:        in.Text,
		TextHash:    textHash(in.Text),
		Category:    in.Category,
		Source:      strings.TrimSpace(in.Source),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		Keywords:    models.StringList(in.Keywords),
		AuthorID:    &userID,
		IsPublished: true,
		CreatedAt:   now,
	}

	var reward ActivityResult
	err := s.Store.WithTx(ctx, func(tx *database.Store) error {
		user, err := lockUser(ctx, tx, userID)
		if err != nil {
			return err
		}
		exists, err := tx.Facts.ExistsByTitle(ctx, fact.Title)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: duplicate fact, title already exists", ErrConflict)
		}
		if err := tx.Facts.Create(ctx, fact); err != nil {
			return storeErr(err, "duplicate fact, title already exists")
		}
		r, _ := progression.RewardFor(models.ActivityFactCreated)
		reward, err = applyCredit(ctx, tx, user, credit{
			activity:    models.ActivityFactCreated,
			reward:      r,
			referenceID: &fact.ID,
			metadata:    models.Metadata{"fact_id": fact.ID},
		}, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	reward.Message = "Fact created"

	s.Log.Info("fact created", "fact_id", fact.ID, "user_id", userID)
	return &CreatedFact{Fact: fact, Reward: reward}, nil
}

// ToggleSave saves the fact into the user's collection, or removes it if already saved
func (s *FactService) ToggleSave(ctx context.Context, userID, factID string) (*SaveToggle, error) {
	now := s.Now()
	res := &SaveToggle{}

	err := s.Store.WithTx(ctx, func(tx *database.Store) error {
		user, err := lockUser(ctx, tx, userID)
		if err != nil {
			return err
		}
		if _, err := tx.Facts.GetByID(ctx, factID); err != nil {
			return storeErr(err, "fact")
		}

		existing, err := tx.SavedFacts.GetByUserAndFact(ctx, userID, factID)
		switch {
		case err == nil:
			if err := tx.SavedFacts.Delete(ctx, existing.ID); err != nil {
				return err
			}
			res.Action = "unsaved"
		case errors.Is(err, database.ErrNotFound):
			saved := &models.SavedFact{
				UserID:         userID,
				FactID:         factID,
				Interval:       spaced_repetition.LeitnerIntervals[0],
				EaseFactor:     spaced_repetition.DefaultEaseFactor,
				NextReviewDate: now,
				CreatedAt:      now,
			}
			if err := tx.SavedFacts.Create(ctx, saved); err != nil {
				return storeErr(err, "fact already saved")
			}
			r, _ := progression.RewardFor(models.ActivityFactSaved)
			reward, err := applyCredit(ctx, tx, user, credit{
				activity:    models.ActivityFactSaved,
				reward:      r,
				referenceID: &factID,
				metadata:    models.Metadata{"fact_id": factID},
				bump:        func(p *models.UserProgress) { p.FactsSaved++ },
			}, now)
			if err != nil {
				return err
			}
			reward.Message = "Fact saved"
			res.Action = "saved"
			res.IsSaved = true
			res.Reward = &reward
		default:
			return err
		}

		res.SavedCount, err = tx.SavedFacts.CountByUser(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ListSaved returns the user's collection newest first, optionally filtered by search
func (s *FactService) ListSaved(ctx context.Context, userID, search string) ([]SavedFactView, error) {
	saved, err := s.Store.SavedFacts.ListByUser(ctx, userID, search)
	if err != nil {
		return nil, err
	}
	views := make([]SavedFactView, len(saved))
	for i, sf := range saved {
		views[i] = SavedFactView{
			Fact:           sf.Fact,
			SavedFactID:    sf.ID,
			NextReviewDate: sf.NextReviewDate,
			Interval:       sf.Interval,
			TimesReviewed:  sf.TimesReviewed,
		}
	}
	return views, nil
}
