package service

import (
	"context"
	"fmt"
	"time"

	"github.com/example/synapz/internal/database"
	"github.com/example/synapz/internal/progression"
	"github.com/example/synapz/pkg/models"
)

// ActivityResult is what a gamified action earned
type ActivityResult struct {
	Message         string   `json:"message"`
	PointsEarned    int      `json:"points_earned"`
	XPEarned        int      `json:"xp_earned"`
	LevelUp         bool     `json:"level_up"`
	NewLevel        int      `json:"new_level,omitempty"`
	NewBadges       []string `json:"new_badges,omitempty"`
	AlreadyRecorded bool     `json:"already_recorded,omitempty"`
}

// credit describes one activity to apply to a user
type credit struct {
	activity    models.ActivityType
	reward      progression.Reward
	referenceID *string
	metadata    models.Metadata
	// bump increments the counters the activity affects
	bump func(p *models.UserProgress)
	// touch marks the user active at the activity time
	touch bool
	// unlogged skips the activity log entry
	unlogged bool
}

// applyCredit adds the reward to the user, evaluates badges against the
// post-update stats and persists the user row and the activity log entry.
// It must run inside a transaction together with whatever produced the credit.
func applyCredit(ctx context.Context, tx *database.Store, user *models.User, c credit, now time.Time) (ActivityResult, error) {
	p := user.UserProgress
	if c.bump != nil {
		c.bump(&p)
	}

	award, err := progression.ApplyXP(p.TotalXP, p.Level, c.reward.XP)
	if err != nil {
		return ActivityResult{}, fmt.Errorf("failed to apply XP: %w", err)
	}
	p.TotalXP += award.XPEarned
	p.Level = award.Level
	p.TotalPoints += c.reward.Points
	if c.touch {
		p.LastActive = &now
	}

	newBadges := progression.EvaluateBadges(p.Badges, badgeStats(p))
	p.Badges = progression.MergeBadges(p.Badges, newBadges)

	if err := tx.Users.UpdateProgress(ctx, user.ID, p); err != nil {
		return ActivityResult{}, err
	}

	if !c.unlogged {
		meta := models.Metadata{}
		for k, v := range c.metadata {
			meta[k] = v
		}
		meta["xp_earned"] = award.XPEarned
		err = tx.Activities.Create(ctx, &models.Activity{
			UserID:       user.ID,
			ActivityType: c.activity,
			Points:       c.reward.Points,
			XP:           award.XPEarned,
			ReferenceID:  c.referenceID,
			Metadata:     meta,
			CreatedAt:    now,
		})
		if err != nil {
			return ActivityResult{}, err
		}
	}

	user.UserProgress = p
	res := ActivityResult{
		PointsEarned: c.reward.Points,
		XPEarned:     award.XPEarned,
		LevelUp:      award.LevelUp,
		NewBadges:    newBadges,
	}
	if award.LevelUp {
		res.NewLevel = award.Level
	}
	return res, nil
}

func badgeStats(p models.UserProgress) progression.BadgeStats {
	return progression.BadgeStats{
		StreakCount:   p.StreakCount,
		LongestStreak: p.LongestStreak,
		FactsRead:     p.FactsRead,
		FactsSaved:    p.FactsSaved,
		WikiClicks:    p.WikiClicks,
		TotalPoints:   p.TotalPoints,
		Level:         p.Level,
	}
}

// lockUser loads the user row for a read-modify-write inside tx
func lockUser(ctx context.Context, tx *database.Store, userID string) (*models.User, error) {
	user, err := tx.Users.GetByIDForUpdate(ctx, userID)
	if err != nil {
		return nil, storeErr(err, "user")
	}
	return user, nil
}
