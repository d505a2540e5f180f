package progression

import "github.com/example/synapz/pkg/models"

// Reward is the XP and points granted for one activity
type Reward struct {
	XP     int `json:"xp"`
	Points int `json:"points"`
}

// LevelUpBonusXP is added on top of the XP of the activity that crossed a tier
const LevelUpBonusXP = 50

// Login XP is listed for completeness; login points come from the streak rule.
var rewards = map[models.ActivityType]Reward{
	models.ActivityFactRead:    {XP: 5, Points: 5},
	models.ActivityFactSaved:   {XP: 1, Points: 2},
	models.ActivityFactCreated: {XP: 15, Points: 15},
	models.ActivityLogin:       {XP: 3, Points: 0},
	models.ActivityWikiClick:   {XP: 1, Points: 0},
	models.ActivityRegister:    {XP: 0, Points: 10},
}

// RewardFor returns the fixed reward of an activity type
func RewardFor(activity models.ActivityType) (Reward, bool) {
	r, ok := rewards[activity]
	return r, ok
}

// ReviewReward returns the reward for a flashcard review
func ReviewReward(remembered bool) Reward {
	if remembered {
		return Reward{Points: 3}
	}
	return Reward{Points: 1}
}

// XPAward is the outcome of adding XP to a user
type XPAward struct {
	XPEarned int  // Base XP plus the level-up bonus, if any
	Level    int  // Level to persist
	LevelUp  bool
}

// ApplyXP adds baseXP to totalXP and detects a level-up against the stored level.
// The level is computed before the bonus is added; the bonus itself never
// triggers a second level-up within the same activity.
func ApplyXP(totalXP, storedLevel, baseXP int) (XPAward, error) {
	if baseXP < 0 {
		return XPAward{}, ErrInvalidInput
	}
	if storedLevel < 1 {
		storedLevel = 1
	}

	lp, err := ComputeLevel(totalXP + baseXP)
	if err != nil {
		return XPAward{}, err
	}

	award := XPAward{XPEarned: baseXP, Level: storedLevel}
	if lp.Level > storedLevel {
		award.LevelUp = true
		award.Level = lp.Level
		award.XPEarned += LevelUpBonusXP
	}
	return award, nil
}
