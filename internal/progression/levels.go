package progression

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is returned for out-of-domain inputs such as negative XP
var ErrInvalidInput = errors.New("invalid progression input")

// Level is one tier of the level table
type Level struct {
	Number     int    `json:"level"`
	Title      string `json:"title"`
	XPRequired int    `json:"xp_required"`
	Icon       string `json:"icon"`
}

// Levels is ordered by strictly increasing XPRequired, starting at 0
var Levels = []Level{
	{Number: 1, Title: "Novice", XPRequired: 0, Icon: "🎓"},
	{Number: 2, Title: "Curious Mind", XPRequired: 50, Icon: "🧠"},
	{Number: 3, Title: "Fact Finder", XPRequired: 150, Icon: "🔍"},
	{Number: 4, Title: "Knowledge Seeker", XPRequired: 300, Icon: "📚"},
	{Number: 5, Title: "Synapse Surfer", XPRequired: 500, Icon: "🌊"},
	{Number: 6, Title: "Brain Builder", XPRequired: 800, Icon: "🏗️"},
	{Number: 7, Title: "Wisdom Walker", XPRequired: 1200, Icon: "🚶"},
	{Number: 8, Title: "Mind Master", XPRequired: 1600, Icon: "🎯"},
	{Number: 9, Title: "Cognitive Champion", XPRequired: 2000, Icon: "🏆"},
	{Number: 10, Title: "Neuro Ninja", XPRequired: 2500, Icon: "🥷"},
	{Number: 11, Title: "Sage Supreme", XPRequired: 3000, Icon: "👑"},
	{Number: 12, Title: "Enlightened One", XPRequired: 4000, Icon: "✨"},
	{Number: 13, Title: "Universal Mind", XPRequired: 5000, Icon: "🌌"},
	{Number: 14, Title: "Cosmic Scholar", XPRequired: 6500, Icon: "🌠"},
	{Number: 15, Title: "Omniscient Being", XPRequired: 8000, Icon: "🔮"},
}

// LevelProgress describes where a total XP amount sits in the level table
type LevelProgress struct {
	Level            int     `json:"level"`
	Title            string  `json:"title"`
	Icon             string  `json:"icon"`
	XPForNextLevel   int     `json:"xp_for_next_level"`
	XPInCurrentLevel int     `json:"xp_in_current_level"`
	Progress         float64 `json:"progress"` // Percent through the current tier, 0-100
}

// ComputeLevel maps cumulative XP to a level
func ComputeLevel(totalXP int) (LevelProgress, error) {
	if totalXP < 0 {
		return LevelProgress{}, fmt.Errorf("%w: total XP %d", ErrInvalidInput, totalXP)
	}

	idx := 0
	for i := len(Levels) - 1; i >= 0; i-- {
		if totalXP >= Levels[i].XPRequired {
			idx = i
			break
		}
	}

	current := Levels[idx]
	lp := LevelProgress{
		Level:    current.Number,
		Title:    current.Title,
		Icon:     current.Icon,
		Progress: 100,
	}
	if idx == len(Levels)-1 {
		return lp, nil
	}

	next := Levels[idx+1]
	lp.XPForNextLevel = next.XPRequired - totalXP
	lp.XPInCurrentLevel = totalXP - current.XPRequired
	span := float64(next.XPRequired - current.XPRequired)
	lp.Progress = math.Max(0, math.Min(100, float64(lp.XPInCurrentLevel)/span*100))
	return lp, nil
}

// LevelInfo returns the tier with the given number, falling back to the first tier
func LevelInfo(number int) Level {
	for _, l := range Levels {
		if l.Number == number {
			return l
		}
	}
	return Levels[0]
}

// MaxLevel is the number of the last tier
func MaxLevel() int {
	return Levels[len(Levels)-1].Number
}
