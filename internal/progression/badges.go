package progression

// BadgeStats is the snapshot badge rules are evaluated against
type BadgeStats struct {
	StreakCount   int
	LongestStreak int
	FactsRead     int
	FactsSaved    int
	WikiClicks    int
	TotalPoints   int
	Level         int
}

// StatField names one field of BadgeStats
type StatField string

const (
	FieldStreakCount   StatField = "streak_count"
	FieldLongestStreak StatField = "longest_streak"
	FieldFactsRead     StatField = "facts_read"
	FieldFactsSaved    StatField = "facts_saved"
	FieldWikiClicks    StatField = "wiki_clicks"
	FieldTotalPoints   StatField = "total_points"
	FieldLevel         StatField = "level"
)

func (s BadgeStats) value(f StatField) (int, bool) {
	switch f {
	case FieldStreakCount:
		return s.StreakCount, true
	case FieldLongestStreak:
		return s.LongestStreak, true
	case FieldFactsRead:
		return s.FactsRead, true
	case FieldFactsSaved:
		return s.FactsSaved, true
	case FieldWikiClicks:
		return s.WikiClicks, true
	case FieldTotalPoints:
		return s.TotalPoints, true
	case FieldLevel:
		return s.Level, true
	}
	return 0, false
}

// Operator compares a stat with a rule threshold
type Operator string

const (
	OpAtLeast     Operator = ">="
	OpGreaterThan Operator = ">"
	OpEqual       Operator = "=="
)

// Rule is a single-field threshold predicate
type Rule struct {
	Field     StatField `json:"field"`
	Op        Operator  `json:"op"`
	Threshold int       `json:"threshold"`
}

// Matches reports whether stats satisfy the rule. Unknown fields or operators never match.
func (r Rule) Matches(stats BadgeStats) bool {
	v, ok := stats.value(r.Field)
	if !ok {
		return false
	}
	switch r.Op {
	case OpAtLeast:
		return v >= r.Threshold
	case OpGreaterThan:
		return v > r.Threshold
	case OpEqual:
		return v == r.Threshold
	}
	return false
}

// Badge is a one-way unlockable achievement
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Rule        Rule   `json:"rule"`
}

// Badges is the catalog, in display order
var Badges = []Badge{
	{ID: "first_steps", Name: "First Steps", Description: "Read your first fact", Icon: "Baby", Color: "emerald", Rule: Rule{FieldFactsRead, OpAtLeast, 1}},
	{ID: "curious_mind", Name: "Curious Mind", Description: "Read 10 facts", Icon: "BookOpen", Color: "violet", Rule: Rule{FieldFactsRead, OpAtLeast, 10}},
	{ID: "knowledge_hunter", Name: "Knowledge Hunter", Description: "Read 50 facts", Icon: "Search", Color: "blue", Rule: Rule{FieldFactsRead, OpAtLeast, 50}},
	{ID: "fact_enthusiast", Name: "Fact Enthusiast", Description: "Read 100 facts", Icon: "Award", Color: "amber", Rule: Rule{FieldFactsRead, OpAtLeast, 100}},
	{ID: "fact_master", Name: "Fact Master", Description: "Read 500 facts", Icon: "Crown", Color: "rose", Rule: Rule{FieldFactsRead, OpAtLeast, 500}},
	{ID: "streak_starter", Name: "Streak Starter", Description: "3 day streak", Icon: "Flame", Color: "orange", Rule: Rule{FieldStreakCount, OpAtLeast, 3}},
	{ID: "week_warrior", Name: "Week Warrior", Description: "7 day streak", Icon: "Zap", Color: "yellow", Rule: Rule{FieldLongestStreak, OpAtLeast, 7}},
	{ID: "fortnight_fighter", Name: "Fortnight Fighter", Description: "14 day streak", Icon: "Swords", Color: "red", Rule: Rule{FieldLongestStreak, OpAtLeast, 14}},
	{ID: "month_master", Name: "Month Master", Description: "30 day streak", Icon: "Star", Color: "purple", Rule: Rule{FieldLongestStreak, OpAtLeast, 30}},
	{ID: "wiki_explorer", Name: "Wiki Explorer", Description: "Clicked 50 wiki links", Icon: "Globe", Color: "cyan", Rule: Rule{FieldWikiClicks, OpAtLeast, 50}},
	{ID: "wiki_voyager", Name: "Wiki Voyager", Description: "Clicked 200 wiki links", Icon: "Compass", Color: "teal", Rule: Rule{FieldWikiClicks, OpAtLeast, 200}},
	{ID: "memory_keeper", Name: "Memory Keeper", Description: "Saved 10 facts", Icon: "Bookmark", Color: "pink", Rule: Rule{FieldFactsSaved, OpAtLeast, 10}},
	{ID: "knowledge_vault", Name: "Knowledge Vault", Description: "Saved 50 facts", Icon: "Database", Color: "indigo", Rule: Rule{FieldFactsSaved, OpAtLeast, 50}},
	{ID: "point_collector", Name: "Point Collector", Description: "Earned 500 points", Icon: "Coins", Color: "gold", Rule: Rule{FieldTotalPoints, OpAtLeast, 500}},
	{ID: "point_millionaire", Name: "Point Millionaire", Description: "Earned 2000 points", Icon: "Gem", Color: "emerald", Rule: Rule{FieldTotalPoints, OpAtLeast, 2000}},
	{ID: "level_5", Name: "Synapse Surfer", Description: "Reached Level 5", Icon: "Waves", Color: "blue", Rule: Rule{FieldLevel, OpAtLeast, 5}},
	{ID: "level_10", Name: "Neuro Ninja", Description: "Reached Level 10", Icon: "UserCheck", Color: "violet", Rule: Rule{FieldLevel, OpAtLeast, 10}},
}

// EvaluateBadges returns the catalog badges not yet in unlocked whose rule holds,
// in catalog order.
func EvaluateBadges(unlocked []string, stats BadgeStats) []string {
	have := make(map[string]struct{}, len(unlocked))
	for _, id := range unlocked {
		have[id] = struct{}{}
	}

	var fresh []string
	for _, b := range Badges {
		if _, ok := have[b.ID]; ok {
			continue
		}
		if b.Rule.Matches(stats) {
			fresh = append(fresh, b.ID)
		}
	}
	return fresh
}

// MergeBadges appends added to existing, skipping IDs already present
func MergeBadges(existing, added []string) []string {
	out := make([]string, 0, len(existing)+len(added))
	seen := make(map[string]struct{}, len(existing)+len(added))
	for _, list := range [][]string{existing, added} {
		for _, id := range list {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

// BadgeByID looks up a catalog badge
func BadgeByID(id string) (Badge, bool) {
	for _, b := range Badges {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}
