package game

// CareerLevel is an immutable tier definition. The player's current level is
// always derived from fame and reputation, never stored as truth.
type CareerLevel struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	FameRequired    int     `json:"fame_required"`
	RepRequired     int     `json:"rep_required"`
	Unlocks         string  `json:"unlocks"`
	EarningsMult    float64 `json:"earnings_mult"`
	FanGrowthMult   float64 `json:"fan_growth_mult"`
	OpportunityMult float64 `json:"opportunity_mult"`
}

var careerLevels = []CareerLevel{
	{ID: 1, Name: "Rookie", FameRequired: 0, RepRequired: 0,
		Unlocks:      "open mics, day jobs, home recording",
		EarningsMult: 1.0, FanGrowthMult: 1.0, OpportunityMult: 1.0},
	{ID: 2, Name: "Local Artist", FameRequired: 10, RepRequired: 5,
		Unlocks:      "small venues, local collabs",
		EarningsMult: 1.2, FanGrowthMult: 1.5, OpportunityMult: 1.2},
	{ID: 3, Name: "Rising Star", FameRequired: 25, RepRequired: 15,
		Unlocks:      "pro studios, music videos",
		EarningsMult: 1.5, FanGrowthMult: 2.0, OpportunityMult: 1.5},
	{ID: 4, Name: "Regional Act", FameRequired: 40, RepRequired: 30,
		Unlocks:      "regional tours, merch lines",
		EarningsMult: 1.8, FanGrowthMult: 2.8, OpportunityMult: 1.8},
	{ID: 5, Name: "National Artist", FameRequired: 55, RepRequired: 45,
		Unlocks:      "festival slots, label interest",
		EarningsMult: 2.2, FanGrowthMult: 3.8, OpportunityMult: 2.0},
	{ID: 6, Name: "Chart Topper", FameRequired: 70, RepRequired: 60,
		Unlocks:      "arena shows, brand deals",
		EarningsMult: 2.7, FanGrowthMult: 5.0, OpportunityMult: 2.3},
	{ID: 7, Name: "Superstar", FameRequired: 85, RepRequired: 75,
		Unlocks:      "world tours, signature products",
		EarningsMult: 3.3, FanGrowthMult: 6.0, OpportunityMult: 2.6},
	{ID: 8, Name: "Icon", FameRequired: 95, RepRequired: 90,
		Unlocks:      "legacy status, hall of fame",
		EarningsMult: 4.0, FanGrowthMult: 7.0, OpportunityMult: 3.0},
}

// Levels returns the full static table.
func Levels() []CareerLevel {
	out := make([]CareerLevel, len(careerLevels))
	copy(out, careerLevels)
	return out
}

// CurrentLevel scans highest tier first and returns the first whose fame AND
// reputation thresholds both hold. A high-fame/low-reputation player is
// capped by the lower stat.
func CurrentLevel(fame, reputation int) CareerLevel {
	for i := len(careerLevels) - 1; i >= 0; i-- {
		lvl := careerLevels[i]
		if fame >= lvl.FameRequired && reputation >= lvl.RepRequired {
			return lvl
		}
	}
	return careerLevels[0]
}

// NextLevelRequirements returns nil at the max level.
func NextLevelRequirements(level CareerLevel) *CareerLevel {
	if level.ID >= len(careerLevels) {
		return nil
	}
	next := careerLevels[level.ID] // table index == id-1
	return &next
}

// LevelProgress reports 0..100 percent toward the next level, measured on the
// lagging stat. Max level pins at 100.
func LevelProgress(fame, reputation int) float64 {
	cur := CurrentLevel(fame, reputation)
	next := NextLevelRequirements(cur)
	if next == nil {
		return 100
	}
	fameP := progressBetween(fame, cur.FameRequired, next.FameRequired)
	repP := progressBetween(reputation, cur.RepRequired, next.RepRequired)
	if repP < fameP {
		return repP
	}
	return fameP
}

func progressBetween(v, lo, hi int) float64 {
	if hi <= lo {
		return 100
	}
	p := float64(v-lo) / float64(hi-lo) * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
