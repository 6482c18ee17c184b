package game

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/google/uuid"
)

// Weekly settlement constants. One consistent set is used everywhere.
const (
	ageDecayPerWeek  = 0.05
	minAgeDecay      = 0.1
	viralChance      = 0.05
	viralChanceHot   = 0.15 // once peak weekly views have crossed hotPeakViews
	hotPeakViews     = 50_000
	minWeeklyViews   = 100
	trendingFloor    = 25_000
	trendingCeil     = 100_000
	viralWeeklyViews = 100_000
	viralTotalViews  = 1_000_000
	chartTop50Views  = 500_000
	chartTop20Views  = 1_000_000

	consistencyWindow = 8  // weeks
	inactivityWindow  = 12 // weeks
	fanConversionRate = 0.1
)

var platformFanRatio = map[Platform]float64{
	PlatformFanpic:    1.1,
	PlatformViewtube:  0.9,
	PlatformStreamify: 0.8,
	PlatformCliply:    1.2,
}

func newNotification(kind NotificationKind, title, msg string, week, year int) Notification {
	return Notification{
		ID:      uuid.NewString(),
		Kind:    kind,
		Title:   title,
		Message: msg,
		Week:    week,
		Year:    year,
	}
}

func releaseAgeWeeks(r *Release, week, year int) int {
	age := (year-r.Year)*WeeksPerYear + (week - r.Week)
	if age < 0 {
		return 0
	}
	return age
}

// processWeek runs one weekly settlement over every release, mutating the
// release performance blocks in place, and returns the aggregate deltas for
// the player. Randomness comes only from rng so a seeded source replays the
// exact same week.
func processWeek(rng *rand.Rand, player *Player, releases []Release, level CareerLevel) WeeklyUpdate {
	upd := WeeklyUpdate{
		EarningsByChan: make(map[Channel]int64),
		SocialGrowth:   make(map[Platform]int64),
	}
	week, year := player.Week, player.Year

	active := 0
	bestQuality := 0
	recent := 0
	lastReleaseAge := math.MaxInt

	for i := range releases {
		r := &releases[i]
		age := releaseAgeWeeks(r, week, year)
		if age < lastReleaseAge {
			lastReleaseAge = age
		}
		if age <= consistencyWindow {
			recent++
		}
		if r.Quality > bestQuality {
			bestQuality = r.Quality
		}
		if r.Views <= 0 {
			continue
		}
		active++

		ageDecay := math.Max(minAgeDecay, 1-float64(age)*ageDecayPerWeek)
		qualityMult := math.Max(0.3, float64(r.Quality)/10)
		fameMult := math.Max(0.2, float64(player.Fame)/100)
		fanMult := math.Max(0.1, float64(player.Fans)/3000)

		viralMult := 1.0
		chance := viralChance
		if r.PeakWeeklyViews > hotPeakViews {
			chance = viralChanceHot
		}
		wentViral := rng.Float64() < chance
		if wentViral {
			viralMult = 2 + rng.Float64()*3
		}

		base := float64(500 + rng.Intn(2000))
		weekly := int64(math.Floor(base * qualityMult * fameMult * fanMult * ageDecay * viralMult * platformViewMult[r.Platform]))
		if weekly < minWeeklyViews {
			weekly = minWeeklyViews
		}

		earned := int64(math.Round(float64(EarningsCents(weekly, r.Type, r.Quality, 0)) * level.EarningsMult))
		r.EarningsCents += earned
		ch := ChannelStreaming
		if r.Type == ContentVideo {
			ch = ChannelVideo
		}
		upd.EarningsByChan[ch] += earned

		r.Views += weekly
		r.WeeklyViews = weekly
		if weekly > r.PeakWeeklyViews {
			r.PeakWeeklyViews = weekly
		}
		r.ViewHistory = append(r.ViewHistory, weekly)
		if len(r.ViewHistory) > ViewHistoryLen {
			r.ViewHistory = r.ViewHistory[len(r.ViewHistory)-ViewHistoryLen:]
		}

		r.Trending = weekly > trendingFloor && weekly < trendingCeil
		if !r.Viral && (r.Views > viralTotalViews || weekly > viralWeeklyViews) {
			r.Viral = true
		}
		updateChartPosition(rng, r)

		if wentViral {
			upd.FameChange += FameGain(ActionViralMoment, r.Quality)
		}
		if r.Viral && !r.NotifiedViral {
			r.NotifiedViral = true
			upd.Notifications = append(upd.Notifications, newNotification(NoteSuccess,
				"Gone viral!", fmt.Sprintf("%q is blowing up with %d total views", r.Title, r.Views), week, year))
		}
		if r.ChartPosition > 0 && r.ChartPosition <= 10 && !r.NotifiedTopTen {
			r.NotifiedTopTen = true
			upd.Notifications = append(upd.Notifications, newNotification(NoteSuccess,
				"Top 10 hit", fmt.Sprintf("%q entered the charts at #%d", r.Title, r.ChartPosition), week, year))
		}
	}

	if recent >= 2 {
		upd.ReputationChange += ReputationGain(ActionConsistentReleases, 0, 1.0)
		upd.Notifications = append(upd.Notifications, newNotification(NoteInfo,
			"Consistency pays", "Your steady release schedule is earning industry respect", week, year))
	}
	if bestQuality >= 8 {
		upd.ReputationChange += ReputationGain(ActionHighQualityContent, bestQuality, 0)
	}
	if len(releases) > 0 && lastReleaseAge > inactivityWindow {
		upd.ReputationChange += ReputationPenalty(ActionInactivity, 0)
	}

	growthMult := level.FanGrowthMult
	if active == 0 {
		growthMult *= 0.1
	}
	upd.FanGrowth = NewFans(player.Fame, player.Reputation, growthMult)

	for _, p := range Platforms() {
		upd.SocialGrowth[p] = int64(math.Floor(float64(upd.FanGrowth) * fanConversionRate * platformFanRatio[p]))
	}

	if total := totalEarnings(upd.EarningsByChan); total > 0 {
		upd.Notifications = append(upd.Notifications, newNotification(NoteInfo,
			"Weekly royalties", fmt.Sprintf("Your catalog earned $%.2f this week", CentsToDollars(total)), week, year))
	}

	return upd
}

// updateChartPosition assigns sticky chart ranks at view milestones. A rank is
// never reassigned worse; crossing the top-20 milestone can improve it once.
func updateChartPosition(rng *rand.Rand, r *Release) {
	switch {
	case r.Views > chartTop20Views && (r.ChartPosition == 0 || r.ChartPosition > 20):
		r.ChartPosition = 1 + rng.Intn(20)
	case r.Views > chartTop50Views && r.ChartPosition == 0:
		r.ChartPosition = 21 + rng.Intn(30)
	}
}

func totalEarnings(byChan map[Channel]int64) int64 {
	var total int64
	for _, v := range byChan {
		total += v
	}
	return total
}
