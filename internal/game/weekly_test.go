package game

import (
	"math/rand"
	"testing"
)

func testPlayer() *Player {
	return &Player{
		StageName:  "MC Test",
		Fame:       50,
		Reputation: 30,
		Fans:       10_000,
		Week:       1,
		Year:       StartingYear,
		Energy:     MaxEnergy,
		Social:     newSocial(),
	}
}

func TestProcessWeekViewInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	player := testPlayer()
	releases := []Release{{
		ID:        "rel_1",
		ContentID: "track_1",
		Type:      ContentSingle,
		Title:     "First Single",
		Platform:  PlatformStreamify,
		Quality:   8,
		Week:      1,
		Year:      StartingYear,
		Views:     10_000,
	}}

	prevViews := releases[0].Views
	for i := 0; i < 15; i++ {
		processWeek(rng, player, releases, CurrentLevel(player.Fame, player.Reputation))
		player.Week++

		r := releases[0]
		if r.Views < prevViews {
			t.Fatalf("week %d: views decreased %d -> %d", i, prevViews, r.Views)
		}
		if r.WeeklyViews < minWeeklyViews {
			t.Fatalf("week %d: weekly views %d below floor", i, r.WeeklyViews)
		}
		if r.WeeklyViews > r.PeakWeeklyViews {
			t.Fatalf("week %d: weekly %d exceeds peak %d", i, r.WeeklyViews, r.PeakWeeklyViews)
		}
		if len(r.ViewHistory) > ViewHistoryLen {
			t.Fatalf("week %d: history len %d exceeds %d", i, len(r.ViewHistory), ViewHistoryLen)
		}
		prevViews = r.Views
	}
}

func TestChartPositionSticky(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	r := &Release{Views: 600_000}
	updateChartPosition(rng, r)
	if r.ChartPosition < 21 || r.ChartPosition > 50 {
		t.Fatalf("top-50 entry got position %d", r.ChartPosition)
	}

	r.Views = 2_000_000
	updateChartPosition(rng, r)
	if r.ChartPosition < 1 || r.ChartPosition > 20 {
		t.Fatalf("top-20 entry got position %d", r.ChartPosition)
	}

	held := r.ChartPosition
	for i := 0; i < 10; i++ {
		updateChartPosition(rng, r)
	}
	if r.ChartPosition != held {
		t.Fatalf("position moved %d -> %d after milestone", held, r.ChartPosition)
	}
}

func countByTitle(notes []Notification, title string) int {
	n := 0
	for _, note := range notes {
		if note.Title == title {
			n++
		}
	}
	return n
}

func TestViralNotifiedOnce(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	player := testPlayer()
	releases := []Release{{
		ID:        "rel_1",
		ContentID: "track_1",
		Type:      ContentSingle,
		Title:     "Sleeper Hit",
		Platform:  PlatformCliply,
		Quality:   9,
		Week:      1,
		Year:      StartingYear,
		Views:     1_500_000,
	}}

	upd := processWeek(rng, player, releases, CurrentLevel(player.Fame, player.Reputation))
	if !releases[0].Viral {
		t.Fatalf("expected release past %d views to flip viral", viralTotalViews)
	}
	if !releases[0].NotifiedViral {
		t.Fatalf("expected viral guard to be set")
	}
	if got := countByTitle(upd.Notifications, "Gone viral!"); got != 1 {
		t.Fatalf("first crossing produced %d viral notes, want 1", got)
	}

	player.Week++
	upd = processWeek(rng, player, releases, CurrentLevel(player.Fame, player.Reputation))
	if got := countByTitle(upd.Notifications, "Gone viral!"); got != 0 {
		t.Fatalf("repeat week produced %d viral notes, want 0", got)
	}
}

func TestConsistencyBonus(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	player := testPlayer()
	player.Week = 4
	releases := []Release{
		{ID: "rel_1", Title: "A", Type: ContentSingle, Platform: PlatformStreamify, Quality: 5, Week: 3, Year: StartingYear},
		{ID: "rel_2", Title: "B", Type: ContentSingle, Platform: PlatformStreamify, Quality: 5, Week: 4, Year: StartingYear},
	}

	upd := processWeek(rng, player, releases, CurrentLevel(player.Fame, player.Reputation))
	if upd.ReputationChange != 5 {
		t.Fatalf("got rep change %d, want 5", upd.ReputationChange)
	}
	if got := countByTitle(upd.Notifications, "Consistency pays"); got != 1 {
		t.Fatalf("got %d consistency notes, want 1", got)
	}
}

func TestInactivityPenalty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	player := testPlayer()
	player.Fame, player.Reputation = 10, 10
	player.Week = 20
	releases := []Release{
		{ID: "rel_1", Title: "Old News", Type: ContentSingle, Platform: PlatformStreamify, Quality: 5, Week: 1, Year: StartingYear},
	}

	upd := processWeek(rng, player, releases, CurrentLevel(player.Fame, player.Reputation))
	if upd.ReputationChange != -5 {
		t.Fatalf("got rep change %d, want -5", upd.ReputationChange)
	}
	// No active releases: fan growth runs at a tenth of the level multiplier.
	want := NewFans(10, 10, CurrentLevel(10, 10).FanGrowthMult*0.1)
	if upd.FanGrowth != want {
		t.Fatalf("got fan growth %d, want %d", upd.FanGrowth, want)
	}
}

func TestWeeklyEarningsChannel(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	player := testPlayer()
	releases := []Release{{
		ID:        "rel_1",
		ContentID: "video_1",
		Type:      ContentVideo,
		Title:     "The Video",
		Platform:  PlatformViewtube,
		Quality:   7,
		Week:      1,
		Year:      StartingYear,
		Views:     50_000,
	}}

	upd := processWeek(rng, player, releases, CurrentLevel(player.Fame, player.Reputation))
	if upd.EarningsByChan[ChannelVideo] <= 0 {
		t.Fatalf("video release earned %d on video channel", upd.EarningsByChan[ChannelVideo])
	}
	if upd.EarningsByChan[ChannelStreaming] != 0 {
		t.Fatalf("video release leaked %d into streaming", upd.EarningsByChan[ChannelStreaming])
	}
	if got := countByTitle(upd.Notifications, "Weekly royalties"); got != 1 {
		t.Fatalf("got %d royalty notes, want 1", got)
	}
}
