package game

import "testing"

func TestFameGain(t *testing.T) {
	tests := []struct {
		action  Action
		quality int
		want    int
	}{
		{action: ActionTrackRelease, quality: 8, want: 9},
		{action: ActionAlbumRelease, quality: 10, want: 15},
		{action: ActionConcert, quality: 0, want: 20},
		{action: ActionViralMoment, quality: 7, want: 28},
	}
	for _, tc := range tests {
		got := FameGain(tc.action, tc.quality)
		if got != tc.want {
			t.Fatalf("action=%s quality=%d got=%d want=%d", tc.action, tc.quality, got, tc.want)
		}
	}
}

func TestReputationGain(t *testing.T) {
	if got := ReputationGain(ActionHighQualityContent, 8, 0); got != 10 {
		t.Fatalf("high quality above 7 got=%d want=10", got)
	}
	if got := ReputationGain(ActionHighQualityContent, 7, 0); got != 5 {
		t.Fatalf("quality 7 falls back to base table, got=%d want=5", got)
	}
	if got := ReputationGain(ActionConsistentReleases, 0, 1.0); got != 5 {
		t.Fatalf("strong consistency got=%d want=5", got)
	}
	if got := ReputationGain(ActionTrackRelease, 5, 0); got != 1 {
		t.Fatalf("track release base got=%d want=1", got)
	}
}

func TestReputationPenalty(t *testing.T) {
	if got := ReputationPenalty(ActionLowQualityContent, 3); got != -10 {
		t.Fatalf("low quality got=%d want=-10", got)
	}
	if got := ReputationPenalty(ActionLowQualityContent, 4); got != 0 {
		t.Fatalf("quality 4 is not penalized, got=%d", got)
	}
	if got := ReputationPenalty(ActionInactivity, 0); got != -5 {
		t.Fatalf("inactivity got=%d want=-5", got)
	}
}

func TestStreams(t *testing.T) {
	// reach = 50*10k + 30*5k + 10000/2 = 655000, quality mult 0.8
	if got := Streams(50, 30, 10_000, 8); got != 524_000 {
		t.Fatalf("got=%d want=524000", got)
	}
	// quality mult floors at 0.3
	if got := Streams(10, 0, 0, 1); got != 30_000 {
		t.Fatalf("floored quality got=%d want=30000", got)
	}
}

func TestEarningsCents(t *testing.T) {
	if got := EarningsCents(100_000, ContentSingle, 5, 0); got != 30_000 {
		t.Fatalf("base rate got=%d want=30000", got)
	}
	if got := EarningsCents(100_000, ContentSingle, 8, 0); got != 60_000 {
		t.Fatalf("quality kicker got=%d want=60000", got)
	}
	// marketing bump caps at +0.002 no matter the spend
	capped := EarningsCents(100_000, ContentSingle, 5, 100_000*CentsPerDollar)
	if capped != 50_000 {
		t.Fatalf("capped marketing got=%d want=50000", capped)
	}
	if got := EarningsCents(1_000, ContentType("podcast"), 5, 0); got != 0 {
		t.Fatalf("unknown type got=%d want=0", got)
	}
}

func TestContentFollowers(t *testing.T) {
	if got := ContentFollowers(ContentSingle, 0, 50); got != 0 {
		t.Fatalf("zero views got=%d want=0", got)
	}
	if got := ContentFollowers(ContentType("podcast"), 1_000, 50); got != 0 {
		t.Fatalf("unknown type got=%d want=0", got)
	}
	// absurd engagement still respects the per-type cap
	if got := ContentFollowers(ContentSingle, 1_000_000_000, 10_000); got != 10_000 {
		t.Fatalf("cap got=%d want=10000", got)
	}
	small := ContentFollowers(ContentSingle, 1_000, 50)
	big := ContentFollowers(ContentSingle, 1_000_000, 50)
	if small <= 0 || big <= small {
		t.Fatalf("expected log growth: small=%d big=%d", small, big)
	}
}

func TestConcertEarningsCents(t *testing.T) {
	got := ConcertEarningsCents(100, 20*CentsPerDollar)
	want := int64(210_000) // 100 * $20 plus 5%
	if got != want {
		t.Fatalf("got=%d want=%d", got, want)
	}
}

func TestMerchEarningsCents(t *testing.T) {
	if got := MerchEarningsCents(200); got != 3_000 {
		t.Fatalf("got=%d want=3000", got)
	}
}

func TestNewFansAndFollowers(t *testing.T) {
	if got := NewFans(10, 10, 1.0); got != 1_500 {
		t.Fatalf("NewFans got=%d want=1500", got)
	}
	if got := NewFollowers(10, 10, PlatformFanpic); got != 6_000 {
		t.Fatalf("NewFollowers got=%d want=6000", got)
	}
	if got := NewFollowers(10, 10, Platform("myspace")); got != 0 {
		t.Fatalf("unknown platform got=%d want=0", got)
	}
}

func TestQualityScore(t *testing.T) {
	if got := QualityScore(nil, 100); got != MinQuality {
		t.Fatalf("no tiers got=%d want=%d", got, MinQuality)
	}
	if got := QualityScore([]int{8, 8, 8}, 0); got != 8 {
		t.Fatalf("plain average got=%d want=8", got)
	}
	if got := QualityScore([]int{8, 8, 8}, 100); got != 10 {
		t.Fatalf("skill bonus got=%d want=10", got)
	}
	if got := QualityScore([]int{10, 10}, 100); got != MaxQuality {
		t.Fatalf("clamped got=%d want=%d", got, MaxQuality)
	}
}
