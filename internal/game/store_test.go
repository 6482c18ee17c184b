package game

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

type recordingSaver struct {
	saves []State
	fail  error
}

func (r *recordingSaver) SaveSnapshot(s State) error {
	if r.fail != nil {
		return r.fail
	}
	r.saves = append(r.saves, s)
	return nil
}

func newTestStore(t *testing.T) (*Store, *recordingSaver) {
	t.Helper()
	saver := &recordingSaver{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewStore(logger, saver, 42), saver
}

func mustCreate(t *testing.T, s *Store) {
	t.Helper()
	if _, err := s.CreateCharacter(CreateCharacterInput{StageName: "MC Test", HomeCity: "Atlanta"}); err != nil {
		t.Fatalf("create character: %v", err)
	}
}

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func TestCreateCharacterBaseline(t *testing.T) {
	store, saver := newTestStore(t)
	res, err := store.CreateCharacter(CreateCharacterInput{StageName: "MC Test", HomeCity: "Atlanta"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p := res.State.Player
	if p.Age != StartingAge || p.Year != StartingYear || p.Week != 1 {
		t.Fatalf("calendar baseline wrong: age=%d year=%d week=%d", p.Age, p.Year, p.Week)
	}
	if p.NetWorthCents != StartingNetWorthCents {
		t.Fatalf("net worth %d, want %d", p.NetWorthCents, StartingNetWorthCents)
	}
	if p.Energy != MaxEnergy {
		t.Fatalf("energy %d, want %d", p.Energy, MaxEnergy)
	}
	if p.Skills != (Skills{Lyrics: 1, Flow: 1, Charisma: 1, Business: 1, Production: 1}) {
		t.Fatalf("skills baseline wrong: %+v", p.Skills)
	}
	if res.State.Level != 1 {
		t.Fatalf("level %d, want 1", res.State.Level)
	}
	if len(saver.saves) != 1 {
		t.Fatalf("expected one persisted snapshot, got %d", len(saver.saves))
	}

	if _, err := store.CreateCharacter(CreateCharacterInput{StageName: "Someone Else"}); !errors.Is(err, ErrGameInProgress) {
		t.Fatalf("second create got %v, want ErrGameInProgress", err)
	}
}

func TestCreateCharacterBadName(t *testing.T) {
	store, _ := newTestStore(t)
	if _, err := store.CreateCharacter(CreateCharacterInput{StageName: "!"}); !errors.Is(err, ErrInvalidStageName) {
		t.Fatalf("got %v, want ErrInvalidStageName", err)
	}
	if store.State().GameStarted {
		t.Fatalf("rejected create must not start a game")
	}
}

func TestUpgradeSkill(t *testing.T) {
	store, _ := newTestStore(t)
	mustCreate(t, store)
	if _, err := store.UpdatePlayer(PlayerPatch{
		Energy: intPtr(15),
		Skills: &Skills{Lyrics: 30, Flow: 1, Charisma: 1, Business: 1, Production: 1},
	}); err != nil {
		t.Fatalf("patch: %v", err)
	}

	res, err := store.UpgradeSkill(UpgradeSkillInput{Skill: "lyrics"})
	if err != nil {
		t.Fatalf("upgrade: %v", err)
	}
	if res.State.Player.Skills.Lyrics != 31 || res.State.Player.Energy != 11 {
		t.Fatalf("got lyrics=%d energy=%d, want 31/11", res.State.Player.Skills.Lyrics, res.State.Player.Energy)
	}

	if _, err := store.UpdatePlayer(PlayerPatch{Energy: intPtr(3)}); err != nil {
		t.Fatalf("patch: %v", err)
	}
	if _, err := store.UpgradeSkill(UpgradeSkillInput{Skill: "lyrics"}); !errors.Is(err, ErrInsufficientEnergy) {
		t.Fatalf("got %v, want ErrInsufficientEnergy", err)
	}
	p := store.State().Player
	if p.Skills.Lyrics != 31 || p.Energy != 3 {
		t.Fatalf("rejection mutated state: lyrics=%d energy=%d", p.Skills.Lyrics, p.Energy)
	}

	if _, err := store.UpgradeSkill(UpgradeSkillInput{Skill: "juggling"}); !errors.Is(err, ErrUnknownSkill) {
		t.Fatalf("got %v, want ErrUnknownSkill", err)
	}
	if _, err := store.UpdatePlayer(PlayerPatch{
		Energy: intPtr(MaxEnergy),
		Skills: &Skills{Lyrics: 100, Flow: 1, Charisma: 1, Business: 1, Production: 1},
	}); err != nil {
		t.Fatalf("patch: %v", err)
	}
	if _, err := store.UpgradeSkill(UpgradeSkillInput{Skill: "lyrics"}); !errors.Is(err, ErrSkillMaxed) {
		t.Fatalf("got %v, want ErrSkillMaxed", err)
	}
}

func TestReleaseContentOnce(t *testing.T) {
	store, _ := newTestStore(t)
	mustCreate(t, store)
	if _, err := store.AddTrack(Track{ID: "track_1", Title: "Intro", Quality: 8}); err != nil {
		t.Fatalf("add track: %v", err)
	}

	res, err := store.ReleaseContent(ReleaseContentInput{ContentID: "track_1", Platform: PlatformStreamify})
	if err != nil {
		t.Fatalf("release: %v", err)
	}
	if len(res.State.Releases) != 1 {
		t.Fatalf("got %d releases, want 1", len(res.State.Releases))
	}
	rel := res.State.Releases[0]
	if rel.ContentID != "track_1" || rel.Type != ContentSingle || rel.Quality != 8 {
		t.Fatalf("release identity wrong: %+v", rel)
	}
	if rel.Views != rel.WeeklyViews || rel.Views != rel.PeakWeeklyViews {
		t.Fatalf("launch views not mirrored: %+v", rel)
	}
	if res.State.Player.Fame <= 0 {
		t.Fatalf("release granted no fame")
	}
	if len(res.State.Player.Achievements) == 0 {
		t.Fatalf("first release achievement missing")
	}

	if _, err := store.ReleaseContent(ReleaseContentInput{ContentID: "track_1", Platform: PlatformCliply}); !errors.Is(err, ErrAlreadyReleased) {
		t.Fatalf("got %v, want ErrAlreadyReleased", err)
	}
	if got := len(store.State().Releases); got != 1 {
		t.Fatalf("double release added a record: %d", got)
	}
}

func TestReleaseRejections(t *testing.T) {
	store, _ := newTestStore(t)
	mustCreate(t, store)

	if _, err := store.ReleaseContent(ReleaseContentInput{ContentID: "missing", Platform: PlatformStreamify}); !errors.Is(err, ErrContentNotFound) {
		t.Fatalf("got %v, want ErrContentNotFound", err)
	}

	if _, err := store.AddTrack(Track{ID: "track_1", Title: "Album Cut", Quality: 6}); err != nil {
		t.Fatalf("add track: %v", err)
	}
	if _, err := store.ReleaseContent(ReleaseContentInput{ContentID: "track_1", Platform: Platform("myspace")}); !errors.Is(err, ErrUnknownPlatform) {
		t.Fatalf("got %v, want ErrUnknownPlatform", err)
	}

	if _, err := store.MarkTracksInAlbum([]string{"track_1"}); err != nil {
		t.Fatalf("mark: %v", err)
	}
	if _, err := store.ReleaseContent(ReleaseContentInput{ContentID: "track_1", Platform: PlatformStreamify}); !errors.Is(err, ErrTrackInAlbum) {
		t.Fatalf("got %v, want ErrTrackInAlbum", err)
	}

	if _, err := store.AddTrack(Track{ID: "track_2", Title: "Free Track", Quality: 6}); err != nil {
		t.Fatalf("add track: %v", err)
	}
	before := store.State().Player.NetWorthCents
	if _, err := store.ReleaseContent(ReleaseContentInput{
		ContentID: "track_2", Platform: PlatformStreamify, MarketingCents: before + 1,
	}); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("got %v, want ErrInsufficientFunds", err)
	}
	if store.State().Player.NetWorthCents != before {
		t.Fatalf("rejected release touched net worth")
	}
}

func TestAnnounceReleaseIdempotent(t *testing.T) {
	store, _ := newTestStore(t)
	mustCreate(t, store)
	if _, err := store.AddTrack(Track{ID: "track_1", Title: "Single", Quality: 7}); err != nil {
		t.Fatalf("add track: %v", err)
	}
	res, err := store.ReleaseContent(ReleaseContentInput{ContentID: "track_1", Platform: PlatformStreamify})
	if err != nil {
		t.Fatalf("release: %v", err)
	}
	relID := res.State.Releases[0].ID

	res, err = store.AnnounceRelease(relID)
	if err != nil {
		t.Fatalf("announce: %v", err)
	}
	if !res.State.Releases[0].Announced {
		t.Fatalf("announce did not flag the release")
	}
	viewsAfter := res.State.Releases[0].Views

	if _, err := store.AnnounceRelease(relID); !errors.Is(err, ErrAlreadyAnnounced) {
		t.Fatalf("got %v, want ErrAlreadyAnnounced", err)
	}
	if got := store.State().Releases[0].Views; got != viewsAfter {
		t.Fatalf("rejected announce moved views %d -> %d", viewsAfter, got)
	}

	if _, err := store.AnnounceRelease("rel_missing"); !errors.Is(err, ErrReleaseNotFound) {
		t.Fatalf("got %v, want ErrReleaseNotFound", err)
	}
}

func TestTrackVideoGuards(t *testing.T) {
	store, _ := newTestStore(t)
	mustCreate(t, store)
	if _, err := store.AddTrack(Track{ID: "track_1", Title: "Single", Quality: 7}); err != nil {
		t.Fatalf("add track: %v", err)
	}
	if _, err := store.AddMusicVideo(MusicVideo{ID: "video_1", Title: "Cut One", Quality: 7, TrackID: "track_1"}); err != nil {
		t.Fatalf("add video: %v", err)
	}
	if _, err := store.MarkTrackHasVideo("track_1"); err != nil {
		t.Fatalf("mark: %v", err)
	}
	if _, err := store.AddMusicVideo(MusicVideo{ID: "video_2", Title: "Cut Two", Quality: 7, TrackID: "track_1"}); !errors.Is(err, ErrTrackHasVideo) {
		t.Fatalf("got %v, want ErrTrackHasVideo", err)
	}
	if _, err := store.AddTrack(Track{ID: "track_1", Title: "Clone", Quality: 5}); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("got %v, want ErrDuplicateID", err)
	}
}

func TestAdvanceWeekCalendarAndEnergy(t *testing.T) {
	store, _ := newTestStore(t)
	mustCreate(t, store)

	res, err := store.AdvanceWeek()
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if res.State.Player.Week != 2 || res.State.Player.Year != StartingYear {
		t.Fatalf("got week=%d year=%d", res.State.Player.Week, res.State.Player.Year)
	}
	if res.State.Player.Energy != MaxEnergy {
		t.Fatalf("energy not refilled: %d", res.State.Player.Energy)
	}

	for i := 0; i < WeeksPerYear-1; i++ {
		if res, err = store.AdvanceWeek(); err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
	}
	p := res.State.Player
	if p.Week != 1 || p.Year != StartingYear+1 || p.Age != StartingAge+1 {
		t.Fatalf("rollover wrong: week=%d year=%d age=%d", p.Week, p.Year, p.Age)
	}
}

func TestEarningsLedgerInvariant(t *testing.T) {
	store, _ := newTestStore(t)
	mustCreate(t, store)
	if _, err := store.UpdatePlayer(PlayerPatch{Fame: intPtr(40), Reputation: intPtr(30), Fans: int64Ptr(50_000)}); err != nil {
		t.Fatalf("patch: %v", err)
	}
	if _, err := store.AddTrack(Track{ID: "track_1", Title: "Hit", Quality: 9}); err != nil {
		t.Fatalf("add track: %v", err)
	}
	if _, err := store.ReleaseContent(ReleaseContentInput{ContentID: "track_1", Platform: PlatformStreamify}); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, err := store.AddConcert(ConcertInput{Venue: "The Basement", City: "Atlanta", Attendance: 200, TicketPriceCents: 15 * CentsPerDollar, Quality: 7}); err != nil {
		t.Fatalf("concert: %v", err)
	}
	for i := 0; i < 6; i++ {
		if _, err := store.AdvanceWeek(); err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
	}

	e := store.State().Earnings
	sum := e.StreamingCents + e.VideoCents + e.ConcertsCents + e.MerchCents
	if e.TotalCents != sum {
		t.Fatalf("ledger drifted: total=%d sum=%d", e.TotalCents, sum)
	}
	if e.ConcertsCents <= 0 || e.MerchCents <= 0 || e.StreamingCents <= 0 {
		t.Fatalf("expected all played channels credited: %+v", e)
	}
}

func TestConcertEnergyGate(t *testing.T) {
	store, _ := newTestStore(t)
	mustCreate(t, store)
	if _, err := store.UpdatePlayer(PlayerPatch{Energy: intPtr(10)}); err != nil {
		t.Fatalf("patch: %v", err)
	}
	if _, err := store.AddConcert(ConcertInput{Venue: "Bar", Attendance: 50, TicketPriceCents: 500, Quality: 5}); !errors.Is(err, ErrInsufficientEnergy) {
		t.Fatalf("got %v, want ErrInsufficientEnergy", err)
	}
	if got := len(store.State().Concerts); got != 0 {
		t.Fatalf("rejected concert recorded: %d", got)
	}
}

func TestWorkJob(t *testing.T) {
	store, _ := newTestStore(t)
	mustCreate(t, store)

	res, err := store.WorkJob(WorkJobInput{Job: "barista"})
	if err != nil {
		t.Fatalf("work: %v", err)
	}
	// 6000 cents * (1 + business 1/100) * opportunity 1.0
	wantWorth := StartingNetWorthCents + 6_060
	if res.State.Player.NetWorthCents != wantWorth {
		t.Fatalf("net worth %d, want %d", res.State.Player.NetWorthCents, wantWorth)
	}
	if res.State.Player.Energy != MaxEnergy-25 {
		t.Fatalf("energy %d, want %d", res.State.Player.Energy, MaxEnergy-25)
	}

	if _, err := store.WorkJob(WorkJobInput{Job: "astronaut"}); !errors.Is(err, ErrUnknownJob) {
		t.Fatalf("got %v, want ErrUnknownJob", err)
	}
	if _, err := store.UpdatePlayer(PlayerPatch{Energy: intPtr(5)}); err != nil {
		t.Fatalf("patch: %v", err)
	}
	if _, err := store.WorkJob(WorkJobInput{Job: "barista"}); !errors.Is(err, ErrInsufficientEnergy) {
		t.Fatalf("got %v, want ErrInsufficientEnergy", err)
	}
}

func TestBuyItem(t *testing.T) {
	store, _ := newTestStore(t)
	mustCreate(t, store)

	// $100 starting cash cannot afford the $500 mic.
	if _, err := store.BuyItem(BuyItemInput{ItemID: "mic_pro"}); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("got %v, want ErrInsufficientFunds", err)
	}
	if _, err := store.UpdatePlayer(PlayerPatch{NetWorthCents: int64Ptr(1_000 * CentsPerDollar)}); err != nil {
		t.Fatalf("patch: %v", err)
	}
	res, err := store.BuyItem(BuyItemInput{ItemID: "mic_pro"})
	if err != nil {
		t.Fatalf("buy: %v", err)
	}
	if got := res.State.Player.NetWorthCents; got != 500*CentsPerDollar {
		t.Fatalf("net worth %d, want %d", got, 500*CentsPerDollar)
	}
	if len(res.State.Player.Inventory) != 1 {
		t.Fatalf("inventory len %d, want 1", len(res.State.Player.Inventory))
	}
	if _, err := store.BuyItem(BuyItemInput{ItemID: "mic_pro"}); !errors.Is(err, ErrItemOwned) {
		t.Fatalf("got %v, want ErrItemOwned", err)
	}
	if _, err := store.BuyItem(BuyItemInput{ItemID: "yacht"}); !errors.Is(err, ErrUnknownItem) {
		t.Fatalf("got %v, want ErrUnknownItem", err)
	}
}

func TestUpdatePlayerClamps(t *testing.T) {
	store, _ := newTestStore(t)
	mustCreate(t, store)
	res, err := store.UpdatePlayer(PlayerPatch{Fame: intPtr(150), Reputation: intPtr(-10), Energy: intPtr(-5)})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	p := res.State.Player
	if p.Fame != MaxStat || p.Reputation != 0 || p.Energy != 0 {
		t.Fatalf("clamps failed: fame=%d rep=%d energy=%d", p.Fame, p.Reputation, p.Energy)
	}
	if res.State.Level != 1 {
		t.Fatalf("reputation 0 must cap the level, got %d", res.State.Level)
	}
}

func TestLoadStateRederivesLevel(t *testing.T) {
	store, _ := newTestStore(t)
	mustCreate(t, store)
	if _, err := store.UpdatePlayer(PlayerPatch{Fame: intPtr(70), Reputation: intPtr(60)}); err != nil {
		t.Fatalf("patch: %v", err)
	}
	snap := store.State()
	snap.Level = 1 // stale on-disk value must be ignored

	fresh, _ := newTestStore(t)
	res, err := fresh.LoadState(snap)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.State.Level != 6 {
		t.Fatalf("level %d, want 6", res.State.Level)
	}
	if res.State.Player.StageName != "MC Test" {
		t.Fatalf("player lost in load: %+v", res.State.Player)
	}

	bad := snap
	bad.Slot = 9
	if _, err := fresh.LoadState(bad); !errors.Is(err, ErrInvalidSlot) {
		t.Fatalf("got %v, want ErrInvalidSlot", err)
	}
}

func TestSubscribeGetsSnapshots(t *testing.T) {
	store, _ := newTestStore(t)
	var got []State
	store.Subscribe(func(s State) { got = append(got, s) })
	mustCreate(t, store)
	if len(got) != 1 {
		t.Fatalf("subscriber saw %d snapshots, want 1", len(got))
	}
	if !got[0].GameStarted {
		t.Fatalf("snapshot missing game state")
	}

	// Snapshots must not alias store internals.
	got[0].Player.Fame = 99
	if store.State().Player.Fame == 99 {
		t.Fatalf("snapshot aliases store state")
	}
}

func TestNoGameGuards(t *testing.T) {
	store, _ := newTestStore(t)
	if _, err := store.AdvanceWeek(); !errors.Is(err, ErrNoGame) {
		t.Fatalf("advance got %v, want ErrNoGame", err)
	}
	if _, err := store.AddTrack(Track{ID: "t", Title: "x"}); !errors.Is(err, ErrNoGame) {
		t.Fatalf("add track got %v, want ErrNoGame", err)
	}
	if _, err := store.WorkJob(WorkJobInput{Job: "barista"}); !errors.Is(err, ErrNoGame) {
		t.Fatalf("work got %v, want ErrNoGame", err)
	}
}
