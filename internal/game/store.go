package game

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Saver persists a full state snapshot. Persistence failures are non-fatal:
// the store logs them and keeps playing in memory.
type Saver interface {
	SaveSnapshot(s State) error
}

// Store owns the canonical game state. All mutation goes through the closed
// set of intent methods below; each one validates, mutates, re-derives the
// career level, persists, then notifies subscribers. Single-writer: the mutex
// serializes intents so every transition is atomic and all-or-nothing.
type Store struct {
	mu    sync.Mutex
	log   *slog.Logger
	rng   *rand.Rand
	saver Saver
	state State
	subs  []func(State)
}

// NewStore builds a store around an empty slot-1 state. Seed 0 means
// free-running randomness; tests pass a fixed seed for reproducible weeks.
func NewStore(logger *slog.Logger, saver Saver, seed int64) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Store{
		log:   logger,
		rng:   rand.New(rand.NewSource(seed)),
		saver: saver,
		state: State{Slot: 1},
	}
}

// State returns a deep-copied snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Subscribe registers a callback invoked with a fresh snapshot after every
// applied intent. Callbacks run outside the store lock.
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// SetSlot changes which save slot this session writes to. Only valid before
// a game is created or right after a wholesale load.
func (s *Store) SetSlot(slot int) error {
	if slot < 1 || slot > SaveSlots {
		return ErrInvalidSlot
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Slot = slot
	return nil
}

// mutate is the single transition path: lock, validate+apply fn, clamp,
// re-derive the level, persist, notify. fn must validate before mutating so a
// rejection leaves state untouched.
func (s *Store) mutate(op string, persist bool, fn func() error) (Result, error) {
	s.mu.Lock()
	before := CurrentLevel(s.state.Player.Fame, s.state.Player.Reputation)
	if err := fn(); err != nil {
		res := Result{State: s.state.Clone(), LevelBefore: before.ID, LevelAfter: before.ID}
		s.mu.Unlock()
		return res, err
	}
	s.clampPlayerLocked()
	s.deriveLevelLocked()
	// Level-up feed entries only fire on economic intents, never on a
	// wholesale load jumping straight to a high level.
	if persist && s.state.Level > before.ID {
		lvl := Levels()[s.state.Level-1]
		s.unlockAchievementLocked(fmt.Sprintf("level_%d", lvl.ID), "Reached "+lvl.Name)
		s.pushNotificationLocked(newNotification(NoteSuccess, "Level up",
			fmt.Sprintf("You are now a %s. Unlocked: %s", lvl.Name, lvl.Unlocks),
			s.state.Player.Week, s.state.Player.Year))
	}
	s.state.LastPlayed = time.Now().UTC()
	if persist {
		s.persistLocked(op)
	}
	snap := s.state.Clone()
	after := snap.Level
	s.mu.Unlock()
	s.notifyAll(snap)
	return Result{State: snap, LevelBefore: before.ID, LevelAfter: after}, nil
}

func (s *Store) clampPlayerLocked() {
	p := &s.state.Player
	p.Fame = clampStat(p.Fame)
	p.Reputation = clampStat(p.Reputation)
	p.Energy = clampEnergy(p.Energy)
	p.Fans = clampInt64(p.Fans, 0)
	p.Skills.Lyrics = clampSkill(p.Skills.Lyrics)
	p.Skills.Flow = clampSkill(p.Skills.Flow)
	p.Skills.Charisma = clampSkill(p.Skills.Charisma)
	p.Skills.Business = clampSkill(p.Skills.Business)
	p.Skills.Production = clampSkill(p.Skills.Production)
}

func (s *Store) deriveLevelLocked() {
	p := s.state.Player
	s.state.Level = CurrentLevel(p.Fame, p.Reputation).ID
	s.state.LevelProgress = LevelProgress(p.Fame, p.Reputation)
}

func (s *Store) persistLocked(op string) {
	if s.saver == nil || !s.state.GameStarted {
		return
	}
	if err := s.saver.SaveSnapshot(s.state.Clone()); err != nil {
		s.log.Warn("autosave failed", "op", op, "slot", s.state.Slot, "err", err)
	}
}

func (s *Store) notifyAll(snap State) {
	for _, fn := range s.subs {
		fn(snap)
	}
}

func (s *Store) pushNotificationLocked(n Notification) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	queue := append([]Notification{n}, s.state.Notifications...)
	if len(queue) > MaxNotification {
		queue = queue[:MaxNotification]
	}
	s.state.Notifications = queue
}

func (s *Store) unlockAchievementLocked(id, title string) {
	for _, a := range s.state.Player.Achievements {
		if a.ID == id {
			return
		}
	}
	p := &s.state.Player
	p.Achievements = append(p.Achievements, Achievement{ID: id, Title: title, Week: p.Week, Year: p.Year})
	s.pushNotificationLocked(newNotification(NoteAchievement, "Achievement unlocked", title, p.Week, p.Year))
}

// CreateCharacter starts a new game in the current slot.
func (s *Store) CreateCharacter(in CreateCharacterInput) (Result, error) {
	return s.mutate("create_character", true, func() error {
		if s.state.GameStarted {
			return ErrGameInProgress
		}
		if err := ValidateStageName(in.StageName); err != nil {
			return err
		}
		slot := s.state.Slot
		s.state = State{
			Player: Player{
				StageName:     in.StageName,
				AvatarID:      in.AvatarID,
				HomeCity:      in.HomeCity,
				Age:           StartingAge,
				Year:          StartingYear,
				Week:          1,
				NetWorthCents: StartingNetWorthCents,
				Energy:        MaxEnergy,
				Skills:        Skills{Lyrics: 1, Flow: 1, Charisma: 1, Business: 1, Production: 1},
				Social:        newSocial(),
			},
			Slot:        slot,
			GameStarted: true,
		}
		s.pushNotificationLocked(newNotification(NoteInfo, "Welcome to the grind",
			fmt.Sprintf("%s arrives in %s with $%.0f and a dream", in.StageName, in.HomeCity, CentsToDollars(StartingNetWorthCents)), 1, StartingYear))
		return nil
	})
}

// LoadState replaces the entire state wholesale. The stored level field is
// never trusted; mutate re-derives it before returning.
func (s *Store) LoadState(snapshot State) (Result, error) {
	return s.mutate("load_state", false, func() error {
		if snapshot.Slot < 1 || snapshot.Slot > SaveSlots {
			return ErrInvalidSlot
		}
		s.state = snapshot.Clone()
		if s.state.Player.Social == nil {
			s.state.Player.Social = newSocial()
		}
		return nil
	})
}

// Reset returns to the initial empty state, keeping the slot binding.
func (s *Store) Reset() (Result, error) {
	return s.mutate("reset", false, func() error {
		s.state = State{Slot: s.state.Slot}
		return nil
	})
}

// UpdatePlayer shallow-merges a patch into the player, then clamps and
// re-derives level and progress.
func (s *Store) UpdatePlayer(patch PlayerPatch) (Result, error) {
	return s.mutate("update_player", true, func() error {
		if !s.state.GameStarted {
			return ErrNoGame
		}
		p := &s.state.Player
		if patch.StageName != nil {
			if err := ValidateStageName(*patch.StageName); err != nil {
				return err
			}
			p.StageName = *patch.StageName
		}
		if patch.AvatarID != nil {
			p.AvatarID = *patch.AvatarID
		}
		if patch.HomeCity != nil {
			p.HomeCity = *patch.HomeCity
		}
		if patch.Fame != nil {
			p.Fame = *patch.Fame
		}
		if patch.Reputation != nil {
			p.Reputation = *patch.Reputation
		}
		if patch.Energy != nil {
			p.Energy = *patch.Energy
		}
		if patch.Fans != nil {
			p.Fans = *patch.Fans
		}
		if patch.NetWorthCents != nil {
			p.NetWorthCents = *patch.NetWorthCents
		}
		if patch.Skills != nil {
			p.Skills = *patch.Skills
		}
		return nil
	})
}

func (s *Store) AddTrack(t Track) (Result, error) {
	return s.mutate("add_track", true, func() error {
		if !s.state.GameStarted {
			return ErrNoGame
		}
		if t.ID == "" || t.Title == "" {
			return ErrContentNotFound
		}
		if s.state.contentExists(t.ID) {
			return ErrDuplicateID
		}
		t.Quality = clampQuality(t.Quality)
		t.Week, t.Year = s.state.Player.Week, s.state.Player.Year
		s.state.Tracks = append(s.state.Tracks, t)
		return nil
	})
}

func (s *Store) AddAlbum(a Album) (Result, error) {
	return s.mutate("add_album", true, func() error {
		if !s.state.GameStarted {
			return ErrNoGame
		}
		if a.ID == "" || a.Title == "" {
			return ErrContentNotFound
		}
		if s.state.contentExists(a.ID) {
			return ErrDuplicateID
		}
		a.Quality = clampQuality(a.Quality)
		a.Week, a.Year = s.state.Player.Week, s.state.Player.Year
		s.state.Albums = append(s.state.Albums, a)
		return nil
	})
}

func (s *Store) AddMusicVideo(v MusicVideo) (Result, error) {
	return s.mutate("add_music_video", true, func() error {
		if !s.state.GameStarted {
			return ErrNoGame
		}
		if v.ID == "" || v.Title == "" {
			return ErrContentNotFound
		}
		if s.state.contentExists(v.ID) {
			return ErrDuplicateID
		}
		if v.TrackID != "" {
			t := s.state.trackByID(v.TrackID)
			if t == nil {
				return ErrContentNotFound
			}
			if t.HasVideo {
				return ErrTrackHasVideo
			}
		}
		v.Quality = clampQuality(v.Quality)
		v.Week, v.Year = s.state.Player.Week, s.state.Player.Year
		s.state.Videos = append(s.state.Videos, v)
		return nil
	})
}

func (s *Store) AddCollaboration(c Collaboration) (Result, error) {
	return s.mutate("add_collaboration", true, func() error {
		if !s.state.GameStarted {
			return ErrNoGame
		}
		if c.ID == "" || c.Title == "" {
			return ErrContentNotFound
		}
		if s.state.contentExists(c.ID) {
			return ErrDuplicateID
		}
		c.Quality = clampQuality(c.Quality)
		c.Week, c.Year = s.state.Player.Week, s.state.Player.Year
		s.state.Collabs = append(s.state.Collabs, c)
		return nil
	})
}

// MarkTracksInAlbum flags tracks as album-locked. Missing ids are skipped;
// the UI only calls this with ids it just created.
func (s *Store) MarkTracksInAlbum(trackIDs []string) (Result, error) {
	return s.mutate("mark_tracks_in_album", true, func() error {
		if !s.state.GameStarted {
			return ErrNoGame
		}
		for _, id := range trackIDs {
			if t := s.state.trackByID(id); t != nil {
				t.InAlbum = true
			}
		}
		return nil
	})
}

// MarkTrackHasVideo flags a track as filmed. Missing id is a no-op.
func (s *Store) MarkTrackHasVideo(trackID string) (Result, error) {
	return s.mutate("mark_track_has_video", true, func() error {
		if !s.state.GameStarted {
			return ErrNoGame
		}
		if t := s.state.trackByID(trackID); t != nil {
			t.HasVideo = true
		}
		return nil
	})
}

const concertEnergyCost = 20

// AddConcert records a performed show. Level multipliers apply as the show is
// recorded, not at weekly settlement.
func (s *Store) AddConcert(in ConcertInput) (Result, error) {
	return s.mutate("add_concert", true, func() error {
		if !s.state.GameStarted {
			return ErrNoGame
		}
		p := &s.state.Player
		if p.Energy < concertEnergyCost {
			return ErrInsufficientEnergy
		}
		if in.Attendance < 0 || in.TicketPriceCents < 0 {
			return ErrContentNotFound
		}
		lvl := CurrentLevel(p.Fame, p.Reputation)
		quality := clampQuality(in.Quality)

		ticketCents := int64(math.Round(float64(ConcertEarningsCents(in.Attendance, in.TicketPriceCents)) * lvl.EarningsMult))
		merchCents := int64(math.Round(float64(MerchEarningsCents(in.Attendance)) * lvl.EarningsMult))
		fanGain := int64(math.Floor(float64(in.Attendance) * 0.3 * lvl.FanGrowthMult))

		p.Energy -= concertEnergyCost
		p.NetWorthCents += ticketCents + merchCents
		p.Fans += fanGain
		p.Fame += FameGain(ActionConcert, quality)
		p.Reputation += ReputationGain(ActionConcert, quality, 0)
		s.state.Earnings.credit(ChannelConcerts, ticketCents)
		s.state.Earnings.credit(ChannelMerch, merchCents)

		s.state.Concerts = append(s.state.Concerts, Concert{
			ID:            NewContentID("con"),
			Venue:         in.Venue,
			City:          in.City,
			Attendance:    in.Attendance,
			EarningsCents: ticketCents + merchCents,
			FanGain:       fanGain,
			Quality:       quality,
			Week:          p.Week,
			Year:          p.Year,
		})
		s.pushNotificationLocked(newNotification(NoteSuccess, "Show's over",
			fmt.Sprintf("Played %s in %s: $%.2f and %d new fans", in.Venue, in.City, CentsToDollars(ticketCents+merchCents), fanGain), p.Week, p.Year))
		return nil
	})
}

// AddSocialPost applies engagement-derived growth immediately, scaled by the
// current level's fan-growth multiplier.
func (s *Store) AddSocialPost(in SocialPostInput) (Result, error) {
	return s.mutate("add_social_post", true, func() error {
		if !s.state.GameStarted {
			return ErrNoGame
		}
		if !ValidPlatform(in.Platform) {
			return ErrUnknownPlatform
		}
		p := &s.state.Player
		lvl := CurrentLevel(p.Fame, p.Reputation)
		engagement := 0.8 + s.rng.Float64()*0.4
		followers := int64(math.Floor(float64(NewFollowers(p.Fame, p.Reputation, in.Platform)) * fanConversionRate * engagement * lvl.FanGrowthMult))
		stats := p.Social[in.Platform]
		stats.Followers += followers
		stats.Posts++
		p.Social[in.Platform] = stats
		p.Fans += followers / 5
		return nil
	})
}

func releaseAction(t ContentType) Action {
	switch t {
	case ContentAlbum:
		return ActionAlbumRelease
	case ContentCollab:
		return ActionCollaboration
	default:
		return ActionTrackRelease
	}
}

// ReleaseContent publishes a content item exactly once, creating its Release
// performance record and crediting launch streams and earnings.
func (s *Store) ReleaseContent(in ReleaseContentInput) (Result, error) {
	return s.mutate("release_content", true, func() error {
		if !s.state.GameStarted {
			return ErrNoGame
		}
		if !ValidPlatform(in.Platform) {
			return ErrUnknownPlatform
		}
		ctype, title, quality, ok := s.state.findContent(in.ContentID)
		if !ok {
			return ErrContentNotFound
		}
		if s.state.releaseFor(in.ContentID) != nil {
			return ErrAlreadyReleased
		}
		if ctype == ContentSingle {
			if t := s.state.trackByID(in.ContentID); t != nil && t.InAlbum {
				return ErrTrackInAlbum
			}
		}
		p := &s.state.Player
		if in.MarketingCents < 0 || in.MarketingCents > p.NetWorthCents {
			return ErrInsufficientFunds
		}
		lvl := CurrentLevel(p.Fame, p.Reputation)

		streams := int64(math.Floor(float64(Streams(p.Fame, p.Reputation, p.Fans, quality)) * lvl.FanGrowthMult))
		earned := int64(math.Round(float64(EarningsCents(streams, ctype, quality, in.MarketingCents)) * lvl.EarningsMult))
		fanGain := NewFans(p.Fame, p.Reputation, lvl.FanGrowthMult)

		rel := Release{
			ID:              NewContentID("rel"),
			ContentID:       in.ContentID,
			Type:            ctype,
			Title:           title,
			Platform:        in.Platform,
			Quality:         quality,
			Week:            p.Week,
			Year:            p.Year,
			Views:           streams,
			WeeklyViews:     streams,
			PeakWeeklyViews: streams,
			EarningsCents:   earned,
			ViewHistory:     []int64{streams},
		}
		s.state.Releases = append(s.state.Releases, rel)

		ch := ChannelStreaming
		if ctype == ContentVideo {
			ch = ChannelVideo
		}
		s.state.Earnings.credit(ch, earned)
		p.NetWorthCents += earned - in.MarketingCents
		p.Fans += fanGain
		p.Fame += FameGain(releaseAction(ctype), quality)
		if quality >= 7 {
			p.Reputation += ReputationGain(ActionHighQualityContent, quality, 0)
		}

		s.unlockAchievementLocked("first_release", "First release out in the world")
		s.pushNotificationLocked(newNotification(NoteSuccess, "Released",
			fmt.Sprintf("%q is live on %s with %d launch streams", title, in.Platform, streams), p.Week, p.Year))
		return nil
	})
}

// AnnounceRelease runs a one-time promo push for an existing release. Calling
// it twice is rejected, never double-applied.
func (s *Store) AnnounceRelease(releaseID string) (Result, error) {
	return s.mutate("announce_release", true, func() error {
		if !s.state.GameStarted {
			return ErrNoGame
		}
		r := s.state.releaseByID(releaseID)
		if r == nil {
			return ErrReleaseNotFound
		}
		if r.Announced {
			return ErrAlreadyAnnounced
		}
		p := &s.state.Player
		lvl := CurrentLevel(p.Fame, p.Reputation)

		reach := p.Fans + p.Social[r.Platform].Followers
		variance := 0.8 + s.rng.Float64()*0.4
		bonus := int64(math.Floor(float64(reach) * 0.15 * variance))
		if bonus < 50 {
			bonus = 50
		}
		earned := int64(math.Round(float64(EarningsCents(bonus, r.Type, r.Quality, 0)) * lvl.EarningsMult))

		r.Views += bonus
		r.WeeklyViews += bonus
		if r.WeeklyViews > r.PeakWeeklyViews {
			r.PeakWeeklyViews = r.WeeklyViews
		}
		r.EarningsCents += earned
		r.Announced = true

		ch := ChannelStreaming
		if r.Type == ContentVideo {
			ch = ChannelVideo
		}
		s.state.Earnings.credit(ch, earned)
		p.NetWorthCents += earned

		gained := ContentFollowers(r.Type, bonus, 50*variance)
		for _, plat := range []Platform{PlatformFanpic, PlatformCliply} {
			stats := p.Social[plat]
			stats.Followers += gained / 2
			p.Social[plat] = stats
		}

		s.pushNotificationLocked(newNotification(NoteInfo, "Announcement posted",
			fmt.Sprintf("Promo for %q reached %d people", r.Title, reach), p.Week, p.Year))
		return nil
	})
}

// AdvanceWeek runs the weekly settlement: release decay and growth, calendar
// roll, energy refill, follower growth, and the notification fan-out.
func (s *Store) AdvanceWeek() (Result, error) {
	return s.mutate("advance_week", true, func() error {
		if !s.state.GameStarted {
			return ErrNoGame
		}
		p := &s.state.Player
		lvl := CurrentLevel(p.Fame, p.Reputation)

		upd := processWeek(s.rng, p, s.state.Releases, lvl)

		p.Week++
		if p.Week > WeeksPerYear {
			p.Week = 1
			p.Year++
			p.Age = p.Year - StartingYear + StartingAge
		}
		p.Energy = MaxEnergy

		s.state.Earnings.ThisWeekCents = 0
		for ch, cents := range upd.EarningsByChan {
			s.state.Earnings.credit(ch, cents)
		}
		p.NetWorthCents += totalEarnings(upd.EarningsByChan)
		// Net worth may dip negative mid-week from spends; weekly settlement
		// is the one place it gets clamped back to zero.
		p.NetWorthCents = clampInt64(p.NetWorthCents, 0)

		p.Fans += upd.FanGrowth
		p.Fame += upd.FameChange
		p.Reputation += upd.ReputationChange

		for _, plat := range Platforms() {
			baseline := int64(p.Fame)*2 + p.Fans/500
			stats := p.Social[plat]
			stats.Followers += upd.SocialGrowth[plat] + baseline
			p.Social[plat] = stats
		}

		for _, n := range upd.Notifications {
			s.pushNotificationLocked(n)
		}
		if p.Fans >= 1_000_000 {
			s.unlockAchievementLocked("million_fans", "One million fans")
		}
		for i := range s.state.Releases {
			if s.state.Releases[i].Viral {
				s.unlockAchievementLocked("first_viral", "First viral hit")
				break
			}
		}
		return nil
	})
}

// skillUpgradeCost is a step function of the current skill level.
func skillUpgradeCost(level int) int {
	switch {
	case level >= 99:
		return 100
	case level >= 98:
		return 25
	case level >= 95:
		return 16
	case level >= 90:
		return 12
	case level >= 75:
		return 8
	case level >= 50:
		return 6
	case level >= 25:
		return 4
	default:
		return 2
	}
}

var skillMilestones = map[int]bool{25: true, 50: true, 75: true, 90: true, 95: true, 100: true}

func (p *Player) skillRef(name string) *int {
	switch name {
	case "lyrics":
		return &p.Skills.Lyrics
	case "flow":
		return &p.Skills.Flow
	case "charisma":
		return &p.Skills.Charisma
	case "business":
		return &p.Skills.Business
	case "production":
		return &p.Skills.Production
	}
	return nil
}

// UpgradeSkill spends energy to raise one skill by a single point.
func (s *Store) UpgradeSkill(in UpgradeSkillInput) (Result, error) {
	return s.mutate("upgrade_skill", true, func() error {
		if !s.state.GameStarted {
			return ErrNoGame
		}
		p := &s.state.Player
		sk := p.skillRef(in.Skill)
		if sk == nil {
			return ErrUnknownSkill
		}
		if *sk >= MaxSkill {
			return ErrSkillMaxed
		}
		cost := skillUpgradeCost(*sk)
		if p.Energy < cost {
			return ErrInsufficientEnergy
		}
		p.Energy -= cost
		*sk++
		if skillMilestones[*sk] {
			s.pushNotificationLocked(newNotification(NoteAchievement, "Skill milestone",
				fmt.Sprintf("%s reached %d", in.Skill, *sk), p.Week, p.Year))
		}
		return nil
	})
}

// JobDef describes one day job. Pay scales with the business skill and the
// current level's opportunity multiplier.
type JobDef struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PayCents   int64  `json:"pay_cents"`
	EnergyCost int    `json:"energy_cost"`
}

var jobTable = []JobDef{
	{ID: "barista", Name: "Barista shift", PayCents: 60 * CentsPerDollar, EnergyCost: 25},
	{ID: "delivery", Name: "Delivery run", PayCents: 80 * CentsPerDollar, EnergyCost: 30},
	{ID: "studio_hand", Name: "Studio hand", PayCents: 100 * CentsPerDollar, EnergyCost: 35},
	{ID: "session_musician", Name: "Session musician", PayCents: 150 * CentsPerDollar, EnergyCost: 40},
}

// Jobs returns the static job board.
func Jobs() []JobDef {
	out := make([]JobDef, len(jobTable))
	copy(out, jobTable)
	return out
}

// WorkJob trades energy for cash.
func (s *Store) WorkJob(in WorkJobInput) (Result, error) {
	return s.mutate("work_job", true, func() error {
		if !s.state.GameStarted {
			return ErrNoGame
		}
		var job *JobDef
		for i := range jobTable {
			if jobTable[i].ID == in.Job {
				job = &jobTable[i]
				break
			}
		}
		if job == nil {
			return ErrUnknownJob
		}
		p := &s.state.Player
		if p.Energy < job.EnergyCost {
			return ErrInsufficientEnergy
		}
		lvl := CurrentLevel(p.Fame, p.Reputation)
		pay := int64(math.Round(float64(job.PayCents) * (1 + float64(p.Skills.Business)/100) * lvl.OpportunityMult))
		p.Energy -= job.EnergyCost
		p.NetWorthCents += pay
		return nil
	})
}

// ShopItem is a static catalog entry.
type ShopItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CostCents int64  `json:"cost_cents"`
}

var shopCatalog = []ShopItem{
	{ID: "mic_pro", Name: "Studio condenser mic", CostCents: 500 * CentsPerDollar},
	{ID: "studio_monitors", Name: "Nearfield monitors", CostCents: 1_200 * CentsPerDollar},
	{ID: "camera_kit", Name: "Video camera kit", CostCents: 2_500 * CentsPerDollar},
	{ID: "gold_chain", Name: "Gold chain", CostCents: 5_000 * CentsPerDollar},
	{ID: "home_studio", Name: "Home studio buildout", CostCents: 10_000 * CentsPerDollar},
}

// Shop returns the static item catalog.
func Shop() []ShopItem {
	out := make([]ShopItem, len(shopCatalog))
	copy(out, shopCatalog)
	return out
}

// BuyItem debits net worth and appends to the append-only inventory.
func (s *Store) BuyItem(in BuyItemInput) (Result, error) {
	return s.mutate("buy_item", true, func() error {
		if !s.state.GameStarted {
			return ErrNoGame
		}
		var item *ShopItem
		for i := range shopCatalog {
			if shopCatalog[i].ID == in.ItemID {
				item = &shopCatalog[i]
				break
			}
		}
		if item == nil {
			return ErrUnknownItem
		}
		p := &s.state.Player
		for _, owned := range p.Inventory {
			if owned.ID == item.ID {
				return ErrItemOwned
			}
		}
		if p.NetWorthCents < item.CostCents {
			return ErrInsufficientFunds
		}
		p.NetWorthCents -= item.CostCents
		p.Inventory = append(p.Inventory, OwnedItem{
			ID: item.ID, Name: item.Name, CostCents: item.CostCents,
			Week: p.Week, Year: p.Year,
		})
		return nil
	})
}

// SetCurrentPage records which screen the presentation layer is on. No
// economic effect, no persistence.
func (s *Store) SetCurrentPage(page string) (Result, error) {
	return s.mutate("set_current_page", false, func() error {
		s.state.CurrentPage = page
		return nil
	})
}

// AddNotification pushes a presentation-generated notification.
func (s *Store) AddNotification(n Notification) (Result, error) {
	return s.mutate("add_notification", false, func() error {
		if n.Week == 0 {
			n.Week, n.Year = s.state.Player.Week, s.state.Player.Year
		}
		s.pushNotificationLocked(n)
		return nil
	})
}
