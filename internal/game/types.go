package game

import "time"

// ContentType identifies what kind of work a release was cut from.
type ContentType string

const (
	ContentSingle ContentType = "single"
	ContentAlbum  ContentType = "album"
	ContentVideo  ContentType = "video"
	ContentCollab ContentType = "collab"
)

// Platform is one of the four fictional social networks the player posts to.
type Platform string

const (
	PlatformFanpic    Platform = "fanpic"    // photo feed
	PlatformViewtube  Platform = "viewtube"  // long-form video
	PlatformStreamify Platform = "streamify" // audio streaming
	PlatformCliply    Platform = "cliply"    // short-form video
)

// Platforms returns the fixed platform set in stable order.
func Platforms() []Platform {
	return []Platform{PlatformFanpic, PlatformViewtube, PlatformStreamify, PlatformCliply}
}

func ValidPlatform(p Platform) bool {
	switch p {
	case PlatformFanpic, PlatformViewtube, PlatformStreamify, PlatformCliply:
		return true
	}
	return false
}

// Channel is an earnings ledger bucket.
type Channel string

const (
	ChannelStreaming Channel = "streaming"
	ChannelVideo     Channel = "video"
	ChannelConcerts  Channel = "concerts"
	ChannelMerch     Channel = "merchandise"
)

type Skills struct {
	Lyrics     int `json:"lyrics"`
	Flow       int `json:"flow"`
	Charisma   int `json:"charisma"`
	Business   int `json:"business"`
	Production int `json:"production"`
}

type PlatformStats struct {
	Followers int64 `json:"followers"`
	Posts     int64 `json:"posts"`
}

type Player struct {
	StageName string `json:"stage_name"`
	AvatarID  string `json:"avatar_id"`
	HomeCity  string `json:"home_city"`
	Age       int    `json:"age"`
	Year      int    `json:"year"`
	Week      int    `json:"week"`

	Fame          int   `json:"fame"`
	Reputation    int   `json:"reputation"`
	Fans          int64 `json:"fans"`
	NetWorthCents int64 `json:"net_worth_cents"`
	Energy        int   `json:"energy"`

	Skills Skills                     `json:"skills"`
	Social map[Platform]PlatformStats `json:"social"`

	Achievements []Achievement `json:"achievements,omitempty"`
	Inventory    []OwnedItem   `json:"inventory,omitempty"`
}

type Achievement struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Week  int    `json:"week"`
	Year  int    `json:"year"`
}

type OwnedItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CostCents int64  `json:"cost_cents"`
	Week      int    `json:"week"`
	Year      int    `json:"year"`
}

type Track struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Quality  int    `json:"quality"`
	Week     int    `json:"week"`
	Year     int    `json:"year"`
	InAlbum  bool   `json:"in_album"`
	HasVideo bool   `json:"has_video"`
}

type Album struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Quality  int      `json:"quality"`
	TrackIDs []string `json:"track_ids"`
	Week     int      `json:"week"`
	Year     int      `json:"year"`
}

type MusicVideo struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Quality int    `json:"quality"`
	TrackID string `json:"track_id"`
	Week    int    `json:"week"`
	Year    int    `json:"year"`
}

type Collaboration struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Partner string `json:"partner"`
	Quality int    `json:"quality"`
	Week    int    `json:"week"`
	Year    int    `json:"year"`
}

type Concert struct {
	ID            string `json:"id"`
	Venue         string `json:"venue"`
	City          string `json:"city"`
	Attendance    int64  `json:"attendance"`
	EarningsCents int64  `json:"earnings_cents"`
	FanGain       int64  `json:"fan_gain"`
	Quality       int    `json:"quality"`
	Week          int    `json:"week"`
	Year          int    `json:"year"`
}

// Release is the performance record created exactly once when content is
// published. Identity fields are immutable; the performance block mutates
// every week. Views only ever grow and PeakWeeklyViews is a running max.
type Release struct {
	ID        string      `json:"id"`
	ContentID string      `json:"content_id"`
	Type      ContentType `json:"type"`
	Title     string      `json:"title"`
	Platform  Platform    `json:"platform"`
	Quality   int         `json:"quality"`
	Week      int         `json:"week"`
	Year      int         `json:"year"`

	Views           int64   `json:"views"`
	WeeklyViews     int64   `json:"weekly_views"`
	PeakWeeklyViews int64   `json:"peak_weekly_views"`
	EarningsCents   int64   `json:"earnings_cents"`
	ViewHistory     []int64 `json:"view_history,omitempty"`

	Trending      bool `json:"trending"`
	Viral         bool `json:"viral"`
	ChartPosition int  `json:"chart_position,omitempty"` // 0 = unranked, sticky once set
	Announced     bool `json:"announced"`

	// First-crossing notification guards persist with the release so a
	// reloaded game does not re-announce old viral hits every week.
	NotifiedViral  bool `json:"notified_viral,omitempty"`
	NotifiedTopTen bool `json:"notified_top_ten,omitempty"`
}

type Earnings struct {
	TotalCents     int64 `json:"total_cents"`
	ThisWeekCents  int64 `json:"this_week_cents"`
	StreamingCents int64 `json:"streaming_cents"`
	VideoCents     int64 `json:"video_cents"`
	ConcertsCents  int64 `json:"concerts_cents"`
	MerchCents     int64 `json:"merch_cents"`
}

// credit is the only write path into the ledger, which keeps the invariant
// total == streaming+video+concerts+merchandise.
func (e *Earnings) credit(ch Channel, cents int64) {
	if cents == 0 {
		return
	}
	switch ch {
	case ChannelStreaming:
		e.StreamingCents += cents
	case ChannelVideo:
		e.VideoCents += cents
	case ChannelConcerts:
		e.ConcertsCents += cents
	case ChannelMerch:
		e.MerchCents += cents
	default:
		return
	}
	e.TotalCents += cents
	e.ThisWeekCents += cents
}

type NotificationKind string

const (
	NoteInfo        NotificationKind = "info"
	NoteSuccess     NotificationKind = "success"
	NoteWarning     NotificationKind = "warning"
	NoteAchievement NotificationKind = "achievement"
)

type Notification struct {
	ID      string           `json:"id"`
	Kind    NotificationKind `json:"kind"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
	Week    int              `json:"week"`
	Year    int              `json:"year"`
}

// State is the root aggregate. It is mutated only through Store intents.
type State struct {
	Player        Player          `json:"player"`
	Tracks        []Track         `json:"tracks,omitempty"`
	Albums        []Album         `json:"albums,omitempty"`
	Videos        []MusicVideo    `json:"videos,omitempty"`
	Collabs       []Collaboration `json:"collabs,omitempty"`
	Concerts      []Concert       `json:"concerts,omitempty"`
	Releases      []Release       `json:"releases,omitempty"`
	Earnings      Earnings        `json:"earnings"`
	Notifications []Notification  `json:"notifications,omitempty"`

	Slot        int       `json:"slot"`
	GameStarted bool      `json:"game_started"`
	CurrentPage string    `json:"current_page,omitempty"`
	LastPlayed  time.Time `json:"last_played"`

	// Derived on every mutation and on load, never trusted from disk.
	Level         int     `json:"level"`
	LevelProgress float64 `json:"level_progress"`
}

// WeeklyUpdate is the aggregate result of one weekly settlement.
type WeeklyUpdate struct {
	FameChange       int
	ReputationChange int
	FanGrowth        int64
	EarningsByChan   map[Channel]int64
	SocialGrowth     map[Platform]int64
	Notifications    []Notification
}

// Result is returned by every player-mutating intent so callers can diff
// career levels without re-deriving state.
type Result struct {
	State       State `json:"state"`
	LevelBefore int   `json:"level_before"`
	LevelAfter  int   `json:"level_after"`
}

// Intent inputs.

type CreateCharacterInput struct {
	StageName string `json:"stage_name"`
	AvatarID  string `json:"avatar_id"`
	HomeCity  string `json:"home_city"`
}

// PlayerPatch shallow-merges into Player; nil fields are left untouched.
type PlayerPatch struct {
	StageName     *string `json:"stage_name,omitempty"`
	AvatarID      *string `json:"avatar_id,omitempty"`
	HomeCity      *string `json:"home_city,omitempty"`
	Fame          *int    `json:"fame,omitempty"`
	Reputation    *int    `json:"reputation,omitempty"`
	Energy        *int    `json:"energy,omitempty"`
	Fans          *int64  `json:"fans,omitempty"`
	NetWorthCents *int64  `json:"net_worth_cents,omitempty"`
	Skills        *Skills `json:"skills,omitempty"`
}

type ReleaseContentInput struct {
	ContentID      string   `json:"content_id"`
	Platform       Platform `json:"platform"`
	MarketingCents int64    `json:"marketing_cents"`
}

type SocialPostInput struct {
	Platform Platform `json:"platform"`
	Caption  string   `json:"caption"`
}

type ConcertInput struct {
	Venue            string `json:"venue"`
	City             string `json:"city"`
	Attendance       int64  `json:"attendance"`
	TicketPriceCents int64  `json:"ticket_price_cents"`
	Quality          int    `json:"quality"`
}

type WorkJobInput struct {
	Job string `json:"job"`
}

type BuyItemInput struct {
	ItemID string `json:"item_id"`
}

type UpgradeSkillInput struct {
	Skill string `json:"skill"`
}

func newSocial() map[Platform]PlatformStats {
	m := make(map[Platform]PlatformStats, 4)
	for _, p := range Platforms() {
		m[p] = PlatformStats{}
	}
	return m
}

// Clone deep-copies the aggregate so snapshots handed to callers can never
// alias store-owned slices or maps.
func (s *State) Clone() State {
	out := *s
	out.Tracks = append([]Track(nil), s.Tracks...)
	out.Albums = make([]Album, len(s.Albums))
	for i, a := range s.Albums {
		out.Albums[i] = a
		out.Albums[i].TrackIDs = append([]string(nil), a.TrackIDs...)
	}
	out.Videos = append([]MusicVideo(nil), s.Videos...)
	out.Collabs = append([]Collaboration(nil), s.Collabs...)
	out.Concerts = append([]Concert(nil), s.Concerts...)
	out.Releases = make([]Release, len(s.Releases))
	for i, r := range s.Releases {
		out.Releases[i] = r
		out.Releases[i].ViewHistory = append([]int64(nil), r.ViewHistory...)
	}
	out.Notifications = append([]Notification(nil), s.Notifications...)
	out.Player.Achievements = append([]Achievement(nil), s.Player.Achievements...)
	out.Player.Inventory = append([]OwnedItem(nil), s.Player.Inventory...)
	if s.Player.Social != nil {
		out.Player.Social = make(map[Platform]PlatformStats, len(s.Player.Social))
		for k, v := range s.Player.Social {
			out.Player.Social[k] = v
		}
	}
	return out
}

// releaseFor answers "is this content released" from the release list alone;
// content structs carry no released flag that could drift out of sync.
func (s *State) releaseFor(contentID string) *Release {
	for i := range s.Releases {
		if s.Releases[i].ContentID == contentID {
			return &s.Releases[i]
		}
	}
	return nil
}

func (s *State) releaseByID(id string) *Release {
	for i := range s.Releases {
		if s.Releases[i].ID == id {
			return &s.Releases[i]
		}
	}
	return nil
}

func (s *State) trackByID(id string) *Track {
	for i := range s.Tracks {
		if s.Tracks[i].ID == id {
			return &s.Tracks[i]
		}
	}
	return nil
}

func (s *State) contentExists(id string) bool {
	if s.trackByID(id) != nil {
		return true
	}
	for i := range s.Albums {
		if s.Albums[i].ID == id {
			return true
		}
	}
	for i := range s.Videos {
		if s.Videos[i].ID == id {
			return true
		}
	}
	for i := range s.Collabs {
		if s.Collabs[i].ID == id {
			return true
		}
	}
	return false
}

// findContent resolves a content id to its release-facing identity.
func (s *State) findContent(id string) (ContentType, string, int, bool) {
	if t := s.trackByID(id); t != nil {
		return ContentSingle, t.Title, t.Quality, true
	}
	for i := range s.Albums {
		if s.Albums[i].ID == id {
			return ContentAlbum, s.Albums[i].Title, s.Albums[i].Quality, true
		}
	}
	for i := range s.Videos {
		if s.Videos[i].ID == id {
			return ContentVideo, s.Videos[i].Title, s.Videos[i].Quality, true
		}
	}
	for i := range s.Collabs {
		if s.Collabs[i].ID == id {
			return ContentCollab, s.Collabs[i].Title, s.Collabs[i].Quality, true
		}
	}
	return "", "", 0, false
}
