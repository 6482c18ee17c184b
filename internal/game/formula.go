package game

import "math"

// Action names the event kinds the fame/reputation formulas key on.
type Action string

const (
	ActionTrackRelease       Action = "track_release"
	ActionAlbumRelease       Action = "album_release"
	ActionCollaboration      Action = "collaboration"
	ActionConcert            Action = "concert"
	ActionViralMoment        Action = "viral_moment"
	ActionHighQualityContent Action = "high_quality_content"
	ActionConsistentReleases Action = "consistent_releases"
	ActionLowQualityContent  Action = "low_quality_content"
	ActionInactivity         Action = "inactivity"
)

var fameBase = map[Action]int{
	ActionTrackRelease:  5,
	ActionAlbumRelease:  10,
	ActionCollaboration: 15,
	ActionConcert:       20,
	ActionViralMoment:   25,
}

var reputationBase = map[Action]int{
	ActionTrackRelease:       1,
	ActionAlbumRelease:       3,
	ActionCollaboration:      2,
	ActionConcert:            2,
	ActionHighQualityContent: 5,
	ActionConsistentReleases: 2,
}

var platformFollowerMult = map[Platform]float64{
	PlatformFanpic:    2.0,
	PlatformViewtube:  1.8,
	PlatformStreamify: 1.5,
	PlatformCliply:    2.5,
}

// platformViewMult skews weekly views toward the platform a release lives on.
var platformViewMult = map[Platform]float64{
	PlatformFanpic:    0.8,
	PlatformViewtube:  1.2,
	PlatformStreamify: 1.0,
	PlatformCliply:    1.4,
}

var streamRate = map[ContentType]float64{
	ContentSingle: 0.003,
	ContentAlbum:  0.008,
	ContentVideo:  0.001,
	ContentCollab: 0.003,
}

const (
	concertRate = 0.05
	merchRate   = 0.15
)

type followerCap struct {
	base float64
	max  int64
}

var contentFollowerCaps = map[ContentType]followerCap{
	ContentSingle: {base: 1_000, max: 10_000},
	ContentAlbum:  {base: 10_000, max: 100_000},
	ContentVideo:  {base: 5_000, max: 50_000},
	ContentCollab: {base: 2_000, max: 20_000},
}

// FameGain is the base fame award for an action plus a quality kicker.
func FameGain(action Action, quality int) int {
	return fameBase[action] + quality/2
}

// ReputationGain rewards high quality and consistency above the small
// per-action base table.
func ReputationGain(action Action, quality int, consistency float64) int {
	if action == ActionHighQualityContent && quality > 7 {
		return 10
	}
	if action == ActionConsistentReleases && consistency > 0.8 {
		return 5
	}
	return reputationBase[action]
}

// ReputationPenalty is negative or zero.
func ReputationPenalty(action Action, quality int) int {
	if action == ActionLowQualityContent && quality < 4 {
		return -10
	}
	if action == ActionInactivity {
		return -5
	}
	return 0
}

func NewFans(fame, reputation int, multiplier float64) int64 {
	return int64(math.Floor(float64(fame*100+reputation*50) * multiplier))
}

func NewFollowers(fame, reputation int, platform Platform) int64 {
	mult, ok := platformFollowerMult[platform]
	if !ok {
		return 0
	}
	return int64(math.Floor(float64(fame*200+reputation*100) * mult))
}

// ContentFollowers converts a view count into follower growth with a
// logarithmic falloff and a hard per-type cap.
func ContentFollowers(contentType ContentType, views int64, engagement float64) int64 {
	fc, ok := contentFollowerCaps[contentType]
	if !ok || views <= 0 {
		return 0
	}
	eng := math.Max(0.3, engagement/100)
	got := int64(fc.base * math.Log10(float64(views)+1) / 7 * eng)
	if got > fc.max {
		return fc.max
	}
	return clampInt64(got, 0)
}

// Streams estimates launch-week stream volume from audience reach and quality.
func Streams(fame, reputation int, fans int64, quality int) int64 {
	reach := float64(fame)*10_000 + float64(reputation)*5_000 + float64(fans)/2
	return int64(math.Floor(reach * math.Max(0.3, float64(quality)/10)))
}

// EarningsCents prices a view/stream count for a content type. Quality above
// 5 sweetens the per-stream rate; marketing spend buys a capped bump.
func EarningsCents(streams int64, contentType ContentType, quality int, marketingCents int64) int64 {
	var rate float64
	switch contentType {
	case ContentSingle, ContentAlbum, ContentVideo, ContentCollab:
		rate = streamRate[contentType]
	default:
		return 0
	}
	rate += math.Max(0, float64(quality-5)*0.001)
	rate += math.Min(0.002, CentsToDollars(marketingCents)*1e-5)
	return int64(math.Round(float64(streams) * rate * float64(CentsPerDollar)))
}

// ConcertEarningsCents prices ticket revenue at the flat concert rate per
// attendee-dollar tier.
func ConcertEarningsCents(attendance, ticketPriceCents int64) int64 {
	gross := attendance * ticketPriceCents
	return gross + int64(math.Round(float64(gross)*concertRate))
}

// MerchEarningsCents derives merchandise table revenue from attendance.
func MerchEarningsCents(attendance int64) int64 {
	return int64(math.Round(float64(attendance) * merchRate * float64(CentsPerDollar)))
}

// QualityScore derives a 1-10 quality from chosen production input tiers
// (1-10 each) plus a bonus from the relevant skill average.
func QualityScore(tiers []int, skillAvg int) int {
	if len(tiers) == 0 {
		return MinQuality
	}
	sum := 0
	for _, t := range tiers {
		sum += clampQuality(t)
	}
	base := float64(sum) / float64(len(tiers))
	bonus := float64(skillAvg) / 50 // up to +2 at skill 100
	return clampQuality(int(math.Round(base + bonus)))
}
