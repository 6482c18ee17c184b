package game

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
)

const (
	CentsPerDollar = int64(100)

	StartingNetWorthCents = 100 * CentsPerDollar
	StartingAge           = 20
	StartingYear          = 2020
	WeeksPerYear          = 52

	MaxEnergy       = 100
	MaxStat         = 100
	MaxSkill        = 100
	MinSkill        = 1
	MaxQuality      = 10
	MinQuality      = 1
	MaxNotification = 50

	// Bounded per-release history kept for trend rendering.
	ViewHistoryLen = 12

	SaveSlots = 3
)

var (
	ErrGameInProgress     = errors.New("a game is already in progress")
	ErrNoGame             = errors.New("no game in progress")
	ErrInvalidStageName   = errors.New("stage name must be 2-32 printable characters")
	ErrDuplicateID        = errors.New("duplicate content id")
	ErrContentNotFound    = errors.New("content not found")
	ErrAlreadyReleased    = errors.New("content is already released")
	ErrTrackInAlbum       = errors.New("track is locked into an album")
	ErrTrackHasVideo      = errors.New("track already has a music video")
	ErrReleaseNotFound    = errors.New("release not found")
	ErrAlreadyAnnounced   = errors.New("release was already announced")
	ErrInsufficientEnergy = errors.New("insufficient energy")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrSkillMaxed         = errors.New("skill is already at maximum")
	ErrUnknownSkill       = errors.New("unknown skill")
	ErrUnknownPlatform    = errors.New("unknown platform")
	ErrUnknownJob         = errors.New("unknown job")
	ErrUnknownItem        = errors.New("unknown shop item")
	ErrItemOwned          = errors.New("item already owned")
	ErrInvalidSlot        = errors.New("save slot must be 1-3")
	ErrUnknownIntent      = errors.New("unknown intent")
)

var stageNameRE = regexp.MustCompile(`^[\pL\pN][\pL\pN .'&-]{0,30}[\pL\pN.]$`)

func ValidateStageName(name string) error {
	if !stageNameRE.MatchString(strings.TrimSpace(name)) {
		return ErrInvalidStageName
	}
	return nil
}

func DollarsToCents(v float64) int64 {
	return int64(math.Round(v * float64(CentsPerDollar)))
}

func CentsToDollars(v int64) float64 {
	return float64(v) / float64(CentsPerDollar)
}

// NewContentID builds a creation-timestamp id. Collisions are possible only
// when two entities of the same kind are minted in the same nanosecond, which
// the store treats as a hard rejection rather than an overwrite.
func NewContentID(kind string) string {
	return fmt.Sprintf("%s_%d", kind, time.Now().UnixNano())
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt64(v, lo int64) int64 {
	if v < lo {
		return lo
	}
	return v
}

func clampStat(v int) int    { return clampInt(v, 0, MaxStat) }
func clampSkill(v int) int   { return clampInt(v, MinSkill, MaxSkill) }
func clampEnergy(v int) int  { return clampInt(v, 0, MaxEnergy) }
func clampQuality(v int) int { return clampInt(v, MinQuality, MaxQuality) }
