package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"encore/internal/config"
	"encore/internal/game"
	"encore/internal/save"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:          "encore",
		Short:        "Encore music career game",
		SilenceUsage: true,
	}

	root.AddCommand(
		newNewCmd(),
		newSlotsCmd(),
		newUseCmd(),
		newStatusCmd(),
		newRecordCmd(),
		newAlbumCmd(),
		newVideoCmd(),
		newCollabCmd(),
		newReleaseCmd(),
		newAnnounceCmd(),
		newPostCmd(),
		newConcertCmd(),
		newJobCmd(),
		newShopCmd(),
		newSkillCmd(),
		newWeekCmd(),
		newFeedCmd(),
		newResetCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// session wires the store to the active save slot for one command run. Every
// mutating intent persists synchronously, so commands just mutate and exit.
type session struct {
	cfg   config.Config
	saves *save.Manager
	store *game.Store
}

func openSession() (*session, error) {
	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	saves, err := save.NewManager(cfg.SaveDir)
	if err != nil {
		return nil, err
	}
	store := game.NewStore(logger, saves, cfg.Seed)
	slot := saves.ActiveSlot()
	if err := store.SetSlot(slot); err != nil {
		return nil, err
	}
	snap, err := saves.Load(slot)
	if err == nil {
		if _, err := store.LoadState(snap); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, save.ErrEmptySlot) {
		return nil, err
	}
	return &session{cfg: cfg, saves: saves, store: store}, nil
}

func (s *session) player() game.Player {
	return s.store.State().Player
}

func newNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new [stage name]",
		Short: "Start a new career in the active slot",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession()
			if err != nil {
				return err
			}
			name := ""
			if len(args) > 0 {
				name = strings.TrimSpace(args[0])
			} else {
				name, err = promptStageName("Stage name")
				if err != nil {
					return err
				}
			}
			city, err := promptOptional("Home city")
			if err != nil {
				return err
			}
			avatar, err := promptChoice("Avatar", []string{"hustler", "poet", "producer", "showman"}, "hustler")
			if err != nil {
				return err
			}
			res, err := sess.store.CreateCharacter(game.CreateCharacterInput{
				StageName: name,
				AvatarID:  avatar,
				HomeCity:  city,
			})
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Career started in slot %d. Welcome, %s.", res.State.Slot, name))
			return nil
		},
	}
}

func newSlotsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slots",
		Short: "List save slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession()
			if err != nil {
				return err
			}
			renderSlots(sess.saves.List(), sess.saves.ActiveSlot())
			return nil
		},
	}
}

func newUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "use [slot]",
		Short:   "Switch the active save slot",
		Aliases: []string{"load"},
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession()
			if err != nil {
				return err
			}
			slot, err := intFromArgOrPrompt(args, 0, "Slot (1-3)")
			if err != nil {
				return err
			}
			if err := sess.saves.SetActiveSlot(slot); err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Active slot is now %d.", slot))
			return nil
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show career dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession()
			if err != nil {
				return err
			}
			st := sess.store.State()
			if !st.GameStarted {
				printInfo("No career in the active slot. Run `encore new`.")
				return nil
			}
			renderStatus(st)
			return nil
		},
	}
}

func newRecordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "record [title]",
		Short: "Record a new track",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession()
			if err != nil {
				return err
			}
			title, err := titleFromArgsOrPrompt(args, "Track title")
			if err != nil {
				return err
			}
			tiers, err := promptTiers([]string{"Beat tier", "Lyrics tier", "Mix tier"})
			if err != nil {
				return err
			}
			p := sess.player()
			quality := game.QualityScore(tiers, (p.Skills.Lyrics+p.Skills.Flow+p.Skills.Production)/3)
			res, err := sess.store.AddTrack(game.Track{
				ID:      game.NewContentID("track"),
				Title:   title,
				Quality: quality,
				Week:    p.Week,
				Year:    p.Year,
			})
			if err != nil {
				return err
			}
			track := res.State.Tracks[len(res.State.Tracks)-1]
			printSuccess(fmt.Sprintf("Recorded %q (quality %d/10, id %s).", track.Title, track.Quality, track.ID))
			return nil
		},
	}
}

func newAlbumCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "album [title]",
		Short: "Assemble unreleased tracks into an album",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession()
			if err != nil {
				return err
			}
			title, err := titleFromArgsOrPrompt(args, "Album title")
			if err != nil {
				return err
			}
			st := sess.store.State()
			candidates := albumCandidates(st)
			if len(candidates) == 0 {
				printInfo("No eligible tracks. Record some first.")
				return nil
			}
			renderTrackPicker(candidates)
			raw, err := promptRequired("Track ids (comma separated)")
			if err != nil {
				return err
			}
			ids, tiers, err := pickTracks(candidates, raw)
			if err != nil {
				return err
			}
			p := st.Player
			quality := game.QualityScore(tiers, p.Skills.Production)
			res, err := sess.store.AddAlbum(game.Album{
				ID:       game.NewContentID("album"),
				Title:    title,
				Quality:  quality,
				TrackIDs: ids,
				Week:     p.Week,
				Year:     p.Year,
			})
			if err != nil {
				return err
			}
			if _, err := sess.store.MarkTracksInAlbum(ids); err != nil {
				return err
			}
			album := res.State.Albums[len(res.State.Albums)-1]
			printSuccess(fmt.Sprintf("Cut album %q with %d tracks (quality %d/10, id %s).", album.Title, len(ids), album.Quality, album.ID))
			return nil
		},
	}
}

func newVideoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "video [track_id]",
		Short: "Shoot a music video for one of your tracks",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession()
			if err != nil {
				return err
			}
			trackID := ""
			if len(args) > 0 {
				trackID = strings.TrimSpace(args[0])
			} else {
				trackID, err = promptRequired("Track id")
				if err != nil {
					return err
				}
			}
			title, err := promptRequired("Video title")
			if err != nil {
				return err
			}
			tiers, err := promptTiers([]string{"Direction tier", "Production tier"})
			if err != nil {
				return err
			}
			p := sess.player()
			quality := game.QualityScore(tiers, (p.Skills.Charisma+p.Skills.Production)/2)
			res, err := sess.store.AddMusicVideo(game.MusicVideo{
				ID:      game.NewContentID("video"),
				Title:   title,
				Quality: quality,
				TrackID: trackID,
				Week:    p.Week,
				Year:    p.Year,
			})
			if err != nil {
				return err
			}
			if _, err := sess.store.MarkTrackHasVideo(trackID); err != nil {
				return err
			}
			video := res.State.Videos[len(res.State.Videos)-1]
			printSuccess(fmt.Sprintf("Shot video %q (quality %d/10, id %s).", video.Title, video.Quality, video.ID))
			return nil
		},
	}
}

func newCollabCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "collab [partner]",
		Short: "Record a collaboration with another artist",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession()
			if err != nil {
				return err
			}
			partner := ""
			if len(args) > 0 {
				partner = strings.TrimSpace(args[0])
			} else {
				partner, err = promptRequired("Partner artist")
				if err != nil {
					return err
				}
			}
			title, err := promptRequired("Collab title")
			if err != nil {
				return err
			}
			tiers, err := promptTiers([]string{"Chemistry tier", "Beat tier"})
			if err != nil {
				return err
			}
			p := sess.player()
			quality := game.QualityScore(tiers, (p.Skills.Flow+p.Skills.Charisma)/2)
			res, err := sess.store.AddCollaboration(game.Collaboration{
				ID:      game.NewContentID("collab"),
				Title:   title,
				Partner: partner,
				Quality: quality,
				Week:    p.Week,
				Year:    p.Year,
			})
			if err != nil {
				return err
			}
			collab := res.State.Collabs[len(res.State.Collabs)-1]
			printSuccess(fmt.Sprintf("Recorded %q with %s (quality %d/10, id %s).", collab.Title, partner, collab.Quality, collab.ID))
			return nil
		},
	}
}

func newReleaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "release [content_id]",
		Short: "Release a track, album, video, or collab",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession()
			if err != nil {
				return err
			}
			contentID := ""
			if len(args) > 0 {
				contentID = strings.TrimSpace(args[0])
			} else {
				contentID, err = promptRequired("Content id")
				if err != nil {
					return err
				}
			}
			platform, err := promptPlatform()
			if err != nil {
				return err
			}
			marketing, err := promptFloat("Marketing spend ($)", -1)
			if err != nil {
				return err
			}
			res, err := sess.store.ReleaseContent(game.ReleaseContentInput{
				ContentID:      contentID,
				Platform:       platform,
				MarketingCents: game.DollarsToCents(marketing),
			})
			if err != nil {
				return err
			}
			rel := res.State.Releases[len(res.State.Releases)-1]
			printSuccess(fmt.Sprintf("Released %q on %s: %s first-day streams, %s earned (id %s).",
				rel.Title, rel.Platform, comma(rel.Views), formatCents(rel.EarningsCents), rel.ID))
			renderLevelChange(res)
			return nil
		},
	}
}

func newAnnounceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "announce [release_id]",
		Short: "Run a one-time promo push for a release",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession()
			if err != nil {
				return err
			}
			releaseID := ""
			if len(args) > 0 {
				releaseID = strings.TrimSpace(args[0])
			} else {
				releaseID, err = promptRequired("Release id")
				if err != nil {
					return err
				}
			}
			res, err := sess.store.AnnounceRelease(releaseID)
			if err != nil {
				return err
			}
			printSuccess("Announcement out. Check the feed for reach.")
			renderLevelChange(res)
			return nil
		},
	}
}

func newPostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "post",
		Short: "Post to a social platform",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession()
			if err != nil {
				return err
			}
			platform, err := promptPlatform()
			if err != nil {
				return err
			}
			caption, err := promptOptional("Caption")
			if err != nil {
				return err
			}
			res, err := sess.store.AddSocialPost(game.SocialPostInput{Platform: platform, Caption: caption})
			if err != nil {
				return err
			}
			stats := res.State.Player.Social[platform]
			printSuccess(fmt.Sprintf("Posted to %s. Followers there: %s.", platform, comma(stats.Followers)))
			return nil
		},
	}
}

func newConcertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "concert [venue]",
		Short: "Play a show",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession()
			if err != nil {
				return err
			}
			venue := ""
			if len(args) > 0 {
				venue = strings.TrimSpace(args[0])
			} else {
				venue, err = promptRequired("Venue")
				if err != nil {
					return err
				}
			}
			city, err := promptOptional("City")
			if err != nil {
				return err
			}
			attendance, err := promptInt64("Expected attendance", 1)
			if err != nil {
				return err
			}
			ticket, err := promptFloat("Ticket price ($)", 0)
			if err != nil {
				return err
			}
			quality, err := promptQuality("Show quality")
			if err != nil {
				return err
			}
			res, err := sess.store.AddConcert(game.ConcertInput{
				Venue:            venue,
				City:             city,
				Attendance:       attendance,
				TicketPriceCents: game.DollarsToCents(ticket),
				Quality:          quality,
			})
			if err != nil {
				return err
			}
			show := res.State.Concerts[len(res.State.Concerts)-1]
			printSuccess(fmt.Sprintf("Played %s: %s earned, +%s fans.", venue, formatCents(show.EarningsCents), comma(show.FanGain)))
			renderLevelChange(res)
			return nil
		},
	}
}

func newJobCmd() *cobra.Command {
	job := &cobra.Command{
		Use:   "job",
		Short: "Day job commands",
	}
	job.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List available jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			renderJobs(game.Jobs())
			return nil
		},
	})
	job.AddCommand(&cobra.Command{
		Use:   "work [job_id]",
		Short: "Work a shift for cash",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession()
			if err != nil {
				return err
			}
			jobID := ""
			if len(args) > 0 {
				jobID = strings.TrimSpace(args[0])
			} else {
				renderJobs(game.Jobs())
				jobID, err = promptRequired("Job id")
				if err != nil {
					return err
				}
			}
			before := sess.player().NetWorthCents
			res, err := sess.store.WorkJob(game.WorkJobInput{Job: jobID})
			if err != nil {
				return err
			}
			earned := res.State.Player.NetWorthCents - before
			printSuccess(fmt.Sprintf("Shift done. Earned %s, energy now %d.", formatCents(earned), res.State.Player.Energy))
			return nil
		},
	})
	return job
}

func newShopCmd() *cobra.Command {
	shop := &cobra.Command{
		Use:   "shop",
		Short: "Gear shop commands",
	}
	shop.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List shop items",
		RunE: func(cmd *cobra.Command, args []string) error {
			renderShop(game.Shop())
			return nil
		},
	})
	shop.AddCommand(&cobra.Command{
		Use:   "buy [item_id]",
		Short: "Buy an item",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession()
			if err != nil {
				return err
			}
			itemID := ""
			if len(args) > 0 {
				itemID = strings.TrimSpace(args[0])
			} else {
				renderShop(game.Shop())
				itemID, err = promptRequired("Item id")
				if err != nil {
					return err
				}
			}
			res, err := sess.store.BuyItem(game.BuyItemInput{ItemID: itemID})
			if err != nil {
				return err
			}
			owned := res.State.Player.Inventory[len(res.State.Player.Inventory)-1]
			printSuccess(fmt.Sprintf("Bought %s for %s.", owned.Name, formatCents(owned.CostCents)))
			return nil
		},
	})
	return shop
}

func newSkillCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "skill [name]",
		Short: "Spend energy to raise a skill",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession()
			if err != nil {
				return err
			}
			skill := ""
			if len(args) > 0 {
				skill = strings.ToLower(strings.TrimSpace(args[0]))
			} else {
				skill, err = promptChoice("Skill", []string{"lyrics", "flow", "charisma", "business", "production"}, "lyrics")
				if err != nil {
					return err
				}
			}
			res, err := sess.store.UpgradeSkill(game.UpgradeSkillInput{Skill: skill})
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Trained %s. Energy left: %d.", skill, res.State.Player.Energy))
			return nil
		},
	}
}

func newWeekCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "week",
		Short:   "Advance the game by one week",
		Aliases: []string{"next"},
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession()
			if err != nil {
				return err
			}
			before := sess.store.State()
			res, err := sess.store.AdvanceWeek()
			if err != nil {
				return err
			}
			renderWeekSummary(before, res)
			return nil
		},
	}
}

func newFeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "feed",
		Short: "Show the notification feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession()
			if err != nil {
				return err
			}
			st := sess.store.State()
			if !st.GameStarted {
				printInfo("No career in the active slot.")
				return nil
			}
			renderFeed(st.Notifications)
			return nil
		},
	}
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete the career in the active slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession()
			if err != nil {
				return err
			}
			slot := sess.saves.ActiveSlot()
			confirm, err := promptChoice(fmt.Sprintf("Really wipe slot %d", slot), []string{"yes", "no"}, "no")
			if err != nil {
				return err
			}
			if confirm != "yes" {
				printInfo("Reset cancelled.")
				return nil
			}
			if _, err := sess.store.Reset(); err != nil {
				return err
			}
			if err := sess.saves.Delete(slot); err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Slot %d wiped.", slot))
			return nil
		},
	}
}

// albumCandidates filters to tracks that can still join an album.
func albumCandidates(st game.State) []game.Track {
	out := make([]game.Track, 0, len(st.Tracks))
	for _, t := range st.Tracks {
		if t.InAlbum {
			continue
		}
		out = append(out, t)
	}
	return out
}

func pickTracks(candidates []game.Track, raw string) ([]string, []int, error) {
	byID := make(map[string]game.Track, len(candidates))
	for _, t := range candidates {
		byID[t.ID] = t
	}
	var ids []string
	var tiers []int
	for _, part := range strings.Split(raw, ",") {
		id := strings.TrimSpace(part)
		if id == "" {
			continue
		}
		t, ok := byID[id]
		if !ok {
			return nil, nil, fmt.Errorf("track %s is not eligible", id)
		}
		ids = append(ids, id)
		tiers = append(tiers, t.Quality)
	}
	if len(ids) == 0 {
		return nil, nil, fmt.Errorf("no tracks selected")
	}
	return ids, tiers, nil
}

func titleFromArgsOrPrompt(args []string, label string) (string, error) {
	if len(args) > 0 {
		title := strings.TrimSpace(args[0])
		if title != "" {
			return title, nil
		}
	}
	return promptRequired(label)
}

func intFromArgOrPrompt(args []string, idx int, label string) (int, error) {
	if len(args) > idx {
		v, err := strconv.Atoi(strings.TrimSpace(args[idx]))
		if err != nil {
			return 0, fmt.Errorf("invalid %s", strings.ToLower(label))
		}
		return v, nil
	}
	v, err := promptInt64(label, 1)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}
