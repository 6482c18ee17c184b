// Package api exposes the core collaborator interface over local HTTP:
// snapshot reads, intent dispatch, slot management, and a websocket channel
// that pushes a fresh snapshot after every applied intent. Trusted local
// client; no auth.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"encore/internal/config"
	"encore/internal/game"
	"encore/internal/save"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	cfg   config.Config
	log   *slog.Logger
	store *game.Store
	saves *save.Manager
	hub   *hub
	mux   *chi.Mux
}

func New(cfg config.Config, logger *slog.Logger, store *game.Store, saves *save.Manager) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:   cfg,
		log:   logger,
		store: store,
		saves: saves,
		hub:   newHub(logger),
		mux:   chi.NewRouter(),
	}
	store.Subscribe(func(snap game.State) {
		s.hub.broadcastState(snap)
	})
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Get("/levels", s.handleLevels)
		r.Get("/jobs", s.handleJobs)
		r.Get("/shop", s.handleShop)
		r.Post("/intents/{name}", s.handleIntent)

		r.Get("/slots", s.handleSlots)
		r.Post("/slots/{slot}/load", s.handleSlotLoad)
		r.Delete("/slots/{slot}", s.handleSlotDelete)

		r.Get("/ws", s.hub.handleUpgrade)
	})
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.State())
}

func (s *Server) handleLevels(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"levels": game.Levels()})
}

func (s *Server) handleJobs(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"jobs": game.Jobs()})
}

func (s *Server) handleShop(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"items": game.Shop()})
}

// handleIntent decodes the named intent's payload into its typed input and
// applies it. The name set is closed; anything else is rejected.
func (s *Server) handleIntent(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	res, err := s.dispatch(name, r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) dispatch(name string, r *http.Request) (game.Result, error) {
	switch name {
	case "create_character":
		var in game.CreateCharacterInput
		if err := decodeJSON(r, &in); err != nil {
			return game.Result{}, err
		}
		return s.store.CreateCharacter(in)
	case "update_player":
		var in game.PlayerPatch
		if err := decodeJSON(r, &in); err != nil {
			return game.Result{}, err
		}
		return s.store.UpdatePlayer(in)
	case "add_track":
		var in game.Track
		if err := decodeJSON(r, &in); err != nil {
			return game.Result{}, err
		}
		return s.store.AddTrack(in)
	case "add_album":
		var in game.Album
		if err := decodeJSON(r, &in); err != nil {
			return game.Result{}, err
		}
		return s.store.AddAlbum(in)
	case "add_music_video":
		var in game.MusicVideo
		if err := decodeJSON(r, &in); err != nil {
			return game.Result{}, err
		}
		return s.store.AddMusicVideo(in)
	case "add_collaboration":
		var in game.Collaboration
		if err := decodeJSON(r, &in); err != nil {
			return game.Result{}, err
		}
		return s.store.AddCollaboration(in)
	case "mark_tracks_in_album":
		var in struct {
			TrackIDs []string `json:"track_ids"`
		}
		if err := decodeJSON(r, &in); err != nil {
			return game.Result{}, err
		}
		return s.store.MarkTracksInAlbum(in.TrackIDs)
	case "mark_track_has_video":
		var in struct {
			TrackID string `json:"track_id"`
		}
		if err := decodeJSON(r, &in); err != nil {
			return game.Result{}, err
		}
		return s.store.MarkTrackHasVideo(in.TrackID)
	case "add_concert":
		var in game.ConcertInput
		if err := decodeJSON(r, &in); err != nil {
			return game.Result{}, err
		}
		return s.store.AddConcert(in)
	case "add_social_post":
		var in game.SocialPostInput
		if err := decodeJSON(r, &in); err != nil {
			return game.Result{}, err
		}
		return s.store.AddSocialPost(in)
	case "release_content":
		var in game.ReleaseContentInput
		if err := decodeJSON(r, &in); err != nil {
			return game.Result{}, err
		}
		return s.store.ReleaseContent(in)
	case "announce_release":
		var in struct {
			ReleaseID string `json:"release_id"`
		}
		if err := decodeJSON(r, &in); err != nil {
			return game.Result{}, err
		}
		return s.store.AnnounceRelease(in.ReleaseID)
	case "advance_week":
		return s.store.AdvanceWeek()
	case "upgrade_skill":
		var in game.UpgradeSkillInput
		if err := decodeJSON(r, &in); err != nil {
			return game.Result{}, err
		}
		return s.store.UpgradeSkill(in)
	case "work_job":
		var in game.WorkJobInput
		if err := decodeJSON(r, &in); err != nil {
			return game.Result{}, err
		}
		return s.store.WorkJob(in)
	case "buy_item":
		var in game.BuyItemInput
		if err := decodeJSON(r, &in); err != nil {
			return game.Result{}, err
		}
		return s.store.BuyItem(in)
	case "set_current_page":
		var in struct {
			Page string `json:"page"`
		}
		if err := decodeJSON(r, &in); err != nil {
			return game.Result{}, err
		}
		return s.store.SetCurrentPage(in.Page)
	case "add_notification":
		var in game.Notification
		if err := decodeJSON(r, &in); err != nil {
			return game.Result{}, err
		}
		return s.store.AddNotification(in)
	case "reset":
		return s.store.Reset()
	default:
		return game.Result{}, game.ErrUnknownIntent
	}
}

func (s *Server) handleSlots(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"slots":  s.saves.List(),
		"active": s.saves.ActiveSlot(),
	})
}

func (s *Server) handleSlotLoad(w http.ResponseWriter, r *http.Request) {
	slot, err := strconv.Atoi(chi.URLParam(r, "slot"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "slot must be a number")
		return
	}
	snap, err := s.saves.Load(slot)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	res, err := s.store.LoadState(snap)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := s.saves.SetActiveSlot(slot); err != nil {
		s.log.Warn("active slot marker write failed", "slot", slot, "err", err)
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSlotDelete(w http.ResponseWriter, r *http.Request) {
	slot, err := strconv.Atoi(chi.URLParam(r, "slot"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "slot must be a number")
		return
	}
	if err := s.saves.Delete(slot); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrUnknownIntent):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrContentNotFound),
		errors.Is(err, game.ErrReleaseNotFound),
		errors.Is(err, save.ErrEmptySlot):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrAlreadyReleased),
		errors.Is(err, game.ErrAlreadyAnnounced),
		errors.Is(err, game.ErrDuplicateID),
		errors.Is(err, game.ErrGameInProgress),
		errors.Is(err, game.ErrItemOwned):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, game.ErrInsufficientEnergy),
		errors.Is(err, game.ErrInsufficientFunds),
		errors.Is(err, game.ErrSkillMaxed),
		errors.Is(err, game.ErrTrackInAlbum),
		errors.Is(err, game.ErrTrackHasVideo),
		errors.Is(err, game.ErrInvalidStageName),
		errors.Is(err, game.ErrInvalidSlot),
		errors.Is(err, game.ErrUnknownSkill),
		errors.Is(err, game.ErrUnknownPlatform),
		errors.Is(err, game.ErrUnknownJob),
		errors.Is(err, game.ErrUnknownItem),
		errors.Is(err, game.ErrNoGame),
		errors.Is(err, save.ErrCorruptSlot):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}
