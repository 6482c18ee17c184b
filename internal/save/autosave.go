package save

import (
	"context"
	"log/slog"
	"time"

	"encore/internal/game"
)

// Autosaver is the timer backstop behind mutation-driven saves. Every
// mutating intent already persists synchronously, so this loop only re-saves
// the current snapshot on a wall-clock interval; losing it loses no data.
type Autosaver struct {
	log      *slog.Logger
	mgr      *Manager
	every    time.Duration
	snapshot func() game.State
}

func NewAutosaver(logger *slog.Logger, mgr *Manager, every time.Duration, snapshot func() game.State) *Autosaver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Autosaver{log: logger, mgr: mgr, every: every, snapshot: snapshot}
}

// Run blocks until ctx is done.
func (a *Autosaver) Run(ctx context.Context) {
	ticker := time.NewTicker(a.every)
	defer ticker.Stop()

	a.log.Info("autosaver started", "every", a.every.String())
	for {
		select {
		case <-ctx.Done():
			a.log.Info("autosaver shutdown")
			return
		case <-ticker.C:
			s := a.snapshot()
			if !s.GameStarted {
				continue
			}
			if err := a.mgr.Save(s.Slot, s); err != nil {
				a.log.Error("periodic save failed", "slot", s.Slot, "err", err)
				continue
			}
			a.log.Debug("periodic save complete", "slot", s.Slot)
		}
	}
}
