package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"encore/internal/api"
	"encore/internal/config"
	"encore/internal/game"
	"encore/internal/save"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	saves, err := save.NewManager(cfg.SaveDir)
	if err != nil {
		logger.Error("save dir init failed", "err", err)
		os.Exit(1)
	}

	store := game.NewStore(logger, saves, cfg.Seed)
	slot := saves.ActiveSlot()
	if err := store.SetSlot(slot); err != nil {
		logger.Error("slot bind failed", "slot", slot, "err", err)
		os.Exit(1)
	}
	if snap, err := saves.Load(slot); err == nil {
		if _, err := store.LoadState(snap); err != nil {
			logger.Error("resume failed", "slot", slot, "err", err)
			os.Exit(1)
		}
		logger.Info("resumed save", "slot", slot, "stage_name", snap.Player.StageName)
	} else if !errors.Is(err, save.ErrEmptySlot) {
		logger.Warn("save load skipped", "slot", slot, "err", err)
	}

	autosaver := save.NewAutosaver(logger, saves, cfg.AutosaveEvery, store.State)
	go autosaver.Run(ctx)

	server := api.New(cfg, logger, store, saves)
	httpServer := &http.Server{
		Addr:              cfg.APIAddr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("encore api listening", "addr", cfg.APIAddr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}
