package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	httpapi "clueless/internal/api/http"
	"clueless/internal/api/ws"
	"clueless/internal/config"
	"clueless/internal/events"
	"clueless/internal/game"
	"clueless/internal/room"
	"clueless/internal/store"

	// swagger packages
	_ "clueless/docs"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// @title Clue-Less Game Server API
// @version 1.0
// @description Session coordinator for a deduction board game (Go + Gin)
// @contact.name Backend Team
// @BasePath /
func main() {
	cfg := config.Load()
	config.SetupLogger(cfg)
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	data, err := loadData(cfg.BoardFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.BoardFile).Msg("reference data rejected")
	}

	hub := ws.NewHub(cfg.AllowedOrigins)
	opts := []room.ManagerOption{
		room.WithBroadcaster(hub),
		room.WithBots(room.BotConfig{Weights: cfg.BotWeights, Delay: cfg.BotDelay}),
	}

	if cfg.NATSURL != "" {
		nc, err := events.Connect(cfg.NATSURL)
		if err != nil {
			log.Fatal().Err(err).Msg("nats")
		}
		defer nc.Drain()
		opts = append(opts, room.WithBroadcaster(events.NewPublisher(nc, cfg.NATSSubjectPrefix)))
		log.Info().Str("url", cfg.NATSURL).Msg("publishing public events to nats")
	}

	if cfg.MirrorDSN != "" {
		mirror, err := store.OpenSQLiteMirror(cfg.MirrorDSN, cfg.MirrorQueue)
		if err != nil {
			log.Fatal().Err(err).Msg("mirror")
		}
		defer mirror.Close()
		reportOpenSessions(mirror)
		opts = append(opts, room.WithMirror(mirror))
		log.Info().Str("dsn", cfg.MirrorDSN).Msg("mirroring snapshots to sqlite")
	}

	rm := room.NewManager(store.NewMemoryStore(), data, opts...)
	hub.SetManager(rm)
	defer rm.Shutdown()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(rm, hub, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
}

// reportOpenSessions logs the sessions a previous run left unfinished. Sessions
// live in memory only, so these cannot be resumed.
func reportOpenSessions(mirror *store.SQLiteMirror) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	rows, err := mirror.ListOpen(ctx)
	if err != nil {
		log.Error().Err(err).Msg("listing mirrored sessions")
		return
	}
	for _, row := range rows {
		log.Warn().Str("session", row.SessionID).Time("updated_at", row.UpdatedAt).Msg("session left open by a previous run")
	}
}

func loadData(path string) (game.ReferenceData, error) {
	if path == "" {
		return game.DefaultReferenceData()
	}
	return game.LoadReferenceData(path)
}
