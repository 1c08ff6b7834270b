package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kiin-labs/kiinmix/internal/adapters/catalog"
	"github.com/kiin-labs/kiinmix/internal/adapters/render"
	"github.com/kiin-labs/kiinmix/internal/adapters/rest"
	"github.com/kiin-labs/kiinmix/internal/adapters/sqlite"
	"github.com/kiin-labs/kiinmix/internal/config"
	"github.com/kiin-labs/kiinmix/internal/core/services"
	"github.com/kiin-labs/kiinmix/internal/worker"
)

func main() {
	// 1. Configuration
	cfgPath := os.Getenv("KIINMIX_CONFIG")
	if cfgPath == "" {
		cfgPath = "kiinmix.toml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("FATAL: build logger: %v", err)
	}
	defer logger.Sync()

	// 2. Driven adapters: track store and catalog ingest
	store, err := sqlite.NewAdapter(expandHome(cfg.Paths.DBPath))
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer store.Close()

	scanner := catalog.NewScanner(store, logger)
	tracks, err := scanner.Scan(context.Background(), expandHome(cfg.Paths.CatalogDir))
	if err != nil {
		logger.Fatal("catalog scan failed", zap.Error(err))
	}

	// 3. Background energy analysis for tracks that have none yet
	pool := worker.NewPool(store, logger, 100)
	pool.Start(2)
	defer pool.Stop()
	for _, t := range tracks {
		if t.Energy == 0 {
			pool.Submit(worker.Job{TrackID: t.ID, Path: t.Path})
		}
	}

	// 4. Core services
	profiles, err := cfg.Profiles()
	if err != nil {
		logger.Fatal("invalid mood profiles", zap.Error(err))
	}
	looper, err := services.NewLoopPlanner(services.FadeSettings{
		Crossfade: cfg.Audio.CrossfadeSeconds,
		FadeIn:    cfg.Audio.FadeInSeconds,
		FadeOut:   cfg.Audio.FadeOutSeconds,
	})
	if err != nil {
		logger.Fatal("invalid fade settings", zap.Error(err))
	}
	ducker, err := services.NewDuckingMixer(cfg.Audio.DuckTransitionSeconds)
	if err != nil {
		logger.Fatal("invalid duck settings", zap.Error(err))
	}
	selector := services.NewTrackSelector(store, cfg.Selection.RecencyWindow, rand.NewSource(time.Now().UnixNano()))
	engine, err := services.NewEngine(services.NewMoodClassifier(), selector, looper, ducker, profiles, logger)
	if err != nil {
		logger.Fatal("failed to build engine", zap.Error(err))
	}

	// 5. Driving adapter and server
	handler := rest.NewHandler(engine, store, render.NewRenderer(store, logger), logger)

	srv := &http.Server{
		Addr:              cfg.Paths.APIBind,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}
	logger.Info("kiinmix api listening", zap.String("bind", cfg.Paths.APIBind))

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Fatal("server failed", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown error", zap.Error(err))
		}
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if level == "debug" {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
