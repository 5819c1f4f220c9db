// Package main provides the tabletop server binary: a websocket endpoint for
// live sessions plus the rooms listing page and client assets.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/GitGRG/dragonshoard/internal/config"
	"github.com/GitGRG/dragonshoard/internal/game"
	"github.com/GitGRG/dragonshoard/internal/observability"
	"github.com/GitGRG/dragonshoard/internal/server"
	"github.com/GitGRG/dragonshoard/internal/web"
	"github.com/GitGRG/dragonshoard/internal/ws"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	store := game.NewStore(game.NewCryptoSource(), logger)
	hub := ws.NewHub(store, cfg.Server.AllowedOrigins, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	mux.Handle("/rooms", web.RoomsHandler(store, logger))
	if cfg.Static.Dir != "" {
		mux.Handle("/", web.Static(cfg.Static.Dir))
	}

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: mux,
	}

	lifecycle := server.NewLifecycle(logger)
	lifecycle.Add("http", &server.FuncService{
		StartFn: func() error {
			logger.Info("http server listening", zap.String("addr", cfg.Server.Addr()))
			if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serving http on %s: %w", cfg.Server.Addr(), err)
			}
			return nil
		},
		StopFn: func() {
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.Warn("http shutdown", zap.Error(err))
			}
			// Shutdown does not cover hijacked websocket connections.
			hub.Stop()
		},
	})

	logger.Info("server initialized",
		zap.Duration("startup", time.Since(start)),
		zap.String("addr", cfg.Server.Addr()),
		zap.String("static_dir", cfg.Static.Dir),
	)

	if err := lifecycle.Run(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
