package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"chathub/internal/chat"
	"chathub/internal/console"
	"chathub/internal/server"
)

func main() {
	cfg, err := server.LoadConfig()
	if err != nil {
		errLogger := zerolog.New(os.Stderr)
		errLogger.Fatal().Err(err).Msg("invalid configuration")
	}

	var logger zerolog.Logger
	if cfg.IsDevelopment() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Logger()
	} else {
		logger = zerolog.New(os.Stdout).
			With().
			Timestamp().
			Logger()
	}

	store := chat.SeedStore()

	hub := server.NewHub(logger)
	go hub.Run()

	handler := server.NewHandler(store, hub, logger)
	ws := server.NewWebSocketHandler(hub, handler, cfg, logger)
	router := server.NewRouter(ws, logger)
	srv := server.CreateServer(cfg.Port, router)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go console.New(store, handler, cancel, logger).Run(ctx)

	if cfg.SimulateTraffic {
		go server.NewSimulator(store, handler, hub, logger).Run(ctx)
		logger.Info().Msg("traffic simulator enabled")
	}

	go func() {
		logger.Info().
			Str("addr", cfg.Port).
			Str("env", cfg.Env).
			Msg("starting chathub server")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Stop on operator quit or on SIGINT/SIGTERM.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server...")

	if err := server.ShutdownServer(srv, 10*time.Second); err != nil {
		logger.Error().Err(err).Msg("http shutdown error")
	}
	if err := hub.Shutdown(5 * time.Second); err != nil {
		logger.Error().Err(err).Msg("hub shutdown incomplete")
	}

	logger.Info().Msg("server stopped")
}
