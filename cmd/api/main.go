package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/marcelsud/bookshelf-api/book"
	"github.com/marcelsud/bookshelf-api/config"
	"github.com/marcelsud/bookshelf-api/internal/http/chi"
	"github.com/marcelsud/bookshelf-api/internal/storage"
	"github.com/marcelsud/bookshelf-api/metrics"
	"github.com/marcelsud/bookshelf-api/seed"
)

const TIMEOUT = 30 * time.Second

/*
 * main wires everything: config, storage, service, metrics and the HTTP server.
 * Imports flow one way, down: cmd -> internal/http -> book -> book/{memory,redis}
 */

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		return
	}
	logger := chi.NewLogger(cfg.LogJSON)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	repo, err := storage.Open(ctx, cfg)
	if err != nil {
		logger.Error().Err(err).Msg("opening store")
		return
	}
	defer repo.Close(ctx)
	logger.Info().Str("backend", cfg.StoreBackend).Msg("store ready")

	s := book.NewService(repo)

	if cfg.SeedFile != "" {
		loader := seed.NewLoader()
		if err := loader.Load(cfg.SeedFile); err != nil {
			logger.Error().Err(err).Msg("loading seed file")
			return
		}
		ids, err := loader.Apply(ctx, s)
		if err != nil {
			logger.Error().Err(err).Msg("seeding books")
			return
		}
		logger.Info().Int("books", len(ids)).Str("file", cfg.SeedFile).Msg("seeded store")
	}

	exporter, err := metrics.NewOTelExporter(metrics.NewBookCollector(repo))
	if err != nil {
		logger.Error().Err(err).Msg("creating metrics exporter")
		return
	}
	defer exporter.Shutdown(context.Background())

	r := chi.Handlers(ctx, logger, s, exporter.ServeHTTP())
	srv := &http.Server{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Addr:         ":" + cfg.Port,
		Handler:      r,
	}

	errShutdown := make(chan error, 1)
	go shutdown(srv, ctx, errShutdown)
	logger.Info().Str("port", cfg.Port).Msg("listening")
	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("serving http")
		return
	}
	err = <-errShutdown
	if err != nil {
		logger.Error().Err(err).Msg("shutting down")
		return
	}
	logger.Info().Msg("server stopped")
}

func shutdown(server *http.Server, ctxShutdown context.Context, errShutdown chan error) {
	<-ctxShutdown.Done()

	ctxTimeout, stop := context.WithTimeout(context.Background(), TIMEOUT)
	defer stop()

	err := server.Shutdown(ctxTimeout)
	switch err {
	case nil:
		errShutdown <- nil
	case context.DeadlineExceeded:
		errShutdown <- fmt.Errorf("forcing server close after %s", TIMEOUT)
	default:
		errShutdown <- fmt.Errorf("forcing server close: %w", err)
	}
}
