package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spectrumparty/backend/internal/httpapi"
	"github.com/spectrumparty/backend/internal/hub"
	"github.com/spectrumparty/backend/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := &Config{}
	cobra.CheckErr(newCmd(cfg).Execute())
}

func run(parent context.Context, cfg *Config) error {
	log, err := newLogger(cfg.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var docs hub.DocumentStore
	if cfg.databaseURL != "" {
		st, err := store.Open(cfg.databaseURL, log)
		if err != nil {
			return err
		}
		docs = st
		log.Info("room persistence enabled")
	}

	h := hub.NewHub(ctx, hub.Opts{
		Logger:          log,
		Store:           docs,
		PresenceTimeout: cfg.presenceTimeout,
		SweepInterval:   cfg.sweepInterval,
	})

	srv := &http.Server{
		Addr:    cfg.addr(),
		Handler: httpapi.SetupRoutes(h, cfg.baseURL, log),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		h.Inbox() <- hub.ShutdownHub{}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
