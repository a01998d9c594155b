package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wahlimport/internal"
	"wahlimport/internal/api"
	"wahlimport/internal/config"
	"wahlimport/internal/container"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := internal.NewDefaultLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("failed to load configuration")
	}
	logger.SetLevel(internal.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := container.New(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to create container")
	}
	if err := c.Open(ctx); err != nil {
		logger.WithError(err).Fatal("failed to connect to database")
	}
	defer c.Shutdown(context.Background())

	if err := c.Migrate(ctx); err != nil {
		logger.WithError(err).Fatal("failed to run migrations")
	}

	server := api.NewServer(c.ResultRepo, c.ImportRunRepo, c.Summaries, cfg.Server, logger)
	httpServer := server.HTTPServer()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.WithField("addr", httpServer.Addr).Info("API server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.WithError(err).Error("API server stopped with error")
		c.Shutdown(context.Background())
		os.Exit(1)
	}
	logger.Info("API server stopped")
}
