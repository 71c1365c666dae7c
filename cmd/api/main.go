package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"loopwalk.dev/internal/app"
	"loopwalk.dev/internal/logging"
	"loopwalk.dev/internal/restapi"
	"loopwalk.dev/internal/stations"
	"loopwalk.dev/plansdb"

	_ "time/tzdata"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("failed to read .env file", "error", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func loadRegistry(cfg config, logger *slog.Logger) (*stations.Registry, error) {
	if cfg.gtfsFile == "" {
		return stations.Yamanote(), nil
	}

	registry, err := stations.LoadGTFS(cfg.gtfsFile, cfg.gtfsRoute)
	if err != nil {
		return nil, fmt.Errorf("failed to load stations from GTFS: %w", err)
	}
	logger.Info("loaded stations from GTFS", "source", cfg.gtfsFile, "route", cfg.gtfsRoute, "stations", registry.Len())
	return registry, nil
}

func run(cfg config, logger *slog.Logger) error {
	registry, err := loadRegistry(cfg, logger)
	if err != nil {
		return err
	}

	db, err := plansdb.NewClient(plansdb.NewConfig(cfg.dbPath, cfg.app.Env, cfg.verbose), logger)
	if err != nil {
		return fmt.Errorf("failed to open plan database: %w", err)
	}
	defer logging.SafeCloseWithLogging(db, logger, "plan_database")

	application, err := app.New(cfg.app, logger, registry, db)
	if err != nil {
		return err
	}

	api := restapi.NewRestAPI(application)
	defer api.Shutdown()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.app.Port),
		Handler:      routes(application, api, logger),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr, "env", cfg.app.Env.String(), "stations", registry.Len())
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
