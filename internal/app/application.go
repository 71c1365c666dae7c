package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"loopwalk.dev/internal/appconf"
	"loopwalk.dev/internal/plans"
	"loopwalk.dev/internal/route"
	"loopwalk.dev/internal/stations"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config     Config
	Logger     *slog.Logger
	Stations   *stations.Registry
	Calculator *route.Calculator
	Plans      *plans.Store
	Storage    plans.Storage
	// Location is used for clock times and for start times given without an offset.
	Location *time.Location
	Now      func() time.Time
}

// StorageInspector is implemented by plan storage backends that can report
// what they hold, such as the SQLite plan database.
type StorageInspector interface {
	Keys(ctx context.Context) ([]string, error)
	TableCounts(ctx context.Context) (map[string]int, error)
}

// Config holds all the configuration settings for our Application. They are
// read from command-line flags when the Application starts.
type Config struct {
	Port         int
	Env          appconf.Environment
	ApiKeys      []string
	RateLimit    int
	TimeZone     string
	RestInterval int
	RestMinutes  int
}

// New wires an Application around a station registry and a plan storage backend.
func New(config Config, logger *slog.Logger, registry *stations.Registry, storage plans.Storage) (*Application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	loc := time.UTC
	if config.TimeZone != "" {
		var err error
		loc, err = time.LoadLocation(config.TimeZone)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone %q: %w", config.TimeZone, err)
		}
	}

	return &Application{
		Config:     config,
		Logger:     logger,
		Stations:   registry,
		Calculator: route.NewCalculator(registry),
		Plans:      plans.NewStore(storage, logger),
		Storage:    storage,
		Location:   loc,
		Now:        time.Now,
	}, nil
}

// InspectableStorage returns the plan storage as a StorageInspector when the
// backend supports it.
func (app *Application) InspectableStorage() (StorageInspector, bool) {
	inspector, ok := app.Storage.(StorageInspector)
	return inspector, ok
}
