package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"loopwalk.dev/internal/appconf"
	"loopwalk.dev/internal/logging"
	"loopwalk.dev/internal/plans"
	"loopwalk.dev/internal/stations"
	"loopwalk.dev/plansdb"
)

// cliOptions holds the persistent flags shared by every subcommand.
type cliOptions struct {
	dbPath    string
	timeZone  string
	gtfsFile  string
	gtfsRoute string
	logLevel  string

	now func() time.Time
}

func newRootCmd(opts *cliOptions) *cobra.Command {
	if opts.now == nil {
		opts.now = time.Now
	}

	rootCmd := &cobra.Command{
		Use:   "walkplan",
		Short: "Plan a walk around a loop railway line",
		Long: `walkplan computes walking itineraries between the stations of a loop line
such as the JR Yamanote line, and keeps saved plans in a local SQLite file.

The built-in Yamanote line is used unless --gtfs-file and --gtfs-route name
another loop in a static GTFS feed.`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.dbPath, "db-path", "./loopwalk.db", "SQLite file holding saved plans")
	flags.StringVar(&opts.timeZone, "timezone", "Asia/Tokyo", "IANA time zone for clock times")
	flags.StringVar(&opts.gtfsFile, "gtfs-file", "", "path or URL of a static GTFS zip to load stations from")
	flags.StringVar(&opts.gtfsRoute, "gtfs-route", "", "route id of the loop line in the GTFS feed")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug|info|warn|error)")

	rootCmd.AddCommand(
		newStationsCmd(opts),
		newRouteCmd(opts),
		newMapCmd(opts),
		newPlansCmd(opts),
	)
	return rootCmd
}

func (o *cliOptions) logger(cmd *cobra.Command) *slog.Logger {
	return logging.NewConsoleLogger(cmd.ErrOrStderr(), logging.ParseLevel(o.logLevel))
}

func (o *cliOptions) registry() (*stations.Registry, error) {
	if o.gtfsFile == "" {
		return stations.Yamanote(), nil
	}
	if o.gtfsRoute == "" {
		return nil, fmt.Errorf("--gtfs-route is required with --gtfs-file")
	}
	return stations.LoadGTFS(o.gtfsFile, o.gtfsRoute)
}

func (o *cliOptions) location() (*time.Location, error) {
	loc, err := time.LoadLocation(o.timeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", o.timeZone, err)
	}
	return loc, nil
}

// openStore opens the plan database. The caller closes the returned client.
func (o *cliOptions) openStore(cmd *cobra.Command) (*plans.Store, io.Closer, error) {
	logger := o.logger(cmd)
	client, err := plansdb.NewClient(plansdb.NewConfig(o.dbPath, appconf.Development, false), logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open plan database: %w", err)
	}
	return plans.NewStore(client, logger), client, nil
}
