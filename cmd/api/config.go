package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"loopwalk.dev/internal/app"
	"loopwalk.dev/internal/appconf"
	"loopwalk.dev/internal/route"
)

// config holds the application settings plus what main needs to build its
// dependencies. Flags override LOOPWALK_* environment variables, which may come
// from a .env file.
type config struct {
	app       app.Config
	dbPath    string
	gtfsFile  string
	gtfsRoute string
	verbose   bool
}

func envOr(getenv func(string) string, key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(getenv func(string) string, key string, def int) (int, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func parseConfig(args []string, getenv func(string) string, output io.Writer) (config, error) {
	var cfg config
	var envFlag, apiKeysFlag string

	port, err := envIntOr(getenv, "LOOPWALK_PORT", 4000)
	if err != nil {
		return cfg, err
	}
	rateLimit, err := envIntOr(getenv, "LOOPWALK_RATE_LIMIT", 100)
	if err != nil {
		return cfg, err
	}
	restInterval, err := envIntOr(getenv, "LOOPWALK_REST_INTERVAL", route.DefaultRestInterval)
	if err != nil {
		return cfg, err
	}
	restMinutes, err := envIntOr(getenv, "LOOPWALK_REST_MINUTES", route.DefaultRestMinutes)
	if err != nil {
		return cfg, err
	}

	fs := flag.NewFlagSet("api", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.IntVar(&cfg.app.Port, "port", port, "API server port")
	fs.StringVar(&envFlag, "env", envOr(getenv, "LOOPWALK_ENV", "development"), "Environment (development|test|production)")
	fs.StringVar(&apiKeysFlag, "api-keys", envOr(getenv, "LOOPWALK_API_KEYS", ""), "Comma separated API keys required to change saved plans (empty leaves them open)")
	fs.IntVar(&cfg.app.RateLimit, "rate-limit", rateLimit, "Requests per second per client (negative disables limiting)")
	fs.StringVar(&cfg.app.TimeZone, "timezone", envOr(getenv, "LOOPWALK_TIMEZONE", "Asia/Tokyo"), "IANA time zone for clock times")
	fs.IntVar(&cfg.app.RestInterval, "rest-interval", restInterval, "Default number of walked segments between rests (0 disables rests)")
	fs.IntVar(&cfg.app.RestMinutes, "rest-minutes", restMinutes, "Default rest duration in minutes")
	fs.StringVar(&cfg.dbPath, "db-path", envOr(getenv, "LOOPWALK_DB_PATH", "./loopwalk.db"), "Path to the SQLite plan database, or :memory:")
	fs.StringVar(&cfg.gtfsFile, "gtfs-file", envOr(getenv, "LOOPWALK_GTFS_FILE", ""), "Path or URL of a static GTFS zip to load stations from (default: built-in Yamanote line)")
	fs.StringVar(&cfg.gtfsRoute, "gtfs-route", envOr(getenv, "LOOPWALK_GTFS_ROUTE", ""), "Route id of the loop line in the GTFS feed")
	fs.BoolVar(&cfg.verbose, "verbose", false, "Log database setup details")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	cfg.app.Env = appconf.EnvFlagToEnvironment(envFlag)
	if apiKeysFlag != "" {
		for _, key := range strings.Split(apiKeysFlag, ",") {
			if key = strings.TrimSpace(key); key != "" {
				cfg.app.ApiKeys = append(cfg.app.ApiKeys, key)
			}
		}
	}

	if cfg.gtfsFile != "" && cfg.gtfsRoute == "" {
		return cfg, fmt.Errorf("-gtfs-route is required with -gtfs-file")
	}
	if cfg.app.Env == appconf.Test {
		cfg.dbPath = ":memory:"
	}
	return cfg, nil
}

func loadConfig() (config, error) {
	return parseConfig(os.Args[1:], os.Getenv, os.Stderr)
}
