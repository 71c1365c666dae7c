package main

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"loopwalk.dev/internal/appconf"
)

func noEnv(string) string { return "" }

func envFrom(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := parseConfig(nil, noEnv, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.app.Port)
	assert.Equal(t, appconf.Development, cfg.app.Env)
	assert.Empty(t, cfg.app.ApiKeys)
	assert.Equal(t, 100, cfg.app.RateLimit)
	assert.Equal(t, "Asia/Tokyo", cfg.app.TimeZone)
	assert.Equal(t, 5, cfg.app.RestInterval)
	assert.Equal(t, 10, cfg.app.RestMinutes)
	assert.Equal(t, "./loopwalk.db", cfg.dbPath)
	assert.Empty(t, cfg.gtfsFile)
}

func TestParseConfigFlags(t *testing.T) {
	cfg, err := parseConfig([]string{
		"-port", "8080",
		"-env", "production",
		"-api-keys", "one, two,,",
		"-rate-limit", "-1",
		"-timezone", "UTC",
		"-rest-interval", "0",
		"-rest-minutes", "15",
		"-db-path", "/tmp/plans.db",
		"-gtfs-file", "feed.zip",
		"-gtfs-route", "JY",
		"-verbose",
	}, noEnv, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.app.Port)
	assert.Equal(t, appconf.Production, cfg.app.Env)
	assert.Equal(t, []string{"one", "two"}, cfg.app.ApiKeys)
	assert.Equal(t, -1, cfg.app.RateLimit)
	assert.Equal(t, "UTC", cfg.app.TimeZone)
	assert.Equal(t, 0, cfg.app.RestInterval)
	assert.Equal(t, 15, cfg.app.RestMinutes)
	assert.Equal(t, "/tmp/plans.db", cfg.dbPath)
	assert.Equal(t, "feed.zip", cfg.gtfsFile)
	assert.Equal(t, "JY", cfg.gtfsRoute)
	assert.True(t, cfg.verbose)
}

func TestParseConfigEnvironment(t *testing.T) {
	getenv := envFrom(map[string]string{
		"LOOPWALK_PORT":     "9000",
		"LOOPWALK_API_KEYS": "from-env",
		"LOOPWALK_DB_PATH":  "env.db",
	})

	cfg, err := parseConfig(nil, getenv, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.app.Port)
	assert.Equal(t, []string{"from-env"}, cfg.app.ApiKeys)
	assert.Equal(t, "env.db", cfg.dbPath)

	// Flags win over the environment.
	cfg, err = parseConfig([]string{"-port", "9001"}, getenv, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 9001, cfg.app.Port)
}

func TestParseConfigErrors(t *testing.T) {
	_, err := parseConfig(nil, envFrom(map[string]string{"LOOPWALK_PORT": "abc"}), io.Discard)
	assert.ErrorContains(t, err, "LOOPWALK_PORT")

	_, err = parseConfig([]string{"-gtfs-file", "feed.zip"}, noEnv, io.Discard)
	assert.ErrorContains(t, err, "-gtfs-route")

	_, err = parseConfig([]string{"-unknown"}, noEnv, io.Discard)
	assert.Error(t, err)
}

func TestParseConfigTestEnvUsesMemoryDatabase(t *testing.T) {
	cfg, err := parseConfig([]string{"-env", "test", "-db-path", "plans.db"}, noEnv, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, appconf.Test, cfg.app.Env)
	assert.Equal(t, ":memory:", cfg.dbPath)
}
