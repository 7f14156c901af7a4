package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
app:
  name: renvask
  environment: test
database:
  path: /tmp/renvask-test.db
api:
  enabled: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.API.HTTP.Port)
	assert.True(t, cfg.API.HTTP.Enabled, "http enabled should follow api.enabled")
	assert.Equal(t, "x-api-key", cfg.API.Auth.HeaderAPIKey)

	assert.Equal(t, 8, cfg.Booking.WeekdayOpenHour)
	assert.Equal(t, 18, cfg.Booking.WeekdayCloseHour)
	assert.Equal(t, 8, cfg.Booking.SaturdayOpenHour)
	assert.Equal(t, 14, cfg.Booking.SaturdayCloseHour)
	assert.Equal(t, 3, cfg.Booking.Teams)
	assert.Equal(t, "Europe/Copenhagen", cfg.Booking.Timezone)
	assert.Equal(t, 90, cfg.Booking.MaxBookingDays)
}

func TestLoad_MissingDatabasePath(t *testing.T) {
	path := writeConfig(t, `
app:
  name: renvask
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database path")
}

func TestLoad_InvalidWorkingHours(t *testing.T) {
	path := writeConfig(t, `
database:
  path: /tmp/renvask-test.db
booking:
  weekday_open_hour: 18
  weekday_close_hour: 8
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weekday hours invalid")
}

func TestLoad_DuplicateAPIKeys(t *testing.T) {
	path := writeConfig(t, `
database:
  path: /tmp/renvask-test.db
api:
  enabled: true
  auth:
    api_keys:
      - key: abc
        extra: "1"
        name: site
      - key: abc
        extra: "2"
        name: admin
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate api key")
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("RENVASK_DB_PATH", "/tmp/expanded.db")
	path := writeConfig(t, `
database:
  path: ${RENVASK_DB_PATH}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/expanded.db", cfg.Database.Path)
}
