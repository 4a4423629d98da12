package config

import (
	"testing"
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 40.0, cfg.DefaultScheduledHours)
	assert.Empty(t, cfg.LWOPMode)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.False(t, cfg.LogUseCases)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("TIMESHEET_DB", "/tmp/ts.db")
	t.Setenv("TIMESHEET_DEFAULT_SCHEDULED_HOURS", "37.5")
	t.Setenv("TIMESHEET_CACHE_TTL_SEC", "0")
	t.Setenv("TIMESHEET_LWOP_MODE", " Exclude ")
	t.Setenv("TIMESHEET_LOCALE", "de-DE")
	t.Setenv("TIMESHEET_LOG_USE_CASES", "true")

	cfg := LoadConfig()

	assert.Equal(t, "/tmp/ts.db", cfg.DBPath)
	assert.Equal(t, 37.5, cfg.DefaultScheduledHours)
	assert.Equal(t, time.Duration(0), cfg.CacheTTL)
	assert.Equal(t, domain.LWOPExcluded, cfg.LWOPMode)
	assert.Equal(t, "de-DE", cfg.Locale)
	assert.True(t, cfg.LogUseCases)
}

func TestLoadConfig_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("TIMESHEET_DEFAULT_SCHEDULED_HOURS", "-8")
	t.Setenv("TIMESHEET_CACHE_TTL_SEC", "soon")
	t.Setenv("TIMESHEET_LWOP_MODE", "sometimes")

	cfg := LoadConfig()

	assert.Equal(t, 40.0, cfg.DefaultScheduledHours)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Empty(t, cfg.LWOPMode)
}

func TestLoadConfig_DefaultDBPathUnderHome(t *testing.T) {
	t.Setenv("TIMESHEET_DB", "")
	t.Setenv("HOME", "/home/tester")

	cfg := LoadConfig()

	assert.Equal(t, "/home/tester/.timesheet/timesheet.db", cfg.DBPath)
}
