package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
)

// Config holds runtime settings for the timesheet binary.
type Config struct {
	DBPath                string
	DefaultScheduledHours float64
	CacheTTL              time.Duration
	// LWOPMode forces one Ratio B variant on every report. Empty keeps
	// each report's own default.
	LWOPMode    domain.LWOPMode
	Locale      string
	LogUseCases bool
}

// DefaultConfig returns the built-in settings. DBPath is left empty and
// resolved by LoadConfig against the home directory.
func DefaultConfig() Config {
	return Config{
		DefaultScheduledHours: domain.DefaultScheduledHours,
		CacheTTL:              30 * time.Second,
		Locale:                "en-US",
		LogUseCases:           false,
	}
}

// LoadConfig reads configuration from environment variables, falling back
// to defaults for unset or invalid values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("TIMESHEET_DB"); v != "" {
		cfg.DBPath = v
	} else if home, err := os.UserHomeDir(); err == nil {
		cfg.DBPath = filepath.Join(home, ".timesheet", "timesheet.db")
	}
	if v := os.Getenv("TIMESHEET_DEFAULT_SCHEDULED_HOURS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 && f <= 168 {
			cfg.DefaultScheduledHours = f
		}
	}
	if v := os.Getenv("TIMESHEET_CACHE_TTL_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.CacheTTL = time.Duration(n) * time.Second
		}
	}
	if v := os.Getenv("TIMESHEET_LWOP_MODE"); v != "" {
		mode := domain.LWOPMode(strings.ToLower(strings.TrimSpace(v)))
		if domain.ValidLWOPModes[string(mode)] {
			cfg.LWOPMode = mode
		}
	}
	if v := os.Getenv("TIMESHEET_LOCALE"); v != "" {
		cfg.Locale = v
	}
	if v := os.Getenv("TIMESHEET_LOG_USE_CASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}

	return cfg
}
