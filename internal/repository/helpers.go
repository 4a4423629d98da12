package repository

import (
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
)

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// weekToString formats a week start for storage, normalizing to Monday.
func weekToString(t time.Time) string {
	return domain.StartOfWeek(t).Format(domain.WeekLayout)
}

func timeToString(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(time.RFC3339)
}
