package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/timesheet/internal/db"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens a private in-memory timesheet database with the people
// and allocations tables migrated. It is closed on test cleanup.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err, "opening test database")
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

// CountWeekRows counts the stored allocation rows for one person and week,
// bypassing repositories and caches.
func CountWeekRows(t *testing.T, database *sql.DB, personID string, week time.Time) int {
	t.Helper()
	var n int
	err := database.QueryRow(
		`SELECT COUNT(*) FROM allocations WHERE person_id = ? AND week_start = ?`,
		personID, domain.StartOfWeek(week).Format(domain.WeekLayout),
	).Scan(&n)
	require.NoError(t, err)
	return n
}
