package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS people (
		id              TEXT PRIMARY KEY,
		name            TEXT NOT NULL DEFAULT '',
		email           TEXT NOT NULL DEFAULT '',
		studio          TEXT NOT NULL DEFAULT 'Unassigned',
		manager         TEXT NOT NULL DEFAULT 'Unassigned',
		scheduled_hours REAL NOT NULL DEFAULT 40.0,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_people_studio ON people(studio)`,
	`CREATE INDEX IF NOT EXISTS idx_people_manager ON people(manager)`,
	`CREATE INDEX IF NOT EXISTS idx_people_email ON people(email)`,

	`CREATE TABLE IF NOT EXISTS allocations (
		id                 TEXT PRIMARY KEY,
		person_id          TEXT NOT NULL REFERENCES people(id) ON DELETE CASCADE,
		week_start         TEXT NOT NULL,
		project_number     TEXT NOT NULL DEFAULT '',
		project_name       TEXT NOT NULL DEFAULT '',
		milestone_name     TEXT NOT NULL DEFAULT '',
		project_manager    TEXT NOT NULL DEFAULT '',
		contract_labor     REAL NOT NULL DEFAULT 0,
		percent_labor_used REAL NOT NULL DEFAULT 0,
		hours              REAL NOT NULL DEFAULT 0 CHECK(hours >= 0),
		remarks            TEXT NOT NULL DEFAULT '',
		available_hours    INTEGER NOT NULL DEFAULT 0,
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_allocations_person_week ON allocations(person_id, week_start)`,
	`CREATE INDEX IF NOT EXISTS idx_allocations_week ON allocations(week_start)`,
	`CREATE INDEX IF NOT EXISTS idx_allocations_project ON allocations(project_number)`,
}
