package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/timesheet/internal/db"
	"github.com/alexanderramin/timesheet/internal/domain"
)

// SQLitePersonRepo implements PersonRepo using a SQLite database.
type SQLitePersonRepo struct {
	db db.DBTX
}

func NewSQLitePersonRepo(conn db.DBTX) *SQLitePersonRepo {
	return &SQLitePersonRepo{db: conn}
}

const personColumns = `id, name, email, studio, manager, scheduled_hours`

// Upsert inserts the person or replaces the stored directory fields.
// Studio, manager and scheduled hours are stored already defaulted.
func (r *SQLitePersonRepo) Upsert(ctx context.Context, p *domain.Person) error {
	now := time.Now().UTC().Format(time.RFC3339)
	query := `INSERT INTO people (id, name, email, studio, manager, scheduled_hours, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			studio = excluded.studio,
			manager = excluded.manager,
			scheduled_hours = excluded.scheduled_hours,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		strings.ToLower(p.Email),
		p.StudioLabel(),
		p.ManagerLabel(),
		p.EffectiveScheduledHours(),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("upserting person: %w", err)
	}
	return nil
}

func (r *SQLitePersonRepo) GetByID(ctx context.Context, id string) (*domain.Person, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+personColumns+` FROM people WHERE id = ?`, id)
	return scanPerson(row)
}

func (r *SQLitePersonRepo) GetByEmail(ctx context.Context, email string) (*domain.Person, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+personColumns+` FROM people WHERE email = ? ORDER BY id LIMIT 1`,
		strings.ToLower(strings.TrimSpace(email)))
	return scanPerson(row)
}

func (r *SQLitePersonRepo) List(ctx context.Context, filter PersonFilter) ([]*domain.Person, error) {
	query := `SELECT ` + personColumns + ` FROM people`
	var conds []string
	var args []any
	if filter.Studio != "" {
		conds = append(conds, "studio = ?")
		args = append(args, filter.Studio)
	}
	if filter.Manager != "" {
		conds = append(conds, "manager = ?")
		args = append(args, filter.Manager)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY name, id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing people: %w", err)
	}
	defer rows.Close()

	var people []*domain.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating people: %w", err)
	}
	return people, nil
}

func (r *SQLitePersonRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM people WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting person: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("person %s: %w", id, ErrNotFound)
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPerson(s rowScanner) (*domain.Person, error) {
	var p domain.Person
	err := s.Scan(&p.ID, &p.Name, &p.Email, &p.Studio, &p.Manager, &p.ScheduledHours)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("person: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning person: %w", err)
	}
	return &p, nil
}
