package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/timesheet/internal/db"
	"github.com/alexanderramin/timesheet/internal/domain"
)

// SQLiteAllocationRepo implements AllocationRepo using a SQLite database.
type SQLiteAllocationRepo struct {
	db db.DBTX
}

func NewSQLiteAllocationRepo(conn db.DBTX) *SQLiteAllocationRepo {
	return &SQLiteAllocationRepo{db: conn}
}

const allocationColumns = `id, person_id, week_start, project_number, project_name, milestone_name,
	project_manager, contract_labor, percent_labor_used, hours, remarks, available_hours,
	created_at, updated_at`

func (r *SQLiteAllocationRepo) Create(ctx context.Context, a *domain.AllocationRow) error {
	if a.ID == "" {
		return fmt.Errorf("inserting allocation: id is required")
	}
	query := `INSERT INTO allocations (` + allocationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.PersonID,
		weekToString(a.WeekStart),
		a.ProjectNumber,
		a.ProjectName,
		a.MilestoneName,
		a.ProjectManager,
		a.ContractLabor,
		a.PercentLaborUsed,
		a.Hours,
		a.Remarks,
		boolToInt(a.AvailableHours),
		timeToString(a.CreatedAt),
		timeToString(a.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting allocation: %w", err)
	}
	return nil
}

func (r *SQLiteAllocationRepo) GetByID(ctx context.Context, id string) (*domain.AllocationRow, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+allocationColumns+` FROM allocations WHERE id = ?`, id)
	a, err := scanAllocation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("allocation: %w", ErrNotFound)
		}
		return nil, err
	}
	return a, nil
}

func (r *SQLiteAllocationRepo) Update(ctx context.Context, a *domain.AllocationRow) error {
	query := `UPDATE allocations SET
		person_id = ?, week_start = ?, project_number = ?, project_name = ?, milestone_name = ?,
		project_manager = ?, contract_labor = ?, percent_labor_used = ?, hours = ?, remarks = ?,
		available_hours = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		a.PersonID,
		weekToString(a.WeekStart),
		a.ProjectNumber,
		a.ProjectName,
		a.MilestoneName,
		a.ProjectManager,
		a.ContractLabor,
		a.PercentLaborUsed,
		a.Hours,
		a.Remarks,
		boolToInt(a.AvailableHours),
		timeToString(a.UpdatedAt),
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("updating allocation: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("allocation %s: %w", a.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteAllocationRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM allocations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting allocation: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("allocation %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteAllocationRepo) ListByPersonWeek(ctx context.Context, personID string, week time.Time) ([]*domain.AllocationRow, error) {
	query := `SELECT ` + allocationColumns + ` FROM allocations
		WHERE person_id = ? AND week_start = ?
		ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, personID, weekToString(week))
	if err != nil {
		return nil, fmt.Errorf("listing allocations by person week: %w", err)
	}
	defer rows.Close()
	return scanAllocations(rows)
}

func (r *SQLiteAllocationRepo) ListByWeeks(ctx context.Context, from, to time.Time) ([]*domain.AllocationRow, error) {
	query := `SELECT ` + allocationColumns + ` FROM allocations
		WHERE week_start >= ? AND week_start <= ?
		ORDER BY week_start, person_id, created_at, id`
	rows, err := r.db.QueryContext(ctx, query, weekToString(from), weekToString(to))
	if err != nil {
		return nil, fmt.Errorf("listing allocations by weeks: %w", err)
	}
	defer rows.Close()
	return scanAllocations(rows)
}

func (r *SQLiteAllocationRepo) DeleteByPersonWeek(ctx context.Context, personID string, week time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM allocations WHERE person_id = ? AND week_start = ?`, personID, weekToString(week))
	if err != nil {
		return 0, fmt.Errorf("deleting allocations by person week: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func scanAllocations(rows *sql.Rows) ([]*domain.AllocationRow, error) {
	var out []*domain.AllocationRow
	for rows.Next() {
		a, err := scanAllocation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating allocations: %w", err)
	}
	return out, nil
}

// scanAllocation returns sql.ErrNoRows unwrapped so GetByID can map it.
func scanAllocation(s rowScanner) (*domain.AllocationRow, error) {
	var a domain.AllocationRow
	var weekStr, createdStr, updatedStr string
	var available int

	err := s.Scan(
		&a.ID, &a.PersonID, &weekStr, &a.ProjectNumber, &a.ProjectName, &a.MilestoneName,
		&a.ProjectManager, &a.ContractLabor, &a.PercentLaborUsed, &a.Hours, &a.Remarks, &available,
		&createdStr, &updatedStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning allocation: %w", err)
	}
	a.AvailableHours = available != 0

	if a.WeekStart, err = time.Parse(domain.WeekLayout, weekStr); err != nil {
		return nil, fmt.Errorf("parsing week_start: %w", err)
	}
	if a.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if a.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &a, nil
}
