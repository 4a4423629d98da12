package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/timesheet/internal/db"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/repository"
	"github.com/google/uuid"
)

type allocationService struct {
	allocs   repository.AllocationRepo
	people   repository.PersonRepo
	uow      db.UnitOfWork
	cache    *SnapshotCache
	observer UseCaseObserver
}

func NewAllocationService(
	allocs repository.AllocationRepo,
	people repository.PersonRepo,
	uow db.UnitOfWork,
	snapshots *SnapshotCache,
	observers ...UseCaseObserver,
) AllocationService {
	return &allocationService{
		allocs:   allocs,
		people:   people,
		uow:      uow,
		cache:    snapshots,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Add stores a new row. The row's ID, week and timestamps are filled in.
func (s *allocationService) Add(ctx context.Context, a *domain.AllocationRow) error {
	if err := validateAllocation(a); err != nil {
		return err
	}
	if _, err := s.people.GetByID(ctx, a.PersonID); err != nil {
		return fmt.Errorf("loading person %s: %w", a.PersonID, err)
	}

	prepareNewRow(a, a.WeekStart, time.Now().UTC())
	if err := s.allocs.Create(ctx, a); err != nil {
		return err
	}
	invalidateWeek(s.cache, a.WeekStart)
	return nil
}

func (s *allocationService) Get(ctx context.Context, id string) (*domain.AllocationRow, error) {
	return s.allocs.GetByID(ctx, id)
}

// Update rewrites an existing row. Moving a row to another week drops the
// cached snapshots of both weeks.
func (s *allocationService) Update(ctx context.Context, a *domain.AllocationRow) error {
	if err := validateAllocation(a); err != nil {
		return err
	}
	prev, err := s.allocs.GetByID(ctx, a.ID)
	if err != nil {
		return err
	}

	a.WeekStart = domain.StartOfWeek(a.WeekStart)
	a.CreatedAt = prev.CreatedAt
	a.UpdatedAt = time.Now().UTC()
	if err := s.allocs.Update(ctx, a); err != nil {
		return err
	}
	invalidateWeek(s.cache, prev.WeekStart)
	invalidateWeek(s.cache, a.WeekStart)
	return nil
}

func (s *allocationService) Delete(ctx context.Context, id string) error {
	prev, err := s.allocs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.allocs.Delete(ctx, id); err != nil {
		return err
	}
	invalidateWeek(s.cache, prev.WeekStart)
	return nil
}

func (s *allocationService) ListWeek(ctx context.Context, personID string, week time.Time) ([]*domain.AllocationRow, error) {
	return s.allocs.ListByPersonWeek(ctx, personID, week)
}

// ReplaceWeek swaps a person's rows for one week wholesale. Either every
// new row is stored or the previous rows are left untouched.
func (s *allocationService) ReplaceWeek(ctx context.Context, personID string, week time.Time, rows []domain.AllocationRow) (err error) {
	startedAt := time.Now().UTC()
	week = domain.StartOfWeek(week)
	fields := map[string]any{
		"person_id": personID,
		"week":      week.Format(domain.WeekLayout),
		"rows":      len(rows),
	}
	defer observe(ctx, s.observer, "replace-week", startedAt, fields, &err)

	prepared := make([]domain.AllocationRow, len(rows))
	for i, r := range rows {
		r.PersonID = personID
		r.WeekStart = week
		if err = validateAllocation(&r); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		prepareNewRow(&r, week, startedAt)
		prepared[i] = r
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		n, err := replaceWeekTx(ctx, tx, personID, week, prepared)
		fields["replaced"] = n
		return err
	})
	if err != nil {
		return err
	}
	invalidateWeek(s.cache, week)
	return nil
}

// CopyForward copies a person's rows from one week into another as new
// rows, replacing whatever the target week held. It returns the number of
// rows copied.
func (s *allocationService) CopyForward(ctx context.Context, personID string, from, to time.Time) (copied int, err error) {
	startedAt := time.Now().UTC()
	from = domain.StartOfWeek(from)
	to = domain.StartOfWeek(to)
	fields := map[string]any{
		"person_id": personID,
		"from":      from.Format(domain.WeekLayout),
		"to":        to.Format(domain.WeekLayout),
	}
	defer observe(ctx, s.observer, "copy-forward", startedAt, fields, &err)

	if from.Equal(to) {
		return 0, fmt.Errorf("source and target week are both %s", from.Format(domain.WeekLayout))
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txAllocs := repository.NewSQLiteAllocationRepo(tx)
		src, err := txAllocs.ListByPersonWeek(ctx, personID, from)
		if err != nil {
			return err
		}
		rows := make([]domain.AllocationRow, 0, len(src))
		for _, r := range src {
			row := *r
			row.ID = ""
			prepareNewRow(&row, to, startedAt)
			rows = append(rows, row)
		}
		if _, err := replaceWeekTx(ctx, tx, personID, to, rows); err != nil {
			return err
		}
		copied = len(rows)
		return nil
	})
	if err != nil {
		return 0, err
	}
	fields["copied"] = copied
	invalidateWeek(s.cache, to)
	return copied, nil
}

// replaceWeekTx deletes the person's rows for week and inserts rows. It
// must run inside a transaction.
func replaceWeekTx(ctx context.Context, tx db.DBTX, personID string, week time.Time, rows []domain.AllocationRow) (int64, error) {
	txPeople := repository.NewSQLitePersonRepo(tx)
	txAllocs := repository.NewSQLiteAllocationRepo(tx)

	if _, err := txPeople.GetByID(ctx, personID); err != nil {
		return 0, fmt.Errorf("loading person %s: %w", personID, err)
	}
	n, err := txAllocs.DeleteByPersonWeek(ctx, personID, week)
	if err != nil {
		return 0, err
	}
	for i := range rows {
		if err := txAllocs.Create(ctx, &rows[i]); err != nil {
			return n, fmt.Errorf("saving row %d: %w", i, err)
		}
	}
	return n, nil
}

// prepareNewRow assigns an ID when missing and pins the row to week.
func prepareNewRow(a *domain.AllocationRow, week time.Time, now time.Time) {
	if a.IsNew() {
		a.ID = uuid.New().String()
	}
	a.WeekStart = domain.StartOfWeek(week)
	a.CreatedAt = now
	a.UpdatedAt = now
}

func validateAllocation(a *domain.AllocationRow) error {
	if a == nil {
		return fmt.Errorf("allocation is required")
	}
	if strings.TrimSpace(a.PersonID) == "" {
		return fmt.Errorf("person id is required")
	}
	if a.WeekStart.IsZero() {
		return fmt.Errorf("week is required")
	}
	if math.IsNaN(a.Hours) || math.IsInf(a.Hours, 0) || a.Hours < 0 {
		return fmt.Errorf("hours must be a non-negative number, got %v", a.Hours)
	}
	if a.ContractLabor < 0 {
		return fmt.Errorf("contract labor must not be negative")
	}
	return nil
}
