package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/timesheet/internal/app"
	"github.com/alexanderramin/timesheet/internal/db"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/importer"
	"github.com/alexanderramin/timesheet/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	cache    *SnapshotCache
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, snapshots *SnapshotCache, observers ...UseCaseObserver) ImportService {
	return &importService{
		uow:      uow,
		cache:    snapshots,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportFile(ctx context.Context, filePath string) (*app.ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportSchema(ctx, schema)
}

// ImportSchema validates the whole file first, then writes people and
// replaces every (person, week) it mentions in one transaction.
func (s *importService) ImportSchema(ctx context.Context, schema *importer.ImportSchema) (result *app.ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer observe(ctx, s.observer, "import-allocations", startedAt, fields, &err)

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		fields["validation_errors"] = len(errs)
		return nil, formatValidationErrors(errs)
	}

	batch, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	result = &app.ImportResult{People: len(batch.People)}
	seenWeek := make(map[string]bool)
	for _, wb := range batch.Weeks {
		result.Allocations += len(wb.Rows)
		key := wb.WeekStart.Format(domain.WeekLayout)
		if !seenWeek[key] {
			seenWeek[key] = true
			result.Weeks = append(result.Weeks, wb.WeekStart)
		}
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPeople := repository.NewSQLitePersonRepo(tx)
		for i := range batch.People {
			if err := txPeople.Upsert(ctx, &batch.People[i]); err != nil {
				return fmt.Errorf("saving person %s: %w", batch.People[i].ID, err)
			}
		}
		for _, wb := range batch.Weeks {
			n, err := replaceWeekTx(ctx, tx, wb.PersonID, wb.WeekStart, wb.Rows)
			if err != nil {
				return fmt.Errorf("replacing week %s for %s: %w",
					wb.WeekStart.Format(domain.WeekLayout), wb.PersonID, err)
			}
			result.Replaced += n
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["people"] = result.People
	fields["allocations"] = result.Allocations
	fields["weeks"] = len(result.Weeks)
	invalidateAll(s.cache)
	return result, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
