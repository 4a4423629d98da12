package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/timesheet/internal/app"
	"github.com/alexanderramin/timesheet/internal/config"
	"github.com/alexanderramin/timesheet/internal/db"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/repository"
)

type peopleService struct {
	people       repository.PersonRepo
	uow          db.UnitOfWork
	cache        *SnapshotCache
	defaultHours float64
	observer     UseCaseObserver
}

// NewPeopleService manages the directory. defaultHours is the scheduled
// baseline applied to org-file members that set none.
func NewPeopleService(
	people repository.PersonRepo,
	uow db.UnitOfWork,
	snapshots *SnapshotCache,
	defaultHours float64,
	observers ...UseCaseObserver,
) PeopleService {
	return &peopleService{
		people:       people,
		uow:          uow,
		cache:        snapshots,
		defaultHours: domain.ScheduledHoursOrDefault(defaultHours),
		observer:     useCaseObserverOrNoop(observers),
	}
}

func (s *peopleService) Upsert(ctx context.Context, p *domain.Person) error {
	if err := validatePerson(p); err != nil {
		return err
	}
	if err := s.people.Upsert(ctx, p); err != nil {
		return err
	}
	invalidatePeople(s.cache)
	return nil
}

func (s *peopleService) Get(ctx context.Context, id string) (*domain.Person, error) {
	return s.people.GetByID(ctx, id)
}

func (s *peopleService) List(ctx context.Context, filter repository.PersonFilter) ([]*domain.Person, error) {
	return s.people.List(ctx, filter)
}

// Delete removes the person and, through the foreign key, all of their rows.
func (s *peopleService) Delete(ctx context.Context, id string) error {
	if err := s.people.Delete(ctx, id); err != nil {
		return err
	}
	invalidateAll(s.cache)
	return nil
}

func (s *peopleService) ImportOrg(ctx context.Context, filePath string) (result *app.OrgImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"path": filePath}
	defer observe(ctx, s.observer, "import-org", startedAt, fields, &err)

	org, err := config.LoadOrgFile(filePath)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, fmt.Errorf("org file %s does not exist", filePath)
	}

	people := org.People(s.defaultHours)
	fields["people"] = len(people)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPeople := repository.NewSQLitePersonRepo(tx)
		for i := range people {
			if err := txPeople.Upsert(ctx, &people[i]); err != nil {
				return fmt.Errorf("saving %s: %w", people[i].ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	invalidatePeople(s.cache)
	return &app.OrgImportResult{People: people}, nil
}

func validatePerson(p *domain.Person) error {
	if p == nil {
		return fmt.Errorf("person is required")
	}
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("person id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("person name is required")
	}
	return nil
}
