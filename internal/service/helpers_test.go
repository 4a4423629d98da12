package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/timesheet/internal/db"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/repository"
	"github.com/alexanderramin/timesheet/internal/testutil"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db     *sql.DB
	people repository.PersonRepo
	allocs repository.AllocationRepo
	uow    db.UnitOfWork
	cache  *SnapshotCache
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &testEnv{
		db:     database,
		people: repository.NewSQLitePersonRepo(database),
		allocs: repository.NewSQLiteAllocationRepo(database),
		uow:    testutil.NewTestUoW(database),
		cache:  NewSnapshotCache(time.Hour),
	}
}

func (e *testEnv) addPerson(t *testing.T, name string, opts ...testutil.PersonOption) *domain.Person {
	t.Helper()
	p := testutil.NewTestPerson(name, opts...)
	require.NoError(t, e.people.Upsert(context.Background(), p))
	return p
}

func (e *testEnv) addRow(t *testing.T, personID, projectNumber string, hours float64, opts ...testutil.AllocationOption) *domain.AllocationRow {
	t.Helper()
	a := testutil.NewTestAllocation(personID, projectNumber, hours, opts...)
	require.NoError(t, e.allocs.Create(context.Background(), a))
	return a
}

// recordingObserver keeps every use-case event for assertions.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingObserver) last() UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}
