package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
)

// ErrNotFound is returned (wrapped) when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// PersonFilter narrows a people listing. Empty fields match everything.
type PersonFilter struct {
	Studio  string
	Manager string
}

type PersonRepo interface {
	Upsert(ctx context.Context, p *domain.Person) error
	GetByID(ctx context.Context, id string) (*domain.Person, error)
	GetByEmail(ctx context.Context, email string) (*domain.Person, error)
	List(ctx context.Context, filter PersonFilter) ([]*domain.Person, error)
	Delete(ctx context.Context, id string) error
}

type AllocationRepo interface {
	Create(ctx context.Context, r *domain.AllocationRow) error
	GetByID(ctx context.Context, id string) (*domain.AllocationRow, error)
	Update(ctx context.Context, r *domain.AllocationRow) error
	Delete(ctx context.Context, id string) error
	ListByPersonWeek(ctx context.Context, personID string, week time.Time) ([]*domain.AllocationRow, error)
	// ListByWeeks returns every row whose week falls in [from, to].
	ListByWeeks(ctx context.Context, from, to time.Time) ([]*domain.AllocationRow, error)
	DeleteByPersonWeek(ctx context.Context, personID string, week time.Time) (int64, error)
}
