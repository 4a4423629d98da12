package testutil

import (
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/google/uuid"
)

// TestWeek is a fixed Monday used by fixtures that do not set a week.
var TestWeek = time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)

// Person options
type PersonOption func(*domain.Person)

func WithStudio(s string) PersonOption {
	return func(p *domain.Person) {
		p.Studio = s
	}
}

func WithManager(m string) PersonOption {
	return func(p *domain.Person) {
		p.Manager = m
	}
}

func WithScheduledHours(h float64) PersonOption {
	return func(p *domain.Person) {
		p.ScheduledHours = h
	}
}

func WithEmail(e string) PersonOption {
	return func(p *domain.Person) {
		p.Email = e
	}
}

func NewTestPerson(name string, opts ...PersonOption) *domain.Person {
	p := &domain.Person{
		ID:             uuid.New().String(),
		Name:           name,
		Studio:         "Test Studio",
		Manager:        "Test Manager",
		ScheduledHours: domain.DefaultScheduledHours,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Allocation options
type AllocationOption func(*domain.AllocationRow)

func WithWeek(w time.Time) AllocationOption {
	return func(a *domain.AllocationRow) {
		a.WeekStart = domain.StartOfWeek(w)
	}
}

func WithProjectName(n string) AllocationOption {
	return func(a *domain.AllocationRow) {
		a.ProjectName = n
	}
}

func WithProjectManager(pm string) AllocationOption {
	return func(a *domain.AllocationRow) {
		a.ProjectManager = pm
	}
}

func WithRemarks(r string) AllocationOption {
	return func(a *domain.AllocationRow) {
		a.Remarks = r
	}
}

func WithAvailableFlag() AllocationOption {
	return func(a *domain.AllocationRow) {
		a.AvailableHours = true
	}
}

func WithLabor(contract, pctUsed float64) AllocationOption {
	return func(a *domain.AllocationRow) {
		a.ContractLabor = contract
		a.PercentLaborUsed = pctUsed
	}
}

func NewTestAllocation(personID, projectNumber string, hours float64, opts ...AllocationOption) *domain.AllocationRow {
	now := time.Now().UTC().Truncate(time.Second)
	a := &domain.AllocationRow{
		ID:            uuid.New().String(),
		PersonID:      personID,
		WeekStart:     TestWeek,
		ProjectNumber: projectNumber,
		Hours:         hours,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}
