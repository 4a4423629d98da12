package service

import (
	"context"
	"time"

	"github.com/alexanderramin/timesheet/internal/app"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/importer"
	"github.com/alexanderramin/timesheet/internal/repository"
)

type PeopleService interface {
	Upsert(ctx context.Context, p *domain.Person) error
	Get(ctx context.Context, id string) (*domain.Person, error)
	List(ctx context.Context, filter repository.PersonFilter) ([]*domain.Person, error)
	Delete(ctx context.Context, id string) error
	ImportOrg(ctx context.Context, filePath string) (*app.OrgImportResult, error)
}

type AllocationService interface {
	Add(ctx context.Context, a *domain.AllocationRow) error
	Get(ctx context.Context, id string) (*domain.AllocationRow, error)
	Update(ctx context.Context, a *domain.AllocationRow) error
	Delete(ctx context.Context, id string) error
	ListWeek(ctx context.Context, personID string, week time.Time) ([]*domain.AllocationRow, error)
	ReplaceWeek(ctx context.Context, personID string, week time.Time, rows []domain.AllocationRow) error
	CopyForward(ctx context.Context, personID string, from, to time.Time) (int, error)
}

type ImportService interface {
	ImportFile(ctx context.Context, filePath string) (*app.ImportResult, error)
	ImportSchema(ctx context.Context, schema *importer.ImportSchema) (*app.ImportResult, error)
}

type ReportService interface {
	PersonWeek(ctx context.Context, req app.ReportRequest) (*app.PersonWeekResponse, error)
	People(ctx context.Context, req app.ReportRequest) (*app.PeopleResponse, error)
	Studios(ctx context.Context, req app.ReportRequest) (*app.StudiosResponse, error)
	Manager(ctx context.Context, req app.ReportRequest) (*app.ManagerResponse, error)
	Company(ctx context.Context, req app.ReportRequest) (*app.CompanyResponse, error)
	Projects(ctx context.Context, req app.ReportRequest) (*app.ProjectsResponse, error)
}

var (
	_ app.PersonWeekUseCase        = (ReportService)(nil)
	_ app.StudiosUseCase           = (ReportService)(nil)
	_ app.CopyForwardUseCase       = (AllocationService)(nil)
	_ app.ImportAllocationsUseCase = (ImportService)(nil)
	_ app.ImportOrgUseCase         = (PeopleService)(nil)
)
