package app

import (
	"context"
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/importer"
)

type PersonWeekUseCase interface {
	PersonWeek(ctx context.Context, req ReportRequest) (*PersonWeekResponse, error)
}

type StudiosUseCase interface {
	Studios(ctx context.Context, req ReportRequest) (*StudiosResponse, error)
}

type CopyForwardUseCase interface {
	CopyForward(ctx context.Context, personID string, from, to time.Time) (int, error)
}

// ImportResult counts what a bulk import wrote.
type ImportResult struct {
	People      int
	Allocations int
	Weeks       []time.Time
	Replaced    int64
}

type ImportAllocationsUseCase interface {
	ImportFile(ctx context.Context, filePath string) (*ImportResult, error)
	ImportSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}

// OrgImportResult lists the directory records an org file produced.
type OrgImportResult struct {
	People []domain.Person
}

type ImportOrgUseCase interface {
	ImportOrg(ctx context.Context, filePath string) (*OrgImportResult, error)
}
