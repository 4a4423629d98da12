package app

import (
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
)

// MaxReportWeeks bounds how many consecutive weeks one report may span.
const MaxReportWeeks = 53

// ReportRequest selects the week range and scope of a report. Empty scope
// fields mean "everyone". An empty Mode lets each report use its own
// default Ratio B variant.
type ReportRequest struct {
	Week     time.Time
	Weeks    int
	PersonID string
	Studio   string
	Manager  string
	PM       string
	Mode     domain.LWOPMode
}

func NewReportRequest(week time.Time) ReportRequest {
	return ReportRequest{
		Week:  domain.StartOfWeek(week),
		Weeks: 1,
	}
}

// LastWeek returns the Monday of the final week in the range.
func (r ReportRequest) LastWeek() time.Time {
	n := r.Weeks
	if n < 1 {
		n = 1
	}
	return domain.StartOfWeek(r.Week).AddDate(0, 0, 7*(n-1))
}

type PersonWeekResponse struct {
	Week    time.Time
	Mode    domain.LWOPMode
	Summary domain.PersonSummary
}

// PeopleResponse is the per-user dashboard: one merged summary per person
// for the requested range, ordered by name.
type PeopleResponse struct {
	Week    time.Time
	Weeks   int
	Mode    domain.LWOPMode
	Members []domain.PersonSummary
}

type StudiosResponse struct {
	Week    time.Time
	Weeks   int
	Mode    domain.LWOPMode
	Studios []domain.StudioSummary // ordered by name
	Totals  domain.RollupTotals
}

type ManagerResponse struct {
	Week    time.Time
	Weeks   int
	Mode    domain.LWOPMode
	Manager domain.ManagerSummary
}

type CompanyResponse struct {
	Week    time.Time
	Weeks   int
	Mode    domain.LWOPMode
	Company domain.CompanySummary
}

type ProjectsResponse struct {
	Week     time.Time
	Weeks    int
	PM       string
	Projects []domain.ProjectSummary // ordered by project number
}

type ReportErrorCode string

const (
	ReportErrInvalidRange   ReportErrorCode = "INVALID_RANGE"
	ReportErrInvalidMode    ReportErrorCode = "INVALID_MODE"
	ReportErrPersonRequired ReportErrorCode = "PERSON_REQUIRED"
	ReportErrUnknownManager ReportErrorCode = "UNKNOWN_MANAGER"
)

type ReportError struct {
	Code    ReportErrorCode
	Message string
}

func (e *ReportError) Error() string {
	return string(e.Code) + ": " + e.Message
}
