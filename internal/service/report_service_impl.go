package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/timesheet/internal/app"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/repository"
	"github.com/alexanderramin/timesheet/internal/rollup"
)

type reportService struct {
	loader     *snapshotLoader
	forcedMode domain.LWOPMode
	observer   UseCaseObserver
}

// NewReportService builds the read side. A non-empty forcedMode overrides
// every report's default Ratio B variant; an explicit request mode still
// wins over both.
func NewReportService(
	people repository.PersonRepo,
	allocs repository.AllocationRepo,
	snapshots *SnapshotCache,
	forcedMode domain.LWOPMode,
	observers ...UseCaseObserver,
) ReportService {
	return &reportService{
		loader:     &snapshotLoader{people: people, allocs: allocs, cache: snapshots},
		forcedMode: forcedMode,
		observer:   useCaseObserverOrNoop(observers),
	}
}

// PersonWeek is the single-user weekly view. It defaults to the legacy
// Ratio B that subtracts only PTO/holiday hours.
func (s *reportService) PersonWeek(ctx context.Context, req app.ReportRequest) (resp *app.PersonWeekResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"person_id": req.PersonID}
	defer observe(ctx, s.observer, "report-person-week", startedAt, fields, &err)

	if req.PersonID == "" {
		return nil, &app.ReportError{Code: app.ReportErrPersonRequired, Message: "person id is required"}
	}
	req, mode, err := s.resolve(req, domain.LWOPExcluded)
	if err != nil {
		return nil, err
	}
	fields["mode"] = string(mode)

	members, err := s.members(ctx, req, mode, func(p domain.Person) bool { return p.ID == req.PersonID })
	if err != nil {
		return nil, err
	}
	merged := rollup.MergeMembers(members, mode)
	if len(merged) == 0 {
		return nil, fmt.Errorf("person %s: %w", req.PersonID, repository.ErrNotFound)
	}

	return &app.PersonWeekResponse{
		Week:    req.Week,
		Mode:    mode,
		Summary: merged[0],
	}, nil
}

// People is the per-user dashboard. It defaults to the canonical Ratio B
// that subtracts LWOP as well as PTO/holiday hours.
func (s *reportService) People(ctx context.Context, req app.ReportRequest) (resp *app.PeopleResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"studio": req.Studio, "manager": req.Manager}
	defer observe(ctx, s.observer, "report-people", startedAt, fields, &err)

	req, mode, err := s.resolve(req, domain.LWOPSubtracted)
	if err != nil {
		return nil, err
	}
	fields["mode"] = string(mode)

	members, err := s.members(ctx, req, mode, scopeFilter(req))
	if err != nil {
		return nil, err
	}
	merged := rollup.MergeMembers(members, mode)
	fields["members"] = len(merged)

	return &app.PeopleResponse{
		Week:    req.Week,
		Weeks:   req.Weeks,
		Mode:    mode,
		Members: merged,
	}, nil
}

func (s *reportService) Studios(ctx context.Context, req app.ReportRequest) (resp *app.StudiosResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"studio": req.Studio, "manager": req.Manager}
	defer observe(ctx, s.observer, "report-studios", startedAt, fields, &err)

	req, mode, err := s.resolve(req, domain.LWOPExcluded)
	if err != nil {
		return nil, err
	}
	fields["mode"] = string(mode)

	members, err := s.members(ctx, req, mode, scopeFilter(req))
	if err != nil {
		return nil, err
	}

	byName := rollup.RollUpStudios(members, mode)
	studios := make([]domain.StudioSummary, 0, len(byName))
	for _, st := range byName {
		studios = append(studios, st)
	}
	sort.Slice(studios, func(i, j int) bool { return studios[i].Name < studios[j].Name })
	totals := rollup.SumStudios(byName, mode)
	fields["studios"] = len(studios)

	return &app.StudiosResponse{
		Week:    req.Week,
		Weeks:   req.Weeks,
		Mode:    mode,
		Studios: studios,
		Totals:  totals,
	}, nil
}

func (s *reportService) Manager(ctx context.Context, req app.ReportRequest) (resp *app.ManagerResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"manager": req.Manager}
	defer observe(ctx, s.observer, "report-manager", startedAt, fields, &err)

	req, mode, err := s.resolve(req, domain.LWOPExcluded)
	if err != nil {
		return nil, err
	}
	fields["mode"] = string(mode)

	name := domain.LabelOrUnassigned(req.Manager)
	req.Manager = name
	members, err := s.members(ctx, req, mode, scopeFilter(req))
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, &app.ReportError{
			Code:    app.ReportErrUnknownManager,
			Message: fmt.Sprintf("no people report to %q", name),
		}
	}

	return &app.ManagerResponse{
		Week:    req.Week,
		Weeks:   req.Weeks,
		Mode:    mode,
		Manager: rollup.RollUpManager(name, members, mode),
	}, nil
}

func (s *reportService) Company(ctx context.Context, req app.ReportRequest) (resp *app.CompanyResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer observe(ctx, s.observer, "report-company", startedAt, fields, &err)

	req, mode, err := s.resolve(req, domain.LWOPExcluded)
	if err != nil {
		return nil, err
	}
	fields["mode"] = string(mode)

	members, err := s.members(ctx, req, mode, nil)
	if err != nil {
		return nil, err
	}
	company := rollup.RollUpCompany(members, mode)
	fields["managers"] = len(company.Managers)

	return &app.CompanyResponse{
		Week:    req.Week,
		Weeks:   req.Weeks,
		Mode:    mode,
		Company: company,
	}, nil
}

// Projects regroups direct hours by project number, optionally limited to
// one project manager and to the people of one studio.
func (s *reportService) Projects(ctx context.Context, req app.ReportRequest) (resp *app.ProjectsResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"pm": req.PM, "studio": req.Studio}
	defer observe(ctx, s.observer, "report-projects", startedAt, fields, &err)

	req, mode, err := s.resolve(req, domain.LWOPExcluded)
	if err != nil {
		return nil, err
	}

	members, err := s.members(ctx, req, mode, scopeFilter(req))
	if err != nil {
		return nil, err
	}
	projects := rollup.FilterByPM(rollup.RollupByProject(members), req.PM)
	rollup.SortProjects(projects)
	fields["projects"] = len(projects)

	return &app.ProjectsResponse{
		Week:     req.Week,
		Weeks:    req.Weeks,
		PM:       req.PM,
		Projects: projects,
	}, nil
}

// resolve normalizes the request and picks the Ratio B variant: explicit
// request mode, then the configured override, then viewDefault.
func (s *reportService) resolve(req app.ReportRequest, viewDefault domain.LWOPMode) (app.ReportRequest, domain.LWOPMode, error) {
	if req.Week.IsZero() {
		return req, "", &app.ReportError{Code: app.ReportErrInvalidRange, Message: "week is required"}
	}
	req.Week = domain.StartOfWeek(req.Week)
	if req.Weeks < 1 {
		req.Weeks = 1
	}
	if req.Weeks > app.MaxReportWeeks {
		return req, "", &app.ReportError{
			Code:    app.ReportErrInvalidRange,
			Message: fmt.Sprintf("at most %d weeks per report, got %d", app.MaxReportWeeks, req.Weeks),
		}
	}

	mode := viewDefault
	if s.forcedMode != "" {
		mode = s.forcedMode
	}
	if req.Mode != "" {
		if !domain.ValidLWOPModes[string(req.Mode)] {
			return req, "", &app.ReportError{
				Code:    app.ReportErrInvalidMode,
				Message: fmt.Sprintf("unknown LWOP mode %q", req.Mode),
			}
		}
		mode = req.Mode
	}
	req.Mode = mode
	return req, mode, nil
}

// members summarizes every directory person passing keep once per week of
// the range. People without rows still appear so their scheduled hours
// count.
func (s *reportService) members(
	ctx context.Context,
	req app.ReportRequest,
	mode domain.LWOPMode,
	keep func(domain.Person) bool,
) ([]domain.PersonSummary, error) {
	people, err := s.loader.loadPeople(ctx)
	if err != nil {
		return nil, err
	}

	var out []domain.PersonSummary
	for i := 0; i < req.Weeks; i++ {
		week := req.Week.AddDate(0, 0, 7*i)
		rows, err := s.loader.loadWeek(ctx, week)
		if err != nil {
			return nil, err
		}
		byPerson := make(map[string][]domain.AllocationRow)
		for _, r := range rows {
			byPerson[r.PersonID] = append(byPerson[r.PersonID], r)
		}
		for _, p := range people {
			if keep != nil && !keep(p) {
				continue
			}
			out = append(out, rollup.Summarize(p, byPerson[p.ID], mode))
		}
	}
	return out, nil
}

// scopeFilter limits people to the request's studio and manager, when set.
func scopeFilter(req app.ReportRequest) func(domain.Person) bool {
	if req.Studio == "" && req.Manager == "" {
		return nil
	}
	return func(p domain.Person) bool {
		if req.Studio != "" && p.StudioLabel() != req.Studio {
			return false
		}
		if req.Manager != "" && p.ManagerLabel() != req.Manager {
			return false
		}
		return true
	}
}
