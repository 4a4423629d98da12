package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/timesheet/internal/app"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/repository"
	"github.com/alexanderramin/timesheet/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedOrg creates a small company for one week:
//
//	Kim  -> Denver: Ada (direct 20, PTO 8, indirect 12), Bo (direct 24, LWOP 8)
//	Kim  -> Austin: Cy (no rows)
//	Lee  -> Boston: Di (direct 32 on P-100, available 8)
func seedOrg(t *testing.T, env *testEnv) map[string]*domain.Person {
	t.Helper()
	people := map[string]*domain.Person{
		"ada": env.addPerson(t, "Ada", testutil.WithStudio("Denver"), testutil.WithManager("Kim")),
		"bo":  env.addPerson(t, "Bo", testutil.WithStudio("Denver"), testutil.WithManager("Kim")),
		"cy":  env.addPerson(t, "Cy", testutil.WithStudio("Austin"), testutil.WithManager("Kim")),
		"di":  env.addPerson(t, "Di", testutil.WithStudio("Boston"), testutil.WithManager("Lee")),
	}

	env.addRow(t, people["ada"].ID, "P-100", 15, testutil.WithProjectName("Museum"), testutil.WithProjectManager("Pat"), testutil.WithRemarks("facade"))
	env.addRow(t, people["ada"].ID, "P-200", 5, testutil.WithProjectName("Library"), testutil.WithProjectManager("Sam"))
	env.addRow(t, people["ada"].ID, "0000-0000-0PTO", 8)
	env.addRow(t, people["ada"].ID, "0000-0000-ADMIN", 12)

	env.addRow(t, people["bo"].ID, "P-100", 24)
	env.addRow(t, people["bo"].ID, "0000-0000-LWOP", 8)

	env.addRow(t, people["di"].ID, "P-100", 32, testutil.WithLabor(120000, 55))
	env.addRow(t, people["di"].ID, "P-100", 8, testutil.WithAvailableFlag())
	return people
}

func weekRequest() app.ReportRequest {
	return app.NewReportRequest(testutil.TestWeek)
}

func TestPersonWeek_Scenario(t *testing.T) {
	env := setupEnv(t)
	people := seedOrg(t, env)
	svc := NewReportService(env.people, env.allocs, env.cache, "")

	req := weekRequest()
	req.PersonID = people["ada"].ID
	resp, err := svc.PersonWeek(context.Background(), req)
	require.NoError(t, err)

	s := resp.Summary
	assert.Equal(t, domain.LWOPExcluded, resp.Mode)
	assert.Equal(t, 20.0, s.Direct)
	assert.Equal(t, 8.0, s.PTO)
	assert.Equal(t, 12.0, s.Indirect)
	assert.Equal(t, 40.0, s.TotalHours)
	assert.InDelta(t, 0.625, s.RatioB, 1e-9)
	assert.Len(t, s.Rows, 4)
}

func TestPersonWeek_LWOPModes(t *testing.T) {
	env := setupEnv(t)
	people := seedOrg(t, env)
	ctx := context.Background()

	req := weekRequest()
	req.PersonID = people["bo"].ID

	legacy := NewReportService(env.people, env.allocs, env.cache, "")
	resp, err := legacy.PersonWeek(ctx, req)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, resp.Summary.RatioB, 1e-9, "24/40 with LWOP left in the denominator")
	assert.Equal(t, 24.0, resp.Summary.TotalHours, "LWOP is not worked time")

	req.Mode = domain.LWOPSubtracted
	resp, err = legacy.PersonWeek(ctx, req)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, resp.Summary.RatioB, 1e-9, "24/(40-8)")

	forced := NewReportService(env.people, env.allocs, env.cache, domain.LWOPSubtracted)
	req.Mode = ""
	resp, err = forced.PersonWeek(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, domain.LWOPSubtracted, resp.Mode)
	assert.InDelta(t, 0.75, resp.Summary.RatioB, 1e-9)
}

func TestPersonWeek_Errors(t *testing.T) {
	env := setupEnv(t)
	seedOrg(t, env)
	svc := NewReportService(env.people, env.allocs, env.cache, "")
	ctx := context.Background()

	_, err := svc.PersonWeek(ctx, weekRequest())
	var rerr *app.ReportError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, app.ReportErrPersonRequired, rerr.Code)

	req := weekRequest()
	req.PersonID = "ghost"
	_, err = svc.PersonWeek(ctx, req)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	req.PersonID = "x"
	req.Mode = "sometimes"
	_, err = svc.PersonWeek(ctx, req)
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, app.ReportErrInvalidMode, rerr.Code)

	req = app.ReportRequest{PersonID: "x"}
	_, err = svc.PersonWeek(ctx, req)
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, app.ReportErrInvalidRange, rerr.Code)
}

func TestPeople_DefaultsToSubtractedMode(t *testing.T) {
	env := setupEnv(t)
	seedOrg(t, env)
	svc := NewReportService(env.people, env.allocs, env.cache, "")

	resp, err := svc.People(context.Background(), weekRequest())
	require.NoError(t, err)

	assert.Equal(t, domain.LWOPSubtracted, resp.Mode)
	require.Len(t, resp.Members, 4)
	names := []string{resp.Members[0].Name, resp.Members[1].Name, resp.Members[2].Name, resp.Members[3].Name}
	assert.Equal(t, []string{"Ada", "Bo", "Cy", "Di"}, names)
	assert.InDelta(t, 0.75, resp.Members[1].RatioB, 1e-9)
	assert.Equal(t, 0.0, resp.Members[2].RatioB, "no rows, no direct hours")
	assert.Equal(t, 40.0, resp.Members[2].ScheduledHours)
}

func TestPeople_StudioScope(t *testing.T) {
	env := setupEnv(t)
	seedOrg(t, env)
	svc := NewReportService(env.people, env.allocs, env.cache, "")

	req := weekRequest()
	req.Studio = "Denver"
	resp, err := svc.People(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, resp.Members, 2)
}

func TestStudios_SortedWithTotals(t *testing.T) {
	env := setupEnv(t)
	seedOrg(t, env)
	svc := NewReportService(env.people, env.allocs, env.cache, "")

	resp, err := svc.Studios(context.Background(), weekRequest())
	require.NoError(t, err)

	require.Len(t, resp.Studios, 3)
	assert.Equal(t, "Austin", resp.Studios[0].Name)
	assert.Equal(t, "Boston", resp.Studios[1].Name)
	assert.Equal(t, "Denver", resp.Studios[2].Name)

	austin := resp.Studios[0]
	assert.Equal(t, 40.0, austin.ScheduledHours, "member without rows still counts")
	assert.Equal(t, 0.0, austin.RatioB)

	denver := resp.Studios[2]
	assert.Len(t, denver.Members, 2)
	assert.Equal(t, 80.0, denver.ScheduledHours)
	assert.Equal(t, 44.0, denver.DirectHours)
	assert.Equal(t, 8.0, denver.PTOHours)
	assert.Equal(t, 8.0, denver.LWOPHours)
	assert.Equal(t, 12.0, denver.OverheadHours)
	assert.InDelta(t, 44.0/72.0, denver.RatioB, 1e-9)

	assert.Equal(t, 160.0, resp.Totals.ScheduledHours)
	assert.Equal(t, 76.0, resp.Totals.DirectHours)
	assert.Equal(t, 8.0, resp.Totals.AvailableHours)
	assert.InDelta(t, 76.0/152.0, resp.Totals.RatioB, 1e-9)
}

func TestStudios_ManagerScope(t *testing.T) {
	env := setupEnv(t)
	seedOrg(t, env)
	svc := NewReportService(env.people, env.allocs, env.cache, "")

	req := weekRequest()
	req.Manager = "Lee"
	resp, err := svc.Studios(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Studios, 1)
	assert.Equal(t, "Boston", resp.Studios[0].Name)
}

func TestManager_RollsUpStudios(t *testing.T) {
	env := setupEnv(t)
	seedOrg(t, env)
	svc := NewReportService(env.people, env.allocs, env.cache, "")

	req := weekRequest()
	req.Manager = "Kim"
	resp, err := svc.Manager(context.Background(), req)
	require.NoError(t, err)

	m := resp.Manager
	assert.Equal(t, "Kim", m.Name)
	assert.Len(t, m.Studios, 2)
	assert.Equal(t, 120.0, m.ScheduledHours)
	assert.Equal(t, 44.0, m.DirectHours)
	assert.InDelta(t, 44.0/112.0, m.RatioB, 1e-9)
}

func TestManager_Unknown(t *testing.T) {
	env := setupEnv(t)
	seedOrg(t, env)
	svc := NewReportService(env.people, env.allocs, env.cache, "")

	req := weekRequest()
	req.Manager = "Nobody"
	_, err := svc.Manager(context.Background(), req)

	var rerr *app.ReportError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, app.ReportErrUnknownManager, rerr.Code)
}

func TestCompany_GroupsManagers(t *testing.T) {
	env := setupEnv(t)
	seedOrg(t, env)
	obs := &recordingObserver{}
	svc := NewReportService(env.people, env.allocs, env.cache, "", obs)

	resp, err := svc.Company(context.Background(), weekRequest())
	require.NoError(t, err)

	c := resp.Company
	require.Len(t, c.Managers, 2)
	assert.Equal(t, 40.0, c.Managers["Lee"].ScheduledHours)
	assert.Equal(t, 160.0, c.ScheduledHours)
	assert.Equal(t, 76.0, c.DirectHours)
	assert.Equal(t, 96.0, c.TotalHours, "LWOP and available hours excluded")

	ev := obs.last()
	assert.Equal(t, "report-company", ev.Name)
	assert.Equal(t, 2, ev.Fields["managers"])
}

func TestCompany_MultiWeekMergesPeople(t *testing.T) {
	env := setupEnv(t)
	people := seedOrg(t, env)
	env.addRow(t, people["ada"].ID, "P-100", 40, testutil.WithWeek(testutil.TestWeek.AddDate(0, 0, 7)))
	svc := NewReportService(env.people, env.allocs, env.cache, "")

	req := weekRequest()
	req.Weeks = 2
	resp, err := svc.Company(context.Background(), req)
	require.NoError(t, err)

	denver := resp.Company.Managers["Kim"].Studios["Denver"]
	require.Len(t, denver.Members, 2)
	ada := denver.Members[people["ada"].ID]
	assert.Equal(t, 80.0, ada.ScheduledHours)
	assert.Equal(t, 60.0, ada.Direct)
	assert.InDelta(t, 60.0/72.0, ada.RatioB, 1e-9)
	assert.Equal(t, 320.0, resp.Company.ScheduledHours)
}

func TestProjects_MergesTeamsAndSkipsInternal(t *testing.T) {
	env := setupEnv(t)
	people := seedOrg(t, env)
	svc := NewReportService(env.people, env.allocs, env.cache, "")

	resp, err := svc.Projects(context.Background(), weekRequest())
	require.NoError(t, err)

	require.Len(t, resp.Projects, 2)
	p100 := resp.Projects[0]
	assert.Equal(t, "P-100", p100.ProjectNumber)
	assert.Equal(t, "Museum", p100.ProjectName)
	assert.Equal(t, "Pat", p100.PM)
	assert.Equal(t, 120000.0, p100.Labor, "backfilled from a later row")
	assert.Equal(t, 71.0, p100.TotalHours, "available-flagged row excluded")
	require.Len(t, p100.TeamMembers, 3)
	assert.Equal(t, "Ada", p100.TeamMembers[0].Name)
	assert.Equal(t, "facade", p100.TeamMembers[0].Remarks)
	assert.Equal(t, people["di"].ID, p100.TeamMembers[2].ID)
	assert.Equal(t, 32.0, p100.TeamMembers[2].Hours)

	assert.Equal(t, "P-200", resp.Projects[1].ProjectNumber)
}

func TestProjects_PMFilter(t *testing.T) {
	env := setupEnv(t)
	seedOrg(t, env)
	svc := NewReportService(env.people, env.allocs, env.cache, "")

	req := weekRequest()
	req.PM = "Sam"
	resp, err := svc.Projects(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Projects, 1)
	assert.Equal(t, "P-200", resp.Projects[0].ProjectNumber)
}

func TestReports_WeeksOutOfRange(t *testing.T) {
	env := setupEnv(t)
	svc := NewReportService(env.people, env.allocs, env.cache, "")

	req := app.NewReportRequest(time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC))
	req.Weeks = app.MaxReportWeeks + 1
	_, err := svc.Company(context.Background(), req)

	var rerr *app.ReportError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, app.ReportErrInvalidRange, rerr.Code)
}

func TestReports_EmptyDirectory(t *testing.T) {
	env := setupEnv(t)
	svc := NewReportService(env.people, env.allocs, nil, "")

	resp, err := svc.Company(context.Background(), weekRequest())
	require.NoError(t, err)
	assert.Empty(t, resp.Company.Managers)
	assert.Equal(t, 0.0, resp.Company.RatioB)
}
