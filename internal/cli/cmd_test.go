package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/repository"
	"github.com/alexanderramin/timesheet/internal/service"
	"github.com/alexanderramin/timesheet/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

	people := repository.NewSQLitePersonRepo(database)
	allocs := repository.NewSQLiteAllocationRepo(database)
	uow := testutil.NewTestUoW(database)
	snapshots := service.NewSnapshotCache(time.Hour)

	return &App{
		People:      service.NewPeopleService(people, uow, snapshots, domain.DefaultScheduledHours),
		Allocations: service.NewAllocationService(allocs, people, uow, snapshots),
		Import:      service.NewImportService(uow, snapshots),
		Reports:     service.NewReportService(people, allocs, snapshots, ""),
	}
}

// seedTeam stores two people under Grace and one under Linus with a week
// of rows in testutil.TestWeek.
func seedTeam(t *testing.T, app *App) {
	t.Helper()
	ctx := context.Background()

	for _, p := range []*domain.Person{
		{ID: "ada", Name: "Ada", Email: "ada@example.com", Studio: "North", Manager: "Grace", ScheduledHours: 40},
		{ID: "bo", Name: "Bo", Studio: "South", Manager: "Grace", ScheduledHours: 40},
		{ID: "cy", Name: "Cy", Studio: "East", Manager: "Linus", ScheduledHours: 32},
	} {
		require.NoError(t, app.People.Upsert(ctx, p))
	}

	for _, r := range []*domain.AllocationRow{
		{PersonID: "ada", ProjectNumber: "P-100", ProjectName: "Harbor", ProjectManager: "Pat", Hours: 20},
		{PersonID: "ada", ProjectNumber: "0000-0000-0PTO", Hours: 8},
		{PersonID: "ada", ProjectNumber: "0000-0000-ADMIN", Hours: 12},
		{PersonID: "bo", ProjectNumber: "P-200", ProjectName: "Quay", ProjectManager: "Sam", Hours: 24},
		{PersonID: "bo", ProjectNumber: "0000-0000-LWOP", Hours: 8},
	} {
		r.WeekStart = testutil.TestWeek
		require.NoError(t, app.Allocations.Add(ctx, r))
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

const weekFlag = "--week=2025-06-11"

// --- Reports ---

func TestPersonCmd_ByIDEmailAndName(t *testing.T) {
	app := testApp(t)
	seedTeam(t, app)

	for _, who := range []string{"ada", "ADA@example.com", "ada "} {
		out, err := executeCmd(t, app, "person", who, weekFlag)
		require.NoError(t, err, who)
		assert.Contains(t, out, "Ada")
		assert.Contains(t, out, "Week of Jun 9, 2025")
		assert.Contains(t, out, "62.5%")
		assert.Contains(t, out, "Harbor")
	}
}

func TestPersonCmd_ModeFlag(t *testing.T) {
	app := testApp(t)
	seedTeam(t, app)

	out, err := executeCmd(t, app, "person", "bo", weekFlag)
	require.NoError(t, err)
	assert.Contains(t, out, "60.0%")

	out, err = executeCmd(t, app, "person", "bo", weekFlag, "--mode", "subtract")
	require.NoError(t, err)
	assert.Contains(t, out, "75.0%")
	assert.Contains(t, out, "LWOP subtracted")
}

func TestPersonCmd_Errors(t *testing.T) {
	app := testApp(t)
	seedTeam(t, app)

	_, err := executeCmd(t, app, "person", "nobody", weekFlag)
	assert.ErrorContains(t, err, "person not found")

	_, err = executeCmd(t, app, "person", "ada", "--week", "June 9")
	assert.ErrorContains(t, err, "invalid week")

	_, err = executeCmd(t, app, "person", "ada", weekFlag, "--mode", "sometimes")
	assert.ErrorContains(t, err, "invalid mode")

	_, err = executeCmd(t, app, "person", "ada", weekFlag, "--weeks", "60")
	assert.ErrorContains(t, err, "INVALID_RANGE")
}

func TestPeopleCmd(t *testing.T) {
	app := testApp(t)
	seedTeam(t, app)

	out, err := executeCmd(t, app, "people", weekFlag)
	require.NoError(t, err)
	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "Bo")
	assert.Contains(t, out, "Cy")
	assert.Contains(t, out, "LWOP subtracted")

	out, err = executeCmd(t, app, "people", weekFlag, "--studio", "East")
	require.NoError(t, err)
	assert.Contains(t, out, "Cy")
	assert.NotContains(t, out, "Ada")
}

func TestStudioCmd(t *testing.T) {
	app := testApp(t)
	seedTeam(t, app)

	out, err := executeCmd(t, app, "studio", weekFlag)
	require.NoError(t, err)
	assert.Contains(t, out, "North")
	assert.Contains(t, out, "South")
	assert.Contains(t, out, "East")
	assert.Contains(t, out, "All studios")
	assert.Contains(t, out, "112.00")

	out, err = executeCmd(t, app, "studio", weekFlag, "--manager", "Linus")
	require.NoError(t, err)
	assert.Contains(t, out, "East")
	assert.NotContains(t, out, "North")
}

func TestManagerCmd(t *testing.T) {
	app := testApp(t)
	seedTeam(t, app)

	out, err := executeCmd(t, app, "manager", "Grace", weekFlag)
	require.NoError(t, err)
	assert.Contains(t, out, "Grace")
	assert.Contains(t, out, "North")
	assert.Contains(t, out, "Bo")
	assert.NotContains(t, out, "Cy")

	_, err = executeCmd(t, app, "manager", "Nobody", weekFlag)
	assert.ErrorContains(t, err, "UNKNOWN_MANAGER")
}

func TestCompanyCmd(t *testing.T) {
	app := testApp(t)
	seedTeam(t, app)

	out, err := executeCmd(t, app, "company", weekFlag)
	require.NoError(t, err)
	assert.Contains(t, out, "Grace")
	assert.Contains(t, out, "Linus")
	assert.Contains(t, out, "Company")
}

func TestProjectsCmd_PMFilter(t *testing.T) {
	app := testApp(t)
	seedTeam(t, app)

	out, err := executeCmd(t, app, "projects", weekFlag)
	require.NoError(t, err)
	assert.Contains(t, out, "P-100")
	assert.Contains(t, out, "P-200")
	assert.NotContains(t, out, "0000-0000")

	out, err = executeCmd(t, app, "projects", weekFlag, "--pm", "Pat")
	require.NoError(t, err)
	assert.Contains(t, out, "P-100")
	assert.NotContains(t, out, "P-200")
}

// --- Allocations ---

func TestAllocAddAndList(t *testing.T) {
	app := testApp(t)
	seedTeam(t, app)

	out, err := executeCmd(t, app, "alloc", "add", "cy", weekFlag, "--project", "P-300", "--hours", "6.5", "--remarks", "kickoff")
	require.NoError(t, err)
	assert.Contains(t, out, "Added 6.50 h to P-300 [Direct] for week 2025-06-09")

	out, err = executeCmd(t, app, "alloc", "list", "cy", weekFlag)
	require.NoError(t, err)
	assert.Contains(t, out, "P-300")
	assert.Contains(t, out, "kickoff")
	assert.Contains(t, out, "1 rows, 6.50 h entered")
}

func TestAllocAdd_AvailableWithoutProject(t *testing.T) {
	app := testApp(t)
	seedTeam(t, app)

	out, err := executeCmd(t, app, "alloc", "add", "cy", weekFlag, "--available", "--hours", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "[Available]")
}

func TestAllocAdd_Errors(t *testing.T) {
	app := testApp(t)
	seedTeam(t, app)

	_, err := executeCmd(t, app, "alloc", "add", "cy", weekFlag, "--hours", "4")
	assert.ErrorContains(t, err, "--project is required")

	_, err = executeCmd(t, app, "alloc", "add", "cy", weekFlag, "--project", "P-1", "--hours", "-2")
	assert.ErrorContains(t, err, "non-negative")

	_, err = executeCmd(t, app, "alloc", "add", "cy", weekFlag, "-i")
	assert.ErrorContains(t, err, "needs a terminal")
}

func TestAllocEditAndRemove_ByPrefix(t *testing.T) {
	app := testApp(t)
	seedTeam(t, app)
	ctx := context.Background()

	rows, err := app.Allocations.ListWeek(ctx, "bo", testutil.TestWeek)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	target := rows[0]
	prefix := target.ID[:8]

	_, err = executeCmd(t, app, "alloc", "edit", prefix, "--hours", "30")
	assert.ErrorContains(t, err, "pass --person")

	out, err := executeCmd(t, app, "alloc", "edit", prefix, "--person", "bo", weekFlag, "--hours", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "30.00 h")

	got, err := app.Allocations.Get(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, 30.0, got.Hours)
	assert.Equal(t, target.ProjectNumber, got.ProjectNumber, "unset flags leave fields alone")

	out, err = executeCmd(t, app, "alloc", "rm", target.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed allocation")

	_, err = app.Allocations.Get(ctx, target.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAllocEdit_MoveToWeek(t *testing.T) {
	app := testApp(t)
	seedTeam(t, app)
	ctx := context.Background()

	rows, err := app.Allocations.ListWeek(ctx, "bo", testutil.TestWeek)
	require.NoError(t, err)
	id := rows[0].ID

	out, err := executeCmd(t, app, "alloc", "edit", id, "--move-to", "2025-06-18")
	require.NoError(t, err)
	assert.Contains(t, out, "week 2025-06-16")

	moved, err := app.Allocations.ListWeek(ctx, "bo", testutil.TestWeek.AddDate(0, 0, 7))
	require.NoError(t, err)
	require.Len(t, moved, 1)
	assert.Equal(t, id, moved[0].ID)
}

func TestAllocCopy(t *testing.T) {
	app := testApp(t)
	seedTeam(t, app)

	out, err := executeCmd(t, app, "alloc", "copy", "ada", "--to", "2025-06-16")
	require.NoError(t, err)
	assert.Contains(t, out, "Copied 3 rows from 2025-06-09 to 2025-06-16")

	out, err = executeCmd(t, app, "person", "ada", "--week", "2025-06-16")
	require.NoError(t, err)
	assert.Contains(t, out, "62.5%")

	_, err = executeCmd(t, app, "alloc", "copy", "ada", "--from", "2025-06-16", "--to", "2025-06-17")
	assert.ErrorContains(t, err, "both")
}

// --- Import, org, export ---

func TestImportCmd(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "alloc.json")
	doc := `{
  "people": [
    {"id": "p1", "name": "Ada", "email": "ada@example.com", "studio": "North", "manager": "Grace", "scheduled_hours": "40"}
  ],
  "allocations": [
    {"email": "ada@example.com", "week": "2025-06-11", "proj_id": "P-100", "ra_hours": "30", "hours": 1},
    {"person_id": "p1", "week": "2025-06-09", "project_number": "0000-0000-0HOL", "hours": 8}
  ]
}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	out, err := executeCmd(t, app, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Import complete")
	assert.Contains(t, out, "Allocations: 2")
	assert.Contains(t, out, "2025-06-09")

	out, err = executeCmd(t, app, "person", "p1", weekFlag)
	require.NoError(t, err)
	assert.Contains(t, out, "93.8%", "30/(40-8)")
}

func TestImportCmd_ValidationFailure(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "bad.json")
	doc := `{"people": [], "allocations": [{"person_id": "ghost", "week": "soon"}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	_, err := executeCmd(t, app, "import", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import validation failed")
}

func TestOrgImportListSetRemove(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "org.yaml")
	doc := `
studios:
  - name: North
    manager: Grace
    people:
      - id: ada
        name: Ada
      - id: bo
        name: Bo
        scheduled_hours: 20
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	out, err := executeCmd(t, app, "org", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "2 people imported")

	out, err = executeCmd(t, app, "org", "set", "bo", "--studio", "South")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved Bo (bo) in South under Grace, 20.00 h/week")

	out, err = executeCmd(t, app, "org", "list", "--studio", "South")
	require.NoError(t, err)
	assert.Contains(t, out, "Bo")
	assert.NotContains(t, out, "Ada")

	out, err = executeCmd(t, app, "org", "rm", "Ada")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed ada")

	out, err = executeCmd(t, app, "org", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "Ada")
}

func TestOrgSet_NewPersonNeedsName(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "org", "set", "zed")
	assert.Error(t, err)

	out, err := executeCmd(t, app, "org", "set", "zed", "--name", "Zed")
	require.NoError(t, err)
	assert.Contains(t, out, "Unassigned")
	assert.Contains(t, out, "40.00 h/week")
}

func TestExportCmd(t *testing.T) {
	app := testApp(t)
	seedTeam(t, app)
	path := filepath.Join(t.TempDir(), "report.xlsx")

	out, err := executeCmd(t, app, "export", path, weekFlag)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Company", "Studios", "People", "Projects"}, f.GetSheetList())
}

func TestDashboardCmd_RequiresTerminal(t *testing.T) {
	app := testApp(t)
	app.IsInteractive = func() bool { return false }

	_, err := executeCmd(t, app, "dashboard")
	assert.ErrorContains(t, err, "needs a terminal")
}
