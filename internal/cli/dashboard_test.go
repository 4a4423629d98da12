package cli

import (
	"testing"

	"github.com/alexanderramin/timesheet/internal/app"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/teatest"
	"github.com/alexanderramin/timesheet/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDashboard(t *testing.T) *teatest.Driver {
	t.Helper()
	a := testApp(t)
	seedTeam(t, a)
	return teatest.New(t, newDashboardModel(a, app.NewReportRequest(testutil.TestWeek)), teatest.WithSize(120, 40))
}

func dashboard(d *teatest.Driver) dashboardModel {
	return d.Model.(dashboardModel)
}

func TestDashboard_LoadsStudios(t *testing.T) {
	d := newTestDashboard(t)

	m := dashboard(d)
	require.NoError(t, m.err)
	assert.False(t, m.loading)
	assert.Equal(t, levelStudios, m.level)
	require.Len(t, m.table.Rows(), 3)
	assert.Equal(t, "East", m.table.Rows()[0][0])

	view := d.View()
	assert.Contains(t, view, "STUDIOS")
	assert.Contains(t, view, "North")
	assert.Contains(t, view, "All studios")
	assert.Contains(t, view, "PTO only")
}

func TestDashboard_DrillIntoStudioAndBack(t *testing.T) {
	d := newTestDashboard(t)

	d.Press(tea.KeyDown)
	d.Press(tea.KeyEnter)

	m := dashboard(d)
	require.NoError(t, m.err)
	assert.Equal(t, levelMembers, m.level)
	assert.Equal(t, "North", m.studio)
	require.Len(t, m.table.Rows(), 1)
	assert.Equal(t, "Ada", m.table.Rows()[0][0])
	assert.Contains(t, d.View(), "STUDIOS › NORTH")
	assert.Contains(t, d.View(), "LWOP subtracted")

	d.Press(tea.KeyEsc)
	m = dashboard(d)
	assert.Equal(t, levelStudios, m.level)
	assert.Len(t, m.table.Rows(), 3)
}

func TestDashboard_WeekNavigation(t *testing.T) {
	d := newTestDashboard(t)

	d.PressKey(']')
	m := dashboard(d)
	assert.True(t, testutil.TestWeek.AddDate(0, 0, 7).Equal(m.req.Week))
	require.NotNil(t, m.studios)
	assert.Zero(t, m.studios.Totals.DirectHours)

	d.PressKey('[')
	m = dashboard(d)
	assert.True(t, testutil.TestWeek.Equal(m.req.Week))
	assert.Equal(t, 44.0, m.studios.Totals.DirectHours)
}

func TestDashboard_ToggleMode(t *testing.T) {
	d := newTestDashboard(t)
	assert.Equal(t, domain.LWOPExcluded, dashboard(d).mode)

	d.PressKey('m')
	m := dashboard(d)
	assert.Equal(t, domain.LWOPSubtracted, m.mode)
	assert.Contains(t, d.View(), "LWOP subtracted")

	d.PressKey('m')
	assert.Equal(t, domain.LWOPExcluded, dashboard(d).mode)
}

func TestDashboard_Quit(t *testing.T) {
	d := newTestDashboard(t)

	d.PressKey('q')
	assert.True(t, d.Quitting)
}
