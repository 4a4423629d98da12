package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/timesheet/internal/app"
	"github.com/alexanderramin/timesheet/internal/cli/formatter"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/rollup"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newDashboardCmd(app *App) *cobra.Command {
	var flags reportFlags

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Browse studios and their people interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("dashboard needs a terminal, use the studio and people commands instead")
			}
			req, err := flags.request()
			if err != nil {
				return err
			}
			p := tea.NewProgram(newDashboardModel(app, req), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}

	flags.bind(cmd)
	return cmd
}

// ── key bindings ─────────────────────────────────────────────────────────────

type dashboardKeys struct {
	Open     key.Binding
	Back     key.Binding
	PrevWeek key.Binding
	NextWeek key.Binding
	Mode     key.Binding
	Refresh  key.Binding
	Quit     key.Binding
}

func defaultDashboardKeys() dashboardKeys {
	return dashboardKeys{
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open studio")),
		Back:     key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		PrevWeek: key.NewBinding(key.WithKeys("left", "h", "["), key.WithHelp("←", "prev week")),
		NextWeek: key.NewBinding(key.WithKeys("right", "l", "]"), key.WithHelp("→", "next week")),
		Mode:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "toggle LWOP")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ── messages ─────────────────────────────────────────────────────────────────

type studiosLoadedMsg struct {
	resp *app.StudiosResponse
	err  error
}

type membersLoadedMsg struct {
	resp *app.PeopleResponse
	err  error
}

// ── model ────────────────────────────────────────────────────────────────────

type dashboardLevel int

const (
	levelStudios dashboardLevel = iota
	levelMembers
)

// dashboardModel lists studios for a week range and drills into a
// studio's members. Both levels share one table with the same column
// count so rows can be swapped without rebuilding it.
type dashboardModel struct {
	app     *App
	req     app.ReportRequest
	keys    dashboardKeys
	table   table.Model
	level   dashboardLevel
	studio  string
	mode    domain.LWOPMode
	studios *app.StudiosResponse
	members *app.PeopleResponse
	loading bool
	err     error
	width   int
}

func newDashboardModel(a *App, req app.ReportRequest) dashboardModel {
	t := table.New(
		table.WithColumns(studioColumns()),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(formatter.ColorDim).
		BorderBottom(true).
		Foreground(formatter.ColorHeader).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(formatter.ColorFg).
		Background(lipgloss.Color("#504945")).
		Bold(true)
	t.SetStyles(styles)

	return dashboardModel{
		app:     a,
		req:     req,
		keys:    defaultDashboardKeys(),
		table:   t,
		loading: true,
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return m.loadStudios()
}

func (m dashboardModel) loadStudios() tea.Cmd {
	reports := m.app.Reports
	req := m.req
	return func() tea.Msg {
		resp, err := reports.Studios(context.Background(), req)
		return studiosLoadedMsg{resp: resp, err: err}
	}
}

func (m dashboardModel) loadMembers() tea.Cmd {
	reports := m.app.Reports
	req := m.req
	req.Studio = m.studio
	return func() tea.Msg {
		resp, err := reports.People(context.Background(), req)
		return membersLoadedMsg{resp: resp, err: err}
	}
}

func (m dashboardModel) reload() tea.Cmd {
	if m.level == levelMembers {
		return m.loadMembers()
	}
	return m.loadStudios()
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if h := msg.Height - 8; h > 3 {
			m.table.SetHeight(h)
		}
		return m, nil

	case studiosLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.studios = msg.resp
			m.mode = msg.resp.Mode
			m.table.SetColumns(studioColumns())
			m.table.SetRows(studioRows(msg.resp))
			clampCursor(&m.table)
		}
		return m, nil

	case membersLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.members = msg.resp
			m.mode = msg.resp.Mode
			m.table.SetColumns(memberColumns())
			m.table.SetRows(memberRows(msg.resp))
			clampCursor(&m.table)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Open):
			if m.level != levelStudios || m.loading {
				return m, nil
			}
			row := m.table.SelectedRow()
			if row == nil {
				return m, nil
			}
			m.level = levelMembers
			m.studio = row[0]
			m.table.SetCursor(0)
			m.loading = true
			return m, m.loadMembers()

		case key.Matches(msg, m.keys.Back):
			if m.level != levelMembers {
				return m, nil
			}
			m.level = levelStudios
			m.studio = ""
			m.members = nil
			m.table.SetCursor(0)
			m.loading = true
			return m, m.loadStudios()

		case key.Matches(msg, m.keys.PrevWeek):
			m.req.Week = m.req.Week.AddDate(0, 0, -7)
			m.loading = true
			return m, m.reload()

		case key.Matches(msg, m.keys.NextWeek):
			m.req.Week = m.req.Week.AddDate(0, 0, 7)
			m.loading = true
			return m, m.reload()

		case key.Matches(msg, m.keys.Mode):
			if m.mode == domain.LWOPSubtracted {
				m.req.Mode = domain.LWOPExcluded
			} else {
				m.req.Mode = domain.LWOPSubtracted
			}
			m.loading = true
			return m, m.reload()

		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			return m, m.reload()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m dashboardModel) View() string {
	var b strings.Builder

	title := "STUDIOS"
	if m.level == levelMembers {
		title = "STUDIOS › " + strings.ToUpper(m.studio)
	}
	b.WriteString(formatter.StyleHeader.Render(title))
	b.WriteString("  " + formatter.Dim(formatter.WeekLabel(m.req.Week, m.req.Weeks)))
	if m.mode != "" {
		b.WriteString("  " + formatter.ModeBadge(m.mode))
	}
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	case m.loading && len(m.table.Rows()) == 0:
		b.WriteString(formatter.Dim("Loading...") + "\n")
	default:
		b.WriteString(m.table.View() + "\n")
		b.WriteString(m.summaryLine() + "\n")
	}

	b.WriteString("\n" + m.helpLine())
	return b.String()
}

// summaryLine shows the totals for the current level.
func (m dashboardModel) summaryLine() string {
	var t domain.RollupTotals
	label := "All studios"
	switch {
	case m.level == levelMembers && m.members != nil:
		label = m.studio
		for _, p := range m.members.Members {
			t = t.Add(p.Totals())
		}
		t.RatioB = rollup.RatioBFor(m.mode, t.DirectHours, t.ScheduledHours, t.PTOHours, t.LWOPHours)
	case m.studios != nil:
		t = m.studios.Totals
	default:
		return ""
	}
	return fmt.Sprintf("%s  %s scheduled · %s direct · %s",
		formatter.Bold(label),
		formatter.Hours(t.ScheduledHours),
		formatter.Hours(t.DirectHours),
		formatter.RenderRatioBar(t.RatioB, 10))
}

func (m dashboardModel) helpLine() string {
	bindings := []key.Binding{m.keys.Open, m.keys.PrevWeek, m.keys.NextWeek, m.keys.Mode, m.keys.Refresh, m.keys.Quit}
	if m.level == levelMembers {
		bindings = []key.Binding{m.keys.Back, m.keys.PrevWeek, m.keys.NextWeek, m.keys.Mode, m.keys.Refresh, m.keys.Quit}
	}
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, formatter.StyleHeader.Render(h.Key)+" "+formatter.Dim(h.Desc))
	}
	return strings.Join(parts, formatter.Dim(" · "))
}

// ── table rows ───────────────────────────────────────────────────────────────

func studioColumns() []table.Column {
	return []table.Column{
		{Title: "Studio", Width: 18},
		{Title: "People", Width: 6},
		{Title: "Sched", Width: 9},
		{Title: "Direct", Width: 9},
		{Title: "PTO/Hol", Width: 9},
		{Title: "LWOP", Width: 8},
		{Title: "Total", Width: 9},
		{Title: "Ratio B", Width: 8},
	}
}

func memberColumns() []table.Column {
	return []table.Column{
		{Title: "Name", Width: 18},
		{Title: "Manager", Width: 14},
		{Title: "Sched", Width: 9},
		{Title: "Direct", Width: 9},
		{Title: "PTO/Hol", Width: 9},
		{Title: "LWOP", Width: 8},
		{Title: "Total", Width: 9},
		{Title: "Ratio B", Width: 8},
	}
}

func studioRows(resp *app.StudiosResponse) []table.Row {
	rows := make([]table.Row, 0, len(resp.Studios))
	for _, s := range resp.Studios {
		rows = append(rows, table.Row{
			s.Name,
			fmt.Sprint(len(s.Members)),
			formatter.Hours(s.ScheduledHours),
			formatter.Hours(s.DirectHours),
			formatter.Hours(s.PTOHours),
			formatter.Hours(s.LWOPHours),
			formatter.Hours(s.TotalHours),
			formatter.Percent(s.RatioB),
		})
	}
	return rows
}

func memberRows(resp *app.PeopleResponse) []table.Row {
	rows := make([]table.Row, 0, len(resp.Members))
	for _, p := range resp.Members {
		rows = append(rows, table.Row{
			p.Name,
			p.Manager,
			formatter.Hours(p.ScheduledHours),
			formatter.Hours(p.Direct),
			formatter.Hours(p.PTO),
			formatter.Hours(p.LWOP),
			formatter.Hours(p.TotalHours),
			formatter.Percent(p.RatioB),
		})
	}
	return rows
}

func clampCursor(t *table.Model) {
	n := len(t.Rows())
	if n == 0 {
		return
	}
	if t.Cursor() < 0 || t.Cursor() >= n {
		t.SetCursor(n - 1)
	}
}
