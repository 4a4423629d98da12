package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/timesheet/internal/app"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/rollup"
)

const ratioBarWidth = 10

var totalsHeaders = []string{"SCHEDULED", "DIRECT", "PTO/HOL", "LWOP", "OVERHEAD", "AVAIL", "TOTAL", "RATIO B"}

func totalsCells(t domain.RollupTotals) []string {
	return []string{
		Hours(t.ScheduledHours),
		Hours(t.DirectHours),
		Hours(t.PTOHours),
		Hours(t.LWOPHours),
		Hours(t.OverheadHours),
		Hours(t.AvailableHours),
		Hours(t.TotalHours),
		RatioCell(t.RatioB),
	}
}

// numericCols returns the indexes of the totals columns after lead label
// columns.
func numericCols(lead int) []int {
	cols := make([]int, len(totalsHeaders))
	for i := range cols {
		cols[i] = lead + i
	}
	return cols
}

// FormatPersonWeek renders one person's week: category breakdown, Ratio B
// and the rows behind it.
func FormatPersonWeek(resp *app.PersonWeekResponse) string {
	s := resp.Summary
	var b strings.Builder

	b.WriteString(Bold(s.Name))
	if s.Email != "" {
		b.WriteString("  " + Dim(s.Email))
	}
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("%s · %s · %s", s.Studio, s.Manager, WeekLabel(resp.Week, 1))) + "\n\n")

	cats := []struct {
		cat   domain.Category
		hours float64
	}{
		{domain.CategoryDirect, s.Direct},
		{domain.CategoryPTOHoliday, s.PTO},
		{domain.CategoryLWOP, s.LWOP},
		{domain.CategoryIndirect, s.Indirect},
		{domain.CategoryAvailable, s.Available},
	}
	var catRows [][]string
	for _, c := range cats {
		catRows = append(catRows, []string{CategoryColor(c.cat).Render(CategoryLabel(c.cat)), Hours(c.hours)})
	}
	b.WriteString(RenderTable([]string{"CATEGORY", "HOURS"}, catRows,
		AlignRight(1),
		WithFooter([]string{"Total", Hours(s.TotalHours)}),
	))

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Scheduled %s h   %s\n", Hours(s.ScheduledHours), RenderRatioBar(s.RatioB, ratioBarWidth)))
	b.WriteString(ModeBadge(resp.Mode) + "\n")

	if len(s.Rows) > 0 {
		b.WriteString("\n")
		b.WriteString(FormatRows(s.Rows))
	}

	return RenderBox("Person Week", b.String())
}

// FormatRows renders allocation rows with their category.
func FormatRows(rows []domain.AllocationRow) string {
	headers := []string{"ID", "PROJECT", "NAME", "CATEGORY", "HOURS", "REMARKS"}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		cat := rollup.CategorizeRow(r)
		out = append(out, []string{
			TruncID(r.ID),
			OrDash(r.ProjectNumber),
			OrDash(r.ProjectName),
			CategoryColor(cat).Render(CategoryLabel(cat)),
			Hours(r.Hours),
			Dim(r.Remarks),
		})
	}
	return RenderTable(headers, out, AlignRight(4))
}

// FormatAllocations renders a person's stored rows for one week.
func FormatAllocations(rows []*domain.AllocationRow) string {
	if len(rows) == 0 {
		return Dim("No allocations for this week.") + "\n"
	}
	flat := make([]domain.AllocationRow, 0, len(rows))
	var total float64
	for _, r := range rows {
		flat = append(flat, *r)
		total += r.Hours
	}
	return FormatRows(flat) + Dim(fmt.Sprintf("%d rows, %s h entered", len(rows), Hours(total))) + "\n"
}

// FormatPeople renders the per-user dashboard.
func FormatPeople(resp *app.PeopleResponse) string {
	headers := []string{"NAME", "STUDIO", "MANAGER", "SCHED", "DIRECT", "PTO/HOL", "LWOP", "INDIRECT", "TOTAL", "RATIO B"}
	rows := make([][]string, 0, len(resp.Members))
	for _, m := range resp.Members {
		rows = append(rows, []string{
			Bold(m.Name),
			m.Studio,
			m.Manager,
			Hours(m.ScheduledHours),
			Hours(m.Direct),
			Hours(m.PTO),
			Hours(m.LWOP),
			Hours(m.Indirect),
			Hours(m.TotalHours),
			RenderRatioBar(m.RatioB, ratioBarWidth),
		})
	}

	var b strings.Builder
	b.WriteString(Dim(WeekLabel(resp.Week, resp.Weeks)) + "  " + ModeBadge(resp.Mode) + "\n\n")
	if len(rows) == 0 {
		b.WriteString(Dim("No people in the directory.") + "\n")
	} else {
		b.WriteString(RenderTable(headers, rows, AlignRight(3, 4, 5, 6, 7, 8)))
	}
	return RenderBox("People", b.String())
}

// FormatStudios renders one line per studio plus the overall totals.
func FormatStudios(resp *app.StudiosResponse) string {
	headers := append([]string{"STUDIO", "PEOPLE"}, totalsHeaders...)
	rows := make([][]string, 0, len(resp.Studios))
	people := 0
	for _, s := range resp.Studios {
		people += len(s.Members)
		rows = append(rows, append([]string{Bold(s.Name), fmt.Sprint(len(s.Members))}, totalsCells(s.RollupTotals)...))
	}
	footer := append([]string{"All studios", fmt.Sprint(people)}, totalsCells(resp.Totals)...)

	var b strings.Builder
	b.WriteString(Dim(WeekLabel(resp.Week, resp.Weeks)) + "  " + ModeBadge(resp.Mode) + "\n\n")
	b.WriteString(RenderTable(headers, rows, AlignRight(append([]int{1}, numericCols(2)...)...), WithFooter(footer)))
	return RenderBox("Studios", b.String())
}

// FormatManager renders a group manager's studios and their members as a
// tree, followed by the totals table.
func FormatManager(resp *app.ManagerResponse) string {
	m := resp.Manager
	var b strings.Builder
	b.WriteString(Dim(WeekLabel(resp.Week, resp.Weeks)) + "  " + ModeBadge(resp.Mode) + "\n\n")
	b.WriteString(RenderTree(managerTree(m, 0)))
	b.WriteString("\n")

	headers := append([]string{"STUDIO"}, totalsHeaders...)
	var rows [][]string
	for _, name := range sortedKeys(m.Studios) {
		rows = append(rows, append([]string{name}, totalsCells(m.Studios[name].RollupTotals)...))
	}
	b.WriteString(RenderTable(headers, rows,
		AlignRight(numericCols(1)...),
		WithFooter(append([]string{m.Name}, totalsCells(m.RollupTotals)...)),
	))
	return RenderBox("Manager", b.String())
}

// FormatCompany renders the full hierarchy and a per-manager table.
func FormatCompany(resp *app.CompanyResponse) string {
	c := resp.Company
	var b strings.Builder
	b.WriteString(Dim(WeekLabel(resp.Week, resp.Weeks)) + "  " + ModeBadge(resp.Mode) + "\n\n")

	items := []TreeItem{{Title: Bold("Company"), Detail: RatioCell(c.RatioB)}}
	names := sortedKeys(c.Managers)
	for i, name := range names {
		sub := managerTree(c.Managers[name], 1)
		sub[0].IsLast = i == len(names)-1
		items = append(items, sub...)
	}
	b.WriteString(RenderTree(items))
	b.WriteString("\n")

	headers := append([]string{"MANAGER"}, totalsHeaders...)
	var rows [][]string
	for _, name := range names {
		rows = append(rows, append([]string{name}, totalsCells(c.Managers[name].RollupTotals)...))
	}
	b.WriteString(RenderTable(headers, rows,
		AlignRight(numericCols(1)...),
		WithFooter(append([]string{"Company"}, totalsCells(c.RollupTotals)...)),
	))
	return RenderBox("Company", b.String())
}

// managerTree flattens a manager summary into tree items starting at
// level base.
func managerTree(m domain.ManagerSummary, base int) []TreeItem {
	items := []TreeItem{{Title: Bold(m.Name), Level: base, Detail: RatioCell(m.RatioB)}}
	studios := sortedKeys(m.Studios)
	for si, sname := range studios {
		s := m.Studios[sname]
		items = append(items, TreeItem{
			Title:  StyleBlue.Render(sname),
			Level:  base + 1,
			IsLast: si == len(studios)-1,
			Detail: RatioCell(s.RatioB),
		})
		members := sortedMembers(s.Members)
		for mi, p := range members {
			items = append(items, TreeItem{
				Title:  p.Name,
				Level:  base + 2,
				IsLast: mi == len(members)-1,
				Detail: RatioCell(p.RatioB),
			})
		}
	}
	return items
}

// FormatProjects renders the project rollup with team members beneath
// each project.
func FormatProjects(resp *app.ProjectsResponse) string {
	var b strings.Builder
	b.WriteString(Dim(WeekLabel(resp.Week, resp.Weeks)))
	if resp.PM != "" {
		b.WriteString(Dim("  PM: " + resp.PM))
	}
	b.WriteString("\n\n")

	if len(resp.Projects) == 0 {
		b.WriteString(Dim("No direct project hours.") + "\n")
		return RenderBox("Projects", b.String())
	}

	headers := []string{"PROJECT", "NAME", "PM", "LABOR", "% USED", "HOURS", "TEAM"}
	var rows [][]string
	var total float64
	for _, p := range resp.Projects {
		total += p.TotalHours
		rows = append(rows, []string{
			Bold(p.ProjectNumber),
			OrDash(p.ProjectName),
			OrDash(p.PM),
			Money(p.Labor),
			PercentValue(p.PctLaborUsed),
			Hours(p.TotalHours),
			fmt.Sprint(len(p.TeamMembers)),
		})
		for _, m := range p.TeamMembers {
			remark := ""
			if m.Remarks != "" {
				remark = Dim(" · " + m.Remarks)
			}
			rows = append(rows, []string{"", Dim("  " + m.Name + " (" + m.Studio + ")" + remark), "", "", "", Hours(m.Hours), ""})
		}
	}
	b.WriteString(RenderTable(headers, rows,
		AlignRight(3, 4, 5, 6),
		WithFooter([]string{fmt.Sprintf("%d projects", len(resp.Projects)), "", "", "", "", Hours(total), ""}),
	))
	return RenderBox("Projects", b.String())
}

// FormatImportResult summarizes a bulk allocation import.
func FormatImportResult(r *app.ImportResult) string {
	weeks := make([]string, 0, len(r.Weeks))
	for _, w := range r.Weeks {
		weeks = append(weeks, w.Format(domain.WeekLayout))
	}
	var b strings.Builder
	b.WriteString(StyleGreen.Render("✔ Import complete") + "\n")
	b.WriteString(fmt.Sprintf("  People:      %d\n", r.People))
	b.WriteString(fmt.Sprintf("  Allocations: %d\n", r.Allocations))
	b.WriteString(fmt.Sprintf("  Replaced:    %d\n", r.Replaced))
	if len(weeks) > 0 {
		b.WriteString("  Weeks:       " + strings.Join(weeks, ", ") + "\n")
	}
	return b.String()
}

// FormatOrgImport lists the directory records written from an org file.
func FormatOrgImport(r *app.OrgImportResult) string {
	headers := []string{"ID", "NAME", "STUDIO", "MANAGER", "SCHED"}
	rows := make([][]string, 0, len(r.People))
	for _, p := range r.People {
		rows = append(rows, []string{p.ID, p.Name, p.Studio, p.Manager, Hours(p.ScheduledHours)})
	}
	return StyleGreen.Render(fmt.Sprintf("✔ %d people imported", len(r.People))) + "\n\n" +
		RenderTable(headers, rows, AlignRight(4))
}

// FormatPersonList renders the directory.
func FormatPersonList(people []*domain.Person) string {
	if len(people) == 0 {
		return Dim("No people found.") + "\n"
	}
	headers := []string{"ID", "NAME", "EMAIL", "STUDIO", "MANAGER", "SCHED"}
	rows := make([][]string, 0, len(people))
	for _, p := range people {
		rows = append(rows, []string{p.ID, Bold(p.Name), OrDash(p.Email), p.Studio, p.Manager, Hours(p.ScheduledHours)})
	}
	return RenderTable(headers, rows, AlignRight(5))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedMembers(m map[string]domain.PersonSummary) []domain.PersonSummary {
	out := make([]domain.PersonSummary, 0, len(m))
	for _, p := range m {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}
