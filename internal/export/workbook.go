// Package export writes report snapshots to an .xlsx workbook with one
// sheet per level: Company, Studios, People and Projects.
package export

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/timesheet/internal/app"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	SheetCompany  = "Company"
	SheetStudios  = "Studios"
	SheetPeople   = "People"
	SheetProjects = "Projects"
)

var totalsHeaders = []string{
	"Scheduled", "Direct", "PTO/Holiday", "LWOP", "Overhead", "Available", "Total", "Ratio B",
}

type styles struct {
	header  int
	ratio   int
	percent int
}

// Workbook builds the export from a company rollup and a project rollup of
// the same week range. The caller owns the returned file and must Close it.
func Workbook(company *app.CompanyResponse, projects *app.ProjectsResponse) (*excelize.File, error) {
	if company == nil || projects == nil {
		return nil, fmt.Errorf("company and project reports are required")
	}

	f := excelize.NewFile()
	st, err := newStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	if err := f.SetSheetName("Sheet1", SheetCompany); err != nil {
		f.Close()
		return nil, fmt.Errorf("renaming default sheet: %w", err)
	}
	for _, name := range []string{SheetStudios, SheetPeople, SheetProjects} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("creating sheet %s: %w", name, err)
		}
	}

	writers := []func(*excelize.File, styles) error{
		func(f *excelize.File, st styles) error { return writeCompany(f, st, company) },
		func(f *excelize.File, st styles) error { return writeStudios(f, st, company) },
		func(f *excelize.File, st styles) error { return writePeople(f, st, company) },
		func(f *excelize.File, st styles) error { return writeProjects(f, st, projects) },
	}
	for _, w := range writers {
		if err := w(f, st); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

// WriteFile builds the workbook and saves it to path.
func WriteFile(path string, company *app.CompanyResponse, projects *app.ProjectsResponse) error {
	f, err := Workbook(company, projects)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func newStyles(f *excelize.File) (styles, error) {
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return styles{}, fmt.Errorf("creating header style: %w", err)
	}
	ratioFmt := "0.0%"
	ratio, err := f.NewStyle(&excelize.Style{CustomNumFmt: &ratioFmt})
	if err != nil {
		return styles{}, fmt.Errorf("creating ratio style: %w", err)
	}
	pctFmt := "0.0\"%\""
	percent, err := f.NewStyle(&excelize.Style{CustomNumFmt: &pctFmt})
	if err != nil {
		return styles{}, fmt.Errorf("creating percent style: %w", err)
	}
	return styles{header: header, ratio: ratio, percent: percent}, nil
}

func writeCompany(f *excelize.File, st styles, resp *app.CompanyResponse) error {
	headers := append([]string{"Manager"}, totalsHeaders...)
	var rows [][]any
	for _, name := range sortedKeys(resp.Company.Managers) {
		rows = append(rows, totalsRow(resp.Company.Managers[name].RollupTotals, name))
	}
	rows = append(rows, totalsRow(resp.Company.RollupTotals, "Company"))

	if err := writeTable(f, st, SheetCompany, headers, rows); err != nil {
		return err
	}
	if err := styleColumn(f, SheetCompany, len(headers), len(rows), st.ratio); err != nil {
		return err
	}
	return setWidths(f, SheetCompany, "A", 24, "B", "I", 13)
}

func writeStudios(f *excelize.File, st styles, resp *app.CompanyResponse) error {
	headers := append([]string{"Manager", "Studio", "Members"}, totalsHeaders...)
	var rows [][]any
	for _, mgr := range sortedKeys(resp.Company.Managers) {
		ms := resp.Company.Managers[mgr]
		for _, name := range sortedKeys(ms.Studios) {
			s := ms.Studios[name]
			row := []any{mgr, name, len(s.Members)}
			rows = append(rows, append(row, totalsRow(s.RollupTotals)...))
		}
	}

	if err := writeTable(f, st, SheetStudios, headers, rows); err != nil {
		return err
	}
	if err := styleColumn(f, SheetStudios, len(headers), len(rows), st.ratio); err != nil {
		return err
	}
	return setWidths(f, SheetStudios, "A", 24, "B", "B", 24)
}

func writePeople(f *excelize.File, st styles, resp *app.CompanyResponse) error {
	headers := []string{
		"Name", "Email", "Studio", "Manager",
		"Scheduled", "Direct", "PTO/Holiday", "LWOP", "Indirect", "Available", "Total", "Ratio B",
	}

	var members []domain.PersonSummary
	for _, ms := range resp.Company.Managers {
		for _, s := range ms.Studios {
			for _, m := range s.Members {
				members = append(members, m)
			}
		}
	}
	sort.Slice(members, func(i, j int) bool {
		if members[i].Name != members[j].Name {
			return members[i].Name < members[j].Name
		}
		return members[i].ID < members[j].ID
	})

	rows := make([][]any, 0, len(members))
	for _, m := range members {
		rows = append(rows, []any{
			m.Name, m.Email, m.Studio, m.Manager,
			m.ScheduledHours, m.Direct, m.PTO, m.LWOP, m.Indirect, m.Available, m.TotalHours, m.RatioB,
		})
	}

	if err := writeTable(f, st, SheetPeople, headers, rows); err != nil {
		return err
	}
	if err := styleColumn(f, SheetPeople, len(headers), len(rows), st.ratio); err != nil {
		return err
	}
	return setWidths(f, SheetPeople, "A", 24, "B", "D", 22)
}

func writeProjects(f *excelize.File, st styles, resp *app.ProjectsResponse) error {
	headers := []string{"Project", "Name", "PM", "Contract Labor", "% Labor Used", "Hours", "Team"}
	rows := make([][]any, 0, len(resp.Projects))
	for _, p := range resp.Projects {
		rows = append(rows, []any{
			p.ProjectNumber, p.ProjectName, p.PM, p.Labor, p.PctLaborUsed, p.TotalHours, teamLabel(p.TeamMembers),
		})
	}

	if err := writeTable(f, st, SheetProjects, headers, rows); err != nil {
		return err
	}
	if err := styleColumn(f, SheetProjects, 5, len(rows), st.percent); err != nil {
		return err
	}
	return setWidths(f, SheetProjects, "A", 18, "B", "C", 28)
}

func writeTable(f *excelize.File, st styles, sheet string, headers []string, rows [][]any) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("writing %s header: %w", sheet, err)
		}
	}
	if err := f.SetRowStyle(sheet, 1, 1, st.header); err != nil {
		return fmt.Errorf("styling %s header: %w", sheet, err)
	}

	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("writing %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}

// styleColumn applies style to data rows of column col (1-based).
func styleColumn(f *excelize.File, sheet string, col, rows, style int) error {
	if rows == 0 {
		return nil
	}
	top, err := excelize.CoordinatesToCellName(col, 2)
	if err != nil {
		return err
	}
	bottom, err := excelize.CoordinatesToCellName(col, rows+1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, top, bottom, style)
}

func setWidths(f *excelize.File, sheet, first string, firstWidth float64, from, to string, width float64) error {
	if err := f.SetColWidth(sheet, first, first, firstWidth); err != nil {
		return err
	}
	return f.SetColWidth(sheet, from, to, width)
}

// totalsRow renders RollupTotals after any leading label cells.
func totalsRow(t domain.RollupTotals, lead ...any) []any {
	return append(lead,
		t.ScheduledHours, t.DirectHours, t.PTOHours, t.LWOPHours,
		t.OverheadHours, t.AvailableHours, t.TotalHours, t.RatioB,
	)
}

func teamLabel(team []domain.TeamMember) string {
	s := ""
	for i, m := range team {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s (%g)", m.Name, m.Hours)
	}
	return s
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
