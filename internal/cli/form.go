package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alexanderramin/timesheet/internal/cli/formatter"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// timesheetHuhTheme returns a huh theme matching the formatter palette.
func timesheetHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// allocInput holds the form's string-typed view of a row.
type allocInput struct {
	kind      string
	project   string
	name      string
	milestone string
	pm        string
	labor     string
	pctUsed   string
	hours     string
	remarks   string
}

// Row kinds offered by the form. Internal kinds map to fixed project codes.
const (
	kindProject   = "project"
	kindOverhead  = "overhead"
	kindPTO       = "pto"
	kindHoliday   = "holiday"
	kindLWOP      = "lwop"
	kindAvailable = "available"
)

var kindCodes = map[string]string{
	kindOverhead:  "0000-0000-ADMIN",
	kindPTO:       "0000-0000-0PTO",
	kindHoliday:   "0000-0000-0HOL",
	kindLWOP:      "0000-0000-LWOP",
	kindAvailable: "0000-0000-AVAIL_HOURS",
}

func newAllocInput(row *domain.AllocationRow) *allocInput {
	in := &allocInput{
		kind:      kindProject,
		project:   row.ProjectNumber,
		name:      row.ProjectName,
		milestone: row.MilestoneName,
		pm:        row.ProjectManager,
		remarks:   row.Remarks,
	}
	if row.AvailableHours {
		in.kind = kindAvailable
	}
	if row.ContractLabor != 0 {
		in.labor = strconv.FormatFloat(row.ContractLabor, 'f', -1, 64)
	}
	if row.PercentLaborUsed != 0 {
		in.pctUsed = strconv.FormatFloat(row.PercentLaborUsed, 'f', -1, 64)
	}
	if row.Hours != 0 {
		in.hours = strconv.FormatFloat(row.Hours, 'f', -1, 64)
	}
	return in
}

// applyTo writes the form values onto row. Non-project kinds replace the
// project number with their internal code.
func (in *allocInput) applyTo(row *domain.AllocationRow) error {
	hours, err := parseHours(in.hours)
	if err != nil {
		return err
	}
	row.Hours = hours
	row.Remarks = strings.TrimSpace(in.remarks)
	row.AvailableHours = in.kind == kindAvailable

	if code, ok := kindCodes[in.kind]; ok {
		row.ProjectNumber = code
		row.ProjectName = ""
		row.MilestoneName = ""
		row.ProjectManager = ""
		row.ContractLabor = 0
		row.PercentLaborUsed = 0
		return nil
	}

	row.ProjectNumber = strings.TrimSpace(in.project)
	row.ProjectName = strings.TrimSpace(in.name)
	row.MilestoneName = strings.TrimSpace(in.milestone)
	row.ProjectManager = strings.TrimSpace(in.pm)
	if row.ContractLabor, err = parseOptionalFloat(in.labor); err != nil {
		return fmt.Errorf("labor: %w", err)
	}
	if row.PercentLaborUsed, err = parseOptionalFloat(in.pctUsed); err != nil {
		return fmt.Errorf("percent used: %w", err)
	}
	return nil
}

// allocationForm builds the two-step entry form: kind and hours first,
// project details only for project rows.
func allocationForm(in *allocInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Kind").
				Options(
					huh.NewOption("Project work", kindProject),
					huh.NewOption("Overhead / admin", kindOverhead),
					huh.NewOption("PTO", kindPTO),
					huh.NewOption("Holiday", kindHoliday),
					huh.NewOption("Leave without pay", kindLWOP),
					huh.NewOption("Available", kindAvailable),
				).
				Value(&in.kind),
			huh.NewInput().
				Title("Hours").
				Placeholder("8").
				Value(&in.hours).
				Validate(validateHours),
			huh.NewInput().
				Title("Remarks").
				Value(&in.remarks),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Project Number").
				Placeholder("2024-0153-00").
				Value(&in.project).
				Validate(validateRequired("project number")),
			huh.NewInput().Title("Project Name").Value(&in.name),
			huh.NewInput().Title("Milestone").Value(&in.milestone),
			huh.NewInput().Title("Project Manager").Value(&in.pm),
			huh.NewInput().
				Title("Contract Labor").
				Placeholder("0").
				Value(&in.labor).
				Validate(validateOptionalNonNegative),
			huh.NewInput().
				Title("Labor Used (%)").
				Placeholder("0").
				Value(&in.pctUsed).
				Validate(validateOptionalNonNegative),
		).WithHideFunc(func() bool { return in.kind != kindProject }),
	).WithTheme(timesheetHuhTheme()).WithShowHelp(false)
}

func parseHours(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("hours are required")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, fmt.Errorf("hours must be a non-negative number")
	}
	return v, nil
}

func parseOptionalFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, fmt.Errorf("enter a non-negative number")
	}
	return v, nil
}

func validateHours(s string) error {
	_, err := parseHours(s)
	return err
}

func validateOptionalNonNegative(s string) error {
	_, err := parseOptionalFloat(s)
	return err
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
