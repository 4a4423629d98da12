package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/timesheet/internal/app"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/repository"
	"github.com/spf13/cobra"
)

// now is swapped in tests to pin the default week.
var now = time.Now

// reportFlags are the range and mode flags shared by every report command.
type reportFlags struct {
	week  string
	weeks int
	mode  string
}

func (f *reportFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.week, "week", "w", "", "Any date in the first week (YYYY-MM-DD, default current week)")
	cmd.Flags().IntVar(&f.weeks, "weeks", 1, "Number of consecutive weeks")
	cmd.Flags().StringVar(&f.mode, "mode", "", "Ratio B variant: exclude (PTO only) or subtract (PTO and LWOP)")
}

func (f *reportFlags) request() (app.ReportRequest, error) {
	week, err := parseWeekFlag(f.week)
	if err != nil {
		return app.ReportRequest{}, err
	}
	mode, err := parseModeFlag(f.mode)
	if err != nil {
		return app.ReportRequest{}, err
	}
	req := app.NewReportRequest(week)
	req.Weeks = f.weeks
	req.Mode = mode
	return req, nil
}

// parseWeekFlag returns the Monday of the week containing s, or of the
// current week when s is empty.
func parseWeekFlag(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return domain.StartOfWeek(now()), nil
	}
	week, err := domain.ParseWeek(strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid week %q (expected YYYY-MM-DD)", s)
	}
	return week, nil
}

func parseModeFlag(s string) (domain.LWOPMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}
	if !domain.ValidLWOPModes[s] {
		return "", fmt.Errorf("invalid mode %q (expected exclude or subtract)", s)
	}
	return domain.LWOPMode(s), nil
}

// resolvePersonID accepts a person ID, an email address or an exact
// (case-insensitive) name and returns the person's ID.
func resolvePersonID(ctx context.Context, a *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("person is required")
	}

	if p, err := a.People.Get(ctx, input); err == nil {
		return p.ID, nil
	}

	people, err := a.People.List(ctx, repository.PersonFilter{})
	if err != nil {
		return "", err
	}

	for _, p := range people {
		if p.Email != "" && strings.EqualFold(p.Email, input) {
			return p.ID, nil
		}
	}

	var matches []string
	for _, p := range people {
		if strings.EqualFold(p.Name, input) {
			matches = append(matches, p.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("person not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("name %q is ambiguous (%d people), use the ID or email", input, len(matches))
	}
}
