package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/timesheet/internal/cli/formatter"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/repository"
	"github.com/alexanderramin/timesheet/internal/rollup"
	"github.com/spf13/cobra"
)

func newAllocCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "alloc",
		Aliases: []string{"allocation"},
		Short:   "Manage weekly allocation rows",
	}

	cmd.AddCommand(
		newAllocAddCmd(app),
		newAllocListCmd(app),
		newAllocEditCmd(app),
		newAllocRemoveCmd(app),
		newAllocCopyCmd(app),
	)

	return cmd
}

// allocFields are the editable row columns shared by add and edit.
type allocFields struct {
	project   string
	name      string
	milestone string
	pm        string
	labor     float64
	pctUsed   float64
	hours     float64
	remarks   string
	available bool
}

func (f *allocFields) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.project, "project", "p", "", "Project number (0000-0000-* for internal codes)")
	cmd.Flags().StringVar(&f.name, "name", "", "Project name")
	cmd.Flags().StringVar(&f.milestone, "milestone", "", "Milestone name")
	cmd.Flags().StringVar(&f.pm, "pm", "", "Project manager")
	cmd.Flags().Float64Var(&f.labor, "labor", 0, "Contract labor budget")
	cmd.Flags().Float64Var(&f.pctUsed, "pct-used", 0, "Percent of labor used (0-100)")
	cmd.Flags().Float64VarP(&f.hours, "hours", "H", 0, "Hours for the week")
	cmd.Flags().StringVar(&f.remarks, "remarks", "", "Free-text remarks")
	cmd.Flags().BoolVar(&f.available, "available", false, "Mark the hours as available capacity")
}

// apply copies the flags the user set onto row. With all=true every field
// is copied, for new rows.
func (f *allocFields) apply(cmd *cobra.Command, row *domain.AllocationRow, all bool) {
	set := func(name string) bool { return all || cmd.Flags().Changed(name) }
	if set("project") {
		row.ProjectNumber = strings.TrimSpace(f.project)
	}
	if set("name") {
		row.ProjectName = f.name
	}
	if set("milestone") {
		row.MilestoneName = f.milestone
	}
	if set("pm") {
		row.ProjectManager = f.pm
	}
	if set("labor") {
		row.ContractLabor = f.labor
	}
	if set("pct-used") {
		row.PercentLaborUsed = f.pctUsed
	}
	if set("hours") {
		row.Hours = f.hours
	}
	if set("remarks") {
		row.Remarks = f.remarks
	}
	if set("available") {
		row.AvailableHours = f.available
	}
}

func newAllocAddCmd(app *App) *cobra.Command {
	var fields allocFields
	var week string
	var interactive bool

	cmd := &cobra.Command{
		Use:   "add <person>",
		Short: "Add an allocation row to a person's week",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			personID, err := resolvePersonID(ctx, app, args[0])
			if err != nil {
				return err
			}
			weekStart, err := parseWeekFlag(week)
			if err != nil {
				return err
			}

			row := &domain.AllocationRow{PersonID: personID, WeekStart: weekStart}
			fields.apply(cmd, row, true)

			if interactive {
				if !app.interactive() {
					return fmt.Errorf("interactive entry needs a terminal")
				}
				input := newAllocInput(row)
				if err := allocationForm(input).Run(); err != nil {
					return err
				}
				if err := input.applyTo(row); err != nil {
					return err
				}
			} else if row.ProjectNumber == "" && !row.AvailableHours {
				return fmt.Errorf("--project is required (or use --available or -i)")
			}

			if err := app.Allocations.Add(ctx, row); err != nil {
				return err
			}
			cat := formatter.CategoryLabel(rollup.CategorizeRow(*row))
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s h to %s [%s] for week %s (%s)\n",
				formatter.Hours(row.Hours), formatter.OrDash(row.ProjectNumber), cat,
				row.WeekKey(), formatter.TruncID(row.ID))
			return nil
		},
	}

	fields.bind(cmd)
	cmd.Flags().StringVarP(&week, "week", "w", "", "Any date in the week (YYYY-MM-DD, default current week)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Fill the row in a form")
	return cmd
}

func newAllocListCmd(app *App) *cobra.Command {
	var week string

	cmd := &cobra.Command{
		Use:     "list <person>",
		Aliases: []string{"ls"},
		Short:   "List a person's rows for one week",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			personID, err := resolvePersonID(ctx, app, args[0])
			if err != nil {
				return err
			}
			weekStart, err := parseWeekFlag(week)
			if err != nil {
				return err
			}

			rows, err := app.Allocations.ListWeek(ctx, personID, weekStart)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Dim(formatter.WeekLabel(weekStart, 1)))
			fmt.Fprint(out, formatter.FormatAllocations(rows))
			return nil
		},
	}

	cmd.Flags().StringVarP(&week, "week", "w", "", "Any date in the week (YYYY-MM-DD, default current week)")
	return cmd
}

func newAllocEditCmd(app *App) *cobra.Command {
	var fields allocFields
	var person, week, moveTo string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of an allocation row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveAllocationID(ctx, app, args[0], person, week)
			if err != nil {
				return err
			}
			row, err := app.Allocations.Get(ctx, id)
			if err != nil {
				return err
			}

			fields.apply(cmd, row, false)
			if moveTo != "" {
				if row.WeekStart, err = parseWeekFlag(moveTo); err != nil {
					return err
				}
			}

			if err := app.Allocations.Update(ctx, row); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %s h on %s, week %s\n",
				formatter.TruncID(row.ID), formatter.Hours(row.Hours),
				formatter.OrDash(row.ProjectNumber), row.WeekKey())
			return nil
		},
	}

	fields.bind(cmd)
	cmd.Flags().StringVar(&person, "person", "", "Person whose week is searched when <id> is a prefix")
	cmd.Flags().StringVarP(&week, "week", "w", "", "Week searched when <id> is a prefix")
	cmd.Flags().StringVar(&moveTo, "move-to", "", "Move the row to the week of this date")
	return cmd
}

func newAllocRemoveCmd(app *App) *cobra.Command {
	var person, week string

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Delete an allocation row",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveAllocationID(ctx, app, args[0], person, week)
			if err != nil {
				return err
			}
			if err := app.Allocations.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed allocation %s\n", formatter.TruncID(id))
			return nil
		},
	}

	cmd.Flags().StringVar(&person, "person", "", "Person whose week is searched when <id> is a prefix")
	cmd.Flags().StringVarP(&week, "week", "w", "", "Week searched when <id> is a prefix")
	return cmd
}

func newAllocCopyCmd(app *App) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "copy <person>",
		Short: "Copy a week's rows forward, replacing the target week",
		Long: `Copy every row of the source week into the target week as new rows.
The target week's existing rows are replaced. The source defaults to the
week before the target; the target defaults to the current week.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			personID, err := resolvePersonID(ctx, app, args[0])
			if err != nil {
				return err
			}
			toWeek, err := parseWeekFlag(to)
			if err != nil {
				return err
			}
			fromWeek := toWeek.AddDate(0, 0, -7)
			if from != "" {
				if fromWeek, err = parseWeekFlag(from); err != nil {
					return err
				}
			}

			n, err := app.Allocations.CopyForward(ctx, personID, fromWeek, toWeek)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Copied %d rows from %s to %s\n",
				n, fromWeek.Format(domain.WeekLayout), toWeek.Format(domain.WeekLayout))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Source week (default: week before --to)")
	cmd.Flags().StringVar(&to, "to", "", "Target week (default: current week)")
	return cmd
}

// resolveAllocationID returns input when it is a stored row ID. Otherwise,
// with a person given, input is matched as a prefix against that
// person's rows for the week.
func resolveAllocationID(ctx context.Context, app *App, input, person, week string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("allocation ID is required")
	}

	_, err := app.Allocations.Get(ctx, input)
	if err == nil {
		return input, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}
	if person == "" {
		return "", fmt.Errorf("allocation not found: %q (pass --person to match an ID prefix)", input)
	}

	personID, err := resolvePersonID(ctx, app, person)
	if err != nil {
		return "", err
	}
	weekStart, err := parseWeekFlag(week)
	if err != nil {
		return "", err
	}
	rows, err := app.Allocations.ListWeek(ctx, personID, weekStart)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, r := range rows {
		if strings.HasPrefix(r.ID, input) {
			matches = append(matches, r.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("allocation not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("allocation ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
