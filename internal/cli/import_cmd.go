package cli

import (
	"fmt"

	"github.com/alexanderramin/timesheet/internal/cli/formatter"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/export"
	"github.com/alexanderramin/timesheet/internal/repository"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Import people and allocation rows from a JSON file",
		Long: `Import a JSON document of the form {"people": [...], "allocations": [...]}.
Field aliases such as ra_hours/hours and proj_id/project_number are accepted.
Every person/week in the file is replaced wholesale. Nothing is stored when
any record fails validation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatImportResult(result))
			return nil
		},
	}
}

func newOrgCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "org",
		Short: "Manage the people directory",
	}

	cmd.AddCommand(
		newOrgImportCmd(app),
		newOrgListCmd(app),
		newOrgSetCmd(app),
		newOrgRemoveCmd(app),
	)

	return cmd
}

func newOrgImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <org.yaml>",
		Short: "Load studios, managers and people from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.People.ImportOrg(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatOrgImport(result))
			return nil
		},
	}
}

func newOrgListCmd(app *App) *cobra.Command {
	var filter repository.PersonFilter

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List people in the directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			people, err := app.People.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPersonList(people))
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.Studio, "studio", "", "Only people in this studio")
	cmd.Flags().StringVar(&filter.Manager, "manager", "", "Only people under this group manager")
	return cmd
}

func newOrgSetCmd(app *App) *cobra.Command {
	var name, email, studio, manager string
	var hours float64

	cmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Create or update a person",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p := &domain.Person{ID: args[0], ScheduledHours: domain.DefaultScheduledHours}
			if existing, err := app.People.Get(ctx, args[0]); err == nil {
				p = existing
			}

			flags := cmd.Flags()
			if flags.Changed("name") {
				p.Name = name
			}
			if flags.Changed("email") {
				p.Email = email
			}
			if flags.Changed("studio") {
				p.Studio = studio
			}
			if flags.Changed("manager") {
				p.Manager = manager
			}
			if flags.Changed("hours") {
				p.ScheduledHours = hours
			}

			if err := app.People.Upsert(ctx, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%s) in %s under %s, %s h/week\n",
				p.Name, p.ID, p.StudioLabel(), p.ManagerLabel(), formatter.Hours(p.EffectiveScheduledHours()))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&studio, "studio", "", "Studio")
	cmd.Flags().StringVar(&manager, "manager", "", "Group manager")
	cmd.Flags().Float64Var(&hours, "hours", domain.DefaultScheduledHours, "Scheduled hours per week")
	return cmd
}

func newOrgRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <person>",
		Aliases: []string{"remove"},
		Short:   "Remove a person and all of their rows",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolvePersonID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.People.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", id)
			return nil
		},
	}
}

func newExportCmd(app *App) *cobra.Command {
	var flags reportFlags

	cmd := &cobra.Command{
		Use:   "export <file.xlsx>",
		Short: "Write the company, studio, people and project reports to a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			req, err := flags.request()
			if err != nil {
				return err
			}

			company, err := app.Reports.Company(ctx, req)
			if err != nil {
				return err
			}
			projects, err := app.Reports.Projects(ctx, req)
			if err != nil {
				return err
			}
			if err := export.WriteFile(args[0], company, projects); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s)\n", args[0], formatter.WeekLabel(company.Week, company.Weeks))
			return nil
		},
	}

	flags.bind(cmd)
	return cmd
}
