package cli

import (
	"fmt"

	"github.com/alexanderramin/timesheet/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newPersonCmd(app *App) *cobra.Command {
	var flags reportFlags

	cmd := &cobra.Command{
		Use:   "person <id|email|name>",
		Short: "Show one person's week: categories, Ratio B and rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			req, err := flags.request()
			if err != nil {
				return err
			}
			req.PersonID, err = resolvePersonID(ctx, app, args[0])
			if err != nil {
				return err
			}

			resp, err := app.Reports.PersonWeek(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPersonWeek(resp))
			return nil
		},
	}

	flags.bind(cmd)
	return cmd
}

func newPeopleCmd(app *App) *cobra.Command {
	var flags reportFlags
	var studio, manager string

	cmd := &cobra.Command{
		Use:   "people",
		Short: "Per-person dashboard for the whole directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request()
			if err != nil {
				return err
			}
			req.Studio = studio
			req.Manager = manager

			resp, err := app.Reports.People(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPeople(resp))
			return nil
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVar(&studio, "studio", "", "Only people in this studio")
	cmd.Flags().StringVar(&manager, "manager", "", "Only people under this group manager")
	return cmd
}

func newStudioCmd(app *App) *cobra.Command {
	var flags reportFlags
	var manager string

	cmd := &cobra.Command{
		Use:   "studio",
		Short: "Studio totals and Ratio B",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request()
			if err != nil {
				return err
			}
			req.Manager = manager

			resp, err := app.Reports.Studios(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStudios(resp))
			return nil
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVar(&manager, "manager", "", "Only studios under this group manager")
	return cmd
}

func newManagerCmd(app *App) *cobra.Command {
	var flags reportFlags

	cmd := &cobra.Command{
		Use:   "manager <name>",
		Short: "Group manager rollup across their studios",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request()
			if err != nil {
				return err
			}
			req.Manager = args[0]

			resp, err := app.Reports.Manager(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatManager(resp))
			return nil
		},
	}

	flags.bind(cmd)
	return cmd
}

func newCompanyCmd(app *App) *cobra.Command {
	var flags reportFlags

	cmd := &cobra.Command{
		Use:   "company",
		Short: "Company-wide hierarchy of managers, studios and people",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request()
			if err != nil {
				return err
			}

			resp, err := app.Reports.Company(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCompany(resp))
			return nil
		},
	}

	flags.bind(cmd)
	return cmd
}

func newProjectsCmd(app *App) *cobra.Command {
	var flags reportFlags
	var pm string

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Direct hours regrouped by project",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request()
			if err != nil {
				return err
			}
			req.PM = pm

			resp, err := app.Reports.Projects(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjects(resp))
			return nil
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVar(&pm, "pm", "", "Only projects run by this project manager")
	return cmd
}
