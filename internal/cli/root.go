package cli

import (
	"github.com/alexanderramin/timesheet/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	People      service.PeopleService
	Allocations service.AllocationService
	Import      service.ImportService
	Reports     service.ReportService

	// IsInteractive reports whether stdin is a terminal. Forms and the
	// dashboard refuse to start when it returns false.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "timesheet" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "timesheet",
		Short:         "Weekly allocation and Ratio B dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newPersonCmd(app),
		newPeopleCmd(app),
		newStudioCmd(app),
		newManagerCmd(app),
		newCompanyCmd(app),
		newProjectsCmd(app),
		newAllocCmd(app),
		newImportCmd(app),
		newOrgCmd(app),
		newExportCmd(app),
		newDashboardCmd(app),
	)

	return root
}
