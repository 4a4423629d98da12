package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alexanderramin/timesheet/internal/cli"
	"github.com/alexanderramin/timesheet/internal/cli/formatter"
	"github.com/alexanderramin/timesheet/internal/config"
	"github.com/alexanderramin/timesheet/internal/db"
	"github.com/alexanderramin/timesheet/internal/repository"
	"github.com/alexanderramin/timesheet/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.LoadConfig()
	if cfg.DBPath == "" {
		return fmt.Errorf("no database path: set TIMESHEET_DB")
	}
	formatter.SetLocale(cfg.Locale)

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	personRepo := repository.NewSQLitePersonRepo(database)
	allocRepo := repository.NewSQLiteAllocationRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Snapshots are shared so every write invalidates what reports read.
	snapshots := service.NewSnapshotCache(cfg.CacheTTL)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogUseCases {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	// Wire services
	app := &cli.App{
		People:      service.NewPeopleService(personRepo, uow, snapshots, cfg.DefaultScheduledHours, observer),
		Allocations: service.NewAllocationService(allocRepo, personRepo, uow, snapshots, observer),
		Import:      service.NewImportService(uow, snapshots, observer),
		Reports:     service.NewReportService(personRepo, allocRepo, snapshots, cfg.LWOPMode, observer),
	}

	// Detect interactive terminal for forms and the dashboard.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}
