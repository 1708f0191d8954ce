package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/fieldops/internal/config"
	"github.com/jask/fieldops/internal/database"
	"github.com/jask/fieldops/internal/database/repository"
	"github.com/jask/fieldops/internal/logging"
	"github.com/jask/fieldops/internal/prefs"
	"github.com/jask/fieldops/internal/service"
	"github.com/jask/fieldops/internal/tui"
)

func main() {
	reset := flag.Bool("reset", false, "wipe and reseed the demo roster before starting")
	startupCheck := flag.Bool("startup-check", false, "open the database, print the dashboard summary and exit")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, closeLog, err := logging.Setup(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		log.Fatalf("log: %v", err)
	}
	defer closeLog()
	slog.SetDefault(logger)

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := database.SeedDefaults(ctx, db); err != nil {
		log.Fatalf("seed defaults: %v", err)
	}

	services := newServices(db, logger)
	if *reset {
		if err := services.Maintenance.Reset(ctx); err != nil {
			log.Fatalf("reset: %v", err)
		}
	}
	if *startupCheck {
		if err := runStartupCheck(ctx, os.Stdout, cfg, services); err != nil {
			fmt.Fprintln(os.Stderr, "startup check failed:", err)
			os.Exit(1)
		}
		return
	}

	if store, err := prefs.DefaultStore(); err != nil {
		logger.Warn("view prefs disabled", "err", err)
	} else {
		services.Prefs = store
	}

	loc, err := time.LoadLocation(cfg.Org.Timezone)
	if err != nil {
		logger.Warn("using local timezone", "timezone", cfg.Org.Timezone, "err", err)
		loc = time.Local
	}

	logger.Info("starting", "db", cfg.Database.Path, "breakpoint", cfg.UI.Breakpoint, "units_per_cell", cfg.UI.UnitsPerCell)
	p := tea.NewProgram(tui.New(ctx, cfg, services, loc, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
}

func newServices(db *sql.DB, logger *slog.Logger) tui.Services {
	workers := repository.NewWorkerRepo(db)
	return tui.Services{
		Roster:    &service.RosterService{Workers: workers, Logger: logger},
		Dashboard: &service.DashboardService{Workers: workers},
		Detail: &service.DetailService{
			Workers:    workers,
			Attendance: repository.NewAttendanceRepo(db),
			Visits:     repository.NewVisitRepo(db),
			Orders:     repository.NewOrderRepo(db),
		},
		GPS:         &service.GPSService{GPS: repository.NewGPSRepo(db)},
		Export:      &service.ExportService{Logger: logger},
		Maintenance: &service.MaintenanceService{DB: db, Logger: logger},
		SaveConfig:  config.Save,
	}
}

func runStartupCheck(ctx context.Context, w io.Writer, cfg config.Config, services tui.Services) error {
	s, err := services.Dashboard.Summary(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "db: %s\n", cfg.Database.Path)
	fmt.Fprintf(w, "workers: %d (present %d, absent %d, late %d, half day %d, leave %d)\n",
		s.Workers, s.Present, s.Absent, s.Late, s.HalfDay, s.OnLeave)
	fmt.Fprintf(w, "kms mtd: %s\n", service.FormatKms(s.TotalKms))
	fmt.Fprintf(w, "salary mtd: %s\n", service.FormatMoney(cfg.UI.CurrencySymbol, s.SalaryMTD))
	return nil
}
