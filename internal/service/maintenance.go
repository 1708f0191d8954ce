package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jask/fieldops/internal/database"
	"github.com/jask/fieldops/internal/logging"
)

// MaintenanceService houses destructive actions surfaced through the TUI.
type MaintenanceService struct {
	DB     *sql.DB
	Logger *slog.Logger
}

// Reset wipes the roster and reseeds the embedded fixture. The schema is left
// intact so the app can keep running.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("maintenance: db not configured")
	}
	roster, err := database.LoadRoster()
	if err != nil {
		return err
	}
	if err := database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		tables := []string{
			"gps_logs",
			"orders",
			"visits",
			"attendance",
			"workers",
			"teams",
		}
		for _, t := range tables {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+t); err != nil {
				return fmt.Errorf("reset table %s: %w", t, err)
			}
		}
		return database.SeedRoster(ctx, tx, roster, database.Now())
	}); err != nil {
		return err
	}
	_, _ = s.DB.ExecContext(ctx, "VACUUM")
	logging.OrDefault(s.Logger).Info("demo data reset", "workers", len(roster.Workers))
	return nil
}
