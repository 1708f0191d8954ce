package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jask/fieldops/internal/database/repository"
)

// SeedDefaults loads the embedded mock roster into a fresh database. On an
// existing database it only moves the GPS pings back up to the present.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM workers`).Scan(&count); err != nil {
		return fmt.Errorf("count workers: %w", err)
	}
	roster, err := LoadRoster()
	if err != nil {
		return err
	}
	return WithTx(ctx, db, func(tx *sql.Tx) error {
		if count > 0 {
			return ReanchorGPS(ctx, tx, roster, Now())
		}
		return SeedRoster(ctx, tx, roster, Now())
	})
}

// ReanchorGPS shifts seeded GPS logs forward so the newest one is as recent
// as the fixture says it should be at now. Logs already that recent are left
// alone.
func ReanchorGPS(ctx context.Context, db repository.DBTX, roster Roster, now time.Time) error {
	freshest := -1
	for _, w := range roster.Workers {
		for _, g := range w.GPS {
			if freshest < 0 || g.MinutesAgo < freshest {
				freshest = g.MinutesAgo
			}
		}
	}
	if freshest < 0 {
		return nil
	}
	gps := repository.NewGPSRepo(db)
	logs, err := gps.List(ctx, repository.GPSFilters{})
	if err != nil {
		return fmt.Errorf("list gps logs: %w", err)
	}
	if len(logs) == 0 {
		return nil
	}
	lag := now.Add(-time.Duration(freshest) * time.Minute).Sub(logs[0].LoggedAt)
	if lag < time.Minute {
		return nil
	}
	if _, err := gps.Shift(ctx, lag.Truncate(time.Second)); err != nil {
		return fmt.Errorf("reanchor gps: %w", err)
	}
	return nil
}

func stableID(kind string, parts ...string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(kind+":"+strings.Join(parts, ":"))).String()
}

// SeedRoster writes roster through db. GPS timestamps are placed relative to now.
func SeedRoster(ctx context.Context, db repository.DBTX, roster Roster, now time.Time) error {
	workers := repository.NewWorkerRepo(db)
	attendance := repository.NewAttendanceRepo(db)
	visits := repository.NewVisitRepo(db)
	orders := repository.NewOrderRepo(db)
	gps := repository.NewGPSRepo(db)

	teamIDs := make(map[string]string, len(roster.Teams))
	for _, t := range roster.Teams {
		id := stableID("team", t.Name)
		if err := workers.InsertTeam(ctx, repository.Team{ID: id, Name: t.Name}); err != nil {
			return fmt.Errorf("seed team %s: %w", t.Name, err)
		}
		teamIDs[t.Name] = id
	}

	for _, fw := range roster.Workers {
		w := repository.Worker{
			ID:           stableID("worker", fw.Name),
			Name:         fw.Name,
			Phone:        fw.Phone,
			TeamID:       teamIDs[fw.Team],
			TodayStatus:  fw.TodayStatus,
			State:        fw.State,
			LastSeen:     fw.LastSeen,
			LastLocation: fw.LastLocation,
			KmsMTD:       fw.KmsMTD,
			SalaryMTD:    fw.SalaryMTD,
		}
		if err := workers.Insert(ctx, w); err != nil {
			return fmt.Errorf("seed worker %s: %w", fw.Name, err)
		}
		for i, code := range strings.Fields(fw.Attendance) {
			day := i + 1
			in, out := shiftTimes(code)
			d := repository.AttendanceDay{
				ID:       stableID("attendance", fw.Name, fmt.Sprint(day)),
				WorkerID: w.ID,
				Day:      day,
				Status:   strings.ToUpper(code),
				InTime:   in,
				OutTime:  out,
			}
			if err := attendance.Insert(ctx, d); err != nil {
				return fmt.Errorf("seed attendance %s day %d: %w", fw.Name, day, err)
			}
		}
		for i, fv := range fw.Visits {
			v := repository.Visit{
				ID:       stableID("visit", fw.Name, fmt.Sprint(i)),
				WorkerID: w.ID,
				School:   fv.School,
				Samples:  fv.Samples,
				Status:   fv.Status,
				Date:     fv.Date,
			}
			if err := visits.Insert(ctx, v); err != nil {
				return fmt.Errorf("seed visit %s: %w", fw.Name, err)
			}
		}
		for i, fo := range fw.Orders {
			o := repository.Order{
				ID:       stableID("order", fw.Name, fmt.Sprint(i)),
				WorkerID: w.ID,
				School:   fo.School,
				Quantity: fo.Quantity,
				Payment:  fo.Payment,
				Status:   fo.Status,
				Date:     fo.Date,
			}
			if err := orders.Insert(ctx, o); err != nil {
				return fmt.Errorf("seed order %s: %w", fw.Name, err)
			}
		}
		for i, fg := range fw.GPS {
			g := repository.GPSLog{
				ID:       stableID("gps", fw.Name, fmt.Sprint(i)),
				WorkerID: w.ID,
				LoggedAt: now.Add(-time.Duration(fg.MinutesAgo) * time.Minute),
				Location: fg.Location,
				Kms:      fg.Kms,
				Source:   fg.Source,
			}
			if err := gps.Insert(ctx, g); err != nil {
				return fmt.Errorf("seed gps %s: %w", fw.Name, err)
			}
		}
	}
	return nil
}

func shiftTimes(code string) (in, out string) {
	switch strings.ToUpper(code) {
	case "P":
		return "09:00", "17:00"
	case "H":
		return "09:00", "13:00"
	default:
		return "", ""
	}
}
