package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Worker status filters.
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
)

// WorkerFilters defines list filters. Empty fields do not filter.
type WorkerFilters struct {
	// Status is present or absent (today's attendance) or late (worker state).
	Status string
	Team   string
}

// WorkerRepo handles workers and teams.
type WorkerRepo struct {
	db DBTX
}

func NewWorkerRepo(db DBTX) *WorkerRepo { return &WorkerRepo{db: db} }

func (r *WorkerRepo) InsertTeam(ctx context.Context, t Team) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO teams(id, name) VALUES (?, ?) ON CONFLICT(id) DO UPDATE SET name=excluded.name`, t.ID, t.Name)
	return err
}

func (r *WorkerRepo) Teams(ctx context.Context) ([]Team, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM teams ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Team
	for rows.Next() {
		var t Team
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *WorkerRepo) Insert(ctx context.Context, w Worker) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO workers(id, name, phone, team_id, today_status, state, last_seen, last_location, kms_mtd, salary_mtd, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP);
	`, w.ID, w.Name, w.Phone, w.TeamID, w.TodayStatus, w.State, w.LastSeen, w.LastLocation, w.KmsMTD, w.SalaryMTD)
	return err
}

const workerSelect = `SELECT w.id, w.name, w.phone, w.team_id, t.name, w.today_status, w.state, w.last_seen, w.last_location, w.kms_mtd, w.salary_mtd
FROM workers w JOIN teams t ON t.id = w.team_id`

func (r *WorkerRepo) List(ctx context.Context, f WorkerFilters) ([]Worker, error) {
	var where []string
	var args []any

	switch f.Status {
	case "":
	case StatusLate:
		where = append(where, "w.state = ?")
		args = append(args, StatusLate)
	case StatusPresent, StatusAbsent:
		where = append(where, "w.today_status = ?")
		args = append(args, f.Status)
	default:
		return nil, fmt.Errorf("unknown status filter %q", f.Status)
	}
	if f.Team != "" {
		where = append(where, "t.name = ?")
		args = append(args, f.Team)
	}

	query := workerSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY w.name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Worker
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *WorkerRepo) Get(ctx context.Context, id string) (Worker, error) {
	row := r.db.QueryRowContext(ctx, workerSelect+" WHERE w.id = ?", id)
	w, err := scanWorker(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Worker{}, fmt.Errorf("worker %s: %w", id, ErrNotFound)
	}
	return w, err
}

// SetStatus sets today's attendance status for every id and reports how many
// rows changed.
func (r *WorkerRepo) SetStatus(ctx context.Context, ids []string, status string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, 0, len(ids)+1)
	args = append(args, status)
	for _, id := range ids {
		args = append(args, id)
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE workers SET today_status = ?, updated_at=CURRENT_TIMESTAMP WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWorker(s scanner) (Worker, error) {
	var w Worker
	err := s.Scan(&w.ID, &w.Name, &w.Phone, &w.TeamID, &w.Team, &w.TodayStatus, &w.State,
		&w.LastSeen, &w.LastLocation, &w.KmsMTD, &w.SalaryMTD)
	return w, err
}
