package repository

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// AttendanceRepo handles the month attendance calendar.
type AttendanceRepo struct {
	db DBTX
}

func NewAttendanceRepo(db DBTX) *AttendanceRepo { return &AttendanceRepo{db: db} }

func (r *AttendanceRepo) Insert(ctx context.Context, d AttendanceDay) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO attendance(id, worker_id, day, status, in_time, out_time)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(worker_id, day) DO UPDATE SET
	 status=excluded.status,
	 in_time=excluded.in_time,
	 out_time=excluded.out_time;
	`, d.ID, d.WorkerID, d.Day, d.Status, d.InTime, d.OutTime)
	return err
}

func (r *AttendanceRepo) ListMonth(ctx context.Context, workerID string) ([]AttendanceDay, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, worker_id, day, status, in_time, out_time FROM attendance WHERE worker_id = ? ORDER BY day`, workerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []AttendanceDay
	for rows.Next() {
		var d AttendanceDay
		if err := rows.Scan(&d.ID, &d.WorkerID, &d.Day, &d.Status, &d.InTime, &d.OutTime); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// VisitRepo handles school visits.
type VisitRepo struct {
	db DBTX
}

func NewVisitRepo(db DBTX) *VisitRepo { return &VisitRepo{db: db} }

func (r *VisitRepo) Insert(ctx context.Context, v Visit) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO visits(id, worker_id, school, samples, status, visit_date) VALUES (?, ?, ?, ?, ?, ?)`,
		v.ID, v.WorkerID, v.School, v.Samples, v.Status, v.Date)
	return err
}

func (r *VisitRepo) ListByWorker(ctx context.Context, workerID string) ([]Visit, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, worker_id, school, samples, status, visit_date FROM visits WHERE worker_id = ? ORDER BY rowid`, workerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Visit
	for rows.Next() {
		var v Visit
		if err := rows.Scan(&v.ID, &v.WorkerID, &v.School, &v.Samples, &v.Status, &v.Date); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// OrderRepo handles book orders.
type OrderRepo struct {
	db DBTX
}

func NewOrderRepo(db DBTX) *OrderRepo { return &OrderRepo{db: db} }

func (r *OrderRepo) Insert(ctx context.Context, o Order) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO orders(id, worker_id, school, quantity, payment, status, order_date) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.WorkerID, o.School, o.Quantity, o.Payment, o.Status, o.Date)
	return err
}

func (r *OrderRepo) ListByWorker(ctx context.Context, workerID string) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, worker_id, school, quantity, payment, status, order_date FROM orders WHERE worker_id = ? ORDER BY rowid`, workerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.WorkerID, &o.School, &o.Quantity, &o.Payment, &o.Status, &o.Date); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// GPSFilters defines GPS log filters. Zero values do not filter.
type GPSFilters struct {
	WorkerID string
	Since    time.Time
}

// GPSRepo handles location pings.
type GPSRepo struct {
	db DBTX
}

func NewGPSRepo(db DBTX) *GPSRepo { return &GPSRepo{db: db} }

func (r *GPSRepo) Insert(ctx context.Context, g GPSLog) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO gps_logs(id, worker_id, logged_at, location, kms, source) VALUES (?, ?, ?, ?, ?, ?)`,
		g.ID, g.WorkerID, g.LoggedAt.UTC(), g.Location, g.Kms, g.Source)
	return err
}

// List returns logs newest first.
func (r *GPSRepo) List(ctx context.Context, f GPSFilters) ([]GPSLog, error) {
	var where []string
	var args []any
	if f.WorkerID != "" {
		where = append(where, "g.worker_id = ?")
		args = append(args, f.WorkerID)
	}
	if !f.Since.IsZero() {
		where = append(where, "g.logged_at >= ?")
		args = append(args, f.Since.UTC())
	}
	query := `SELECT g.id, g.worker_id, w.name, g.logged_at, g.location, g.kms, g.source FROM gps_logs g JOIN workers w ON w.id = g.worker_id`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY g.logged_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []GPSLog
	for rows.Next() {
		var g GPSLog
		if err := rows.Scan(&g.ID, &g.WorkerID, &g.WorkerName, &g.LoggedAt, &g.Location, &g.Kms, &g.Source); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// Shift moves every log forward by d and returns how many moved.
func (r *GPSRepo) Shift(ctx context.Context, d time.Duration) (int, error) {
	logs, err := r.List(ctx, GPSFilters{})
	if err != nil {
		return 0, err
	}
	for _, g := range logs {
		if _, err := r.db.ExecContext(ctx, `UPDATE gps_logs SET logged_at = ? WHERE id = ?`, g.LoggedAt.Add(d).UTC(), g.ID); err != nil {
			return 0, fmt.Errorf("shift gps log %s: %w", g.ID, err)
		}
	}
	return len(logs), nil
}
