package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a lookup by id matches nothing.
var ErrNotFound = errors.New("not found")

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Team represents a team row.
type Team struct {
	ID   string
	Name string
}

// Worker represents a worker row joined with its team name.
type Worker struct {
	ID           string
	Name         string
	Phone        string
	TeamID       string
	Team         string
	TodayStatus  string
	State        string
	LastSeen     string
	LastLocation string
	KmsMTD       float64
	SalaryMTD    int64
}

// AttendanceDay is one day of a worker's current month. Status is an
// attendance code: P, A, H, L or OFF.
type AttendanceDay struct {
	ID       string
	WorkerID string
	Day      int
	Status   string
	InTime   string
	OutTime  string
}

// Visit represents a school visit.
type Visit struct {
	ID       string
	WorkerID string
	School   string
	Samples  int
	Status   string
	Date     string
}

// Order represents a book order and how it was paid.
type Order struct {
	ID       string
	WorkerID string
	School   string
	Quantity int
	Payment  string
	Status   string
	Date     string
}

// GPSLog represents one location ping.
type GPSLog struct {
	ID         string
	WorkerID   string
	WorkerName string
	LoggedAt   time.Time
	Location   string
	Kms        float64
	Source     string
}
