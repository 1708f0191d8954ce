package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jask/fieldops/internal/database"
	"github.com/jask/fieldops/internal/database/repository"
)

// AttendanceTally counts a month of attendance codes.
type AttendanceTally struct {
	Present int
	Absent  int
	HalfDay int
	Leave   int
	Off     int
}

// WorkerDetail is everything the detail screen shows for one worker.
type WorkerDetail struct {
	Worker     repository.Worker
	Attendance []repository.AttendanceDay
	Tally      AttendanceTally
	Visits     []repository.Visit
	Orders     []repository.Order
}

// DetailService loads one worker with their month of activity.
type DetailService struct {
	Workers    *repository.WorkerRepo
	Attendance *repository.AttendanceRepo
	Visits     *repository.VisitRepo
	Orders     *repository.OrderRepo
}

// Load returns repository.ErrNotFound (wrapped) for an unknown id.
func (s *DetailService) Load(ctx context.Context, workerID string) (WorkerDetail, error) {
	w, err := s.Workers.Get(ctx, workerID)
	if err != nil {
		return WorkerDetail{}, err
	}
	days, err := s.Attendance.ListMonth(ctx, workerID)
	if err != nil {
		return WorkerDetail{}, fmt.Errorf("attendance: %w", err)
	}
	visits, err := s.Visits.ListByWorker(ctx, workerID)
	if err != nil {
		return WorkerDetail{}, fmt.Errorf("visits: %w", err)
	}
	orders, err := s.Orders.ListByWorker(ctx, workerID)
	if err != nil {
		return WorkerDetail{}, fmt.Errorf("orders: %w", err)
	}
	return WorkerDetail{
		Worker:     w,
		Attendance: days,
		Tally:      tally(days),
		Visits:     visits,
		Orders:     orders,
	}, nil
}

func tally(days []repository.AttendanceDay) AttendanceTally {
	var t AttendanceTally
	for _, d := range days {
		switch d.Status {
		case "P":
			t.Present++
		case "A":
			t.Absent++
		case "H":
			t.HalfDay++
		case "L":
			t.Leave++
		case "OFF":
			t.Off++
		}
	}
	return t
}

// Range is a GPS log time window ending now.
type Range string

const (
	RangeToday Range = "today"
	RangeWeek  Range = "week"
	RangeMonth Range = "month"
)

// Ranges lists the windows in cycle order.
func Ranges() []Range { return []Range{RangeToday, RangeWeek, RangeMonth} }

func (r Range) Label() string {
	switch r {
	case RangeWeek:
		return "This week"
	case RangeMonth:
		return "This month"
	default:
		return "Today"
	}
}

func (r Range) window() time.Duration {
	switch r {
	case RangeWeek:
		return 7 * 24 * time.Hour
	case RangeMonth:
		return 30 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

// GPSQuery selects GPS logs. An empty WorkerID means every worker.
type GPSQuery struct {
	WorkerID string
	Range    Range
}

// GPSService lists location pings within a rolling window.
type GPSService struct {
	GPS *repository.GPSRepo
	Now func() time.Time
}

func (s *GPSService) Logs(ctx context.Context, q GPSQuery) ([]repository.GPSLog, error) {
	now := database.Now
	if s.Now != nil {
		now = s.Now
	}
	since := now().Add(-q.Range.window()).UTC().Truncate(time.Second)
	logs, err := s.GPS.List(ctx, repository.GPSFilters{WorkerID: q.WorkerID, Since: since})
	if err != nil {
		return nil, fmt.Errorf("gps logs: %w", err)
	}
	return logs, nil
}
