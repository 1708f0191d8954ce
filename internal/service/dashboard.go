package service

import (
	"context"
	"fmt"
	"math"

	"github.com/jask/fieldops/internal/database/repository"
)

// TeamKms is the kilometres travelled this month by one team.
type TeamKms struct {
	Team string
	Kms  float64
}

// Summary holds the dashboard KPIs for today.
type Summary struct {
	Workers   int
	Present   int
	Absent    int
	Late      int
	HalfDay   int
	OnLeave   int
	Online    int
	TotalKms  float64
	SalaryMTD int64
	TeamKms   []TeamKms
}

// AttendanceRate is the share of workers present or on a half day, in
// percent.
func (s Summary) AttendanceRate() float64 {
	if s.Workers == 0 {
		return 0
	}
	return math.Round(float64(s.Present+s.HalfDay)*1000/float64(s.Workers)) / 10
}

// DashboardService aggregates the roster into KPI counts.
type DashboardService struct {
	Workers *repository.WorkerRepo
}

func (s *DashboardService) Summary(ctx context.Context) (Summary, error) {
	teams, err := s.Workers.Teams(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("list teams: %w", err)
	}
	workers, err := s.Workers.List(ctx, repository.WorkerFilters{})
	if err != nil {
		return Summary{}, fmt.Errorf("list workers: %w", err)
	}

	out := Summary{Workers: len(workers)}
	byTeam := make(map[string]float64, len(teams))
	for _, w := range workers {
		switch w.TodayStatus {
		case "present":
			out.Present++
		case "absent":
			out.Absent++
		case "half-day":
			out.HalfDay++
		case "leave":
			out.OnLeave++
		}
		switch w.State {
		case "late":
			out.Late++
			out.Online++
		case "online":
			out.Online++
		}
		out.TotalKms += w.KmsMTD
		out.SalaryMTD += w.SalaryMTD
		byTeam[w.Team] += w.KmsMTD
	}
	out.TotalKms = math.Round(out.TotalKms*10) / 10
	for _, t := range teams {
		out.TeamKms = append(out.TeamKms, TeamKms{Team: t.Name, Kms: math.Round(byTeam[t.Name]*10) / 10})
	}
	return out, nil
}
