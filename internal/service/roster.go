package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"

	"github.com/jask/fieldops/internal/database/repository"
	"github.com/jask/fieldops/internal/logging"
	"github.com/jask/fieldops/internal/table"
)

// ErrUnknownSortColumn is returned when a query sorts by a column the roster
// does not know.
var ErrUnknownSortColumn = errors.New("unknown sort column")

// Sortable roster columns.
const (
	SortName     = "name"
	SortStatus   = "status"
	SortLastSeen = "lastSeen"
	SortKms      = "kms"
	SortSalary   = "salary"
)

// SortColumns lists the columns Page can sort by.
func SortColumns() []string {
	return []string{SortName, SortStatus, SortLastSeen, SortKms, SortSalary}
}

// RosterQuery describes one page of the worker list.
type RosterQuery struct {
	Search   string
	Status   string
	Team     string
	Sort     table.SortState
	Page     int
	PageSize int
}

// RosterPage is the slice of workers for one page plus the clamped paging
// state.
type RosterPage struct {
	Workers    []repository.Worker
	Page       int
	TotalPages int
	Total      int
}

// RosterService filters, sorts and paginates workers for the table.
type RosterService struct {
	Workers *repository.WorkerRepo
	Logger  *slog.Logger
}

// Page returns the requested page. The page number is clamped to
// [1, TotalPages] and TotalPages is never below 1.
func (s *RosterService) Page(ctx context.Context, q RosterQuery) (RosterPage, error) {
	if q.PageSize < 1 {
		return RosterPage{}, fmt.Errorf("page size %d: must be positive", q.PageSize)
	}
	less, err := sorter(q.Sort)
	if err != nil {
		return RosterPage{}, err
	}
	all, err := s.Workers.List(ctx, repository.WorkerFilters{Status: q.Status, Team: q.Team})
	if err != nil {
		return RosterPage{}, fmt.Errorf("list workers: %w", err)
	}

	matched := all[:0]
	for _, w := range all {
		if MatchWorker(q.Search, w) {
			matched = append(matched, w)
		}
	}
	if less != nil {
		slices.SortStableFunc(matched, less)
	}

	total := len(matched)
	pages := max(1, (total+q.PageSize-1)/q.PageSize)
	page := min(max(q.Page, 1), pages)
	start := min((page-1)*q.PageSize, total)
	end := min(start+q.PageSize, total)

	logging.OrDefault(s.Logger).Debug("roster page",
		"search", q.Search, "status", q.Status, "team", q.Team,
		"sort", q.Sort.Column, "dir", q.Sort.Direction.String(),
		"page", page, "pages", pages, "total", total)

	return RosterPage{
		Workers:    slices.Clone(matched[start:end]),
		Page:       page,
		TotalPages: pages,
		Total:      total,
	}, nil
}

// Teams lists team names for the team filter.
func (s *RosterService) Teams(ctx context.Context) ([]string, error) {
	teams, err := s.Workers.Teams(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(teams))
	for _, t := range teams {
		names = append(names, t.Name)
	}
	return names, nil
}

// MarkStatus applies a bulk attendance change and returns how many workers
// changed.
func (s *RosterService) MarkStatus(ctx context.Context, ids []string, status string) (int64, error) {
	switch status {
	case repository.StatusPresent, repository.StatusAbsent:
	default:
		return 0, fmt.Errorf("bulk mark %q: only present or absent", status)
	}
	n, err := s.Workers.SetStatus(ctx, ids, status)
	if err != nil {
		return 0, fmt.Errorf("bulk mark %s: %w", status, err)
	}
	logging.OrDefault(s.Logger).Info("bulk mark", "status", status, "requested", len(ids), "updated", n)
	return n, nil
}

// ToggleSort returns the next sort state after a header press. A new column
// starts ascending and the same column flips direction.
func ToggleSort(cur table.SortState, key string) table.SortState {
	if cur.Column == key {
		if cur.Direction == table.Asc {
			return table.SortState{Column: key, Direction: table.Desc}
		}
		return table.SortState{Column: key, Direction: table.Asc}
	}
	return table.SortState{Column: key, Direction: table.Asc}
}

// MatchWorker reports whether a worker matches a search query. An empty query
// matches everyone. A substring of the name or phone matches, and so does a
// name token within a small edit distance of the query.
func MatchWorker(query string, w repository.Worker) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	name := strings.ToLower(w.Name)
	if strings.Contains(name, q) {
		return true
	}
	if digits := digitsOnly(q); digits != "" && len(digits) == len(strings.ReplaceAll(q, " ", "")) {
		if strings.Contains(digitsOnly(w.Phone), digits) {
			return true
		}
	}
	if strings.Contains(w.Phone, q) {
		return true
	}

	threshold := min(2, len(q)/4)
	if threshold == 0 {
		return false
	}
	candidates := append(strings.Fields(name), name)
	for _, c := range candidates {
		if levenshtein.ComputeDistance(q, c) <= threshold {
			return true
		}
	}
	return false
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

type workerLess func(a, b repository.Worker) int

func sorter(s table.SortState) (workerLess, error) {
	var by workerLess
	switch s.Column {
	case "":
		return nil, nil
	case SortName:
		by = func(a, b repository.Worker) int { return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)) }
	case SortStatus:
		by = func(a, b repository.Worker) int { return cmp.Compare(a.TodayStatus, b.TodayStatus) }
	case SortLastSeen:
		by = func(a, b repository.Worker) int { return cmp.Compare(lastSeenRank(a.LastSeen), lastSeenRank(b.LastSeen)) }
	case SortKms:
		by = func(a, b repository.Worker) int { return cmp.Compare(a.KmsMTD, b.KmsMTD) }
	case SortSalary:
		by = func(a, b repository.Worker) int { return cmp.Compare(a.SalaryMTD, b.SalaryMTD) }
	default:
		return nil, fmt.Errorf("sort by %q: %w", s.Column, ErrUnknownSortColumn)
	}
	if s.Direction == table.Desc {
		return func(a, b repository.Worker) int { return by(b, a) }, nil
	}
	return by, nil
}

// lastSeenRank orders "last seen" labels oldest first. Labels look like
// "10:15 AM", "Yesterday 5:30 PM" or "2 days ago".
func lastSeenRank(label string) int {
	const day = 24 * 60
	s := strings.TrimSpace(label)
	daysAgo := 0
	switch {
	case strings.HasPrefix(s, "Yesterday"):
		daysAgo = 1
		s = strings.TrimSpace(strings.TrimPrefix(s, "Yesterday"))
	case strings.HasSuffix(s, "days ago"), strings.HasSuffix(s, "day ago"):
		n, err := strconv.Atoi(strings.Fields(s)[0])
		if err != nil {
			n = 1
		}
		return -n * day
	}
	t, err := time.Parse("3:04 PM", s)
	if err != nil {
		return -(daysAgo + 1) * day
	}
	return -daysAgo*day + t.Hour()*60 + t.Minute()
}
