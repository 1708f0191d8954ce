package tui

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/fieldops/internal/prefs"
	"github.com/jask/fieldops/internal/service"
	"github.com/jask/fieldops/internal/table"
)

// restorePrefs applies remembered view choices. Values that no longer make
// sense are dropped.
func (a *App) restorePrefs() {
	store := a.services.Prefs
	if store == nil {
		return
	}
	p, err := store.Load()
	if err != nil {
		a.log.Warn("load prefs", "err", err)
		return
	}
	if slices.Contains(service.SortColumns(), p.WorkerSort) {
		dir := table.Asc
		if p.WorkerSortDesc {
			dir = table.Desc
		}
		a.workers.query.Sort = table.SortState{Column: p.WorkerSort, Direction: dir}
	}
	if slices.Contains(statusCycle, p.StatusFilter) {
		a.workers.query.Status = p.StatusFilter
	}
	a.workers.query.Team = p.TeamFilter
	if slices.Contains(service.Ranges(), service.Range(p.GPSRange)) {
		a.gps.rng = service.Range(p.GPSRange)
	}
}

func (a *App) currentPrefs() prefs.Prefs {
	q := a.workers.query
	return prefs.Prefs{
		WorkerSort:     q.Sort.Column,
		WorkerSortDesc: q.Sort.Direction == table.Desc,
		StatusFilter:   q.Status,
		TeamFilter:     q.Team,
		GPSRange:       string(a.gps.rng),
	}
}

// savePrefs writes the current view choices in the background.
func (a *App) savePrefs() {
	store := a.services.Prefs
	if store == nil {
		return
	}
	p, log, stamp := a.currentPrefs(), a.log, store.Stamp()
	a.queue(func() tea.Msg {
		if _, err := store.SaveStamped(stamp, p); err != nil {
			log.Warn("save prefs", "err", err)
		}
		return nil
	})
}
