package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/fieldops/internal/badge"
	"github.com/jask/fieldops/internal/database/repository"
	"github.com/jask/fieldops/internal/service"
	"github.com/jask/fieldops/internal/table"
	"github.com/jask/fieldops/internal/widgets"
)

// statusCycle is the order the status filter steps through.
var statusCycle = []string{"", repository.StatusPresent, repository.StatusAbsent, repository.StatusLate}

type workersState struct {
	query    service.RosterQuery
	page     service.RosterPage
	loading  bool
	err      error
	seq      int
	nav      tableNav
	selected map[string]bool
	teams    []string

	search    textinput.Model
	searching bool
}

func newWorkersState() workersState {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search name or phone"
	ti.CharLimit = 40
	ti.Width = 30
	return workersState{
		query:    service.RosterQuery{Page: 1},
		selected: map[string]bool{},
		search:   ti,
	}
}

var workerColumns = []table.Column{
	{Key: "sel", Title: "", Align: table.AlignCenter, WidthWeight: 0.4},
	{Key: service.SortName, Title: "Name", Sortable: true, WidthWeight: 2},
	{Key: "team", Title: "Team", WidthWeight: 1.6},
	{Key: service.SortStatus, Title: "Today", Sortable: true, Hint: table.HintBadge, WidthWeight: 1.3},
	{Key: "state", Title: "State", Hint: table.HintBadge, WidthWeight: 1.1},
	{Key: service.SortLastSeen, Title: "Last Seen", Sortable: true, WidthWeight: 1.5},
	{Key: "location", Title: "Location", WidthWeight: 1.6},
	{Key: service.SortKms, Title: "KMs", Sortable: true, Align: table.AlignRight, WidthWeight: 0.9},
	{Key: service.SortSalary, Title: "Salary MTD", Sortable: true, Align: table.AlignRight, WidthWeight: 1.3},
	{Key: "action", Title: "", Hint: table.HintAction, Align: table.AlignCenter, WidthWeight: 0.9},
}

func (a *App) workerRows() []table.Row {
	rows := make([]table.Row, 0, len(a.workers.page.Workers))
	for _, w := range a.workers.page.Workers {
		mark := "○"
		if a.workers.selected[w.ID] {
			mark = "●"
		}
		rows = append(rows, table.Row{
			"sel":                table.Text(mark),
			service.SortName:     table.Text(w.Name),
			"team":               table.Text(w.Team),
			service.SortStatus:   table.Text(badgeLabel(w.TodayStatus)),
			"state":              table.Text(badgeLabel(w.State)),
			service.SortLastSeen: table.Text(w.LastSeen),
			"location":           table.Text(w.LastLocation),
			service.SortKms:      table.Float(w.KmsMTD, 1),
			service.SortSalary:   table.Text(service.FormatMoney(a.cfg.UI.CurrencySymbol, w.SalaryMTD)),
			"action":             table.Text("View"),
		})
	}
	return rows
}

// badgeLabel turns a stored status into the label its badge shows. Unknown
// values pass through so the table can flag them.
func badgeLabel(raw string) string {
	v, err := badge.Parse(raw)
	if err != nil {
		return raw
	}
	return v.Label()
}

func (a *App) workersProps() table.Props {
	w := &a.workers
	return table.Props{
		Columns:      workerColumns,
		Rows:         a.workerRows(),
		Sort:         w.query.Sort,
		Pagination:   table.PaginationState{CurrentPage: w.page.Page, TotalPages: w.page.TotalPages},
		Loading:      w.loading,
		Error:        w.err != nil,
		EmptyMessage: "No workers found",
		Width:        a.logicalWidth(),
		Breakpoint:   a.cfg.UI.Breakpoint,
		Focus:        w.nav.focus(),
		Frame:        a.frame,
		OnSort: func(key string) {
			w.query.Sort = service.ToggleSort(w.query.Sort, key)
			w.query.Page = 1
			a.log.Info("sort", "screen", "workers", "column", key, "dir", w.query.Sort.Direction.String())
			a.savePrefs()
			a.loadWorkers()
		},
		OnPageChange: func(page int) {
			w.query.Page = page
			a.log.Info("page change", "screen", "workers", "page", page)
			a.loadWorkers()
		},
		OnRetry: func() {
			a.log.Info("retry", "screen", "workers")
			a.loadWorkers()
		},
	}
}

func (a *App) loadWorkers() {
	w := &a.workers
	w.seq++
	w.loading = true
	w.err = nil
	q := w.query
	q.PageSize = a.cfg.UI.PageSize
	seq, svc, ctx := w.seq, a.services.Roster, a.ctx
	a.queue(func() tea.Msg {
		page, err := svc.Page(ctx, q)
		return rosterMsg{seq: seq, page: page, err: err}
	})
	a.startShimmer()
}

func (a *App) loadTeams() {
	svc, ctx := a.services.Roster, a.ctx
	a.queue(func() tea.Msg {
		teams, err := svc.Teams(ctx)
		return teamsMsg{teams: teams, err: err}
	})
}

func (a *App) applyRoster(m rosterMsg) {
	w := &a.workers
	if m.seq != w.seq {
		return
	}
	w.loading = false
	if m.err != nil {
		w.err = m.err
		a.setError("load workers", m.err)
		return
	}
	a.clearError()
	w.page = m.page
	w.query.Page = m.page.Page
	w.nav.clampCursor(len(m.page.Workers))
}

func (a *App) workersAction(act Action) {
	w := &a.workers
	p := a.workersProps()
	if handleTableAction(act, p, &w.nav) {
		return
	}
	switch act {
	case actionActivate:
		if cur, ok := a.cursorWorker(); ok {
			a.openDetail(cur.ID)
		}
	case actionSearch:
		w.searching = true
		a.queue(w.search.Focus())
	case actionStatusFilter:
		w.query.Status = nextInCycle(statusCycle, w.query.Status)
		a.refilter()
		a.savePrefs()
	case actionTeamFilter:
		w.query.Team = nextInCycle(append([]string{""}, w.teams...), w.query.Team)
		a.refilter()
		a.savePrefs()
	case actionClearFilters:
		w.query.Search, w.query.Status, w.query.Team = "", "", ""
		w.search.SetValue("")
		a.refilter()
		a.savePrefs()
	case actionToggleSelect:
		if cur, ok := a.cursorWorker(); ok {
			if w.selected[cur.ID] {
				delete(w.selected, cur.ID)
			} else {
				w.selected[cur.ID] = true
			}
		}
	case actionMarkPresent:
		a.bulkMark(repository.StatusPresent)
	case actionMarkAbsent:
		a.bulkMark(repository.StatusAbsent)
	}
}

func (a *App) handleSearchKey(m tea.KeyMsg) {
	w := &a.workers
	if b := a.keys.Lookup(m.String(), scopeSearch); b != nil {
		switch b.Action {
		case actionConfirm:
			w.searching = false
			w.search.Blur()
			return
		case actionCancel:
			w.searching = false
			w.search.Blur()
			w.search.SetValue("")
			if w.query.Search != "" {
				w.query.Search = ""
				a.refilter()
			}
			return
		case actionQuit:
			if m.String() == "ctrl+c" {
				a.queue(tea.Quit)
				return
			}
		}
	}
	var cmd tea.Cmd
	w.search, cmd = w.search.Update(m)
	a.queue(cmd)
	if v := strings.TrimSpace(w.search.Value()); v != w.query.Search {
		w.query.Search = v
		a.refilter()
	}
}

// refilter restarts paging after a filter change.
func (a *App) refilter() {
	a.workers.query.Page = 1
	a.workers.nav.cursor = 0
	a.loadWorkers()
}

func (a *App) cursorWorker() (repository.Worker, bool) {
	ws := a.workers.page.Workers
	i := a.workers.nav.cursor
	if a.workers.loading || a.workers.err != nil || i < 0 || i >= len(ws) {
		return repository.Worker{}, false
	}
	return ws[i], true
}

func (a *App) bulkMark(status string) {
	ids := make([]string, 0, len(a.workers.selected))
	for id := range a.workers.selected {
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		a.showToast("Select workers with x first", widgets.ToastWarning)
		return
	}
	slices.Sort(ids)
	a.log.Info("bulk mark requested", "status", status, "workers", len(ids))
	svc, ctx := a.services.Roster, a.ctx
	a.queue(func() tea.Msg {
		n, err := svc.MarkStatus(ctx, ids, status)
		return bulkDoneMsg{status: status, updated: n, err: err}
	})
}

func (a *App) applyBulk(m bulkDoneMsg) {
	if m.err != nil {
		a.setError("bulk mark", m.err)
		a.showToast("Bulk update failed", widgets.ToastError)
		return
	}
	a.workers.selected = map[string]bool{}
	noun := "workers"
	if m.updated == 1 {
		noun = "worker"
	}
	a.showToast(fmt.Sprintf("Marked %d %s %s", m.updated, noun, m.status), widgets.ToastSuccess)
	a.loadWorkers()
}

func (a *App) workersSubtitle() string {
	w := a.workers
	status := w.query.Status
	if status == "" {
		status = "all"
	}
	team := w.query.Team
	if team == "" {
		team = "all teams"
	}
	parts := []string{
		fmt.Sprintf("%d workers", w.page.Total),
		"status: " + status,
		team,
	}
	if w.query.Search != "" {
		parts = append(parts, fmt.Sprintf("search: %q", w.query.Search))
	}
	if n := len(w.selected); n > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", n))
	}
	return strings.Join(parts, " · ")
}

func (a *App) renderWorkers() string {
	var b strings.Builder
	if a.workers.searching || a.workers.query.Search != "" {
		b.WriteString(a.workers.search.View())
		b.WriteString("\n\n")
	}
	b.WriteString(table.Build(a.workersProps()).Render(a.width, a.styles))
	return b.String()
}

func nextInCycle(cycle []string, cur string) string {
	i := slices.Index(cycle, cur)
	return cycle[(i+1)%len(cycle)]
}
