package tui

import (
	"cmp"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/fieldops/internal/database/repository"
	"github.com/jask/fieldops/internal/service"
	"github.com/jask/fieldops/internal/table"
)

type gpsState struct {
	rng     service.Range
	logs    []repository.GPSLog
	loading bool
	err     error
	seq     int
	sort    table.SortState
	page    int
	nav     tableNav
}

func newGPSState() gpsState {
	return gpsState{
		rng:  service.RangeToday,
		sort: table.SortState{Column: "time", Direction: table.Desc},
		page: 1,
	}
}

var gpsColumns = []table.Column{
	{Key: "time", Title: "Time", Sortable: true, WidthWeight: 1.3},
	{Key: "worker", Title: "Worker", Sortable: true, WidthWeight: 1.6},
	{Key: "location", Title: "Location", WidthWeight: 2},
	{Key: "kms", Title: "KMs", Sortable: true, Align: table.AlignRight, WidthWeight: 0.8},
	{Key: "source", Title: "Source", WidthWeight: 0.8},
}

var gpsSort = map[string]func(a, b repository.GPSLog) int{
	"time":   func(a, b repository.GPSLog) int { return a.LoggedAt.Compare(b.LoggedAt) },
	"worker": func(a, b repository.GPSLog) int { return cmp.Compare(a.WorkerName, b.WorkerName) },
	"kms":    func(a, b repository.GPSLog) int { return cmp.Compare(a.Kms, b.Kms) },
}

func (a *App) loadGPS() {
	g := &a.gps
	g.seq++
	g.loading = true
	g.err = nil
	seq, rng, svc, ctx := g.seq, g.rng, a.services.GPS, a.ctx
	a.queue(func() tea.Msg {
		logs, err := svc.Logs(ctx, service.GPSQuery{Range: rng})
		return gpsMsg{seq: seq, logs: logs, err: err}
	})
	a.startShimmer()
}

func (a *App) applyGPS(m gpsMsg) {
	g := &a.gps
	if m.seq != g.seq {
		return
	}
	g.loading = false
	if m.err != nil {
		g.err = m.err
		a.setError("load gps logs", m.err)
		return
	}
	a.clearError()
	g.logs = m.logs
}

func (a *App) gpsProps() table.Props {
	g := &a.gps
	page, ps := pageOf(g.logs, g.sort, gpsSort, g.page, a.cfg.UI.PageSize)
	rows := make([]table.Row, 0, len(page))
	for _, l := range page {
		rows = append(rows, table.Row{
			"time":     table.Text(l.LoggedAt.In(a.tz).Format("Jan 2 15:04")),
			"worker":   table.Text(l.WorkerName),
			"location": table.Text(l.Location),
			"kms":      table.Float(l.Kms, 1),
			"source":   table.Text(strings.ToUpper(l.Source)),
		})
	}
	return table.Props{
		Columns:      gpsColumns,
		Rows:         rows,
		Sort:         g.sort,
		Pagination:   ps,
		Loading:      g.loading,
		Error:        g.err != nil,
		EmptyMessage: "No GPS logs in this range",
		Width:        a.logicalWidth(),
		Breakpoint:   a.cfg.UI.Breakpoint,
		Focus:        g.nav.focus(),
		Frame:        a.frame,
		OnSort: func(key string) {
			g.sort = service.ToggleSort(g.sort, key)
			g.page = 1
			a.log.Info("sort", "screen", "gps", "column", key, "dir", g.sort.Direction.String())
		},
		OnPageChange: func(page int) {
			g.page = page
			a.log.Info("page change", "screen", "gps", "page", page)
		},
		OnRetry: func() {
			a.log.Info("retry", "screen", "gps")
			a.loadGPS()
		},
	}
}

func (a *App) gpsAction(act Action) {
	g := &a.gps
	if handleTableAction(act, a.gpsProps(), &g.nav) {
		return
	}
	if act == actionRange {
		ranges := service.Ranges()
		for i, r := range ranges {
			if r == g.rng {
				g.rng = ranges[(i+1)%len(ranges)]
				break
			}
		}
		g.page = 1
		g.nav.cursor = 0
		a.log.Info("gps range", "range", string(g.rng))
		a.savePrefs()
		a.loadGPS()
	}
}

func (a *App) renderGPS() string {
	return table.Build(a.gpsProps()).Render(a.width, a.styles)
}
