package tui

import (
	"cmp"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/fieldops/internal/badge"
	"github.com/jask/fieldops/internal/database/repository"
	"github.com/jask/fieldops/internal/service"
	"github.com/jask/fieldops/internal/table"
)

type detailTab int

const (
	tabAttendance detailTab = iota
	tabVisits
	tabOrders
	tabCount
)

func (t detailTab) String() string {
	switch t {
	case tabVisits:
		return "visits"
	case tabOrders:
		return "orders"
	default:
		return "attendance"
	}
}

func (t detailTab) Title() string {
	switch t {
	case tabVisits:
		return "Visits"
	case tabOrders:
		return "Orders"
	default:
		return "Attendance"
	}
}

type detailState struct {
	workerID string
	detail   service.WorkerDetail
	loading  bool
	err      error
	seq      int
	tab      detailTab
	sort     [tabCount]table.SortState
	page     [tabCount]int
	nav      [tabCount]tableNav
}

func (a *App) openDetail(id string) {
	a.detail = detailState{workerID: id}
	for i := range a.detail.page {
		a.detail.page[i] = 1
	}
	a.log.Info("open worker", "worker", id)
	a.screen = screenDetail
	a.shell.ScrollTop()
	a.loadDetail()
}

func (a *App) loadDetail() {
	d := &a.detail
	d.seq++
	d.loading = true
	d.err = nil
	seq, id, svc, ctx := d.seq, d.workerID, a.services.Detail, a.ctx
	a.queue(func() tea.Msg {
		detail, err := svc.Load(ctx, id)
		return detailMsg{seq: seq, detail: detail, err: err}
	})
	a.startShimmer()
}

func (a *App) applyDetail(m detailMsg) {
	d := &a.detail
	if m.seq != d.seq {
		return
	}
	d.loading = false
	if m.err != nil {
		d.err = m.err
		a.setError("load worker", m.err)
		return
	}
	a.clearError()
	d.detail = m.detail
}

var attendanceColumns = []table.Column{
	{Key: "day", Title: "Day", Sortable: true, Align: table.AlignRight, WidthWeight: 0.6},
	{Key: "status", Title: "Status", Sortable: true, Hint: table.HintBadge, WidthWeight: 1.2},
	{Key: "in", Title: "In", WidthWeight: 0.8},
	{Key: "out", Title: "Out", WidthWeight: 0.8},
}

var attendanceSort = map[string]func(a, b repository.AttendanceDay) int{
	"day":    func(a, b repository.AttendanceDay) int { return cmp.Compare(a.Day, b.Day) },
	"status": func(a, b repository.AttendanceDay) int { return cmp.Compare(a.Status, b.Status) },
}

var visitColumns = []table.Column{
	{Key: "school", Title: "School", Sortable: true, WidthWeight: 2},
	{Key: "samples", Title: "Samples", Sortable: true, Align: table.AlignRight, WidthWeight: 0.8},
	{Key: "status", Title: "Outcome", Hint: table.HintBadge, WidthWeight: 1.3},
	{Key: "date", Title: "Date", WidthWeight: 0.8},
}

var visitSort = map[string]func(a, b repository.Visit) int{
	"school":  func(a, b repository.Visit) int { return cmp.Compare(a.School, b.School) },
	"samples": func(a, b repository.Visit) int { return cmp.Compare(a.Samples, b.Samples) },
}

var orderColumns = []table.Column{
	{Key: "school", Title: "School", Sortable: true, WidthWeight: 2},
	{Key: "quantity", Title: "Qty", Sortable: true, Align: table.AlignRight, WidthWeight: 0.6},
	{Key: "payment", Title: "Payment", Hint: table.HintBadge, WidthWeight: 1.4},
	{Key: "status", Title: "Status", Hint: table.HintBadge, WidthWeight: 1.1},
	{Key: "date", Title: "Date", WidthWeight: 0.8},
}

var orderSort = map[string]func(a, b repository.Order) int{
	"school":   func(a, b repository.Order) int { return cmp.Compare(a.School, b.School) },
	"quantity": func(a, b repository.Order) int { return cmp.Compare(a.Quantity, b.Quantity) },
}

func (a *App) detailProps() table.Props {
	d := &a.detail
	tab := d.tab
	size := a.cfg.UI.PageSize
	var (
		cols []table.Column
		rows []table.Row
		ps   table.PaginationState
	)
	switch tab {
	case tabVisits:
		cols = visitColumns
		var page []repository.Visit
		page, ps = pageOf(d.detail.Visits, d.sort[tab], visitSort, d.page[tab], size)
		for _, v := range page {
			rows = append(rows, table.Row{
				"school":  table.Text(v.School),
				"samples": table.Int(int64(v.Samples)),
				"status":  table.Text(badgeLabel(v.Status)),
				"date":    table.Text(v.Date),
			})
		}
	case tabOrders:
		cols = orderColumns
		var page []repository.Order
		page, ps = pageOf(d.detail.Orders, d.sort[tab], orderSort, d.page[tab], size)
		for _, o := range page {
			rows = append(rows, table.Row{
				"school":   table.Text(o.School),
				"quantity": table.Int(int64(o.Quantity)),
				"payment":  table.Text(badgeLabel(o.Payment)),
				"status":   table.Text(badgeLabel(o.Status)),
				"date":     table.Text(o.Date),
			})
		}
	default:
		cols = attendanceColumns
		var page []repository.AttendanceDay
		page, ps = pageOf(d.detail.Attendance, d.sort[tab], attendanceSort, d.page[tab], size)
		for _, day := range page {
			rows = append(rows, table.Row{
				"day":    table.Int(int64(day.Day)),
				"status": table.Text(badgeLabel(day.Status)),
				"in":     table.Text(day.InTime),
				"out":    table.Text(day.OutTime),
			})
		}
	}
	return table.Props{
		Columns:      cols,
		Rows:         rows,
		Sort:         d.sort[tab],
		Pagination:   ps,
		Loading:      d.loading,
		Error:        d.err != nil,
		EmptyMessage: "No " + tab.String() + " recorded",
		Width:        a.logicalWidth(),
		Breakpoint:   a.cfg.UI.Breakpoint,
		Focus:        d.nav[tab].focus(),
		Frame:        a.frame,
		OnSort: func(key string) {
			d.sort[tab] = service.ToggleSort(d.sort[tab], key)
			d.page[tab] = 1
			a.log.Info("sort", "screen", tab.String(), "column", key, "dir", d.sort[tab].Direction.String())
		},
		OnPageChange: func(page int) {
			d.page[tab] = page
			a.log.Info("page change", "screen", tab.String(), "page", page)
		},
		OnRetry: func() {
			a.log.Info("retry", "screen", "worker detail")
			a.loadDetail()
		},
	}
}

func (a *App) detailAction(act Action) {
	d := &a.detail
	if handleTableAction(act, a.detailProps(), &d.nav[d.tab]) {
		return
	}
	switch act {
	case actionNextTab:
		d.tab = (d.tab + 1) % tabCount
	case actionPrevTab:
		d.tab = (d.tab + tabCount - 1) % tabCount
	case actionBack:
		a.screen = screenWorkers
		a.shell.ScrollTop()
		a.loadWorkers()
	}
}

func (a *App) detailTitle() string {
	if a.detail.detail.Worker.Name == "" {
		return "Worker"
	}
	return a.detail.detail.Worker.Name
}

func (a *App) detailSubtitle() string {
	w := a.detail.detail.Worker
	if w.ID == "" {
		return "Attendance, visits and orders"
	}
	return fmt.Sprintf("%s · %s · last seen %s at %s", w.Team, w.Phone, w.LastSeen, w.LastLocation)
}

var (
	tabStyle       = lipgloss.NewStyle().Padding(0, 1)
	activeTabStyle = tabStyle.Bold(true).Underline(true)
)

func (a *App) renderDetail() string {
	d := a.detail
	var b strings.Builder

	if w := d.detail.Worker; w.ID != "" && !d.loading {
		chips := []string{}
		for _, raw := range []string{w.TodayStatus, w.State} {
			v, err := badge.Parse(raw)
			if err != nil {
				chips = append(chips, raw)
				continue
			}
			chip, err := badge.Badge{Variant: v}.Render()
			if err != nil {
				chip = raw
			}
			chips = append(chips, chip)
		}
		t := d.detail.Tally
		b.WriteString(strings.Join(chips, " "))
		b.WriteString("  ")
		b.WriteString(a.styles.Subtitle.Render(fmt.Sprintf("%s · %s MTD · P %d  A %d  H %d  L %d  OFF %d",
			service.FormatKms(w.KmsMTD), service.FormatMoney(a.cfg.UI.CurrencySymbol, w.SalaryMTD),
			t.Present, t.Absent, t.HalfDay, t.Leave, t.Off)))
		b.WriteString("\n\n")
	}

	tabs := make([]string, 0, tabCount)
	for t := detailTab(0); t < tabCount; t++ {
		if t == d.tab {
			tabs = append(tabs, activeTabStyle.Foreground(a.styles.CrumbActive.GetForeground()).Render(t.Title()))
		} else {
			tabs = append(tabs, tabStyle.Foreground(a.styles.Subtitle.GetForeground()).Render(t.Title()))
		}
	}
	b.WriteString(strings.Join(tabs, "│"))
	b.WriteString("\n\n")
	b.WriteString(table.Build(a.detailProps()).Render(a.width, a.styles))
	return b.String()
}
