package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/fieldops/internal/service"
	"github.com/jask/fieldops/internal/theme"
	"github.com/jask/fieldops/internal/widgets"
)

type dashboardState struct {
	summary service.Summary
	loaded  bool
	loading bool
	err     error
	seq     int
}

func (a *App) loadSummary() {
	d := &a.dash
	d.seq++
	d.loading = true
	d.err = nil
	seq, svc, ctx := d.seq, a.services.Dashboard, a.ctx
	a.queue(func() tea.Msg {
		s, err := svc.Summary(ctx)
		return summaryMsg{seq: seq, summary: s, err: err}
	})
	a.startShimmer()
}

func (a *App) applySummary(m summaryMsg) {
	d := &a.dash
	if m.seq != d.seq {
		return
	}
	d.loading = false
	if m.err != nil {
		d.err = m.err
		a.setError("load dashboard", m.err)
		return
	}
	a.clearError()
	d.summary = m.summary
	d.loaded = true
}

// kpiTile is one dashboard metric box.
type kpiTile struct {
	label string
	value string
	color lipgloss.Color
}

func (t kpiTile) Render(width, height int) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.color).
		Padding(0, 1).
		Width(max(1, width-2))
	value := lipgloss.NewStyle().Foreground(t.color).Bold(true).Render(t.value)
	label := lipgloss.NewStyle().Foreground(theme.Muted).Render(t.label)
	return style.Render(value + "\n" + label)
}

func (a *App) renderDashboard() string {
	d := a.dash
	switch {
	case d.loading && !d.loaded:
		return widgets.Skeleton{Count: 3, Frame: a.frame}.Render(a.width, a.styles)
	case d.err != nil:
		return widgets.DefaultErrorState().Render(a.width, a.styles)
	}
	s := d.summary
	cur := a.cfg.UI.CurrencySymbol

	attendance := []widgets.Widget{
		kpiTile{label: "Present", value: fmt.Sprint(s.Present), color: theme.Success},
		kpiTile{label: "Absent", value: fmt.Sprint(s.Absent), color: theme.Error},
		kpiTile{label: "Late", value: fmt.Sprint(s.Late), color: theme.Warning},
		kpiTile{label: "Half day", value: fmt.Sprint(s.HalfDay), color: theme.Peach},
		kpiTile{label: "On leave", value: fmt.Sprint(s.OnLeave), color: theme.Info},
	}
	totals := []widgets.Widget{
		kpiTile{label: "Workers online", value: fmt.Sprintf("%d / %d", s.Online, s.Workers), color: theme.Primary},
		kpiTile{label: "Attendance rate", value: fmt.Sprintf("%.1f%%", s.AttendanceRate()), color: theme.Accent},
		kpiTile{label: "KMs this month", value: service.FormatKms(s.TotalKms), color: theme.Teal},
		kpiTile{label: "Salary MTD", value: service.FormatMoney(cur, s.SalaryMTD), color: theme.Mauve},
	}

	const tileHeight, chartHeight = 4, 12
	var (
		stack  []widgets.Widget
		ratios []float64
	)
	if a.width >= 60 {
		stack = append(stack,
			widgets.HStack{Widgets: attendance, Gap: 1},
			widgets.HStack{Widgets: totals, Gap: 1},
		)
		ratios = append(ratios, tileHeight, tileHeight)
	} else {
		for _, w := range append(attendance, totals...) {
			stack = append(stack, w)
			ratios = append(ratios, tileHeight)
		}
	}

	points := make([]widgets.ChartPoint, 0, len(s.TeamKms))
	for _, t := range s.TeamKms {
		points = append(points, widgets.ChartPoint{Label: t.Team, Value: t.Kms})
	}
	stack = append(stack, widgets.BarChart{
		Title:    a.styles.Title.Render("KMs by team (MTD)"),
		Unit:     " km",
		Data:     points,
		MaxWidth: 80,
	})
	ratios = append(ratios, chartHeight)

	height := 0
	for _, r := range ratios {
		height += int(r)
	}
	return widgets.VStack{Widgets: stack, Spacing: 1, Ratios: ratios}.Render(max(10, a.width), height+len(stack)-1)
}
