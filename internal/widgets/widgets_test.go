package widgets

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/jask/fieldops/internal/theme"
)

func TestToastExpiresOnlyForCurrentID(t *testing.T) {
	var toast Toast
	cmd := toast.Show("Export queued", ToastSuccess, 10*time.Millisecond)
	require.NotNil(t, cmd)
	first := toast.ID

	toast.Show("Marked 2 present", ToastSuccess, 0)
	require.Equal(t, DefaultToastDuration, toast.Duration)

	require.False(t, toast.Expire(ToastExpiredMsg{ID: first}))
	require.True(t, toast.Visible)
	require.Contains(t, ansi.Strip(toast.Render(40)), "Marked 2 present")

	require.True(t, toast.Expire(ToastExpiredMsg{ID: toast.ID}))
	require.False(t, toast.Visible)
	require.Empty(t, toast.Render(40))
}

func TestToastTimerEmitsExpiry(t *testing.T) {
	var toast Toast
	cmd := toast.Show("hello", ToastInfo, time.Millisecond)
	msg := cmd()
	require.Equal(t, ToastExpiredMsg{ID: toast.ID}, msg)
}

func TestSkeletonRendersCountItems(t *testing.T) {
	st := theme.Default()
	out := Skeleton{Count: 3}.Render(40, st)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3*2+2)
	require.Empty(t, Skeleton{Count: 0}.Render(40, st))
}

func TestStatesRenderText(t *testing.T) {
	st := theme.Default()
	empty := EmptyState{Icon: "📊", Title: "No workers found", Subtitle: "No data matches your current filters"}.Render(60, st)
	require.Contains(t, ansi.Strip(empty), "No workers found")
	require.Contains(t, ansi.Strip(empty), "No data matches your current filters")

	errView := DefaultErrorState().Render(60, st)
	require.Contains(t, ansi.Strip(errView), "Something went wrong")
	require.Contains(t, ansi.Strip(errView), "Try Again")
}

func TestBreadcrumbs(t *testing.T) {
	b := Breadcrumbs{Items: []Crumb{{Label: "Home"}, {Label: "Workers", Active: true}}}
	require.Equal(t, "Home › Workers", ansi.Strip(b.Render(theme.Default())))
}

func TestShellScrollsBody(t *testing.T) {
	s := NewShell()
	s.Title = "Workers"
	s.Subtitle = "Manage attendance, salary, and activity"
	s.Crumbs = Breadcrumbs{Items: []Crumb{{Label: "Home"}, {Label: "Workers", Active: true}}}
	s.SetSize(40, 7)

	body := make([]string, 10)
	for i := range body {
		body[i] = "line " + string(rune('a'+i))
	}
	s.SetBody(strings.Join(body, "\n"))

	out := ansi.Strip(s.Render(theme.Default()))
	require.Contains(t, out, "Workers")
	require.Contains(t, out, "line a")
	require.NotContains(t, out, "line d")

	s.ScrollBy(2)
	require.Equal(t, 2, s.Offset())
	out = ansi.Strip(s.Render(theme.Default()))
	require.Contains(t, out, "line c")
	require.NotContains(t, out, "line a")

	s.ScrollTop()
	require.Equal(t, 0, s.Offset())
}

func TestBarChartLegend(t *testing.T) {
	c := BarChart{Title: "KMs by team", Unit: " km", Data: []ChartPoint{{"Oxford", 359.3}, {"Cambridge", 89.7}}}
	out := ansi.Strip(c.Render(40, 12))
	require.Contains(t, out, "KMs by team")
	require.Contains(t, out, "1 Oxford 359.3 km")
	require.Contains(t, out, "2 Cambridge 89.7 km")

	require.Equal(t, "Empty\n(no data)", BarChart{Title: "Empty"}.Render(10, 5))
}

func TestBarChartMaxWidth(t *testing.T) {
	c := BarChart{Title: "KMs", Data: []ChartPoint{{"Oxford", 359.3}, {"Cambridge", 89.7}}, MaxWidth: 24}
	for _, line := range strings.Split(c.Render(100, 12), "\n") {
		require.LessOrEqual(t, ansi.StringWidth(line), 24)
	}
}

func TestVStackStacksChartUnderTiles(t *testing.T) {
	tiles := HStack{Widgets: []Widget{fixedWidget{"A"}, fixedWidget{"B"}}, Gap: 1}
	chart := BarChart{Title: "KMs", Data: []ChartPoint{{"Oxford", 10}}, MaxWidth: 20}
	out := ansi.Strip(VStack{Widgets: []Widget{tiles, chart}, Spacing: 1, Ratios: []float64{1, 8}}.Render(30, 10))
	lines := strings.Split(out, "\n")
	require.Equal(t, "A", strings.TrimSpace(lines[0][:15]))
	require.Empty(t, strings.TrimSpace(lines[1]))
	require.Equal(t, "KMs", lines[2])
	require.Contains(t, out, "1 Oxford 10.0")
}
