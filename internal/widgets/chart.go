package widgets

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/fieldops/internal/theme"
)

type ChartPoint struct {
	Label string
	Value float64
}

// BarChart is a titled vertical bar chart with a legend line per bar.
type BarChart struct {
	Title string
	Unit  string
	Data  []ChartPoint
	// MaxWidth caps the drawn width when positive.
	MaxWidth int
}

var barColors = []lipgloss.Color{theme.Blue, theme.Green, theme.Peach, theme.Mauve, theme.Teal, theme.Yellow}

func (c BarChart) Render(width, height int) string {
	if c.MaxWidth > 0 {
		width = min(width, c.MaxWidth)
	}
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(c.Data) == 0 {
		return c.Title + "\n(no data)"
	}
	legend := make([]string, 0, len(c.Data))
	data := make([]barchart.BarData, 0, len(c.Data))
	for i, p := range c.Data {
		style := lipgloss.NewStyle().Foreground(barColors[i%len(barColors)])
		data = append(data, barchart.BarData{
			Label:  fmt.Sprintf("%d", i+1),
			Values: []barchart.BarValue{{Name: p.Label, Value: p.Value, Style: style}},
		})
		legend = append(legend, style.Render("■")+fmt.Sprintf(" %d %s %.1f%s", i+1, p.Label, p.Value, c.Unit))
	}
	chartHeight := height - 1 - len(legend)
	if chartHeight < 3 {
		return ClipHeight(c.Title+"\n"+strings.Join(legend, "\n"), height)
	}
	bc := barchart.New(width, chartHeight)
	bc.PushAll(data)
	bc.Draw()
	return c.Title + "\n" + bc.View() + "\n" + strings.Join(legend, "\n")
}
