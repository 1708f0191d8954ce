package widgets

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/fieldops/internal/theme"
)

// EmptyState is shown when a view has nothing to list.
type EmptyState struct {
	Icon        string
	Title       string
	Subtitle    string
	ActionLabel string
}

func (e EmptyState) Render(width int, st theme.Styles) string {
	lines := make([]string, 0, 4)
	if e.Icon != "" {
		lines = append(lines, e.Icon)
	}
	lines = append(lines, st.Title.Render(e.Title))
	if e.Subtitle != "" {
		lines = append(lines, st.Subtitle.Render(e.Subtitle))
	}
	if e.ActionLabel != "" {
		lines = append(lines, "", st.Button.Render(e.ActionLabel))
	}
	return centerBlock(lines, width)
}

// ErrorState is shown when the owner reports a failed load.
type ErrorState struct {
	Icon       string
	Title      string
	Subtitle   string
	RetryLabel string
}

// DefaultErrorState mirrors the console's stock wording.
func DefaultErrorState() ErrorState {
	return ErrorState{
		Icon:       "⚠",
		Title:      "Something went wrong",
		Subtitle:   "Something went wrong. Please try again later.",
		RetryLabel: "Try Again",
	}
}

func (e ErrorState) Render(width int, st theme.Styles) string {
	lines := make([]string, 0, 5)
	if e.Icon != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Error).Render(e.Icon))
	}
	lines = append(lines, st.Title.Render(e.Title))
	if e.Subtitle != "" {
		lines = append(lines, st.Subtitle.Render(e.Subtitle))
	}
	if e.RetryLabel != "" {
		lines = append(lines, "", st.Button.Render(e.RetryLabel+" (r)"))
	}
	return centerBlock(lines, width)
}

// ShimmerInterval is the half-period of the skeleton's looping fade.
const ShimmerInterval = time.Second

// ShimmerMsg advances a skeleton's shimmer frame.
type ShimmerMsg struct{}

// Shimmer schedules the next shimmer frame.
func Shimmer() tea.Cmd {
	return tea.Tick(ShimmerInterval, func(time.Time) tea.Msg { return ShimmerMsg{} })
}

// Skeleton draws Count placeholder list items. Frame alternates the tone.
type Skeleton struct {
	Count int
	Frame int
}

func (s Skeleton) Render(width int, st theme.Styles) string {
	if width <= 0 || s.Count <= 0 {
		return ""
	}
	tone := theme.Surface1
	if s.Frame%2 == 1 {
		tone = theme.Surface2
	}
	block := lipgloss.NewStyle().Foreground(tone)
	bar := func(w int) string {
		return block.Render(strings.Repeat("▆", max(1, w)))
	}
	inner := max(1, width-6)
	items := make([]string, 0, s.Count*3)
	for i := 0; i < s.Count; i++ {
		items = append(items,
			bar(2)+"  "+bar(inner*6/10),
			"    "+bar(inner*4/10),
		)
		if i < s.Count-1 {
			items = append(items, "")
		}
	}
	return strings.Join(items, "\n")
}

func centerBlock(lines []string, width int) string {
	if width <= 0 {
		return strings.Join(lines, "\n")
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = lipgloss.PlaceHorizontal(width, lipgloss.Center, l)
	}
	return strings.Join(out, "\n")
}
