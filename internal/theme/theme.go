// Package theme holds the console palette and the shared lipgloss styles.
package theme

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha palette.
const (
	Red      lipgloss.Color = "#f38ba8"
	Peach    lipgloss.Color = "#fab387"
	Yellow   lipgloss.Color = "#f9e2af"
	Green    lipgloss.Color = "#a6e3a1"
	Teal     lipgloss.Color = "#94e2d5"
	Blue     lipgloss.Color = "#89b4fa"
	Lavender lipgloss.Color = "#b4befe"
	Mauve    lipgloss.Color = "#cba6f7"

	Text     lipgloss.Color = "#cdd6f4"
	Subtext0 lipgloss.Color = "#a6adc8"
	Overlay1 lipgloss.Color = "#7f849c"
	Overlay0 lipgloss.Color = "#6c7086"
	Surface2 lipgloss.Color = "#585b70"
	Surface1 lipgloss.Color = "#45475a"
	Surface0 lipgloss.Color = "#313244"
	Base     lipgloss.Color = "#1e1e2e"
	Mantle   lipgloss.Color = "#181825"
	Crust    lipgloss.Color = "#11111b"
)

// Semantic aliases.
const (
	Primary = Blue
	Accent  = Lavender
	Success = Green
	Warning = Yellow
	Error   = Red
	Info    = Teal
	Muted   = Subtext0
	Border  = Surface2
	Neutral = Overlay1
)

// Palette returns every palette colour in display order.
func Palette() []lipgloss.Color {
	return []lipgloss.Color{
		Red, Peach, Yellow, Green, Teal, Blue, Lavender, Mauve,
		Text, Subtext0, Overlay1, Overlay0,
		Surface2, Surface1, Surface0, Base, Mantle, Crust,
	}
}

// Styles is the set of styles screens and widgets draw with.
type Styles struct {
	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	HeaderCell   lipgloss.Style
	HeaderFocus  lipgloss.Style
	HeaderOff    lipgloss.Style
	SortGlyph    lipgloss.Style
	SortActive   lipgloss.Style
	Cell         lipgloss.Style
	CursorRow    lipgloss.Style
	CardBorder   lipgloss.Style
	CardLabel    lipgloss.Style
	CardValue    lipgloss.Style
	Placeholder  lipgloss.Style
	Button       lipgloss.Style
	ButtonOff    lipgloss.Style
	PagerInfo    lipgloss.Style
	Crumb        lipgloss.Style
	CrumbActive  lipgloss.Style
	StatusBar    lipgloss.Style
	StatusErrBar lipgloss.Style
	Footer       lipgloss.Style
	Key          lipgloss.Style
	HelpDesc     lipgloss.Style
}

// Default returns the console styles.
func Default() Styles {
	return Styles{
		Title:        lipgloss.NewStyle().Foreground(Text).Bold(true),
		Subtitle:     lipgloss.NewStyle().Foreground(Muted),
		HeaderCell:   lipgloss.NewStyle().Foreground(Muted).Bold(true),
		HeaderFocus:  lipgloss.NewStyle().Foreground(Accent).Bold(true).Underline(true),
		HeaderOff:    lipgloss.NewStyle().Foreground(Text).Bold(true),
		SortGlyph:    lipgloss.NewStyle().Foreground(Muted),
		SortActive:   lipgloss.NewStyle().Foreground(Primary).Bold(true),
		Cell:         lipgloss.NewStyle().Foreground(Text),
		CursorRow:    lipgloss.NewStyle().Background(Surface0),
		CardBorder:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Border).Padding(0, 1),
		CardLabel:    lipgloss.NewStyle().Foreground(Muted),
		CardValue:    lipgloss.NewStyle().Foreground(Text).Bold(true),
		Placeholder:  lipgloss.NewStyle().Foreground(Overlay0),
		Button:       lipgloss.NewStyle().Foreground(Base).Background(Primary).Bold(true).Padding(0, 1),
		ButtonOff:    lipgloss.NewStyle().Foreground(Muted).Background(Surface1).Padding(0, 1),
		PagerInfo:    lipgloss.NewStyle().Foreground(Muted),
		Crumb:        lipgloss.NewStyle().Foreground(Primary),
		CrumbActive:  lipgloss.NewStyle().Foreground(Text).Bold(true),
		StatusBar:    lipgloss.NewStyle().Foreground(Success).Background(Surface0),
		StatusErrBar: lipgloss.NewStyle().Foreground(Error).Background(Surface0),
		Footer:       lipgloss.NewStyle().Background(Mantle),
		Key:          lipgloss.NewStyle().Foreground(Accent).Bold(true).Background(Mantle),
		HelpDesc:     lipgloss.NewStyle().Foreground(Muted).Background(Mantle),
	}
}
