package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/fieldops/internal/service"
	"github.com/jask/fieldops/internal/theme"
	"github.com/jask/fieldops/internal/widgets"
)

// syncShell points the shell at the active screen and refreshes its body.
func (a *App) syncShell(height int) {
	crumbs := []widgets.Crumb{{Label: "Home"}}
	var body string
	switch a.screen {
	case screenWorkers:
		a.shell.Title = "Workers"
		a.shell.Subtitle = a.workersSubtitle()
		crumbs = append(crumbs, widgets.Crumb{Label: "Workers", Active: true})
		body = a.renderWorkers()
	case screenDetail:
		a.shell.Title = a.detailTitle()
		a.shell.Subtitle = a.detailSubtitle()
		crumbs = append(crumbs, widgets.Crumb{Label: "Workers"}, widgets.Crumb{Label: a.detailTitle(), Active: true})
		body = a.renderDetail()
	case screenGPS:
		a.shell.Title = "GPS Logs"
		a.shell.Subtitle = "Location pings · " + a.gps.rng.Label()
		crumbs = append(crumbs, widgets.Crumb{Label: "GPS Logs", Active: true})
		body = a.renderGPS()
	case screenSettings:
		a.shell.Title = "Settings"
		a.shell.Subtitle = a.settingsSubtitle()
		crumbs = append(crumbs, widgets.Crumb{Label: "Settings", Active: true})
		body = a.renderSettings()
	default:
		a.shell.Title = "Dashboard"
		a.shell.Subtitle = a.cfg.Org.Name + " · field workforce overview"
		crumbs[0].Active = true
		body = a.renderDashboard()
	}
	a.shell.Crumbs = widgets.Breadcrumbs{Items: crumbs}
	a.shell.SetSize(a.width, height)
	a.shell.SetBody(body)
}

func (a *App) renderStatusBar() string {
	msg := strings.TrimSpace(a.status)
	if msg == "" {
		msg = "Ready"
	}
	if a.statusErr {
		return renderBar(a.styles.StatusErrBar, max(1, a.width), msg, theme.Surface0)
	}
	return renderBar(a.styles.StatusBar, max(1, a.width), msg, theme.Surface0)
}

func (a *App) renderFooter() string {
	bindings := a.keys.HelpBindings(a.scope())
	space := lipgloss.NewStyle().Background(theme.Mantle).Render(" ")
	sep := lipgloss.NewStyle().Background(theme.Mantle).Render("  ")

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" && h.Desc == "" {
			continue
		}
		parts = append(parts, a.styles.Key.Render(h.Key)+space+a.styles.HelpDesc.Render(h.Desc))
	}
	line := strings.Join(parts, sep)
	if line == "" {
		line = a.styles.HelpDesc.Render("No shortcuts")
	}
	return renderBar(a.styles.Footer, max(1, a.width), line, theme.Mantle)
}

func renderBar(style lipgloss.Style, width int, text string, bg lipgloss.TerminalColor) string {
	line := strings.ReplaceAll(text, "\n", " ")
	line = ansi.Truncate(line, width, "")
	lineW := ansi.StringWidth(line)
	if lineW < width {
		line += strings.Repeat(" ", width-lineW)
	}
	return style.
		Background(bg).
		Width(width).
		MaxWidth(width).
		Render(line)
}

var modalStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Accent).
	Padding(1, 2)

func (a *App) renderModal() string {
	switch a.modal {
	case modalExport:
		lines := []string{a.styles.Title.Render("Export " + a.exportScope()), ""}
		for i, f := range service.Formats() {
			label := "  " + strings.ToUpper(string(f))
			if i == a.exportCursor {
				label = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("▶ " + strings.ToUpper(string(f)))
			}
			lines = append(lines, label)
		}
		lines = append(lines, "", a.styles.Subtitle.Render("enter export · esc cancel"))
		return modalStyle.Render(strings.Join(lines, "\n"))
	case modalConfirmReset:
		lines := []string{
			a.styles.Title.Render("Reset demo data?"),
			"",
			"Every change is discarded and the roster is reseeded.",
			"",
			a.styles.Subtitle.Render("y confirm · n cancel"),
		}
		return modalStyle.BorderForeground(theme.Warning).Render(strings.Join(lines, "\n"))
	}
	return ""
}
