package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/fieldops/internal/config"
	"github.com/jask/fieldops/internal/logging"
	"github.com/jask/fieldops/internal/prefs"
	"github.com/jask/fieldops/internal/service"
	"github.com/jask/fieldops/internal/theme"
	"github.com/jask/fieldops/internal/widgets"
)

// App ties together the screens.
type App struct {
	ctx      context.Context
	cfg      config.Config
	services Services
	log      *slog.Logger
	tz       *time.Location
	keys     *KeyRegistry
	styles   theme.Styles

	width  int
	height int
	screen screen
	shell  widgets.Shell
	toast  widgets.Toast

	status    string
	statusErr bool

	modal        modalState
	exportCursor int

	// frame drives every loading skeleton; shimmering is true while a tick
	// is scheduled.
	frame      int
	shimmering bool

	// cmds collects work queued by table callbacks during one Update.
	cmds []tea.Cmd

	dash     dashboardState
	workers  workersState
	detail   detailState
	gps      gpsState
	settings settingsState
}

type Services struct {
	Roster      *service.RosterService
	Dashboard   *service.DashboardService
	Detail      *service.DetailService
	GPS         *service.GPSService
	Export      *service.ExportService
	Maintenance *service.MaintenanceService
	// Prefs is optional; nil disables remembering view choices.
	Prefs *prefs.Store
	// SaveConfig persists edits from the settings screen.
	SaveConfig func(config.Config) error
}

type screen int

const (
	screenDashboard screen = iota
	screenWorkers
	screenDetail
	screenGPS
	screenSettings
)

func (s screen) String() string {
	switch s {
	case screenWorkers:
		return "workers"
	case screenDetail:
		return "worker detail"
	case screenGPS:
		return "gps logs"
	case screenSettings:
		return "settings"
	default:
		return "dashboard"
	}
}

type modalState string

const (
	modalNone         modalState = ""
	modalExport       modalState = "export"
	modalConfirmReset modalState = "confirmReset"
)

func New(ctx context.Context, cfg config.Config, services Services, tz *time.Location, log *slog.Logger) *App {
	if tz == nil {
		tz = time.Local
	}
	a := &App{
		ctx:      ctx,
		cfg:      cfg,
		services: services,
		log:      logging.OrDefault(log),
		tz:       tz,
		keys:     NewKeyRegistry(),
		styles:   theme.Default(),
		shell:    widgets.NewShell(),
		workers:  newWorkersState(),
		gps:      newGPSState(),
	}
	a.restorePrefs()
	return a
}

func (a *App) Init() tea.Cmd {
	a.loadSummary()
	a.loadTeams()
	return a.flush()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
	case tea.KeyMsg:
		a.handleKey(m)
	case widgets.ShimmerMsg:
		a.frame++
		if a.anyLoading() {
			a.queue(widgets.Shimmer())
		} else {
			a.shimmering = false
		}
	case widgets.ToastExpiredMsg:
		a.toast.Expire(m)
	case summaryMsg:
		a.applySummary(m)
	case teamsMsg:
		if m.err != nil {
			a.setError("load teams", m.err)
		} else {
			a.workers.teams = m.teams
		}
	case rosterMsg:
		a.applyRoster(m)
	case detailMsg:
		a.applyDetail(m)
	case gpsMsg:
		a.applyGPS(m)
	case bulkDoneMsg:
		a.applyBulk(m)
	case exportDoneMsg:
		if m.err != nil {
			a.setError("export", m.err)
			a.showToast("Export failed", widgets.ToastError)
			break
		}
		a.showToast(fmt.Sprintf("Export requested: %s %s (receipt %s)",
			strings.ToUpper(string(m.receipt.Format)), m.receipt.Scope, shortID(m.receipt.ID)), widgets.ToastSuccess)
	case settingsSavedMsg:
		a.applySettingsSaved(m)
	case resetDoneMsg:
		if m.err != nil {
			a.setError("reset", m.err)
			break
		}
		a.workers.selected = map[string]bool{}
		a.showToast("Demo data reset", widgets.ToastSuccess)
		a.loadTeams()
		a.reloadScreen()
	}
	return a, a.flush()
}

func (a *App) View() string {
	if a.width <= 0 || a.height <= 0 {
		return ""
	}
	toast := a.toast.Render(a.width)
	bodyHeight := a.height - 2
	if toast != "" {
		bodyHeight--
	}
	a.syncShell(max(1, bodyHeight))

	parts := []string{fitLines(a.shell.Render(a.styles), max(1, bodyHeight))}
	if toast != "" {
		parts = append(parts, toast)
	}
	parts = append(parts, a.renderStatusBar(), a.renderFooter())
	out := strings.Join(parts, "\n")
	if a.modal != modalNone {
		out = widgets.RenderPopup(out, a.renderModal(), a.width, a.height)
	}
	return out
}

func (a *App) handleKey(m tea.KeyMsg) {
	if a.workers.searching {
		a.handleSearchKey(m)
		return
	}
	if a.settings.editing {
		a.handleSettingsEditKey(m)
		return
	}
	b := a.keys.Lookup(m.String(), a.scope())
	if b == nil {
		return
	}
	if a.modal != modalNone {
		a.handleModalAction(b.Action, m.String())
		return
	}

	switch b.Action {
	case actionQuit:
		a.queue(tea.Quit)
	case actionDashboard:
		a.open(screenDashboard)
	case actionWorkers:
		a.open(screenWorkers)
	case actionGPS:
		a.open(screenGPS)
	case actionSettings:
		a.open(screenSettings)
	case actionScrollUp:
		a.shell.ScrollBy(-a.scrollStep())
	case actionScrollDown:
		a.shell.ScrollBy(a.scrollStep())
	case actionReset:
		a.modal = modalConfirmReset
	case actionExport:
		a.modal = modalExport
		a.exportCursor = 0
	default:
		switch a.screen {
		case screenDashboard:
			if b.Action == actionRetry {
				a.log.Info("retry", "screen", a.screen.String())
				a.loadSummary()
			}
		case screenWorkers:
			a.workersAction(b.Action)
		case screenDetail:
			a.detailAction(b.Action)
		case screenGPS:
			a.gpsAction(b.Action)
		case screenSettings:
			a.settingsAction(b.Action)
		}
	}
}

func (a *App) scope() string {
	switch {
	case a.modal == modalExport:
		return scopeExport
	case a.modal == modalConfirmReset:
		return scopeConfirm
	case a.workers.searching:
		return scopeSearch
	case a.settings.editing:
		return scopeSettingsEdit
	}
	switch a.screen {
	case screenWorkers:
		return scopeWorkers
	case screenDetail:
		return scopeDetail
	case screenGPS:
		return scopeGPS
	case screenSettings:
		return scopeSettings
	default:
		return scopeDashboard
	}
}

func (a *App) handleModalAction(act Action, keyName string) {
	if act == actionQuit && keyName == "ctrl+c" {
		a.queue(tea.Quit)
		return
	}
	switch a.modal {
	case modalExport:
		formats := service.Formats()
		switch act {
		case actionNavigate:
			delta := 1
			if keyName == "up" || keyName == "k" {
				delta = -1
			}
			a.exportCursor = (a.exportCursor + delta + len(formats)) % len(formats)
		case actionConfirm:
			a.modal = modalNone
			a.requestExport(formats[a.exportCursor])
		case actionCancel:
			a.modal = modalNone
		}
	case modalConfirmReset:
		switch act {
		case actionConfirm:
			a.modal = modalNone
			a.requestReset()
		case actionCancel:
			a.modal = modalNone
		}
	}
}

// open switches screens and starts the screen's load.
func (a *App) open(s screen) {
	if a.screen == s {
		return
	}
	a.screen = s
	a.shell.ScrollTop()
	a.reloadScreen()
}

func (a *App) reloadScreen() {
	switch a.screen {
	case screenDashboard:
		a.loadSummary()
	case screenWorkers:
		a.loadWorkers()
	case screenDetail:
		a.loadDetail()
	case screenGPS:
		a.loadGPS()
	case screenSettings:
		a.enterSettings()
	}
}

func (a *App) anyLoading() bool {
	return a.dash.loading || a.workers.loading || a.detail.loading || a.gps.loading
}

func (a *App) startShimmer() {
	if a.shimmering {
		return
	}
	a.shimmering = true
	a.queue(widgets.Shimmer())
}

func (a *App) queue(cmd tea.Cmd) {
	if cmd != nil {
		a.cmds = append(a.cmds, cmd)
	}
}

func (a *App) flush() tea.Cmd {
	if len(a.cmds) == 0 {
		return nil
	}
	cmds := a.cmds
	a.cmds = nil
	return tea.Batch(cmds...)
}

func (a *App) setError(what string, err error) {
	a.status = what + ": " + err.Error()
	a.statusErr = true
	a.log.Error(what, "err", err)
}

func (a *App) clearError() {
	if a.statusErr {
		a.status = ""
		a.statusErr = false
	}
}

func (a *App) showToast(msg string, variant widgets.ToastVariant) {
	a.queue(a.toast.Show(msg, variant, a.cfg.UI.ToastDuration()))
}

// logicalWidth converts terminal columns into the units the table's
// breakpoint is expressed in.
func (a *App) logicalWidth() int {
	return a.width * max(1, a.cfg.UI.UnitsPerCell)
}

func (a *App) scrollStep() int {
	return max(1, (a.height-6)/2)
}

func (a *App) requestExport(f service.Format) {
	scope := a.exportScope()
	a.log.Info("export", "format", string(f), "scope", scope)
	svc, ctx := a.services.Export, a.ctx
	a.queue(func() tea.Msg {
		r, err := svc.Export(ctx, f, scope)
		return exportDoneMsg{receipt: r, err: err}
	})
}

func (a *App) exportScope() string {
	switch a.screen {
	case screenDetail:
		return a.detail.tab.String()
	default:
		return a.screen.String()
	}
}

func (a *App) requestReset() {
	a.log.Info("reset demo data")
	svc, ctx := a.services.Maintenance, a.ctx
	a.queue(func() tea.Msg {
		if svc == nil {
			return resetDoneMsg{err: fmt.Errorf("maintenance service not configured")}
		}
		return resetDoneMsg{err: svc.Reset(ctx)}
	})
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func fitLines(s string, height int) string {
	lines := strings.Split(widgets.ClipHeight(s, height), "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
