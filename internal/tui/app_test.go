package tui

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/jask/fieldops/internal/config"
	"github.com/jask/fieldops/internal/database"
	"github.com/jask/fieldops/internal/database/repository"
	"github.com/jask/fieldops/internal/logging"
	"github.com/jask/fieldops/internal/prefs"
	"github.com/jask/fieldops/internal/service"
	"github.com/jask/fieldops/internal/table"
)

func testConfig() config.Config {
	return config.Config{
		UI: config.UIConfig{
			Breakpoint:     768,
			UnitsPerCell:   8,
			PageSize:       5,
			CurrencySymbol: "PKR",
			ToastSeconds:   4,
		},
		Org: config.OrgConfig{Name: "EduReach Education", Timezone: "UTC"},
	}
}

func newTestApp(t *testing.T, width int) (*App, *sql.DB) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.SeedDefaults(context.Background(), db))

	log := logging.Discard()
	workers := repository.NewWorkerRepo(db)
	services := Services{
		Roster:    &service.RosterService{Workers: workers, Logger: log},
		Dashboard: &service.DashboardService{Workers: workers},
		Detail: &service.DetailService{
			Workers:    workers,
			Attendance: repository.NewAttendanceRepo(db),
			Visits:     repository.NewVisitRepo(db),
			Orders:     repository.NewOrderRepo(db),
		},
		GPS:         &service.GPSService{GPS: repository.NewGPSRepo(db)},
		Export:      &service.ExportService{Logger: log},
		Maintenance: &service.MaintenanceService{DB: db, Logger: log},
	}
	a := New(context.Background(), testConfig(), services, time.UTC, log)
	a.Update(tea.WindowSizeMsg{Width: width, Height: 60})
	drain(a, a.Init())
	return a, db
}

// drain runs cmd and feeds every message back into the app. Commands that do
// not finish quickly are timers (shimmer, toast expiry, cursor blink) and are
// dropped.
func drain(a *App, cmd tea.Cmd) {
	pending := []tea.Cmd{cmd}
	for len(pending) > 0 {
		c := pending[0]
		pending = pending[1:]
		if c == nil {
			continue
		}
		ch := make(chan tea.Msg, 1)
		go func() { ch <- c() }()
		select {
		case msg := <-ch:
			if batch, ok := msg.(tea.BatchMsg); ok {
				pending = append(pending, batch...)
				continue
			}
			if msg == nil {
				continue
			}
			_, next := a.Update(msg)
			pending = append(pending, next)
		case <-time.After(250 * time.Millisecond):
		}
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(a *App, keys ...string) {
	for _, k := range keys {
		_, cmd := a.Update(keyMsg(k))
		drain(a, cmd)
	}
}

func workerNames(a *App) []string {
	out := make([]string, 0, len(a.workers.page.Workers))
	for _, w := range a.workers.page.Workers {
		out = append(out, w.Name)
	}
	return out
}

func view(a *App) string {
	return ansi.Strip(a.View())
}

func TestDashboardShowsSummary(t *testing.T) {
	t.Parallel()
	a, _ := newTestApp(t, 120)

	out := view(a)
	require.Contains(t, out, "Dashboard")
	require.Contains(t, out, "Present")
	require.Contains(t, out, "PKR 280,400")
	require.Contains(t, out, "KMs by team (MTD)")
	require.Contains(t, out, "Oxford Publishers")
	require.Equal(t, []string{"Cambridge Press", "Oxford Publishers", "Pearson Education"}, a.workers.teams)
}

func TestWorkersLoadShowsSkeletonThenTable(t *testing.T) {
	t.Parallel()
	a, _ := newTestApp(t, 120)

	_, cmd := a.Update(keyMsg("2"))
	require.True(t, a.workers.loading)
	require.Equal(t, table.ModeSkeleton, table.Build(a.workersProps()).Mode)

	drain(a, cmd)
	require.False(t, a.workers.loading)
	require.Equal(t, table.ModeTable, table.Build(a.workersProps()).Mode)
	out := view(a)
	require.Contains(t, out, "Home › Workers")
	require.Contains(t, out, "Page 1 of 3")
	require.Contains(t, out, "─┼─")
	require.Len(t, a.workers.page.Workers, 5)
}

func TestWorkersNarrowTerminalUsesCards(t *testing.T) {
	t.Parallel()
	a, _ := newTestApp(t, 80)
	press(a, "2")

	require.Equal(t, table.ModeCards, table.Build(a.workersProps()).Mode)
	require.NotContains(t, view(a), "─┼─")
}

func TestWorkersHeaderSort(t *testing.T) {
	t.Parallel()
	a, _ := newTestApp(t, 120)
	press(a, "2")

	// First press focuses the selection column, the next moves to Name.
	press(a, "right", "right")
	require.True(t, a.workers.nav.focusHeader)
	require.Equal(t, 1, a.workers.nav.header)

	press(a, "enter")
	require.Equal(t, table.SortState{Column: service.SortName, Direction: table.Asc}, a.workers.query.Sort)
	require.Equal(t, "Ahmed Hassan", workerNames(a)[0])

	press(a, "enter")
	require.Equal(t, table.Desc, a.workers.query.Sort.Direction)
	require.Equal(t, "Zainab Raza", workerNames(a)[0])

	// Team is not sortable.
	press(a, "right", "enter")
	require.Equal(t, service.SortName, a.workers.query.Sort.Column)
}

func TestWorkersPaging(t *testing.T) {
	t.Parallel()
	a, _ := newTestApp(t, 120)
	press(a, "2")

	press(a, "[")
	require.Equal(t, 1, a.workers.query.Page)

	press(a, "]", "]")
	require.Equal(t, 3, a.workers.page.Page)
	require.Len(t, a.workers.page.Workers, 2)

	press(a, "]")
	require.Equal(t, 3, a.workers.page.Page)

	press(a, "[")
	require.Equal(t, 2, a.workers.page.Page)
}

func TestWorkersSearchAndFilters(t *testing.T) {
	t.Parallel()
	a, _ := newTestApp(t, 120)
	press(a, "2", "/", "f", "a", "t", "m", "a")
	require.True(t, a.workers.searching)
	require.Equal(t, []string{"Fatima Ali"}, workerNames(a))

	press(a, "enter")
	require.False(t, a.workers.searching)
	require.Equal(t, "fatma", a.workers.query.Search)

	press(a, "c")
	require.Equal(t, 12, a.workers.page.Total)

	press(a, "s")
	require.Equal(t, repository.StatusPresent, a.workers.query.Status)
	require.Equal(t, 7, a.workers.page.Total)

	press(a, "t")
	require.Equal(t, "Cambridge Press", a.workers.query.Team)
	require.Equal(t, []string{"Bilal Qureshi", "Omar Farooq"}, workerNames(a))

	press(a, "/", "esc")
	require.False(t, a.workers.searching)
	require.Empty(t, a.workers.query.Search)
}

func TestBulkMarkNeedsSelection(t *testing.T) {
	t.Parallel()
	a, _ := newTestApp(t, 120)
	press(a, "2", "A")

	require.True(t, a.toast.Visible)
	require.Contains(t, a.toast.Message, "Select workers")
}

func TestBulkMarkSelected(t *testing.T) {
	t.Parallel()
	a, _ := newTestApp(t, 120)
	press(a, "2", "x", "down", "x")
	require.Len(t, a.workers.selected, 2)
	require.Contains(t, view(a), "2 selected")

	press(a, "A")
	require.True(t, a.toast.Visible)
	require.Equal(t, "Marked 2 workers absent", a.toast.Message)
	require.Empty(t, a.workers.selected)

	press(a, "s", "s")
	require.Equal(t, repository.StatusAbsent, a.workers.query.Status)
	require.Equal(t, 4, a.workers.page.Total)
}

func TestOpenWorkerDetailAndBack(t *testing.T) {
	t.Parallel()
	a, _ := newTestApp(t, 120)
	press(a, "2", "enter")

	require.Equal(t, screenDetail, a.screen)
	require.Equal(t, "Ahmed Hassan", a.detail.detail.Worker.Name)
	out := view(a)
	require.Contains(t, out, "Home › Workers › Ahmed Hassan")
	require.Contains(t, out, "Attendance")
	require.Contains(t, out, "Page 1 of 6")

	press(a, "tab")
	require.Equal(t, tabVisits, a.detail.tab)
	require.Contains(t, view(a), "City Grammar")

	press(a, "esc")
	require.Equal(t, screenWorkers, a.screen)
}

func TestExportPopup(t *testing.T) {
	t.Parallel()
	a, _ := newTestApp(t, 120)
	press(a, "2", "e")
	require.Equal(t, modalExport, a.modal)
	require.Contains(t, view(a), "Export workers")

	press(a, "down", "enter")
	require.Equal(t, modalNone, a.modal)
	require.True(t, a.toast.Visible)
	require.Contains(t, a.toast.Message, "PDF workers")

	press(a, "e", "esc")
	require.Equal(t, modalNone, a.modal)
}

func TestLoadErrorAndRetry(t *testing.T) {
	t.Parallel()
	a, db := newTestApp(t, 120)
	require.NoError(t, db.Close())

	press(a, "2")
	require.Error(t, a.workers.err)
	require.True(t, a.statusErr)
	out := view(a)
	require.Contains(t, out, "Failed to load data")
	require.Contains(t, out, "Try Again")

	seq := a.workers.seq
	press(a, "r")
	require.Greater(t, a.workers.seq, seq)
	require.Error(t, a.workers.err)
}

func TestStaleLoadIsIgnored(t *testing.T) {
	t.Parallel()
	a, _ := newTestApp(t, 120)
	press(a, "2")
	before := workerNames(a)

	a.Update(rosterMsg{seq: a.workers.seq - 1, page: service.RosterPage{Page: 1, TotalPages: 1}})
	require.Equal(t, before, workerNames(a))
}

func TestGPSRangeCycle(t *testing.T) {
	t.Parallel()
	a, _ := newTestApp(t, 120)
	press(a, "3")
	require.Equal(t, screenGPS, a.screen)
	require.Len(t, a.gps.logs, 18)
	require.Contains(t, view(a), "GPS Logs")

	press(a, "d")
	require.Equal(t, service.RangeWeek, a.gps.rng)
	require.Len(t, a.gps.logs, 27)
}

func TestResetConfirm(t *testing.T) {
	t.Parallel()
	a, _ := newTestApp(t, 120)
	press(a, "R")
	require.Equal(t, modalConfirmReset, a.modal)

	press(a, "n")
	require.Equal(t, modalNone, a.modal)

	press(a, "R", "y")
	require.True(t, a.toast.Visible)
	require.Equal(t, "Demo data reset", a.toast.Message)
}

func TestViewFitsTerminal(t *testing.T) {
	t.Parallel()
	a, _ := newTestApp(t, 120)
	press(a, "2")
	lines := strings.Split(a.View(), "\n")
	require.Len(t, lines, 60)
	for _, l := range lines {
		require.LessOrEqual(t, ansi.StringWidth(l), 120)
	}
}

func TestViewPrefsPersist(t *testing.T) {
	a, _ := newTestApp(t, 120)
	store := &prefs.Store{Path: filepath.Join(t.TempDir(), "prefs.toml")}
	a.services.Prefs = store

	press(a, "2", "s")
	press(a, "3", "d")

	saved, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, repository.StatusPresent, saved.StatusFilter)
	require.Equal(t, string(service.RangeWeek), saved.GPSRange)

	saved.WorkerSort, saved.WorkerSortDesc = service.SortKms, true
	require.NoError(t, store.Save(saved))
	b := New(context.Background(), testConfig(), a.services, time.UTC, logging.Discard())
	require.Equal(t, repository.StatusPresent, b.workers.query.Status)
	require.Equal(t, service.RangeWeek, b.gps.rng)
	require.Equal(t, table.SortState{Column: service.SortKms, Direction: table.Desc}, b.workers.query.Sort)
}

func TestViewPrefsIgnoreUnknownValues(t *testing.T) {
	a, _ := newTestApp(t, 120)
	store := &prefs.Store{Path: filepath.Join(t.TempDir(), "prefs.toml")}
	require.NoError(t, store.Save(prefs.Prefs{WorkerSort: "bogus", StatusFilter: "asleep", GPSRange: "year"}))
	a.services.Prefs = store

	b := New(context.Background(), testConfig(), a.services, time.UTC, logging.Discard())
	require.Equal(t, newWorkersState().query.Sort, b.workers.query.Sort)
	require.Empty(t, b.workers.query.Status)
	require.Equal(t, service.RangeToday, b.gps.rng)
}

func TestSettingsEditAndSave(t *testing.T) {
	t.Parallel()
	a, _ := newTestApp(t, 120)
	var saved []config.Config
	a.services.SaveConfig = func(c config.Config) error {
		saved = append(saved, c)
		return nil
	}

	press(a, "4")
	out := view(a)
	require.Contains(t, out, "Settings")
	require.Contains(t, out, "Rows per page")
	require.Contains(t, out, "EduReach Education")

	press(a, "down", "down", "enter", "8", "enter")
	require.False(t, a.settings.editing)
	require.True(t, a.settings.dirty)
	require.Contains(t, view(a), "8 *")
	require.Equal(t, 5, a.cfg.UI.PageSize)

	press(a, "w")
	require.Len(t, saved, 1)
	require.Equal(t, 8, saved[0].UI.PageSize)
	require.Equal(t, 8, a.cfg.UI.PageSize)
	require.False(t, a.settings.dirty)
	require.Equal(t, "Settings saved", a.toast.Message)

	press(a, "2")
	require.Len(t, a.workers.page.Workers, 8)
}

func TestSettingsRejectsInvalidValues(t *testing.T) {
	t.Parallel()
	a, _ := newTestApp(t, 120)

	press(a, "4", "down", "down", "down", "enter", "abc", "enter")
	require.True(t, a.settings.editing)
	require.Contains(t, a.toast.Message, "breakpoint must be")

	press(a, "esc")
	require.False(t, a.settings.editing)
	require.False(t, a.settings.dirty)

	press(a, "up", "up", "enter", "Mars/Olympus", "enter")
	require.True(t, a.settings.editing)
	require.Contains(t, a.toast.Message, "unknown timezone")
	press(a, "esc")

	// Nothing to save, and the discard key is a no-op.
	press(a, "w", "u")
	require.Equal(t, testConfig(), a.cfg)
}

func TestSettingsDiscard(t *testing.T) {
	t.Parallel()
	a, _ := newTestApp(t, 120)

	press(a, "4", "enter", "North Region", "enter")
	require.Equal(t, "North Region", a.settings.draft.Org.Name)
	press(a, "u")
	require.False(t, a.settings.dirty)
	require.Equal(t, "EduReach Education", a.settings.draft.Org.Name)
	require.Equal(t, "Changes discarded", a.toast.Message)
}

func TestSettingsPersistToConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("FIELDOPS_CONFIG", filepath.Join(dir, "config.toml"))

	a, _ := newTestApp(t, 120)
	a.services.SaveConfig = config.Save

	press(a, "4", "enter", "North Region", "enter", "down", "enter", "Asia/Dubai", "enter", "w")
	require.Equal(t, "Settings saved", a.toast.Message)
	require.Equal(t, "Asia/Dubai", a.tz.String())

	got, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "North Region", got.Org.Name)
	require.Equal(t, "Asia/Dubai", got.Org.Timezone)
	require.Equal(t, 5, got.UI.PageSize)
}
