package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	// Timezone edits are checked against embedded zone data, not the host's.
	_ "time/tzdata"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/fieldops/internal/config"
	"github.com/jask/fieldops/internal/table"
	"github.com/jask/fieldops/internal/widgets"
)

// settingField is one editable config key.
type settingField struct {
	key   string
	label string
	get   func(config.Config) string
	set   func(*config.Config, string) error
}

func positiveInt(label, v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a whole number of at least 1", label)
	}
	return n, nil
}

var settingFields = []settingField{
	{
		key:   "org.name",
		label: "Organisation",
		get:   func(c config.Config) string { return c.Org.Name },
		set: func(c *config.Config, v string) error {
			c.Org.Name = v
			return nil
		},
	},
	{
		key:   "org.timezone",
		label: "Timezone",
		get:   func(c config.Config) string { return c.Org.Timezone },
		set: func(c *config.Config, v string) error {
			if _, err := time.LoadLocation(v); err != nil {
				return fmt.Errorf("unknown timezone %q", v)
			}
			c.Org.Timezone = v
			return nil
		},
	},
	{
		key:   "ui.page_size",
		label: "Rows per page",
		get:   func(c config.Config) string { return strconv.Itoa(c.UI.PageSize) },
		set: func(c *config.Config, v string) error {
			n, err := positiveInt("rows per page", v)
			if err != nil {
				return err
			}
			c.UI.PageSize = n
			return nil
		},
	},
	{
		key:   "ui.breakpoint",
		label: "Table breakpoint",
		get:   func(c config.Config) string { return strconv.Itoa(c.UI.Breakpoint) },
		set: func(c *config.Config, v string) error {
			n, err := positiveInt("breakpoint", v)
			if err != nil {
				return err
			}
			c.UI.Breakpoint = n
			return nil
		},
	},
	{
		key:   "ui.currency_symbol",
		label: "Currency",
		get:   func(c config.Config) string { return c.UI.CurrencySymbol },
		set: func(c *config.Config, v string) error {
			c.UI.CurrencySymbol = v
			return nil
		},
	},
}

// settingsState edits a draft copy of the config; nothing applies until it
// is saved.
type settingsState struct {
	draft   config.Config
	dirty   bool
	saving  bool
	nav     tableNav
	editing bool
	input   textinput.Model
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.CharLimit = 64
	ti.Width = 32
	return ti
}

type settingsSavedMsg struct {
	cfg config.Config
	tz  *time.Location
	err error
}

// enterSettings starts from the live config unless there are unsaved edits.
func (a *App) enterSettings() {
	s := &a.settings
	if !s.dirty {
		s.draft = a.cfg
	}
}

var settingsColumns = []table.Column{
	{Key: "setting", Title: "Setting", WidthWeight: 1.4},
	{Key: "value", Title: "Value", WidthWeight: 2},
	{Key: "key", Title: "Config key", WidthWeight: 1.4},
}

func (a *App) settingsProps() table.Props {
	s := &a.settings
	rows := make([]table.Row, 0, len(settingFields))
	for _, f := range settingFields {
		value := f.get(s.draft)
		if value != f.get(a.cfg) {
			value += " *"
		}
		rows = append(rows, table.Row{
			"setting": table.Text(f.label),
			"value":   table.Text(value),
			"key":     table.Text(f.key),
		})
	}
	return table.Props{
		Columns:    settingsColumns,
		Rows:       rows,
		Width:      a.logicalWidth(),
		Breakpoint: a.cfg.UI.Breakpoint,
		Focus:      s.nav.focus(),
	}
}

func (a *App) settingsAction(act Action) {
	s := &a.settings
	switch act {
	case actionRowUp:
		s.nav.moveCursor(-1, len(settingFields))
	case actionRowDown:
		s.nav.moveCursor(1, len(settingFields))
	case actionActivate:
		f := settingFields[s.nav.cursor]
		s.editing = true
		s.input = newSettingsInput()
		s.input.Placeholder = f.get(s.draft)
		a.queue(s.input.Focus())
	case actionSave:
		a.saveSettings()
	case actionDiscard:
		if s.dirty {
			s.draft, s.dirty = a.cfg, false
			a.showToast("Changes discarded", widgets.ToastInfo)
		}
	}
}

func (a *App) handleSettingsEditKey(m tea.KeyMsg) {
	s := &a.settings
	if b := a.keys.Lookup(m.String(), scopeSettingsEdit); b != nil {
		switch b.Action {
		case actionConfirm:
			a.applySettingEdit()
			return
		case actionCancel:
			s.editing = false
			s.input.Blur()
			return
		case actionQuit:
			if m.String() == "ctrl+c" {
				a.queue(tea.Quit)
				return
			}
		}
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(m)
	a.queue(cmd)
}

// applySettingEdit writes the input into the draft. An empty input keeps the
// current value; an invalid one keeps the editor open.
func (a *App) applySettingEdit() {
	s := &a.settings
	f := settingFields[s.nav.cursor]
	v := strings.TrimSpace(s.input.Value())
	if v != "" && v != f.get(s.draft) {
		draft := s.draft
		if err := f.set(&draft, v); err != nil {
			a.showToast(err.Error(), widgets.ToastWarning)
			return
		}
		s.draft = draft
		s.dirty = s.draft != a.cfg
		a.log.Info("setting edited", "key", f.key, "value", v)
	}
	s.editing = false
	s.input.Blur()
}

func (a *App) saveSettings() {
	s := &a.settings
	if !s.dirty || s.saving {
		return
	}
	cfg := s.draft
	if err := cfg.Validate(); err != nil {
		a.showToast(err.Error(), widgets.ToastWarning)
		return
	}
	tz, err := time.LoadLocation(cfg.Org.Timezone)
	if err != nil {
		a.showToast(fmt.Sprintf("unknown timezone %q", cfg.Org.Timezone), widgets.ToastWarning)
		return
	}
	save := a.services.SaveConfig
	s.saving = true
	a.log.Info("save settings")
	a.queue(func() tea.Msg {
		if save == nil {
			return settingsSavedMsg{err: errors.New("saving settings is not configured")}
		}
		return settingsSavedMsg{cfg: cfg, tz: tz, err: save(cfg)}
	})
}

func (a *App) applySettingsSaved(m settingsSavedMsg) {
	s := &a.settings
	s.saving = false
	if m.err != nil {
		a.setError("save settings", m.err)
		a.showToast("Settings not saved", widgets.ToastError)
		return
	}
	a.clearError()
	a.cfg, a.tz = m.cfg, m.tz
	s.dirty = s.draft != a.cfg
	a.showToast("Settings saved", widgets.ToastSuccess)
}

func (a *App) settingsSubtitle() string {
	switch {
	case a.settings.saving:
		return "Saving…"
	case a.settings.dirty:
		return "Unsaved changes · w to save, u to discard"
	default:
		return "Organisation and display settings"
	}
}

func (a *App) renderSettings() string {
	s := &a.settings
	var b strings.Builder
	b.WriteString(table.Build(a.settingsProps()).Render(a.width, a.styles))
	if s.editing {
		f := settingFields[s.nav.cursor]
		b.WriteString("\n\n")
		b.WriteString(a.styles.Subtitle.Render("Edit " + f.label + " (enter to apply, esc to cancel)"))
		b.WriteString("\n")
		b.WriteString(s.input.View())
	}
	return b.String()
}
