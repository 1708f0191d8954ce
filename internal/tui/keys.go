package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type Action string

type Binding struct {
	Action Action
	Keys   []string
	Help   string
	Scopes []string
}

// KeyRegistry resolves key presses per scope, falling back to the global
// scope.
type KeyRegistry struct {
	bindingsByScope map[string][]*Binding
	indexByScope    map[string]map[string]*Binding
}

const (
	scopeGlobal       = "global"
	scopeDashboard    = "dashboard"
	scopeWorkers      = "workers"
	scopeDetail       = "detail"
	scopeGPS          = "gps"
	scopeSearch       = "search"
	scopeExport       = "export"
	scopeConfirm      = "confirm"
	scopeSettings     = "settings"
	scopeSettingsEdit = "settings_edit"
)

const (
	actionQuit         Action = "quit"
	actionDashboard    Action = "dashboard"
	actionWorkers      Action = "workers"
	actionGPS          Action = "gps"
	actionHeaderLeft   Action = "header_left"
	actionHeaderRight  Action = "header_right"
	actionRowUp        Action = "row_up"
	actionRowDown      Action = "row_down"
	actionActivate     Action = "activate"
	actionPrevPage     Action = "prev_page"
	actionNextPage     Action = "next_page"
	actionSearch       Action = "search"
	actionStatusFilter Action = "status_filter"
	actionTeamFilter   Action = "team_filter"
	actionClearFilters Action = "clear_filters"
	actionToggleSelect Action = "toggle_select"
	actionMarkPresent  Action = "mark_present"
	actionMarkAbsent   Action = "mark_absent"
	actionExport       Action = "export"
	actionRetry        Action = "retry"
	actionBack         Action = "back"
	actionNextTab      Action = "next_tab"
	actionPrevTab      Action = "prev_tab"
	actionRange        Action = "range"
	actionScrollUp     Action = "scroll_up"
	actionScrollDown   Action = "scroll_down"
	actionReset        Action = "reset"
	actionConfirm      Action = "confirm"
	actionCancel       Action = "cancel"
	actionNavigate     Action = "navigate"
	actionSettings     Action = "settings"
	actionSave         Action = "save"
	actionDiscard      Action = "discard"
)

func NewKeyRegistry() *KeyRegistry {
	r := &KeyRegistry{
		bindingsByScope: make(map[string][]*Binding),
		indexByScope:    make(map[string]map[string]*Binding),
	}

	reg := func(scope string, action Action, keys []string, help string) {
		r.Register(Binding{Action: action, Keys: keys, Help: help, Scopes: []string{scope}})
	}
	// Table screens share header, row and pager keys.
	tableKeys := func(scope string) {
		reg(scope, actionHeaderLeft, []string{"←", "left", "h"}, "header")
		reg(scope, actionHeaderRight, []string{"→", "right", "l"}, "header")
		reg(scope, actionRowUp, []string{"↑", "up", "k"}, "row")
		reg(scope, actionRowDown, []string{"↓", "down", "j"}, "row")
		reg(scope, actionPrevPage, []string{"[", "pgup"}, "prev page")
		reg(scope, actionNextPage, []string{"]", "pgdown"}, "next page")
		reg(scope, actionRetry, []string{"r"}, "retry")
		reg(scope, actionExport, []string{"e"}, "export")
	}

	reg(scopeGlobal, actionQuit, []string{"q", "ctrl+c"}, "quit")
	reg(scopeGlobal, actionDashboard, []string{"1"}, "dashboard")
	reg(scopeGlobal, actionWorkers, []string{"2"}, "workers")
	reg(scopeGlobal, actionGPS, []string{"3"}, "gps logs")
	reg(scopeGlobal, actionSettings, []string{"4"}, "settings")
	reg(scopeGlobal, actionScrollUp, []string{"ctrl+u"}, "scroll up")
	reg(scopeGlobal, actionScrollDown, []string{"ctrl+d"}, "scroll down")
	reg(scopeGlobal, actionReset, []string{"R"}, "reset demo data")

	reg(scopeDashboard, actionRetry, []string{"r"}, "retry")
	reg(scopeDashboard, actionExport, []string{"e"}, "export")

	reg(scopeWorkers, actionActivate, []string{"enter"}, "sort/open")
	tableKeys(scopeWorkers)
	reg(scopeWorkers, actionSearch, []string{"/"}, "search")
	reg(scopeWorkers, actionStatusFilter, []string{"s"}, "status")
	reg(scopeWorkers, actionTeamFilter, []string{"t"}, "team")
	reg(scopeWorkers, actionClearFilters, []string{"c"}, "clear")
	reg(scopeWorkers, actionToggleSelect, []string{"x", "space"}, "select")
	reg(scopeWorkers, actionMarkPresent, []string{"P"}, "mark present")
	reg(scopeWorkers, actionMarkAbsent, []string{"A"}, "mark absent")

	reg(scopeDetail, actionActivate, []string{"enter"}, "sort")
	tableKeys(scopeDetail)
	reg(scopeDetail, actionNextTab, []string{"tab"}, "next tab")
	reg(scopeDetail, actionPrevTab, []string{"shift+tab"}, "prev tab")
	reg(scopeDetail, actionBack, []string{"esc"}, "back")

	reg(scopeGPS, actionActivate, []string{"enter"}, "sort")
	tableKeys(scopeGPS)
	reg(scopeGPS, actionRange, []string{"d"}, "range")

	reg(scopeSettings, actionRowUp, []string{"↑", "up", "k"}, "row")
	reg(scopeSettings, actionRowDown, []string{"↓", "down", "j"}, "row")
	reg(scopeSettings, actionActivate, []string{"enter"}, "edit")
	reg(scopeSettings, actionSave, []string{"w", "ctrl+s"}, "save")
	reg(scopeSettings, actionDiscard, []string{"u"}, "discard")

	reg(scopeSettingsEdit, actionConfirm, []string{"enter"}, "apply")
	reg(scopeSettingsEdit, actionCancel, []string{"esc"}, "cancel")

	reg(scopeSearch, actionConfirm, []string{"enter"}, "done")
	reg(scopeSearch, actionCancel, []string{"esc"}, "clear search")

	reg(scopeExport, actionNavigate, []string{"↑/↓", "up", "down", "k", "j"}, "format")
	reg(scopeExport, actionConfirm, []string{"enter"}, "export")
	reg(scopeExport, actionCancel, []string{"esc"}, "cancel")

	reg(scopeConfirm, actionConfirm, []string{"y", "enter"}, "confirm")
	reg(scopeConfirm, actionCancel, []string{"n", "esc"}, "cancel")

	return r
}

func (r *KeyRegistry) Register(b Binding) {
	if r == nil {
		return
	}
	for _, scope := range b.Scopes {
		scope = strings.TrimSpace(scope)
		if scope == "" || len(b.Keys) == 0 {
			continue
		}
		if _, ok := r.indexByScope[scope]; !ok {
			r.indexByScope[scope] = make(map[string]*Binding)
		}
		normKeys := normalizeKeyList(b.Keys)
		if len(normKeys) == 0 || r.scopeHasAnyKey(scope, normKeys) {
			continue
		}

		copyBinding := b
		copyBinding.Keys = normKeys
		copyBinding.Scopes = []string{scope}
		r.bindingsByScope[scope] = append(r.bindingsByScope[scope], &copyBinding)
		for _, k := range copyBinding.Keys {
			r.indexByScope[scope][k] = &copyBinding
		}
	}
}

func (r *KeyRegistry) BindingsForScope(scope string) []Binding {
	if r == nil {
		return nil
	}
	items := r.bindingsByScope[scope]
	out := make([]Binding, 0, len(items))
	for _, b := range items {
		out = append(out, *b)
	}
	return out
}

// Lookup finds the binding for keyName in scope, then in the global scope.
func (r *KeyRegistry) Lookup(keyName, scope string) *Binding {
	if r == nil || keyName == "" {
		return nil
	}
	keyName = normalizeKeyName(keyName)
	if b := r.lookupInScope(keyName, scope); b != nil {
		return b
	}
	if scope != scopeGlobal {
		return r.lookupInScope(keyName, scopeGlobal)
	}
	return nil
}

// HelpBindings returns the footer help for scope. Bindings sharing a help
// label collapse into one entry.
func (r *KeyRegistry) HelpBindings(scope string) []key.Binding {
	items := r.BindingsForScope(scope)
	out := make([]key.Binding, 0, len(items))
	seen := make(map[string]int)
	for _, b := range items {
		if len(b.Keys) == 0 {
			continue
		}
		if i, ok := seen[b.Help]; ok {
			h := out[i].Help()
			out[i].SetHelp(h.Key+"/"+b.Keys[0], h.Desc)
			continue
		}
		seen[b.Help] = len(out)
		out = append(out, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Help)))
	}
	return out
}

func (r *KeyRegistry) lookupInScope(keyName, scope string) *Binding {
	if scope == "" {
		return nil
	}
	lookup, ok := r.indexByScope[scope]
	if !ok {
		return nil
	}
	return lookup[keyName]
}

func (r *KeyRegistry) scopeHasAnyKey(scope string, keys []string) bool {
	lookup := r.indexByScope[scope]
	for _, k := range keys {
		if _, exists := lookup[k]; exists {
			return true
		}
	}
	return false
}

func normalizeKeyList(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]bool)
	for _, k := range keys {
		n := normalizeKeyName(k)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func normalizeKeyName(k string) string {
	if k == " " {
		return "space"
	}
	trimmed := strings.TrimSpace(k)
	if trimmed == "" {
		return ""
	}
	if len(trimmed) == 1 {
		ch := trimmed[0]
		if ch >= 'A' && ch <= 'Z' {
			// Uppercase stays distinct so P and p can bind different actions.
			return trimmed
		}
	}
	s := strings.ToLower(trimmed)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "control+", "ctrl+")
	s = strings.ReplaceAll(s, "return", "enter")
	return s
}
