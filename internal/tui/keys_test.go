package tui

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/fieldops/internal/table"
)

func TestKeyLookupFallsBackToGlobal(t *testing.T) {
	t.Parallel()
	r := NewKeyRegistry()

	b := r.Lookup("q", scopeWorkers)
	require.NotNil(t, b)
	require.Equal(t, actionQuit, b.Action)

	require.Equal(t, actionMarkPresent, r.Lookup("P", scopeWorkers).Action)
	require.Nil(t, r.Lookup("p", scopeWorkers))
	require.Equal(t, actionToggleSelect, r.Lookup(" ", scopeWorkers).Action)
	require.Equal(t, actionRange, r.Lookup("d", scopeGPS).Action)
	require.Nil(t, r.Lookup("d", scopeWorkers))
	require.Nil(t, r.Lookup("", scopeWorkers))
}

func TestHelpBindingsCollapseSharedLabels(t *testing.T) {
	t.Parallel()
	r := NewKeyRegistry()

	var headerHelp []string
	for _, b := range r.HelpBindings(scopeWorkers) {
		if b.Help().Desc == "header" {
			headerHelp = append(headerHelp, b.Help().Key)
		}
	}
	require.Equal(t, []string{"←/→"}, headerHelp)
}

func TestPageOfSortsAndClamps(t *testing.T) {
	t.Parallel()
	by := map[string]func(a, b int) int{
		"n": func(a, b int) int { return a - b },
	}
	items := []int{5, 3, 9, 1, 7}

	page, ps := pageOf(items, table.SortState{Column: "n"}, by, 1, 2)
	require.Equal(t, []int{1, 3}, page)
	require.Equal(t, table.PaginationState{CurrentPage: 1, TotalPages: 3}, ps)

	page, ps = pageOf(items, table.SortState{Column: "n", Direction: table.Desc}, by, 9, 2)
	require.Equal(t, []int{1}, page)
	require.Equal(t, 3, ps.CurrentPage)

	page, ps = pageOf([]int{}, table.SortState{}, by, 0, 2)
	require.Empty(t, page)
	require.Equal(t, table.PaginationState{CurrentPage: 1, TotalPages: 1}, ps)

	// Unknown columns keep input order.
	page, _ = pageOf(items, table.SortState{Column: "x"}, by, 1, 5)
	require.Equal(t, items, page)
}

func TestTableNavFocus(t *testing.T) {
	t.Parallel()
	var n tableNav
	require.Equal(t, table.Focus{Enabled: true, Header: -1, Row: 0}, n.focus())

	n.moveHeader(1, 3)
	require.Equal(t, 0, n.focus().Header)
	n.moveHeader(-1, 3)
	require.Equal(t, 2, n.header)

	n.moveCursor(5, 3)
	require.False(t, n.focusHeader)
	require.Equal(t, 2, n.cursor)
	n.clampCursor(1)
	require.Equal(t, 0, n.cursor)
}
