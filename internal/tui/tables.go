package tui

import (
	"slices"

	"github.com/jask/fieldops/internal/table"
)

// tableNav is the keyboard position inside one table: a focused header and a
// row cursor. Only one of them is active at a time.
type tableNav struct {
	header      int
	cursor      int
	focusHeader bool
}

func (n *tableNav) moveHeader(delta, columns int) {
	if columns == 0 {
		return
	}
	if !n.focusHeader {
		n.focusHeader = true
		return
	}
	n.header = (n.header + delta + columns) % columns
}

func (n *tableNav) moveCursor(delta, rows int) {
	n.focusHeader = false
	n.cursor = clamp(n.cursor+delta, 0, max(0, rows-1))
}

func (n *tableNav) clampCursor(rows int) {
	n.cursor = clamp(n.cursor, 0, max(0, rows-1))
}

func (n tableNav) focus() table.Focus {
	header := -1
	if n.focusHeader {
		header = n.header
	}
	return table.Focus{Enabled: true, Header: header, Row: n.cursor}
}

// handleTableAction routes a table key to the table intents. It reports
// whether the action belonged to the table.
func handleTableAction(act Action, p table.Props, nav *tableNav) bool {
	switch act {
	case actionHeaderLeft:
		nav.moveHeader(-1, len(p.Columns))
	case actionHeaderRight:
		nav.moveHeader(1, len(p.Columns))
	case actionRowUp:
		nav.moveCursor(-1, len(p.Rows))
	case actionRowDown:
		nav.moveCursor(1, len(p.Rows))
	case actionPrevPage:
		if table.PressPrevious(p) {
			nav.cursor = 0
		}
	case actionNextPage:
		if table.PressNext(p) {
			nav.cursor = 0
		}
	case actionRetry:
		table.PressRetry(p)
	case actionActivate:
		if !nav.focusHeader || nav.header >= len(p.Columns) {
			return false
		}
		if p.Wide() {
			table.ActivateHeader(p, nav.header)
		} else {
			table.SortBy(p, p.Columns[nav.header].Key)
		}
	default:
		return false
	}
	return true
}

// pageOf sorts items with the comparator registered for the sort column and
// returns the requested page, clamped, with its pagination state.
func pageOf[T any](items []T, s table.SortState, by map[string]func(a, b T) int, page, size int) ([]T, table.PaginationState) {
	sorted := slices.Clone(items)
	if cmp, ok := by[s.Column]; ok {
		if s.Direction == table.Desc {
			slices.SortStableFunc(sorted, func(a, b T) int { return cmp(b, a) })
		} else {
			slices.SortStableFunc(sorted, cmp)
		}
	}
	size = max(1, size)
	pages := max(1, (len(sorted)+size-1)/size)
	page = clamp(page, 1, pages)
	start := min((page-1)*size, len(sorted))
	end := min(start+size, len(sorted))
	return sorted[start:end], table.PaginationState{CurrentPage: page, TotalPages: pages}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
