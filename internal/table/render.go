package table

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/fieldops/internal/badge"
	"github.com/jask/fieldops/internal/theme"
	"github.com/jask/fieldops/internal/widgets"
)

const (
	columnSep = " │ "
	gutter    = 2
)

var actionStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)

// Render draws the view into width terminal cells.
func (v View) Render(width int, st theme.Styles) string {
	if width <= 0 {
		return ""
	}
	var body string
	switch v.Mode {
	case ModeSkeleton:
		return v.Skeleton.Render(width, st)
	case ModeError:
		return v.Error.Render(width, st)
	case ModeEmpty:
		return v.Empty.Render(width, st)
	case ModeTable:
		body = v.renderTable(width, st)
	case ModeCards:
		body = v.renderCards(width, st)
	}
	if v.Pager != nil {
		body += "\n\n" + v.Pager.Render(width, st)
	}
	return body
}

func (v View) columnWidths(width int) []int {
	n := len(v.Header)
	if n == 0 {
		return nil
	}
	usable := width - gutter - ansi.StringWidth(columnSep)*(n-1)
	weights := make([]float64, n)
	for i, h := range v.Header {
		weights[i] = h.Weight
	}
	return widgets.SplitWidths(max(n, usable), n, weights)
}

func (v View) renderTable(width int, st theme.Styles) string {
	widths := v.columnWidths(width)
	lines := make([]string, 0, len(v.Rows)+2)

	heads := make([]string, len(v.Header))
	rules := make([]string, len(v.Header))
	for i, h := range v.Header {
		heads[i] = alignCell(renderHeader(h, st), widths[i], h.Align)
		rules[i] = strings.Repeat("─", widths[i])
	}
	lines = append(lines,
		strings.Repeat(" ", gutter)+strings.Join(heads, columnSep),
		strings.Repeat("─", gutter)+strings.Join(rules, "─┼─"),
	)

	for r, row := range v.Rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = alignCell(renderCell(c, st), widths[i], c.Align)
		}
		prefix := strings.Repeat(" ", gutter)
		if v.HasCursor && r == v.CursorRow {
			prefix = lipgloss.NewStyle().Foreground(theme.Accent).Render("▶") + " "
		}
		lines = append(lines, prefix+strings.Join(cells, columnSep))
	}
	return strings.Join(lines, "\n")
}

func (v View) renderCards(width int, st theme.Styles) string {
	inner := max(4, width-4)
	cards := make([]string, 0, len(v.Cards))
	for r, card := range v.Cards {
		lines := make([]string, len(card.Fields))
		for i, f := range card.Fields {
			value := renderCell(f.Cell, st)
			value = ansi.Truncate(value, max(1, inner/2), "…")
			labelWidth := max(1, inner-ansi.StringWidth(value)-1)
			label := widgets.PadRight(st.CardLabel.Render(f.Label), labelWidth)
			lines[i] = label + " " + value
		}
		style := st.CardBorder.Width(inner + 2)
		if v.HasCursor && r == v.CursorRow {
			style = style.BorderForeground(theme.Accent)
		}
		cards = append(cards, style.Render(strings.Join(lines, "\n")))
	}
	return strings.Join(cards, "\n")
}

func renderHeader(h HeaderCell, st theme.Styles) string {
	style := st.HeaderOff
	if h.Sortable {
		style = st.HeaderCell
	}
	if h.Focused {
		style = st.HeaderFocus
	}
	out := style.Render(h.Title)
	if h.Glyph != "" {
		glyph := st.SortGlyph
		if h.Active {
			glyph = st.SortActive
		}
		out += " " + glyph.Render(h.Glyph)
	}
	return out
}

func renderCell(c Cell, st theme.Styles) string {
	if c.Placeholder {
		return st.Placeholder.Render(c.Text)
	}
	switch c.Hint {
	case HintBadge:
		if c.Err != nil {
			return st.Cell.Render(c.Text)
		}
		out, err := badge.Badge{Label: c.Text, Variant: c.Variant, Size: badge.Small}.Render()
		if err != nil {
			return st.Cell.Render(c.Text)
		}
		return out
	case HintAction:
		return actionStyle.Render("[ " + c.Text + " ]")
	default:
		return st.Cell.Render(c.Text)
	}
}

func alignCell(s string, width int, a Align) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "…")
	pad := width - ansi.StringWidth(s)
	if pad <= 0 {
		return s
	}
	switch a {
	case AlignRight:
		return strings.Repeat(" ", pad) + s
	case AlignCenter:
		left := pad / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
	default:
		return s + strings.Repeat(" ", pad)
	}
}

// Render draws the previous/next controls around the page indicator.
func (p Pager) Render(width int, st theme.Styles) string {
	prev := st.ButtonOff.Render("‹ Previous")
	if p.PrevEnabled {
		prev = st.Button.Render("‹ Previous")
	}
	next := st.ButtonOff.Render("Next ›")
	if p.NextEnabled {
		next = st.Button.Render("Next ›")
	}
	info := st.PagerInfo.Render(fmt.Sprintf("Page %d of %d", p.Current, p.Total))
	used := ansi.StringWidth(prev) + ansi.StringWidth(info) + ansi.StringWidth(next)
	gap := max(1, (width-used)/2)
	return prev + strings.Repeat(" ", gap) + info + strings.Repeat(" ", gap) + next
}
