package table

import (
	"github.com/jask/fieldops/internal/badge"
	"github.com/jask/fieldops/internal/widgets"
)

const (
	// DefaultBreakpoint is the width, in logical units, above which rows are
	// laid out as a table instead of cards.
	DefaultBreakpoint = 768
	// Placeholder is drawn for cells with no value.
	Placeholder = "—"
	// SkeletonCount is the number of placeholder items shown while loading.
	SkeletonCount = 5

	DefaultEmptyMessage = "No data available"
)

const (
	GlyphNeutral = "↕"
	GlyphAsc     = "↑"
	GlyphDesc    = "↓"
)

// Props is everything the table needs for one render.
type Props struct {
	Columns    []Column
	Rows       []Row
	Sort       SortState
	Pagination PaginationState

	Loading      bool
	Error        bool
	EmptyMessage string

	// Width is the viewport width in logical units.
	Width      int
	Breakpoint int

	Focus Focus
	// Frame drives the loading skeleton's shimmer.
	Frame int

	OnSort       func(key string)
	OnPageChange func(page int)
	OnRetry      func()
}

func (p Props) breakpoint() int {
	if p.Breakpoint <= 0 {
		return DefaultBreakpoint
	}
	return p.Breakpoint
}

// Wide reports whether Width is past the breakpoint.
func (p Props) Wide() bool {
	return p.Width > p.breakpoint()
}

type Mode int

const (
	ModeSkeleton Mode = iota
	ModeError
	ModeEmpty
	ModeTable
	ModeCards
)

func (m Mode) String() string {
	switch m {
	case ModeSkeleton:
		return "skeleton"
	case ModeError:
		return "error"
	case ModeEmpty:
		return "empty"
	case ModeTable:
		return "table"
	case ModeCards:
		return "cards"
	default:
		return "unknown"
	}
}

type HeaderCell struct {
	Key      string
	Title    string
	Glyph    string
	Sortable bool
	Active   bool
	Focused  bool
	Align    Align
	Weight   float64
}

// Cell is one resolved value. Err is set when a badge column holds a label
// outside the badge variant set; the raw text is drawn instead.
type Cell struct {
	Key         string
	Text        string
	Placeholder bool
	Align       Align
	Hint        Hint
	Variant     badge.Variant
	Err         error
}

type Field struct {
	Label string
	Cell  Cell
}

type Card struct {
	Fields []Field
}

type Pager struct {
	Current     int
	Total       int
	PrevEnabled bool
	NextEnabled bool
}

// View is the render plan for one Props.
type View struct {
	Mode     Mode
	Skeleton widgets.Skeleton
	Error    widgets.ErrorState
	Empty    widgets.EmptyState

	Header []HeaderCell
	Rows   [][]Cell
	Cards  []Card
	Pager  *Pager

	CursorRow int
	HasCursor bool
}

// Build decides what to draw. Loading wins over error, error over empty.
func Build(p Props) View {
	if p.Loading {
		return View{Mode: ModeSkeleton, Skeleton: widgets.Skeleton{Count: SkeletonCount, Frame: p.Frame}}
	}
	if p.Error {
		return View{Mode: ModeError, Error: widgets.ErrorState{
			Icon:       "⚠",
			Title:      "Failed to load data",
			Subtitle:   "Please try again later",
			RetryLabel: "Try Again",
		}}
	}
	if len(p.Rows) == 0 {
		msg := p.EmptyMessage
		if msg == "" {
			msg = DefaultEmptyMessage
		}
		return View{Mode: ModeEmpty, Empty: widgets.EmptyState{
			Icon:     "📊",
			Title:    msg,
			Subtitle: "No data matches your current filters",
		}}
	}

	v := View{
		Pager:     buildPager(p.Pagination),
		CursorRow: p.Focus.Row,
		HasCursor: p.Focus.Enabled,
	}
	if p.Wide() {
		v.Mode = ModeTable
		v.Header = make([]HeaderCell, len(p.Columns))
		for i, col := range p.Columns {
			v.Header[i] = buildHeader(col, p.Sort, p.Focus.Enabled && p.Focus.Header == i)
		}
		v.Rows = make([][]Cell, len(p.Rows))
		for r, row := range p.Rows {
			cells := make([]Cell, len(p.Columns))
			for i, col := range p.Columns {
				cells[i] = buildCell(col, row.Cell(col.Key))
			}
			v.Rows[r] = cells
		}
		return v
	}

	v.Mode = ModeCards
	v.Cards = make([]Card, len(p.Rows))
	for r, row := range p.Rows {
		fields := make([]Field, len(p.Columns))
		for i, col := range p.Columns {
			fields[i] = Field{Label: col.Title, Cell: buildCell(col, row.Cell(col.Key))}
		}
		v.Cards[r] = Card{Fields: fields}
	}
	return v
}

func buildHeader(col Column, sort SortState, focused bool) HeaderCell {
	h := HeaderCell{
		Key:      col.Key,
		Title:    col.Title,
		Sortable: col.Sortable,
		Focused:  focused,
		Align:    col.Align,
		Weight:   col.Weight(),
	}
	if !col.Sortable {
		return h
	}
	h.Glyph = GlyphNeutral
	if sort.Active(col.Key) {
		h.Active = true
		h.Glyph = GlyphAsc
		if sort.Direction == Desc {
			h.Glyph = GlyphDesc
		}
	}
	return h
}

func buildCell(col Column, val Value) Cell {
	c := Cell{Key: col.Key, Align: col.Align, Hint: col.Hint}
	if val.Empty() {
		c.Text = Placeholder
		c.Placeholder = true
		return c
	}
	c.Text = val.String()
	if col.Hint == HintBadge {
		c.Variant, c.Err = badge.Parse(c.Text)
	}
	return c
}

func buildPager(ps PaginationState) *Pager {
	if ps.TotalPages <= 1 {
		return nil
	}
	return &Pager{
		Current:     ps.CurrentPage,
		Total:       ps.TotalPages,
		PrevEnabled: ps.CurrentPage > 1,
		NextEnabled: ps.CurrentPage < ps.TotalPages,
	}
}

// interactive reports whether header and pager controls are on screen.
func (p Props) interactive() bool {
	return !p.Loading && !p.Error && len(p.Rows) > 0
}

// ActivateHeader presses the header of column i. Only sortable columns emit
// OnSort; it returns whether the callback fired.
func ActivateHeader(p Props, i int) bool {
	if !p.interactive() || !p.Wide() || i < 0 || i >= len(p.Columns) {
		return false
	}
	col := p.Columns[i]
	if !col.Sortable || p.OnSort == nil {
		return false
	}
	p.OnSort(col.Key)
	return true
}

// SortBy is the card-layout counterpart of ActivateHeader: cards have no
// header, so the owner names the column directly.
func SortBy(p Props, key string) bool {
	if !p.interactive() {
		return false
	}
	for _, col := range p.Columns {
		if col.Key == key {
			if !col.Sortable || p.OnSort == nil {
				return false
			}
			p.OnSort(key)
			return true
		}
	}
	return false
}

// PressPrevious emits the previous page if the control is enabled.
func PressPrevious(p Props) bool {
	if !p.interactive() {
		return false
	}
	pg := buildPager(p.Pagination)
	if pg == nil || !pg.PrevEnabled || p.OnPageChange == nil {
		return false
	}
	p.OnPageChange(pg.Current - 1)
	return true
}

// PressNext emits the next page if the control is enabled.
func PressNext(p Props) bool {
	if !p.interactive() {
		return false
	}
	pg := buildPager(p.Pagination)
	if pg == nil || !pg.NextEnabled || p.OnPageChange == nil {
		return false
	}
	p.OnPageChange(pg.Current + 1)
	return true
}

// PressRetry fires OnRetry while the error view is up.
func PressRetry(p Props) bool {
	if p.Loading || !p.Error || p.OnRetry == nil {
		return false
	}
	p.OnRetry()
	return true
}
