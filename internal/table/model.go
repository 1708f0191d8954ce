package table

import (
	"strconv"
	"strings"
)

// Align is the horizontal alignment of a column in table mode.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Hint tells the table how to present a column's values.
type Hint int

const (
	// HintText draws the value as plain text.
	HintText Hint = iota
	// HintBadge parses the value as a badge variant label.
	HintBadge
	// HintAction draws the value as a button label.
	HintAction
)

// Column describes one vertical slice of the table. Key must be unique within
// a table.
type Column struct {
	Key         string
	Title       string
	Sortable    bool
	Align       Align
	WidthWeight float64
	Hint        Hint
}

// Weight is WidthWeight with non-positive values counted as 1.
func (c Column) Weight() float64 {
	if c.WidthWeight <= 0 {
		return 1
	}
	return c.WidthWeight
}

// Kind is the dynamic type held by a Value.
type Kind int

const (
	KindMissing Kind = iota
	KindText
	KindInt
	KindFloat
	KindBool
)

// Value is a primitive cell value. The zero Value is missing.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	prec int
	b    bool
}

func Text(s string) Value { return Value{kind: KindText, s: s} }

func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float formats f with prec decimals.
func Float(f float64, prec int) Value { return Value{kind: KindFloat, f: f, prec: prec} }

func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

func Missing() Value { return Value{} }

func (v Value) Kind() Kind { return v.kind }

// Empty reports whether the cell has nothing to show: no value, or text that
// is empty or blank. Zero numbers and false are values.
func (v Value) Empty() bool {
	switch v.kind {
	case KindMissing:
		return true
	case KindText:
		return strings.TrimSpace(v.s) == ""
	default:
		return false
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.s
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', v.prec, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// Row maps column keys to values. Keys with no matching column are ignored.
type Row map[string]Value

// Cell returns the value for key, or a missing value.
func (r Row) Cell(key string) Value {
	if r == nil {
		return Missing()
	}
	return r[key]
}

type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// SortState is owned by the caller. An empty Column means nothing is sorted.
type SortState struct {
	Column    string
	Direction Direction
}

func (s SortState) Active(key string) bool {
	return s.Column != "" && s.Column == key
}

// PaginationState is owned by the caller, who keeps CurrentPage within
// [1, TotalPages].
type PaginationState struct {
	CurrentPage int
	TotalPages  int
}

// Focus marks the keyboard-focused header and row. The zero value focuses
// nothing.
type Focus struct {
	Enabled bool
	Header  int
	Row     int
}
