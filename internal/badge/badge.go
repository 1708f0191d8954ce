// Package badge maps status variants to colours and renders them as chips.
//
// The variant set is closed: every Variant has an entry in the palette table and
// anything outside the set is rejected with ErrUnknownVariant instead of being
// drawn in a fallback style.
package badge

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/fieldops/internal/theme"
)

// ErrUnknownVariant is returned for a variant outside the closed set.
var ErrUnknownVariant = errors.New("badge: unknown variant")

// Variant identifies a status badge.
type Variant string

// Attendance variants.
const (
	Present Variant = "present"
	Absent  Variant = "absent"
	HalfDay Variant = "half-day"
	Leave   Variant = "leave"
	Off     Variant = "off"
)

// Payment variants.
const (
	Cash          Variant = "cash"
	Pending       Variant = "pending"
	Cheque        Variant = "cheque"
	ChequeCleared Variant = "cheque-cleared"
	ChequeBounced Variant = "cheque-bounced"
)

// Worker state variants.
const (
	Online  Variant = "online"
	Offline Variant = "offline"
	Late    Variant = "late"
)

// Visit and order outcome variants.
const (
	Approved    Variant = "approved"
	SampleGiven Variant = "sample-given"
	Rejected    Variant = "rejected"
	Completed   Variant = "completed"
)

// Palette is the colour triple for one variant. Outline variants draw on the
// base background with a coloured foreground.
type Palette struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Border     lipgloss.Color
}

func solid(c lipgloss.Color) Palette {
	return Palette{Background: c, Foreground: theme.Base, Border: c}
}

func outline(c lipgloss.Color) Palette {
	return Palette{Background: theme.Base, Foreground: c, Border: c}
}

var palettes = map[Variant]Palette{
	Present: solid(theme.Success),
	Absent:  solid(theme.Error),
	HalfDay: solid(theme.Warning),
	Leave:   solid(theme.Info),
	Off:     solid(theme.Neutral),

	Cash:          solid(theme.Success),
	Pending:       solid(theme.Warning),
	Cheque:        solid(theme.Info),
	ChequeCleared: outline(theme.Success),
	ChequeBounced: outline(theme.Error),

	Online:  solid(theme.Success),
	Offline: solid(theme.Neutral),
	Late:    solid(theme.Error),

	Approved:    solid(theme.Success),
	SampleGiven: solid(theme.Info),
	Rejected:    solid(theme.Error),
	Completed:   solid(theme.Success),
}

// Variants lists the closed set in a stable order.
func Variants() []Variant {
	return []Variant{
		Present, Absent, HalfDay, Leave, Off,
		Cash, Pending, Cheque, ChequeCleared, ChequeBounced,
		Online, Offline, Late,
		Approved, SampleGiven, Rejected, Completed,
	}
}

// Lookup returns the palette for v.
func Lookup(v Variant) (Palette, error) {
	p, ok := palettes[v]
	if !ok {
		return Palette{}, fmt.Errorf("%w: %q", ErrUnknownVariant, string(v))
	}
	return p, nil
}

var attendanceCodes = map[string]Variant{
	"P":   Present,
	"A":   Absent,
	"H":   HalfDay,
	"L":   Leave,
	"OFF": Off,
}

// Parse normalises a display label such as "Half Day" or "Cheque Cleared" to its
// variant. One-letter attendance codes (P, A, H, L, OFF) are accepted too.
func Parse(label string) (Variant, error) {
	raw := strings.TrimSpace(label)
	if v, ok := attendanceCodes[strings.ToUpper(raw)]; ok {
		return v, nil
	}
	norm := strings.ToLower(raw)
	norm = strings.Join(strings.FieldsFunc(norm, func(r rune) bool {
		return r == ' ' || r == '_' || r == '-'
	}), "-")
	v := Variant(norm)
	if _, ok := palettes[v]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownVariant, label)
	}
	return v, nil
}

// Label is the human form of v, e.g. "Half day".
func (v Variant) Label() string {
	s := string(v)
	if s == "" {
		return ""
	}
	if v == Off {
		return "OFF"
	}
	return strings.ToUpper(s[:1]) + strings.ReplaceAll(s[1:], "-", " ")
}

// Size controls badge padding.
type Size int

const (
	Medium Size = iota
	Small
)

// Badge is a single status chip.
type Badge struct {
	Label   string
	Variant Variant
	Size    Size
	Icon    string
}

// Render draws the badge. The label defaults to the variant's own label.
func (b Badge) Render() (string, error) {
	p, err := Lookup(b.Variant)
	if err != nil {
		return "", err
	}
	label := b.Label
	if strings.TrimSpace(label) == "" {
		label = b.Variant.Label()
	}
	if b.Icon != "" {
		label = b.Icon + " " + label
	}
	style := lipgloss.NewStyle().
		Foreground(p.Foreground).
		Background(p.Background).
		Bold(true)
	if b.Size == Small {
		style = style.Padding(0, 1)
	} else {
		style = style.Padding(0, 2)
	}
	return style.Render(label), nil
}
