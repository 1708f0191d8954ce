package widgets

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/fieldops/internal/theme"
)

// DefaultToastDuration is how long a toast stays up.
const DefaultToastDuration = 4 * time.Second

type ToastVariant int

const (
	ToastInfo ToastVariant = iota
	ToastSuccess
	ToastWarning
	ToastError
)

// ToastExpiredMsg is emitted when the toast with ID should be dismissed.
type ToastExpiredMsg struct {
	ID int
}

// Toast is a transient notification. The zero value is hidden.
type Toast struct {
	ID       int
	Message  string
	Variant  ToastVariant
	Duration time.Duration
	Visible  bool
}

// Show replaces t with a visible toast and returns its expiry timer.
func (t *Toast) Show(message string, variant ToastVariant, d time.Duration) tea.Cmd {
	if d <= 0 {
		d = DefaultToastDuration
	}
	t.ID++
	t.Message = message
	t.Variant = variant
	t.Duration = d
	t.Visible = true
	id := t.ID
	return tea.Tick(d, func(time.Time) tea.Msg { return ToastExpiredMsg{ID: id} })
}

// Expire hides the toast if msg belongs to it. Timers from replaced toasts are
// ignored.
func (t *Toast) Expire(msg ToastExpiredMsg) bool {
	if !t.Visible || msg.ID != t.ID {
		return false
	}
	t.Visible = false
	return true
}

func (t Toast) Render(width int) string {
	if !t.Visible {
		return ""
	}
	var c lipgloss.Color
	icon := "ℹ"
	switch t.Variant {
	case ToastSuccess:
		c, icon = theme.Success, "✓"
	case ToastWarning:
		c, icon = theme.Warning, "!"
	case ToastError:
		c, icon = theme.Error, "✗"
	default:
		c = theme.Info
	}
	style := lipgloss.NewStyle().
		Foreground(theme.Base).
		Background(c).
		Bold(true).
		Padding(0, 1)
	return lipgloss.PlaceHorizontal(max(1, width), lipgloss.Right, style.Render(icon+" "+t.Message))
}
