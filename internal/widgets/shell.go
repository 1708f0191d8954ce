package widgets

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/jask/fieldops/internal/theme"
)

const shellHeaderLines = 4

// Shell is the frame every screen draws in: breadcrumbs, title and subtitle
// above a scrollable body.
type Shell struct {
	Title    string
	Subtitle string
	Crumbs   Breadcrumbs

	width int
	body  viewport.Model
}

func NewShell() Shell {
	return Shell{body: viewport.New(0, 0)}
}

// SetSize fits the shell into width x height; the body gets what the header
// leaves over.
func (s *Shell) SetSize(width, height int) {
	s.width = width
	s.body.Width = max(1, width)
	s.body.Height = max(1, height-shellHeaderLines)
}

// SetBody replaces the body content, keeping the scroll position when it
// still fits.
func (s *Shell) SetBody(content string) {
	s.body.SetContent(content)
}

// ScrollBy scrolls the body; negative n scrolls up.
func (s *Shell) ScrollBy(n int) {
	switch {
	case n > 0:
		s.body.LineDown(n)
	case n < 0:
		s.body.LineUp(-n)
	}
}

// ScrollTop resets the body to its first line.
func (s *Shell) ScrollTop() {
	s.body.GotoTop()
}

func (s Shell) Offset() int {
	return s.body.YOffset
}

func (s Shell) Render(st theme.Styles) string {
	header := []string{
		PadRight(s.Crumbs.Render(st), s.width),
		PadRight(st.Title.Render(s.Title), s.width),
		PadRight(st.Subtitle.Render(s.Subtitle), s.width),
		"",
	}
	return strings.Join(header, "\n") + "\n" + s.body.View()
}
