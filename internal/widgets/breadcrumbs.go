package widgets

import (
	"strings"

	"github.com/jask/fieldops/internal/theme"
)

// Crumb is one breadcrumb entry.
type Crumb struct {
	Label  string
	Active bool
}

type Breadcrumbs struct {
	Items []Crumb
}

func (b Breadcrumbs) Render(st theme.Styles) string {
	parts := make([]string, 0, len(b.Items))
	for _, c := range b.Items {
		if c.Active {
			parts = append(parts, st.CrumbActive.Render(c.Label))
			continue
		}
		parts = append(parts, st.Crumb.Render(c.Label))
	}
	return strings.Join(parts, st.Subtitle.Render(" › "))
}
