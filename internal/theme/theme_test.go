package theme

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func TestPaletteColorsAreValidHex(t *testing.T) {
	colors := Palette()
	require.Len(t, colors, 18)
	for _, c := range colors {
		require.Regexp(t, hexColorRegex, string(c))
	}
}

func TestSemanticAliasesMatchPalette(t *testing.T) {
	tests := []struct {
		name  string
		alias string
		want  string
	}{
		{"primary", string(Primary), string(Blue)},
		{"success", string(Success), string(Green)},
		{"warning", string(Warning), string(Yellow)},
		{"error", string(Error), string(Red)},
		{"info", string(Info), string(Teal)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.alias)
		})
	}
}
