package badge

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestEveryVariantHasPalette(t *testing.T) {
	for _, v := range Variants() {
		p, err := Lookup(v)
		require.NoError(t, err, "variant %s", v)
		require.NotEmpty(t, p.Background)
		require.NotEmpty(t, p.Foreground)
	}
	require.Len(t, palettes, len(Variants()))
}

func TestLookupRejectsUnknownVariant(t *testing.T) {
	_, err := Lookup(Variant("archived"))
	require.ErrorIs(t, err, ErrUnknownVariant)
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Variant
	}{
		{"Present", Present},
		{"Half Day", HalfDay},
		{"half-day", HalfDay},
		{"Cheque Cleared", ChequeCleared},
		{"sample_given", SampleGiven},
		{"P", Present},
		{"off", Off},
		{" h ", HalfDay},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := Parse("On Holiday")
	require.ErrorIs(t, err, ErrUnknownVariant)
}

func TestRenderUsesLabelAndIcon(t *testing.T) {
	out, err := Badge{Variant: HalfDay, Size: Small, Icon: "●"}.Render()
	require.NoError(t, err)
	require.Equal(t, " ● Half day ", ansi.Strip(out))

	out, err = Badge{Label: "Late 20m", Variant: Late}.Render()
	require.NoError(t, err)
	require.Equal(t, "  Late 20m  ", ansi.Strip(out))

	_, err = Badge{Label: "x", Variant: "bogus"}.Render()
	require.ErrorIs(t, err, ErrUnknownVariant)
}

func TestOutlineVariantsDrawOnBase(t *testing.T) {
	cleared, err := Lookup(ChequeCleared)
	require.NoError(t, err)
	cash, err := Lookup(Cash)
	require.NoError(t, err)
	require.Equal(t, cash.Background, cleared.Foreground)
	require.NotEqual(t, cash.Background, cleared.Background)
}

func TestLabel(t *testing.T) {
	require.Equal(t, "Half day", HalfDay.Label())
	require.Equal(t, "Cheque cleared", ChequeCleared.Label())
	require.Equal(t, "OFF", Off.Label())
	require.Empty(t, Variant("").Label())
}
