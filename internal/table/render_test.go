package table

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/jask/fieldops/internal/theme"
)

func plainLines(s string) []string {
	return strings.Split(ansi.Strip(s), "\n")
}

func TestRenderWorkerScenario(t *testing.T) {
	v := Build(Props{Columns: workerColumns(), Rows: workerRows(), Width: 1000})
	require.Equal(t, ModeTable, v.Mode)
	require.Equal(t, GlyphNeutral, v.Header[0].Glyph)
	require.Equal(t, GlyphNeutral, v.Header[1].Glyph)
	require.Equal(t, Placeholder, v.Rows[1][1].Text)

	lines := plainLines(v.Render(40, theme.Default()))
	require.Len(t, lines, 4)
	require.Contains(t, lines[0], "Worker ↕")
	require.True(t, strings.HasSuffix(lines[0], "KMs ↕"), lines[0])
	require.Contains(t, lines[2], "Ali")
	require.True(t, strings.HasSuffix(lines[2], "12.5"), lines[2])
	require.Contains(t, lines[3], "Sara")
	require.True(t, strings.HasSuffix(lines[3], "—"), lines[3])
	for _, l := range lines {
		require.Equal(t, 40, ansi.StringWidth(l))
	}
}

func TestRenderCards(t *testing.T) {
	v := Build(Props{Columns: workerColumns(), Rows: workerRows(), Width: 300})
	out := ansi.Strip(v.Render(30, theme.Default()))
	require.Equal(t, 2, strings.Count(out, "Worker"))
	require.Equal(t, 2, strings.Count(out, "KMs"))
	require.Contains(t, out, "Sara")
	require.Contains(t, out, "—")
	require.Equal(t, 2, strings.Count(out, "╭"))
}

func TestRenderPager(t *testing.T) {
	v := Build(Props{Columns: workerColumns(), Rows: workerRows(), Width: 1000,
		Pagination: PaginationState{CurrentPage: 2, TotalPages: 3}})
	out := ansi.Strip(v.Render(60, theme.Default()))
	require.Contains(t, out, "Previous")
	require.Contains(t, out, "Page 2 of 3")
	require.Contains(t, out, "Next")
}

func TestRenderStates(t *testing.T) {
	st := theme.Default()
	out := ansi.Strip(Build(Props{Error: true}).Render(50, st))
	require.Contains(t, out, "Failed to load data")

	out = ansi.Strip(Build(Props{EmptyMessage: "No GPS logs"}).Render(50, st))
	require.Contains(t, out, "No GPS logs")

	out = ansi.Strip(Build(Props{Loading: true, Columns: workerColumns(), Rows: workerRows(), Width: 1000}).Render(50, st))
	require.NotContains(t, out, "Worker")
	require.NotContains(t, out, "Ali")
}

func TestAlignCell(t *testing.T) {
	require.Equal(t, "ab   ", alignCell("ab", 5, AlignLeft))
	require.Equal(t, "   ab", alignCell("ab", 5, AlignRight))
	require.Equal(t, " ab  ", alignCell("ab", 5, AlignCenter))
	require.Equal(t, "abc…", alignCell("abcdefgh", 4, AlignLeft))
}
