package cli

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/sortviz/pkg/sorting"
	"github.com/matzehuels/sortviz/pkg/visual"
)

func rowsString(rows [][]rune) string {
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = string(r)
	}
	return strings.Join(lines, "\n")
}

func TestColumnsOnePerBar(t *testing.T) {
	values := []int{3, 1, 2}
	roles := []visual.Role{visual.RoleActive, visual.RoleDefault, visual.RoleCompare}

	for _, width := range []int{0, 3, 80} {
		cols := columns(values, roles, width)
		require.Len(t, cols, 3, "width %d", width)
		assert.Equal(t, column{3, visual.RoleActive}, cols[0])
		assert.Equal(t, column{2, visual.RoleCompare}, cols[2])
	}
	assert.Nil(t, columns(nil, nil, 10))
}

func TestColumnsFoldKeepsTallestAndHighlight(t *testing.T) {
	values := []int{1, 5, 2, 8, 4, 4}
	roles := []visual.Role{
		visual.RoleDefault, visual.RoleCompare,
		visual.RoleActive, visual.RoleDefault,
		visual.RoleDone, visual.RoleDefault,
	}

	cols := columns(values, roles, 3)
	assert.Equal(t, []column{
		{5, visual.RoleCompare},
		{8, visual.RoleActive},
		{4, visual.RoleDone},
	}, cols)
}

func TestGlyphRows(t *testing.T) {
	cols := []column{{value: 0}, {value: 2}, {value: 4}, {value: 8}}

	assert.Equal(t, " ▂▄█", rowsString(glyphRows(cols, 8, 1)))
	assert.Equal(t, "   █\n ▄██", rowsString(glyphRows(cols, 8, 2)))
	assert.Nil(t, glyphRows(cols, 8, 0))
}

func TestGlyphRowsShowsSmallBars(t *testing.T) {
	rows := glyphRows([]column{{value: 1}, {value: 0}}, 750, 4)
	require.Len(t, rows, 4)
	assert.Equal(t, "▁ ", string(rows[3]))
}

func TestRenderBarsRamp(t *testing.T) {
	values := make([]int, 16)
	for i := range values {
		values[i] = i
	}
	frame := visual.Frame{Values: values, Snapshot: visual.Snapshot{Highlight: sorting.Mark(3, 9)}}

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))
	g.Assert(t, "bars_ramp", []byte(renderBars(frame, 16, 16, 2, themeFor("classic"))))
}

func TestThemeFor(t *testing.T) {
	assert.Equal(t, "classic", themeFor("classic").name)
	assert.Equal(t, "classic", themeFor("neon").name)
	assert.Equal(t, "mono", themeFor("mono").name)

	th := themeFor("classic")
	assert.Equal(t, th.style(visual.RoleDefault), th.style(visual.Role(42)))
}
