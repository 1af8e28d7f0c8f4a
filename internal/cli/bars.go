package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/sortviz/pkg/visual"
)

// eighths are the partial block glyphs, one per eighth of a cell.
var eighths = []rune("▁▂▃▄▅▆▇█")

// theme colors bars by role.
type theme struct {
	name   string
	styles [4]lipgloss.Style // indexed by visual.Role
}

var (
	colorBarDone    = lipgloss.Color("#64B464")
	colorBarCompare = lipgloss.Color("#A569BD")
	colorBarDefault = lipgloss.Color("#AAB7B8")
)

func themeFor(name string) theme {
	switch name {
	case "mono":
		plain := lipgloss.NewStyle()
		return theme{name: name, styles: [4]lipgloss.Style{
			visual.RoleDefault: plain.Faint(true),
			visual.RoleActive:  plain.Bold(true),
			visual.RoleCompare: plain.Bold(true),
			visual.RoleDone:    plain,
		}}
	default:
		return theme{name: "classic", styles: [4]lipgloss.Style{
			visual.RoleDefault: lipgloss.NewStyle().Foreground(colorBarDefault),
			visual.RoleActive:  lipgloss.NewStyle().Foreground(colorBarDone),
			visual.RoleCompare: lipgloss.NewStyle().Foreground(colorBarCompare),
			visual.RoleDone:    lipgloss.NewStyle().Foreground(colorBarDone),
		}}
	}
}

func (t theme) style(r visual.Role) lipgloss.Style {
	if int(r) < 0 || int(r) >= len(t.styles) {
		return t.styles[visual.RoleDefault]
	}
	return t.styles[r]
}

// rolePriority decides which role a column shows when it covers several bars.
var rolePriority = [4]int{
	visual.RoleDefault: 0,
	visual.RoleDone:    1,
	visual.RoleCompare: 2,
	visual.RoleActive:  3,
}

// column is one rendered column: the tallest bar it covers and the most
// important role among them.
type column struct {
	value int
	role  visual.Role
}

// columns folds n bars into at most width columns. Bars are never split, so
// with width >= n every bar gets its own column.
func columns(values []int, roles []visual.Role, width int) []column {
	n := len(values)
	if n == 0 {
		return nil
	}
	if width <= 0 || width > n {
		width = n
	}
	out := make([]column, width)
	for c := range out {
		lo, hi := c*n/width, (c+1)*n/width
		col := column{value: values[lo], role: roles[lo]}
		for i := lo + 1; i < hi; i++ {
			col.value = max(col.value, values[i])
			if rolePriority[roles[i]] > rolePriority[col.role] {
				col.role = roles[i]
			}
		}
		out[c] = col
	}
	return out
}

// glyphRows draws cols as height rows of block glyphs, top row first. A bar
// of maxValue fills all rows; anything above zero shows at least one eighth.
func glyphRows(cols []column, maxValue, height int) [][]rune {
	if height <= 0 || maxValue <= 0 {
		return nil
	}
	levels := make([]int, len(cols))
	for i, c := range cols {
		lv := c.value * height * 8 / maxValue
		if lv == 0 && c.value > 0 {
			lv = 1
		}
		levels[i] = lv
	}

	rows := make([][]rune, height)
	for r := range rows {
		floor := (height - 1 - r) * 8
		row := make([]rune, len(cols))
		for i, lv := range levels {
			switch fill := lv - floor; {
			case fill >= 8:
				row[i] = eighths[7]
			case fill > 0:
				row[i] = eighths[fill-1]
			default:
				row[i] = ' '
			}
		}
		rows[r] = row
	}
	return rows
}

// renderBars draws f into a width x height block, colored by th.
func renderBars(f visual.Frame, maxValue, width, height int, th theme) string {
	cols := columns(f.Values, f.Roles(), width)
	rows := glyphRows(cols, maxValue, height)

	var b strings.Builder
	for r, row := range rows {
		if r > 0 {
			b.WriteByte('\n')
		}
		// consecutive cells with the same role share one styled run
		start := 0
		for i := 1; i <= len(row); i++ {
			if i < len(row) && cols[i].role == cols[start].role {
				continue
			}
			b.WriteString(th.style(cols[start].role).Render(string(row[start:i])))
			start = i
		}
	}
	return b.String()
}
