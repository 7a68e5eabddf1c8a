package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeanpaul/compass/internal/compass"
)

// Plot geometry in terminal cells. Odd sizes give the axes a center cell.
const (
	PlotWidth  = 61
	PlotHeight = 31

	// Screen offset of the first plot cell: one title line plus the box border.
	plotTop  = 2
	plotLeft = 1
)

const span = compass.MaxCoord - compass.MinCoord

// cellToCoord maps a plot cell to grid coordinates.
func cellToCoord(col, row int) (float64, float64) {
	x := compass.MinCoord + float64(col)*span/float64(PlotWidth-1)
	y := compass.MaxCoord - float64(row)*span/float64(PlotHeight-1)
	return x, y
}

// coordToCell maps grid coordinates to the nearest plot cell.
func coordToCell(x, y float64) (int, int) {
	col := int(math.Round((x - compass.MinCoord) * float64(PlotWidth-1) / span))
	row := int(math.Round((compass.MaxCoord - y) * float64(PlotHeight-1) / span))
	return clampInt(col, 0, PlotWidth-1), clampInt(row, 0, PlotHeight-1)
}

// screenToCoord converts a mouse position to grid coordinates. ok is false
// outside the plot area.
func screenToCoord(x, y int) (float64, float64, bool) {
	col, row := x-plotLeft, y-plotTop
	if col < 0 || col >= PlotWidth || row < 0 || row >= PlotHeight {
		return 0, 0, false
	}
	gx, gy := cellToCoord(col, row)
	return gx, gy, true
}

// screenToCoordClamped is screenToCoord for drags that leave the plot.
func screenToCoordClamped(x, y int) (float64, float64) {
	col := clampInt(x-plotLeft, 0, PlotWidth-1)
	row := clampInt(y-plotTop, 0, PlotHeight-1)
	return cellToCoord(col, row)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

type cellKind int

const (
	cellEmpty cellKind = iota
	cellGrid
	cellAxis
	cellQuadrant
	cellPoint
	cellSelected
	cellDragged
	cellLabel
)

type canvas struct {
	runes [PlotHeight][PlotWidth]rune
	kinds [PlotHeight][PlotWidth]cellKind
	quad  [PlotHeight][PlotWidth]compass.Quadrant
}

func (c *canvas) set(col, row int, r rune, k cellKind) {
	if col < 0 || col >= PlotWidth || row < 0 || row >= PlotHeight {
		return
	}
	c.runes[row][col] = r
	c.kinds[row][col] = k
	c.quad[row][col] = ""
}

// text writes s starting at (col, row) without overwriting points.
func (c *canvas) text(col, row int, s string, k cellKind, q compass.Quadrant) {
	for _, r := range s {
		if col >= PlotWidth {
			return
		}
		if col >= 0 && c.kinds[row][col] < cellPoint {
			c.set(col, row, r, k)
			c.quad[row][col] = q
		}
		col++
	}
}

// renderPlot draws the grid, axes, quadrant labels and points.
func renderPlot(st styles, points []compass.Point, selected, dragged string) string {
	var c canvas
	midCol, midRow := (PlotWidth-1)/2, (PlotHeight-1)/2

	for row := 0; row < PlotHeight; row++ {
		for col := 0; col < PlotWidth; col++ {
			c.set(col, row, ' ', cellEmpty)
			if row%5 == 0 && col%6 == 0 {
				c.set(col, row, '·', cellGrid)
			}
		}
	}
	for col := 0; col < PlotWidth; col++ {
		c.set(col, midRow, '─', cellAxis)
	}
	for row := 0; row < PlotHeight; row++ {
		c.set(midCol, row, '│', cellAxis)
	}
	c.set(midCol, midRow, '┼', cellAxis)

	quarter := (PlotHeight - 1) / 4
	placeLabel := func(q compass.Quadrant, right bool, row int) {
		col := 1
		if right {
			col = PlotWidth - 1 - len(q)
		}
		c.text(col, row, string(q), cellQuadrant, q)
	}
	placeLabel(compass.GnattyNPC, true, quarter)
	placeLabel(compass.NotNPC, false, quarter)
	placeLabel(compass.NotNonNPC, false, PlotHeight-1-quarter)
	placeLabel(compass.GnattyNonNPC, true, PlotHeight-1-quarter)

	for _, p := range points {
		col, row := coordToCell(p.X, p.Y)
		kind := cellPoint
		switch p.Name {
		case dragged:
			kind = cellDragged
		case selected:
			kind = cellSelected
		}
		c.set(col, row, '●', kind)
	}
	for _, p := range points {
		col, row := coordToCell(p.X, p.Y)
		c.text(col+1, row, " "+p.Name, cellLabel, "")
	}

	var b strings.Builder
	for row := 0; row < PlotHeight; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(renderRow(st, &c, row))
	}
	return b.String()
}

// renderRow styles runs of cells that share a kind.
func renderRow(st styles, c *canvas, row int) string {
	type look struct {
		kind cellKind
		quad compass.Quadrant
	}
	var b strings.Builder
	var run []rune
	var cur look
	flush := func() {
		if len(run) > 0 {
			b.WriteString(cellStyle(st, cur.kind, cur.quad).Render(string(run)))
			run = run[:0]
		}
	}
	for col := 0; col < PlotWidth; col++ {
		l := look{c.kinds[row][col], c.quad[row][col]}
		if col > 0 && l != cur {
			flush()
		}
		cur = l
		run = append(run, c.runes[row][col])
	}
	flush()
	return b.String()
}

func cellStyle(st styles, k cellKind, q compass.Quadrant) lipgloss.Style {
	switch k {
	case cellGrid:
		return st.Grid
	case cellAxis:
		return st.Axis
	case cellQuadrant:
		return st.Quadrant[q]
	case cellPoint:
		return st.Point
	case cellSelected:
		return st.Selected
	case cellDragged:
		return st.Dragged
	case cellLabel:
		return st.Label
	default:
		return lipgloss.NewStyle()
	}
}
