package tui

import (
	"github.com/colonyops/chiclet/internal/core/slicer"
)

const (
	defaultCellWidth = 14
	minCellWidth     = 3
	cellGap          = 1
	borderSize       = 2
)

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// cell is a chiclet placed on screen. pos indexes the displayed points.
type cell struct {
	rect
	pos      int
	row, col int
}

// gridLayout places displayed chiclets in a grid. Vertical orientation fills
// rows left to right and scrolls by row; horizontal orientation fills columns
// top to bottom and scrolls by column.
type gridLayout struct {
	columnMajor bool
	rows, cols  int

	innerW, innerH int
	imageLines     int

	// span is the number of rows (or columns, when column-major) that fit
	// on screen at once.
	span      int
	scroll    int
	maxScroll int

	visible []cell
	byPos   map[int]cell
}

type layoutInput struct {
	count     int
	settings  slicer.Settings
	hasImages bool
	width     int
	top       int
	height    int
	scroll    int
}

func computeLayout(in layoutInput) gridLayout {
	gen := in.settings.General
	ch := in.settings.Chiclet

	g := gridLayout{
		columnMajor: gen.Orientation == slicer.OrientationHorizontal,
		byPos:       make(map[int]cell, in.count),
	}

	g.innerH = max(ch.Height, 1)
	if in.hasImages {
		total := max(ch.Height, 2)
		g.imageLines = min(total*in.settings.Images.ImageSplit/100, total-1)
		g.innerH = total
	}

	width := max(in.width, minCellWidth+borderSize)
	if g.columnMajor {
		g.rows = max(gen.Rows, 1)
		g.cols = ceilDiv(in.count, g.rows)
		g.innerW = cellWidthOr(ch.Width, defaultCellWidth)
	} else {
		g.cols = gen.Columns
		if g.cols <= 0 {
			inner := cellWidthOr(ch.Width, defaultCellWidth)
			g.cols = max((width+cellGap)/(inner+borderSize+cellGap), 1)
		}
		g.rows = ceilDiv(in.count, g.cols)
		g.innerW = ch.Width
		if g.innerW <= 0 {
			g.innerW = max((width-(g.cols-1)*cellGap)/g.cols-borderSize, minCellWidth)
		}
	}

	outerW := g.innerW + borderSize
	outerH := g.innerH + borderSize

	if g.columnMajor {
		g.span = max((width+cellGap)/(outerW+cellGap), 1)
		if gen.Columns > 0 {
			g.span = min(g.span, gen.Columns)
		}
		g.maxScroll = max(g.cols-g.span, 0)
	} else {
		g.span = max(in.height/outerH, 1)
		if gen.Rows > 0 {
			g.span = min(g.span, gen.Rows)
		}
		g.maxScroll = max(g.rows-g.span, 0)
	}
	g.scroll = clamp(in.scroll, 0, g.maxScroll)

	for pos := range in.count {
		row, col := g.place(pos)
		c := cell{pos: pos, row: row, col: col}

		vr, vc := row, col
		if g.columnMajor {
			vc -= g.scroll
		} else {
			vr -= g.scroll
		}
		c.rect = rect{
			x: vc * (outerW + cellGap),
			y: in.top + vr*outerH,
			w: outerW,
			h: outerH,
		}
		g.byPos[pos] = c

		if g.onScreen(row, col) {
			g.visible = append(g.visible, c)
		}
	}

	return g
}

// place returns the grid position of the pos-th displayed point.
func (g gridLayout) place(pos int) (row, col int) {
	if g.columnMajor {
		return pos % g.rows, pos / g.rows
	}
	return pos / g.cols, pos % g.cols
}

func (g gridLayout) onScreen(row, col int) bool {
	line := row
	if g.columnMajor {
		line = col
	}
	return line >= g.scroll && line < g.scroll+g.span
}

// hit returns the displayed position under the pointer.
func (g gridLayout) hit(x, y int) (int, bool) {
	for _, c := range g.visible {
		if c.contains(x, y) {
			return c.pos, true
		}
	}
	return 0, false
}

// neighbor returns the position one step from pos in the given grid
// direction, or pos itself at the edge.
func (g gridLayout) neighbor(pos, dRow, dCol int) int {
	c, ok := g.byPos[pos]
	if !ok {
		return pos
	}
	row, col := c.row+dRow, c.col+dCol
	if row < 0 || col < 0 || row >= g.rows || col >= g.cols {
		return pos
	}

	var next int
	if g.columnMajor {
		next = col*g.rows + row
	} else {
		next = row*g.cols + col
	}
	if _, ok := g.byPos[next]; !ok {
		return pos
	}
	return next
}

// scrollTo returns the scroll offset that brings pos on screen.
func (g gridLayout) scrollTo(pos int) int {
	c, ok := g.byPos[pos]
	if !ok {
		return g.scroll
	}
	line := c.row
	if g.columnMajor {
		line = c.col
	}
	switch {
	case line < g.scroll:
		return line
	case line >= g.scroll+g.span:
		return line - g.span + 1
	default:
		return g.scroll
	}
}

// atEnd reports whether the last row (or column) is on screen.
func (g gridLayout) atEnd() bool {
	return g.scroll >= g.maxScroll
}

func cellWidthOr(width, def int) int {
	if width > 0 {
		return width
	}
	return def
}

func ceilDiv(a, b int) int {
	if b <= 0 || a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
