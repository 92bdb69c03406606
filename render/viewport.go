package render

import (
	"github.com/lixenwraith/neon-arena/core"
)

// HudRows is the number of terminal rows reserved above the arena
const HudRows = 1

// Viewport maps arena pixels to terminal cells
// Cells are roughly twice as tall as wide, so the arena spans twice as many columns as rows
type Viewport struct {
	Arena      core.Arena
	OffX, OffY int
	Cols, Rows int
	ShakeX     int
	ShakeY     int
}

// NewViewport fits arena into a width x height terminal below the HUD
func NewViewport(arena core.Arena, width, height int) Viewport {
	avail := max(height-HudRows, 1)
	rows := max(min(avail, width/2), 1)
	cols := rows * 2
	return Viewport{
		Arena: arena,
		OffX:  max((width-cols)/2, 0),
		OffY:  HudRows + max((avail-rows)/2, 0),
		Cols:  cols,
		Rows:  rows,
	}
}

// Cell returns the terminal cell covering arena point x, y
func (v Viewport) Cell(x, y float64) (int, int) {
	cx := v.OffX + v.ShakeX + int(x/v.Arena.Width*float64(v.Cols))
	cy := v.OffY + v.ShakeY + int(y/v.Arena.Height*float64(v.Rows))
	return cx, cy
}

// RectCells returns the half-open cell range covering r, at least one cell on each axis
func (v Viewport) RectCells(r core.Rect) (x0, y0, x1, y1 int) {
	x0, y0 = v.Cell(r.Left(), r.Top())
	x1, y1 = v.Cell(r.Right(), r.Bottom())
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return x0, y0, x1, y1
}

// Contains reports whether cell x, y lies inside the arena area, ignoring shake
func (v Viewport) Contains(x, y int) bool {
	return x >= v.OffX && x < v.OffX+v.Cols && y >= v.OffY && y < v.OffY+v.Rows
}
