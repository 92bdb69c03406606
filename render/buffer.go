package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/neon-arena/core"
)

// Cell is one terminal cell before it is flushed
type Cell struct {
	Rune rune
	Fg   core.RGB
	Bg   core.RGB
	Bold bool
}

// BlendMode defines compositing operations
type BlendMode uint8

const (
	BlendReplace BlendMode = iota // Dst = Src (opaque overwrite)
	BlendAlpha                    // Dst = Src*α + Dst*(1-α)
	BlendAdd                      // Dst = clamp(Dst + Src, 255)
	BlendMax                      // Dst = max(Dst, Src) per channel
)

// Buffer is a compositor backed by a Cell array with touch tracking
type Buffer struct {
	cells   []Cell
	touched []bool
	width   int
	height  int
}

// NewBuffer creates a buffer with the specified dimensions
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *Buffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
		b.touched = make([]bool, size)
	} else {
		b.cells = b.cells[:size]
		b.touched = b.touched[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Size returns the buffer dimensions
func (b *Buffer) Size() (int, int) {
	return b.width, b.height
}

// Clear resets all cells to empty using exponential copy
func (b *Buffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Cell{Fg: RGBForeground, Bg: RGBBackground}
	b.touched[0] = false
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
	for filled := 1; filled < len(b.touched); filled *= 2 {
		copy(b.touched[filled:], b.touched[:filled])
	}
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the cell at x, y; out of range yields an empty cell
func (b *Buffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{}
	}
	return b.cells[y*b.width+x]
}

// Set composites the foreground of a cell; a zero rune keeps the existing glyph
func (b *Buffer) Set(x, y int, r rune, fg core.RGB, mode BlendMode, alpha float64) {
	if !b.inBounds(x, y) {
		return
	}
	dst := &b.cells[y*b.width+x]
	if r != 0 {
		dst.Rune = r
	}
	dst.Fg = blend(dst.Fg, fg, mode, alpha)
}

// SetBg composites the background of a cell and marks it touched
func (b *Buffer) SetBg(x, y int, bg core.RGB, mode BlendMode, alpha float64) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	b.cells[idx].Bg = blend(b.cells[idx].Bg, bg, mode, alpha)
	b.touched[idx] = true
}

// SetWithBg writes a cell with explicit fg and bg colors (opaque replace)
func (b *Buffer) SetWithBg(x, y int, r rune, fg, bg core.RGB) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	b.cells[idx] = Cell{Rune: r, Fg: fg, Bg: bg}
	b.touched[idx] = true
}

// Text writes s left to right starting at x, y in fg over the existing background
func (b *Buffer) Text(x, y int, s string, fg core.RGB, bold bool) {
	for _, r := range s {
		if b.inBounds(x, y) {
			dst := &b.cells[y*b.width+x]
			dst.Rune = r
			dst.Fg = fg
			dst.Bold = bold
		}
		x++
	}
}

// TextCentered writes s centered on row y
func (b *Buffer) TextCentered(y int, s string, fg core.RGB, bold bool) {
	b.Text((b.width-len([]rune(s)))/2, y, s, fg, bold)
}

func blend(dst, src core.RGB, mode BlendMode, alpha float64) core.RGB {
	switch mode {
	case BlendAlpha:
		return dst.Blend(src, alpha)
	case BlendAdd:
		return Add(dst, src)
	case BlendMax:
		return Max(dst, src)
	}
	return src
}

// Flush writes every cell to screen and shows it
func (b *Buffer) Flush(screen tcell.Screen) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			idx := y*b.width + x
			c := b.cells[idx]
			bg := c.Bg
			if !b.touched[idx] {
				bg = RGBBackground
			}
			r := c.Rune
			if r == 0 {
				r = ' '
			}
			style := tcell.StyleDefault.Foreground(RGBToTcell(c.Fg)).Background(RGBToTcell(bg)).Bold(c.Bold)
			screen.SetContent(x, y, r, nil, style)
		}
	}
	screen.Show()
}
