package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/neon-arena/core"
)

// Terminal palette
var (
	RGBBackground = core.RGB{R: 10, G: 10, B: 20}
	RGBForeground = core.RGB{R: 200, G: 200, B: 220}
	RGBWall       = core.RGB{R: 80, G: 80, B: 120}
	RGBWallDead   = core.RGB{R: 40, G: 40, B: 50}
	RGBGrid       = core.RGB{R: 22, G: 22, B: 40}
	RGBHud        = core.RGB{R: 180, G: 180, B: 200}
	RGBOverlayBg  = core.RGB{R: 20, G: 20, B: 35}
)

// RGBToTcell converts RGB to tcell.Color
func RGBToTcell(c core.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// TcellToRGB converts tcell.Color to RGB, treating ColorDefault as the background
func TcellToRGB(c tcell.Color) core.RGB {
	if c == tcell.ColorDefault {
		return RGBBackground
	}
	r, g, b := c.RGB()
	return core.RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
}

// Add performs additive blend with clamping (light accumulation)
func Add(dst, src core.RGB) core.RGB {
	return core.RGB{
		R: uint8(min(int(dst.R)+int(src.R), 255)),
		G: uint8(min(int(dst.G)+int(src.G), 255)),
		B: uint8(min(int(dst.B)+int(src.B), 255)),
	}
}

// Max returns per-channel maximum (non-destructive highlight)
func Max(dst, src core.RGB) core.RGB {
	return core.RGB{
		R: max(dst.R, src.R),
		G: max(dst.G, src.G),
		B: max(dst.B, src.B),
	}
}
