package component

import (
	"math"

	"github.com/lixenwraith/neon-arena/constant"
	"github.com/lixenwraith/neon-arena/core"
)

// Paddle is one player's paddle
// X, Y is the top-left corner; the paddle always lies inside Bounds
type Paddle struct {
	Player      core.PlayerID
	Orientation core.Orientation
	Color       core.RGB

	X, Y float64
	W, H float64

	BaseW, BaseH float64
	SizeModifier float64

	Speed  float64
	Intent core.Intent

	// Bounds is the boundary-inset play area
	Bounds core.Rect
	// home is the resting center along the travel axis
	home float64
}

// NewPaddle places the paddle for id at its side's starting position
func NewPaddle(id core.PlayerID, arena core.Arena) *Paddle {
	p := &Paddle{
		Player:       id,
		Orientation:  core.OrientationOf(id),
		Color:        core.PlayerColor(id),
		SizeModifier: 1.0,
		Speed:        constant.PaddleSpeed,
		Bounds:       arena.Bounds(),
	}

	cx, cy := arena.Center()
	if p.Orientation == core.Vertical {
		p.BaseW, p.BaseH = constant.PaddleWidth, constant.PaddleHeight
		p.Y = cy - p.BaseH/2
		p.home = cy
		if id == 0 {
			p.X = constant.PaddleMargin
		} else {
			p.X = arena.Width - constant.PaddleMargin - p.BaseW
		}
	} else {
		p.BaseW, p.BaseH = constant.HPaddleWidth, constant.HPaddleHeight
		p.X = cx - p.BaseW/2
		p.home = cx
		if id == 2 {
			p.Y = constant.PaddleMargin
		} else {
			p.Y = arena.Height - constant.PaddleMargin - p.BaseH
		}
	}
	p.W, p.H = p.BaseW, p.BaseH
	p.clamp()
	return p
}

// Center returns the paddle midpoint
func (p *Paddle) Center() (float64, float64) {
	return p.X + p.W/2, p.Y + p.H/2
}

// AxisCenter returns the center coordinate along the travel axis
func (p *Paddle) AxisCenter() float64 {
	cx, cy := p.Center()
	if p.Orientation == core.Vertical {
		return cy
	}
	return cx
}

// Home returns the resting center along the travel axis
func (p *Paddle) Home() float64 {
	return p.home
}

// Length returns the hit-surface length along the travel axis
func (p *Paddle) Length() float64 {
	if p.Orientation == core.Vertical {
		return p.H
	}
	return p.W
}

// Rect returns the collision rectangle
func (p *Paddle) Rect() core.Rect {
	return core.Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// ClearIntent stops all movement
func (p *Paddle) ClearIntent() {
	p.Intent = core.Intent{}
}

// Update applies one tick of movement from Intent and clamps to Bounds
func (p *Paddle) Update() {
	if p.Orientation == core.Vertical {
		if p.Intent.Up {
			p.Y -= p.Speed
		}
		if p.Intent.Down {
			p.Y += p.Speed
		}
	} else {
		if p.Intent.Left {
			p.X -= p.Speed
		}
		if p.Intent.Right {
			p.X += p.Speed
		}
	}
	p.clamp()
}

// ApplySizeModifier rescales the hit-surface length, keeping the center and bounds
// Runtime modifiers are clamped: the length stays within [PaddleMinSize, bounds span]
func (p *Paddle) ApplySizeModifier(modifier float64) {
	if math.IsNaN(modifier) || modifier < 0 {
		modifier = 0
	}
	p.SizeModifier = modifier

	cx, cy := p.Center()
	if p.Orientation == core.Vertical {
		p.W = p.BaseW
		p.H = clampLength(p.BaseH*modifier, p.Bounds.H)
		p.Y = cy - p.H/2
	} else {
		p.H = p.BaseH
		p.W = clampLength(p.BaseW*modifier, p.Bounds.W)
		p.X = cx - p.W/2
	}
	p.clamp()
}

func clampLength(v, span float64) float64 {
	if v < constant.PaddleMinSize {
		return constant.PaddleMinSize
	}
	if v > span {
		return span
	}
	return v
}

func (p *Paddle) clamp() {
	b := p.Bounds
	p.X = math.Max(b.X, math.Min(p.X, b.X+b.W-p.W))
	p.Y = math.Max(b.Y, math.Min(p.Y, b.Y+b.H-p.H))
}
