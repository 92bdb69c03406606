package core

// Arena describes the square play field and its four boundary walls
type Arena struct {
	Width, Height float64
	// Boundary is the wall thickness; crossing it on a side scores against that side's owner
	Boundary float64
}

// Center returns the arena midpoint
func (a Arena) Center() (float64, float64) {
	return a.Width / 2, a.Height / 2
}

// Bounds returns the boundary-inset play area
func (a Arena) Bounds() Rect {
	return Rect{X: a.Boundary, Y: a.Boundary, W: a.Width - 2*a.Boundary, H: a.Height - 2*a.Boundary}
}

// Valid reports whether the arena leaves a positive play area
func (a Arena) Valid() bool {
	return a.Width > 0 && a.Height > 0 && a.Boundary >= 0 &&
		a.Width > 2*a.Boundary && a.Height > 2*a.Boundary
}
