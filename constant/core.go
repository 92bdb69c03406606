package constant

import "time"

// Simulation clock
const (
	// TickRate is the fixed simulation rate; every duration below is in ticks at this rate
	TickRate = 60

	// TickInterval is the wall-clock period of one tick
	TickInterval = time.Second / TickRate
)

// Arena geometry in pixels
const (
	ArenaWidth        = 850.0
	ArenaHeight       = 850.0
	BoundaryThickness = 10.0
)
