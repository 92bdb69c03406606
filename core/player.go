package core

// PlayerCount is fixed by the arena: one player per side
const PlayerCount = 4

// PlayerID indexes players 0..3
// 0 left, 1 right, 2 top, 3 bottom
type PlayerID int

// NoPlayer marks missing attribution
const NoPlayer PlayerID = -1

// Valid reports whether id addresses one of the four players
func (id PlayerID) Valid() bool {
	return id >= 0 && id < PlayerCount
}

// Side identifies an arena boundary
type Side uint8

const (
	SideLeft Side = iota
	SideRight
	SideTop
	SideBottom
)

var sideNames = [...]string{"left", "right", "top", "bottom"}

func (s Side) String() string {
	if int(s) < len(sideNames) {
		return sideNames[s]
	}
	return "unknown"
}

// Owner returns the player defending the side; the numbering matches by construction
func (s Side) Owner() PlayerID {
	return PlayerID(s)
}

// SideOf returns the boundary a player defends
func SideOf(id PlayerID) Side {
	return Side(id)
}

// Orientation of a paddle's travel axis
type Orientation uint8

const (
	// Vertical paddles move along Y and defend left/right
	Vertical Orientation = iota
	// Horizontal paddles move along X and defend top/bottom
	Horizontal
)

// OrientationOf returns vertical for players 0/1, horizontal for 2/3
func OrientationOf(id PlayerID) Orientation {
	if id == 0 || id == 1 {
		return Vertical
	}
	return Horizontal
}

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Intent is one tick's movement request for a paddle
// Vertical paddles read Up/Down, horizontal paddles read Left/Right
type Intent struct {
	Up, Down, Left, Right bool
}

// Reversed swaps opposing directions
func (in Intent) Reversed() Intent {
	return Intent{Up: in.Down, Down: in.Up, Left: in.Right, Right: in.Left}
}

// Any reports any direction held
func (in Intent) Any() bool {
	return in.Up || in.Down || in.Left || in.Right
}
