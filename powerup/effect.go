package powerup

import (
	"github.com/lixenwraith/neon-arena/constant"
	"github.com/lixenwraith/neon-arena/core"
)

// Effect is a collected power-up in force for one player
type Effect struct {
	Kind    Kind
	Variant Variant
	Player  core.PlayerID
	// Remaining ticks, DurationInstant (-1) means until consumed
	Remaining int
}

// Timed reports an effect that counts down
func (e Effect) Timed() bool {
	return e.Remaining != constant.DurationInstant
}

// Progress is the remaining share of the full duration in [0,1]
func (e Effect) Progress() float64 {
	full := e.Kind.Duration()
	if !e.Timed() || full <= 0 {
		return 1
	}
	return float64(e.Remaining) / float64(full)
}
