package powerup

import (
	"math"

	"github.com/lixenwraith/neon-arena/constant"
	"github.com/lixenwraith/neon-arena/core"
	"github.com/lixenwraith/neon-arena/vmath"
)

// Phase is the lifecycle stage of a spawned power-up
type Phase uint8

const (
	// PhaseWarning flashes in place and cannot be collected
	PhaseWarning Phase = iota
	// PhaseActive wanders and is collectable once the spawn animation ends
	PhaseActive
)

func (p Phase) String() string {
	if p == PhaseWarning {
		return "warning"
	}
	return "active"
}

// Item is a power-up waiting on the field
type Item struct {
	Pos     vmath.Vec2
	Kind    Kind
	Variant Variant
	Phase   Phase

	WarningTimer int
	SpawnTimer   int

	Rotation float64
	Pulse    float64

	WanderAngle    float64
	WanderSpeed    float64
	WanderTimer    int
	WanderInterval int

	// wander confines motion; the item reflects off its edges
	wander core.Rect
}

// NewItem creates a power-up at pos in the warning phase
func NewItem(pos vmath.Vec2, kind Kind, variant Variant, wander core.Rect, rng vmath.Source) *Item {
	it := &Item{
		Pos:          pos,
		Kind:         kind,
		Variant:      variant,
		Phase:        PhaseWarning,
		WarningTimer: constant.PowerUpWarningTime,
		wander:       wander,
	}
	it.pickHeading(rng)
	return it
}

// Collectable reports active phase with the spawn animation finished
func (it *Item) Collectable() bool {
	return it.Phase == PhaseActive && it.SpawnTimer <= 0
}

// Flashing reports the off half of the warning blink
func (it *Item) Flashing() bool {
	return it.Phase == PhaseWarning && (it.WarningTimer/10)%2 == 1
}

// GlowRadius is the pulsing halo size
func (it *Item) GlowRadius() float64 {
	return constant.PowerUpSize + 10*math.Sin(it.Pulse)
}

// Update advances one tick
func (it *Item) Update(rng vmath.Source) {
	if it.Phase == PhaseWarning {
		it.WarningTimer--
		if it.WarningTimer <= 0 {
			it.Phase = PhaseActive
			it.SpawnTimer = constant.PowerUpSpawnAnimation
		}
		return
	}

	if it.SpawnTimer > 0 {
		it.SpawnTimer--
	}

	it.Rotation += constant.PowerUpRotationStep
	if it.Rotation >= 360 {
		it.Rotation = 0
	}
	it.Pulse += constant.PowerUpPulseStep

	it.WanderTimer++
	if it.WanderTimer >= it.WanderInterval {
		it.pickHeading(rng)
	}

	old := it.Pos
	sin, cos := math.Sincos(it.WanderAngle)
	it.Pos = it.Pos.Add(vmath.V2(cos*it.WanderSpeed, sin*it.WanderSpeed))

	if it.Pos.X < it.wander.Left() || it.Pos.X > it.wander.Right() {
		it.WanderAngle = math.Pi - it.WanderAngle
		it.Pos.X = old.X
	}
	if it.Pos.Y < it.wander.Top() || it.Pos.Y > it.wander.Bottom() {
		it.WanderAngle = -it.WanderAngle
		it.Pos.Y = old.Y
	}
}

func (it *Item) pickHeading(rng vmath.Source) {
	it.WanderAngle = vmath.RandomAngle(rng)
	it.WanderSpeed = rng.Range(constant.PowerUpWanderSpeedMin, constant.PowerUpWanderSpeedMax)
	it.WanderTimer = 0
	it.WanderInterval = vmath.IntRange(rng, constant.PowerUpTurnMin, constant.PowerUpTurnMax)
}
