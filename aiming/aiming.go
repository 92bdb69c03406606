// Package aiming runs the relaunch phase after a player loses a life
package aiming

import (
	"github.com/lixenwraith/neon-arena/component"
	"github.com/lixenwraith/neon-arena/constant"
	"github.com/lixenwraith/neon-arena/core"
	"github.com/lixenwraith/neon-arena/vmath"
)

// baseAngles point straight out from each side into the arena, degrees clockwise from +X
var baseAngles = [core.PlayerCount]float64{0, 180, 90, 270}

// BaseAngle returns the straight-out launch angle for player
func BaseAngle(player core.PlayerID) float64 {
	if !player.Valid() {
		return 0
	}
	return baseAngles[player]
}

// Controller holds the aiming state; at most one player aims at a time
type Controller struct {
	Player core.PlayerID
	Angle  float64
	Timer  int
	Human  bool

	aiTarget  float64
	aiStarted bool

	arena core.Arena
	rng   vmath.Source
}

// New creates an idle controller
func New(arena core.Arena, rng vmath.Source) *Controller {
	c := &Controller{arena: arena, rng: rng}
	c.Reset()
	return c
}

// Active reports an aiming player
func (c *Controller) Active() bool {
	return c.Player.Valid()
}

// Reset returns to idle
func (c *Controller) Reset() {
	c.Player = core.NoPlayer
	c.Angle = 0
	c.Timer = 0
	c.Human = false
	c.aiTarget = 0
	c.aiStarted = false
}

// Enter starts aiming for player, freezing ball in front of that player's boundary
func (c *Controller) Enter(player core.PlayerID, ball *component.Ball, human bool) bool {
	if !player.Valid() {
		return false
	}
	c.Player = player
	c.Human = human
	c.Timer = constant.AimingTime
	c.Angle = BaseAngle(player)
	c.aiStarted = false
	c.aiTarget = 0

	ball.Freeze(FreezePoint(player, c.arena))
	return true
}

// FreezePoint is where the ball waits while player aims
func FreezePoint(player core.PlayerID, arena core.Arena) vmath.Vec2 {
	cx, cy := arena.Center()
	inset := arena.Boundary + constant.AimingBallMargin
	switch player {
	case 0:
		return vmath.V2(inset, cy)
	case 1:
		return vmath.V2(arena.Width-inset, cy)
	case 2:
		return vmath.V2(cx, inset)
	case 3:
		return vmath.V2(cx, arena.Height-inset)
	}
	return vmath.V2(cx, cy)
}

// Update counts down and steers the angle; paddle is the aiming player's paddle
// Returns true once the timer has run out
func (c *Controller) Update(paddle *component.Paddle) bool {
	if !c.Active() {
		return false
	}
	c.Timer--

	if c.Human {
		if paddle != nil {
			c.Angle = HumanAngle(c.Player, paddle)
		}
	} else {
		c.autoAim()
	}
	return c.Timer <= 0
}

// HumanAngle maps the paddle's offset from its travel midpoint to a launch angle
// The full travel spans [-AimingAngleRange, +AimingAngleRange] around straight out; the
// ball is aimed toward the side the paddle has moved to
func HumanAngle(player core.PlayerID, paddle *component.Paddle) float64 {
	if !player.Valid() || paddle == nil {
		return 0
	}

	var offset, mid, half float64
	b := paddle.Bounds
	if paddle.Orientation == core.Vertical {
		mid = b.Y + b.H/2
		half = (b.H - paddle.H) / 2
	} else {
		mid = b.X + b.W/2
		half = (b.W - paddle.W) / 2
	}
	offset = paddle.AxisCenter() - mid

	n := 0.0
	if half > 0 {
		n = vmath.Clamp(offset/half, -1, 1)
	}
	r := constant.AimingAngleRange

	switch player {
	case 0:
		return n * r
	case 1:
		return 180 - n*r
	case 2:
		return 90 - n*r
	default:
		return 270 + n*r
	}
}

// autoAim picks a target once then turns toward it along the shortest arc
func (c *Controller) autoAim() {
	if !c.aiStarted {
		c.aiTarget = vmath.WrapDeg(BaseAngle(c.Player) + c.rng.Range(-constant.AimingAISpread, constant.AimingAISpread))
		c.aiStarted = true
	}

	diff := vmath.ShortestArcDeg(c.Angle, c.aiTarget)
	if diff > constant.AimingAISpeed || diff < -constant.AimingAISpeed {
		c.Angle += constant.AimingAISpeed * vmath.Sign(diff)
	} else {
		c.Angle = c.aiTarget
	}
	c.Angle = vmath.WrapDeg(c.Angle)
}

// Target returns the AI target angle and whether it has been chosen
func (c *Controller) Target() (float64, bool) {
	return c.aiTarget, c.aiStarted
}

// Launch releases ball at the current angle, credits the aiming player and returns to idle
// Callable before the timer expires for an early launch
func (c *Controller) Launch(ball *component.Ball) {
	if !c.Active() {
		return
	}
	ball.LaunchDeg(c.Angle)
	ball.LastHitPlayer = c.Player
	ball.LastHitColor = core.PlayerColor(c.Player)
	c.Reset()
}
