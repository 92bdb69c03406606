// Package ai drives computer-controlled paddles
// Each Controller owns its state; controllers never share history
package ai

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/neon-arena/component"
	"github.com/lixenwraith/neon-arena/constant"
	"github.com/lixenwraith/neon-arena/core"
	"github.com/lixenwraith/neon-arena/vmath"
)

// ErrInvalidDifficulty is returned for a difficulty outside [0,1]
var ErrInvalidDifficulty = errors.New("ai: difficulty must be in [0,1]")

// Controller steers one paddle by writing its Intent each tick
type Controller struct {
	paddle     *component.Paddle
	arena      core.Arena
	difficulty float64
	centerSeek float64
	maxDelay   int
	state      State
}

// New creates a controller for paddle at the given difficulty
func New(paddle *component.Paddle, arena core.Arena, difficulty float64) (*Controller, error) {
	if paddle == nil {
		return nil, errors.New("ai: nil paddle")
	}
	if math.IsNaN(difficulty) || difficulty < 0 || difficulty > 1 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidDifficulty, difficulty)
	}
	c := &Controller{
		paddle:     paddle,
		arena:      arena,
		difficulty: difficulty,
		centerSeek: constant.AICenterSeekStrength,
		maxDelay:   int(constant.AIReactionDelayMax * (1 - difficulty)),
	}
	c.Reset()
	return c, nil
}

// Reset clears history, e.g. on match restart
func (c *Controller) Reset() {
	c.state = State{Threshold: LevelNormal, pendingLevel: LevelNormal}
}

// Paddle returns the controlled paddle
func (c *Controller) Paddle() *component.Paddle {
	return c.paddle
}

// Difficulty returns the configured difficulty
func (c *Controller) Difficulty() float64 {
	return c.difficulty
}

// State returns a copy of the controller state
func (c *Controller) State() State {
	return c.state
}

// Threshold returns the current dead zone in pixels
func (c *Controller) Threshold() float64 {
	return c.baseThreshold() * c.state.Threshold.Scale()
}

func (c *Controller) baseThreshold() float64 {
	return constant.AIDeadZoneBase * (1 - c.difficulty + constant.AIDeadZoneBias)
}

// Update runs one decision tick against ball and sets the paddle intent
// While reaction delay is pending the previous intent is kept
func (c *Controller) Update(ball *component.Ball) {
	if c.state.ReactionDelay > 0 {
		c.state.ReactionDelay--
		return
	}

	raw := c.PredictIntercept(ball)
	stable := c.stabilize(raw)

	dist, approaching := c.threat(ball)
	strategic := c.retarget(stable, ball, dist, approaching)

	closeness := 0.0
	if approaching {
		closeness = vmath.Clamp(1-dist/constant.AIMinThreatDistance, 0, 1)
	}
	smoothing := math.Min(constant.AISmoothingMin+(constant.AISmoothingMax-constant.AISmoothingMin)*closeness, constant.AISmoothingMax)

	if !c.state.HasTarget {
		c.state.Target = strategic
		c.state.HasTarget = true
	} else {
		c.state.Target += (strategic - c.state.Target) * smoothing
	}

	c.state.settle(candidateLevel(dist, approaching))
	threshold := c.Threshold()
	diff := c.state.Target - c.paddle.AxisCenter()

	c.commit(diff, threshold)
	c.applyDirection()

	if math.Abs(diff) > threshold*constant.AIReactionGapFactor {
		c.state.ReactionDelay = c.maxDelay
	}
}

// PredictIntercept extrapolates the ball to the paddle's plane and returns the
// coordinate along the paddle's travel axis
func (c *Controller) PredictIntercept(ball *component.Ball) float64 {
	along, alongVel, perp, perpVel := c.axes(ball)
	plane := c.plane()

	if math.Abs(perpVel) < constant.AIParallelEpsilon {
		return along
	}
	t := (plane - perp) / perpVel
	if t < 0 {
		return along
	}

	lo, hi := c.travelLimits(ball.Size)
	predicted := along + alongVel*t
	for i := 0; i < constant.AIMaxBounces; i++ {
		switch {
		case predicted < lo:
			predicted = 2*lo - predicted
		case predicted > hi:
			predicted = 2*hi - predicted
		}
	}
	return vmath.Clamp(predicted, lo, hi)
}

// axes splits ball motion into the paddle's travel axis and the perpendicular
func (c *Controller) axes(ball *component.Ball) (along, alongVel, perp, perpVel float64) {
	if c.paddle.Orientation == core.Vertical {
		return ball.Pos.Y, ball.Vel.Y, ball.Pos.X, ball.Vel.X
	}
	return ball.Pos.X, ball.Vel.X, ball.Pos.Y, ball.Vel.Y
}

// plane is the perpendicular coordinate of the defended paddle face center
func (c *Controller) plane() float64 {
	cx, cy := c.paddle.Center()
	if c.paddle.Orientation == core.Vertical {
		return cx
	}
	return cy
}

func (c *Controller) travelLimits(ballSize float64) (float64, float64) {
	half := ballSize / 2
	b := c.paddle.Bounds
	if c.paddle.Orientation == core.Vertical {
		return b.Top() + half, b.Bottom() - half
	}
	return b.Left() + half, b.Right() - half
}

// stabilize blends the newest prediction with the running average of earlier ones
func (c *Controller) stabilize(raw float64) float64 {
	out := raw
	if avg, ok := c.state.historyAverage(); ok {
		out = raw*(1-constant.AIHistoryWeight) + avg*constant.AIHistoryWeight
	}
	c.state.pushHistory(raw)
	return out
}

// threat returns perpendicular distance to the defended plane and whether the ball is closing
func (c *Controller) threat(ball *component.Ball) (float64, bool) {
	_, _, perp, perpVel := c.axes(ball)
	gap := c.plane() - perp
	approaching := gap*perpVel > 0 && math.Abs(perpVel) >= constant.AIParallelEpsilon
	return math.Abs(gap), approaching
}

// retarget pulls the prediction toward the paddle's home center
func (c *Controller) retarget(stable float64, ball *component.Ball, dist float64, approaching bool) float64 {
	var bias float64
	switch {
	case !approaching && c.headingOpposite(ball):
		bias = c.centerSeek * constant.AIOppositeWallFactor
	case !approaching || dist > constant.AIAnticipationDistance:
		bias = c.centerSeek * (1 - c.difficulty*constant.AIDifficultyCenterDamper)
	default:
		bias = c.centerSeek * constant.AIApproachCenterFactor
	}
	bias = vmath.Clamp(bias, 0, 1)
	return vmath.Lerp(stable, c.paddle.Home(), bias)
}

// headingOpposite reports the ball moving mostly along the perpendicular, away from this paddle
func (c *Controller) headingOpposite(ball *component.Ball) bool {
	speed := ball.Vel.Mag()
	if speed == 0 {
		return false
	}
	_, _, _, perpVel := c.axes(ball)
	return math.Abs(perpVel)/speed > constant.AIOppositeWallThreshold
}

func candidateLevel(dist float64, approaching bool) Level {
	switch {
	case !approaching || dist > constant.AIMinThreatDistance:
		return LevelLoose
	case dist < constant.AIAnticipationDistance:
		return LevelTight
	}
	return LevelNormal
}

// commit picks a direction, honouring the minimum hold of the previous choice
func (c *Controller) commit(diff, threshold float64) {
	if c.state.CommitTicks > 0 {
		c.state.CommitTicks--
		if c.state.CommitTicks > 0 {
			return
		}
	}

	desired := 0
	if math.Abs(diff) > threshold {
		desired = int(vmath.Sign(diff))
	}
	if desired != c.state.Direction {
		c.state.Direction = desired
		c.state.CommitTicks = constant.AICommitTicks
	}
}

func (c *Controller) applyDirection() {
	c.paddle.ClearIntent()
	switch {
	case c.state.Direction < 0 && c.paddle.Orientation == core.Vertical:
		c.paddle.Intent.Up = true
	case c.state.Direction > 0 && c.paddle.Orientation == core.Vertical:
		c.paddle.Intent.Down = true
	case c.state.Direction < 0:
		c.paddle.Intent.Left = true
	case c.state.Direction > 0:
		c.paddle.Intent.Right = true
	}
}
