package component

import (
	"math"

	"github.com/lixenwraith/neon-arena/constant"
	"github.com/lixenwraith/neon-arena/core"
	"github.com/lixenwraith/neon-arena/vmath"
)

// Ball is the simulated ball, real or decoy
// Speed invariant: after every launch, reset or bounce |Vel| == CruiseSpeed()
type Ball struct {
	Pos vmath.Vec2
	Vel vmath.Vec2

	// Speed is the base speed; SpeedMultiplier comes from active ball-speed effects
	Speed           float64
	SpeedMultiplier float64
	// Boost is the extra speed fraction carried after a paddle hit
	Boost float64
	// boosted is set by a paddle hit and cleared by reset or launch
	boosted bool

	Size float64

	// Trail holds previous positions, oldest first
	Trail []vmath.Vec2

	LastHitPlayer core.PlayerID
	LastHitColor  core.RGB
	Glow          float64

	Decoy bool
	// Lifetime in ticks, -1 = infinite
	Lifetime int
	Alpha    float64

	arena core.Arena
}

// NewBall creates a real ball at the arena center with a random launch direction
func NewBall(arena core.Arena, speed, boost float64, rng vmath.Source) *Ball {
	b := &Ball{
		Speed:           speed,
		SpeedMultiplier: 1.0,
		Boost:           boost,
		Size:            constant.BallSize,
		Trail:           make([]vmath.Vec2, 0, constant.BallTrailLength),
		Lifetime:        -1,
		Alpha:           1.0,
		arena:           arena,
	}
	b.ResetPosition(rng)
	return b
}

// NewDecoyBall creates a non-threatening ball at pos with a random direction and finite lifetime
func NewDecoyBall(arena core.Arena, pos vmath.Vec2, speed, multiplier float64, lifetime int, rng vmath.Source) *Ball {
	b := &Ball{
		Speed:           speed,
		SpeedMultiplier: multiplier,
		Size:            constant.BallSize,
		Trail:           make([]vmath.Vec2, 0, constant.BallTrailLength),
		LastHitPlayer:   core.NoPlayer,
		LastHitColor:    core.RGBDecoyPink,
		Glow:            1.0,
		Decoy:           true,
		Lifetime:        lifetime,
		Alpha:           constant.DecoyAlpha,
		arena:           arena,
	}
	b.Pos = pos
	b.launch(vmath.RandomAngle(rng))
	return b
}

// TargetSpeed is base speed scaled by the active speed effect
func (b *Ball) TargetSpeed() float64 {
	return b.Speed * b.SpeedMultiplier
}

// CruiseSpeed is the speed the ball must hold right now, including any paddle-hit boost
func (b *Ball) CruiseSpeed() float64 {
	if b.boosted {
		return b.TargetSpeed() * (1 + b.Boost)
	}
	return b.TargetSpeed()
}

// SpeedError returns |Vel| - CruiseSpeed(), zero while frozen
func (b *Ball) SpeedError() float64 {
	if b.Vel.IsZero() {
		return 0
	}
	return b.Vel.Mag() - b.CruiseSpeed()
}

// CausesLifeLoss is false for decoys
func (b *Ball) CausesLifeLoss() bool {
	return !b.Decoy
}

// Expired reports a finite lifetime run out
func (b *Ball) Expired() bool {
	return b.Lifetime == 0
}

// Frozen reports zero velocity, as during aiming
func (b *Ball) Frozen() bool {
	return b.Vel.IsZero()
}

// Rect is the collision box centered on Pos
func (b *Ball) Rect() core.Rect {
	return core.RectAround(b.Pos.X, b.Pos.Y, b.Size, b.Size)
}

// Update records the trail, integrates one tick and decays cosmetics
func (b *Ball) Update() {
	if len(b.Trail) >= constant.BallTrailLength {
		copy(b.Trail, b.Trail[1:])
		b.Trail = b.Trail[:len(b.Trail)-1]
	}
	b.Trail = append(b.Trail, b.Pos)

	if b.Glow > 1.0 {
		b.Glow = math.Max(1.0, b.Glow-constant.BallGlowDecay)
	}

	b.Pos = b.Pos.Add(b.Vel)

	if b.Lifetime > 0 {
		b.Lifetime--
	}
}

// BounceOffPaddle reflects off p with spin proportional to the hit offset
func (b *Ball) BounceOffPaddle(p *Paddle) {
	cx, cy := p.Center()
	ax, ay := b.arena.Center()
	spin := b.TargetSpeed() * constant.BallSpinFactor
	clearance := b.Size/2 + constant.BallPaddleClearance

	b.LastHitPlayer = p.Player
	b.LastHitColor = p.Color
	b.Glow = constant.BallGlowHit

	if p.Orientation == core.Vertical {
		offset := vmath.Clamp((b.Pos.Y-cy)/(p.H/2), -1, 1)
		b.Vel.Y = offset * spin
		if cx < ax {
			b.Vel.X = math.Abs(b.Vel.X)
			b.Pos.X = cx + p.W/2 + clearance
		} else {
			b.Vel.X = -math.Abs(b.Vel.X)
			b.Pos.X = cx - p.W/2 - clearance
		}
	} else {
		offset := vmath.Clamp((b.Pos.X-cx)/(p.W/2), -1, 1)
		b.Vel.X = offset * spin
		if cy < ay {
			b.Vel.Y = math.Abs(b.Vel.Y)
			b.Pos.Y = cy + p.H/2 + clearance
		} else {
			b.Vel.Y = -math.Abs(b.Vel.Y)
			b.Pos.Y = cy - p.H/2 - clearance
		}
	}

	b.boosted = true
	target := b.CruiseSpeed()

	// Floor after the first normalization, then normalize again so the floor never changes the final speed
	b.Vel = b.Vel.WithMagnitude(target)
	b.Vel = vmath.EnsureMinAxis(b.Vel, constant.BallMinAxisSpeedBounce)
	b.Vel = b.Vel.WithMagnitude(target)
}

// BounceOffWall repositions just inside side and points velocity back into the arena
func (b *Ball) BounceOffWall(side core.Side) {
	half := b.Size / 2
	bd := b.arena.Boundary

	switch side {
	case core.SideLeft:
		b.Pos.X = bd + half
		b.Vel.X = math.Abs(b.Vel.X)
	case core.SideRight:
		b.Pos.X = b.arena.Width - bd - half
		b.Vel.X = -math.Abs(b.Vel.X)
	case core.SideTop:
		b.Pos.Y = bd + half
		b.Vel.Y = math.Abs(b.Vel.Y)
	case core.SideBottom:
		b.Pos.Y = b.arena.Height - bd - half
		b.Vel.Y = -math.Abs(b.Vel.Y)
	}

	b.Vel = b.Vel.WithMagnitude(b.CruiseSpeed())
}

// ResetPosition recenters with a uniformly random direction
func (b *Ball) ResetPosition(rng vmath.Source) {
	cx, cy := b.arena.Center()
	b.Pos = vmath.V2(cx, cy)
	b.Trail = b.Trail[:0]
	b.LastHitPlayer = core.NoPlayer
	b.LastHitColor = core.RGBNeonCyan
	b.Glow = 1.0
	b.launch(vmath.RandomAngle(rng))
}

// LaunchDeg sends the ball at angle degrees (0 right, 90 down) at target speed
func (b *Ball) LaunchDeg(deg float64) {
	b.launch(deg * math.Pi / 180)
}

func (b *Ball) launch(rad float64) {
	b.boosted = false
	target := b.TargetSpeed()
	sin, cos := math.Sincos(rad)
	b.Vel = vmath.V2(cos*target, sin*target)
	b.Vel = vmath.EnsureMinAxis(b.Vel, constant.BallMinAxisSpeedLaunch)
	b.Vel = b.Vel.WithMagnitude(target)
}

// Freeze parks the ball at pos with zero velocity
func (b *Ball) Freeze(pos vmath.Vec2) {
	b.Pos = pos
	b.Vel = vmath.Vec2{}
	b.Trail = b.Trail[:0]
}

// ApplySpeedModifier sets the effect multiplier, rescaling a moving ball to the new cruise speed
func (b *Ball) ApplySpeedModifier(m float64) {
	if m <= 0 || math.IsNaN(m) {
		m = 1.0
	}
	if m == b.SpeedMultiplier {
		return
	}
	b.SpeedMultiplier = m
	if !b.Vel.IsZero() {
		b.Vel = b.Vel.WithMagnitude(b.CruiseSpeed())
	}
}

// Steer adds delta to velocity and restores cruise speed
func (b *Ball) Steer(delta vmath.Vec2) {
	if b.Vel.IsZero() {
		return
	}
	b.Vel = b.Vel.Add(delta).WithMagnitude(b.CruiseSpeed())
}

// Deflect rotates velocity by deg degrees, keeping speed and the bounce floor
func (b *Ball) Deflect(deg float64) {
	if b.Vel.IsZero() {
		return
	}
	target := b.CruiseSpeed()
	b.Vel = vmath.Rotate(b.Vel, deg*math.Pi/180)
	b.Vel = vmath.EnsureMinAxis(b.Vel, constant.BallMinAxisSpeedBounce)
	b.Vel = b.Vel.WithMagnitude(target)
}

// Arena returns the arena the ball was built for
func (b *Ball) Arena() core.Arena {
	return b.arena
}
