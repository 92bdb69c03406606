// Package physics resolves ball contacts against paddles and arena boundaries
package physics

import (
	"github.com/lixenwraith/neon-arena/component"
	"github.com/lixenwraith/neon-arena/core"
)

// Collision classifies a resolved contact
type Collision uint8

const (
	CollisionNone Collision = iota
	// CollisionPaddle is a paddle bounce
	CollisionPaddle
	// CollisionWall is a bounce off an undefended or decoy-struck boundary
	CollisionWall
	// CollisionShield is a bounce that consumed the owner's shield
	CollisionShield
	// CollisionGoal is a boundary crossing that costs the owner a life
	CollisionGoal
)

func (c Collision) String() string {
	switch c {
	case CollisionNone:
		return "none"
	case CollisionPaddle:
		return "paddle"
	case CollisionWall:
		return "wall"
	case CollisionShield:
		return "shield"
	case CollisionGoal:
		return "goal"
	}
	return "unknown"
}

// Result reports at most one contact per call
type Result struct {
	Collision  Collision
	Player     core.PlayerID
	Side       core.Side
	Bounced    bool
	LifeLost   bool
	ShieldUsed bool
}

// Occurred reports any contact
func (r Result) Occurred() bool {
	return r.Collision != CollisionNone
}

var noCollision = Result{Player: core.NoPlayer}

// EffectQuery is the slice of power-up state the resolver consults
type EffectQuery interface {
	HasShield(player core.PlayerID) bool
	UseShield(player core.PlayerID) bool
	GhostBall() (owner core.PlayerID, active bool)
}

// Resolver applies contact rules; it holds no per-ball state
type Resolver struct {
	effects EffectQuery
	// ForceBounce turns every boundary into a wall, e.g. for demo play
	ForceBounce bool
}

// NewResolver creates a resolver consulting q; a nil q means no effects
func NewResolver(q EffectQuery) *Resolver {
	return &Resolver{effects: q}
}

// ResolvePaddles bounces ball off the first overlapping alive paddle in player order
// While a ghost effect is active every paddle except the owner's is passed through
func (r *Resolver) ResolvePaddles(ball *component.Ball, paddles [core.PlayerCount]*component.Paddle, alive [core.PlayerCount]bool) Result {
	ghostOwner, ghost := core.NoPlayer, false
	if r.effects != nil {
		ghostOwner, ghost = r.effects.GhostBall()
	}
	br := ball.Rect()

	for i, p := range paddles {
		if p == nil || !alive[i] {
			continue
		}
		if ghost && p.Player != ghostOwner {
			continue
		}
		if !br.Overlaps(p.Rect()) {
			continue
		}
		ball.BounceOffPaddle(p)
		return Result{
			Collision: CollisionPaddle,
			Player:    p.Player,
			Side:      core.SideOf(p.Player),
			Bounced:   true,
		}
	}
	return noCollision
}

// ResolveBoundary checks left, right, top, bottom in that order; only the first crossed edge is handled
func (r *Resolver) ResolveBoundary(ball *component.Ball, alive [core.PlayerCount]bool) Result {
	side, crossed := crossedSide(ball)
	if !crossed {
		return noCollision
	}

	owner := side.Owner()
	res := Result{Player: owner, Side: side}

	switch {
	case !alive[owner] || !ball.CausesLifeLoss() || r.ForceBounce:
		ball.BounceOffWall(side)
		res.Collision = CollisionWall
		res.Bounced = true
	case r.effects != nil && r.effects.HasShield(owner) && r.effects.UseShield(owner):
		ball.BounceOffWall(side)
		res.Collision = CollisionShield
		res.Bounced = true
		res.ShieldUsed = true
	default:
		res.Collision = CollisionGoal
		res.LifeLost = true
	}
	return res
}

// Resolve runs paddles then boundaries; a paddle bounce ends the tick's resolution
func (r *Resolver) Resolve(ball *component.Ball, paddles [core.PlayerCount]*component.Paddle, alive [core.PlayerCount]bool) Result {
	if res := r.ResolvePaddles(ball, paddles, alive); res.Occurred() {
		return res
	}
	return r.ResolveBoundary(ball, alive)
}

func crossedSide(ball *component.Ball) (core.Side, bool) {
	a := ball.Arena()
	switch {
	case ball.Pos.X <= a.Boundary:
		return core.SideLeft, true
	case ball.Pos.X >= a.Width-a.Boundary:
		return core.SideRight, true
	case ball.Pos.Y <= a.Boundary:
		return core.SideTop, true
	case ball.Pos.Y >= a.Height-a.Boundary:
		return core.SideBottom, true
	}
	return 0, false
}
