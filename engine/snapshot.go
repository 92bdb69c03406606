package engine

import (
	"github.com/lixenwraith/neon-arena/component"
	"github.com/lixenwraith/neon-arena/core"
	"github.com/lixenwraith/neon-arena/powerup"
	"github.com/lixenwraith/neon-arena/vmath"
)

// Input is one tick of player commands
// Launch and Pause are edge flags: set only on the tick the key went down
type Input struct {
	Players [core.PlayerCount]core.Intent
	Launch  bool
	Pause   bool
}

// BallView is a renderer copy of a ball
type BallView struct {
	X     float64      `json:"x"`
	Y     float64      `json:"y"`
	Size  float64      `json:"size"`
	Trail []vmath.Vec2 `json:"trail,omitempty"`
	Color core.RGB     `json:"color"`
	Glow  float64      `json:"glow"`
	Alpha float64      `json:"alpha"`
	Decoy bool         `json:"decoy,omitempty"`
}

// PaddleView is a renderer copy of a paddle
type PaddleView struct {
	Player core.PlayerID `json:"player"`
	X      float64       `json:"x"`
	Y      float64       `json:"y"`
	W      float64       `json:"w"`
	H      float64       `json:"h"`
	Color  core.RGB      `json:"color"`
	Alive  bool          `json:"alive"`
	AI     bool          `json:"ai"`
}

// AimingView is the aiming state; Player is NoPlayer when idle
type AimingView struct {
	Player core.PlayerID `json:"player"`
	Angle  float64       `json:"angle"`
	Timer  int           `json:"timer"`
}

// ItemView is a field power-up
type ItemView struct {
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Kind     string   `json:"kind"`
	Variant  string   `json:"variant"`
	Active   bool     `json:"active"`
	Flashing bool     `json:"flashing,omitempty"`
	Rotation float64  `json:"rotation"`
	Glow     float64  `json:"glow"`
	Color    core.RGB `json:"color"`
}

// EffectView is an active effect
type EffectView struct {
	Kind      string        `json:"kind"`
	Variant   string        `json:"variant"`
	Player    core.PlayerID `json:"player"`
	Remaining int           `json:"remaining"`
	Progress  float64       `json:"progress"`
}

// WinnerInfo describes the match result; Player is NoPlayer when nobody survived
type WinnerInfo struct {
	Player  core.PlayerID `json:"player"`
	Lives   int           `json:"lives"`
	Message string        `json:"message"`
}

// Snapshot is a value copy of everything a renderer needs; it shares no memory with the match
type Snapshot struct {
	MatchID string    `json:"match_id"`
	Tick    uint64    `json:"tick"`
	Mode    core.Mode `json:"mode"`

	Ball    BallView                     `json:"ball"`
	Decoys  []BallView                   `json:"decoys,omitempty"`
	Paddles [core.PlayerCount]PaddleView `json:"paddles"`
	Lives   [core.PlayerCount]int        `json:"lives"`

	Aiming  AimingView   `json:"aiming"`
	Items   []ItemView   `json:"items,omitempty"`
	Effects []EffectView `json:"effects,omitempty"`

	Winner *WinnerInfo `json:"winner,omitempty"`
}

func viewBall(b *component.Ball) BallView {
	return BallView{
		X:     b.Pos.X,
		Y:     b.Pos.Y,
		Size:  b.Size,
		Trail: append([]vmath.Vec2(nil), b.Trail...),
		Color: b.LastHitColor,
		Glow:  b.Glow,
		Alpha: b.Alpha,
		Decoy: b.Decoy,
	}
}

func viewItem(it *powerup.Item) ItemView {
	return ItemView{
		X:        it.Pos.X,
		Y:        it.Pos.Y,
		Kind:     it.Kind.String(),
		Variant:  it.Variant.String(),
		Active:   it.Phase == powerup.PhaseActive,
		Flashing: it.Flashing(),
		Rotation: it.Rotation,
		Glow:     it.GlowRadius(),
		Color:    it.Kind.Color(),
	}
}

func viewEffect(e powerup.Effect) EffectView {
	return EffectView{
		Kind:      e.Kind.String(),
		Variant:   e.Variant.String(),
		Player:    e.Player,
		Remaining: e.Remaining,
		Progress:  e.Progress(),
	}
}
