package powerup

import (
	"fmt"

	"github.com/lixenwraith/neon-arena/constant"
	"github.com/lixenwraith/neon-arena/core"
)

// Kind identifies a power-up type
type Kind uint8

const (
	KindPaddleSize Kind = iota
	KindShield
	KindDecoyBall
	KindBallSpeed
	KindGhostBall
	KindMagnetize
	KindWildBounce
	KindControlScramble

	kindCount
)

// DefaultKinds are enabled when settings name none
var DefaultKinds = []Kind{KindPaddleSize, KindShield, KindDecoyBall}

var kindNames = [kindCount]string{
	KindPaddleSize:      "paddle_size",
	KindShield:          "shield",
	KindDecoyBall:       "decoy_ball",
	KindBallSpeed:       "ball_speed",
	KindGhostBall:       "ghost_ball",
	KindMagnetize:       "magnetize",
	KindWildBounce:      "wild_bounce",
	KindControlScramble: "control_scramble",
}

// AllKinds returns every kind in declaration order
func AllKinds() []Kind {
	out := make([]Kind, kindCount)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// Valid reports a known kind
func (k Kind) Valid() bool {
	return k < kindCount
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", k)
	}
	return kindNames[k]
}

// ParseKind maps a settings name to a Kind
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown power-up kind %q", s)
}

// MarshalText encodes the kind by name for settings files
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid power-up kind %d", k)
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText decodes a kind name
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Variants lists the sub-behaviors a spawned power-up of this kind may carry
func (k Kind) Variants() []Variant {
	switch k {
	case KindPaddleSize:
		return []Variant{VariantIncreaseSelf, VariantDecreaseEnemies}
	case KindBallSpeed:
		return []Variant{VariantSlow, VariantFast}
	}
	return []Variant{VariantNone}
}

// Duration is the effect length in ticks; for decoys it is the decoy ball lifetime
func (k Kind) Duration() int {
	switch k {
	case KindPaddleSize:
		return constant.DurationPaddleSize
	case KindShield:
		return constant.DurationShield
	case KindDecoyBall:
		return constant.DurationDecoyBall
	case KindBallSpeed:
		return constant.DurationBallSpeed
	case KindGhostBall:
		return constant.DurationGhostBall
	case KindMagnetize:
		return constant.DurationMagnetize
	case KindWildBounce:
		return constant.DurationWildBounce
	case KindControlScramble:
		return constant.DurationControlScramble
	}
	return constant.DurationInstant
}

// Instant kinds act once on collection and never enter the active list
func (k Kind) Instant() bool {
	return k == KindDecoyBall
}

// Color is the display color of the kind
func (k Kind) Color() core.RGB {
	switch k {
	case KindPaddleSize:
		return core.RGBNeonPurple
	case KindShield:
		return core.RGBShieldBlue
	case KindDecoyBall:
		return core.RGBDecoyPink
	case KindBallSpeed:
		return core.RGBSpeedPink
	case KindGhostBall:
		return core.RGBNeonCyan
	case KindMagnetize:
		return core.RGBNeonYellow
	case KindWildBounce:
		return core.RGBWildRed
	case KindControlScramble:
		return core.RGBScrambleLim
	}
	return core.RGBNeonPurple
}

// Variant is a kind-specific sub-behavior
// Only the pairs returned by Kind.Variants are meaningful
type Variant uint8

const (
	VariantNone Variant = iota
	VariantIncreaseSelf
	VariantDecreaseEnemies
	VariantSlow
	VariantFast
)

func (v Variant) String() string {
	switch v {
	case VariantNone:
		return "none"
	case VariantIncreaseSelf:
		return "increase_self"
	case VariantDecreaseEnemies:
		return "decrease_enemies"
	case VariantSlow:
		return "slow"
	case VariantFast:
		return "fast"
	}
	return fmt.Sprintf("variant(%d)", v)
}

// ValidFor reports whether v is a legal variant of k
func (v Variant) ValidFor(k Kind) bool {
	for _, allowed := range k.Variants() {
		if v == allowed {
			return true
		}
	}
	return false
}

// SpeedMultiplier returns the ball speed factor of a ball-speed variant
func (v Variant) SpeedMultiplier() float64 {
	switch v {
	case VariantSlow:
		return constant.BallSpeedSlow
	case VariantFast:
		return constant.BallSpeedFast
	}
	return 1.0
}
