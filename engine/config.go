package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/neon-arena/constant"
	"github.com/lixenwraith/neon-arena/core"
	"github.com/lixenwraith/neon-arena/powerup"
	"github.com/lixenwraith/neon-arena/vmath"
)

// ErrInvalidConfig is wrapped by every Config validation failure
var ErrInvalidConfig = errors.New("engine: invalid config")

// Config is read once per match construction; Reconfigure stages a new one for the next restart
type Config struct {
	Arena core.Arena

	StartingLives  int
	BallSpeed      float64
	BallSpeedBoost float64

	AIDifficulty float64
	// Humans marks paddles driven by Input; the rest get an AI controller
	Humans [core.PlayerCount]bool

	PowerUps         []powerup.Kind
	PowerUpFrequency powerup.Frequency

	// Seed feeds the default PCG source when Source is nil
	Seed   uint64
	Source vmath.Source

	// Sink receives cosmetic callbacks; nil means NopSink
	Sink EffectSink
}

// DefaultConfig is one human on the left against three AI paddles
func DefaultConfig() Config {
	return Config{
		Arena: core.Arena{
			Width:    constant.ArenaWidth,
			Height:   constant.ArenaHeight,
			Boundary: constant.BoundaryThickness,
		},
		StartingLives:    constant.StartingLives,
		BallSpeed:        constant.BallSpeed,
		BallSpeedBoost:   constant.BallSpeedBoost,
		AIDifficulty:     constant.DifficultyDefault,
		Humans:           [core.PlayerCount]bool{true, false, false, false},
		PowerUps:         append([]powerup.Kind(nil), powerup.DefaultKinds...),
		PowerUpFrequency: powerup.FrequencyNormal,
		Seed:             1,
	}
}

// Validate rejects values the simulation cannot run with
func (c Config) Validate() error {
	if err := validateArena(c.Arena); err != nil {
		return err
	}
	if err := c.powerUpConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.StartingLives < 1 || c.StartingLives > constant.MaxLives {
		return fmt.Errorf("%w: starting lives %d not in [1,%d]", ErrInvalidConfig, c.StartingLives, constant.MaxLives)
	}
	if !(c.BallSpeed > 0) || math.IsInf(c.BallSpeed, 0) {
		return fmt.Errorf("%w: ball speed %v", ErrInvalidConfig, c.BallSpeed)
	}
	if c.BallSpeedBoost < 0 || math.IsNaN(c.BallSpeedBoost) {
		return fmt.Errorf("%w: ball speed boost %v", ErrInvalidConfig, c.BallSpeedBoost)
	}
	if math.IsNaN(c.AIDifficulty) || c.AIDifficulty < 0 || c.AIDifficulty > 1 {
		return fmt.Errorf("%w: ai difficulty %v not in [0,1]", ErrInvalidConfig, c.AIDifficulty)
	}
	for _, k := range c.PowerUps {
		if !k.Valid() {
			return fmt.Errorf("%w: power-up kind %d", ErrInvalidConfig, k)
		}
	}
	return nil
}

// validateArena rejects arenas the fixed paddle and aiming geometry cannot fit in
func validateArena(a core.Arena) error {
	if !a.Valid() {
		return fmt.Errorf("%w: arena %+v", ErrInvalidConfig, a)
	}
	if a.Boundary > constant.PaddleMargin {
		return fmt.Errorf("%w: boundary %v puts paddles outside the play area", ErrInvalidConfig, a.Boundary)
	}
	side := math.Min(a.Width, a.Height)
	if side < constant.PaddleLaneSpan {
		return fmt.Errorf("%w: arena side %v below paddle span %v", ErrInvalidConfig, side, constant.PaddleLaneSpan)
	}
	if side <= 2*(a.Boundary+constant.AimingBallMargin) {
		return fmt.Errorf("%w: arena side %v leaves no room for the aiming ball", ErrInvalidConfig, side)
	}
	return nil
}

func (c Config) powerUpConfig() powerup.Config {
	lo, hi := c.PowerUpFrequency.Window()
	return powerup.Config{
		Arena:    c.Arena,
		Kinds:    append([]powerup.Kind(nil), c.PowerUps...),
		SpawnMin: lo,
		SpawnMax: hi,
	}
}
