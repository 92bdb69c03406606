// Package powerup schedules, collects and tracks power-ups and their effects
package powerup

import (
	"errors"
	"fmt"
	"log"

	"github.com/lixenwraith/neon-arena/component"
	"github.com/lixenwraith/neon-arena/constant"
	"github.com/lixenwraith/neon-arena/core"
	"github.com/lixenwraith/neon-arena/vmath"
)

// ErrInvalidConfig is wrapped by Config.Validate failures
var ErrInvalidConfig = errors.New("powerup: invalid config")

// Frequency selects the spawn interval window
type Frequency uint8

const (
	FrequencyNormal Frequency = iota
	FrequencyFrequent
)

func (f Frequency) String() string {
	if f == FrequencyFrequent {
		return "frequent"
	}
	return "normal"
}

// Window returns the [min,max] spawn interval in ticks
func (f Frequency) Window() (int, int) {
	if f == FrequencyFrequent {
		return constant.PowerUpSpawnMinFrequent, constant.PowerUpSpawnMaxFrequent
	}
	return constant.PowerUpSpawnMin, constant.PowerUpSpawnMax
}

// ParseFrequency maps a settings name to a Frequency
func ParseFrequency(s string) (Frequency, error) {
	switch s {
	case "", "normal":
		return FrequencyNormal, nil
	case "frequent":
		return FrequencyFrequent, nil
	}
	return FrequencyNormal, fmt.Errorf("unknown power-up frequency %q", s)
}

func (f Frequency) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *Frequency) UnmarshalText(b []byte) error {
	parsed, err := ParseFrequency(string(b))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Config is fixed for the engine's lifetime
type Config struct {
	Arena core.Arena
	// Kinds enabled for spawning; empty disables spawning
	Kinds    []Kind
	SpawnMin int
	SpawnMax int
}

// DefaultConfig returns the normal-frequency engine over the default kinds
func DefaultConfig(arena core.Arena) Config {
	lo, hi := FrequencyNormal.Window()
	return Config{
		Arena:    arena,
		Kinds:    append([]Kind(nil), DefaultKinds...),
		SpawnMin: lo,
		SpawnMax: hi,
	}
}

// Validate checks arena, interval and kind ranges
func (c Config) Validate() error {
	if !c.Arena.Valid() {
		return fmt.Errorf("%w: arena %+v", ErrInvalidConfig, c.Arena)
	}
	if c.Arena.Width <= 2*constant.PowerUpSpawnMargin || c.Arena.Height <= 2*constant.PowerUpSpawnMargin {
		return fmt.Errorf("%w: arena %vx%v smaller than spawn margins", ErrInvalidConfig, c.Arena.Width, c.Arena.Height)
	}
	if c.SpawnMin <= 0 || c.SpawnMax < c.SpawnMin {
		return fmt.Errorf("%w: spawn window [%d,%d]", ErrInvalidConfig, c.SpawnMin, c.SpawnMax)
	}
	for _, k := range c.Kinds {
		if !k.Valid() {
			return fmt.Errorf("%w: kind %d", ErrInvalidConfig, k)
		}
	}
	return nil
}

// Engine owns field items, the ordered active-effect list and decoy balls
// Effect order is insertion order; ball-speed resolution depends on it
type Engine struct {
	cfg   Config
	rng   vmath.Source
	spawn core.Rect

	items   []*Item
	effects []Effect
	decoys  []*component.Ball

	spawnTimer     int
	wildTimer      int
	scrambleOffset int
}

// NewEngine validates cfg and arms the first spawn
func NewEngine(cfg Config, rng vmath.Source) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidConfig)
	}
	e := &Engine{
		cfg: cfg,
		rng: rng,
		spawn: core.Rect{
			X: constant.PowerUpSpawnMargin,
			Y: constant.PowerUpSpawnMargin,
			W: cfg.Arena.Width - 2*constant.PowerUpSpawnMargin,
			H: cfg.Arena.Height - 2*constant.PowerUpSpawnMargin,
		},
	}
	e.resetSpawnTimer()
	return e, nil
}

func (e *Engine) resetSpawnTimer() {
	e.spawnTimer = vmath.IntRange(e.rng, e.cfg.SpawnMin, e.cfg.SpawnMax)
}

func (e *Engine) wanderArea() core.Rect {
	a := e.cfg.Arena
	m := constant.PowerUpWanderMargin
	return core.Rect{X: m, Y: m, W: a.Width - 2*m, H: a.Height - 2*m}
}

// Update runs the spawn scheduler, animates items and counts down effects
// Returns the effects that expired this tick
func (e *Engine) Update() []Effect {
	e.spawnTimer--
	if e.spawnTimer <= 0 {
		e.SpawnRandom()
		e.resetSpawnTimer()
	}

	for _, it := range e.items {
		it.Update(e.rng)
	}

	var expired []Effect
	kept := e.effects[:0]
	for _, eff := range e.effects {
		if eff.Remaining > 0 {
			eff.Remaining--
			if eff.Remaining == 0 {
				expired = append(expired, eff)
				continue
			}
		}
		kept = append(kept, eff)
	}
	e.effects = kept
	return expired
}

// SpawnRandom places a random enabled kind in the spawn rectangle, nil when no kinds are enabled
func (e *Engine) SpawnRandom() *Item {
	if len(e.cfg.Kinds) == 0 {
		return nil
	}
	kind := e.cfg.Kinds[e.rng.Intn(len(e.cfg.Kinds))]
	variants := kind.Variants()
	variant := variants[e.rng.Intn(len(variants))]
	pos := vmath.V2(
		e.rng.Range(e.spawn.Left(), e.spawn.Right()),
		e.rng.Range(e.spawn.Top(), e.spawn.Bottom()),
	)
	return e.Spawn(pos, kind, variant)
}

// Spawn places a specific power-up
func (e *Engine) Spawn(pos vmath.Vec2, kind Kind, variant Variant) *Item {
	it := NewItem(pos, kind, variant, e.wanderArea(), e.rng)
	e.items = append(e.items, it)
	return it
}

// Collect checks ball proximity against collectable items
// The first item within reach is credited to the ball's last hitter, who must be alive
func (e *Engine) Collect(ball *component.Ball, alive [core.PlayerCount]bool) (Effect, bool) {
	for i, it := range e.items {
		if !it.Collectable() {
			continue
		}
		if vmath.Distance(ball.Pos, it.Pos) > constant.PowerUpCollectRadius {
			continue
		}

		owner := ball.LastHitPlayer
		if !owner.Valid() || !alive[owner] {
			return Effect{}, false
		}

		eff := Effect{Kind: it.Kind, Variant: it.Variant, Player: owner, Remaining: it.Kind.Duration()}
		e.items = append(e.items[:i], e.items[i+1:]...)
		e.Apply(eff, ball)
		return eff, true
	}
	return Effect{}, false
}

// Apply adds eff to the active list or refreshes the holder's existing effect of the same kind
// Instant kinds act immediately; a decoy spawns at origin's position
func (e *Engine) Apply(eff Effect, origin *component.Ball) {
	if !eff.Player.Valid() || !eff.Kind.Valid() {
		log.Printf("powerup: ignoring effect %s for player %d", eff.Kind, eff.Player)
		return
	}

	if eff.Kind.Instant() {
		if eff.Kind == KindDecoyBall && origin != nil {
			e.spawnDecoy(origin, eff.Remaining)
		}
		return
	}

	if eff.Kind == KindControlScramble {
		e.scrambleOffset = 1 + e.rng.Intn(core.PlayerCount-1)
	}

	for i := range e.effects {
		if e.effects[i].Player == eff.Player && e.effects[i].Kind == eff.Kind {
			e.effects[i].Remaining = eff.Remaining
			return
		}
	}
	e.effects = append(e.effects, eff)
}

func (e *Engine) spawnDecoy(origin *component.Ball, lifetime int) {
	if lifetime <= 0 {
		lifetime = constant.DurationDecoyBall
	}
	d := component.NewDecoyBall(origin.Arena(), origin.Pos, origin.Speed, origin.SpeedMultiplier, lifetime, e.rng)
	e.decoys = append(e.decoys, d)
}

// PruneDecoys drops decoys whose lifetime ran out
func (e *Engine) PruneDecoys() int {
	kept := e.decoys[:0]
	for _, d := range e.decoys {
		if !d.Expired() {
			kept = append(kept, d)
		}
	}
	removed := len(e.decoys) - len(kept)
	for i := len(kept); i < len(e.decoys); i++ {
		e.decoys[i] = nil
	}
	e.decoys = kept
	return removed
}

// --- Queries ---

func (e *Engine) find(player core.PlayerID, kind Kind) int {
	for i, eff := range e.effects {
		if eff.Player == player && eff.Kind == kind {
			return i
		}
	}
	return -1
}

// latest returns the holder of the most recently added effect of kind
func (e *Engine) latest(kind Kind) (core.PlayerID, bool) {
	for i := len(e.effects) - 1; i >= 0; i-- {
		if e.effects[i].Kind == kind {
			return e.effects[i].Player, true
		}
	}
	return core.NoPlayer, false
}

// HasShield reports an unused shield for player
func (e *Engine) HasShield(player core.PlayerID) bool {
	if !player.Valid() {
		return false
	}
	return e.find(player, KindShield) >= 0
}

// UseShield consumes the player's shield, false when none was held
func (e *Engine) UseShield(player core.PlayerID) bool {
	if !player.Valid() {
		return false
	}
	i := e.find(player, KindShield)
	if i < 0 {
		return false
	}
	e.effects = append(e.effects[:i], e.effects[i+1:]...)
	return true
}

// PaddleSizeModifier combines size effects affecting player
// Own increase multiplies up; each enemy's decrease multiplies down while player is alive
func (e *Engine) PaddleSizeModifier(player core.PlayerID, alive [core.PlayerCount]bool) float64 {
	if !player.Valid() {
		return 1.0
	}
	m := 1.0
	for _, eff := range e.effects {
		if eff.Kind != KindPaddleSize {
			continue
		}
		switch {
		case eff.Variant == VariantIncreaseSelf && eff.Player == player:
			m *= constant.PaddleSizeIncrease
		case eff.Variant == VariantDecreaseEnemies && eff.Player != player && alive[player]:
			m *= constant.PaddleSizeDecrease
		}
	}
	return m
}

// BallSpeedModifier is the multiplier of the most recently added ball-speed effect
func (e *Engine) BallSpeedModifier() float64 {
	for i := len(e.effects) - 1; i >= 0; i-- {
		if e.effects[i].Kind == KindBallSpeed {
			return e.effects[i].Variant.SpeedMultiplier()
		}
	}
	return 1.0
}

// GhostBall returns the owner of the active ghost effect
func (e *Engine) GhostBall() (core.PlayerID, bool) {
	return e.latest(KindGhostBall)
}

// Magnet returns the owner of the active magnet effect
func (e *Engine) Magnet() (core.PlayerID, bool) {
	return e.latest(KindMagnetize)
}

// WildBounce returns the owner of the active wild-bounce effect
func (e *Engine) WildBounce() (core.PlayerID, bool) {
	return e.latest(KindWildBounce)
}

// ControlScramble reports an active scramble
func (e *Engine) ControlScramble() bool {
	_, ok := e.latest(KindControlScramble)
	return ok
}

// ScrambledPlayer maps a control slot to the paddle it drives while scrambled
func (e *Engine) ScrambledPlayer(id core.PlayerID) core.PlayerID {
	if !id.Valid() || !e.ControlScramble() {
		return id
	}
	return core.PlayerID((int(id) + e.scrambleOffset) % core.PlayerCount)
}

// WildDeflection counts down the wild-bounce timer and returns a random deflection when it fires
func (e *Engine) WildDeflection() (float64, bool) {
	if _, ok := e.WildBounce(); !ok {
		e.wildTimer = 0
		return 0, false
	}
	if e.wildTimer <= 0 {
		e.wildTimer = vmath.IntRange(e.rng, constant.WildBounceMinInterval, constant.WildBounceMaxInterval)
		return 0, false
	}
	e.wildTimer--
	if e.wildTimer > 0 {
		return 0, false
	}
	e.wildTimer = vmath.IntRange(e.rng, constant.WildBounceMinInterval, constant.WildBounceMaxInterval)
	return e.rng.Range(-constant.WildBounceAngle, constant.WildBounceAngle), true
}

// MagnetPull returns the steering impulse toward p's center when ball is within magnet range
func MagnetPull(ball *component.Ball, p *component.Paddle) (vmath.Vec2, bool) {
	cx, cy := p.Center()
	to := vmath.V2(cx, cy).Sub(ball.Pos)
	dist := to.Mag()
	if dist == 0 || dist > constant.MagnetRadius {
		return vmath.Vec2{}, false
	}
	return to.Normalize().Scale(constant.MagnetForce), true
}

// --- Accessors ---

// Items returns the field items; callers must not retain the slice across ticks
func (e *Engine) Items() []*Item {
	return e.items
}

// Effects returns a copy of the active effects in insertion order
func (e *Engine) Effects() []Effect {
	return append([]Effect(nil), e.effects...)
}

// EffectsFor returns a copy of player's active effects
func (e *Engine) EffectsFor(player core.PlayerID) []Effect {
	var out []Effect
	for _, eff := range e.effects {
		if eff.Player == player {
			out = append(out, eff)
		}
	}
	return out
}

// Decoys returns the live decoy balls
func (e *Engine) Decoys() []*component.Ball {
	return e.decoys
}

// SpawnTimer returns ticks until the next scheduled spawn
func (e *Engine) SpawnTimer() int {
	return e.spawnTimer
}

// Clear drops items, effects and decoys and re-arms the scheduler
func (e *Engine) Clear() {
	e.items = nil
	e.effects = nil
	e.decoys = nil
	e.wildTimer = 0
	e.scrambleOffset = 0
	e.resetSpawnTimer()
}
