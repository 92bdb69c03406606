package render

import (
	"math"

	"github.com/lixenwraith/neon-arena/core"
	"github.com/lixenwraith/neon-arena/engine"
	"github.com/lixenwraith/neon-arena/vmath"
)

// MaxParticles caps the live particle list; new bursts are truncated beyond it
const MaxParticles = 400

const (
	particleFriction = 0.92
	particleLifeMin  = 15
	particleLifeMax  = 40
)

// Particle is one cosmetic spark in arena pixels
type Particle struct {
	Pos, Vel vmath.Vec2
	Color    core.RGB
	Kind     engine.ParticleKind
	Life     int
	MaxLife  int
}

// Fade is the remaining life fraction
func (p Particle) Fade() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return float64(p.Life) / float64(p.MaxLife)
}

// Effects keeps screen shake and particles; it implements engine.EffectSink
type Effects struct {
	shakeIntensity int
	shakeTimer     int
	particles      []Particle
	rng            vmath.Source
}

var _ engine.EffectSink = (*Effects)(nil)

// NewEffects creates an idle effect layer; rng drives only cosmetics
func NewEffects(rng vmath.Source) *Effects {
	return &Effects{rng: rng, particles: make([]Particle, 0, 64)}
}

// ScreenShake keeps the stronger of the current and requested shake
func (e *Effects) ScreenShake(intensity, duration int) {
	e.shakeIntensity = max(e.shakeIntensity, intensity)
	e.shakeTimer = max(e.shakeTimer, duration)
}

// Particles emits count sparks from x, y
func (e *Effects) Particles(kind engine.ParticleKind, x, y float64, color core.RGB, count int) {
	speed := burstSpeed(kind)
	for i := 0; i < count && len(e.particles) < MaxParticles; i++ {
		angle := vmath.RandomAngle(e.rng)
		s := speed * (0.4 + 0.6*e.rng.Float64())
		sin, cos := math.Sincos(angle)
		life := vmath.IntRange(e.rng, particleLifeMin, particleLifeMax)
		e.particles = append(e.particles, Particle{
			Pos:     vmath.V2(x, y),
			Vel:     vmath.V2(cos*s, sin*s),
			Color:   color,
			Kind:    kind,
			Life:    life,
			MaxLife: life,
		})
	}
}

func burstSpeed(kind engine.ParticleKind) float64 {
	switch kind {
	case engine.ParticleElimination, engine.ParticleVictory:
		return 9
	case engine.ParticleShieldBreak:
		return 7
	case engine.ParticleWallSpark:
		return 3
	}
	return 5
}

// Update ages particles and shake by one frame
func (e *Effects) Update() {
	if e.shakeTimer > 0 {
		e.shakeTimer--
		if e.shakeTimer == 0 {
			e.shakeIntensity = 0
		}
	}

	kept := e.particles[:0]
	for _, p := range e.particles {
		p.Life--
		if p.Life <= 0 {
			continue
		}
		p.Pos = p.Pos.Add(p.Vel)
		p.Vel = p.Vel.Scale(particleFriction)
		kept = append(kept, p)
	}
	e.particles = kept
}

// Offset returns the current shake displacement in cells
func (e *Effects) Offset() (int, int) {
	if e.shakeTimer <= 0 || e.shakeIntensity <= 0 {
		return 0, 0
	}
	kx := max(1, e.shakeIntensity/3)
	ky := max(1, e.shakeIntensity/6)
	return e.rng.Intn(2*kx+1) - kx, e.rng.Intn(2*ky+1) - ky
}

// Shaking reports an active shake
func (e *Effects) Shaking() bool {
	return e.shakeTimer > 0
}

// Live returns the particles; callers must not retain the slice
func (e *Effects) Live() []Particle {
	return e.particles
}

// Clear drops all particles and shake
func (e *Effects) Clear() {
	e.particles = e.particles[:0]
	e.shakeIntensity, e.shakeTimer = 0, 0
}
