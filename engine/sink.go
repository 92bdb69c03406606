package engine

import (
	"github.com/lixenwraith/neon-arena/core"
)

// ParticleKind names a cosmetic burst
type ParticleKind uint8

const (
	ParticlePaddleHit ParticleKind = iota
	ParticleWallSpark
	ParticleShieldBreak
	ParticleCollect
	ParticleElimination
	ParticleVictory
)

func (k ParticleKind) String() string {
	switch k {
	case ParticlePaddleHit:
		return "paddle_hit"
	case ParticleWallSpark:
		return "wall_spark"
	case ParticleShieldBreak:
		return "shield_break"
	case ParticleCollect:
		return "collect"
	case ParticleElimination:
		return "elimination"
	case ParticleVictory:
		return "victory"
	}
	return "unknown"
}

// EffectSink receives cosmetic requests; the match never reads anything back
type EffectSink interface {
	ScreenShake(intensity, duration int)
	Particles(kind ParticleKind, x, y float64, color core.RGB, count int)
}

// NopSink discards every request
type NopSink struct{}

func (NopSink) ScreenShake(int, int)                                     {}
func (NopSink) Particles(ParticleKind, float64, float64, core.RGB, int) {}

// MultiSink fans requests out to several sinks
type MultiSink []EffectSink

func (ms MultiSink) ScreenShake(intensity, duration int) {
	for _, s := range ms {
		s.ScreenShake(intensity, duration)
	}
}

func (ms MultiSink) Particles(kind ParticleKind, x, y float64, color core.RGB, count int) {
	for _, s := range ms {
		s.Particles(kind, x, y, color, count)
	}
}
