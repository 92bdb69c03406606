package constant

// Screen shake requests as (intensity, duration ticks)
const (
	ShakePaddleHitIntensity   = 3
	ShakePaddleHitDuration    = 8
	ShakeWallIntensity        = 1
	ShakeWallDuration         = 4
	ShakeShieldIntensity      = 4
	ShakeShieldDuration       = 10
	ShakeLifeLossIntensity    = 6
	ShakeLifeLossDuration     = 15
	ShakeEliminationIntensity = 10
	ShakeEliminationDuration  = 20
)

// Particle bursts
const (
	ParticlesPaddleHit   = 12
	ParticlesWallSpark   = 6
	ParticlesShieldBreak = 20
	ParticlesCollect     = 16
	ParticlesElimination = 40
	ParticlesVictory     = 60
)
