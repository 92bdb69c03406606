package constant

// Spawn scheduling in ticks
const (
	PowerUpSpawnMin         = 600 // 20 seconds
	PowerUpSpawnMax         = 900 // 30 seconds
	PowerUpSpawnMinFrequent = 300 // 10 seconds
	PowerUpSpawnMaxFrequent = 450 // 15 seconds

	// PowerUpSpawnMargin keeps spawns away from the paddle lanes
	PowerUpSpawnMargin = 150.0
	// PowerUpWanderMargin bounds the active wander motion
	PowerUpWanderMargin = 100.0
)

// Lifecycle and motion
const (
	PowerUpSize           = 40.0
	PowerUpCollectRadius  = 50.0
	PowerUpWarningTime    = 120
	PowerUpSpawnAnimation = 30
	PowerUpRotationStep   = 2.0
	PowerUpPulseStep      = 0.1
	PowerUpWanderSpeedMin = 0.5
	PowerUpWanderSpeedMax = 1.5
	PowerUpTurnMin        = 120
	PowerUpTurnMax        = 300
)

// Effect durations in ticks, -1 means instant or until consumed
const (
	DurationPaddleSize      = 480
	DurationBallSpeed       = 600
	DurationShield          = 600
	DurationGhostBall       = 240
	DurationMagnetize       = 480
	DurationDecoyBall       = 480
	DurationWildBounce      = 600
	DurationControlScramble = 360
	DurationInstant         = -1
)

// Effect values
const (
	PaddleSizeIncrease = 1.5
	PaddleSizeDecrease = 0.75
	BallSpeedSlow      = 0.75
	BallSpeedFast      = 1.25

	MagnetRadius = 120.0
	MagnetForce  = 0.3

	WildBounceAngle       = 30.0
	WildBounceMinInterval = 90
	WildBounceMaxInterval = 150

	DecoyAlpha = 0.9
)
