package constant

// Lives
const (
	StartingLives = 3
	MaxLives      = 99
)

// Aiming
const (
	// AimingTime is the aiming countdown in ticks (3 seconds)
	AimingTime = 90
	// AimingAngleRange is the maximum deflection in degrees from straight out
	AimingAngleRange = 60.0
	// AimingBallMargin is the ball's distance in front of the losing boundary
	AimingBallMargin = 120.0
	// AimingAISpeed is the AI aim rotation in degrees per tick
	AimingAISpeed = 1.5
	// AimingAISpread is the AI random offset range in degrees around straight out
	AimingAISpread = 45.0
)

// Difficulty presets
const (
	DifficultyEasy   = 0.1
	DifficultyMedium = 0.3
	DifficultyHard   = 0.6
	// DifficultyDefault is applied when settings carry no value
	DifficultyDefault = 0.6
)
