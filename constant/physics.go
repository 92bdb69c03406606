package constant

// Ball
const (
	BallSize = 15.0
	// BallSpeed is the base speed in pixels per tick
	BallSpeed = 8.0
	// BallSpeedBoost is the extra fraction of speed applied after a paddle hit
	BallSpeedBoost = 0.1
	// BallTrailLength caps the trail history
	BallTrailLength = 15
	// BallSpinFactor scales the parallel component set from paddle hit offset
	BallSpinFactor = 0.7
	// BallPaddleClearance is the gap left between paddle and ball after a bounce
	BallPaddleClearance = 5.0

	// BallMinAxisSpeedBounce is the per-axis floor after a paddle bounce
	BallMinAxisSpeedBounce = 1.0
	// BallMinAxisSpeedLaunch is the per-axis floor after a reset or aimed launch
	BallMinAxisSpeedLaunch = 2.0

	BallGlowHit   = 1.5
	BallGlowDecay = 0.02
)

// Paddle
const (
	PaddleSpeed = 8.0

	// Vertical paddles (left/right)
	PaddleWidth  = 15.0
	PaddleHeight = 100.0

	// Horizontal paddles (top/bottom)
	HPaddleWidth  = 100.0
	HPaddleHeight = 15.0

	// PaddleMargin is the distance from the arena edge to the paddle's outer face
	PaddleMargin = 50.0

	// PaddleMinSize is the floor for any modified dimension
	PaddleMinSize = 1.0

	// PaddleLaneSpan is the smallest arena side holding both opposing paddles and one paddle length between them
	PaddleLaneSpan = 2*(PaddleMargin+PaddleWidth) + PaddleHeight
)
