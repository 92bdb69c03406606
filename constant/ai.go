package constant

// AI prediction
const (
	// AIPredictionHistory is the number of raw intercepts averaged for stability
	AIPredictionHistory = 5
	// AIHistoryWeight is the share of the running average in the blended prediction
	AIHistoryWeight = 0.4
	// AIParallelEpsilon is the perpendicular speed under which prediction falls back to the ball coordinate
	AIParallelEpsilon = 0.1
	// AIMaxBounces is the number of wall reflections followed when extrapolating
	AIMaxBounces = 1
)

// AI strategic positioning
const (
	AICenterSeekStrength     = 0.7
	AIOppositeWallFactor     = 1.2
	AIOppositeWallThreshold  = 0.8
	AIApproachCenterFactor   = 0.2
	AIAnticipationDistance   = 250.0
	AIMinThreatDistance      = 400.0
	AIDifficultyCenterDamper = 0.5
)

// AI smoothing and dead zone
const (
	AISmoothingMin = 0.15
	AISmoothingMax = 0.8

	// AIDeadZoneBase scales the dead zone: base * (1 - difficulty + AIDeadZoneBias)
	AIDeadZoneBase = 35.0
	AIDeadZoneBias = 0.3

	AIThresholdTightScale  = 0.6
	AIThresholdNormalScale = 1.0
	AIThresholdLooseScale  = 1.5

	// AIThresholdSettleTicks is how long a one-step threshold change must persist
	AIThresholdSettleTicks = 2

	// AICommitTicks is the minimum hold for a chosen direction
	AICommitTicks = 3

	// AIReactionGapFactor arms reaction delay when gap exceeds threshold by this factor
	AIReactionGapFactor = 1.5
	// AIReactionDelayMax is the delay at difficulty 0
	AIReactionDelayMax = 10
)
