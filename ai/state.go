package ai

import (
	"github.com/lixenwraith/neon-arena/constant"
)

// Level is the discrete dead-zone width
type Level uint8

const (
	LevelTight Level = iota
	LevelNormal
	LevelLoose
)

func (l Level) String() string {
	switch l {
	case LevelTight:
		return "tight"
	case LevelNormal:
		return "normal"
	case LevelLoose:
		return "loose"
	}
	return "unknown"
}

// Scale returns the dead-zone multiplier for the level
func (l Level) Scale() float64 {
	switch l {
	case LevelTight:
		return constant.AIThresholdTightScale
	case LevelLoose:
		return constant.AIThresholdLooseScale
	}
	return constant.AIThresholdNormalScale
}

// State is the per-controller mutable history
// Owned exclusively by one Controller; copies are snapshots
type State struct {
	// Target is the exponentially smoothed pursuit target along the travel axis
	Target    float64
	HasTarget bool

	// history is a ring of the last raw intercepts
	history    [constant.AIPredictionHistory]float64
	historyLen int
	historyPos int

	Threshold    Level
	pendingLevel Level
	pendingTicks int

	// Direction is the committed movement: -1 toward lower coordinates, 0 hold, 1 toward higher
	Direction   int
	CommitTicks int

	ReactionDelay int
}

// pushHistory records a raw prediction, evicting the oldest when full
func (s *State) pushHistory(v float64) {
	s.history[s.historyPos] = v
	s.historyPos = (s.historyPos + 1) % len(s.history)
	if s.historyLen < len(s.history) {
		s.historyLen++
	}
}

// historyAverage returns the mean of recorded predictions, ok=false when empty
func (s *State) historyAverage() (float64, bool) {
	if s.historyLen == 0 {
		return 0, false
	}
	sum := 0.0
	for i := 0; i < s.historyLen; i++ {
		sum += s.history[i]
	}
	return sum / float64(s.historyLen), true
}

// HistoryLen reports how many predictions are retained
func (s State) HistoryLen() int {
	return s.historyLen
}

// settle applies threshold hysteresis
// A one-step change must persist for AIThresholdSettleTicks; a two-step jump is unambiguous and applies at once
func (s *State) settle(candidate Level) {
	if candidate == s.Threshold {
		s.pendingLevel = s.Threshold
		s.pendingTicks = 0
		return
	}

	step := int(candidate) - int(s.Threshold)
	if step >= 2 || step <= -2 {
		s.Threshold = candidate
		s.pendingTicks = 0
		return
	}

	if candidate == s.pendingLevel {
		s.pendingTicks++
	} else {
		s.pendingLevel = candidate
		s.pendingTicks = 1
	}
	if s.pendingTicks >= constant.AIThresholdSettleTicks {
		s.Threshold = candidate
		s.pendingTicks = 0
	}
}
