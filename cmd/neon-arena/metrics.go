package main

import (
	"strconv"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/neon-arena/core"
	"github.com/lixenwraith/neon-arena/engine"
	"github.com/lixenwraith/neon-arena/status"
)

// matchMetrics caches registry pointers so the tick loop writes without lookups
type matchMetrics struct {
	ticks     *atomic.Int64
	gameOvers *atomic.Int64
	drifts    *atomic.Int64
	alive     *atomic.Int64
	mode      *status.AtomicString
	matchID   *status.AtomicString
	frameMs   *status.AtomicFloat
	lives     [core.PlayerCount]*atomic.Int64
}

func newMatchMetrics(reg *status.Registry) *matchMetrics {
	m := &matchMetrics{
		ticks:     reg.Ints.Get("match.ticks"),
		gameOvers: reg.Ints.Get("match.game_overs"),
		drifts:    reg.Ints.Get("match.speed_drifts"),
		alive:     reg.Ints.Get("match.alive"),
		mode:      reg.Strings.Get("match.mode"),
		matchID:   reg.Strings.Get("match.id"),
		frameMs:   reg.Floats.Get("frame.ms"),
	}
	for id := range m.lives {
		m.lives[id] = reg.Ints.Get("player." + strconv.Itoa(id+1) + ".lives")
	}
	return m
}

// record copies the match counters and the last frame duration
func (m *matchMetrics) record(match *engine.Match, frame time.Duration) {
	m.ticks.Store(int64(match.Ticks()))
	m.gameOvers.Store(int64(match.GameOvers()))
	m.drifts.Store(int64(match.SpeedDrifts()))
	m.alive.Store(int64(match.AliveCount()))
	m.mode.Store(match.Mode().String())
	m.matchID.Store(match.ID())
	m.frameMs.Set(float64(frame.Microseconds()) / 1000)
	for id := range m.lives {
		m.lives[id].Store(int64(match.Lives(core.PlayerID(id))))
	}
}
