// Package fsm is a flat finite state machine with an explicit transition table
// One state may be designated the pause state; entering it remembers the prior state for Resume
package fsm

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is returned when the table has no edge for the requested move
	ErrInvalidTransition = errors.New("fsm: invalid transition")
	// ErrNotPaused is returned by Resume outside the pause state
	ErrNotPaused = errors.New("fsm: not paused")
)

// Hook runs on state change
type Hook[S comparable] func(from, to S)

// Machine is the flat FSM runtime
// S is the state type, typically a small enum with a String method
type Machine[S comparable] struct {
	current S

	// Pause memory, a single slot
	pause    S
	hasPause bool
	prior    S
	hasPrior bool

	table   map[S]map[S]struct{}
	onEnter map[S][]Hook[S]
	onExit  map[S][]Hook[S]
}

// NewMachine creates a machine resting in initial with an empty table
func NewMachine[S comparable](initial S) *Machine[S] {
	return &Machine[S]{
		current: initial,
		table:   make(map[S]map[S]struct{}),
		onEnter: make(map[S][]Hook[S]),
		onExit:  make(map[S][]Hook[S]),
	}
}

// Allow adds edges from -> each of to
func (m *Machine[S]) Allow(from S, to ...S) *Machine[S] {
	edges, ok := m.table[from]
	if !ok {
		edges = make(map[S]struct{})
		m.table[from] = edges
	}
	for _, t := range to {
		edges[t] = struct{}{}
	}
	return m
}

// SetPause designates pause as the pause state reachable from each of from
func (m *Machine[S]) SetPause(pause S, from ...S) *Machine[S] {
	m.pause = pause
	m.hasPause = true
	for _, f := range from {
		m.Allow(f, pause)
	}
	return m
}

// OnEnter registers a hook run after entering s
func (m *Machine[S]) OnEnter(s S, fn Hook[S]) {
	m.onEnter[s] = append(m.onEnter[s], fn)
}

// OnExit registers a hook run before leaving s
func (m *Machine[S]) OnExit(s S, fn Hook[S]) {
	m.onExit[s] = append(m.onExit[s], fn)
}

// Current returns the active state
func (m *Machine[S]) Current() S {
	return m.current
}

// Prior returns the state remembered by the last pause
func (m *Machine[S]) Prior() (S, bool) {
	return m.prior, m.hasPrior
}

// Paused reports the pause state is active
func (m *Machine[S]) Paused() bool {
	return m.hasPause && m.current == m.pause
}

// Can reports whether Transition(to) would succeed
func (m *Machine[S]) Can(to S) bool {
	if m.Paused() && m.hasPrior && to == m.prior {
		return true
	}
	_, ok := m.table[m.current][to]
	return ok
}

// Transition moves to the given state if the table allows it
func (m *Machine[S]) Transition(to S) error {
	if !m.Can(to) {
		return fmt.Errorf("%w: %v -> %v", ErrInvalidTransition, m.current, to)
	}

	from := m.current
	switch {
	case m.hasPause && to == m.pause:
		m.prior = from
		m.hasPrior = true
	case m.Paused():
		m.hasPrior = false
	}
	m.move(from, to)
	return nil
}

// Pause enters the pause state, remembering the current one
func (m *Machine[S]) Pause() error {
	if !m.hasPause {
		return fmt.Errorf("%w: no pause state", ErrInvalidTransition)
	}
	return m.Transition(m.pause)
}

// Resume returns from the pause state to the remembered state
func (m *Machine[S]) Resume() error {
	if !m.Paused() || !m.hasPrior {
		return ErrNotPaused
	}
	return m.Transition(m.prior)
}

// Reset forces s without consulting the table and clears pause memory
func (m *Machine[S]) Reset(s S) {
	m.hasPrior = false
	m.move(m.current, s)
}

func (m *Machine[S]) move(from, to S) {
	for _, fn := range m.onExit[from] {
		fn(from, to)
	}
	m.current = to
	for _, fn := range m.onEnter[to] {
		fn(from, to)
	}
}
