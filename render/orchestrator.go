package render

import (
	"github.com/lixenwraith/neon-arena/engine"
)

// Priority determines layer order. Lower values render first
type Priority int

const (
	PriorityBackground Priority = iota
	PriorityWall
	PriorityItems
	PriorityTrail
	PriorityEntities
	PriorityAim
	PriorityParticle
	PriorityUI
	PriorityOverlay
)

// Frame is everything a layer may read while drawing
type Frame struct {
	Snapshot *engine.Snapshot
	View     Viewport
	Effects  *Effects
	// Settings lines shown by the settings overlay
	Settings []string
	// Count increments once per drawn frame; drives blinking
	Count uint64
}

// Layer draws one part of the frame into the buffer
type Layer interface {
	Render(f *Frame, buf *Buffer)
}

// Toggle is implemented by layers that can be hidden
type Toggle interface {
	Visible() bool
}

type layerEntry struct {
	layer    Layer
	priority Priority
	index    int // registration order for stable sort
}

// Orchestrator keeps layers sorted by priority and composites them
type Orchestrator struct {
	layers   []layerEntry
	regCount int
}

// Register adds a layer at the specified priority. Maintains sorted order via insertion sort
func (o *Orchestrator) Register(l Layer, priority Priority) {
	entry := layerEntry{layer: l, priority: priority, index: o.regCount}
	o.regCount++

	pos := len(o.layers)
	for i, e := range o.layers {
		if priority < e.priority || (priority == e.priority && entry.index < e.index) {
			pos = i
			break
		}
	}

	o.layers = append(o.layers, layerEntry{})
	copy(o.layers[pos+1:], o.layers[pos:])
	o.layers[pos] = entry
}

// Compose clears buf and runs every visible layer in order
func (o *Orchestrator) Compose(f *Frame, buf *Buffer) {
	buf.Clear()
	for _, e := range o.layers {
		if t, ok := e.layer.(Toggle); ok && !t.Visible() {
			continue
		}
		e.layer.Render(f, buf)
	}
}

// Len returns the number of registered layers
func (o *Orchestrator) Len() int {
	return len(o.layers)
}
