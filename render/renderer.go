package render

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/neon-arena/core"
	"github.com/lixenwraith/neon-arena/engine"
	"github.com/lixenwraith/neon-arena/vmath"
)

// Renderer draws match snapshots to a tcell screen
type Renderer struct {
	screen   tcell.Screen
	buf      *Buffer
	arena    core.Arena
	view     Viewport
	effects  *Effects
	layers   Orchestrator
	settings []string
	frames   uint64
}

// New creates a renderer sized to the screen with the default layer stack
func New(screen tcell.Screen, arena core.Arena) *Renderer {
	w, h := screen.Size()
	r := &Renderer{
		screen:  screen,
		buf:     NewBuffer(w, h),
		arena:   arena,
		view:    NewViewport(arena, w, h),
		effects: NewEffects(vmath.NewFastRand(uint64(time.Now().UnixNano()))),
	}
	r.layers.Register(FieldLayer{}, PriorityBackground)
	r.layers.Register(ItemLayer{}, PriorityItems)
	r.layers.Register(TrailLayer{}, PriorityTrail)
	r.layers.Register(EntityLayer{}, PriorityEntities)
	r.layers.Register(AimLayer{}, PriorityAim)
	r.layers.Register(ParticleLayer{}, PriorityParticle)
	r.layers.Register(HudLayer{}, PriorityUI)
	r.layers.Register(OverlayLayer{}, PriorityOverlay)
	return r
}

// Register adds an extra layer
func (r *Renderer) Register(l Layer, p Priority) {
	r.layers.Register(l, p)
}

// Sink returns the cosmetic effect receiver to hand to the match
func (r *Renderer) Sink() engine.EffectSink {
	return r.effects
}

// Effects exposes the live cosmetic state
func (r *Renderer) Effects() *Effects {
	return r.effects
}

// SetSettings replaces the lines shown by the settings overlay
func (r *Renderer) SetSettings(lines []string) {
	r.settings = append(r.settings[:0], lines...)
}

// Resize refits the buffer and viewport to a new terminal size
func (r *Renderer) Resize(width, height int) {
	r.buf.Resize(width, height)
	r.view = NewViewport(r.arena, width, height)
	r.screen.Sync()
}

// Draw composites one frame from s and shows it
func (r *Renderer) Draw(s engine.Snapshot) {
	r.effects.Update()
	view := r.view
	view.ShakeX, view.ShakeY = r.effects.Offset()

	r.frames++
	frame := Frame{
		Snapshot: &s,
		View:     view,
		Effects:  r.effects,
		Settings: r.settings,
		Count:    r.frames,
	}
	r.layers.Compose(&frame, r.buf)
	r.buf.Flush(r.screen)
}

// Buffer returns the composited buffer of the last frame
func (r *Renderer) Buffer() *Buffer {
	return r.buf
}
