// Package input turns tcell key events into per-tick match input and menu commands
package input

import (
	"log"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/neon-arena/core"
	"github.com/lixenwraith/neon-arena/engine"
)

// HoldTicks is how long a direction stays held after its last key event
// Terminals report no key release, so auto-repeat keeps a held key alive
const HoldTicks = 10

// Command is a menu-level request resolved outside the per-tick input
type Command uint8

const (
	CommandNone Command = iota
	CommandQuit
	// CommandConfirm starts from the start screen or restarts after game over
	CommandConfirm
	// CommandBack leaves settings or toggles pause during play
	CommandBack
	CommandMainMenu
	CommandSettings
	CommandResize
)

type direction uint8

const (
	dirUp direction = iota
	dirDown
	dirLeft
	dirRight
	dirCount
)

type binding struct {
	player core.PlayerID
	dir    direction
}

// Left W/S, right arrows, top J/L, bottom keypad 4/6
var runeBindings = map[rune]binding{
	'w': {0, dirUp},
	's': {0, dirDown},
	'j': {2, dirLeft},
	'l': {2, dirRight},
	'4': {3, dirLeft},
	'6': {3, dirRight},
}

var keyBindings = map[tcell.Key]binding{
	tcell.KeyUp:   {1, dirUp},
	tcell.KeyDown: {1, dirDown},
}

// Handler accumulates key events between ticks
type Handler struct {
	held   [core.PlayerCount][dirCount]int
	launch bool
	pause  bool
}

// NewHandler creates a handler with nothing held
func NewHandler() *Handler {
	return &Handler{}
}

// HandleEvent records movement and edge keys and returns any menu command
func (h *Handler) HandleEvent(ev tcell.Event) Command {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.handleKey(ev)
	case *tcell.EventResize:
		return CommandResize
	}
	return CommandNone
}

func (h *Handler) handleKey(ev *tcell.EventKey) Command {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyCtrlQ:
		return CommandQuit
	case tcell.KeyEscape:
		return CommandBack
	case tcell.KeyEnter:
		return CommandConfirm
	case tcell.KeyRune:
		return h.handleRune(unicode.ToLower(ev.Rune()))
	}

	if b, ok := keyBindings[ev.Key()]; ok {
		h.press(b)
	}
	return CommandNone
}

func (h *Handler) handleRune(r rune) Command {
	switch r {
	case 'q':
		return CommandQuit
	case 'p':
		h.pause = true
		return CommandNone
	case ' ':
		h.launch = true
		return CommandNone
	case 'm':
		return CommandMainMenu
	case 'o':
		return CommandSettings
	}
	if b, ok := runeBindings[r]; ok {
		h.press(b)
	}
	return CommandNone
}

// press holds b's direction and releases the opposite one
func (h *Handler) press(b binding) {
	h.held[b.player][b.dir] = HoldTicks
	h.held[b.player][b.dir^1] = 0
}

// Next builds this tick's input, consuming edge flags and aging held keys
func (h *Handler) Next() engine.Input {
	var in engine.Input
	for p := range h.held {
		d := &h.held[p]
		in.Players[p] = core.Intent{
			Up:    d[dirUp] > 0,
			Down:  d[dirDown] > 0,
			Left:  d[dirLeft] > 0,
			Right: d[dirRight] > 0,
		}
		for i := range d {
			if d[i] > 0 {
				d[i]--
			}
		}
	}
	in.Launch, in.Pause = h.launch, h.pause
	h.launch, h.pause = false, false
	return in
}

// Reset drops every held key and pending edge
func (h *Handler) Reset() {
	*h = Handler{}
}

// Dispatch applies a menu command to m according to its mode
// Returns true when the program should exit; rejected commands are logged
func Dispatch(cmd Command, m *engine.Match) bool {
	var err error
	switch cmd {
	case CommandQuit:
		return true
	case CommandConfirm:
		switch m.Mode() {
		case core.ModeStartScreen:
			err = m.Start()
		case core.ModeGameOver, core.ModePaused:
			err = m.Restart()
		}
	case CommandBack:
		switch m.Mode() {
		case core.ModeSettings:
			err = m.CloseSettings()
		case core.ModePlaying, core.ModeAiming, core.ModePaused:
			err = m.TogglePause()
		}
	case CommandMainMenu:
		err = m.MainMenu()
	case CommandSettings:
		err = m.OpenSettings()
	}
	if err != nil {
		log.Printf("[INPUT] command %d in %s: %v", cmd, m.Mode(), err)
	}
	return false
}
