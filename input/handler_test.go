package input

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/neon-arena/core"
	"github.com/lixenwraith/neon-arena/engine"
)

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestMovementBindings(t *testing.T) {
	tests := []struct {
		ev     *tcell.EventKey
		player core.PlayerID
		want   core.Intent
	}{
		{runeKey('w'), 0, core.Intent{Up: true}},
		{runeKey('S'), 0, core.Intent{Down: true}},
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), 1, core.Intent{Up: true}},
		{tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), 1, core.Intent{Down: true}},
		{runeKey('j'), 2, core.Intent{Left: true}},
		{runeKey('l'), 2, core.Intent{Right: true}},
		{runeKey('4'), 3, core.Intent{Left: true}},
		{runeKey('6'), 3, core.Intent{Right: true}},
	}
	for _, tt := range tests {
		h := NewHandler()
		if cmd := h.HandleEvent(tt.ev); cmd != CommandNone {
			t.Errorf("Expected no command for movement key, got %d", cmd)
		}
		in := h.Next()
		if in.Players[tt.player] != tt.want {
			t.Errorf("Expected player %d intent %+v, got %+v", tt.player, tt.want, in.Players[tt.player])
		}
	}
}

func TestHeldKeyDecays(t *testing.T) {
	h := NewHandler()
	h.HandleEvent(runeKey('w'))

	for i := 0; i < HoldTicks; i++ {
		if !h.Next().Players[0].Up {
			t.Fatalf("Expected up held on tick %d", i)
		}
	}
	if h.Next().Players[0].Up {
		t.Error("Expected up released after hold window")
	}
}

func TestOppositeKeyReleases(t *testing.T) {
	h := NewHandler()
	h.HandleEvent(runeKey('w'))
	h.HandleEvent(runeKey('s'))
	in := h.Next()
	if in.Players[0].Up || !in.Players[0].Down {
		t.Errorf("Expected only down held, got %+v", in.Players[0])
	}
}

func TestEdgeFlagsConsumed(t *testing.T) {
	h := NewHandler()
	h.HandleEvent(runeKey(' '))
	h.HandleEvent(runeKey('p'))

	in := h.Next()
	if !in.Launch || !in.Pause {
		t.Fatalf("Expected launch and pause edges, got %+v", in)
	}
	in = h.Next()
	if in.Launch || in.Pause {
		t.Error("Expected edges cleared on the next tick")
	}
}

func TestCommands(t *testing.T) {
	tests := []struct {
		ev   tcell.Event
		want Command
	}{
		{tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), CommandQuit},
		{runeKey('q'), CommandQuit},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), CommandConfirm},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), CommandBack},
		{runeKey('m'), CommandMainMenu},
		{runeKey('o'), CommandSettings},
		{tcell.NewEventResize(80, 24), CommandResize},
	}
	for _, tt := range tests {
		if got := NewHandler().HandleEvent(tt.ev); got != tt.want {
			t.Errorf("Expected command %d, got %d", tt.want, got)
		}
	}
}

func TestDispatch(t *testing.T) {
	m, err := engine.NewMatch(engine.DefaultConfig())
	if err != nil {
		t.Fatalf("NewMatch failed: %v", err)
	}

	Dispatch(CommandSettings, m)
	if m.Mode() != core.ModeSettings {
		t.Fatalf("Expected settings, got %s", m.Mode())
	}
	Dispatch(CommandBack, m)
	if m.Mode() != core.ModeStartScreen {
		t.Fatalf("Expected start screen, got %s", m.Mode())
	}
	Dispatch(CommandConfirm, m)
	if m.Mode() != core.ModePlaying {
		t.Fatalf("Expected playing, got %s", m.Mode())
	}
	Dispatch(CommandBack, m)
	if m.Mode() != core.ModePaused {
		t.Fatalf("Expected paused, got %s", m.Mode())
	}
	Dispatch(CommandConfirm, m)
	if m.Mode() != core.ModePlaying {
		t.Fatalf("Expected restart to playing, got %s", m.Mode())
	}
	if !Dispatch(CommandQuit, m) {
		t.Error("Expected quit to request exit")
	}
}

func TestDispatchLogsRejectedCommand(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })

	m, err := engine.NewMatch(engine.DefaultConfig())
	if err != nil {
		t.Fatalf("NewMatch failed: %v", err)
	}
	Dispatch(CommandConfirm, m)
	if m.Mode() != core.ModePlaying {
		t.Fatalf("Expected playing, got %s", m.Mode())
	}
	buf.Reset()

	if Dispatch(CommandSettings, m) {
		t.Error("Expected rejected command not to request exit")
	}
	if m.Mode() != core.ModePlaying {
		t.Errorf("Expected mode unchanged, got %s", m.Mode())
	}
	if !strings.Contains(buf.String(), "[INPUT]") {
		t.Errorf("Expected rejected command logged, got %q", buf.String())
	}
}
