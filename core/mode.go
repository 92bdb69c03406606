package core

import "fmt"

// Mode is the top-level match mode
type Mode uint8

const (
	ModeStartScreen Mode = iota
	ModeSettings
	ModePlaying
	ModeAiming
	ModePaused
	ModeGameOver
)

var modeNames = [...]string{
	ModeStartScreen: "start_screen",
	ModeSettings:    "settings",
	ModePlaying:     "playing",
	ModeAiming:      "aiming",
	ModePaused:      "paused",
	ModeGameOver:    "game_over",
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// Gameplay reports whether the simulation advances in this mode
func (m Mode) Gameplay() bool {
	return m == ModePlaying || m == ModeAiming
}

// ParseMode maps a mode name back to its value
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

// MarshalText encodes the mode by name
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes a mode name
func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
