package fsm

import (
	"fmt"
	"sort"

	"github.com/pelletier/go-toml/v2"
)

// TableConfig is the TOML form of a transition table
type TableConfig struct {
	Initial string                 `toml:"initial"`
	Pause   string                 `toml:"pause,omitempty"`
	States  map[string]StateConfig `toml:"states"`
}

// StateConfig lists one state's outgoing edges
type StateConfig struct {
	To       []string `toml:"to,omitempty"`
	Pausable bool     `toml:"pausable,omitempty"`
}

// ParseFunc maps a state name to its value
type ParseFunc[S comparable] func(name string) (S, error)

// LoadTable builds a machine from TOML; every referenced name must parse
func LoadTable[S comparable](data []byte, parse ParseFunc[S]) (*Machine[S], error) {
	var cfg TableConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal FSM table: %w", err)
	}
	return BuildTable(cfg, parse)
}

// BuildTable builds a machine from a decoded table
func BuildTable[S comparable](cfg TableConfig, parse ParseFunc[S]) (*Machine[S], error) {
	initial, err := parse(cfg.Initial)
	if err != nil {
		return nil, fmt.Errorf("initial state: %w", err)
	}
	m := NewMachine(initial)

	// Sorted for deterministic error reporting
	names := make([]string, 0, len(cfg.States))
	for name := range cfg.States {
		names = append(names, name)
	}
	sort.Strings(names)

	var pausable []S
	for _, name := range names {
		from, err := parse(name)
		if err != nil {
			return nil, fmt.Errorf("state '%s': %w", name, err)
		}
		sc := cfg.States[name]
		for _, target := range sc.To {
			to, err := parse(target)
			if err != nil {
				return nil, fmt.Errorf("state '%s' references unknown target '%s': %w", name, target, err)
			}
			m.Allow(from, to)
		}
		if sc.Pausable {
			pausable = append(pausable, from)
		}
	}

	if cfg.Pause != "" {
		pause, err := parse(cfg.Pause)
		if err != nil {
			return nil, fmt.Errorf("pause state: %w", err)
		}
		m.SetPause(pause, pausable...)
	} else if len(pausable) > 0 {
		return nil, fmt.Errorf("pausable states declared without a pause state")
	}
	return m, nil
}
