// Package config loads match settings from defaults, a TOML file, a .env file and the environment
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/lixenwraith/neon-arena/constant"
	"github.com/lixenwraith/neon-arena/core"
	"github.com/lixenwraith/neon-arena/engine"
	"github.com/lixenwraith/neon-arena/powerup"
)

// ErrInvalidConfig is wrapped by every settings validation failure
var ErrInvalidConfig = errors.New("config: invalid settings")

// EnvPrefix namespaces every environment override
const EnvPrefix = "NEON_ARENA_"

// DefaultSpectateAddr is empty: the spectator server is off unless configured
const DefaultSpectateAddr = ""

// Settings is the persisted form of match configuration
type Settings struct {
	AIDifficulty     float64           `toml:"ai_difficulty"`
	StartingLives    int               `toml:"starting_lives"`
	PowerUps         []powerup.Kind    `toml:"powerups"`
	PowerUpFrequency powerup.Frequency `toml:"powerup_frequency"`
	BallSpeed        float64           `toml:"ball_speed"`
	BallSpeedBoost   float64           `toml:"ball_speed_boost"`
	// HumanPlayers lists the player ids driven by the keyboard
	HumanPlayers []int  `toml:"human_players"`
	Seed         uint64 `toml:"seed"`
	SpectateAddr string `toml:"spectate_addr"`
}

// Default returns settings matching engine.DefaultConfig
func Default() Settings {
	return Settings{
		AIDifficulty:     constant.DifficultyDefault,
		StartingLives:    constant.StartingLives,
		PowerUps:         append([]powerup.Kind(nil), powerup.DefaultKinds...),
		PowerUpFrequency: powerup.FrequencyNormal,
		BallSpeed:        constant.BallSpeed,
		BallSpeedBoost:   constant.BallSpeedBoost,
		HumanPlayers:     []int{0},
		Seed:             1,
		SpectateAddr:     DefaultSpectateAddr,
	}
}

// ParseDifficulty accepts a preset name (easy, medium, hard) or a number in [0,1]
func ParseDifficulty(s string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return constant.DifficultyEasy, nil
	case "medium":
		return constant.DifficultyMedium, nil
	case "hard":
		return constant.DifficultyHard, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidConfig, s)
	}
	if v < 0 || v > 1 || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: difficulty %v not in [0,1]", ErrInvalidConfig, v)
	}
	return v, nil
}

// Load builds settings from defaults, then path, then envFile, then NEON_ARENA_* variables
// Missing files are skipped; an empty path or envFile is not read
func Load(path, envFile string) (Settings, error) {
	s := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return s, fmt.Errorf("failed to read settings file: %w", err)
		default:
			if err := decode(data, &s); err != nil {
				return s, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		}
	}

	if envFile != "" {
		// Existing process variables win over the file
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return s, fmt.Errorf("failed to load env file: %w", err)
		}
	}

	if err := applyEnv(&s); err != nil {
		return s, err
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

func decode(data []byte, s *Settings) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(s)
}

// applyEnv overlays NEON_ARENA_* variables; a set but malformed value is an error
func applyEnv(s *Settings) error {
	if v, ok := lookup("AI_DIFFICULTY"); ok {
		d, err := ParseDifficulty(v)
		if err != nil {
			return envError("AI_DIFFICULTY", err)
		}
		s.AIDifficulty = d
	}
	if v, ok := lookup("STARTING_LIVES"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError("STARTING_LIVES", err)
		}
		s.StartingLives = n
	}
	if v, ok := lookup("POWERUPS"); ok {
		kinds, err := parseKinds(v)
		if err != nil {
			return envError("POWERUPS", err)
		}
		s.PowerUps = kinds
	}
	if v, ok := lookup("POWERUP_FREQUENCY"); ok {
		f, err := powerup.ParseFrequency(v)
		if err != nil {
			return envError("POWERUP_FREQUENCY", err)
		}
		s.PowerUpFrequency = f
	}
	if v, ok := lookup("BALL_SPEED"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return envError("BALL_SPEED", err)
		}
		s.BallSpeed = f
	}
	if v, ok := lookup("BALL_SPEED_BOOST"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return envError("BALL_SPEED_BOOST", err)
		}
		s.BallSpeedBoost = f
	}
	if v, ok := lookup("HUMAN_PLAYERS"); ok {
		ids, err := parseIDs(v)
		if err != nil {
			return envError("HUMAN_PLAYERS", err)
		}
		s.HumanPlayers = ids
	}
	if v, ok := lookup("SEED"); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return envError("SEED", err)
		}
		s.Seed = n
	}
	if v, ok := lookup("SPECTATE_ADDR"); ok {
		s.SpectateAddr = v
	}
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + key)
	return strings.TrimSpace(v), ok
}

func envError(key string, err error) error {
	return fmt.Errorf("%w: %s%s: %v", ErrInvalidConfig, EnvPrefix, key, err)
}

func splitList(v string) []string {
	var out []string
	for _, f := range strings.Split(v, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func parseKinds(v string) ([]powerup.Kind, error) {
	kinds := []powerup.Kind{}
	for _, name := range splitList(v) {
		k, err := powerup.ParseKind(name)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

func parseIDs(v string) ([]int, error) {
	ids := []int{}
	for _, f := range splitList(v) {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		ids = append(ids, n)
	}
	return ids, nil
}

// Validate checks ranges; every failure wraps ErrInvalidConfig
func (s Settings) Validate() error {
	if s.StartingLives < 1 || s.StartingLives > constant.MaxLives {
		return fmt.Errorf("%w: starting_lives %d not in [1,%d]", ErrInvalidConfig, s.StartingLives, constant.MaxLives)
	}
	if math.IsNaN(s.AIDifficulty) || s.AIDifficulty < 0 || s.AIDifficulty > 1 {
		return fmt.Errorf("%w: ai_difficulty %v not in [0,1]", ErrInvalidConfig, s.AIDifficulty)
	}
	if !(s.BallSpeed > 0) || math.IsInf(s.BallSpeed, 0) {
		return fmt.Errorf("%w: ball_speed %v", ErrInvalidConfig, s.BallSpeed)
	}
	if math.IsNaN(s.BallSpeedBoost) || s.BallSpeedBoost < 0 {
		return fmt.Errorf("%w: ball_speed_boost %v", ErrInvalidConfig, s.BallSpeedBoost)
	}
	seen := make(map[int]bool, len(s.HumanPlayers))
	for _, id := range s.HumanPlayers {
		if !core.PlayerID(id).Valid() {
			return fmt.Errorf("%w: human player %d not in [0,%d]", ErrInvalidConfig, id, core.PlayerCount-1)
		}
		if seen[id] {
			return fmt.Errorf("%w: human player %d listed twice", ErrInvalidConfig, id)
		}
		seen[id] = true
	}
	for _, k := range s.PowerUps {
		if !k.Valid() {
			return fmt.Errorf("%w: power-up kind %d", ErrInvalidConfig, k)
		}
	}
	return nil
}

// Save validates s and writes it to path, creating parent directories
func Save(path string, s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create settings directory: %w", err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace settings: %w", err)
	}
	return nil
}

// EngineConfig converts settings to a match config; sink may be nil
func (s Settings) EngineConfig(sink engine.EffectSink) engine.Config {
	cfg := engine.DefaultConfig()
	cfg.StartingLives = s.StartingLives
	cfg.AIDifficulty = s.AIDifficulty
	cfg.BallSpeed = s.BallSpeed
	cfg.BallSpeedBoost = s.BallSpeedBoost
	cfg.PowerUps = append([]powerup.Kind(nil), s.PowerUps...)
	cfg.PowerUpFrequency = s.PowerUpFrequency
	cfg.Seed = s.Seed
	cfg.Sink = sink

	cfg.Humans = [core.PlayerCount]bool{}
	for _, id := range s.HumanPlayers {
		if core.PlayerID(id).Valid() {
			cfg.Humans[id] = true
		}
	}
	return cfg
}

// Summary returns one human-readable line per setting for display
func (s Settings) Summary() []string {
	kinds := make([]string, len(s.PowerUps))
	for i, k := range s.PowerUps {
		kinds[i] = k.String()
	}
	humans := make([]string, len(s.HumanPlayers))
	for i, id := range s.HumanPlayers {
		humans[i] = fmt.Sprintf("P%d", id+1)
	}
	if len(kinds) == 0 {
		kinds = []string{"none"}
	}
	if len(humans) == 0 {
		humans = []string{"none"}
	}
	return []string{
		fmt.Sprintf("lives        %d", s.StartingLives),
		fmt.Sprintf("difficulty   %.2f", s.AIDifficulty),
		fmt.Sprintf("ball speed   %.1f (+%.1f per hit)", s.BallSpeed, s.BallSpeedBoost),
		fmt.Sprintf("power-ups    %s", strings.Join(kinds, ", ")),
		fmt.Sprintf("frequency    %s", s.PowerUpFrequency),
		fmt.Sprintf("humans       %s", strings.Join(humans, ", ")),
	}
}
