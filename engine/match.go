// Package engine runs a four-player match: modes, lives, and the per-tick order
// of input, AI, power-ups, movement and collision
package engine

import (
	_ "embed"
	"fmt"
	"log"
	"math"

	"github.com/google/uuid"

	"github.com/lixenwraith/neon-arena/ai"
	"github.com/lixenwraith/neon-arena/aiming"
	"github.com/lixenwraith/neon-arena/component"
	"github.com/lixenwraith/neon-arena/constant"
	"github.com/lixenwraith/neon-arena/core"
	"github.com/lixenwraith/neon-arena/engine/fsm"
	"github.com/lixenwraith/neon-arena/physics"
	"github.com/lixenwraith/neon-arena/powerup"
	"github.com/lixenwraith/neon-arena/vmath"
)

//go:embed modes.toml
var modeTable []byte

// speedDriftTolerance bounds |Vel| - CruiseSpeed() before a drift is logged
const speedDriftTolerance = 1e-6

// Match owns all simulation state for one session
// Not safe for concurrent use: a single goroutine calls Tick
type Match struct {
	id  string
	cfg Config
	// pending is staged by Reconfigure and applied on the next Start or Restart
	pending *Config

	rng  vmath.Source
	sink EffectSink
	fsm  *fsm.Machine[core.Mode]

	ball     *component.Ball
	paddles  [core.PlayerCount]*component.Paddle
	ai       [core.PlayerCount]*ai.Controller
	powerups *powerup.Engine
	resolver *physics.Resolver
	aiming   *aiming.Controller

	lives [core.PlayerCount]int
	alive [core.PlayerCount]bool

	winner    *WinnerInfo
	gameOvers int
	drifts    int
	tick      uint64
}

// NewMatch validates cfg and builds a match resting on the start screen
func NewMatch(cfg Config) (*Match, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	machine, err := fsm.LoadTable(modeTable, core.ParseMode)
	if err != nil {
		return nil, fmt.Errorf("failed to load mode table: %w", err)
	}

	m := &Match{fsm: machine, rng: newSource(cfg)}
	m.fsm.OnEnter(core.ModeGameOver, func(from, _ core.Mode) {
		m.gameOvers++
		log.Printf("match %s: game over from %s after %d ticks", m.id, from, m.tick)
	})
	m.fsm.OnEnter(core.ModePaused, func(core.Mode, core.Mode) {
		for _, p := range m.paddles {
			p.ClearIntent()
		}
	})

	if err := m.setup(cfg); err != nil {
		return nil, err
	}
	return m, nil
}

// setup rebuilds every piece of match state from cfg
func (m *Match) setup(cfg Config) error {
	m.cfg = cfg
	m.sink = cfg.Sink
	if m.sink == nil {
		m.sink = NopSink{}
	}

	pe, err := powerup.NewEngine(cfg.powerUpConfig(), m.rng)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	for i := range m.paddles {
		id := core.PlayerID(i)
		m.paddles[i] = component.NewPaddle(id, cfg.Arena)
		m.ai[i] = nil
		if !cfg.Humans[i] {
			c, err := ai.New(m.paddles[i], cfg.Arena, cfg.AIDifficulty)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
			}
			m.ai[i] = c
		}
		m.lives[i] = cfg.StartingLives
		m.alive[i] = true
	}

	m.id = uuid.NewString()
	m.ball = component.NewBall(cfg.Arena, cfg.BallSpeed, cfg.BallSpeedBoost, m.rng)
	m.powerups = pe
	m.resolver = physics.NewResolver(pe)
	m.aiming = aiming.New(cfg.Arena, m.rng)
	m.winner = nil
	m.tick = 0
	return nil
}

// newSource returns the injected source or a PCG stream seeded from cfg
func newSource(cfg Config) vmath.Source {
	if cfg.Source != nil {
		return cfg.Source
	}
	return vmath.NewPCGRand(cfg.Seed)
}

// reset applies any staged config and starts a fresh round
// The random stream continues across restarts unless a new config is applied
func (m *Match) reset() error {
	cfg := m.cfg
	if m.pending != nil {
		cfg = *m.pending
		m.rng = newSource(cfg)
	}
	if err := m.setup(cfg); err != nil {
		return err
	}
	m.pending = nil
	log.Printf("match %s: started, lives=%d difficulty=%.2f humans=%v", m.id, cfg.StartingLives, cfg.AIDifficulty, cfg.Humans)
	return nil
}

// --- Tick ---

// Tick advances the simulation by one fixed step and returns the resulting snapshot
func (m *Match) Tick(in Input) Snapshot {
	if in.Pause {
		if err := m.TogglePause(); err != nil {
			log.Printf("match %s: pause ignored in %s", m.id, m.fsm.Current())
		}
	}

	switch m.fsm.Current() {
	case core.ModePlaying:
		m.tick++
		m.tickPlaying(in)
	case core.ModeAiming:
		m.tick++
		m.tickAiming(in)
	}
	return m.Snapshot()
}

func (m *Match) tickPlaying(in Input) {
	m.steer(in)

	for _, eff := range m.powerups.Update() {
		log.Printf("match %s: %s expired for player %d", m.id, eff.Kind, eff.Player)
	}
	if eff, ok := m.powerups.Collect(m.ball, m.alive); ok {
		log.Printf("match %s: player %d collected %s/%s", m.id, eff.Player, eff.Kind, eff.Variant)
		m.sink.Particles(ParticleCollect, m.ball.Pos.X, m.ball.Pos.Y, eff.Kind.Color(), constant.ParticlesCollect)
	}
	m.applyModifiers()

	for i, p := range m.paddles {
		if m.alive[i] {
			p.Update()
		}
	}

	if owner, ok := m.powerups.Magnet(); ok && m.alive[owner] {
		if pull, near := powerup.MagnetPull(m.ball, m.paddles[owner]); near {
			m.ball.Steer(pull)
		}
	}
	if deg, fire := m.powerups.WildDeflection(); fire {
		m.ball.Deflect(deg)
	}

	m.ball.Update()
	for _, d := range m.powerups.Decoys() {
		d.Update()
	}

	res := m.resolver.Resolve(m.ball, m.paddles, m.alive)
	m.emit(res, m.ball)
	for _, d := range m.powerups.Decoys() {
		m.emit(m.resolver.Resolve(d, m.paddles, m.alive), d)
	}
	m.powerups.PruneDecoys()

	m.checkDrift()

	if res.LifeLost {
		m.goal(res.Player)
	}
}

func (m *Match) tickAiming(in Input) {
	m.steer(in)
	m.applyModifiers()
	for i, p := range m.paddles {
		if m.alive[i] {
			p.Update()
		}
	}

	player := m.aiming.Player
	if !player.Valid() {
		m.transition(core.ModePlaying)
		return
	}
	expired := m.aiming.Update(m.paddles[player])
	if expired || (in.Launch && m.aiming.Human) {
		m.aiming.Launch(m.ball)
		log.Printf("match %s: player %d launched", m.id, player)
		m.transition(core.ModePlaying)
	}
}

// steer sets every alive paddle's intent from input or its AI controller
func (m *Match) steer(in Input) {
	for i, p := range m.paddles {
		if !m.alive[i] {
			p.ClearIntent()
			continue
		}
		if c := m.ai[i]; c != nil {
			c.Update(m.ball)
			continue
		}
		p.Intent = m.humanIntent(in, core.PlayerID(i))
	}
}

// humanIntent applies control scramble: a human paddle reads the rotated slot when that slot is human,
// otherwise its own keys reversed
func (m *Match) humanIntent(in Input, id core.PlayerID) core.Intent {
	if !m.powerups.ControlScramble() {
		return in.Players[id]
	}
	src := m.powerups.ScrambledPlayer(id)
	if src != id && m.cfg.Humans[src] {
		return in.Players[src]
	}
	return in.Players[id].Reversed()
}

func (m *Match) applyModifiers() {
	for i, p := range m.paddles {
		if mod := m.powerups.PaddleSizeModifier(core.PlayerID(i), m.alive); mod != p.SizeModifier {
			p.ApplySizeModifier(mod)
		}
	}
	speed := m.powerups.BallSpeedModifier()
	m.ball.ApplySpeedModifier(speed)
	for _, d := range m.powerups.Decoys() {
		d.ApplySpeedModifier(speed)
	}
}

// emit maps a contact to cosmetic requests
func (m *Match) emit(res physics.Result, ball *component.Ball) {
	x, y := ball.Pos.X, ball.Pos.Y
	switch res.Collision {
	case physics.CollisionPaddle:
		m.sink.ScreenShake(constant.ShakePaddleHitIntensity, constant.ShakePaddleHitDuration)
		m.sink.Particles(ParticlePaddleHit, x, y, m.paddles[res.Player].Color, constant.ParticlesPaddleHit)
	case physics.CollisionWall:
		if !ball.Decoy {
			m.sink.ScreenShake(constant.ShakeWallIntensity, constant.ShakeWallDuration)
		}
		m.sink.Particles(ParticleWallSpark, x, y, ball.LastHitColor, constant.ParticlesWallSpark)
	case physics.CollisionShield:
		log.Printf("match %s: player %d shield absorbed a goal", m.id, res.Player)
		m.sink.ScreenShake(constant.ShakeShieldIntensity, constant.ShakeShieldDuration)
		m.sink.Particles(ParticleShieldBreak, x, y, core.RGBShieldBlue, constant.ParticlesShieldBreak)
	case physics.CollisionGoal:
		m.sink.ScreenShake(constant.ShakeLifeLossIntensity, constant.ShakeLifeLossDuration)
	}
}

func (m *Match) checkDrift() {
	if err := m.ball.SpeedError(); math.Abs(err) > speedDriftTolerance {
		m.drifts++
		log.Printf("match %s: ball speed drift %.3g at tick %d", m.id, err, m.tick)
	}
}

// goal handles the real ball crossing an alive player's boundary
func (m *Match) goal(player core.PlayerID) {
	eliminated := m.LoseLife(player)
	if m.fsm.Current() == core.ModeGameOver {
		return
	}
	if eliminated {
		m.ball.ResetPosition(m.rng)
		return
	}
	m.aiming.Enter(player, m.ball, m.cfg.Humans[player])
	m.transition(core.ModeAiming)
}

// LoseLife takes one life from player, eliminating them at zero
// Returns true when the call eliminated the player; invalid or dead players are ignored, as is any call outside gameplay
func (m *Match) LoseLife(player core.PlayerID) bool {
	if !player.Valid() || !m.alive[player] || !m.fsm.Current().Gameplay() {
		return false
	}
	m.lives[player]--
	log.Printf("match %s: player %d lost a life, %d left", m.id, player, m.lives[player])
	if m.lives[player] > 0 {
		return false
	}

	m.lives[player] = 0
	m.alive[player] = false
	m.paddles[player].ClearIntent()
	log.Printf("match %s: player %d eliminated", m.id, player)

	cx, cy := m.paddles[player].Center()
	m.sink.ScreenShake(constant.ShakeEliminationIntensity, constant.ShakeEliminationDuration)
	m.sink.Particles(ParticleElimination, cx, cy, m.paddles[player].Color, constant.ParticlesElimination)

	if m.AliveCount() <= 1 {
		m.finish()
	}
	return true
}

// finish records the winner and enters game over; later calls are no-ops
func (m *Match) finish() {
	if m.winner != nil {
		return
	}
	w := &WinnerInfo{Player: core.NoPlayer, Message: "Game over - all players eliminated!"}
	for i, ok := range m.alive {
		if ok {
			w.Player = core.PlayerID(i)
			w.Lives = m.lives[i]
			w.Message = fmt.Sprintf("Player %d wins! Last player standing with %d lives remaining!", i+1, w.Lives)
		}
	}
	m.winner = w
	m.aiming.Reset()
	log.Printf("match %s: %s", m.id, w.Message)

	x, y := m.cfg.Arena.Center()
	color := core.RGBWhite
	if w.Player.Valid() {
		x, y = m.paddles[w.Player].Center()
		color = m.paddles[w.Player].Color
	}
	m.sink.Particles(ParticleVictory, x, y, color, constant.ParticlesVictory)
	m.transition(core.ModeGameOver)
}

func (m *Match) transition(to core.Mode) {
	if err := m.fsm.Transition(to); err != nil {
		log.Printf("match %s: %v", m.id, err)
	}
}

// --- Mode control ---

// Pause suspends gameplay, remembering Playing or Aiming
func (m *Match) Pause() error {
	return m.fsm.Pause()
}

// Resume returns to the mode active before Pause
func (m *Match) Resume() error {
	return m.fsm.Resume()
}

// TogglePause pauses during gameplay and resumes while paused
func (m *Match) TogglePause() error {
	if m.fsm.Paused() {
		return m.Resume()
	}
	return m.Pause()
}

// Start begins a match from the start screen
func (m *Match) Start() error {
	return m.begin(core.ModeStartScreen)
}

// Restart begins a new match from GameOver or Paused
func (m *Match) Restart() error {
	return m.begin(core.ModeGameOver, core.ModePaused)
}

func (m *Match) begin(from ...core.Mode) error {
	cur := m.fsm.Current()
	allowed := false
	for _, f := range from {
		if cur == f {
			allowed = true
		}
	}
	if !allowed || !m.fsm.Can(core.ModePlaying) {
		return fmt.Errorf("%w: %s -> %s", fsm.ErrInvalidTransition, cur, core.ModePlaying)
	}
	if err := m.reset(); err != nil {
		return err
	}
	return m.fsm.Transition(core.ModePlaying)
}

// MainMenu returns to the start screen from GameOver or Paused
func (m *Match) MainMenu() error {
	return m.fsm.Transition(core.ModeStartScreen)
}

// OpenSettings enters the settings screen from the start screen
func (m *Match) OpenSettings() error {
	return m.fsm.Transition(core.ModeSettings)
}

// CloseSettings returns from settings to the start screen
func (m *Match) CloseSettings() error {
	return m.fsm.Transition(core.ModeStartScreen)
}

// Reconfigure stages cfg for the next Start or Restart
func (m *Match) Reconfigure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	m.pending = &cfg
	return nil
}

// --- Queries ---

func (m *Match) ID() string                 { return m.id }
func (m *Match) Config() Config             { return m.cfg }
func (m *Match) Mode() core.Mode            { return m.fsm.Current() }
func (m *Match) Ball() *component.Ball      { return m.ball }
func (m *Match) PowerUps() *powerup.Engine  { return m.powerups }
func (m *Match) Aiming() *aiming.Controller { return m.aiming }
func (m *Match) Resolver() *physics.Resolver {
	return m.resolver
}

// Paddle returns player's paddle, nil for an invalid id
func (m *Match) Paddle(player core.PlayerID) *component.Paddle {
	if !player.Valid() {
		return nil
	}
	return m.paddles[player]
}

// Lives returns player's remaining lives, 0 for an invalid id
func (m *Match) Lives(player core.PlayerID) int {
	if !player.Valid() {
		return 0
	}
	return m.lives[player]
}

// Alive reports whether player is still in the match
func (m *Match) Alive(player core.PlayerID) bool {
	return player.Valid() && m.alive[player]
}

// AliveCount returns the number of players not yet eliminated
func (m *Match) AliveCount() int {
	n := 0
	for _, ok := range m.alive {
		if ok {
			n++
		}
	}
	return n
}

// Winner returns the result once the match is over
func (m *Match) Winner() (WinnerInfo, bool) {
	if m.winner == nil {
		return WinnerInfo{}, false
	}
	return *m.winner, true
}

// GameOvers counts entries into GameOver across the match's lifetime
func (m *Match) GameOvers() int { return m.gameOvers }

// SpeedDrifts counts ticks where the ball left its cruise speed
func (m *Match) SpeedDrifts() int { return m.drifts }

// Ticks returns the number of gameplay ticks simulated since the last start
func (m *Match) Ticks() uint64 { return m.tick }

// Snapshot copies the state a renderer needs
func (m *Match) Snapshot() Snapshot {
	s := Snapshot{
		MatchID: m.id,
		Tick:    m.tick,
		Mode:    m.fsm.Current(),
		Ball:    viewBall(m.ball),
		Lives:   m.lives,
		Aiming: AimingView{
			Player: m.aiming.Player,
			Angle:  m.aiming.Angle,
			Timer:  m.aiming.Timer,
		},
	}
	for _, d := range m.powerups.Decoys() {
		s.Decoys = append(s.Decoys, viewBall(d))
	}
	for i, p := range m.paddles {
		s.Paddles[i] = PaddleView{
			Player: p.Player,
			X:      p.X,
			Y:      p.Y,
			W:      p.W,
			H:      p.H,
			Color:  p.Color,
			Alive:  m.alive[i],
			AI:     m.ai[i] != nil,
		}
	}
	for _, it := range m.powerups.Items() {
		s.Items = append(s.Items, viewItem(it))
	}
	for _, eff := range m.powerups.Effects() {
		s.Effects = append(s.Effects, viewEffect(eff))
	}
	if m.winner != nil {
		w := *m.winner
		s.Winner = &w
	}
	return s
}
