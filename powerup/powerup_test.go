package powerup

import (
	"errors"
	"math"
	"testing"

	"github.com/lixenwraith/neon-arena/component"
	"github.com/lixenwraith/neon-arena/constant"
	"github.com/lixenwraith/neon-arena/core"
	"github.com/lixenwraith/neon-arena/vmath"
)

var allAlive = [core.PlayerCount]bool{true, true, true, true}

func testArena() core.Arena {
	return core.Arena{Width: constant.ArenaWidth, Height: constant.ArenaHeight, Boundary: constant.BoundaryThickness}
}

func newTestEngine(t *testing.T) (*Engine, *component.Ball) {
	t.Helper()
	arena := testArena()
	rng := vmath.NewFastRand(11)
	e, err := NewEngine(DefaultConfig(arena), rng)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	return e, component.NewBall(arena, constant.BallSpeed, constant.BallSpeedBoost, rng)
}

func TestConfigValidate(t *testing.T) {
	base := DefaultConfig(testArena())
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero min", func(c *Config) { c.SpawnMin = 0 }},
		{"max below min", func(c *Config) { c.SpawnMax = c.SpawnMin - 1 }},
		{"bad kind", func(c *Config) { c.Kinds = []Kind{kindCount} }},
		{"bad arena", func(c *Config) { c.Arena = core.Arena{} }},
		{"inverted spawn area", func(c *Config) { c.Arena = core.Arena{Width: 250, Height: 250, Boundary: 10} }},
		{"narrow spawn area", func(c *Config) { c.Arena.Width = 2 * constant.PowerUpSpawnMargin }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			cfg.Kinds = append([]Kind(nil), base.Kinds...)
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
	if err := base.Validate(); err != nil {
		t.Errorf("Expected default config valid, got %v", err)
	}
}

func TestKindText(t *testing.T) {
	for _, k := range AllKinds() {
		b, err := k.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%d) failed: %v", k, err)
		}
		var got Kind
		if err := got.UnmarshalText(b); err != nil || got != k {
			t.Errorf("Expected %s to parse back, got %v (%v)", b, got, err)
		}
		for _, v := range k.Variants() {
			if !v.ValidFor(k) {
				t.Errorf("Variant %s should be valid for %s", v, k)
			}
		}
	}
	if _, err := ParseKind("paddle_swap"); err == nil {
		t.Error("Expected error for unknown kind")
	}
	if VariantFast.ValidFor(KindShield) {
		t.Error("Fast must not be a shield variant")
	}
}

func TestItemLifecycle(t *testing.T) {
	e, _ := newTestEngine(t)
	it := e.Spawn(vmath.V2(425, 425), KindShield, VariantNone)
	rng := vmath.NewFastRand(3)

	for i := 0; i < constant.PowerUpWarningTime-1; i++ {
		it.Update(rng)
	}
	if it.Phase != PhaseWarning || it.Pos != vmath.V2(425, 425) {
		t.Fatalf("Expected stationary warning phase, got %s at %v", it.Phase, it.Pos)
	}
	it.Update(rng)
	if it.Phase != PhaseActive {
		t.Fatalf("Expected active phase after warning, got %s", it.Phase)
	}
	for i := 0; i < constant.PowerUpSpawnAnimation-1; i++ {
		it.Update(rng)
		if it.Collectable() {
			t.Fatalf("Collectable during spawn animation at tick %d", i)
		}
	}
	it.Update(rng)
	if !it.Collectable() {
		t.Error("Expected collectable after spawn animation")
	}

	area := e.wanderArea()
	for i := 0; i < 5000; i++ {
		it.Update(rng)
		if it.Pos.X < area.Left() || it.Pos.X > area.Right() || it.Pos.Y < area.Top() || it.Pos.Y > area.Bottom() {
			t.Fatalf("Item wandered outside margin at tick %d: %v", i, it.Pos)
		}
	}
}

func TestSchedulerSpawnsInWindow(t *testing.T) {
	cfg := DefaultConfig(testArena())
	cfg.SpawnMin, cfg.SpawnMax = 10, 10
	e, err := NewEngine(cfg, vmath.NewFastRand(5))
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	for i := 0; i < 9; i++ {
		e.Update()
	}
	if len(e.Items()) != 0 {
		t.Fatalf("Expected no spawn before interval, got %d", len(e.Items()))
	}
	e.Update()
	if len(e.Items()) != 1 {
		t.Fatalf("Expected one spawn at interval, got %d", len(e.Items()))
	}
	it := e.Items()[0]
	if !e.spawn.Contains(core.RectAround(it.Pos.X, it.Pos.Y, 0, 0)) {
		t.Errorf("Spawn %v outside spawn rectangle %+v", it.Pos, e.spawn)
	}
	if !it.Variant.ValidFor(it.Kind) {
		t.Errorf("Spawned invalid variant %s for %s", it.Variant, it.Kind)
	}

	cfg.Kinds = nil
	quiet, _ := NewEngine(cfg, vmath.NewFastRand(5))
	for i := 0; i < 100; i++ {
		quiet.Update()
	}
	if len(quiet.Items()) != 0 {
		t.Error("Expected no spawns with all kinds disabled")
	}
}

func activeItem(e *Engine, pos vmath.Vec2, kind Kind, variant Variant) *Item {
	it := e.Spawn(pos, kind, variant)
	it.Phase = PhaseActive
	it.SpawnTimer = 0
	return it
}

func TestCollectAttribution(t *testing.T) {
	e, ball := newTestEngine(t)
	activeItem(e, vmath.V2(400, 400), KindShield, VariantNone)
	ball.Pos = vmath.V2(400+constant.PowerUpCollectRadius, 400)

	ball.LastHitPlayer = core.NoPlayer
	if _, ok := e.Collect(ball, allAlive); ok {
		t.Fatal("Collected with no last hitter")
	}

	alive := allAlive
	alive[2] = false
	ball.LastHitPlayer = 2
	if _, ok := e.Collect(ball, alive); ok {
		t.Fatal("Collected for eliminated player")
	}
	if len(e.Items()) != 1 {
		t.Fatal("Ignored collection must leave the item in place")
	}

	eff, ok := e.Collect(ball, allAlive)
	if !ok || eff.Player != 2 || eff.Kind != KindShield {
		t.Fatalf("Expected shield for player 2, got %+v ok=%v", eff, ok)
	}
	if len(e.Items()) != 0 {
		t.Error("Expected item removed on collection")
	}
	if !e.HasShield(2) {
		t.Error("Expected player 2 shielded")
	}

	activeItem(e, vmath.V2(200, 200), KindShield, VariantNone)
	if _, ok := e.Collect(ball, allAlive); ok {
		t.Error("Collected out of radius")
	}
}

func TestNoDuplicateStacking(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Apply(Effect{Kind: KindPaddleSize, Variant: VariantIncreaseSelf, Player: 1, Remaining: 100}, nil)
	for i := 0; i < 40; i++ {
		e.Update()
	}
	e.Apply(Effect{Kind: KindPaddleSize, Variant: VariantIncreaseSelf, Player: 1, Remaining: 480}, nil)

	got := e.EffectsFor(1)
	if len(got) != 1 {
		t.Fatalf("Expected one effect for player 1, got %d", len(got))
	}
	if got[0].Remaining != 480 {
		t.Errorf("Expected refreshed duration 480, got %d", got[0].Remaining)
	}
	if m := e.PaddleSizeModifier(1, allAlive); m != constant.PaddleSizeIncrease {
		t.Errorf("Expected single increase %v, got %v", constant.PaddleSizeIncrease, m)
	}
}

func TestRefreshKeepsHeldVariant(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Apply(Effect{Kind: KindPaddleSize, Variant: VariantIncreaseSelf, Player: 1, Remaining: 100}, nil)
	e.Apply(Effect{Kind: KindPaddleSize, Variant: VariantDecreaseEnemies, Player: 1, Remaining: 480}, nil)

	got := e.EffectsFor(1)
	if len(got) != 1 {
		t.Fatalf("Expected one effect for player 1, got %d", len(got))
	}
	if got[0].Variant != VariantIncreaseSelf || got[0].Remaining != 480 {
		t.Errorf("Expected increase_self refreshed to 480, got %s with %d", got[0].Variant, got[0].Remaining)
	}
	if m := e.PaddleSizeModifier(1, allAlive); m != constant.PaddleSizeIncrease {
		t.Errorf("Expected own paddle enlarged %v, got %v", constant.PaddleSizeIncrease, m)
	}
	if m := e.PaddleSizeModifier(0, allAlive); m != 1 {
		t.Errorf("Expected enemy paddle unchanged, got %v", m)
	}
}

func TestShieldSingleUse(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Apply(Effect{Kind: KindShield, Player: 0, Remaining: constant.DurationShield}, nil)
	e.Apply(Effect{Kind: KindShield, Player: 0, Remaining: constant.DurationShield}, nil)

	if !e.UseShield(0) {
		t.Fatal("Expected first shield use to succeed")
	}
	if e.UseShield(0) || e.HasShield(0) {
		t.Error("Second collection must not grant a second block")
	}
	if e.HasShield(core.PlayerID(7)) || e.UseShield(core.NoPlayer) {
		t.Error("Out-of-range players must have no shield")
	}
}

func TestPaddleSizeModifier(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Apply(Effect{Kind: KindPaddleSize, Variant: VariantIncreaseSelf, Player: 0, Remaining: 10}, nil)
	e.Apply(Effect{Kind: KindPaddleSize, Variant: VariantDecreaseEnemies, Player: 1, Remaining: 10}, nil)

	alive := allAlive
	alive[3] = false
	tests := []struct {
		player core.PlayerID
		want   float64
	}{
		{0, constant.PaddleSizeIncrease * constant.PaddleSizeDecrease},
		{1, 1.0},
		{2, constant.PaddleSizeDecrease},
		{3, 1.0},
		{core.NoPlayer, 1.0},
	}
	for _, tt := range tests {
		if got := e.PaddleSizeModifier(tt.player, alive); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Player %d: expected modifier %v, got %v", tt.player, tt.want, got)
		}
	}

	for i := 0; i < 10; i++ {
		e.Update()
	}
	if got := e.PaddleSizeModifier(0, alive); got != 1.0 {
		t.Errorf("Expected modifier reset after expiry, got %v", got)
	}
}

func TestBallSpeedLastAppliedWins(t *testing.T) {
	e, _ := newTestEngine(t)
	if e.BallSpeedModifier() != 1.0 {
		t.Fatal("Expected neutral speed with no effects")
	}
	e.Apply(Effect{Kind: KindBallSpeed, Variant: VariantSlow, Player: 0, Remaining: 600}, nil)
	e.Apply(Effect{Kind: KindBallSpeed, Variant: VariantFast, Player: 1, Remaining: 600}, nil)
	if got := e.BallSpeedModifier(); got != constant.BallSpeedFast {
		t.Errorf("Expected fast %v, got %v", constant.BallSpeedFast, got)
	}

	// A refresh keeps the effect's place in the order
	e.Apply(Effect{Kind: KindBallSpeed, Variant: VariantSlow, Player: 0, Remaining: 600}, nil)
	if got := e.BallSpeedModifier(); got != constant.BallSpeedFast {
		t.Errorf("Expected fast to still win after refresh, got %v", got)
	}

	e.Apply(Effect{Kind: KindBallSpeed, Variant: VariantSlow, Player: 2, Remaining: 600}, nil)
	if got := e.BallSpeedModifier(); got != constant.BallSpeedSlow {
		t.Errorf("Expected slow %v, got %v", constant.BallSpeedSlow, got)
	}
}

func TestExpiryReportsEffects(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Apply(Effect{Kind: KindGhostBall, Player: 3, Remaining: 3}, nil)
	e.Apply(Effect{Kind: KindShield, Player: 1, Remaining: constant.DurationInstant}, nil)

	for i := 0; i < 2; i++ {
		if expired := e.Update(); len(expired) != 0 {
			t.Fatalf("Unexpected expiry at tick %d: %+v", i, expired)
		}
	}
	if owner, ok := e.GhostBall(); !ok || owner != 3 {
		t.Fatalf("Expected ghost owned by 3, got %d ok=%v", owner, ok)
	}
	expired := e.Update()
	if len(expired) != 1 || expired[0].Kind != KindGhostBall {
		t.Fatalf("Expected ghost expiry, got %+v", expired)
	}
	if _, ok := e.GhostBall(); ok {
		t.Error("Ghost still active after expiry")
	}

	for i := 0; i < 1000; i++ {
		e.Update()
	}
	if !e.HasShield(1) {
		t.Error("Until-consumed effect must not expire")
	}
}

func TestDecoySpawnIsInstant(t *testing.T) {
	e, ball := newTestEngine(t)
	ball.Pos = vmath.V2(300, 500)
	e.Apply(Effect{Kind: KindDecoyBall, Player: 0, Remaining: KindDecoyBall.Duration()}, ball)

	if len(e.Effects()) != 0 {
		t.Errorf("Instant effect entered the active list: %+v", e.Effects())
	}
	decoys := e.Decoys()
	if len(decoys) != 1 {
		t.Fatalf("Expected one decoy, got %d", len(decoys))
	}
	d := decoys[0]
	if d.Pos != ball.Pos || !d.Decoy || d.CausesLifeLoss() {
		t.Errorf("Unexpected decoy state: pos=%v decoy=%v", d.Pos, d.Decoy)
	}
	if math.Abs(d.Vel.Mag()-ball.TargetSpeed()) > 1e-9 {
		t.Errorf("Expected decoy at target speed %v, got %v", ball.TargetSpeed(), d.Vel.Mag())
	}

	for i := 0; i < constant.DurationDecoyBall; i++ {
		d.Update()
	}
	if removed := e.PruneDecoys(); removed != 1 || len(e.Decoys()) != 0 {
		t.Errorf("Expected expired decoy pruned, removed=%d left=%d", removed, len(e.Decoys()))
	}
}

func TestControlScrambleMapping(t *testing.T) {
	e, _ := newTestEngine(t)
	for id := core.PlayerID(0); id < core.PlayerCount; id++ {
		if e.ScrambledPlayer(id) != id {
			t.Fatalf("Expected identity mapping without scramble")
		}
	}

	e.Apply(Effect{Kind: KindControlScramble, Player: 0, Remaining: constant.DurationControlScramble}, nil)
	seen := map[core.PlayerID]bool{}
	for id := core.PlayerID(0); id < core.PlayerCount; id++ {
		m := e.ScrambledPlayer(id)
		if m == id {
			t.Errorf("Player %d not remapped", id)
		}
		seen[m] = true
	}
	if len(seen) != core.PlayerCount {
		t.Errorf("Expected a permutation, got %v", seen)
	}
}

func TestWildDeflectionTiming(t *testing.T) {
	e, _ := newTestEngine(t)
	if _, ok := e.WildDeflection(); ok {
		t.Fatal("Deflection without wild bounce")
	}
	e.Apply(Effect{Kind: KindWildBounce, Player: 1, Remaining: constant.DurationWildBounce}, nil)

	var fires []int
	for tick := 0; tick < 500; tick++ {
		if deg, ok := e.WildDeflection(); ok {
			if math.Abs(deg) > constant.WildBounceAngle {
				t.Errorf("Deflection %v exceeds %v", deg, constant.WildBounceAngle)
			}
			fires = append(fires, tick)
		}
	}
	if len(fires) < 2 {
		t.Fatalf("Expected repeated deflections, got %v", fires)
	}
	for i := 1; i < len(fires); i++ {
		gap := fires[i] - fires[i-1]
		if gap < constant.WildBounceMinInterval || gap > constant.WildBounceMaxInterval {
			t.Errorf("Deflection gap %d outside [%d,%d]", gap, constant.WildBounceMinInterval, constant.WildBounceMaxInterval)
		}
	}
}

func TestMagnetPull(t *testing.T) {
	arena := testArena()
	p := component.NewPaddle(0, arena)
	b := component.NewBall(arena, constant.BallSpeed, 0, vmath.NewFastRand(1))
	cx, cy := p.Center()

	b.Pos = vmath.V2(cx+constant.MagnetRadius-1, cy)
	pull, ok := MagnetPull(b, p)
	if !ok || pull.X >= 0 || math.Abs(pull.Mag()-constant.MagnetForce) > 1e-9 {
		t.Errorf("Expected pull of %v toward paddle, got %v ok=%v", constant.MagnetForce, pull, ok)
	}

	b.Pos = vmath.V2(cx+constant.MagnetRadius+1, cy)
	if _, ok := MagnetPull(b, p); ok {
		t.Error("Expected no pull outside radius")
	}
}

func TestClearResetsEverything(t *testing.T) {
	e, ball := newTestEngine(t)
	e.SpawnRandom()
	e.Apply(Effect{Kind: KindShield, Player: 0, Remaining: 10}, nil)
	e.Apply(Effect{Kind: KindDecoyBall, Player: 0, Remaining: 10}, ball)
	e.Clear()
	if len(e.Items()) != 0 || len(e.Effects()) != 0 || len(e.Decoys()) != 0 {
		t.Error("Expected empty engine after Clear")
	}
	if e.SpawnTimer() < constant.PowerUpSpawnMin || e.SpawnTimer() > constant.PowerUpSpawnMax {
		t.Errorf("Expected spawn timer re-armed in window, got %d", e.SpawnTimer())
	}
}
