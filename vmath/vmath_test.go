package vmath

import (
	"math"
	"testing"
)

func TestWithMagnitude(t *testing.T) {
	tests := []struct {
		name string
		in   Vec2
		mag  float64
		want Vec2
	}{
		{"axis", V2(3, 0), 8, V2(8, 0)},
		{"diagonal", V2(3, 4), 10, V2(6, 8)},
		{"zero falls back rightward", V2(0, 0), 8, V2(8, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.WithMagnitude(tt.mag)
			if !ApproxEqual(got.X, tt.want.X, 1e-12) || !ApproxEqual(got.Y, tt.want.Y, 1e-12) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestEnsureMinAxis(t *testing.T) {
	got := EnsureMinAxis(V2(0.5, -0.2), 2)
	if got.X != 2 || got.Y != -2 {
		t.Errorf("Expected (2,-2), got %v", got)
	}

	got = EnsureMinAxis(V2(0, 0), 1)
	if got.X != 1 || got.Y != 1 {
		t.Errorf("Expected zero components pushed positive, got %v", got)
	}

	got = EnsureMinAxis(V2(-5, 7), 2)
	if got.X != -5 || got.Y != 7 {
		t.Errorf("Expected untouched vector, got %v", got)
	}
}

func TestReflect(t *testing.T) {
	got := Reflect(V2(3, -4), V2(0, 1))
	if got.X != 3 || got.Y != 4 {
		t.Errorf("Expected (3,4), got %v", got)
	}
}

func TestShortestArcDeg(t *testing.T) {
	tests := []struct {
		from, to, want float64
	}{
		{350, 10, 20},
		{10, 350, -20},
		{0, 180, 180},
		{90, 45, -45},
		{270, -45, 45},
	}

	for _, tt := range tests {
		if got := ShortestArcDeg(tt.from, tt.to); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ShortestArcDeg(%v, %v): expected %v, got %v", tt.from, tt.to, tt.want, got)
		}
	}
}

func TestWrapDeg(t *testing.T) {
	if got := WrapDeg(-30); got != 330 {
		t.Errorf("Expected 330, got %v", got)
	}
	if got := WrapDeg(720); got != 0 {
		t.Errorf("Expected 0, got %v", got)
	}
}

func TestFromAngleDeg(t *testing.T) {
	v := FromAngleDeg(90, 8)
	if math.Abs(v.X) > 1e-9 || math.Abs(v.Y-8) > 1e-9 {
		t.Errorf("Expected (0,8), got %v", v)
	}
}

func TestSourcesDeterministic(t *testing.T) {
	sources := map[string]func() Source{
		"fast": func() Source { return NewFastRand(42) },
		"pcg":  func() Source { return NewPCGRand(42) },
	}

	for name, mk := range sources {
		t.Run(name, func(t *testing.T) {
			a, b := mk(), mk()
			for i := 0; i < 100; i++ {
				x, y := a.Range(-3, 5), b.Range(-3, 5)
				if x != y {
					t.Fatalf("Expected identical sequences, diverged at %d: %v vs %v", i, x, y)
				}
				if x < -3 || x >= 5 {
					t.Fatalf("Range out of bounds: %v", x)
				}
				if n := a.Intn(7); n < 0 || n >= 7 {
					t.Fatalf("Intn out of bounds: %d", n)
				}
				b.Intn(7)
			}
		})
	}
}

func TestIntRangeInclusive(t *testing.T) {
	r := NewFastRand(7)
	seenLo, seenHi := false, false
	for i := 0; i < 1000; i++ {
		v := IntRange(r, 3, 5)
		if v < 3 || v > 5 {
			t.Fatalf("IntRange out of bounds: %d", v)
		}
		seenLo = seenLo || v == 3
		seenHi = seenHi || v == 5
	}
	if !seenLo || !seenHi {
		t.Error("Expected both bounds to be reachable")
	}
}
