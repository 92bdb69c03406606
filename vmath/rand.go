package vmath

import (
	"math"

	"golang.org/x/exp/rand"
)

// Source is the injectable randomness used by the simulation
// Every random decision (launch direction, spawn timing and placement, AI aim) draws from one Source
type Source interface {
	// Float64 returns a value in [0, 1)
	Float64() float64
	// Range returns a value in [lo, hi)
	Range(lo, hi float64) float64
	// Intn returns a value in [0, n), 0 when n <= 0
	Intn(n int) int
}

// IntRange returns an integer in [lo, hi] inclusive
func IntRange(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.Intn(hi-lo+1)
}

// --- xorshift ---

// FastRand is a xorshift64 generator, cheap and fully deterministic for a seed
type FastRand struct {
	state uint64
}

func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Float64 uses the top 53 bits
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

func (r *FastRand) Range(lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// --- PCG ---

// PCGRand adapts golang.org/x/exp/rand's PCG source to Source
type PCGRand struct {
	r *rand.Rand
}

func NewPCGRand(seed uint64) *PCGRand {
	return &PCGRand{r: rand.New(rand.NewSource(seed))}
}

func (p *PCGRand) Float64() float64 {
	return p.r.Float64()
}

func (p *PCGRand) Range(lo, hi float64) float64 {
	return lo + p.r.Float64()*(hi-lo)
}

func (p *PCGRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return p.r.Intn(n)
}

// RandomAngle returns a uniform angle in [0, 2π)
func RandomAngle(src Source) float64 {
	return src.Range(0, 2*math.Pi)
}
