package status

import (
	"strings"
	"sync"
	"testing"
)

func TestMetricMapCachesPointer(t *testing.T) {
	r := NewRegistry()
	a := r.Ints.Get("match.ticks")
	b := r.Ints.Get("match.ticks")
	if a != b {
		t.Error("Expected same pointer for the same key")
	}
	a.Store(42)
	if got := b.Load(); got != 42 {
		t.Errorf("Expected 42, got %d", got)
	}
	if !r.Ints.Has("match.ticks") || r.Ints.Has("missing") {
		t.Error("Expected Has to track registered keys")
	}
}

func TestMetricMapRangeSorted(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()
	for _, k := range []string{"c", "a", "b"} {
		m.Get(k)
	}
	var keys []string
	m.Range(func(k string, _ *AtomicFloat) { keys = append(keys, k) })
	if strings.Join(keys, "") != "abc" {
		t.Errorf("Expected sorted keys, got %v", keys)
	}
}

func TestMetricMapConcurrentGet(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Get("frame.ms").Add(1)
			}
		}()
	}
	wg.Wait()
	if got := m.Get("frame.ms").Get(); got != 1600 {
		t.Errorf("Expected 1600, got %v", got)
	}
	if m.Count() != 1 {
		t.Errorf("Expected one metric, got %d", m.Count())
	}
}

func TestAtomicStringTruncates(t *testing.T) {
	var s AtomicString
	if s.Load() != "" {
		t.Error("Expected empty zero value")
	}
	s.Store(strings.Repeat("x", MaxStringLen+5))
	if got := len(s.Load()); got != MaxStringLen {
		t.Errorf("Expected %d bytes, got %d", MaxStringLen, got)
	}
}

func TestRegistryExport(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get("match.game_overs").Store(3)
	r.Floats.Get("frame.ms").Set(1.5)
	r.Strings.Get("match.mode").Store("playing")

	out := r.Export()
	if len(out) != 3 || r.TotalCount() != 3 {
		t.Fatalf("Expected 3 metrics, got %d", len(out))
	}
	if out["match.game_overs"] != int64(3) || out["frame.ms"] != 1.5 || out["match.mode"] != "playing" {
		t.Errorf("Expected exported values, got %v", out)
	}
}
