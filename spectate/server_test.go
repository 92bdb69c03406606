package spectate

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/lixenwraith/neon-arena/core"
	"github.com/lixenwraith/neon-arena/engine"
	"github.com/lixenwraith/neon-arena/status"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	s := New(status.NewRegistry())
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		s.Hub().Close()
		ts.Close()
	})
	return s, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readSnapshot(t *testing.T, conn *websocket.Conn) engine.Snapshot {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage failed: %v", err)
	}
	var snap engine.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	return snap
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var body struct {
		Status     string `json:"status"`
		Spectators int    `json:"spectators"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if body.Status != "ok" || body.Spectators != 0 {
		t.Errorf("Expected ok with no spectators, got %+v", body)
	}
}

func TestSnapshotBeforePublish(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/snapshot")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("Expected 204, got %d", resp.StatusCode)
	}
}

func TestSnapshotAfterPublish(t *testing.T) {
	s, ts := newTestServer(t)
	if err := s.Publish(engine.Snapshot{MatchID: "m-1", Tick: 42, Mode: core.ModePlaying}); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	resp, err := http.Get(ts.URL + "/snapshot")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()

	var snap engine.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if snap.MatchID != "m-1" || snap.Tick != 42 || snap.Mode != core.ModePlaying {
		t.Errorf("Expected published snapshot, got %+v", snap)
	}
}

func TestWebSocketReceivesLatestOnConnect(t *testing.T) {
	s, ts := newTestServer(t)
	s.Publish(engine.Snapshot{MatchID: "first", Mode: core.ModeAiming})

	conn := dial(t, ts)
	snap := readSnapshot(t, conn)
	if snap.MatchID != "first" || snap.Mode != core.ModeAiming {
		t.Errorf("Expected latest snapshot on connect, got %+v", snap)
	}
}

func TestWebSocketBroadcast(t *testing.T) {
	s, ts := newTestServer(t)
	conn := dial(t, ts)

	deadline := time.Now().Add(2 * time.Second)
	for s.Hub().Count() != 1 {
		if time.Now().After(deadline) {
			t.Fatal("Expected spectator registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	s.Publish(engine.Snapshot{MatchID: "live", Tick: 7})
	snap := readSnapshot(t, conn)
	if snap.MatchID != "live" || snap.Tick != 7 {
		t.Errorf("Expected broadcast snapshot, got %+v", snap)
	}
}

func TestSpectatorLeaves(t *testing.T) {
	s, ts := newTestServer(t)
	conn := dial(t, ts)

	deadline := time.Now().Add(2 * time.Second)
	for s.Hub().Count() != 1 {
		if time.Now().After(deadline) {
			t.Fatal("Expected spectator registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	conn.Close()
	deadline = time.Now().Add(2 * time.Second)
	for s.Hub().Count() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("Expected spectator removed after close")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestBroadcastDropsWhenFull(t *testing.T) {
	h := NewHub()
	c := &Client{hub: h, send: make(chan []byte, 1)}
	h.register(c)

	h.Broadcast([]byte("a"))
	h.Broadcast([]byte("b"))

	if got := string(<-c.send); got != "a" {
		t.Errorf("Expected first frame kept, got %s", got)
	}
	select {
	case extra := <-c.send:
		t.Errorf("Expected second frame dropped, got %s", extra)
	default:
	}

	h.unregister(c)
	h.unregister(c)
	if h.Count() != 0 {
		t.Errorf("Expected empty hub, got %d", h.Count())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s, ts := newTestServer(t)
	s.metrics.Strings.Get("match.mode").Store("playing")
	s.Publish(engine.Snapshot{})
	s.Publish(engine.Snapshot{})

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if body["match.mode"] != "playing" {
		t.Errorf("Expected mode metric, got %v", body["match.mode"])
	}
	if body["spectate.published"] != float64(2) {
		t.Errorf("Expected 2 published, got %v", body["spectate.published"])
	}
}
