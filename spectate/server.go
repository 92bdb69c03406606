// Package spectate serves live match snapshots over HTTP and WebSocket
package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lixenwraith/neon-arena/engine"
	"github.com/lixenwraith/neon-arena/status"
)

const shutdownTimeout = 3 * time.Second

// Server publishes snapshots to spectators
// Publish is called from the game loop; HTTP handlers run on their own goroutines
type Server struct {
	hub     *Hub
	router  *gin.Engine
	metrics *status.Registry

	mu        sync.RWMutex
	latest    []byte
	published uint64
}

// New creates a server with its routes mounted; metrics may be nil
func New(metrics *status.Registry) *Server {
	if metrics == nil {
		metrics = status.NewRegistry()
	}
	s := &Server{hub: NewHub(), metrics: metrics}

	router := gin.New()
	router.Use(gin.LoggerWithWriter(log.Writer()), gin.Recovery())
	router.GET("/healthz", s.handleHealth)
	router.GET("/snapshot", s.handleSnapshot)
	router.GET("/metrics", s.handleMetrics)
	router.GET("/ws", s.handleWebSocket)
	s.router = router
	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Hub returns the spectator hub
func (s *Server) Hub() *Hub {
	return s.hub
}

// Publish stores snap as the latest frame and broadcasts it
func (s *Server) Publish(snap engine.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	s.mu.Lock()
	s.latest = data
	s.published++
	published := s.published
	s.mu.Unlock()

	s.hub.Broadcast(data)
	s.metrics.Ints.Get("spectate.published").Store(int64(published))
	s.metrics.Ints.Get("spectate.spectators").Store(int64(s.hub.Count()))
	return nil
}

func (s *Server) snapshot() ([]byte, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.published
}

func (s *Server) handleHealth(c *gin.Context) {
	_, published := s.snapshot()
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"spectators": s.hub.Count(),
		"published":  published,
	})
}

func (s *Server) handleSnapshot(c *gin.Context) {
	data, _ := s.snapshot()
	if data == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

func (s *Server) handleMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, s.metrics.Export())
}

func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[SPECTATE] upgrade failed: %v", err)
		return
	}

	client := &Client{hub: s.hub, conn: conn, send: make(chan []byte, sendBuffer)}
	if data, _ := s.snapshot(); data != nil {
		client.send <- data
	}
	s.hub.register(client)
	log.Printf("[SPECTATE] spectator connected from %s", c.ClientIP())

	go client.writePump()
	go client.readPump()
}

// Run serves on addr until ctx is cancelled
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[SPECTATE] listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.hub.Close()
	return srv.Shutdown(shutdownCtx)
}
