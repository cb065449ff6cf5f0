// Package progressweb serves a read-only simulation-progress dashboard over
// a WebSocket: each connected client is pushed a JSON progress payload on a
// fixed tick, with no channel back into the simulation.
package progressweb

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// ProgressPayload is pushed to every connected client on each tick.
type ProgressPayload struct {
	ChunksDone  uint32  `json:"chunksDone"`
	ChunksTotal uint32  `json:"chunksTotal"`
	RaysCast    uint64  `json:"raysCast"`
	ElapsedSecs float64 `json:"elapsedSecs"`
}

// Message wraps a typed payload for the wire.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// client is one connected dashboard viewer. It only ever receives; any
// message it sends is read and discarded, just far enough to notice the
// socket closing.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Server is the progress-dashboard web server.
type Server struct {
	progress      *atomic.Uint32
	chunksTotal   uint32
	raysPerSample uint32
	start         time.Time

	port       int
	httpServer *http.Server

	mu      sync.Mutex
	clients map[*client]struct{}
}

// NewServer creates a progress dashboard bound to progress, reporting
// against chunksTotal chunks and raysPerSample rays per sample.
func NewServer(progress *atomic.Uint32, chunksTotal, raysPerSample uint32, port int) *Server {
	return &Server{
		progress:      progress,
		chunksTotal:   chunksTotal,
		raysPerSample: raysPerSample,
		start:         time.Now(),
		port:          port,
		clients:       make(map[*client]struct{}),
	}
}

// Start runs the HTTP server until it errors or is shut down. Blocks like
// http.Server.ListenAndServe.
func (s *Server) Start() error {
	go s.broadcastLoop()

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/api/progress", s.handleAPIProgress)

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("Progress dashboard starting", "port", s.port, "url", fmt.Sprintf("http://localhost:%d", s.port))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

func (s *Server) payload() ProgressPayload {
	return ProgressPayload{
		ChunksDone:  s.progress.Load(),
		ChunksTotal: s.chunksTotal,
		RaysCast:    uint64(s.progress.Load()) * 1000 * uint64(s.raysPerSample),
		ElapsedSecs: time.Since(s.start).Seconds(),
	}
}

// broadcastLoop pushes the current progress to every connected client on a
// fixed tick until the run completes.
func (s *Server) broadcastLoop() {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		msg, err := json.Marshal(Message{Type: "progress", Payload: s.payload()})
		if err != nil {
			continue
		}
		s.broadcast(msg)
		if s.progress.Load() >= s.chunksTotal {
			return
		}
	}
}

func (s *Server) broadcast(message []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		select {
		case c.send <- message:
		default:
			s.removeLocked(c)
		}
	}
}

func (s *Server) addClient(c *client) {
	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) removeClient(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(c)
}

// removeLocked must be called with s.mu held.
func (s *Server) removeLocked(c *client) {
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.send)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Progress dashboard upgrade failed", "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, 16)}
	s.addClient(c)

	if msg, err := json.Marshal(Message{Type: "progress", Payload: s.payload()}); err == nil {
		c.send <- msg
	}

	go s.writePump(c)
	go s.readPump(c)
}

func (s *Server) writePump(c *client) {
	defer c.conn.Close()
	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}

// readPump drains and discards anything the client sends, existing only to
// notice the socket closing since this dashboard takes no client input.
func (s *Server) readPump(c *client) {
	defer func() {
		s.removeClient(c)
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) handleAPIProgress(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.payload())
}

const indexPage = `<!DOCTYPE html>
<html><head><title>Room impulse response synthesis progress</title></head>
<body>
<h1>Simulation progress</h1>
<pre id="progress">connecting...</pre>
<script>
const ws = new WebSocket("ws://" + location.host + "/ws");
ws.onmessage = (ev) => {
  const msg = JSON.parse(ev.data);
  document.getElementById("progress").textContent = JSON.stringify(msg.payload, null, 2);
};
</script>
</body></html>`

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexPage))
}
