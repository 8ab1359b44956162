// Package net serves a read-only mirror of the canvas to observers on the
// local network.
package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"Paintix/internal/render"
	"Paintix/internal/state"

	"github.com/gorilla/websocket"
	"honnef.co/go/curve"
)

// Message is the JSON document sent to observers.
type Message struct {
	Type       string     `json:"type"`
	View       state.View `json:"view"`
	Background string     `json:"background"`
}

// Mirror publishes document views over HTTP and websockets. It never
// accepts edits.
type Mirror struct {
	log   *slog.Logger
	peers *PeerManager
	size  curve.Size

	mu         sync.RWMutex
	view       state.View
	background string

	upgrader websocket.Upgrader
	server   *http.Server
}

// NewMirror creates a mirror for a canvas of the given logical size, starting
// from view.
func NewMirror(view state.View, size curve.Size, logger *slog.Logger) *Mirror {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "mirror")
	m := &Mirror{
		log:        logger,
		peers:      NewPeerManager(logger),
		size:       size,
		view:       view,
		background: render.DefaultBackground,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	m.server = &http.Server{
		Handler:           m.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return m
}

// Handler returns the HTTP routes of the mirror.
func (m *Mirror) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /document", m.handleDocument)
	mux.HandleFunc("GET /canvas.svg", m.handleSVG)
	mux.HandleFunc("GET /ws", m.handleWS)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	return mux
}

// Publish records v as the current view and forwards it to every observer.
// It never blocks on a slow observer, so it is safe to call from a store
// subscriber.
func (m *Mirror) Publish(v state.View) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.view = v
	m.broadcastLocked()
}

// SetBackground records the canvas background and forwards it.
func (m *Mirror) SetBackground(c string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.background = c
	m.broadcastLocked()
}

// Observers returns the number of connected websocket observers.
func (m *Mirror) Observers() int { return m.peers.Count() }

// ListenAndServe listens on addr and serves until Shutdown.
func (m *Mirror) ListenAndServe(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("mirror listen on %s: %w", addr, err)
	}
	return m.Serve(ln)
}

// Serve accepts connections on ln until Shutdown.
func (m *Mirror) Serve(ln net.Listener) error {
	m.log.Info("mirror listening", "addr", ln.Addr().String())
	if err := m.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("mirror serve: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests and disconnects every observer.
func (m *Mirror) Shutdown(ctx context.Context) error {
	err := m.server.Shutdown(ctx)
	m.peers.CloseAll()
	m.log.Info("mirror stopped")
	return err
}

func (m *Mirror) message() Message {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.messageLocked()
}

func (m *Mirror) messageLocked() Message {
	return Message{Type: "view", View: m.view, Background: m.background}
}

func (m *Mirror) scene() render.Scene {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return render.Scene{View: m.view, Background: m.background, Size: m.size}
}

// broadcastLocked queues the current message for every observer. m.mu is
// held so that queue order matches the order of updates.
func (m *Mirror) broadcastLocked() {
	data, err := json.Marshal(m.messageLocked())
	if err != nil {
		m.log.Error("encode view", "err", err)
		return
	}
	m.peers.Broadcast(data)
}

// join registers peer with the current message queued first. Later updates
// queue behind it.
func (m *Mirror) join(peer *Peer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, err := json.Marshal(m.messageLocked())
	if err != nil {
		return fmt.Errorf("encode view: %w", err)
	}
	m.peers.Add(peer, data)
	return nil
}

func (m *Mirror) handleDocument(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(m.message()); err != nil {
		m.log.Warn("write document", "err", err)
	}
}

func (m *Mirror) handleSVG(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml")
	if err := render.WriteSVG(w, m.scene()); err != nil {
		m.log.Warn("write svg", "err", err)
	}
}

func (m *Mirror) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		m.log.Warn("websocket upgrade failed", "err", err, "remote", r.RemoteAddr)
		return
	}
	peer := newPeer(conn)
	if err := m.join(peer); err != nil {
		m.log.Error("observer rejected", "err", err)
		conn.Close()
		return
	}
	m.peers.Run(peer)
}
