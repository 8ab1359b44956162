package net

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 16
)

// Peer is one connected observer.
type Peer struct {
	ID   string
	Addr string

	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func newPeer(conn *websocket.Conn) *Peer {
	return &Peer{
		ID:   uuid.NewString(),
		Addr: conn.RemoteAddr().String(),
		conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
}

func (p *Peer) close() {
	p.once.Do(func() {
		close(p.done)
		p.conn.Close()
	})
}

// PeerManager tracks observers and fans messages out to them. A peer whose
// buffer is full is dropped rather than allowed to slow the others down.
type PeerManager struct {
	peers map[string]*Peer
	mu    sync.RWMutex
	log   *slog.Logger
}

// NewPeerManager creates a new manager.
func NewPeerManager(logger *slog.Logger) *PeerManager {
	return &PeerManager{
		peers: make(map[string]*Peer),
		log:   logger,
	}
}

// Add registers peer with first as its first queued message. Callers that
// order broadcasts must hold the same lock around Add and Broadcast.
func (pm *PeerManager) Add(peer *Peer, first []byte) {
	pm.mu.Lock()
	peer.send <- first // fresh peer, the buffer is empty
	pm.peers[peer.ID] = peer
	pm.mu.Unlock()
	pm.log.Info("observer connected", "peer", peer.ID, "addr", peer.Addr)
}

// Run pumps messages to an added peer until it disconnects, then removes it.
func (pm *PeerManager) Run(peer *Peer) {
	go pm.writeLoop(peer)
	pm.readLoop(peer)
	pm.Remove(peer)
}

// Remove drops peer and closes its connection.
func (pm *PeerManager) Remove(peer *Peer) {
	pm.mu.Lock()
	_, ok := pm.peers[peer.ID]
	delete(pm.peers, peer.ID)
	pm.mu.Unlock()

	peer.close()
	if ok {
		pm.log.Info("observer disconnected", "peer", peer.ID, "addr", peer.Addr)
	}
}

// Broadcast queues data for every peer.
func (pm *PeerManager) Broadcast(data []byte) {
	pm.mu.RLock()
	var slow []*Peer
	for _, p := range pm.peers {
		select {
		case p.send <- data:
		default:
			slow = append(slow, p)
		}
	}
	pm.mu.RUnlock()

	for _, p := range slow {
		pm.log.Warn("dropping slow observer", "peer", p.ID, "addr", p.Addr)
		pm.Remove(p)
	}
}

// Count returns the number of connected peers.
func (pm *PeerManager) Count() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return len(pm.peers)
}

// CloseAll disconnects every peer.
func (pm *PeerManager) CloseAll() {
	pm.mu.RLock()
	peers := make([]*Peer, 0, len(pm.peers))
	for _, p := range pm.peers {
		peers = append(peers, p)
	}
	pm.mu.RUnlock()

	for _, p := range peers {
		pm.Remove(p)
	}
}

func (pm *PeerManager) writeLoop(p *Peer) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case data := <-p.send:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				pm.log.Warn("write to observer failed", "peer", p.ID, "err", err)
				p.close()
				return
			}
		case <-ticker.C:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				p.close()
				return
			}
		case <-p.done:
			return
		}
	}
}

// readLoop discards anything an observer sends; it only exists to notice
// disconnects and answer pings.
func (pm *PeerManager) readLoop(p *Peer) {
	p.conn.SetReadLimit(512)
	p.conn.SetReadDeadline(time.Now().Add(pongWait))
	p.conn.SetPongHandler(func(string) error {
		return p.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := p.conn.NextReader(); err != nil {
			return
		}
	}
}
