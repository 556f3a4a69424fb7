// Package core implements the authoritative dev server: it assigns player
// ids, applies MOVE steps, and pushes CONNECT / UPDATE / DISCONNECT events to
// every connected client.
package core

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/loworbit/ships-mp/shared/protocol"
)

const writeTimeout = 5 * time.Second

// session is one connected client: its id and the outbound frame queue
// drained by writePump.
type session struct {
	id   string
	conn *websocket.Conn

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

// enqueue drops the frame when the queue is full so a slow client never
// stalls the tick loop. The tick and broadcast paths enqueue on session
// lists copied outside the hub lock, so a session already dropped may still
// be handed frames; the closed flag makes that a no-op instead of a send on
// a closed channel.
func (s *session) enqueue(b []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.send <- b:
	default:
	}
}

// close ends writePump and turns further enqueues into no-ops. Idempotent.
func (s *session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.send)
}

func (s *session) writePump() {
	defer s.conn.CloseNow()
	for msg := range s.send {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err := s.conn.Write(ctx, websocket.MessageText, msg)
		cancel()
		if err != nil {
			return
		}
	}
}

// Hub owns the authoritative ship state and all live sessions.
type Hub struct {
	step float64
	log  *zap.SugaredLogger

	mu       sync.Mutex
	nextID   int
	ships    map[string]protocol.Ship
	sessions map[string]*session
}

// NewHub creates a hub whose ships move step units per MOVE.
func NewHub(step float64, log *zap.SugaredLogger) *Hub {
	return &Hub{
		step:     step,
		log:      log,
		ships:    make(map[string]protocol.Ship),
		sessions: make(map[string]*session),
	}
}

// Handler returns the HTTP handler that upgrades game clients.
func (h *Hub) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			h.log.Warnw("accept failed", "err", err)
			return
		}
		h.serve(conn)
	})
}

// serve runs the whole lifecycle of one client connection and blocks until
// the client goes away.
func (h *Hub) serve(conn *websocket.Conn) {
	sess := &session{conn: conn, send: make(chan []byte, 64)}

	h.mu.Lock()
	h.nextID++
	sess.id = fmt.Sprintf("p%d", h.nextID)
	ship := protocol.Ship{ID: sess.id, X: spawnCoord(), Y: spawnCoord()}
	others := make([]protocol.Ship, 0, len(h.ships))
	for _, s := range h.ships {
		others = append(others, s)
	}
	h.ships[sess.id] = ship
	h.sessions[sess.id] = sess

	// Clients adopt their identity from the first CONNECT they receive, so
	// the newcomer's own announcement must be queued before the session can
	// see any broadcast. Broadcasts take the same lock, which pins the order.
	if b, ok := h.encode(protocol.NewConnect(ship)); ok {
		sess.enqueue(b)
	}
	if len(others) > 0 {
		if b, ok := h.encode(protocol.NewUpdate(others)); ok {
			sess.enqueue(b)
		}
	}
	h.mu.Unlock()

	go sess.writePump()
	h.log.Infow("player joined", "id", sess.id)

	h.broadcastExcept(sess.id, protocol.NewConnect(ship))

	h.readLoop(sess)
	h.drop(sess.id)
}

// readLoop consumes MOVE frames until the client disconnects. Anything that
// fails to decode, or claims another player's id, is logged and ignored.
func (h *Hub) readLoop(sess *session) {
	for {
		_, data, err := sess.conn.Read(context.Background())
		if err != nil {
			return
		}
		ev, err := protocol.Decode(data)
		if err != nil {
			h.log.Warnw("dropping inbound frame", "from", sess.id, "err", err)
			continue
		}
		mv, ok := ev.(protocol.Move)
		if !ok {
			h.log.Warnw("unexpected inbound event", "from", sess.id)
			continue
		}
		if mv.PlayerID != sess.id {
			h.log.Warnw("move for foreign id ignored", "from", sess.id, "claimed", mv.PlayerID)
			continue
		}
		h.applyMove(sess.id, mv.Action)
	}
}

// applyMove steps the ship and clamps it to the [-1,1] play area.
func (h *Hub) applyMove(id string, a protocol.Action) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ship, ok := h.ships[id]
	if !ok {
		return
	}
	switch a {
	case protocol.ActionForward:
		ship.Y += h.step
	case protocol.ActionBackward:
		ship.Y -= h.step
	case protocol.ActionLeft:
		ship.X -= h.step
	case protocol.ActionRight:
		ship.X += h.step
	}
	ship.X = clamp(ship.X)
	ship.Y = clamp(ship.Y)
	h.ships[id] = ship
}

func (h *Hub) drop(id string) {
	h.mu.Lock()
	sess, ok := h.sessions[id]
	delete(h.sessions, id)
	delete(h.ships, id)
	h.mu.Unlock()
	if !ok {
		return
	}
	sess.close()
	h.log.Infow("player left", "id", id)
	h.broadcastExcept(id, protocol.NewDisconnect(id))
}

func (h *Hub) broadcastExcept(id string, ev protocol.Event) {
	b, ok := h.encode(ev)
	if !ok {
		return
	}
	for _, sess := range h.sessionList() {
		if sess.id == id {
			continue
		}
		sess.enqueue(b)
	}
}

// Ships returns a copy of the authoritative ship state.
func (h *Hub) Ships() []protocol.Ship {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]protocol.Ship, 0, len(h.ships))
	for _, s := range h.ships {
		out = append(out, s)
	}
	return out
}

func (h *Hub) sessionList() []*session {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*session, 0, len(h.sessions))
	for _, s := range h.sessions {
		out = append(out, s)
	}
	return out
}

func (h *Hub) encode(ev protocol.Event) ([]byte, bool) {
	b, err := protocol.Encode(ev)
	if err != nil {
		h.log.Errorw("encode outbound event", "err", err)
		return nil, false
	}
	return b, true
}

// spawnCoord keeps new ships away from the play area edge.
func spawnCoord() float64 {
	return rand.Float64()*1.8 - 0.9
}

func clamp(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
