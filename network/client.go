// Package network owns the persistent message channel between the client and
// the game server.
package network

import (
	"context"
	"sync"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/loworbit/ships-mp/shared/protocol"
)

// State of the connection channel. Closed is terminal: a Client is never
// reused or redialed after it closes.
type State int

const (
	StateConnecting State = iota
	StateOpen
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

const writeTimeout = 5 * time.Second

// conn is the slice of *websocket.Conn the client uses. Tests substitute a
// recorder.
type conn interface {
	Read(ctx context.Context) (websocket.MessageType, []byte, error)
	Write(ctx context.Context, typ websocket.MessageType, p []byte) error
	CloseNow() error
}

// Handler receives each successfully decoded inbound event. It is invoked on
// the channel's read goroutine.
type Handler func(protocol.Event)

// Client is one logical connection to the game server. Delivery is
// at-most-once and fire-and-forget: Send drops the event silently unless the
// channel is open, and nothing is queued or retried.
type Client struct {
	mu      sync.Mutex
	state   State
	conn    conn
	handler Handler
	log     *zap.SugaredLogger
}

// NewClient returns a channel in StateConnecting. Nothing happens on the
// wire until Dial is called; the two-step construction lets the event
// handler's owner hold a reference to the client for sending.
func NewClient(log *zap.SugaredLogger) *Client {
	return &Client{state: StateConnecting, log: log}
}

// Dial starts connecting to addr in the background and returns immediately.
// h is invoked for every decoded inbound event until the channel closes.
// Dial must be called at most once.
func (c *Client) Dial(addr string, h Handler) {
	c.mu.Lock()
	c.handler = h
	c.mu.Unlock()
	go c.run(addr)
}

func (c *Client) run(addr string) {
	ws, _, err := websocket.Dial(context.Background(), addr, nil)
	if err != nil {
		c.log.Warnw("dial failed", "addr", addr, "err", err)
		c.shutdown()
		return
	}

	c.mu.Lock()
	if c.state == StateClosed {
		// Close raced the dial; drop the fresh conn.
		c.mu.Unlock()
		_ = ws.CloseNow()
		return
	}
	c.conn = ws
	c.state = StateOpen
	c.mu.Unlock()

	c.log.Infow("channel open", "addr", addr)
	c.readLoop(ws)
}

// readLoop pulls frames until the transport fails or the channel is closed.
// Frames that fail to decode are logged and dropped; they never take the
// channel down.
func (c *Client) readLoop(ws conn) {
	defer c.shutdown()
	c.mu.Lock()
	h := c.handler
	c.mu.Unlock()
	for {
		_, data, err := ws.Read(context.Background())
		if err != nil {
			c.log.Infow("transport closed", "err", err)
			return
		}
		ev, err := protocol.Decode(data)
		if err != nil {
			c.log.Warnw("dropping inbound frame", "err", err)
			continue
		}
		h(ev)
	}
}

// Send encodes and transmits ev if the channel is open. In any other state
// the event is silently dropped: not queued, not retried, and the caller is
// not notified.
func (c *Client) Send(ev protocol.Event) {
	c.mu.Lock()
	if c.state != StateOpen {
		c.mu.Unlock()
		return
	}
	ws := c.conn
	c.mu.Unlock()

	data, err := protocol.Encode(ev)
	if err != nil {
		c.log.Errorw("encode outbound event", "err", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := ws.Write(ctx, websocket.MessageText, data); err != nil {
		c.log.Warnw("write failed", "err", err)
		c.shutdown()
	}
}

// Close requests transport shutdown. Idempotent; once the channel observes
// closed, Send becomes a no-op.
func (c *Client) Close() {
	c.shutdown()
}

// State returns the current channel state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Client) shutdown() {
	c.mu.Lock()
	if c.state == StateClosed {
		c.mu.Unlock()
		return
	}
	c.state = StateClosed
	ws := c.conn
	c.conn = nil
	c.mu.Unlock()

	if ws != nil {
		_ = ws.CloseNow()
	}
}
