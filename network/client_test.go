package network

import (
	"context"
	"sync"
	"testing"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/loworbit/ships-mp/shared/protocol"
)

// fakeConn scripts inbound frames and records outbound writes.
type fakeConn struct {
	mu     sync.Mutex
	frames chan []byte
	writes [][]byte
	closed bool
}

func newFakeConn(frames ...[]byte) *fakeConn {
	ch := make(chan []byte, len(frames))
	for _, f := range frames {
		ch <- f
	}
	close(ch)
	return &fakeConn{frames: ch}
}

func (f *fakeConn) Read(ctx context.Context) (websocket.MessageType, []byte, error) {
	frame, ok := <-f.frames
	if !ok {
		return 0, nil, context.Canceled
	}
	return websocket.MessageText, frame, nil
}

func (f *fakeConn) Write(ctx context.Context, typ websocket.MessageType, p []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, append([]byte(nil), p...))
	return nil
}

func (f *fakeConn) CloseNow() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) writeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.writes)
}

func openClient(ws conn, h Handler) *Client {
	if h == nil {
		h = func(protocol.Event) {}
	}
	return &Client{state: StateOpen, conn: ws, handler: h, log: zap.NewNop().Sugar()}
}

func TestSendWhileNotOpenIsNoop(t *testing.T) {
	ws := newFakeConn()
	for _, state := range []State{StateConnecting, StateClosed} {
		c := openClient(ws, nil)
		c.state = state
		c.Send(protocol.NewMove("p1", protocol.ActionForward))
		if got := ws.writeCount(); got != 0 {
			t.Fatalf("state %v: %d bytes written, want none", state, got)
		}
	}
}

func TestSendWhenOpenWritesFrame(t *testing.T) {
	ws := newFakeConn()
	c := openClient(ws, nil)

	c.Send(protocol.NewMove("p1", protocol.ActionRight))

	if ws.writeCount() != 1 {
		t.Fatalf("wrote %d frames, want 1", ws.writeCount())
	}
	want := `{"type":"MOVE","playerId":"p1","action":1}`
	if got := string(ws.writes[0]); got != want {
		t.Fatalf("wrote %s, want %s", got, want)
	}
}

func TestSendAfterCloseIsNoop(t *testing.T) {
	ws := newFakeConn()
	c := openClient(ws, nil)
	c.Close()

	for i := 0; i < 5; i++ {
		c.Send(protocol.NewMove("p1", protocol.ActionForward))
	}
	if ws.writeCount() != 0 {
		t.Fatalf("wrote %d frames after close, want 0", ws.writeCount())
	}
	if c.State() != StateClosed {
		t.Fatalf("State = %v, want closed", c.State())
	}
	if !ws.closed {
		t.Fatal("underlying conn not closed")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	c := openClient(newFakeConn(), nil)
	c.Close()
	c.Close()
	if c.State() != StateClosed {
		t.Fatalf("State = %v, want closed", c.State())
	}
}

func TestMalformedFramesAreDropped(t *testing.T) {
	ws := newFakeConn(
		[]byte(`garbage`),
		[]byte(`{"type":"TELEPORT"}`),
		[]byte(`{"type":"CONNECT","player":{"id":"p1","x":0,"y":0}}`),
	)
	var got []protocol.Event
	c := openClient(ws, func(ev protocol.Event) { got = append(got, ev) })

	c.readLoop(ws)

	if len(got) != 1 {
		t.Fatalf("dispatched %d events, want 1", len(got))
	}
	if _, ok := got[0].(protocol.Connect); !ok {
		t.Fatalf("dispatched %T, want Connect", got[0])
	}
	if c.State() != StateClosed {
		t.Fatalf("State = %v after transport close, want closed", c.State())
	}
}

func TestReadErrorClosesChannel(t *testing.T) {
	ws := newFakeConn() // empty script: first Read fails
	c := openClient(ws, nil)

	c.readLoop(ws)

	if c.State() != StateClosed {
		t.Fatalf("State = %v, want closed", c.State())
	}
	c.Send(protocol.NewMove("p1", protocol.ActionForward))
	if ws.writeCount() != 0 {
		t.Fatalf("wrote %d frames after transport failure, want 0", ws.writeCount())
	}
}
