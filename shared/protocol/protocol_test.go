package protocol

import (
	"bytes"
	"testing"
)

func TestEncodeMove(t *testing.T) {
	b, err := Encode(NewMove("p1", ActionForward))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := []byte(`{"type":"MOVE","playerId":"p1","action":0}`)
	if !bytes.Equal(b, want) {
		t.Fatalf("Encode = %s, want %s", b, want)
	}
}

func TestDecodeConnect(t *testing.T) {
	ev, err := Decode([]byte(`{"type":"CONNECT","player":{"id":"p1","x":0.5,"y":-0.25}}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	c, ok := ev.(Connect)
	if !ok {
		t.Fatalf("Decode = %T, want Connect", ev)
	}
	if c.Player.ID != "p1" || c.Player.X != 0.5 || c.Player.Y != -0.25 {
		t.Fatalf("unexpected player: %+v", c.Player)
	}
}

func TestDecodeDisconnect(t *testing.T) {
	ev, err := Decode([]byte(`{"type":"DISCONNECT","playerId":"p2"}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	d, ok := ev.(Disconnect)
	if !ok {
		t.Fatalf("Decode = %T, want Disconnect", ev)
	}
	if d.PlayerID != "p2" {
		t.Fatalf("PlayerID = %q, want p2", d.PlayerID)
	}
}

func TestDecodeUpdate(t *testing.T) {
	ev, err := Decode([]byte(`{"type":"UPDATE","players":[{"id":"p1","x":1,"y":0},{"id":"p2","x":0,"y":1}]}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	u, ok := ev.(Update)
	if !ok {
		t.Fatalf("Decode = %T, want Update", ev)
	}
	if len(u.Players) != 2 {
		t.Fatalf("len(Players) = %d, want 2", len(u.Players))
	}
	if u.Players[1].ID != "p2" || u.Players[1].Y != 1 {
		t.Fatalf("unexpected second entry: %+v", u.Players[1])
	}
}

func TestDecodeMove(t *testing.T) {
	ev, err := Decode([]byte(`{"type":"MOVE","playerId":"p1","action":3}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	m, ok := ev.(Move)
	if !ok {
		t.Fatalf("Decode = %T, want Move", ev)
	}
	if m.PlayerID != "p1" || m.Action != ActionBackward {
		t.Fatalf("unexpected move: %+v", m)
	}
}

func TestDecodeRejectsBadFrames(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", `this is not json`},
		{"empty object", `{}`},
		{"unknown type", `{"type":"TELEPORT","playerId":"p1"}`},
		{"connect without player", `{"type":"CONNECT"}`},
		{"connect empty id", `{"type":"CONNECT","player":{"id":"","x":0,"y":0}}`},
		{"disconnect without id", `{"type":"DISCONNECT"}`},
		{"move without id", `{"type":"MOVE","action":0}`},
		{"move bad action", `{"type":"MOVE","playerId":"p1","action":9}`},
		{"move action wrong kind", `{"type":"MOVE","playerId":"p1","action":"forward"}`},
		{"update players wrong kind", `{"type":"UPDATE","players":42}`},
		{"update entry empty id", `{"type":"UPDATE","players":[{"id":"p1","x":0,"y":0},{"id":"","x":1,"y":1}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if ev, err := Decode([]byte(tc.raw)); err == nil {
				t.Fatalf("Decode(%s) = %#v, want error", tc.raw, ev)
			}
		})
	}
}

func TestActionValid(t *testing.T) {
	for a := ActionForward; a <= ActionBackward; a++ {
		if !a.Valid() {
			t.Fatalf("Action(%d).Valid() = false", int(a))
		}
	}
	if Action(-1).Valid() || Action(4).Valid() {
		t.Fatal("out of range action reported valid")
	}
}
