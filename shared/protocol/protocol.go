// Package protocol defines the wire messages exchanged between the ships
// client and the game server. Messages are text frames carrying a JSON object
// tagged by its "type" field. It must have zero dependencies on ebiten or any
// graphics library so the dedicated server binary stays headless.
package protocol

import (
	"encoding/json"
	"fmt"
)

// Action is a directional input intent sent to the server. The numeric codes
// are part of the wire contract and must not be reordered.
type Action int

const (
	ActionForward Action = iota
	ActionRight
	ActionLeft
	ActionBackward
)

// Valid reports whether a is one of the four wire action codes.
func (a Action) Valid() bool {
	return a >= ActionForward && a <= ActionBackward
}

func (a Action) String() string {
	switch a {
	case ActionForward:
		return "forward"
	case ActionRight:
		return "right"
	case ActionLeft:
		return "left"
	case ActionBackward:
		return "backward"
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Ship is the wire representation of one entity: a server-assigned opaque id
// and a position in normalized client space, x and y in [-1, 1].
type Ship struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Message type tags.
const (
	TypeMove       = "MOVE"
	TypeConnect    = "CONNECT"
	TypeDisconnect = "DISCONNECT"
	TypeUpdate     = "UPDATE"
)

// Event is one decoded protocol message.
type Event interface {
	isEvent()
}

// Move is the single client-to-server message kind: one input intent tagged
// with the sender's player id.
type Move struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
	Action   Action `json:"action"`
}

// Connect announces a ship newly known to the server.
type Connect struct {
	Type   string `json:"type"`
	Player Ship   `json:"player"`
}

// Disconnect announces that a ship has left and should be removed.
type Disconnect struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
}

// Update carries a batch of current ship positions. Order within the batch
// has no meaning; on duplicate ids the later entry wins.
type Update struct {
	Type    string `json:"type"`
	Players []Ship `json:"players"`
}

func (Move) isEvent()       {}
func (Connect) isEvent()    {}
func (Disconnect) isEvent() {}
func (Update) isEvent()     {}

// NewMove builds an outbound MOVE for the given player and action.
func NewMove(playerID string, a Action) Move {
	return Move{Type: TypeMove, PlayerID: playerID, Action: a}
}

// NewConnect builds a CONNECT announcing s.
func NewConnect(s Ship) Connect {
	return Connect{Type: TypeConnect, Player: s}
}

// NewDisconnect builds a DISCONNECT for the given player id.
func NewDisconnect(playerID string) Disconnect {
	return Disconnect{Type: TypeDisconnect, PlayerID: playerID}
}

// NewUpdate builds an UPDATE carrying the given ships.
func NewUpdate(ships []Ship) Update {
	return Update{Type: TypeUpdate, Players: ships}
}

// Encode serializes ev into one wire frame.
func Encode(ev Event) ([]byte, error) {
	return json.Marshal(ev)
}

// Decode parses one raw frame into a typed event. Frames that are not JSON
// objects, carry an unknown type tag, or are missing required fields return
// an error; callers are expected to drop the frame and carry on.
func Decode(data []byte) (Event, error) {
	var tag struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}

	switch tag.Type {
	case TypeConnect:
		var ev Connect
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, fmt.Errorf("decode %s: %w", tag.Type, err)
		}
		if ev.Player.ID == "" {
			return nil, fmt.Errorf("decode %s: missing player id", tag.Type)
		}
		return ev, nil
	case TypeDisconnect:
		var ev Disconnect
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, fmt.Errorf("decode %s: %w", tag.Type, err)
		}
		if ev.PlayerID == "" {
			return nil, fmt.Errorf("decode %s: missing playerId", tag.Type)
		}
		return ev, nil
	case TypeUpdate:
		var ev Update
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, fmt.Errorf("decode %s: %w", tag.Type, err)
		}
		// An empty id would upsert a ship no DISCONNECT can ever name.
		for _, s := range ev.Players {
			if s.ID == "" {
				return nil, fmt.Errorf("decode %s: missing ship id", tag.Type)
			}
		}
		return ev, nil
	case TypeMove:
		var ev Move
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, fmt.Errorf("decode %s: %w", tag.Type, err)
		}
		if ev.PlayerID == "" {
			return nil, fmt.Errorf("decode %s: missing playerId", tag.Type)
		}
		if !ev.Action.Valid() {
			return nil, fmt.Errorf("decode %s: bad action %d", tag.Type, int(ev.Action))
		}
		return ev, nil
	default:
		return nil, fmt.Errorf("decode frame: unknown type %q", tag.Type)
	}
}
