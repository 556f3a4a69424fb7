package game

import (
	"sync"

	"go.uber.org/zap"

	"github.com/loworbit/ships-mp/shared/protocol"
)

// Sender is the outbound half of the connection channel. Sends are
// fire-and-forget: a channel that is not open drops the message silently, so
// the controller never learns about loss.
type Sender interface {
	Send(ev protocol.Event)
	Close()
}

// Controller bridges inbound protocol events to cache mutations and local
// actions to outbound MOVE messages.
//
// The server never labels which player is ours; the first CONNECT received
// after dialing is taken as the local player. A CONNECT broadcast for someone
// else's join that arrived first would be adopted instead. The protocol has
// no marker to tell the two apart, so the server must announce the newcomer
// to itself before anything else.
type Controller struct {
	mu      sync.Mutex
	localID string

	cache *ShipCache
	ch    Sender
	log   *zap.SugaredLogger
}

func NewController(cache *ShipCache, ch Sender, log *zap.SugaredLogger) *Controller {
	return &Controller{cache: cache, ch: ch, log: log}
}

// HandleEvent applies one decoded server event. Runs on the channel's read
// goroutine.
func (c *Controller) HandleEvent(ev protocol.Event) {
	switch ev := ev.(type) {
	case protocol.Connect:
		c.mu.Lock()
		if c.localID == "" {
			c.localID = ev.Player.ID
			c.log.Infow("adopted local identity", "id", ev.Player.ID)
		}
		c.mu.Unlock()
		c.cache.Upsert(ev.Player)
	case protocol.Disconnect:
		c.cache.Remove(ev.PlayerID)
	case protocol.Update:
		for _, s := range ev.Players {
			c.cache.Upsert(s)
		}
	default:
		c.log.Debugw("ignoring inbound event", "type", ev)
	}
}

// LocalID returns the adopted identity, or "" before the first CONNECT.
func (c *Controller) LocalID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.localID
}

// SendAction forwards one local input intent to the server. Before an
// identity has been adopted there is no legal playerId to attach, so the
// action is dropped.
func (c *Controller) SendAction(a protocol.Action) {
	id := c.LocalID()
	if id == "" {
		c.log.Debugw("dropping action, no identity yet", "action", a)
		return
	}
	c.ch.Send(protocol.NewMove(id, a))
}

// Disconnect asks the channel to close. Safe to call more than once.
func (c *Controller) Disconnect() {
	c.ch.Close()
}
