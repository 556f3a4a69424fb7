package core

import (
	"context"
	"time"

	"github.com/loworbit/ships-mp/shared/protocol"
)

// Run broadcasts the authoritative ship positions to every session at the
// given tick rate until ctx is cancelled. Clients reconcile against these
// full UPDATE batches, so a MOVE whose effect is missed by one tick is simply
// reflected in the next.
func (h *Hub) Run(ctx context.Context, tickRate int) {
	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	h.log.Infow("tick loop started", "rate", tickRate)
	for {
		select {
		case <-ctx.Done():
			h.log.Infow("tick loop stopped")
			return
		case <-ticker.C:
			h.tick()
		}
	}
}

func (h *Hub) tick() {
	h.mu.Lock()
	if len(h.sessions) == 0 {
		h.mu.Unlock()
		return
	}
	ships := make([]protocol.Ship, 0, len(h.ships))
	for _, s := range h.ships {
		ships = append(ships, s)
	}
	sessions := make([]*session, 0, len(h.sessions))
	for _, s := range h.sessions {
		sessions = append(sessions, s)
	}
	h.mu.Unlock()

	b, ok := h.encode(protocol.NewUpdate(ships))
	if !ok {
		return
	}
	for _, sess := range sessions {
		sess.enqueue(b)
	}
}
