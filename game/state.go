// Package game holds the client-side synchronization layer: the cache of
// last-known ship positions and the controller that applies server events to
// it and forwards local input.
package game

import (
	"sync"

	"github.com/loworbit/ships-mp/shared/protocol"
)

// ShipCache maps ship id to its last-known position. The sync controller is
// the sole writer (it runs on the channel's read goroutine); the render loop
// reads a snapshot once per frame on the ebiten goroutine. The mutex keeps
// those two serialized.
type ShipCache struct {
	mu    sync.RWMutex
	ships map[string]protocol.Ship
}

func NewShipCache() *ShipCache {
	return &ShipCache{ships: make(map[string]protocol.Ship)}
}

// Upsert replaces any existing entry for the ship's id wholesale. There is
// no partial-field patching.
func (c *ShipCache) Upsert(s protocol.Ship) {
	c.mu.Lock()
	c.ships[s.ID] = s
	c.mu.Unlock()
}

// Remove deletes the entry if present; unknown ids are a no-op.
func (c *ShipCache) Remove(id string) {
	c.mu.Lock()
	delete(c.ships, id)
	c.mu.Unlock()
}

// Len returns the number of known ships.
func (c *ShipCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.ships)
}

// Get returns the ship for id, if known.
func (c *ShipCache) Get(id string) (protocol.Ship, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.ships[id]
	return s, ok
}

// Snapshot returns a copy of every known ship. Callers own the slice; a
// cache mutation landing mid-frame never tears a draw pass already underway.
func (c *ShipCache) Snapshot() []protocol.Ship {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]protocol.Ship, 0, len(c.ships))
	for _, s := range c.ships {
		out = append(out, s)
	}
	return out
}
