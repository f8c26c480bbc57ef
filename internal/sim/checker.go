package sim

import (
	"fmt"
	"sync"

	"clueless/internal/game"
	"clueless/internal/room"

	"golang.org/x/exp/slices"
)

// Checker is a room.Mirror that verifies the session invariants on every
// snapshot it receives.
type Checker struct {
	mu         sync.Mutex
	known      map[string]map[string][]string // session -> player -> known cards
	eliminated map[string]map[string]bool
	last       map[string]room.Snapshot
	violations map[string][]string
}

func NewChecker() *Checker {
	return &Checker{
		known:      map[string]map[string][]string{},
		eliminated: map[string]map[string]bool{},
		last:       map[string]room.Snapshot{},
		violations: map[string][]string{},
	}
}

func (c *Checker) Save(snap room.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := snap.SessionID
	fail := func(format string, args ...any) {
		c.violations[id] = append(c.violations[id], fmt.Sprintf(format, args...))
	}

	occupants := map[string][]string{}
	for _, p := range snap.Players {
		if p.Location.Kind == game.LocationHallway {
			occupants[p.Location.ID] = append(occupants[p.Location.ID], p.ID)
		}
	}
	for _, h := range snap.Board.Hallways {
		if n := len(occupants[h.ID]); n > 1 {
			fail("hallway %s holds %d players", h.ID, n)
		}
		if len(occupants[h.ID]) == 1 && h.OccupiedBy != occupants[h.ID][0] {
			fail("hallway %s marked for %q but %s stands in it", h.ID, h.OccupiedBy, occupants[h.ID][0])
		}
		if len(occupants[h.ID]) == 0 && h.OccupiedBy != "" {
			fail("hallway %s marked for %s but empty", h.ID, h.OccupiedBy)
		}
	}

	if c.known[id] == nil {
		c.known[id] = map[string][]string{}
		c.eliminated[id] = map[string]bool{}
	}
	for _, pv := range snap.Private {
		for _, card := range c.known[id][pv.PlayerID] {
			if !slices.Contains(pv.KnownCards, card) {
				fail("%s forgot %s", pv.PlayerID, card)
			}
		}
		c.known[id][pv.PlayerID] = slices.Clone(pv.KnownCards)
	}

	active := 0
	for _, p := range snap.Players {
		if c.eliminated[id][p.ID] && !p.Eliminated {
			fail("%s came back from elimination", p.ID)
		}
		if p.Eliminated {
			c.eliminated[id][p.ID] = true
		} else {
			active++
		}
		if !snap.IsOver && p.ID == snap.CurrentPlayer && p.Eliminated {
			fail("turn pointer on eliminated player %s", p.ID)
		}
	}
	if active == 0 && !snap.IsOver {
		fail("no active player left but the game goes on")
	}
	if !snap.IsOver && snap.CurrentPlayer == "" {
		fail("running game without a current player")
	}
	c.last[id] = snap
}

func (c *Checker) Violations(sessionID string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.violations[sessionID])
}

// Last is the most recent snapshot of a session.
func (c *Checker) Last(sessionID string) (room.Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.last[sessionID]
	return s, ok
}
