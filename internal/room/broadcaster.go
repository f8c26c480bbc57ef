package room

import "clueless/internal/shared"

// Broadcaster delivers session events to a transport. Implementations must not
// block: they are called while the session is locked.
type Broadcaster interface {
	Broadcast(sessionID string, ev shared.Event)
}

// Mirror receives full snapshots after every applied action. Save must return
// immediately; durability is the mirror's own business.
type Mirror interface {
	Save(snap Snapshot)
}
