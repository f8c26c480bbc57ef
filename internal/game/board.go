package game

import (
	"golang.org/x/exp/slices"
)

type Room struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Hallways      []string `json:"hallways"`
	SecretPassage string   `json:"secretPassage,omitempty"`
}

type Hallway struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Rooms      [2]string `json:"rooms"`
	OccupiedBy string    `json:"occupiedBy,omitempty"`
}

// Board is one session's copy of the layout. Only hallway occupancy changes after
// construction, and only the owning session writes it.
type Board struct {
	rooms     map[string]*Room
	hallways  map[string]*Hallway
	roomIDs   []string
	hallIDs   []string
	byName    map[string]LocationRef
	roomNames map[string]string
}

func NewBoard(def BoardDef) *Board {
	b := &Board{
		rooms:     make(map[string]*Room, len(def.Rooms)),
		hallways:  make(map[string]*Hallway, len(def.Hallways)),
		byName:    map[string]LocationRef{},
		roomNames: map[string]string{},
	}
	for _, r := range def.Rooms {
		b.rooms[r.ID] = &Room{
			ID:            r.ID,
			Name:          r.Name,
			Hallways:      slices.Clone(r.Hallways),
			SecretPassage: r.SecretPassage,
		}
		b.roomIDs = append(b.roomIDs, r.ID)
		b.byName[r.Name] = RoomRef(r.ID)
		b.roomNames[r.Name] = r.ID
	}
	for _, h := range def.Hallways {
		hw := &Hallway{ID: h.ID, Name: h.Name}
		copy(hw.Rooms[:], h.Rooms)
		b.hallways[h.ID] = hw
		b.hallIDs = append(b.hallIDs, h.ID)
		if h.Name != "" {
			b.byName[h.Name] = HallwayRef(h.ID)
		}
	}
	return b
}

func (b *Board) Room(id string) (*Room, bool) {
	r, ok := b.rooms[id]
	return r, ok
}

func (b *Board) Hallway(id string) (*Hallway, bool) {
	h, ok := b.hallways[id]
	return h, ok
}

// RoomByName maps a room card name to its board room.
func (b *Board) RoomByName(name string) (*Room, bool) {
	id, ok := b.roomNames[name]
	if !ok {
		return nil, false
	}
	return b.rooms[id], true
}

// Resolve accepts either a location id ("R12", "H05") or a display name ("Library").
func (b *Board) Resolve(s string) (LocationRef, bool) {
	if _, ok := b.rooms[s]; ok {
		return RoomRef(s), true
	}
	if _, ok := b.hallways[s]; ok {
		return HallwayRef(s), true
	}
	ref, ok := b.byName[s]
	return ref, ok
}

func (b *Board) Name(ref LocationRef) string {
	switch ref.Kind {
	case LocationRoom:
		if r, ok := b.rooms[ref.ID]; ok {
			return r.Name
		}
	case LocationHallway:
		if h, ok := b.hallways[ref.ID]; ok {
			return h.Name
		}
	}
	return ""
}

func (b *Board) Occupant(hallwayID string) string {
	if h, ok := b.hallways[hallwayID]; ok {
		return h.OccupiedBy
	}
	return ""
}

// Adjacent lists the doors of a room plus its secret passage target, or the two
// rooms at the ends of a hallway. Occupancy is ignored.
func (b *Board) Adjacent(ref LocationRef) []LocationRef {
	var out []LocationRef
	switch ref.Kind {
	case LocationRoom:
		r, ok := b.rooms[ref.ID]
		if !ok {
			return nil
		}
		for _, hid := range r.Hallways {
			out = append(out, HallwayRef(hid))
		}
		if r.SecretPassage != "" {
			out = append(out, RoomRef(r.SecretPassage))
		}
	case LocationHallway:
		h, ok := b.hallways[ref.ID]
		if !ok {
			return nil
		}
		out = append(out, RoomRef(h.Rooms[0]), RoomRef(h.Rooms[1]))
	}
	return out
}

// IsDoor reports whether hallwayID opens onto the room at from.
func (b *Board) IsDoor(from LocationRef, hallwayID string) bool {
	if !from.IsRoom() {
		return false
	}
	r, ok := b.rooms[from.ID]
	return ok && slices.Contains(r.Hallways, hallwayID)
}

// IsLegalMove encodes the movement rules:
//   - room to room only through the room's secret passage
//   - room to hallway only through a door, and only if the hallway is empty
//   - hallway to room only to one of the hallway's two ends
//
// Everything else, hallway to hallway included, is illegal.
func (b *Board) IsLegalMove(from, to LocationRef) bool {
	switch {
	case from.IsRoom() && to.IsRoom():
		r, ok := b.rooms[from.ID]
		return ok && r.SecretPassage != "" && r.SecretPassage == to.ID
	case from.IsRoom() && to.IsHallway():
		h, ok := b.hallways[to.ID]
		return ok && b.IsDoor(from, to.ID) && h.OccupiedBy == ""
	case from.IsHallway() && to.IsRoom():
		h, ok := b.hallways[from.ID]
		return ok && (h.Rooms[0] == to.ID || h.Rooms[1] == to.ID)
	}
	return false
}

// Move validates and commits a step, freeing the hallway being left.
func (b *Board) Move(playerID string, from, to LocationRef) error {
	if !b.IsLegalMove(from, to) {
		if to.IsHallway() && b.IsDoor(from, to.ID) && b.Occupant(to.ID) != "" {
			return ErrHallwayOccupied.Withf("%s is occupied", b.Name(to))
		}
		return ErrIllegalMove.Withf("cannot move from %s to %s", from, to)
	}
	if to.IsHallway() {
		h := b.hallways[to.ID]
		if h.OccupiedBy != "" && h.OccupiedBy != playerID {
			return ErrHallwayOccupied.Withf("%s is occupied", h.Name)
		}
		h.OccupiedBy = playerID
	}
	b.Vacate(playerID, from)
	return nil
}

// Place puts a player on a square without movement rules, used for starting slots
// and suggestion relocation. Hallways still admit a single occupant.
func (b *Board) Place(playerID string, at LocationRef) error {
	switch at.Kind {
	case LocationRoom:
		if _, ok := b.rooms[at.ID]; !ok {
			return ErrInvalidDestination.Withf("unknown room %s", at.ID)
		}
	case LocationHallway:
		h, ok := b.hallways[at.ID]
		if !ok {
			return ErrInvalidDestination.Withf("unknown hallway %s", at.ID)
		}
		if h.OccupiedBy != "" && h.OccupiedBy != playerID {
			return ErrHallwayOccupied.Withf("%s is occupied", h.Name)
		}
		h.OccupiedBy = playerID
	default:
		return ErrInvalidDestination
	}
	return nil
}

// Vacate frees a hallway if playerID is the one standing in it. Rooms need no
// bookkeeping.
func (b *Board) Vacate(playerID string, at LocationRef) {
	if !at.IsHallway() {
		return
	}
	if h, ok := b.hallways[at.ID]; ok && h.OccupiedBy == playerID {
		h.OccupiedBy = ""
	}
}

type BoardView struct {
	Rooms    []Room    `json:"rooms"`
	Hallways []Hallway `json:"hallways"`
}

// View copies the board in declaration order.
func (b *Board) View() BoardView {
	v := BoardView{
		Rooms:    make([]Room, 0, len(b.roomIDs)),
		Hallways: make([]Hallway, 0, len(b.hallIDs)),
	}
	for _, id := range b.roomIDs {
		r := *b.rooms[id]
		r.Hallways = slices.Clone(r.Hallways)
		v.Rooms = append(v.Rooms, r)
	}
	for _, id := range b.hallIDs {
		v.Hallways = append(v.Hallways, *b.hallways[id])
	}
	return v
}
