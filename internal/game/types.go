package game

type CardKind string

const (
	KindSuspect CardKind = "suspect"
	KindWeapon  CardKind = "weapon"
	KindRoom    CardKind = "room"
)

type Card struct {
	Kind CardKind `json:"kind"`
	Name string   `json:"name"`
}

// Solution is the hidden case file drawn at session start.
type Solution struct {
	Suspect Card `json:"suspect"`
	Weapon  Card `json:"weapon"`
	Room    Card `json:"room"`
}

type LocationKind string

const (
	LocationRoom    LocationKind = "room"
	LocationHallway LocationKind = "hallway"
)

// LocationRef identifies a square on the board. The zero value means "not placed".
type LocationRef struct {
	Kind LocationKind `json:"kind"`
	ID   string       `json:"id"`
}

func RoomRef(id string) LocationRef    { return LocationRef{Kind: LocationRoom, ID: id} }
func HallwayRef(id string) LocationRef { return LocationRef{Kind: LocationHallway, ID: id} }

func (l LocationRef) IsRoom() bool    { return l.Kind == LocationRoom }
func (l LocationRef) IsHallway() bool { return l.Kind == LocationHallway }
func (l LocationRef) IsZero() bool    { return l.Kind == "" }

func (l LocationRef) String() string {
	if l.IsZero() {
		return "nowhere"
	}
	return string(l.Kind) + ":" + l.ID
}

// Suggestion names a suspect and weapon in the suggester's current room.
type Suggestion struct {
	Suggester string `json:"suggester"`
	Suspect   Card   `json:"suspect"`
	Weapon    Card   `json:"weapon"`
	Room      Card   `json:"room"`
}

func (s Solution) Cards() [3]Card {
	return [3]Card{s.Suspect, s.Weapon, s.Room}
}

func (s Suggestion) Cards() [3]Card {
	return [3]Card{s.Suspect, s.Weapon, s.Room}
}
