package game

import (
	_ "embed"
	"fmt"
	"os"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

//go:embed data/classic.yaml
var classicYAML []byte

type RoomDef struct {
	ID            string   `yaml:"id" json:"id"`
	Name          string   `yaml:"name" json:"name"`
	Hallways      []string `yaml:"hallways" json:"hallways"`
	SecretPassage string   `yaml:"secret_passage,omitempty" json:"secretPassage,omitempty"`
}

type HallwayDef struct {
	ID    string   `yaml:"id" json:"id"`
	Name  string   `yaml:"name" json:"name"`
	Rooms []string `yaml:"rooms" json:"rooms"`
}

type BoardDef struct {
	Rooms    []RoomDef    `yaml:"rooms" json:"rooms"`
	Hallways []HallwayDef `yaml:"hallways" json:"hallways"`
}

// ReferenceData is the read-only card, board and starting slot tables every session
// is built from.
type ReferenceData struct {
	Suspects          []string          `yaml:"suspects" json:"suspects"`
	Weapons           []string          `yaml:"weapons" json:"weapons"`
	Rooms             []string          `yaml:"rooms" json:"rooms"`
	Board             BoardDef          `yaml:"board" json:"board"`
	StartingPositions map[string]string `yaml:"starting_positions" json:"startingPositions"`
}

// DefaultReferenceData returns the classic board shipped with the binary.
func DefaultReferenceData() (ReferenceData, error) {
	return ParseReferenceData(classicYAML)
}

func LoadReferenceData(path string) (ReferenceData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ReferenceData{}, fmt.Errorf("read board file %s: %w", path, err)
	}
	return ParseReferenceData(raw)
}

func ParseReferenceData(raw []byte) (ReferenceData, error) {
	var d ReferenceData
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return ReferenceData{}, fmt.Errorf("%w: %v", ErrBoardDataInconsistent, err)
	}
	if err := d.Validate(); err != nil {
		return ReferenceData{}, err
	}
	return d, nil
}

func inconsistent(format string, args ...any) error {
	return ErrBoardDataInconsistent.Withf(format, args...)
}

// Validate checks that the tables describe a coherent board. Any failure is an
// ErrBoardDataInconsistent.
func (d ReferenceData) Validate() error {
	if len(d.Suspects) == 0 || len(d.Weapons) == 0 || len(d.Rooms) == 0 {
		return inconsistent("card pools must not be empty")
	}
	if len(d.Board.Rooms) == 0 || len(d.Board.Hallways) == 0 {
		return inconsistent("board needs rooms and hallways")
	}

	names := map[string]bool{}
	for _, pool := range [][]string{d.Suspects, d.Weapons, d.Rooms} {
		for _, n := range pool {
			if n == "" || names[n] {
				return inconsistent("card name %q is empty or duplicated", n)
			}
			names[n] = true
		}
	}

	rooms := map[string]RoomDef{}
	roomNames := map[string]bool{}
	hallways := map[string]HallwayDef{}
	hallNames := map[string]bool{}
	for _, r := range d.Board.Rooms {
		if r.ID == "" || r.Name == "" {
			return inconsistent("room with empty id or name")
		}
		if _, dup := rooms[r.ID]; dup || roomNames[r.Name] {
			return inconsistent("room %s declared twice", r.ID)
		}
		rooms[r.ID] = r
		roomNames[r.Name] = true
	}
	for _, h := range d.Board.Hallways {
		if h.ID == "" {
			return inconsistent("hallway with empty id")
		}
		if _, dup := hallways[h.ID]; dup {
			return inconsistent("hallway %s declared twice", h.ID)
		}
		if _, clash := rooms[h.ID]; clash {
			return inconsistent("id %s used by a room and a hallway", h.ID)
		}
		// Names resolve locations, so they must be unique across the board.
		if h.Name != "" {
			if roomNames[h.Name] || hallNames[h.Name] {
				return inconsistent("hallway %s reuses the location name %q", h.ID, h.Name)
			}
			hallNames[h.Name] = true
		}
		if len(h.Rooms) != 2 || h.Rooms[0] == h.Rooms[1] {
			return inconsistent("hallway %s must join exactly two distinct rooms", h.ID)
		}
		for _, rid := range h.Rooms {
			if _, ok := rooms[rid]; !ok {
				return inconsistent("hallway %s references unknown room %s", h.ID, rid)
			}
		}
		hallways[h.ID] = h
	}

	for _, r := range d.Board.Rooms {
		for _, hid := range r.Hallways {
			h, ok := hallways[hid]
			if !ok {
				return inconsistent("room %s references unknown hallway %s", r.ID, hid)
			}
			if h.Rooms[0] != r.ID && h.Rooms[1] != r.ID {
				return inconsistent("room %s lists hallway %s which does not lead to it", r.ID, hid)
			}
		}
		if r.SecretPassage != "" {
			other, ok := rooms[r.SecretPassage]
			if !ok || other.ID == r.ID {
				return inconsistent("room %s has an invalid secret passage %q", r.ID, r.SecretPassage)
			}
			if other.SecretPassage != r.ID {
				return inconsistent("secret passage %s -> %s is not symmetric", r.ID, other.ID)
			}
		}
	}
	for _, h := range d.Board.Hallways {
		for _, rid := range h.Rooms {
			if !slices.Contains(rooms[rid].Hallways, h.ID) {
				return inconsistent("hallway %s is not listed as a door of room %s", h.ID, rid)
			}
		}
	}

	for _, n := range d.Rooms {
		if !roomNames[n] {
			return inconsistent("room card %q has no room on the board", n)
		}
	}

	used := map[string]string{}
	for character, hid := range d.StartingPositions {
		if !slices.Contains(d.Suspects, character) {
			return inconsistent("starting slot for unknown character %q", character)
		}
		if _, ok := hallways[hid]; !ok {
			return inconsistent("starting slot for %s points at unknown hallway %s", character, hid)
		}
		if prev, dup := used[hid]; dup {
			return inconsistent("%s and %s share starting hallway %s", prev, character, hid)
		}
		used[hid] = character
	}
	return nil
}
