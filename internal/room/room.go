package room

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"clueless/internal/game"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

const (
	MinPlayers = 2
	MaxPlayers = 6
)

// RosterEntry is one seat handed over by the lobby.
type RosterEntry struct {
	PlayerID  string `json:"player_id"`
	Name      string `json:"name"`
	Character string `json:"character"`
	Bot       bool   `json:"bot"`
}

// Roster is ordered: its order is the seating order.
type Roster []RosterEntry

type Player struct {
	ID        string
	Name      string
	Character string
	Bot       bool
	Location  game.LocationRef
	Hand      []game.Card

	// Known is the hand plus every card revealed to this player. It only grows.
	Known      []game.Card
	RevealedBy map[string]string
	RevealedTo map[string][]string

	Eliminated bool

	// ArrivedViaSuggestion is set when another player's suggestion pulled this
	// player into a room. It allows staying put and clears when their own turn ends.
	ArrivedViaSuggestion bool
}

func (p *Player) knows(c game.Card) bool {
	return slices.Contains(p.Known, c)
}

func (p *Player) holds(c game.Card) bool {
	return slices.Contains(p.Hand, c)
}

func (p *Player) learn(c game.Card, from string) {
	if !p.knows(c) {
		p.Known = append(p.Known, c)
	}
	if from != "" {
		p.RevealedBy[c.Name] = from
	}
}

type TurnState struct {
	HasMoved       bool `json:"hasMoved"`
	MadeSuggestion bool `json:"madeSuggestion"`
	HasAccused     bool `json:"hasAccused"`
	EnteredRoom    bool `json:"enteredRoom"`
}

// PendingDisproof exists between a disprovable suggestion and the disprover's
// card choice. While set, no other action is accepted.
type PendingDisproof struct {
	Suggestion game.Suggestion
	// Candidates are the seats asked in order, suggester excluded.
	Candidates []string
	Disprover  string
	Matching   []game.Card
}

// SuggestionRecord is the public trace of a suggestion. The shown card is never part of it.
type SuggestionRecord struct {
	Suggester   string `json:"suggester"`
	Suspect     string `json:"suspect"`
	Weapon      string `json:"weapon"`
	Room        string `json:"room"`
	Disprover   string `json:"disprover,omitempty"`
	Undisproved bool   `json:"undisproved"`
	Resolved    bool   `json:"resolved"`
	// Skipped lists the eliminated seats the disproof scan passed over. Their
	// hands still hold cards, so an undisproved suggestion with skipped seats
	// proves nothing about the case file.
	Skipped []string `json:"skipped,omitempty"`
}

type Options struct {
	Rand *rand.Rand
	Now  func() time.Time
}

// Room is the coordinator of one session. It owns every piece of mutable session
// state. Its action methods are not safe for concurrent use: Manager serialises
// them under mu.
type Room struct {
	ID        string
	CreatedAt time.Time

	mu     sync.Mutex
	closed bool

	board    *game.Board
	deck     *game.Deck
	solution game.Solution
	players  []*Player
	byID     map[string]*Player
	rng      *rand.Rand

	turn      int
	turnState TurnState
	pending   *PendingDisproof
	history   []SuggestionRecord

	over    bool
	winner  string
	updated time.Time
	now     func() time.Time
}

// NewRoom builds a session from validated reference data and a roster. It either
// returns a fully placed and dealt session or an error and nothing else.
func NewRoom(id string, data game.ReferenceData, roster Roster, opts Options) (*Room, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	if err := validateRoster(data, roster); err != nil {
		return nil, err
	}
	if opts.Rand == nil {
		opts.Rand = game.NewRand(uint64(time.Now().UnixNano()))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if id == "" {
		id = uuid.NewString()
	}

	r := &Room{
		ID:    id,
		board: game.NewBoard(data.Board),
		deck:  game.NewDeck(data),
		byID:  make(map[string]*Player, len(roster)),
		rng:   opts.Rand,
		now:   opts.Now,
	}
	r.CreatedAt = r.now()
	r.updated = r.CreatedAt

	for _, e := range roster {
		pid := e.PlayerID
		if pid == "" {
			pid = uuid.NewString()
		}
		if _, dup := r.byID[pid]; dup {
			return nil, game.ErrInvalidRoster.Withf("player id %s appears twice", pid)
		}
		name := e.Name
		if name == "" {
			name = e.Character
		}
		p := &Player{
			ID:         pid,
			Name:       name,
			Character:  e.Character,
			Bot:        e.Bot,
			RevealedBy: map[string]string{},
			RevealedTo: map[string][]string{},
		}
		start, ok := data.StartingPositions[e.Character]
		if !ok {
			return nil, game.ErrBoardDataInconsistent.Withf("no starting slot for %s", e.Character)
		}
		p.Location = game.HallwayRef(start)
		if err := r.board.Place(p.ID, p.Location); err != nil {
			return nil, game.ErrBoardDataInconsistent.Withf("cannot place %s: %v", e.Character, err)
		}
		r.players = append(r.players, p)
		r.byID[pid] = p
	}

	r.solution = r.deck.CreateSolution(r.rng)
	for i, hand := range r.deck.Deal(r.solution, len(r.players), r.rng) {
		p := r.players[i]
		p.Hand = hand
		p.Known = slices.Clone(hand)
	}
	return r, nil
}

func validateRoster(data game.ReferenceData, roster Roster) error {
	if len(roster) < MinPlayers || len(roster) > MaxPlayers {
		return game.ErrInvalidRoster.Withf("need %d to %d players, got %d", MinPlayers, MaxPlayers, len(roster))
	}
	taken := map[string]bool{}
	for i, e := range roster {
		if e.Character == "" {
			return game.ErrMissingCharacterSelection.Withf("seat %d has no character", i+1)
		}
		if !slices.Contains(data.Suspects, e.Character) {
			return game.ErrInvalidRoster.Withf("unknown character %q", e.Character)
		}
		if taken[e.Character] {
			return game.ErrInvalidRoster.Withf("%s chosen twice", e.Character)
		}
		taken[e.Character] = true
	}
	return nil
}

func (r *Room) Board() *game.Board { return r.board }
func (r *Room) Deck() *game.Deck   { return r.deck }

// Solution exposes the case file for debugging and bots' tests.
func (r *Room) Solution() game.Solution { return r.solution }

func (r *Room) Over() bool     { return r.over }
func (r *Room) Winner() string { return r.winner }

func (r *Room) Player(id string) (*Player, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// Players returns the seats in seating order.
func (r *Room) Players() []*Player { return r.players }

// CurrentPlayer is the player whose turn it is. It is nil once the game is over.
func (r *Room) CurrentPlayer() *Player {
	if r.over || len(r.players) == 0 {
		return nil
	}
	return r.players[r.turn]
}

func (r *Room) TurnState() TurnState { return r.turnState }

func (r *Room) Pending() *PendingDisproof { return r.pending }

func (r *Room) History() []SuggestionRecord { return r.history }

func (r *Room) LastSuggestion() *SuggestionRecord {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

func (r *Room) playerByCharacter(character string) *Player {
	for _, p := range r.players {
		if p.Character == character {
			return p
		}
	}
	return nil
}

func (r *Room) seatOf(id string) int {
	for i, p := range r.players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (r *Room) activePlayers() []*Player {
	var out []*Player
	for _, p := range r.players {
		if !p.Eliminated {
			out = append(out, p)
		}
	}
	return out
}

func (r *Room) String() string {
	return fmt.Sprintf("session %s (%d players)", r.ID, len(r.players))
}
