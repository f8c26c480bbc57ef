package room

import (
	"time"

	"clueless/internal/game"
	"clueless/internal/shared"

	"golang.org/x/exp/slices"
)

type LocationView struct {
	ID   string            `json:"id"`
	Name string            `json:"name"`
	Kind game.LocationKind `json:"kind"`
}

func (r *Room) locationView(ref game.LocationRef) LocationView {
	return LocationView{ID: ref.ID, Name: r.board.Name(ref), Kind: ref.Kind}
}

// PublicPlayer is what every seat may see about every other seat.
type PublicPlayer struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Character  string       `json:"character"`
	Location   LocationView `json:"location"`
	Eliminated bool         `json:"eliminated"`
	HandSize   int          `json:"handSize"`
	Bot        bool         `json:"bot,omitempty"`
}

// PrivateView holds what only its owner may see.
type PrivateView struct {
	PlayerID    string              `json:"playerId"`
	Hand        []string            `json:"hand"`
	KnownCards  []string            `json:"knownCards"`
	RevealedBy  map[string]string   `json:"revealedBy"`
	RevealedTo  map[string][]string `json:"revealedTo"`
	MoveOptions []Option            `json:"moveOptions,omitempty"`

	// MustDisprove lists the cards the viewer can show while a disproof waits on them.
	MustDisprove []string `json:"mustDisprove,omitempty"`
}

type StateView struct {
	SessionID        string            `json:"sessionId"`
	Players          []PublicPlayer    `json:"players"`
	CurrentPlayer    string            `json:"currentPlayer,omitempty"`
	TurnState        TurnState         `json:"turnState"`
	Phase            string            `json:"phase"`
	IsOver           bool              `json:"isOver"`
	Winner           string            `json:"winner,omitempty"`
	LastSuggestion   *SuggestionRecord `json:"lastSuggestion,omitempty"`
	PendingDisprover string            `json:"pendingDisprover,omitempty"`
	DisproveOrder    []string          `json:"disproveOrder,omitempty"`
	Board            game.BoardView    `json:"board"`
	Solution         *game.Solution    `json:"solution,omitempty"`
	You              *PrivateView      `json:"you,omitempty"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// Phases of the current turn.
const (
	PhaseTurnStart = "turn_start"
	PhaseMoved     = "moved"
	PhaseSuggested = "suggested"
	PhaseDisproof  = "awaiting_disproof"
	PhaseOver      = "over"
)

func (r *Room) phase() string {
	switch {
	case r.over:
		return PhaseOver
	case r.pending != nil:
		return PhaseDisproof
	case r.turnState.MadeSuggestion:
		return PhaseSuggested
	case r.turnState.HasMoved:
		return PhaseMoved
	}
	return PhaseTurnStart
}

func (r *Room) publicView() StateView {
	v := StateView{
		SessionID: r.ID,
		Players:   make([]PublicPlayer, 0, len(r.players)),
		TurnState: r.turnState,
		Phase:     r.phase(),
		IsOver:    r.over,
		Winner:    r.winner,
		Board:     r.board.View(),
		UpdatedAt: r.updated,
	}
	for _, p := range r.players {
		v.Players = append(v.Players, PublicPlayer{
			ID:         p.ID,
			Name:       p.Name,
			Character:  p.Character,
			Location:   r.locationView(p.Location),
			Eliminated: p.Eliminated,
			HandSize:   len(p.Hand),
			Bot:        p.Bot,
		})
	}
	if cur := r.CurrentPlayer(); cur != nil {
		v.CurrentPlayer = cur.ID
	}
	if last := r.LastSuggestion(); last != nil {
		cp := *last
		v.LastSuggestion = &cp
	}
	if r.pending != nil {
		v.PendingDisprover = r.pending.Disprover
		v.DisproveOrder = slices.Clone(r.pending.Candidates)
	}
	if r.over {
		sol := r.solution
		v.Solution = &sol
	}
	return v
}

func (r *Room) privateView(p *Player) *PrivateView {
	pv := &PrivateView{
		PlayerID:   p.ID,
		Hand:       cardNames(p.Hand),
		KnownCards: cardNames(p.Known),
		RevealedBy: make(map[string]string, len(p.RevealedBy)),
		RevealedTo: make(map[string][]string, len(p.RevealedTo)),
	}
	for k, v := range p.RevealedBy {
		pv.RevealedBy[k] = v
	}
	for k, v := range p.RevealedTo {
		pv.RevealedTo[k] = slices.Clone(v)
	}
	if !r.over && r.pending == nil && r.CurrentPlayer() == p && !r.turnState.HasMoved {
		pv.MoveOptions = r.moveOptions(p)
	}
	if r.pending != nil && r.pending.Disprover == p.ID {
		pv.MustDisprove = cardNames(r.pending.Matching)
	}
	return pv
}

// ViewFor projects the session for one viewer: public fields of every player and
// the private fields of the viewer only. An unknown viewer gets the public part.
func (r *Room) ViewFor(viewerID string) StateView {
	v := r.publicView()
	if p, ok := r.byID[viewerID]; ok {
		v.You = r.privateView(p)
	}
	return v
}

// Snapshot is the unfiltered state, every hand and the solution included. It is
// for the mirror and debugging, never for clients.
type Snapshot struct {
	StateView
	Private []*PrivateView     `json:"private"`
	Case    game.Solution      `json:"case"`
	History []SuggestionRecord `json:"history"`
}

func (r *Room) Snapshot() Snapshot {
	s := Snapshot{
		StateView: r.publicView(),
		Case:      r.solution,
		History:   slices.Clone(r.history),
	}
	for _, p := range r.players {
		s.Private = append(s.Private, r.privateView(p))
	}
	return s
}

// stateEvents builds one private game_state per seat.
func (r *Room) stateEvents() []shared.Event {
	out := make([]shared.Event, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, shared.PrivateTo(p.ID, shared.EventGameState, r.ViewFor(p.ID)))
	}
	return out
}
