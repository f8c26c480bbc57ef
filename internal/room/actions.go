package room

import (
	"clueless/internal/game"
	"clueless/internal/shared"

	"golang.org/x/exp/slices"
)

// Option is a destination offered to the player about to move.
type Option struct {
	ID   string            `json:"id"`
	Name string            `json:"name"`
	Kind game.LocationKind `json:"kind"`
	Stay bool              `json:"stay,omitempty"`
}

func (o Option) Ref() game.LocationRef {
	return game.LocationRef{Kind: o.Kind, ID: o.ID}
}

type MoveResult struct {
	RequiresChoice bool     `json:"requiresChoice,omitempty"`
	Options        []Option `json:"options,omitempty"`
	Destination    *Option  `json:"destination,omitempty"`
	Forced         bool     `json:"forced,omitempty"`

	Events []shared.Event `json:"-"`
}

type SuggestResult struct {
	Suggestion       SuggestionRecord `json:"suggestion"`
	AwaitingDisproof bool             `json:"awaitingDisproof"`
	Disprover        string           `json:"disprover,omitempty"`
	// MatchingCards is for the coordinator's callers only. It is sent to the
	// disprover through a private event, never back to the suggester.
	MatchingCards []string `json:"-"`
	Relocated     string   `json:"relocated,omitempty"`

	Events []shared.Event `json:"-"`
}

type DisproveResult struct {
	RevealedCard string `json:"revealedCard"`
	Disprover    string `json:"disprover"`
	Suggester    string `json:"suggester"`

	Events []shared.Event `json:"-"`
}

type AccuseResult struct {
	Correct    bool   `json:"correct"`
	GameOver   bool   `json:"gameOver"`
	Winner     string `json:"winner,omitempty"`
	NextPlayer string `json:"nextPlayer,omitempty"`

	Events []shared.Event `json:"-"`
}

type EndTurnResult struct {
	NextPlayer string `json:"nextPlayer,omitempty"`
	GameOver   bool   `json:"gameOver"`
	Winner     string `json:"winner,omitempty"`

	Events []shared.Event `json:"-"`
}

// actor runs the gates shared by every turn action: game running, player known,
// not eliminated, nothing awaiting disproof, and the player's turn.
func (r *Room) actor(playerID string) (*Player, error) {
	if r.over {
		return nil, game.ErrGameAlreadyOver
	}
	p, ok := r.byID[playerID]
	if !ok {
		return nil, game.ErrUnknownPlayer.Withf("unknown player %s", playerID)
	}
	if p.Eliminated {
		return nil, game.ErrPlayerEliminated
	}
	if r.pending != nil {
		return nil, game.ErrAwaitingDisproof.Withf("waiting for %s to disprove", r.byID[r.pending.Disprover].Name)
	}
	if r.players[r.turn].ID != playerID {
		return nil, game.ErrNotYourTurn
	}
	return p, nil
}

func (r *Room) option(ref game.LocationRef, stay bool) Option {
	return Option{ID: ref.ID, Name: r.board.Name(ref), Kind: ref.Kind, Stay: stay}
}

// moveOptions lists the legal destinations of p right now. Staying in place is
// offered only to a player pulled into a room by a suggestion.
func (r *Room) moveOptions(p *Player) []Option {
	var out []Option
	for _, to := range r.board.Adjacent(p.Location) {
		if r.board.IsLegalMove(p.Location, to) {
			out = append(out, r.option(to, false))
		}
	}
	if p.ArrivedViaSuggestion && p.Location.IsRoom() {
		out = append(out, r.option(p.Location, true))
	}
	return out
}

// MoveOptions is the query form of Move without a destination. It has no gates
// besides the player being known.
func (r *Room) MoveOptions(playerID string) ([]Option, error) {
	p, ok := r.byID[playerID]
	if !ok {
		return nil, game.ErrUnknownPlayer.Withf("unknown player %s", playerID)
	}
	return r.moveOptions(p), nil
}

func (r *Room) hasRealMove(p *Player) bool {
	for _, o := range r.moveOptions(p) {
		if !o.Stay {
			return true
		}
	}
	return false
}

// Move moves the current player. With an empty destination it only returns the
// options. When no destination is legal the move resolves as a forced no-op.
func (r *Room) Move(playerID, destination string) (MoveResult, error) {
	p, err := r.actor(playerID)
	if err != nil {
		return MoveResult{}, err
	}
	if r.turnState.HasMoved {
		return MoveResult{}, game.ErrIllegalMove.Withf("already moved this turn")
	}

	opts := r.moveOptions(p)
	if len(opts) == 0 {
		r.turnState.HasMoved = true
		r.touch()
		return MoveResult{
			Forced: true,
			Events: []shared.Event{shared.Public(shared.EventPlayerMoved, map[string]any{
				"player_id": p.ID,
				"forced":    true,
				"location":  r.locationView(p.Location),
			})},
		}, nil
	}

	if destination == "" {
		return MoveResult{
			RequiresChoice: true,
			Options:        opts,
			Events: []shared.Event{shared.PrivateTo(p.ID, shared.EventMoveOptions, map[string]any{
				"player_id": p.ID,
				"options":   opts,
			})},
		}, nil
	}

	to, ok := r.board.Resolve(destination)
	if !ok {
		return MoveResult{}, game.ErrInvalidDestination.Withf("unknown destination %q", destination)
	}
	var chosen *Option
	for i := range opts {
		if opts[i].Ref() == to {
			chosen = &opts[i]
			break
		}
	}
	if chosen == nil {
		if to.IsHallway() && r.board.IsDoor(p.Location, to.ID) && r.board.Occupant(to.ID) != "" {
			return MoveResult{}, game.ErrHallwayOccupied.Withf("%s is occupied", r.board.Name(to))
		}
		return MoveResult{}, game.ErrInvalidDestination.Withf("cannot reach %s from %s", r.board.Name(to), r.board.Name(p.Location))
	}

	if !chosen.Stay {
		if err := r.board.Move(p.ID, p.Location, to); err != nil {
			return MoveResult{}, err
		}
		p.Location = to
	}
	r.turnState.HasMoved = true
	r.turnState.EnteredRoom = to.IsRoom()
	r.touch()

	return MoveResult{
		Destination: chosen,
		Events: []shared.Event{shared.Public(shared.EventPlayerMoved, map[string]any{
			"player_id": p.ID,
			"stay":      chosen.Stay,
			"location":  r.locationView(p.Location),
		})},
	}, nil
}

// Suggest resolves a suggestion from the current player's room: the named suspect
// is pulled in, then the seats after the suggester are scanned for a disprover.
func (r *Room) Suggest(playerID, suspect, weapon string) (SuggestResult, error) {
	p, err := r.actor(playerID)
	if err != nil {
		return SuggestResult{}, err
	}
	if !p.Location.IsRoom() {
		return SuggestResult{}, game.ErrNotInRoom
	}
	if !r.turnState.HasMoved {
		return SuggestResult{}, game.ErrMustMoveFirst
	}
	if r.turnState.MadeSuggestion {
		return SuggestResult{}, game.ErrAlreadySuggested
	}
	suspectCard, err := r.deck.LookupKind(game.KindSuspect, suspect)
	if err != nil {
		return SuggestResult{}, err
	}
	weaponCard, err := r.deck.LookupKind(game.KindWeapon, weapon)
	if err != nil {
		return SuggestResult{}, err
	}
	roomName := r.board.Name(p.Location)
	s := game.Suggestion{
		Suggester: p.ID,
		Suspect:   suspectCard,
		Weapon:    weaponCard,
		Room:      game.Card{Kind: game.KindRoom, Name: roomName},
	}

	var res SuggestResult
	res.Events = append(res.Events, shared.Public(shared.EventSuggestionMade, map[string]any{
		"suggester": p.ID,
		"suspect":   suspect,
		"weapon":    weapon,
		"room":      roomName,
	}))

	if target := r.playerByCharacter(suspect); target != nil && target.ID != p.ID && !target.Eliminated {
		if target.Location != p.Location {
			r.board.Vacate(target.ID, target.Location)
			target.Location = p.Location
		}
		target.ArrivedViaSuggestion = true
		res.Relocated = target.ID
		res.Events = append(res.Events, shared.Public(shared.EventPlayerRelocated, map[string]any{
			"player_id": target.ID,
			"location":  r.locationView(target.Location),
		}))
	}

	seats := make([]game.Seat, len(r.players))
	for i, pl := range r.players {
		seats[i] = game.Seat{PlayerID: pl.ID, Hand: pl.Hand, Eliminated: pl.Eliminated}
	}
	suggester := r.seatOf(p.ID)
	idx, matching := game.FindDisprover(seats, suggester, s)

	rec := SuggestionRecord{
		Suggester: p.ID,
		Suspect:   suspect,
		Weapon:    weapon,
		Room:      roomName,
	}
	for _, pl := range r.players {
		if pl.Eliminated && pl.ID != p.ID {
			rec.Skipped = append(rec.Skipped, pl.ID)
		}
	}

	if idx < 0 {
		rec.Undisproved = true
		rec.Resolved = true
		r.history = append(r.history, rec)
		r.turnState.MadeSuggestion = true
		res.Suggestion = rec
		res.Events = append(res.Events, shared.Public(shared.EventNoDisproof, rec))
		r.touch()
		return res, nil
	}

	disprover := r.players[idx]
	var candidates []string
	for _, i := range game.DisproveOrder(seats, suggester) {
		candidates = append(candidates, r.players[i].ID)
	}
	r.pending = &PendingDisproof{
		Suggestion: s,
		Candidates: candidates,
		Disprover:  disprover.ID,
		Matching:   matching,
	}
	rec.Disprover = disprover.ID
	r.history = append(r.history, rec)

	names := cardNames(matching)
	res.Suggestion = rec
	res.AwaitingDisproof = true
	res.Disprover = disprover.ID
	res.MatchingCards = names
	res.Events = append(res.Events,
		shared.PrivateTo(disprover.ID, shared.EventDisprovePrompt, map[string]any{
			"disprover_id":   disprover.ID,
			"disprover_name": disprover.Name,
			"suggester_id":   p.ID,
			"suggester_name": p.Name,
			"suggestion":     rec,
			"matching_cards": names,
		}),
		shared.Public(shared.EventDisprovePending, map[string]any{
			"disprover_id":   disprover.ID,
			"disprover_name": disprover.Name,
			"suggester_id":   p.ID,
		}),
	)
	r.touch()
	return res, nil
}

// ChooseDisprovingCard lets the designated disprover show one matching card to
// the suggester, privately.
func (r *Room) ChooseDisprovingCard(playerID, cardName string) (DisproveResult, error) {
	if r.over {
		return DisproveResult{}, game.ErrGameAlreadyOver
	}
	if r.pending == nil {
		return DisproveResult{}, game.ErrNoPendingDisproof
	}
	if playerID != r.pending.Disprover {
		return DisproveResult{}, game.ErrNotDesignatedDisprover
	}
	disprover := r.byID[playerID]
	var card game.Card
	found := false
	for _, c := range r.pending.Matching {
		if c.Name == cardName && disprover.holds(c) {
			card, found = c, true
			break
		}
	}
	if !found {
		return DisproveResult{}, game.ErrCardNotInHand.Withf("%q cannot disprove this suggestion", cardName)
	}

	suggester := r.byID[r.pending.Suggestion.Suggester]
	suggester.learn(card, disprover.ID)
	if !slices.Contains(disprover.RevealedTo[card.Name], suggester.ID) {
		disprover.RevealedTo[card.Name] = append(disprover.RevealedTo[card.Name], suggester.ID)
	}

	r.pending = nil
	r.turnState.MadeSuggestion = true
	if last := r.LastSuggestion(); last != nil {
		last.Resolved = true
	}
	r.touch()

	result := map[string]any{
		"card":           card.Name,
		"disprover_id":   disprover.ID,
		"disprover_name": disprover.Name,
		"suggester_id":   suggester.ID,
	}
	return DisproveResult{
		RevealedCard: card.Name,
		Disprover:    disprover.ID,
		Suggester:    suggester.ID,
		Events: []shared.Event{
			shared.PrivateTo(suggester.ID, shared.EventDisproofResult, result),
			shared.Public(shared.EventCardShown, map[string]any{
				"disprover_id": disprover.ID,
				"suggester_id": suggester.ID,
			}),
		},
	}, nil
}

// Accuse checks a final guess. Right ends the game, wrong eliminates the accuser.
func (r *Room) Accuse(playerID, suspect, weapon, roomName string) (AccuseResult, error) {
	p, err := r.actor(playerID)
	if err != nil {
		return AccuseResult{}, err
	}
	r.turnState.HasAccused = true
	correct := r.solution.Check(suspect, weapon, roomName)

	res := AccuseResult{Correct: correct}
	res.Events = append(res.Events, shared.Public(shared.EventAccusation, map[string]any{
		"player_id": p.ID,
		"suspect":   suspect,
		"weapon":    weapon,
		"room":      roomName,
		"correct":   correct,
	}))

	if correct {
		res.Events = append(res.Events, r.finish(p.ID))
		res.GameOver, res.Winner = true, p.ID
		return res, nil
	}

	p.Eliminated = true
	if p.Location.IsHallway() {
		// The token stays on the board for suggestions, but must not block a hallway.
		h, _ := r.board.Hallway(p.Location.ID)
		r.board.Vacate(p.ID, p.Location)
		p.Location = game.RoomRef(h.Rooms[0])
	}
	res.Events = append(res.Events, shared.Public(shared.EventEliminated, map[string]any{
		"player_id": p.ID,
		"location":  r.locationView(p.Location),
	}))

	switch active := r.activePlayers(); len(active) {
	case 0:
		res.Events = append(res.Events, r.finish(""))
		res.GameOver = true
	case 1:
		res.Events = append(res.Events, r.finish(active[0].ID))
		res.GameOver, res.Winner = true, active[0].ID
	default:
		res.Events = append(res.Events, r.advance()...)
		if r.over {
			res.GameOver, res.Winner = true, r.winner
		} else {
			res.NextPlayer = r.players[r.turn].ID
		}
	}
	return res, nil
}

// EndTurn passes the turn to the next non-eliminated player in seating order.
func (r *Room) EndTurn(playerID string) (EndTurnResult, error) {
	p, err := r.actor(playerID)
	if err != nil {
		return EndTurnResult{}, err
	}
	if !r.turnState.HasMoved && r.hasRealMove(p) {
		return EndTurnResult{}, game.ErrMustMoveFirst
	}
	if r.turnState.EnteredRoom && !r.turnState.MadeSuggestion {
		return EndTurnResult{}, game.ErrSuggestionRequired
	}

	res := EndTurnResult{Events: r.advance()}
	if r.over {
		res.GameOver, res.Winner = true, r.winner
	} else {
		res.NextPlayer = r.players[r.turn].ID
	}
	return res, nil
}

// advance resets the turn state and moves the pointer. If the scan comes back to
// the current player they are the sole survivor; if nobody is left the game ends
// without a winner.
func (r *Room) advance() []shared.Event {
	cur := r.players[r.turn]
	cur.ArrivedViaSuggestion = false
	r.turnState = TurnState{}
	r.touch()

	n := len(r.players)
	for step := 1; step <= n; step++ {
		i := (r.turn + step) % n
		if r.players[i].Eliminated {
			continue
		}
		if i == r.turn {
			return []shared.Event{r.finish(cur.ID)}
		}
		r.turn = i
		next := r.players[i]
		return []shared.Event{shared.Public(shared.EventTurnAdvanced, map[string]any{
			"current_player": map[string]any{
				"id":        next.ID,
				"name":      next.Name,
				"character": next.Character,
			},
		})}
	}
	return []shared.Event{r.finish("")}
}

func (r *Room) finish(winner string) shared.Event {
	r.over = true
	r.winner = winner
	r.pending = nil
	r.touch()
	data := map[string]any{
		"winner":   winner,
		"solution": r.solution,
	}
	if p, ok := r.byID[winner]; ok {
		data["winner_name"] = p.Name
		data["winner_character"] = p.Character
	}
	return shared.Public(shared.EventGameOver, data)
}

func (r *Room) touch() {
	r.updated = r.now()
}

func cardNames(cards []game.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Name
	}
	return out
}
