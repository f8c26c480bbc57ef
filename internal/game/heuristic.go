package game

import (
	"math/rand/v2"

	"clueless/internal/config"
)

// Notebook is a bot's deduction sheet: every card it has seen, plus categories it
// has pinned to the solution from undisproved suggestions.
type Notebook struct {
	deck   *Deck
	known  map[Card]bool
	pinned map[CardKind]Card
}

func NewNotebook(deck *Deck, known []Card) *Notebook {
	n := &Notebook{deck: deck, known: map[Card]bool{}, pinned: map[CardKind]Card{}}
	for _, c := range known {
		n.known[c] = true
	}
	return n
}

func (n *Notebook) Learn(c Card)      { n.known[c] = true }
func (n *Notebook) Knows(c Card) bool { return n.known[c] }

// ObserveUndisproved records a suggestion of ours that nobody could disprove
// while every other seat was still scanned: each named card we have not seen is
// in the case file.
func (n *Notebook) ObserveUndisproved(s Suggestion) {
	for _, c := range s.Cards() {
		if !n.known[c] {
			n.pinned[c.Kind] = c
		}
	}
}

// Candidates lists the cards of a kind that could still be in the solution.
func (n *Notebook) Candidates(kind CardKind) []Card {
	if c, ok := n.pinned[kind]; ok {
		return []Card{c}
	}
	var out []Card
	for _, c := range n.deck.Pool(kind) {
		if !n.known[c] {
			out = append(out, c)
		}
	}
	return out
}

// Solution reports the case file once every category is down to one candidate.
func (n *Notebook) Solution() (Solution, bool) {
	s, w, r := n.Candidates(KindSuspect), n.Candidates(KindWeapon), n.Candidates(KindRoom)
	if len(s) != 1 || len(w) != 1 || len(r) != 1 {
		return Solution{}, false
	}
	return Solution{Suspect: s[0], Weapon: w[0], Room: r[0]}, true
}

// PickSuggestion names an unresolved suspect and weapon.
func (n *Notebook) PickSuggestion(rng *rand.Rand) (Card, Card) {
	return pick(rng, n.Candidates(KindSuspect), n.deck.Suspects), pick(rng, n.Candidates(KindWeapon), n.deck.Weapons)
}

func pick(rng *rand.Rand, preferred, fallback []Card) Card {
	if len(preferred) > 0 {
		return preferred[rng.IntN(len(preferred))]
	}
	return fallback[rng.IntN(len(fallback))]
}

func (n *Notebook) roomOpen(b *Board, roomID string) bool {
	r, ok := b.Room(roomID)
	if !ok {
		return false
	}
	for _, c := range n.Candidates(KindRoom) {
		if c.Name == r.Name {
			return true
		}
	}
	return false
}

// DestinationScore rates a move target: rooms whose card is still open beat known
// rooms, hallways are rated by the open rooms they lead to.
func (n *Notebook) DestinationScore(b *Board, to LocationRef, w config.BotWeights) int {
	switch to.Kind {
	case LocationRoom:
		if n.roomOpen(b, to.ID) {
			return w.OpenRoom
		}
		return w.KnownRoom
	case LocationHallway:
		score := w.Hallway
		for _, next := range b.Adjacent(to) {
			if n.roomOpen(b, next.ID) {
				score += w.LeadsToOpenRoom
			}
		}
		return score
	}
	return 0
}

// PickDisproof chooses which matching card to show, preferring one the suggester
// has already seen so nothing new leaks.
func PickDisproof(matching []Card, alreadyShown func(Card) bool, rng *rand.Rand) Card {
	for _, c := range matching {
		if alreadyShown(c) {
			return c
		}
	}
	return matching[rng.IntN(len(matching))]
}
