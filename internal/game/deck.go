package game

import (
	"math/rand/v2"
)

// Deck holds the card pools. Solution cards are excluded from the deal, they are
// never removed from the pools themselves.
type Deck struct {
	Suspects []Card
	Weapons  []Card
	Rooms    []Card
	byName   map[string]Card
}

func NewDeck(d ReferenceData) *Deck {
	deck := &Deck{byName: map[string]Card{}}
	add := func(kind CardKind, names []string) []Card {
		out := make([]Card, 0, len(names))
		for _, n := range names {
			c := Card{Kind: kind, Name: n}
			out = append(out, c)
			deck.byName[n] = c
		}
		return out
	}
	deck.Suspects = add(KindSuspect, d.Suspects)
	deck.Weapons = add(KindWeapon, d.Weapons)
	deck.Rooms = add(KindRoom, d.Rooms)
	return deck
}

// Cards returns every card, suspects then weapons then rooms.
func (d *Deck) Cards() []Card {
	out := make([]Card, 0, len(d.Suspects)+len(d.Weapons)+len(d.Rooms))
	out = append(out, d.Suspects...)
	out = append(out, d.Weapons...)
	return append(out, d.Rooms...)
}

func (d *Deck) Pool(kind CardKind) []Card {
	switch kind {
	case KindSuspect:
		return d.Suspects
	case KindWeapon:
		return d.Weapons
	case KindRoom:
		return d.Rooms
	}
	return nil
}

func (d *Deck) Lookup(name string) (Card, bool) {
	c, ok := d.byName[name]
	return c, ok
}

// LookupKind is Lookup restricted to one pool.
func (d *Deck) LookupKind(kind CardKind, name string) (Card, error) {
	c, ok := d.byName[name]
	if !ok || c.Kind != kind {
		return Card{}, ErrUnknownCard.Withf("%q is not a %s", name, kind)
	}
	return c, nil
}

// CreateSolution draws one card uniformly from each pool.
func (d *Deck) CreateSolution(rng *rand.Rand) Solution {
	return Solution{
		Suspect: d.Suspects[rng.IntN(len(d.Suspects))],
		Weapon:  d.Weapons[rng.IntN(len(d.Weapons))],
		Room:    d.Rooms[rng.IntN(len(d.Rooms))],
	}
}

// Deal shuffles every non-solution card and hands them out round-robin, so hand
// sizes differ by at most one.
func (d *Deck) Deal(sol Solution, players int, rng *rand.Rand) [][]Card {
	if players <= 0 {
		return nil
	}
	var pile []Card
	for _, c := range d.Cards() {
		if c == sol.Suspect || c == sol.Weapon || c == sol.Room {
			continue
		}
		pile = append(pile, c)
	}
	rng.Shuffle(len(pile), func(i, j int) {
		pile[i], pile[j] = pile[j], pile[i]
	})

	hands := make([][]Card, players)
	for i, c := range pile {
		hands[i%players] = append(hands[i%players], c)
	}
	return hands
}

// NewRand returns a PCG-backed generator. Equal seeds give equal deals.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
