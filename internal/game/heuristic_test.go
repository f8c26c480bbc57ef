package game

import (
	"testing"

	"clueless/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotebookNarrowsToSolution(t *testing.T) {
	deck := NewDeck(classic(t))
	sol := Solution{Suspect: plum, Weapon: knife, Room: library}

	var known []Card
	for _, c := range deck.Cards() {
		if c != sol.Suspect && c != sol.Weapon && c != sol.Room {
			known = append(known, c)
		}
	}
	nb := NewNotebook(deck, known[1:])
	_, ok := nb.Solution()
	assert.False(t, ok)

	nb.Learn(known[0])
	got, ok := nb.Solution()
	require.True(t, ok)
	assert.Equal(t, sol, got)
}

func TestNotebookPinsUndisprovedCards(t *testing.T) {
	deck := NewDeck(classic(t))
	nb := NewNotebook(deck, []Card{knife})

	nb.ObserveUndisproved(Suggestion{Suspect: plum, Weapon: knife, Room: library})
	assert.Equal(t, []Card{plum}, nb.Candidates(KindSuspect))
	assert.Equal(t, []Card{library}, nb.Candidates(KindRoom))
	assert.Len(t, nb.Candidates(KindWeapon), 5, "a known card is not pinned")
}

func TestNotebookNeverPinsRevealedCards(t *testing.T) {
	deck := NewDeck(classic(t))
	rope, ok := deck.Lookup("Rope")
	require.True(t, ok)
	nb := NewNotebook(deck, nil)
	nb.Learn(rope)

	nb.ObserveUndisproved(Suggestion{Suspect: plum, Weapon: rope, Room: library})
	assert.NotContains(t, nb.Candidates(KindWeapon), rope)
	_, solved := nb.Solution()
	assert.False(t, solved)
}

func TestPickSuggestionPrefersUnknownCards(t *testing.T) {
	deck := NewDeck(classic(t))
	var known []Card
	for _, c := range deck.Suspects {
		if c != green {
			known = append(known, c)
		}
	}
	for _, c := range deck.Weapons {
		if c != rope {
			known = append(known, c)
		}
	}
	nb := NewNotebook(deck, known)
	rng := NewRand(1)
	for i := 0; i < 10; i++ {
		s, w := nb.PickSuggestion(rng)
		assert.Equal(t, green, s)
		assert.Equal(t, rope, w)
	}
}

func TestDestinationScore(t *testing.T) {
	data := classic(t)
	deck := NewDeck(data)
	b := NewBoard(data.Board)
	w := config.DefaultBotWeights()

	nb := NewNotebook(deck, []Card{study})
	assert.Equal(t, w.OpenRoom, nb.DestinationScore(b, RoomRef("R12"), w))
	assert.Equal(t, w.KnownRoom, nb.DestinationScore(b, RoomRef("R22"), w))
	// H10 joins Library (open) and Study (known).
	assert.Equal(t, w.Hallway+w.LeadsToOpenRoom, nb.DestinationScore(b, HallwayRef("H10"), w))
}

func TestPickDisproofPrefersAlreadyShown(t *testing.T) {
	shown := func(c Card) bool { return c == knife }
	for seed := uint64(1); seed <= 5; seed++ {
		assert.Equal(t, knife, PickDisproof([]Card{plum, knife}, shown, NewRand(seed)))
	}
	none := func(Card) bool { return false }
	assert.Contains(t, []Card{plum, knife}, PickDisproof([]Card{plum, knife}, none, NewRand(1)))
}
