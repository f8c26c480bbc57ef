package room

import (
	"testing"
	"time"

	"clueless/internal/game"
	"clueless/internal/shared"

	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func classic(t *testing.T) game.ReferenceData {
	t.Helper()
	d, err := game.DefaultReferenceData()
	require.NoError(t, err)
	return d
}

func rosterOf(characters ...string) Roster {
	r := make(Roster, len(characters))
	for i, c := range characters {
		r[i] = RosterEntry{PlayerID: playerID(i), Name: c, Character: c}
	}
	return r
}

func playerID(i int) string {
	return []string{"p1", "p2", "p3", "p4", "p5", "p6"}[i]
}

func testOptions() Options {
	return Options{Rand: game.NewRand(1), Now: func() time.Time { return epoch }}
}

func newTestRoom(t *testing.T, characters ...string) *Room {
	t.Helper()
	r, err := NewRoom("test", classic(t), rosterOf(characters...), testOptions())
	require.NoError(t, err)
	return r
}

// rig replaces the drawn case file and hands so a test controls who can disprove what.
func rig(t *testing.T, r *Room, sol [3]string, hands map[string][]string) {
	t.Helper()
	lookup := func(name string) game.Card {
		c, ok := r.deck.Lookup(name)
		require.True(t, ok, "unknown card %s", name)
		return c
	}
	r.solution = game.Solution{Suspect: lookup(sol[0]), Weapon: lookup(sol[1]), Room: lookup(sol[2])}
	for _, p := range r.players {
		p.Hand = nil
		for _, n := range hands[p.ID] {
			p.Hand = append(p.Hand, lookup(n))
		}
		p.Known = append([]game.Card(nil), p.Hand...)
	}
}

// put teleports a player, keeping hallway occupancy consistent.
func put(t *testing.T, r *Room, pid, where string) {
	t.Helper()
	p := r.byID[pid]
	ref, ok := r.board.Resolve(where)
	require.True(t, ok, "unknown location %s", where)
	r.board.Vacate(pid, p.Location)
	require.NoError(t, r.board.Place(pid, ref))
	p.Location = ref
}

func eventTypes(evs []shared.Event) []string {
	out := make([]string, len(evs))
	for i, e := range evs {
		out[i] = e.Type
	}
	return out
}
