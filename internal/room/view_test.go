package room

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewForHidesOtherHands(t *testing.T) {
	r := newTestRoom(t, "Miss Scarlet", "Colonel Mustard", "Mrs. White")
	rig(t, r, [3]string{"Mr. Green", "Wrench", "Study"}, map[string][]string{
		"p1": {"Knife", "Hall"},
		"p2": {"Rope", "Kitchen"},
		"p3": {"Professor Plum"},
	})

	v := r.ViewFor("p1")
	require.NotNil(t, v.You)
	assert.Equal(t, "p1", v.You.PlayerID)
	assert.Equal(t, []string{"Knife", "Hall"}, v.You.Hand)
	assert.Nil(t, v.Solution)
	assert.Equal(t, "p1", v.CurrentPlayer)
	assert.Equal(t, PhaseTurnStart, v.Phase)
	assert.NotEmpty(t, v.You.MoveOptions)
	require.Len(t, v.Players, 3)
	assert.Equal(t, 2, v.Players[1].HandSize)

	raw, err := json.Marshal(v)
	require.NoError(t, err)
	for _, hidden := range []string{"Rope", "Professor Plum", "Wrench"} {
		assert.NotContains(t, string(raw), hidden)
	}

	other := r.ViewFor("p2")
	assert.Empty(t, other.You.MoveOptions, "move options only for the player on turn")

	anon := r.ViewFor("stranger")
	assert.Nil(t, anon.You)
}

func TestViewShowsSolutionWhenOver(t *testing.T) {
	r := newTestRoom(t, "Miss Scarlet", "Colonel Mustard")
	sol := r.Solution()
	_, err := r.Accuse("p1", sol.Suspect.Name, sol.Weapon.Name, sol.Room.Name)
	require.NoError(t, err)

	v := r.ViewFor("p2")
	assert.True(t, v.IsOver)
	assert.Equal(t, PhaseOver, v.Phase)
	assert.Equal(t, "p1", v.Winner)
	require.NotNil(t, v.Solution)
	assert.Equal(t, sol, *v.Solution)
	assert.Empty(t, v.CurrentPlayer)
}

func TestViewDuringDisproof(t *testing.T) {
	r := newTestRoom(t, "Miss Scarlet", "Colonel Mustard")
	rig(t, r, [3]string{"Mr. Green", "Wrench", "Study"}, map[string][]string{
		"p2": {"Rope", "Lounge"},
	})
	_, err := r.Move("p1", "Lounge")
	require.NoError(t, err)
	_, err = r.Suggest("p1", "Mr. Green", "Rope")
	require.NoError(t, err)

	v := r.ViewFor("p2")
	assert.Equal(t, PhaseDisproof, v.Phase)
	assert.Equal(t, "p2", v.PendingDisprover)
	assert.Equal(t, []string{"p2"}, v.DisproveOrder)
	assert.ElementsMatch(t, []string{"Rope", "Lounge"}, v.You.MustDisprove)
	assert.Empty(t, r.ViewFor("p1").You.MustDisprove)

	_, err = r.ChooseDisprovingCard("p2", "Rope")
	require.NoError(t, err)
	assert.Empty(t, r.ViewFor("p1").DisproveOrder)
}

func TestDisproveOrderSkipsEliminatedSeats(t *testing.T) {
	r := newTestRoom(t, "Miss Scarlet", "Colonel Mustard", "Mrs. White", "Mr. Green")
	rig(t, r, [3]string{"Mr. Green", "Wrench", "Study"}, map[string][]string{
		"p4": {"Rope"},
	})
	r.players[1].Eliminated = true
	_, err := r.Move("p1", "Lounge")
	require.NoError(t, err)
	_, err = r.Suggest("p1", "Mr. Green", "Rope")
	require.NoError(t, err)

	v := r.ViewFor("p1")
	assert.Equal(t, "p4", v.PendingDisprover)
	assert.Equal(t, []string{"p3", "p4"}, v.DisproveOrder)
}

func TestSnapshotCarriesEverything(t *testing.T) {
	r := newTestRoom(t, "Miss Scarlet", "Colonel Mustard", "Mrs. White")
	snap := r.Snapshot()

	assert.Equal(t, r.Solution(), snap.Case)
	require.Len(t, snap.Private, 3)
	for i, pv := range snap.Private {
		assert.Equal(t, playerID(i), pv.PlayerID)
		assert.Len(t, pv.Hand, 6)
	}
	assert.Nil(t, snap.You)
}

func TestStateEventsArePrivatePerSeat(t *testing.T) {
	r := newTestRoom(t, "Miss Scarlet", "Colonel Mustard", "Mrs. White")
	evs := r.stateEvents()
	require.Len(t, evs, 3)
	for i, ev := range evs {
		assert.Equal(t, playerID(i), ev.To)
		v, ok := ev.Data.(StateView)
		require.True(t, ok)
		assert.Equal(t, playerID(i), v.You.PlayerID)
	}
}
