package room

import (
	"context"
	"sync"
	"testing"
	"time"

	"clueless/internal/game"
	"clueless/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapStore is a minimal Store; the real ones live in internal/store.
type mapStore struct {
	mu    sync.Mutex
	rooms map[string]*Room
}

func newMapStore() *mapStore { return &mapStore{rooms: map[string]*Room{}} }

func (s *mapStore) Create(id string, build func() (*Room, error)) (*Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[id]; ok {
		return nil, game.ErrSessionExists
	}
	r, err := build()
	if err != nil {
		return nil, err
	}
	s.rooms[id] = r
	return r, nil
}

func (s *mapStore) Get(id string) (*Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[id]
	return r, ok
}

func (s *mapStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.rooms[id]
	delete(s.rooms, id)
	return ok
}

func (s *mapStore) List() []*Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, r)
	}
	return out
}

type recorder struct {
	mu     sync.Mutex
	events []shared.Event
}

func (rc *recorder) Broadcast(_ string, ev shared.Event) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.events = append(rc.events, ev)
}

func (rc *recorder) take() []shared.Event {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	out := rc.events
	rc.events = nil
	return out
}

func (rc *recorder) has(typ string) bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	for _, ev := range rc.events {
		if ev.Type == typ {
			return true
		}
	}
	return false
}

type countingMirror struct {
	mu    sync.Mutex
	saves int
	last  Snapshot
}

func (c *countingMirror) Save(s Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.saves++
	c.last = s
}

func newTestManager(t *testing.T) (*Manager, *recorder, *countingMirror) {
	t.Helper()
	rec := &recorder{}
	mir := &countingMirror{}
	m := NewManager(newMapStore(), classic(t), WithBroadcaster(rec), WithMirror(mir))
	t.Cleanup(m.Shutdown)
	return m, rec, mir
}

func TestManagerCreate(t *testing.T) {
	m, rec, mir := newTestManager(t)

	r, err := m.Create("s1", rosterOf("Miss Scarlet", "Colonel Mustard", "Mrs. White"), testOptions())
	require.NoError(t, err)
	assert.Equal(t, "s1", r.ID)

	evs := rec.take()
	require.Len(t, evs, 4)
	assert.Equal(t, shared.EventGameStarted, evs[0].Type)
	assert.False(t, evs[0].Private())
	for i, ev := range evs[1:] {
		assert.Equal(t, shared.EventGameState, ev.Type)
		assert.Equal(t, playerID(i), ev.To)
	}
	assert.Equal(t, 1, mir.saves)

	_, err = m.Create("s1", rosterOf("Miss Scarlet", "Colonel Mustard"), testOptions())
	assert.ErrorIs(t, err, game.ErrSessionExists)

	_, err = m.Create("s2", rosterOf("Miss Scarlet"), testOptions())
	assert.ErrorIs(t, err, game.ErrInvalidRoster)
	_, err = m.Get("s2")
	assert.ErrorIs(t, err, game.ErrSessionNotFound, "a failed creation registers nothing")

	anon, err := m.Create("", rosterOf("Miss Scarlet", "Colonel Mustard"), testOptions())
	require.NoError(t, err)
	assert.NotEmpty(t, anon.ID)
	assert.Len(t, m.List(), 2)
}

func TestManagerRejectedActionDispatchesNothing(t *testing.T) {
	m, rec, mir := newTestManager(t)
	ctx := context.Background()
	_, err := m.Create("s1", rosterOf("Miss Scarlet", "Colonel Mustard"), testOptions())
	require.NoError(t, err)
	rec.take()
	saves := mir.saves

	_, err = m.Move(ctx, "s1", "p2", "R10")
	assert.ErrorIs(t, err, game.ErrNotYourTurn)
	assert.Empty(t, rec.take())
	assert.Equal(t, saves, mir.saves)

	_, err = m.Move(ctx, "missing", "p1", "R20")
	assert.ErrorIs(t, err, game.ErrSessionNotFound)
}

func TestManagerRoutesDisprovePrompt(t *testing.T) {
	m, rec, _ := newTestManager(t)
	ctx := context.Background()
	r, err := m.Create("s1", rosterOf("Miss Scarlet", "Colonel Mustard", "Mrs. White"), testOptions())
	require.NoError(t, err)
	rig(t, r, [3]string{"Mr. Green", "Wrench", "Study"}, map[string][]string{
		"p3": {"Rope"},
	})
	rec.take()

	_, err = m.Move(ctx, "s1", "p1", "Hall")
	require.NoError(t, err)
	res, err := m.Suggest(ctx, "s1", "p1", "Mr. Green", "Rope")
	require.NoError(t, err)
	assert.Equal(t, "p3", res.Disprover)

	var prompts []shared.Event
	for _, ev := range rec.take() {
		if ev.Type == shared.EventDisprovePrompt {
			prompts = append(prompts, ev)
		}
	}
	require.Len(t, prompts, 1)
	assert.Equal(t, "p3", prompts[0].To)

	v, err := m.View("s1", "p3")
	require.NoError(t, err)
	assert.Equal(t, []string{"Rope"}, v.You.MustDisprove)

	dres, err := m.Disprove(ctx, "s1", "p3", "Rope")
	require.NoError(t, err)
	assert.Equal(t, "Rope", dres.RevealedCard)

	shown := 0
	for _, ev := range rec.take() {
		if ev.Type == shared.EventDisproofResult {
			assert.Equal(t, "p1", ev.To)
			shown++
		}
	}
	assert.Equal(t, 1, shown)
}

func TestManagerRemovesFinishedSession(t *testing.T) {
	m, rec, mir := newTestManager(t)
	ctx := context.Background()
	r, err := m.Create("s1", rosterOf("Miss Scarlet", "Colonel Mustard", "Mrs. White"), testOptions())
	require.NoError(t, err)
	sol := r.Solution()

	res, err := m.Accuse(ctx, "s1", "p1", sol.Suspect.Name, sol.Weapon.Name, sol.Room.Name)
	require.NoError(t, err)
	assert.True(t, res.GameOver)
	assert.True(t, rec.has(shared.EventGameOver))
	assert.True(t, mir.last.IsOver, "the final state is mirrored before removal")

	_, err = m.Get("s1")
	assert.ErrorIs(t, err, game.ErrSessionNotFound)
	_, err = m.EndTurn(ctx, "s1", "p2")
	assert.ErrorIs(t, err, game.ErrSessionNotFound)
}

func TestManagerKeepsSessionAfterWrongAccusation(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()
	r, err := m.Create("s1", rosterOf("Miss Scarlet", "Colonel Mustard", "Mrs. White"), testOptions())
	require.NoError(t, err)
	rig(t, r, [3]string{"Mr. Green", "Wrench", "Study"}, nil)

	res, err := m.Accuse(ctx, "s1", "p1", "Mr. Green", "Wrench", "Hall")
	require.NoError(t, err)
	assert.False(t, res.GameOver)

	v, err := m.View("s1", "p1")
	require.NoError(t, err)
	assert.Equal(t, "p2", v.CurrentPlayer)
	assert.True(t, v.Players[0].Eliminated)
}

func TestManagerRemove(t *testing.T) {
	m, _, _ := newTestManager(t)
	_, err := m.Create("s1", rosterOf("Miss Scarlet", "Colonel Mustard"), testOptions())
	require.NoError(t, err)

	require.NoError(t, m.Remove("s1"))
	assert.ErrorIs(t, m.Remove("s1"), game.ErrSessionNotFound)
	assert.Empty(t, m.List())
}

func TestManagerSerialisesConcurrentActions(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()
	_, err := m.Create("s1", rosterOf("Miss Scarlet", "Colonel Mustard"), testOptions())
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.Move(ctx, "s1", "p1", "R21"); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, ok, "only one move per turn gets through")
}

func TestBotsPlayToTheEnd(t *testing.T) {
	rec := &recorder{}
	m := NewManager(newMapStore(), classic(t), WithBroadcaster(rec))
	t.Cleanup(m.Shutdown)

	roster := rosterOf("Miss Scarlet", "Colonel Mustard", "Mrs. White", "Mr. Green")
	for i := range roster {
		roster[i].Bot = true
	}
	_, err := m.Create("bots", roster, testOptions())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, m.PlayBots(ctx, "bots"))
	assert.True(t, rec.has(shared.EventGameOver))

	_, err = m.Get("bots")
	assert.ErrorIs(t, err, game.ErrSessionNotFound)
}

func TestBotsWaitForHumans(t *testing.T) {
	m, _, _ := newTestManager(t)
	roster := rosterOf("Miss Scarlet", "Colonel Mustard")
	roster[1].Bot = true
	_, err := m.Create("s1", roster, testOptions())
	require.NoError(t, err)

	acted, err := m.BotStep(context.Background(), "s1")
	require.NoError(t, err)
	assert.False(t, acted, "the human seat is on turn")
}

// eagerStore starts an action on a session the moment it is registered.
type eagerStore struct {
	*mapStore
	act  func(id string)
	done chan struct{}
}

func (s *eagerStore) Create(id string, build func() (*Room, error)) (*Room, error) {
	r, err := s.mapStore.Create(id, build)
	if err != nil {
		return nil, err
	}
	started := make(chan struct{})
	go func() {
		defer close(s.done)
		close(started)
		s.act(id)
	}()
	<-started
	time.Sleep(20 * time.Millisecond)
	return r, nil
}

func TestManagerCreateDispatchesBeforeAnyAction(t *testing.T) {
	rec := &recorder{}
	st := &eagerStore{mapStore: newMapStore(), done: make(chan struct{})}
	m := NewManager(st, classic(t), WithBroadcaster(rec))
	t.Cleanup(m.Shutdown)
	st.act = func(id string) {
		_, err := m.Move(context.Background(), id, "p1", "R21")
		assert.NoError(t, err)
	}

	_, err := m.Create("s1", rosterOf("Miss Scarlet", "Colonel Mustard"), testOptions())
	require.NoError(t, err)
	<-st.done

	evs := rec.take()
	require.NotEmpty(t, evs)
	assert.Equal(t, shared.EventGameStarted, evs[0].Type)
	assert.Contains(t, eventTypes(evs), shared.EventPlayerMoved)
}
