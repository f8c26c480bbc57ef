package room

import (
	"context"
	"sort"
	"sync"
	"time"

	"clueless/internal/game"
	"clueless/internal/shared"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Store is the session registry. Create must be atomic: build runs only when id
// is absent, and nothing is registered if build fails.
type Store interface {
	Create(id string, build func() (*Room, error)) (*Room, error)
	Get(id string) (*Room, bool)
	Remove(id string) bool
	List() []*Room
}

type Manager struct {
	store        Store
	data         game.ReferenceData
	broadcasters []Broadcaster
	mirror       Mirror
	bots         BotConfig

	ctx        context.Context
	cancel     context.CancelFunc
	botMu      sync.Mutex
	botRunning map[string]bool
}

type ManagerOption func(*Manager)

func WithBroadcaster(b Broadcaster) ManagerOption {
	return func(m *Manager) { m.broadcasters = append(m.broadcasters, b) }
}

func WithMirror(mr Mirror) ManagerOption {
	return func(m *Manager) { m.mirror = mr }
}

func WithBots(cfg BotConfig) ManagerOption {
	return func(m *Manager) { m.bots = cfg }
}

func NewManager(s Store, data game.ReferenceData, opts ...ManagerOption) *Manager {
	m := &Manager{store: s, data: data, bots: DefaultBotConfig(), botRunning: map[string]bool{}}
	m.ctx, m.cancel = context.WithCancel(context.Background())
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *Manager) Data() game.ReferenceData { return m.data }

// Create builds and registers a new session. An empty id gets a fresh uuid.
func (m *Manager) Create(id string, roster Roster, opts Options) (*Room, error) {
	if id == "" {
		id = uuid.NewString()
	}
	// The room is locked before the store publishes it, so no action can run
	// ahead of game_started.
	var built *Room
	r, err := m.store.Create(id, func() (*Room, error) {
		nr, err := NewRoom(id, m.data, roster, opts)
		if err != nil {
			return nil, err
		}
		nr.mu.Lock()
		built = nr
		return nr, nil
	})
	if err != nil {
		if built != nil {
			built.mu.Unlock()
		}
		log.Debug().Err(err).Str("session", id).Msg("session creation rejected")
		return nil, err
	}
	defer r.mu.Unlock()
	players := make([]map[string]any, 0, len(r.players))
	for _, p := range r.players {
		players = append(players, map[string]any{
			"id":        p.ID,
			"name":      p.Name,
			"character": p.Character,
			"location":  r.locationView(p.Location),
		})
	}
	m.dispatch(r, []shared.Event{shared.Public(shared.EventGameStarted, map[string]any{
		"session_id":     r.ID,
		"players":        players,
		"current_player": r.CurrentPlayer().ID,
	})})
	log.Info().Str("session", r.ID).Int("players", len(r.players)).Msg("session created")
	return r, nil
}

func (m *Manager) Get(id string) (*Room, error) {
	r, ok := m.store.Get(id)
	if !ok {
		return nil, game.ErrSessionNotFound.Withf("session %s not found", id)
	}
	return r, nil
}

// Remove closes a session and drops it from the registry. In-flight actions
// already holding the session finish first.
func (m *Manager) Remove(id string) error {
	r, err := m.Get(id)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	m.store.Remove(id)
	log.Info().Str("session", id).Msg("session removed")
	return nil
}

type Summary struct {
	ID            string    `json:"id"`
	Players       int       `json:"players"`
	CurrentPlayer string    `json:"currentPlayer,omitempty"`
	Phase         string    `json:"phase"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (m *Manager) List() []Summary {
	rooms := m.store.List()
	out := make([]Summary, 0, len(rooms))
	for _, r := range rooms {
		r.mu.Lock()
		s := Summary{
			ID:        r.ID,
			Players:   len(r.players),
			Phase:     r.phase(),
			CreatedAt: r.CreatedAt,
		}
		if cur := r.CurrentPlayer(); cur != nil {
			s.CurrentPlayer = cur.ID
		}
		r.mu.Unlock()
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// read runs fn with the session locked, without dispatching anything.
func (m *Manager) read(id string, fn func(r *Room) error) error {
	r, err := m.Get(id)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return game.ErrSessionNotFound.Withf("session %s is closed", id)
	}
	return fn(r)
}

func (m *Manager) View(id, viewerID string) (StateView, error) {
	var v StateView
	err := m.read(id, func(r *Room) error {
		v = r.ViewFor(viewerID)
		return nil
	})
	return v, err
}

func (m *Manager) MoveOptions(id, playerID string) ([]Option, error) {
	var opts []Option
	err := m.read(id, func(r *Room) (err error) {
		opts, err = r.MoveOptions(playerID)
		return err
	})
	return opts, err
}

func (m *Manager) Solution(id string) (game.Solution, error) {
	var s game.Solution
	err := m.read(id, func(r *Room) error {
		s = r.Solution()
		return nil
	})
	return s, err
}

// exec is the single entry for every state change: lookup, lock, apply, then
// dispatch while still holding the lock so the next action sees the broadcast
// state. A finished session leaves the registry.
func (m *Manager) exec(ctx context.Context, id, action string, fn func(r *Room) ([]shared.Event, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r, err := m.Get(id)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return game.ErrSessionNotFound.Withf("session %s is closed", id)
	}

	evs, err := fn(r)
	if err != nil {
		log.Debug().Err(err).Str("session", id).Str("action", action).Msg("action rejected")
		return err
	}
	if len(evs) == 0 {
		// Nothing happened, e.g. no bot was due.
		return nil
	}
	m.dispatch(r, evs)

	if r.over {
		r.closed = true
		m.store.Remove(id)
		log.Info().Str("session", id).Str("winner", r.winner).Msg("game over")
	}
	return nil
}

func (m *Manager) dispatch(r *Room, evs []shared.Event) {
	evs = append(evs, r.stateEvents()...)
	for _, b := range m.broadcasters {
		for _, ev := range evs {
			b.Broadcast(r.ID, ev)
		}
	}
	if m.mirror != nil {
		m.mirror.Save(r.Snapshot())
	}
}

func (m *Manager) Move(ctx context.Context, id, playerID, destination string) (MoveResult, error) {
	var res MoveResult
	err := m.exec(ctx, id, shared.ActionMove, func(r *Room) (evs []shared.Event, err error) {
		res, err = r.Move(playerID, destination)
		return res.Events, err
	})
	return res, err
}

func (m *Manager) Suggest(ctx context.Context, id, playerID, suspect, weapon string) (SuggestResult, error) {
	var res SuggestResult
	err := m.exec(ctx, id, shared.ActionSuggest, func(r *Room) (evs []shared.Event, err error) {
		res, err = r.Suggest(playerID, suspect, weapon)
		return res.Events, err
	})
	return res, err
}

func (m *Manager) Disprove(ctx context.Context, id, playerID, card string) (DisproveResult, error) {
	var res DisproveResult
	err := m.exec(ctx, id, shared.ActionDisprove, func(r *Room) (evs []shared.Event, err error) {
		res, err = r.ChooseDisprovingCard(playerID, card)
		return res.Events, err
	})
	return res, err
}

func (m *Manager) Accuse(ctx context.Context, id, playerID, suspect, weapon, roomName string) (AccuseResult, error) {
	var res AccuseResult
	err := m.exec(ctx, id, shared.ActionAccuse, func(r *Room) (evs []shared.Event, err error) {
		res, err = r.Accuse(playerID, suspect, weapon, roomName)
		return res.Events, err
	})
	return res, err
}

func (m *Manager) EndTurn(ctx context.Context, id, playerID string) (EndTurnResult, error) {
	var res EndTurnResult
	err := m.exec(ctx, id, shared.ActionEndTurn, func(r *Room) (evs []shared.Event, err error) {
		res, err = r.EndTurn(playerID)
		return res.Events, err
	})
	return res, err
}
