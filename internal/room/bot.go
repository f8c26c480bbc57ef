package room

import (
	"context"
	"time"

	"clueless/internal/config"
	"clueless/internal/game"
	"clueless/internal/shared"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

type BotConfig struct {
	Weights config.BotWeights
	// Delay is the pause between two bot actions so humans can follow along.
	Delay time.Duration
}

func DefaultBotConfig() BotConfig {
	return BotConfig{Weights: config.DefaultBotWeights()}
}

// PlayBots applies bot actions one by one until the session waits on a human,
// the game ends or ctx is cancelled. Bots go through the same action methods and
// gates as players.
func (m *Manager) PlayBots(ctx context.Context, id string) error {
	for {
		acted, err := m.BotStep(ctx, id)
		if err != nil || !acted {
			return err
		}
		if m.bots.Delay <= 0 {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(m.bots.Delay):
		}
	}
}

// TriggerBots starts PlayBots in the background unless it already runs for id.
func (m *Manager) TriggerBots(id string) {
	m.botMu.Lock()
	if m.botRunning[id] {
		m.botMu.Unlock()
		return
	}
	m.botRunning[id] = true
	m.botMu.Unlock()

	go func() {
		defer func() {
			m.botMu.Lock()
			delete(m.botRunning, id)
			m.botMu.Unlock()
		}()
		if err := m.PlayBots(m.ctx, id); err != nil && m.ctx.Err() == nil {
			log.Warn().Err(err).Str("session", id).Msg("bots stopped")
		}
	}()
}

// Shutdown stops every background bot loop.
func (m *Manager) Shutdown() {
	m.cancel()
}

// BotStep performs a single bot action if one is due. It reports false when the
// next actor is a human or the session is finished.
func (m *Manager) BotStep(ctx context.Context, id string) (bool, error) {
	r, err := m.Get(id)
	if err != nil {
		// The session left the registry after its last action.
		return false, nil
	}
	r.mu.Lock()
	closed := r.closed
	r.mu.Unlock()
	if closed {
		return false, nil
	}

	acted := false
	err = m.exec(ctx, id, "bot", func(r *Room) ([]shared.Event, error) {
		evs, ok, err := r.botAct(m.bots.Weights)
		acted = ok
		return evs, err
	})
	if err != nil {
		log.Warn().Err(err).Str("session", id).Msg("bot action failed")
	}
	return acted, err
}

// notebookFor rebuilds a player's deductions from what the session recorded for
// them: known cards and their own undisproved suggestions that scanned every
// other hand.
func (r *Room) notebookFor(p *Player) *game.Notebook {
	nb := game.NewNotebook(r.deck, p.Known)
	for _, rec := range r.history {
		if rec.Suggester != p.ID || !rec.Undisproved || len(rec.Skipped) > 0 {
			continue
		}
		s := game.Suggestion{
			Suggester: p.ID,
			Suspect:   game.Card{Kind: game.KindSuspect, Name: rec.Suspect},
			Weapon:    game.Card{Kind: game.KindWeapon, Name: rec.Weapon},
			Room:      game.Card{Kind: game.KindRoom, Name: rec.Room},
		}
		nb.ObserveUndisproved(s)
	}
	return nb
}

func (r *Room) botAct(w config.BotWeights) ([]shared.Event, bool, error) {
	if r.over {
		return nil, false, nil
	}

	if pd := r.pending; pd != nil {
		d := r.byID[pd.Disprover]
		if !d.Bot {
			return nil, false, nil
		}
		suggester := pd.Suggestion.Suggester
		card := game.PickDisproof(pd.Matching, func(c game.Card) bool {
			return slices.Contains(d.RevealedTo[c.Name], suggester)
		}, r.rng)
		res, err := r.ChooseDisprovingCard(d.ID, card.Name)
		return res.Events, true, err
	}

	p := r.CurrentPlayer()
	if p == nil || !p.Bot {
		return nil, false, nil
	}
	nb := r.notebookFor(p)
	ts := r.turnState

	if sol, ok := nb.Solution(); ok {
		res, err := r.Accuse(p.ID, sol.Suspect.Name, sol.Weapon.Name, sol.Room.Name)
		return res.Events, true, err
	}

	switch {
	case !ts.HasMoved:
		opts := r.moveOptions(p)
		if len(opts) == 0 {
			res, err := r.Move(p.ID, "")
			return res.Events, true, err
		}
		best, bestScore := opts[0], -1
		for _, i := range r.rng.Perm(len(opts)) {
			if s := nb.DestinationScore(r.board, opts[i].Ref(), w); s > bestScore {
				best, bestScore = opts[i], s
			}
		}
		res, err := r.Move(p.ID, best.ID)
		return res.Events, true, err

	case p.Location.IsRoom() && !ts.MadeSuggestion:
		suspect, weapon := nb.PickSuggestion(r.rng)
		res, err := r.Suggest(p.ID, suspect.Name, weapon.Name)
		return res.Events, true, err
	}

	res, err := r.EndTurn(p.ID)
	return res.Events, true, err
}
