// Package sim plays bot-only games through the session manager, the same path
// live sessions take, and checks the session invariants after every action.
package sim

import (
	"context"
	"errors"
	"fmt"

	"clueless/internal/config"
	"clueless/internal/game"
	"clueless/internal/room"
	"clueless/internal/store"
)

var ErrStalled = errors.New("simulation did not finish within the step limit")

type Config struct {
	Players  int
	MaxSteps int
	Weights  config.BotWeights
}

type Result struct {
	Seed       uint64        `json:"seed"`
	SessionID  string        `json:"session_id"`
	Steps      int           `json:"steps"`
	Winner     string        `json:"winner,omitempty"`
	Character  string        `json:"character,omitempty"`
	Solution   game.Solution `json:"solution"`
	Violations []string      `json:"violations,omitempty"`
}

type Runner struct {
	cfg     Config
	data    game.ReferenceData
	checker *Checker
	manager *room.Manager
}

func NewRunner(data game.ReferenceData, cfg Config) *Runner {
	if cfg.Players == 0 {
		cfg.Players = 6
	}
	if cfg.MaxSteps == 0 {
		cfg.MaxSteps = 5000
	}
	if cfg.Weights == (config.BotWeights{}) {
		cfg.Weights = config.DefaultBotWeights()
	}
	c := NewChecker()
	return &Runner{
		cfg:     cfg,
		data:    data,
		checker: c,
		manager: room.NewManager(store.NewMemoryStore(), data,
			room.WithMirror(c),
			room.WithBots(room.BotConfig{Weights: cfg.Weights}),
		),
	}
}

// Play runs one game with the given seed to completion.
func (r *Runner) Play(ctx context.Context, seed uint64) (Result, error) {
	if r.cfg.Players > len(r.data.Suspects) {
		return Result{}, game.ErrInvalidRoster.Withf("only %d characters available", len(r.data.Suspects))
	}
	roster := make(room.Roster, r.cfg.Players)
	for i := range roster {
		roster[i] = room.RosterEntry{
			PlayerID:  fmt.Sprintf("bot-%d", i+1),
			Name:      fmt.Sprintf("Bot %d", i+1),
			Character: r.data.Suspects[i],
			Bot:       true,
		}
	}
	id := fmt.Sprintf("sim-%d", seed)
	rx, err := r.manager.Create(id, roster, room.Options{Rand: game.NewRand(seed)})
	if err != nil {
		return Result{}, err
	}
	res := Result{Seed: seed, SessionID: id, Solution: rx.Solution()}

	for res.Steps < r.cfg.MaxSteps {
		acted, err := r.manager.BotStep(ctx, id)
		if err != nil {
			return res, fmt.Errorf("seed %d step %d: %w", seed, res.Steps, err)
		}
		if !acted {
			break
		}
		res.Steps++
	}
	res.Violations = r.checker.Violations(id)

	last, ok := r.checker.Last(id)
	if !ok || !last.IsOver {
		_ = r.manager.Remove(id)
		return res, fmt.Errorf("seed %d: %w", seed, ErrStalled)
	}
	res.Winner = last.Winner
	for _, p := range last.Players {
		if p.ID == last.Winner {
			res.Character = p.Character
		}
	}
	return res, nil
}
