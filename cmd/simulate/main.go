package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"clueless/internal/config"
	"clueless/internal/game"
	"clueless/internal/sim"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "simulate",
		Usage: "play bot-only games and check the session invariants",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "players", Aliases: []string{"p"}, Value: 6, Usage: "bots per game (2-6)"},
			&cli.IntFlag{Name: "games", Aliases: []string{"n"}, Value: 10, Usage: "number of games"},
			&cli.Uint64Flag{Name: "seed", Value: 1, Usage: "seed of the first game, incremented per game"},
			&cli.IntFlag{Name: "max-steps", Value: 5000, Usage: "abort a game after this many bot actions"},
			&cli.StringFlag{Name: "board", EnvVars: []string{"BOARD_FILE"}, Usage: "reference data YAML (default: embedded board)"},
			&cli.BoolFlag{Name: "json", Usage: "print one JSON result per line"},
		},
		Action: run,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("simulate")
	}
}

func run(c *cli.Context) error {
	cfg := config.Load()
	config.SetupLogger(cfg)

	data, err := game.DefaultReferenceData()
	if path := c.String("board"); path != "" {
		data, err = game.LoadReferenceData(path)
	}
	if err != nil {
		return err
	}

	runner := sim.NewRunner(data, sim.Config{
		Players:  c.Int("players"),
		MaxSteps: c.Int("max-steps"),
		Weights:  cfg.BotWeights,
	})

	wins := map[string]int{}
	failed := 0
	enc := json.NewEncoder(os.Stdout)
	for i := 0; i < c.Int("games"); i++ {
		seed := c.Uint64("seed") + uint64(i)
		res, err := runner.Play(c.Context, seed)
		if err != nil {
			failed++
			log.Error().Err(err).Uint64("seed", seed).Msg("game failed")
			continue
		}
		if len(res.Violations) > 0 {
			failed++
			for _, v := range res.Violations {
				log.Error().Uint64("seed", seed).Msg(v)
			}
		}
		wins[res.Character]++
		if c.Bool("json") {
			if err := enc.Encode(res); err != nil {
				return err
			}
			continue
		}
		fmt.Printf("seed %-4d winner %-18s steps %d\n", seed, res.Character, res.Steps)
	}

	if !c.Bool("json") {
		fmt.Println("wins:")
		for _, s := range data.Suspects {
			fmt.Printf("  %-18s %d\n", s, wins[s])
		}
	}
	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d game(s) failed", failed), 1)
	}
	return nil
}
