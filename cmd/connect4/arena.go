package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"

	"github.com/IlikeChooros/go-connect4/pkg/bench"
	"github.com/IlikeChooros/go-connect4/pkg/console"
	"github.com/IlikeChooros/go-connect4/pkg/gamelog"
	"github.com/IlikeChooros/go-connect4/pkg/mcts"
)

type arenaCommand struct {
	games    int
	workers  int
	movetime time.Duration
	cycles   uint
	opponent string
	start    string
	threats  bool
	seed     uint64
	verbose  bool
	summary  string
	db       string
}

func (*arenaCommand) Name() string     { return "arena" }
func (*arenaCommand) Synopsis() string { return "Play the engine against another agent and report results" }
func (*arenaCommand) Usage() string {
	return `arena [flags]

Play a series of games between the MCTS engine and an opponent
(random or another MCTS engine), swapping the first move at random.
`
}

func (c *arenaCommand) SetFlags(flags *flag.FlagSet) {
	flags.IntVar(&c.games, "games", 10, "number of games to play")
	flags.IntVar(&c.workers, "workers", 2, "number of games played in parallel")
	flags.DurationVar(&c.movetime, "movetime", 0, "engine time per move")
	flags.UintVar(&c.cycles, "cycles", 1000, "engine cycles per move, used when movetime is 0")
	flags.StringVar(&c.opponent, "opponent", "random", "opponent agent: random or mcts")
	flags.StringVar(&c.start, "start", "", "starting position notation")
	flags.BoolVar(&c.threats, "threats", false, "let the first engine play immediate wins and blocks")
	flags.Uint64Var(&c.seed, "seed", 0, "random seed (0 uses the current time)")
	flags.BoolVar(&c.verbose, "v", false, "print every move")
	flags.StringVar(&c.summary, "summary", "", "write summary JSON file")
	flags.StringVar(&c.db, "db", "", "save the games into this sqlite database")
}

func (c *arenaCommand) opponentFactory() (bench.AgentFactory, error) {
	switch c.opponent {
	case "random":
		return func() bench.Agent {
			return bench.NewRandomAgent(mcts.SeedGeneratorFn())
		}, nil
	case "mcts":
		options := budgetOptions(c.movetime, c.cycles, false)
		return func() bench.Agent {
			return bench.NewEngineAgent("mcts-plain", options...)
		}, nil
	}
	return nil, fmt.Errorf("unknown opponent %q", c.opponent)
}

func (c *arenaCommand) Execute(ctx context.Context, flags *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.seed != 0 {
		// workers seed their agents concurrently
		var seed atomic.Uint64
		seed.Store(c.seed)
		mcts.SetSeedGeneratorFn(func() uint64 {
			return seed.Add(1)
		})
	}

	opponent, err := c.opponentFactory()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	start, toMove, err := startPosition(c.start)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	options := budgetOptions(c.movetime, c.cycles, c.threats)
	engine := func() bench.Agent {
		return bench.NewEngineAgent("mcts", options...)
	}

	arena := bench.NewVersusArena(engine, opponent).
		WithContext(ctx).
		WithStart(start, toMove)
	arena.Setup(c.games, c.workers)

	if c.db != "" {
		repo, err := gamelog.Open(c.db)
		if err != nil {
			log.Error().Err(err).Str("db", c.db).Msg("open game log")
			return subcommands.ExitFailure
		}
		defer repo.Close()
		arena.WithRecorder(repo)
	}

	renderer := console.NewRenderer(os.Stdout)
	log.Info().Msgf("starting %d games on %d workers: mcts vs %s", c.games, c.workers, c.opponent)
	summary, err := arena.Run(console.NewArenaListener(renderer, c.verbose))
	if err != nil {
		log.Error().Err(err).Msg("arena")
		return subcommands.ExitFailure
	}

	if c.summary != "" {
		bs, err := json.MarshalIndent(&summary, "", "  ")
		if err == nil {
			err = os.WriteFile(c.summary, bs, 0644)
		}
		if err != nil {
			log.Error().Err(err).Str("path", c.summary).Msg("write summary")
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}
