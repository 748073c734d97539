package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"

	"github.com/IlikeChooros/go-connect4/pkg/board"
	"github.com/IlikeChooros/go-connect4/pkg/console"
	"github.com/IlikeChooros/go-connect4/pkg/mcts"
)

type analyzeCommand struct {
	movetime time.Duration
	cycles   uint
	threats  bool
	seed     uint64
	interval int
	policy   string
}

func (*analyzeCommand) Name() string     { return "analyze" }
func (*analyzeCommand) Synopsis() string { return "Search a position and print per-column statistics" }
func (*analyzeCommand) Usage() string {
	return `analyze [flags] NOTATION

Run a single search on the position and print the visits and win rate
of every column. The notation lists rows top to bottom separated by '/',
digits for runs of empty cells, followed by the side to move:

  analyze "7/7/7/7/7/ooo4 x"
`
}

func (c *analyzeCommand) SetFlags(flags *flag.FlagSet) {
	flags.DurationVar(&c.movetime, "movetime", time.Second, "search time")
	flags.UintVar(&c.cycles, "cycles", 0, "search cycles, used when movetime is 0")
	flags.BoolVar(&c.threats, "threats", false, "play immediate wins and blocks without searching")
	flags.Uint64Var(&c.seed, "seed", 0, "random seed (0 uses the current time)")
	flags.IntVar(&c.interval, "interval", 0, "log progress every n cycles")
	flags.StringVar(&c.policy, "policy", "visits", "final move choice: visits or winrate")
}

func (c *analyzeCommand) Execute(ctx context.Context, flags *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if flags.NArg() == 0 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	b, toMove, err := board.Parse(strings.Join(flags.Args(), " "))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	policy, err := parsePolicy(c.policy)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	options := budgetOptions(c.movetime, c.cycles, c.threats)
	options = append(options, mcts.WithBestChildPolicy(policy))
	if c.seed != 0 {
		options = append(options, mcts.WithSeed(c.seed))
	}
	if c.interval > 0 {
		listener := mcts.NewStatsListener()
		listener.
			OnCycle(func(stats mcts.ListenerTreeStats) {
				log.Info().
					Int("cycles", stats.Cycles).
					Int("depth", stats.Maxdepth).
					Uint32("cps", stats.Cps).
					Msgf("pv %v", stats.Pv)
			}).
			SetCycleInterval(c.interval)
		options = append(options, mcts.WithListener(listener))
	}

	engine := mcts.NewEngine(options...)
	engine.SetContext(ctx)

	renderer := console.NewRenderer(os.Stdout)
	renderer.Board(b, nil)
	fmt.Fprintf(os.Stdout, "%s to move\n", toMove)

	result, err := engine.Search(b, toMove)
	if err != nil {
		log.Error().Err(err).Msg("analyze")
		return subcommands.ExitFailure
	}
	renderer.SearchStats(result)
	return subcommands.ExitSuccess
}
