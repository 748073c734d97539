package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"

	"github.com/IlikeChooros/go-connect4/pkg/board"
	"github.com/IlikeChooros/go-connect4/pkg/console"
	"github.com/IlikeChooros/go-connect4/pkg/game"
	"github.com/IlikeChooros/go-connect4/pkg/gamelog"
	"github.com/IlikeChooros/go-connect4/pkg/mcts"
)

type playCommand struct {
	movetime time.Duration
	cycles   uint
	human    string
	start    string
	threats  bool
	verbose  bool
	db       string
}

func (*playCommand) Name() string     { return "play" }
func (*playCommand) Synopsis() string { return "Play connect four against the engine" }
func (*playCommand) Usage() string {
	return `play [flags]

Play connect four on the command line against the MCTS engine.
Enter the column number (0-6) to drop a piece.
`
}

func (c *playCommand) SetFlags(flags *flag.FlagSet) {
	flags.DurationVar(&c.movetime, "movetime", time.Second, "engine time per move")
	flags.UintVar(&c.cycles, "cycles", 0, "engine cycles per move, used when movetime is 0")
	flags.StringVar(&c.human, "human", "x", "side of the human player (x moves first)")
	flags.StringVar(&c.start, "start", "", "starting position notation")
	flags.BoolVar(&c.threats, "threats", false, "play immediate wins and blocks without searching")
	flags.BoolVar(&c.verbose, "v", false, "print the engine's statistics")
	flags.StringVar(&c.db, "db", "", "save the game into this sqlite database")
}

// Reads columns from the input, asking again until it gets a number
type humanPlayer struct {
	in  *bufio.Reader
	out io.Writer
}

func (h *humanPlayer) column(toMove board.Player) (int, error) {
	for {
		fmt.Fprintf(h.out, "%s> ", toMove)
		line, err := h.in.ReadString('\n')
		if err != nil {
			return -1, err
		}
		line = strings.TrimSpace(line)
		col, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintf(h.out, "Error - column %q is not valid\n", line)
			continue
		}
		return col, nil
	}
}

func (c *playCommand) Execute(ctx context.Context, flags *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	humanSide, err := board.ParsePlayer(c.human)
	if err != nil || humanSide == board.None {
		fmt.Fprintf(os.Stderr, "invalid side %q\n", c.human)
		return subcommands.ExitUsageError
	}
	start, toMove, err := startPosition(c.start)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	renderer := console.NewRenderer(os.Stdout)
	engine := mcts.NewEngine(budgetOptions(c.movetime, c.cycles, c.threats)...)
	engine.SetContext(ctx)
	human := &humanPlayer{in: bufio.NewReader(os.Stdin), out: os.Stdout}

	g := game.FromBoard(start, toMove)
	g.SetReporter(mcts.ReporterFunc(func(msg string) {
		fmt.Fprintln(os.Stdout, msg)
	}))

	if err := c.loop(ctx, g, engine, human, humanSide, renderer); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stdout, "\ngame abandoned")
		} else {
			log.Error().Err(err).Msg("play")
			return subcommands.ExitFailure
		}
	}

	if c.db != "" {
		playerX, playerO := "human", "mcts"
		if humanSide == board.O {
			playerX, playerO = playerO, playerX
		}
		if err := saveGame(c.db, gamelog.FromGame(g, start.Notation(toMove), playerX, playerO)); err != nil {
			log.Error().Err(err).Str("db", c.db).Msg("save game")
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}

func (c *playCommand) loop(ctx context.Context, g *game.Game, engine *mcts.Engine, human *humanPlayer, humanSide board.Player, renderer *console.Renderer) error {
	for !g.Over() {
		last, ok := g.LastMove()
		if ok {
			renderer.Board(g.Board(), &last)
		} else {
			renderer.Board(g.Board(), nil)
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if g.Turn() == humanSide {
			col, err := human.column(g.Turn())
			if err != nil {
				return err
			}
			// invalid columns are reported by the game, ask again
			_ = g.Play(col)
			continue
		}

		result, err := engine.Search(g.Board(), g.Turn())
		if err != nil {
			return err
		}
		if c.verbose {
			renderer.SearchStats(result)
		}
		fmt.Fprintf(os.Stdout, "mcts plays column %d\n", result.Column)
		if err := g.Play(result.Column); err != nil {
			return err
		}
	}

	last, _ := g.LastMove()
	renderer.Board(g.Board(), &last)
	switch g.Winner() {
	case board.None:
		fmt.Fprintln(os.Stdout, "Game over! Draw.")
	case humanSide:
		fmt.Fprintln(os.Stdout, "Game over! You win.")
	default:
		fmt.Fprintln(os.Stdout, "Game over! mcts wins.")
	}
	return nil
}

func saveGame(path string, rec gamelog.Record) error {
	repo, err := gamelog.Open(path)
	if err != nil {
		return err
	}
	defer repo.Close()
	return repo.InsertGame(rec)
}
