package game

import (
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/IlikeChooros/go-connect4/pkg/board"
	"github.com/IlikeChooros/go-connect4/pkg/mcts"
)

var ErrGameOver = errors.New("game is over")

// Live game, owned by the turn loop. Engines only receive copies of its board.
type Game struct {
	board    board.Board
	first    board.Player
	turn     board.Player
	history  []board.Move
	outcome  board.Outcome
	winner   board.Player
	reporter mcts.Reporter
}

// New game on an empty board, X moves first
func New() *Game {
	return FromBoard(board.Board{}, board.X)
}

// Continue the game from given position
func FromBoard(b board.Board, toMove board.Player) *Game {
	g := &Game{
		board:    b,
		first:    toMove,
		turn:     toMove,
		history:  make([]board.Move, 0, board.Columns*board.Rows),
		reporter: mcts.LogReporter(log.Logger),
	}
	g.evaluate()
	return g
}

// Set the sink for invalid input notices
func (g *Game) SetReporter(reporter mcts.Reporter) {
	if reporter != nil {
		g.reporter = reporter
	}
}

// Drop a piece of the side to move into the column. On error the
// game is left unchanged and the reason is reported.
func (g *Game) Play(col int) error {
	if g.Over() {
		g.reporter.Report("Error - the game is over")
		return ErrGameOver
	}

	next, move, err := g.board.Drop(col, g.turn)
	if err != nil {
		g.reporter.Report(fmt.Sprintf("Error - column %d is not valid", col))
		return err
	}

	g.board = next
	g.history = append(g.history, move)
	g.outcome = board.Classify(next, move, g.turn, g.turn)
	if g.outcome == board.Win {
		g.winner = g.turn
	}
	g.turn = g.turn.Other()
	return nil
}

// Take back the last move
func (g *Game) Undo() bool {
	if len(g.history) == 0 {
		return false
	}

	last := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	g.board[last.Col][last.Row] = board.None
	g.turn = g.turn.Other()
	g.evaluate()
	return true
}

// Recompute the outcome from the whole board
func (g *Game) evaluate() {
	g.winner = board.Winner(g.board)
	switch {
	case g.winner != board.None:
		g.outcome = board.Win
	case g.board.Full():
		g.outcome = board.Draw
	default:
		g.outcome = board.InPlay
	}
}

// Copy of the current board
func (g *Game) Board() board.Board {
	return g.board
}

func (g *Game) Turn() board.Player {
	return g.turn
}

// Player who moved first in this game
func (g *Game) First() board.Player {
	return g.first
}

// Copy of the moves played so far
func (g *Game) Moves() []board.Move {
	return slices.Clone(g.history)
}

// Last move, false if no move was played
func (g *Game) LastMove() (board.Move, bool) {
	if len(g.history) == 0 {
		return board.Move{}, false
	}
	return g.history[len(g.history)-1], true
}

// InPlay, Win (someone connected four) or Draw
func (g *Game) Outcome() board.Outcome {
	return g.outcome
}

// Winner of the game, None if there isn't one (yet)
func (g *Game) Winner() board.Player {
	return g.winner
}

func (g *Game) Over() bool {
	return g.outcome.Terminal()
}

// Columns of the moves, as a string of digits
func (g *Game) ColumnString() string {
	buf := make([]byte, len(g.history))
	for i, m := range g.history {
		buf[i] = byte('0' + m.Col)
	}
	return string(buf)
}

func (g *Game) Clone() *Game {
	clone := *g
	clone.history = append(make([]board.Move, 0, cap(g.history)), g.history...)
	return &clone
}
