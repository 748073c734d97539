package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/IlikeChooros/go-connect4/pkg/bench"
	"github.com/IlikeChooros/go-connect4/pkg/board"
	"github.com/IlikeChooros/go-connect4/pkg/mcts"
)

// ANSI colors of the pieces and results
const (
	colorX    = "1" // red
	colorO    = "3" // yellow
	colorWin  = "2" // green
	colorLoss = "1"
)

// Writes boards and statistics to the terminal, colors depend on the
// output's profile
type Renderer struct {
	out *termenv.Output
}

func NewRenderer(w io.Writer, opts ...termenv.OutputOption) *Renderer {
	return &Renderer{out: termenv.NewOutput(w, opts...)}
}

func (r *Renderer) Output() *termenv.Output {
	return r.out
}

func (r *Renderer) piece(p board.Player, highlight bool) string {
	style := r.out.String(p.String())
	switch p {
	case board.X:
		style = style.Foreground(r.out.Color(colorX))
	case board.O:
		style = style.Foreground(r.out.Color(colorO))
	default:
		style = style.Faint()
	}
	if highlight {
		style = style.Bold().Underline()
	}
	return style.String()
}

// Print the board, top row first, with column numbers above it.
// The last move (if not nil) is highlighted.
func (r *Renderer) Board(b board.Board, last *board.Move) {
	var sb strings.Builder
	for col := 0; col < board.Columns; col++ {
		if col > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d", col)
	}
	sb.WriteByte('\n')

	for row := board.Rows - 1; row >= 0; row-- {
		for col := 0; col < board.Columns; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			highlight := last != nil && last.Col == col && last.Row == row
			sb.WriteString(r.piece(b.At(col, row), highlight))
		}
		sb.WriteByte('\n')
	}
	r.out.WriteString(sb.String())
}

// Per-column visits and win rates of the search, then the totals
func (r *Renderer) SearchStats(result *mcts.SearchResult) {
	if result.Forced {
		fmt.Fprintf(r.out, "forced move: column %d\n", result.Column)
		return
	}

	for _, line := range result.Lines {
		text := fmt.Sprintf("column %d: visits %d, winrate %.3f", line.Move.Col, line.Visits, line.Eval)
		if line.Terminal {
			text += " (" + line.Outcome.String() + ")"
		}

		style := r.out.String(text)
		if line.Move.Col == result.Column {
			style = style.Bold()
		}
		fmt.Fprintln(r.out, style)
	}
	fmt.Fprintln(r.out, result.String())
}

// Final result of an arena run
func (r *Renderer) Summary(s bench.VersusSummaryInfo) {
	fmt.Fprintf(r.out, "games %d, workers %d\n", s.TotalGames, s.Workers)
	fmt.Fprintf(r.out, "%s: %s, %s: %s, draws %d\n",
		s.P1Name, r.wins(s.P1Wins, s.P2Wins),
		s.P2Name, r.wins(s.P2Wins, s.P1Wins),
		s.Draws)
	fmt.Fprintf(r.out, "first to move won %d, second to move won %d\n",
		s.FirstToMoveWins, s.SecondToMoveWins)
}

func (r *Renderer) wins(own, other int) string {
	style := r.out.String(fmt.Sprintf("%d wins", own))
	switch {
	case own > other:
		style = style.Foreground(r.out.Color(colorWin))
	case own < other:
		style = style.Foreground(r.out.Color(colorLoss))
	}
	return style.String()
}
