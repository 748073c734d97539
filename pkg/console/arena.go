package console

import (
	"fmt"
	"sync"

	"github.com/IlikeChooros/go-connect4/pkg/bench"
)

// Arena listener printing one line per finished game
type ArenaListener struct {
	renderer *Renderer
	// also print every move
	verbose bool
	mu      sync.Mutex
}

func NewArenaListener(renderer *Renderer, verbose bool) *ArenaListener {
	return &ArenaListener{renderer: renderer, verbose: verbose}
}

func (l *ArenaListener) OnMoveMade(info bench.VersusWorkerInfo) {
	if !l.verbose || len(info.Moves) == 0 {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	last := info.Moves[len(info.Moves)-1]
	fmt.Fprintf(l.renderer.out, "[worker %d] move %d: column %d\n", info.WorkerID, info.GameMoveNum, last.Col)
	l.renderer.Board(info.Board, &last)
}

func (l *ArenaListener) OnFinishedGame(info bench.VersusWorkerInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := l.renderer.out
	result := out.String("draw")
	if !info.Outcome.IsDraw {
		winner := info.P2Name + " (p2)"
		if info.P1WentFirst == info.Outcome.FirstPlayerWon {
			winner = info.P1Name + " (p1)"
		}
		result = out.String(winner + " won").Bold()
	}

	fmt.Fprintf(out, "[worker %d] game %d/%d: %s in %d moves | p1 %d, p2 %d, draws %d\n",
		info.WorkerID, info.FinishedGames, info.NGames, result, info.GameMoveNum,
		info.P1Wins, info.P2Wins, info.Draws)
}

func (l *ArenaListener) OnFinishedWork(info bench.VersusWorkerInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.renderer.out, "[worker %d] finished %d games\n", info.WorkerID, info.FinishedGames)
}

func (l *ArenaListener) Summary(summary bench.VersusSummaryInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.renderer.Summary(summary)
}
