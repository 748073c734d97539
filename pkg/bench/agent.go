package bench

import (
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"github.com/IlikeChooros/go-connect4/pkg/board"
	"github.com/IlikeChooros/go-connect4/pkg/mcts"
)

// Anything that picks a column for the side to move
type Agent interface {
	Name() string
	SelectMove(b board.Board, toMove board.Player) (int, error)
}

// Creates a fresh agent, every worker owns its agents
type AgentFactory func() Agent

// MCTS engine with a name
type EngineAgent struct {
	*mcts.Engine
	name string
}

func NewEngineAgent(name string, options ...mcts.Option) *EngineAgent {
	// the arena reports its own results, keep the engine quiet
	options = append([]mcts.Option{
		mcts.WithReporter(mcts.LogReporter(zerolog.Nop())),
		mcts.WithSeed(mcts.SeedGeneratorFn()),
	}, options...)
	return &EngineAgent{Engine: mcts.NewEngine(options...), name: name}
}

func (a *EngineAgent) Name() string {
	return a.name
}

// Plays uniformly random legal moves
type RandomAgent struct {
	rand *rand.Rand
}

func NewRandomAgent(seed uint64) *RandomAgent {
	return &RandomAgent{rand: rand.New(rand.NewSource(seed))}
}

func (a *RandomAgent) Name() string {
	return "random"
}

func (a *RandomAgent) SelectMove(b board.Board, toMove board.Player) (int, error) {
	moves := b.LegalMoves()
	if len(moves) == 0 {
		return -1, mcts.ErrNoMoveAvailable
	}
	return moves[a.rand.Intn(len(moves))].Col, nil
}
