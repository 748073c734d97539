package mcts

import "github.com/IlikeChooros/go-connect4/pkg/board"

// Statistics of a single root child
type SearchLine struct {
	Move     board.Move
	Visits   int
	Eval     float64
	Terminal bool
	Outcome  board.Outcome
}

type ListenerTreeStats struct {
	Maxdepth   int
	Cycles     int
	TimeMs     int
	Cps        uint32
	Size       uint32
	Lines      []SearchLine
	Pv         []board.Move
	StopReason StopReason
}

// Convert the tree and engine counters to 'ListenerTreeStats'
func toListenerStats(engine *Engine, tree *Tree) ListenerTreeStats {
	children := tree.Children(tree.Root())
	lines := make([]SearchLine, len(children))
	for i, child := range children {
		lines[i] = SearchLine{
			Move:     child.Move,
			Visits:   child.Visits,
			Eval:     child.AvgReward(),
			Terminal: child.Terminal(),
			Outcome:  child.Outcome,
		}
	}

	return ListenerTreeStats{
		Lines:      lines,
		Pv:         tree.Pv(engine.policy),
		Maxdepth:   tree.MaxDepth(),
		Cycles:     tree.Root().Visits,
		TimeMs:     int(engine.Limiter.Elapsed()),
		Cps:        engine.Cps(),
		Size:       uint32(tree.Size()),
		StopReason: engine.Limiter.StopReason(),
	}
}

// Listener function callback, will recieve current tree statistics, like
// max depth of tree, number of iterations so far
type ListenerFunc func(ListenerTreeStats)

type StatsListener struct {
	// called when 'max depth' increases
	onDepth ListenerFunc

	// called every N full iterations
	onCycle ListenerFunc
	nCycles int // call 'onCycle' every N cycles

	// called when the search stops
	onStop ListenerFunc
}

func NewStatsListener() StatsListener {
	return StatsListener{nCycles: 1}
}

// Attach new on max depth change callback
func (listener *StatsListener) OnDepth(onDepth ListenerFunc) *StatsListener {
	listener.onDepth = onDepth
	return listener
}

// Attach new on iteration increase callback, this will slow down the search,
// because of pv evaluation, so use it with a large cycle interval
func (listener *StatsListener) OnCycle(onCycle ListenerFunc) *StatsListener {
	listener.onCycle = onCycle
	return listener
}

func (listener *StatsListener) SetCycleInterval(n int) *StatsListener {
	if n < 1 {
		n = 1
	}
	listener.nCycles = n
	return listener
}

// Attach 'on search end' callback, makes 'StopReason' available in the stats
func (listener *StatsListener) OnStop(onStop ListenerFunc) *StatsListener {
	listener.onStop = onStop
	return listener
}

func (listener *StatsListener) invokeCycle(engine *Engine, tree *Tree) {
	if listener.onCycle != nil && tree.Root().Visits%max(listener.nCycles, 1) == 0 {
		listener.onCycle(toListenerStats(engine, tree))
	}
}

func (listener *StatsListener) invokeDepth(engine *Engine, tree *Tree) {
	if listener.onDepth != nil {
		listener.onDepth(toListenerStats(engine, tree))
	}
}

func (listener *StatsListener) invokeStop(engine *Engine, tree *Tree) {
	if listener.onStop != nil {
		listener.onStop(toListenerStats(engine, tree))
	}
}
