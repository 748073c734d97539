package mcts

import (
	"fmt"
	"math"

	"github.com/IlikeChooros/go-connect4/pkg/board"
)

// Node chosen by the selection, either a realized node, or a potential move
// of 'Parent' that isn't part of the tree yet
type Frontier struct {
	Node      int32
	Parent    int32
	Move      board.Move
	Synthetic bool
}

// Actual search loop, runs cycles of:
//
// 1. selection - to choose the most promising node
//
// 2. expansion - to add that node to the tree
//
// 3. rollout - to simulate the game, and get the reward
//
// 4. backpropagate - to increment counters up to the root
//
// Until the limiter says stop, it's checked only between the cycles.
func (e *Engine) search(tree *Tree) error {
	for e.Limiter.Ok(uint32(tree.Size()), uint32(tree.MaxDepth()), uint32(e.cycles)) {
		depth := tree.MaxDepth()

		if err := e.Cycle(tree); err != nil {
			return err
		}

		// Increment cycle count and store the cps
		e.cycles++
		e.cps = uint32(e.cycles * 1000 / int(e.Limiter.Elapsed()))

		e.listener.invokeCycle(e, tree)
		if tree.MaxDepth() > depth {
			e.listener.invokeDepth(e, tree)
		}
	}

	e.Limiter.EvaluateStopReason(uint32(tree.Size()), uint32(tree.MaxDepth()), uint32(e.cycles))
	return nil
}

// Run a single selection, expansion, simulation and backpropagation pass
func (e *Engine) Cycle(tree *Tree) error {
	frontier := e.Selection(tree)

	index, err := e.Expansion(tree, frontier)
	if err != nil {
		return err
	}

	tree.backpropagate(index, e.Rollout(tree, index))
	return nil
}

// Descend from the root to the most promising frontier. Every non-terminal
// child is scored, together with the first potential move (all potential
// moves are unvisited, so they share the same score). A potential move is
// chosen only if it scores strictly higher than the best child.
func (e *Engine) Selection(tree *Tree) Frontier {
	current := int32(0)

	for {
		node := tree.Node(current)
		if !node.Expanded() {
			return Frontier{Node: current, Parent: node.Parent, Move: node.Move}
		}

		best := noParent
		bestScore := math.Inf(-1)
		for _, index := range node.Children {
			child := tree.Node(index)
			if child.Terminal() {
				continue
			}
			if score := Score(child, node); score > bestScore {
				best, bestScore = index, score
			}
		}

		if len(node.Potential) > 0 {
			synthetic := Node{Parent: current}
			if best == noParent || Score(&synthetic, node) > bestScore {
				return Frontier{Node: noParent, Parent: current, Move: node.Potential[0], Synthetic: true}
			}
		}

		if best == noParent {
			// Every child is terminal, pick the best of them, it will
			// supply its own outcome as the reward
			for _, index := range node.Children {
				if score := Score(tree.Node(index), node); score > bestScore {
					best, bestScore = index, score
				}
			}
			node := tree.Node(best)
			return Frontier{Node: best, Parent: node.Parent, Move: node.Move}
		}

		current = best
	}
}

// Turn the frontier into a realized node, returns its index
func (e *Engine) Expansion(tree *Tree, frontier Frontier) (int32, error) {
	if frontier.Synthetic {
		return tree.expand(frontier.Parent, frontier.Move)
	}

	node := tree.Node(frontier.Node)
	switch {
	case node.Terminal():
		return frontier.Node, nil
	case len(node.Potential) > 0:
		move := node.Potential[e.rand.Intn(len(node.Potential))]
		return tree.expand(frontier.Node, move)
	}

	e.report(fmt.Sprintf("search: in-play node %v has no moves to expand", node))
	e.logger.Error().
		Str("board", node.Board.Notation(node.Turn.Other())).
		Int("depth", node.Depth).
		Msg("empty frontier")
	return noParent, fmt.Errorf("expand node at depth %d: %w", node.Depth, ErrEmptyFrontier)
}

// Reward of the node, terminal nodes return their own outcome,
// otherwise a random game is played from the node's position
func (e *Engine) Rollout(tree *Tree, index int32) Result {
	node := tree.Node(index)
	if node.Terminal() {
		return Result(node.Outcome.Reward())
	}

	b := node.Board
	turn := node.Turn
	for {
		moves := b.LegalMoves()
		if len(moves) == 0 {
			return Result(board.Draw.Reward())
		}

		turn = turn.Other()
		move := moves[e.rand.Intn(len(moves))]
		// move comes from LegalMoves, the cell is known to be empty
		b[move.Col][move.Row] = turn

		if outcome := board.Classify(b, move, turn, tree.Reference()); outcome.Terminal() {
			return Result(outcome.Reward())
		}
	}
}
