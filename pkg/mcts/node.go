package mcts

import (
	"fmt"

	"github.com/IlikeChooros/go-connect4/pkg/board"
)

// One ply of hypothetical play, stored in the tree's arena.
// Parent and Children are indices into the same arena.
type Node struct {
	// Move that produced this node, zero value for the root
	Move board.Move
	// Player occupying Move's cell
	Turn    board.Player
	Outcome board.Outcome
	Visits  int
	Reward  Result
	Depth   int
	Parent  int32
	// Realized children, in the order they were expanded
	Children []int32
	// Legal moves not realized as children yet, in column order
	Potential []board.Move
	Board     board.Board
}

func (node *Node) Terminal() bool {
	return node.Outcome.Terminal()
}

// Wheter the node has realized children
func (node *Node) Expanded() bool {
	return len(node.Children) > 0
}

// Average reward for this node
func (node *Node) AvgReward() float64 {
	if node.Visits == 0 {
		return 0
	}
	return float64(node.Reward) / float64(node.Visits)
}

func (node *Node) String() string {
	return fmt.Sprintf("Node{move=%v, turn=%v, outcome=%v, n=%d, q=%.1f}",
		node.Move, node.Turn, node.Outcome, node.Visits, node.Reward)
}
