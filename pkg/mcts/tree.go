package mcts

import (
	"slices"

	"github.com/IlikeChooros/go-connect4/pkg/board"
)

// Search tree, nodes live in a single arena and refer to each other by index.
// Outcomes are evaluated for the reference player, fixed for the tree's lifetime.
type Tree struct {
	nodes     []Node
	reference board.Player
	maxdepth  int
}

// Create a tree with a root for the given position, 'toMove' becomes the reference player
func NewTree(b board.Board, toMove board.Player) *Tree {
	tree := &Tree{
		nodes:     make([]Node, 1, 256),
		reference: toMove,
	}
	tree.nodes[0] = Node{
		Turn:      toMove.Other(),
		Outcome:   board.InPlay,
		Parent:    noParent,
		Potential: b.LegalMoves(),
		Board:     b,
	}
	return tree
}

func (t *Tree) Root() *Node {
	return &t.nodes[0]
}

// Get node by its index, the pointer is valid until the next expansion
func (t *Tree) Node(index int32) *Node {
	return &t.nodes[index]
}

// Get the parent of the node, nil for the root
func (t *Tree) Parent(node *Node) *Node {
	if node.Parent == noParent {
		return nil
	}
	return &t.nodes[node.Parent]
}

func (t *Tree) Reference() board.Player {
	return t.reference
}

// Number of nodes in the tree
func (t *Tree) Size() int {
	return len(t.nodes)
}

// Maximum depth of a realized node
func (t *Tree) MaxDepth() int {
	return t.maxdepth
}

// Realize the potential move of the parent as a new child, returns child's index
func (t *Tree) expand(parentIndex int32, move board.Move) (int32, error) {
	parent := &t.nodes[parentIndex]
	at := slices.Index(parent.Potential, move)
	if at < 0 {
		return noParent, ErrNotPotential
	}

	turn := parent.Turn.Other()
	b, err := parent.Board.Place(move, turn)
	if err != nil {
		return noParent, err
	}

	child := Node{
		Move:      move,
		Turn:      turn,
		Outcome:   board.Classify(b, move, turn, t.reference),
		Depth:     parent.Depth + 1,
		Parent:    parentIndex,
		Potential: b.LegalMoves(),
		Board:     b,
	}

	index := int32(len(t.nodes))
	parent.Potential = slices.Delete(parent.Potential, at, at+1)
	parent.Children = append(parent.Children, index)
	// 'parent' may point to the old arena after this
	t.nodes = append(t.nodes, child)
	t.maxdepth = max(t.maxdepth, child.Depth)
	return index, nil
}

// Add the reward and a visit to every node from 'index' up to the root
func (t *Tree) backpropagate(index int32, reward Result) {
	for index != noParent {
		node := &t.nodes[index]
		node.Visits++
		node.Reward += reward
		index = node.Parent
	}
}

// Realized children of the node, sorted by column
func (t *Tree) Children(node *Node) []*Node {
	children := make([]*Node, len(node.Children))
	for i, index := range node.Children {
		children[i] = &t.nodes[index]
	}
	slices.SortFunc(children, func(a, b *Node) int {
		return a.Move.Col - b.Move.Col
	})
	return children
}

// Return best child, based on the policy, nil if the node has no children.
// Ties go to the lower column.
func (t *Tree) BestChild(node *Node, policy BestChildPolicy) *Node {
	var bestChild *Node

	switch policy {
	case BestChildMostVisits:
		maxVisits := -1
		for _, child := range t.Children(node) {
			if child.Visits > maxVisits {
				maxVisits = child.Visits
				bestChild = child
			}
		}
	case BestChildWinRate:
		// the child we choose should have at least 10 visits, unless none does
		const minVisitsThreshold = 10

		bestWinRate := -1.0
		for _, child := range t.Children(node) {
			if child.Visits < minVisitsThreshold {
				continue
			}
			if wr := child.AvgReward(); wr > bestWinRate {
				bestWinRate = wr
				bestChild = child
			}
		}
		if bestChild == nil {
			return t.BestChild(node, BestChildMostVisits)
		}
	}

	return bestChild
}

// Principal variation, following the best children from the root
func (t *Tree) Pv(policy BestChildPolicy) []board.Move {
	pv := make([]board.Move, 0, t.maxdepth)
	node := t.BestChild(t.Root(), policy)
	for node != nil {
		pv = append(pv, node.Move)
		node = t.BestChild(node, policy)
	}
	return pv
}
