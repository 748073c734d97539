package mcts

import "math"

// UCT score of the node, parent is nil for the root
//
//	UCT : reward/visits + C * sqrt(ln(parent_visits + eps)/visits)
//
// Both visit counts are at least 1, so every node has a finite score.
// Rewards are always from the reference player's perspective.
func Score(node, parent *Node) float64 {
	selfVisits := float64(max(node.Visits, 1))
	exploitation := float64(node.Reward) / selfVisits

	parentVisits := selfVisits
	if parent != nil {
		parentVisits = float64(max(parent.Visits, 1))
	}

	exploration := ExplorationParam * math.Sqrt(math.Log(parentVisits+Epsilon)/selfVisits)
	return exploitation + exploration
}
