package mcts

// Other types, which didn't fit to MCTS or Node files

// Reward of a cycle, from the reference player's perspective:
// 1 is a win, 0.5 a draw, 0 a loss
type Result float64
type BestChildPolicy int
type SeedGeneratorFnType func() uint64
