// Package uct implements Monte-Carlo Tree Search (the UCT algorithm) for
// two-player, perfect-information, zero-sum, deterministic games whose
// results are normalized to [0.0, 1.0].
//
// The package owns the search tree, transposition sharing, and four
// parallelization strategies (Search, SearchLeafParallel,
// SearchRootParallel, SearchTreeParallel). It knows nothing about any
// particular game beyond the GameState contract; see examples/nim,
// examples/othello and examples/gobang for concrete implementations.
package uct
