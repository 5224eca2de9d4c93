package uct

import (
	"math/rand"
	"sync/atomic"
)

// SearchTreeParallel runs cfg.Workers goroutines against a single shared
// tree, each doing its own Select/Expand/Rollout/Backpropagate iterations
// concurrently. Correctness rests on TreeNode's own locking (node.go) plus
// the table lock: while workers run, the table lock is only held inside
// SearchTree.getOrCreate and never while a node lock is held, and no node
// lock is ever held while acquiring another node's lock. CleanSubtree, which
// runs after the workers have joined, takes node locks while holding the
// table lock: always table before node, never the reverse.
// UCB1 reads Wins/Visits unlocked, exactly as in the sequential driver.
func SearchTreeParallel[M comparable](root GameState[M], tree *SearchTree[M], cfg Config, prune bool) (M, SearchReport[M]) {
	owned := tree == nil
	if owned {
		tree = NewSearchTree[M]()
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	rootNode := &SearchNode[M]{Node: tree.GetNode(root)}
	seed := SeedFunc()

	share := cfg.IterMax / workers
	remainder := cfg.IterMax % workers

	var maxDepth int64
	var generated int64

	runWorkers(workers, func(w int) {
		iters := share
		if w < remainder {
			iters++
		}
		rnd := rand.New(rand.NewSource(seed + int64(w)*0x2545F4914F6CDD1D))

		for i := 0; i < iters; i++ {
			leaf, expanded, isNew := selectAndExpand(tree, rootNode, rnd, cfg.Exploration)
			if isNew {
				atomic.AddInt64(&generated, 1)
			}
			if d := int64(leaf.Depth); d > atomic.LoadInt64(&maxDepth) {
				// Approximate max: a benign race under concurrent writers is
				// acceptable since this value is reported, not relied on for
				// correctness.
				atomic.StoreInt64(&maxDepth, d)
			}
			// expanded is the TreeNode's own shared State; clone before
			// mutating it with rollout moves.
			state := rollout(expanded.Clone(), rnd)
			backpropagate(leaf, state)
		}
	})

	best := selectChild(rootNode, 0.0)
	report := buildReport(rootNode, int(atomic.LoadInt64(&maxDepth)), int(atomic.LoadInt64(&generated)))

	if !owned && prune {
		tree.CleanSubtree(best.Node)
		report.NodesRemaining = tree.Size()
	}

	return best.Move, report
}
