package uct

import "math/rand"

// SearchLeafParallel runs cfg.IterMax iterations, each performing a single
// Select/Expand against the shared tree followed by cfg.Workers independent
// rollouts from the expanded state, run concurrently. The rollouts' results
// are averaged and backpropagated as ONE visit, not cfg.Workers visits:
// that is the reference algorithm's documented behavior for this variant,
// preserved here rather than "fixed," since treating P rollouts as P visits
// would change what the visit count measures.
func SearchLeafParallel[M comparable](root GameState[M], tree *SearchTree[M], cfg Config, prune bool) (M, SearchReport[M]) {
	owned := tree == nil
	if owned {
		tree = NewSearchTree[M]()
	}

	mainRnd := rand.New(rand.NewSource(SeedFunc()))
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	rootNode := &SearchNode[M]{Node: tree.GetNode(root)}
	maxDepth := 0
	generated := 0

	for i := 0; i < cfg.IterMax; i++ {
		leaf, expanded, isNew := selectAndExpand(tree, rootNode, mainRnd, cfg.Exploration)
		if isNew {
			generated++
		}
		if leaf.Depth > maxDepth {
			maxDepth = leaf.Depth
		}

		// Draw the per-worker base seed from mainRnd before the fan-out, not
		// inside it: *rand.Rand is not safe for concurrent use, so workers
		// must never call into a shared source themselves (§5).
		base := mainRnd.Int63()
		results := make([]GameState[M], workers)
		runWorkers(workers, func(w int) {
			rnd := rand.New(rand.NewSource(base + int64(w)))
			results[w] = rollout(expanded.Clone(), rnd)
		})

		backpropagateAveraged(leaf, results)
	}

	best := selectChild(rootNode, 0.0)
	report := buildReport(rootNode, maxDepth, generated)

	if !owned && prune {
		tree.CleanSubtree(best.Node)
		report.NodesRemaining = tree.Size()
	}

	return best.Move, report
}

// backpropagateAveraged updates every TreeNode from leaf to the root with
// the mean of results' outcomes (from each node's own PlayerJustMoved
// viewpoint), counting as a single visit.
func backpropagateAveraged[M comparable](leaf *SearchNode[M], results []GameState[M]) {
	for n := leaf; n != nil; n = n.Parent {
		var sum float64
		player := n.Node.PlayerJustMoved()
		for _, r := range results {
			sum += r.Result(player)
		}
		n.Node.update(sum / float64(len(results)))
	}
}
