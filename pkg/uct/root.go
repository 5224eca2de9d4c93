package uct

import "math/rand"

// SearchRootParallel runs cfg.Workers independent searches, each against
// its own private SearchTree and private *rand.Rand, splitting cfg.IterMax
// iterations evenly across them. Workers here are goroutines standing in
// for the reference implementation's separate OS processes: since each
// worker's tree and RNG are never shared, there is no mutable state for two
// workers to race on, which is what process isolation buys in the original
// and what goroutine-local state buys here. Per-move values are summed
// across workers and the move with the highest sum is returned.
func SearchRootParallel[M comparable](root GameState[M], cfg Config) (M, SearchReport[M]) {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	perWorker := cfg.IterMax / workers
	if perWorker < 1 {
		perWorker = 1
	}

	seed := SeedFunc()
	type workerResult struct {
		values map[M]float64
		size   int
		depth  int
	}
	results := make([]workerResult, workers)

	runWorkers(workers, func(w int) {
		rnd := rand.New(rand.NewSource(seed + int64(w)*0x9E3779B1))
		tree := NewSearchTree[M]()
		workerCfg := cfg.WithIterMax(perWorker)
		rootNode := &SearchNode[M]{Node: tree.GetNode(root)}

		maxDepth := 0
		for i := 0; i < workerCfg.IterMax; i++ {
			leaf, expanded, _ := selectAndExpand(tree, rootNode, rnd, workerCfg.Exploration)
			if leaf.Depth > maxDepth {
				maxDepth = leaf.Depth
			}
			state := rollout(expanded.Clone(), rnd)
			backpropagate(leaf, state)
		}

		children, _ := rootNode.Node.childrenSnapshot()
		values := make(map[M]float64, len(children))
		for _, edge := range children {
			values[edge.Move] = edge.Node.Value()
		}
		results[w] = workerResult{values: values, size: tree.Size(), depth: maxDepth}
	})

	totals := make(map[M]float64)
	maxDepth := 0
	for _, r := range results {
		if r.depth > maxDepth {
			maxDepth = r.depth
		}
		for move, v := range r.values {
			totals[move] += v
		}
	}

	var best M
	bestValue := -1.0
	first := true
	for move, v := range totals {
		if first || v > bestValue {
			best, bestValue, first = move, v, false
		}
	}

	children := make([]ChildReport[M], 0, len(totals))
	for move, v := range totals {
		children = append(children, ChildReport[M]{Move: move, Wins: v, Visits: float64(workers)})
	}

	return best, SearchReport[M]{
		MaxDepth:       maxDepth,
		NodesGenerated: 0,
		NodesRemaining: -1,
		Children:       children,
	}
}
