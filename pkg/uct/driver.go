package uct

import (
	"math/rand"
	"time"
)

// SeedFunc produces the seed for a search's private *rand.Rand. Tests
// override it for determinism (see pkg/uct tests); production code leaves
// it at the default, wall-clock-derived value.
var SeedFunc = func() int64 { return time.Now().UnixNano() }

// Search runs the sequential UCT algorithm: Select, Expand, Rollout and
// Backpropagate repeated cfg.IterMax times, then the best move is picked by
// pure exploitation (UCB1 with c=0). If tree is nil a private table is
// created and discarded with the call (prune is then meaningless and
// ignored); if tree is non-nil it is shared with the caller and, when prune
// is true, everything outside the chosen child is discarded afterward.
func Search[M comparable](root GameState[M], tree *SearchTree[M], cfg Config, prune bool) (M, SearchReport[M]) {
	rnd := rand.New(rand.NewSource(SeedFunc()))
	return searchSequential(root, tree, cfg, prune, rnd)
}

func searchSequential[M comparable](root GameState[M], tree *SearchTree[M], cfg Config, prune bool, rnd *rand.Rand) (M, SearchReport[M]) {
	owned := tree == nil
	if owned {
		tree = NewSearchTree[M]()
	}

	rootNode := &SearchNode[M]{Node: tree.GetNode(root)}
	maxDepth := 0
	generated := 0

	for i := 0; i < cfg.IterMax; i++ {
		leaf, expanded, isNew := selectAndExpand(tree, rootNode, rnd, cfg.Exploration)
		if isNew {
			generated++
		}
		if leaf.Depth > maxDepth {
			maxDepth = leaf.Depth
		}
		// expanded is the TreeNode's own, shared State; rollout must consume
		// a private clone so it never mutates the persisted tree state.
		terminal := rollout(expanded.Clone(), rnd)
		backpropagate(leaf, terminal)
	}

	best := selectChild(rootNode, 0.0)
	report := buildReport(rootNode, maxDepth, generated)

	if !owned && prune {
		tree.CleanSubtree(best.Node)
		report.NodesRemaining = tree.Size()
	}

	return best.Move, report
}

// selectAndExpand walks down from root by UCB1 while every visited node is
// fully expanded, then expands exactly one new child at the first node that
// still has an untried move (or is terminal). It returns the resulting leaf
// SearchNode, the game state at that leaf (ready for rollout), and whether
// a brand new TreeNode was created this call.
func selectAndExpand[M comparable](tree *SearchTree[M], root *SearchNode[M], rnd *rand.Rand, c float64) (leaf *SearchNode[M], state GameState[M], isNew bool) {
	node := root
	for {
		children, hasUntried := node.Node.childrenSnapshot()
		if hasUntried {
			break
		}
		if len(children) == 0 {
			// terminal: nothing to select or expand
			return node, node.Node.State, false
		}
		node = selectBest(node, children, c)
	}

	move, ok := node.Node.takeUntriedMove(rnd)
	if !ok {
		// Another goroutine (tree-parallel) took the last untried move
		// first; fall back to UCB1 selection among what is now available.
		children, _ := node.Node.childrenSnapshot()
		if len(children) == 0 {
			return node, node.Node.State, false
		}
		child := selectBest(node, children, c)
		return child, child.Node.State, false
	}

	next := node.Node.State.Clone()
	next.DoMove(move)
	childNode, created := tree.getOrCreate(next)
	actual := node.Node.addChild(move, childNode)
	return node.child(move, actual), actual.State, created && actual == childNode
}

// rollout plays uniformly random moves from state until a terminal position
// is reached, returning that terminal state. state is mutated in place; the
// caller passes in a value it is willing to have consumed.
func rollout[M comparable](state GameState[M], rnd *rand.Rand) GameState[M] {
	for {
		moves := state.Moves()
		if len(moves) == 0 {
			return state
		}
		state.DoMove(moves[rnd.Intn(len(moves))])
	}
}

// backpropagate walks from leaf up to the root, updating every TreeNode on
// the path with the terminal result from that node's own
// PlayerJustMoved viewpoint.
func backpropagate[M comparable](leaf *SearchNode[M], terminal GameState[M]) {
	for n := leaf; n != nil; n = n.Parent {
		n.Node.update(terminal.Result(n.Node.PlayerJustMoved()))
	}
}

func buildReport[M comparable](root *SearchNode[M], maxDepth, generated int) SearchReport[M] {
	children, _ := root.Node.childrenSnapshot()
	out := make([]ChildReport[M], 0, len(children))
	for _, edge := range children {
		out = append(out, ChildReport[M]{Move: edge.Move, Wins: edge.Node.Wins, Visits: edge.Node.Visits})
	}
	return SearchReport[M]{
		MaxDepth:       maxDepth,
		NodesGenerated: generated,
		NodesRemaining: -1,
		Children:       out,
	}
}
