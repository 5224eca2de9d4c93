package uct

import "sync"

// SearchTree is the transposition table: every distinct game state
// encountered during search maps to exactly one TreeNode, regardless of how
// many SearchNode paths reach it. Nodes are looked up and created by the
// state's Key(), never by identity.
type SearchTree[M comparable] struct {
	mu    sync.Mutex
	nodes map[string]*TreeNode[M]
}

// NewSearchTree returns an empty transposition table.
func NewSearchTree[M comparable]() *SearchTree[M] {
	return &SearchTree[M]{nodes: make(map[string]*TreeNode[M])}
}

// GetNode returns the TreeNode for state's Key, creating one if this is the
// first time the state has been seen.
func (t *SearchTree[M]) GetNode(state GameState[M]) *TreeNode[M] {
	n, _ := t.getOrCreate(state)
	return n
}

// getOrCreate is GetNode plus a flag reporting whether this call allocated
// a brand new TreeNode, used by the driver to count nodes generated.
func (t *SearchTree[M]) getOrCreate(state GameState[M]) (node *TreeNode[M], created bool) {
	key := state.Key()
	t.mu.Lock()
	defer t.mu.Unlock()
	if n, ok := t.nodes[key]; ok {
		return n, false
	}
	n := newTreeNode[M](state)
	t.nodes[key] = n
	return n, true
}

// Size reports the number of distinct states currently in the table.
func (t *SearchTree[M]) Size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.nodes)
}

// CleanSubtree discards every node not reachable from keepRoot, freeing the
// rest of the search forest. The walk is keyed by pointer identity rather
// than by Key so it stays correct even if Children links happen to form a
// cycle (a transposition table can, in principle, cycle back to an
// ancestor).
func (t *SearchTree[M]) CleanSubtree(keepRoot *TreeNode[M]) {
	t.mu.Lock()
	defer t.mu.Unlock()

	visited := make(map[*TreeNode[M]]struct{})
	var walk func(n *TreeNode[M])
	walk = func(n *TreeNode[M]) {
		if n == nil {
			return
		}
		if _, seen := visited[n]; seen {
			return
		}
		visited[n] = struct{}{}
		n.mu.Lock()
		children := make([]*TreeNode[M], 0, len(n.Children))
		for _, c := range n.Children {
			children = append(children, c)
		}
		n.mu.Unlock()
		for _, c := range children {
			walk(c)
		}
	}
	walk(keepRoot)

	for key, n := range t.nodes {
		if _, keep := visited[n]; !keep {
			delete(t.nodes, key)
		}
	}
}

// Compact is CleanSubtree under the name the persistent driver uses for its
// manual, caller-triggered bound on unbounded tree growth.
func (t *SearchTree[M]) Compact(keepRoot *TreeNode[M]) {
	t.CleanSubtree(keepRoot)
}
