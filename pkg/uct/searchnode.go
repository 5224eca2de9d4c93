package uct

// SearchNode is the transient, per-iteration view of a position: a parent
// link and a depth threaded onto a shared TreeNode. Many SearchNodes across
// many iterations (or, under tree parallelization, many goroutines at once)
// can point at the same TreeNode; SearchNode itself is never shared and
// never stored in the tree.
type SearchNode[M comparable] struct {
	Move   M
	Parent *SearchNode[M]
	Node   *TreeNode[M]
	Depth  int
}

// child builds the SearchNode one ply below s, arrived at by move, backed
// by the given shared TreeNode.
func (s *SearchNode[M]) child(move M, node *TreeNode[M]) *SearchNode[M] {
	return &SearchNode[M]{
		Move:   move,
		Parent: s,
		Node:   node,
		Depth:  s.Depth + 1,
	}
}
