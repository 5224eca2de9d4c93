package uct

import "math"

// explorationConstant is the UCB1 exploration weight used while a search is
// in progress. The final move pick after a search uses 0.0 (pure
// exploitation) instead; see driver.go.
const explorationConstant = 1.0

// ucb1 scores a child for selection. Wins and Visits are read without
// holding the child's lock: a reader may observe a value mid-update from a
// concurrent backpropagate, which only ever nudges the score by one
// in-flight result and is tolerated rather than synchronized, matching the
// reference algorithm's documented discipline for this read.
func ucb1[M comparable](child *TreeNode[M], parentVisits, c float64) float64 {
	if c == 0 {
		return child.Value()
	}
	return child.Value() + c*math.Sqrt(2*math.Log(parentVisits)/child.Visits)
}

// selectBest picks the child with the highest UCB1 score among children,
// breaking ties in favor of the first one in children's order (the
// State.Moves() order childrenSnapshot produces), so a fixed seed always
// yields the same choice.
func selectBest[M comparable](node *SearchNode[M], children []childEdge[M], c float64) *SearchNode[M] {
	var best childEdge[M]
	bestScore := math.Inf(-1)
	for _, edge := range children {
		score := ucb1(edge.Node, node.Node.Visits, c)
		if score > bestScore {
			bestScore = score
			best = edge
		}
	}
	return node.child(best.Move, best.Node)
}

// selectChild snapshots node's children and returns the UCB1-best among
// them. Called with c == 0 it performs the final, pure-exploitation move
// pick described in §4.1.
func selectChild[M comparable](node *SearchNode[M], c float64) *SearchNode[M] {
	children, _ := node.Node.childrenSnapshot()
	return selectBest(node, children, c)
}
