package uct

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestMain(m *testing.M) {
	SeedFunc = func() int64 { return 42 }
	fmt.Printf("using seed %d\n", SeedFunc())
	os.Exit(m.Run())
}

func TestSearchPicksALegalMove(t *testing.T) {
	root := newDummyState()
	move, report := Search[int](root, nil, DefaultConfig().WithIterMax(500), false)

	legal := false
	for _, m := range root.Moves() {
		if m == move {
			legal = true
		}
	}
	if !legal {
		t.Fatalf("Search returned illegal move %d", move)
	}
	if len(report.Children) == 0 {
		t.Fatal("report has no children despite completed iterations")
	}
}

func TestSearchIsDeterministicUnderFixedSeed(t *testing.T) {
	SeedFunc = func() int64 { return 7 }
	defer func() { SeedFunc = func() int64 { return 42 } }()

	move1, _ := Search[int](newDummyState(), nil, DefaultConfig().WithIterMax(300), false)
	move2, _ := Search[int](newDummyState(), nil, DefaultConfig().WithIterMax(300), false)

	if move1 != move2 {
		t.Fatalf("same seed produced different moves: %d vs %d", move1, move2)
	}
}

func TestVisitsNeverExceedIterationBudgetPlusOne(t *testing.T) {
	tree := NewSearchTree[int]()
	root := newDummyState()
	cfg := DefaultConfig().WithIterMax(200)
	Search[int](root, tree, cfg, false)

	rootNode := tree.GetNode(root)
	if rootNode.Visits > float64(cfg.IterMax)+1 {
		t.Fatalf("root visits %v exceed iterMax+1 (%d)", rootNode.Visits, cfg.IterMax+1)
	}
	if rootNode.Wins < 0 || rootNode.Wins > rootNode.Visits {
		t.Fatalf("root wins %v out of [0, visits=%v]", rootNode.Wins, rootNode.Visits)
	}
}

func TestCleanSubtreeKeepsOnlyReachableNodes(t *testing.T) {
	tree := NewSearchTree[int]()
	root := newDummyState()
	cfg := DefaultConfig().WithIterMax(400)

	rootNode := &SearchNode[int]{Node: tree.GetNode(root)}

	move, _ := Search[int](root, tree, cfg, false)
	_ = move

	if populated := tree.Size(); populated <= 1 {
		t.Fatalf("expected the search above to have populated the tree, got size %d", populated)
	}

	children, _ := rootNode.Node.childrenSnapshot()
	if len(children) == 0 {
		t.Fatal("root has no children to prune toward")
	}
	keep := children[0].Node
	tree.CleanSubtree(keep)

	if tree.Size() == 0 {
		t.Fatal("CleanSubtree removed everything, including the kept subtree")
	}

	// every remaining node must be reachable from keep
	reachable := map[*TreeNode[int]]struct{}{}
	var walk func(n *TreeNode[int])
	walk = func(n *TreeNode[int]) {
		if _, ok := reachable[n]; ok || n == nil {
			return
		}
		reachable[n] = struct{}{}
		cs, _ := n.childrenSnapshot()
		for _, c := range cs {
			walk(c.Node)
		}
	}
	walk(keep)

	tree.mu.Lock()
	for _, n := range tree.nodes {
		if _, ok := reachable[n]; !ok {
			t.Fatal("CleanSubtree left an unreachable node in the table")
		}
	}
	tree.mu.Unlock()
}

func TestLeafParallelAveragesRatherThanMultipliesVisits(t *testing.T) {
	tree := NewSearchTree[int]()
	root := newDummyState()
	cfg := DefaultConfig().WithIterMax(50).WithWorkers(4)

	Search[int](root, tree, cfg, false) // warm the root node with one state
	rootNode := tree.GetNode(root)
	before := rootNode.Visits

	SearchLeafParallel[int](root, tree, cfg, false)

	after := rootNode.Visits
	got := after - before
	if got != float64(cfg.IterMax) {
		t.Fatalf("expected exactly IterMax (%d) new visits on the root, got %v", cfg.IterMax, got)
	}
}

func TestRootParallelPicksALegalMove(t *testing.T) {
	root := newDummyState()
	cfg := DefaultConfig().WithIterMax(400).WithWorkers(4)
	move, report := SearchRootParallel[int](root, cfg)

	legal := false
	for _, m := range root.Moves() {
		if m == move {
			legal = true
		}
	}
	if !legal {
		t.Fatalf("root-parallel returned illegal move %d", move)
	}
	if len(report.Children) == 0 {
		t.Fatal("root-parallel report has no children")
	}
}

func TestTreeParallelDoesNotCorruptSharedTree(t *testing.T) {
	tree := NewSearchTree[int]()
	root := newDummyState()
	cfg := DefaultConfig().WithIterMax(2000).WithWorkers(8)

	move, report := SearchTreeParallel[int](root, tree, cfg, false)

	legal := false
	for _, m := range root.Moves() {
		if m == move {
			legal = true
		}
	}
	if !legal {
		t.Fatalf("tree-parallel returned illegal move %d", move)
	}
	if report.NodesGenerated == 0 {
		t.Fatal("expected some nodes to be generated over 2000 iterations")
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.gob")
	RegisterGameState(&dummyState{})

	root := newDummyState()
	cfg := DefaultConfig().WithIterMax(100)

	engine := OpenPersistentEngine[int](path)
	move1, _, err := engine.Search(root, cfg)
	if err != nil {
		t.Fatalf("first search: %v", err)
	}

	reloaded := OpenPersistentEngine[int](path)
	if reloaded.Tree.Size() != engine.Tree.Size() {
		t.Fatalf("reloaded tree has %d nodes, want %d", reloaded.Tree.Size(), engine.Tree.Size())
	}

	move2, _, err := reloaded.Search(root, cfg)
	if err != nil {
		t.Fatalf("second search: %v", err)
	}
	_ = move1
	_ = move2
}

func TestLoadTreeSwallowsMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.gob")
	tree := LoadTree[int](path)
	if tree.Size() != 0 {
		t.Fatalf("expected an empty tree, got size %d", tree.Size())
	}
}

func TestLoadTreeSwallowsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.gob")
	if err := os.WriteFile(path, []byte("not a gob stream"), 0o644); err != nil {
		t.Fatal(err)
	}
	tree := LoadTree[int](path)
	if tree.Size() != 0 {
		t.Fatalf("expected an empty tree from a corrupt file, got size %d", tree.Size())
	}
}
