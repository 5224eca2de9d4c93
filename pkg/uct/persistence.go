package uct

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// RegisterGameState must be called once per concrete GameState
// implementation, with a zero or sample value of that type, before any
// SearchTree containing it is ever saved or loaded. It is a thin wrapper
// over gob.Register: persistedNode stores States behind the GameState
// interface, and gob cannot decode into an interface field without knowing
// the concrete type up front.
func RegisterGameState(sample any) {
	gob.Register(sample)
}

// persistedNode is the on-disk shape of a TreeNode. Children are recorded
// as move-to-key pairs rather than pointers, since pointers cannot survive
// a round trip and the live Children map may, through transpositions,
// describe a graph rather than a tree.
type persistedNode[M comparable] struct {
	Key      string
	State    GameState[M]
	Wins     float64
	Visits   float64
	Children map[M]string
	Untried  []M
}

type persistedTree[M comparable] struct {
	Nodes []persistedNode[M]
}

// SaveTree gob-encodes tree and writes it to path.
func SaveTree[M comparable](path string, tree *SearchTree[M]) error {
	tree.mu.Lock()
	snapshot := make([]persistedNode[M], 0, len(tree.nodes))
	for key, n := range tree.nodes {
		n.mu.Lock()
		children := make(map[M]string, len(n.Children))
		for move, c := range n.Children {
			children[move] = c.State.Key()
		}
		untried := make([]M, 0, len(n.Untried))
		for m := range n.Untried {
			untried = append(untried, m)
		}
		snapshot = append(snapshot, persistedNode[M]{
			Key:      key,
			State:    n.State,
			Wins:     n.Wins,
			Visits:   n.Visits,
			Children: children,
			Untried:  untried,
		})
		n.mu.Unlock()
	}
	tree.mu.Unlock()

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(persistedTree[M]{Nodes: snapshot}); err != nil {
		return fmt.Errorf("uct: encode tree: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("uct: write %s: %w", path, err)
	}
	return nil
}

// LoadTree reads and decodes the tree at path. Every failure mode (missing
// file, truncated or corrupt stream, an unregistered concrete GameState
// type) is swallowed: a fresh, empty tree is returned, never an error,
// matching the rule that a persistence failure must never abort a search.
// A missing file is the normal first-run case and is not logged; every
// other failure logs a warning.
func LoadTree[M comparable](path string) *SearchTree[M] {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("uct: reading persisted tree, starting empty", "path", path, "error", err)
		}
		return NewSearchTree[M]()
	}

	var persisted persistedTree[M]
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&persisted); err != nil {
		slog.Warn("uct: decoding persisted tree, starting empty", "path", path, "error", err)
		return NewSearchTree[M]()
	}

	tree := NewSearchTree[M]()
	byKey := make(map[string]*TreeNode[M], len(persisted.Nodes))
	for _, pn := range persisted.Nodes {
		n := &TreeNode[M]{
			State:    pn.State,
			Wins:     pn.Wins,
			Visits:   pn.Visits,
			Children: make(map[M]*TreeNode[M], len(pn.Children)),
			Untried:  make(map[M]struct{}, len(pn.Untried)),
		}
		for _, m := range pn.Untried {
			n.Untried[m] = struct{}{}
		}
		byKey[pn.Key] = n
		tree.nodes[pn.Key] = n
	}
	for _, pn := range persisted.Nodes {
		n := byKey[pn.Key]
		for move, childKey := range pn.Children {
			if child, ok := byKey[childKey]; ok {
				n.Children[move] = child
			}
		}
	}

	return tree
}

// PersistentEngine runs searches against a tree loaded from, and saved
// back to, a fixed file path. Unlike Search with prune=true, it never
// discards nodes on its own: callers that want a bound on disk/memory use
// call Compact explicitly, since a persistent tree is meant to accumulate
// knowledge across many calls, not just one.
type PersistentEngine[M comparable] struct {
	Path string
	Tree *SearchTree[M]
}

// OpenPersistentEngine loads (or creates) the tree at path.
func OpenPersistentEngine[M comparable](path string) *PersistentEngine[M] {
	return &PersistentEngine[M]{Path: path, Tree: LoadTree[M](path)}
}

// Search runs one unpruned search against the engine's tree and persists
// the updated tree before returning.
func (e *PersistentEngine[M]) Search(root GameState[M], cfg Config) (M, SearchReport[M], error) {
	move, report := Search(root, e.Tree, cfg, false)
	if err := SaveTree(e.Path, e.Tree); err != nil {
		return move, report, fmt.Errorf("uct: persist after search: %w", err)
	}
	return move, report, nil
}

// Compact discards every tree node unreachable from keepRoot, bounding the
// memory and disk footprint of a long-lived persistent engine.
func (e *PersistentEngine[M]) Compact(keepRoot *TreeNode[M]) {
	e.Tree.Compact(keepRoot)
}
