package uct

import (
	"bytes"
	"encoding/gob"
	"math/rand"
)

const dummyBranch = 4
const dummyMaxDepth = 6

// dummyState is a minimal GameState used to exercise the engine without a
// real game: from any non-terminal depth it offers dummyBranch moves
// (0..dummyBranch-1), and becomes terminal once depth reaches
// dummyMaxDepth, at which point the result is decided by a coin flip seeded
// from the path taken to reach it (so repeated visits to the same state
// yield the same result, as a deterministic game must).
type dummyState struct {
	depth           int
	path            []int
	playerJustMoved int
}

func newDummyState() *dummyState {
	return &dummyState{playerJustMoved: 2}
}

func (d *dummyState) PlayerJustMoved() int { return d.playerJustMoved }

func (d *dummyState) Clone() GameState[int] {
	clone := *d
	clone.path = append([]int(nil), d.path...)
	return &clone
}

func (d *dummyState) DoMove(move int) {
	d.path = append(d.path, move)
	d.depth++
	d.playerJustMoved = 3 - d.playerJustMoved
}

func (d *dummyState) Moves() []int {
	if d.depth >= dummyMaxDepth {
		return nil
	}
	moves := make([]int, dummyBranch)
	for i := range moves {
		moves[i] = i
	}
	return moves
}

func (d *dummyState) Result(player int) Result {
	if d.depth < dummyMaxDepth {
		panic("dummyState: Result called on a non-terminal state")
	}
	seed := int64(0)
	for _, m := range d.path {
		seed = seed*int64(dummyBranch) + int64(m) + 1
	}
	r := rand.New(rand.NewSource(seed))
	outcomes := []Result{0.0, 0.5, 1.0}
	outcome := outcomes[r.Intn(len(outcomes))]
	if d.playerJustMoved == player {
		return outcome
	}
	return 1.0 - outcome
}

// dummyWire is dummyState's gob form: gob only sees exported fields.
type dummyWire struct {
	Depth, PlayerJustMoved int
	Path                   []int
}

func (d *dummyState) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(dummyWire{d.depth, d.playerJustMoved, d.path})
	return buf.Bytes(), err
}

func (d *dummyState) GobDecode(data []byte) error {
	var w dummyWire
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&w); err != nil {
		return err
	}
	d.depth, d.playerJustMoved, d.path = w.Depth, w.PlayerJustMoved, w.Path
	return nil
}

func (d *dummyState) Key() string {
	key := make([]byte, 0, len(d.path)+1)
	for _, m := range d.path {
		key = append(key, byte('a'+m))
	}
	return string(key)
}
