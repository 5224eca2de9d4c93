// Package arena plays a series of games between two move-selection
// strategies over any uct.GameState and tallies the results. It is the
// adaptation of the teacher's pkg/bench versus-arena to this engine's
// domain: instead of pitting two mcts.MCTS configurations against each
// other move-by-move, it pits two Agent functions (most often two
// differently configured uct searches) and reports win/draw/loss counts,
// which is how this engine's example games get benchmarked against one
// another (e.g. sequential vs tree-parallel, or two iteration budgets).
package arena

import (
	"sync"
	"sync/atomic"

	"github.com/fulghum/guct/pkg/uct"
)

// Agent picks a move for state. It is given a fresh clone of the position
// each call and must not retain it past the call.
type Agent[M comparable] func(state uct.GameState[M]) M

// Stats tallies outcomes from Player1's perspective, read with atomics so
// a VersusArena can be polled for progress while Run is still in flight on
// other goroutines.
type Stats struct {
	player1Wins uint32
	player2Wins uint32
	draws       uint32
}

func (s *Stats) Player1Wins() int { return int(atomic.LoadUint32(&s.player1Wins)) }
func (s *Stats) Player2Wins() int { return int(atomic.LoadUint32(&s.player2Wins)) }
func (s *Stats) Draws() int       { return int(atomic.LoadUint32(&s.draws)) }
func (s *Stats) Total() int       { return s.Player1Wins() + s.Player2Wins() + s.Draws() }

func (s *Stats) record(result uct.Result) {
	switch result {
	case 1.0:
		atomic.AddUint32(&s.player1Wins, 1)
	case 0.0:
		atomic.AddUint32(&s.player2Wins, 1)
	default:
		atomic.AddUint32(&s.draws, 1)
	}
}

// Summary is a plain-value snapshot of Stats, convenient for logging or
// serialization once a run has finished.
type Summary struct {
	TotalGames  int `json:"total_games"`
	Player1Wins int `json:"player1_wins"`
	Player2Wins int `json:"player2_wins"`
	Draws       int `json:"draws"`
}

// VersusArena plays NGames games of NewState() between Player1 and
// Player2, split across NThreads goroutines. The player who moves first
// alternates by game index, so neither agent is structurally favored by
// always moving first.
type VersusArena[M comparable] struct {
	Stats
	Player1, Player2 Agent[M]
	NewState         func() uct.GameState[M]
	NGames           int
	NThreads         int
}

// Run plays every game to completion and returns the final tally.
func (a *VersusArena[M]) Run() Summary {
	threads := a.NThreads
	if threads < 1 {
		threads = 1
	}

	var next int64
	var wg sync.WaitGroup
	for w := 0; w < threads; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := atomic.AddInt64(&next, 1) - 1
				if i >= int64(a.NGames) {
					return
				}
				a.playOne(int(i))
			}
		}()
	}
	wg.Wait()

	return Summary{
		TotalGames:  a.Total(),
		Player1Wins: a.Player1Wins(),
		Player2Wins: a.Player2Wins(),
		Draws:       a.Draws(),
	}
}

// playOne plays game index i to completion and records the outcome from
// Player1's perspective.
func (a *VersusArena[M]) playOne(i int) {
	state := a.NewState()
	player1First := i%2 == 0

	agentFor := func() Agent[M] {
		// The engine's convention is that PlayerJustMoved() == 2 at the
		// root, so "player 1 of the game" always moves first; whichever
		// Agent is assigned that role this game is tracked here.
		if (state.PlayerJustMoved() == 2) == player1First {
			return a.Player1
		}
		return a.Player2
	}

	for {
		moves := state.Moves()
		if len(moves) == 0 {
			break
		}
		move := agentFor()(state)
		state.DoMove(move)
	}

	result := state.Result(1)
	if !player1First {
		result = 1.0 - result
	}
	a.record(result)
}
