// Package main provides a play harness for the uct search engine: it runs
// a self-play game against one of the example games, printing the board
// and chosen move each ply. It is a demo client, not part of the engine's
// import surface.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/fulghum/guct/examples/gobang"
	"github.com/fulghum/guct/examples/nim"
	"github.com/fulghum/guct/examples/othello"
	"github.com/fulghum/guct/pkg/uct"
)

var (
	iterMax  int
	parallel int
	game     string
	mode     string
	persist  string
	verbose  bool
)

func init() {
	flag.IntVar(&iterMax, "itermax", 100, "iterations per move")
	flag.IntVar(&iterMax, "i", 100, "iterations per move (shorthand)")
	flag.IntVar(&parallel, "parallel", 0, "worker count for parallel modes (0 = CPU count)")
	flag.IntVar(&parallel, "p", 0, "worker count for parallel modes (shorthand)")
	flag.StringVar(&game, "game", "othello", "game to play: nim, othello, gobang")
	flag.StringVar(&mode, "mode", "sequential", "search mode: sequential, leaf, root, tree")
	flag.StringVar(&persist, "persist", "", "path to persist the search tree across moves (empty disables)")
	flag.BoolVar(&verbose, "verbose", false, "print a search report each move")
}

func main() {
	flag.Parse()

	cfg := uct.DefaultConfig().WithIterMax(iterMax).WithVerbose(verbose)
	if parallel > 0 {
		cfg = cfg.WithWorkers(parallel)
	}

	switch game {
	case "nim":
		playNim(cfg)
	case "othello":
		playOthello(cfg)
	case "gobang":
		playGobang(cfg)
	default:
		slog.Error("unknown game", "game", game)
		os.Exit(1)
	}
}

func playNim(cfg uct.Config) {
	state := nim.New(15)
	runGame[int](state, cfg)
}

func playOthello(cfg uct.Config) {
	state := othello.New(8)
	runGame[othello.Move](state, cfg)
}

func playGobang(cfg uct.Config) {
	state := gobang.New(8, 5)
	runGame[gobang.Move](state, cfg)
}

// runGame alternates moves until the game ends, using mode/persist as
// selected on the command line.
func runGame[M comparable](state uct.GameState[M], cfg uct.Config) {
	var tree *uct.SearchTree[M]
	var engine *uct.PersistentEngine[M]
	if persist != "" {
		engine = uct.OpenPersistentEngine[M](persist)
	} else if mode == "tree" {
		tree = uct.NewSearchTree[M]()
	}

	for len(state.Moves()) > 0 {
		fmt.Println(state)

		move, report := searchMove(state, tree, engine, cfg)

		if cfg.Verbose {
			uct.WriteVerbose(os.Stdout, report)
		}
		fmt.Printf(">> best move: %v\n\n", move)
		state.DoMove(move)
	}

	fmt.Println("game finished!")
	fmt.Println(state)
}

func searchMove[M comparable](state uct.GameState[M], tree *uct.SearchTree[M], engine *uct.PersistentEngine[M], cfg uct.Config) (M, uct.SearchReport[M]) {
	if engine != nil {
		move, report, err := engine.Search(state, cfg)
		if err != nil {
			slog.Warn("persisting search tree failed", "error", err)
		}
		return move, report
	}

	switch mode {
	case "leaf":
		return uct.SearchLeafParallel(state, tree, cfg, true)
	case "root":
		return uct.SearchRootParallel(state, cfg)
	case "tree":
		return uct.SearchTreeParallel(state, tree, cfg, true)
	default:
		return uct.Search(state, tree, cfg, true)
	}
}
