package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/objetos/chess-videogame/internal/board"
	"github.com/objetos/chess-videogame/internal/fen"
	"github.com/objetos/chess-videogame/internal/perft"
	"github.com/objetos/chess-videogame/internal/storage"
)

var (
	fenFlag    = flag.String("fen", fen.StartFEN, "FEN string (defaults to initial position)")
	depth      = flag.Int("depth", 0, "Perft depth (required)")
	divide     = flag.Bool("divide", false, "Print per-move node counts at root")
	verify     = flag.Bool("verify", false, "Compare move lists with a reference generator")
	dbPath     = flag.String("db", "", "database directory for cached results ('default' for the data dir)")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	b, side, err := board.NewBoardFromFEN(*fenFlag)
	if err != nil {
		log.Fatal("invalid FEN: ", err)
	}

	switch {
	case *verify:
		runVerify(b, side)
	case *divide:
		runDivide(b, side)
	default:
		runCount(b, side)
	}
}

func runVerify(b *board.Board, side board.Color) {
	mismatches, err := perft.Compare(b, side, *depth)
	if err != nil {
		log.Fatal(err)
	}
	for _, m := range mismatches {
		fmt.Println(m)
	}
	if len(mismatches) > 0 {
		fmt.Printf("%d mismatching positions\n", len(mismatches))
		os.Exit(1)
	}
	fmt.Printf("depth %d: move lists match\n", *depth)
}

func runDivide(b *board.Board, side board.Color) {
	entries, err := perft.Divide(b, side, *depth)
	if err != nil {
		log.Fatal(err)
	}
	for _, e := range entries {
		fmt.Printf("%s: %d\n", e.Move, e.Nodes)
	}
	fmt.Printf("Total: %d\n", perft.Total(entries))
}

func runCount(b *board.Board, side board.Color) {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	counter := perft.NewCounter(store)
	start := time.Now()
	nodes, err := counter.Count(b, side, *depth)
	if err != nil {
		log.Fatal(err)
	}
	elapsed := time.Since(start)

	if counter.Cached {
		fmt.Printf("%d \t%d \t(cached)\n", *depth, nodes)
		return
	}
	nps := float64(nodes) / elapsed.Seconds()
	fmt.Printf("%d \t%d \t%s \t%.0f\n", *depth, nodes, elapsed, nps)
}

// openStore opens the result cache named by -db or CHESS_DB. It returns nil
// when neither is set.
func openStore() *storage.Storage {
	path := *dbPath
	if path == "" {
		path = os.Getenv("CHESS_DB")
	}
	if path == "" {
		return nil
	}

	var (
		store *storage.Storage
		err   error
	)
	if path == "default" {
		store, err = storage.NewStorage()
	} else {
		store, err = storage.Open(path)
	}
	if err != nil {
		log.Fatal("could not open database: ", err)
	}
	return store
}
