// Package perft counts move-generation leaf nodes. It is the standard
// correctness check for a move generator.
package perft

import (
	"fmt"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/objetos/chess-videogame/internal/board"
	"github.com/objetos/chess-videogame/internal/storage"
)

// Count returns the number of leaf nodes depth plies below the position,
// with c to move. The board is returned to its original state.
func Count(b *board.Board, c board.Color, depth int) (int64, error) {
	if depth <= 0 {
		return 1, nil
	}

	moves := b.GenerateMoves(c)
	if depth == 1 {
		return int64(len(moves)), nil
	}

	var nodes int64
	for _, m := range moves {
		n, err := child(b, c, m, depth, Count)
		if err != nil {
			return 0, err
		}
		nodes += n
	}
	return nodes, nil
}

// child makes m, counts the subtree with count and unmakes m.
func child(b *board.Board, c board.Color, m board.Move, depth int,
	count func(*board.Board, board.Color, int) (int64, error)) (int64, error) {
	if err := b.MakeMove(m); err != nil {
		return 0, fmt.Errorf("perft: make %s: %w", m, err)
	}
	n, err := count(b, c.Other(), depth-1)
	if uerr := b.UnmakeMove(); uerr != nil && err == nil {
		err = fmt.Errorf("perft: unmake %s: %w", m, uerr)
	}
	return n, err
}

// Entry is the node count below one root move.
type Entry struct {
	Move  string
	Nodes int64
}

// Divide returns the node count below each legal root move, sorted by move
// text.
func Divide(b *board.Board, c board.Color, depth int) ([]Entry, error) {
	if depth < 1 {
		return nil, nil
	}

	counts := make(map[string]int64)
	for _, m := range b.GenerateMoves(c) {
		n, err := child(b, c, m, depth, Count)
		if err != nil {
			return nil, err
		}
		counts[m.String()] = n
	}

	keys := maps.Keys(counts)
	slices.Sort(keys)

	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, Entry{Move: k, Nodes: counts[k]})
	}
	return entries, nil
}

// Total sums the node counts of a divide.
func Total(entries []Entry) int64 {
	var sum int64
	for _, e := range entries {
		sum += e.Nodes
	}
	return sum
}

type memoKey struct {
	hash  uint64
	color board.Color
	depth int
}

// Counter is a perft counter that remembers subtree counts by Zobrist hash.
// Transpositions are counted once. With a store attached, results for the
// root position are read from and written to it.
type Counter struct {
	table map[memoKey]int64
	store *storage.Storage

	// Hits is the number of subtrees answered from the table.
	Hits int
	// Cached reports whether the last Count came from the store.
	Cached bool
}

// NewCounter creates a counter. store may be nil.
func NewCounter(store *storage.Storage) *Counter {
	return &Counter{
		table: make(map[memoKey]int64),
		store: store,
	}
}

// Count returns the same value as the package-level Count.
func (ct *Counter) Count(b *board.Board, c board.Color, depth int) (int64, error) {
	ct.Cached = false

	var fenStr string
	if ct.store != nil {
		fenStr = b.FEN(c)
		r, found, err := ct.store.LoadPerft(fenStr, depth)
		if err != nil {
			return 0, err
		}
		if found {
			ct.Cached = true
			return r.Nodes, nil
		}
	}

	start := time.Now()
	nodes, err := ct.count(b, c, depth)
	if err != nil {
		return 0, err
	}

	if ct.store != nil {
		err = ct.store.SavePerft(storage.PerftResult{
			FEN:     fenStr,
			Depth:   depth,
			Nodes:   nodes,
			Elapsed: time.Since(start),
		})
	}
	return nodes, err
}

func (ct *Counter) count(b *board.Board, c board.Color, depth int) (int64, error) {
	if depth <= 0 {
		return 1, nil
	}

	key := memoKey{hash: b.Hash(), color: c, depth: depth}
	if n, ok := ct.table[key]; ok {
		ct.Hits++
		return n, nil
	}

	moves := b.GenerateMoves(c)
	nodes := int64(len(moves))
	if depth > 1 {
		nodes = 0
		for _, m := range moves {
			n, err := child(b, c, m, depth, ct.count)
			if err != nil {
				return 0, err
			}
			nodes += n
		}
	}

	ct.table[key] = nodes
	return nodes, nil
}

// Reset forgets all remembered subtrees.
func (ct *Counter) Reset() {
	ct.table = make(map[memoKey]int64)
	ct.Hits = 0
}
