package perft

import (
	"fmt"
	"strings"

	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/objetos/chess-videogame/internal/board"
)

// Mismatch is a position where the move list differs from the reference
// generator.
type Mismatch struct {
	// Path is the sequence of moves leading from the root to the position.
	Path []string
	FEN  string
	// Missing holds moves only the reference generates.
	Missing []string
	// Extra holds moves only this generator produces.
	Extra []string
}

func (m Mismatch) String() string {
	path := strings.Join(m.Path, " ")
	if path == "" {
		path = "(root)"
	}
	return fmt.Sprintf("%s [%s] missing=%v extra=%v", path, m.FEN, m.Missing, m.Extra)
}

// Compare walks the game tree to depth plies in step with dragontoothmg and
// reports every position where the two move lists differ. Only moves both
// generators agree on are followed.
func Compare(b *board.Board, c board.Color, depth int) ([]Mismatch, error) {
	ref := dragontoothmg.ParseFen(b.FEN(c))
	var out []Mismatch
	err := compare(b, c, &ref, depth, nil, &out)
	return out, err
}

func compare(b *board.Board, c board.Color, ref *dragontoothmg.Board, depth int,
	path []string, out *[]Mismatch) error {
	if depth <= 0 {
		return nil
	}

	ours := make(map[string]board.Move)
	for _, m := range b.GenerateMoves(c) {
		ours[m.String()] = m
	}
	theirs := make(map[string]dragontoothmg.Move)
	for _, m := range ref.GenerateLegalMoves() {
		theirs[m.String()] = m
	}

	var mm Mismatch
	for s := range theirs {
		if _, ok := ours[s]; !ok {
			mm.Missing = append(mm.Missing, s)
		}
	}
	for s := range ours {
		if _, ok := theirs[s]; !ok {
			mm.Extra = append(mm.Extra, s)
		}
	}
	if len(mm.Missing) > 0 || len(mm.Extra) > 0 {
		slices.Sort(mm.Missing)
		slices.Sort(mm.Extra)
		mm.Path = slices.Clone(path)
		mm.FEN = b.FEN(c)
		*out = append(*out, mm)
	}

	keys := maps.Keys(ours)
	slices.Sort(keys)
	for _, s := range keys {
		rm, ok := theirs[s]
		if !ok {
			continue
		}
		m := ours[s]

		if err := b.MakeMove(m); err != nil {
			return fmt.Errorf("perft: make %s: %w", s, err)
		}
		undo := ref.Apply(rm)

		err := compare(b, c.Other(), ref, depth-1, append(path, s), out)

		undo()
		if uerr := b.UnmakeMove(); uerr != nil && err == nil {
			err = fmt.Errorf("perft: unmake %s: %w", s, uerr)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
