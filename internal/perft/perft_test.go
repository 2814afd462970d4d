package perft

import (
	"testing"

	"github.com/objetos/chess-videogame/internal/board"
	"github.com/objetos/chess-videogame/internal/storage"
)

const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

func mustBoard(t *testing.T, s string) (*board.Board, board.Color) {
	t.Helper()
	b, c, err := board.NewBoardFromFEN(s)
	if err != nil {
		t.Fatalf("NewBoardFromFEN(%q): %v", s, err)
	}
	return b, c
}

func TestCount(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		depth int
		want  int64
	}{
		{"start depth 0", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 0, 1},
		{"start depth 1", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 1, 20},
		{"start depth 3", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 3, 8902},
		{"kiwipete depth 2", kiwipete, 2, 2039},
		{"position 3 depth 3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 3, 2812},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, c := mustBoard(t, tt.fen)
			before := b.FEN(c)

			got, err := Count(b, c, tt.depth)
			if err != nil {
				t.Fatalf("Count: %v", err)
			}
			if got != tt.want {
				t.Errorf("Count = %d, want %d", got, tt.want)
			}
			if after := b.FEN(c); after != before {
				t.Errorf("board changed: %q -> %q", before, after)
			}
		})
	}
}

func TestDivide(t *testing.T) {
	b := board.NewStartingBoard()

	entries, err := Divide(b, board.White, 2)
	if err != nil {
		t.Fatalf("Divide: %v", err)
	}
	if len(entries) != 20 {
		t.Fatalf("len(entries) = %d, want 20", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Move >= entries[i].Move {
			t.Errorf("entries not sorted: %s before %s", entries[i-1].Move, entries[i].Move)
		}
	}
	for _, e := range entries {
		if e.Nodes != 20 {
			t.Errorf("%s: %d nodes, want 20", e.Move, e.Nodes)
		}
	}
	if got := Total(entries); got != 400 {
		t.Errorf("Total = %d, want 400", got)
	}
	if entries[0].Move != "a2a3" {
		t.Errorf("first entry = %s, want a2a3", entries[0].Move)
	}

	if entries, _ := Divide(b, board.White, 0); entries != nil {
		t.Errorf("Divide(0) = %v, want nil", entries)
	}
}

func TestDivideMatchesCount(t *testing.T) {
	b, c := mustBoard(t, kiwipete)

	entries, err := Divide(b, c, 2)
	if err != nil {
		t.Fatalf("Divide: %v", err)
	}
	if got := Total(entries); got != 2039 {
		t.Errorf("Total = %d, want 2039", got)
	}
}

func TestCounter(t *testing.T) {
	b := board.NewStartingBoard()
	ct := NewCounter(nil)

	got, err := ct.Count(b, board.White, 4)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if got != 197281 {
		t.Errorf("Count = %d, want 197281", got)
	}
	// 1.Nf3 Nf6 2.Nc3 and 1.Nc3 Nf6 2.Nf3 transpose.
	if ct.Hits == 0 {
		t.Error("expected transposition hits")
	}

	ct.Reset()
	if got, _ := ct.Count(b, board.White, 3); got != 8902 {
		t.Errorf("Count after Reset = %d, want 8902", got)
	}
}

func TestCounterWithStore(t *testing.T) {
	store, err := storage.Open("")
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	defer store.Close()

	b := board.NewStartingBoard()
	ct := NewCounter(store)

	if got, err := ct.Count(b, board.White, 3); err != nil || got != 8902 {
		t.Fatalf("Count = %d, %v; want 8902", got, err)
	}
	if ct.Cached {
		t.Error("first count should not come from the store")
	}

	r, found, err := store.LoadPerft(b.FEN(board.White), 3)
	if err != nil || !found {
		t.Fatalf("LoadPerft: found=%v err=%v", found, err)
	}
	if r.Nodes != 8902 {
		t.Errorf("stored nodes = %d, want 8902", r.Nodes)
	}

	fresh := NewCounter(store)
	if got, _ := fresh.Count(b, board.White, 3); got != 8902 {
		t.Errorf("cached Count = %d, want 8902", got)
	}
	if !fresh.Cached {
		t.Error("second count should come from the store")
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		depth int
	}{
		{"start", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 3},
		{"kiwipete", kiwipete, 2},
		{"position 4", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, c := mustBoard(t, tt.fen)
			mismatches, err := Compare(b, c, tt.depth)
			if err != nil {
				t.Fatalf("Compare: %v", err)
			}
			for _, m := range mismatches {
				t.Errorf("mismatch: %s", m)
			}
		})
	}
}

func TestMismatchString(t *testing.T) {
	m := Mismatch{FEN: "8/8/8/8/8/8/8/8 w - - 0 1", Missing: []string{"e2e4"}}
	want := "(root) [8/8/8/8/8/8/8/8 w - - 0 1] missing=[e2e4] extra=[]"
	if got := m.String(); got != want {
		t.Errorf("String = %q, want %q", got, want)
	}
}
