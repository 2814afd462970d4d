package board

import (
	"testing"
)

// mustBoard builds a board from a FEN string and returns it with the side
// to move.
func mustBoard(t *testing.T, s string) (*Board, Color) {
	t.Helper()
	b, c, err := NewBoardFromFEN(s)
	if err != nil {
		t.Fatalf("NewBoardFromFEN(%q): %v", s, err)
	}
	return b, c
}

// moveSet indexes moves by their coordinate string.
func moveSet(moves []Move) map[string]Move {
	set := make(map[string]Move, len(moves))
	for _, m := range moves {
		set[m.String()] = m
	}
	return set
}

func TestStartingPositionMoves(t *testing.T) {
	b := NewStartingBoard()
	for _, c := range Colors {
		moves := b.GenerateMoves(c)
		if len(moves) != 20 {
			t.Errorf("%s has %d moves, want 20", c, len(moves))
		}
		for _, m := range moves {
			if m.Flag != Regular {
				t.Errorf("%s: flag %s, want Regular", m, m.Flag)
			}
		}
	}
}

func TestDoubleCheckOnlyKingMoves(t *testing.T) {
	b, _ := mustBoard(t, "8/4n3/R3k3/R7/7q/8/1b2Q3/8 b - - 0 1")
	pos := b.Position()

	if got := len(pos.Checkers(Black)); got != 2 {
		t.Fatalf("got %d checkers, want 2", got)
	}

	king, _ := pos.King(Black)
	kingSafe := king.Moves(pos) &^ pos.kingDanger(king)

	moves := b.GenerateMoves(Black)
	if len(moves) != kingSafe.PopCount() {
		t.Errorf("got %d moves, want %d king-safe moves", len(moves), kingSafe.PopCount())
	}
	set := moveSet(moves)
	for _, want := range []string{"e6d7", "e6f7"} {
		if _, ok := set[want]; !ok {
			t.Errorf("missing %s in %v", want, moves)
		}
	}
	for _, m := range moves {
		if m.From != E6 {
			t.Errorf("non-king move %s in double check", m)
		}
	}
}

func TestCheckEvasions(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want []string
	}{
		{
			// The rook can block on e2; the king steps aside.
			name: "slider check",
			fen:  "4r2k/8/8/8/8/8/R7/4K3 w - - 0 1",
			want: []string{"e1d1", "e1d2", "e1f1", "e1f2", "a2e2"},
		},
		{
			// A knight check cannot be blocked, and the rook cannot
			// capture. Castling is not allowed out of check.
			name: "knight check",
			fen:  "7k/8/8/8/8/5n2/8/4K2R w K - 0 1",
			want: []string{"e1d1", "e1e2", "e1f1", "e1f2"},
		},
		{
			// Capturing the checking pawn.
			name: "pawn check",
			fen:  "7k/8/8/8/8/8/3p4/2B1K3 w - - 0 1",
			want: []string{"e1d1", "e1d2", "e1e2", "e1f1", "e1f2", "c1d2"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, c := mustBoard(t, tc.fen)
			if !b.IsKingInCheck(c) {
				t.Fatalf("%s should be in check", c)
			}
			assertMoves(t, b.GenerateMoves(c), tc.want)
		})
	}
}

func TestPinnedPieces(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want []string
	}{
		{
			name: "knight pinned on file",
			fen:  "4r2k/8/8/8/8/8/4N3/4K3 w - - 0 1",
			want: []string{"e1d1", "e1d2", "e1f1", "e1f2"},
		},
		{
			name: "rook slides along pin",
			fen:  "4r2k/8/8/8/8/8/4R3/4K3 w - - 0 1",
			want: []string{
				"e1d1", "e1d2", "e1f1", "e1f2",
				"e2e3", "e2e4", "e2e5", "e2e6", "e2e7", "e2e8",
			},
		},
		{
			name: "bishop pinned on diagonal captures pinner",
			fen:  "7k/8/8/8/8/2b5/3B4/4K3 w - - 0 1",
			want: []string{"e1d1", "e1e2", "e1f1", "e1f2", "d2c3"},
		},
		{
			name: "two blockers do not pin",
			fen:  "4r2k/8/8/8/4N3/8/4N3/4K3 w - - 0 1",
			want: []string{
				"e1d1", "e1d2", "e1f1", "e1f2",
				"e2c1", "e2g1", "e2c3", "e2g3", "e2d4", "e2f4",
				"e4d2", "e4f2", "e4c3", "e4g3", "e4c5", "e4g5", "e4d6", "e4f6",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, c := mustBoard(t, tc.fen)
			assertMoves(t, b.GenerateMoves(c), tc.want)
		})
	}
}

func TestCastlingGating(t *testing.T) {
	b, c := mustBoard(t, "rnb1kbnr/pppppqpp/8/8/8/8/PPPPP1PP/R3K2R w KQkq - 0 1")

	var sides []CastlingSide
	for _, m := range b.GenerateMoves(c) {
		if m.IsCastling() {
			sides = append(sides, m.Side)
		}
	}
	if len(sides) != 1 || sides[0] != QueenSide {
		t.Errorf("castling sides = %v, want only %s", sides, QueenSide)
	}
}

func TestCastlingRequirements(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want []CastlingSide
	}{
		{"both sides", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", []CastlingSide{QueenSide, KingSide}},
		{"no rights", "r3k2r/8/8/8/8/8/8/R3K2R w kq - 0 1", nil},
		{"blocked queenside", "r3k2r/8/8/8/8/8/8/RN2K2R w KQkq - 0 1", []CastlingSide{KingSide}},
		{"b-file attacked is fine", "1r2k2r/8/8/8/8/8/8/R3K2R w KQk - 0 1", []CastlingSide{QueenSide, KingSide}},
		{"landing square attacked", "r3k1r1/8/8/8/8/8/8/R3K2R w KQq - 0 1", []CastlingSide{QueenSide}},
		{"in check", "r3k2r/8/8/8/4r3/8/8/R3K2R w KQkq - 0 1", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, c := mustBoard(t, tc.fen)
			var got []CastlingSide
			for _, m := range b.GenerateMoves(c) {
				if m.IsCastling() {
					got = append(got, m.Side)
				}
			}
			if len(got) != len(tc.want) {
				t.Fatalf("castling sides = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("castling sides = %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestPromotionMoves(t *testing.T) {
	b, c := mustBoard(t, "3r3k/4P3/8/8/8/8/8/K7 w - - 0 1")

	perSquare := map[Square]map[PieceType]bool{}
	for _, m := range b.GenerateMoves(c) {
		if m.From != E7 {
			continue
		}
		if m.Flag != Promotion {
			t.Errorf("%s: flag %s, want Promotion", m, m.Flag)
			continue
		}
		if perSquare[m.To] == nil {
			perSquare[m.To] = map[PieceType]bool{}
		}
		perSquare[m.To][m.NewPiece] = true
	}

	if len(perSquare) != 2 {
		t.Fatalf("promotions to %d squares, want 2 (e8, d8)", len(perSquare))
	}
	for _, to := range []Square{E8, D8} {
		if got := len(perSquare[to]); got != 4 {
			t.Errorf("%d promotion pieces on %s, want 4", got, to)
		}
		for _, pt := range PromotionTypes {
			if !perSquare[to][pt] {
				t.Errorf("missing promotion to %s on %s", pt, to)
			}
		}
	}
}

func TestEnPassantDiscoveredCheck(t *testing.T) {
	b, _ := mustBoard(t, "8/8/8/8/k3p2R/8/3P4/4K3 w - - 0 1")
	if err := b.MakeMove(NewMove(D2, D4)); err != nil {
		t.Fatalf("d2d4: %v", err)
	}

	ep := b.EnPassant()
	if !ep.Armed || ep.CaptureRank != 4 || ep.CaptureFile != 4 {
		t.Fatalf("en passant = %+v, want armed on d4", ep)
	}

	moves := b.GenerateMoves(Black)
	for _, m := range moves {
		if m.IsEnPassant() {
			t.Errorf("en passant %s exposes the king along the rank", m)
		}
	}
	if len(moves) != 6 {
		t.Errorf("got %d moves, want 6: %v", len(moves), moves)
	}
}

func TestEnPassantHorizontalPin(t *testing.T) {
	b, c := mustBoard(t, "8/8/8/KPp4r/8/8/8/7k w - c6 0 1")
	assertMoves(t, b.GenerateMoves(c), []string{"a5a4", "a5a6", "a5b6", "b5b6"})
}

func TestEnPassantCapturesChecker(t *testing.T) {
	b, _ := mustBoard(t, "7k/2p5/8/1P6/3K4/8/8/8 b - - 0 1")
	if err := b.MakeMove(NewMove(C7, C5)); err != nil {
		t.Fatalf("c7c5: %v", err)
	}
	if !b.IsKingInCheck(White) {
		t.Fatal("the c5 pawn should give check")
	}

	set := moveSet(b.GenerateMoves(White))
	m, ok := set["b5c6"]
	if !ok {
		t.Fatalf("b5c6 en passant missing from %v", set)
	}
	if !m.IsEnPassant() {
		t.Errorf("b5c6 flag = %s, want EnPassant", m.Flag)
	}
}

func TestEnPassantTruthTable(t *testing.T) {
	tests := []struct {
		before, after, legal bool
	}{
		{false, false, true},
		{true, false, true},
		{false, true, false},
		{true, true, false},
	}
	for _, tc := range tests {
		if got := enPassantLegal(tc.before, tc.after); got != tc.legal {
			t.Errorf("enPassantLegal(%v, %v) = %v, want %v", tc.before, tc.after, got, tc.legal)
		}
	}
}

func TestEnPassantExpires(t *testing.T) {
	b := NewStartingBoard()
	play(t, b, "e2e4", "a7a6", "e4e5", "d7d5")
	if _, ok := moveSet(b.GenerateMoves(White))["e5d6"]; !ok {
		t.Fatal("e5d6 en passant should be available right after d7d5")
	}

	play(t, b, "a2a3", "a6a5")
	if _, ok := moveSet(b.GenerateMoves(White))["e5d6"]; ok {
		t.Error("e5d6 en passant still available a move later")
	}
}

func TestNoKing(t *testing.T) {
	b, c := mustBoard(t, "8/8/8/8/3R4/8/8/8 w - - 0 1")
	if b.IsKingInCheck(c) {
		t.Error("a side without a king cannot be in check")
	}
	if got := len(b.GenerateMoves(c)); got != 14 {
		t.Errorf("lone rook has %d moves, want 14", got)
	}
}

func TestLegalMovesNeverLeaveKingInCheck(t *testing.T) {
	fens := []string{
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}

	for _, f := range fens {
		b, c := mustBoard(t, f)
		for _, m := range b.GenerateMoves(c) {
			if err := b.MakeMove(m); err != nil {
				t.Fatalf("%s: MakeMove(%s): %v", f, m, err)
			}
			if b.IsKingInCheck(c) {
				t.Errorf("%s: %s leaves %s in check", f, m, c)
			}
			if err := b.UnmakeMove(); err != nil {
				t.Fatalf("%s: UnmakeMove after %s: %v", f, m, err)
			}
		}
	}
}

func assertMoves(t *testing.T, moves []Move, want []string) {
	t.Helper()
	got := moveSet(moves)
	if len(moves) != len(want) {
		t.Errorf("got %d moves %v, want %d %v", len(moves), moves, len(want), want)
	}
	for _, w := range want {
		if _, ok := got[w]; !ok {
			t.Errorf("missing move %s", w)
		}
	}
}

// play applies coordinate moves alternately, White first.
func play(t *testing.T, b *Board, moves ...string) {
	t.Helper()
	c := White
	if b.MovesMade()%2 == 1 {
		c = Black
	}
	for _, s := range moves {
		m, err := ParseMove(b, s, c)
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", s, err)
		}
		if err := b.MakeMove(m); err != nil {
			t.Fatalf("MakeMove(%s): %v", m, err)
		}
		c = c.Other()
	}
}
