package board

import (
	"testing"
)

func TestCheckmate(t *testing.T) {
	// Back rank mate: the rook on a8 checks, the pawns on g7 and h7 block
	// the escape.
	b, c := mustBoard(t, "R6k/6pp/8/8/8/8/8/K7 b - - 0 1")

	t.Log("Checkmate position:")
	t.Log(b)

	if !b.IsKingInCheck(c) {
		t.Error("black should be in check")
	}
	if got := b.Status(c); got != Checkmate {
		t.Errorf("Status = %s, want checkmate", got)
	}
}

func TestNotCheckmate(t *testing.T) {
	// The king can capture the unprotected rook on g8 or step to h7.
	b, c := mustBoard(t, "6Rk/8/8/8/8/8/8/K7 b - - 0 1")

	moves := b.GenerateMoves(c)
	t.Log("Black legal moves:", moves)

	if got := b.Status(c); got != Ongoing {
		t.Errorf("Status = %s, want ongoing", got)
	}
	assertMoves(t, moves, []string{"h8g8", "h8h7"})
}

func TestStalemate(t *testing.T) {
	b, c := mustBoard(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")

	if b.IsKingInCheck(c) {
		t.Error("black should not be in check")
	}
	if got := b.Status(c); got != Stalemate {
		t.Errorf("Status = %s, want stalemate", got)
	}
}

func TestFoolsMate(t *testing.T) {
	b := NewStartingBoard()
	play(t, b, "f2f3", "e7e5", "g2g4", "d8h4")

	if got := b.Status(White); got != Checkmate {
		t.Errorf("Status = %s, want checkmate", got)
	}
	if got := b.Status(Black); got != Ongoing {
		t.Errorf("black Status = %s, want ongoing", got)
	}
}
