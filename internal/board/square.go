// Package board implements the chess rules core: piece rules, position
// snapshots, legal move generation and a board controller with undo.
package board

import (
	"fmt"

	"github.com/objetos/chess-videogame/internal/bitboard"
)

// Square is a board square identified by its bit index:
// (rank-1)*8 + (8-file). H1=0, A1=7, H8=56, A8=63.
type Square uint8

// Square constants for all 64 squares, in bit index order.
const (
	H1 Square = iota
	G1
	F1
	E1
	D1
	C1
	B1
	A1
	H2
	G2
	F2
	E2
	D2
	C2
	B2
	A2
	H3
	G3
	F3
	E3
	D3
	C3
	B3
	A3
	H4
	G4
	F4
	E4
	D4
	C4
	B4
	A4
	H5
	G5
	F5
	E5
	D5
	C5
	B5
	A5
	H6
	G6
	F6
	E6
	D6
	C6
	B6
	A6
	H7
	G7
	F7
	E7
	D7
	C7
	B7
	A7
	H8
	G8
	F8
	E8
	D8
	C8
	B8
	A8
	NoSquare Square = 64
)

// NewSquare creates a square from rank and file, both in [1,8].
// Out of range values panic.
func NewSquare(rank, file int) Square {
	return Square(bitboard.Index(rank, file))
}

// Rank returns the rank of the square (1-8, 1 = White's back rank).
func (sq Square) Rank() int {
	return int(sq)/8 + 1
}

// File returns the file of the square (1-8, 1 = the a-file).
func (sq Square) File() int {
	return 8 - int(sq)%8
}

// Bitboard returns a bitboard with only this square set.
func (sq Square) Bitboard() bitboard.Bitboard {
	return 1 << sq
}

// IsValid returns true if the square is a valid board square (0-63).
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.File()-1, '0'+sq.Rank())
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	file := int(s[0]-'a') + 1
	rank := int(s[1]-'0')

	if file < 1 || file > 8 || rank < 1 || rank > 8 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	return NewSquare(rank, file), nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
