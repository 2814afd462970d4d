// Package bitboard implements 64-bit square sets and the sliding-ray
// arithmetic the move generator is built on.
package bitboard

import (
	"fmt"
	"math/bits"
	"strings"
)

// Bitboard represents a 64-bit board where each bit corresponds to a square.
// Bit index = (rank-1)*8 + (8-file): file 1 is the most significant bit of
// each rank byte and file 8 the least significant. Index+1 moves one file
// toward file 1, index+8 moves one rank toward rank 8.
type Bitboard uint64

const (
	Empty    Bitboard = 0
	Universe Bitboard = 0xFFFFFFFFFFFFFFFF

	rankOne   Bitboard = 0x00000000000000FF
	fileEight Bitboard = 0x0101010101010101
)

// CheckCoordinates panics when rank or file is outside [1,8].
func CheckCoordinates(rank, file int) {
	if rank < 1 || rank > 8 || file < 1 || file > 8 {
		panic(fmt.Sprintf("bitboard: square (rank %d, file %d) out of range", rank, file))
	}
}

func checkLine(n int) {
	if n < 1 || n > 8 {
		panic(fmt.Sprintf("bitboard: line %d out of range", n))
	}
}

// Index returns the bit index of a square.
func Index(rank, file int) int {
	CheckCoordinates(rank, file)
	return (8 - file) + (rank-1)*8
}

// Coordinates converts a bit index back into rank and file.
func Coordinates(index int) (rank, file int) {
	if index < 0 || index > 63 {
		panic(fmt.Sprintf("bitboard: index %d out of range", index))
	}
	return index/8 + 1, 8 - index%8
}

// SquareToBitboard returns a bitboard with only the given square set.
func SquareToBitboard(rank, file int) Bitboard {
	return 1 << uint(Index(rank, file))
}

// Rank returns the mask of rank n (1-8).
func Rank(n int) Bitboard {
	checkLine(n)
	return rankOne << uint((n-1)*8)
}

// File returns the mask of file n (1-8).
func File(n int) Bitboard {
	checkLine(n)
	return fileEight << uint(8-n)
}

// Reverse mirrors the bit order, mapping index i to 63-i.
func Reverse(b Bitboard) Bitboard {
	return Bitboard(bits.Reverse64(uint64(b)))
}

// Boolean returns Universe for true and Empty for false.
func Boolean(v bool) Bitboard {
	if v {
		return Universe
	}
	return Empty
}

// Has reports whether the square is set.
func (b Bitboard) Has(rank, file int) bool {
	return b&SquareToBitboard(rank, file) != 0
}

// PopCount returns the number of set bits (population count).
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// LSB returns the lowest set index, or 64 when empty.
func (b Bitboard) LSB() int {
	return bits.TrailingZeros64(uint64(b))
}

// PopLSB removes and returns the least significant bit.
func (b *Bitboard) PopLSB() int {
	i := b.LSB()
	*b &= *b - 1
	return i
}

// ForEach calls the function for each set index, lowest first.
func (b Bitboard) ForEach(f func(index int)) {
	for b != 0 {
		f(b.PopLSB())
	}
}

// String returns a visual representation of the bitboard, rank 8 on top.
func (b Bitboard) String() string {
	var sb strings.Builder
	for rank := 8; rank >= 1; rank-- {
		fmt.Fprintf(&sb, "%d ", rank)
		for file := 1; file <= 8; file++ {
			if b.Has(rank, file) {
				sb.WriteString("1 ")
			} else {
				sb.WriteString(". ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
