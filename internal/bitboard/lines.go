package bitboard

// LineKind identifies which family of lines two squares share.
type LineKind uint8

const (
	NoLine LineKind = iota
	RankLine
	FileLine
	DiagonalLine     // rank - file constant (a1-h8 direction)
	AntiDiagonalLine // rank + file constant (a8-h1 direction)
)

// String returns the line family name.
func (k LineKind) String() string {
	switch k {
	case RankLine:
		return "rank"
	case FileLine:
		return "file"
	case DiagonalLine:
		return "diagonal"
	case AntiDiagonalLine:
		return "anti-diagonal"
	default:
		return "none"
	}
}

// Diagonal returns the a1-h8 oriented line through the square.
func Diagonal(rank, file int) Bitboard {
	CheckCoordinates(rank, file)
	return mirrorHorizontal(indexDiagonal(rank - file))
}

// AntiDiagonal returns the a8-h1 oriented line through the square.
func AntiDiagonal(rank, file int) Bitboard {
	CheckCoordinates(rank, file)
	return indexDiagonal(rank + file - 9)
}

// indexDiagonal builds, in raw bit coordinates, the line of squares whose
// row minus column equals k. Lines above the main one are built bit by bit;
// lines below are their reflection across the main one.
func indexDiagonal(k int) Bitboard {
	if k < 0 {
		return flipDiagonal(indexDiagonal(-k))
	}
	var mask Bitboard
	for col := 0; col+k < 8; col++ {
		mask |= 1 << uint((col+k)*8+col)
	}
	return mask
}

// flipDiagonal reflects the board across the raw main diagonal
// (bit row*8+col goes to col*8+row).
func flipDiagonal(b Bitboard) Bitboard {
	const (
		k1 Bitboard = 0x5500550055005500
		k2 Bitboard = 0x3333000033330000
		k4 Bitboard = 0x0f0f0f0f00000000
	)
	t := k4 & (b ^ (b << 28))
	b ^= t ^ (t >> 28)
	t = k2 & (b ^ (b << 14))
	b ^= t ^ (t >> 14)
	t = k1 & (b ^ (b << 7))
	b ^= t ^ (t >> 7)
	return b
}

// mirrorHorizontal reverses the bit order inside every rank byte,
// swapping file 1 with file 8, file 2 with file 7 and so on.
func mirrorHorizontal(b Bitboard) Bitboard {
	const (
		k1 Bitboard = 0x5555555555555555
		k2 Bitboard = 0x3333333333333333
		k4 Bitboard = 0x0f0f0f0f0f0f0f0f
	)
	b = ((b >> 1) & k1) | ((b & k1) << 1)
	b = ((b >> 2) & k2) | ((b & k2) << 2)
	b = ((b >> 4) & k4) | ((b & k4) << 4)
	return b
}

// Line returns the mask and family of the line shared by two squares.
// Identical or unaligned squares yield (Empty, NoLine).
func Line(rank1, file1, rank2, file2 int) (Bitboard, LineKind) {
	CheckCoordinates(rank1, file1)
	CheckCoordinates(rank2, file2)
	switch {
	case rank1 == rank2 && file1 == file2:
		return Empty, NoLine
	case rank1 == rank2:
		return Rank(rank1), RankLine
	case file1 == file2:
		return File(file1), FileLine
	case rank1-file1 == rank2-file2:
		return Diagonal(rank1, file1), DiagonalLine
	case rank1+file1 == rank2+file2:
		return AntiDiagonal(rank1, file1), AntiDiagonalLine
	}
	return Empty, NoLine
}
