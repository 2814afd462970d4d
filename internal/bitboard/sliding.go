package bitboard

// Rays holds the reach of a slider along one line.
type Rays struct {
	Whole    Bitboard // Positive | Negative
	Positive Bitboard // toward higher indices
	Negative Bitboard // toward lower indices
}

// HyperbolaQuintessence computes the squares reachable from position along
// mask, stopping at (and including) the first occupied square each way.
// position need not be part of occupied.
func HyperbolaQuintessence(occupied, position, mask Bitboard) Rays {
	blockers := occupied & mask
	positive := ((blockers - 2*position) ^ occupied) & mask
	negative := Reverse((Reverse(blockers)-2*Reverse(position))^Reverse(occupied)) & mask
	return Rays{
		Whole:    positive | negative,
		Positive: positive,
		Negative: negative,
	}
}

// Ray returns the squares on the straight line from start to destination.
// Unaligned squares yield Empty. The endpoints are added according to the
// include flags; when start equals destination the single square is
// returned if either flag is set.
func Ray(startRank, startFile, destRank, destFile int, includeStart, includeDestination bool) Bitboard {
	start := SquareToBitboard(startRank, startFile)
	dest := SquareToBitboard(destRank, destFile)
	if start == dest {
		if includeStart || includeDestination {
			return start
		}
		return Empty
	}

	mask, kind := Line(startRank, startFile, destRank, destFile)
	if kind == NoLine {
		return Empty
	}

	rays := HyperbolaQuintessence(dest, start, mask)
	ray := rays.Negative
	if dest > start {
		ray = rays.Positive
	}

	if !includeDestination {
		ray &^= dest
	}
	if includeStart {
		ray |= start
	}
	return ray
}
