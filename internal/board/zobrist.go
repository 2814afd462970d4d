package board

// Zobrist hash keys for board hashing.
// Uses PRNG with fixed seed for reproducibility.
var (
	zobristPiece     [2][6][64]uint64 // [Color][PieceType][Square]
	zobristEnPassant [8]uint64        // One per file
	zobristCastling  [16]uint64       // All 16 castling combinations
)

func init() {
	initZobrist()
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := &prng{state: 0x98F107A2BEEF1234}

	for _, c := range Colors {
		for _, pt := range PieceTypes {
			for sq := H1; sq < NoSquare; sq++ {
				zobristPiece[c][pt][sq] = rng.next()
			}
		}
	}

	for file := range zobristEnPassant {
		zobristEnPassant[file] = rng.next()
	}

	for i := range zobristCastling {
		zobristCastling[i] = rng.next()
	}
}

// Hash returns the Zobrist key of the board: pieces, castling rights and
// the en passant file. The side to move is not part of the board and is
// left to callers.
func (b *Board) Hash() uint64 {
	var h uint64
	for rank := 1; rank <= 8; rank++ {
		for file := 1; file <= 8; file++ {
			s := b.grid[rank-1][file-1]
			if s == NoSymbol {
				continue
			}
			h ^= zobristPiece[s.Color()][s.Type()][NewSquare(rank, file)]
		}
	}
	h ^= zobristCastling[b.castling&AllCastling]
	if b.enPassant.Armed {
		h ^= zobristEnPassant[b.enPassant.CaptureFile-1]
	}
	return h
}
