package board

import (
	"github.com/objetos/chess-videogame/internal/bitboard"
)

// Attack patterns for the stepping pieces, anchored on a fixed square and
// shifted to the piece's square.
const (
	knightPattern       bitboard.Bitboard = 0xA1100110A // 5x5 footprint
	knightPatternCenter                   = 18
	kingPattern         bitboard.Bitboard = 0x70507 // 3x3 footprint
	kingPatternCenter                     = 9
)

var (
	filesOneTwo     = bitboard.File(1) | bitboard.File(2)
	filesSevenEight = bitboard.File(7) | bitboard.File(8)
)

// Piece is a piece standing on a square.
type Piece struct {
	Type   PieceType
	Color  Color
	Square Square
}

// NewPiece creates a piece of the given type and color on (rank, file).
func NewPiece(pt PieceType, c Color, rank, file int) Piece {
	return Piece{Type: pt, Color: c, Square: NewSquare(rank, file)}
}

// Rank returns the piece's rank.
func (p Piece) Rank() int { return p.Square.Rank() }

// File returns the piece's file.
func (p Piece) File() int { return p.Square.File() }

// Position returns the bitboard of the piece's square.
func (p Piece) Position() bitboard.Bitboard { return p.Square.Bitboard() }

// Symbol returns the grid symbol of the piece.
func (p Piece) Symbol() Symbol { return NewSymbol(p.Type, p.Color) }

// IsSlider reports whether the piece is a rook, bishop or queen.
func (p Piece) IsSlider() bool { return p.Type.IsSlider() }

// LineMasks returns the lines a slider moves along through its square.
// Non-sliders have none.
func (p Piece) LineMasks() []bitboard.Bitboard {
	r, f := p.Rank(), p.File()
	switch p.Type {
	case Rook:
		return []bitboard.Bitboard{bitboard.File(f), bitboard.Rank(r)}
	case Bishop:
		return []bitboard.Bitboard{bitboard.Diagonal(r, f), bitboard.AntiDiagonal(r, f)}
	case Queen:
		return []bitboard.Bitboard{
			bitboard.File(f), bitboard.Rank(r),
			bitboard.Diagonal(r, f), bitboard.AntiDiagonal(r, f),
		}
	}
	return nil
}

// slidesAlong reports whether the piece moves along the given line kind.
func (p Piece) slidesAlong(kind bitboard.LineKind) bool {
	switch kind {
	case bitboard.RankLine, bitboard.FileLine:
		return p.Type == Rook || p.Type == Queen
	case bitboard.DiagonalLine, bitboard.AntiDiagonalLine:
		return p.Type == Bishop || p.Type == Queen
	}
	return false
}

// Attacks returns every square the piece strikes, own pieces included.
// For pawns this is the capturing squares.
func (p Piece) Attacks(pos *Position) bitboard.Bitboard {
	switch p.Type {
	case Pawn:
		return p.CapturingSquares()
	case Knight:
		return stepAttacks(knightPattern, knightPatternCenter, p)
	case King:
		return stepAttacks(kingPattern, kingPatternCenter, p)
	default:
		var attacks bitboard.Bitboard
		for _, mask := range p.LineMasks() {
			attacks |= bitboard.HyperbolaQuintessence(pos.AllOccupied, p.Position(), mask).Whole
		}
		return attacks
	}
}

// Moves returns the pseudo-legal destinations of the piece: its movement
// pattern against the position's occupancy, ignoring king safety.
func (p Piece) Moves(pos *Position) bitboard.Bitboard {
	if p.Type == Pawn {
		return p.pawnMoves(pos)
	}
	return p.Attacks(pos) &^ pos.Occupied[p.Color]
}

// stepAttacks shifts a fixed pattern onto the piece's square and clears the
// files a shift wraps onto from the opposite edge.
func stepAttacks(pattern bitboard.Bitboard, center int, p Piece) bitboard.Bitboard {
	shift := int(p.Square) - center
	var attacks bitboard.Bitboard
	if shift >= 0 {
		attacks = pattern << uint(shift)
	} else {
		attacks = pattern >> uint(-shift)
	}

	switch f := p.File(); {
	case f <= 2:
		attacks &^= filesSevenEight
	case f >= 7:
		attacks &^= filesOneTwo
	}
	return attacks
}

// CapturingSquares returns the diagonal squares a pawn captures on,
// whether or not anything stands there. Other pieces return Empty.
func (p Piece) CapturingSquares() bitboard.Bitboard {
	if p.Type != Pawn {
		return bitboard.Empty
	}
	pos := p.Position()
	if p.Color == White {
		return (pos<<9)&^bitboard.File(8) | (pos<<7)&^bitboard.File(1)
	}
	return (pos>>7)&^bitboard.File(8) | (pos>>9)&^bitboard.File(1)
}

func (p Piece) pawnMoves(pos *Position) bitboard.Bitboard {
	empty := ^pos.AllOccupied
	from := p.Position()

	var single, double bitboard.Bitboard
	if p.Color == White {
		single = (from << 8) & empty
		if p.Rank() == 2 {
			double = (single << 8) & empty
		}
	} else {
		single = (from >> 8) & empty
		if p.Rank() == 7 {
			double = (single >> 8) & empty
		}
	}

	captures := p.CapturingSquares() & pos.Occupied[p.Color.Other()]
	return single | double | captures
}

// IsBeforePromotion reports whether a pawn stands one rank short of
// promotion.
func (p Piece) IsBeforePromotion() bool {
	if p.Type != Pawn {
		return false
	}
	if p.Color == White {
		return p.Rank() == 7
	}
	return p.Rank() == 2
}

// OnInitialSquare reports whether a king or rook stands where it starts a
// game, the precondition for castling with it.
func (p Piece) OnInitialSquare() bool {
	if p.Rank() != p.Color.backRank() {
		return false
	}
	switch p.Type {
	case King:
		return p.File() == kingStartFile
	case Rook:
		return p.File() == 1 || p.File() == 8
	}
	return false
}

// rookSide returns the castling side whose rook starts on sq for color c.
func rookSide(c Color, sq Square) (CastlingSide, bool) {
	for _, side := range CastlingSides {
		if sq == NewSquare(c.backRank(), castlingFiles[side].rookFrom) {
			return side, true
		}
	}
	return QueenSide, false
}
