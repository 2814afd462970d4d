package board

import (
	"fmt"
	"strings"
)

// MoveFlag tells the controller how to apply a move.
type MoveFlag uint8

// Move flags
const (
	Regular MoveFlag = iota
	Promotion
	Castling
	EnPassant
)

// String returns the flag name.
func (f MoveFlag) String() string {
	switch f {
	case Regular:
		return "Regular"
	case Promotion:
		return "Promotion"
	case Castling:
		return "Castling"
	case EnPassant:
		return "EnPassant"
	default:
		return fmt.Sprintf("MoveFlag(%d)", uint8(f))
	}
}

// Move is a move from one square to another. For castling moves From and To
// are the king's squares and Side names the wing. For promotions NewPiece is
// the piece the pawn becomes; callers may change it before applying.
type Move struct {
	From, To Square
	Flag     MoveFlag
	Side     CastlingSide
	NewPiece PieceType
}

// NoMove represents an invalid or null move.
var NoMove = Move{From: NoSquare, To: NoSquare}

// NewMove creates a regular move.
func NewMove(from, to Square) Move {
	return Move{From: from, To: to, Flag: Regular}
}

// NewPromotion creates a promotion move to a queen.
func NewPromotion(from, to Square) Move {
	return Move{From: from, To: to, Flag: Promotion, NewPiece: Queen}
}

// NewEnPassant creates an en passant capture.
func NewEnPassant(from, to Square) Move {
	return Move{From: from, To: to, Flag: EnPassant}
}

// NewCastling creates a castling move for the given color and side.
func NewCastling(c Color, side CastlingSide) Move {
	rank := c.backRank()
	return Move{
		From: NewSquare(rank, kingStartFile),
		To:   NewSquare(rank, castlingFiles[side].kingTo),
		Flag: Castling,
		Side: side,
	}
}

// StartRank returns the rank the move starts on.
func (m Move) StartRank() int { return m.From.Rank() }

// StartFile returns the file the move starts on.
func (m Move) StartFile() int { return m.From.File() }

// EndRank returns the rank the move ends on.
func (m Move) EndRank() int { return m.To.Rank() }

// EndFile returns the file the move ends on.
func (m Move) EndFile() int { return m.To.File() }

// IsPromotion returns true if this is a promotion move.
func (m Move) IsPromotion() bool { return m.Flag == Promotion }

// IsCastling returns true if this is a castling move.
func (m Move) IsCastling() bool { return m.Flag == Castling }

// IsEnPassant returns true if this is an en passant capture.
func (m Move) IsEnPassant() bool { return m.Flag == EnPassant }

// String returns the coordinate form of the move (e.g., "e2e4", "e7e8n").
func (m Move) String() string {
	if !m.From.IsValid() || !m.To.IsValid() {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	if m.IsPromotion() {
		s += string(m.NewPiece.Char())
	}
	return s
}

// ParseMove resolves a coordinate move string (e.g., "e2e4", "e7e8q",
// "e1g1") against the legal moves of the given color. A promotion without a
// suffix promotes to a queen.
func ParseMove(b *Board, s string, c Color) (Move, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 4 && len(s) != 5 {
		return NoMove, fmt.Errorf("move %q: %w", s, ErrInvalidMove)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, fmt.Errorf("move %q: %v: %w", s, err, ErrInvalidMove)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, fmt.Errorf("move %q: %v: %w", s, err, ErrInvalidMove)
	}

	promo := Queen
	if len(s) == 5 {
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("invalid promotion piece %q: %w", s[4], ErrInvalidMove)
		}
	}

	for _, m := range b.GenerateMoves(c) {
		if m.From != from || m.To != to {
			continue
		}
		if m.IsPromotion() && m.NewPiece != promo {
			continue
		}
		return m, nil
	}
	return NoMove, fmt.Errorf("%s is not a legal move for %s: %w", s, c, ErrInvalidMove)
}
