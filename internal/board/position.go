package board

import (
	"fmt"
	"strings"

	"github.com/objetos/chess-videogame/internal/bitboard"
	"golang.org/x/exp/slices"
)

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// CastlingRight returns the flag for one color and side.
func CastlingRight(c Color, side CastlingSide) CastlingRights {
	switch {
	case c == White && side == KingSide:
		return WhiteKingSideCastle
	case c == White:
		return WhiteQueenSideCastle
	case side == KingSide:
		return BlackKingSideCastle
	default:
		return BlackQueenSideCastle
	}
}

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// CanCastle returns true if the given color keeps the right on that side.
func (cr CastlingRights) CanCastle(c Color, side CastlingSide) bool {
	return cr&CastlingRight(c, side) != 0
}

// EnPassantInfo records the pawn that has just advanced two squares.
// It is valid for the single move that follows.
type EnPassantInfo struct {
	Armed       bool
	CaptureRank int
	CaptureFile int
}

// Target returns the square of the pawn that may be captured, or NoSquare.
func (ep EnPassantInfo) Target() Square {
	if !ep.Armed {
		return NoSquare
	}
	return NewSquare(ep.CaptureRank, ep.CaptureFile)
}

// Grid is the canonical board contents, indexed [rank-1][file-1].
type Grid [8][8]Symbol

// Position is a snapshot of a grid indexed for move generation. It is
// rebuilt from the grid after every change and never edited by callers.
// Castling rights and en-passant info belong to the Board and are shared
// by reference.
type Position struct {
	// Pieces by [Color][PieceType].
	Pieces [2][6][]Piece

	Occupied    [2]bitboard.Bitboard // All pieces of each color
	AllOccupied bitboard.Bitboard    // All pieces on the board

	Castling  *CastlingRights
	EnPassant *EnPassantInfo
}

// NewPosition indexes a grid. castling and enPassant are kept as references.
func NewPosition(grid *Grid, castling *CastlingRights, enPassant *EnPassantInfo) *Position {
	p := &Position{
		Castling:  castling,
		EnPassant: enPassant,
	}
	for rank := 1; rank <= 8; rank++ {
		for file := 1; file <= 8; file++ {
			s := grid[rank-1][file-1]
			if s == NoSymbol {
				continue
			}
			p.add(NewPiece(s.Type(), s.Color(), rank, file))
		}
	}
	return p
}

// King returns the king of the given color, if there is one.
func (p *Position) King(c Color) (Piece, bool) {
	kings := p.Pieces[c][King]
	if len(kings) == 0 {
		return Piece{}, false
	}
	return kings[0], true
}

// PieceAt returns the piece on a square.
func (p *Position) PieceAt(sq Square) (Piece, bool) {
	bb := sq.Bitboard()
	if p.AllOccupied&bb == 0 {
		return Piece{}, false
	}
	c := White
	if p.Occupied[Black]&bb != 0 {
		c = Black
	}
	for _, pt := range PieceTypes {
		for _, pc := range p.Pieces[c][pt] {
			if pc.Square == sq {
				return pc, true
			}
		}
	}
	return Piece{}, false
}

// ForEach calls fn for every piece of color c, pawns first.
func (p *Position) ForEach(c Color, fn func(Piece)) {
	for _, pt := range PieceTypes {
		for _, pc := range p.Pieces[c][pt] {
			fn(pc)
		}
	}
}

// liftedPiece remembers where a lifted piece sat in its list.
type liftedPiece struct {
	piece Piece
	index int
}

// lift removes the piece on sq from the snapshot (not from the grid).
// Callers must restore it before the snapshot is used by anyone else.
func (p *Position) lift(sq Square) (liftedPiece, bool) {
	pc, ok := p.PieceAt(sq)
	if !ok {
		return liftedPiece{}, false
	}
	list := p.Pieces[pc.Color][pc.Type]
	i := slices.IndexFunc(list, func(other Piece) bool { return other.Square == sq })
	p.Pieces[pc.Color][pc.Type] = slices.Delete(list, i, i+1)

	bb := sq.Bitboard()
	p.Occupied[pc.Color] &^= bb
	p.AllOccupied &^= bb
	return liftedPiece{piece: pc, index: i}, true
}

// restore undoes a lift, putting the piece back in its original slot.
func (p *Position) restore(l liftedPiece) {
	pc := l.piece
	p.Pieces[pc.Color][pc.Type] = slices.Insert(p.Pieces[pc.Color][pc.Type], l.index, pc)
	bb := pc.Position()
	p.Occupied[pc.Color] |= bb
	p.AllOccupied |= bb
}

func (p *Position) add(pc Piece) {
	p.Pieces[pc.Color][pc.Type] = append(p.Pieces[pc.Color][pc.Type], pc)
	bb := pc.Position()
	p.Occupied[pc.Color] |= bb
	p.AllOccupied |= bb
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for rank := 8; rank >= 1; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank)
		for file := 1; file <= 8; file++ {
			if pc, ok := p.PieceAt(NewSquare(rank, file)); ok {
				sb.WriteString(pc.Symbol().String() + " ")
			} else {
				sb.WriteString(". ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	if p.Castling != nil {
		fmt.Fprintf(&sb, "Castling: %s\n", *p.Castling)
	}
	if p.EnPassant != nil {
		fmt.Fprintf(&sb, "En passant: %s\n", p.EnPassant.Target())
	}
	return sb.String()
}
