package board

import (
	"fmt"
	"strings"

	"github.com/objetos/chess-videogame/internal/fen"
)

// NewStartingBoard returns a board set up for a new game.
func NewStartingBoard() *Board {
	b, _, err := NewBoardFromFEN(fen.StartFEN)
	if err != nil {
		panic("board: invalid start position: " + err.Error())
	}
	return b
}

// NewBoardFromFEN creates a board from a FEN string and returns it with the
// side to move. Castling rights come from the pieces on their initial
// squares, narrowed by the castling field when the string has one. The en
// passant field arms en passant when the double-stepped pawn is present.
func NewBoardFromFEN(s string) (*Board, Color, error) {
	rec, err := fen.Parse(s)
	if err != nil {
		return nil, White, err
	}
	b, err := NewBoard(rec.Grid)
	if err != nil {
		return nil, White, err
	}

	side := White
	if rec.SideToMove == 'b' {
		side = Black
	}

	if len(strings.Fields(s)) > 2 {
		b.castling &= parseCastling(rec.Castling)
	}

	if rec.EnPassant != "-" {
		target, err := ParseSquare(rec.EnPassant)
		if err != nil {
			return nil, White, fmt.Errorf("en passant %q: %v: %w", rec.EnPassant, err, fen.ErrInvalidFEN)
		}
		// The pawn stands one rank past the target, seen from the side that moved.
		pawnRank := target.Rank() - side.forward()
		if b.at(NewSquare(pawnRank, target.File())) == NewSymbol(Pawn, side.Other()) {
			b.enPassant = EnPassantInfo{Armed: true, CaptureRank: pawnRank, CaptureFile: target.File()}
		}
	}

	b.rebuild()
	return b, side, nil
}

func parseCastling(s string) CastlingRights {
	cr := NoCastling
	for _, c := range s {
		switch c {
		case 'K':
			cr |= WhiteKingSideCastle
		case 'Q':
			cr |= WhiteQueenSideCastle
		case 'k':
			cr |= BlackKingSideCastle
		case 'q':
			cr |= BlackQueenSideCastle
		}
	}
	return cr
}

// Grid returns the board contents as FEN piece letters.
func (b *Board) Grid() fen.Grid {
	var g fen.Grid
	for rank := 1; rank <= 8; rank++ {
		for file := 1; file <= 8; file++ {
			g.Set(rank, file, b.grid[rank-1][file-1].Char())
		}
	}
	return g
}

// FEN returns the FEN string of the board with c to move. Move clocks are
// not tracked and are always "0 1".
func (b *Board) FEN(c Color) string {
	rec := fen.Record{
		Grid:           b.Grid(),
		SideToMove:     'w',
		Castling:       b.castling.String(),
		EnPassant:      "-",
		FullMoveNumber: 1,
	}
	if c == Black {
		rec.SideToMove = 'b'
	}
	if b.enPassant.Armed {
		pawn := b.enPassant.Target()
		behind := pawn.Rank() - b.at(pawn).Color().forward()
		rec.EnPassant = NewSquare(behind, pawn.File()).String()
	}
	return rec.String()
}
