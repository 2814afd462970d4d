package board

import (
	"errors"
	"fmt"
	"log"
)

// DebugMoveValidation enables logging of rejected moves and failed undos.
var DebugMoveValidation = false

// Errors returned when a move cannot be applied.
var (
	ErrSquareOccupied = errors.New("square occupied")
	ErrSquareEmpty    = errors.New("square empty")
	ErrKingCapture    = errors.New("king capture")
	ErrInvalidMove    = errors.New("invalid move")
	ErrInvalidSymbol  = errors.New("invalid piece symbol")
)

// GameStatus is the outcome of a position for the side to move.
type GameStatus uint8

const (
	Ongoing GameStatus = iota
	Checkmate
	Stalemate
)

// String returns the status name.
func (s GameStatus) String() string {
	switch s {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	default:
		return "ongoing"
	}
}

// Board owns the canonical grid and applies and reverses moves on it.
// A Board is not safe for concurrent use: move generation edits the
// snapshot while it runs. Moves must be undone in the reverse order they
// were made.
type Board struct {
	grid      Grid
	position  *Position
	castling  CastlingRights
	enPassant EnPassantInfo
	captured  [2][]Symbol
	changes   changeLog
}

// NewBoard creates a board from a grid of FEN piece letters. Castling
// rights are granted for every king and rook found on their initial
// squares.
func NewBoard(g [8][8]byte) (*Board, error) {
	b := &Board{}
	for rank := 1; rank <= 8; rank++ {
		for file := 1; file <= 8; file++ {
			c := g[rank-1][file-1]
			if c == 0 {
				continue
			}
			s := SymbolFromChar(c)
			if s == NoSymbol {
				return nil, fmt.Errorf("%q on %s: %w", c, NewSquare(rank, file), ErrInvalidSymbol)
			}
			b.grid[rank-1][file-1] = s
		}
	}
	b.castling = b.initialCastlingRights()
	b.rebuild()
	return b, nil
}

func (b *Board) initialCastlingRights() CastlingRights {
	rights := NoCastling
	for _, c := range Colors {
		rank := c.backRank()
		if b.at(NewSquare(rank, kingStartFile)) != NewSymbol(King, c) {
			continue
		}
		for _, side := range CastlingSides {
			if b.at(NewSquare(rank, castlingFiles[side].rookFrom)) == NewSymbol(Rook, c) {
				rights |= CastlingRight(c, side)
			}
		}
	}
	return rights
}

// rebuild indexes the grid into a fresh snapshot.
func (b *Board) rebuild() {
	b.position = NewPosition(&b.grid, &b.castling, &b.enPassant)
}

func (b *Board) at(sq Square) Symbol {
	return b.grid[sq.Rank()-1][sq.File()-1]
}

// place puts a symbol on an empty square without logging it.
func (b *Board) place(s Symbol, sq Square) error {
	if b.at(sq) != NoSymbol {
		return fmt.Errorf("place %s on %s: %w", s, sq, ErrSquareOccupied)
	}
	b.grid[sq.Rank()-1][sq.File()-1] = s
	return nil
}

// take clears a square without logging it.
func (b *Board) take(sq Square) (Symbol, error) {
	s := b.at(sq)
	if s == NoSymbol {
		return NoSymbol, fmt.Errorf("remove from %s: %w", sq, ErrSquareEmpty)
	}
	b.grid[sq.Rank()-1][sq.File()-1] = NoSymbol
	return s, nil
}

func (b *Board) addPiece(s Symbol, sq Square) error {
	if err := b.place(s, sq); err != nil {
		return err
	}
	b.changes.record(change{kind: addition, symbol: s, square: sq})
	return nil
}

func (b *Board) removePiece(sq Square) (Symbol, error) {
	s, err := b.take(sq)
	if err != nil {
		return NoSymbol, err
	}
	b.changes.record(change{kind: removal, symbol: s, square: sq})
	return s, nil
}

func (b *Board) capturePiece(sq Square) error {
	s := b.at(sq)
	if s == NoSymbol {
		return fmt.Errorf("capture on %s: %w", sq, ErrSquareEmpty)
	}
	if s.Type() == King {
		return fmt.Errorf("capture on %s: %w", sq, ErrKingCapture)
	}
	if _, err := b.take(sq); err != nil {
		return err
	}
	b.captured[s.Color()] = append(b.captured[s.Color()], s)
	b.changes.record(change{kind: capture, symbol: s, square: sq})
	return nil
}

// MakeMove applies a move. Moves should come from GenerateMoves; anything
// else may be rejected with an error, in which case the board is left as it
// was before the call.
func (b *Board) MakeMove(m Move) error {
	b.changes.open()
	err := b.applyMove(m)
	if err != nil {
		frame, _ := b.changes.pop()
		if rerr := b.revert(frame); rerr != nil {
			err = errors.Join(err, rerr)
		}
		if DebugMoveValidation {
			log.Printf("MakeMove %s rejected: %v (fen %s)", m, err, b.FEN(White))
		}
	}
	b.rebuild()
	return err
}

func (b *Board) applyMove(m Move) error {
	if !m.From.IsValid() || !m.To.IsValid() || m.From == m.To {
		return fmt.Errorf("%s: %w", m, ErrInvalidMove)
	}
	mover := b.at(m.From)
	if mover == NoSymbol {
		return fmt.Errorf("%s: %w", m, ErrSquareEmpty)
	}

	b.updateCastlingRights(m, mover)
	b.updateEnPassant(m, mover)

	switch m.Flag {
	case Regular:
		return b.regular(m.From, m.To)
	case Promotion:
		return b.promote(m, mover)
	case Castling:
		return b.castle(m, mover)
	case EnPassant:
		if err := b.regular(m.From, m.To); err != nil {
			return err
		}
		return b.capturePiece(NewSquare(m.StartRank(), m.EndFile()))
	default:
		return fmt.Errorf("%s has flag %s: %w", m, m.Flag, ErrInvalidMove)
	}
}

// regular moves the piece on from to to, capturing whatever enemy piece
// stands there.
func (b *Board) regular(from, to Square) error {
	mover := b.at(from)
	if mover == NoSymbol {
		return fmt.Errorf("move from %s: %w", from, ErrSquareEmpty)
	}
	if target := b.at(to); target != NoSymbol {
		if target.Color() == mover.Color() {
			return fmt.Errorf("move to %s: %w", to, ErrSquareOccupied)
		}
		if err := b.capturePiece(to); err != nil {
			return err
		}
	}
	s, err := b.removePiece(from)
	if err != nil {
		return err
	}
	return b.addPiece(s, to)
}

func (b *Board) promote(m Move, mover Symbol) error {
	if mover.Type() != Pawn {
		return fmt.Errorf("%s promotes a %s: %w", m, mover.Type(), ErrInvalidMove)
	}
	switch m.NewPiece {
	case Queen, Rook, Bishop, Knight:
	default:
		return fmt.Errorf("%s promotes to %s: %w", m, m.NewPiece, ErrInvalidMove)
	}
	if err := b.regular(m.From, m.To); err != nil {
		return err
	}
	if _, err := b.removePiece(m.To); err != nil {
		return err
	}
	return b.addPiece(NewSymbol(m.NewPiece, mover.Color()), m.To)
}

func (b *Board) castle(m Move, mover Symbol) error {
	if mover.Type() != King {
		return fmt.Errorf("%s castles a %s: %w", m, mover.Type(), ErrInvalidMove)
	}
	rank := m.StartRank()
	files := castlingFiles[m.Side]
	if err := b.regular(m.From, m.To); err != nil {
		return err
	}
	return b.regular(NewSquare(rank, files.rookFrom), NewSquare(rank, files.rookTo))
}

// updateCastlingRights clears the rights a move gives up: any king move, a
// rook leaving its corner, or a rook captured on its corner.
func (b *Board) updateCastlingRights(m Move, mover Symbol) {
	c := mover.Color()
	switch mover.Type() {
	case King:
		for _, side := range CastlingSides {
			b.clearCastlingRight(CastlingRight(c, side))
		}
	case Rook:
		if side, ok := rookSide(c, m.From); ok {
			b.clearCastlingRight(CastlingRight(c, side))
		}
	}

	if target := b.at(m.To); target.Type() == Rook && target.Color() != c {
		if side, ok := rookSide(target.Color(), m.To); ok {
			b.clearCastlingRight(CastlingRight(target.Color(), side))
		}
	}
}

func (b *Board) clearCastlingRight(right CastlingRights) {
	if b.castling&right == 0 {
		return
	}
	b.castling &^= right
	b.changes.record(change{kind: castlingRightsChange, right: right})
}

// updateEnPassant arms en passant after a pawn double step and disarms it
// after any other move.
func (b *Board) updateEnPassant(m Move, mover Symbol) {
	next := EnPassantInfo{}
	if mover.Type() == Pawn && m.Flag == Regular && abs(m.EndRank()-m.StartRank()) == 2 {
		next = EnPassantInfo{Armed: true, CaptureRank: m.EndRank(), CaptureFile: m.EndFile()}
	}
	if next == b.enPassant {
		return
	}
	b.changes.record(change{kind: enPassantUpdate, prev: b.enPassant})
	b.enPassant = next
}

// UnmakeMove reverses the most recent move. Without one it does nothing.
func (b *Board) UnmakeMove() error {
	frame, ok := b.changes.pop()
	if !ok {
		return nil
	}
	err := b.revert(frame)
	if err != nil && DebugMoveValidation {
		log.Printf("UnmakeMove failed: %v (fen %s)", err, b.FEN(White))
	}
	b.rebuild()
	return err
}

// revert undoes the changes of a frame, newest first.
func (b *Board) revert(frame []change) error {
	for i := len(frame) - 1; i >= 0; i-- {
		ch := frame[i]
		var err error
		switch ch.kind {
		case addition:
			_, err = b.take(ch.square)
		case removal:
			err = b.place(ch.symbol, ch.square)
		case castlingRightsChange:
			b.castling |= ch.right
		case enPassantUpdate:
			b.enPassant = ch.prev
		case capture:
			b.uncapture(ch.symbol)
			err = b.place(ch.symbol, ch.square)
		}
		if err != nil {
			return fmt.Errorf("revert %s: %w", ch, err)
		}
	}
	return nil
}

// uncapture strips the most recent occurrence of s from its captured list.
func (b *Board) uncapture(s Symbol) {
	list := b.captured[s.Color()]
	for i := len(list) - 1; i >= 0; i-- {
		if list[i] == s {
			b.captured[s.Color()] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// GenerateMoves returns the legal moves for color c.
func (b *Board) GenerateMoves(c Color) []Move {
	return b.position.LegalMoves(c)
}

// IsKingInCheck returns true if the king of color c is attacked.
func (b *Board) IsKingInCheck(c Color) bool {
	return b.position.InCheck(c)
}

// PieceOnSquare returns the piece on (rank, file), or NoSymbol.
func (b *Board) PieceOnSquare(rank, file int) Symbol {
	return b.at(NewSquare(rank, file))
}

// CapturedPieces returns the pieces of color c captured so far, oldest first.
func (b *Board) CapturedPieces(c Color) []Symbol {
	return append([]Symbol(nil), b.captured[c]...)
}

// CastlingRights returns the current castling rights.
func (b *Board) CastlingRights() CastlingRights {
	return b.castling
}

// EnPassant returns the current en passant info.
func (b *Board) EnPassant() EnPassantInfo {
	return b.enPassant
}

// Position returns the current snapshot. It is replaced on every change and
// must not be modified.
func (b *Board) Position() *Position {
	return b.position
}

// MovesMade returns the number of moves that can be undone.
func (b *Board) MovesMade() int {
	return b.changes.depth()
}

// Status reports whether color c is mated, stalemated or still playing.
func (b *Board) Status(c Color) GameStatus {
	if len(b.GenerateMoves(c)) > 0 {
		return Ongoing
	}
	if b.IsKingInCheck(c) {
		return Checkmate
	}
	return Stalemate
}

// Clone returns an independent copy of the board, history included.
func (b *Board) Clone() *Board {
	nb := &Board{
		grid:      b.grid,
		castling:  b.castling,
		enPassant: b.enPassant,
		changes:   b.changes.clone(),
	}
	for _, c := range Colors {
		nb.captured[c] = append([]Symbol(nil), b.captured[c]...)
	}
	nb.rebuild()
	return nb
}

// String returns a visual representation of the board.
func (b *Board) String() string {
	return b.position.String()
}
