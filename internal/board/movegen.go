package board

import (
	"github.com/objetos/chess-videogame/internal/bitboard"
)

// Checkers returns the enemy pieces attacking the king of color c.
// Without a king there are no checkers.
func (p *Position) Checkers(c Color) []Piece {
	king, ok := p.King(c)
	if !ok {
		return nil
	}
	var checkers []Piece
	p.ForEach(c.Other(), func(pc Piece) {
		if pc.Moves(p)&king.Position() != 0 {
			checkers = append(checkers, pc)
		}
	})
	return checkers
}

// InCheck returns true if the king of color c is attacked.
func (p *Position) InCheck(c Color) bool {
	return len(p.Checkers(c)) > 0
}

// threats returns the empty or enemy squares the attacker strikes, and the
// attacker's own pieces it defends.
func (p *Position) threats(attacker Color) (attacked, protected bitboard.Bitboard) {
	own := p.Occupied[attacker]
	p.ForEach(attacker, func(pc Piece) {
		a := pc.Attacks(p)
		attacked |= a &^ own
		protected |= a & own
	})
	return attacked, protected
}

// kingDanger returns every square the king of its color may not step on.
// The king is taken off the board while the enemy attacks are computed so
// that sliders see through it.
func (p *Position) kingDanger(king Piece) bitboard.Bitboard {
	bb := king.Position()
	p.Occupied[king.Color] &^= bb
	p.AllOccupied &^= bb

	attacked, protected := p.threats(king.Color.Other())

	p.Occupied[king.Color] |= bb
	p.AllOccupied |= bb
	return attacked | protected
}

// evasionMask returns the squares that answer a check from a single piece:
// its own square, plus the line to the king for sliders.
func evasionMask(checker, king Piece) bitboard.Bitboard {
	if !checker.IsSlider() {
		return checker.Position()
	}
	return bitboard.Ray(checker.Rank(), checker.File(), king.Rank(), king.File(), true, false)
}

// pinMasks restricts every piece pinned to the king to the pin line and the
// pinner's square. Unpinned squares hold Universe.
func (p *Position) pinMasks(king Piece) [64]bitboard.Bitboard {
	var pins [64]bitboard.Bitboard
	for i := range pins {
		pins[i] = bitboard.Universe
	}

	enemy := king.Color.Other()
	p.ForEach(enemy, func(slider Piece) {
		if !slider.IsSlider() {
			return
		}
		ray := bitboard.Ray(slider.Rank(), slider.File(), king.Rank(), king.File(), false, true)
		if ray == bitboard.Empty {
			return
		}
		line, kind := bitboard.Line(slider.Rank(), slider.File(), king.Rank(), king.File())
		if !slider.slidesAlong(kind) {
			return
		}

		fromSlider := bitboard.HyperbolaQuintessence(p.AllOccupied, slider.Position(), line).Whole
		fromKing := bitboard.HyperbolaQuintessence(p.AllOccupied, king.Position(), line).Whole
		pinned := fromSlider & fromKing & ray & p.Occupied[king.Color]
		if pinned.PopCount() != 1 {
			return
		}
		pins[pinned.LSB()] &= ray | slider.Position()
	})
	return pins
}

// LegalMoves returns every legal move for color c.
func (p *Position) LegalMoves(c Color) []Move {
	var moves []Move

	king, hasKing := p.King(c)
	evasion := bitboard.Universe
	var checkers []Piece
	var danger bitboard.Bitboard
	var pins [64]bitboard.Bitboard

	if hasKing {
		checkers = p.Checkers(c)
		danger = p.kingDanger(king)
		moves = appendMoves(moves, king.Square, king.Moves(p)&^danger)

		// Double check: only the king can move.
		if len(checkers) >= 2 {
			return moves
		}
		if len(checkers) == 1 {
			evasion = evasionMask(checkers[0], king)
		}
		pins = p.pinMasks(king)
	} else {
		for i := range pins {
			pins[i] = bitboard.Universe
		}
	}

	p.ForEach(c, func(pc Piece) {
		if pc.Type == King {
			return
		}
		targets := pc.Moves(p) & evasion & pins[pc.Square]
		if pc.IsBeforePromotion() {
			moves = appendPromotions(moves, pc.Square, targets)
			return
		}
		moves = appendMoves(moves, pc.Square, targets)
	})

	moves = append(moves, p.enPassantMoves(c)...)

	if hasKing && len(checkers) == 0 {
		moves = append(moves, p.castlingMoves(king, danger)...)
	}
	return moves
}

func appendMoves(moves []Move, from Square, targets bitboard.Bitboard) []Move {
	targets.ForEach(func(to int) {
		moves = append(moves, NewMove(from, Square(to)))
	})
	return moves
}

func appendPromotions(moves []Move, from Square, targets bitboard.Bitboard) []Move {
	targets.ForEach(func(to int) {
		for _, pt := range PromotionTypes {
			m := NewPromotion(from, Square(to))
			m.NewPiece = pt
			moves = append(moves, m)
		}
	})
	return moves
}

// enPassantMoves returns the legal en passant captures for color c.
//
// Each candidate is tested by lifting both pawns off the snapshot and
// checking the king again. The capture is kept only when the king is not in
// check afterwards, whatever its state before.
func (p *Position) enPassantMoves(c Color) []Move {
	if p.EnPassant == nil || !p.EnPassant.Armed {
		return nil
	}
	target := p.EnPassant.Target()
	victim, ok := p.PieceAt(target)
	if !ok || victim.Type != Pawn || victim.Color == c {
		return nil
	}

	captureRank := 5
	if c == Black {
		captureRank = 4
	}
	if target.Rank() != captureRank {
		return nil
	}
	dest := NewSquare(target.Rank()+c.forward(), target.File())
	if p.AllOccupied&dest.Bitboard() != 0 {
		return nil
	}

	// Candidates are collected first: the legality test edits the piece lists.
	var candidates []Piece
	for _, pawn := range p.Pieces[c][Pawn] {
		if pawn.Rank() == captureRank && abs(pawn.File()-target.File()) == 1 {
			candidates = append(candidates, pawn)
		}
	}

	var moves []Move
	for _, pawn := range candidates {
		before := p.InCheck(c)

		capturer, _ := p.lift(pawn.Square)
		captured, _ := p.lift(target)
		after := p.InCheck(c)
		p.restore(captured)
		p.restore(capturer)

		if enPassantLegal(before, after) {
			moves = append(moves, NewEnPassant(pawn.Square, dest))
		}
	}
	return moves
}

func enPassantLegal(inCheckBefore, inCheckAfter bool) bool {
	switch {
	case !inCheckBefore && !inCheckAfter:
		return true
	case inCheckBefore && !inCheckAfter:
		return true
	case !inCheckBefore && inCheckAfter:
		return false
	default:
		return false
	}
}

// castlingMoves returns the castling moves available to the king. The caller
// guarantees the king is not in check; danger holds the squares the enemy
// strikes.
func (p *Position) castlingMoves(king Piece, danger bitboard.Bitboard) []Move {
	if p.Castling == nil || !king.OnInitialSquare() {
		return nil
	}
	c := king.Color
	rank := c.backRank()

	var moves []Move
	for _, side := range CastlingSides {
		if !p.Castling.CanCastle(c, side) {
			continue
		}
		files := castlingFiles[side]
		rook, ok := p.PieceAt(NewSquare(rank, files.rookFrom))
		if !ok || rook.Type != Rook || rook.Color != c || !rook.OnInitialSquare() {
			continue
		}

		between := bitboard.Ray(rank, kingStartFile, rank, files.rookFrom, false, false)
		if between&p.AllOccupied != 0 {
			continue
		}

		transit := bitboard.Ray(rank, kingStartFile, rank, files.kingTo, false, true)
		if transit&danger != 0 {
			continue
		}
		moves = append(moves, NewCastling(c, side))
	}
	return moves
}
