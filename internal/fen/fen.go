// Package fen converts between FEN strings and grids of piece symbols.
package fen

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ErrInvalidFEN is wrapped by every parse failure.
var ErrInvalidFEN = errors.New("invalid FEN")

// Symbols lists the accepted piece letters, white first.
const Symbols = "PNBRQKpnbrqk"

// Grid holds one piece symbol per square, indexed [rank-1][file-1].
// Empty squares are 0.
type Grid [8][8]byte

// At returns the symbol on a square, 0 when empty.
func (g *Grid) At(rank, file int) byte {
	return g[rank-1][file-1]
}

// Set places a symbol on a square; 0 clears it.
func (g *Grid) Set(rank, file int, symbol byte) {
	g[rank-1][file-1] = symbol
}

// Record is a parsed FEN string.
type Record struct {
	Grid           Grid
	SideToMove     byte   // 'w' or 'b'
	Castling       string // "KQkq" subset or "-"
	EnPassant      string // target square or "-"
	HalfMoveClock  int
	FullMoveNumber int
}

// Parse parses a FEN string. Only the placement field is mandatory; missing
// fields default to "w - - 0 1".
func Parse(s string) (Record, error) {
	parts := strings.Fields(s)
	if len(parts) == 0 {
		return Record{}, fmt.Errorf("empty FEN string: %w", ErrInvalidFEN)
	}

	rec := Record{
		SideToMove:     'w',
		Castling:       "-",
		EnPassant:      "-",
		FullMoveNumber: 1,
	}

	grid, err := ParsePlacement(parts[0])
	if err != nil {
		return Record{}, err
	}
	rec.Grid = grid

	if len(parts) > 1 {
		switch parts[1] {
		case "w", "b":
			rec.SideToMove = parts[1][0]
		default:
			return Record{}, fmt.Errorf("invalid side to move %q: %w", parts[1], ErrInvalidFEN)
		}
	}

	if len(parts) > 2 {
		if err := checkCastling(parts[2]); err != nil {
			return Record{}, err
		}
		rec.Castling = parts[2]
	}

	if len(parts) > 3 {
		if err := checkEnPassant(parts[3]); err != nil {
			return Record{}, err
		}
		rec.EnPassant = parts[3]
	}

	if len(parts) > 4 {
		hmc, err := strconv.Atoi(parts[4])
		if err != nil || hmc < 0 {
			return Record{}, fmt.Errorf("invalid half-move clock %q: %w", parts[4], ErrInvalidFEN)
		}
		rec.HalfMoveClock = hmc
	}

	if len(parts) > 5 {
		fmn, err := strconv.Atoi(parts[5])
		if err != nil || fmn < 1 {
			return Record{}, fmt.Errorf("invalid full-move number %q: %w", parts[5], ErrInvalidFEN)
		}
		rec.FullMoveNumber = fmn
	}

	return rec, nil
}

// ParsePlacement parses the piece placement field of a FEN string.
func ParsePlacement(placement string) (Grid, error) {
	var grid Grid

	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return grid, fmt.Errorf("need 8 ranks, got %d: %w", len(ranks), ErrInvalidFEN)
	}

	for i, rankStr := range ranks {
		rank := 8 - i // FEN starts from rank 8
		file := 1

		for _, c := range rankStr {
			if file > 8 {
				return grid, fmt.Errorf("too many squares in rank %d: %w", rank, ErrInvalidFEN)
			}
			switch {
			case c >= '1' && c <= '8':
				file += int(c - '0')
			case strings.ContainsRune(Symbols, c):
				grid.Set(rank, file, byte(c))
				file++
			default:
				return grid, fmt.Errorf("invalid piece character %q: %w", c, ErrInvalidFEN)
			}
		}

		if file != 9 {
			return grid, fmt.Errorf("rank %d has %d squares: %w", rank, file-1, ErrInvalidFEN)
		}
	}

	return grid, nil
}

func checkCastling(s string) error {
	if s == "-" {
		return nil
	}
	for _, c := range s {
		if !strings.ContainsRune("KQkq", c) {
			return fmt.Errorf("invalid castling character %q: %w", c, ErrInvalidFEN)
		}
	}
	return nil
}

func checkEnPassant(s string) error {
	if s == "-" {
		return nil
	}
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || (s[1] != '3' && s[1] != '6') {
		return fmt.Errorf("invalid en passant square %q: %w", s, ErrInvalidFEN)
	}
	return nil
}

// Placement returns the piece placement field for the grid.
func (g *Grid) Placement() string {
	var sb strings.Builder

	for rank := 8; rank >= 1; rank-- {
		empty := 0
		for file := 1; file <= 8; file++ {
			symbol := g.At(rank, file)
			if symbol == 0 {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(symbol)
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 1 {
			sb.WriteByte('/')
		}
	}

	return sb.String()
}

// String returns the full FEN representation of the record.
func (r Record) String() string {
	var sb strings.Builder

	sb.WriteString(r.Grid.Placement())

	sb.WriteByte(' ')
	if r.SideToMove == 'b' {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('w')
	}

	sb.WriteByte(' ')
	sb.WriteString(orDash(r.Castling))
	sb.WriteByte(' ')
	sb.WriteString(orDash(r.EnPassant))

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(r.HalfMoveClock))
	sb.WriteByte(' ')
	fmn := r.FullMoveNumber
	if fmn < 1 {
		fmn = 1
	}
	sb.WriteString(strconv.Itoa(fmn))

	return sb.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
