package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Colors lists both playing colors, White first.
var Colors = [2]Color{White, Black}

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// forward is the rank step a pawn of this color advances by.
func (c Color) forward() int {
	if c == White {
		return 1
	}
	return -1
}

// backRank is the rank the color's king and rooks start on.
func (c Color) backRank() int {
	if c == White {
		return 1
	}
	return 8
}

// PieceType represents the type of a chess piece.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType PieceType = 6
)

// PieceTypes lists every concrete piece type.
var PieceTypes = [6]PieceType{Pawn, Knight, Bishop, Rook, Queen, King}

// PromotionTypes lists the piece types a pawn may promote to, Queen first.
var PromotionTypes = [4]PieceType{Queen, Rook, Bishop, Knight}

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the FEN character for the piece type (lowercase).
func (pt PieceType) Char() byte {
	if pt >= NoPieceType {
		return ' '
	}
	return "pnbrqk"[pt]
}

// IsSlider reports whether the type moves along open lines.
func (pt PieceType) IsSlider() bool {
	return pt == Bishop || pt == Rook || pt == Queen
}

// CastlingSide selects the wing a king castles toward.
type CastlingSide uint8

const (
	QueenSide CastlingSide = iota
	KingSide
)

// CastlingSides lists both wings.
var CastlingSides = [2]CastlingSide{QueenSide, KingSide}

// String returns "O-O-O" or "O-O".
func (s CastlingSide) String() string {
	if s == QueenSide {
		return "O-O-O"
	}
	return "O-O"
}

// castlingFiles holds, per side, the rook's starting file and the landing
// files of king and rook.
var castlingFiles = [2]struct {
	rookFrom, kingTo, rookTo int
}{
	QueenSide: {rookFrom: 1, kingTo: 3, rookTo: 4},
	KingSide:  {rookFrom: 8, kingTo: 7, rookTo: 6},
}

const kingStartFile = 5

// Symbol is a piece as stored on the grid: a type and color pair.
// The zero value is an empty square.
type Symbol uint8

const (
	NoSymbol    Symbol = 0
	WhitePawn   Symbol = 1 + Symbol(Pawn) + Symbol(White)*6
	WhiteKnight Symbol = 1 + Symbol(Knight) + Symbol(White)*6
	WhiteBishop Symbol = 1 + Symbol(Bishop) + Symbol(White)*6
	WhiteRook   Symbol = 1 + Symbol(Rook) + Symbol(White)*6
	WhiteQueen  Symbol = 1 + Symbol(Queen) + Symbol(White)*6
	WhiteKing   Symbol = 1 + Symbol(King) + Symbol(White)*6
	BlackPawn   Symbol = 1 + Symbol(Pawn) + Symbol(Black)*6
	BlackKnight Symbol = 1 + Symbol(Knight) + Symbol(Black)*6
	BlackBishop Symbol = 1 + Symbol(Bishop) + Symbol(Black)*6
	BlackRook   Symbol = 1 + Symbol(Rook) + Symbol(Black)*6
	BlackQueen  Symbol = 1 + Symbol(Queen) + Symbol(Black)*6
	BlackKing   Symbol = 1 + Symbol(King) + Symbol(Black)*6
)

// NewSymbol creates a Symbol from PieceType and Color.
func NewSymbol(pt PieceType, c Color) Symbol {
	if pt >= NoPieceType || c >= NoColor {
		return NoSymbol
	}
	return 1 + Symbol(pt) + Symbol(c)*6
}

// Type returns the PieceType of the symbol.
func (s Symbol) Type() PieceType {
	if s == NoSymbol || s > BlackKing {
		return NoPieceType
	}
	return PieceType((s - 1) % 6)
}

// Color returns the Color of the symbol.
func (s Symbol) Color() Color {
	if s == NoSymbol || s > BlackKing {
		return NoColor
	}
	return Color((s - 1) / 6)
}

// Char returns the FEN character: uppercase for white, lowercase for black,
// 0 for an empty square.
func (s Symbol) Char() byte {
	if s == NoSymbol || s > BlackKing {
		return 0
	}
	return "PNBRQKpnbrqk"[s-1]
}

// String returns the FEN character, or "." for an empty square.
func (s Symbol) String() string {
	if c := s.Char(); c != 0 {
		return string(c)
	}
	return "."
}

// SymbolFromChar converts a FEN character to a Symbol.
func SymbolFromChar(c byte) Symbol {
	switch c {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	default:
		return NoSymbol
	}
}
