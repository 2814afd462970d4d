package board

import "fmt"

// changeKind tags a change log entry.
type changeKind uint8

const (
	addition changeKind = iota
	removal
	castlingRightsChange
	enPassantUpdate
	capture
)

func (k changeKind) String() string {
	switch k {
	case addition:
		return "addition"
	case removal:
		return "removal"
	case castlingRightsChange:
		return "castling"
	case enPassantUpdate:
		return "en passant"
	case capture:
		return "capture"
	default:
		return fmt.Sprintf("changeKind(%d)", uint8(k))
	}
}

// change is one reversible edit to the board state.
type change struct {
	kind   changeKind
	symbol Symbol         // addition, removal, capture
	square Square         // addition, removal, capture
	right  CastlingRights // castlingRightsChange: the right that was cleared
	prev   EnPassantInfo  // enPassantUpdate: the value before the update
}

func (ch change) String() string {
	switch ch.kind {
	case castlingRightsChange:
		return fmt.Sprintf("%s -%s", ch.kind, ch.right)
	case enPassantUpdate:
		return fmt.Sprintf("%s was %s", ch.kind, ch.prev.Target())
	default:
		return fmt.Sprintf("%s %s %s", ch.kind, ch.symbol, ch.square)
	}
}

// changeLog is a stack of frames, one per applied move. Each frame lists
// its changes in the order they were made.
type changeLog struct {
	frames [][]change
}

// open starts the frame for a new move.
func (l *changeLog) open() {
	l.frames = append(l.frames, nil)
}

// record appends a change to the current frame.
func (l *changeLog) record(ch change) {
	n := len(l.frames)
	if n == 0 {
		panic("board: change recorded outside a move")
	}
	l.frames[n-1] = append(l.frames[n-1], ch)
}

// pop removes and returns the most recent frame.
func (l *changeLog) pop() ([]change, bool) {
	n := len(l.frames)
	if n == 0 {
		return nil, false
	}
	frame := l.frames[n-1]
	l.frames[n-1] = nil
	l.frames = l.frames[:n-1]
	return frame, true
}

// depth returns the number of open frames.
func (l *changeLog) depth() int {
	return len(l.frames)
}

func (l *changeLog) clone() changeLog {
	frames := make([][]change, len(l.frames))
	for i, f := range l.frames {
		frames[i] = append([]change(nil), f...)
	}
	return changeLog{frames: frames}
}
