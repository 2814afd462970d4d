// Package shell implements a line-oriented text protocol that drives a
// single board: set up positions, apply and undo moves, list legal moves and
// run perft.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"golang.org/x/exp/slices"

	"github.com/objetos/chess-videogame/internal/board"
	"github.com/objetos/chess-videogame/internal/fen"
	"github.com/objetos/chess-videogame/internal/perft"
	"github.com/objetos/chess-videogame/internal/storage"
)

// Shell holds the board being driven and the moves applied to it since the
// last position command.
type Shell struct {
	board    *board.Board
	side     board.Color
	startFEN string
	history  []string

	// store is optional; save, load, games and cached perft need it.
	store   *storage.Storage
	counter *perft.Counter

	out io.Writer
}

// New creates a shell at the starting position. store may be nil.
func New(store *storage.Storage) *Shell {
	s := &Shell{
		store:   store,
		counter: perft.NewCounter(store),
		out:     io.Discard,
	}
	s.reset()
	return s
}

func (s *Shell) reset() {
	s.board = board.NewStartingBoard()
	s.side = board.White
	s.startFEN = fen.StartFEN
	s.history = nil
}

// Board returns the board the shell is driving.
func (s *Shell) Board() *board.Board { return s.board }

// SideToMove returns the color to move.
func (s *Shell) SideToMove() board.Color { return s.side }

// Run reads commands from in until "quit" or end of input, writing replies
// to out.
func (s *Shell) Run(in io.Reader, out io.Writer) error {
	s.out = out
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !s.Execute(line) {
			return nil
		}
	}
	return scanner.Err()
}

// Execute runs one command line. It returns false when the shell should
// stop.
func (s *Shell) Execute(line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}
	cmd := parts[0]
	args := parts[1:]

	var err error
	switch cmd {
	case "position":
		if board.DebugMoveValidation {
			log.Printf("shell: position %s", strings.Join(args, " "))
		}
		err = s.handlePosition(args)
	case "moves", "move":
		err = s.applyMoves(args)
	case "undo":
		err = s.handleUndo(args)
	case "d":
		s.println(s.board.String())
		s.printf("FEN: %s\n", s.board.FEN(s.side))
	case "fen":
		s.println(s.board.FEN(s.side))
	case "legal":
		s.handleLegal()
	case "perft":
		err = s.handlePerft(args)
	case "divide":
		err = s.handleDivide(args)
	case "checks":
		s.handleChecks()
	case "captured":
		s.handleCaptured()
	case "status":
		s.printf("%s to move: %s\n", s.side, s.board.Status(s.side))
	case "hash":
		s.printf("%016x\n", s.board.Hash())
	case "history":
		s.println(strings.Join(s.history, " "))
	case "save":
		err = s.handleSave(args)
	case "load":
		err = s.handleLoad(args)
	case "games":
		err = s.handleGames()
	case "debug":
		err = s.handleDebug(args)
	case "help":
		s.println(helpText)
	case "quit", "exit":
		return false
	default:
		err = fmt.Errorf("unknown command %q", cmd)
	}

	if err != nil {
		s.printf("error: %v\n", err)
	}
	return true
}

const helpText = `commands:
  position startpos|fen <fen> [moves <m1> <m2> ...]
  moves <m1> [<m2> ...]   apply moves in coordinate form (e2e4, e7e8q)
  undo [n]                take back the last n moves
  d | fen                 show the board or its FEN
  legal                   list legal moves
  perft <n> | divide <n>  count leaf nodes
  checks | captured | status | hash | history
  save <name> | load <name> | games
  debug on|off
  quit`

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Shell) println(args ...any) {
	fmt.Fprintln(s.out, args...)
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
func (s *Shell) handlePosition(args []string) error {
	if len(args) == 0 || args[0] == "moves" {
		return fmt.Errorf("position: expected startpos or fen")
	}

	// Split at the "moves" keyword
	setup, moves := args, []string(nil)
	if i := slices.Index(args, "moves"); i >= 0 {
		setup, moves = args[:i], args[i+1:]
	}

	switch setup[0] {
	case "startpos":
		s.reset()
	case "fen":
		if err := s.setFEN(strings.Join(setup[1:], " ")); err != nil {
			return err
		}
	default:
		return fmt.Errorf("position: unknown setup %q", setup[0])
	}

	return s.applyMoves(moves)
}

func (s *Shell) setFEN(fenStr string) error {
	b, side, err := board.NewBoardFromFEN(fenStr)
	if err != nil {
		return err
	}
	s.board = b
	s.side = side
	s.startFEN = fenStr
	s.history = nil
	return nil
}

// applyMoves plays each move in turn and stops at the first that is not
// legal, leaving the earlier ones applied.
func (s *Shell) applyMoves(moves []string) error {
	for _, moveStr := range moves {
		m, err := board.ParseMove(s.board, moveStr, s.side)
		if err != nil {
			return err
		}
		if err := s.board.MakeMove(m); err != nil {
			return fmt.Errorf("move %s: %w", moveStr, err)
		}
		s.history = append(s.history, m.String())
		s.side = s.side.Other()
	}
	return nil
}

func (s *Shell) handleUndo(args []string) error {
	n := 1
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 1 {
			return fmt.Errorf("undo: invalid count %q", args[0])
		}
		n = v
	}
	if n > len(s.history) {
		return fmt.Errorf("undo: only %d moves to take back", len(s.history))
	}

	for i := 0; i < n; i++ {
		if err := s.board.UnmakeMove(); err != nil {
			return err
		}
		s.history = s.history[:len(s.history)-1]
		s.side = s.side.Other()
	}
	return nil
}

func (s *Shell) handleLegal() {
	moves := s.board.GenerateMoves(s.side)
	strs := make([]string, 0, len(moves))
	for _, m := range moves {
		strs = append(strs, m.String())
	}
	slices.Sort(strs)
	s.printf("%d: %s\n", len(strs), strings.Join(strs, " "))
}

func parseDepth(args []string) (int, error) {
	depth := 1
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 0 {
			return 0, fmt.Errorf("invalid depth %q", args[0])
		}
		depth = v
	}
	return depth, nil
}

func (s *Shell) handlePerft(args []string) error {
	depth, err := parseDepth(args)
	if err != nil {
		return err
	}

	start := time.Now()
	nodes, err := s.counter.Count(s.board, s.side, depth)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	s.printf("Nodes: %d\n", nodes)
	if s.counter.Cached {
		s.println("Cached: yes")
		return nil
	}
	s.printf("Time: %v\n", elapsed)
	return nil
}

func (s *Shell) handleDivide(args []string) error {
	depth, err := parseDepth(args)
	if err != nil {
		return err
	}

	entries, err := perft.Divide(s.board, s.side, depth)
	if err != nil {
		return err
	}
	for _, e := range entries {
		s.printf("%s: %d\n", e.Move, e.Nodes)
	}
	s.printf("Total: %d\n", perft.Total(entries))
	return nil
}

func (s *Shell) handleChecks() {
	checkers := s.board.Position().Checkers(s.side)
	if len(checkers) == 0 {
		s.printf("%s is not in check\n", s.side)
		return
	}
	squares := make([]string, 0, len(checkers))
	for _, pc := range checkers {
		squares = append(squares, pc.Symbol().String()+pc.Square.String())
	}
	slices.Sort(squares)
	s.printf("%s is in check by %s\n", s.side, strings.Join(squares, " "))
}

func (s *Shell) handleCaptured() {
	for _, c := range board.Colors {
		var b strings.Builder
		for _, sym := range s.board.CapturedPieces(c) {
			b.WriteString(sym.String())
		}
		s.printf("%s: %s\n", c, b.String())
	}
}

func (s *Shell) handleSave(args []string) error {
	if s.store == nil {
		return fmt.Errorf("save: no database")
	}
	if len(args) != 1 {
		return fmt.Errorf("save: expected a name")
	}

	rec := &storage.GameRecord{
		Name:     args[0],
		StartFEN: s.startFEN,
		Moves:    slices.Clone(s.history),
	}
	if st := s.board.Status(s.side); st != board.Ongoing {
		rec.Result = st.String()
	}
	if err := s.store.SaveGame(rec); err != nil {
		return err
	}
	s.printf("saved %s (%d moves)\n", rec.Name, len(rec.Moves))
	return nil
}

func (s *Shell) handleLoad(args []string) error {
	if s.store == nil {
		return fmt.Errorf("load: no database")
	}
	if len(args) != 1 {
		return fmt.Errorf("load: expected a name")
	}

	rec, found, err := s.store.LoadGame(args[0])
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("load: no game named %q", args[0])
	}

	if err := s.setFEN(rec.StartFEN); err != nil {
		return err
	}
	if err := s.applyMoves(rec.Moves); err != nil {
		return err
	}
	s.printf("loaded %s (%d moves)\n", rec.Name, len(rec.Moves))
	return nil
}

func (s *Shell) handleGames() error {
	if s.store == nil {
		return fmt.Errorf("games: no database")
	}
	names, err := s.store.ListGames()
	if err != nil {
		return err
	}
	for _, name := range names {
		s.println(name)
	}
	return nil
}

func (s *Shell) handleDebug(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("debug: expected on or off")
	}
	switch strings.ToLower(args[0]) {
	case "on", "true":
		board.DebugMoveValidation = true
	case "off", "false":
		board.DebugMoveValidation = false
	default:
		return fmt.Errorf("debug: expected on or off, got %q", args[0])
	}
	s.printf("debug %s\n", args[0])
	return nil
}
