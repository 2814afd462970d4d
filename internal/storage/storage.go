package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Storage key prefixes
const (
	prefixPerft = "perft/"
	prefixGame  = "game/"
)

// PerftResult is a stored leaf count for one position and depth.
type PerftResult struct {
	FEN      string        `json:"fen"`
	Depth    int           `json:"depth"`
	Nodes    int64         `json:"nodes"`
	Elapsed  time.Duration `json:"elapsed"`
	Recorded time.Time     `json:"recorded"`
}

// GameRecord is a named game: the position it started from and the moves
// applied to it, in coordinate notation.
type GameRecord struct {
	Name     string    `json:"name"`
	StartFEN string    `json:"start_fen"`
	Moves    []string  `json:"moves"`
	Result   string    `json:"result,omitempty"`
	Saved    time.Time `json:"saved"`
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database in the platform data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens the database in dir. An empty dir keeps everything in memory.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open database %q: %w", dir, err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func perftKey(fen string, depth int) []byte {
	return []byte(fmt.Sprintf("%s%02d/%s", prefixPerft, depth, fen))
}

// SavePerft stores a perft result, replacing any earlier one for the same
// position and depth.
func (s *Storage) SavePerft(r PerftResult) error {
	if r.Recorded.IsZero() {
		r.Recorded = time.Now()
	}

	data, err := json.Marshal(r)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(perftKey(r.FEN, r.Depth), data)
	})
}

// LoadPerft returns the stored result for a position and depth. found is
// false when there is none.
func (s *Storage) LoadPerft(fen string, depth int) (r PerftResult, found bool, err error) {
	err = s.get(perftKey(fen, depth), &r, &found)
	return r, found, err
}

// SaveGame stores a game record under its name.
func (s *Storage) SaveGame(g *GameRecord) error {
	if g.Name == "" {
		return errors.New("game record has no name")
	}
	g.Saved = time.Now()

	data, err := json.Marshal(g)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(prefixGame+g.Name), data)
	})
}

// LoadGame returns the game stored under name. found is false when there is
// none.
func (s *Storage) LoadGame(name string) (g *GameRecord, found bool, err error) {
	g = &GameRecord{}
	err = s.get([]byte(prefixGame+name), g, &found)
	if !found {
		g = nil
	}
	return g, found, err
}

// DeleteGame removes a stored game. Deleting a missing game is not an error.
func (s *Storage) DeleteGame(name string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(prefixGame + name))
	})
}

// ListGames returns the names of all stored games in sorted order.
func (s *Storage) ListGames() ([]string, error) {
	var names []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(prefixGame)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			key := string(it.Item().KeyCopy(nil))
			names = append(names, strings.TrimPrefix(key, prefixGame))
		}
		return nil
	})

	return names, err
}

// get decodes the JSON value under key into v.
func (s *Storage) get(key []byte, v any, found *bool) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		*found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
}
