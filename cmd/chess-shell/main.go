package main

import (
	"flag"
	"log"
	"os"

	"github.com/objetos/chess-videogame/internal/board"
	"github.com/objetos/chess-videogame/internal/shell"
	"github.com/objetos/chess-videogame/internal/storage"
)

var (
	dbPath = flag.String("db", "", "database directory for saved games (defaults to the data dir)")
	noDB   = flag.Bool("nodb", false, "run without a database")
	debug  = flag.Bool("debug", false, "log rejected moves")
)

func main() {
	flag.Parse()
	board.DebugMoveValidation = *debug

	var store *storage.Storage
	if !*noDB {
		path := *dbPath
		if path == "" {
			path = os.Getenv("CHESS_DB")
		}

		var err error
		if path == "" {
			store, err = storage.NewStorage()
		} else {
			store, err = storage.Open(path)
		}
		if err != nil {
			log.Printf("Warning: database not available: %v (save and load disabled)", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	sh := shell.New(store)
	if err := sh.Run(os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}
