// Package storage persists perft results and game records in BadgerDB.
package storage

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "chess-videogame"

// DataDirEnv overrides the platform data directory when set.
const DataDirEnv = "CHESS_DATA_DIR"

// GetDataDir returns the directory the application keeps its data in,
// creating it if needed. CHESS_DATA_DIR wins when set; otherwise:
// - macOS: ~/Library/Application Support/chess-videogame/
// - Linux: $XDG_DATA_HOME/chess-videogame/ or ~/.local/share/chess-videogame/
// - Windows: %APPDATA%/chess-videogame/
func GetDataDir() (string, error) {
	dataDir := os.Getenv(DataDirEnv)
	if dataDir == "" {
		baseDir, err := platformDataHome()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(baseDir, appName)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}

// platformDataHome returns the per-user base directory for application data.
func platformDataHome() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support"), nil

	case "windows":
		if dir := os.Getenv("APPDATA"); dir != "" {
			return dir, nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "AppData", "Roaming"), nil

	default:
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return dir, nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share"), nil
	}
}

// GetDatabaseDir returns the directory for storing the BadgerDB database.
func GetDatabaseDir() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}

	dbDir := filepath.Join(dataDir, "db")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return "", err
	}
	return dbDir, nil
}
