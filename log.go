package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
)

// logFile is the log file opened by setupLog, nil if none could be opened
var logFile *os.File

func getLogFilePath() (string, error) {
	dir, err := gap.NewScope(gap.User, "sfxpool").CacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sfxpool.log"), nil
}

// setupLog logs to stderr and, when possible, to a file in the user cache
// dir. The file keeps receiving logs while the panel owns the terminal.
func setupLog() (func() error, error) {
	log.SetOutput(os.Stderr)
	log.SetReportTimestamp(true)

	path := os.Getenv("SFXPOOL_LOG_FILE")
	if path == "" {
		p, err := getLogFilePath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { //nolint:gosec
		// log disabled
		return func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644) //nolint:gosec
	if err != nil {
		return nil, err
	}

	logFile = f
	log.SetOutput(io.MultiWriter(os.Stderr, f))
	return f.Close, nil
}
