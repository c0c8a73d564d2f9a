package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

const (
	logDir      = "logs"
	logFileName = "landing-fx.log"
)

// setupLogging sends the standard logger to logs/landing-fx.log when debug is
// set and discards it otherwise, so nothing is printed over the UI. The
// returned file, if any, must be closed by the caller.
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	log.Println("debug logging enabled")
	return f
}
