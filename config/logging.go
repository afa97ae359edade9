package config

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lixenwraith/bitflood/flood"
)

const (
	LogDir     = "logs"
	MaxLogSize = 10 * 1024 * 1024
)

// LogFileName returns the log file used by the named tool
func LogFileName(tool string) string {
	return tool + ".log"
}

// SetupLogging routes the standard logger and flood diagnostics to
// logs/<tool>.log when debug is set, and discards both otherwise.
// A log over MaxLogSize is rotated to a timestamped name first.
// The caller closes the returned file; it is nil when logging is off or the
// file could not be opened.
func SetupLogging(tool string, debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		flood.SetLogger(nil)
		return nil
	}

	if err := os.MkdirAll(LogDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create log directory: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(LogDir, LogFileName(tool))
	if info, err := os.Stat(logPath); err == nil && info.Size() > MaxLogSize {
		rotated := filepath.Join(LogDir, fmt.Sprintf("%s.%s.log", tool, time.Now().Format("20060102-150405")))
		if err := os.Rename(logPath, rotated); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to rotate log: %v\n", err)
		}
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}

	log.SetOutput(f)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	flood.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	log.Printf("%s logging started", tool)
	return f
}
