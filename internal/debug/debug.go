package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	enabled bool
	logFile *os.File
	logger  = zerolog.Nop()
	mu      sync.Mutex
)

// Enable turns on debug logging to the specified file.
func Enable(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	logFile = f
	enabled = true
	logger = newLogger(f)

	logger.Debug().Msg("Debug logging enabled")
	return nil
}

// EnableWriter turns on debug logging to w. Close does not close w.
func EnableWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	logFile = nil
	enabled = true
	logger = newLogger(w)
}

func newLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: "15:04:05.000",
	}).
		Level(zerolog.DebugLevel).
		With().
		Timestamp().
		Logger()
}

// Close closes the debug log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	enabled = false
	logger = zerolog.Nop()
}

// IsEnabled returns whether debug logging is enabled.
func IsEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// Logger returns the structured debug logger. It discards everything
// while debugging is disabled.
func Logger() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Log writes a debug message if debugging is enabled.
func Log(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled {
		return
	}

	logger.Debug().Msg(fmt.Sprintf(format, args...))
}

// Timed logs the duration of an operation. Usage:
//
//	defer debug.Timed("operation name")()
func Timed(name string) func() {
	if !IsEnabled() {
		return func() {}
	}

	start := time.Now()
	l := Logger()
	l.Debug().Str("op", name).Msg("started")

	return func() {
		l.Debug().Str("op", name).Dur("elapsed", time.Since(start)).Msg("completed")
	}
}
