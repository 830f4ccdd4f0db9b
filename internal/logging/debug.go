package logging

import (
	"io"
	"log"
	"os"
	"sync/atomic"
)

var (
	verbose atomic.Bool
	logger  = log.New(os.Stderr, "ts: ", log.LstdFlags)
)

// DebugEnabled returns true if debug mode is enabled via TS_DEBUG or SetVerbose
func DebugEnabled() bool {
	return verbose.Load() || os.Getenv("TS_DEBUG") != ""
}

// SetVerbose turns debug output on regardless of TS_DEBUG.
func SetVerbose(v bool) {
	verbose.Store(v)
}

// SetOutput redirects debug output.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// Debugf logs a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		logger.Printf(format, args...)
	}
}

// Debugln logs a debug message only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		logger.Println(args...)
	}
}
