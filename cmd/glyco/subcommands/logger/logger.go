// Package logger builds the loggers glyco tasks report through.
// Tasks log to stderr so stdout stays machine-readable (JSON, yaml,
// tab-separated reports).
package logger

import (
	"fmt"
	"io"
	"log"
)

// Null discards everything. For tests.
func Null() *log.Logger {
	return log.New(io.Discard, "", log.LstdFlags)
}

// Default is the process-wide logger.
func Default() *log.Logger {
	return log.Default()
}

// Prefixed logs to w with the "[fullname] " prefix every glyco
// subcommand reports under.
func Prefixed(w io.Writer, fullname string) *log.Logger {
	return log.New(w, fmt.Sprintf("[%s] ", fullname), log.LstdFlags)
}
