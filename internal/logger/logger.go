// Package logger provides the small leveled logger shared by sshp packages.
// Debug output is gated on the SSHP_DEBUG environment variable so the picker
// stays quiet unless someone is chasing a bug.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Logger is the printf-style interface sshp packages log through.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// All loggers share one sink so interleaved lines from different packages
// don't tear mid-line.
var (
	mu   sync.Mutex
	sink io.Writer = os.Stderr
)

// SetOutput redirects every logger to w and returns the previous writer.
// Tests use it to capture output.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := sink
	sink = w
	return prev
}

// envLogger tags each line with a fixed prefix like "[sshconfig]".
type envLogger struct {
	prefix string
}

// NewEnvLogger returns a logger whose lines carry the given prefix.
func NewEnvLogger(prefix string) Logger {
	return &envLogger{prefix: prefix}
}

func (l *envLogger) Debug(format string, args ...any) {
	if os.Getenv("SSHP_DEBUG") == "" {
		return
	}
	l.emit("", format, args)
}

func (l *envLogger) Info(format string, args ...any) {
	l.emit("", format, args)
}

func (l *envLogger) Warn(format string, args ...any) {
	l.emit("WARN", format, args)
}

func (l *envLogger) Error(format string, args ...any) {
	l.emit("ERROR", format, args)
}

func (l *envLogger) emit(level, format string, args []any) {
	mu.Lock()
	defer mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	if level == "" {
		fmt.Fprintf(sink, "%s %s\n", l.prefix, msg)
		return
	}
	fmt.Fprintf(sink, "%s %s: %s\n", l.prefix, level, msg)
}
