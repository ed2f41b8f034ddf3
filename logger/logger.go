// Copyright (c) 2026 The psdf authors.

// Package logger provides a minimal pluggable logging hook used by the
// ps and pdf packages. Neither of those packages writes to stdout or
// stderr directly; every diagnostic goes through this package so that a
// host program can install its own sink (or none).
package logger

// Level identifies the severity of a logged event.
type Level string

const (
	Debug Level = "debug"
	Error Level = "error"
)

// Func receives one log event. keyvals is an alternating key/value list,
// following the convention used by the interpreter's own log calls.
type Func func(level Level, msg string, keyvals ...any)

var sink Func = func(Level, string, ...any) {}

// SetLogger installs f as the process-wide log sink. Passing nil is a no-op.
func SetLogger(f Func) {
	if f != nil {
		sink = f
	}
}

// Logf logs at debug level.
func Logf(msg string, keyvals ...any) {
	sink(Debug, msg, keyvals...)
}

// Errorf logs at error level.
func Errorf(msg string, keyvals ...any) {
	sink(Error, msg, keyvals...)
}
