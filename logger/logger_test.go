// Copyright (c) 2026 The psdf authors.

package logger

import "testing"

func TestDefaultSinkIsANoOp(t *testing.T) {
	// Should not panic with no logger installed.
	Logf("hello")
	Errorf("world", "k", "v")
}

func TestSetLoggerInstallsSink(t *testing.T) {
	var gotLevel Level
	var gotMsg string
	SetLogger(func(level Level, msg string, keyvals ...any) {
		gotLevel = level
		gotMsg = msg
	})
	defer SetLogger(func(Level, string, ...any) {})

	Errorf("boom")
	if gotLevel != Error {
		t.Errorf("level = %v, want %v", gotLevel, Error)
	}
	if gotMsg != "boom" {
		t.Errorf("msg = %q, want %q", gotMsg, "boom")
	}
}

func TestSetLoggerNilIsNoOp(t *testing.T) {
	called := false
	SetLogger(func(Level, string, ...any) { called = true })
	SetLogger(nil)
	Logf("x")
	if !called {
		t.Error("SetLogger(nil) replaced the installed sink")
	}
}
