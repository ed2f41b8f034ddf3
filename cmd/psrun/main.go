// Copyright (c) 2026 The psdf authors.

// Command psrun executes a PostScript program through the ps package's
// interpreter (§6's "PostScript CLI").
package main

import (
	"fmt"
	"os"

	"github.com/rduggan/psdf/config"
	"github.com/rduggan/psdf/logger"
	"github.com/rduggan/psdf/ps"
)

const sampleProgram = `
/greet { (Hello, PostScript) show } def
greet
0 0 moveto
100 0 lineto
100 100 lineto
closepath
stroke
showpage
`

func main() {
	logger.SetLogger(func(lvl logger.Level, msg string, keyvals ...any) {
		fmt.Fprintf(os.Stderr, "[%s] %s %v\n", lvl, msg, keyvals)
	})

	src, err := loadSource()
	if err != nil {
		fmt.Fprintln(os.Stderr, "psrun:", err)
		os.Exit(1)
	}

	sink := ps.SinkFunc(func(ev ps.Event) {
		fmt.Printf("event: %v\n", ev)
	})
	interp := ps.New(config.NewDefault(), sink, os.Stdout)
	if err := interp.Execute(src); err != nil {
		fmt.Fprintln(os.Stderr, "psrun:", err)
		os.Exit(1)
	}
}

func loadSource() (string, error) {
	if len(os.Args) < 2 {
		return sampleProgram, nil
	}
	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		return "", err
	}
	return string(data), nil
}
