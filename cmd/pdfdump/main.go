// Copyright (c) 2026 The psdf authors.

// Command pdfdump parses a PDF file, reports basic container statistics,
// and executes its extracted content streams through the PostScript
// interpreter (§6's "PDF CLI").
package main

import (
	"fmt"
	"os"

	"github.com/rduggan/psdf/config"
	"github.com/rduggan/psdf/logger"
	"github.com/rduggan/psdf/pdf"
	"github.com/rduggan/psdf/ps"
	"github.com/rduggan/psdf/psdfmap"
)

func main() {
	logger.SetLogger(func(lvl logger.Level, msg string, keyvals ...any) {
		fmt.Fprintf(os.Stderr, "[%s] %s %v\n", lvl, msg, keyvals)
	})

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: pdfdump <path.pdf>")
		os.Exit(2)
	}
	if err := run(os.Args[1]); err != nil {
		fmt.Fprintln(os.Stderr, "pdfdump:", err)
		os.Exit(1)
	}
}

func run(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	cfg := config.NewDefault()
	doc, err := pdf.Open(data, cfg)
	if err != nil {
		return err
	}

	root, rootErr := doc.Root()
	info, infoErr := doc.Info()

	fmt.Printf("objects:  %d\n", doc.ObjectCount())
	if rootErr != nil {
		fmt.Printf("catalog:  <unavailable: %v>\n", rootErr)
	} else {
		fmt.Printf("catalog:  %d keys\n", len(root))
	}
	if infoErr != nil {
		fmt.Printf("info:     <unavailable: %v>\n", infoErr)
	} else {
		fmt.Printf("info:     %d keys\n", len(info))
	}

	pages, err := doc.Pages(cfg)
	if err != nil {
		return err
	}
	fmt.Printf("pages:    %d\n", len(pages))

	streams, err := doc.ContentStreams(pages, cfg)
	if err != nil {
		return err
	}

	sink := ps.SinkFunc(func(ev ps.Event) {
		fmt.Printf("event: %v\n", ev)
	})
	for i, content := range streams {
		toks, err := ps.Tokenize(string(content))
		if err != nil {
			fmt.Printf("page %d: lex error: %v\n", i+1, err)
			continue
		}
		rewritten := psdfmap.TranslateAll(toks)

		interp := ps.New(cfg, sink, os.Stdout)
		if err := interp.ExecuteTokens(rewritten); err != nil {
			fmt.Printf("page %d: %v\n", i+1, err)
		}
	}
	return nil
}
