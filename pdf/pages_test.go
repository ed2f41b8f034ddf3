// Copyright (c) 2026 The psdf authors.

package pdf

import (
	"testing"

	"github.com/rduggan/psdf/config"
)

func TestPagesWalksSinglePageTree(t *testing.T) {
	doc, err := Open(minimalOnePagePDF(), nil)
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.NewDefault()
	pages, err := doc.Pages(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 1 {
		t.Fatalf("len(pages) = %d, want 1", len(pages))
	}
	if pages[0].Dict["Type"] != Object(Name("Page")) {
		t.Errorf("page Type = %v, want Page", pages[0].Dict["Type"])
	}
}

func TestContentStreamDecodesUncompressedStream(t *testing.T) {
	doc, err := Open(minimalOnePagePDF(), nil)
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.NewDefault()
	pages, err := doc.Pages(cfg)
	if err != nil {
		t.Fatal(err)
	}
	data, err := doc.ContentStream(pages[0])
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "0 0 m 10 10 l S" {
		t.Errorf("ContentStream() = %q, want %q", data, "0 0 m 10 10 l S")
	}
}

func TestContentStreamsRunsConcurrentlyBoundedByWorkerLimit(t *testing.T) {
	doc, err := Open(minimalOnePagePDF(), nil)
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.NewDefault()
	cfg.MaxWorkersPerPDF = 1
	pages, err := doc.Pages(cfg)
	if err != nil {
		t.Fatal(err)
	}
	streams, err := doc.ContentStreams(pages, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(streams) != 1 || string(streams[0]) != "0 0 m 10 10 l S" {
		t.Errorf("ContentStreams() = %v", streams)
	}
}

func TestPagesDetectsCycleWithoutHanging(t *testing.T) {
	b := newPDFBuilder()
	b.object(1, "<< /Type /Catalog /Pages 2 0 R >>")
	// /Pages node 2 lists itself as a Kid: walkPageNode must recognize the
	// repeat visit and stop instead of recursing forever.
	b.object(2, "<< /Type /Pages /Kids [2 0 R] /Count 0 >>")
	data := b.finish(1)

	doc, err := Open(data, config.NewDefault())
	if err != nil {
		t.Fatal(err)
	}
	pages, err := doc.Pages(config.NewDefault())
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 0 {
		t.Errorf("len(pages) = %d, want 0 (cyclic tree has no /Page leaves)", len(pages))
	}
}

func TestPagesErrorsPastMaxDepth(t *testing.T) {
	b := newPDFBuilder()
	b.object(1, "<< /Type /Catalog /Pages 2 0 R >>")
	b.object(2, "<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	b.object(3, "<< /Type /Pages /Kids [4 0 R] /Count 1 >>")
	b.object(4, "<< /Type /Page /Parent 3 0 R >>")
	data := b.finish(1)

	doc, err := Open(data, config.NewDefault())
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.NewDefault()
	cfg.MaxPageTreeDepth = 1
	if _, err := doc.Pages(cfg); err == nil {
		t.Error("expected a depth-exceeded error")
	}
}
