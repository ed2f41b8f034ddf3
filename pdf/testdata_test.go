// Copyright (c) 2026 The psdf authors.

package pdf

import (
	"bytes"
	"fmt"
)

// pdfBuilder assembles a minimal, well-formed classical-xref PDF file,
// recording each indirect object's byte offset as it is written so the
// xref table it emits is exact.
type pdfBuilder struct {
	buf     bytes.Buffer
	offsets map[int]int
	maxNum  int
}

func newPDFBuilder() *pdfBuilder {
	b := &pdfBuilder{offsets: make(map[int]int)}
	b.buf.WriteString("%PDF-1.4\n")
	return b
}

func (b *pdfBuilder) object(num int, body string) {
	b.offsets[num] = b.buf.Len()
	if num > b.maxNum {
		b.maxNum = num
	}
	fmt.Fprintf(&b.buf, "%d 0 obj\n%s\nendobj\n", num, body)
}

func (b *pdfBuilder) stream(num int, dictBody, data string) {
	b.offsets[num] = b.buf.Len()
	if num > b.maxNum {
		b.maxNum = num
	}
	fmt.Fprintf(&b.buf, "%d 0 obj\n%s\nstream\n%s\nendstream\nendobj\n", num, dictBody, data)
}

// finish appends a classical xref table and trailer, and returns the
// completed file bytes. rootNum is the object number to record as /Root.
func (b *pdfBuilder) finish(rootNum int) []byte {
	xrefOffset := b.buf.Len()
	size := b.maxNum + 1
	fmt.Fprintf(&b.buf, "xref\n0 %d\n", size)
	b.buf.WriteString("0000000000 65535 f \n")
	for i := 1; i < size; i++ {
		off, ok := b.offsets[i]
		if !ok {
			b.buf.WriteString("0000000000 00000 f \n")
			continue
		}
		fmt.Fprintf(&b.buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b.buf, "trailer\n<< /Size %d /Root %d 0 R >>\nstartxref\n%d\n%%%%EOF", size, rootNum, xrefOffset)
	return b.buf.Bytes()
}

// minimalOnePagePDF builds a one-page document: catalog -> pages -> page
// -> a short (uncompressed) content stream.
func minimalOnePagePDF() []byte {
	b := newPDFBuilder()
	b.object(1, "<< /Type /Catalog /Pages 2 0 R >>")
	b.object(2, "<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	b.object(3, "<< /Type /Page /Parent 2 0 R /Contents 4 0 R >>")
	content := "0 0 m 10 10 l S"
	b.stream(4, fmt.Sprintf("<< /Length %d >>", len(content)), content)
	return b.finish(1)
}
