// Copyright (c) 2026 The psdf authors.

package pdf

import (
	"bytes"

	"github.com/rduggan/psdf/config"
	"github.com/rduggan/psdf/logger"
)

// parseIndirectObjectAt parses "N G obj <value> endobj", optionally
// followed by a stream body, starting at offset. Returns the object
// number, generation, the parsed value (a Dict when isStream is true),
// the stream's still-encoded bytes (if any), and whether a stream body
// was present.
func parseIndirectObjectAt(data []byte, offset int64) (num, gen int, obj Object, streamData []byte, isStream bool, err error) {
	s := newScanner(data)
	s.pos = int(offset)
	s.skipWS()

	numTok := s.regularRun()
	n, ok := parseIntToken(numTok)
	if !ok {
		return 0, 0, nil, nil, false, newError(KindPdfFormatError, "expected object number")
	}
	s.skipWS()
	genTok := s.regularRun()
	g, ok := parseIntToken(genTok)
	if !ok {
		return 0, 0, nil, nil, false, newError(KindPdfFormatError, "expected generation number")
	}
	s.skipWS()
	if kw := s.readKeyword(); kw != "obj" {
		return 0, 0, nil, nil, false, newError(KindPdfFormatError, "expected 'obj' keyword")
	}

	val, perr := s.parseValue()
	if perr != nil {
		return 0, 0, nil, nil, false, perr
	}

	s.skipWS()
	streamMark := s.pos
	if bytes.HasPrefix(data[s.pos:], []byte("stream")) {
		dict, isDict := val.(Dict)
		if !isDict {
			return 0, 0, nil, nil, false, newError(KindPdfFormatError, "stream keyword without a preceding dictionary")
		}
		s.pos += len("stream")
		// a single CRLF or LF immediately follows "stream" before the data
		if s.pos < len(data) && data[s.pos] == '\r' {
			s.pos++
		}
		if s.pos < len(data) && data[s.pos] == '\n' {
			s.pos++
		}
		length, hasLen := dict["Length"].(Integer)
		var body []byte
		if hasLen && s.pos+int(length) <= len(data) {
			body = data[s.pos : s.pos+int(length)]
			s.pos += int(length)
			s.skipWS()
			if !bytes.HasPrefix(data[s.pos:], []byte("endstream")) {
				logger.Errorf("declared /Length did not land on endstream, falling back to scanning for it")
				body = nil
			}
		}
		if body == nil {
			end := bytes.Index(data[s.pos:], []byte("endstream"))
			if end < 0 {
				return 0, 0, nil, nil, false, newError(KindPdfFormatError, "unterminated stream")
			}
			body = bytes.TrimRight(data[s.pos:s.pos+end], "\r\n")
			s.pos += end
		}
		if idx := bytes.Index(data[s.pos:], []byte("endstream")); idx == 0 || idx >= 0 {
			s.pos += idx + len("endstream")
		}
		return int(n), int(g), dict, body, true, nil
	}
	s.pos = streamMark
	_ = s.readKeyword() // tolerate "endobj" being absent or malformed
	return int(n), int(g), val, nil, false, nil
}

// Document is a fully parsed PDF: the object-offset map and trailer. All
// indirect objects are resolved lazily and cached on first access.
type Document struct {
	data    []byte
	xref    xrefTable
	trailer Dict
	cache   map[int]Object
}

// Open parses the PDF container in data: locates startxref, parses the
// xref section(s) (following /Prev and /XRefStm per SPEC_FULL.md), and
// records the trailer. It does not resolve any object yet.
//
// cfg selects, among other things, how tolerant xref parsing is of a
// malformed /Prev or /XRefStm chain (config.Strict vs config.BestEffort,
// see readXrefSection); a nil cfg uses config.NewDefault().
func Open(data []byte, cfg *config.Config) (*Document, error) {
	if cfg == nil {
		cfg = config.NewDefault()
	}
	if !bytes.Contains(data[:min(1024, len(data))], []byte("%PDF")) {
		return nil, newError(KindPdfFormatError, "missing %PDF header")
	}
	off, err := findStartXref(data)
	if err != nil {
		return nil, err
	}
	table := make(xrefTable)
	seen := make(map[int64]bool)
	trailer, err := readXrefSection(data, off, table, seen, cfg)
	if err != nil {
		return nil, err
	}
	return &Document{data: data, xref: table, trailer: trailer, cache: make(map[int]Object)}, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Trailer returns the document's trailer dictionary.
func (d *Document) Trailer() Dict { return d.trailer }

// Resolve follows obj if it is a Reference, returning the referenced
// object (or Null if the reference is unresolvable); any other value is
// returned unchanged.
func (d *Document) Resolve(obj Object) (Object, error) {
	ref, ok := obj.(Reference)
	if !ok {
		return obj, nil
	}
	return d.resolveNum(ref.Num)
}

func (d *Document) resolveNum(num int) (Object, error) {
	if v, ok := d.cache[num]; ok {
		return v, nil
	}
	entry, ok := d.xref[num]
	if !ok || entry.kind == kindFree {
		return NullObject, nil
	}
	if entry.kind == kindCompressed {
		// Objects held in a compressed object stream are not supported
		// (§4.5's xref-stream entry-type table: type 2 is "skip").
		logger.Errorf("reference to a compressed object stream member is unsupported", "obj", num)
		return NullObject, nil
	}

	gotNum, _, val, streamData, isStream, err := parseIndirectObjectAt(d.data, entry.offset)
	if err != nil {
		return nil, err
	}
	if gotNum != num {
		logger.Errorf("object at offset has unexpected number", "want", num, "got", gotNum)
	}
	var result Object
	if isStream {
		result = &Stream{Dict: val.(Dict), Data: streamData}
	} else {
		result = val
	}
	d.cache[num] = result
	return result, nil
}

// ObjectCount returns the number of entries the xref table records,
// free and in-use alike.
func (d *Document) ObjectCount() int { return len(d.xref) }

// Info resolves the trailer's /Info entry, if present.
func (d *Document) Info() (Dict, error) {
	infoObj, ok := d.trailer["Info"]
	if !ok {
		return nil, nil
	}
	resolved, err := d.Resolve(infoObj)
	if err != nil {
		return nil, err
	}
	info, ok := resolved.(Dict)
	if !ok {
		return nil, newError(KindPdfFormatError, "info object is not a dictionary")
	}
	return info, nil
}

// Root resolves the trailer's /Root entry to the document catalog.
func (d *Document) Root() (Dict, error) {
	rootObj, ok := d.trailer["Root"]
	if !ok {
		return nil, newError(KindPdfFormatError, "trailer missing /Root")
	}
	resolved, err := d.Resolve(rootObj)
	if err != nil {
		return nil, err
	}
	catalog, ok := resolved.(Dict)
	if !ok {
		return nil, newError(KindPdfFormatError, "catalog object is not a dictionary")
	}
	return catalog, nil
}
