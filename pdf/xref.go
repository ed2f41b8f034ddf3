// Copyright (c) 2026 The psdf authors.

package pdf

import (
	"bytes"

	"github.com/rduggan/psdf/config"
	"github.com/rduggan/psdf/logger"
)

// xrefEntryKind mirrors the three record types an xref stream can carry
// (§4.5's table); classical tables only ever produce kindFree/kindInUse.
type xrefEntryKind int

const (
	kindFree xrefEntryKind = iota
	kindInUse
	kindCompressed
)

type xrefEntry struct {
	kind   xrefEntryKind
	offset int64 // kindInUse: file offset. kindCompressed: containing ObjStm's object number.
	gen    int
	index  int // kindCompressed: index within the object stream.
}

type xrefTable map[int]xrefEntry

// findStartXref returns the byte offset recorded by the last "startxref"
// marker in the file.
func findStartXref(data []byte) (int64, error) {
	idx := bytes.LastIndex(data, []byte("startxref"))
	if idx < 0 {
		return 0, newError(KindPdfFormatError, "missing startxref")
	}
	s := newScanner(data)
	s.pos = idx + len("startxref")
	s.skipWS()
	tok := s.regularRun()
	n, ok := parseIntToken(tok)
	if !ok {
		return 0, newError(KindPdfFormatError, "startxref not followed by an integer")
	}
	return n, nil
}

// readXrefSection parses the xref section (classical table or stream) at
// offset, merging into table entries not already present (the newest
// section — the one closer to the file's final startxref — always wins;
// see SPEC_FULL.md's Prev/XRefStm supplement), and returns that
// section's trailer dictionary.
func readXrefSection(data []byte, offset int64, table xrefTable, seen map[int64]bool, cfg *config.Config) (Dict, error) {
	if seen[offset] {
		return nil, newError(KindPdfFormatError, "cyclic xref Prev chain")
	}
	seen[offset] = true

	s := newScanner(data)
	s.pos = int(offset)
	s.skipWS()

	if bytes.HasPrefix(data[s.pos:], []byte("xref")) {
		return readClassicalXref(data, s, table, seen, cfg)
	}
	return readXrefStreamSection(data, s, table, seen, cfg)
}

// chainSectionFailed reports a failed /Prev or /XRefStm section per cfg's
// ParsingMode: config.Strict propagates the error, config.BestEffort logs
// and lets the caller salvage whatever the rest of the table already has.
func chainSectionFailed(cfg *config.Config, what string, err error) error {
	if cfg != nil && cfg.ParsingMode == config.Strict {
		return err
	}
	logger.Errorf(what+" failed to parse", "err", err)
	return nil
}

func readClassicalXref(data []byte, s *scanner, table xrefTable, seen map[int64]bool, cfg *config.Config) (Dict, error) {
	s.pos += len("xref")
	for {
		s.skipWS()
		save := s.pos
		tok := s.regularRun()
		if tok == "trailer" {
			break
		}
		if tok == "" {
			return nil, newError(KindPdfFormatError, "malformed xref table")
		}
		first, ok1 := parseIntToken(tok)
		s.skipWS()
		countTok := s.regularRun()
		count, ok2 := parseIntToken(countTok)
		if !ok1 || !ok2 {
			s.pos = save
			return nil, newError(KindPdfFormatError, "malformed xref subsection header")
		}
		for i := int64(0); i < count; i++ {
			s.skipWS()
			offTok := s.regularRun()
			s.skipWS()
			genTok := s.regularRun()
			s.skipWS()
			flagTok := s.regularRun()
			off, okOff := parseIntToken(offTok)
			gen, okGen := parseIntToken(genTok)
			if !okOff || !okGen || (flagTok != "n" && flagTok != "f") {
				return nil, newError(KindPdfFormatError, "malformed xref entry")
			}
			num := int(first) + int(i)
			if _, exists := table[num]; exists {
				continue
			}
			if flagTok == "n" {
				table[num] = xrefEntry{kind: kindInUse, offset: off, gen: int(gen)}
			} else {
				table[num] = xrefEntry{kind: kindFree}
			}
		}
	}

	trailerObj, err := s.parseValue()
	if err != nil {
		return nil, err
	}
	trailer, ok := trailerObj.(Dict)
	if !ok {
		return nil, newError(KindPdfFormatError, "xref table not followed by a trailer dictionary")
	}

	if xrefstm, ok := trailer["XRefStm"].(Integer); ok {
		if _, err := readXrefSection(data, int64(xrefstm), table, seen, cfg); err != nil {
			if serr := chainSectionFailed(cfg, "hybrid XRefStm section", err); serr != nil {
				return nil, serr
			}
		}
	}
	if prev, ok := trailer["Prev"].(Integer); ok {
		if _, err := readXrefSection(data, int64(prev), table, seen, cfg); err != nil {
			if serr := chainSectionFailed(cfg, "Prev xref section", err); serr != nil {
				return nil, serr
			}
		}
	}
	return trailer, nil
}

func readXrefStreamSection(data []byte, s *scanner, table xrefTable, seen map[int64]bool, cfg *config.Config) (Dict, error) {
	_, _, obj, streamData, isStream, err := parseIndirectObjectAt(data, int64(s.pos))
	if err != nil {
		return nil, err
	}
	if !isStream {
		return nil, newError(KindPdfFormatError, "expected an xref stream object")
	}
	dict := obj.(Dict)
	if t, _ := dict["Type"].(Name); t != "XRef" {
		return nil, newError(KindPdfFormatError, "object at startxref offset is not a /Type /XRef stream")
	}

	decoded, err := decodeStream(&Stream{Dict: dict, Data: streamData})
	if err != nil {
		return nil, err
	}

	size, _ := dict["Size"].(Integer)
	wArr, ok := dict["W"].(Array)
	if !ok || len(wArr) < 3 {
		return nil, newError(KindPdfFormatError, "xref stream missing W array")
	}
	w := make([]int, 3)
	for i := 0; i < 3; i++ {
		n, ok := wArr[i].(Integer)
		if !ok {
			return nil, newError(KindPdfFormatError, "invalid W array entry")
		}
		w[i] = int(n)
	}

	var index []int64
	if idxArr, ok := dict["Index"].(Array); ok {
		for _, v := range idxArr {
			n, ok := v.(Integer)
			if !ok {
				return nil, newError(KindPdfFormatError, "invalid Index array entry")
			}
			index = append(index, int64(n))
		}
	} else {
		index = []int64{0, int64(size)}
	}

	recWidth := w[0] + w[1] + w[2]
	pos := 0
	for i := 0; i+1 < len(index); i += 2 {
		start, count := index[i], index[i+1]
		for j := int64(0); j < count; j++ {
			if pos+recWidth > len(decoded) {
				return nil, newError(KindPdfFormatError, "xref stream truncated")
			}
			rec := decoded[pos : pos+recWidth]
			pos += recWidth

			typ := int64(1)
			if w[0] > 0 {
				typ = beUint(rec[:w[0]])
			}
			f1 := beUint(rec[w[0] : w[0]+w[1]])
			f2 := beUint(rec[w[0]+w[1] : w[0]+w[1]+w[2]])

			num := int(start + j)
			if _, exists := table[num]; exists {
				continue
			}
			switch typ {
			case 0:
				table[num] = xrefEntry{kind: kindFree}
			case 1:
				table[num] = xrefEntry{kind: kindInUse, offset: f1, gen: int(f2)}
			case 2:
				table[num] = xrefEntry{kind: kindCompressed, offset: f1, index: int(f2)}
			default:
				logger.Errorf("xref stream record with unknown type skipped", "type", typ)
			}
		}
	}

	if prev, ok := dict["Prev"].(Integer); ok {
		if _, err := readXrefSection(data, int64(prev), table, seen, cfg); err != nil {
			if serr := chainSectionFailed(cfg, "Prev xref stream section", err); serr != nil {
				return nil, serr
			}
		}
	}

	return dict, nil
}

func beUint(b []byte) int64 {
	var x int64
	for _, c := range b {
		x = x<<8 | int64(c)
	}
	return x
}
