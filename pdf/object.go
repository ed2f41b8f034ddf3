// Copyright (c) 2026 The psdf authors.

// Package pdf reads the PDF container format: the indirect-object graph,
// the cross-reference table or stream that locates it, and the page
// tree, down to each page's content-stream bytes. It does not interpret
// the content stream itself — that is the ps package's job, after the
// psdfmap package rewrites PDF operator spellings to PostScript ones.
package pdf

import "fmt"

// Object is the tagged PDF value type: one of Null, Boolean, Integer,
// Real, *String, Name, Array, Dict, Reference, or *Stream.
type Object interface{}

type Null struct{}

var NullObject Object = Null{}

type Boolean bool

type Integer int64

type Real float64

// String is a PDF string object, either the literal "(...)" form or the
// hex "<...>" form; Value holds the decoded bytes in both cases.
type String struct {
	Value []byte
	Hex   bool
}

// Name is a PDF name object without its leading slash.
type Name string

// Array is an ordered sequence of PDF objects, possibly containing
// unresolved References.
type Array []Object

// Dict is a PDF dictionary, keyed without the leading slash.
type Dict map[Name]Object

// Reference is an indirect reference "N G R".
type Reference struct {
	Num int
	Gen int
}

func (r Reference) String() string { return fmt.Sprintf("%d %d R", r.Num, r.Gen) }

// Stream is a dictionary together with its raw (still-encoded) bytes.
type Stream struct {
	Dict Dict
	Data []byte
}

// keyword is an internal token type for structural PDF/xref keywords
// ("obj", "endobj", "stream", "xref", "trailer", "n", "f", ...). It is
// never part of the Object variant set exposed to callers.
type keyword string
