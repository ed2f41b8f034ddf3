// Copyright (c) 2026 The psdf authors.

// Package psdfmap translates the short operator tokens found in PDF
// content streams to the PostScript operator names the ps package's
// executor knows (§4.7).
package psdfmap

// table holds the notable entries §4.7 names, plus F (the alternate
// spelling of f). Other content-stream operators (cm, re, the curve
// variants, ...) are not in the table and pass through unchanged.
var table = map[string]string{
	"m":  "moveto",
	"l":  "lineto",
	"h":  "closepath",
	"S":  "stroke",
	"f":  "fill",
	"F":  "fill",
	"n":  "newpath",
	"q":  "gsave",
	"Q":  "grestore",
	"w":  "setlinewidth",
	"rg": "setrgbcolor",
}

// Translate maps a single content-stream token to its PostScript
// operator name. Tokens absent from the table (numbers, names,
// delimiters, and any operator this map does not cover) are passed
// through unchanged, per §4.7.
func Translate(tok string) string {
	if mapped, ok := table[tok]; ok {
		return mapped
	}
	return tok
}

// TranslateAll rewrites a full token sequence, returning a new slice with
// each token passed through Translate; toks itself is left unchanged.
func TranslateAll(toks []string) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = Translate(t)
	}
	return out
}
