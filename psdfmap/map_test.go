// Copyright (c) 2026 The psdf authors.

package psdfmap

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTranslateNotableEntries(t *testing.T) {
	cases := map[string]string{
		"m": "moveto", "l": "lineto", "h": "closepath", "S": "stroke",
		"f": "fill", "n": "newpath", "q": "gsave", "Q": "grestore",
		"w": "setlinewidth", "rg": "setrgbcolor",
	}
	for tok, want := range cases {
		if got := Translate(tok); got != want {
			t.Errorf("Translate(%q) = %q, want %q", tok, got, want)
		}
	}
}

func TestTranslatePassesThroughUnmappedTokens(t *testing.T) {
	for _, tok := range []string{"42", "3.14", "/Name", "cm", "Tj"} {
		if got := Translate(tok); got != tok {
			t.Errorf("Translate(%q) = %q, want unchanged", tok, got)
		}
	}
}

func TestTranslateAll(t *testing.T) {
	toks := []string{"0", "0", "m", "10", "10", "l", "S"}
	want := []string{"0", "0", "moveto", "10", "10", "lineto", "stroke"}
	got := TranslateAll(toks)
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("TranslateAll mismatch (-want +got):\n%s", d)
	}
}
