// Copyright (c) 2026 The psdf authors.

package ps

import (
	"fmt"
	"io"

	"golang.org/x/exp/slices"

	"github.com/rduggan/psdf/logger"
)

// writeText writes show's output to the interpreter's Out writer.
func (ip *Interpreter) writeText(s string) {
	io.WriteString(ip.Out, s)
}

func logDebugStack(v Object) {
	logger.Logf(fmt.Sprintf("stack: %s", ToString(v)))
}

// sortedNames returns the dict's keys as Name values (with a leading
// slash restored), in a deterministic sort order. PostScript dictionaries
// are unordered; this gives `keys` a reproducible order.
func sortedNames(d Dict) []Object {
	names := make([]string, 0, len(d))
	for k := range d {
		names = append(names, k)
	}
	slices.Sort(names)
	out := make([]Object, len(names))
	for i, n := range names {
		out[i] = Name("/" + n)
	}
	return out
}
