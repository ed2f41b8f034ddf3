// seehuhn.de/go/postscript - a rudimentary PostScript interpreter
// Copyright (C) 2023  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package ps

import (
	"io"
	"strconv"
	"strings"

	"github.com/rduggan/psdf/config"
	"github.com/rduggan/psdf/logger"
)

// Interpreter is one PostScript execution context: an operand stack, the
// current dictionary (see §4.2 — this interpreter deliberately consults
// only the current dictionary, not a full dictionary stack; see
// DESIGN.md), and a graphics stack seeded with one default state.
type Interpreter struct {
	Stack    Stack
	Dict     Dict
	Graphics *GraphicsStack
	Sink     Sink
	Config   *config.Config
	// Out receives the bytes written by the show operator. Defaults to
	// io.Discard.
	Out io.Writer

	steps int
}

// New returns a ready-to-use Interpreter. cfg and sink may be nil, in
// which case defaults (config.NewDefault(), a discarding Sink) are used.
func New(cfg *config.Config, sink Sink, out io.Writer) *Interpreter {
	if cfg == nil {
		cfg = config.NewDefault()
	}
	if sink == nil {
		sink = Discard
	}
	if out == nil {
		out = io.Discard
	}
	return &Interpreter{
		Dict:     make(Dict),
		Graphics: NewGraphicsStack(),
		Sink:     sink,
		Config:   cfg,
		Out:      out,
	}
}

// Execute tokenizes and runs src against the interpreter's existing state.
func (ip *Interpreter) Execute(src string) error {
	toks, err := Tokenize(src)
	if err != nil {
		return err
	}
	return ip.run(toks)
}

// ExecuteTokens runs an already-tokenized (and possibly rewritten, e.g.
// via psdfmap) token sequence against the interpreter's existing state,
// bypassing Tokenize.
func (ip *Interpreter) ExecuteTokens(toks []string) error {
	return ip.run(toks)
}

func (ip *Interpreter) run(toks []string) error {
	for _, tok := range toks {
		ip.steps++
		if ip.Config != nil && ip.steps > ip.Config.MaxExecutionSteps {
			return newError(KindLimitExceeded, "execution step limit exceeded")
		}
		if err := ip.execToken(tok); err != nil {
			return err
		}
		if ip.Config != nil {
			if ip.Stack.Len() > ip.Config.MaxOperandStackDepth {
				return newError(KindLimitExceeded, "operand stack depth limit exceeded")
			}
			if ip.Graphics.Depth() > ip.Config.MaxGraphicsStackDepth {
				return newError(KindLimitExceeded, "graphics stack depth limit exceeded")
			}
		}
	}
	return nil
}

// execToken classifies and executes a single raw token per §4.2's dispatch
// table, in the table's stated priority order.
func (ip *Interpreter) execToken(tok string) error {
	if tok == "" {
		return nil
	}
	if fn, ok := operators[tok]; ok {
		return fn(ip)
	}
	if strings.HasPrefix(tok, "/") && len(tok) > 1 {
		ip.Stack.Push(Name(tok))
		return nil
	}
	if v, ok := ip.Dict[tok]; ok {
		if proc, ok := v.(Procedure); ok {
			return ip.runProcedure(proc)
		}
		ip.Stack.Push(v)
		return nil
	}
	if isRealToken(tok) {
		f, err := strconv.ParseFloat(tok, 64)
		if err == nil {
			ip.Stack.Push(Real(f))
			return nil
		}
	}
	if n, err := strconv.ParseInt(tok, 10, 64); err == nil {
		ip.Stack.Push(Integer(n))
		return nil
	}
	if len(tok) >= 2 && tok[0] == '(' && tok[len(tok)-1] == ')' {
		ip.Stack.Push(String(tok))
		return nil
	}
	if len(tok) >= 2 && tok[0] == '[' && tok[len(tok)-1] == ']' {
		return ip.execArrayLiteral(tok)
	}
	if len(tok) >= 4 && strings.HasPrefix(tok, "<<") && strings.HasSuffix(tok, ">>") {
		return ip.execDictLiteral(tok)
	}
	if len(tok) >= 2 && tok[0] == '{' && tok[len(tok)-1] == '}' {
		return ip.execProcLiteral(tok)
	}
	switch tok {
	case "true":
		ip.Stack.Push(Boolean(true))
		return nil
	case "false":
		ip.Stack.Push(Boolean(false))
		return nil
	}
	logger.Errorf("unrecognized token treated as string literal", "token", tok)
	ip.Stack.Push(String(tok))
	return nil
}

func isRealToken(tok string) bool {
	return strings.ContainsRune(tok, '.')
}

// runProcedure replays a procedure's token list through the executor. A
// procedure carries its original source tokens, not pre-resolved
// objects, so any name references inside it resolve dynamically, at
// each call.
func (ip *Interpreter) runProcedure(p Procedure) error {
	return ip.run([]string(p))
}

// evalTokensCollect executes toks against a fresh, empty operand stack
// and returns whatever ended up on it, restoring the interpreter's real
// stack afterward. This is the "fresh sub-executor" §4.2 specifies for
// evaluating the elements of an array or dict literal.
func (ip *Interpreter) evalTokensCollect(toks []string) ([]Object, error) {
	saved := ip.Stack
	ip.Stack = Stack{}
	err := ip.run(toks)
	collected := append([]Object(nil), ip.Stack.All()...)
	ip.Stack = saved
	if err != nil {
		return nil, err
	}
	return collected, nil
}

func (ip *Interpreter) execArrayLiteral(tok string) error {
	inner := tok[1 : len(tok)-1]
	toks, err := Tokenize(inner)
	if err != nil {
		return err
	}
	elems, err := ip.evalTokensCollect(toks)
	if err != nil {
		return err
	}
	ip.Stack.Push(Array(elems))
	return nil
}

func (ip *Interpreter) execDictLiteral(tok string) error {
	inner := tok[2 : len(tok)-2]
	toks, err := Tokenize(inner)
	if err != nil {
		return err
	}
	if len(toks)%2 != 0 {
		return errRange("dict literal", "odd number of name/value tokens")
	}
	d := make(Dict, len(toks)/2)
	for i := 0; i < len(toks); i += 2 {
		key := toks[i]
		if !strings.HasPrefix(key, "/") {
			return errTypeMismatch("dict literal key")
		}
		vals, err := ip.evalTokensCollect(toks[i+1 : i+2])
		if err != nil {
			return err
		}
		if len(vals) != 1 {
			return errRange("dict literal", "value did not produce exactly one object")
		}
		d[Name(key).Key()] = vals[0]
	}
	ip.Stack.Push(d)
	return nil
}

func (ip *Interpreter) execProcLiteral(tok string) error {
	inner := tok[1 : len(tok)-1]
	toks, err := Tokenize(inner)
	if err != nil {
		return err
	}
	ip.Stack.Push(Procedure(toks))
	return nil
}
