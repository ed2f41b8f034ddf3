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

// operators is the dispatch table backing the registered-operator-name
// row of §4.2's execution table. Each entry consumes and/or produces
// operand-stack values and may mutate the interpreter's current
// dictionary or graphics state.
var operators map[string]func(*Interpreter) error

func init() {
	operators = map[string]func(*Interpreter) error{
		"add": opAdd, "sub": opSub, "mul": opMul, "div": opDiv,

		"eq": opEq, "ne": opNe, "lt": opLt, "le": opLe, "gt": opGt, "ge": opGe,

		"dup": opDup, "pop": opPop, "exch": opExch, "clear": opClear, "stack": opStack,

		"show": opShow,

		"array": opArray, "get": opGet, "put": opPut, "length": opLength,
		"aload": opAload, "astore": opAstore, "forall": opForall,

		"dict": opDict, "def": opDef, "load": opLoad, "store": opStore,
		"known": opKnown, "keys": opKeys,

		"if": opIf, "ifelse": opIfelse, "repeat": opRepeat, "for": opFor, "exec": opExec,

		"moveto": opMoveto, "lineto": opLineto, "closepath": opClosepath,
		"newpath": opNewpath, "stroke": opStroke, "fill": opFill, "showpage": opShowpage,

		"gsave": opGsave, "grestore": opGrestore,
		"setrgbcolor": opSetrgbcolor, "setlinewidth": opSetlinewidth,

		"translate": opTranslate, "scale": opScale, "rotate": opRotate,
	}
}

// --- arithmetic ---

func popTwoNumeric(ip *Interpreter, op string) (Object, Object, error) {
	vs, err := ip.Stack.PopN(2)
	if err != nil {
		return nil, nil, errStackUnderflow(op)
	}
	if !isNumeric(vs[0]) || !isNumeric(vs[1]) {
		return nil, nil, errTypeMismatch(op)
	}
	return vs[0], vs[1], nil
}

func bothInteger(a, b Object) (Integer, Integer, bool) {
	ai, aok := a.(Integer)
	bi, bok := b.(Integer)
	return ai, bi, aok && bok
}

func opAdd(ip *Interpreter) error {
	a, b, err := popTwoNumeric(ip, "add")
	if err != nil {
		return err
	}
	if ai, bi, ok := bothInteger(a, b); ok {
		ip.Stack.Push(ai + bi)
		return nil
	}
	af, _ := asFloat(a)
	bf, _ := asFloat(b)
	ip.Stack.Push(Real(af + bf))
	return nil
}

func opSub(ip *Interpreter) error {
	a, b, err := popTwoNumeric(ip, "sub")
	if err != nil {
		return err
	}
	if ai, bi, ok := bothInteger(a, b); ok {
		ip.Stack.Push(ai - bi)
		return nil
	}
	af, _ := asFloat(a)
	bf, _ := asFloat(b)
	ip.Stack.Push(Real(af - bf))
	return nil
}

func opMul(ip *Interpreter) error {
	a, b, err := popTwoNumeric(ip, "mul")
	if err != nil {
		return err
	}
	if ai, bi, ok := bothInteger(a, b); ok {
		ip.Stack.Push(ai * bi)
		return nil
	}
	af, _ := asFloat(a)
	bf, _ := asFloat(b)
	ip.Stack.Push(Real(af * bf))
	return nil
}

func opDiv(ip *Interpreter) error {
	a, b, err := popTwoNumeric(ip, "div")
	if err != nil {
		return err
	}
	if ai, bi, ok := bothInteger(a, b); ok {
		if bi == 0 {
			return errDivByZero("div")
		}
		ip.Stack.Push(ai / bi)
		return nil
	}
	af, _ := asFloat(a)
	bf, _ := asFloat(b)
	if bf == 0 {
		return errDivByZero("div")
	}
	ip.Stack.Push(Real(af / bf))
	return nil
}

// --- comparison ---
//
// eq/ne follow the source's type-strict behavior: values with different
// concrete tags are never equal, even 1 and 1.0. See DESIGN.md.

func opEq(ip *Interpreter) error {
	vs, err := ip.Stack.PopN(2)
	if err != nil {
		return errStackUnderflow("eq")
	}
	ip.Stack.Push(Boolean(sameTagEqual(vs[0], vs[1])))
	return nil
}

func opNe(ip *Interpreter) error {
	vs, err := ip.Stack.PopN(2)
	if err != nil {
		return errStackUnderflow("ne")
	}
	ip.Stack.Push(Boolean(!sameTagEqual(vs[0], vs[1])))
	return nil
}

func sameTagEqual(a, b Object) bool {
	switch x := a.(type) {
	case Integer:
		y, ok := b.(Integer)
		return ok && x == y
	case Real:
		y, ok := b.(Real)
		return ok && x == y
	case Boolean:
		y, ok := b.(Boolean)
		return ok && x == y
	case String:
		y, ok := b.(String)
		return ok && x == y
	case Name:
		y, ok := b.(Name)
		return ok && x == y
	case Null:
		_, ok := b.(Null)
		return ok
	default:
		return false
	}
}

func cmpNumeric(ip *Interpreter, op string, pred func(a, b float64) bool) error {
	a, b, err := popTwoNumeric(ip, op)
	if err != nil {
		return err
	}
	af, _ := asFloat(a)
	bf, _ := asFloat(b)
	ip.Stack.Push(Boolean(pred(af, bf)))
	return nil
}

func opLt(ip *Interpreter) error { return cmpNumeric(ip, "lt", func(a, b float64) bool { return a < b }) }
func opLe(ip *Interpreter) error { return cmpNumeric(ip, "le", func(a, b float64) bool { return a <= b }) }
func opGt(ip *Interpreter) error { return cmpNumeric(ip, "gt", func(a, b float64) bool { return a > b }) }
func opGe(ip *Interpreter) error { return cmpNumeric(ip, "ge", func(a, b float64) bool { return a >= b }) }

// --- stack ---

func opDup(ip *Interpreter) error {
	v, err := ip.Stack.Peek()
	if err != nil {
		return errStackUnderflow("dup")
	}
	ip.Stack.Push(v)
	return nil
}

func opPop(ip *Interpreter) error {
	_, err := ip.Stack.Pop()
	if err != nil {
		return errStackUnderflow("pop")
	}
	return nil
}

func opExch(ip *Interpreter) error {
	vs, err := ip.Stack.PopN(2)
	if err != nil {
		return errStackUnderflow("exch")
	}
	ip.Stack.Push(vs[1])
	ip.Stack.Push(vs[0])
	return nil
}

func opClear(ip *Interpreter) error {
	ip.Stack.Clear()
	return nil
}

func opStack(ip *Interpreter) error {
	vals := ip.Stack.All()
	for i := len(vals) - 1; i >= 0; i-- {
		logDebugStack(vals[i])
	}
	return nil
}

// --- output ---

func opShow(ip *Interpreter) error {
	v, err := ip.Stack.Pop()
	if err != nil {
		return errStackUnderflow("show")
	}
	if s, ok := v.(String); ok {
		ip.writeText(s.Unwrap())
		return nil
	}
	ip.writeText(ToString(v))
	return nil
}

// --- array ---

func opArray(ip *Interpreter) error {
	v, err := ip.Stack.Pop()
	if err != nil {
		return errStackUnderflow("array")
	}
	n, ok := v.(Integer)
	if !ok {
		return errTypeMismatch("array")
	}
	if n < 0 {
		return errRange("array", "negative size")
	}
	arr := make(Array, n)
	for i := range arr {
		arr[i] = NullObject
	}
	ip.Stack.Push(arr)
	return nil
}

func opGet(ip *Interpreter) error {
	vs, err := ip.Stack.PopN(2)
	if err != nil {
		return errStackUnderflow("get")
	}
	arr, ok := vs[0].(Array)
	if !ok {
		return errTypeMismatch("get")
	}
	idx, ok := vs[1].(Integer)
	if !ok {
		return errTypeMismatch("get")
	}
	if idx < 0 || int(idx) >= len(arr) {
		return errRange("get", "index out of bounds")
	}
	ip.Stack.Push(arr[idx])
	return nil
}

// opPut mutates the array in place and re-pushes it, matching this
// interpreter's deliberate deviation from standard PostScript (which is
// net-consuming). See DESIGN.md.
func opPut(ip *Interpreter) error {
	vs, err := ip.Stack.PopN(3)
	if err != nil {
		return errStackUnderflow("put")
	}
	arr, ok := vs[0].(Array)
	if !ok {
		return errTypeMismatch("put")
	}
	idx, ok := vs[1].(Integer)
	if !ok {
		return errTypeMismatch("put")
	}
	if idx < 0 || int(idx) >= len(arr) {
		return errRange("put", "index out of bounds")
	}
	arr[idx] = vs[2]
	ip.Stack.Push(arr)
	return nil
}

func opLength(ip *Interpreter) error {
	v, err := ip.Stack.Pop()
	if err != nil {
		return errStackUnderflow("length")
	}
	switch x := v.(type) {
	case Array:
		ip.Stack.Push(Integer(len(x)))
	case String:
		ip.Stack.Push(Integer(len(x.Unwrap())))
	default:
		return errTypeMismatch("length")
	}
	return nil
}

func opAload(ip *Interpreter) error {
	v, err := ip.Stack.Pop()
	if err != nil {
		return errStackUnderflow("aload")
	}
	arr, ok := v.(Array)
	if !ok {
		return errTypeMismatch("aload")
	}
	for _, e := range arr {
		ip.Stack.Push(e)
	}
	ip.Stack.Push(arr)
	return nil
}

// opAstore pops an array, then pops exactly len(array) further values,
// storing them so that the array ends up holding them in the same order
// they were originally pushed (index 0 = the deepest/first-pushed
// value). See DESIGN.md, Open Question 3.
func opAstore(ip *Interpreter) error {
	v, err := ip.Stack.Pop()
	if err != nil {
		return errStackUnderflow("astore")
	}
	arr, ok := v.(Array)
	if !ok {
		return errTypeMismatch("astore")
	}
	n := len(arr)
	vals, err := ip.Stack.PopN(n)
	if err != nil {
		return errStackUnderflow("astore")
	}
	copy(arr, vals)
	ip.Stack.Push(arr)
	return nil
}

func opForall(ip *Interpreter) error {
	vs, err := ip.Stack.PopN(2)
	if err != nil {
		return errStackUnderflow("forall")
	}
	arr, ok := vs[0].(Array)
	if !ok {
		return errTypeMismatch("forall")
	}
	proc, ok := vs[1].(Procedure)
	if !ok {
		return errTypeMismatch("forall")
	}
	for _, e := range arr {
		ip.Stack.Push(e)
		if err := ip.runProcedure(proc); err != nil {
			return err
		}
	}
	return nil
}

// --- dictionary ---

func opDict(ip *Interpreter) error {
	v, err := ip.Stack.Pop()
	if err != nil {
		return errStackUnderflow("dict")
	}
	n, ok := v.(Integer)
	if !ok {
		return errTypeMismatch("dict")
	}
	if n < 0 {
		return errRange("dict", "negative size")
	}
	ip.Stack.Push(make(Dict))
	return nil
}

func opDef(ip *Interpreter) error {
	vs, err := ip.Stack.PopN(2)
	if err != nil {
		return errStackUnderflow("def")
	}
	name, ok := vs[0].(Name)
	if !ok {
		return errTypeMismatch("def")
	}
	ip.Dict[name.Key()] = vs[1]
	return nil
}

func opLoad(ip *Interpreter) error {
	v, err := ip.Stack.Pop()
	if err != nil {
		return errStackUnderflow("load")
	}
	name, ok := v.(Name)
	if !ok {
		return errTypeMismatch("load")
	}
	val, ok := ip.Dict[name.Key()]
	if !ok {
		return errUndefined(string(name))
	}
	ip.Stack.Push(val)
	return nil
}

func opStore(ip *Interpreter) error {
	vs, err := ip.Stack.PopN(3)
	if err != nil {
		return errStackUnderflow("store")
	}
	d, ok := vs[0].(Dict)
	if !ok {
		return errTypeMismatch("store")
	}
	name, ok := vs[1].(Name)
	if !ok {
		return errTypeMismatch("store")
	}
	d[name.Key()] = vs[2]
	return nil
}

func opKnown(ip *Interpreter) error {
	vs, err := ip.Stack.PopN(2)
	if err != nil {
		return errStackUnderflow("known")
	}
	d, ok := vs[0].(Dict)
	if !ok {
		return errTypeMismatch("known")
	}
	name, ok := vs[1].(Name)
	if !ok {
		return errTypeMismatch("known")
	}
	_, has := d[name.Key()]
	ip.Stack.Push(Boolean(has))
	return nil
}

func opKeys(ip *Interpreter) error {
	v, err := ip.Stack.Pop()
	if err != nil {
		return errStackUnderflow("keys")
	}
	d, ok := v.(Dict)
	if !ok {
		return errTypeMismatch("keys")
	}
	ip.Stack.Push(Array(sortedNames(d)))
	return nil
}

// --- control flow ---

func opIf(ip *Interpreter) error {
	vs, err := ip.Stack.PopN(2)
	if err != nil {
		return errStackUnderflow("if")
	}
	proc, ok := vs[1].(Procedure)
	if !ok {
		return errTypeMismatch("if")
	}
	if Truthy(vs[0]) {
		return ip.runProcedure(proc)
	}
	return nil
}

func opIfelse(ip *Interpreter) error {
	vs, err := ip.Stack.PopN(3)
	if err != nil {
		return errStackUnderflow("ifelse")
	}
	thenProc, ok := vs[1].(Procedure)
	if !ok {
		return errTypeMismatch("ifelse")
	}
	elseProc, ok := vs[2].(Procedure)
	if !ok {
		return errTypeMismatch("ifelse")
	}
	if Truthy(vs[0]) {
		return ip.runProcedure(thenProc)
	}
	return ip.runProcedure(elseProc)
}

func opRepeat(ip *Interpreter) error {
	vs, err := ip.Stack.PopN(2)
	if err != nil {
		return errStackUnderflow("repeat")
	}
	count, ok := vs[0].(Integer)
	if !ok {
		return errTypeMismatch("repeat")
	}
	proc, ok := vs[1].(Procedure)
	if !ok {
		return errTypeMismatch("repeat")
	}
	if count < 0 {
		return errRange("repeat", "negative count")
	}
	for i := Integer(0); i < count; i++ {
		if err := ip.runProcedure(proc); err != nil {
			return err
		}
	}
	return nil
}

// opFor requires Integer start/end/step, matching this interpreter's
// source.
func opFor(ip *Interpreter) error {
	vs, err := ip.Stack.PopN(4)
	if err != nil {
		return errStackUnderflow("for")
	}
	start, ok := vs[0].(Integer)
	if !ok {
		return errTypeMismatch("for")
	}
	end, ok := vs[1].(Integer)
	if !ok {
		return errTypeMismatch("for")
	}
	step, ok := vs[2].(Integer)
	if !ok {
		return errTypeMismatch("for")
	}
	proc, ok := vs[3].(Procedure)
	if !ok {
		return errTypeMismatch("for")
	}
	if step == 0 {
		return errRange("for", "zero step")
	}
	if step > 0 {
		for i := start; i <= end; i += step {
			ip.Stack.Push(i)
			if err := ip.runProcedure(proc); err != nil {
				return err
			}
		}
	} else {
		for i := start; i >= end; i += step {
			ip.Stack.Push(i)
			if err := ip.runProcedure(proc); err != nil {
				return err
			}
		}
	}
	return nil
}

func opExec(ip *Interpreter) error {
	v, err := ip.Stack.Pop()
	if err != nil {
		return errStackUnderflow("exec")
	}
	proc, ok := v.(Procedure)
	if !ok {
		return errTypeMismatch("exec")
	}
	return ip.runProcedure(proc)
}

// --- graphics path ---

func popPoint(ip *Interpreter, op string) (float64, float64, error) {
	vs, err := ip.Stack.PopN(2)
	if err != nil {
		return 0, 0, errStackUnderflow(op)
	}
	x, ok := asFloat(vs[0])
	if !ok {
		return 0, 0, errTypeMismatch(op)
	}
	y, ok := asFloat(vs[1])
	if !ok {
		return 0, 0, errTypeMismatch(op)
	}
	return x, y, nil
}

func opMoveto(ip *Interpreter) error {
	x, y, err := popPoint(ip, "moveto")
	if err != nil {
		return err
	}
	gs := ip.Graphics.Current()
	gs.CurrentPoint = [2]float64{x, y}
	gs.Path = append(gs.Path, Segment{Kind: MoveTo, Points: [][2]float64{{x, y}}})
	return nil
}

func opLineto(ip *Interpreter) error {
	x, y, err := popPoint(ip, "lineto")
	if err != nil {
		return err
	}
	gs := ip.Graphics.Current()
	gs.CurrentPoint = [2]float64{x, y}
	gs.Path = append(gs.Path, Segment{Kind: LineTo, Points: [][2]float64{{x, y}}})
	return nil
}

func opClosepath(ip *Interpreter) error {
	gs := ip.Graphics.Current()
	gs.Path = append(gs.Path, Segment{Kind: Close})
	return nil
}

func opNewpath(ip *Interpreter) error {
	ip.Graphics.Current().Path = nil
	return nil
}

func opStroke(ip *Interpreter) error {
	gs := ip.Graphics.Current()
	ip.Sink.Emit(Event{Kind: EventStroke, Path: gs.Path, Color: gs.Color, Width: gs.LineWidth})
	gs.Path = nil
	return nil
}

func opFill(ip *Interpreter) error {
	gs := ip.Graphics.Current()
	ip.Sink.Emit(Event{Kind: EventFill, Path: gs.Path, Color: gs.Color, Width: gs.LineWidth})
	gs.Path = nil
	return nil
}

func opShowpage(ip *Interpreter) error {
	ip.Sink.Emit(Event{Kind: EventShowPage})
	return nil
}

// --- graphics state ---

func opGsave(ip *Interpreter) error {
	ip.Graphics.Save()
	return nil
}

func opGrestore(ip *Interpreter) error {
	return ip.Graphics.Restore()
}

func opSetrgbcolor(ip *Interpreter) error {
	vs, err := ip.Stack.PopN(3)
	if err != nil {
		return errStackUnderflow("setrgbcolor")
	}
	r, ok1 := asFloat(vs[0])
	g, ok2 := asFloat(vs[1])
	b, ok3 := asFloat(vs[2])
	if !ok1 || !ok2 || !ok3 {
		return errTypeMismatch("setrgbcolor")
	}
	ip.Graphics.Current().Color = RGB{R: r, G: g, B: b}
	return nil
}

func opSetlinewidth(ip *Interpreter) error {
	v, err := ip.Stack.Pop()
	if err != nil {
		return errStackUnderflow("setlinewidth")
	}
	w, ok := asFloat(v)
	if !ok {
		return errTypeMismatch("setlinewidth")
	}
	ip.Graphics.Current().LineWidth = w
	return nil
}

// --- transforms ---

func opTranslate(ip *Interpreter) error {
	tx, ty, err := popPoint(ip, "translate")
	if err != nil {
		return err
	}
	gs := ip.Graphics.Current()
	gs.CTM = gs.CTM.Translate(tx, ty)
	return nil
}

func opScale(ip *Interpreter) error {
	sx, sy, err := popPoint(ip, "scale")
	if err != nil {
		return err
	}
	gs := ip.Graphics.Current()
	gs.CTM = gs.CTM.Scale(sx, sy)
	return nil
}

func opRotate(ip *Interpreter) error {
	v, err := ip.Stack.Pop()
	if err != nil {
		return errStackUnderflow("rotate")
	}
	deg, ok := asFloat(v)
	if !ok {
		return errTypeMismatch("rotate")
	}
	gs := ip.Graphics.Current()
	gs.CTM = gs.CTM.Rotate(deg)
	return nil
}
