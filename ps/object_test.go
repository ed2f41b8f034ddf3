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

import "testing"

func TestStringUnwrap(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"(hello)", "hello"},
		{"()", ""},
		{"hello", "hello"},
		{"(a(b)c)", "a(b)c"},
	}
	for _, c := range cases {
		if got := String(c.in).Unwrap(); got != c.want {
			t.Errorf("String(%q).Unwrap() = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNameKey(t *testing.T) {
	if got := Name("/foo").Key(); got != "foo" {
		t.Errorf("Key() = %q, want %q", got, "foo")
	}
	if got := Name("foo").Key(); got != "foo" {
		t.Errorf("Key() = %q, want %q", got, "foo")
	}
}

func TestTypeName(t *testing.T) {
	cases := []struct {
		v    Object
		want string
	}{
		{Integer(1), "integertype"},
		{Real(1.5), "realtype"},
		{Boolean(true), "booleantype"},
		{String("(x)"), "stringtype"},
		{Name("/x"), "nametype"},
		{Array{}, "arraytype"},
		{Dict{}, "dicttype"},
		{Procedure{}, "proceduretype"},
		{Null{}, "nulltype"},
	}
	for _, c := range cases {
		if got := TypeName(c.v); got != c.want {
			t.Errorf("TypeName(%#v) = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestTruthy(t *testing.T) {
	cases := []struct {
		v    Object
		want bool
	}{
		{Boolean(false), false},
		{Boolean(true), true},
		{Integer(0), false},
		{Integer(1), true},
		{Real(0), false},
		{Real(0.5), true},
		{String("(x)"), true},
		{Name("/x"), true},
		{Array{}, true},
		{Null{}, true},
	}
	for _, c := range cases {
		if got := Truthy(c.v); got != c.want {
			t.Errorf("Truthy(%#v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestArrayAliasing(t *testing.T) {
	a := Array{Integer(1), Integer(2), Integer(3)}
	b := a
	b[1] = Integer(99)
	if a[1] != Integer(99) {
		t.Errorf("expected array aliasing: a[1] = %v, want 99", a[1])
	}
}

func TestDictAliasing(t *testing.T) {
	d := Dict{"x": Integer(1)}
	e := d
	e["x"] = Integer(2)
	if d["x"] != Integer(2) {
		t.Errorf("expected dict aliasing: d[x] = %v, want 2", d["x"])
	}
}
