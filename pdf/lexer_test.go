// Copyright (c) 2026 The psdf authors.

package pdf

import "testing"

func parseTop(t *testing.T, src string) Object {
	t.Helper()
	s := newScanner([]byte(src))
	v, err := s.parseValue()
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestParseIntegerAndReal(t *testing.T) {
	if v := parseTop(t, "123"); v != Object(Integer(123)) {
		t.Errorf("parse(123) = %v, want Integer(123)", v)
	}
	if v := parseTop(t, "-3.14"); v != Object(Real(-3.14)) {
		t.Errorf("parse(-3.14) = %v, want Real(-3.14)", v)
	}
}

func TestParseIndirectReference(t *testing.T) {
	v := parseTop(t, "12 0 R")
	ref, ok := v.(Reference)
	if !ok {
		t.Fatalf("parse(12 0 R) = %#v, want Reference", v)
	}
	if ref.Num != 12 || ref.Gen != 0 {
		t.Errorf("ref = %+v, want {12 0}", ref)
	}
}

func TestParseBareIntegerIsNotConfusedWithReference(t *testing.T) {
	v := parseTop(t, "12 34")
	if v != Object(Integer(12)) {
		t.Errorf("parse(\"12 34\") = %v, want Integer(12)", v)
	}
}

func TestParseName(t *testing.T) {
	if v := parseTop(t, "/Type"); v != Object(Name("Type")) {
		t.Errorf("parse(/Type) = %v, want Name(Type)", v)
	}
}

func TestParseLiteralStringBalancesNestedParens(t *testing.T) {
	v := parseTop(t, `(a(b)c)`)
	s, ok := v.(*String)
	if !ok {
		t.Fatalf("parse result = %#v, want *String", v)
	}
	if string(s.Value) != "a(b)c" {
		t.Errorf("Value = %q, want %q", s.Value, "a(b)c")
	}
}

func TestParseLiteralStringEscapes(t *testing.T) {
	v := parseTop(t, `(line1\nline2\)end)`)
	s := v.(*String)
	if string(s.Value) != "line1\nline2)end" {
		t.Errorf("Value = %q, want %q", s.Value, "line1\nline2)end")
	}
}

func TestParseHexString(t *testing.T) {
	v := parseTop(t, "<901FA>")
	s, ok := v.(*String)
	if !ok || !s.Hex {
		t.Fatalf("parse(<901FA>) = %#v, want hex *String", v)
	}
	want := []byte{0x90, 0x1f, 0xa0}
	if len(s.Value) != len(want) {
		t.Fatalf("Value = %v, want %v", s.Value, want)
	}
	for i := range want {
		if s.Value[i] != want[i] {
			t.Errorf("Value[%d] = %x, want %x", i, s.Value[i], want[i])
		}
	}
}

func TestParseArray(t *testing.T) {
	v := parseTop(t, "[1 2 /Foo (bar)]")
	arr, ok := v.(Array)
	if !ok {
		t.Fatalf("parse result = %#v, want Array", v)
	}
	if len(arr) != 4 {
		t.Fatalf("len(arr) = %d, want 4", len(arr))
	}
	if arr[0] != Object(Integer(1)) || arr[1] != Object(Integer(2)) || arr[2] != Object(Name("Foo")) {
		t.Errorf("arr = %v", arr)
	}
}

func TestParseDict(t *testing.T) {
	v := parseTop(t, "<< /Type /Catalog /Count 3 >>")
	d, ok := v.(Dict)
	if !ok {
		t.Fatalf("parse result = %#v, want Dict", v)
	}
	if d["Type"] != Object(Name("Catalog")) {
		t.Errorf("Type = %v, want Name(Catalog)", d["Type"])
	}
	if d["Count"] != Object(Integer(3)) {
		t.Errorf("Count = %v, want Integer(3)", d["Count"])
	}
}

func TestParseDictRejectsNonNameKey(t *testing.T) {
	s := newScanner([]byte("<< 1 2 >>"))
	if _, err := s.parseValue(); err == nil {
		t.Error("expected an error for a non-name dictionary key")
	}
}

func TestParseTrueFalseNull(t *testing.T) {
	if v := parseTop(t, "true"); v != Object(Boolean(true)) {
		t.Errorf("parse(true) = %v", v)
	}
	if v := parseTop(t, "false"); v != Object(Boolean(false)) {
		t.Errorf("parse(false) = %v", v)
	}
	if v := parseTop(t, "null"); v != NullObject {
		t.Errorf("parse(null) = %v, want NullObject", v)
	}
}
