// seehuhn.de/go/pdfmesh - turn PDF vector graphics into triangle meshes
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
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

package pdf

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReadObject(t *testing.T) {
	cases := []struct {
		in     string
		want   Object
		endPos int
	}{
		{"null", nil, 4},
		{"true ", Bool(true), 4},
		{"false]", Bool(false), 5},
		{"12", Integer(12), 2},
		{"-3 ", Integer(-3), 2},
		{"+17", Integer(17), 3},
		{"1.5", Real(1.5), 3},
		{"-.25/", Real(-0.25), 4},
		{"7 0 obj", Integer(7), 1},
		{"7 0 R", NewReference(7, 0), 5},
		{"12 3 R/x", NewReference(12, 3), 6},
		{"7 0 Rx", Integer(7), 1},
		{"1 2 3", Integer(1), 1},
		{"/Name", Name("Name"), 5},
		{"/A#20B ", Name("A B"), 6},
		{"/a/b", Name("a"), 2},
		{"/", Name(""), 1},
		{"(hello)", String("hello"), 7},
		{"(a(b)c)x", String("a(b)c"), 7},
		{`(\(\)\\)`, String(`()\`), 8},
		{`(\101\60)`, String("A0"), 9},
		{"(a\\\nb)", String("ab"), 6},
		{"(a\r\nb)", String("a\nb"), 6},
		{"<414243>", String("ABC"), 8},
		{"<41 42\n43>", String("ABC"), 10},
		{"<4>", String{0x40}, 3},
		{"<abC>", String{0xAB, 0xC0}, 5},
		{"[1 /a (x)]", Array{Integer(1), Name("a"), String("x")}, 10},
		{"[1 0 R 2]", Array{NewReference(1, 0), Integer(2)}, 9},
		{"[[]]", Array{Array{}}, 4},
		{"<</A 1/B[2]>>", Dict{"A": Integer(1), "B": Array{Integer(2)}}, 13},
		{"<< /Length 5 0 R >>", Dict{"Length": NewReference(5, 0)}, 19},
		{"<< /N null >>", Dict{}, 13},
		{"  % comment\n 42", Integer(42), 15},
	}
	for _, test := range cases {
		s := NewScanner([]byte(test.in))
		got, err := s.ReadObject()
		if err != nil {
			t.Errorf("%q: unexpected error %v", test.in, err)
			continue
		}
		if d := cmp.Diff(test.want, got); d != "" {
			t.Errorf("%q: wrong object (-want +got):\n%s", test.in, d)
		}
		if s.Pos() != test.endPos {
			t.Errorf("%q: cursor at %d, expected %d", test.in, s.Pos(), test.endPos)
		}
	}
}

func TestReadObjectMalformed(t *testing.T) {
	cases := []string{
		"",
		")",
		">",
		"{",
		"(unterminated",
		"<12zz>",
		"[1 2",
		"<< /A >>",
		"<< 1 2 >>",
		"-",
	}
	for _, in := range cases {
		s := NewScanner([]byte(in))
		obj, err := s.ReadObject()
		if !IsMalformed(err) {
			t.Errorf("%q: expected malformed file error, got %v", in, err)
		}
		if obj != nil {
			t.Errorf("%q: expected null object, got %v", in, obj)
		}
	}
}

// TestIntegerNotReference checks that a number followed by a second number
// and a keyword other than R is not mistaken for a reference, and that the
// cursor is left just after the first number.
func TestIntegerNotReference(t *testing.T) {
	s := NewScanner([]byte("7 0 obj"))
	obj, err := s.ReadObject()
	if err != nil {
		t.Fatal(err)
	}
	if obj != Integer(7) {
		t.Errorf("expected Integer(7), got %v", obj)
	}
	if s.Pos() != 1 {
		t.Errorf("cursor at %d, expected 1", s.Pos())
	}

	obj, err = s.ReadObject()
	if err != nil {
		t.Fatal(err)
	}
	if obj != Integer(0) {
		t.Errorf("expected Integer(0), got %v", obj)
	}
	s.SkipWhiteSpace()
	if err := s.SkipString("obj"); err != nil {
		t.Error(err)
	}
}

func TestNoReferences(t *testing.T) {
	s := NewScanner([]byte("1 0 R"))
	s.NoReferences = true
	obj, err := s.ReadObject()
	if err != nil {
		t.Fatal(err)
	}
	if obj != Integer(1) {
		t.Errorf("expected Integer(1), got %v", obj)
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		in   Object
		want string
	}{
		{nil, "null"},
		{Integer(-1), "-1"},
		{Real(2), "2."},
		{Name("A B"), "/A#20B"},
		{String("a(b)"), `(a\(b\))`},
		{Array{Integer(1), nil}, "[1 null]"},
		{Dict{"B": Integer(2), "A": Bool(true)}, "<</A true /B 2 >>"},
		{NewReference(3, 1), "3 1 R"},
	}
	for _, test := range cases {
		got := Format(test.in)
		if got != test.want {
			t.Errorf("Format(%#v) = %q, want %q", test.in, got, test.want)
		}
	}
}

func TestFormatRoundTrip(t *testing.T) {
	objects := []Object{
		Dict{
			"Type":     Name("Page"),
			"MediaBox": Array{Integer(0), Integer(0), Real(595.5), Integer(842)},
			"Contents": NewReference(4, 0),
			"Name":     Name("x/y"),
		},
		Array{String("\r\n()\\"), Bool(false)},
	}
	for _, obj := range objects {
		s := NewScanner([]byte(Format(obj)))
		got, err := s.ReadObject()
		if err != nil {
			t.Fatal(err)
		}
		if d := cmp.Diff(obj, got); d != "" {
			t.Errorf("round trip failed (-want +got):\n%s", d)
		}
	}
}

func FuzzReadObject(f *testing.F) {
	f.Add("<< /Type /Page /MediaBox [0 0 612 792] /Contents 4 0 R >>")
	f.Add("[1 2 R (x\\)) <0a1>]")
	f.Add("7 0 obj")
	f.Fuzz(func(t *testing.T, in string) {
		s := NewScanner([]byte(in))
		for !s.AtEOF() {
			before := s.Pos()
			_, err := s.ReadObject()
			if err != nil {
				if s.Pos() != before && s.Pos() > len(in) {
					t.Fatalf("cursor moved past the end")
				}
				s.SetPos(s.Pos() + 1)
			}
		}
	})
}
