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
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/pdfmesh/internal/pdftest"
)

func TestLoad(t *testing.T) {
	f := pdftest.New()
	length := f.Reserve()
	content := "0 0 m 10 10 l S"
	stm := f.Add("<< /Length " + itoa(length) + " 0 R >>\nstream\n" + content + "\nendstream")
	f.Set(length, itoa(len(content)))
	dict := f.Add("<< /Type /Test /Ref " + itoa(stm) + " 0 R /Num 1.5 >>")
	f.SetRoot(dict)

	doc, err := Load(f.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if doc.Version != V1_7 {
		t.Errorf("wrong version %s", doc.Version)
	}
	if d := cmp.Diff([]uint32{1, 2, 3}, doc.IDs()); d != "" {
		t.Errorf("wrong object IDs (-want +got):\n%s", d)
	}

	root, err := GetDict(doc, doc.Trailer["Root"])
	if err != nil {
		t.Fatal(err)
	}
	if root["Type"] != Name("Test") {
		t.Errorf("wrong root dictionary %s", root)
	}

	body, err := doc.StreamData(root["Ref"])
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != content {
		t.Errorf("wrong stream data %q", body)
	}
}

func TestLoadCompressed(t *testing.T) {
	content := strings.Repeat("1 2 m 3 4 l S\n", 500)
	f := pdftest.New()
	stm := f.AddStream("/Type /XObject", []byte(content), true)
	f.SetRoot(stm)

	doc, err := Load(f.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	body, err := doc.StreamData(doc.Trailer["Root"])
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != content {
		t.Errorf("decompressed data differs, got %d bytes", len(body))
	}
}

func TestMissingTrailer(t *testing.T) {
	data := pdftest.SinglePage(100, 100, "0 0 m 1 1 l S")
	data = bytes.Replace(data, []byte("startxref"), []byte("startxxxx"), 1)

	doc, err := Load(data)
	if doc != nil {
		t.Error("expected nil document")
	}
	if !errors.Is(err, ErrTrailerNotFound) {
		t.Errorf("expected ErrTrailerNotFound, got %v", err)
	}
	if !IsMalformed(err) {
		t.Errorf("expected a malformed file error, got %T", err)
	}
}

func TestBadXRefOffset(t *testing.T) {
	data := []byte("%PDF-1.4\nstartxref\n99999\n%%EOF\n")
	_, err := Load(data)
	if !errors.Is(err, ErrXRefCorrupt) {
		t.Errorf("expected ErrXRefCorrupt, got %v", err)
	}
}

func TestDamagedObject(t *testing.T) {
	f := pdftest.New()
	good := f.Add("<< /A 1 >>")
	bad := f.Add("<< /A ) >>")
	f.SetRoot(good)

	doc, err := Load(f.Bytes())
	if doc == nil {
		t.Fatalf("expected partial document, got error %v", err)
	}
	var damaged *DamagedError
	if !errors.As(err, &damaged) {
		t.Fatalf("expected DamagedError, got %v", err)
	}
	if len(damaged.Errs) != 1 || !IsMalformed(err) {
		t.Errorf("unexpected damage report %v", damaged.Errs)
	}

	obj, _ := doc.Get(NewReference(uint32(bad), 0))
	if obj != nil {
		t.Errorf("damaged object should be missing, got %v", obj)
	}
	obj, _ = doc.Get(NewReference(uint32(good), 0))
	if obj == nil {
		t.Error("good object is missing")
	}
}

func TestStreamLengthRepair(t *testing.T) {
	cases := []string{"/Length 1000", "/Length 3", "", "/Length (x)"}
	for _, entries := range cases {
		f := pdftest.New()
		stm := f.Add("<< " + entries + " >>\nstream\nhello world\nendstream")
		f.SetRoot(stm)

		doc, err := Load(f.Bytes())
		if err != nil {
			t.Errorf("%q: %v", entries, err)
			continue
		}
		body, err := doc.StreamData(doc.Trailer["Root"])
		if err != nil {
			t.Errorf("%q: %v", entries, err)
			continue
		}
		if string(body) != "hello world" {
			t.Errorf("%q: wrong stream data %q", entries, body)
		}
	}
}

func TestUnsupportedFilter(t *testing.T) {
	f := pdftest.New()
	stm := f.AddStream("/Filter /LZWDecode", []byte("xxx"), false)
	f.SetRoot(stm)
	doc, err := Load(f.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	_, err = doc.StreamData(doc.Trailer["Root"])
	var unsupported *UnsupportedFilterError
	if !errors.As(err, &unsupported) || unsupported.Filter != "LZWDecode" {
		t.Errorf("expected unsupported filter error, got %v", err)
	}
}

func TestCorruptFlate(t *testing.T) {
	f := pdftest.New()
	stm := f.AddStream("/Filter /FlateDecode", []byte("this is not zlib data"), false)
	f.SetRoot(stm)
	doc, err := Load(f.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	_, err = doc.StreamData(doc.Trailer["Root"])
	var decErr *DecompressionError
	if !errors.As(err, &decErr) {
		t.Errorf("expected decompression error, got %v", err)
	}
}

func TestTypeMismatch(t *testing.T) {
	f := pdftest.New()
	n := f.Add("42")
	f.SetRoot(n)
	doc, err := Load(f.Bytes())
	if err != nil {
		t.Fatal(err)
	}

	ref := doc.Trailer["Root"]
	if x, err := GetInteger(doc, ref); err != nil || x != 42 {
		t.Errorf("GetInteger: %d, %v", x, err)
	}
	if x, err := GetNumber(doc, ref); err != nil || x != 42 {
		t.Errorf("GetNumber: %g, %v", x, err)
	}

	_, err = GetDict(doc, ref)
	if !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("expected type mismatch, got %v", err)
	}
	_, err = GetName(doc, nil)
	var mismatch *TypeMismatchError
	if !errors.As(err, &mismatch) || mismatch.Expected != "Name" || mismatch.Got != nil {
		t.Errorf("unexpected error %v", err)
	}
}

func TestTitle(t *testing.T) {
	f := pdftest.New()
	info := f.Add("<< /Title <FEFF00480069> /Author (x) >>")
	root := f.Add("<< /Type /Catalog /Lang (de-CH) >>")
	f.SetInfo(info)
	f.SetRoot(root)
	doc, err := Load(f.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if title := doc.Title(); title != "Hi" {
		t.Errorf("wrong title %q", title)
	}
	if lang := doc.Language().String(); lang != "de-CH" {
		t.Errorf("wrong language %q", lang)
	}

	if s := String("caf\xe9").AsTextString(); s != "café" {
		t.Errorf("wrong Latin-1 decoding %q", s)
	}
}

func TestOpen(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "test.pdf")
	err := os.WriteFile(fname, pdftest.SinglePage(200, 100, "0 0 m 1 1 l S"), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	doc, err := Open(fname)
	if err != nil {
		t.Fatal(err)
	}
	if doc.NumObjects() != 4 {
		t.Errorf("expected 4 objects, got %d", doc.NumObjects())
	}
	if err := doc.Close(); err != nil {
		t.Error(err)
	}
}

func itoa(x int) string {
	return Format(Integer(x))
}
