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

// Package pdftest assembles small PDF files for use in tests.
package pdftest

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zlib"
)

// File collects the objects of a PDF file under construction.
// Objects are numbered consecutively, starting at 1.
type File struct {
	objects []string
	root    int
	info    int
}

// New returns an empty file.
func New() *File {
	return &File{}
}

// Add appends an object, given in PDF syntax, and returns its number.
func (f *File) Add(body string) int {
	f.objects = append(f.objects, body)
	return len(f.objects)
}

// Reserve allocates an object number.  The body must be set using Set
// before the file is written.
func (f *File) Reserve() int {
	return f.Add("null")
}

// Set replaces the body of a previously added object.
func (f *File) Set(number int, body string) {
	f.objects[number-1] = body
}

// AddStream appends a stream object.  If compress is set, the data is
// compressed and /Filter /FlateDecode is added to the dictionary.
// The dictionary entries are given without the enclosing "<<" and ">>".
func (f *File) AddStream(entries string, data []byte, compress bool) int {
	if compress {
		buf := &bytes.Buffer{}
		zw := zlib.NewWriter(buf)
		zw.Write(data)
		zw.Close()
		data = buf.Bytes()
		entries += " /Filter /FlateDecode"
	}
	body := fmt.Sprintf("<< %s /Length %d >>\nstream\n%s\nendstream", entries, len(data), data)
	return f.Add(body)
}

// SetRoot sets the /Root entry of the trailer.
func (f *File) SetRoot(number int) {
	f.root = number
}

// SetInfo sets the /Info entry of the trailer.
func (f *File) SetInfo(number int) {
	f.info = number
}

// Bytes writes the file, including the cross-reference table and trailer.
func (f *File) Bytes() []byte {
	buf := &bytes.Buffer{}
	buf.WriteString("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n")

	offsets := make([]int, len(f.objects))
	for i, body := range f.objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xref := buf.Len()
	fmt.Fprintf(buf, "xref\n0 %d\n", len(f.objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, offs := range offsets {
		fmt.Fprintf(buf, "%010d 00000 n \n", offs)
	}

	fmt.Fprintf(buf, "trailer\n<< /Size %d", len(f.objects)+1)
	if f.root > 0 {
		fmt.Fprintf(buf, " /Root %d 0 R", f.root)
	}
	if f.info > 0 {
		fmt.Fprintf(buf, " /Info %d 0 R", f.info)
	}
	fmt.Fprintf(buf, " >>\nstartxref\n%d\n%%%%EOF\n", xref)
	return buf.Bytes()
}

// SinglePage returns a file with one page of the given size, drawing the
// given content stream.  The content stream is stored uncompressed.
func SinglePage(width, height float64, content string) []byte {
	f := New()
	catalog := f.Reserve()
	pages := f.Reserve()
	contents := f.AddStream("", []byte(content), false)
	page := f.Add(fmt.Sprintf("<< /Type /Page /Parent %d 0 R /MediaBox [0 0 %g %g] /Contents %d 0 R >>",
		pages, width, height, contents))
	f.Set(pages, fmt.Sprintf("<< /Type /Pages /Kids [%d 0 R] /Count 1 >>", page))
	f.Set(catalog, fmt.Sprintf("<< /Type /Catalog /Pages %d 0 R >>", pages))
	f.SetRoot(catalog)
	return f.Bytes()
}
