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

// Package pdf reads the object structure of PDF files.
//
// A file is loaded completely into memory, either from a byte slice using
// [Load] or by mapping a file using [Open]:
//
//	doc, err := pdf.Open("in.pdf")
//	if doc == nil {
//	    log.Fatal(err)
//	}
//	defer doc.Close()
//	if err != nil {
//	    log.Print(err) // some objects are damaged
//	}
//
// Only files with a classic cross-reference table are supported.
// Cross-reference streams, object streams, incremental updates and
// encryption are not.
//
// The following types implement the native PDF object types.
// All of these implement the [Object] interface:
//
//	Array
//	Bool
//	Dict
//	Integer
//	Name
//	Real
//	Reference
//	*Stream
//	String
//
// The PDF null object is represented by nil.  The functions [GetInteger],
// [GetNumber], [GetDict] and friends resolve references and check the type
// of an object.  On mismatch they return a [*TypeMismatchError].
package pdf
