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

// Package pdfmesh converts the vector graphics on the pages of a PDF file
// into triangle meshes.
//
// The work is done in several stages, each of which lives in its own
// package:
//
//   - [seehuhn.de/go/pdfmesh/pdf] loads the object structure of a file,
//   - [seehuhn.de/go/pdfmesh/pages] locates pages and decodes their content,
//   - [seehuhn.de/go/pdfmesh/reader] interprets the content streams,
//   - [seehuhn.de/go/pdfmesh/mesh] turns painted paths into triangles,
//   - [seehuhn.de/go/pdfmesh/render] hands the triangles to a display.
//
// This package connects the stages.  [Process] converts a whole document
// and returns one frame per page.  [Start] does the same work on a
// background goroutine and passes every finished page to a
// [render.Target], so that a display can show the first page while
// later pages are still being converted.
//
// Only path construction, path painting, line style, transformation and
// DeviceRGB/DeviceCMYK/DeviceGray colour operators are interpreted.  Text,
// images, shadings and clipping are ignored.
package pdfmesh
