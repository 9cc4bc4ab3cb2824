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

// Package graphics holds the graphics state used when interpreting PDF
// content streams.
//
// The package provides the line style constants ([LineCapStyle],
// [LineJoinStyle]), the [RGB] colour type with conversions from the
// DeviceGray and DeviceCMYK colour spaces, the graphics [State] itself,
// and a [Stack] of graphics states for the "q" and "Q" operators.
package graphics
