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

package mesh

import (
	"fmt"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pdfmesh/graphics"
)

// SubPath is a connected sequence of points.
// Curves have already been flattened into line segments.
type SubPath struct {
	Points []vec.Vec2
	Closed bool
}

// PathMode describes how a path is painted.  Both fields may be set.
type PathMode struct {
	Fill   bool
	Stroke bool
}

func (m PathMode) String() string {
	switch {
	case m.Fill && m.Stroke:
		return "fill+stroke"
	case m.Fill:
		return "fill"
	case m.Stroke:
		return "stroke"
	default:
		return "none"
	}
}

// FillRule decides which points are inside a filled path.
type FillRule uint8

// These are the fill rules supported by PDF.
// See section 8.5.3.3 of ISO 32000-2:2020.
const (
	NonZero FillRule = iota
	EvenOdd
)

func (r FillRule) String() string {
	switch r {
	case NonZero:
		return "nonzero"
	case EvenOdd:
		return "even-odd"
	default:
		return fmt.Sprintf("FillRule(%d)", r)
	}
}

// Path is a sequence of subpaths which are painted together.
type Path struct {
	SubPaths []SubPath
	Mode     PathMode
	Rule     FillRule
}

// PaintedPath is a path together with the graphics state which was
// active when the path was painted.
type PaintedPath struct {
	Path  Path
	State graphics.State
}

// Vertex is a corner of a triangle.
type Vertex struct {
	Pos   vec.Vec2
	Color graphics.RGB
}

// Triangle is one triangle of the output mesh.
type Triangle struct {
	A, B, C Vertex
}

// Area returns the signed area of the triangle.
// The area is positive if the vertices are in counter-clockwise order.
func (t Triangle) Area() float64 {
	return cross(t.A.Pos, t.B.Pos, t.C.Pos) / 2
}

// cross returns the z-component of (b-a) × (c-a).
func cross(a, b, c vec.Vec2) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}
