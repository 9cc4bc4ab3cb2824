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

// Package mesh converts painted PDF paths into triangle meshes.
//
// Stroked paths are covered by one quad per line segment, plus extra
// triangles for line joins and line caps.  Filled paths are triangulated
// using a constrained Delaunay triangulation, after which the triangles
// outside the path are removed using the nonzero winding rule or the
// even-odd rule.
//
// All problems with the input geometry are handled by producing fewer
// triangles.  No function in this package returns an error.
package mesh

import (
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// MaxCoordinate is the largest absolute value of a coordinate which is
// accepted in a path.  Points further out are dropped.
const MaxCoordinate = 1e7

// Generate returns the triangles for a painted path, in device space.
// The fill triangles come before the stroke triangles.
func Generate(pp PaintedPath) []Triangle {
	path := sanitize(pp.Path)
	st := &pp.State

	var res []Triangle
	if path.Mode.Fill {
		res = append(res, Fill(path.SubPaths, path.Rule, st.FillColor)...)
	}
	if path.Mode.Stroke {
		for _, sp := range path.SubPaths {
			res = append(res, Stroke(sp, st)...)
		}
	}

	out := res[:0]
	for _, t := range res {
		t.A.Pos = st.Apply(t.A.Pos)
		t.B.Pos = st.Apply(t.B.Pos)
		t.C.Pos = st.Apply(t.C.Pos)
		if !valid(t.A.Pos) || !valid(t.B.Pos) || !valid(t.C.Pos) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// sanitize removes points which are not finite or too far out.
func sanitize(p Path) Path {
	res := Path{Mode: p.Mode, Rule: p.Rule}
	for _, sp := range p.SubPaths {
		pts := make([]vec.Vec2, 0, len(sp.Points))
		for _, pt := range sp.Points {
			if valid(pt) {
				pts = append(pts, pt)
			}
		}
		if len(pts) == 0 {
			continue
		}
		res.SubPaths = append(res.SubPaths, SubPath{Points: pts, Closed: sp.Closed})
	}
	return res
}

func valid(p vec.Vec2) bool {
	return math.Abs(p.X) <= MaxCoordinate && math.Abs(p.Y) <= MaxCoordinate
}

// Bounds returns the smallest rectangle which contains all triangles.
// The result is the zero rectangle if there are no triangles.
func Bounds(tris []Triangle) rect.Rect {
	if len(tris) == 0 {
		return rect.Rect{}
	}
	r := rect.Rect{
		LLx: math.Inf(1), LLy: math.Inf(1),
		URx: math.Inf(-1), URy: math.Inf(-1),
	}
	for _, t := range tris {
		for _, p := range []vec.Vec2{t.A.Pos, t.B.Pos, t.C.Pos} {
			r.LLx = min(r.LLx, p.X)
			r.LLy = min(r.LLy, p.Y)
			r.URx = max(r.URx, p.X)
			r.URy = max(r.URy, p.Y)
		}
	}
	return r
}
