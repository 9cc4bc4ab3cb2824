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

package reader

import (
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pdfmesh/mesh"
)

// last returns the subpath under construction.
// The result is nil if there is no such subpath.
func (r *Reader) last() *mesh.SubPath {
	n := len(r.path.SubPaths)
	if n == 0 {
		return nil
	}
	return &r.path.SubPaths[n-1]
}

func (r *Reader) moveTo(p vec.Vec2) {
	// A moveto directly after a moveto replaces the previous point.
	if sp := r.last(); sp != nil && r.open && len(sp.Points) == 1 {
		sp.Points[0] = p
	} else {
		r.path.SubPaths = append(r.path.SubPaths, mesh.SubPath{
			Points: []vec.Vec2{p},
		})
	}
	r.current = p
	r.hasPoint = true
	r.open = true
}

// extend makes sure that there is an open subpath starting at the
// current point.
func (r *Reader) extend() *mesh.SubPath {
	if !r.open {
		r.path.SubPaths = append(r.path.SubPaths, mesh.SubPath{
			Points: []vec.Vec2{r.current},
		})
		r.open = true
	}
	return r.last()
}

func (r *Reader) lineTo(p vec.Vec2) {
	sp := r.extend()
	sp.Points = append(sp.Points, p)
	r.current = p
}

// curveTo appends a cubic Bézier curve from the current point, flattened
// into CurveSteps line segments.
func (r *Reader) curveTo(p1, p2, p3 vec.Vec2) {
	sp := r.extend()
	p0 := r.current

	n := r.CurveSteps
	if n < 1 {
		n = DefaultCurveSteps
	}
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		b0 := s * s * s
		b1 := 3 * s * s * t
		b2 := 3 * s * t * t
		b3 := t * t * t
		sp.Points = append(sp.Points, vec.Vec2{
			X: b0*p0.X + b1*p1.X + b2*p2.X + b3*p3.X,
			Y: b0*p0.Y + b1*p1.Y + b2*p2.Y + b3*p3.Y,
		})
	}
	r.current = p3
}

// closePath closes the current subpath.  The current point moves back to
// the start of the subpath.
func (r *Reader) closePath() {
	sp := r.last()
	if sp == nil || !r.open {
		return
	}
	sp.Closed = true
	r.current = sp.Points[0]
	r.open = false
}

func (r *Reader) rectangle(x, y, w, h float64) {
	r.path.SubPaths = append(r.path.SubPaths, mesh.SubPath{
		Points: []vec.Vec2{
			{X: x, Y: y},
			{X: x + w, Y: y},
			{X: x + w, Y: y + h},
			{X: x, Y: y + h},
		},
		Closed: true,
	})
	r.current = vec.Vec2{X: x, Y: y}
	r.hasPoint = true
	r.open = false
}

// paint finishes the current path.  The path is recorded, together with
// a copy of the current graphics state, unless the mode is empty or
// the path has no subpaths.
func (r *Reader) paint(mode mesh.PathMode, rule mesh.FillRule) {
	path := r.path
	r.path = mesh.Path{}
	r.hasPoint = false
	r.open = false

	if !mode.Fill && !mode.Stroke || len(path.SubPaths) == 0 {
		return
	}
	path.Mode = mode
	path.Rule = rule
	r.paths = append(r.paths, mesh.PaintedPath{
		Path:  path,
		State: *r.stack.Top(),
	})
}
