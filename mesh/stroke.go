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
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pdfmesh/graphics"
)

// roundSegments is the number of wedges used for round joins and caps.
const roundSegments = 10

// collinearEps is the tolerance, for the sine of the angle between two
// consecutive segments, below which no join is drawn.
const collinearEps = 1e-9

// Stroke returns the triangles which cover the stroked outline of a
// subpath, in user space.  Line width, cap style, join style, miter limit
// and colour are taken from the graphics state.
//
// Subpaths with fewer than two distinct points give no triangles.
func Stroke(sp SubPath, st *graphics.State) []Triangle {
	hw := st.LineWidth / 2
	if !(hw > 0) {
		return nil
	}

	pts := dropRepeated(sp.Points, sp.Closed)
	if len(pts) < 2 {
		return nil
	}
	closed := sp.Closed && len(pts) > 2

	s := &stroker{
		hw:    hw,
		color: st.StrokeColor,
		limit: st.MiterLimit,
		join:  st.LineJoin,
	}

	n := len(pts)
	numSeg := n - 1
	if closed {
		numSeg = n
	}
	dirs := make([]vec.Vec2, numSeg)
	for i := range numSeg {
		dirs[i] = unit(pts[(i+1)%n].Sub(pts[i]))
	}

	for i := range numSeg {
		p := pts[i]
		q := pts[(i+1)%n]
		if !closed && st.LineCap == graphics.LineCapSquare {
			if i == 0 {
				p = p.Sub(dirs[i].Mul(hw))
			}
			if i == numSeg-1 {
				q = q.Add(dirs[i].Mul(hw))
			}
		}
		s.segment(p, q, dirs[i])
	}

	if closed {
		for i := range n {
			s.joint(pts[i], dirs[(i+numSeg-1)%numSeg], dirs[i])
		}
	} else {
		for i := 1; i < n-1; i++ {
			s.joint(pts[i], dirs[i-1], dirs[i])
		}
		if st.LineCap == graphics.LineCapRound {
			d0 := dirs[0]
			s.fan(pts[0], leftNormal(d0).Mul(hw), math.Pi)
			d1 := dirs[numSeg-1]
			s.fan(pts[n-1], leftNormal(d1).Mul(-hw), math.Pi)
		}
	}

	return s.res
}

type stroker struct {
	hw    float64
	color graphics.RGB
	limit float64
	join  graphics.LineJoinStyle

	res []Triangle
}

func (s *stroker) tri(a, b, c vec.Vec2) {
	s.res = append(s.res, Triangle{
		A: Vertex{Pos: a, Color: s.color},
		B: Vertex{Pos: b, Color: s.color},
		C: Vertex{Pos: c, Color: s.color},
	})
}

// segment emits the two triangles of the quad around the segment from p
// to q.
func (s *stroker) segment(p, q, d vec.Vec2) {
	n := leftNormal(d).Mul(s.hw)
	a := p.Add(n)
	b := p.Sub(n)
	c := q.Sub(n)
	e := q.Add(n)
	s.tri(a, b, c)
	s.tri(a, c, e)
}

// joint fills the gap on the outer side of the corner at p, where the
// direction changes from d0 to d1.
func (s *stroker) joint(p, d0, d1 vec.Vec2) {
	sin := d0.X*d1.Y - d0.Y*d1.X
	cos := d0.Dot(d1)
	if math.Abs(sin) < collinearEps && cos > 0 {
		return
	}

	// For a left turn the outer side of the corner is on the right.
	side := -1.0
	if sin < 0 {
		side = 1
	}
	o0 := leftNormal(d0).Mul(side * s.hw)
	o1 := leftNormal(d1).Mul(side * s.hw)
	turn := math.Atan2(sin, cos) // signed angle from d0 to d1

	switch s.join {
	case graphics.LineJoinRound:
		s.fan(p, o0, turn)
	case graphics.LineJoinMiter:
		// theta is the angle between the two segments at the corner
		theta := math.Pi - math.Abs(turn)
		if s.limit >= 1 && theta >= 2*math.Asin(1/s.limit) {
			tip := p.Add(o0).Add(d0.Mul(s.hw * math.Tan(math.Abs(turn)/2)))
			s.tri(p, p.Add(o0), tip)
			s.tri(p, tip, p.Add(o1))
			return
		}
		fallthrough
	default: // bevel
		s.tri(p, p.Add(o0), p.Add(o1))
	}
}

// fan emits a fan of wedges around p, starting at p+v and rotating by
// the angle sweep.
func (s *stroker) fan(p, v vec.Vec2, sweep float64) {
	prev := p.Add(v)
	for k := 1; k <= roundSegments; k++ {
		next := p.Add(rotate(v, sweep*float64(k)/roundSegments))
		s.tri(p, prev, next)
		prev = next
	}
}

// dropRepeated removes consecutive duplicate points.  For closed
// subpaths, a final point equal to the first point is removed, too.
func dropRepeated(pts []vec.Vec2, closed bool) []vec.Vec2 {
	res := make([]vec.Vec2, 0, len(pts))
	for _, p := range pts {
		if len(res) > 0 && res[len(res)-1] == p {
			continue
		}
		res = append(res, p)
	}
	if closed && len(res) > 1 && res[len(res)-1] == res[0] {
		res = res[:len(res)-1]
	}
	return res
}

func unit(v vec.Vec2) vec.Vec2 {
	l := v.Length()
	if l == 0 {
		return vec.Vec2{}
	}
	return v.Mul(1 / l)
}

// leftNormal returns v rotated by 90 degrees counter-clockwise.
func leftNormal(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: -v.Y, Y: v.X}
}

func rotate(v vec.Vec2, phi float64) vec.Vec2 {
	sin, cos := math.Sincos(phi)
	return vec.Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}
