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

	"golang.org/x/exp/slices"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pdfmesh/graphics"
)

// mergeEps is the distance, in normalised coordinates, below which two
// vertices are considered equal.
const mergeEps = 1e-9

// Fill returns the triangles which cover the inside of a path, in user
// space.  All subpaths are treated as closed.  Subpaths inside other
// subpaths can form holes, depending on the fill rule.
//
// Inputs with fewer than three distinct edges give no triangles.
func Fill(subPaths []SubPath, rule FillRule, col graphics.RGB) []Triangle {
	g := newGraph(subPaths)
	if g == nil {
		return nil
	}
	g.splitIntersections()
	if g.countUndirected() < 3 {
		return nil
	}

	t := newCDT(g.pts)
	for v := range g.pts {
		t.insert(v)
	}
	constrained := make(map[edge]bool)
	for _, e := range g.edges {
		if e.a == e.b || !t.inserted[e.a] || !t.inserted[e.b] {
			continue
		}
		t.enforce(e.a, e.b, constrained)
	}

	var res []Triangle
	for idx, tri := range t.tris {
		if !t.alive[idx] || tri[0] >= t.numReal || tri[1] >= t.numReal || tri[2] >= t.numReal {
			continue
		}
		a, b, c := g.pts[tri[0]], g.pts[tri[1]], g.pts[tri[2]]
		if cross(a, b, c) <= 0 {
			continue
		}
		centroid := vec.Vec2{X: (a.X + b.X + c.X) / 3, Y: (a.Y + b.Y + c.Y) / 3}
		wn := g.winding(centroid)
		if rule == EvenOdd && wn%2 == 0 || wn == 0 {
			continue
		}
		res = append(res, Triangle{
			A: Vertex{Pos: g.orig(tri[0]), Color: col},
			B: Vertex{Pos: g.orig(tri[1]), Color: col},
			C: Vertex{Pos: g.orig(tri[2]), Color: col},
		})
	}
	return res
}

// graph is a planar straight-line graph, built from the subpaths of a
// path.  Vertices are normalised to the unit square.
type graph struct {
	pts   []vec.Vec2
	edges []edge // directed, in the direction of the path

	index map[[2]int64]int

	origin vec.Vec2
	scale  float64
}

func newGraph(subPaths []SubPath) *graph {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, sp := range subPaths {
		for _, p := range sp.Points {
			minX = min(minX, p.X)
			minY = min(minY, p.Y)
			maxX = max(maxX, p.X)
			maxY = max(maxY, p.Y)
		}
	}
	scale := max(maxX-minX, maxY-minY)
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil
	}

	g := &graph{
		index:  make(map[[2]int64]int),
		origin: vec.Vec2{X: minX, Y: minY},
		scale:  scale,
	}
	for _, sp := range subPaths {
		var first, prev int
		for i, p := range sp.Points {
			v := g.vertex(vec.Vec2{X: (p.X - minX) / scale, Y: (p.Y - minY) / scale})
			if i == 0 {
				first = v
			} else if v != prev {
				g.edges = append(g.edges, edge{prev, v})
			}
			prev = v
		}
		if len(sp.Points) > 0 && prev != first {
			g.edges = append(g.edges, edge{prev, first})
		}
	}
	return g
}

// vertex returns the index of the vertex at p, adding a new vertex if
// needed.
func (g *graph) vertex(p vec.Vec2) int {
	key := [2]int64{int64(math.Round(p.X / mergeEps)), int64(math.Round(p.Y / mergeEps))}
	if v, ok := g.index[key]; ok {
		return v
	}
	v := len(g.pts)
	g.pts = append(g.pts, p)
	g.index[key] = v
	return v
}

// orig maps vertex v back to the original coordinates.
func (g *graph) orig(v int) vec.Vec2 {
	return g.pts[v].Mul(g.scale).Add(g.origin)
}

func (g *graph) countUndirected() int {
	seen := make(map[edge]bool, len(g.edges))
	for _, e := range g.edges {
		if e.a != e.b {
			seen[e.undirected()] = true
		}
	}
	return len(seen)
}

type split struct {
	t float64
	v int
}

// splitIntersections splits all edges at the points where they cross or
// touch other edges, so that edges only meet at their end points.
func (g *graph) splitIntersections() {
	n := len(g.edges)
	splits := make([][]split, n)

	onSegment := func(i, v int) {
		e := g.edges[i]
		if v == e.a || v == e.b {
			return
		}
		a, b, p := g.pts[e.a], g.pts[e.b], g.pts[v]
		d := b.Sub(a)
		l2 := d.Dot(d)
		if math.Abs(cross(a, b, p)) > mergeEps*math.Sqrt(l2) {
			return
		}
		t := p.Sub(a).Dot(d) / l2
		if t > 0 && t < 1 {
			splits[i] = append(splits[i], split{t, v})
		}
	}

	for i := range n {
		ei := g.edges[i]
		a, b := g.pts[ei.a], g.pts[ei.b]
		for j := i + 1; j < n; j++ {
			ej := g.edges[j]
			c, d := g.pts[ej.a], g.pts[ej.b]
			if max(a.X, b.X) < min(c.X, d.X)-mergeEps || max(c.X, d.X) < min(a.X, b.X)-mergeEps ||
				max(a.Y, b.Y) < min(c.Y, d.Y)-mergeEps || max(c.Y, d.Y) < min(a.Y, b.Y)-mergeEps {
				continue
			}

			if segmentsCross(a, b, c, d) {
				r := b.Sub(a)
				s := d.Sub(c)
				den := r.X*s.Y - r.Y*s.X
				t := ((c.X-a.X)*s.Y - (c.Y-a.Y)*s.X) / den
				u := ((c.X-a.X)*r.Y - (c.Y-a.Y)*r.X) / den
				v := g.vertex(a.Add(r.Mul(t)))
				if v != ei.a && v != ei.b {
					splits[i] = append(splits[i], split{t, v})
				}
				if v != ej.a && v != ej.b {
					splits[j] = append(splits[j], split{u, v})
				}
				continue
			}

			// end points touching the other edge, including overlaps
			onSegment(i, ej.a)
			onSegment(i, ej.b)
			onSegment(j, ei.a)
			onSegment(j, ei.b)
		}
	}

	var edges []edge
	for i, e := range g.edges {
		s := splits[i]
		if len(s) == 0 {
			edges = append(edges, e)
			continue
		}
		slices.SortFunc(s, func(x, y split) int {
			switch {
			case x.t < y.t:
				return -1
			case x.t > y.t:
				return 1
			}
			return 0
		})
		prev := e.a
		for _, sp := range s {
			if sp.v != prev {
				edges = append(edges, edge{prev, sp.v})
				prev = sp.v
			}
		}
		if prev != e.b {
			edges = append(edges, edge{prev, e.b})
		}
	}
	g.edges = edges
}

// winding returns the winding number of the path around p.
func (g *graph) winding(p vec.Vec2) int {
	wn := 0
	for _, e := range g.edges {
		a, b := g.pts[e.a], g.pts[e.b]
		if a.Y <= p.Y {
			if b.Y > p.Y && cross(a, b, p) > 0 {
				wn++
			}
		} else if b.Y <= p.Y && cross(a, b, p) < 0 {
			wn--
		}
	}
	return wn
}
