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
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"seehuhn.de/go/geom/vec"
)

// edge is a directed edge between two vertices.
type edge struct {
	a, b int
}

// undirected returns the edge with the smaller vertex index first.
func (e edge) undirected() edge {
	if e.a > e.b {
		return edge{e.b, e.a}
	}
	return e
}

// cdt is a constrained Delaunay triangulation.
//
// Triangles are stored in counter-clockwise order.  The map edges takes
// every directed edge to the triangle which contains it, so that the
// neighbour across the edge a→b is the triangle containing b→a.
//
// The last three vertices form a super-triangle which contains all other
// vertices.  Points are expected to be normalised to the unit square.
type cdt struct {
	pts   []vec.Vec2
	tris  [][3]int
	alive []bool
	free  []int
	edges map[edge]int

	numReal  int
	inserted []bool
}

func newCDT(pts []vec.Vec2) *cdt {
	n := len(pts)
	all := make([]vec.Vec2, n, n+3)
	copy(all, pts)
	all = append(all,
		vec.Vec2{X: -100, Y: -100},
		vec.Vec2{X: 100, Y: -100},
		vec.Vec2{X: 0.5, Y: 100},
	)
	t := &cdt{
		pts:      all,
		edges:    make(map[edge]int),
		numReal:  n,
		inserted: make([]bool, n),
	}
	t.add(n, n+1, n+2)
	return t
}

// add adds the triangle a, b, c, which must be in counter-clockwise order.
func (t *cdt) add(a, b, c int) int {
	var idx int
	if k := len(t.free); k > 0 {
		idx = t.free[k-1]
		t.free = t.free[:k-1]
		t.tris[idx] = [3]int{a, b, c}
		t.alive[idx] = true
	} else {
		idx = len(t.tris)
		t.tris = append(t.tris, [3]int{a, b, c})
		t.alive = append(t.alive, true)
	}
	t.edges[edge{a, b}] = idx
	t.edges[edge{b, c}] = idx
	t.edges[edge{c, a}] = idx
	return idx
}

func (t *cdt) remove(idx int) {
	tri := t.tris[idx]
	for i := range 3 {
		e := edge{tri[i], tri[(i+1)%3]}
		if t.edges[e] == idx {
			delete(t.edges, e)
		}
	}
	t.alive[idx] = false
	t.free = append(t.free, idx)
}

// third returns the vertex of triangle idx which is not on the edge e.
func (t *cdt) third(idx int, e edge) int {
	for _, v := range t.tris[idx] {
		if v != e.a && v != e.b {
			return v
		}
	}
	return -1
}

func (t *cdt) hasEdge(a, b int) bool {
	_, ok := t.edges[edge{a, b}]
	if !ok {
		_, ok = t.edges[edge{b, a}]
	}
	return ok
}

// inCircle reports whether p lies strictly inside the circumcircle of
// triangle idx.
func (t *cdt) inCircle(idx int, p vec.Vec2) bool {
	tri := t.tris[idx]
	a, b, c := t.pts[tri[0]], t.pts[tri[1]], t.pts[tri[2]]
	adx, ady := a.X-p.X, a.Y-p.Y
	bdx, bdy := b.X-p.X, b.Y-p.Y
	cdx, cdy := c.X-p.X, c.Y-p.Y
	det := (adx*adx+ady*ady)*(bdx*cdy-cdx*bdy) +
		(bdx*bdx+bdy*bdy)*(cdx*ady-adx*cdy) +
		(cdx*cdx+cdy*cdy)*(adx*bdy-bdx*ady)
	return det > 0
}

// locate returns a triangle which contains p, or -1 if there is none.
func (t *cdt) locate(p vec.Vec2) int {
	for idx, tri := range t.tris {
		if !t.alive[idx] {
			continue
		}
		a, b, c := t.pts[tri[0]], t.pts[tri[1]], t.pts[tri[2]]
		if orient(a, b, p) >= 0 && orient(b, c, p) >= 0 && orient(c, a, p) >= 0 {
			return idx
		}
	}
	return -1
}

// insert adds vertex v to the triangulation, using the Bowyer-Watson
// algorithm.  A vertex on an existing edge splits the edge.  Vertices
// outside the super-triangle are not inserted.
func (t *cdt) insert(v int) bool {
	p := t.pts[v]
	start := t.locate(p)
	if start < 0 {
		return false
	}

	// The cavity consists of all triangles connected to start whose
	// circumcircle contains p.
	cavity := map[int]bool{start: true}
	t.flood(start, cavity, func(nb int) bool { return t.inCircle(nb, p) })

	// Rounding in inCircle can give a cavity which is not star-shaped
	// as seen from p.  Triangles next to a boundary edge through p are
	// added, triangles behind a boundary edge are removed.
	var boundary []edge
	for {
		idx, e, ok := t.badBoundary(cavity, p)
		if ok {
			boundary = t.boundary(cavity)
			break
		}
		if orient(t.pts[e.a], t.pts[e.b], p) == 0 && t.onEdge(e, p) {
			nb, found := t.edges[edge{e.b, e.a}]
			if !found {
				return false
			}
			cavity[nb] = true
		} else {
			if idx == start {
				return false
			}
			delete(cavity, idx)
			connected := map[int]bool{start: true}
			t.flood(start, connected, func(nb int) bool { return cavity[nb] })
			cavity = connected
		}
	}

	for _, idx := range members(cavity) {
		t.remove(idx)
	}
	for _, e := range boundary {
		t.add(e.a, e.b, v)
	}
	t.inserted[v] = true
	return true
}

// flood adds to set all triangles which can be reached from start by
// crossing edges into triangles accepted by keep.
func (t *cdt) flood(start int, set map[int]bool, keep func(int) bool) {
	todo := []int{start}
	for len(todo) > 0 {
		idx := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		tri := t.tris[idx]
		for j := range 3 {
			nb, ok := t.edges[edge{tri[(j+1)%3], tri[j]}]
			if !ok || set[nb] || !keep(nb) {
				continue
			}
			set[nb] = true
			todo = append(todo, nb)
		}
	}
}

// boundary returns the edges of the cavity which are not shared by two
// cavity triangles.
func (t *cdt) boundary(cavity map[int]bool) []edge {
	var res []edge
	for _, idx := range members(cavity) {
		tri := t.tris[idx]
		for j := range 3 {
			e := edge{tri[j], tri[(j+1)%3]}
			if nb, ok := t.edges[edge{e.b, e.a}]; ok && cavity[nb] {
				continue
			}
			res = append(res, e)
		}
	}
	return res
}

// badBoundary finds a boundary edge of the cavity which does not have p
// strictly on its left.  If all edges are good, ok is true.
func (t *cdt) badBoundary(cavity map[int]bool, p vec.Vec2) (idx int, e edge, ok bool) {
	for _, idx := range members(cavity) {
		tri := t.tris[idx]
		for j := range 3 {
			e := edge{tri[j], tri[(j+1)%3]}
			if nb, found := t.edges[edge{e.b, e.a}]; found && cavity[nb] {
				continue
			}
			if orient(t.pts[e.a], t.pts[e.b], p) <= 0 {
				return idx, e, false
			}
		}
	}
	return 0, edge{}, true
}

// members returns the elements of set in increasing order, so that the
// triangulation does not depend on map iteration order.
func members(set map[int]bool) []int {
	res := maps.Keys(set)
	slices.Sort(res)
	return res
}

// onEdge reports whether the projection of p onto the line through e
// lies strictly between the end points of e.
func (t *cdt) onEdge(e edge, p vec.Vec2) bool {
	a, b := t.pts[e.a], t.pts[e.b]
	d := b.Sub(a)
	s := p.Sub(a).Dot(d) / d.Dot(d)
	return s > 0 && s < 1
}

// flip replaces the diagonal e of the quadrilateral formed by the two
// triangles next to e by the other diagonal, and returns the new edge.
func (t *cdt) flip(e edge) (edge, bool) {
	t1, ok1 := t.edges[e]
	t2, ok2 := t.edges[edge{e.b, e.a}]
	if !ok1 || !ok2 {
		return edge{}, false
	}
	w := t.third(t1, e)
	x := t.third(t2, e)
	t.remove(t1)
	t.remove(t2)
	t.add(e.a, x, w)
	t.add(x, e.b, w)
	return edge{w, x}, true
}

// canFlip reports whether the quadrilateral around e is strictly convex.
func (t *cdt) canFlip(e edge) (w, x int, ok bool) {
	t1, ok1 := t.edges[e]
	t2, ok2 := t.edges[edge{e.b, e.a}]
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	w = t.third(t1, e)
	x = t.third(t2, e)
	ok = segmentsCross(t.pts[e.a], t.pts[e.b], t.pts[w], t.pts[x])
	return w, x, ok
}

// legalize restores the Delaunay property for the given edges and the
// edges affected by flipping them.  Constrained edges are never flipped.
func (t *cdt) legalize(queue []edge, constrained map[edge]bool) {
	limit := 100 + 50*len(t.tris)
	for iter := 0; len(queue) > 0 && iter < limit; iter++ {
		e := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		if constrained[e.undirected()] {
			continue
		}
		t1, ok := t.edges[e]
		if !ok {
			continue
		}
		w, x, ok := t.canFlip(e)
		if !ok || !t.inCircle(t1, t.pts[x]) {
			continue
		}
		if _, ok := t.flip(e); !ok {
			continue
		}
		queue = append(queue, edge{e.a, x}, edge{x, e.b}, edge{e.b, w}, edge{w, e.a})
	}
}

// enforce makes sure that the edge a-b is part of the triangulation, by
// flipping all edges which cross it.  The result reports whether this
// was successful.
func (t *cdt) enforce(a, b int, constrained map[edge]bool) bool {
	if t.hasEdge(a, b) {
		return true
	}
	pa, pb := t.pts[a], t.pts[b]

	var crossing []edge
	for idx, tri := range t.tris {
		if !t.alive[idx] {
			continue
		}
		for j := range 3 {
			e := edge{tri[j], tri[(j+1)%3]}
			if e.a > e.b || e.a == a || e.a == b || e.b == a || e.b == b {
				continue
			}
			if segmentsCross(pa, pb, t.pts[e.a], t.pts[e.b]) {
				crossing = append(crossing, e)
			}
		}
	}
	if len(crossing) == 0 {
		// a vertex lies on the segment
		return false
	}

	limit := 100 + 20*len(crossing)*len(crossing)
	var created []edge
	for iter := 0; len(crossing) > 0; iter++ {
		if iter > limit {
			return false
		}
		e := crossing[0]
		crossing = crossing[1:]
		if !t.hasEdge(e.a, e.b) {
			continue
		}
		if constrained[e.undirected()] {
			// two constraints cross
			return false
		}
		if _, _, ok := t.canFlip(e); !ok {
			crossing = append(crossing, e)
			continue
		}
		ne, ok := t.flip(e)
		if !ok {
			continue
		}
		if ne.a != a && ne.a != b && ne.b != a && ne.b != b &&
			segmentsCross(pa, pb, t.pts[ne.a], t.pts[ne.b]) {
			crossing = append(crossing, ne)
		} else {
			created = append(created, ne)
		}
	}

	constrained[edge{a, b}.undirected()] = true
	t.legalize(created, constrained)
	return t.hasEdge(a, b)
}

// orient returns the same value as cross(a, b, c), but evaluates the
// expression with the end points of a-b in a fixed order.  This way
// orient(a, b, c) == -orient(b, a, c) holds exactly, and the two
// triangles next to an edge agree on which side of the edge c lies.
func orient(a, b, c vec.Vec2) float64 {
	if a.X < b.X || a.X == b.X && a.Y < b.Y {
		return cross(a, b, c)
	}
	return -cross(b, a, c)
}

// segmentsCross reports whether the segments p1-p2 and q1-q2 intersect in
// a single point which is interior to both segments.
func segmentsCross(p1, p2, q1, q2 vec.Vec2) bool {
	o1 := cross(p1, p2, q1)
	o2 := cross(p1, p2, q2)
	o3 := cross(q1, q2, p1)
	o4 := cross(q1, q2, p2)
	return (o1 > 0 && o2 < 0 || o1 < 0 && o2 > 0) &&
		(o3 > 0 && o4 < 0 || o3 < 0 && o4 > 0)
}
