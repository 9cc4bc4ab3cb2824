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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/exp/slices"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pdfmesh/graphics"
)

func pts(xy ...float64) []vec.Vec2 {
	res := make([]vec.Vec2, len(xy)/2)
	for i := range res {
		res[i] = vec.Vec2{X: xy[2*i], Y: xy[2*i+1]}
	}
	return res
}

func totalArea(tris []Triangle) float64 {
	sum := 0.0
	for _, t := range tris {
		sum += math.Abs(t.Area())
	}
	return sum
}

func polygonArea(p []vec.Vec2) float64 {
	sum := 0.0
	for i, a := range p {
		b := p[(i+1)%len(p)]
		sum += a.X*b.Y - b.X*a.Y
	}
	return math.Abs(sum) / 2
}

func style(width float64, lineCap graphics.LineCapStyle, join graphics.LineJoinStyle) *graphics.State {
	st := graphics.NewState()
	st.LineWidth = width
	st.LineCap = lineCap
	st.LineJoin = join
	return &st
}

// TestStrokeCollinear checks that an open polyline without corners gives
// exactly one quad per segment.
func TestStrokeCollinear(t *testing.T) {
	for n := 2; n <= 6; n++ {
		var p []vec.Vec2
		for i := range n {
			p = append(p, vec.Vec2{X: float64(i), Y: 2 * float64(i)})
		}
		tris := Stroke(SubPath{Points: p}, style(1, graphics.LineCapButt, graphics.LineJoinMiter))
		if len(tris) != 2*(n-1) {
			t.Errorf("%d points: got %d triangles, want %d", n, len(tris), 2*(n-1))
		}
	}
}

func TestStrokeTriangleCount(t *testing.T) {
	lShape := pts(0, 0, 10, 0, 10, 10)
	sharp := pts(0, 0, 10, 0, 0, 1)
	square := SubPath{Points: pts(0, 0, 10, 0, 10, 10, 0, 10), Closed: true}

	cases := []struct {
		name string
		sp   SubPath
		st   *graphics.State
		want int
	}{
		{"miter", SubPath{Points: lShape}, style(2, graphics.LineCapButt, graphics.LineJoinMiter), 6},
		{"bevel", SubPath{Points: lShape}, style(2, graphics.LineCapButt, graphics.LineJoinBevel), 5},
		{"round", SubPath{Points: lShape}, style(2, graphics.LineCapButt, graphics.LineJoinRound), 4 + roundSegments},
		{"miter limit", SubPath{Points: sharp}, style(2, graphics.LineCapButt, graphics.LineJoinMiter), 5},
		{"reversal", SubPath{Points: pts(0, 0, 10, 0, 5, 0)}, style(2, graphics.LineCapButt, graphics.LineJoinMiter), 5},
		{"square cap", SubPath{Points: pts(0, 0, 10, 0)}, style(2, graphics.LineCapSquare, graphics.LineJoinMiter), 2},
		{"round cap", SubPath{Points: pts(0, 0, 10, 0)}, style(2, graphics.LineCapRound, graphics.LineJoinMiter), 2 + 2*roundSegments},
		{"closed", square, style(2, graphics.LineCapRound, graphics.LineJoinMiter), 16},
		{"repeated points", SubPath{Points: pts(0, 0, 0, 0, 10, 0, 10, 0)}, style(2, graphics.LineCapButt, graphics.LineJoinMiter), 2},
		{"single point", SubPath{Points: pts(1, 1)}, style(2, graphics.LineCapRound, graphics.LineJoinMiter), 0},
		{"no points", SubPath{}, style(2, graphics.LineCapRound, graphics.LineJoinMiter), 0},
		{"zero width", SubPath{Points: lShape}, style(0, graphics.LineCapButt, graphics.LineJoinMiter), 0},
	}
	for _, test := range cases {
		tris := Stroke(test.sp, test.st)
		if len(tris) != test.want {
			t.Errorf("%s: got %d triangles, want %d", test.name, len(tris), test.want)
		}
	}
}

func TestStrokeGeometry(t *testing.T) {
	st := style(2, graphics.LineCapButt, graphics.LineJoinMiter)
	st.StrokeColor = graphics.RGB{R: 1}
	tris := Stroke(SubPath{Points: pts(0, 0, 10, 0)}, st)
	if a := totalArea(tris); math.Abs(a-20) > 1e-9 {
		t.Errorf("area is %g, want 20", a)
	}
	want := rect.Rect{LLx: 0, LLy: -1, URx: 10, URy: 1}
	if d := cmp.Diff(want, Bounds(tris), cmpopts.EquateApprox(0, 1e-9)); d != "" {
		t.Errorf("wrong bounds (-want +got):\n%s", d)
	}
	for _, tri := range tris {
		if tri.A.Color != st.StrokeColor || tri.C.Color != st.StrokeColor {
			t.Fatalf("wrong colour %v", tri.A.Color)
		}
	}

	// square caps extend the line by half the line width at both ends
	st.LineCap = graphics.LineCapSquare
	tris = Stroke(SubPath{Points: pts(0, 0, 10, 0)}, st)
	want = rect.Rect{LLx: -1, LLy: -1, URx: 11, URy: 1}
	if d := cmp.Diff(want, Bounds(tris), cmpopts.EquateApprox(0, 1e-9)); d != "" {
		t.Errorf("wrong bounds for square caps (-want +got):\n%s", d)
	}

	// the miter tip of a right angle is at distance half-width from both
	// outer edges
	st.LineCap = graphics.LineCapButt
	tris = Stroke(SubPath{Points: pts(0, 0, 10, 0, 10, 10)}, st)
	want = rect.Rect{LLx: 0, LLy: -1, URx: 11, URy: 10}
	if d := cmp.Diff(want, Bounds(tris), cmpopts.EquateApprox(0, 1e-9)); d != "" {
		t.Errorf("wrong bounds for miter join (-want +got):\n%s", d)
	}

	// round caps reach half the line width beyond the end points
	st.LineCap = graphics.LineCapRound
	tris = Stroke(SubPath{Points: pts(0, 0, 10, 0)}, st)
	want = rect.Rect{LLx: -1, LLy: -1, URx: 11, URy: 1}
	if d := cmp.Diff(want, Bounds(tris), cmpopts.EquateApprox(0, 1e-9)); d != "" {
		t.Errorf("wrong bounds for round caps (-want +got):\n%s", d)
	}
}

func TestFillSquare(t *testing.T) {
	sq := SubPath{Points: pts(0, 0, 10, 0, 10, 10, 0, 10), Closed: true}
	col := graphics.RGB{G: 1}
	tris := Fill([]SubPath{sq}, NonZero, col)
	if len(tris) != 2 {
		t.Fatalf("got %d triangles, want 2", len(tris))
	}
	if a := totalArea(tris); math.Abs(a-100) > 1e-9 {
		t.Errorf("area is %g, want 100", a)
	}
	want := rect.Rect{URx: 10, URy: 10}
	if d := cmp.Diff(want, Bounds(tris), cmpopts.EquateApprox(0, 1e-9)); d != "" {
		t.Errorf("wrong bounds (-want +got):\n%s", d)
	}
	for _, tri := range tris {
		if tri.Area() <= 0 {
			t.Errorf("triangle %v is not counter-clockwise", tri)
		}
		if tri.B.Color != col {
			t.Errorf("wrong colour %v", tri.B.Color)
		}
	}
}

func TestFillArea(t *testing.T) {
	outer := pts(0, 0, 10, 0, 10, 10, 0, 10)
	inner := pts(3, 3, 7, 3, 7, 7, 3, 7)
	innerRev := slices.Clone(inner)
	slices.Reverse(innerRev)

	var circle []vec.Vec2
	for i := range 40 {
		phi := 2 * math.Pi * float64(i) / 40
		circle = append(circle, vec.Vec2{X: 5 + 4*math.Cos(phi), Y: 5 + 4*math.Sin(phi)})
	}
	lShape := pts(0, 0, 2, 0, 2, 1, 1, 1, 1, 2, 0, 2)

	// During triangulation, some vertices of these polygons fall exactly
	// onto edges between earlier vertices.
	onEdge := pts(9, 0, 5, 6, 0, 4, -3, 4, -8, 2, -3, -2, -3, -6, 1, -4, 4, -2)
	onEdges := pts(-6, -1, -9, -3, -7, -8, 2, -4, 6, -6, 6, -3, 10, -5, 7, -2,
		8, 3, 5, 3, 2, 2, -1, 6, -4, 8, -4, 7, -4, 6, -5, 5, -8, 6, -5, 3,
		-9, 4, -6, 0)

	cases := []struct {
		name string
		sps  [][]vec.Vec2
		rule FillRule
		want float64
	}{
		{"hole, nonzero", [][]vec.Vec2{outer, innerRev}, NonZero, 84},
		{"same direction, nonzero", [][]vec.Vec2{outer, inner}, NonZero, 100},
		{"same direction, even-odd", [][]vec.Vec2{outer, inner}, EvenOdd, 84},
		{"hole, even-odd", [][]vec.Vec2{outer, innerRev}, EvenOdd, 84},
		{"bow tie", [][]vec.Vec2{pts(0, 0, 2, 2, 2, 0, 0, 2)}, NonZero, 2},
		{"concave", [][]vec.Vec2{lShape}, NonZero, 3},
		{"circle", [][]vec.Vec2{circle}, EvenOdd, polygonArea(circle)},
		{"clockwise", [][]vec.Vec2{innerRev}, NonZero, 16},
		{"overlapping squares", [][]vec.Vec2{pts(0, 0, 2, 0, 2, 2, 0, 2), pts(1, 1, 3, 1, 3, 3, 1, 3)}, NonZero, 7},
		{"overlapping squares, even-odd", [][]vec.Vec2{pts(0, 0, 2, 0, 2, 2, 0, 2), pts(1, 1, 3, 1, 3, 3, 1, 3)}, EvenOdd, 6},
		{"collinear points", [][]vec.Vec2{pts(0, 0, 1, 0, 2, 0, 2, 2, 0, 2)}, NonZero, 4},
		{"vertex on an edge", [][]vec.Vec2{onEdge}, NonZero, 98},
		{"vertices on edges", [][]vec.Vec2{onEdges}, NonZero, 150},
	}
	for _, test := range cases {
		var sps []SubPath
		for _, p := range test.sps {
			sps = append(sps, SubPath{Points: p})
		}
		tris := Fill(sps, test.rule, graphics.RGB{})
		if a := totalArea(tris); math.Abs(a-test.want) > 1e-6 {
			t.Errorf("%s: area is %g, want %g", test.name, a, test.want)
		}
	}
}

func TestFillDegenerate(t *testing.T) {
	cases := [][]SubPath{
		nil,
		{{Points: pts(1, 1)}},
		{{Points: pts(0, 0, 1, 1)}},
		{{Points: pts(0, 0, 1, 1, 2, 2)}},
		{{Points: pts(0, 0, 0, 0, 0, 0, 0, 0)}},
		{{Points: pts(0, 0, 1, 0)}, {Points: pts(0, 1, 1, 1)}},
	}
	for i, sps := range cases {
		tris := Fill(sps, NonZero, graphics.RGB{})
		if a := totalArea(tris); a > 1e-12 {
			t.Errorf("%d: degenerate input gave area %g", i, a)
		}
	}
}

func TestGenerate(t *testing.T) {
	st := graphics.NewState()
	st.Transform(matrix.Matrix{2, 0, 0, 2, 0, 0})
	st.Transform(matrix.Matrix{1, 0, 0, 1, 5, 5})
	st.LineWidth = 2

	sq := SubPath{Points: pts(0, 0, 10, 0, 10, 10, 0, 10), Closed: true}
	pp := PaintedPath{
		Path:  Path{SubPaths: []SubPath{sq}, Mode: PathMode{Fill: true}},
		State: st,
	}
	tris := Generate(pp)
	want := rect.Rect{LLx: 10, LLy: 10, URx: 30, URy: 30}
	if d := cmp.Diff(want, Bounds(tris), cmpopts.EquateApprox(0, 1e-9)); d != "" {
		t.Errorf("wrong bounds (-want +got):\n%s", d)
	}

	// fill and stroke: fill triangles come first
	st.FillColor = graphics.RGB{B: 1}
	st.StrokeColor = graphics.RGB{R: 1}
	pp.State = st
	pp.Path.Mode = PathMode{Fill: true, Stroke: true}
	tris = Generate(pp)
	if len(tris) != 2+16 {
		t.Fatalf("got %d triangles, want 18", len(tris))
	}
	if tris[0].A.Color != st.FillColor || tris[17].A.Color != st.StrokeColor {
		t.Errorf("wrong order of fill and stroke triangles")
	}
}

func TestGenerateFiltersHugeCoordinates(t *testing.T) {
	sp := SubPath{Points: pts(0, 0, 10, 0, 1e12, 5, 10, 10, 0, 10, math.NaN(), 0)}
	pp := PaintedPath{
		Path:  Path{SubPaths: []SubPath{sp}, Mode: PathMode{Fill: true}},
		State: graphics.NewState(),
	}
	tris := Generate(pp)
	if a := totalArea(tris); math.Abs(a-100) > 1e-6 {
		t.Errorf("area is %g, want 100", a)
	}
}

func TestBuilder(t *testing.T) {
	var paths []PaintedPath
	for i := range 20 {
		st := graphics.NewState()
		st.FillColor = graphics.Gray(float64(i) / 20)
		x := float64(i)
		sq := SubPath{Points: pts(x, 0, x+1, 0, x+1, 1, x, 1)}
		paths = append(paths, PaintedPath{
			Path:  Path{SubPaths: []SubPath{sq}, Mode: PathMode{Fill: true}},
			State: st,
		})
	}

	b := NewBuilder(4)
	defer b.Close()
	tris := b.Build(paths)
	if len(tris) != 40 {
		t.Fatalf("got %d triangles, want 40", len(tris))
	}
	for i, tri := range tris {
		want := graphics.Gray(float64(i/2) / 20)
		if tri.A.Color != want {
			t.Errorf("triangle %d has colour %v, want %v", i, tri.A.Color, want)
		}
	}
	if b.Build(nil) != nil {
		t.Error("empty input gave triangles")
	}
}

func TestBuilderClosed(t *testing.T) {
	sq := SubPath{Points: pts(0, 0, 1, 0, 1, 1, 0, 1)}
	paths := []PaintedPath{{
		Path:  Path{SubPaths: []SubPath{sq}, Mode: PathMode{Fill: true}},
		State: graphics.NewState(),
	}}

	b := NewBuilder(2)
	b.Close()
	if got := len(b.Build(paths)); got != 2 {
		t.Errorf("got %d triangles after Close, want 2", got)
	}
}
