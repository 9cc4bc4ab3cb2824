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

package render

import (
	"image/color"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pdfmesh/graphics"
	"seehuhn.de/go/pdfmesh/mesh"
)

func TestBuffer(t *testing.T) {
	b := &Buffer{}
	if _, v := b.Latest(); v != 0 {
		t.Fatalf("fresh buffer has version %d", v)
	}
	if _, _, ok := b.Since(0); ok {
		t.Error("fresh buffer reports a new frame")
	}

	area := rect.Rect{URx: 10, URy: 20}
	tris := []mesh.Triangle{{}}
	b.SetDrawArea(area)
	b.SetTriangleBuffer(tris)

	f, v, ok := b.Since(0)
	if !ok || v != 1 {
		t.Fatalf("Since(0) = %v, %d, %t", f, v, ok)
	}
	if f.DrawArea != area || len(f.Triangles) != 1 {
		t.Errorf("wrong frame %v", f)
	}
	if _, _, ok := b.Since(1); ok {
		t.Error("no new frame expected")
	}

	b.Publish(Frame{DrawArea: rect.Rect{URx: 1, URy: 1}})
	f, v = b.Latest()
	if v != 2 || f.Triangles != nil {
		t.Errorf("Publish did not replace the frame: %v, %d", f, v)
	}
}

func TestBufferConcurrent(t *testing.T) {
	b := &Buffer{}
	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Publish(Frame{DrawArea: rect.Rect{URx: float64(i)}})
			b.Latest()
		}()
	}
	wg.Wait()
	if _, v := b.Latest(); v != 10 {
		t.Errorf("version is %d, want 10", v)
	}
}

func TestFit(t *testing.T) {
	area := rect.Rect{LLx: 0, LLy: 0, URx: 100, URy: 50}
	M := Fit(area, 200, 200)

	cases := []struct {
		in, want vec.Vec2
	}{
		{vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 0, Y: 150}},
		{vec.Vec2{X: 100, Y: 50}, vec.Vec2{X: 200, Y: 50}},
		{vec.Vec2{X: 50, Y: 25}, vec.Vec2{X: 100, Y: 100}},
	}
	for _, test := range cases {
		got := apply(M, test.in)
		if d := cmp.Diff(test.want, got, cmpopts.EquateApprox(0, 1e-9)); d != "" {
			t.Errorf("%v: wrong image (-want +got):\n%s", test.in, d)
		}
	}
}

func TestRasterize(t *testing.T) {
	red := graphics.RGB{R: 1}
	v := func(x, y float64) mesh.Vertex {
		return mesh.Vertex{Pos: vec.Vec2{X: x, Y: y}, Color: red}
	}
	f := Frame{
		Triangles: []mesh.Triangle{
			{A: v(2, 2), B: v(8, 2), C: v(8, 8)},
			{A: v(2, 2), B: v(2, 8), C: v(8, 8)}, // clockwise
		},
		DrawArea: rect.Rect{URx: 10, URy: 10},
	}
	img := Rasterize(f, 100, 100)

	want := color.RGBA{R: 0xff, A: 0xff}
	if got := img.RGBAAt(50, 50); got != want {
		t.Errorf("centre pixel is %v, want %v", got, want)
	}
	// a pixel on the diagonal between the two triangles
	if got := img.RGBAAt(40, 59); got != want {
		t.Errorf("diagonal pixel is %v, want %v", got, want)
	}
	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	if got := img.RGBAAt(5, 5); got != white {
		t.Errorf("corner pixel is %v, want %v", got, white)
	}

	// an empty frame gives a white image
	img = Rasterize(Frame{}, 4, 4)
	if got := img.RGBAAt(2, 2); got != white {
		t.Errorf("empty frame pixel is %v", got)
	}
}
