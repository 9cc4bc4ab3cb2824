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
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pdfmesh/graphics"
	"seehuhn.de/go/pdfmesh/mesh"
)

// Fit returns the transformation which maps the draw area into an image of
// the given size.  The aspect ratio is preserved and the result is centred.
// The y axis is flipped, since PDF coordinates grow upwards while image
// coordinates grow downwards.
func Fit(area rect.Rect, width, height int) matrix.Matrix {
	dx, dy := area.Dx(), area.Dy()
	s := 1.0
	if dx > 0 && dy > 0 {
		s = min(float64(width)/dx, float64(height)/dy)
	}
	ox := (float64(width) - dx*s) / 2
	oy := (float64(height) - dy*s) / 2
	return matrix.Matrix{
		s, 0,
		0, -s,
		ox - area.LLx*s, float64(height) - oy + area.LLy*s,
	}
}

// Rasterize draws a frame into a new image of the given size, on a white
// background.  The draw area is fitted into the image using [Fit].
//
// Triangles are drawn in order.  Runs of triangles with the same colour
// are rasterized together, so that there are no seams between adjacent
// triangles.
func Rasterize(f Frame, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	M := Fit(f.DrawArea, width, height)
	z := &vector.Rasterizer{}

	tris := f.Triangles
	for len(tris) > 0 {
		col := tris[0].A.Color
		n := 1
		for n < len(tris) && tris[n].A.Color == col {
			n++
		}
		drawRun(img, z, tris[:n], M, col)
		tris = tris[n:]
	}
	return img
}

// drawRun rasterizes a group of triangles which share the same colour.
func drawRun(img *image.RGBA, z *vector.Rasterizer, tris []mesh.Triangle, M matrix.Matrix, col graphics.RGB) {
	dev := make([][3]vec.Vec2, 0, len(tris))
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, t := range tris {
		p := [3]vec.Vec2{apply(M, t.A.Pos), apply(M, t.B.Pos), apply(M, t.C.Pos)}
		for _, q := range p {
			minX = min(minX, q.X)
			minY = min(minY, q.Y)
			maxX = max(maxX, q.X)
			maxY = max(maxY, q.Y)
		}
		dev = append(dev, p)
	}

	bounds := image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	).Intersect(img.Bounds())
	if bounds.Empty() {
		return
	}

	// The rasterizer accumulates signed coverage, so all triangles must
	// have the same orientation.
	ox, oy := float64(bounds.Min.X), float64(bounds.Min.Y)
	z.Reset(bounds.Dx(), bounds.Dy())
	for _, p := range dev {
		a, b, c := p[0], p[1], p[2]
		if (b.X-a.X)*(c.Y-a.Y)-(b.Y-a.Y)*(c.X-a.X) < 0 {
			b, c = c, b
		}
		z.MoveTo(float32(a.X-ox), float32(a.Y-oy))
		z.LineTo(float32(b.X-ox), float32(b.Y-oy))
		z.LineTo(float32(c.X-ox), float32(c.Y-oy))
		z.ClosePath()
	}
	z.DrawOp = draw.Over
	z.Draw(img, bounds, image.NewUniform(col), image.Point{})
}

func apply(M matrix.Matrix, p vec.Vec2) vec.Vec2 {
	x, y := M.Apply(p.X, p.Y)
	return vec.Vec2{X: x, Y: y}
}
