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

// Package render is the boundary between mesh generation and display.
//
// A [Target] receives finished triangle meshes.  [Buffer] is a Target
// which keeps the most recent frame, for a display loop which polls for
// new frames on its own schedule.  [Rasterize] draws a frame into an
// image, for previews and tests.
package render

import (
	"sync"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfmesh/mesh"
)

// Frame is a complete triangle mesh, together with the area of the page
// it was generated from.
type Frame struct {
	Triangles []mesh.Triangle
	DrawArea  rect.Rect
}

// Target is implemented by consumers of triangle meshes, for example a
// GPU renderer.
//
// SetDrawArea sets the area for the next triangle buffer.
// SetTriangleBuffer replaces the current triangles.  The Target owns the
// slice after the call.
type Target interface {
	SetDrawArea(r rect.Rect)
	SetTriangleBuffer(tris []mesh.Triangle)
}

// Buffer holds the most recently published frame.
//
// Every new frame replaces the previous one as a whole.  A version counter
// lets readers detect new frames.  Buffer is safe for concurrent use.
type Buffer struct {
	mu      sync.Mutex
	frame   Frame
	area    rect.Rect
	version uint64
}

var _ Target = (*Buffer)(nil)

// SetDrawArea implements the [Target] interface.
func (b *Buffer) SetDrawArea(r rect.Rect) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.area = r
}

// SetTriangleBuffer implements the [Target] interface.
// This publishes a new frame, using the most recent draw area.
func (b *Buffer) SetTriangleBuffer(tris []mesh.Triangle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frame = Frame{Triangles: tris, DrawArea: b.area}
	b.version++
}

// Publish replaces the current frame.
func (b *Buffer) Publish(f Frame) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frame = f
	b.area = f.DrawArea
	b.version++
}

// Latest returns the current frame and its version.
// The version is 0 if no frame has been published yet.
func (b *Buffer) Latest() (Frame, uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frame, b.version
}

// Since returns the current frame, if it is newer than the given version.
func (b *Buffer) Since(version uint64) (Frame, uint64, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.version <= version {
		return Frame{}, b.version, false
	}
	return b.frame, b.version, true
}
