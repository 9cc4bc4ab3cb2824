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

// Package reader interprets the path construction and path painting
// operators of PDF content streams.
package reader

import (
	"context"
	"log/slog"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pdfmesh/graphics"
	"seehuhn.de/go/pdfmesh/internal/logger"
	"seehuhn.de/go/pdfmesh/mesh"
	"seehuhn.de/go/pdfmesh/pdf"
	"seehuhn.de/go/pdfmesh/reader/scanner"
)

// DefaultCurveSteps is the number of line segments used to approximate
// a Bézier curve.
const DefaultCurveSteps = 5

// A Reader reads a PDF content stream and collects the painted paths.
//
// A Reader holds all interpreter state.  Different Readers can be used
// concurrently.
type Reader struct {
	scanner *scanner.Scanner
	stack   *graphics.Stack

	path     mesh.Path
	hasPoint bool     // whether there is a current point
	current  vec.Vec2 // the current point
	open     bool     // whether the last subpath can be extended

	paths []mesh.PaintedPath

	// CurveSteps is the number of line segments used for every Bézier
	// curve.
	CurveSteps int

	// Skipped counts the unsupported operators encountered so far.
	Skipped map[string]int

	// Malformed counts operators which were ignored because of missing or
	// invalid operands.
	Malformed int
}

// New creates a new Reader.
func New() *Reader {
	return &Reader{
		scanner:    scanner.NewScanner(),
		stack:      graphics.NewStack(),
		CurveSteps: DefaultCurveSteps,
		Skipped:    make(map[string]int),
	}
}

// Reset clears all state, so that the Reader can be used for a new page.
// The CurveSteps setting is kept.
func (r *Reader) Reset() {
	r.stack = graphics.NewStack()
	r.path = mesh.Path{}
	r.hasPoint = false
	r.open = false
	r.paths = nil
	clear(r.Skipped)
	r.Malformed = 0
}

// State returns the current graphics state.
func (r *Reader) State() graphics.State {
	return *r.stack.Top()
}

// Paths returns the paths painted so far, in painting order.
func (r *Reader) Paths() []mesh.PaintedPath {
	return r.paths
}

// Parse interprets a content stream.
//
// Problems in the content stream are not reported as errors.  Unsupported
// operators are counted in Skipped, operators with invalid operands in
// Malformed.  A path which is still under construction at the end of the
// stream is discarded.
func (r *Reader) Parse(data []byte) error {
	err := r.scanner.Scan(data)(r.do)

	r.path = mesh.Path{}
	r.hasPoint = false
	r.open = false

	log := logger.Get()
	if len(r.Skipped) > 0 && log.Enabled(context.Background(), slog.LevelDebug) {
		ops := maps.Keys(r.Skipped)
		slices.Sort(ops)
		log.Debug("unsupported operators skipped", "ops", ops)
	}
	if r.Malformed > 0 {
		log.Debug("operators with invalid operands skipped", "count", r.Malformed)
	}
	return err
}

// do processes the given operator and arguments.
func (r *Reader) do(name string, args []pdf.Object) error {
	op := scanner.Operator{Name: name, Args: args}
	state := r.stack.Top()

	// Operators are listed in the order of table 50 ("Operator categories")
	// in ISO 32000-2:2020.

	switch name {

	// == General graphics state =========================================

	case "w": // line width
		x := op.PopNumber()
		if op.OK() {
			state.LineWidth = max(x, 0)
		}

	case "J": // line cap style
		x := op.PopInteger()
		if op.OK() {
			if x < 0 || x > 2 {
				x = 0
			}
			state.LineCap = graphics.LineCapStyle(x)
		}

	case "j": // line join style
		x := op.PopInteger()
		if op.OK() {
			if x < 0 || x > 2 {
				x = 0
			}
			state.LineJoin = graphics.LineJoinStyle(x)
		}

	case "M": // miter limit
		x := op.PopNumber()
		if op.OK() && x >= 1 {
			state.MiterLimit = x
		}

	case "q":
		r.stack.Push()

	case "Q":
		if !r.stack.Pop() {
			logger.Get().Debug("unbalanced Q operator")
		}

	// == Special graphics state =========================================

	case "cm":
		x := op.PopNumbers(6)
		if op.OK() {
			state.Transform(matrix.Matrix{x[0], x[1], x[2], x[3], x[4], x[5]})
		}

	// == Path construction ==============================================

	case "m": // moveto
		p := op.PopVec()
		if op.OK() {
			r.moveTo(p)
		}

	case "l": // lineto
		p := op.PopVec()
		if op.OK() && r.hasPoint {
			r.lineTo(p)
		}

	case "c": // curveto
		p3 := op.PopVec()
		p2 := op.PopVec()
		p1 := op.PopVec()
		if op.OK() && r.hasPoint {
			r.curveTo(p1, p2, p3)
		}

	case "v": // curveto, first control point at the current point
		p3 := op.PopVec()
		p2 := op.PopVec()
		if op.OK() && r.hasPoint {
			r.curveTo(r.current, p2, p3)
		}

	case "y": // curveto, second control point at the end point
		p3 := op.PopVec()
		p1 := op.PopVec()
		if op.OK() && r.hasPoint {
			r.curveTo(p1, p3, p3)
		}

	case "h": // closepath
		r.closePath()

	case "re": // rectangle
		x := op.PopNumbers(4)
		if op.OK() {
			r.rectangle(x[0], x[1], x[2], x[3])
		}

	// == Path painting ==================================================

	case "S": // stroke
		r.paint(mesh.PathMode{Stroke: true}, mesh.NonZero)
	case "s": // close and stroke
		r.closePath()
		r.paint(mesh.PathMode{Stroke: true}, mesh.NonZero)
	case "f", "F": // fill, nonzero winding rule
		r.paint(mesh.PathMode{Fill: true}, mesh.NonZero)
	case "f*": // fill, even-odd rule
		r.paint(mesh.PathMode{Fill: true}, mesh.EvenOdd)
	case "B": // fill and stroke
		r.paint(mesh.PathMode{Fill: true, Stroke: true}, mesh.NonZero)
	case "B*":
		r.paint(mesh.PathMode{Fill: true, Stroke: true}, mesh.EvenOdd)
	case "b": // close, fill and stroke
		r.closePath()
		r.paint(mesh.PathMode{Fill: true, Stroke: true}, mesh.NonZero)
	case "b*":
		r.closePath()
		r.paint(mesh.PathMode{Fill: true, Stroke: true}, mesh.EvenOdd)
	case "n": // end path without painting
		r.paint(mesh.PathMode{}, mesh.NonZero)

	// == Color ==========================================================

	case "G": // stroking gray level
		g := op.PopNumber()
		if op.OK() {
			state.StrokeColor = graphics.Gray(g)
		}

	case "g": // nonstroking gray level
		g := op.PopNumber()
		if op.OK() {
			state.FillColor = graphics.Gray(g)
		}

	case "RG": // stroking DeviceRGB color
		x := op.PopNumbers(3)
		if op.OK() {
			state.StrokeColor = graphics.NewRGB(x[0], x[1], x[2])
		}

	case "rg": // nonstroking DeviceRGB color
		x := op.PopNumbers(3)
		if op.OK() {
			state.FillColor = graphics.NewRGB(x[0], x[1], x[2])
		}

	case "K": // stroking DeviceCMYK color
		x := op.PopNumbers(4)
		if op.OK() {
			state.StrokeColor = graphics.CMYK(x[0], x[1], x[2], x[3])
		}

	case "k": // nonstroking DeviceCMYK color
		x := op.PopNumbers(4)
		if op.OK() {
			state.FillColor = graphics.CMYK(x[0], x[1], x[2], x[3])
		}

	default:
		r.Skipped[name]++
		return nil
	}

	if !op.OK() {
		r.Malformed++
	}
	return nil
}
