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

package graphics

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// DefaultMiterLimit is the miter limit of a fresh graphics state.
const DefaultMiterLimit = 10

// State collects the graphical parameters used when painting paths.
//
// State is a value type.  Copying a State gives an independent copy,
// which is what the "q" operator needs.
//
// See section 8.4 of ISO 32000-2:2020.
type State struct {
	// CTM is the "current transformation matrix", which maps positions from
	// user coordinates to device coordinates.
	CTM matrix.Matrix

	LineWidth  float64
	LineCap    LineCapStyle
	LineJoin   LineJoinStyle
	MiterLimit float64

	StrokeColor RGB
	FillColor   RGB
}

// NewState returns a new graphics state with default values:
// identity transformation, line width 1, butt caps, miter joins and black
// stroke and fill colours.
func NewState() State {
	return State{
		CTM:         matrix.Identity,
		LineWidth:   1,
		LineCap:     LineCapButt,
		LineJoin:    LineJoinMiter,
		MiterLimit:  DefaultMiterLimit,
		StrokeColor: RGB{},
		FillColor:   RGB{},
	}
}

// Transform concatenates M with the current transformation matrix.
// Following the semantics of the "cm" operator, M is applied before
// the existing transformation, so that earlier "cm" operators stay in
// effect.
func (s *State) Transform(M matrix.Matrix) {
	s.CTM = M.Mul(s.CTM)
}

// Apply maps a point from user space to device space.
func (s *State) Apply(p vec.Vec2) vec.Vec2 {
	x, y := s.CTM.Apply(p.X, p.Y)
	return vec.Vec2{X: x, Y: y}
}

// Stack is a stack of graphics states.
//
// The stack is never empty.  The top of the stack is the current graphics
// state, which is modified in place by the content stream operators.
type Stack struct {
	states []State
}

// NewStack returns a stack holding a single default state.
func NewStack() *Stack {
	return &Stack{states: []State{NewState()}}
}

// Top returns a pointer to the current graphics state.
// The pointer is valid until the next call to Push or Pop.
func (s *Stack) Top() *State {
	if len(s.states) == 0 {
		s.states = append(s.states, NewState())
	}
	return &s.states[len(s.states)-1]
}

// Push saves a copy of the current graphics state.
func (s *Stack) Push() {
	s.states = append(s.states, *s.Top())
}

// Pop restores the most recently saved graphics state.
// If no saved state is left, the current state is replaced by a fresh
// default state.  Pop reports whether a saved state was available.
func (s *Stack) Pop() bool {
	n := len(s.states)
	if n <= 1 {
		s.states = append(s.states[:0], NewState())
		return false
	}
	s.states = s.states[:n-1]
	return true
}

// Len returns the number of states on the stack.
func (s *Stack) Len() int {
	return len(s.states)
}
