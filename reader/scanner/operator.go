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

package scanner

import (
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pdfmesh/pdf"
)

// Operator represents a PDF operator together with its operands.
//
// Operands are taken from the end of the argument list, like from a stack:
// the operand pushed last is popped first.  For "x y m", PopNumber
// returns y on the first call and x on the second.
type Operator struct {
	Name     string
	Args     []pdf.Object
	HasError bool
}

// OK returns true if all operands could be read without error.
// Surplus operands are not considered an error.
func (op Operator) OK() bool {
	return !op.HasError
}

func (op *Operator) pop() (pdf.Object, bool) {
	if op.HasError || len(op.Args) == 0 {
		op.HasError = true
		return nil, false
	}
	k := len(op.Args) - 1
	arg := op.Args[k]
	op.Args = op.Args[:k]
	return arg, true
}

// PopInteger returns the last operand as an integer.
// In case of an error, HasError is set.
func (op *Operator) PopInteger() pdf.Integer {
	arg, ok := op.pop()
	if !ok {
		return 0
	}
	switch x := arg.(type) {
	case pdf.Integer:
		return x
	case pdf.Real:
		// some writers emit "0.0 J"
		if float64(x) == float64(int64(x)) {
			return pdf.Integer(x)
		}
	}
	op.HasError = true
	return 0
}

// PopNumber returns the last operand as a number.
// In case of an error, HasError is set.
func (op *Operator) PopNumber() float64 {
	arg, ok := op.pop()
	if !ok {
		return 0
	}
	switch x := arg.(type) {
	case pdf.Real:
		return float64(x)
	case pdf.Integer:
		return float64(x)
	default:
		op.HasError = true
		return 0
	}
}

// PopVec returns the last two operands as a point.
// The y coordinate is popped first.
func (op *Operator) PopVec() vec.Vec2 {
	y := op.PopNumber()
	x := op.PopNumber()
	return vec.Vec2{X: x, Y: y}
}

// PopNumbers pops n numbers and returns them in the order in which they
// were pushed.
func (op *Operator) PopNumbers(n int) []float64 {
	res := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		res[i] = op.PopNumber()
	}
	return res
}
