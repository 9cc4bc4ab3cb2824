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
	"fmt"
	"image/color"
)

// RGB is a colour in the DeviceRGB colour space.
// Each component is in the range [0, 1].
type RGB struct {
	R, G, B float64
}

// NewRGB returns the given colour, with components clamped to [0, 1].
func NewRGB(r, g, b float64) RGB {
	return RGB{clamp(r), clamp(g), clamp(b)}
}

// Gray converts a DeviceGray value to RGB.
func Gray(g float64) RGB {
	g = clamp(g)
	return RGB{g, g, g}
}

// CMYK converts a DeviceCMYK colour to RGB, using the naive conversion
//
//	R = (1-C)(1-K),  G = (1-M)(1-K),  B = (1-Y)(1-K).
func CMYK(c, m, y, k float64) RGB {
	c, m, y, k = clamp(c), clamp(m), clamp(y), clamp(k)
	return RGB{
		R: (1 - c) * (1 - k),
		G: (1 - m) * (1 - k),
		B: (1 - y) * (1 - k),
	}
}

// RGBA implements the [color.Color] interface.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return uint32(c.R*0xffff + 0.5), uint32(c.G*0xffff + 0.5), uint32(c.B*0xffff + 0.5), 0xffff
}

var _ color.Color = RGB{}

func (c RGB) String() string {
	return fmt.Sprintf("rgb(%.3g, %.3g, %.3g)", c.R, c.G, c.B)
}

func clamp(x float64) float64 {
	if x < 0 || x != x {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
