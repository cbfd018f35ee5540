// This file is part of Copperbars.
//
// Copperbars is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Copperbars is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Copperbars.  If not, see <https://www.gnu.org/licenses/>.

// Package coords represents and can work with raster coordinates.
//
// A coordinate is the position of the raster beam at a moment in time. As
// well as the scanline (Y) and the clock within the scanline (X), the
// coordinate includes the frame number. The frame number is not part of the
// VDP hardware but it is useful when comparing the moments at which events
// occurred.
package coords

import (
	"fmt"

	"github.com/jetsetilly/copperbars/hardware/raster/specification"
)

// FrameIsUndefined is used to indicate that the Frame field of the Position
// struct is to be ignored.
const FrameIsUndefined = -1

// Position of the raster beam. The zero value is the very first clock of the
// first frame.
type Position struct {
	Frame int
	Y     int
	X     int
}

func (c Position) String() string {
	if c.Frame == FrameIsUndefined {
		return fmt.Sprintf("Y: %03d  X: %04d", c.Y, c.X)
	}
	return fmt.Sprintf("Frame: %d  Y: %03d  X: %04d", c.Frame, c.Y, c.X)
}

// Equal compares two instances of Position and return true if both are
// equal.
//
// If the Frame field is undefined for either argument then the Frame field is
// ignored for the test.
func Equal(A, B Position) bool {
	if A.Frame == FrameIsUndefined || B.Frame == FrameIsUndefined {
		return A.Y == B.Y && A.X == B.X
	}
	return A.Frame == B.Frame && A.Y == B.Y && A.X == B.X
}

// GreaterThanOrEqual compares two instances of Position and return true if A
// is greater than or equal to B.
//
// If the Frame field is undefined for either argument then the Frame field is
// ignored for the test.
func GreaterThanOrEqual(A, B Position) bool {
	if A.Frame == FrameIsUndefined || B.Frame == FrameIsUndefined || A.Frame == B.Frame {
		return A.Y > B.Y || (A.Y == B.Y && A.X >= B.X)
	}
	return A.Frame > B.Frame
}

// GreaterThan compares two instances of Position and return true if A is
// greater than B.
//
// If the Frame field is undefined for either argument then the Frame field is
// ignored for the test.
func GreaterThan(A, B Position) bool {
	if A.Frame == FrameIsUndefined || B.Frame == FrameIsUndefined || A.Frame == B.Frame {
		return A.Y > B.Y || (A.Y == B.Y && A.X > B.X)
	}
	return A.Frame > B.Frame
}

// Sum the number of clocks in the raster position.
//
// If the Frame field is undefined then only the clocks since the start of the
// frame are counted.
func Sum(A Position, spec specification.Spec) int {
	s := A.Y*spec.ClksScanline + A.X
	if A.Frame == FrameIsUndefined {
		return s
	}
	return A.Frame*spec.ClksFrame() + s
}

// FromSum is the inverse of the Sum() function.
func FromSum(sum int, spec specification.Spec) Position {
	return Position{
		Frame: sum / spec.ClksFrame(),
		Y:     (sum % spec.ClksFrame()) / spec.ClksScanline,
		X:     sum % spec.ClksScanline,
	}
}
