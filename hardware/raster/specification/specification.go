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

// Package specification contains the geometry of the display modes supported
// by the VDP. The raster beam covers the whole of the frame, including the
// horizontal and vertical blanking periods, so the number of clocks per
// scanline and the number of scanlines per frame are both larger than the
// visible (active) area.
//
// Copper wait targets are compared against the full raster, not only the
// active area, so the valid range of a target is the full raster range.
package specification

import (
	"fmt"
	"strings"
)

// Spec is used to define the display mode.
type Spec struct {
	ID string

	// the visible area of the display
	ActiveWidth  int
	ActiveHeight int

	// the number of raster clocks in a scanline and the number of scanlines
	// in a frame. both include blanking
	ClksScanline   int
	ScanlinesTotal int

	// expected number of frames per second
	RefreshRate float32
}

func (spec Spec) String() string {
	return fmt.Sprintf("%s (%dx%d raster)", spec.ID, spec.ClksScanline, spec.ScanlinesTotal)
}

// ValidX returns true if x is a horizontal raster position in the display
// mode.
func (spec Spec) ValidX(x int) bool {
	return x >= 0 && x < spec.ClksScanline
}

// ValidY returns true if y is a scanline in the display mode.
func (spec Spec) ValidY(y int) bool {
	return y >= 0 && y < spec.ScanlinesTotal
}

// ClksFrame returns the number of raster clocks in a single frame.
func (spec Spec) ClksFrame() int {
	return spec.ClksScanline * spec.ScanlinesTotal
}

// Spec848x480 is the widescreen display mode and is the default mode of the
// VDP.
var Spec848x480 = Spec{
	ID:             "848x480",
	ActiveWidth:    848,
	ActiveHeight:   480,
	ClksScanline:   1088,
	ScanlinesTotal: 517,
	RefreshRate:    60.0,
}

// Spec640x480 is the standard VGA display mode.
var Spec640x480 = Spec{
	ID:             "640x480",
	ActiveWidth:    640,
	ActiveHeight:   480,
	ClksScanline:   800,
	ScanlinesTotal: 525,
	RefreshRate:    60.0,
}

// SpecList is the list of all supported display modes.
var SpecList = []Spec{Spec848x480, Spec640x480}

// the ID to use when no ID is given to SearchSpec()
const defaultID = "848x480"

// SearchSpec looks for a display mode with an ID matching the argument. The
// comparison is case insensitive. An empty string returns the default mode.
func SearchSpec(id string) (Spec, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		id = defaultID
	}

	for _, spec := range SpecList {
		if strings.EqualFold(spec.ID, id) {
			return spec, nil
		}
	}

	return Spec{}, fmt.Errorf("specification: unknown display mode (%s)", id)
}
