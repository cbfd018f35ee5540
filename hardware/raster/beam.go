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

// Package raster models the raster beam of the VDP. The beam is the clock
// of the whole system: every other component that is sensitive to time
// measures time as a raster position.
//
// The Beam is advanced one clock at a time by calling Tick(). Nothing in the
// package decides when to call Tick(); that is the job of the driver (see
// the hardware package). This makes the beam an injectable and entirely
// deterministic tick source.
package raster

import (
	"github.com/jetsetilly/copperbars/hardware/raster/coords"
	"github.com/jetsetilly/copperbars/hardware/raster/specification"
)

// Beam is the current position of the raster.
type Beam struct {
	spec specification.Spec
	pos  coords.Position
}

// NewBeam is the preferred method of initialisation for the Beam type.
func NewBeam(spec specification.Spec) *Beam {
	return &Beam{spec: spec}
}

// Spec returns the display mode the beam is scanning.
func (b *Beam) Spec() specification.Spec {
	return b.spec
}

// Position returns the current position of the beam.
func (b *Beam) Position() coords.Position {
	return b.pos
}

// Reset beam to the very start of the first frame.
func (b *Beam) Reset() {
	b.pos = coords.Position{}
}

// Tick advances the beam by one clock. Returns whether a new scanline and/or
// a new frame started as a result.
//
// A new frame always implies a new scanline.
func (b *Beam) Tick() (newScanline bool, newFrame bool) {
	b.pos.X++
	if b.pos.X < b.spec.ClksScanline {
		return false, false
	}

	b.pos.X = 0
	b.pos.Y++
	if b.pos.Y < b.spec.ScanlinesTotal {
		return true, false
	}

	// vertical blank
	b.pos.Y = 0
	b.pos.Frame++

	return true, true
}
