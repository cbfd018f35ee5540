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

package hardware

import (
	"github.com/jetsetilly/copperbars/hardware/raster/coords"
)

// tick advances the system by one raster clock. The copper sees the raster
// position before the beam moves. Returns true if a new frame has started.
//
// The bus must be held by the caller.
func (sys *System) tick() bool {
	sys.VDP.Copper.Step(sys.Beam.Position())

	_, newFrame := sys.Beam.Tick()
	if newFrame {
		sys.VDP.NewFrame(sys.Beam.Position().Frame)
		sys.frameEnded.Broadcast()
	}

	return newFrame
}

// Step the system by one raster clock.
func (sys *System) Step() {
	sys.crit.Lock()
	defer sys.crit.Unlock()
	sys.tick()
}

// StepTo steps the system until the raster reaches the position. The copper
// has not yet seen the position when the function returns. There is no
// effect if the raster has already reached the position.
func (sys *System) StepTo(pos coords.Position) {
	sys.crit.Lock()
	defer sys.crit.Unlock()
	for coords.GreaterThan(pos, sys.Beam.Position()) {
		sys.tick()
	}
}

// WaitFrameEnded blocks until the current frame has ended. On return the
// raster is at the very start of the next frame and the copper has not yet
// seen that position, so a register written by the host immediately after
// WaitFrameEnded() is in place for the first clock of the frame.
//
// In stepped mode the raster is advanced by the call itself. If Run() is
// active then the call waits for the driver.
func (sys *System) WaitFrameEnded() {
	sys.crit.Lock()
	defer sys.crit.Unlock()

	frame := sys.Beam.Position().Frame
	for sys.Beam.Position().Frame == frame {
		if sys.running {
			sys.frameEnded.Wait()
		} else {
			sys.tick()
		}
	}
}

// RunForFrameCount steps the system for the specified number of frames.
func (sys *System) RunForFrameCount(numFrames int) {
	for range numFrames {
		sys.WaitFrameEnded()
	}
}
