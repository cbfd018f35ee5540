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
	"context"

	"github.com/jetsetilly/copperbars/curated"
)

// Pacer is used by Run() to regulate the frame rate. The CheckFrame()
// function is called at the end of every frame, outside of the bus, and
// should block for as long as necessary.
type Pacer interface {
	CheckFrame()
}

// Run the system until the context is cancelled. A nil pacer means the
// system runs as quickly as possible.
//
// Host functions can be called from other goroutines while Run() is active.
// The bus is held for a scanline at a time.
func (sys *System) Run(ctx context.Context, pacer Pacer) error {
	sys.crit.Lock()
	if sys.running {
		sys.crit.Unlock()
		return curated.Errorf(AlreadyRunning)
	}
	sys.running = true
	sys.crit.Unlock()

	defer func() {
		sys.crit.Lock()
		sys.running = false
		sys.frameEnded.Broadcast()
		sys.crit.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		var newFrame bool

		sys.crit.Lock()
		for range sys.Spec.ClksScanline {
			if sys.tick() {
				newFrame = true
				break
			}
		}
		sys.crit.Unlock()

		if newFrame && pacer != nil {
			pacer.CheckFrame()
		}
	}
}

// Running returns true if Run() is active.
func (sys *System) Running() bool {
	sys.crit.Lock()
	defer sys.crit.Unlock()
	return sys.running
}
