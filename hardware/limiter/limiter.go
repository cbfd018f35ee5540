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

// Package limiter paces the free-running driver so that frames are produced
// at the refresh rate of the display mode, or at some other requested rate.
package limiter

import (
	"sync/atomic"
	"time"
)

// MatchRefreshRate can be used with SetLimit() to indicate that the limit
// should be the refresh rate of the display mode.
const MatchRefreshRate float32 = -1.0

// Limiter paces frames. It implements the hardware.Pacer interface.
type Limiter struct {
	// whether to wait each frame. if Active is false then CheckFrame() never
	// blocks but the frame rate is still measured
	Active atomic.Bool

	// the refresh rate of the display mode
	RefreshRate float32

	// the frame rate the limiter is attempting to achieve
	IdealFPS atomic.Value // float32

	// pulse that performs the limiting
	pulse *time.Ticker

	// waiting on the pulse every frame is expensive for high frame rates so
	// the limiter waits once every pulseCtLimit frames and the duration of
	// the pulse is scaled to match
	pulseCt      int
	pulseCtLimit int

	// the measured FPS is the number of frames divided by the amount of
	// elapsed time since the previous measurement
	measuringPulse *time.Ticker
	measureTime    time.Time
	measureCt      int

	// the measured number of frames per second
	Measured atomic.Value // float32
}

// NewLimiter is the preferred method of initialisation for the Limiter type.
// The limit is set to match the refresh rate.
func NewLimiter(refreshRate float32) *Limiter {
	lmtr := &Limiter{
		RefreshRate:    refreshRate,
		pulse:          time.NewTicker(time.Millisecond * 16),
		measuringPulse: time.NewTicker(time.Second),
	}
	lmtr.Active.Store(true)
	lmtr.Measured.Store(float32(0.0))
	lmtr.SetLimit(MatchRefreshRate)
	return lmtr
}

// SetLimit sets the number of frames per second. A value of zero or less
// means the limit is the refresh rate.
func (lmtr *Limiter) SetLimit(fps float32) {
	if fps <= 0.0 {
		fps = lmtr.RefreshRate
	}
	if fps <= 0.0 {
		return
	}

	lmtr.IdealFPS.Store(fps)

	lmtr.pulseCt = 0
	lmtr.pulseCtLimit = 1 + int(fps/20)
	lmtr.pulse.Reset(time.Duration(float32(time.Second) / fps * float32(lmtr.pulseCtLimit)))

	lmtr.measureCt = 0
	lmtr.measureTime = time.Now()
}

// CheckFrame should be called once every frame. It blocks for as long as
// necessary to maintain the frame rate.
func (lmtr *Limiter) CheckFrame() {
	lmtr.measureCt++

	if lmtr.Active.Load() {
		lmtr.pulseCt++
		if lmtr.pulseCt >= lmtr.pulseCtLimit {
			lmtr.pulseCt = 0
			<-lmtr.pulse.C
		}
	}

	select {
	case <-lmtr.measuringPulse.C:
		t := time.Now()
		lmtr.Measured.Store(float32(lmtr.measureCt) / float32(t.Sub(lmtr.measureTime).Seconds()))
		lmtr.measureTime = t
		lmtr.measureCt = 0
	default:
	}
}

// Stop the limiter. CheckFrame() must not be called after Stop().
func (lmtr *Limiter) Stop() {
	lmtr.pulse.Stop()
	lmtr.measuringPulse.Stop()
}
