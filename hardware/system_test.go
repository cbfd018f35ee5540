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

package hardware_test

import (
	"context"
	"runtime"
	"testing"

	"github.com/jetsetilly/copperbars/curated"
	"github.com/jetsetilly/copperbars/hardware"
	"github.com/jetsetilly/copperbars/hardware/copper/memory"
	"github.com/jetsetilly/copperbars/hardware/preferences"
	"github.com/jetsetilly/copperbars/hardware/raster/coords"
	"github.com/jetsetilly/copperbars/hardware/vdp"
	"github.com/jetsetilly/copperbars/hardware/vdp/palette"
	"github.com/jetsetilly/copperbars/prefs"
	"github.com/jetsetilly/copperbars/test"
)

func TestNewSystem(t *testing.T) {
	sys, err := hardware.NewSystem(nil)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, sys.Spec.ID, "848x480")
	test.ExpectEquality(t, sys.RAM.Size(), memory.DefaultSize)

	prefs.PushCommandLineStack("vdp.spec::640x480; copper.ramSize::16")
	defer prefs.PopCommandLineStack()

	p, err := preferences.NewPreferences("")
	test.DemandSuccess(t, err)
	sys, err = hardware.NewSystem(p)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, sys.Spec.ID, "640x480")
	test.ExpectEquality(t, sys.RAM.Size(), 16)
}

func TestBadPreferences(t *testing.T) {
	prefs.PushCommandLineStack("copper.ramSize::0")
	defer prefs.PopCommandLineStack()

	p, err := preferences.NewPreferences("")
	test.DemandSuccess(t, err)
	_, err = hardware.NewSystem(p)
	test.ExpectSuccess(t, curated.Is(err, hardware.SystemError))
	test.ExpectSuccess(t, curated.Has(err, memory.InvalidSize))
}

func TestStepping(t *testing.T) {
	sys, err := hardware.NewSystem(nil)
	test.DemandSuccess(t, err)

	sys.Step()
	test.ExpectEquality(t, sys.RasterPosition(), coords.Position{Frame: 0, Y: 0, X: 1})

	sys.StepTo(coords.Position{Frame: 0, Y: 10, X: 5})
	test.ExpectEquality(t, sys.RasterPosition(), coords.Position{Frame: 0, Y: 10, X: 5})

	// stepping to an earlier position has no effect
	sys.StepTo(coords.Position{Frame: 0, Y: 1, X: 0})
	test.ExpectEquality(t, sys.RasterPosition(), coords.Position{Frame: 0, Y: 10, X: 5})

	sys.WaitFrameEnded()
	test.ExpectEquality(t, sys.RasterPosition(), coords.Position{Frame: 1, Y: 0, X: 0})

	sys.RunForFrameCount(3)
	test.ExpectEquality(t, sys.Frame(), 4)
}

func TestOwnership(t *testing.T) {
	sys, err := hardware.NewSystem(nil)
	test.DemandSuccess(t, err)

	b, err := sys.Builder()
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, b.SetTargetX(0))
	test.ExpectSuccess(t, b.WaitTargetY(100))
	test.ExpectSuccess(t, b.Write(vdp.RegPaletteAddress, 0))
	test.ExpectSuccess(t, b.Write(vdp.RegPaletteData, uint16(palette.Teal)))
	test.ExpectSuccess(t, b.WaitTargetY(101))
	test.ExpectSuccess(t, b.Jump(0))

	sys.EnableCopper(true)

	_, err = sys.Builder()
	test.ExpectSuccess(t, curated.Is(err, memory.HardwareOwned))

	// the builder that was created before the copper was enabled can no
	// longer write
	err = b.Jump(0)
	test.ExpectFailure(t, err)

	sys.WaitFrameEnded()
	test.ExpectEquality(t, sys.VDP.Palette[0], palette.Teal)

	sys.EnableCopper(false)
	b, err = sys.Builder()
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, b.Jump(0))
}

func TestSingleWaitList(t *testing.T) {
	sys, err := hardware.NewSystem(nil)
	test.DemandSuccess(t, err)

	b, err := sys.Builder()
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, b.SetTargetX(0))
	test.ExpectSuccess(t, b.WaitTargetY(100))
	test.ExpectSuccess(t, b.Write(vdp.RegPaletteAddress, 0))
	test.ExpectSuccess(t, b.Write(vdp.RegPaletteData, uint16(palette.Teal)))
	test.ExpectSuccess(t, b.Jump(0))

	sys.EnableCopper(true)
	sys.RunForFrameCount(3)

	test.ExpectEquality(t, sys.VDP.Copper.Passes(), 3)
	test.ExpectEquality(t, len(sys.Faults.Log), 0)
	test.ExpectEquality(t, sys.VDP.Palette[0], palette.Teal)
}

func TestIndependentSystems(t *testing.T) {
	a, err := hardware.NewSystem(nil)
	test.DemandSuccess(t, err)
	b, err := hardware.NewSystem(nil)
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, a.SetSinglePaletteColor(0, palette.Green))
	test.ExpectSuccess(t, a.EnableLayers(0x03))
	a.WaitFrameEnded()

	test.ExpectEquality(t, b.VDP.Palette[0], 0)
	test.ExpectEquality(t, b.VDP.Layers(), 0)
	test.ExpectEquality(t, b.Frame(), 0)
	test.ExpectEquality(t, a.Frame(), 1)
}

func TestRun(t *testing.T) {
	sys, err := hardware.NewSystem(nil)
	test.DemandSuccess(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() {
		done <- sys.Run(ctx, nil)
	}()

	// wait for the driver to start
	for !sys.Running() {
		runtime.Gosched()
	}

	// only one driver is allowed
	test.ExpectSuccess(t, curated.Is(sys.Run(ctx, nil), hardware.AlreadyRunning))

	sys.WaitFrameEnded()
	sys.WaitFrameEnded()
	pos := sys.RasterPosition()
	test.ExpectSuccess(t, pos.Frame >= 2)

	cancel()
	test.ExpectSuccess(t, <-done)
	test.ExpectFailure(t, sys.Running())

	// back to stepped mode
	frame := sys.Frame()
	sys.WaitFrameEnded()
	test.ExpectEquality(t, sys.Frame(), frame+1)
}
